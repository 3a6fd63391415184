package alerts

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sguter90/homenet/pkg/models"
)

func TestPollerFetchesImmediatelyThenOnTick(t *testing.T) {
	var calls int32
	updates := make(chan []models.Alert, 10)

	p := NewPoller(func(ctx context.Context) ([]models.Alert, error) {
		n := atomic.AddInt32(&calls, 1)
		return []models.Alert{{ID: models.ID(string(rune('0' + n)))}}, nil
	}, WithInterval(20*time.Millisecond), OnUpdate(func(a []models.Alert) { updates <- a }))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- p.Run(ctx) }()

	for i := 0; i < 3; i++ {
		select {
		case <-updates:
		case <-time.After(time.Second):
			t.Fatalf("Expected update %d", i+1)
		}
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Expected Run to return after cancel")
	}

	after := atomic.LoadInt32(&calls)
	time.Sleep(60 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != after {
		t.Errorf("Expected no fetches after cancel, got %d more", got-after)
	}
}

func TestPollerErrorsKeepPolling(t *testing.T) {
	var calls int32
	errs := make(chan error, 10)

	p := NewPoller(func(ctx context.Context) ([]models.Alert, error) {
		atomic.AddInt32(&calls, 1)
		return nil, errors.New("backend down")
	}, WithInterval(10*time.Millisecond), OnError(func(err error) { errs <- err }))

	p.Start(context.Background())
	for i := 0; i < 2; i++ {
		select {
		case <-errs:
		case <-time.After(time.Second):
			t.Fatalf("Expected error callback %d", i+1)
		}
	}
	p.Stop()
	p.Stop()

	if n := atomic.LoadInt32(&calls); n < 2 {
		t.Errorf("Expected at least 2 fetches, got %d", n)
	}
}

func TestNewPollerDefaults(t *testing.T) {
	p := NewPoller(nil, WithInterval(0))
	if p.interval != DefaultInterval {
		t.Errorf("Expected default interval %v, got %v", DefaultInterval, p.interval)
	}
}

type fakeLister struct {
	mu     sync.Mutex
	alerts map[models.ID][]models.Alert
}

func (f *fakeLister) ListAlerts(_ context.Context, id models.ID) ([]models.Alert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.alerts[id]
	if !ok {
		return nil, errors.New("unknown location")
	}
	return a, nil
}

func TestForLocationsMergesNewestFirst(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	lister := &fakeLister{alerts: map[models.ID][]models.Alert{
		"1": {{ID: "a", CreatedAt: base}, {ID: "b", CreatedAt: base.Add(2 * time.Hour), IsRead: true}},
		"2": {{ID: "c", CreatedAt: base.Add(time.Hour)}},
	}}

	all, err := ForLocations(lister, "1", "2")(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	var ids []models.ID
	for _, a := range all {
		ids = append(ids, a.ID)
	}
	want := []models.ID{"b", "c", "a"}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("Expected order %v, got %v", want, ids)
		}
	}
	if all[1].LocationID != "2" {
		t.Errorf("Expected location id to be filled in, got %q", all[1].LocationID)
	}

	if unread := Unread(all); len(unread) != 2 {
		t.Errorf("Expected 2 unread alerts, got %d", len(unread))
	}

}

func TestForLocationsSkipsFailedLocations(t *testing.T) {
	lister := &fakeLister{alerts: map[models.ID][]models.Alert{
		"1": {{ID: "a"}, {ID: "b"}},
	}}

	all, err := ForLocations(lister, "1", "missing")(context.Background())
	if err != nil {
		t.Fatalf("Expected failed location to be skipped, got: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 alerts from the healthy location, got %d", len(all))
	}

	if _, err := ForLocations(lister, "missing", "gone")(context.Background()); err == nil {
		t.Error("Expected error when every location fails")
	}

	all, err = ForLocations(lister)(context.Background())
	if err != nil || len(all) != 0 {
		t.Errorf("Expected empty result without locations, got %v, %v", all, err)
	}
}

func TestDiff(t *testing.T) {
	prev := []models.Alert{{ID: "1"}, {ID: "2"}}
	next := []models.Alert{{ID: "2"}, {ID: "3"}}

	added := Diff(prev, next)
	if len(added) != 1 || added[0].ID != "3" {
		t.Errorf("Expected only alert 3 to be new, got %+v", added)
	}
}
