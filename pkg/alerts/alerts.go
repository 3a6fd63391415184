package alerts

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/sguter90/homenet/pkg/models"
)

// Lister is the subset of the API client used to fetch alerts
type Lister interface {
	ListAlerts(ctx context.Context, locationID models.ID) ([]models.Alert, error)
}

// ForLocations returns a FetchFunc that merges the alerts of several
// locations, newest first. A location that fails is logged and left out;
// the fetch fails only when every location fails.
func ForLocations(client Lister, locationIDs ...models.ID) FetchFunc {
	return func(ctx context.Context) ([]models.Alert, error) {
		all := []models.Alert{}
		var lastErr error
		failed := 0
		for _, id := range locationIDs {
			alerts, err := client.ListAlerts(ctx, id)
			if err != nil {
				log.Warn().Err(err).Str("location_id", id.String()).Msg("Failed to fetch alerts")
				lastErr = err
				failed++
				continue
			}
			for _, a := range alerts {
				if a.LocationID == "" {
					a.LocationID = id
				}
				all = append(all, a)
			}
		}
		if failed > 0 && failed == len(locationIDs) {
			return nil, lastErr
		}
		SortNewest(all)
		return all, nil
	}
}

// Unread returns the alerts not yet marked read
func Unread(alerts []models.Alert) []models.Alert {
	unread := []models.Alert{}
	for _, a := range alerts {
		if !a.IsRead {
			unread = append(unread, a)
		}
	}
	return unread
}

// SortNewest orders alerts by creation time, newest first
func SortNewest(alerts []models.Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].CreatedAt.After(alerts[j].CreatedAt)
	})
}

// Diff returns the alerts in next whose ids are not in prev
func Diff(prev, next []models.Alert) []models.Alert {
	seen := make(map[models.ID]bool, len(prev))
	for _, a := range prev {
		seen[a.ID] = true
	}
	added := []models.Alert{}
	for _, a := range next {
		if !seen[a.ID] {
			added = append(added, a)
		}
	}
	return added
}
