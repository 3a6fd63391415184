package devserver

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sguter90/homenet/pkg/models"
)

var (
	errUsernameTaken    = errors.New("username already registered")
	errLocationExists   = errors.New("location already saved")
	errRecordNotFound   = errors.New("record not found")
	errUnknownUserStore = errors.New("unknown user")
)

type userRecord struct {
	user         models.User
	passwordHash string
}

type chatTurn struct {
	Role    string
	Content string
}

// userData holds everything owned by one account
type userData struct {
	locations     []models.Location
	devices       []models.Device
	alerts        []models.Alert
	settings      models.UserSettings
	conversations map[string][]chatTurn
}

func newUserData() *userData {
	return &userData{
		settings:      models.DefaultSettings(),
		conversations: map[string][]chatTurn{},
	}
}

// memoryStore is the devserver's in-memory database
type memoryStore struct {
	mu     sync.RWMutex
	users  map[string]*userRecord
	byID   map[models.ID]*userRecord
	data   map[models.ID]*userData
	nextID int64
	now    func() time.Time
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		users: map[string]*userRecord{},
		byID:  map[models.ID]*userRecord{},
		data:  map[models.ID]*userData{},
		now:   time.Now,
	}
}

// newID hands out sequential numeric identifiers. Caller holds mu.
func (s *memoryStore) newID() models.ID {
	s.nextID++
	return models.ID(strconv.FormatInt(s.nextID, 10))
}

func (s *memoryStore) createUser(username, email, passwordHash string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(username)
	if _, exists := s.users[key]; exists {
		return models.User{}, errUsernameTaken
	}

	rec := &userRecord{
		user: models.User{
			ID:        models.ID(uuid.NewString()),
			Username:  username,
			Email:     email,
			CreatedAt: s.now().UTC(),
		},
		passwordHash: passwordHash,
	}
	s.users[key] = rec
	s.byID[rec.user.ID] = rec
	s.data[rec.user.ID] = newUserData()

	return rec.user, nil
}

func (s *memoryStore) userByName(username string) (userRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.users[strings.ToLower(username)]
	if !ok {
		return userRecord{}, false
	}
	return *rec, true
}

func (s *memoryStore) userByID(id models.ID) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		return models.User{}, false
	}
	return rec.user, true
}

// owned returns the data of a user. Caller holds mu.
func (s *memoryStore) owned(uid models.ID) (*userData, error) {
	d, ok := s.data[uid]
	if !ok {
		return nil, errUnknownUserStore
	}
	return d, nil
}

func (s *memoryStore) locations(uid models.ID) ([]models.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, err := s.owned(uid)
	if err != nil {
		return nil, err
	}
	return append([]models.Location{}, d.locations...), nil
}

func (s *memoryStore) location(uid, id models.ID) (models.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, err := s.owned(uid)
	if err != nil {
		return models.Location{}, err
	}
	for _, l := range d.locations {
		if l.ID == id {
			return l, nil
		}
	}
	return models.Location{}, errRecordNotFound
}

func (s *memoryStore) addLocation(uid models.ID, req models.LocationCreate) (models.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.owned(uid)
	if err != nil {
		return models.Location{}, err
	}
	for _, l := range d.locations {
		if strings.EqualFold(l.Name, req.Name) && strings.EqualFold(l.Country, req.Country) {
			return models.Location{}, errLocationExists
		}
	}

	loc := models.Location{
		ID:        s.newID(),
		Name:      req.Name,
		Country:   req.Country,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Timezone:  req.Timezone,
		CreatedAt: s.now().UTC(),
	}
	d.locations = append(d.locations, loc)
	return loc, nil
}

// deleteLocation removes a location together with its alerts
func (s *memoryStore) deleteLocation(uid, id models.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.owned(uid)
	if err != nil {
		return err
	}
	idx := -1
	for i, l := range d.locations {
		if l.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errRecordNotFound
	}
	d.locations = append(d.locations[:idx], d.locations[idx+1:]...)

	kept := d.alerts[:0]
	for _, a := range d.alerts {
		if a.LocationID != id {
			kept = append(kept, a)
		}
	}
	d.alerts = kept
	return nil
}

func (s *memoryStore) devices(uid models.ID) ([]models.Device, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, err := s.owned(uid)
	if err != nil {
		return nil, err
	}
	return append([]models.Device{}, d.devices...), nil
}

func (s *memoryStore) addDevice(uid models.ID, device models.Device) (models.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.owned(uid)
	if err != nil {
		return models.Device{}, err
	}
	device.ID = s.newID()
	device.CreatedAt = s.now().UTC()
	d.devices = append(d.devices, device)
	return device, nil
}

// updateDevice applies fn to the stored device under the write lock
func (s *memoryStore) updateDevice(uid, id models.ID, fn func(models.Device) (models.Device, error)) (models.Device, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.owned(uid)
	if err != nil {
		return models.Device{}, err
	}
	for i, dev := range d.devices {
		if dev.ID != id {
			continue
		}
		updated, err := fn(dev)
		if err != nil {
			return models.Device{}, err
		}
		updated.ID = dev.ID
		updated.CreatedAt = dev.CreatedAt
		d.devices[i] = updated
		return updated, nil
	}
	return models.Device{}, errRecordNotFound
}

func (s *memoryStore) deleteDevice(uid, id models.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.owned(uid)
	if err != nil {
		return err
	}
	for i, dev := range d.devices {
		if dev.ID == id {
			d.devices = append(d.devices[:i], d.devices[i+1:]...)
			return nil
		}
	}
	return errRecordNotFound
}

// alerts returns the location's alerts, newest first
func (s *memoryStore) alerts(uid, locationID models.ID) ([]models.Alert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, err := s.owned(uid)
	if err != nil {
		return nil, err
	}
	out := []models.Alert{}
	for _, a := range d.alerts {
		if locationID == "" || a.LocationID == locationID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// addAlerts stores new alerts and assigns their ids
func (s *memoryStore) addAlerts(uid models.ID, alerts []models.Alert) ([]models.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.owned(uid)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	out := make([]models.Alert, 0, len(alerts))
	for _, a := range alerts {
		a.ID = s.newID()
		a.CreatedAt = now
		d.alerts = append(d.alerts, a)
		out = append(out, a)
	}
	return out, nil
}

func (s *memoryStore) markAlertRead(uid, alertID models.ID) (models.Alert, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.owned(uid)
	if err != nil {
		return models.Alert{}, err
	}
	for i := range d.alerts {
		if d.alerts[i].ID == alertID {
			d.alerts[i].IsRead = true
			return d.alerts[i], nil
		}
	}
	return models.Alert{}, errRecordNotFound
}

func (s *memoryStore) settings(uid models.ID) (models.UserSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, err := s.owned(uid)
	if err != nil {
		return models.UserSettings{}, err
	}
	return d.settings, nil
}

func (s *memoryStore) setSettings(uid models.ID, settings models.UserSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.owned(uid)
	if err != nil {
		return err
	}
	d.settings = settings
	return nil
}

// appendTurns records chat turns under a conversation
func (s *memoryStore) appendTurns(uid models.ID, conversationID string, turns ...chatTurn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.owned(uid)
	if err != nil {
		return err
	}
	d.conversations[conversationID] = append(d.conversations[conversationID], turns...)
	return nil
}

// conversation returns the recorded turns of a conversation
func (s *memoryStore) conversation(uid models.ID, conversationID string) []chatTurn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, err := s.owned(uid)
	if err != nil {
		return nil
	}
	return append([]chatTurn{}, d.conversations[conversationID]...)
}

// wipe deletes every record owned by the user. The account itself stays.
func (s *memoryStore) wipe(uid models.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.owned(uid); err != nil {
		return err
	}
	s.data[uid] = newUserData()
	return nil
}
