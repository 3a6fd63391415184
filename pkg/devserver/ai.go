package devserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/sguter90/homenet/pkg/models"
	"github.com/sguter90/homenet/pkg/weather"
)

// maxWeatherMentions bounds the locations summarised in one chat reply
const maxWeatherMentions = 3

// Insight thresholds
const (
	warmThermostat = 75
	manyLightsOn   = 3
)

var (
	weatherKeywords = []string{"weather", "temperature", "rain", "forecast", "hot", "cold", "wind"}
	deviceKeywords  = []string{"device", "light", "thermostat", "lock", "blind", "plug", "camera"}
	alertKeywords   = []string{"alert", "warning", "advisory"}
	greetings       = []string{"hello", "hi", "hey"}
)

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// snapshot is the user context the assistant answers from
type snapshot struct {
	locations []models.Location
	devices   []models.Device
	unread    int
	unit      weather.TemperatureUnit
}

func (s *Server) snapshot(uid models.ID) (snapshot, error) {
	var snap snapshot
	var err error

	if snap.locations, err = s.store.locations(uid); err != nil {
		return snap, err
	}
	if snap.devices, err = s.store.devices(uid); err != nil {
		return snap, err
	}
	alerts, err := s.store.alerts(uid, "")
	if err != nil {
		return snap, err
	}
	for _, a := range alerts {
		if !a.IsRead {
			snap.unread++
		}
	}
	settings, err := s.store.settings(uid)
	if err != nil {
		return snap, err
	}
	snap.unit = weather.Fahrenheit
	if settings.UnitSystem == models.UnitSystemMetric {
		snap.unit = weather.Celsius
	}
	return snap, nil
}

// reply builds a canned answer from keywords in the message
func reply(message string, snap snapshot) string {
	msg := strings.ToLower(message)

	switch {
	case containsAny(msg, weatherKeywords):
		if len(snap.locations) == 0 {
			return "You haven't saved any locations yet. Add one to get weather updates."
		}
		var parts []string
		for i, loc := range snap.locations {
			if i == maxWeatherMentions {
				break
			}
			cur := weather.GenerateMockWeather(loc.ID.String())
			parts = append(parts, fmt.Sprintf("%s: %s and %s",
				loc.Name, weather.FormatTemperature(cur.Temperature, snap.unit), strings.ToLower(cur.Condition)))
		}
		return "Current conditions. " + strings.Join(parts, "; ") + "."

	case containsAny(msg, deviceKeywords):
		if len(snap.devices) == 0 {
			return "You don't have any devices yet. Add one from the devices page."
		}
		var on []string
		for _, d := range snap.devices {
			if d.IsOn() {
				on = append(on, d.Name)
			}
		}
		if len(on) == 0 {
			return fmt.Sprintf("You have %d devices and all of them are off.", len(snap.devices))
		}
		return fmt.Sprintf("You have %d devices, %d on: %s.", len(snap.devices), len(on), strings.Join(on, ", "))

	case containsAny(msg, alertKeywords):
		if snap.unread == 0 {
			return "You have no unread weather alerts."
		}
		return fmt.Sprintf("You have %d unread weather alerts. Check the alerts page for details.", snap.unread)

	case containsAny(msg, greetings):
		return "Hello! I can help with the weather at your locations, your smart devices and your alerts."
	}

	return "I can answer questions about the weather at your saved locations, the state of your devices and your weather alerts. What would you like to know?"
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	var req models.ChatRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusUnprocessableEntity, "message is required")
		return
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	snap, err := s.snapshot(user.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	answer := reply(req.Message, snap)

	if err := s.store.appendTurns(user.ID, conversationID,
		chatTurn{Role: "user", Content: req.Message},
		chatTurn{Role: "assistant", Content: answer},
	); err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Response: answer, ConversationID: conversationID})
}

// insights derives suggestions from the user's weather, devices and alerts
func insights(snap snapshot) []models.Insight {
	out := []models.Insight{}

	for _, loc := range snap.locations {
		cur := weather.GenerateMockWeather(loc.ID.String())
		if cur.Temperature >= HeatThreshold {
			out = append(out, models.Insight{
				Type:     "weather",
				Title:    "Hot day in " + loc.Name,
				Message:  fmt.Sprintf("It is %s. Consider pre-cooling your home before the afternoon peak.", weather.FormatTemperature(cur.Temperature, snap.unit)),
				Priority: "high",
			})
		}
		if cur.PrecipitationChance >= PrecipitationThreshold {
			out = append(out, models.Insight{
				Type:     "weather",
				Title:    "Rain expected in " + loc.Name,
				Message:  fmt.Sprintf("%d%% chance of precipitation. Close the blinds and windows.", cur.PrecipitationChance),
				Priority: "medium",
			})
		}
	}

	lightsOn := 0
	for _, d := range snap.devices {
		switch st := d.State.(type) {
		case models.ThermostatState:
			if d.IsOn() && st.Value > warmThermostat {
				out = append(out, models.Insight{
					Type:     "energy",
					Title:    "Lower " + d.Name,
					Message:  fmt.Sprintf("%s is set to %d°F. Lowering it a few degrees saves energy.", d.Name, st.Value),
					Priority: "medium",
				})
			}
		case models.LightState:
			if d.IsOn() {
				lightsOn++
			}
		case models.LockState:
			if !st.Locked {
				out = append(out, models.Insight{
					Type:     "security",
					Title:    d.Name + " is unlocked",
					Message:  "Lock it if nobody is home.",
					Priority: "high",
				})
			}
		}
	}
	if lightsOn >= manyLightsOn {
		out = append(out, models.Insight{
			Type:     "energy",
			Title:    fmt.Sprintf("%d lights are on", lightsOn),
			Message:  "Turn off lights in empty rooms to save energy.",
			Priority: "low",
		})
	}

	if snap.unread > 0 {
		out = append(out, models.Insight{
			Type:     "alerts",
			Title:    "Unread weather alerts",
			Message:  fmt.Sprintf("You have %d unread alerts.", snap.unread),
			Priority: "medium",
		})
	}

	if len(out) == 0 {
		out = append(out, models.Insight{
			Type:     "general",
			Title:    "All good",
			Message:  "Everything at home looks normal.",
			Priority: "low",
		})
	}
	return out
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	user, _ := userFromContext(r.Context())

	snap, err := s.snapshot(user.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.InsightsResponse{Insights: insights(snap)})
}
