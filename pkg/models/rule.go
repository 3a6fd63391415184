package models

// AutomationRule links a trigger to an action on a set of devices.
// Rules live only in local storage.
type AutomationRule struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Trigger string   `json:"trigger"`
	Action  string   `json:"action"`
	Enabled bool     `json:"enabled"`
	Devices []string `json:"devices"`
}
