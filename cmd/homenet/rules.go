package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sguter90/homenet/pkg/models"
)

var errRuleNotFound = errors.New("rule not found")

// addRule appends a new enabled rule with a fresh id
func addRule(rules []models.AutomationRule, name, trigger, action string, deviceIDs []string) ([]models.AutomationRule, models.AutomationRule, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return rules, models.AutomationRule{}, errors.New("rule name is required")
	}
	if strings.TrimSpace(trigger) == "" || strings.TrimSpace(action) == "" {
		return rules, models.AutomationRule{}, errors.New("trigger and action are required")
	}
	if deviceIDs == nil {
		deviceIDs = []string{}
	}

	rule := models.AutomationRule{
		ID:      uuid.New().String(),
		Name:    name,
		Trigger: trigger,
		Action:  action,
		Enabled: true,
		Devices: deviceIDs,
	}
	return append(rules, rule), rule, nil
}

// setRuleEnabled returns a copy of rules with the rule's enabled flag changed
func setRuleEnabled(rules []models.AutomationRule, id string, enabled bool) ([]models.AutomationRule, error) {
	out := make([]models.AutomationRule, len(rules))
	copy(out, rules)
	for i := range out {
		if out[i].ID == id {
			out[i].Enabled = enabled
			return out, nil
		}
	}
	return rules, fmt.Errorf("%w: %s", errRuleNotFound, id)
}

// deleteRule returns rules without the given rule
func deleteRule(rules []models.AutomationRule, id string) ([]models.AutomationRule, error) {
	out := make([]models.AutomationRule, 0, len(rules))
	found := false
	for _, r := range rules {
		if r.ID == id {
			found = true
			continue
		}
		out = append(out, r)
	}
	if !found {
		return rules, fmt.Errorf("%w: %s", errRuleNotFound, id)
	}
	return out, nil
}
