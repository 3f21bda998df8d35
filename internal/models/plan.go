// ABOUTME: UserPlan model and the static free/premium entitlement table.
// ABOUTME: Plans are always rebuilt from their type; limits cannot be set per field.
package models

import (
	"encoding/json"
	"fmt"
)

// PlanType is the subscription tier.
type PlanType string

const (
	PlanFree    PlanType = "free"
	PlanPremium PlanType = "premium"
)

// UnlimitedHabits is the HabitsLimit of plans without a quota.
const UnlimitedHabits = -1

// FreeHabitsLimit is the number of habits the free plan allows.
const FreeHabitsLimit = 5

// IsValid reports whether t is a known plan type.
func (t PlanType) IsValid() bool {
	return t == PlanFree || t == PlanPremium
}

// ParsePlanType converts a string to a PlanType.
func ParsePlanType(s string) (PlanType, error) {
	t := PlanType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("unknown plan: %q (want free or premium)", s)
	}
	return t, nil
}

// Features are the capability flags a plan unlocks.
type Features struct {
	UnlimitedHabits bool `json:"unlimitedHabits"`
	Integrations    bool `json:"integrations"`
	AdvancedStats   bool `json:"advancedStats"`
	CustomReminders bool `json:"customReminders"`
	ExportData      bool `json:"exportData"`
	Themes          bool `json:"themes"`
}

// UserPlan is the active plan of the installation.
type UserPlan struct {
	Type        PlanType
	HabitsLimit int
	Features    Features
}

// FreePlan is the default plan.
var FreePlan = UserPlan{
	Type:        PlanFree,
	HabitsLimit: FreeHabitsLimit,
}

// PremiumPlan unlocks every feature and removes the habit quota.
var PremiumPlan = UserPlan{
	Type:        PlanPremium,
	HabitsLimit: UnlimitedHabits,
	Features: Features{
		UnlimitedHabits: true,
		Integrations:    true,
		AdvancedStats:   true,
		CustomReminders: true,
		ExportData:      true,
		Themes:          true,
	},
}

// PlanFor returns the plan for a type. Unknown types get the free plan.
func PlanFor(t PlanType) UserPlan {
	if t == PlanPremium {
		return PremiumPlan
	}
	return FreePlan
}

// IsUnlimited reports whether the plan has no habit quota.
func (p UserPlan) IsUnlimited() bool {
	return p.HabitsLimit == UnlimitedHabits
}

// CanCreate reports whether a new habit fits when count habits already exist.
func (p UserPlan) CanCreate(count int) bool {
	return p.IsUnlimited() || count < p.HabitsLimit
}

type planJSON struct {
	Type        PlanType `json:"type"`
	HabitsLimit *int     `json:"habitsLimit"`
	Features    Features `json:"features"`
}

// MarshalJSON writes the plan; an unlimited quota is written as null,
// which is how the web app serialized Infinity.
func (p UserPlan) MarshalJSON() ([]byte, error) {
	out := planJSON{Type: p.Type, Features: p.Features}
	if !p.IsUnlimited() {
		limit := p.HabitsLimit
		out.HabitsLimit = &limit
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads only the plan type and rebuilds the rest from the table.
func (p *UserPlan) UnmarshalJSON(data []byte) error {
	var raw planJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = PlanFor(raw.Type)
	return nil
}
