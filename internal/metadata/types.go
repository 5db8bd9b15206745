package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// StringID references an entry of the localized string table. The data files
// use bare numbers for some ids and strings for others; both decode here.
type StringID string

func (s *StringID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = StringID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decoding string id: %w", err)
	}
	*s = StringID(n.String())
	return nil
}

// Cost lists the resources an entity costs. Absent resources are nil, which is
// different from a zero cost.
type Cost struct {
	Food  *int `json:"Food,omitempty"`
	Wood  *int `json:"Wood,omitempty"`
	Gold  *int `json:"Gold,omitempty"`
	Stone *int `json:"Stone,omitempty"`
}

// ClassAmount is one attack or armour value against a damage class.
type ClassAmount struct {
	Amount float64 `json:"Amount"`
	Class  int     `json:"Class"`
}

// Record is the stat sheet of one unit, building or technology. Every stat is
// optional; nil means the data file does not define it.
type Record struct {
	LanguageNameId StringID `json:"LanguageNameId"`
	LanguageHelpId StringID `json:"LanguageHelpId"`

	HP                 *float64 `json:"HP,omitempty"`
	Attack             *float64 `json:"Attack,omitempty"`
	MeleeArmor         *float64 `json:"MeleeArmor,omitempty"`
	PierceArmor        *float64 `json:"PierceArmor,omitempty"`
	GarrisonCapacity   *float64 `json:"GarrisonCapacity,omitempty"`
	Range              *float64 `json:"Range,omitempty"`
	MinRange           *float64 `json:"MinRange,omitempty"`
	LineOfSight        *float64 `json:"LineOfSight,omitempty"`
	Speed              *float64 `json:"Speed,omitempty"`
	TrainTime          *float64 `json:"TrainTime,omitempty"`
	ResearchTime       *float64 `json:"ResearchTime,omitempty"`
	FrameDelay         *float64 `json:"FrameDelay,omitempty"`
	MaxCharge          *float64 `json:"MaxCharge,omitempty"`
	RechargeRate       *float64 `json:"RechargeRate,omitempty"`
	RechargeDuration   *float64 `json:"RechargeDuration,omitempty"`
	AttackDelaySeconds *float64 `json:"AttackDelaySeconds,omitempty"`
	ReloadTime         *float64 `json:"ReloadTime,omitempty"`
	AccuracyPercent    *float64 `json:"AccuracyPercent,omitempty"`
	Repeatable         *bool    `json:"Repeatable,omitempty"`

	Cost    Cost          `json:"Cost"`
	Attacks []ClassAmount `json:"Attacks,omitempty"`
	Armours []ClassAmount `json:"Armours,omitempty"`
}

// Tables holds the stat records keyed by raw entity id.
type Tables struct {
	Units     map[string]*Record `json:"units"`
	Buildings map[string]*Record `json:"buildings"`
	Techs     map[string]*Record `json:"techs"`
}

// Strings is a localized string table for one locale.
type Strings map[string]string
