// Package availability computes which tech tree nodes a faction can use and how
// the renderer should draw each of them.
//
// Every faction switch is a full re-evaluation: the generic pass marks nodes
// enabled or disabled by membership, then the unique pass reskins the four
// generic unique slots with the faction's own units and technologies.
package availability

import (
	"fmt"
	"strings"
)

// State is the visual availability of one node.
type State int

const (
	Enabled State = iota
	Disabled
	UniqueReskin
)

var stateNames = map[State]string{
	Enabled:      "ENABLED",
	Disabled:     "DISABLED",
	UniqueReskin: "UNIQUE_RESKIN",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for st, name := range stateNames {
		if strings.EqualFold(name, string(text)) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("availability: unknown state %q", text)
}

// Layers is the opacity of the two overlay layers drawn over a node: the gray
// mask and the "unavailable" cross icon.
type Layers struct {
	MaskOpacity  float64 `json:"mask_opacity"`
	CrossOpacity float64 `json:"cross_opacity"`
}

// LayersFor maps a state onto the overlay layers.
func LayersFor(s State) Layers {
	if s == Disabled {
		return Layers{MaskOpacity: 0.2, CrossOpacity: 1}
	}
	return Layers{}
}
