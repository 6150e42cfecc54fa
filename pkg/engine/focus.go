// pkg/engine/focus.go
package engine

import (
	"github.com/opd-ai/go-orrery/pkg/entity"
)

// FocusKind is the category of camera focus target
type FocusKind int

const (
	FocusFree FocusKind = iota
	FocusShip
	FocusBody
)

// String returns the focus kind name
func (k FocusKind) String() string {
	switch k {
	case FocusFree:
		return "Free"
	case FocusShip:
		return "Ship"
	case FocusBody:
		return "Body"
	default:
		return "Unknown"
	}
}

// FocusTarget is the UI-selected camera target: free flight, the ship,
// or one body. At most one is active at a time; BodyID is meaningful
// only when Kind is FocusBody.
type FocusTarget struct {
	Kind   FocusKind
	BodyID entity.ID
}

// FreeFocus returns the free-camera target
func FreeFocus() FocusTarget {
	return FocusTarget{Kind: FocusFree}
}

// ShipFocus returns the ship-following target
func ShipFocus() FocusTarget {
	return FocusTarget{Kind: FocusShip}
}

// BodyFocus returns a target following the given body
func BodyFocus(id entity.ID) FocusTarget {
	return FocusTarget{Kind: FocusBody, BodyID: id}
}
