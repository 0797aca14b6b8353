package events

import (
	"github.com/muhvarriel/neural-particles/shape"
)

// Type enumerates navigation events flowing into the render loop
type Type int

const (
	// TypeShapeNext advances to the next formation
	// Trigger: rightward swipe | Consumer: engine loop
	TypeShapeNext Type = iota

	// TypeShapePrev steps back to the previous formation
	// Trigger: leftward swipe | Consumer: engine loop
	TypeShapePrev

	// TypeShapeSelect sets a formation directly, bypassing navigation order
	// Trigger: UI chrome (number keys) | Consumer: engine loop
	TypeShapeSelect
)

// Event is one navigation signal. Shape is meaningful only for TypeShapeSelect
type Event struct {
	Type  Type
	Shape shape.Identity
}
