package sim

import (
	"github.com/chewxy/math32"

	"github.com/muhvarriel/neural-particles/constants"
	"github.com/muhvarriel/neural-particles/core"
	"github.com/muhvarriel/neural-particles/gesture"
	"github.com/muhvarriel/neural-particles/shape"
)

// Config is the resolved tuning set for one session. Device tiering happens
// outside the engine; it only ever sees final numbers
type Config struct {
	Count          int
	BaseLerpSpeed  float32
	NoiseFrequency float32
	NoiseAmplitude float32
	RotationSpeed  float32
	HueShiftRange  float32
}

// DefaultConfig is the full-size desktop tier
func DefaultConfig() Config {
	return Config{
		Count:          constants.ParticleCountFull,
		BaseLerpSpeed:  constants.BaseLerpSpeedFull,
		NoiseFrequency: constants.NoiseFrequency,
		NoiseAmplitude: constants.NoiseAmplitude,
		RotationSpeed:  constants.RotationSpeedFull,
		HueShiftRange:  constants.HueShiftRange,
	}
}

// CompactConfig is the reduced tier for small or low-power display contexts
func CompactConfig() Config {
	cfg := DefaultConfig()
	cfg.Count = constants.ParticleCountCompact
	cfg.BaseLerpSpeed = constants.BaseLerpSpeedCompact
	cfg.RotationSpeed = constants.RotationSpeedCompact
	return cfg
}

// Engine is the per-frame particle kernel. One Step call per render tick:
// blend current positions toward the expanded target, add per-particle noise,
// recompute colors from the signal snapshot, rotate the cloud.
//
// All buffers are allocated once at construction and mutated in place; Step
// performs no allocation. The position buffer lives for the whole session and
// is never reallocated on shape change, only the target reference moves
type Engine struct {
	cfg    Config
	cache  *shape.Cache
	active shape.Identity

	pos    []float32 // packed xyz, persists across frames
	target []float32 // owned by the cache, read-only here
	colors []core.RGB

	elapsed float32 // accumulated simulation time, drives noise phase
}

// NewEngine seeds the position buffer with the initial formation so the first
// frame renders a fully formed shape rather than a collapse from origin
func NewEngine(cfg Config, initial shape.Identity) *Engine {
	cache := shape.NewCache(cfg.Count)
	target := cache.Target(initial)

	e := &Engine{
		cfg:    cfg,
		cache:  cache,
		active: initial,
		pos:    make([]float32, 3*cfg.Count),
		target: target,
		colors: make([]core.RGB, cfg.Count),
	}
	copy(e.pos, target)
	return e
}

// ActiveShape returns the current morph target identity
func (e *Engine) ActiveShape() shape.Identity {
	return e.active
}

// SetShape switches the morph target. Cheap when revisiting a formation: the
// target buffer is memoized per identity
func (e *Engine) SetShape(id shape.Identity) {
	e.active = id
	e.target = e.cache.Target(id)
}

// Positions exposes the packed xyz buffer for upload/projection. Read-only by
// convention; the renderer must not write through it
func (e *Engine) Positions() []float32 {
	return e.pos
}

// Colors exposes the per-particle color buffer computed by the last Step
func (e *Engine) Colors() []core.RGB {
	return e.colors
}

// ExpansionFactor maps pinch openness to the cloud scale multiplier. Linear up
// to the burst knee, then a steeper regime so a fully opened hand reads as an
// explosion. The slope discontinuity at the knee is intentional
func ExpansionFactor(openness float32) float32 {
	if openness <= constants.ExpansionBurstKnee {
		return constants.ExpansionBase + openness*constants.ExpansionRange
	}
	return 1.0 + (openness-constants.ExpansionBurstKnee)*constants.ExpansionBurstGain
}

// Step advances the simulation by dt seconds against one frame's signal
// snapshot. Signals are read once per frame here, never per particle
func (e *Engine) Step(dt float32, snap gesture.Snapshot) {
	e.elapsed += dt

	expansion := ExpansionFactor(snap.PinchOpenness)

	// Frame-rate-independent blend weight
	lerpW := e.cfg.BaseLerpSpeed * dt
	if lerpW > 1 {
		lerpW = 1
	}

	noisePhase := e.elapsed * e.cfg.NoiseFrequency
	count := e.cfg.Count
	invCount := 1 / float32(count)

	idle := core.HSLToRGB(constants.IdleHue, constants.IdleSaturation, constants.IdleLightness)

	for i := 0; i < count; i++ {
		// Same scalar noise on all three axes; the +i phase offset keeps the
		// cloud organic instead of pulsing in lockstep
		noise := math32.Sin(noisePhase+float32(i)) * e.cfg.NoiseAmplitude

		base := 3 * i
		for axis := 0; axis < 3; axis++ {
			tgt := e.target[base+axis]*expansion + noise
			e.pos[base+axis] += (tgt - e.pos[base+axis]) * lerpW
		}

		if snap.HandDetected {
			hue := snap.HandX + float32(i)*invCount*e.cfg.HueShiftRange
			e.colors[i] = core.HSLToRGB(hue, constants.ActiveSaturation, constants.ActiveLightness)
		} else {
			e.colors[i] = idle
		}
	}

	e.rotate(e.cfg.RotationSpeed * dt)
}

// rotate spins the whole cloud around the vertical axis
func (e *Engine) rotate(angle float32) {
	if angle == 0 {
		return
	}
	sin, cos := math32.Sincos(angle)
	for i := 0; i < e.cfg.Count; i++ {
		base := 3 * i
		x, z := e.pos[base], e.pos[base+2]
		e.pos[base] = x*cos + z*sin
		e.pos[base+2] = -x*sin + z*cos
	}
}
