package constants

// Expansion factor, derived from pinch openness once per frame
const (
	// ExpansionBase and ExpansionRange define the linear regime:
	// expansion = ExpansionBase + openness*ExpansionRange
	ExpansionBase  = 0.2
	ExpansionRange = 0.8

	// ExpansionBurstKnee is the openness above which expansion switches to the
	// accelerated regime: 1.0 + (openness-knee)*ExpansionBurstGain.
	// The rate-of-change discontinuity at the knee is intentional: a fully
	// opened hand reads as a burst, not a continuation of the linear ramp
	ExpansionBurstKnee = 0.95
	ExpansionBurstGain = 5.0
)

// Procedural noise: noise(i) = sin(elapsed*NoiseFrequency + i) * NoiseAmplitude,
// one scalar per particle added to all three axes. The +i phase offset is what
// keeps the cloud from pulsing in lockstep
const (
	NoiseFrequency = 2.0
	NoiseAmplitude = 0.3
)

// Lerp speed constants. Per-frame blend weight is BaseLerpSpeed*dt, so the
// approach rate is frame-rate independent
const (
	BaseLerpSpeedFull    = 3.0
	BaseLerpSpeedCompact = 2.0
)

// Color. Active palette is an HSL rainbow across the cloud keyed on handX;
// idle palette is a single desaturated tint
const (
	// HueShiftRange spreads per-particle hue across the cloud:
	// hue(i) = frac(handX + i/N*HueShiftRange)
	HueShiftRange = 0.5

	ActiveSaturation = 0.85
	ActiveLightness  = 0.6

	IdleHue        = 0.6
	IdleSaturation = 0.25
	IdleLightness  = 0.4
)

// Whole-cloud rotation around the vertical axis, radians per second
const (
	RotationSpeedFull    = 0.15
	RotationSpeedCompact = 0.1
)
