package shape

import (
	"math/rand"
	"time"

	"github.com/chewxy/math32"
)

// Identity selects which procedural generator defines a formation
type Identity int

const (
	Heart Identity = iota
	Sphere
	Flower
	Spiral
	identityCount
)

// All lists every formation in navigation order
var All = [...]Identity{Heart, Sphere, Flower, Spiral}

func (id Identity) String() string {
	switch id {
	case Heart:
		return "heart"
	case Sphere:
		return "sphere"
	case Flower:
		return "flower"
	case Spiral:
		return "spiral"
	default:
		return "unknown"
	}
}

// Next returns the formation after id in navigation order, wrapping
func (id Identity) Next() Identity {
	return (id + 1) % identityCount
}

// Prev returns the formation before id in navigation order, wrapping
func (id Identity) Prev() Identity {
	return (id + identityCount - 1) % identityCount
}

const (
	sphereRadius = 6.0
	tau          = 2 * math32.Pi
)

// Generate produces a packed xyz position buffer (3*count floats) for the named
// formation. Never fails: an unknown identity falls back to Sphere. Generators
// draw fresh randomness per call, so two buffers for the same formation are
// statistically similar but not bit-identical
func Generate(id Identity, count int) []float32 {
	buf := make([]float32, 3*count)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	switch id {
	case Heart:
		genHeart(buf, count, rng)
	case Flower:
		genFlower(buf, count, rng)
	case Spiral:
		genSpiral(buf, count)
	default:
		genSphere(buf, count, rng)
	}
	return buf
}

// genHeart samples the classic parametric heart curve, thickened along z
func genHeart(buf []float32, count int, rng *rand.Rand) {
	for i := 0; i < count; i++ {
		t := rng.Float32() * tau
		p := rng.Float32() * tau

		x := 16 * math32.Pow(math32.Sin(t), 3)
		y := 13*math32.Cos(t) - 5*math32.Cos(2*t) - 2*math32.Cos(3*t) - math32.Cos(4*t)
		z := 4 * math32.Sin(p) * math32.Sin(t)

		buf[3*i] = x * 0.3
		buf[3*i+1] = y*0.3 + 1
		buf[3*i+2] = z * 0.3
	}
}

// genSphere uses uniform-area sampling (phi = acos(2u-1)); naive uniform-angle
// sampling would cluster points at the poles
func genSphere(buf []float32, count int, rng *rand.Rand) {
	for i := 0; i < count; i++ {
		theta := rng.Float32() * tau
		phi := math32.Acos(2*rng.Float32() - 1)

		sinPhi := math32.Sin(phi)
		buf[3*i] = sphereRadius * sinPhi * math32.Cos(theta)
		buf[3*i+1] = sphereRadius * sinPhi * math32.Sin(theta)
		buf[3*i+2] = sphereRadius * math32.Cos(phi)
	}
}

// genFlower samples a rose curve r = 5*sin(2u). r goes negative over half the
// domain; that mirror is what produces the opposite petals
func genFlower(buf []float32, count int, rng *rand.Rand) {
	for i := 0; i < count; i++ {
		u := rng.Float32() * 2 * tau
		v := rng.Float32() * math32.Pi

		r := 5 * math32.Sin(2*u)
		sinV := math32.Sin(v)
		buf[3*i] = r * math32.Cos(u) * sinV
		buf[3*i+1] = r * math32.Sin(u) * sinV
		buf[3*i+2] = 2 * math32.Cos(v)
	}
}

// genSpiral is deterministic in the particle index
func genSpiral(buf []float32, count int) {
	for i := 0; i < count; i++ {
		f := float32(i) / float32(count)
		t := f * 20 * math32.Pi
		r := f * 8

		buf[3*i] = r * math32.Cos(t)
		buf[3*i+1] = 10 * (f - 0.5)
		buf[3*i+2] = r * math32.Sin(t)
	}
}
