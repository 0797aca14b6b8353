package core

// RGB stores explicit 8-bit color channels, decoupled from the terminal layer
type RGB struct {
	R, G, B uint8
}

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (c RGB) Blend(src RGB, alpha float32) RGB {
	if alpha <= 0 {
		return c
	}
	if alpha >= 1 {
		return src
	}
	inv := 1 - alpha
	return RGB{
		R: uint8(float32(src.R)*alpha + float32(c.R)*inv),
		G: uint8(float32(src.G)*alpha + float32(c.G)*inv),
		B: uint8(float32(src.B)*alpha + float32(c.B)*inv),
	}
}

// Scale multiplies all channels by k (k in [0,1]), used for depth dimming
func (c RGB) Scale(k float32) RGB {
	if k >= 1 {
		return c
	}
	if k <= 0 {
		return RGB{}
	}
	return RGB{
		R: uint8(float32(c.R) * k),
		G: uint8(float32(c.G) * k),
		B: uint8(float32(c.B) * k),
	}
}

// HSLToRGB converts hue/saturation/lightness (each in [0,1], hue wrapping) to
// 8-bit RGB. Allocation-free; called per particle per frame
func HSLToRGB(h, s, l float32) RGB {
	h -= float32(int(h)) // frac
	if h < 0 {
		h += 1
	}

	if s == 0 {
		v := uint8(l * 255)
		return RGB{v, v, v}
	}

	var q float32
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: uint8(hueChannel(p, q, h+1.0/3.0) * 255),
		G: uint8(hueChannel(p, q, h) * 255),
		B: uint8(hueChannel(p, q, h-1.0/3.0) * 255),
	}
}

func hueChannel(p, q, t float32) float32 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}
