package render

import (
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/muhvarriel/neural-particles/core"
	"github.com/muhvarriel/neural-particles/vmath"
)

// Camera projection constants. The cloud lives roughly inside a radius-10
// sphere around the origin; the camera sits back far enough that the burst
// regime still fits on screen
const (
	cameraDistance = 26.0
	focalLength    = 18.0

	// Terminal cells are roughly twice as tall as wide
	cellAspect = 0.5

	// Slight downward tilt so flat formations read as 3D
	cameraPitch = 0.25
)

// View projects the particle buffer into terminal cells with a per-cell depth
// test and distance-dimmed 24-bit color.
//
// Thread-Safety: width/height/depth belong to the render goroutine. Other
// goroutines only set the resize flag; the regrow itself runs at the top of
// the next Frame, so Frame never races its own buffers.
//
// Scratch buffers (depth grid) are allocated on construction and on resize
// only; Frame itself allocates nothing
type View struct {
	screen tcell.Screen

	width, height int
	depth         []float32 // per-cell view depth, smaller is nearer

	resizeRequested atomic.Bool
}

// NewView creates a view sized to the screen's current dimensions
func NewView(screen tcell.Screen) *View {
	v := &View{screen: screen}
	v.resize()
	return v
}

// RequestResize marks the cell grid stale. Safe from any goroutine; the
// input poller calls this on terminal resize events
func (v *View) RequestResize() {
	v.resizeRequested.Store(true)
}

// resize re-reads screen dimensions and regrows the depth grid. Render
// goroutine only, never per frame
func (v *View) resize() {
	v.width, v.height = v.screen.Size()
	if need := v.width * v.height; need > cap(v.depth) {
		v.depth = make([]float32, need)
	} else {
		v.depth = v.depth[:v.width*v.height]
	}
}

// Frame draws one simulation frame: positions is the packed xyz buffer, colors
// the matching per-particle colors, status a single line of UI chrome
func (v *View) Frame(positions []float32, colors []core.RGB, status string) {
	if v.resizeRequested.CompareAndSwap(true, false) {
		v.resize()
	}

	v.screen.Clear()

	for i := range v.depth {
		v.depth[i] = 0 // 0 = empty cell
	}

	cx := float32(v.width) / 2
	cy := float32(v.height) / 2
	eye := vmath.Vec3{Z: cameraDistance}

	count := len(positions) / 3
	for i := 0; i < count; i++ {
		p := vmath.Vec3{X: positions[3*i], Y: positions[3*i+1], Z: positions[3*i+2]}
		p = vmath.RotateX(p, cameraPitch)

		viewZ := cameraDistance - p.Z
		if viewZ <= 1 {
			continue // behind or inside the camera plane
		}

		scale := focalLength / viewZ
		sx := int(cx + p.X*scale*2)
		sy := int(cy - p.Y*scale*cellAspect*2)
		if sx < 0 || sx >= v.width || sy < 1 || sy >= v.height {
			continue // row 0 is the status line
		}

		idx := sy*v.width + sx
		if d := v.depth[idx]; d != 0 && d <= viewZ {
			continue // a nearer particle already owns this cell
		}
		v.depth[idx] = viewZ

		v.plot(sx, sy, vmath.Mag(vmath.Sub(p, eye)), colors[i])
	}

	v.drawStatus(status)
	v.screen.Show()
}

// plot writes one particle cell, glyph and brightness graded by true distance
// from the camera eye
func (v *View) plot(x, y int, dist float32, c core.RGB) {
	// Near 1.0, far fades toward 0.35
	fade := 1.4 - dist/cameraDistance
	if fade > 1 {
		fade = 1
	}
	if fade < 0.35 {
		fade = 0.35
	}

	var glyph rune
	switch {
	case fade > 0.85:
		glyph = '●'
	case fade > 0.6:
		glyph = '•'
	default:
		glyph = '·'
	}

	c = c.Scale(fade)
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	v.screen.SetContent(x, y, glyph, nil, style)
}

// drawStatus renders the one-line readout on row 0
func (v *View) drawStatus(status string) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	col := 0
	for _, r := range status {
		if col >= v.width {
			break
		}
		v.screen.SetContent(col, 0, r, nil, style)
		col++
	}
}
