// ABOUTME: Layout primitives: Rect regions of the screen and Components that paint into them
// ABOUTME: Container draws an ordered set of components, each in its own region

package tui

import "github.com/mauromedda/tfm/pkg/tui/screen"

// Rect is a screen region: top-left (X, Y) and size W x H.
type Rect struct {
	X, Y int
	W, H int
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// SplitH splits r into a left part of width left and the remainder,
// separated by gap columns.
func (r Rect) SplitH(left, gap int) (Rect, Rect) {
	left = max(0, min(left, r.W))
	rightX := r.X + left + gap
	return Rect{X: r.X, Y: r.Y, W: left, H: r.H},
		Rect{X: rightX, Y: r.Y, W: max(0, r.X+r.W-rightX), H: r.H}
}

// Row returns the single-row Rect at offset dy inside r.
func (r Rect) Row(dy int) Rect {
	return Rect{X: r.X, Y: r.Y + dy, W: r.W, H: 1}
}

// Component paints itself into a region of the base layer. Implementations
// must stay inside r; the Screen clips anything beyond its own bounds only.
type Component interface {
	Draw(s *screen.Screen, r Rect)
}

// ComponentFunc adapts a function to Component.
type ComponentFunc func(s *screen.Screen, r Rect)

// Draw calls f.
func (f ComponentFunc) Draw(s *screen.Screen, r Rect) { f(s, r) }

// Fill paints every cell of r with ch in style.
func Fill(s *screen.Screen, r Rect, ch rune, style string) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			s.Set(y, x, ch, style)
		}
	}
}
