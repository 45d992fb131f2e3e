// ABOUTME: Container is an ordered collection of child Components with their regions
// ABOUTME: Children are drawn in insertion order so later ones paint over earlier ones

package tui

import "github.com/mauromedda/tfm/pkg/tui/screen"

type placed struct {
	c Component
	r Rect
}

// Container holds child components and the region each one owns.
// It is owned by the UI goroutine and not safe for concurrent use.
type Container struct {
	children []placed
}

// NewContainer creates an empty Container.
func NewContainer() *Container {
	return &Container{}
}

// Add appends a component drawn into r. Empty regions are skipped at draw time.
func (c *Container) Add(comp Component, r Rect) {
	c.children = append(c.children, placed{c: comp, r: r})
}

// Clear removes all children.
func (c *Container) Clear() {
	c.children = c.children[:0]
}

// Len returns the number of children.
func (c *Container) Len() int { return len(c.children) }

// Draw paints every child in order.
func (c *Container) Draw(s *screen.Screen) {
	for _, p := range c.children {
		if p.r.Empty() {
			continue
		}
		p.c.Draw(s, p.r)
	}
}
