package scene

import (
	"fmt"

	"github.com/Faultbox/geoclip/pkg/math"
)

// Node is anything that participates in scene traversal.
// A nil frame is a programmer error; implementations report it
// immediately instead of guessing.
type Node interface {
	Update(f *Frame) error
	Draw(f *Frame) error
}

// Group is an ordered list of child nodes.
type Group struct {
	Name     string
	children []Node
}

// NewGroup creates an empty named group.
func NewGroup(name string) *Group {
	return &Group{Name: name}
}

// Add appends children to the group.
func (g *Group) Add(nodes ...Node) {
	g.children = append(g.children, nodes...)
}

// Remove detaches the first occurrence of node.
func (g *Group) Remove(node Node) {
	for i, c := range g.children {
		if c == node {
			g.children = append(g.children[:i], g.children[i+1:]...)
			return
		}
	}
}

// Children returns the current child list.
func (g *Group) Children() []Node {
	return g.children
}

// Update updates all children in order.
func (g *Group) Update(f *Frame) error {
	if f == nil {
		return fmt.Errorf("group %q: nil frame", g.Name)
	}
	for _, c := range g.children {
		if err := c.Update(f); err != nil {
			return fmt.Errorf("group %q: %w", g.Name, err)
		}
	}
	return nil
}

// Draw draws all children in order.
func (g *Group) Draw(f *Frame) error {
	if f == nil {
		return fmt.Errorf("group %q: nil frame", g.Name)
	}
	for _, c := range g.children {
		if err := c.Draw(f); err != nil {
			return fmt.Errorf("group %q: %w", g.Name, err)
		}
	}
	return nil
}

// Transform applies a local matrix to its children for the duration of
// the traversal, restoring the previous model transform afterwards.
type Transform struct {
	Group
	Local math.Mat4
}

// NewTransform creates a transform node with an identity local matrix.
func NewTransform(name string) *Transform {
	t := &Transform{Local: math.Identity()}
	t.Name = name
	return t
}

// Update traverses children under the composed model transform.
func (t *Transform) Update(f *Frame) error {
	if f == nil {
		return fmt.Errorf("transform %q: nil frame", t.Name)
	}
	prev := f.Model
	f.Model = prev.Mul(t.Local)
	err := t.Group.Update(f)
	f.Model = prev
	return err
}

// Draw traverses children under the composed model transform.
func (t *Transform) Draw(f *Frame) error {
	if f == nil {
		return fmt.Errorf("transform %q: nil frame", t.Name)
	}
	prev := f.Model
	f.Model = prev.Mul(t.Local)
	err := t.Group.Draw(f)
	f.Model = prev
	return err
}
