// Package geometry implements the plan view primitives of an opendrive
// reference line: lines, arcs, euler spirals and cubic parameter
// polynomials, plus the PlanView that stitches them together.
package geometry

import (
	"math"

	"github.com/beevik/etree"
	"github.com/roadplan/xodrgen/pkg/util"
)

// Primitive is a single reference line element. A primitive only knows its
// intrinsic shape, placement in the world frame happens when it is wrapped
// in a Segment.
type Primitive interface {
	// EndData returns the end pose and length of the primitive when its
	// start is placed at (x, y) with heading h.
	EndData(x, y, h float64) (float64, float64, float64, float64)
	// StartData returns the start pose and length of the inverse primitive
	// when its end is placed at (x, y) with heading h.
	StartData(x, y, h float64) (float64, float64, float64, float64)
	// PoseAt returns the pose s meters along the primitive placed at
	// (x, y) with heading h.
	PoseAt(x, y, h, s float64) (float64, float64, float64)
	Length() float64
	Element() *etree.Element
}

// Segment is a primitive placed at a concrete pose along the reference
// line, matching one <geometry> entry of the plan view.
type Segment struct {
	S       float64
	X       float64
	Y       float64
	Heading float64
	L       float64
	Prim    Primitive
}

func newSegment(s, x, y, heading float64, prim Primitive) *Segment {
	_, _, _, length := prim.EndData(x, y, heading)
	return &Segment{
		S:       s,
		X:       x,
		Y:       y,
		Heading: heading,
		L:       length,
		Prim:    prim,
	}
}

func (g *Segment) endData() (float64, float64, float64, float64) {
	return g.Prim.EndData(g.X, g.Y, g.Heading)
}

// startData re-anchors the segment at the start pose of the inverse
// primitive. The stored heading is flipped back to driving direction, the
// s value is left for the caller to fill in.
func (g *Segment) startData() (float64, float64, float64, float64) {
	x, y, h, length := g.Prim.StartData(g.X, g.Y, g.Heading)
	g.X = x
	g.Y = y
	g.Heading = h + math.Pi
	g.L = length
	return x, y, h, length
}

// Pose returns the world pose at local arc length s from the segment
// start.
func (g *Segment) Pose(s float64) (float64, float64, float64) {
	return g.Prim.PoseAt(g.X, g.Y, g.Heading, s)
}

func (g *Segment) Element() *etree.Element {
	element := etree.NewElement("geometry")
	element.CreateAttr("s", util.FloatString(g.S))
	element.CreateAttr("x", util.FloatString(g.X))
	element.CreateAttr("y", util.FloatString(g.Y))
	element.CreateAttr("hdg", util.FloatString(g.Heading))
	element.CreateAttr("length", util.FloatString(g.L))
	element.AddChild(g.Prim.Element())
	return element
}
