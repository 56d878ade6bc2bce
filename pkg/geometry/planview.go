package geometry

import (
	"math"

	"github.com/beevik/etree"
	"github.com/roadplan/xodrgen/pkg/util"
)

type additionMode int

const (
	additionUnset additionMode = iota
	additionRelative
	additionFixed
)

// PlanView is the geometrical description of a road. Primitives are added
// in driving order and placed in the world frame once the start pose is
// known, either set explicitly or solved from the road network.
type PlanView struct {
	presentX float64
	presentY float64
	presentH float64
	presentS float64

	Fixed    bool
	Adjusted bool

	xStart, yStart, hStart float64
	xEnd, yEnd, hEnd       float64

	rawGeometries      []Primitive
	adjustedGeometries []*Segment
	overriddenHeadings []float64

	additionMode additionMode
}

func NewPlanView() *PlanView {
	return &PlanView{}
}

// NewPlanViewAt creates a plan view whose start pose is already fixed.
func NewPlanViewAt(x, y, h float64) *PlanView {
	pv := &PlanView{}
	pv.SetStartPoint(x, y, h)
	return pv
}

// AddGeometry appends a primitive after the previously added one. Do not
// mix with AddFixedGeometry.
func (pv *PlanView) AddGeometry(geom Primitive) error {
	if pv.additionMode == additionFixed {
		return util.WrapErrorf(nil, util.ErrMixedGeometryMethods,
			"a fixed geometry has already been added, use either AddGeometry or AddFixedGeometry")
	}
	pv.rawGeometries = append(pv.rawGeometries, geom)
	pv.additionMode = additionRelative
	return nil
}

// AddGeometryWithHeading appends a primitive and overrides the heading it
// starts with. If used, use it for every primitive of the plan view.
func (pv *PlanView) AddGeometryWithHeading(geom Primitive, heading float64) error {
	if err := pv.AddGeometry(geom); err != nil {
		return err
	}
	pv.overriddenHeadings = append(pv.overriddenHeadings, heading)
	return nil
}

// AddFixedGeometry places a primitive at an explicit pose, the s value is
// accumulated from the previously placed primitives. Do not mix with
// AddGeometry.
func (pv *PlanView) AddFixedGeometry(geom Primitive, x, y, h float64) error {
	return pv.addFixed(geom, x, y, h, pv.presentS)
}

// AddFixedGeometryAtS places a primitive at an explicit pose and s value.
// The caller is responsible for keeping the s values consistent.
func (pv *PlanView) AddFixedGeometryAtS(geom Primitive, x, y, h, s float64) error {
	return pv.addFixed(geom, x, y, h, s)
}

func (pv *PlanView) addFixed(geom Primitive, x, y, h, s float64) error {
	if pv.additionMode == additionRelative {
		return util.WrapErrorf(nil, util.ErrMixedGeometryMethods,
			"a geometry has already been added with AddGeometry, use either AddGeometry or AddFixedGeometry")
	}
	if !pv.Fixed {
		pv.xStart = x
		pv.yStart = y
		pv.hStart = h
		pv.Fixed = true
	}
	seg := newSegment(s, x, y, h, geom)
	pv.adjustedGeometries = append(pv.adjustedGeometries, seg)
	pv.xEnd, pv.yEnd, pv.hEnd, _ = seg.endData()
	pv.presentS += seg.L
	pv.Adjusted = true
	pv.additionMode = additionFixed
	return nil
}

// SetStartPoint fixes the pose the first primitive will be placed at.
func (pv *PlanView) SetStartPoint(x, y, h float64) {
	pv.presentX = x
	pv.presentY = y
	pv.presentH = h
	pv.Fixed = true
}

func (pv *PlanView) StartPoint() (float64, float64, float64) {
	return pv.xStart, pv.yStart, pv.hStart
}

func (pv *PlanView) EndPoint() (float64, float64, float64) {
	return pv.xEnd, pv.yEnd, pv.hEnd
}

// Adjust places all primitives in the world frame. With fromEnd the pose
// set with SetStartPoint is interpreted as the end of the last primitive
// facing backwards, and the plan view is built walking the primitives in
// reverse.
func (pv *PlanView) Adjust(fromEnd bool) {
	if pv.Adjusted {
		return
	}
	if !fromEnd {
		pv.xStart = pv.presentX
		pv.yStart = pv.presentY
		pv.hStart = pv.presentH

		for i := 0; i < len(pv.rawGeometries); i++ {
			if i < len(pv.overriddenHeadings) {
				pv.presentH = pv.overriddenHeadings[i]
			}
			seg := newSegment(pv.presentS, pv.presentX, pv.presentY, pv.presentH, pv.rawGeometries[i])
			pv.presentX, pv.presentY, pv.presentH, _ = seg.endData()
			pv.presentS += seg.L
			pv.adjustedGeometries = append(pv.adjustedGeometries, seg)
		}
		pv.xEnd = pv.presentX
		pv.yEnd = pv.presentY
		pv.hEnd = pv.presentH
	} else {
		pv.xEnd = pv.presentX
		pv.yEnd = pv.presentY
		pv.hEnd = pv.presentH + math.Pi

		lengths := make([]float64, 0, len(pv.rawGeometries))
		for i := len(pv.rawGeometries) - 1; i >= 0; i-- {
			seg := newSegment(pv.presentS, pv.presentX, pv.presentY, pv.presentH, pv.rawGeometries[i])
			var partial float64
			pv.presentX, pv.presentY, pv.presentH, partial = seg.startData()
			lengths = append(lengths, partial)
			pv.adjustedGeometries = append(pv.adjustedGeometries, seg)
		}

		pv.xStart = pv.presentX
		pv.yStart = pv.presentY
		pv.hStart = pv.presentH + math.Pi

		pv.presentS = 0
		for i := len(pv.adjustedGeometries) - 1; i >= 0; i-- {
			pv.adjustedGeometries[i].S = pv.presentS
			pv.presentS += lengths[i]
		}
		pv.adjustedGeometries = util.ReverseG(pv.adjustedGeometries)
	}
	pv.Adjusted = true
}

// TotalLength returns the length of all placed primitives.
func (pv *PlanView) TotalLength() float64 {
	return pv.presentS
}

// RawLength returns the summed primitive lengths, available before the
// plan view is adjusted.
func (pv *PlanView) RawLength() float64 {
	total := 0.0
	for _, geom := range pv.rawGeometries {
		total += geom.Length()
	}
	return total
}

// Segments returns the placed primitives, only valid after Adjust.
func (pv *PlanView) Segments() []*Segment {
	return pv.adjustedGeometries
}

func (pv *PlanView) Element() *etree.Element {
	element := etree.NewElement("planView")
	for _, seg := range pv.adjustedGeometries {
		element.AddChild(seg.Element())
	}
	return element
}
