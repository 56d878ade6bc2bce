package geometry

import (
	"math"

	"github.com/beevik/etree"
	"github.com/roadplan/xodrgen/pkg/util"
)

// Spiral is an euler spiral reference line element whose curvature changes
// linearly from curvStart to curvEnd over its length.
type Spiral struct {
	curvStart float64
	curvEnd   float64
	length    float64
}

func NewSpiral(curvStart, curvEnd, length float64) (*Spiral, error) {
	if length <= 0 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"spiral length must be positive, got %f", length)
	}
	return &Spiral{curvStart: curvStart, curvEnd: curvEnd, length: length}, nil
}

// NewSpiralFromAngle derives the spiral length from the tangent angle it
// should sweep.
func NewSpiralFromAngle(curvStart, curvEnd, angle float64) (*Spiral, error) {
	maxCurv := math.Max(math.Abs(curvStart), math.Abs(curvEnd))
	if maxCurv == 0 {
		return nil, util.WrapErrorf(nil, util.ErrNotEnoughArguments,
			"spiral with zero curvature at both ends cannot be built from an angle")
	}
	return &Spiral{
		curvStart: curvStart,
		curvEnd:   curvEnd,
		length:    2 * math.Abs(angle) / maxCurv,
	}, nil
}

// NewSpiralFromCDot derives the spiral length from the curvature rate.
func NewSpiralFromCDot(curvStart, curvEnd, cdot float64) (*Spiral, error) {
	if cdot == 0 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"spiral curvature rate must be nonzero")
	}
	length := (curvEnd - curvStart) / cdot
	if length <= 0 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"curvature rate %f does not reach %f from %f", cdot, curvEnd, curvStart)
	}
	return &Spiral{curvStart: curvStart, curvEnd: curvEnd, length: length}, nil
}

func (sp *Spiral) Length() float64 {
	return sp.length
}

func (sp *Spiral) CurvStart() float64 {
	return sp.curvStart
}

func (sp *Spiral) CurvEnd() float64 {
	return sp.curvEnd
}

func (sp *Spiral) EndData(x, y, h float64) (float64, float64, float64, float64) {
	cdot := (sp.curvEnd - sp.curvStart) / sp.length
	newX, newY, newH := clothoidPose(x, y, h, sp.curvStart, cdot, sp.length)
	return newX, newY, newH, sp.length
}

// StartData traverses the mirrored spiral, starting with the negated end
// curvature, which lands on the start pose of the forward spiral.
func (sp *Spiral) StartData(endX, endY, endH float64) (float64, float64, float64, float64) {
	cdot := -(sp.curvStart - sp.curvEnd) / sp.length
	newX, newY, newH := clothoidPose(endX, endY, endH, -sp.curvEnd, cdot, sp.length)
	return newX, newY, newH, sp.length
}

func (sp *Spiral) PoseAt(x, y, h, s float64) (float64, float64, float64) {
	cdot := (sp.curvEnd - sp.curvStart) / sp.length
	return clothoidPose(x, y, h, sp.curvStart, cdot, s)
}

func (sp *Spiral) Element() *etree.Element {
	element := etree.NewElement("spiral")
	element.CreateAttr("curvStart", util.FloatString(sp.curvStart))
	element.CreateAttr("curvEnd", util.FloatString(sp.curvEnd))
	return element
}
