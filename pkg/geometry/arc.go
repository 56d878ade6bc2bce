package geometry

import (
	"math"

	"github.com/beevik/etree"
	"github.com/roadplan/xodrgen/pkg/util"
)

// Arc is a constant curvature reference line element. Positive curvature
// bends left, negative bends right.
type Arc struct {
	curvature float64
	length    float64
	angle     float64
}

func NewArc(curvature, length float64) (*Arc, error) {
	if curvature == 0 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"arc with zero curvature is a straight line, use Line instead")
	}
	if length <= 0 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"arc length must be positive, got %f", length)
	}
	return &Arc{
		curvature: curvature,
		length:    length,
		angle:     length * curvature,
	}, nil
}

// NewArcFromAngle builds the arc whose tangent sweeps the given angle.
func NewArcFromAngle(curvature, angle float64) (*Arc, error) {
	if curvature == 0 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"arc with zero curvature is a straight line, use Line instead")
	}
	return &Arc{
		curvature: curvature,
		length:    math.Abs(angle / curvature),
		angle:     angle,
	}, nil
}

func (a *Arc) Length() float64 {
	return a.length
}

func (a *Arc) Curvature() float64 {
	return a.curvature
}

// center returns the polar angle from the circle center to (x, y) and the
// center itself for the circle the arc lies on.
func arcCenter(x, y, h, curvature float64) (float64, float64, float64, float64) {
	radius := 1 / math.Abs(curvature)
	var phi0 float64
	if curvature < 0 {
		phi0 = h + math.Pi/2
	} else {
		phi0 = h - math.Pi/2
	}
	x0 := x - math.Cos(phi0)*radius
	y0 := y - math.Sin(phi0)*radius
	return phi0, x0, y0, radius
}

func (a *Arc) EndData(x, y, h float64) (float64, float64, float64, float64) {
	phi0, x0, y0, radius := arcCenter(x, y, h, a.curvature)
	newAng := a.angle + phi0
	newX := math.Cos(newAng)*radius + x0
	newY := math.Sin(newAng)*radius + y0
	return newX, newY, h + a.angle, a.length
}

// StartData walks the arc backwards by inverting the curvature and
// sweeping it from the end pose.
func (a *Arc) StartData(endX, endY, endH float64) (float64, float64, float64, float64) {
	invCurv := -a.curvature
	phi0, x0, y0, radius := arcCenter(endX, endY, endH, invCurv)
	angle := a.length * invCurv
	newAng := angle + phi0
	newX := math.Cos(newAng)*radius + x0
	newY := math.Sin(newAng)*radius + y0
	return newX, newY, endH + angle, a.length
}

func (a *Arc) PoseAt(x, y, h, s float64) (float64, float64, float64) {
	phi0, x0, y0, radius := arcCenter(x, y, h, a.curvature)
	ang := s * a.curvature
	return math.Cos(ang+phi0)*radius + x0, math.Sin(ang+phi0)*radius + y0, h + ang
}

func (a *Arc) Element() *etree.Element {
	element := etree.NewElement("arc")
	element.CreateAttr("curvature", util.FloatString(a.curvature))
	return element
}
