package geometry

import (
	"math"

	"github.com/beevik/etree"
	"github.com/roadplan/xodrgen/pkg/util"
)

type PRange string

const (
	PRangeNormalized PRange = "normalized"
	PRangeArcLength  PRange = "arcLength"
)

// ParamPoly3 describes the reference line with two cubic polynomials in a
// local (u, v) frame, u along the road and v normal to it:
//
//	u(p) = aU + bU*p + cU*p^2 + dU*p^3
//	v(p) = aV + bV*p + cV*p^2 + dV*p^3
type ParamPoly3 struct {
	au, bu, cu, du float64
	av, bv, cv, dv float64
	prange         PRange
	length         float64
}

// NewParamPoly3 builds a normalized parameter polynomial, p runs over
// [0, 1] and the length is integrated from the coefficients.
func NewParamPoly3(au, bu, cu, du, av, bv, cv, dv float64) *ParamPoly3 {
	pp := &ParamPoly3{
		au: au, bu: bu, cu: cu, du: du,
		av: av, bv: bv, cv: cv, dv: dv,
		prange: PRangeNormalized,
	}
	pp.length = integrate(pp.speed, 0, 1)
	return pp
}

// NewParamPoly3ArcLength builds a parameter polynomial where p runs over
// [0, length].
func NewParamPoly3ArcLength(au, bu, cu, du, av, bv, cv, dv, length float64) (*ParamPoly3, error) {
	if length <= 0 {
		return nil, util.WrapErrorf(nil, util.ErrNotEnoughArguments,
			"arcLength parameter polynomial needs a positive length, got %f", length)
	}
	return &ParamPoly3{
		au: au, bu: bu, cu: cu, du: du,
		av: av, bv: bv, cv: cv, dv: dv,
		prange: PRangeArcLength,
		length: length,
	}, nil
}

// speed is the norm of the (u, v) derivative, the integrand of the arc
// length.
func (pp *ParamPoly3) speed(p float64) float64 {
	du := 3*pp.du*p*p + 2*pp.cu*p + pp.bu
	dv := 3*pp.dv*p*p + 2*pp.cv*p + pp.bv
	return math.Sqrt(du*du + dv*dv)
}

func (pp *ParamPoly3) Length() float64 {
	return pp.length
}

func (pp *ParamPoly3) endParameter() float64 {
	if pp.prange == PRangeNormalized {
		return 1
	}
	return pp.length
}

func (pp *ParamPoly3) eval(p float64) (float64, float64, float64) {
	u := pp.au + pp.bu*p + pp.cu*p*p + pp.du*p*p*p
	v := pp.av + pp.bv*p + pp.cv*p*p + pp.dv*p*p*p
	dh := math.Atan2(pp.bv+2*pp.cv*p+3*pp.dv*p*p, pp.bu+2*pp.cu*p+3*pp.du*p*p)
	return u, v, dh
}

func (pp *ParamPoly3) EndData(x, y, h float64) (float64, float64, float64, float64) {
	u, v, dh := pp.eval(pp.endParameter())
	newX := x + u*math.Cos(h) - math.Sin(h)*v
	newY := y + u*math.Sin(h) + math.Cos(h)*v
	return newX, newY, h + dh, pp.length
}

func (pp *ParamPoly3) StartData(endX, endY, endH float64) (float64, float64, float64, float64) {
	u, v, dh := pp.eval(pp.endParameter())
	newX := endX - (u*math.Cos(endH) - math.Sin(endH)*v)
	newY := endY - (u*math.Sin(endH) + math.Cos(endH)*v)
	return newX, newY, endH - dh, pp.length
}

func (pp *ParamPoly3) PoseAt(x, y, h, s float64) (float64, float64, float64) {
	p := s
	if pp.prange == PRangeNormalized {
		p = s / pp.length
	}
	u, v, dh := pp.eval(p)
	return x + u*math.Cos(h) - math.Sin(h)*v,
		y + u*math.Sin(h) + math.Cos(h)*v,
		h + dh
}

func (pp *ParamPoly3) Element() *etree.Element {
	element := etree.NewElement("paramPoly3")
	element.CreateAttr("aU", util.FloatString(pp.au))
	element.CreateAttr("bU", util.FloatString(pp.bu))
	element.CreateAttr("cU", util.FloatString(pp.cu))
	element.CreateAttr("dU", util.FloatString(pp.du))
	element.CreateAttr("aV", util.FloatString(pp.av))
	element.CreateAttr("bV", util.FloatString(pp.bv))
	element.CreateAttr("cV", util.FloatString(pp.cv))
	element.CreateAttr("dV", util.FloatString(pp.dv))
	element.CreateAttr("pRange", string(pp.prange))
	return element
}
