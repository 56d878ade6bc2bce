package geometry

import (
	"math"

	"github.com/beevik/etree"
)

// Line is a straight reference line element.
type Line struct {
	length float64
}

func NewLine(length float64) *Line {
	return &Line{length: length}
}

func (l *Line) Length() float64 {
	return l.length
}

func (l *Line) EndData(x, y, h float64) (float64, float64, float64, float64) {
	newX := l.length*math.Cos(h) + x
	newY := l.length*math.Sin(h) + y
	return newX, newY, h, l.length
}

func (l *Line) StartData(endX, endY, endH float64) (float64, float64, float64, float64) {
	startX := l.length*math.Cos(endH) + endX
	startY := l.length*math.Sin(endH) + endY
	return startX, startY, endH, l.length
}

func (l *Line) PoseAt(x, y, h, s float64) (float64, float64, float64) {
	return s*math.Cos(h) + x, s*math.Sin(h) + y, h
}

func (l *Line) Element() *etree.Element {
	return etree.NewElement("line")
}
