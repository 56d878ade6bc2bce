package opendrive

import (
	"github.com/beevik/etree"
	"github.com/roadplan/xodrgen/pkg/util"
	"github.com/samber/lo"
)

// RoadLine is one painted line of a road mark, used for broken and multi
// line markings.
type RoadLine struct {
	width   float64
	length  float64
	space   float64
	toffset float64
	soffset float64
	rule    MarkRule
	color   RoadMarkColor
}

// NewRoadLine creates a line record. Length is the painted part, space
// the gap between paints, zero space gives a solid line.
func NewRoadLine(width, length, space, toffset, soffset float64) *RoadLine {
	return &RoadLine{
		width:   width,
		length:  length,
		space:   space,
		toffset: toffset,
		soffset: soffset,
	}
}

func (rl *RoadLine) SetRule(rule MarkRule) *RoadLine {
	rl.rule = rule
	return rl
}

func (rl *RoadLine) SetColor(color RoadMarkColor) *RoadLine {
	rl.color = color
	return rl
}

func (rl *RoadLine) Element() *etree.Element {
	element := etree.NewElement("line")
	element.CreateAttr("length", util.FloatString(rl.length))
	element.CreateAttr("space", util.FloatString(rl.space))
	element.CreateAttr("tOffset", util.FloatString(rl.toffset))
	element.CreateAttr("width", util.FloatString(rl.width))
	element.CreateAttr("sOffset", util.FloatString(rl.soffset))
	if rl.rule != "" {
		element.CreateAttr("rule", string(rl.rule))
	}
	return element
}

// RoadMark is the marking of one lane border.
type RoadMark struct {
	markingType RoadMarkType
	weight      RoadMarkWeight
	color       RoadMarkColor
	soffset     float64
	height      float64
	width       float64
	widthSet    bool
	laneChange  LaneChange
	lines       []*RoadLine
}

func NewRoadMark(markingType RoadMarkType) *RoadMark {
	return &RoadMark{
		markingType: markingType,
		weight:      RoadMarkWeightStandard,
		color:       RoadMarkColorStandard,
		height:      0.02,
	}
}

// NewRoadMarkWithWidth creates a road mark with an explicit marking
// width.
func NewRoadMarkWithWidth(markingType RoadMarkType, width float64) *RoadMark {
	rm := NewRoadMark(markingType)
	rm.width = width
	rm.widthSet = true
	return rm
}

func (rm *RoadMark) SetSOffset(soffset float64) *RoadMark {
	rm.soffset = soffset
	return rm
}

func (rm *RoadMark) SetColor(color RoadMarkColor) *RoadMark {
	rm.color = color
	return rm
}

func (rm *RoadMark) SetWeight(weight RoadMarkWeight) *RoadMark {
	rm.weight = weight
	return rm
}

func (rm *RoadMark) SetLaneChange(lc LaneChange) *RoadMark {
	rm.laneChange = lc
	return rm
}

// AddRoadLine adds a painted line, used for broken and multi line
// markings.
func (rm *RoadMark) AddRoadLine(line *RoadLine) *RoadMark {
	rm.lines = append(rm.lines, line)
	return rm
}

// clone copies the road mark so a shared marking can be reused across
// lane sections without aliasing.
func (rm *RoadMark) clone() *RoadMark {
	c := *rm
	c.lines = make([]*RoadLine, len(rm.lines))
	for i, l := range rm.lines {
		lc := *l
		c.lines[i] = &lc
	}
	return &c
}

// typeWidth is the width of the <type> child. Without an explicit width
// it spans the outermost lines including their own widths.
func (rm *RoadMark) typeWidth() float64 {
	if rm.widthSet {
		return rm.width
	}
	offsets := lo.Map(rm.lines, func(l *RoadLine, _ int) float64 { return l.toffset })
	maxOff := lo.Max(offsets)
	minOff := lo.Min(offsets)
	width := maxOff - minOff
	for _, l := range rm.lines {
		if l.toffset == maxOff || l.toffset == minOff {
			width += l.width
		}
	}
	return width
}

func (rm *RoadMark) Element() *etree.Element {
	element := etree.NewElement("roadMark")
	element.CreateAttr("sOffset", util.FloatString(rm.soffset))
	element.CreateAttr("type", string(rm.markingType))
	element.CreateAttr("weight", string(rm.weight))
	element.CreateAttr("color", string(rm.color))
	element.CreateAttr("height", util.FloatString(rm.height))
	if rm.widthSet {
		element.CreateAttr("width", util.FloatString(rm.width))
	}
	if rm.laneChange != "" {
		element.CreateAttr("laneChange", string(rm.laneChange))
	}
	if len(rm.lines) > 0 {
		typeElement := element.CreateElement("type")
		typeElement.CreateAttr("name", string(rm.markingType))
		typeElement.CreateAttr("width", util.FloatString(rm.typeWidth()))
		for _, l := range rm.lines {
			typeElement.AddChild(l.Element())
		}
	}
	return element
}

// Standard markings of common lane borders.

func StdRoadMarkSolid() *RoadMark {
	return NewRoadMarkWithWidth(RoadMarkTypeSolid, 0.2)
}

func StdRoadMarkBroken() *RoadMark {
	rm := NewRoadMarkWithWidth(RoadMarkTypeBroken, 0.2)
	rm.AddRoadLine(NewRoadLine(0.15, 3, 9, 0, 0))
	return rm
}

func StdRoadMarkBrokenLongLine() *RoadMark {
	rm := NewRoadMarkWithWidth(RoadMarkTypeBroken, 0.2)
	rm.AddRoadLine(NewRoadLine(0.15, 9, 3, 0, 0))
	return rm
}

func StdRoadMarkBrokenTight() *RoadMark {
	rm := NewRoadMarkWithWidth(RoadMarkTypeBroken, 0.2)
	rm.AddRoadLine(NewRoadLine(0.15, 3, 3, 0, 0))
	return rm
}

func StdRoadMarkBrokenBroken() *RoadMark {
	rm := NewRoadMark(RoadMarkTypeBrokenBroken)
	rm.AddRoadLine(NewRoadLine(0.2, 3, 3, 0.2, 0))
	rm.AddRoadLine(NewRoadLine(0.2, 3, 3, -0.2, 0))
	return rm
}

func StdRoadMarkSolidSolid() *RoadMark {
	rm := NewRoadMark(RoadMarkTypeSolidSolid)
	rm.AddRoadLine(NewRoadLine(0.2, 0, 0, 0.2, 0))
	rm.AddRoadLine(NewRoadLine(0.2, 0, 0, -0.2, 0))
	return rm
}

func StdRoadMarkSolidBroken() *RoadMark {
	rm := NewRoadMark(RoadMarkTypeSolidBroken)
	rm.AddRoadLine(NewRoadLine(0.2, 0, 0, 0.2, 0))
	rm.AddRoadLine(NewRoadLine(0.2, 3, 3, -0.2, 0))
	return rm
}

func StdRoadMarkBrokenSolid() *RoadMark {
	rm := NewRoadMark(RoadMarkTypeBrokenSolid)
	rm.AddRoadLine(NewRoadLine(0.2, 0, 0, -0.2, 0))
	rm.AddRoadLine(NewRoadLine(0.2, 3, 3, 0.2, 0))
	return rm
}
