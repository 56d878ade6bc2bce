package opendrive

import (
	"github.com/roadplan/xodrgen/pkg/util"
)

// LaneDef describes the lane layout of one stretch of a road, used to
// build roads with lane merges and splits. Can handle one lane merging
// or splitting per stretch.
//
// Merges and splits are defined in the road direction, not the driving
// direction.
type LaneDef struct {
	SStart      float64
	SEnd        float64
	NLanesStart int
	NLanesEnd   int

	// SubLane is the lane that is created on a split or removed on a
	// merge, counted from the center. Zero when the lane count does not
	// change.
	SubLane int

	// LaneStartWidths and LaneEndWidths are per lane widths, empty
	// slices fall back to the default lane width.
	LaneStartWidths []float64
	LaneEndWidths   []float64
}

func NewLaneDef(sStart, sEnd float64, nLanesStart, nLanesEnd, subLane int) *LaneDef {
	return &LaneDef{
		SStart:      sStart,
		SEnd:        sEnd,
		NLanesStart: nLanesStart,
		NLanesEnd:   nLanesEnd,
		SubLane:     subLane,
	}
}

func (ld *LaneDef) SetWidths(start, end []float64) *LaneDef {
	ld.LaneStartWidths = start
	if len(end) == 0 {
		ld.LaneEndWidths = append([]float64(nil), start...)
	} else {
		ld.LaneEndWidths = end
	}
	return ld
}

// fillWidths replaces empty width lists with the default lane width.
func (ld *LaneDef) fillWidths(defaultWidth float64) {
	if len(ld.LaneStartWidths) == 0 {
		ld.LaneStartWidths = repeatWidth(defaultWidth, ld.NLanesStart)
	}
	if len(ld.LaneEndWidths) == 0 {
		ld.LaneEndWidths = repeatWidth(defaultWidth, ld.NLanesEnd)
	}
}

// padSubLaneWidths gives the vanishing or appearing lane a zero width
// entry so both width lists cover the larger lane count.
func (ld *LaneDef) padSubLaneWidths() {
	if ld.SubLane == 0 {
		return
	}
	at := util.Abs(ld.SubLane) - 1
	if len(ld.LaneEndWidths) > 0 && len(ld.LaneEndWidths) < ld.NLanesStart {
		ld.LaneEndWidths = insertWidth(ld.LaneEndWidths, at, 0)
	} else if len(ld.LaneStartWidths) > 0 && len(ld.LaneStartWidths) < ld.NLanesEnd {
		ld.LaneStartWidths = insertWidth(ld.LaneStartWidths, at, 0)
	}
}

func repeatWidth(width float64, n int) []float64 {
	widths := make([]float64, n)
	for i := range widths {
		widths[i] = width
	}
	return widths
}

func insertWidth(widths []float64, at int, width float64) []float64 {
	widths = append(widths, 0)
	copy(widths[at+1:], widths[at:])
	widths[at] = width
	return widths
}

// LaneSetup is one side of a road, either a constant number of lanes or
// a list of merge and split definitions.
type LaneSetup struct {
	constant bool
	count    int
	defs     []*LaneDef
}

// ConstantLanes keeps the same number of lanes along the whole road.
func ConstantLanes(n int) LaneSetup {
	return LaneSetup{constant: true, count: n}
}

// LaneDefs builds the side from explicit merge and split definitions.
func LaneDefs(defs ...*LaneDef) LaneSetup {
	return LaneSetup{defs: defs}
}

// widthTransitionCoeffs returns the cubic width polynomial going from
// startWidth to endWidth over the given length with zero derivative at
// both ends.
func widthTransitionCoeffs(length, startWidth, endWidth float64) (a, b, c, d float64) {
	diff := endWidth - startWidth
	return startWidth, 0, 3 * diff / (length * length), -2 * diff / (length * length * length)
}

// CreateLanesMergeSplit builds the lanes of a road that can contain one
// or more lane merges and splits. Left and right changes have to happen
// over the same stretch. The width change is a cubic polynomial with
// zero derivative at both ends. A nil laneWidthEnd keeps the lane width
// constant, setting it requires constant lane counts on both sides.
func CreateLanesMergeSplit(rightSetup, leftSetup LaneSetup, roadLength float64, centerRoadMark *RoadMark, laneWidth float64, laneWidthEnd *float64) (*Lanes, error) {
	if laneWidthEnd != nil && (!rightSetup.constant || !leftSetup.constant) {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"an end lane width can only be used with constant lane counts")
	}

	rightDefs, leftDefs, err := expandLaneSetups(rightSetup, leftSetup, roadLength, laneWidth)
	if err != nil {
		return nil, err
	}

	buildLane := func(def *LaneDef, i int) *Lane {
		length := def.SEnd - def.SStart
		switch {
		case def.SubLane != 0 && i == util.Abs(def.SubLane)-1 && def.NLanesStart != def.NLanesEnd:
			a, b, c, d := widthTransitionCoeffs(length, def.LaneStartWidths[i], def.LaneEndWidths[i])
			return NewLane(LaneTypeDriving, a, b, c, d, 0)
		case laneWidthEnd != nil && *laneWidthEnd != laneWidth:
			a, b, c, d := widthTransitionCoeffs(length, laneWidth, *laneWidthEnd)
			return NewLane(LaneTypeDriving, a, b, c, d, 0)
		case len(def.LaneStartWidths) > 0:
			a, b, c, d := widthTransitionCoeffs(length, def.LaneStartWidths[i], def.LaneEndWidths[i])
			return NewLane(LaneTypeDriving, a, b, c, d, 0)
		default:
			return NewDrivingLane(laneWidth)
		}
	}

	var sections []*LaneSection
	for ls := range leftDefs {
		center := NewLane(LaneTypeDriving, 0, 0, 0, 0, 0)
		if centerRoadMark != nil {
			center.AddRoadMark(centerRoadMark.clone())
		}
		section := NewLaneSection(leftDefs[ls].SStart, center)

		rightCount := util.MaxInt(rightDefs[ls].NLanesStart, rightDefs[ls].NLanesEnd)
		for i := 0; i < rightCount; i++ {
			lane := buildLane(rightDefs[ls], i)
			if i == rightCount-1 {
				lane.AddRoadMark(StdRoadMarkSolid())
			} else {
				lane.AddRoadMark(StdRoadMarkBroken())
			}
			section.AddRightLane(lane)
		}

		leftCount := util.MaxInt(leftDefs[ls].NLanesStart, leftDefs[ls].NLanesEnd)
		for i := 0; i < leftCount; i++ {
			lane := buildLane(leftDefs[ls], i)
			if i == leftCount-1 {
				lane.AddRoadMark(StdRoadMarkSolid())
			} else {
				lane.AddRoadMark(StdRoadMarkBroken())
			}
			section.AddLeftLane(lane)
		}

		sections = append(sections, section)
	}

	linker := NewLaneLinker()
	linkRightLanes(rightDefs, sections, linker)
	linkLeftLanes(leftDefs, sections, linker)

	lanes := NewLanes()
	for _, section := range sections {
		lanes.AddLaneSection(section, linker)
	}
	return lanes, nil
}

func linkRightLanes(defs []*LaneDef, sections []*LaneSection, linker *LaneLinker) {
	for i := 1; i < len(defs); i++ {
		prev := sections[i-1].RightLanes()
		cur := sections[i].RightLanes()
		switch {
		case defs[i].NLanesEnd > defs[i].NLanesStart:
			// lane split, skip over the new lane
			for j := 0; j <= defs[i-1].NLanesEnd; j++ {
				if defs[i].SubLane < -(j + 1) {
					linker.AddLink(prev[j], cur[j])
				} else if defs[i].SubLane > -(j+1) && j > 0 {
					linker.AddLink(prev[j-1], cur[j])
				}
			}
		case defs[i-1].NLanesEnd < defs[i-1].NLanesStart:
			// lane merge, skip over the lost lane
			for j := 0; j <= defs[i-1].NLanesEnd; j++ {
				if defs[i-1].SubLane < -(j + 1) {
					linker.AddLink(prev[j], cur[j])
				} else if defs[i-1].SubLane > -(j+1) && j > 0 {
					linker.AddLink(prev[j], cur[j-1])
				}
			}
		default:
			for j := 0; j < defs[i-1].NLanesEnd; j++ {
				linker.AddLink(prev[j], cur[j])
			}
		}
	}
}

func linkLeftLanes(defs []*LaneDef, sections []*LaneSection, linker *LaneLinker) {
	for i := 1; i < len(defs); i++ {
		prev := sections[i-1].LeftLanes()
		cur := sections[i].LeftLanes()
		switch {
		case defs[i].NLanesEnd > defs[i].NLanesStart:
			for j := 0; j <= defs[i-1].NLanesEnd; j++ {
				if defs[i].SubLane < j+1 && j > 0 {
					linker.AddLink(prev[j-1], cur[j])
				} else if defs[i].SubLane > j+1 {
					linker.AddLink(prev[j], cur[j])
				}
			}
		case defs[i-1].NLanesEnd < defs[i-1].NLanesStart:
			for j := 0; j <= defs[i-1].NLanesEnd; j++ {
				if defs[i-1].SubLane < j+1 && j > 0 {
					linker.AddLink(prev[j], cur[j-1])
				} else if defs[i-1].SubLane > j+1 {
					linker.AddLink(prev[j], cur[j])
				}
			}
		default:
			for j := 0; j < defs[i-1].NLanesEnd; j++ {
				linker.AddLink(prev[j], cur[j])
			}
		}
	}
}

// expandLaneSetups turns the two lane setups into matching lists of
// lane definitions covering the whole road, so both sides always have a
// definition for every lane section.
func expandLaneSetups(right, left LaneSetup, totLength, defaultWidth float64) ([]*LaneDef, []*LaneDef, error) {
	var rightOut, leftOut []*LaneDef
	presentS := 0.0
	rIt, lIt := 0, 0

	for util.Lt(presentS, totLength) {
		nextRight, nextLeft := totLength, totLength
		addRight, addLeft := false, false
		nRightLanes, nLeftLanes := 0, 0

		if rIt < len(right.defs) {
			if right.defs[rIt].SStart == presentS {
				addRight = true
			} else {
				nextRight = right.defs[rIt].SStart
				nRightLanes = right.defs[rIt].NLanesStart
			}
		} else if right.constant {
			nRightLanes = right.count
		} else if len(right.defs) > 0 {
			nRightLanes = right.defs[len(right.defs)-1].NLanesEnd
		}

		if lIt < len(left.defs) {
			if left.defs[lIt].SStart == presentS {
				addLeft = true
			} else {
				nextLeft = left.defs[lIt].SStart
				nLeftLanes = left.defs[lIt].NLanesStart
			}
		} else if left.constant {
			nLeftLanes = left.count
		} else if len(left.defs) > 0 {
			nLeftLanes = left.defs[len(left.defs)-1].NLanesEnd
		}

		switch {
		case !addLeft && !addRight:
			sEnd := nextRight
			if nextLeft < sEnd {
				sEnd = nextLeft
			}
			rightOut = append(rightOut, constantStretch(presentS, sEnd, nRightLanes, right, rIt, defaultWidth))
			leftOut = append(leftOut, constantStretch(presentS, sEnd, nLeftLanes, left, lIt, defaultWidth))
			if !util.Gt(sEnd, presentS) {
				return nil, nil, util.WrapErrorf(nil, util.ErrBadParamInput,
					"lane definitions do not cover the road, stuck at s=%v", presentS)
			}
			presentS = sEnd
		case addLeft && addRight:
			left.defs[lIt].fillWidths(defaultWidth)
			right.defs[rIt].fillWidths(defaultWidth)
			leftOut = append(leftOut, left.defs[lIt])
			rightOut = append(rightOut, right.defs[rIt])
			presentS = left.defs[lIt].SEnd
			rIt++
			lIt++
		case addRight:
			right.defs[rIt].fillWidths(defaultWidth)
			rightOut = append(rightOut, right.defs[rIt])
			filler := NewLaneDef(presentS, right.defs[rIt].SEnd, nLeftLanes, nLeftLanes, 0)
			filler.fillWidths(defaultWidth)
			leftOut = append(leftOut, filler)
			presentS = right.defs[rIt].SEnd
			rIt++
		default:
			left.defs[lIt].fillWidths(defaultWidth)
			leftOut = append(leftOut, left.defs[lIt])
			filler := NewLaneDef(presentS, left.defs[lIt].SEnd, nRightLanes, nRightLanes, 0)
			filler.fillWidths(defaultWidth)
			rightOut = append(rightOut, filler)
			presentS = left.defs[lIt].SEnd
			lIt++
		}
	}

	for _, def := range rightOut {
		def.padSubLaneWidths()
	}
	for _, def := range leftOut {
		def.padSubLaneWidths()
	}
	return rightOut, leftOut, nil
}

// constantStretch builds a filler definition for a stretch without lane
// count changes, carrying over explicit widths from the surrounding
// definitions.
func constantStretch(sStart, sEnd float64, nLanes int, setup LaneSetup, it int, defaultWidth float64) *LaneDef {
	def := NewLaneDef(sStart, sEnd, nLanes, nLanes, 0)
	widths := repeatWidth(defaultWidth, nLanes)
	if !setup.constant {
		if it == len(setup.defs) && it > 0 && len(setup.defs[it-1].LaneEndWidths) > 0 {
			widths = append([]float64(nil), setup.defs[it-1].LaneEndWidths...)
		} else if it < len(setup.defs) && len(setup.defs[it].LaneStartWidths) > 0 {
			widths = append([]float64(nil), setup.defs[it].LaneStartWidths...)
		}
	}
	def.LaneStartWidths = widths
	def.LaneEndWidths = append([]float64(nil), widths...)
	return def
}
