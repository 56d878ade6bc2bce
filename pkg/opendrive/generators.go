package opendrive

import (
	"math"

	"github.com/roadplan/xodrgen/pkg/geometry"
	"github.com/roadplan/xodrgen/pkg/util"
)

// near-zero starting curvature used when building clothoid connectors
const stdStartCloth = 1e-9

// StandardLane creates a driving lane with a width and a road mark.
func StandardLane(width float64, roadMark *RoadMark) *Lane {
	lane := NewDrivingLane(width)
	lane.AddRoadMark(roadMark)
	return lane
}

// RoadParams tunes CreateRoad. The zero value is not usable, start from
// DefaultRoadParams.
type RoadParams struct {
	// JunctionID is -1 for plain roads, otherwise the junction the road
	// belongs to.
	JunctionID     int
	CenterRoadMark *RoadMark
	LaneWidth      float64
	// LaneWidthEnd, when set, makes all lanes transition to this width
	// at the end of the road. Requires constant lane counts.
	LaneWidthEnd *float64
}

func DefaultRoadParams() RoadParams {
	return RoadParams{
		JunctionID:     -1,
		CenterRoadMark: StdRoadMarkSolid(),
		LaneWidth:      3,
	}
}

// CreateRoad builds a road with one or more lane sections from a list
// of geometries. All lanes get broken road marks except the outer
// lanes, which get solid ones. Nil params falls back to
// DefaultRoadParams.
func CreateRoad(id int, geometries []geometry.Primitive, leftLanes, rightLanes LaneSetup, params *RoadParams) (*Road, error) {
	if params == nil {
		p := DefaultRoadParams()
		params = &p
	}

	pv := geometry.NewPlanView()
	rawLength := 0.0
	for _, g := range geometries {
		if err := pv.AddGeometry(g); err != nil {
			return nil, err
		}
		rawLength += g.Length()
	}

	lanes, err := CreateLanesMergeSplit(rightLanes, leftLanes, rawLength,
		params.CenterRoadMark, params.LaneWidth, params.LaneWidthEnd)
	if err != nil {
		return nil, err
	}

	if params.JunctionID != -1 {
		return NewConnectingRoad(id, pv, lanes, params.JunctionID), nil
	}
	return NewRoad(id, pv, lanes), nil
}

// standardLaneSection builds a single section with the same number of
// lanes on both sides. A nil road mark leaves the lanes unmarked.
func standardLaneSection(nLanes int, laneWidth float64, roadMark func() *RoadMark) *LaneSection {
	center := NewLane(LaneTypeDriving, 0, 0, 0, 0, 0)
	if roadMark != nil {
		center.AddRoadMark(roadMark())
	}
	section := NewLaneSection(0, center)
	for i := 0; i < nLanes; i++ {
		left := NewDrivingLane(laneWidth)
		right := NewDrivingLane(laneWidth)
		if roadMark != nil {
			left.AddRoadMark(roadMark())
			right.AddRoadMark(roadMark())
		}
		section.AddLeftLane(left)
		section.AddRightLane(right)
	}
	return section
}

// CreateStraightRoad builds a single line road with the same number of
// lanes on both sides.
func CreateStraightRoad(id int, length float64, junctionID, nLanes int, laneWidth float64) (*Road, error) {
	pv := geometry.NewPlanView()
	if err := pv.AddGeometry(geometry.NewLine(length)); err != nil {
		return nil, err
	}
	lanes := NewLanes()
	lanes.AddLaneSection(standardLaneSection(nLanes, laneWidth, StdRoadMarkBroken))
	if junctionID != -1 {
		return NewConnectingRoad(id, pv, lanes, junctionID), nil
	}
	return NewRoad(id, pv, lanes), nil
}

// CreateClothArcCloth builds a curved road as spiral, arc, spiral.
// arcAngle and clothAngle give how much of the turn each part covers,
// clothStart is the starting curvature of the clothoids.
func CreateClothArcCloth(arcCurv, arcAngle, clothAngle float64, id, junctionID int, clothStart float64, nLanes int, laneWidth float64) (*Road, error) {
	// match the curvature sign to a negative turn angle
	if clothAngle < 0 && arcCurv > 0 {
		clothAngle = -clothAngle
		arcCurv = -arcCurv
		clothStart = -clothStart
		arcAngle = -arcAngle
	}

	spiral1, err := geometry.NewSpiralFromAngle(clothStart, arcCurv, clothAngle)
	if err != nil {
		return nil, err
	}
	arc, err := geometry.NewArcFromAngle(arcCurv, arcAngle)
	if err != nil {
		return nil, err
	}
	spiral2, err := geometry.NewSpiralFromAngle(arcCurv, clothStart, clothAngle)
	if err != nil {
		return nil, err
	}

	pv := geometry.NewPlanView()
	for _, g := range []geometry.Primitive{spiral1, arc, spiral2} {
		if err := pv.AddGeometry(g); err != nil {
			return nil, err
		}
	}

	lanes := NewLanes()
	lanes.AddLaneSection(standardLaneSection(nLanes, laneWidth, StdRoadMarkBroken))
	return NewConnectingRoad(id, pv, lanes, junctionID), nil
}

// Create3Cloths builds a curved road as three consecutive spirals. A
// nil road mark leaves the lanes unmarked so the caller can mark them
// afterwards.
func Create3Cloths(cloth1Start, cloth1End, cloth1Length, cloth2Start, cloth2End, cloth2Length, cloth3Start, cloth3End, cloth3Length float64, id, junctionID, nLanes int, laneWidth float64, roadMarks *RoadMark) (*Road, error) {
	pv := geometry.NewPlanView()
	for _, p := range [][3]float64{
		{cloth1Start, cloth1End, cloth1Length},
		{cloth2Start, cloth2End, cloth2Length},
		{cloth3Start, cloth3End, cloth3Length},
	} {
		spiral, err := geometry.NewSpiral(p[0], p[1], p[2])
		if err != nil {
			return nil, err
		}
		if err := pv.AddGeometry(spiral); err != nil {
			return nil, err
		}
	}

	var mark func() *RoadMark
	if roadMarks != nil {
		mark = func() *RoadMark { return roadMarks.clone() }
	}
	lanes := NewLanes()
	lanes.AddLaneSection(standardLaneSection(nLanes, laneWidth, mark))
	return NewConnectingRoad(id, pv, lanes, junctionID), nil
}

// lanesOffset returns the number of lanes per side and the lane width
// shared by two roads that are about to be connected. Assumes the same
// number of lanes on both sides and a constant width.
func lanesOffset(road1, road2 *Road, contactPoint ContactPoint) (int, float64, error) {
	secIdx := -1
	if contactPoint == ContactPointEnd {
		secIdx = 0
	}
	sec1 := road1.lanes.section(secIdx)
	sec2 := road2.lanes.section(0)
	if len(sec1.leftLanes) != len(sec2.leftLanes) || len(sec1.rightLanes) != len(sec2.rightLanes) {
		return 0, 0, util.WrapErrorf(nil, util.ErrNotSameAmountOfLanes,
			"incoming road %d and outgoing road %d do not have the same number of lanes", road1.id, road2.id)
	}
	return len(sec1.leftLanes), sec1.leftLanes[0].widths[0].a, nil
}

// CreateJunctionRoads builds the connecting roads between all pairs of
// incoming roads of a junction. Straight connections become lines,
// turns become spiral arc spiral combinations with the given arc
// radius. The first incoming road connects with its end, all others
// with their start. Successor and predecessor links to the junction and
// the connecting roads are added along the way.
//
// Angles give the directions the incoming roads come from, in
// mathematically positive order starting with the first road.
func CreateJunctionRoads(roads []*Road, angles []float64, radius float64, junctionID, startNum int, arcPart float64, innerRoadMarks, outerRoadMarks *RoadMark) ([]*Road, error) {
	if len(roads) != len(angles) {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"roads and angles do not have the same size")
	}

	spiralPart := (1 - arcPart) / 2

	// length of a straight connector crossing the whole junction,
	// derived from the turn geometry so straight and curved connectors
	// meet the incoming roads at the same radius
	angleCloth := math.Pi / 2 * spiralPart
	spiralLength := 2 * math.Abs(angleCloth*radius)
	cloth, err := geometry.NewSpiral(stdStartCloth, 1/radius, spiralLength)
	if err != nil {
		return nil, err
	}
	xEnd, yEnd, _, _ := cloth.EndData(0, 0, 0)
	x0 := xEnd - radius*math.Sin(angleCloth)
	y0 := yEnd - radius*(1-math.Cos(angleCloth))
	lineLength := 2 * (x0 + radius + y0)

	var junctionRoads []*Road

	for i := 0; i < len(roads)-1; i++ {
		cp := ContactPointStart
		if i == 0 {
			cp = ContactPointEnd
			if err := roads[i].AddSuccessor(ElementTypeJunction, junctionID, ""); err != nil {
				return nil, err
			}
		} else {
			if err := roads[i].AddPredecessor(ElementTypeJunction, junctionID, ""); err != nil {
				return nil, err
			}
		}

		for j := i + 1; j < len(roads); j++ {
			turn := angles[j] - angles[i] - math.Pi
			if turn > math.Pi {
				turn = -(2*math.Pi - turn)
			}

			nLanes, laneWidth, err := lanesOffset(roads[i], roads[j], cp)
			if err != nil {
				return nil, err
			}

			var connector *Road
			if turn == 0 {
				connector, err = CreateStraightRoad(startNum, lineLength, junctionID, nLanes, laneWidth)
			} else {
				connector, err = CreateClothArcCloth(1/radius, turn*arcPart, turn*spiralPart,
					startNum, junctionID, stdStartCloth, nLanes, laneWidth)
			}
			if err != nil {
				return nil, err
			}

			applyJunctionRoadMarks(connector, turn, innerRoadMarks, outerRoadMarks)

			if err := connector.AddPredecessor(ElementTypeRoad, roads[i].id, cp); err != nil {
				return nil, err
			}
			if err := connector.AddSuccessor(ElementTypeRoad, roads[j].id, ContactPointStart); err != nil {
				return nil, err
			}
			startNum++
			junctionRoads = append(junctionRoads, connector)
		}
	}

	if err := roads[len(roads)-1].AddPredecessor(ElementTypeJunction, junctionID, ""); err != nil {
		return nil, err
	}
	return junctionRoads, nil
}

// applyJunctionRoadMarks replaces the marks of a connecting road with
// the junction internal marking and puts the outer marking on the lane
// facing away from the junction center.
func applyJunctionRoadMarks(connector *Road, turn float64, innerRoadMarks, outerRoadMarks *RoadMark) {
	section := connector.lanes.section(0)
	if innerRoadMarks != nil {
		for _, lane := range section.leftLanes {
			lane.roadmarks = []*RoadMark{innerRoadMarks.clone()}
		}
		for _, lane := range section.rightLanes {
			lane.roadmarks = []*RoadMark{innerRoadMarks.clone()}
		}
		section.centerLane.roadmarks = []*RoadMark{innerRoadMarks.clone()}
	}
	if outerRoadMarks == nil {
		return
	}
	if turn > 0 && len(section.leftLanes) > 0 {
		section.leftLanes[len(section.leftLanes)-1].AddRoadMark(outerRoadMarks.clone())
	} else if turn < 0 && len(section.rightLanes) > 0 {
		section.rightLanes[len(section.rightLanes)-1].AddRoadMark(outerRoadMarks.clone())
	}
}

// createJunctionLinks fills a connection with one lane link per lane.
// rOrL is -1 for right lanes and 1 for left lanes, sgn flips the
// connecting side when the roads meet head on.
func createJunctionLinks(connection *Connection, nLanes, rOrL, sgn, fromOffset, toOffset int) {
	for i := 1; i <= nLanes; i++ {
		connection.AddLaneLink(rOrL*i+fromOffset, rOrL*sgn*i+toOffset)
	}
}

// CreateJunction builds the junction record for a set of connecting
// roads, one connection per road end.
func CreateJunction(junctionRoads []*Road, id int, roads []*Road, name string) (*Junction, error) {
	junction := NewJunction(name, id)

	for _, jr := range junctionRoads {
		if jr.successor == nil || jr.predecessor == nil {
			return nil, util.WrapErrorf(nil, util.ErrUndefinedRoadNetwork,
				"connecting road %d needs both a predecessor and a successor", jr.id)
		}

		succRoad, ok := RoadByID(roads, jr.successor.elementID)
		if !ok {
			return nil, util.WrapErrorf(nil, util.ErrUndefinedRoadNetwork,
				"connecting road %d has unknown successor %d", jr.id, jr.successor.elementID)
		}
		succConn := NewConnection(jr.successor.elementID, jr.id, ContactPointEnd)
		_, sgn, _, _ := relatedLaneSection(jr, succRoad)
		lastSec := jr.lanes.section(-1)
		createJunctionLinks(succConn, len(lastSec.rightLanes), -1, sgn, 0, jr.laneOffsetSuc[jr.successor.elementID])
		createJunctionLinks(succConn, len(lastSec.leftLanes), 1, sgn, 0, jr.laneOffsetSuc[jr.successor.elementID])
		junction.AddConnection(succConn)

		predRoad, ok := RoadByID(roads, jr.predecessor.elementID)
		if !ok {
			return nil, util.WrapErrorf(nil, util.ErrUndefinedRoadNetwork,
				"connecting road %d has unknown predecessor %d", jr.id, jr.predecessor.elementID)
		}
		predConn := NewConnection(jr.predecessor.elementID, jr.id, ContactPointStart)
		_, sgn, _, _ = relatedLaneSection(jr, predRoad)
		firstSec := jr.lanes.section(0)
		createJunctionLinks(predConn, len(firstSec.rightLanes), -1, sgn, jr.laneOffsetPred[jr.predecessor.elementID], 0)
		createJunctionLinks(predConn, len(firstSec.leftLanes), 1, sgn, jr.laneOffsetPred[jr.predecessor.elementID], 0)
		junction.AddConnection(predConn)
	}
	return junction, nil
}

// RoadByID looks up a road in a list by its id.
func RoadByID(roads []*Road, id int) (*Road, bool) {
	for _, r := range roads {
		if r.id == id {
			return r, true
		}
	}
	return nil, false
}
