package opendrive

import (
	"testing"
)

func mustStraightRoad(t *testing.T, id, nLanes int) *Road {
	t.Helper()
	road, err := CreateStraightRoad(id, 100, -1, nLanes, 3)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	return road
}

func connectRoads(t *testing.T, road1, road2 *Road) {
	t.Helper()
	if err := road1.AddSuccessor(ElementTypeRoad, road2.ID(), ContactPointStart); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := road2.AddPredecessor(ElementTypeRoad, road1.ID(), ContactPointEnd); err != nil {
		t.Fatalf("err: %v", err)
	}
}

func TestAreRoadsConsecutive(t *testing.T) {
	road1 := mustStraightRoad(t, 1, 1)
	road2 := mustStraightRoad(t, 2, 1)
	connectRoads(t, road1, road2)

	if !AreRoadsConsecutive(road1, road2) {
		t.Error("road2 should follow road1")
	}
	if AreRoadsConsecutive(road2, road1) {
		t.Error("road1 does not follow road2")
	}
}

func TestAreRoadsConnected(t *testing.T) {
	road1 := mustStraightRoad(t, 1, 1)
	road2 := mustStraightRoad(t, 2, 1)
	if err := road1.AddSuccessor(ElementTypeRoad, 2, ContactPointEnd); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := road2.AddSuccessor(ElementTypeRoad, 1, ContactPointEnd); err != nil {
		t.Fatalf("err: %v", err)
	}

	connected, linkType := AreRoadsConnected(road1, road2)
	if !connected || linkType != LinkTypeSuccessor {
		t.Errorf("got %v %s, want true successor", connected, linkType)
	}
}

func TestCreateLaneLinksConsecutive(t *testing.T) {
	road1 := mustStraightRoad(t, 1, 2)
	road2 := mustStraightRoad(t, 2, 2)
	connectRoads(t, road1, road2)

	CreateLaneLinks(road1, road2)

	sec1 := road1.Lanes().LaneSections()[0]
	sec2 := road2.Lanes().LaneSections()[0]
	for i, lane := range sec1.LeftLanes() {
		got, ok := lane.LinkedLaneID(LinkTypeSuccessor)
		if !ok || got != lane.ID() {
			t.Errorf("left lane %d successor = %d %v, want %d true", i, got, ok, lane.ID())
		}
	}
	for i, lane := range sec2.RightLanes() {
		got, ok := lane.LinkedLaneID(LinkTypePredecessor)
		if !ok || got != lane.ID() {
			t.Errorf("right lane %d predecessor = %d %v, want %d true", i, got, ok, lane.ID())
		}
	}
}

func TestCreateLaneLinksMismatchedCounts(t *testing.T) {
	road1 := mustStraightRoad(t, 1, 2)
	road2 := mustStraightRoad(t, 2, 1)
	connectRoads(t, road1, road2)

	CreateLaneLinks(road1, road2)

	sec1 := road1.Lanes().LaneSections()[0]
	inner := sec1.RightLanes()[0]
	if got, ok := inner.LinkedLaneID(LinkTypeSuccessor); !ok || got != -1 {
		t.Errorf("inner lane successor = %d %v, want -1 true", got, ok)
	}
	outer := sec1.RightLanes()[1]
	if _, ok := outer.LinkedLaneID(LinkTypeSuccessor); ok {
		t.Error("outer lane must stay unlinked when the lane counts differ")
	}
}

func TestCreateLaneLinksConnectingRoad(t *testing.T) {
	incoming := mustStraightRoad(t, 1, 1)
	connecting, err := CreateStraightRoad(10, 20, 100, 1, 3)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := connecting.AddPredecessor(ElementTypeRoad, incoming.ID(), ContactPointEnd); err != nil {
		t.Fatalf("err: %v", err)
	}

	CreateLaneLinks(connecting, incoming)

	sec := connecting.Lanes().LaneSections()[0]
	if got, ok := sec.LeftLanes()[0].LinkedLaneID(LinkTypePredecessor); !ok || got != 1 {
		t.Errorf("left lane predecessor = %d %v, want 1 true", got, ok)
	}
	if got, ok := sec.RightLanes()[0].LinkedLaneID(LinkTypePredecessor); !ok || got != -1 {
		t.Errorf("right lane predecessor = %d %v, want -1 true", got, ok)
	}
}

func TestCreateLaneLinksConnectingRoadWithOffset(t *testing.T) {
	incoming := mustStraightRoad(t, 1, 2)
	connecting, err := CreateStraightRoad(10, 20, 100, 1, 3)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := connecting.AddPredecessorOffset(ElementTypeRoad, incoming.ID(), ContactPointEnd, 1); err != nil {
		t.Fatalf("err: %v", err)
	}

	CreateLaneLinks(connecting, incoming)

	sec := connecting.Lanes().LaneSections()[0]
	if got, ok := sec.LeftLanes()[0].LinkedLaneID(LinkTypePredecessor); !ok || got != 2 {
		t.Errorf("left lane predecessor = %d %v, want 2 true", got, ok)
	}
	if got, ok := sec.RightLanes()[0].LinkedLaneID(LinkTypePredecessor); !ok || got != -2 {
		t.Errorf("right lane predecessor = %d %v, want -2 true", got, ok)
	}
}

func TestCreateLaneLinksOrderIndependent(t *testing.T) {
	consecutivePair := func(t *testing.T) (*Road, *Road) {
		t.Helper()
		road1 := mustStraightRoad(t, 1, 2)
		road2 := mustStraightRoad(t, 2, 2)
		connectRoads(t, road1, road2)
		return road1, road2
	}
	headOnPair := func(t *testing.T) (*Road, *Road) {
		t.Helper()
		road1 := mustStraightRoad(t, 1, 2)
		road2 := mustStraightRoad(t, 2, 2)
		if err := road1.AddSuccessor(ElementTypeRoad, 2, ContactPointEnd); err != nil {
			t.Fatalf("err: %v", err)
		}
		if err := road2.AddSuccessor(ElementTypeRoad, 1, ContactPointEnd); err != nil {
			t.Fatalf("err: %v", err)
		}
		return road1, road2
	}

	testCases := []struct {
		name string
		pair func(*testing.T) (*Road, *Road)
	}{
		{name: "consecutive", pair: consecutivePair},
		{name: "head on", pair: headOnPair},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			road1, road2 := tc.pair(t)
			CreateLaneLinks(road1, road2)
			alt1, alt2 := tc.pair(t)
			CreateLaneLinks(alt2, alt1)

			// linking the pair in either argument order must produce
			// the same lane links on both roads
			sameLane := func(roadID int, lane, altLane *Lane) {
				t.Helper()
				for _, lt := range []LinkType{LinkTypePredecessor, LinkTypeSuccessor} {
					got, gotOK := altLane.LinkedLaneID(lt)
					want, wantOK := lane.LinkedLaneID(lt)
					if got != want || gotOK != wantOK {
						t.Errorf("road %d lane %d %s link = %d %v, want %d %v",
							roadID, lane.ID(), lt, got, gotOK, want, wantOK)
					}
				}
			}
			sameLinks := func(road, alt *Road) {
				t.Helper()
				for s, sec := range road.Lanes().LaneSections() {
					altSec := alt.Lanes().LaneSections()[s]
					for i, lane := range sec.LeftLanes() {
						sameLane(road.ID(), lane, altSec.LeftLanes()[i])
					}
					for i, lane := range sec.RightLanes() {
						sameLane(road.ID(), lane, altSec.RightLanes()[i])
					}
				}
			}
			sameLinks(road1, alt1)
			sameLinks(road2, alt2)
		})
	}
}
