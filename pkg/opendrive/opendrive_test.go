package opendrive

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"

	"github.com/roadplan/xodrgen/pkg/util"
)

func TestOpenDriveDuplicateIDs(t *testing.T) {
	odr := NewOpenDrive("test", nil)
	if err := odr.AddRoad(mustStraightRoad(t, 1, 1)); err != nil {
		t.Fatalf("err: %v", err)
	}
	err := odr.AddRoad(mustStraightRoad(t, 1, 1))
	if !errors.Is(err, util.ErrIDAlreadyExists) {
		t.Errorf("got %v, want ErrIDAlreadyExists", err)
	}

	if err := odr.AddJunction(NewJunction("x", 100)); err != nil {
		t.Fatalf("err: %v", err)
	}
	err = odr.AddJunction(NewJunction("y", 100))
	if !errors.Is(err, util.ErrIDAlreadyExists) {
		t.Errorf("got %v, want ErrIDAlreadyExists", err)
	}

	if err := odr.AddJunctionGroup(NewJunctionGroup("g", 1, JunctionGroupTypeRoundabout)); err != nil {
		t.Fatalf("err: %v", err)
	}
	err = odr.AddJunctionGroup(NewJunctionGroup("h", 1, JunctionGroupTypeUnknown))
	if !errors.Is(err, util.ErrIDAlreadyExists) {
		t.Errorf("got %v, want ErrIDAlreadyExists", err)
	}
}

func TestAdjustStartpointsChain(t *testing.T) {
	odr := NewOpenDrive("chain", nil)
	road1 := mustStraightRoad(t, 1, 1)
	road2 := mustStraightRoad(t, 2, 1)
	connectRoads(t, road1, road2)
	if err := odr.AddRoad(road1); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := odr.AddRoad(road2); err != nil {
		t.Fatalf("err: %v", err)
	}

	// no start point anywhere, the first road becomes the pivot
	if err := odr.AdjustRoadsAndLanes(); err != nil {
		t.Fatalf("err: %v", err)
	}

	x, y, h := road2.PlanView().StartPoint()
	if !util.Eq(x, 100) || !util.Eq(y, 0) || !util.Eq(h, 0) {
		t.Errorf("road2 start = (%v %v %v), want (100 0 0)", x, y, h)
	}

	// lane links follow from the placement
	lane := road1.Lanes().LaneSections()[0].RightLanes()[0]
	if got, ok := lane.LinkedLaneID(LinkTypeSuccessor); !ok || got != -1 {
		t.Errorf("lane successor = %d %v, want -1 true", got, ok)
	}
}

func TestAdjustStartpointsFixedRoadWins(t *testing.T) {
	odr := NewOpenDrive("fixed", nil)
	road1 := mustStraightRoad(t, 1, 1)
	road2 := mustStraightRoad(t, 2, 1)
	connectRoads(t, road1, road2)
	road2.PlanView().SetStartPoint(500, 0, 0)
	if err := odr.AddRoad(road1); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := odr.AddRoad(road2); err != nil {
		t.Fatalf("err: %v", err)
	}

	if err := odr.AdjustStartpoints(); err != nil {
		t.Fatalf("err: %v", err)
	}

	// road1 is placed backwards from road2's fixed start
	x, y, _ := road1.PlanView().StartPoint()
	if !util.Eq(x, 400) || !util.Eq(y, 0) {
		t.Errorf("road1 start = (%v %v), want (400 0)", x, y)
	}
}

func TestAdjustStartpointsLaneOffset(t *testing.T) {
	odr := NewOpenDrive("offset", nil)
	road1 := mustStraightRoad(t, 1, 2)
	road2 := mustStraightRoad(t, 2, 2)
	if err := road1.AddSuccessor(ElementTypeRoad, 2, ContactPointStart); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := road2.AddPredecessorOffset(ElementTypeRoad, 1, ContactPointEnd, 1); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := odr.AddRoad(road1); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := odr.AddRoad(road2); err != nil {
		t.Fatalf("err: %v", err)
	}

	if err := odr.AdjustStartpoints(); err != nil {
		t.Fatalf("err: %v", err)
	}

	// skipping one 3 m lane shifts the start sideways
	x, y, _ := road2.PlanView().StartPoint()
	if !util.Eq(x, 100) || !util.Eq(y, 3) {
		t.Errorf("road2 start = (%v %v), want (100 3)", x, y)
	}
}

func TestAdjustStartpointsDisconnected(t *testing.T) {
	odr := NewOpenDrive("broken", nil)
	if err := odr.AddRoad(mustStraightRoad(t, 1, 1)); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := odr.AddRoad(mustStraightRoad(t, 2, 1)); err != nil {
		t.Fatalf("err: %v", err)
	}

	err := odr.AdjustStartpoints()
	if !errors.Is(err, util.ErrUndefinedRoadNetwork) {
		t.Fatalf("got %v, want ErrUndefinedRoadNetwork", err)
	}
	if !strings.Contains(err.Error(), "[2]") {
		t.Errorf("error does not name the unplaced road: %v", err)
	}
}

func TestAdjustStartpointsUnknownNeighbour(t *testing.T) {
	odr := NewOpenDrive("dangling", nil)
	road := mustStraightRoad(t, 1, 1)
	if err := road.AddSuccessor(ElementTypeRoad, 99, ContactPointStart); err != nil {
		t.Fatalf("err: %v", err)
	}
	stray := mustStraightRoad(t, 2, 1)
	if err := stray.AddPredecessor(ElementTypeRoad, 98, ContactPointEnd); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := odr.AddRoad(road); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := odr.AddRoad(stray); err != nil {
		t.Fatalf("err: %v", err)
	}

	if err := odr.AdjustStartpoints(); !errors.Is(err, util.ErrUndefinedRoadNetwork) {
		t.Errorf("got %v, want ErrUndefinedRoadNetwork", err)
	}
}

func TestAdjustStartpointsConnectingRoadAnchorsBothEnds(t *testing.T) {
	odr := NewOpenDrive("junction", nil)
	in := mustStraightRoad(t, 1, 1)
	out := mustStraightRoad(t, 2, 1)
	connecting, err := CreateStraightRoad(10, 20, 100, 1, 3)
	if err != nil {
		t.Fatalf("err: %v", err)
	}

	if err := in.AddSuccessor(ElementTypeJunction, 100, ""); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := out.AddPredecessor(ElementTypeJunction, 100, ""); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := connecting.AddPredecessor(ElementTypeRoad, 1, ContactPointEnd); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := connecting.AddSuccessor(ElementTypeRoad, 2, ContactPointStart); err != nil {
		t.Fatalf("err: %v", err)
	}

	for _, r := range []*Road{in, out, connecting} {
		if err := odr.AddRoad(r); err != nil {
			t.Fatalf("err: %v", err)
		}
	}

	if err := odr.AdjustStartpoints(); err != nil {
		t.Fatalf("err: %v", err)
	}

	// the connecting road pulls the outgoing road along in the same pass
	if !out.PlanView().Adjusted {
		t.Fatal("outgoing road was not placed")
	}
	x, y, h := out.PlanView().StartPoint()
	if !util.Eq(x, 120) || !util.Eq(y, 0) || !util.Eq(h, 0) {
		t.Errorf("outgoing road start = (%v %v %v), want (120 0 0)", x, y, h)
	}
}

func TestAdjustStartpointsReverseAttachment(t *testing.T) {
	odr := NewOpenDrive("reverse", nil)
	road1 := mustStraightRoad(t, 1, 1)
	road2 := mustStraightRoad(t, 2, 1)
	// the roads meet head to head at their ends
	if err := road1.AddSuccessor(ElementTypeRoad, 2, ContactPointEnd); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := road2.AddSuccessor(ElementTypeRoad, 1, ContactPointEnd); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := odr.AddRoad(road1); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := odr.AddRoad(road2); err != nil {
		t.Fatalf("err: %v", err)
	}

	if err := odr.AdjustStartpoints(); err != nil {
		t.Fatalf("err: %v", err)
	}

	// road2 runs towards road1, so it starts 100 m beyond the shared end
	x, y, h := road2.PlanView().StartPoint()
	if !util.Eq(x, 200) || !util.Eq(y, 0) || !util.Eq(math.Cos(h), -1) {
		t.Errorf("road2 start = (%v %v %v), want (200 0 pi)", x, y, h)
	}
	endX, endY, _ := road2.PlanView().EndPoint()
	if !util.Eq(endX, 100) || !util.Eq(endY, 0) {
		t.Errorf("road2 end = (%v %v), want (100 0)", endX, endY)
	}
}

func TestOpenDriveDocument(t *testing.T) {
	odr := NewOpenDrive("doc_test", nil)
	road1 := mustStraightRoad(t, 1, 1)
	road2 := mustStraightRoad(t, 2, 1)
	connectRoads(t, road1, road2)
	require.NoError(t, odr.AddRoad(road1))
	require.NoError(t, odr.AddRoad(road2))
	require.NoError(t, odr.AddJunction(NewJunction("j0", 100)))
	require.NoError(t, odr.AdjustRoadsAndLanes())

	raw, err := odr.Document().WriteToBytes()
	require.NoError(t, err)

	parsed := etree.NewDocument()
	require.NoError(t, parsed.ReadFromBytes(raw))

	root := parsed.Root()
	require.NotNil(t, root)
	require.Equal(t, "OpenDRIVE", root.Tag)

	header := root.SelectElement("header")
	require.NotNil(t, header)
	require.Equal(t, "1", header.SelectAttrValue("revMajor", ""))
	require.Equal(t, "5", header.SelectAttrValue("revMinor", ""))
	require.Equal(t, "doc_test", header.SelectAttrValue("name", ""))
	require.Equal(t, "0.0", header.SelectAttrValue("north", ""))

	roads := root.SelectElements("road")
	require.Len(t, roads, 2)
	for i, r := range roads {
		require.Equal(t, strconv.Itoa(i+1), r.SelectAttrValue("id", ""))
		require.NotNil(t, r.SelectElement("planView"))
		require.NotNil(t, r.SelectElement("lanes"))
	}

	junctions := root.SelectElements("junction")
	require.Len(t, junctions, 1)
	require.Equal(t, "100", junctions[0].SelectAttrValue("id", ""))
}
