package opendrive

import (
	"errors"
	"testing"

	"github.com/roadplan/xodrgen/pkg/util"
)

func TestRoadDuplicateLinks(t *testing.T) {
	road := mustStraightRoad(t, 1, 1)
	if err := road.AddSuccessor(ElementTypeRoad, 2, ContactPointStart); err != nil {
		t.Fatalf("err: %v", err)
	}
	err := road.AddSuccessor(ElementTypeRoad, 3, ContactPointStart)
	if !errors.Is(err, util.ErrIDAlreadyExists) {
		t.Errorf("got %v, want ErrIDAlreadyExists", err)
	}

	if err := road.AddPredecessor(ElementTypeJunction, 100, ""); err != nil {
		t.Fatalf("err: %v", err)
	}
	err = road.AddPredecessor(ElementTypeRoad, 4, ContactPointEnd)
	if !errors.Is(err, util.ErrIDAlreadyExists) {
		t.Errorf("got %v, want ErrIDAlreadyExists", err)
	}
}

func TestRoadObjectIDAssignment(t *testing.T) {
	road := mustStraightRoad(t, 1, 1)

	first := NewObject(10, -5, ObjectTypePole)
	second := NewObject(20, -5, ObjectTypePole).SetID(0)
	third := NewObject(30, -5, ObjectTypePole).SetID(5)
	road.AddObject(first, second, third)

	if first.id != 0 {
		t.Errorf("first object id = %d, want 0", first.id)
	}
	// explicit id 0 collides with the assigned one and gets renumbered
	if second.id != 1 {
		t.Errorf("second object id = %d, want 1", second.id)
	}
	if third.id != 5 {
		t.Errorf("third object id = %d, want 5", third.id)
	}

	fourth := NewObject(40, -5, ObjectTypePole)
	road.AddObject(fourth)
	if fourth.id != 2 {
		t.Errorf("fourth object id = %d, want 2", fourth.id)
	}
}

func TestRoadSignalIDAssignment(t *testing.T) {
	road := mustStraightRoad(t, 1, 1)
	first := NewSignal(10, -5, "DE", "274")
	second := NewSignal(20, -5, "DE", "274")
	road.AddSignal(first, second)
	if first.id != 0 || second.id != 1 {
		t.Errorf("signal ids = %d %d, want 0 1", first.id, second.id)
	}
}

func TestRoadAddTypeWithSpeed(t *testing.T) {
	road := mustStraightRoad(t, 1, 1)
	if err := road.AddTypeWithSpeed(RoadTypeMotorway, 0, 100, "kph"); err != nil {
		t.Fatalf("err: %v", err)
	}
	err := road.AddTypeWithSpeed(RoadTypeMotorway, 0, 60, "knots")
	if !errors.Is(err, util.ErrBadParamInput) {
		t.Errorf("got %v, want ErrBadParamInput", err)
	}
}

func TestRoadTypeElement(t *testing.T) {
	road := mustStraightRoad(t, 1, 1)
	road.AddType(RoadTypeRural, 0)
	if err := road.AddTypeWithSpeed(RoadTypeMotorway, 50, 120, "kph"); err != nil {
		t.Fatalf("err: %v", err)
	}
	road.PlanView().SetStartPoint(0, 0, 0)
	road.PlanView().Adjust(false)

	element := road.Element()
	types := element.SelectElements("type")
	if len(types) != 2 {
		t.Fatalf("got %d type records, want 2", len(types))
	}
	if types[0].SelectElement("speed") != nil {
		t.Error("first type record must not carry a speed")
	}
	speed := types[1].SelectElement("speed")
	if speed == nil {
		t.Fatal("second type record is missing its speed")
	}
	if got := speed.SelectAttrValue("max", ""); got != "120" {
		t.Errorf("speed max = %s, want 120", got)
	}
	if got := speed.SelectAttrValue("unit", ""); got != "kph" {
		t.Errorf("speed unit = %s, want kph", got)
	}
}

func TestAddObjectRoadsideNeedsAdjustedRoads(t *testing.T) {
	road := mustStraightRoad(t, 1, 1)
	barrier := NewObject(0, 0, ObjectTypeBarrier).SetDimensions(0, 0.3, 0.75)
	err := road.AddObjectRoadside(barrier, 0, 0, 0, RoadSideBoth)
	if !errors.Is(err, util.ErrRoadsNotAdjusted) {
		t.Errorf("got %v, want ErrRoadsNotAdjusted", err)
	}
}

func TestAddObjectRoadsideBothSides(t *testing.T) {
	road := mustStraightRoad(t, 1, 1)
	road.PlanView().SetStartPoint(0, 0, 0)
	road.PlanView().Adjust(false)

	barrier := NewObject(0, 0, ObjectTypeBarrier).SetDimensions(0, 0.3, 0.75)
	if err := road.AddObjectRoadside(barrier, 0, 0, 0.5, RoadSideBoth); err != nil {
		t.Fatalf("err: %v", err)
	}

	if len(road.objects) != 2 {
		t.Fatalf("got %d objects, want 2", len(road.objects))
	}
	left, right := road.objects[0], road.objects[1]
	if !util.Eq(left.t, 3.5) {
		t.Errorf("left object t = %v, want 3.5", left.t)
	}
	if !util.Eq(right.t, -3.5) {
		t.Errorf("right object t = %v, want -3.5", right.t)
	}
	if len(left.repeats) != 1 || len(right.repeats) != 1 {
		t.Errorf("repeat records = %d %d, want 1 1", len(left.repeats), len(right.repeats))
	}
}

func TestAddObjectRoadsideBadSOffset(t *testing.T) {
	road := mustStraightRoad(t, 1, 1)
	road.PlanView().SetStartPoint(0, 0, 0)
	road.PlanView().Adjust(false)

	barrier := NewObject(0, 0, ObjectTypeBarrier)
	err := road.AddObjectRoadside(barrier, 0, 200, 0, RoadSideLeft)
	if !errors.Is(err, util.ErrBadParamInput) {
		t.Errorf("got %v, want ErrBadParamInput", err)
	}
}

func TestRoadElementAttributes(t *testing.T) {
	road := mustStraightRoad(t, 7, 1)
	road.SetName("mainStreet")
	road.PlanView().SetStartPoint(0, 0, 0)
	road.PlanView().Adjust(false)

	element := road.Element()
	if got := element.SelectAttrValue("id", ""); got != "7" {
		t.Errorf("id = %s, want 7", got)
	}
	if got := element.SelectAttrValue("junction", ""); got != "-1" {
		t.Errorf("junction = %s, want -1", got)
	}
	if got := element.SelectAttrValue("name", ""); got != "mainStreet" {
		t.Errorf("name = %s, want mainStreet", got)
	}
	if got := element.SelectAttrValue("length", ""); got != "100" {
		t.Errorf("length = %s, want 100", got)
	}
	if element.SelectElement("link") == nil {
		t.Error("road element is missing its link record")
	}
}
