package export

import (
	"errors"
	"testing"

	"github.com/roadplan/xodrgen/pkg/opendrive"
	"github.com/roadplan/xodrgen/pkg/util"
)

func placedNetwork(t *testing.T) *opendrive.OpenDrive {
	t.Helper()
	odr := opendrive.NewOpenDrive("export_test", nil)
	road1, err := opendrive.CreateStraightRoad(1, 100, -1, 1, 3)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	road2, err := opendrive.CreateStraightRoad(2, 50, -1, 1, 3)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := road1.AddSuccessor(opendrive.ElementTypeRoad, 2, opendrive.ContactPointStart); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := road2.AddPredecessor(opendrive.ElementTypeRoad, 1, opendrive.ContactPointEnd); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := odr.AddRoad(road1); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := odr.AddRoad(road2); err != nil {
		t.Fatalf("err: %v", err)
	}
	if err := odr.AdjustRoadsAndLanes(); err != nil {
		t.Fatalf("err: %v", err)
	}
	return odr
}

func TestSampleCenterline(t *testing.T) {
	odr := placedNetwork(t)
	road, _ := odr.Road(1)

	coords, err := SampleCenterline(road, 10)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	// 10 steps plus the end point
	if len(coords) != 11 {
		t.Fatalf("got %d points, want 11", len(coords))
	}
	first, last := coords[0], coords[len(coords)-1]
	if !util.Eq(first[0], 0) || !util.Eq(first[1], 0) {
		t.Errorf("first point = %v, want (0 0)", first)
	}
	if !util.Eq(last[0], 100) || !util.Eq(last[1], 0) {
		t.Errorf("last point = %v, want (100 0)", last)
	}
}

func TestSampleCenterlineUnadjusted(t *testing.T) {
	road, err := opendrive.CreateStraightRoad(1, 100, -1, 1, 3)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if _, err := SampleCenterline(road, 10); !errors.Is(err, util.ErrRoadsNotAdjusted) {
		t.Errorf("got %v, want ErrRoadsNotAdjusted", err)
	}
}

func TestFeatureCollection(t *testing.T) {
	odr := placedNetwork(t)
	fc, err := FeatureCollection(odr, 10)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(fc.Features) != 2 {
		t.Fatalf("got %d features, want 2", len(fc.Features))
	}
	id, err := fc.Features[0].PropertyInt("id")
	if err != nil || id != 1 {
		t.Errorf("feature id = %d %v, want 1", id, err)
	}
	if fc.Features[0].Geometry == nil || !fc.Features[0].Geometry.IsLineString() {
		t.Error("features must carry LineString geometries")
	}
	if _, err := fc.MarshalJSON(); err != nil {
		t.Errorf("marshal: %v", err)
	}
}

func TestEncodedPolylines(t *testing.T) {
	odr := placedNetwork(t)
	lines, err := EncodedPolylines(odr, 10)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("got %d polylines, want 2", len(lines))
	}
	for id, line := range lines {
		if line == "" {
			t.Errorf("road %d has an empty polyline", id)
		}
	}
}
