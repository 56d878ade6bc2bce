package opendrive

import (
	"testing"

	"github.com/roadplan/xodrgen/pkg/util"
)

func TestLaneSectionIDAssignment(t *testing.T) {
	center := NewDrivingLane(0)
	section := NewLaneSection(0, center)

	left1 := NewDrivingLane(3)
	left2 := NewDrivingLane(3)
	right1 := NewDrivingLane(3)
	section.AddLeftLane(left1).AddLeftLane(left2).AddRightLane(right1)

	if center.ID() != 0 {
		t.Errorf("center lane id = %d, want 0", center.ID())
	}
	if center.laneType != LaneTypeNone {
		t.Errorf("center lane type = %s, want none", center.laneType)
	}
	if left1.ID() != 1 || left2.ID() != 2 {
		t.Errorf("left lane ids = %d %d, want 1 2", left1.ID(), left2.ID())
	}
	if right1.ID() != -1 {
		t.Errorf("right lane id = %d, want -1", right1.ID())
	}
}

func TestLaneWidth(t *testing.T) {
	lane := NewDrivingLane(3)
	lane.AddLaneWidth(4, 0, 0, 0, 50)

	testCases := []struct {
		name string
		s    float64
		want float64
	}{
		{"first record", 10, 3},
		{"at the switch", 50, 4},
		{"second record", 80, 4},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			if got := lane.Width(tt.s); !util.Eq(got, tt.want) {
				t.Errorf("Width(%v) = %v, want %v", tt.s, got, tt.want)
			}
		})
	}
}

func TestLaneWidthPolynomial(t *testing.T) {
	// width grows from 0 to 3 over 100 m with flat ends
	lane := NewLane(LaneTypeDriving, 0, 0, 3*3.0/(100*100), -2*3.0/(100*100*100), 0)
	if got := lane.Width(0); !util.Eq(got, 0) {
		t.Errorf("Width(0) = %v, want 0", got)
	}
	if got := lane.Width(100); !util.Eq(got, 3) {
		t.Errorf("Width(100) = %v, want 3", got)
	}
	if got := lane.Width(50); !util.Eq(got, 1.5) {
		t.Errorf("Width(50) = %v, want 1.5", got)
	}
}

func TestLaneSectionElementOrder(t *testing.T) {
	section := NewLaneSection(0, NewDrivingLane(0))
	section.AddLeftLane(NewDrivingLane(3))
	section.AddLeftLane(NewDrivingLane(3))
	section.AddRightLane(NewDrivingLane(3))

	element := section.Element()
	left := element.SelectElement("left")
	if left == nil {
		t.Fatal("missing left element")
	}
	// left lanes are written outermost first
	lanes := left.SelectElements("lane")
	if len(lanes) != 2 {
		t.Fatalf("got %d left lanes, want 2", len(lanes))
	}
	if got := lanes[0].SelectAttrValue("id", ""); got != "2" {
		t.Errorf("first left lane id = %s, want 2", got)
	}
	if got := lanes[1].SelectAttrValue("id", ""); got != "1" {
		t.Errorf("second left lane id = %s, want 1", got)
	}

	center := element.SelectElement("center")
	if center == nil {
		t.Fatal("missing center element")
	}
	centerLane := center.SelectElement("lane")
	if centerLane.SelectElement("width") != nil {
		t.Error("center lane must not carry width records")
	}
	if centerLane.SelectElement("link") != nil {
		t.Error("center lane must not carry a link record")
	}
}

func TestLanesSectionLookup(t *testing.T) {
	lanes := NewLanes()
	first := NewLaneSection(0, NewDrivingLane(0))
	second := NewLaneSection(100, NewDrivingLane(0))
	lanes.AddLaneSection(first).AddLaneSection(second)

	if lanes.section(0) != first {
		t.Error("section(0) did not return the first section")
	}
	if lanes.section(-1) != second {
		t.Error("section(-1) did not return the last section")
	}
	if lanes.section(1) != second {
		t.Error("section(1) did not return the second section")
	}
}

func TestLaneLinkerAppliedOnAddSection(t *testing.T) {
	first := NewLaneSection(0, NewDrivingLane(0))
	second := NewLaneSection(100, NewDrivingLane(0))
	pre := NewDrivingLane(3)
	suc := NewDrivingLane(3)
	first.AddRightLane(pre)
	second.AddRightLane(suc)

	linker := NewLaneLinker().AddLink(pre, suc)
	lanes := NewLanes()
	lanes.AddLaneSection(first, linker)
	lanes.AddLaneSection(second, linker)

	if got, ok := pre.LinkedLaneID(LinkTypeSuccessor); !ok || got != -1 {
		t.Errorf("predecessor lane successor link = %d %v, want -1 true", got, ok)
	}
	if got, ok := suc.LinkedLaneID(LinkTypePredecessor); !ok || got != -1 {
		t.Errorf("successor lane predecessor link = %d %v, want -1 true", got, ok)
	}
}

func TestLaneOffsetElement(t *testing.T) {
	lanes := NewLanes()
	lanes.AddLaneOffset(NewLaneOffset(0, 1.5, 0, 0, 0))
	lanes.AddLaneSection(NewLaneSection(0, NewDrivingLane(0)))

	element := lanes.Element()
	children := element.ChildElements()
	if len(children) != 2 {
		t.Fatalf("got %d children, want 2", len(children))
	}
	if children[0].Tag != "laneOffset" {
		t.Errorf("first child = %s, want laneOffset", children[0].Tag)
	}
	if got := children[0].SelectAttrValue("a", ""); got != "1.5" {
		t.Errorf("laneOffset a = %s, want 1.5", got)
	}
}
