package opendrive

import (
	"sort"
	"strconv"

	"github.com/beevik/etree"
	"github.com/roadplan/xodrgen/pkg/util"
)

// widthPoly3 is one width record of a lane, a third degree polynomial in
// (s - sOffset).
type widthPoly3 struct {
	a, b, c, d float64
	soffset    float64
}

func (w widthPoly3) width(s float64) float64 {
	ds := s - w.soffset
	return w.a + w.b*ds + w.c*ds*ds + w.d*ds*ds*ds
}

func (w widthPoly3) element() *etree.Element {
	element := etree.NewElement("width")
	element.CreateAttr("a", util.FloatString(w.a))
	element.CreateAttr("b", util.FloatString(w.b))
	element.CreateAttr("c", util.FloatString(w.c))
	element.CreateAttr("d", util.FloatString(w.d))
	element.CreateAttr("sOffset", util.FloatString(w.soffset))
	return element
}

// Lane is a single lane of a lane section. The width polynomial is
// evaluated in (s - sOffset), lane ids are assigned by the section the
// lane is added to.
type Lane struct {
	id        int
	laneType  LaneType
	widths    []widthPoly3
	roadmarks []*RoadMark
	links     *elementLinks
}

func NewLane(laneType LaneType, a, b, c, d, soffset float64) *Lane {
	l := &Lane{
		laneType: laneType,
		links:    newElementLinks(),
	}
	l.AddLaneWidth(a, b, c, d, soffset)
	return l
}

// NewDrivingLane is a shorthand for a driving lane of constant width.
func NewDrivingLane(width float64) *Lane {
	return NewLane(LaneTypeDriving, width, 0, 0, 0, 0)
}

func (l *Lane) ID() int {
	return l.id
}

// AddLaneWidth appends an additional width record to the lane.
func (l *Lane) AddLaneWidth(a, b, c, d, soffset float64) *Lane {
	l.widths = append(l.widths, widthPoly3{a: a, b: b, c: c, d: d, soffset: soffset})
	return l
}

// Width evaluates the lane width at s, using the width record whose
// sOffset covers s. No check is made that s is on the road.
func (l *Lane) Width(s float64) float64 {
	idx := 0
	for i := range l.widths {
		if s >= l.widths[i].soffset {
			idx = i
		} else {
			break
		}
	}
	return l.widths[idx].width(s)
}

func (l *Lane) AddLink(linkType LinkType, id int) *Lane {
	l.links.add(&roadLink{linkType: linkType, elementID: id})
	return l
}

// LinkedLaneID returns the lane id linked as linkType, if any.
func (l *Lane) LinkedLaneID(linkType LinkType) (int, bool) {
	for _, link := range l.links.links {
		if link.linkType == linkType {
			return link.elementID, true
		}
	}
	return 0, false
}

// setLaneID assigns the lane id, the center lane gets forced to type
// none.
func (l *Lane) setLaneID(id int) {
	l.id = id
	if id == 0 {
		l.laneType = LaneTypeNone
	}
}

func (l *Lane) AddRoadMark(roadmark *RoadMark) *Lane {
	l.roadmarks = append(l.roadmarks, roadmark)
	return l
}

func (l *Lane) Element() *etree.Element {
	element := etree.NewElement("lane")
	element.CreateAttr("id", strconv.Itoa(l.id))
	element.CreateAttr("type", string(l.laneType))
	element.CreateAttr("level", "false")
	// the center lane carries no width and omits the link record
	if l.id != 0 {
		element.AddChild(l.links.element())
		widths := make([]widthPoly3, len(l.widths))
		copy(widths, l.widths)
		sort.SliceStable(widths, func(i, j int) bool { return widths[i].soffset < widths[j].soffset })
		for _, w := range widths {
			element.AddChild(w.element())
		}
	}
	marks := make([]*RoadMark, len(l.roadmarks))
	copy(marks, l.roadmarks)
	sort.SliceStable(marks, func(i, j int) bool { return marks[i].soffset < marks[j].soffset })
	for _, rm := range marks {
		element.AddChild(rm.Element())
	}
	return element
}

// LaneSection is one s interval of the lane layout. Lanes are added from
// the center outwards and get their ids assigned on addition, positive to
// the left, negative to the right.
type LaneSection struct {
	s          float64
	centerLane *Lane
	leftLanes  []*Lane
	rightLanes []*Lane
	leftID     int
	rightID    int
}

func NewLaneSection(s float64, centerLane *Lane) *LaneSection {
	centerLane.setLaneID(0)
	return &LaneSection{
		s:          s,
		centerLane: centerLane,
		leftID:     1,
		rightID:    -1,
	}
}

func (ls *LaneSection) AddLeftLane(lane *Lane) *LaneSection {
	lane.setLaneID(ls.leftID)
	ls.leftID++
	ls.leftLanes = append(ls.leftLanes, lane)
	return ls
}

func (ls *LaneSection) AddRightLane(lane *Lane) *LaneSection {
	lane.setLaneID(ls.rightID)
	ls.rightID--
	ls.rightLanes = append(ls.rightLanes, lane)
	return ls
}

func (ls *LaneSection) LeftLanes() []*Lane {
	return ls.leftLanes
}

func (ls *LaneSection) RightLanes() []*Lane {
	return ls.rightLanes
}

func (ls *LaneSection) CenterLane() *Lane {
	return ls.centerLane
}

func (ls *LaneSection) Element() *etree.Element {
	element := etree.NewElement("laneSection")
	element.CreateAttr("s", util.FloatString(ls.s))
	if len(ls.leftLanes) > 0 {
		left := element.CreateElement("left")
		for i := len(ls.leftLanes) - 1; i >= 0; i-- {
			left.AddChild(ls.leftLanes[i].Element())
		}
	}
	center := element.CreateElement("center")
	center.AddChild(ls.centerLane.Element())
	if len(ls.rightLanes) > 0 {
		right := element.CreateElement("right")
		for _, l := range ls.rightLanes {
			right.AddChild(l.Element())
		}
	}
	return element
}

// LaneOffset shifts the whole lane layout laterally, a third degree
// polynomial starting at s.
type LaneOffset struct {
	s          float64
	a, b, c, d float64
}

func NewLaneOffset(s, a, b, c, d float64) *LaneOffset {
	return &LaneOffset{s: s, a: a, b: b, c: c, d: d}
}

func (lo *LaneOffset) Element() *etree.Element {
	element := etree.NewElement("laneOffset")
	element.CreateAttr("s", util.FloatString(lo.s))
	element.CreateAttr("a", util.FloatString(lo.a))
	element.CreateAttr("b", util.FloatString(lo.b))
	element.CreateAttr("c", util.FloatString(lo.c))
	element.CreateAttr("d", util.FloatString(lo.d))
	return element
}

// Lanes is the lane container of a road.
type Lanes struct {
	laneSections []*LaneSection
	laneOffsets  []*LaneOffset
}

func NewLanes() *Lanes {
	return &Lanes{}
}

// AddLaneSection appends a lane section and applies any collected lane
// links to the lanes of the already added sections.
func (ln *Lanes) AddLaneSection(section *LaneSection, laneLinks ...*LaneLinker) *Lanes {
	for _, linker := range laneLinks {
		for _, link := range linker.links {
			if !link.used {
				link.predecessor.AddLink(LinkTypeSuccessor, link.successor.id)
				link.successor.AddLink(LinkTypePredecessor, link.predecessor.id)
				link.used = true
			}
		}
	}
	ln.laneSections = append(ln.laneSections, section)
	return ln
}

func (ln *Lanes) AddLaneOffset(offset *LaneOffset) *Lanes {
	ln.laneOffsets = append(ln.laneOffsets, offset)
	return ln
}

func (ln *Lanes) LaneSections() []*LaneSection {
	return ln.laneSections
}

// section resolves a section index where -1 addresses the last section.
func (ln *Lanes) section(idx int) *LaneSection {
	if idx < 0 {
		return ln.laneSections[len(ln.laneSections)+idx]
	}
	return ln.laneSections[idx]
}

func (ln *Lanes) Element() *etree.Element {
	element := etree.NewElement("lanes")
	for _, lo := range ln.laneOffsets {
		element.AddChild(lo.Element())
	}
	for _, ls := range ln.laneSections {
		element.AddChild(ls.Element())
	}
	return element
}
