package opendrive

import (
	"sort"
	"strconv"

	"github.com/beevik/etree"
	"github.com/roadplan/xodrgen/pkg/util"
)

type LinkType string

const (
	LinkTypePredecessor LinkType = "predecessor"
	LinkTypeSuccessor   LinkType = "successor"
)

// roadLink is one predecessor or successor record, used both for road
// level links (with element type and contact point) and for lane level
// links (plain id).
type roadLink struct {
	linkType     LinkType
	elementID    int
	elementType  ElementType
	contactPoint ContactPoint
}

func (l *roadLink) element() *etree.Element {
	element := etree.NewElement(string(l.linkType))
	if l.elementType == "" {
		element.CreateAttr("id", strconv.Itoa(l.elementID))
	} else {
		element.CreateAttr("elementType", string(l.elementType))
		element.CreateAttr("elementId", strconv.Itoa(l.elementID))
	}
	if l.contactPoint != "" {
		element.CreateAttr("contactPoint", string(l.contactPoint))
	}
	return element
}

// elementLinks collects the links of a road or lane. A link of a type
// already present replaces the old one.
type elementLinks struct {
	links []*roadLink
}

func newElementLinks() *elementLinks {
	return &elementLinks{}
}

func (ls *elementLinks) add(link *roadLink) {
	for i, existing := range ls.links {
		if existing.linkType == link.linkType {
			ls.links[i] = link
			return
		}
	}
	ls.links = append(ls.links, link)
}

func (ls *elementLinks) element() *etree.Element {
	element := etree.NewElement("link")
	// predecessor has to precede successor to comply to the schema
	sorted := make([]*roadLink, len(ls.links))
	copy(sorted, ls.links)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].linkType < sorted[j].linkType })
	for _, l := range sorted {
		element.AddChild(l.element())
	}
	return element
}

// LaneLinker collects lane to lane links before the sections are added
// to a road. Not part of the output format, only a helper for building.
type LaneLinker struct {
	links []*laneLink
}

type laneLink struct {
	predecessor *Lane
	successor   *Lane
	used        bool
}

func NewLaneLinker() *LaneLinker {
	return &LaneLinker{}
}

func (ll *LaneLinker) AddLink(predecessor, successor *Lane) *LaneLinker {
	ll.links = append(ll.links, &laneLink{predecessor: predecessor, successor: successor})
	return ll
}

// AreRoadsConsecutive reports whether road2 directly follows road1, both
// linked as plain roads.
func AreRoadsConsecutive(road1, road2 *Road) bool {
	return road1.successor != nil && road2.predecessor != nil &&
		road1.successor.elementType == ElementTypeRoad &&
		road2.predecessor.elementType == ElementTypeRoad &&
		road1.successor.elementID == road2.id &&
		road2.predecessor.elementID == road1.id
}

// AreRoadsConnected reports whether the roads meet head to head
// (successor/successor) or tail to tail (predecessor/predecessor).
func AreRoadsConnected(road1, road2 *Road) (bool, LinkType) {
	if road1.successor != nil && road2.successor != nil &&
		road1.successor.elementType == ElementTypeRoad &&
		road2.successor.elementType == ElementTypeRoad &&
		road1.successor.elementID == road2.id &&
		road2.successor.elementID == road1.id {
		return true, LinkTypeSuccessor
	}
	if road1.predecessor != nil && road2.predecessor != nil &&
		road1.predecessor.elementType == ElementTypeRoad &&
		road2.predecessor.elementType == ElementTypeRoad &&
		road1.predecessor.elementID == road2.id &&
		road2.predecessor.elementID == road1.id {
		return true, LinkTypePredecessor
	}
	return false, ""
}

// CreateLaneLinks matches the lanes of two roads and creates lane links
// if the roads are connected. Roads with differing lane counts get only
// their common inner lanes linked.
func CreateLaneLinks(road1, road2 *Road) {
	if road1.roadType == -1 && road2.roadType == -1 {
		switch {
		case AreRoadsConsecutive(road1, road2):
			createLinksRoads(road1, road2, "")
		case AreRoadsConsecutive(road2, road1):
			createLinksRoads(road2, road1, "")
		default:
			if connected, connectionType := AreRoadsConnected(road1, road2); connected {
				createLinksRoads(road1, road2, connectionType)
			}
		}
	} else if road1.roadType != -1 {
		createLinksConnectingRoad(road1, road2)
	} else {
		createLinksConnectingRoad(road2, road1)
	}
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	if v > 0 {
		return 1
	}
	return 0
}

// createLinksConnectingRoad links the lanes of a junction internal road
// to one of its incoming roads, flipping the lane ids when the contact
// point demands it and applying any lane offset of the connection.
func createLinksConnectingRoad(connecting, road *Road) {
	linkType, linkSign, connectingSec, found := relatedLaneSection(connecting, road)
	if !found {
		return
	}
	section := connecting.lanes.section(connectingSec)

	offset := func(linkID int) int {
		if linkType == LinkTypePredecessor {
			if lo, ok := connecting.laneOffsetPred[road.id]; ok {
				return sign(linkID) * util.Abs(lo)
			}
		} else if lo, ok := connecting.laneOffsetSuc[road.id]; ok {
			return sign(linkID) * util.Abs(lo)
		}
		return 0
	}

	for _, lane := range section.leftLanes {
		linkID := lane.id * linkSign
		linkID += offset(linkID)
		lane.AddLink(linkType, linkID)
	}
	for _, lane := range section.rightLanes {
		linkID := lane.id * linkSign
		linkID += offset(linkID)
		lane.AddLink(linkType, linkID)
	}
}

// relatedLaneSection determines how road links to connectedRoad: the link
// type, whether the lane id sign flips, and which lane section of road
// touches the connection (0 for the first, -1 for the last).
func relatedLaneSection(road, connectedRoad *Road) (LinkType, int, int, bool) {
	if road.successor != nil && road.successor.elementID == connectedRoad.id {
		s := -1
		if road.successor.contactPoint == ContactPointStart {
			s = 1
		}
		return LinkTypeSuccessor, s, -1, true
	}
	if road.predecessor != nil && road.predecessor.elementID == connectedRoad.id {
		s := 1
		if road.predecessor.contactPoint == ContactPointStart {
			s = -1
		}
		return LinkTypePredecessor, s, 0, true
	}

	// roads meeting through a direct junction
	if road.predecessor != nil && connectedRoad.predecessor != nil &&
		road.predecessor.elementType == ElementTypeJunction &&
		connectedRoad.predecessor.elementType == ElementTypeJunction &&
		road.predecessor.elementID == connectedRoad.predecessor.elementID {
		return LinkTypePredecessor, -1, 0, true
	}
	if road.successor != nil && connectedRoad.predecessor != nil &&
		road.successor.elementType == ElementTypeJunction &&
		connectedRoad.predecessor.elementType == ElementTypeJunction &&
		road.successor.elementID == connectedRoad.predecessor.elementID {
		return LinkTypeSuccessor, 1, -1, true
	}
	if road.successor != nil && connectedRoad.successor != nil &&
		road.successor.elementType == ElementTypeJunction &&
		connectedRoad.successor.elementType == ElementTypeJunction &&
		road.successor.elementID == connectedRoad.successor.elementID {
		return LinkTypeSuccessor, -1, -1, true
	}
	if road.predecessor != nil && connectedRoad.successor != nil &&
		road.predecessor.elementType == ElementTypeJunction &&
		connectedRoad.successor.elementType == ElementTypeJunction &&
		road.predecessor.elementID == connectedRoad.successor.elementID {
		return LinkTypePredecessor, 1, 0, true
	}

	// the view from a plain road onto a junction internal road
	if connectedRoad.predecessor != nil && connectedRoad.predecessor.elementID == road.id &&
		connectedRoad.roadType != -1 {
		if connectedRoad.predecessor.contactPoint == ContactPointStart {
			return "", -1, 0, true
		}
		return "", 1, -1, true
	}
	if connectedRoad.successor != nil && connectedRoad.successor.elementID == road.id &&
		connectedRoad.roadType != -1 {
		if connectedRoad.successor.contactPoint == ContactPointStart {
			return "", 1, 0, true
		}
		return "", -1, -1, true
	}
	return "", 0, 0, false
}

// createLinksRoads links the lanes of two plain roads. With sameType the
// roads meet at the same end, so left lanes of one continue into right
// lanes of the other. Only the common inner lanes are linked when the
// lane counts differ.
func createLinksRoads(preRoad, sucRoad *Road, sameType LinkType) {
	if sameType != "" {
		secPos := 0
		if sameType == LinkTypeSuccessor {
			secPos = -1
		}
		preSec := preRoad.lanes.section(secPos)
		sucSec := sucRoad.lanes.section(secPos)

		n := util.MinInt(len(preSec.leftLanes), len(sucSec.rightLanes))
		for i := 0; i < n; i++ {
			linkID := preSec.leftLanes[i].id
			preSec.leftLanes[i].AddLink(sameType, -linkID)
			sucSec.rightLanes[i].AddLink(sameType, linkID)
		}
		n = util.MinInt(len(preSec.rightLanes), len(sucSec.leftLanes))
		for i := 0; i < n; i++ {
			linkID := preSec.rightLanes[i].id
			preSec.rightLanes[i].AddLink(sameType, -linkID)
			sucSec.leftLanes[i].AddLink(sameType, linkID)
		}
		return
	}

	preLinkType, preSign, preSecIdx, preFound := relatedLaneSection(preRoad, sucRoad)
	sucLinkType, _, sucSecIdx, sucFound := relatedLaneSection(sucRoad, preRoad)
	if !preFound || !sucFound {
		return
	}
	preSec := preRoad.lanes.section(preSecIdx)
	sucSec := sucRoad.lanes.section(sucSecIdx)

	n := util.MinInt(len(preSec.leftLanes), len(sucSec.leftLanes))
	for i := 0; i < n; i++ {
		linkID := preSec.leftLanes[i].id * preSign
		preSec.leftLanes[i].AddLink(preLinkType, linkID)
		sucSec.leftLanes[i].AddLink(sucLinkType, linkID*preSign)
	}
	n = util.MinInt(len(preSec.rightLanes), len(sucSec.rightLanes))
	for i := 0; i < n; i++ {
		linkID := preSec.rightLanes[i].id
		preSec.rightLanes[i].AddLink(preLinkType, linkID)
		sucSec.rightLanes[i].AddLink(sucLinkType, linkID)
	}
}
