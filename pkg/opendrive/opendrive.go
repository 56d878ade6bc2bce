package opendrive

import (
	"math"
	"sort"
	"time"

	"github.com/beevik/etree"
	"github.com/roadplan/xodrgen/pkg/util"
	"go.uber.org/zap"
)

type header struct {
	name string
}

func (h *header) element() *etree.Element {
	element := etree.NewElement("header")
	element.CreateAttr("name", h.name)
	element.CreateAttr("revMajor", "1")
	element.CreateAttr("revMinor", "5")
	element.CreateAttr("date", time.Now().Format("2006-01-02 15:04:05"))
	element.CreateAttr("north", "0.0")
	element.CreateAttr("south", "0.0")
	element.CreateAttr("east", "0.0")
	element.CreateAttr("west", "0.0")
	return element
}

// OpenDrive holds a full road network and writes it out as an OpenDRIVE
// file. Roads keep the order they were added in.
type OpenDrive struct {
	header         header
	roads          map[int]*Road
	roadOrder      []int
	junctions      []*Junction
	junctionGroups []*JunctionGroup
	log            *zap.Logger
}

func NewOpenDrive(name string, log *zap.Logger) *OpenDrive {
	if log == nil {
		log = zap.NewNop()
	}
	return &OpenDrive{
		header: header{name: name},
		roads:  map[int]*Road{},
		log:    log,
	}
}

func (o *OpenDrive) Name() string {
	return o.header.name
}

// AddRoad adds a road to the network. Road ids have to be unique.
func (o *OpenDrive) AddRoad(road *Road) error {
	if _, ok := o.roads[road.id]; ok {
		return util.WrapErrorf(nil, util.ErrIDAlreadyExists,
			"road id %d has already been added", road.id)
	}
	o.roads[road.id] = road
	o.roadOrder = append(o.roadOrder, road.id)
	return nil
}

func (o *OpenDrive) Road(id int) (*Road, bool) {
	road, ok := o.roads[id]
	return road, ok
}

// Roads returns the roads in the order they were added.
func (o *OpenDrive) Roads() []*Road {
	roads := make([]*Road, 0, len(o.roadOrder))
	for _, id := range o.roadOrder {
		roads = append(roads, o.roads[id])
	}
	return roads
}

// AddJunction adds a junction to the network. Junction ids have to be
// unique.
func (o *OpenDrive) AddJunction(junction *Junction) error {
	for _, j := range o.junctions {
		if j.ID() == junction.ID() {
			return util.WrapErrorf(nil, util.ErrIDAlreadyExists,
				"junction with id %d has already been added", junction.ID())
		}
	}
	o.junctions = append(o.junctions, junction)
	return nil
}

// AddJunctionGroup adds a junction group to the network. Group ids have
// to be unique.
func (o *OpenDrive) AddJunctionGroup(group *JunctionGroup) error {
	for _, g := range o.junctionGroups {
		if g.ID() == group.ID() {
			return util.WrapErrorf(nil, util.ErrIDAlreadyExists,
				"junction group with id %d has already been added", group.ID())
		}
	}
	o.junctionGroups = append(o.junctionGroups, group)
	return nil
}

// AdjustRoadsAndLanes places all road geometries and then links the
// lanes of every pair of neighbouring roads.
func (o *OpenDrive) AdjustRoadsAndLanes() error {
	if err := o.AdjustStartpoints(); err != nil {
		return err
	}
	for i := 0; i < len(o.roadOrder); i++ {
		for j := i + 1; j < len(o.roadOrder); j++ {
			CreateLaneLinks(o.roads[o.roadOrder[i]], o.roads[o.roadOrder[j]])
		}
	}
	return nil
}

// adjustRoadWrtNeighbour places a road against an already placed
// neighbour. The contact point is passed in explicitly since a road does
// not know the contact point of a junction internal road it connects to.
func (o *OpenDrive) adjustRoadWrtNeighbour(roadID, neighbourID int, contactPoint ContactPoint, linkType LinkType) error {
	road := o.roads[roadID]
	neighbour, ok := o.roads[neighbourID]
	if !ok {
		return util.WrapErrorf(nil, util.ErrUndefinedRoadNetwork,
			"road %d links to unknown road %d", roadID, neighbourID)
	}

	var x, y, h float64
	switch contactPoint {
	case ContactPointStart:
		x, y, h = neighbour.planView.StartPoint()
		// attached at the neighbour's start, so the road runs in the
		// opposite direction
		h += math.Pi
	case ContactPointEnd:
		x, y, h = neighbour.planView.EndPoint()
	default:
		return util.WrapErrorf(nil, util.ErrBadParamInput,
			"unknown contact point %q", contactPoint)
	}

	if linkType == LinkTypePredecessor {
		numOffsets := 0
		if len(road.predDirectJunction) > 0 {
			numOffsets = road.predDirectJunction[neighbourID]
		} else if v, ok := road.laneOffsetPred[neighbourID]; ok {
			numOffsets = v
		}
		width := o.calculateLaneOffsetWidth(neighbourID, numOffsets, contactPoint)
		x = -width*math.Sin(h) + x
		y = width*math.Cos(h) + y
		road.planView.SetStartPoint(x, y, h)
		road.planView.Adjust(false)
	} else {
		numOffsets := 0
		if len(road.succDirectJunction) > 0 {
			numOffsets = road.succDirectJunction[neighbourID]
		} else if v, ok := road.laneOffsetSuc[neighbourID]; ok {
			numOffsets = v
		}
		width := o.calculateLaneOffsetWidth(neighbourID, numOffsets, contactPoint)
		x = width*math.Sin(h) + x
		y = -width*math.Cos(h) + y
		road.planView.SetStartPoint(x, y, h)
		road.planView.Adjust(true)
	}
	return nil
}

// calculateLaneOffsetWidth sums the widths of the neighbour's inner
// lanes that the lane offset skips over.
func (o *OpenDrive) calculateLaneOffsetWidth(neighbourID, numOffsets int, contactPoint ContactPoint) float64 {
	neighbour := o.roads[neighbourID]
	var section *LaneSection
	var s float64
	if contactPoint == ContactPointStart {
		section = neighbour.lanes.section(0)
	} else {
		section = neighbour.lanes.section(-1)
		s = neighbour.planView.RawLength()
	}
	width := 0.0
	if numOffsets < 0 {
		for _, lane := range section.rightLanes[:-numOffsets] {
			width -= lane.Width(s)
		}
	}
	if numOffsets > 0 {
		for _, lane := range section.leftLanes[:numOffsets] {
			width += lane.Width(s)
		}
	}
	return width
}

// AdjustStartpoints places the geometries of all roads. Roads with a
// fixed start position are placed first, otherwise the first added road
// is used as the pivot. Remaining roads are placed against already
// placed neighbours until all are done, with junction internal roads
// immediately anchoring their other end. Fails when some roads can
// never be reached from a placed road.
func (o *OpenDrive) AdjustStartpoints() error {
	adjustedCount := 0
	haveFixed := false
	for _, id := range o.roadOrder {
		road := o.roads[id]
		if road.planView.Fixed && !road.planView.Adjusted {
			road.planView.Adjust(false)
			o.log.Debug("placed fixed road", zap.Int("road", id))
			adjustedCount++
			haveFixed = true
		} else if road.planView.Adjusted {
			haveFixed = true
			adjustedCount++
		}
	}

	if len(o.roads) > 0 && !haveFixed {
		o.roads[o.roadOrder[0]].planView.Adjust(false)
		o.log.Debug("placed pivot road", zap.Int("road", o.roadOrder[0]))
		adjustedCount++
	}

	// every useful pass places at least one road, so the number of
	// roads bounds the number of passes
	for pass := 0; adjustedCount < len(o.roads) && pass <= len(o.roads); pass++ {
		progressed := 0

		for _, id := range o.roadOrder {
			road := o.roads[id]
			if road.planView.Adjusted {
				continue
			}

			if road.predecessor != nil &&
				road.predecessor.elementType != ElementTypeJunction &&
				o.roadIsAdjusted(road.predecessor.elementID) {
				if err := o.adjustRoadWrtNeighbour(id, road.predecessor.elementID,
					road.predecessor.contactPoint, LinkTypePredecessor); err != nil {
					return err
				}
				progressed++

				if road.roadType != -1 && road.successor != nil &&
					!o.roadIsAdjusted(road.successor.elementID) {
					succID := road.successor.elementID
					linkType := LinkTypeSuccessor
					if road.successor.contactPoint == ContactPointStart {
						linkType = LinkTypePredecessor
					}
					if err := o.adjustRoadWrtNeighbour(succID, id, ContactPointEnd, linkType); err != nil {
						return err
					}
					progressed++
				}
			} else if road.successor != nil &&
				road.successor.elementType != ElementTypeJunction &&
				o.roadIsAdjusted(road.successor.elementID) {
				if err := o.adjustRoadWrtNeighbour(id, road.successor.elementID,
					road.successor.contactPoint, LinkTypeSuccessor); err != nil {
					return err
				}
				progressed++

				if road.roadType != -1 && road.predecessor != nil &&
					!o.roadIsAdjusted(road.predecessor.elementID) {
					predID := road.predecessor.elementID
					linkType := LinkTypeSuccessor
					if road.predecessor.contactPoint == ContactPointStart {
						linkType = LinkTypePredecessor
					}
					if err := o.adjustRoadWrtNeighbour(predID, id, ContactPointStart, linkType); err != nil {
						return err
					}
					progressed++
				}
			} else if len(road.succDirectJunction) > 0 || len(road.predDirectJunction) > 0 {
				placed, err := o.adjustAgainstDirectJunction(id)
				if err != nil {
					return err
				}
				if placed {
					progressed++
				}
			}
		}

		if progressed == 0 {
			break
		}
		adjustedCount += progressed
	}

	if ids := o.unadjustedRoadIDs(); len(ids) > 0 {
		return util.WrapErrorf(nil, util.ErrUndefinedRoadNetwork,
			"roads %v cannot be placed, they are missing the successor or predecessor links to reach a placed road, for disconnected roads add a start position to one of the plan views",
			ids)
	}
	return nil
}

func (o *OpenDrive) roadIsAdjusted(id int) bool {
	road, ok := o.roads[id]
	return ok && road.planView.Adjusted
}

func (o *OpenDrive) unadjustedRoadIDs() []int {
	var ids []int
	for _, id := range o.roadOrder {
		if !o.roads[id].planView.Adjusted {
			ids = append(ids, id)
		}
	}
	return ids
}

// adjustAgainstDirectJunction places a road against an adjusted partner
// across a direct junction. One anchor is enough, so the first adjusted
// partner wins. Reports whether the road was placed.
func (o *OpenDrive) adjustAgainstDirectJunction(id int) (bool, error) {
	road := o.roads[id]

	place := func(partners map[int]int, linkType LinkType) (bool, error) {
		for _, dr := range sortedKeys(partners) {
			if !o.roadIsAdjusted(dr) {
				continue
			}
			var cp ContactPoint
			if _, ok := o.roads[dr].succDirectJunction[id]; ok {
				cp = ContactPointEnd
			} else if _, ok := o.roads[dr].predDirectJunction[id]; ok {
				cp = ContactPointStart
			} else {
				return false, util.WrapErrorf(nil, util.ErrUndefinedRoadNetwork,
					"direct junction between roads %d and %d is not fully defined", id, dr)
			}
			if err := o.adjustRoadWrtNeighbour(id, dr, cp, linkType); err != nil {
				return false, err
			}
			return true, nil
		}
		return false, nil
	}

	if road.successor != nil && road.successor.elementType == ElementTypeJunction {
		placed, err := place(road.succDirectJunction, LinkTypeSuccessor)
		if placed || err != nil {
			return placed, err
		}
	}
	if road.predecessor != nil && road.predecessor.elementType == ElementTypeJunction {
		return place(road.predDirectJunction, LinkTypePredecessor)
	}
	return false, nil
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func (o *OpenDrive) Element() *etree.Element {
	element := etree.NewElement("OpenDRIVE")
	element.AddChild(o.header.element())
	for _, id := range o.roadOrder {
		element.AddChild(o.roads[id].Element())
	}
	for _, j := range o.junctions {
		element.AddChild(j.Element())
	}
	for _, g := range o.junctionGroups {
		element.AddChild(g.Element())
	}
	return element
}

// Document returns the network as an xml document with declaration and
// indentation.
func (o *OpenDrive) Document() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.SetRoot(o.Element())
	doc.Indent(4)
	return doc
}

// WriteXML writes the network to an .xodr file. An empty filename
// defaults to the network name.
func (o *OpenDrive) WriteXML(filename string) error {
	if filename == "" {
		filename = o.header.name + ".xodr"
	}
	if err := o.Document().WriteToFile(filename); err != nil {
		return util.WrapErrorf(err, util.ErrBadParamInput,
			"writing road network to %s", filename)
	}
	return nil
}
