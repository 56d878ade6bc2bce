package opendrive

import (
	"math"
	"strconv"

	"github.com/beevik/etree"
	"github.com/roadplan/xodrgen/pkg/geometry"
	"github.com/roadplan/xodrgen/pkg/util"
)

// roadTypeRecord is one <type> entry of a road, optionally carrying a
// speed limit.
type roadTypeRecord struct {
	roadType  RoadType
	s         float64
	country   string
	speed     float64
	speedUnit string
	hasSpeed  bool
}

func (t *roadTypeRecord) element() *etree.Element {
	element := etree.NewElement("type")
	element.CreateAttr("s", util.FloatString(t.s))
	element.CreateAttr("type", string(t.roadType))
	if t.country != "" {
		element.CreateAttr("country", t.country)
	}
	if t.hasSpeed {
		speed := element.CreateElement("speed")
		speed.CreateAttr("max", util.FloatString(t.speed))
		speed.CreateAttr("unit", t.speedUnit)
	}
	return element
}

// Road is one road of the network: a reference line with its lane layout,
// links to its neighbours and any objects and signals placed along it.
// The junction field is -1 for plain roads and holds the junction id for
// junction internal roads.
type Road struct {
	id       int
	planView *geometry.PlanView
	lanes    *Lanes
	roadType int
	name     string
	rule     TrafficRule

	links       *elementLinks
	successor   *roadLink
	predecessor *roadLink

	laneOffsetSuc  map[int]int
	laneOffsetPred map[int]int

	succDirectJunction map[int]int
	predDirectJunction map[int]int

	objects         []*Object
	signals         []*Signal
	types           []*roadTypeRecord
	objectIDs       map[int]bool
	objectIDCounter int
	signalIDs       map[int]bool
	signalIDCounter int
}

func NewRoad(id int, planView *geometry.PlanView, lanes *Lanes) *Road {
	return &Road{
		id:                 id,
		planView:           planView,
		lanes:              lanes,
		roadType:           -1,
		rule:               TrafficRuleRHT,
		links:              newElementLinks(),
		laneOffsetSuc:      map[int]int{},
		laneOffsetPred:     map[int]int{},
		succDirectJunction: map[int]int{},
		predDirectJunction: map[int]int{},
		objectIDs:          map[int]bool{},
		signalIDs:          map[int]bool{},
	}
}

// NewConnectingRoad creates a junction internal road.
func NewConnectingRoad(id int, planView *geometry.PlanView, lanes *Lanes, junctionID int) *Road {
	r := NewRoad(id, planView, lanes)
	r.roadType = junctionID
	return r
}

func (r *Road) ID() int {
	return r.id
}

func (r *Road) PlanView() *geometry.PlanView {
	return r.planView
}

func (r *Road) Lanes() *Lanes {
	return r.lanes
}

// JunctionID returns the junction the road belongs to, -1 for plain
// roads.
func (r *Road) JunctionID() int {
	return r.roadType
}

func (r *Road) SetName(name string) *Road {
	r.name = name
	return r
}

func (r *Road) SetRule(rule TrafficRule) *Road {
	r.rule = rule
	return r
}

// AddSuccessor links the road that follows this one. Only one successor
// is allowed.
func (r *Road) AddSuccessor(elementType ElementType, elementID int, contactPoint ContactPoint) error {
	return r.AddSuccessorOffset(elementType, elementID, contactPoint, 0)
}

// AddSuccessorOffset links the successor with a lane offset, for roads
// that continue into an id-shifted lane layout.
func (r *Road) AddSuccessorOffset(elementType ElementType, elementID int, contactPoint ContactPoint, laneOffset int) error {
	if r.successor != nil {
		return util.WrapErrorf(nil, util.ErrIDAlreadyExists,
			"road %d already has a successor", r.id)
	}
	r.successor = &roadLink{
		linkType:     LinkTypeSuccessor,
		elementID:    elementID,
		elementType:  elementType,
		contactPoint: contactPoint,
	}
	r.links.add(r.successor)
	r.laneOffsetSuc[elementID] = laneOffset
	return nil
}

// AddPredecessor links the road this one follows. Only one predecessor
// is allowed.
func (r *Road) AddPredecessor(elementType ElementType, elementID int, contactPoint ContactPoint) error {
	return r.AddPredecessorOffset(elementType, elementID, contactPoint, 0)
}

func (r *Road) AddPredecessorOffset(elementType ElementType, elementID int, contactPoint ContactPoint, laneOffset int) error {
	if r.predecessor != nil {
		return util.WrapErrorf(nil, util.ErrIDAlreadyExists,
			"road %d already has a predecessor", r.id)
	}
	r.predecessor = &roadLink{
		linkType:     LinkTypePredecessor,
		elementID:    elementID,
		elementType:  elementType,
		contactPoint: contactPoint,
	}
	r.links.add(r.predecessor)
	r.laneOffsetPred[elementID] = laneOffset
	return nil
}

// nextObjectID hands out the next free object id, skipping over ids
// claimed explicitly.
func (r *Road) nextObjectID() int {
	for r.objectIDs[r.objectIDCounter] {
		r.objectIDCounter++
	}
	return r.objectIDCounter
}

// AddObject adds an object to the road. Objects without an id, or with an
// id already used on this road, get the next free id assigned.
func (r *Road) AddObject(objects ...*Object) *Road {
	for _, o := range objects {
		if !o.idAssigned || r.objectIDs[o.id] {
			o.id = r.nextObjectID()
			o.idAssigned = true
		}
		r.objectIDs[o.id] = true
		r.objects = append(r.objects, o)
	}
	return r
}

func (r *Road) nextSignalID() int {
	for r.signalIDs[r.signalIDCounter] {
		r.signalIDCounter++
	}
	return r.signalIDCounter
}

// AddSignal adds a signal to the road, assigning a free id when needed.
func (r *Road) AddSignal(signals ...*Signal) *Road {
	for _, s := range signals {
		if !s.idAssigned || r.signalIDs[s.id] {
			s.id = r.nextSignalID()
			s.idAssigned = true
		}
		r.signalIDs[s.id] = true
		r.signals = append(r.signals, s)
	}
	return r
}

// AddType adds a road type record starting at s.
func (r *Road) AddType(roadType RoadType, s float64) *Road {
	r.types = append(r.types, &roadTypeRecord{roadType: roadType, s: s})
	return r
}

// AddTypeWithSpeed adds a road type record with a speed limit. Unit can
// be m/s, mph or kph.
func (r *Road) AddTypeWithSpeed(roadType RoadType, s, speed float64, unit string) error {
	if unit != "m/s" && unit != "mph" && unit != "kph" {
		return util.WrapErrorf(nil, util.ErrBadParamInput,
			"speed unit can only be m/s, mph, or kph, not %s", unit)
	}
	r.types = append(r.types, &roadTypeRecord{
		roadType:  roadType,
		s:         s,
		speed:     speed,
		speedUnit: unit,
		hasSpeed:  true,
	})
	return nil
}

// AddObjectRoadside repeats a prototype object along the outer lane
// border of the road. Only valid after the road network has been
// adjusted.
func (r *Road) AddObjectRoadside(prototype *Object, repeatDistance, sOffset, tOffset float64, side RoadSide) error {
	if !r.planView.Adjusted {
		return util.WrapErrorf(nil, util.ErrRoadsNotAdjusted,
			"roadside objects need adjusted roads, adjust the network first")
	}

	sections := r.lanes.laneSections
	sectionS := make([]float64, len(sections))
	sectionLength := make([]float64, len(sections))
	leftWidths := make([]float64, len(sections))
	rightWidths := make([]float64, len(sections))
	for i, section := range sections {
		sectionS[i] = section.s
		if i == len(sections)-1 {
			sectionLength[i] = r.planView.TotalLength() - section.s
		} else {
			sectionLength[i] = sections[i+1].s - section.s
		}
		for _, lane := range section.leftLanes {
			leftWidths[i] += lane.widths[0].a
		}
		for _, lane := range section.rightLanes {
			rightWidths[i] += lane.widths[0].a
		}
	}

	place := func(widths []float64, hdgFactor float64) error {
		obj := prototype.clone()
		obj.t = (widths[0] + tOffset) * hdgFactor
		obj.hdg = math.Pi * (1 + hdgFactor) / 2
		obj.s = sOffset

		var repeatLengths, repeatS, repeatT []float64
		accumulated := 0.0
		for i, length := range sectionLength {
			accumulated += length
			if i == 0 {
				repeatLengths = append(repeatLengths, accumulated-sOffset)
				repeatS = append(repeatS, sOffset)
				repeatT = append(repeatT, (widths[i]+tOffset)*hdgFactor)
			} else if widths[i] != widths[i-1] {
				repeatLengths = append(repeatLengths, length)
				repeatS = append(repeatS, sectionS[i])
				repeatT = append(repeatT, (widths[i]+tOffset)*hdgFactor)
			} else {
				repeatLengths[len(repeatLengths)-1] += length
			}
		}
		for i, repeatLength := range repeatLengths {
			if repeatLength < 0 {
				return util.WrapErrorf(nil, util.ErrBadParamInput,
					"negative repeat length for roadside object %q, use an sOffset shorter than the road", prototype.name)
			}
			obj.AddRepeat(RepeatSpec{
				Length:   repeatLength,
				Distance: repeatDistance,
				S:        repeatS[i],
				TStart:   repeatT[i],
				TEnd:     repeatT[i],
			})
		}
		r.AddObject(obj)
		return nil
	}

	if side != RoadSideRight {
		if err := place(leftWidths, 1); err != nil {
			return err
		}
	}
	if side != RoadSideLeft {
		if err := place(rightWidths, -1); err != nil {
			return err
		}
	}
	return nil
}

// EndPoint returns the pose at the end of the road, valid after
// adjustment.
func (r *Road) EndPoint() (float64, float64, float64) {
	return r.planView.EndPoint()
}

func (r *Road) Element() *etree.Element {
	element := etree.NewElement("road")
	if r.name != "" {
		element.CreateAttr("name", r.name)
	}
	element.CreateAttr("rule", string(r.rule))
	element.CreateAttr("id", strconv.Itoa(r.id))
	element.CreateAttr("junction", strconv.Itoa(r.roadType))
	element.CreateAttr("length", util.FloatString(r.planView.TotalLength()))
	element.AddChild(r.links.element())
	for _, t := range r.types {
		element.AddChild(t.element())
	}
	element.AddChild(r.planView.Element())
	element.AddChild(r.lanes.Element())
	if len(r.objects) > 0 {
		objects := element.CreateElement("objects")
		for _, o := range r.objects {
			objects.AddChild(o.Element())
		}
	}
	if len(r.signals) > 0 {
		signals := element.CreateElement("signals")
		for _, s := range r.signals {
			signals.AddChild(s.Element())
		}
	}
	return element
}
