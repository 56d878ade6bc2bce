package opendrive

import (
	"github.com/roadplan/xodrgen/pkg/util"
)

// DirectJunctionCreator builds a direct junction, a junction without
// internal roads where the incoming roads connect to each other
// directly, a highway exit for example. Roads link to the junction with
// ElementTypeJunction and the creator records which roads meet across
// it, so the placement solver can anchor them against each other.
type DirectJunctionCreator struct {
	id       int
	junction *Junction
}

func NewDirectJunctionCreator(id int, name string) *DirectJunctionCreator {
	return &DirectJunctionCreator{
		id:       id,
		junction: NewDirectJunction(name, id),
	}
}

// Junction returns the junction element, add it to the network once all
// connections are in place.
func (d *DirectJunctionCreator) Junction() *Junction {
	return d.junction
}

// contactPoint determines at which end a road touches this junction.
func (d *DirectJunctionCreator) contactPoint(road *Road) (ContactPoint, error) {
	if road.successor != nil && road.successor.elementType == ElementTypeJunction &&
		road.successor.elementID == d.id {
		return ContactPointEnd, nil
	}
	if road.predecessor != nil && road.predecessor.elementType == ElementTypeJunction &&
		road.predecessor.elementID == d.id {
		return ContactPointStart, nil
	}
	return "", util.WrapErrorf(nil, util.ErrUndefinedRoadNetwork,
		"road %d is not linked to junction %d", road.id, d.id)
}

// AddConnection connects all lanes the two roads have in common,
// innermost first.
func (d *DirectJunctionCreator) AddConnection(incoming, linked *Road) error {
	if _, err := d.contactPoint(incoming); err != nil {
		return err
	}
	cpLinked, err := d.contactPoint(linked)
	if err != nil {
		return err
	}

	_, _, incomingSec, ok := relatedLaneSection(incoming, linked)
	if !ok {
		return util.WrapErrorf(nil, util.ErrUndefinedRoadNetwork,
			"roads %d and %d do not meet at junction %d", incoming.id, linked.id, d.id)
	}
	_, linkSign, linkedSec, ok := relatedLaneSection(linked, incoming)
	if !ok {
		return util.WrapErrorf(nil, util.ErrUndefinedRoadNetwork,
			"roads %d and %d do not meet at junction %d", incoming.id, linked.id, d.id)
	}
	incSection := incoming.lanes.section(incomingSec)
	linkSection := linked.lanes.section(linkedSec)

	var pairs [][2]int
	if linkSign > 0 {
		n := util.MinInt(len(incSection.rightLanes), len(linkSection.rightLanes))
		for i := 1; i <= n; i++ {
			pairs = append(pairs, [2]int{-i, -i})
		}
		n = util.MinInt(len(incSection.leftLanes), len(linkSection.leftLanes))
		for i := 1; i <= n; i++ {
			pairs = append(pairs, [2]int{i, i})
		}
	} else {
		// roads meet at the same end, so lane ids flip sign
		n := util.MinInt(len(incSection.leftLanes), len(linkSection.rightLanes))
		for i := 1; i <= n; i++ {
			pairs = append(pairs, [2]int{i, -i})
		}
		n = util.MinInt(len(incSection.rightLanes), len(linkSection.leftLanes))
		for i := 1; i <= n; i++ {
			pairs = append(pairs, [2]int{-i, i})
		}
	}

	d.record(incoming, linked, pairs, 0, 0, cpLinked)
	return nil
}

// AddLaneConnection connects the given lanes of the two roads. When the
// lane ids differ in magnitude the roads continue with shifted lane
// layouts and the lane offsets for placement are derived from the first
// pair.
func (d *DirectJunctionCreator) AddLaneConnection(incoming, linked *Road, incomingLanes, linkedLanes []int) error {
	if len(incomingLanes) == 0 || len(incomingLanes) != len(linkedLanes) {
		return util.WrapErrorf(nil, util.ErrBadParamInput,
			"incoming and linked lane ids must pair up, got %d and %d ids",
			len(incomingLanes), len(linkedLanes))
	}
	cpIncoming, err := d.contactPoint(incoming)
	if err != nil {
		return err
	}
	cpLinked, err := d.contactPoint(linked)
	if err != nil {
		return err
	}

	for i := range incomingLanes {
		sameSign := sign(incomingLanes[i]) == sign(linkedLanes[i])
		if (cpIncoming == cpLinked) == sameSign {
			return util.WrapErrorf(nil, util.ErrBadParamInput,
				"driving direction not consistent between roads %d and %d",
				incoming.id, linked.id)
		}
	}

	incomingOffset, linkedOffset := 0, 0
	if util.Abs(incomingLanes[0]) != util.Abs(linkedLanes[0]) {
		laneOffset := util.Abs(util.Abs(incomingLanes[0]) - util.Abs(linkedLanes[0]))
		incomingIsMain := false
		for _, id := range linkedLanes {
			if util.Abs(id) == 1 {
				incomingIsMain = true
			}
		}
		if incomingIsMain {
			linkedOffset = sign(linkedLanes[0]) * laneOffset
			incomingOffset = -sign(incomingLanes[0]*linkedLanes[0]) * linkedOffset
		} else {
			incomingOffset = sign(incomingLanes[0]) * laneOffset
			linkedOffset = -sign(incomingLanes[0]*linkedLanes[0]) * incomingOffset
		}
	}

	pairs := make([][2]int, len(incomingLanes))
	for i := range incomingLanes {
		pairs[i] = [2]int{incomingLanes[i], linkedLanes[i]}
	}
	d.record(incoming, linked, pairs, incomingOffset, linkedOffset, cpLinked)
	return nil
}

// record stores the direct junction partners on both roads and adds the
// connection to the junction element.
func (d *DirectJunctionCreator) record(incoming, linked *Road, pairs [][2]int, incomingOffset, linkedOffset int, cpLinked ContactPoint) {
	if incoming.predecessor != nil && incoming.predecessor.elementType == ElementTypeJunction &&
		incoming.predecessor.elementID == d.id {
		incoming.predDirectJunction[linked.id] = incomingOffset
	} else {
		incoming.succDirectJunction[linked.id] = incomingOffset
	}
	if linked.predecessor != nil && linked.predecessor.elementType == ElementTypeJunction &&
		linked.predecessor.elementID == d.id {
		linked.predDirectJunction[incoming.id] = linkedOffset
	} else {
		linked.succDirectJunction[incoming.id] = linkedOffset
	}

	connection := NewConnection(incoming.id, linked.id, cpLinked)
	for _, p := range pairs {
		connection.AddLaneLink(p[0], p[1])
	}
	d.junction.AddConnection(connection)
}
