package opendrive

import (
	"sort"
	"strconv"

	"github.com/beevik/etree"
)

// Connection is one incoming to connecting road pairing inside a
// junction.
type Connection struct {
	incomingRoad   int
	connectingRoad int
	contactPoint   ContactPoint
	id             int
	idSet          bool
	laneLinks      [][2]int
}

func NewConnection(incomingRoad, connectingRoad int, contactPoint ContactPoint) *Connection {
	return &Connection{
		incomingRoad:   incomingRoad,
		connectingRoad: connectingRoad,
		contactPoint:   contactPoint,
	}
}

// setID assigns the connection id unless one was set already.
func (c *Connection) setID(id int) {
	if !c.idSet {
		c.id = id
		c.idSet = true
	}
}

// AddLaneLink pairs a lane of the incoming road with a lane of the
// connecting road.
func (c *Connection) AddLaneLink(inLane, outLane int) *Connection {
	c.laneLinks = append(c.laneLinks, [2]int{inLane, outLane})
	return c
}

func (c *Connection) Element(junctionType JunctionType) *etree.Element {
	element := etree.NewElement("connection")
	element.CreateAttr("incomingRoad", strconv.Itoa(c.incomingRoad))
	element.CreateAttr("id", strconv.Itoa(c.id))
	element.CreateAttr("contactPoint", string(c.contactPoint))
	if junctionType == JunctionTypeDirect {
		element.CreateAttr("linkedRoad", strconv.Itoa(c.connectingRoad))
	} else {
		element.CreateAttr("connectingRoad", strconv.Itoa(c.connectingRoad))
	}
	links := make([][2]int, len(c.laneLinks))
	copy(links, c.laneLinks)
	sort.SliceStable(links, func(i, j int) bool { return links[i][0] > links[j][0] })
	for _, l := range links {
		laneLink := element.CreateElement("laneLink")
		laneLink.CreateAttr("from", strconv.Itoa(l[0]))
		laneLink.CreateAttr("to", strconv.Itoa(l[1]))
	}
	return element
}

// Junction is a junction of the road network, a set of connections
// between incoming and junction internal roads. Connection ids are
// assigned in addition order.
type Junction struct {
	name         string
	id           int
	junctionType JunctionType
	connections  []*Connection
	idCounter    int
}

func NewJunction(name string, id int) *Junction {
	return &Junction{
		name:         name,
		id:           id,
		junctionType: JunctionTypeDefault,
	}
}

func NewDirectJunction(name string, id int) *Junction {
	return &Junction{
		name:         name,
		id:           id,
		junctionType: JunctionTypeDirect,
	}
}

func (j *Junction) ID() int {
	return j.id
}

func (j *Junction) Connections() []*Connection {
	return j.connections
}

func (j *Junction) AddConnection(connection *Connection) *Junction {
	connection.setID(j.idCounter)
	j.idCounter++
	j.connections = append(j.connections, connection)
	return j
}

func (j *Junction) Element() *etree.Element {
	element := etree.NewElement("junction")
	element.CreateAttr("name", j.name)
	element.CreateAttr("id", strconv.Itoa(j.id))
	element.CreateAttr("type", string(j.junctionType))
	for _, c := range j.connections {
		element.AddChild(c.Element(j.junctionType))
	}
	return element
}

// JunctionGroup bundles junctions that form one logical interchange,
// a roundabout for example.
type JunctionGroup struct {
	name      string
	id        int
	groupType JunctionGroupType
	junctions []int
}

func NewJunctionGroup(name string, id int, groupType JunctionGroupType) *JunctionGroup {
	return &JunctionGroup{
		name:      name,
		id:        id,
		groupType: groupType,
	}
}

func (jg *JunctionGroup) ID() int {
	return jg.id
}

func (jg *JunctionGroup) AddJunction(junctionID int) *JunctionGroup {
	jg.junctions = append(jg.junctions, junctionID)
	return jg
}

func (jg *JunctionGroup) Element() *etree.Element {
	element := etree.NewElement("junctionGroup")
	element.CreateAttr("name", jg.name)
	element.CreateAttr("id", strconv.Itoa(jg.id))
	element.CreateAttr("type", string(jg.groupType))
	for _, id := range jg.junctions {
		ref := element.CreateElement("junctionReference")
		ref.CreateAttr("junction", strconv.Itoa(id))
	}
	return element
}
