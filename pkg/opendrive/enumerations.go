// Package opendrive implements the road network model of the OpenDRIVE
// format: roads, lanes, junctions and their links, together with the
// placement solver and the XML writer.
package opendrive

// enum values carry the exact strings the format expects.

type TrafficRule string

const (
	TrafficRuleRHT  TrafficRule = "RHT"
	TrafficRuleLHT  TrafficRule = "LHT"
	TrafficRuleNone TrafficRule = "none"
)

type LaneType string

const (
	LaneTypeNone           LaneType = "none"
	LaneTypeDriving        LaneType = "driving"
	LaneTypeStop           LaneType = "stop"
	LaneTypeShoulder       LaneType = "shoulder"
	LaneTypeBiking         LaneType = "biking"
	LaneTypeSidewalk       LaneType = "sidewalk"
	LaneTypeCurb           LaneType = "curb"
	LaneTypeBorder         LaneType = "border"
	LaneTypeRestricted     LaneType = "restricted"
	LaneTypeParking        LaneType = "parking"
	LaneTypeBidirectional  LaneType = "bidirectional"
	LaneTypeMedian         LaneType = "median"
	LaneTypeRoadWorks      LaneType = "roadWorks"
	LaneTypeTram           LaneType = "tram"
	LaneTypeRail           LaneType = "rail"
	LaneTypeEntry          LaneType = "entry"
	LaneTypeExit           LaneType = "exit"
	LaneTypeOffRamp        LaneType = "offRamp"
	LaneTypeOnRamp         LaneType = "onRamp"
	LaneTypeConnectingRamp LaneType = "connectingRamp"
	LaneTypeBus            LaneType = "bus"
	LaneTypeTaxi           LaneType = "taxi"
	LaneTypeHOV            LaneType = "HOV"
)

type RoadMarkColor string

const (
	RoadMarkColorStandard RoadMarkColor = "standard"
	RoadMarkColorBlue     RoadMarkColor = "blue"
	RoadMarkColorGreen    RoadMarkColor = "green"
	RoadMarkColorRed      RoadMarkColor = "red"
	RoadMarkColorWhite    RoadMarkColor = "white"
	RoadMarkColorYellow   RoadMarkColor = "yellow"
	RoadMarkColorOrange   RoadMarkColor = "orange"
)

type RoadMarkWeight string

const (
	RoadMarkWeightStandard RoadMarkWeight = "standard"
	RoadMarkWeightBold     RoadMarkWeight = "bold"
)

type RoadMarkType string

const (
	RoadMarkTypeNone         RoadMarkType = "none"
	RoadMarkTypeSolid        RoadMarkType = "solid"
	RoadMarkTypeBroken       RoadMarkType = "broken"
	RoadMarkTypeSolidSolid   RoadMarkType = "solid solid"
	RoadMarkTypeSolidBroken  RoadMarkType = "solid broken"
	RoadMarkTypeBrokenSolid  RoadMarkType = "broken solid"
	RoadMarkTypeBrokenBroken RoadMarkType = "broken broken"
	RoadMarkTypeBottsDots    RoadMarkType = "botts dots"
	RoadMarkTypeGrass        RoadMarkType = "grass"
	RoadMarkTypeCurb         RoadMarkType = "curb"
	RoadMarkTypeEdge         RoadMarkType = "edge"
)

type MarkRule string

const (
	MarkRuleNoPassing MarkRule = "no passing"
	MarkRuleCaution   MarkRule = "caution"
	MarkRuleNone      MarkRule = "none"
)

type RoadType string

const (
	RoadTypeUnknown    RoadType = "unknown"
	RoadTypeRural      RoadType = "rural"
	RoadTypeMotorway   RoadType = "motorway"
	RoadTypeTown       RoadType = "town"
	RoadTypeLowSpeed   RoadType = "lowSpeed"
	RoadTypePedestrian RoadType = "pedestrian"
	RoadTypeBicycle    RoadType = "bicycle"
)

type LaneChange string

const (
	LaneChangeIncrease LaneChange = "increase"
	LaneChangeDecrease LaneChange = "decrease"
	LaneChangeBoth     LaneChange = "both"
	LaneChangeNone     LaneChange = "none"
)

// ElementType states what kind of element a road link points at.
type ElementType string

const (
	ElementTypeRoad     ElementType = "road"
	ElementTypeJunction ElementType = "junction"
)

// ContactPoint states which end of the linked element is touched.
type ContactPoint string

const (
	ContactPointStart ContactPoint = "start"
	ContactPointEnd   ContactPoint = "end"
)

type Orientation string

const (
	OrientationPositive Orientation = "+"
	OrientationNegative Orientation = "-"
	OrientationNone     Orientation = "none"
)

type ObjectType string

const (
	ObjectTypeNone          ObjectType = "none"
	ObjectTypeObstacle      ObjectType = "obstacle"
	ObjectTypePole          ObjectType = "pole"
	ObjectTypeTree          ObjectType = "tree"
	ObjectTypeVegetation    ObjectType = "vegetation"
	ObjectTypeBarrier       ObjectType = "barrier"
	ObjectTypeBuilding      ObjectType = "building"
	ObjectTypeParkingSpace  ObjectType = "parkingSpace"
	ObjectTypePatch         ObjectType = "patch"
	ObjectTypeRailing       ObjectType = "railing"
	ObjectTypeTrafficIsland ObjectType = "trafficIsland"
	ObjectTypeCrosswalk     ObjectType = "crosswalk"
	ObjectTypeStreetLamp    ObjectType = "streetLamp"
	ObjectTypeGantry        ObjectType = "gantry"
	ObjectTypeSoundBarrier  ObjectType = "soundBarrier"
)

type Dynamic string

const (
	DynamicYes Dynamic = "yes"
	DynamicNo  Dynamic = "no"
)

type RoadSide string

const (
	RoadSideBoth  RoadSide = "both"
	RoadSideLeft  RoadSide = "left"
	RoadSideRight RoadSide = "right"
)

type JunctionType string

const (
	JunctionTypeDefault JunctionType = "default"
	JunctionTypeDirect  JunctionType = "direct"
)

type JunctionGroupType string

const (
	JunctionGroupTypeRoundabout JunctionGroupType = "roundabout"
	JunctionGroupTypeUnknown    JunctionGroupType = "unknown"
)
