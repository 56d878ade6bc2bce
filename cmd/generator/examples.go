package main

import (
	"math"

	"github.com/roadplan/xodrgen/pkg/geometry"
	"github.com/roadplan/xodrgen/pkg/opendrive"
	"github.com/roadplan/xodrgen/pkg/util"
	"go.uber.org/zap"
)

type networkBuilder func(log *zap.Logger) (*opendrive.OpenDrive, error)

// exampleNetworks maps the generator example names to their builders.
var exampleNetworks = map[string]networkBuilder{
	"straight_chain":  buildStraightChain,
	"highway_merge":   buildHighwayMerge,
	"common_junction": buildCommonJunction,
}

// buildStraightChain is a chain of three linked roads, the first one
// mixing all four geometry kinds, with a speed limited stretch, a
// roadside barrier and a speed sign.
func buildStraightChain(log *zap.Logger) (*opendrive.OpenDrive, error) {
	odr := opendrive.NewOpenDrive("straight_chain", log)

	spiral, err := geometry.NewSpiral(0.001, 0.02, 30)
	if err != nil {
		return nil, err
	}
	arc, err := geometry.NewArc(0.02, 30)
	if err != nil {
		return nil, err
	}
	poly := geometry.NewParamPoly3(0, 50, 0, 0, 0, 0, 10, 0)

	road0, err := opendrive.CreateRoad(0,
		[]geometry.Primitive{geometry.NewLine(100), spiral, arc, poly},
		opendrive.ConstantLanes(2), opendrive.ConstantLanes(2), nil)
	if err != nil {
		return nil, err
	}
	road0.SetName("chain start")
	if err := road0.AddTypeWithSpeed(opendrive.RoadTypeRural, 0, 80, "kph"); err != nil {
		return nil, err
	}

	road1, err := opendrive.CreateRoad(1,
		[]geometry.Primitive{geometry.NewLine(100)},
		opendrive.ConstantLanes(2), opendrive.ConstantLanes(2), nil)
	if err != nil {
		return nil, err
	}

	endArc, err := geometry.NewArc(-0.01, 80)
	if err != nil {
		return nil, err
	}
	road2, err := opendrive.CreateRoad(2,
		[]geometry.Primitive{endArc},
		opendrive.ConstantLanes(2), opendrive.ConstantLanes(2), nil)
	if err != nil {
		return nil, err
	}

	if err := road0.AddSuccessor(opendrive.ElementTypeRoad, 1, opendrive.ContactPointStart); err != nil {
		return nil, err
	}
	if err := road1.AddPredecessor(opendrive.ElementTypeRoad, 0, opendrive.ContactPointEnd); err != nil {
		return nil, err
	}
	if err := road1.AddSuccessor(opendrive.ElementTypeRoad, 2, opendrive.ContactPointStart); err != nil {
		return nil, err
	}
	if err := road2.AddPredecessor(opendrive.ElementTypeRoad, 1, opendrive.ContactPointEnd); err != nil {
		return nil, err
	}

	for _, r := range []*opendrive.Road{road0, road1, road2} {
		if err := odr.AddRoad(r); err != nil {
			return nil, err
		}
	}
	if err := odr.AdjustRoadsAndLanes(); err != nil {
		return nil, err
	}

	speedSign := opendrive.NewSignal(50, -7, "DE", "274").
		SetValue(80, "km/h").
		SetName("speed limit 80")
	road0.AddSignal(speedSign)

	barrier := opendrive.NewObject(0, 0, opendrive.ObjectTypeBarrier).
		SetName("guardRail").
		SetDimensions(0, 0.3, 0.75)
	if err := road1.AddObjectRoadside(barrier, 0, 0, 0.5, opendrive.RoadSideBoth); err != nil {
		return nil, err
	}
	return odr, nil
}

// buildHighwayMerge merges three right lanes into two over a 100 meter
// stretch and continues into a two lane road.
func buildHighwayMerge(log *zap.Logger) (*opendrive.OpenDrive, error) {
	odr := opendrive.NewOpenDrive("highway_merge", log)

	merge := opendrive.NewLaneDef(100, 200, 3, 2, -3)
	road0, err := opendrive.CreateRoad(0,
		[]geometry.Primitive{geometry.NewLine(300)},
		opendrive.ConstantLanes(0), opendrive.LaneDefs(merge), nil)
	if err != nil {
		return nil, err
	}
	road0.SetName("merge")

	road1, err := opendrive.CreateRoad(1,
		[]geometry.Primitive{geometry.NewLine(100)},
		opendrive.ConstantLanes(0), opendrive.ConstantLanes(2), nil)
	if err != nil {
		return nil, err
	}

	if err := road0.AddSuccessor(opendrive.ElementTypeRoad, 1, opendrive.ContactPointStart); err != nil {
		return nil, err
	}
	if err := road1.AddPredecessor(opendrive.ElementTypeRoad, 0, opendrive.ContactPointEnd); err != nil {
		return nil, err
	}

	if err := odr.AddRoad(road0); err != nil {
		return nil, err
	}
	if err := odr.AddRoad(road1); err != nil {
		return nil, err
	}
	if err := odr.AdjustRoadsAndLanes(); err != nil {
		return nil, err
	}
	return odr, nil
}

// buildCommonJunction is a four way junction with a connecting road for
// every pair of incoming roads.
func buildCommonJunction(log *zap.Logger) (*opendrive.OpenDrive, error) {
	odr := opendrive.NewOpenDrive("common_junction", log)

	const junctionID = 1
	angles := []float64{0, math.Pi / 2, math.Pi, 3 * math.Pi / 2}
	incoming := make([]*opendrive.Road, 0, len(angles))
	for i := range angles {
		road, err := opendrive.CreateStraightRoad(i, 100, -1, 1, 3)
		if err != nil {
			return nil, err
		}
		incoming = append(incoming, road)
	}

	connecting, err := opendrive.CreateJunctionRoads(incoming, angles, 12,
		junctionID, 100, 1.0/3.0, nil, opendrive.StdRoadMarkSolid())
	if err != nil {
		return nil, err
	}

	for _, r := range incoming {
		if err := odr.AddRoad(r); err != nil {
			return nil, err
		}
	}
	for _, r := range connecting {
		if err := odr.AddRoad(r); err != nil {
			return nil, err
		}
	}

	junction, err := opendrive.CreateJunction(connecting, junctionID, incoming, "crossing")
	if err != nil {
		return nil, err
	}
	if err := odr.AddJunction(junction); err != nil {
		return nil, err
	}

	if err := odr.AdjustRoadsAndLanes(); err != nil {
		return nil, err
	}
	return odr, nil
}

// exampleNames returns the builders requested in the config, falling
// back to all of them.
func exampleNames(requested []string) ([]string, error) {
	if len(requested) == 0 {
		names := make([]string, 0, len(exampleNetworks))
		for name := range exampleNetworks {
			names = append(names, name)
		}
		return names, nil
	}
	for _, name := range requested {
		if _, ok := exampleNetworks[name]; !ok {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
				"unknown example network %q", name)
		}
	}
	return requested, nil
}
