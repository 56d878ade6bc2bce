// Package export renders placed road networks into preview formats,
// GeoJSON feature collections and google encoded polylines.
package export

import (
	geojson "github.com/paulmach/go.geojson"
	polyline "github.com/twpayne/go-polyline"

	"github.com/roadplan/xodrgen/pkg/opendrive"
	"github.com/roadplan/xodrgen/pkg/util"
)

// DefaultSampleStep is the arc length in meters between sampled
// centerline points.
const DefaultSampleStep = 1.0

// SampleCenterline samples the reference line of a placed road every
// step meters, always including the segment end points.
func SampleCenterline(road *opendrive.Road, step float64) ([][]float64, error) {
	if !road.PlanView().Adjusted {
		return nil, util.WrapErrorf(nil, util.ErrRoadsNotAdjusted,
			"road %d is not placed yet, adjust the network first", road.ID())
	}
	if step <= 0 {
		step = DefaultSampleStep
	}

	var coords [][]float64
	for _, segment := range road.PlanView().Segments() {
		for s := 0.0; util.Lt(s, segment.L); s += step {
			x, y, _ := segment.Pose(s)
			coords = append(coords, []float64{x, y})
		}
	}
	if segments := road.PlanView().Segments(); len(segments) > 0 {
		last := segments[len(segments)-1]
		x, y, _ := last.Pose(last.L)
		coords = append(coords, []float64{x, y})
	}
	return coords, nil
}

// FeatureCollection builds a GeoJSON feature collection with one
// LineString feature per road. Coordinates are the local planar
// coordinates of the network.
func FeatureCollection(odr *opendrive.OpenDrive, step float64) (*geojson.FeatureCollection, error) {
	fc := geojson.NewFeatureCollection()
	for _, road := range odr.Roads() {
		coords, err := SampleCenterline(road, step)
		if err != nil {
			return nil, err
		}
		feature := geojson.NewLineStringFeature(coords)
		feature.SetProperty("id", road.ID())
		feature.SetProperty("junction", road.JunctionID())
		feature.SetProperty("length", road.PlanView().TotalLength())
		fc.AddFeature(feature)
	}
	return fc, nil
}

// EncodedPolylines returns the sampled centerline of every road as a
// google encoded polyline, keyed by road id.
func EncodedPolylines(odr *opendrive.OpenDrive, step float64) (map[int]string, error) {
	lines := make(map[int]string, len(odr.Roads()))
	for _, road := range odr.Roads() {
		coords, err := SampleCenterline(road, step)
		if err != nil {
			return nil, err
		}
		lines[road.ID()] = string(polyline.EncodeCoords(coords))
	}
	return lines, nil
}
