/*
	Timelinize
	Copyright (c) 2013 Matthew Holt

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU Affero General Public License as published
	by the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU Affero General Public License for more details.

	You should have received a copy of the GNU Affero General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package deck converts pipeline output into the plain-data contract a
// timeline-scrubbing map viewer consumes: trip paths with relative
// timestamps for animated trails, flight arcs for great-circle overlays,
// and an initial view state. The viewer itself (deck.gl + MapLibre, or
// anything else) is out of scope here; this package only emits data.
package deck

import (
	"encoding/json"
	"io"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/twpayne/go-polyline"

	"github.com/timelinize/trajectory/traj"
)

// Trip is one continuous drawn trail. Path positions are [lon, lat];
// timestamps are seconds relative to the payload's start epoch so the
// viewer's scrubber can use one clock for every trip.
type Trip struct {
	ID         int         `json:"id"`
	Path       [][]float64 `json:"path"`
	Timestamps []float64   `json:"timestamps"`
	Color      [3]int      `json:"color"`

	// Polyline is the same path as an encoded polyline, for consumers
	// that prefer the compact form over coordinate arrays.
	Polyline string `json:"polyline,omitempty"`
}

// Arc is a detected flight drawn as a great-circle arc overlay.
type Arc struct {
	Source [2]float64 `json:"source"` // [lon, lat]
	Target [2]float64 `json:"target"` // [lon, lat]
}

// ViewState is the viewer's initial camera.
type ViewState struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Zoom      float64 `json:"zoom"`
	Pitch     float64 `json:"pitch"`
	Bearing   float64 `json:"bearing"`
}

// Payload is the complete document handed to the rendering layer.
type Payload struct {
	Trips      []Trip    `json:"trips"`
	Arcs       []Arc     `json:"arcs"`
	ViewState  ViewState `json:"view_state"`
	StartEpoch float64   `json:"start_epoch"` // unix seconds of the earliest point
	MapStyle   string    `json:"map_style,omitempty"`
}

var tripColor = [3]int{55, 114, 255}

// BuildPayload assembles the full rendering document from segmentation
// output.
func BuildPayload(segments []traj.Segment, flights []traj.Flight, zoom float64, mapStyle string) Payload {
	startEpoch := earliestEpoch(segments)
	return Payload{
		Trips:      BuildTrips(segments, startEpoch),
		Arcs:       BuildFlightArcs(flights),
		ViewState:  InitialViewState(zoom),
		StartEpoch: startEpoch,
		MapStyle:   mapStyle,
	}
}

// WriteTo serializes the payload as indented JSON.
func (p Payload) WriteTo(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}

// BuildTrips converts segments into drawable trips. Timestamps are offsets
// from startEpoch in seconds.
func BuildTrips(segments []traj.Segment, startEpoch float64) []Trip {
	trips := make([]Trip, 0, len(segments))
	for i, segment := range segments {
		if len(segment) < 2 {
			continue
		}
		path := make([][]float64, len(segment))
		timestamps := make([]float64, len(segment))
		encodeCoords := make([][]float64, len(segment))
		for j, coord := range segment {
			lon, lat := coord.LonLat()
			path[j] = []float64{lon, lat}
			timestamps[j] = epochSeconds(coord.Timestamp) - startEpoch
			encodeCoords[j] = []float64{lat, lon}
		}
		trips = append(trips, Trip{
			ID:         i,
			Path:       path,
			Timestamps: timestamps,
			Color:      tripColor,
			Polyline:   string(polyline.EncodeCoords(encodeCoords)),
		})
	}
	return trips
}

// BuildFlightArcs converts flights into arc overlays.
func BuildFlightArcs(flights []traj.Flight) []Arc {
	arcs := make([]Arc, len(flights))
	for i, flight := range flights {
		srcLon, srcLat := flight.Origin.LonLat()
		dstLon, dstLat := flight.Destination.LonLat()
		arcs[i] = Arc{
			Source: [2]float64{srcLon, srcLat},
			Target: [2]float64{dstLon, dstLat},
		}
	}
	return arcs
}

// InitialViewState centers on the contiguous US centroid; the viewer
// re-fits to data once loaded, so this only matters for the first frame.
func InitialViewState(zoom float64) ViewState {
	return ViewState{
		Longitude: -98.5795,
		Latitude:  39.8283,
		Zoom:      zoom,
	}
}

// GeoJSON renders segments and flights as a FeatureCollection, for
// consumers that speak GeoJSON instead of the trips payload. Each segment
// becomes a LineString with parallel epoch timestamps in its properties;
// each flight becomes a two-point LineString marked kind=flight.
func GeoJSON(segments []traj.Segment, flights []traj.Flight) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for i, segment := range segments {
		line := make(orb.LineString, len(segment))
		timestamps := make([]float64, len(segment))
		for j, coord := range segment {
			lon, lat := coord.LonLat()
			line[j] = orb.Point{lon, lat}
			timestamps[j] = epochSeconds(coord.Timestamp)
		}
		feature := geojson.NewFeature(line)
		feature.Properties["kind"] = "segment"
		feature.Properties["id"] = i
		feature.Properties["timestamps"] = timestamps
		fc.Append(feature)
	}

	for _, flight := range flights {
		srcLon, srcLat := flight.Origin.LonLat()
		dstLon, dstLat := flight.Destination.LonLat()
		feature := geojson.NewFeature(orb.LineString{
			{srcLon, srcLat},
			{dstLon, dstLat},
		})
		feature.Properties["kind"] = "flight"
		feature.Properties["departed"] = flight.Origin.Timestamp.Format(time.RFC3339)
		feature.Properties["arrived"] = flight.Destination.Timestamp.Format(time.RFC3339)
		fc.Append(feature)
	}

	return fc
}

func earliestEpoch(segments []traj.Segment) float64 {
	var earliest time.Time
	for _, segment := range segments {
		for _, coord := range segment {
			if earliest.IsZero() || coord.Timestamp.Before(earliest) {
				earliest = coord.Timestamp
			}
		}
	}
	if earliest.IsZero() {
		return 0
	}
	return epochSeconds(earliest)
}

func epochSeconds(ts time.Time) float64 {
	return float64(ts.UnixNano()) / float64(time.Second)
}
