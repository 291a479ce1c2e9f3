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

// Package traj reconstructs a chronologically ordered movement trace
// from a personal location-history export, splits it into continuous travel
// segments separated by implausible jumps, classifies long jumps as flights,
// and optionally applies a privacy coarsening transform that replaces each
// day's raw points with a smoothed representative curve.
//
// The pipeline is single-threaded batch computation over in-memory slices;
// every stage consumes an input slice and produces a new one. The only
// blocking collaborator is the optional region-lookup capability consumed
// by the stats aggregator.
package traj

import (
	"time"
)

// Coordinate is a single recorded position: where, and when. Values are
// plain decimal degrees; timestamps carry their zone. Coordinates are
// immutable values and are never shared or mutated by pipeline stages.
type Coordinate struct {
	Latitude  float64
	Longitude float64
	Timestamp time.Time
}

// LatLon returns the ordering used for distance math.
func (c Coordinate) LatLon() (float64, float64) {
	return c.Latitude, c.Longitude
}

// LonLat returns the ordering used by GeoJSON-style consumers.
func (c Coordinate) LonLat() (float64, float64) {
	return c.Longitude, c.Latitude
}

// Segment is one continuous leg of travel: an ordered run of at least two
// coordinates with no consecutive-pair distance exceeding the jump
// threshold it was built with.
type Segment []Coordinate

// Flight is a detected long-distance displacement between two consecutive
// raw points. Flights are recorded from segment break locations but are not
// part of any segment's point list.
type Flight struct {
	Origin      Coordinate
	Destination Coordinate
}

// NoFlyZone is a rectangular region in plain (non-wrapping) lat/lon space
// whose contained points are excluded from processing.
type NoFlyZone struct {
	Name   string  `json:"name"`
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Contains reports whether the point is inside the zone. Bounds are
// inclusive on all four edges.
func (z NoFlyZone) Contains(lat, lon float64) bool {
	return z.MinLat <= lat && lat <= z.MaxLat &&
		z.MinLon <= lon && lon <= z.MaxLon
}

// DefaultNoFlyZones are the zones applied when the caller configures none.
// This is configuration, not policy; any zone list may be supplied instead.
var DefaultNoFlyZones = []NoFlyZone{
	{
		Name:   "Chicago & Evanston",
		MinLat: 41.6,
		MaxLat: 42.1,
		MinLon: -87.95,
		MaxLon: -87.5,
	},
	{
		Name:   "Beijing",
		MinLat: 39.4,
		MaxLat: 40.3,
		MinLon: 115.5,
		MaxLon: 117.5,
	},
}
