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

package traj

// DefaultJumpThresholdKm is the consecutive-pair distance above which a
// trail is broken into separate segments. Small enough that gaps in
// tracking don't get drawn as long straight lines.
const DefaultJumpThresholdKm = 50.0

// Flight classification thresholds. A segmentation break only becomes a
// flight when it also clears one of these: legitimate short-haul domestic
// flights are common within the contiguous US at distances well below the
// long-haul cutoff used elsewhere, so the US threshold is the stricter one.
const (
	flightThresholdUSKm   = 230.0
	flightThresholdElseKm = 100.0
	contiguousUSMinLat    = 24.5
	contiguousUSMaxLat    = 49.5
	contiguousUSMinLon    = -125.0
	contiguousUSMaxLon    = -66.0
)

func inContiguousUS(c Coordinate) bool {
	return contiguousUSMinLat <= c.Latitude && c.Latitude <= contiguousUSMaxLat &&
		contiguousUSMinLon <= c.Longitude && c.Longitude <= contiguousUSMaxLon
}

// BuildSegments splits a chronologically sorted coordinate list into
// continuous segments at jumps exceeding thresholdKm, and separately
// classifies qualifying jumps as flights.
//
// Every returned segment has at least two points; would-be singleton
// segments are discarded. Flight detection is independent of segmentation
// output: a break becomes a flight only if its distance also meets the
// region-sensitive flight threshold, so not every break is a flight. Fewer
// than two input coordinates yields empty results, not an error.
func BuildSegments(coords []Coordinate, thresholdKm float64) ([]Segment, []Flight) {
	if len(coords) < 2 {
		return nil, nil
	}

	distances := ConsecutiveDistances(coords)

	var segments []Segment
	var flights []Flight

	// position 0 always starts the first segment; position i continues the
	// current segment only if the hop from i-1 was within threshold
	current := Segment{coords[0]}
	for i := 1; i < len(coords); i++ {
		if distances[i-1] <= thresholdKm {
			current = append(current, coords[i])
			continue
		}
		if len(current) > 1 {
			segments = append(segments, current)
		}
		current = Segment{coords[i]}
	}
	if len(current) > 1 {
		segments = append(segments, current)
	}

	for i, distance := range distances {
		if distance <= thresholdKm {
			continue
		}
		origin, dest := coords[i], coords[i+1]
		threshold := flightThresholdElseKm
		if inContiguousUS(origin) && inContiguousUS(dest) {
			threshold = flightThresholdUSKm
		}
		if distance >= threshold {
			flights = append(flights, Flight{Origin: origin, Destination: dest})
		}
	}

	return segments, flights
}
