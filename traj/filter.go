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

import (
	"slices"
	"time"
)

// ApplyDateFilters keeps coordinates with start <= ts <= end. A nil bound
// imposes no constraint on that side; with both bounds nil the input is
// returned as a copy, never aliased. Comparisons are timezone-aware.
func ApplyDateFilters(coords []Coordinate, start, end *time.Time) []Coordinate {
	if start == nil && end == nil {
		return slices.Clone(coords)
	}
	filtered := make([]Coordinate, 0, len(coords))
	for _, coord := range coords {
		if withinRange(coord.Timestamp, start, end) {
			filtered = append(filtered, coord)
		}
	}
	return filtered
}

func withinRange(ts time.Time, start, end *time.Time) bool {
	if start != nil && ts.Before(*start) {
		return false
	}
	if end != nil && ts.After(*end) {
		return false
	}
	return true
}

// FilterNoFlyZones drops coordinates contained by any of the zones and
// counts exclusions per zone name. A point is attributed to the first zone
// (in list order) that contains it, even if zones overlap.
func FilterNoFlyZones(coords []Coordinate, zones []NoFlyZone) ([]Coordinate, map[string]int) {
	filtered := make([]Coordinate, 0, len(coords))
	excluded := make(map[string]int)

	for _, coord := range coords {
		if zone, ok := locateNoFlyZone(coord, zones); ok {
			excluded[zone.Name]++
			continue
		}
		filtered = append(filtered, coord)
	}

	return filtered, excluded
}

func locateNoFlyZone(coord Coordinate, zones []NoFlyZone) (NoFlyZone, bool) {
	for _, zone := range zones {
		if zone.Contains(coord.Latitude, coord.Longitude) {
			return zone, true
		}
	}
	return NoFlyZone{}, false
}
