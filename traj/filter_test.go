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
	"testing"
	"time"
)

func TestNoFlyZoneContains(t *testing.T) {
	zone := NoFlyZone{Name: "test", MinLat: 41.6, MaxLat: 42.1, MinLon: -87.95, MaxLon: -87.5}
	const eps = 1e-9

	tests := []struct {
		name     string
		lat, lon float64
		want     bool
	}{
		{"interior", 41.8, -87.7, true},
		{"min corner is inside (inclusive)", 41.6, -87.95, true},
		{"max corner is inside (inclusive)", 42.1, -87.5, true},
		{"epsilon below min lat", 41.6 - eps, -87.7, false},
		{"epsilon above max lat", 42.1 + eps, -87.7, false},
		{"epsilon west of min lon", 41.8, -87.95 - eps, false},
		{"epsilon east of max lon", 41.8, -87.5 + eps, false},
		{"north of zone", 42.5, -87.7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := zone.Contains(tt.lat, tt.lon); got != tt.want {
				t.Errorf("Contains(%f, %f) = %v, want %v", tt.lat, tt.lon, got, tt.want)
			}
		})
	}
}

func TestFilterNoFlyZones(t *testing.T) {
	zones := []NoFlyZone{
		{Name: "Chicago & Evanston", MinLat: 41.6, MaxLat: 42.1, MinLon: -87.95, MaxLon: -87.5},
		{Name: "Overlapping", MinLat: 41.0, MaxLat: 43.0, MinLon: -88.0, MaxLon: -87.0},
	}
	now := time.Now()
	coords := []Coordinate{
		{Latitude: 41.8, Longitude: -87.7, Timestamp: now},  // in both; attributed to first only
		{Latitude: 42.5, Longitude: -87.7, Timestamp: now},  // in second only
		{Latitude: 35.0, Longitude: -100.0, Timestamp: now}, // in neither
	}

	kept, excluded := FilterNoFlyZones(coords, zones)

	if len(kept) != 1 {
		t.Fatalf("expected 1 kept coordinate, got %d", len(kept))
	}
	if kept[0].Latitude != 35.0 {
		t.Errorf("wrong coordinate kept: %+v", kept[0])
	}
	if excluded["Chicago & Evanston"] != 1 {
		t.Errorf("expected 1 exclusion for first zone, got %d", excluded["Chicago & Evanston"])
	}
	if excluded["Overlapping"] != 1 {
		t.Errorf("expected 1 exclusion for second zone, got %d", excluded["Overlapping"])
	}
}

func TestApplyDateFilters(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*3600)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, zone)
	coords := []Coordinate{
		{Latitude: 1, Longitude: 1, Timestamp: base},
		{Latitude: 2, Longitude: 2, Timestamp: base.AddDate(0, 0, 1)},
		{Latitude: 3, Longitude: 3, Timestamp: base.AddDate(0, 0, 2)},
	}

	t.Run("no bounds returns copy", func(t *testing.T) {
		got := ApplyDateFilters(coords, nil, nil)
		if len(got) != len(coords) {
			t.Fatalf("expected %d coords, got %d", len(coords), len(got))
		}
		got[0].Latitude = 99
		if coords[0].Latitude == 99 {
			t.Error("result aliases the input slice")
		}
	})

	t.Run("bounds are inclusive", func(t *testing.T) {
		start := coords[0].Timestamp
		end := coords[1].Timestamp
		got := ApplyDateFilters(coords, &start, &end)
		if len(got) != 2 {
			t.Fatalf("expected 2 coords, got %d", len(got))
		}
	})

	t.Run("open start", func(t *testing.T) {
		end := coords[0].Timestamp
		got := ApplyDateFilters(coords, nil, &end)
		if len(got) != 1 || got[0].Latitude != 1 {
			t.Fatalf("expected just the first coord, got %v", got)
		}
	})

	t.Run("timezone aware comparison", func(t *testing.T) {
		// same instant as coords[0], expressed in UTC
		start := coords[0].Timestamp.UTC()
		got := ApplyDateFilters(coords, &start, nil)
		if len(got) != 3 {
			t.Fatalf("expected all 3 coords, got %d", len(got))
		}
	})
}
