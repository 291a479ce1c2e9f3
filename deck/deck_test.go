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

package deck

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/timelinize/trajectory/traj"
)

func testSegments() ([]traj.Segment, time.Time) {
	t0 := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	segments := []traj.Segment{
		{
			{Latitude: 41.8, Longitude: -87.7, Timestamp: t0},
			{Latitude: 41.9, Longitude: -87.6, Timestamp: t0.Add(10 * time.Minute)},
		},
		{
			{Latitude: 40.0, Longitude: -88.0, Timestamp: t0.Add(time.Hour)},
			{Latitude: 40.1, Longitude: -88.1, Timestamp: t0.Add(90 * time.Minute)},
		},
	}
	return segments, t0
}

func TestBuildTrips(t *testing.T) {
	segments, t0 := testSegments()
	startEpoch := float64(t0.Unix())

	trips := BuildTrips(segments, startEpoch)

	if len(trips) != 2 {
		t.Fatalf("expected 2 trips, got %d", len(trips))
	}

	first := trips[0]
	if first.ID != 0 {
		t.Errorf("trip ID = %d, want 0", first.ID)
	}
	// paths are [lon, lat]
	if first.Path[0][0] != -87.7 || first.Path[0][1] != 41.8 {
		t.Errorf("path position = %v, want [lon lat]", first.Path[0])
	}
	// timestamps are relative to the start epoch
	if first.Timestamps[0] != 0 {
		t.Errorf("first timestamp = %f, want 0", first.Timestamps[0])
	}
	if first.Timestamps[1] != 600 {
		t.Errorf("second timestamp = %f, want 600", first.Timestamps[1])
	}
	if trips[1].Timestamps[0] != 3600 {
		t.Errorf("second trip start = %f, want 3600", trips[1].Timestamps[0])
	}
	if first.Polyline == "" {
		t.Error("expected encoded polyline")
	}
}

func TestBuildFlightArcs(t *testing.T) {
	flights := []traj.Flight{
		{
			Origin:      traj.Coordinate{Latitude: 41.8, Longitude: -87.7},
			Destination: traj.Coordinate{Latitude: 39.9, Longitude: 116.4},
		},
	}

	arcs := BuildFlightArcs(flights)
	if len(arcs) != 1 {
		t.Fatalf("expected 1 arc, got %d", len(arcs))
	}
	if arcs[0].Source != [2]float64{-87.7, 41.8} {
		t.Errorf("arc source = %v, want [lon lat]", arcs[0].Source)
	}
	if arcs[0].Target != [2]float64{116.4, 39.9} {
		t.Errorf("arc target = %v", arcs[0].Target)
	}
}

func TestBuildPayloadRoundTrip(t *testing.T) {
	segments, t0 := testSegments()
	payload := BuildPayload(segments, nil, 4.0, "https://example.com/style.json")

	if payload.StartEpoch != float64(t0.Unix()) {
		t.Errorf("start epoch = %f, want %d", payload.StartEpoch, t0.Unix())
	}
	if payload.ViewState.Zoom != 4.0 {
		t.Errorf("zoom = %f", payload.ViewState.Zoom)
	}

	var buf bytes.Buffer
	if err := payload.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	var decoded Payload
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if len(decoded.Trips) != 2 || decoded.MapStyle != "https://example.com/style.json" {
		t.Errorf("decoded payload mismatch: %+v", decoded)
	}
}

func TestGeoJSON(t *testing.T) {
	segments, t0 := testSegments()
	flights := []traj.Flight{
		{
			Origin:      traj.Coordinate{Latitude: 41.9, Longitude: -87.6, Timestamp: t0.Add(10 * time.Minute)},
			Destination: traj.Coordinate{Latitude: 40.0, Longitude: -88.0, Timestamp: t0.Add(time.Hour)},
		},
	}

	fc := GeoJSON(segments, flights)
	if len(fc.Features) != 3 {
		t.Fatalf("expected 3 features, got %d", len(fc.Features))
	}

	kinds := map[string]int{}
	for _, feature := range fc.Features {
		kind, _ := feature.Properties["kind"].(string)
		kinds[kind]++
	}
	if kinds["segment"] != 2 || kinds["flight"] != 1 {
		t.Errorf("feature kinds = %v", kinds)
	}

	if _, err := fc.MarshalJSON(); err != nil {
		t.Errorf("feature collection does not marshal: %v", err)
	}
}
