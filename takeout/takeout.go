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

// Package takeout extracts coordinates from Google Location History (aka
// Google Maps Timeline) Takeout exports.
//
// Three record shapes are recognized: the flat Records.json shape with
// latitudeE7/longitudeE7, the timelinePath shape with a list of geo-string
// points sharing one startTime, and the visit shape with a single place
// location. Records missing their timestamp or matching no known shape are
// skipped silently; real exports are noisy and new shapes appear over time,
// so unrecognized records must not fail the import.
//
// I found this website very helpful as documentation of the Takeout format:
// https://locationhistoryformat.com/
package takeout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/timelinize/trajectory/traj"
	"go.uber.org/zap"
)

// UnrecognizedPayloadError means the top-level structure of the input is
// not a location-history export at all: no "locations" key, no
// "timelinePath" key, and not a bare record array. Nothing can be
// extracted; the run aborts.
type UnrecognizedPayloadError struct {
	Source string
}

func (e UnrecognizedPayloadError) Error() string {
	return fmt.Sprintf("unrecognized location history payload structure in %s", e.Source)
}

// ExtractFile reads the named file and extracts its coordinates.
func ExtractFile(filename string) ([]traj.Coordinate, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()
	return Extract(f, filename)
}

// Extract decodes a location-history payload and returns the flattened
// coordinate list, sorted ascending by timestamp (stable: records with
// equal timestamps keep their input order).
//
// An empty (but structurally valid) payload returns an empty slice and no
// error; the caller decides whether that is fatal.
func Extract(r io.Reader, source string) ([]traj.Coordinate, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	records, err := decodePayload(data, source)
	if err != nil {
		return nil, err
	}

	coords := make([]traj.Coordinate, 0, len(records))
	var skipped int
	for _, rec := range records {
		extracted, ok, err := extractRecord(rec)
		if err != nil {
			return nil, err
		}
		if !ok {
			skipped++
			continue
		}
		coords = append(coords, extracted...)
	}

	if skipped > 0 {
		traj.Log.Named("takeout").Debug("skipped records with no usable shape or timestamp",
			zap.Int("skipped", skipped),
			zap.String("source", source))
	}

	sort.SliceStable(coords, func(i, j int) bool {
		return coords[i].Timestamp.Before(coords[j].Timestamp)
	})

	return coords, nil
}

// decodePayload accepts the three known top-level containers: an object
// with a "locations" array, a single timelinePath object, or a bare array
// of records.
func decodePayload(data []byte, source string) ([]record, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, UnrecognizedPayloadError{Source: source}
	}

	switch trimmed[0] {
	case '[':
		var records []record
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("decoding record array in %s: %w", source, err)
		}
		return records, nil
	case '{':
		// RawMessage keeps key presence distinguishable from a null value:
		// {"locations": null} is a recognized (empty) export, not junk
		var top struct {
			Locations    json.RawMessage `json:"locations"`
			TimelinePath json.RawMessage `json:"timelinePath"`
		}
		if err := json.Unmarshal(trimmed, &top); err != nil {
			return nil, fmt.Errorf("decoding payload in %s: %w", source, err)
		}
		if top.Locations != nil {
			var records []record
			if err := json.Unmarshal(top.Locations, &records); err != nil {
				return nil, fmt.Errorf("decoding locations in %s: %w", source, err)
			}
			return records, nil
		}
		if top.TimelinePath != nil {
			var rec record
			if err := json.Unmarshal(trimmed, &rec); err != nil {
				return nil, fmt.Errorf("decoding timeline path in %s: %w", source, err)
			}
			return []record{rec}, nil
		}
	}

	return nil, UnrecognizedPayloadError{Source: source}
}

// extractRecord converts one record into coordinates. ok is false when the
// record has no recognized shape or is missing its timestamp; only geo
// parse failures are errors.
func extractRecord(rec record) ([]traj.Coordinate, bool, error) {
	switch {
	case rec.isFlat():
		rawTS := rec.Timestamp
		if rawTS == "" {
			rawTS = rec.TimestampMs
		}
		ts, ok := parseTimestamp(rawTS)
		if !ok {
			return nil, false, nil
		}
		return []traj.Coordinate{{
			Latitude:  float64(*rec.LatitudeE7) / 1e7,
			Longitude: float64(*rec.LongitudeE7) / 1e7,
			Timestamp: ts,
		}}, true, nil

	case rec.TimelinePath != nil:
		ts, ok := parseTimestamp(rec.StartTime)
		if !ok {
			return nil, false, nil
		}
		coords := make([]traj.Coordinate, 0, len(rec.TimelinePath))
		for _, point := range rec.TimelinePath {
			if point.Point == "" {
				continue
			}
			lat, lon, err := point.Point.parse()
			if err != nil {
				return nil, false, err
			}
			coords = append(coords, traj.Coordinate{Latitude: lat, Longitude: lon, Timestamp: ts})
		}
		return coords, true, nil

	case rec.isVisit():
		ts, ok := parseTimestamp(rec.StartTime)
		if !ok {
			return nil, false, nil
		}
		if rec.Visit.TopCandidate.PlaceLocation == "" {
			return nil, false, nil
		}
		lat, lon, err := rec.Visit.TopCandidate.PlaceLocation.parse()
		if err != nil {
			return nil, false, err
		}
		return []traj.Coordinate{{Latitude: lat, Longitude: lon, Timestamp: ts}}, true, nil
	}

	return nil, false, nil
}

// parseTimestamp handles both timestamp encodings seen in exports: ISO-8601
// (with or without fractional seconds; a bare "Z" suffix normalized to an
// explicit offset) and milliseconds since the epoch.
func parseTimestamp(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}

	normalized := raw
	if strings.HasSuffix(normalized, "Z") {
		normalized = strings.TrimSuffix(normalized, "Z") + "+00:00"
	}
	if ts, err := time.Parse(time.RFC3339Nano, normalized); err == nil {
		return ts, true
	}

	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.UnixMilli(ms), true
	}

	return time.Time{}, false
}
