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

package takeout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// record is the union of the three known location-history record shapes.
// Exports mix shapes freely, so one struct absorbs them all and the
// extractor dispatches on which fields are populated.
type record struct {
	// flat Records.json shape: degrees scaled by 1e7
	LatitudeE7  *int64 `json:"latitudeE7,omitempty"`
	LongitudeE7 *int64 `json:"longitudeE7,omitempty"`
	Timestamp   string `json:"timestamp,omitempty"`
	TimestampMs string `json:"timestampMs,omitempty"`

	// semantic/on-device shapes share a startTime for the whole record
	StartTime string `json:"startTime,omitempty"`

	TimelinePath []struct {
		Point geoString `json:"point"`
	} `json:"timelinePath,omitempty"`

	Visit *struct {
		TopCandidate *struct {
			PlaceLocation geoString `json:"placeLocation"`
		} `json:"topCandidate"`
	} `json:"visit,omitempty"`
}

func (r record) isFlat() bool {
	return r.LatitudeE7 != nil && r.LongitudeE7 != nil
}

func (r record) isVisit() bool {
	return r.Visit != nil && r.Visit.TopCandidate != nil
}

type geoString string // EXAMPLE: "geo:30.123456,-105.987654"

// MalformedGeoPointError means a "geo:" string failed to parse as two
// floats. This fails the whole extraction rather than being skipped, since
// it implies a corrupted export rather than an unrecognized record shape.
type MalformedGeoPointError struct {
	Value string
	Err   error
}

func (e MalformedGeoPointError) Error() string {
	return fmt.Sprintf("malformed geo point %q: %v", e.Value, e.Err)
}

func (e MalformedGeoPointError) Unwrap() error { return e.Err }

func (g geoString) parse() (lat, lon float64, err error) {
	const prefix = "geo:"
	if !strings.HasPrefix(string(g), prefix) {
		return 0, 0, MalformedGeoPointError{Value: string(g), Err: errors.New("missing prefix")}
	}
	latStr, lonStr, ok := strings.Cut(string(g[len(prefix):]), ",")
	if !ok {
		return 0, 0, MalformedGeoPointError{Value: string(g), Err: errors.New("missing comma separator")}
	}
	lat, err = strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, MalformedGeoPointError{Value: string(g), Err: fmt.Errorf("bad latitude: %w", err)}
	}
	lon, err = strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, MalformedGeoPointError{Value: string(g), Err: fmt.Errorf("bad longitude: %w", err)}
	}
	return lat, lon, nil
}
