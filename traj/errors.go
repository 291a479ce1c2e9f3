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
	"errors"
	"fmt"
	"strings"
)

// Sentinel conditions produced by pipeline stages. Each names a distinct
// empty-output situation so callers can suggest the right remedy: an empty
// extraction is not the same problem as an over-strict filter or an
// over-strict jump threshold.
var (
	// ErrNoCoordinates: extraction succeeded structurally but yielded no
	// usable coordinates (e.g. every record was missing its timestamp).
	ErrNoCoordinates = errors.New("no usable coordinates in input")

	// ErrAllFilteredOut: coordinates were extracted, but the date range
	// and/or no-fly zone filters removed all of them.
	ErrAllFilteredOut = errors.New("all coordinates removed by filters")

	// ErrNoSegments: no segment of 2+ points survived segmentation; every
	// consecutive pair exceeded the jump threshold.
	ErrNoSegments = errors.New("no segments survived the jump threshold")
)

// StageError wraps a sentinel condition with the stage that produced it and
// recommendations for the user. Use errors.Is with the sentinels above to
// branch on the underlying condition.
type StageError struct {
	Stage           string
	Err             error
	Recommendations []string
}

func (e StageError) Error() string {
	var msg strings.Builder
	msg.WriteString(e.Stage)
	msg.WriteString(": ")
	msg.WriteString(e.Err.Error())
	if len(e.Recommendations) > 0 {
		msg.WriteString(fmt.Sprintf(" (%s)", strings.Join(e.Recommendations, "; ")))
	}
	return msg.String()
}

func (e StageError) Unwrap() error { return e.Err }
