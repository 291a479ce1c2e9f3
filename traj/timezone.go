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
	"fmt"
	"sync"
	"time"

	"github.com/ringsaturn/tzf"
	"go.uber.org/zap"
)

// the tzf finder carries its polygon dataset in memory; build it once
var (
	tzFinder     tzf.F
	tzFinderErr  error
	tzFinderOnce sync.Once
)

// ResolveReferenceZone determines the reference timezone threaded through
// the pipeline (day grouping and midday stamping during coarsening, date
// filter bounds). An explicit IANA name wins; otherwise the zone is looked
// up from the first coordinate of the trace, since the trace's earliest
// points are the best guess at "home." With no name and no coordinates,
// the host's local zone is used.
func ResolveReferenceZone(name string, coords []Coordinate) (*time.Location, error) {
	if name != "" {
		zone, err := time.LoadLocation(name)
		if err != nil {
			return nil, fmt.Errorf("unknown timezone %q: %w", name, err)
		}
		return zone, nil
	}

	if len(coords) > 0 {
		tzFinderOnce.Do(func() {
			tzFinder, tzFinderErr = tzf.NewDefaultFinder()
		})
		if tzFinderErr != nil {
			Log.Warn("timezone finder unavailable; using host zone",
				zap.Error(tzFinderErr))
			return time.Local, nil
		}
		first := coords[0]
		if zoneName := tzFinder.GetTimezoneName(first.Longitude, first.Latitude); zoneName != "" {
			if zone, err := time.LoadLocation(zoneName); err == nil {
				return zone, nil
			}
		}
	}

	return time.Local, nil
}
