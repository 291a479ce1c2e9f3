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

// Package geocode provides the optional region-lookup and country-naming
// capabilities consumed by the stats aggregator. Both are plain values
// injected by the caller; when the lookup is unavailable the aggregator
// degrades to "no stats" rather than partial results, so nothing here is
// load-bearing for the rest of the pipeline.
package geocode

import (
	"fmt"
	"strings"

	"github.com/biter777/countries"
	"github.com/sams96/rgeo"
	"github.com/twpayne/go-geom"

	"github.com/timelinize/trajectory/traj"
)

// Offline reverse-geocodes against an embedded Natural Earth dataset; no
// network calls. Construction parses the whole dataset, so build one and
// reuse it for the run.
type Offline struct {
	rg *rgeo.Rgeo
}

// NewOffline loads the province-level dataset, the coarsest one that still
// resolves first-level subdivisions.
func NewOffline() (*Offline, error) {
	rg, err := rgeo.New(rgeo.Provinces10)
	if err != nil {
		return nil, fmt.Errorf("loading reverse geocoding dataset: %w", err)
	}
	return &Offline{rg: rg}, nil
}

// Lookup implements traj.RegionLookup.
func (o *Offline) Lookup(lat, lon float64) (traj.Region, bool) {
	loc, err := o.rg.ReverseGeocode(geom.Coord{lon, lat})
	if err != nil {
		// rgeo returns an error for points outside every polygon
		// (oceans, mostly); that's "no region," not a failure
		return traj.Region{}, false
	}
	return traj.Region{
		CountryCode: loc.CountryCode2,
		Admin1:      loc.Province,
	}, true
}

// Namer resolves ISO 3166-1 alpha-2 codes to display names.
type Namer struct{}

// CountryName implements traj.CountryNamer. Unknown codes return "" so the
// aggregator can apply its uppercased-code fallback.
func (Namer) CountryName(code string) string {
	country := countries.ByName(strings.ToUpper(code))
	if country == countries.Unknown {
		return ""
	}
	return country.String()
}
