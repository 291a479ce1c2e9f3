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
	"math"
	"sort"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Region describes the administrative area a coordinate falls in.
type Region struct {
	CountryCode string // ISO 3166-1 alpha-2
	Admin1      string // first-level subdivision name (state, province, ...)
}

// RegionLookup resolves the region containing a coordinate. Implementations
// may block (e.g. consult an on-disk dataset); they must be idempotent,
// since results are cached by rounded coordinate.
type RegionLookup interface {
	Lookup(lat, lon float64) (Region, bool)
}

// CountryNamer resolves an ISO country code to a display name. An empty
// return means the code is unknown to the namer.
type CountryNamer interface {
	CountryName(code string) string
}

// RegionVisit records the most recent time a region was seen in the trace.
type RegionVisit struct {
	Identifier string
	Label      string
	LastSeen   time.Time
}

// RegionGroup groups subnational visits by country, for countries other
// than the US (US states get their own list).
type RegionGroup struct {
	CountryCode  string
	CountryLabel string
	Regions      []RegionVisit
}

// LocationStats summarizes where the trace has been, each list sorted by
// most recent visit first.
type LocationStats struct {
	Countries    []RegionVisit
	USStates     []RegionVisit
	RegionGroups []RegionGroup
}

// Lookup results are cached per rounded coordinate; 4 decimal places is
// roughly 11 m, plenty for admin-area attribution.
const (
	lookupCacheSize      = 1 << 16
	lookupRoundPrecision = 1e4
)

type lookupKey struct {
	lat, lon float64
}

// ComputeLocationStats aggregates country, US-state, and regional visit
// summaries from the coordinate list. The lookup capability is consulted
// once per unique rounded coordinate, not once per raw point.
//
// A nil lookup means the capability is unavailable, and the result is nil:
// "stats unavailable" is distinct from "stats computed but empty." A nil
// namer falls back to uppercased country codes as labels.
func ComputeLocationStats(coords []Coordinate, lookup RegionLookup, namer CountryNamer) *LocationStats {
	if lookup == nil {
		return nil
	}

	cache, err := lru.New[lookupKey, Region](lookupCacheSize)
	if err != nil {
		return nil
	}

	countryLastSeen := make(map[string]time.Time)
	usStateLastSeen := make(map[string]time.Time)
	regionsLastSeen := make(map[string]map[string]time.Time)

	for _, coord := range coords {
		key := lookupKey{
			lat: math.Round(coord.Latitude*lookupRoundPrecision) / lookupRoundPrecision,
			lon: math.Round(coord.Longitude*lookupRoundPrecision) / lookupRoundPrecision,
		}
		region, ok := cache.Get(key)
		if !ok {
			region, ok = lookup.Lookup(coord.Latitude, coord.Longitude)
			if !ok {
				continue
			}
			cache.Add(key, region)
		}

		countryCode := strings.ToUpper(region.CountryCode)
		if countryCode != "" {
			if previous, seen := countryLastSeen[countryCode]; !seen || coord.Timestamp.After(previous) {
				countryLastSeen[countryCode] = coord.Timestamp
			}
		}

		admin1 := strings.TrimSpace(region.Admin1)
		if admin1 == "" {
			continue
		}

		canonicalState, isState := usStateAliases[strings.ToLower(admin1)]
		if countryCode == "US" && isState {
			if previous, seen := usStateLastSeen[canonicalState]; !seen || coord.Timestamp.After(previous) {
				usStateLastSeen[canonicalState] = coord.Timestamp
			}
			continue
		}

		if countryCode != "" {
			perCountry := regionsLastSeen[countryCode]
			if perCountry == nil {
				perCountry = make(map[string]time.Time)
				regionsLastSeen[countryCode] = perCountry
			}
			if previous, seen := perCountry[admin1]; !seen || coord.Timestamp.After(previous) {
				perCountry[admin1] = coord.Timestamp
			}
		}
	}

	stats := &LocationStats{
		Countries: make([]RegionVisit, 0, len(countryLastSeen)),
		USStates:  make([]RegionVisit, 0, len(usStateLastSeen)),
	}

	for code, lastSeen := range countryLastSeen {
		stats.Countries = append(stats.Countries, RegionVisit{
			Identifier: code,
			Label:      countryLabel(code, namer),
			LastSeen:   lastSeen,
		})
	}
	sortVisits(stats.Countries)

	for state, lastSeen := range usStateLastSeen {
		stats.USStates = append(stats.USStates, RegionVisit{
			Identifier: state,
			Label:      state,
			LastSeen:   lastSeen,
		})
	}
	sortVisits(stats.USStates)

	for countryCode, regions := range regionsLastSeen {
		if countryCode == "US" {
			// already captured as states; skip duplicates
			continue
		}
		visits := make([]RegionVisit, 0, len(regions))
		for name, lastSeen := range regions {
			visits = append(visits, RegionVisit{
				Identifier: countryCode + "-" + name,
				Label:      name,
				LastSeen:   lastSeen,
			})
		}
		if len(visits) == 0 {
			continue
		}
		sortVisits(visits)
		stats.RegionGroups = append(stats.RegionGroups, RegionGroup{
			CountryCode:  countryCode,
			CountryLabel: countryLabel(countryCode, namer),
			Regions:      visits,
		})
	}
	sort.SliceStable(stats.RegionGroups, func(i, j int) bool {
		return stats.RegionGroups[i].Regions[0].LastSeen.After(stats.RegionGroups[j].Regions[0].LastSeen)
	})

	return stats
}

// ComputeTotalDistanceKm sums consecutive-pair distances, skipping hops
// larger than thresholdKm (those are tracking gaps or flights, not ground
// travel).
func ComputeTotalDistanceKm(coords []Coordinate, thresholdKm float64) float64 {
	total := 0.0
	for _, distance := range ConsecutiveDistances(coords) {
		if distance <= thresholdKm {
			total += distance
		}
	}
	return total
}

func countryLabel(code string, namer CountryNamer) string {
	if code == "" {
		return "Unknown"
	}
	if namer != nil {
		if name := namer.CountryName(code); name != "" {
			return name
		}
	}
	return strings.ToUpper(code)
}

// sortVisits orders visits most recent first. Ties keep map-insertion
// order out; stability only matters for the tests.
func sortVisits(visits []RegionVisit) {
	sort.SliceStable(visits, func(i, j int) bool {
		return visits[i].LastSeen.After(visits[j].LastSeen)
	})
}

// usStateAliases maps lowercased admin1 names from the region lookup to
// canonical US state names (50 states + DC, with the common DC variants).
var usStateAliases = map[string]string{
	"alabama":              "Alabama",
	"alaska":               "Alaska",
	"arizona":              "Arizona",
	"arkansas":             "Arkansas",
	"california":           "California",
	"colorado":             "Colorado",
	"connecticut":          "Connecticut",
	"delaware":             "Delaware",
	"district of columbia": "District of Columbia",
	"washington, d.c.":     "District of Columbia",
	"washington d.c.":      "District of Columbia",
	"washington, dc":       "District of Columbia",
	"washington dc":        "District of Columbia",
	"dc":                   "District of Columbia",
	"florida":              "Florida",
	"georgia":              "Georgia",
	"hawaii":               "Hawaii",
	"idaho":                "Idaho",
	"illinois":             "Illinois",
	"indiana":              "Indiana",
	"iowa":                 "Iowa",
	"kansas":               "Kansas",
	"kentucky":             "Kentucky",
	"louisiana":            "Louisiana",
	"maine":                "Maine",
	"maryland":             "Maryland",
	"massachusetts":        "Massachusetts",
	"michigan":             "Michigan",
	"minnesota":            "Minnesota",
	"mississippi":          "Mississippi",
	"missouri":             "Missouri",
	"montana":              "Montana",
	"nebraska":             "Nebraska",
	"nevada":               "Nevada",
	"new hampshire":        "New Hampshire",
	"new jersey":           "New Jersey",
	"new mexico":           "New Mexico",
	"new york":             "New York",
	"north carolina":       "North Carolina",
	"north dakota":         "North Dakota",
	"ohio":                 "Ohio",
	"oklahoma":             "Oklahoma",
	"oregon":               "Oregon",
	"pennsylvania":         "Pennsylvania",
	"rhode island":         "Rhode Island",
	"south carolina":       "South Carolina",
	"south dakota":         "South Dakota",
	"tennessee":            "Tennessee",
	"texas":                "Texas",
	"utah":                 "Utah",
	"vermont":              "Vermont",
	"virginia":             "Virginia",
	"washington":           "Washington",
	"west virginia":        "West Virginia",
	"wisconsin":            "Wisconsin",
	"wyoming":              "Wyoming",
}
