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
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

// FakeHistory generates a synthetic location trace for demos: days of
// wandering around a home base, with the occasional long hop to a new base
// so that segmentation and flight detection have something to find. The
// same seed always produces the same trace.
func FakeHistory(seed uint64, days, pointsPerDay int, end time.Time) []Coordinate {
	if days <= 0 || pointsPerDay <= 0 {
		return nil
	}
	faker := gofakeit.New(seed)

	// home base somewhere in the contiguous US
	baseLat := faker.Float64Range(30.0, 45.0)
	baseLon := faker.Float64Range(-115.0, -75.0)

	start := end.AddDate(0, 0, -days)
	pointSpacing := 24 * time.Hour / time.Duration(pointsPerDay)

	coords := make([]Coordinate, 0, days*pointsPerDay)
	lat, lon := baseLat, baseLon

	for day := range days {
		// every so often, relocate far enough to read as a flight
		if day > 0 && faker.Number(0, 9) == 0 {
			baseLat = faker.Float64Range(26.0, 48.0)
			baseLon = faker.Float64Range(-120.0, -70.0)
			lat, lon = baseLat, baseLon
		}

		dayStart := start.AddDate(0, 0, day)
		for point := range pointsPerDay {
			// local wandering, a couple hundred meters at a time
			lat += faker.Float64Range(-0.003, 0.003)
			lon += faker.Float64Range(-0.003, 0.003)
			// drift back toward base so the walk doesn't run away
			lat += (baseLat - lat) * 0.05
			lon += (baseLon - lon) * 0.05

			coords = append(coords, Coordinate{
				Latitude:  lat,
				Longitude: lon,
				Timestamp: dayStart.Add(time.Duration(point) * pointSpacing),
			})
		}
	}

	return coords
}
