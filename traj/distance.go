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

import "math"

const earthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance between two points in
// kilometers. Segmentation, flight detection, and distance totals all go
// through this one function so their results agree exactly.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := degreesToRadians(lat1)
	phi2 := degreesToRadians(lat2)
	dPhi := degreesToRadians(lat2 - lat1)
	dLambda := degreesToRadians(lon2 - lon1)

	sinPhi := math.Sin(dPhi / 2)
	sinLambda := math.Sin(dLambda / 2)
	a := sinPhi*sinPhi + math.Cos(phi1)*math.Cos(phi2)*sinLambda*sinLambda

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// DistanceKm returns the great-circle distance to another coordinate.
func (c Coordinate) DistanceKm(other Coordinate) float64 {
	return HaversineKm(c.Latitude, c.Longitude, other.Latitude, other.Longitude)
}

// ConsecutiveDistances returns the n-1 distances between each consecutive
// pair in coords. It returns nil for fewer than two points.
func ConsecutiveDistances(coords []Coordinate) []float64 {
	if len(coords) < 2 {
		return nil
	}
	distances := make([]float64, len(coords)-1)
	for i := 1; i < len(coords); i++ {
		distances[i-1] = coords[i-1].DistanceKm(coords[i])
	}
	return distances
}

func degreesToRadians(d float64) float64 {
	return d * (math.Pi / 180)
}
