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
	"slices"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// CoarsenOptions configures the privacy coarsening transform.
type CoarsenOptions struct {
	// Points per centroid window when generating curve anchors.
	WindowSize int `json:"window_size,omitempty"`

	// Minimum number of curve samples emitted per day.
	MinSamples int `json:"min_samples,omitempty"`

	// Consecutive days whose endpoints are farther apart than this are
	// left disconnected (the gap was presumably a flight).
	BridgeThresholdKm float64 `json:"bridge_threshold_km,omitempty"`

	// Number of linear subdivisions in an inter-day bridge; the bridge
	// contributes BridgeSegments-1 interior points.
	BridgeSegments int `json:"bridge_segments,omitempty"`

	// The reference timezone used to group points into calendar days and
	// to stamp each day's representative midday time. Defaults to the
	// host's local zone; must be consistent across a whole run.
	Zone *time.Location `json:"-"`
}

func (opts *CoarsenOptions) fillDefaults() {
	if opts.WindowSize <= 0 {
		opts.WindowSize = 5
	}
	if opts.MinSamples <= 0 {
		opts.MinSamples = 10
	}
	if opts.BridgeThresholdKm <= 0 {
		opts.BridgeThresholdKm = 150.0
	}
	if opts.BridgeSegments <= 0 {
		opts.BridgeSegments = 6
	}
	if opts.Zone == nil {
		opts.Zone = time.Local
	}
}

// Per-day curve fits are independent, so they run on a small worker pool.
// Output assembly is by sorted day, so results are deterministic.
const maxConcurrentDays = 8

// Coarsen produces a privacy-reduced trajectory: one smoothed curve per
// calendar day instead of raw high-frequency points, with short synthetic
// bridges between days that end and begin close together.
//
// All of a day's output points share that day's local midday timestamp;
// coarsening deliberately removes temporal granularity along with spatial
// granularity. The transform is deterministic.
func Coarsen(coords []Coordinate, opts CoarsenOptions) []Coordinate {
	opts.fillDefaults()

	if len(coords) <= 1 {
		return slices.Clone(coords)
	}

	dailyGroups := make(map[time.Time][]Coordinate)
	for _, coord := range coords {
		local := coord.Timestamp.In(opts.Zone)
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, opts.Zone)
		dailyGroups[day] = append(dailyGroups[day], coord)
	}

	days := make([]time.Time, 0, len(dailyGroups))
	for day := range dailyGroups {
		days = append(days, day)
	}
	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })

	smoothed := make([][]Coordinate, len(days))
	var wg sync.WaitGroup
	throttle := make(chan struct{}, maxConcurrentDays)
	for i, day := range days {
		wg.Add(1)
		throttle <- struct{}{}
		go func() {
			defer wg.Done()
			smoothed[i] = coarsenSingleDay(day, dailyGroups[day], opts)
			<-throttle
		}()
	}
	wg.Wait()

	var coarsened []Coordinate
	var previousTail *Coordinate

	for _, dayPoints := range smoothed {
		if len(dayPoints) == 0 {
			continue
		}
		if previousTail != nil {
			distance := previousTail.DistanceKm(dayPoints[0])
			if distance <= opts.BridgeThresholdKm {
				coarsened = append(coarsened, buildBridge(*previousTail, dayPoints[0], opts.BridgeSegments)...)
			}
		}
		coarsened = append(coarsened, dayPoints...)
		previousTail = &dayPoints[len(dayPoints)-1]
	}

	return coarsened
}

// coarsenSingleDay reduces one day's points to a smoothed curve, every
// sample stamped with the day's local midday.
func coarsenSingleDay(day time.Time, coords []Coordinate, opts CoarsenOptions) []Coordinate {
	sorted := slices.Clone(coords)
	slices.SortStableFunc(sorted, func(a, b Coordinate) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	anchors := generateAnchors(sorted, opts.WindowSize)
	curve := evaluateCurve(anchors, opts.MinSamples)
	midday := day.Add(12 * time.Hour)

	points := make([]Coordinate, len(curve))
	for i, anchor := range curve {
		points[i] = Coordinate{Latitude: anchor.lat, Longitude: anchor.lon, Timestamp: midday}
	}
	return points
}

type anchorPoint struct {
	lat, lon float64
}

// generateAnchors partitions the day's points into consecutive windows and
// takes each window's centroid as a curve control point. The last window
// may be smaller than windowSize.
func generateAnchors(coords []Coordinate, windowSize int) []anchorPoint {
	anchors := make([]anchorPoint, 0, (len(coords)+windowSize-1)/windowSize)
	for start := 0; start < len(coords); start += windowSize {
		window := coords[start:min(start+windowSize, len(coords))]
		lats := make([]float64, len(window))
		lons := make([]float64, len(window))
		for i, coord := range window {
			lats[i] = coord.Latitude
			lons[i] = coord.Longitude
		}
		anchors = append(anchors, anchorPoint{
			lat: stat.Mean(lats, nil),
			lon: stat.Mean(lons, nil),
		})
	}
	return anchors
}

// evaluateCurve fits a smooth curve through the anchors, parameterized by
// normalized position 0..1, and samples it evenly. One anchor passes
// through unchanged; two anchors are interpolated linearly (a polynomial
// would be underdetermined); three or more get a low-degree polynomial
// least-squares fit per axis.
func evaluateCurve(anchors []anchorPoint, minSamples int) []anchorPoint {
	anchorCount := len(anchors)
	if anchorCount == 0 {
		return nil
	}
	if anchorCount == 1 {
		return []anchorPoint{anchors[0]}
	}

	anchorPositions := make([]float64, anchorCount)
	floats.Span(anchorPositions, 0, 1)

	sampleCount := max(minSamples, anchorCount)
	samplePositions := make([]float64, sampleCount)
	floats.Span(samplePositions, 0, 1)

	lats := make([]float64, anchorCount)
	lons := make([]float64, anchorCount)
	for i, anchor := range anchors {
		lats[i] = anchor.lat
		lons[i] = anchor.lon
	}

	var sampleLats, sampleLons []float64
	if anchorCount >= 3 {
		degree := min(3, anchorCount-1)
		sampleLats = polyval(polyfit(anchorPositions, lats, degree), samplePositions)
		sampleLons = polyval(polyfit(anchorPositions, lons, degree), samplePositions)
	} else {
		sampleLats = interp(samplePositions, anchorPositions, lats)
		sampleLons = interp(samplePositions, anchorPositions, lons)
	}

	curve := make([]anchorPoint, sampleCount)
	for i := range curve {
		curve[i] = anchorPoint{lat: sampleLats[i], lon: sampleLons[i]}
	}
	return curve
}

// polyfit computes least-squares polynomial coefficients (ascending powers)
// for values sampled at the given positions, by QR-factorizing the
// Vandermonde system.
func polyfit(positions, values []float64, degree int) []float64 {
	vandermonde := mat.NewDense(len(positions), degree+1, nil)
	for i, pos := range positions {
		power := 1.0
		for j := 0; j <= degree; j++ {
			vandermonde.Set(i, j, power)
			power *= pos
		}
	}

	var qr mat.QR
	qr.Factorize(vandermonde)

	coeffs := mat.NewVecDense(degree+1, nil)
	if err := qr.SolveVecTo(coeffs, false, mat.NewVecDense(len(values), values)); err != nil {
		// singular fits can't happen with distinct positions and
		// degree < len(positions), but degrade to a flat line anyway
		flat := make([]float64, degree+1)
		flat[0] = stat.Mean(values, nil)
		return flat
	}
	return coeffs.RawVector().Data
}

// polyval evaluates the polynomial (ascending coefficients) at each position.
func polyval(coeffs, positions []float64) []float64 {
	out := make([]float64, len(positions))
	for i, pos := range positions {
		value := 0.0
		for j := len(coeffs) - 1; j >= 0; j-- {
			value = value*pos + coeffs[j]
		}
		out[i] = value
	}
	return out
}

// interp linearly interpolates values (defined at sorted xs) at each
// position, clamping outside the defined range.
func interp(positions, xs, values []float64) []float64 {
	out := make([]float64, len(positions))
	for i, pos := range positions {
		out[i] = interpAt(pos, xs, values)
	}
	return out
}

func interpAt(pos float64, xs, values []float64) float64 {
	if pos <= xs[0] {
		return values[0]
	}
	if pos >= xs[len(xs)-1] {
		return values[len(values)-1]
	}
	for i := 1; i < len(xs); i++ {
		if pos <= xs[i] {
			t := (pos - xs[i-1]) / (xs[i] - xs[i-1])
			return values[i-1] + (values[i]-values[i-1])*t
		}
	}
	return values[len(values)-1]
}

// buildBridge returns the interior points of a straight line between two
// day endpoints, stamped with the destination day's representative time.
func buildBridge(start, end Coordinate, segments int) []Coordinate {
	if segments < 2 {
		return nil
	}
	bridge := make([]Coordinate, 0, segments-1)
	for i := 1; i < segments; i++ {
		t := float64(i) / float64(segments)
		bridge = append(bridge, Coordinate{
			Latitude:  start.Latitude + (end.Latitude-start.Latitude)*t,
			Longitude: start.Longitude + (end.Longitude-start.Longitude)*t,
			Timestamp: end.Timestamp,
		})
	}
	return bridge
}
