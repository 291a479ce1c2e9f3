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

// Package trajapp wires the pipeline together for one run: read the
// export, filter, optionally coarsen, segment, and write the rendering
// payload and stats summary.
package trajapp

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/timelinize/trajectory/deck"
	"github.com/timelinize/trajectory/geocode"
	"github.com/timelinize/trajectory/takeout"
	"github.com/timelinize/trajectory/traj"
)

// App runs the pipeline described by its config.
type App struct {
	cfg *Config
	log *zap.Logger
}

// New creates an App for the given config.
func New(cfg *Config) *App {
	return &App{
		cfg: cfg,
		log: traj.Log.Named("app").With(zap.String("run_id", uuid.NewString())),
	}
}

const (
	demoDays         = 90
	demoPointsPerDay = 48
)

// Run executes the whole pipeline once. Empty-output conditions come back
// as StageErrors wrapping the traj sentinels, each carrying the remedy for
// its stage.
func (a *App) Run() error {
	coords, err := a.obtainCoordinates()
	if err != nil {
		return err
	}
	if len(coords) == 0 {
		return traj.StageError{
			Stage: "extraction",
			Err:   traj.ErrNoCoordinates,
			Recommendations: []string{
				"check that the input file is a location history export with timestamped records",
			},
		}
	}
	a.log.Info("extracted coordinates",
		zap.Int("count", len(coords)),
		zap.Time("first", coords[0].Timestamp),
		zap.Time("last", coords[len(coords)-1].Timestamp))

	zone, err := traj.ResolveReferenceZone(a.cfg.Timezone, coords)
	if err != nil {
		return err
	}
	a.log.Info("using reference timezone", zap.String("zone", zone.String()))

	coords, err = a.applyFilters(coords, zone)
	if err != nil {
		return err
	}

	pathCoords := coords
	if a.cfg.Coarsen {
		opts := a.cfg.Coarsening
		opts.Zone = zone
		pathCoords = traj.Coarsen(coords, opts)
		a.log.Info("applied privacy coarsening",
			zap.Int("input_points", len(coords)),
			zap.Int("output_points", len(pathCoords)))
	}

	// stats describe what gets published, so they run on the (possibly
	// coarsened) path, not the raw trace
	if a.cfg.Stats {
		a.reportStats(pathCoords)
	}

	segments, flights := traj.BuildSegments(pathCoords, a.cfg.JumpThresholdKm)
	if len(segments) == 0 {
		return traj.StageError{
			Stage: "segmentation",
			Err:   traj.ErrNoSegments,
			Recommendations: []string{
				fmt.Sprintf("increase --jump-threshold-km (currently %.1f)", a.cfg.JumpThresholdKm),
			},
		}
	}
	a.log.Info("built segments",
		zap.Int("segments", len(segments)),
		zap.Int("flights", len(flights)),
		zap.Float64("total_distance_km", traj.ComputeTotalDistanceKm(pathCoords, a.cfg.JumpThresholdKm)),
		zap.String("timespan", formatTimespan(
			coords[len(coords)-1].Timestamp.Sub(coords[0].Timestamp))))

	if a.cfg.Coarsen {
		// flight arcs carry exact origin/destination coordinates, which
		// coarsened output must not expose
		flights = nil
	}

	return a.writeOutputs(segments, flights)
}

func (a *App) obtainCoordinates() ([]traj.Coordinate, error) {
	if a.cfg.Demo {
		a.log.Info("generating synthetic demo trace")
		return traj.FakeHistory(uint64(time.Now().UnixNano()), demoDays, demoPointsPerDay, time.Now()), nil
	}
	if a.cfg.InputFile == "" {
		return nil, fmt.Errorf("no input file configured; pass --input or use --demo")
	}
	return takeout.ExtractFile(a.cfg.InputFile)
}

func (a *App) applyFilters(coords []traj.Coordinate, zone *time.Location) ([]traj.Coordinate, error) {
	var start, end *time.Time
	if a.cfg.StartDate != "" {
		ts, err := parseDateString(a.cfg.StartDate, zone)
		if err != nil {
			return nil, err
		}
		start = &ts
	}
	if a.cfg.EndDate != "" {
		ts, err := parseDateString(a.cfg.EndDate, zone)
		if err != nil {
			return nil, err
		}
		// inclusive of the whole end day
		ts = ts.AddDate(0, 0, 1).Add(-time.Nanosecond)
		end = &ts
	}

	coords = traj.ApplyDateFilters(coords, start, end)
	if len(coords) == 0 {
		return nil, traj.StageError{
			Stage: "date filter",
			Err:   traj.ErrAllFilteredOut,
			Recommendations: []string{
				"broaden --start-date/--end-date; no records fall inside the requested range",
			},
		}
	}

	excludeZones := a.cfg.ExcludeNoFlyZones
	if a.cfg.Coarsen && !excludeZones {
		// coarsening is a privacy transform; letting zone points through
		// while smoothing everything else would defeat it
		a.log.Info("coarsening always excludes no-fly zones")
		excludeZones = true
	}

	if excludeZones {
		kept, excluded := traj.FilterNoFlyZones(coords, a.cfg.NoFlyZones)
		for name, count := range excluded {
			a.log.Info("excluded no-fly zone points",
				zap.String("zone", name),
				zap.Int("count", count))
		}
		coords = kept
		if len(coords) == 0 {
			return nil, traj.StageError{
				Stage: "no-fly zone filter",
				Err:   traj.ErrAllFilteredOut,
				Recommendations: []string{
					"every remaining point fell inside a configured zone; adjust the zone list",
				},
			}
		}
	}

	return coords, nil
}

// reportStats computes and prints the visited-region summary. Stats are
// best-effort; a missing capability degrades to a notice, never a failed
// run.
func (a *App) reportStats(coords []traj.Coordinate) {
	lookup, err := geocode.NewOffline()
	if err != nil {
		a.log.Warn("region lookup unavailable; skipping travel stats", zap.Error(err))
		fmt.Println("\nTravel stats unavailable: reverse geocoding dataset could not be loaded.")
		return
	}

	stats := traj.ComputeLocationStats(coords, lookup, geocode.Namer{})
	if stats == nil {
		fmt.Println("\nTravel stats unavailable.")
		return
	}
	printStats(stats)
}

func printStats(stats *traj.LocationStats) {
	fmt.Println("\nTravel Stats")
	fmt.Println("------------")
	fmt.Printf("Visited countries: %d\n", len(stats.Countries))
	for _, visit := range stats.Countries {
		fmt.Printf("  - %s (%s) - last entry %s\n",
			visit.Label, visit.Identifier, visit.LastSeen.Format("2006-01-02"))
	}
	if len(stats.USStates) > 0 {
		fmt.Printf("\nVisited US states: %d\n", len(stats.USStates))
		for _, visit := range stats.USStates {
			fmt.Printf("  - %s - last entry %s\n", visit.Label, visit.LastSeen.Format("2006-01-02"))
		}
	}
	if len(stats.RegionGroups) > 0 {
		fmt.Println("\nRegions by country:")
		for _, group := range stats.RegionGroups {
			fmt.Printf("  %s (%s) - %d region(s)\n", group.CountryLabel, group.CountryCode, len(group.Regions))
			for _, visit := range group.Regions {
				fmt.Printf("    - %s - last entry %s\n", visit.Label, visit.LastSeen.Format("2006-01-02"))
			}
		}
	}
}

func (a *App) writeOutputs(segments []traj.Segment, flights []traj.Flight) error {
	payload := deck.BuildPayload(segments, flights, a.cfg.Zoom, a.cfg.styleURL())

	out, err := os.Create(a.cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer out.Close()
	if err := payload.WriteTo(out); err != nil {
		return fmt.Errorf("writing rendering payload: %w", err)
	}
	a.log.Info("wrote rendering payload", zap.String("path", a.cfg.OutputFile))

	if a.cfg.GeoJSONFile != "" {
		fc := deck.GeoJSON(segments, flights)
		data, err := json.MarshalIndent(fc, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding geojson: %w", err)
		}
		if err := os.WriteFile(a.cfg.GeoJSONFile, data, 0o644); err != nil {
			return fmt.Errorf("writing geojson file: %w", err)
		}
		a.log.Info("wrote geojson", zap.String("path", a.cfg.GeoJSONFile))
	}

	return nil
}
