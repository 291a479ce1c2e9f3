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

// Package tjcmd facilitates the command line interface (CLI)
// and implements the main().
package tjcmd

import (
	"errors"
	"flag"

	"go.uber.org/zap"

	"github.com/timelinize/trajectory/traj"
	"github.com/timelinize/trajectory/trajapp"
)

func Main() {
	var (
		configFile = flag.String("config", "", "Path to a JSON config file")
		input      = flag.String("input", "", "Path to the location history JSON export")
		output     = flag.String("output", "", "Path for the rendering payload")
		geojsonOut = flag.String("geojson", "", "Also write a GeoJSON file to this path")
		startDate  = flag.String("start-date", "", "Keep records on or after this date (YYYY-MM-DD)")
		endDate    = flag.String("end-date", "", "Keep records on or before this date (YYYY-MM-DD)")
		threshold  = flag.Float64("jump-threshold-km", 0, "Break trails at hops larger than this many kilometers")
		timezone   = flag.String("timezone", "", "Reference IANA timezone (default: resolved from the trace)")
		coarsen    = flag.Bool("coarsen", false, "Apply privacy coarsening (daily smoothed curves) before segmentation")
		excludeNFZ = flag.Bool("exclude-no-fly-zones", false, "Drop points inside configured no-fly zones")
		stats      = flag.Bool("stats", false, "Compute and print visited-region travel stats")
		demo       = flag.Bool("demo", false, "Generate a synthetic trace instead of reading an input file")
		zoom       = flag.Float64("zoom", 0, "Initial map zoom level")
		mapStyle   = flag.String("map-style", "", "Basemap style name (Voyager, Positron, Dark Matter) or style URL")
	)
	flag.Parse()

	cfg, err := trajapp.LoadConfig(*configFile)
	if err != nil {
		traj.Log.Fatal("failed loading config", zap.Error(err))
	}

	// flags override the config file
	if *input != "" {
		cfg.InputFile = *input
	}
	if *output != "" {
		cfg.OutputFile = *output
	}
	if *geojsonOut != "" {
		cfg.GeoJSONFile = *geojsonOut
	}
	if *startDate != "" {
		cfg.StartDate = *startDate
	}
	if *endDate != "" {
		cfg.EndDate = *endDate
	}
	if *threshold > 0 {
		cfg.JumpThresholdKm = *threshold
	}
	if *timezone != "" {
		cfg.Timezone = *timezone
	}
	if *coarsen {
		cfg.Coarsen = true
	}
	if *excludeNFZ {
		cfg.ExcludeNoFlyZones = true
	}
	if *stats {
		cfg.Stats = true
	}
	if *demo {
		cfg.Demo = true
	}
	if *zoom > 0 {
		cfg.Zoom = *zoom
	}
	if *mapStyle != "" {
		cfg.MapStyle = *mapStyle
	}

	if err := trajapp.New(cfg).Run(); err != nil {
		var stageErr traj.StageError
		if errors.As(err, &stageErr) {
			traj.Log.Fatal("pipeline produced no output",
				zap.String("stage", stageErr.Stage),
				zap.Error(stageErr.Err),
				zap.Strings("recommendations", stageErr.Recommendations))
		}
		traj.Log.Fatal("run failed", zap.Error(err))
	}
}
