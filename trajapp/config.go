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

package trajapp

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/timelinize/trajectory/traj"
)

// Config describes one pipeline run. Zero values get filled with defaults;
// a JSON config file can set any of it, and CLI flags override the file.
type Config struct {
	// Path to the location-history export (Records.json or a semantic
	// location history file).
	InputFile string `json:"input_file,omitempty"`

	// Where the rendering payload is written.
	OutputFile string `json:"output_file,omitempty"`

	// Optional GeoJSON output path; empty disables it.
	GeoJSONFile string `json:"geojson_file,omitempty"`

	// Inclusive date bounds, YYYY-MM-DD or YYYYMMDD; empty means
	// unbounded on that side.
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`

	// Consecutive-pair distance above which the trail breaks.
	JumpThresholdKm float64 `json:"jump_threshold_km,omitempty"`

	// Apply the privacy coarsening transform before segmentation.
	Coarsen bool `json:"coarsen,omitempty"`

	// Coarsening parameters; zero values use the package defaults.
	Coarsening traj.CoarsenOptions `json:"coarsening,omitempty"`

	// Drop points inside the no-fly zones before anything else sees them.
	ExcludeNoFlyZones bool `json:"exclude_no_fly_zones,omitempty"`

	// Zone list; empty uses the built-in set.
	NoFlyZones []traj.NoFlyZone `json:"no_fly_zones,omitempty"`

	// Reference IANA timezone for day grouping and date bounds. Empty
	// resolves from the trace itself (falling back to the host zone).
	Timezone string `json:"timezone,omitempty"`

	// Compute and print visited-region stats (loads the offline
	// reverse-geocoding dataset).
	Stats bool `json:"stats,omitempty"`

	// Generate a synthetic trace instead of reading InputFile.
	Demo bool `json:"demo,omitempty"`

	// Initial map view.
	Zoom     float64 `json:"zoom,omitempty"`
	MapStyle string  `json:"map_style,omitempty"`
}

// MapStyles are the named basemap styles; MapStyle may also be a custom
// style URL.
var MapStyles = map[string]string{
	"Voyager":     "https://basemaps.cartocdn.com/gl/voyager-gl-style/style.json",
	"Positron":    "https://basemaps.cartocdn.com/gl/positron-gl-style/style.json",
	"Dark Matter": "https://basemaps.cartocdn.com/gl/dark-matter-gl-style/style.json",
}

const (
	defaultOutputFile = "trajectory_deck.json"
	defaultMapStyle   = "Voyager"
	defaultZoom       = 4.0
)

// LoadConfig reads a JSON config file. An empty path returns a default
// config.
func LoadConfig(path string) (*Config, error) {
	cfg := new(Config)
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decoding config file %s: %w", path, err)
		}
	}
	cfg.fillDefaults()
	return cfg, nil
}

func (cfg *Config) fillDefaults() {
	if cfg.OutputFile == "" {
		cfg.OutputFile = defaultOutputFile
	}
	if cfg.JumpThresholdKm <= 0 {
		cfg.JumpThresholdKm = traj.DefaultJumpThresholdKm
	}
	if cfg.NoFlyZones == nil {
		cfg.NoFlyZones = traj.DefaultNoFlyZones
	}
	if cfg.Zoom <= 0 {
		cfg.Zoom = defaultZoom
	}
	if cfg.MapStyle == "" {
		cfg.MapStyle = defaultMapStyle
	}
}

// styleURL resolves a named style, passing unknown values through as
// custom URLs.
func (cfg *Config) styleURL() string {
	if url, ok := MapStyles[cfg.MapStyle]; ok {
		return url
	}
	return cfg.MapStyle
}
