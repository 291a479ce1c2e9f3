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
	"os"
	"path/filepath"
	"testing"

	"github.com/timelinize/trajectory/traj"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputFile != defaultOutputFile {
		t.Errorf("output file = %q", cfg.OutputFile)
	}
	if cfg.JumpThresholdKm != traj.DefaultJumpThresholdKm {
		t.Errorf("jump threshold = %f", cfg.JumpThresholdKm)
	}
	if len(cfg.NoFlyZones) != len(traj.DefaultNoFlyZones) {
		t.Errorf("expected default no-fly zones, got %d", len(cfg.NoFlyZones))
	}
	if cfg.Zoom != defaultZoom || cfg.MapStyle != defaultMapStyle {
		t.Errorf("view defaults wrong: zoom=%f style=%q", cfg.Zoom, cfg.MapStyle)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	contents := `{
		"input_file": "Records.json",
		"jump_threshold_km": 75,
		"no_fly_zones": [
			{"name": "Home", "min_lat": 1, "min_lon": 2, "max_lat": 3, "max_lon": 4}
		],
		"timezone": "America/Chicago"
	}`
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.InputFile != "Records.json" || cfg.JumpThresholdKm != 75 {
		t.Errorf("config values not applied: %+v", cfg)
	}
	if len(cfg.NoFlyZones) != 1 || cfg.NoFlyZones[0].Name != "Home" {
		t.Errorf("zone list should replace the default set: %+v", cfg.NoFlyZones)
	}
	// unset fields still get defaults
	if cfg.OutputFile != defaultOutputFile {
		t.Errorf("output default missing: %q", cfg.OutputFile)
	}
}

func TestStyleURL(t *testing.T) {
	cfg := &Config{MapStyle: "Voyager"}
	if got := cfg.styleURL(); got != MapStyles["Voyager"] {
		t.Errorf("named style not resolved: %q", got)
	}

	custom := "https://example.com/style.json"
	cfg.MapStyle = custom
	if got := cfg.styleURL(); got != custom {
		t.Errorf("custom style URL should pass through: %q", got)
	}
}
