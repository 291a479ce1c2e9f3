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
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/timelinize/trajectory/deck"
)

func takeoutRecord(lat, lon float64, ts time.Time) string {
	return fmt.Sprintf(`{"latitudeE7": %d, "longitudeE7": %d, "timestamp": %q}`,
		int64(math.Round(lat*1e7)), int64(math.Round(lon*1e7)), ts.UTC().Format(time.RFC3339))
}

// Coarsening is a privacy transform: enabling it must exclude no-fly-zone
// points even when the exclusion flag is off, and the published payload must
// not carry flight arcs with exact endpoints.
func TestRunCoarseningForcesPrivacy(t *testing.T) {
	var records []string
	addDay := func(dayOffset int, lat, lon float64) {
		start := time.Date(2024, 6, 10+dayOffset, 8, 0, 0, 0, time.UTC)
		for i := range 12 {
			records = append(records, takeoutRecord(
				lat+float64(i)*0.001, lon, start.Add(time.Duration(i)*time.Minute)))
		}
	}
	addDay(0, 41.8, -87.7) // inside the Chicago & Evanston default zone
	addDay(1, 40.0, -88.0)
	addDay(2, 48.0, -95.0) // far enough from the prior day to read as a flight

	dir := t.TempDir()
	input := filepath.Join(dir, "Records.json")
	payload := `{"locations": [` + strings.Join(records, ",") + `]}`
	if err := os.WriteFile(input, []byte(payload), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.InputFile = input
	cfg.OutputFile = filepath.Join(dir, "deck.json")
	cfg.Timezone = "UTC"
	cfg.Coarsen = true
	// ExcludeNoFlyZones deliberately left false

	if err := New(cfg).Run(); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	data, err := os.ReadFile(cfg.OutputFile)
	if err != nil {
		t.Fatal(err)
	}
	var out deck.Payload
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("output is not a valid payload: %v", err)
	}

	if len(out.Trips) == 0 {
		t.Fatal("expected trips in the output payload")
	}
	for _, trip := range out.Trips {
		for _, pos := range trip.Path {
			lon, lat := pos[0], pos[1]
			for _, zone := range cfg.NoFlyZones {
				if zone.Contains(lat, lon) {
					t.Fatalf("published point (%f, %f) falls inside zone %q", lat, lon, zone.Name)
				}
			}
		}
	}
	if len(out.Arcs) != 0 {
		t.Errorf("coarsened output must not include flight arcs, got %d", len(out.Arcs))
	}
}
