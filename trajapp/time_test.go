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
	"testing"
	"time"
)

func TestParseDateString(t *testing.T) {
	zone := time.FixedZone("UTC-6", -6*3600)

	tests := []struct {
		input   string
		want    time.Time
		wantErr bool
	}{
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, zone), false},
		{"20240305", time.Date(2024, 3, 5, 0, 0, 0, 0, zone), false},
		{"  2024-03-05  ", time.Date(2024, 3, 5, 0, 0, 0, 0, zone), false},
		{"03/05/2024", time.Time{}, true},
		{"yesterday", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseDateString(tt.input, zone)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && !got.Equal(tt.want) {
				t.Errorf("parseDateString(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatTimespan(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0 days"},
		{-time.Hour, "0 days"},
		{12 * time.Hour, "0 days"},
		{24 * time.Hour, "1 day"},
		{72 * time.Hour, "3 days"},
		{35 * 24 * time.Hour, "1 month, 5 days"},
		{400 * 24 * time.Hour, "1 year, 1 month, 5 days"},
		{730 * 24 * time.Hour, "2 years"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatTimespan(tt.d); got != tt.want {
				t.Errorf("formatTimespan(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}
