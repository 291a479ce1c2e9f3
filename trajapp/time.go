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
	"fmt"
	"strings"
	"time"
)

// parseDateString accepts YYYY-MM-DD or YYYYMMDD and interprets the date
// in the given zone (midnight).
func parseDateString(dateStr string, zone *time.Location) (time.Time, error) {
	cleaned := strings.TrimSpace(dateStr)
	for _, layout := range []string{"2006-01-02", "20060102"} {
		if ts, err := time.ParseInLocation(layout, cleaned, zone); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or YYYYMMDD", dateStr)
}

// formatTimespan renders a duration in calendar-ish units for the summary
// output ("1 year, 2 months, 3 days"). Months are 30 days and years 365;
// this is display text, not arithmetic anyone depends on.
func formatTimespan(d time.Duration) string {
	if d <= 0 {
		return "0 days"
	}
	totalDays := int(d.Hours() / 24)
	years := totalDays / 365
	remDays := totalDays % 365
	months := remDays / 30
	days := remDays % 30

	var parts []string
	if years > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", years, plural("year", years)))
	}
	if months > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", months, plural("month", months)))
	}
	if days > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%d %s", days, plural("day", days)))
	}
	return strings.Join(parts, ", ")
}

func plural(unit string, n int) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
