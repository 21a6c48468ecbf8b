package article

import (
	"strconv"
	"strings"
	"time"
)

// colombo is the publication zone for all four sources.
var colombo = time.FixedZone("+0530", 5*3600+30*60)

// sinhalaMonths maps Sinhala month names to their number.
var sinhalaMonths = map[string]time.Month{
	"ජනවාරි":     time.January,
	"පෙබරවාරි":   time.February,
	"මාර්තු":     time.March,
	"අප්‍රේල්":   time.April,
	"මැයි":       time.May,
	"ජුනි":       time.June,
	"ජූනි":       time.June,
	"ජූලි":       time.July,
	"අගෝස්තු":    time.August,
	"සැප්තැම්බර්": time.September,
	"ඔක්තෝබර්":   time.October,
	"නොවැම්බර්":  time.November,
	"දෙසැම්බර්":  time.December,
}

// knownLayouts are the machine date formats the sources emit: the Hiru
// API, the News First API ("03-06-2025T8:11 AM"), and ITN's <time>
// datetime attribute.
var knownLayouts = []string{
	"2006-01-02 15:04:05",
	"02-01-2006T3:04 PM",
	"02-01-2006T15:04",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate turns a source's date text into a Timestamp. Unparseable
// or empty text falls back to the harvest time with Estimated set, so
// downstream consumers can always tell a real publication time from a
// substitute.
func ParseDate(text string) Timestamp {
	text = strings.TrimSpace(text)
	if text != "" {
		for _, layout := range knownLayouts {
			if t, err := time.ParseInLocation(layout, text, colombo); err == nil {
				return Timestamp{Time: t}
			}
		}
		if ts, ok := parseSinhalaDate(text); ok {
			return ts
		}
	}
	return Timestamp{Time: time.Now(), Estimated: true}
}

// parseSinhalaDate reads the "2025 ජුනි මස 22" format used on listing
// and article pages.
func parseSinhalaDate(text string) (Timestamp, bool) {
	parts := strings.Fields(text)
	if len(parts) < 4 || parts[2] != "මස" {
		return Timestamp{}, false
	}

	month, ok := sinhalaMonths[parts[1]]
	if !ok {
		return Timestamp{}, false
	}

	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Timestamp{}, false
	}
	day, err := strconv.Atoi(parts[3])
	if err != nil {
		return Timestamp{}, false
	}

	t := time.Date(year, month, day, 0, 0, 0, 0, colombo)
	return Timestamp{Time: t}, true
}
