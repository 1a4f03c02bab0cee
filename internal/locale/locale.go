// Package locale resolves week conventions (first weekday, weekend days)
// from a BCP 47 language tag.
package locale

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// DefaultTag is used when no locale is configured
const DefaultTag = "en-US"

// Region tables follow CLDR weekData; regions not listed start on Monday
// and rest on Saturday and Sunday.
var (
	sundayFirst = map[string]bool{
		"AG": true, "AS": true, "BD": true, "BR": true, "BS": true, "BT": true, "BW": true,
		"BZ": true, "CA": true, "CN": true, "CO": true, "DM": true, "DO": true, "ET": true,
		"GT": true, "GU": true, "HK": true, "HN": true, "ID": true, "IL": true, "IN": true,
		"JM": true, "JP": true, "KE": true, "KH": true, "KR": true, "LA": true, "MH": true,
		"MM": true, "MO": true, "MT": true, "MX": true, "MZ": true, "NI": true, "NP": true,
		"PA": true, "PE": true, "PH": true, "PK": true, "PR": true, "PT": true, "PY": true,
		"SA": true, "SG": true, "SV": true, "TH": true, "TT": true, "TW": true, "UM": true,
		"US": true, "VE": true, "VI": true, "WS": true, "YE": true, "ZA": true, "ZW": true,
	}
	saturdayFirst = map[string]bool{
		"AE": true, "AF": true, "BH": true, "DJ": true, "DZ": true, "EG": true, "IQ": true,
		"IR": true, "JO": true, "KW": true, "LY": true, "OM": true, "QA": true, "SD": true,
		"SY": true,
	}
	weekends = map[string][]time.Weekday{
		"AF": {time.Thursday, time.Friday},
		"IR": {time.Friday},
		"IN": {time.Sunday},
		"UG": {time.Sunday},
		"AE": {time.Saturday, time.Sunday},
		"BH": {time.Friday, time.Saturday},
		"DZ": {time.Friday, time.Saturday},
		"EG": {time.Friday, time.Saturday},
		"IL": {time.Friday, time.Saturday},
		"IQ": {time.Friday, time.Saturday},
		"JO": {time.Friday, time.Saturday},
		"KW": {time.Friday, time.Saturday},
		"LY": {time.Friday, time.Saturday},
		"OM": {time.Friday, time.Saturday},
		"QA": {time.Friday, time.Saturday},
		"SA": {time.Friday, time.Saturday},
		"SD": {time.Friday, time.Saturday},
		"SY": {time.Friday, time.Saturday},
		"YE": {time.Friday, time.Saturday},
	}
	defaultWeekend = []time.Weekday{time.Saturday, time.Sunday}
)

// Region returns the (possibly inferred) region code of tag, e.g. "de" -> "DE"
func Region(tag string) (string, error) {
	if tag == "" {
		tag = DefaultTag
	}
	t, err := language.Parse(tag)
	if err != nil {
		return "", fmt.Errorf("invalid locale %q: %w", tag, err)
	}
	region, _ := t.Region()
	return region.String(), nil
}

// FirstDayOfWeek returns the weekday rows start on for the locale
func FirstDayOfWeek(tag string) (time.Weekday, error) {
	region, err := Region(tag)
	if err != nil {
		return time.Monday, err
	}
	switch {
	case sundayFirst[region]:
		return time.Sunday, nil
	case saturdayFirst[region]:
		return time.Saturday, nil
	}
	return time.Monday, nil
}

// Weekend returns the rest days of the locale
func Weekend(tag string) ([]time.Weekday, error) {
	region, err := Region(tag)
	if err != nil {
		return defaultWeekend, err
	}
	if days, ok := weekends[region]; ok {
		return days, nil
	}
	return defaultWeekend, nil
}

// WeekdayHeader returns two-letter weekday labels starting at first
func WeekdayHeader(first time.Weekday) []string {
	labels := make([]string, 7)
	for i := range labels {
		labels[i] = ((first + time.Weekday(i)) % 7).String()[:2]
	}
	return labels
}

// ParseWeekday accepts English weekday names ("monday", "Mon") or 0-6 with 0 = Sunday
func ParseWeekday(s string) (time.Weekday, error) {
	if len(s) == 1 && s[0] >= '0' && s[0] <= '6' {
		return time.Weekday(s[0] - '0'), nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := d.String()
		if strings.EqualFold(s, name) || (len(s) == 3 && strings.EqualFold(s, name[:3])) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("unknown weekday %q", s)
}
