package stage

import (
	"strings"
	"time"
)

// Result is a growth-stage estimate for a crop on a given day.
type Result struct {
	DaysAfterSowing int
	Stage           string
}

// bucket maps an inclusive DAS interval to a stage label. Max below zero
// means open-ended, catching any day count beyond the table.
type bucket struct {
	Min, Max int
	Label    string
}

// ruleTables holds the fixed day-range tables per supported crop.
// Buckets are contiguous and non-overlapping; the last is open-ended.
// A crop missing here silently disables stage estimation.
var ruleTables = map[string][]bucket{
	"cotton": {
		{0, 20, "अंकुरण अवस्था (Germination)"},
		{21, 45, "वानस्पतिक वृद्धि (Vegetative Growth)"},
		{46, 90, "फूल और टिंडा बनना (Flowering & Boll Formation)"},
		{91, 150, "टिंडा खुलना (Boll Opening)"},
		{151, -1, "चुनाई के करीब (Near Harvest)"},
	},
	"maize": {
		{0, 15, "अंकुरण अवस्था (Germination)"},
		{16, 45, "वानस्पतिक वृद्धि (Vegetative Growth)"},
		{46, 70, "नर मंजरी और रेशमी बाल (Tasseling & Silking)"},
		{71, 100, "दाना भरना (Grain Filling)"},
		{101, -1, "कटाई के करीब (Near Harvest)"},
	},
	"rice": {
		{0, 20, "नर्सरी / रोपाई अवस्था (Nursery & Transplanting)"},
		{21, 45, "कल्ले निकलना (Tillering)"},
		{46, 70, "गभोट अवस्था (Panicle Initiation)"},
		{71, 100, "बाली और दाना भरना (Heading & Grain Filling)"},
		{101, -1, "कटाई के करीब (Near Harvest)"},
	},
	"soybean": {
		{0, 15, "अंकुरण अवस्था (Germination)"},
		{16, 40, "वानस्पतिक वृद्धि (Vegetative Growth)"},
		{41, 65, "फूल अवस्था (Flowering)"},
		{66, 95, "फली भरना (Pod Filling)"},
		{96, -1, "कटाई के करीब (Near Harvest)"},
	},
	"tomato": {
		{0, 25, "पौध / स्थापना अवस्था (Seedling & Establishment)"},
		{26, 45, "वानस्पतिक वृद्धि (Vegetative Growth)"},
		{46, 70, "फूल और फल बनना (Flowering & Fruit Set)"},
		{71, -1, "तुड़ाई अवस्था (Harvesting)"},
	},
	"wheat": {
		{0, 20, "अंकुरण अवस्था (Germination)"},
		{21, 60, "कल्ले और गांठ बनना (Tillering & Jointing)"},
		{61, 90, "बाली निकलना (Heading)"},
		{91, 120, "दाना पकना (Grain Maturity)"},
		{121, -1, "कटाई के करीब (Near Harvest)"},
	},
}

// Accepted sowing-date layouts, tried in order. Day-first forms come
// first; that is how farmers and field agents write dates here.
var dateLayouts = []string{
	"02-01-2006",
	"02/01/2006",
	"2006-01-02",
}

// approximateLabel is returned if a day count lands in no bucket. The
// open-ended last buckets make this unreachable for the shipped tables,
// but a gap must not turn into a failure.
const approximateLabel = "अनुमानित अवस्था (Approximate stage)"

// Estimate computes days-after-sowing and the matching stage label.
// Unknown crop, unparseable date, or a sowing date in the future all
// report ok=false: stage is simply unknown, never an error.
func Estimate(cropKey, sowingDate string, today time.Time) (Result, bool) {
	table, ok := ruleTables[strings.ToLower(strings.TrimSpace(cropKey))]
	if !ok {
		return Result{}, false
	}

	sowed, ok := parseDate(sowingDate)
	if !ok {
		return Result{}, false
	}

	das := daysBetween(sowed, today)
	if das < 0 {
		return Result{}, false
	}

	for _, b := range table {
		if das >= b.Min && (b.Max < 0 || das <= b.Max) {
			return Result{DaysAfterSowing: das, Stage: b.Label}, true
		}
	}
	return Result{DaysAfterSowing: das, Stage: approximateLabel}, true
}

// Supported reports whether a rule table exists for the crop.
func Supported(cropKey string) bool {
	_, ok := ruleTables[strings.ToLower(strings.TrimSpace(cropKey))]
	return ok
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// daysBetween counts whole calendar days from a to b, ignoring
// time-of-day and zone offsets.
func daysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
