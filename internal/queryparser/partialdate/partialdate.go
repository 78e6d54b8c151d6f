// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 INSPIRE Contributors

// Package partialdate parses dates of varying granularity (year, year-month,
// or full year-month-day) and resolves the relative SPIRES date specifiers
// (today, yesterday, this month, last month). It is a fresh, self-contained
// implementation grounded on the call-site contract in
// visitor_utils.py's date-handling functions — inspire_utils.date.PartialDate
// itself is not present in the retrieval pack (see DESIGN.md).
package partialdate

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Granularity names the precision a PartialDate was parsed at.
type Granularity int

const (
	Year Granularity = iota
	Month
	Day
)

// ES date-math rounding suffixes, ported from
// ElasticSearchVisitor's ES_DATE_MATH_ROUNDING_* constants.
const (
	ESDateMathRoundingYear  = "||/y"
	ESDateMathRoundingMonth = "||/M"
	ESDateMathRoundingDay   = "||/d"
)

// PartialDate is a calendar date known to year, year-month, or full
// year-month-day precision.
type PartialDate struct {
	Year        int
	Month       int // 1-12, zero if granularity is Year
	Day         int // 1-31, zero if granularity is Year or Month
	Granularity Granularity
}

// ESRoundingAnchor returns the date-math rounding suffix appropriate for this
// date's granularity, mirroring
// _get_proper_elastic_search_date_rounding_format.
func (d PartialDate) ESRoundingAnchor() string {
	switch d.Granularity {
	case Year:
		return ESDateMathRoundingYear
	case Month:
		return ESDateMathRoundingMonth
	default:
		return ESDateMathRoundingDay
	}
}

// String renders the date in ISO-ish form at its own granularity.
func (d PartialDate) String() string {
	switch d.Granularity {
	case Year:
		return fmt.Sprintf("%04d", d.Year)
	case Month:
		return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
	default:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	}
}

// NextDate adds one unit at the finest granularity present, mirroring
// _get_next_date_from_partial_date (day > month > year).
func (d PartialDate) NextDate() PartialDate {
	switch d.Granularity {
	case Day:
		t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
		return PartialDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day(), Granularity: Day}
	case Month:
		t := time.Date(d.Year, time.Month(d.Month), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
		return PartialDate{Year: t.Year(), Month: int(t.Month()), Granularity: Month}
	default:
		return PartialDate{Year: d.Year + 1, Granularity: Year}
	}
}

var monthNames = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "sept": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

// Parser parses free-text dates into PartialDate values; relative date
// specifiers are resolved by DefaultParser's Convert* methods, which are
// not part of this interface. Exposed as an interface (mirroring nameparser.Parser) so callers can substitute a
// different implementation without there being any real external date
// service to call out to.
type Parser interface {
	Parse(text string) (PartialDate, error)
}

// DefaultParser is the built-in Parser implementation.
type DefaultParser struct {
	// Now, if non-nil, is used instead of time.Now for relative-date
	// resolution (today/yesterday/this month/last month). Tests set this
	// to a fixed instant; production code leaves it nil.
	Now func() time.Time
}

func (p DefaultParser) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now().UTC()
}

// Parse recognizes YYYY, YYYY-MM, YYYY-MM-DD, DD/MM/YYYY, "Mon YYYY" and
// "Month YYYY" shapes.
func (p DefaultParser) Parse(text string) (PartialDate, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return PartialDate{}, fmt.Errorf("partialdate: empty date")
	}

	if d, ok := parseISO(text); ok {
		return d, nil
	}
	if d, ok := parseSlash(text); ok {
		return d, nil
	}
	if d, ok := parseMonthName(text); ok {
		return d, nil
	}

	return PartialDate{}, fmt.Errorf("partialdate: cannot parse %q", text)
}

func parseISO(text string) (PartialDate, bool) {
	parts := strings.Split(text, "-")
	switch len(parts) {
	case 1:
		y, err := strconv.Atoi(parts[0])
		if err != nil || len(parts[0]) != 4 {
			return PartialDate{}, false
		}
		return PartialDate{Year: y, Granularity: Year}, true
	case 2:
		y, err1 := strconv.Atoi(parts[0])
		m, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil || m < 1 || m > 12 {
			return PartialDate{}, false
		}
		return PartialDate{Year: y, Month: m, Granularity: Month}, true
	case 3:
		y, err1 := strconv.Atoi(parts[0])
		m, err2 := strconv.Atoi(parts[1])
		d, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil || m < 1 || m > 12 || d < 1 || d > 31 {
			return PartialDate{}, false
		}
		return PartialDate{Year: y, Month: m, Day: d, Granularity: Day}, true
	}
	return PartialDate{}, false
}

func parseSlash(text string) (PartialDate, bool) {
	parts := strings.Split(text, "/")
	if len(parts) != 3 {
		return PartialDate{}, false
	}
	d, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	y, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil || m < 1 || m > 12 || d < 1 || d > 31 {
		return PartialDate{}, false
	}
	return PartialDate{Year: y, Month: m, Day: d, Granularity: Day}, true
}

func parseMonthName(text string) (PartialDate, bool) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return PartialDate{}, false
	}
	month, ok := monthNames[strings.ToLower(fields[0])]
	if !ok {
		return PartialDate{}, false
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil {
		return PartialDate{}, false
	}
	return PartialDate{Year: y, Month: month, Granularity: Month}, true
}

// ConvertToday resolves the "today" specifier, mirroring
// convert_today_date_specifier.
func (p DefaultParser) ConvertToday() PartialDate {
	n := p.now()
	return PartialDate{Year: n.Year(), Month: int(n.Month()), Day: n.Day(), Granularity: Day}
}

// ConvertYesterday resolves "yesterday[- N]". The subtracted offset is
// 1+extra days from today, matching convert_yesterday_date_specifier's
// behavior of computing start_date = today - 1 day and THEN subtracting
// extra more days — this asymmetry (base offset of 1, not 0) is
// intentional and preserved exactly; see DESIGN.md Open Questions.
func (p DefaultParser) ConvertYesterday(extra int) PartialDate {
	n := p.now().AddDate(0, 0, -(1 + extra))
	return PartialDate{Year: n.Year(), Month: int(n.Month()), Day: n.Day(), Granularity: Day}
}

// ConvertThisMonth resolves "this month[- N]" (N extra months subtracted).
func (p DefaultParser) ConvertThisMonth(extra int) PartialDate {
	now := p.now()
	n := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -extra, 0)
	return PartialDate{Year: n.Year(), Month: int(n.Month()), Granularity: Month}
}

// ConvertLastMonth resolves "last month[- N]". Mirrors
// convert_last_month_date: start_date = this month - 1 month, then extra
// more months are subtracted on top — base offset of 1 month, not 0.
func (p DefaultParser) ConvertLastMonth(extra int) PartialDate {
	now := p.now()
	n := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(1 + extra), 0)
	return PartialDate{Year: n.Year(), Month: int(n.Month()), Granularity: Month}
}
