// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 INSPIRE Contributors

package partialdate_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/inspirehep/queryparser/internal/queryparser/partialdate"
)

func fixedNow(y int, m time.Month, d int) func() time.Time {
	return func() time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
}

func TestParse_RecognizesEveryShape(t *testing.T) {
	p := partialdate.DefaultParser{}

	tests := []struct {
		name string
		text string
		want partialdate.PartialDate
	}{
		{"year", "2015", partialdate.PartialDate{Year: 2015, Granularity: partialdate.Year}},
		{"year-month", "2015-03", partialdate.PartialDate{Year: 2015, Month: 3, Granularity: partialdate.Month}},
		{"year-month-day", "2015-03-14", partialdate.PartialDate{Year: 2015, Month: 3, Day: 14, Granularity: partialdate.Day}},
		{"day/month/year", "14/03/2015", partialdate.PartialDate{Year: 2015, Month: 3, Day: 14, Granularity: partialdate.Day}},
		{"abbreviated month name", "Mar 2015", partialdate.PartialDate{Year: 2015, Month: 3, Granularity: partialdate.Month}},
		{"full month name", "March 2015", partialdate.PartialDate{Year: 2015, Month: 3, Granularity: partialdate.Month}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Parse(tt.text)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_RejectsGarbage(t *testing.T) {
	p := partialdate.DefaultParser{}

	for _, text := range []string{"", "not a date", "2015-13", "2015-03-40", "32/13/2015"} {
		_, err := p.Parse(text)
		assert.Error(t, err, "expected %q to fail to parse", text)
	}
}

func TestPartialDate_String(t *testing.T) {
	assert.Equal(t, "2015", partialdate.PartialDate{Year: 2015, Granularity: partialdate.Year}.String())
	assert.Equal(t, "2015-03", partialdate.PartialDate{Year: 2015, Month: 3, Granularity: partialdate.Month}.String())
	assert.Equal(t, "2015-03-14", partialdate.PartialDate{Year: 2015, Month: 3, Day: 14, Granularity: partialdate.Day}.String())
}

func TestPartialDate_ESRoundingAnchor(t *testing.T) {
	assert.Equal(t, partialdate.ESDateMathRoundingYear, partialdate.PartialDate{Granularity: partialdate.Year}.ESRoundingAnchor())
	assert.Equal(t, partialdate.ESDateMathRoundingMonth, partialdate.PartialDate{Granularity: partialdate.Month}.ESRoundingAnchor())
	assert.Equal(t, partialdate.ESDateMathRoundingDay, partialdate.PartialDate{Granularity: partialdate.Day}.ESRoundingAnchor())
}

func TestPartialDate_NextDate(t *testing.T) {
	tests := []struct {
		name string
		in   partialdate.PartialDate
		want partialdate.PartialDate
	}{
		{
			"day granularity advances by one day",
			partialdate.PartialDate{Year: 2015, Month: 12, Day: 31, Granularity: partialdate.Day},
			partialdate.PartialDate{Year: 2016, Month: 1, Day: 1, Granularity: partialdate.Day},
		},
		{
			"month granularity advances by one month",
			partialdate.PartialDate{Year: 2015, Month: 12, Granularity: partialdate.Month},
			partialdate.PartialDate{Year: 2016, Month: 1, Granularity: partialdate.Month},
		},
		{
			"year granularity advances by one year",
			partialdate.PartialDate{Year: 2015, Granularity: partialdate.Year},
			partialdate.PartialDate{Year: 2016, Granularity: partialdate.Year},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.NextDate())
		})
	}
}

func TestConvertToday(t *testing.T) {
	p := partialdate.DefaultParser{Now: fixedNow(2015, time.March, 14)}
	got := p.ConvertToday()
	assert.Equal(t, partialdate.PartialDate{Year: 2015, Month: 3, Day: 14, Granularity: partialdate.Day}, got)
}

func TestConvertYesterday_BaseOffsetIsOnePlusExtra(t *testing.T) {
	p := partialdate.DefaultParser{Now: fixedNow(2015, time.March, 14)}

	got := p.ConvertYesterday(0)
	assert.Equal(t, partialdate.PartialDate{Year: 2015, Month: 3, Day: 13, Granularity: partialdate.Day}, got)

	got = p.ConvertYesterday(2)
	assert.Equal(t, partialdate.PartialDate{Year: 2015, Month: 3, Day: 11, Granularity: partialdate.Day}, got)
}

func TestConvertThisMonth_SubtractsExtraMonthsOnly(t *testing.T) {
	p := partialdate.DefaultParser{Now: fixedNow(2015, time.March, 14)}

	got := p.ConvertThisMonth(0)
	assert.Equal(t, partialdate.PartialDate{Year: 2015, Month: 3, Granularity: partialdate.Month}, got)

	got = p.ConvertThisMonth(2)
	assert.Equal(t, partialdate.PartialDate{Year: 2015, Month: 1, Granularity: partialdate.Month}, got)
}

func TestConvertLastMonth_BaseOffsetIsOnePlusExtra(t *testing.T) {
	p := partialdate.DefaultParser{Now: fixedNow(2015, time.March, 14)}

	got := p.ConvertLastMonth(0)
	assert.Equal(t, partialdate.PartialDate{Year: 2015, Month: 2, Granularity: partialdate.Month}, got)

	got = p.ConvertLastMonth(2)
	assert.Equal(t, partialdate.PartialDate{Year: 2014, Month: 12, Granularity: partialdate.Month}, got)
}
