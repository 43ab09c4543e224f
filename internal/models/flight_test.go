package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFlightNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"AA 28", "AA28"},
		{"AA28", "AA28"},
		{"Flight AS 2046 nonstop", "AS2046"},
		{"aa28", "aa28"},
		{"unknown", "unknown"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := NormalizeFlightNumber(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, NormalizeFlightNumber(got), "normalization is idempotent")
		})
	}
}

func TestNormalizeTime(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"8:05", "08:05"},
		{"08:05", "08:05"},
		{" 21:45 ", "21:45"},
		{"8:05 PM", "20:05"},
		{"8:05 p.m.", "20:05"},
		{"12:15 AM", "00:15"},
		{"12:30 PM", "12:30"},
		{"Departs 6:00am", "06:00"},
		{"TBD", "TBD"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := NormalizeTime(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, NormalizeTime(got), "normalization is idempotent")
		})
	}
}

func TestNewFlightRecord(t *testing.T) {
	f := NewFlightRecord(FlightInput{
		FlightNumber:   "AA 1",
		DepartureTime:  "9:00",
		ArrivalTime:    "5:31 PM",
		PointsRequired: 15000,
		CashPriceUSD:   179,
	})

	assert.Equal(t, "AA1", f.FlightNumber)
	assert.Equal(t, "09:00", f.DepartureTime)
	assert.Equal(t, "17:31", f.ArrivalTime)
	assert.Equal(t, DefaultTaxesFeesUSD, f.TaxesFeesUSD)
	assert.Equal(t, SourceLive, f.Source)
	assert.Nil(t, f.CPP)
	assert.True(t, f.IsComplete())
	assert.False(t, f.IsFallback())

	again := NewFlightRecord(FlightInput{
		FlightNumber:   f.FlightNumber,
		DepartureTime:  f.DepartureTime,
		ArrivalTime:    f.ArrivalTime,
		PointsRequired: f.PointsRequired,
		CashPriceUSD:   f.CashPriceUSD,
		TaxesFeesUSD:   &f.TaxesFeesUSD,
	})
	assert.Equal(t, f, again)
}

func TestNewFlightRecordClampsNegatives(t *testing.T) {
	f := NewFlightRecord(FlightInput{
		FlightNumber:   "AA2",
		PointsRequired: -100,
		CashPriceUSD:   -5,
		TaxesFeesUSD:   Float64Ptr(0),
		Source:         SourceFallback,
	})

	assert.Zero(t, f.PointsRequired)
	assert.Zero(t, f.CashPriceUSD)
	assert.Zero(t, f.TaxesFeesUSD)
	assert.False(t, f.IsComplete())
	assert.True(t, f.IsFallback())
}

func TestIsComplete(t *testing.T) {
	assert.True(t, FlightRecord{PointsRequired: 1, CashPriceUSD: 1}.IsComplete())
	assert.False(t, FlightRecord{PointsRequired: 0, CashPriceUSD: 100}.IsComplete())
	assert.False(t, FlightRecord{PointsRequired: 15000, CashPriceUSD: 0}.IsComplete())
}

func TestCPPValue(t *testing.T) {
	assert.Zero(t, FlightRecord{}.CPPValue())

	cpp := 1.5
	require.Equal(t, 1.5, FlightRecord{CPP: &cpp}.CPPValue())
}
