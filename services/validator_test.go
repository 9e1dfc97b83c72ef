package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"airbnb-pipeline/models"
)

func strPtr(s string) *string     { return &s }
func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }

// validListing returns a listing that raises no flags; tests mutate single
// fields from this baseline.
func validListing() *models.Listing {
	return &models.Listing{
		ID:        strPtr("1"),
		HostID:    strPtr("10"),
		PriceUSD:  floatPtr(50),
		Latitude:  floatPtr(40.7),
		Longitude: floatPtr(-73.9),
	}
}

func TestValidBaselineRaisesNoFlags(t *testing.T) {
	flags := Evaluate(validListing())
	assert.False(t, flags.Any())
	assert.Equal(t, models.Flag(""), ResolveExclusion(flags))
}

func TestMissingIdentityFlags(t *testing.T) {
	l := validListing()
	l.ID = nil
	flags := Evaluate(l)
	assert.True(t, flags.Has(models.FlagMissingID))
	assert.Equal(t, models.FlagMissingID, ResolveExclusion(flags))

	l = validListing()
	l.HostID = nil
	flags = Evaluate(l)
	assert.True(t, flags.Has(models.FlagMissingHostID))
	assert.Equal(t, models.FlagMissingHostID, ResolveExclusion(flags))
}

func TestPriceFlags(t *testing.T) {
	l := validListing()
	l.PriceUSD = nil
	flags := Evaluate(l)
	assert.True(t, flags.Has(models.FlagMissingOrInvalidPrice))
	assert.False(t, flags.Has(models.FlagExtremePrice))

	tests := []struct {
		price   float64
		extreme bool
	}{
		{0, true},     // 0 <= 0
		{-5, true},
		{2000.01, true},
		{2000, false}, // inclusive upper bound
		{0.01, false},
	}
	for _, tt := range tests {
		l := validListing()
		l.PriceUSD = floatPtr(tt.price)
		flags := Evaluate(l)
		assert.Equal(t, tt.extreme, flags.Has(models.FlagExtremePrice), "price %.2f", tt.price)
	}
}

func TestGeoBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		lat     *float64
		long    *float64
		invalid bool
	}{
		{"valid", floatPtr(40.7), floatPtr(-73.9), false},
		{"lat at inclusive bound", floatPtr(90), floatPtr(0), false},
		{"lat just past bound", floatPtr(90.0001), floatPtr(0), true},
		{"lat at negative bound", floatPtr(-90), floatPtr(0), false},
		{"long at bound", floatPtr(0), floatPtr(-180), false},
		{"long past bound", floatPtr(0), floatPtr(180.5), true},
		{"lat absent", nil, floatPtr(-73.9), true},
		{"long absent", floatPtr(40.7), nil, true},
		{"both absent", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validListing()
			l.Latitude = tt.lat
			l.Longitude = tt.long
			flags := Evaluate(l)
			assert.Equal(t, tt.invalid, flags.Has(models.FlagInvalidGeo))
		})
	}
}

func TestNightsLogic(t *testing.T) {
	l := validListing()
	l.MinimumNights = intPtr(5)
	l.MaximumNights = intPtr(3)
	assert.True(t, Evaluate(l).Has(models.FlagInvalidNights))

	l = validListing()
	l.MinimumNights = intPtr(5)
	l.MaximumNights = nil
	assert.False(t, Evaluate(l).Has(models.FlagInvalidNights))

	l = validListing()
	l.MinimumNights = intPtr(3)
	l.MaximumNights = intPtr(3)
	assert.False(t, Evaluate(l).Has(models.FlagInvalidNights))
}

func TestAvailabilityRanges(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.Listing)
		invalid bool
	}{
		{"30 at bound", func(l *models.Listing) { l.Availability30 = intPtr(30) }, false},
		{"30 past bound", func(l *models.Listing) { l.Availability30 = intPtr(31) }, true},
		{"60 negative", func(l *models.Listing) { l.Availability60 = intPtr(-1) }, true},
		{"90 at bound", func(l *models.Listing) { l.Availability90 = intPtr(90) }, false},
		{"365 past bound", func(l *models.Listing) { l.Availability365 = intPtr(366) }, true},
		{"all absent", func(l *models.Listing) {}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validListing()
			tt.mutate(l)
			assert.Equal(t, tt.invalid, Evaluate(l).Has(models.FlagInvalidAvailability))
		})
	}
}

func TestReviewScoreBounds(t *testing.T) {
	l := validListing()
	l.ReviewScoresRating = floatPtr(100)
	assert.False(t, Evaluate(l).Has(models.FlagInvalidReviewScores))

	l.ReviewScoresRating = floatPtr(100.5)
	assert.True(t, Evaluate(l).Has(models.FlagInvalidReviewScores))

	l = validListing()
	l.ReviewScoresCleanliness = floatPtr(10)
	assert.False(t, Evaluate(l).Has(models.FlagInvalidReviewScores))

	l.ReviewScoresCleanliness = floatPtr(10.1)
	assert.True(t, Evaluate(l).Has(models.FlagInvalidReviewScores))
}

// Host-rate and review-score violations are tracked but never exclude: a
// record carrying only those flags is still admitted.
func TestRateFlagsDoNotExclude(t *testing.T) {
	l := validListing()
	l.HostResponseRatePct = intPtr(101)
	l.HostAcceptanceRatePct = intPtr(150)
	l.ReviewScoresRating = floatPtr(120)

	flags := Evaluate(l)
	assert.True(t, flags.Has(models.FlagInvalidHostResponseRate))
	assert.True(t, flags.Has(models.FlagInvalidHostAcceptanceRate))
	assert.True(t, flags.Has(models.FlagInvalidReviewScores))
	assert.Equal(t, models.Flag(""), ResolveExclusion(flags))
}

func TestExclusionPriorityOrdering(t *testing.T) {
	// missing_id outranks extreme_price even when both hold.
	l := validListing()
	l.ID = nil
	l.PriceUSD = floatPtr(9999)

	flags := Evaluate(l)
	assert.True(t, flags.Has(models.FlagMissingID))
	assert.True(t, flags.Has(models.FlagExtremePrice))
	assert.Equal(t, models.FlagMissingID, ResolveExclusion(flags))

	// missing_or_invalid_price outranks invalid_geo.
	l = validListing()
	l.PriceUSD = nil
	l.Latitude = floatPtr(95)
	flags = Evaluate(l)
	assert.Equal(t, models.FlagMissingOrInvalidPrice, ResolveExclusion(flags))
}

func TestEvaluateIsDeterministic(t *testing.T) {
	raw := &models.RawListing{
		ID:               "9",
		Price:            "$120.50",
		Latitude:         "40.7",
		Longitude:        "-73.9",
		HostResponseRate: "150%",
	}

	first := Normalize(raw)
	second := Normalize(raw)
	assert.Equal(t, first, second)

	firstFlags := Evaluate(first)
	secondFlags := Evaluate(second)
	assert.Equal(t, firstFlags, secondFlags)
	assert.Equal(t, ResolveExclusion(firstFlags), ResolveExclusion(secondFlags))
}
