package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"airbnb-pipeline/models"
)

func TestGenerateReportCounts(t *testing.T) {
	raw := []*models.RawListing{
		{ID: "1", HostID: "10", Price: "$100", Latitude: "40.7", Longitude: "-73.9"},
		{ID: "2", HostID: "11", Price: "$200", Latitude: "40.7", Longitude: "-73.9"},
		{ID: "", HostID: "12", Price: "$30", Latitude: "40.7", Longitude: "-73.9"},
		{ID: "4", HostID: "13", Price: "", Latitude: "40.7", Longitude: "-73.9"},
		{ID: "5", HostID: "14", Price: "$40", Latitude: "", Longitude: "-73.9"},
	}

	dispositions := NewCleaner(newTestLogger(), 1).Clean(raw)
	report := NewInsightService(newTestLogger()).Generate(dispositions)

	assert.Equal(t, 5, report.TotalRows)
	assert.Equal(t, 2, report.Admitted)
	assert.Equal(t, 3, report.Rejected)

	assert.Equal(t, 1, report.MissingID)
	assert.Equal(t, 1, report.MissingPrice)
	assert.Equal(t, 1, report.MissingGeo)

	assert.Equal(t, 1, report.ReasonCounts[models.FlagMissingID])
	assert.Equal(t, 1, report.ReasonCounts[models.FlagMissingOrInvalidPrice])
	assert.Equal(t, 1, report.ReasonCounts[models.FlagInvalidGeo])

	assert.Equal(t, 150.0, report.AveragePrice)
	assert.Equal(t, 100.0, report.MinPrice)
	assert.Equal(t, 200.0, report.MaxPrice)
}

func TestGenerateReportFlagsWithoutExclusion(t *testing.T) {
	raw := []*models.RawListing{
		{ID: "1", HostID: "10", Price: "$100", Latitude: "40.7", Longitude: "-73.9",
			HostResponseRate: "150%"},
	}

	dispositions := NewCleaner(newTestLogger(), 1).Clean(raw)
	report := NewInsightService(newTestLogger()).Generate(dispositions)

	// Flagged, yet still admitted — the rate flags never exclude.
	assert.Equal(t, 1, report.Admitted)
	assert.Equal(t, 0, report.Rejected)
	assert.Equal(t, 1, report.FlagCounts[models.FlagInvalidHostResponseRate])
	assert.Empty(t, report.ReasonCounts)
}

func TestGenerateReportDuplicateIDs(t *testing.T) {
	raw := []*models.RawListing{
		{ID: "1", HostID: "10", Price: "$100", Latitude: "40.7", Longitude: "-73.9"},
		{ID: "1", HostID: "10", Price: "$100", Latitude: "40.7", Longitude: "-73.9"},
		{ID: "2", HostID: "11", Price: "$100", Latitude: "40.7", Longitude: "-73.9"},
	}

	dispositions := NewCleaner(newTestLogger(), 1).Clean(raw)
	report := NewInsightService(newTestLogger()).Generate(dispositions)

	assert.Equal(t, 1, report.DuplicateIDs)
	// Duplicates are reported, never excluded.
	assert.Equal(t, 3, report.Admitted)
}

func TestGenerateReportEmptyRun(t *testing.T) {
	report := NewInsightService(newTestLogger()).Generate(nil)

	assert.Equal(t, 0, report.TotalRows)
	assert.Empty(t, report.FlagCounts)
	assert.Empty(t, report.ReasonCounts)
	assert.Equal(t, 0.0, report.AveragePrice)
}
