package services

import "airbnb-pipeline/models"

// rule pairs a flag with its predicate. The rule set is fixed and
// enumerable; keeping it as a static table keeps every check auditable in
// one place.
type rule struct {
	flag  models.Flag
	check func(*models.Listing) bool
}

var rules = []rule{
	{models.FlagMissingID, func(l *models.Listing) bool {
		return l.ID == nil
	}},
	{models.FlagMissingHostID, func(l *models.Listing) bool {
		return l.HostID == nil
	}},
	{models.FlagMissingOrInvalidPrice, func(l *models.Listing) bool {
		return l.PriceUSD == nil
	}},
	{models.FlagExtremePrice, func(l *models.Listing) bool {
		return l.PriceUSD != nil && (*l.PriceUSD <= 0 || *l.PriceUSD > 2000)
	}},
	{models.FlagInvalidGeo, func(l *models.Listing) bool {
		if l.Latitude == nil || l.Longitude == nil {
			return true
		}
		return *l.Latitude < -90 || *l.Latitude > 90 ||
			*l.Longitude < -180 || *l.Longitude > 180
	}},
	{models.FlagInvalidNights, func(l *models.Listing) bool {
		return l.MinimumNights != nil && l.MaximumNights != nil &&
			*l.MinimumNights > *l.MaximumNights
	}},
	{models.FlagInvalidAvailability, func(l *models.Listing) bool {
		return outOfRange(l.Availability30, 30) ||
			outOfRange(l.Availability60, 60) ||
			outOfRange(l.Availability90, 90) ||
			outOfRange(l.Availability365, 365)
	}},
	{models.FlagInvalidHostResponseRate, func(l *models.Listing) bool {
		return l.HostResponseRatePct != nil && *l.HostResponseRatePct > 100
	}},
	{models.FlagInvalidHostAcceptanceRate, func(l *models.Listing) bool {
		return l.HostAcceptanceRatePct != nil && *l.HostAcceptanceRatePct > 100
	}},
	{models.FlagInvalidReviewScores, func(l *models.Listing) bool {
		return scoreOutOfRange(l.ReviewScoresRating, 100) ||
			scoreOutOfRange(l.ReviewScoresAccuracy, 10) ||
			scoreOutOfRange(l.ReviewScoresCleanliness, 10) ||
			scoreOutOfRange(l.ReviewScoresCheckin, 10) ||
			scoreOutOfRange(l.ReviewScoresCommunication, 10) ||
			scoreOutOfRange(l.ReviewScoresLocation, 10) ||
			scoreOutOfRange(l.ReviewScoresValue, 10)
	}},
}

// exclusionPriority lists, in order, the flags that reject a record. The
// host-rate and review-score flags are deliberately absent: they are tracked
// for reporting but do not exclude on their own.
var exclusionPriority = []models.Flag{
	models.FlagMissingID,
	models.FlagMissingHostID,
	models.FlagMissingOrInvalidPrice,
	models.FlagExtremePrice,
	models.FlagInvalidGeo,
	models.FlagInvalidNights,
	models.FlagInvalidAvailability,
}

// Evaluate computes every validity flag for a normalized listing.
func Evaluate(l *models.Listing) models.Flags {
	flags := make(models.Flags, len(rules))
	for _, r := range rules {
		if r.check(l) {
			flags[r.flag] = true
		}
	}
	return flags
}

// ResolveExclusion returns the single highest-priority exclusion flag, or
// empty when the record is admitted.
func ResolveExclusion(flags models.Flags) models.Flag {
	for _, flag := range exclusionPriority {
		if flags.Has(flag) {
			return flag
		}
	}
	return ""
}

// outOfRange reports whether a present availability value falls outside
// [0, max]. Absent values are in range by definition.
func outOfRange(v *int, max int) bool {
	return v != nil && (*v < 0 || *v > max)
}

// scoreOutOfRange reports whether a present review score falls outside
// [0, max].
func scoreOutOfRange(v *float64, max float64) bool {
	return v != nil && (*v < 0 || *v > max)
}
