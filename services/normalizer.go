package services

import (
	"regexp"
	"strconv"
	"strings"

	"airbnb-pipeline/models"
)

var (
	// priceRegexp must match the whole stripped price: digits with an
	// optional decimal part. Anything looser lets "12.3.4" or "12a" through.
	priceRegexp = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
	// percentRegexp matches the whole raw value: 1–3 digits and a literal %.
	percentRegexp = regexp.MustCompile(`^\d{1,3}%$`)
)

// Normalize converts one raw row into a typed Listing. It never fails:
// every unparseable field degrades to absent (nil) so that one malformed
// record can never abort a run over a large, messy dataset. Validity is not
// judged here — out-of-range values pass through for the validator to flag.
func Normalize(raw *models.RawListing) *models.Listing {
	return &models.Listing{
		ID:                 normalizeText(raw.ID),
		HostID:             normalizeText(raw.HostID),
		Name:               normalizeText(raw.Name),
		PropertyType:       normalizeText(raw.PropertyType),
		RoomType:           normalizeText(raw.RoomType),
		Neighbourhood:      normalizeText(raw.Neighbourhood),
		NeighbourhoodGroup: normalizeText(raw.NeighbourhoodGroup),
		Latitude:           parseFloat(raw.Latitude),
		Longitude:          parseFloat(raw.Longitude),
		Accommodates:       parseInt(raw.Accommodates),
		Bathrooms:          parseFloat(raw.Bathrooms),
		Bedrooms:           parseInt(raw.Bedrooms),
		Beds:               parseInt(raw.Beds),
		PriceUSD:           parsePrice(raw.Price),
		MinimumNights:      parseInt(raw.MinimumNights),
		MaximumNights:      parseInt(raw.MaximumNights),
		Availability30:     parseInt(raw.Availability30),
		Availability60:     parseInt(raw.Availability60),
		Availability90:     parseInt(raw.Availability90),
		Availability365:    parseInt(raw.Availability365),
		NumberOfReviews:    parseInt(raw.NumberOfReviews),

		ReviewScoresRating:        parseFloat(raw.ReviewScoresRating),
		ReviewScoresAccuracy:      parseFloat(raw.ReviewScoresAccuracy),
		ReviewScoresCleanliness:   parseFloat(raw.ReviewScoresCleanliness),
		ReviewScoresCheckin:       parseFloat(raw.ReviewScoresCheckin),
		ReviewScoresCommunication: parseFloat(raw.ReviewScoresCommunication),
		ReviewScoresLocation:      parseFloat(raw.ReviewScoresLocation),
		ReviewScoresValue:         parseFloat(raw.ReviewScoresValue),

		HostResponseRatePct:   parsePercent(raw.HostResponseRate),
		HostAcceptanceRatePct: parsePercent(raw.HostAcceptanceRate),

		HostIsSuperhost: strings.TrimSpace(raw.HostIsSuperhost),
		InstantBookable: strings.TrimSpace(raw.InstantBookable),
	}
}

// normalizeText trims surrounding whitespace; an empty result is absent,
// never the empty string.
func normalizeText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// parsePrice strips currency formatting ($ and ,) and parses the remainder
// as a decimal USD amount.
// Examples:
//
//	"$1,234.50" → 1234.50
//	"$0.00"     → 0
//	"" / "abc" / "12.3.4" → absent
func parsePrice(raw string) *float64 {
	stripped := strings.TrimSpace(raw)
	stripped = strings.ReplaceAll(stripped, "$", "")
	stripped = strings.ReplaceAll(stripped, ",", "")
	if !priceRegexp.MatchString(stripped) {
		return nil
	}

	val, err := strconv.ParseFloat(stripped, 64)
	if err != nil {
		return nil
	}
	return &val
}

// parsePercent parses values like "90%" or "100%" into whole-number
// percentages ("90%" → 90, not 0.9). Anything that is not exactly 1–3
// digits followed by % is absent — including a bare "90".
func parsePercent(raw string) *int {
	s := strings.TrimSpace(raw)
	if !percentRegexp.MatchString(s) {
		return nil
	}

	val, err := strconv.Atoi(strings.TrimSuffix(s, "%"))
	if err != nil {
		return nil
	}
	return &val
}

func parseInt(raw string) *int {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &val
}

func parseFloat(raw string) *float64 {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &val
}
