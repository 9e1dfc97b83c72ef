package models

// RawListing holds one ingested row exactly as it appeared in the source
// dataset. Every field is unconstrained text: the source makes no type
// guarantees, so currency symbols, percent signs, stray whitespace and empty
// strings all survive ingestion and are dealt with by the normalizer.
type RawListing struct {
	ID                 string
	HostID             string
	Name               string
	PropertyType       string
	RoomType           string
	Neighbourhood      string
	NeighbourhoodGroup string
	Latitude           string
	Longitude          string
	Accommodates       string
	Bathrooms          string
	Bedrooms           string
	Beds               string
	Price              string
	MinimumNights      string
	MaximumNights      string
	Availability30     string
	Availability60     string
	Availability90     string
	Availability365    string
	NumberOfReviews    string

	ReviewScoresRating        string
	ReviewScoresAccuracy      string
	ReviewScoresCleanliness   string
	ReviewScoresCheckin       string
	ReviewScoresCommunication string
	ReviewScoresLocation      string
	ReviewScoresValue         string

	HostResponseRate   string
	HostAcceptanceRate string
	HostIsSuperhost    string
	InstantBookable    string
}

// Listing is the normalized record ready for PostgreSQL storage. Optional
// fields are pointers; nil means the raw value was missing or unparseable.
// Normalization is independent of validity — a Listing may still carry
// out-of-range values, which the validator flags separately.
type Listing struct {
	ID                 *string
	HostID             *string
	Name               *string
	PropertyType       *string
	RoomType           *string
	Neighbourhood      *string
	NeighbourhoodGroup *string
	Latitude           *float64
	Longitude          *float64
	Accommodates       *int
	Bathrooms          *float64
	Bedrooms           *int
	Beds               *int
	PriceUSD           *float64
	MinimumNights      *int
	MaximumNights      *int
	Availability30     *int
	Availability60     *int
	Availability90     *int
	Availability365    *int
	NumberOfReviews    *int

	ReviewScoresRating        *float64
	ReviewScoresAccuracy      *float64
	ReviewScoresCleanliness   *float64
	ReviewScoresCheckin       *float64
	ReviewScoresCommunication *float64
	ReviewScoresLocation      *float64
	ReviewScoresValue         *float64

	HostResponseRatePct   *int
	HostAcceptanceRatePct *int

	// Passed through verbatim (trimmed), not reinterpreted as booleans.
	HostIsSuperhost string
	InstantBookable string
}

// Flag names one specific rule violation.
type Flag string

const (
	FlagMissingID                 Flag = "missing_id"
	FlagMissingHostID             Flag = "missing_host_id"
	FlagMissingOrInvalidPrice     Flag = "missing_or_invalid_price"
	FlagExtremePrice              Flag = "extreme_price"
	FlagInvalidGeo                Flag = "invalid_geo"
	FlagInvalidNights             Flag = "invalid_nights"
	FlagInvalidAvailability       Flag = "invalid_availability"
	FlagInvalidHostResponseRate   Flag = "invalid_host_response_rate"
	FlagInvalidHostAcceptanceRate Flag = "invalid_host_acceptance_rate"
	FlagInvalidReviewScores       Flag = "invalid_review_scores"
)

// Flags is the set of violations observed on one record. Flags are additive
// evidence, not mutually exclusive.
type Flags map[Flag]bool

// Has reports whether the given flag is set.
func (f Flags) Has(flag Flag) bool { return f[flag] }

// Any reports whether at least one flag is set.
func (f Flags) Any() bool {
	for _, set := range f {
		if set {
			return true
		}
	}
	return false
}

// Disposition is the full outcome for one raw row: the normalized record,
// every flag raised against it, and — when rejected — the single
// highest-priority exclusion reason.
type Disposition struct {
	Row     int // 1-based position in the source, excluding the header
	Listing *Listing
	Flags   Flags
	Reason  Flag // empty when admitted
}

// Admitted reports whether the record belongs in the clean table.
func (d *Disposition) Admitted() bool { return d.Reason == "" }

// ValidationReport holds the computed aggregates operators read after a run.
type ValidationReport struct {
	TotalRows    int
	Admitted     int
	Rejected     int
	DuplicateIDs int

	MissingID    int
	MissingPrice int
	MissingGeo   int

	FlagCounts   map[Flag]int
	ReasonCounts map[Flag]int

	// Price statistics over the admitted set.
	AveragePrice float64
	MinPrice     float64
	MaxPrice     float64
}
