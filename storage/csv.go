package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"airbnb-pipeline/models"
)

// rawColumns maps source column names to RawListing field setters. Columns
// are matched by header name, so the source may order them freely; a column
// the source lacks simply leaves the field blank.
var rawColumns = map[string]func(*models.RawListing, string){
	"id":                          func(l *models.RawListing, v string) { l.ID = v },
	"host_id":                     func(l *models.RawListing, v string) { l.HostID = v },
	"name":                        func(l *models.RawListing, v string) { l.Name = v },
	"property_type":               func(l *models.RawListing, v string) { l.PropertyType = v },
	"room_type":                   func(l *models.RawListing, v string) { l.RoomType = v },
	"neighbourhood":               func(l *models.RawListing, v string) { l.Neighbourhood = v },
	"neighbourhood_group":         func(l *models.RawListing, v string) { l.NeighbourhoodGroup = v },
	"latitude":                    func(l *models.RawListing, v string) { l.Latitude = v },
	"longitude":                   func(l *models.RawListing, v string) { l.Longitude = v },
	"accommodates":                func(l *models.RawListing, v string) { l.Accommodates = v },
	"bathrooms":                   func(l *models.RawListing, v string) { l.Bathrooms = v },
	"bedrooms":                    func(l *models.RawListing, v string) { l.Bedrooms = v },
	"beds":                        func(l *models.RawListing, v string) { l.Beds = v },
	"price":                       func(l *models.RawListing, v string) { l.Price = v },
	"minimum_nights":              func(l *models.RawListing, v string) { l.MinimumNights = v },
	"maximum_nights":              func(l *models.RawListing, v string) { l.MaximumNights = v },
	"availability_30":             func(l *models.RawListing, v string) { l.Availability30 = v },
	"availability_60":             func(l *models.RawListing, v string) { l.Availability60 = v },
	"availability_90":             func(l *models.RawListing, v string) { l.Availability90 = v },
	"availability_365":            func(l *models.RawListing, v string) { l.Availability365 = v },
	"number_of_reviews":           func(l *models.RawListing, v string) { l.NumberOfReviews = v },
	"review_scores_rating":        func(l *models.RawListing, v string) { l.ReviewScoresRating = v },
	"review_scores_accuracy":      func(l *models.RawListing, v string) { l.ReviewScoresAccuracy = v },
	"review_scores_cleanliness":   func(l *models.RawListing, v string) { l.ReviewScoresCleanliness = v },
	"review_scores_checkin":       func(l *models.RawListing, v string) { l.ReviewScoresCheckin = v },
	"review_scores_communication": func(l *models.RawListing, v string) { l.ReviewScoresCommunication = v },
	"review_scores_location":      func(l *models.RawListing, v string) { l.ReviewScoresLocation = v },
	"review_scores_value":         func(l *models.RawListing, v string) { l.ReviewScoresValue = v },
	"host_response_rate":          func(l *models.RawListing, v string) { l.HostResponseRate = v },
	"host_acceptance_rate":        func(l *models.RawListing, v string) { l.HostAcceptanceRate = v },
	"host_is_superhost":           func(l *models.RawListing, v string) { l.HostIsSuperhost = v },
	"instant_bookable":            func(l *models.RawListing, v string) { l.InstantBookable = v },
}

// CSVReader reads raw listings from a CSV file. It is deliberately lenient:
// every cell is ingested as unconstrained text and ragged rows are
// tolerated, so a strict schema can never reject a row before the
// normalizer sees it.
type CSVReader struct {
	file   *os.File
	reader *csv.Reader
}

// NewCSVReader opens the CSV file at the given path.
func NewCSVReader(path string) (*CSVReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are the normalizer's problem
	r.LazyQuotes = true

	return &CSVReader{file: f, reader: r}, nil
}

// ReadAll reads the header plus every data row and returns one RawListing
// per row. Rows shorter than the header leave the trailing fields blank.
func (c *CSVReader) ReadAll() ([]*models.RawListing, error) {
	header, err := c.reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csv: read header: %w", err)
	}

	setters := make([]func(*models.RawListing, string), len(header))
	for i, name := range header {
		setters[i] = rawColumns[strings.TrimSpace(strings.ToLower(name))]
	}

	var listings []*models.RawListing
	for {
		row, err := c.reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: read row %d: %w", len(listings)+1, err)
		}

		l := &models.RawListing{}
		for i, cell := range row {
			if i < len(setters) && setters[i] != nil {
				setters[i](l, cell)
			}
		}
		listings = append(listings, l)
	}

	return listings, nil
}

// Close closes the underlying file.
func (c *CSVReader) Close() error {
	return c.file.Close()
}

// RejectCSVWriter writes the rows withheld from the clean table, with every
// flag they raised, so rejects stay auditable without re-running the rules.
type RejectCSVWriter struct {
	file   *os.File
	writer *csv.Writer
}

// NewRejectCSVWriter creates (or truncates) the audit CSV at the given path
// and writes the header row. Intermediate directories are created
// automatically.
func NewRejectCSVWriter(path string) (*RejectCSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"row", "id", "exclusion_reason", "flags"}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &RejectCSVWriter{file: f, writer: w}, nil
}

// WriteRejects appends one audit row per rejected disposition.
func (w *RejectCSVWriter) WriteRejects(dispositions []*models.Disposition) error {
	for _, d := range dispositions {
		if d.Admitted() {
			continue
		}

		id := ""
		if d.Listing.ID != nil {
			id = *d.Listing.ID
		}

		row := []string{
			strconv.Itoa(d.Row),
			id,
			string(d.Reason),
			joinFlags(d.Flags),
		}
		if err := w.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	w.writer.Flush()
	return w.writer.Error()
}

// Close flushes and closes the underlying file.
func (w *RejectCSVWriter) Close() error {
	w.writer.Flush()
	return w.file.Close()
}

// joinFlags renders a flag set as a stable |-separated list.
func joinFlags(flags models.Flags) string {
	names := make([]string, 0, len(flags))
	for flag, set := range flags {
		if set {
			names = append(names, string(flag))
		}
	}
	sort.Strings(names)
	return strings.Join(names, "|")
}
