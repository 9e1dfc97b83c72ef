package storage

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"airbnb-pipeline/models"
	"airbnb-pipeline/utils"
)

// listingColumns is the column order used for staging-table DDL and batch
// inserts. Must stay in sync with listingValues.
var listingColumns = []string{
	"id", "host_id", "name", "property_type", "room_type",
	"neighbourhood", "neighbourhood_group",
	"latitude", "longitude",
	"accommodates", "bathrooms", "bedrooms", "beds",
	"price_usd", "minimum_nights", "maximum_nights",
	"availability_30", "availability_60", "availability_90", "availability_365",
	"number_of_reviews",
	"review_scores_rating", "review_scores_accuracy", "review_scores_cleanliness",
	"review_scores_checkin", "review_scores_communication", "review_scores_location",
	"review_scores_value",
	"host_response_rate_pct", "host_acceptance_rate_pct",
	"host_is_superhost", "instant_bookable",
}

// PostgresWriter persists clean listings to PostgreSQL. Each run loads into
// a staging table and publishes it with a single-transaction rename, so
// concurrent readers never observe a partially-built table.
type PostgresWriter struct {
	db        *sql.DB
	batchSize int
}

// NewPostgresWriter opens a connection to PostgreSQL, waits for it to become
// reachable, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string, batchSize int, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do("postgres ping", db.Ping); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	if batchSize < 1 {
		batchSize = 50
	}
	return &PostgresWriter{db: db, batchSize: batchSize}, nil
}

// Write loads all listings into the staging table and atomically swaps it in
// as the live `listings` table. The previous table is replaced wholesale; a
// failed run leaves it untouched.
func (pw *PostgresWriter) Write(listings []*models.Listing) error {
	if err := pw.prepareStaging(); err != nil {
		return err
	}

	for i := 0; i < len(listings); i += pw.batchSize {
		end := i + pw.batchSize
		if end > len(listings) {
			end = len(listings)
		}
		if err := pw.insertBatch(listings[i:end]); err != nil {
			return err
		}
	}

	return pw.publish()
}

func (pw *PostgresWriter) prepareStaging() error {
	_, err := pw.db.Exec(`
		DROP TABLE IF EXISTS listings_staging;

		CREATE TABLE listings_staging (
			id                          TEXT NOT NULL,
			host_id                     TEXT NOT NULL,
			name                        TEXT,
			property_type               TEXT,
			room_type                   TEXT,
			neighbourhood               TEXT,
			neighbourhood_group         TEXT,
			latitude                    DOUBLE PRECISION,
			longitude                   DOUBLE PRECISION,
			accommodates                INTEGER,
			bathrooms                   NUMERIC(4,1),
			bedrooms                    INTEGER,
			beds                        INTEGER,
			price_usd                   NUMERIC(10,2) NOT NULL,
			minimum_nights              INTEGER,
			maximum_nights              INTEGER,
			availability_30             INTEGER,
			availability_60             INTEGER,
			availability_90             INTEGER,
			availability_365            INTEGER,
			number_of_reviews           INTEGER,
			review_scores_rating        NUMERIC(5,2),
			review_scores_accuracy      NUMERIC(4,2),
			review_scores_cleanliness   NUMERIC(4,2),
			review_scores_checkin       NUMERIC(4,2),
			review_scores_communication NUMERIC(4,2),
			review_scores_location      NUMERIC(4,2),
			review_scores_value         NUMERIC(4,2),
			host_response_rate_pct      INTEGER,
			host_acceptance_rate_pct    INTEGER,
			host_is_superhost           TEXT,
			instant_bookable            TEXT
		)
	`)
	if err != nil {
		return fmt.Errorf("postgres: prepare staging: %w", err)
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []*models.Listing) error {
	cols := len(listingColumns)
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, l := range batch {
		placeholders := make([]string, cols)
		for j := 0; j < cols; j++ {
			placeholders[j] = fmt.Sprintf("$%d", idx*cols+j+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs, listingValues(l)...)
	}

	query := fmt.Sprintf(
		"INSERT INTO listings_staging (%s) VALUES %s",
		strings.Join(listingColumns, ", "),
		strings.Join(valueStrings, ","),
	)

	if _, err := pw.db.Exec(query, valueArgs...); err != nil {
		return fmt.Errorf("postgres: insert batch: %w", err)
	}
	return nil
}

// publish swaps the staging table in as the live table and builds the
// id/neighbourhood lookup indexes, all in one transaction.
func (pw *PostgresWriter) publish() error {
	tx, err := pw.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin publish: %w", err)
	}

	stmts := []string{
		"DROP TABLE IF EXISTS listings",
		"ALTER TABLE listings_staging RENAME TO listings",
		"CREATE INDEX idx_listings_id ON listings(id)",
		"CREATE INDEX idx_listings_neighbourhood ON listings(neighbourhood)",
	}
	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("postgres: publish: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit publish: %w", err)
	}
	return nil
}

// Count returns the number of rows in the live listings table.
func (pw *PostgresWriter) Count() (int, error) {
	var n int
	if err := pw.db.QueryRow("SELECT COUNT(*) FROM listings").Scan(&n); err != nil {
		return 0, fmt.Errorf("postgres: count: %w", err)
	}
	return n, nil
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// listingValues flattens a Listing into insert arguments in listingColumns
// order. Pointer fields pass through directly: nil becomes SQL NULL.
func listingValues(l *models.Listing) []interface{} {
	return []interface{}{
		l.ID, l.HostID, l.Name, l.PropertyType, l.RoomType,
		l.Neighbourhood, l.NeighbourhoodGroup,
		l.Latitude, l.Longitude,
		l.Accommodates, l.Bathrooms, l.Bedrooms, l.Beds,
		l.PriceUSD, l.MinimumNights, l.MaximumNights,
		l.Availability30, l.Availability60, l.Availability90, l.Availability365,
		l.NumberOfReviews,
		l.ReviewScoresRating, l.ReviewScoresAccuracy, l.ReviewScoresCleanliness,
		l.ReviewScoresCheckin, l.ReviewScoresCommunication, l.ReviewScoresLocation,
		l.ReviewScoresValue,
		l.HostResponseRatePct, l.HostAcceptanceRatePct,
		l.HostIsSuperhost, l.InstantBookable,
	}
}
