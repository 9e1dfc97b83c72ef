package storage

import "airbnb-pipeline/models"

// RawListingSource is the interface any raw tabular input must satisfy.
type RawListingSource interface {
	ReadAll() ([]*models.RawListing, error)
	Close() error
}

// ListingWriter is the interface the clean destination must satisfy. Write
// is all-or-nothing for a run: readers never see a partially-built table.
type ListingWriter interface {
	Write(listings []*models.Listing) error
	Close() error
}

// RejectWriter persists the audit trail of excluded rows and their flags.
type RejectWriter interface {
	WriteRejects(dispositions []*models.Disposition) error
	Close() error
}
