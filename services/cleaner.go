package services

import (
	"github.com/sirupsen/logrus"

	"airbnb-pipeline/models"
	"airbnb-pipeline/utils"
)

// Cleaner turns raw rows into dispositions: a normalized listing, its
// validity flags, and — for rejected rows — a single exclusion reason.
type Cleaner struct {
	logger     *logrus.Logger
	maxWorkers int
}

// NewCleaner creates a Cleaner. maxWorkers bounds the fan-out; 1 or less
// processes sequentially.
func NewCleaner(logger *logrus.Logger, maxWorkers int) *Cleaner {
	return &Cleaner{logger: logger, maxWorkers: maxWorkers}
}

// Clean processes every raw row and returns one Disposition per row, in
// input order. Each record is independent, so rows fan out across the
// worker pool; every worker writes only its own slot, so no locking is
// needed and results match a sequential run exactly.
func (c *Cleaner) Clean(raw []*models.RawListing) []*models.Disposition {
	dispositions := make([]*models.Disposition, len(raw))

	process := func(i int) {
		listing := Normalize(raw[i])
		flags := Evaluate(listing)
		dispositions[i] = &models.Disposition{
			Row:     i + 1,
			Listing: listing,
			Flags:   flags,
			Reason:  ResolveExclusion(flags),
		}
	}

	if c.maxWorkers > 1 {
		pool := utils.NewWorkerPool(c.maxWorkers)
		for i := range raw {
			i := i
			pool.Submit(func() { process(i) })
		}
		pool.Wait()
	} else {
		for i := range raw {
			process(i)
		}
	}

	admitted := 0
	for _, d := range dispositions {
		if d.Admitted() {
			admitted++
		}
	}
	c.logger.Infof("[cleaner] Processed %d rows → %d admitted, %d rejected",
		len(raw), admitted, len(raw)-admitted)

	return dispositions
}

// Admitted extracts the listings that belong in the clean table, preserving
// input order.
func Admitted(dispositions []*models.Disposition) []*models.Listing {
	result := make([]*models.Listing, 0, len(dispositions))
	for _, d := range dispositions {
		if d.Admitted() {
			result = append(result, d.Listing)
		}
	}
	return result
}

// Rejected extracts the dispositions withheld from the clean table,
// preserving input order.
func Rejected(dispositions []*models.Disposition) []*models.Disposition {
	result := make([]*models.Disposition, 0)
	for _, d := range dispositions {
		if !d.Admitted() {
			result = append(result, d)
		}
	}
	return result
}
