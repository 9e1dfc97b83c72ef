package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"airbnb-pipeline/models"
	"airbnb-pipeline/utils"
)

// InsightService computes the pre/post validation summary operators read
// after a run. All aggregates derive from the per-record flags, so nothing
// here re-implements the rule set.
type InsightService struct {
	logger *logrus.Logger
}

func NewInsightService(logger *logrus.Logger) *InsightService {
	return &InsightService{logger: logger}
}

func (s *InsightService) Generate(dispositions []*models.Disposition) *models.ValidationReport {
	report := &models.ValidationReport{
		FlagCounts:   make(map[models.Flag]int),
		ReasonCounts: make(map[models.Flag]int),
	}

	if len(dispositions) == 0 {
		return report
	}

	report.TotalRows = len(dispositions)

	ids := utils.NewIDSet()
	var priced []*models.Listing

	for _, d := range dispositions {
		for flag, set := range d.Flags {
			if set {
				report.FlagCounts[flag]++
			}
		}

		if d.Admitted() {
			report.Admitted++
			if d.Listing.PriceUSD != nil {
				priced = append(priced, d.Listing)
			}
		} else {
			report.Rejected++
			report.ReasonCounts[d.Reason]++
		}

		if d.Listing.ID != nil && !ids.Add(*d.Listing.ID) {
			report.DuplicateIDs++
		}
	}

	report.MissingID = report.FlagCounts[models.FlagMissingID]
	report.MissingPrice = report.FlagCounts[models.FlagMissingOrInvalidPrice]
	report.MissingGeo = report.FlagCounts[models.FlagInvalidGeo]

	// Price stats over the admitted set
	if len(priced) > 0 {
		report.MinPrice = *priced[0].PriceUSD
		report.MaxPrice = *priced[0].PriceUSD
		var total float64
		for _, l := range priced {
			p := *l.PriceUSD
			total += p
			if p < report.MinPrice {
				report.MinPrice = p
			}
			if p > report.MaxPrice {
				report.MaxPrice = p
			}
		}
		report.AveragePrice = round2(total / float64(len(priced)))
		report.MinPrice = round2(report.MinPrice)
		report.MaxPrice = round2(report.MaxPrice)
	}

	return report
}

func (s *InsightService) Print(r *models.ValidationReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 LISTING VALIDATION SUMMARY\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total rows processed : \033[1m%d\033[0m\n", r.TotalRows)
	fmt.Printf("  Admitted             : \033[1;32m%d\033[0m\n", r.Admitted)
	fmt.Printf("  Rejected             : \033[1;31m%d\033[0m\n", r.Rejected)
	if r.DuplicateIDs > 0 {
		fmt.Printf("  Duplicate ids        : \033[1;33m%d\033[0m\n", r.DuplicateIDs)
	}
	fmt.Println()

	// Headline data-quality counts
	fmt.Printf("\033[1;33m  Data Quality\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Missing id             : %d\n", r.MissingID)
	fmt.Printf("  Missing/invalid price  : %d\n", r.MissingPrice)
	fmt.Printf("  Missing/invalid geo    : %d\n", r.MissingGeo)
	fmt.Println()

	// Exclusion reasons, most frequent first
	fmt.Printf("\033[1;33m  Exclusion Reasons\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.ReasonCounts) == 0 {
		fmt.Printf("  No rows excluded\n")
	} else {
		for _, fc := range sortedCounts(r.ReasonCounts) {
			bar := strings.Repeat("█", scaleBar(fc.count, r.TotalRows))
			fmt.Printf("  %-28s %s (%d)\n", fc.flag, bar, fc.count)
		}
	}
	fmt.Println()

	// Flags that do not exclude on their own
	fmt.Printf("\033[1;33m  All Flags Raised\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(r.FlagCounts) == 0 {
		fmt.Printf("  No flags raised\n")
	} else {
		for _, fc := range sortedCounts(r.FlagCounts) {
			fmt.Printf("  %-28s %d\n", fc.flag, fc.count)
		}
	}
	fmt.Println()

	// Price stats over the admitted set
	fmt.Printf("\033[1;33m  Price Statistics (admitted, per night)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if r.AveragePrice > 0 {
		fmt.Printf("  Average price : \033[1;32m$%.2f\033[0m\n", r.AveragePrice)
		fmt.Printf("  Minimum price : \033[1;32m$%.2f\033[0m\n", r.MinPrice)
		fmt.Printf("  Maximum price : \033[1;32m$%.2f\033[0m\n", r.MaxPrice)
	} else {
		fmt.Printf("  No price data available\n")
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

type flagCount struct {
	flag  models.Flag
	count int
}

// sortedCounts orders by count descending, then flag name for stable output.
func sortedCounts(m map[models.Flag]int) []flagCount {
	out := make([]flagCount, 0, len(m))
	for flag, count := range m {
		out = append(out, flagCount{flag, count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].flag < out[j].flag
	})
	return out
}

// scaleBar keeps histogram bars readable for large runs.
func scaleBar(count, total int) int {
	if total <= 50 {
		return count
	}
	scaled := count * 50 / total
	if scaled < 1 {
		scaled = 1
	}
	return scaled
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}
