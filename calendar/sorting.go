package calendar

import (
	"math"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/pulizieapp/cleaning-planner/models"
)

// SortMode selects one of the six orderings of a day view.
type SortMode string

const (
	SortDateDesc  SortMode = "date_desc"
	SortDateAsc   SortMode = "date_asc"
	SortPriceDesc SortMode = "price_desc"
	SortPriceAsc  SortMode = "price_asc"
	SortNameDesc  SortMode = "name_desc"
	SortNameAsc   SortMode = "name_asc"
)

// ParseSortMode validates a query-string value.
func ParseSortMode(s string) (SortMode, bool) {
	switch m := SortMode(s); m {
	case SortDateDesc, SortDateAsc, SortPriceDesc, SortPriceAsc, SortNameDesc, SortNameAsc:
		return m, true
	}
	return "", false
}

// NextSortMode advances the single toggle control through its fixed rotation:
// date_desc -> date_asc -> price_desc -> price_asc -> name_desc -> name_asc
// and back to date_desc. The order is not alphabetic; keep it as-is.
func NextSortMode(mode SortMode) SortMode {
	switch mode {
	case SortDateDesc:
		return SortDateAsc
	case SortDateAsc:
		return SortPriceDesc
	case SortPriceDesc:
		return SortPriceAsc
	case SortPriceAsc:
		return SortNameDesc
	case SortNameDesc:
		return SortNameAsc
	case SortNameAsc:
		return SortDateDesc
	default:
		return SortDateDesc
	}
}

// Filters holds the optional categorical filters of the day view.
// A nil field imposes no constraint.
type Filters struct {
	Favorite *bool
	Status   *string
	Payment  *string
}

func (f Filters) match(o models.Order) bool {
	if f.Favorite != nil && o.IsFavorite != *f.Favorite {
		return false
	}
	if f.Status != nil && o.Status != *f.Status {
		return false
	}
	if f.Payment != nil && o.PaymentStatus != *f.Payment {
		return false
	}
	return true
}

// ApplyFilterAndSort returns a fresh list with the filters and sort mode
// applied. The input slice is never mutated, so callers may re-invoke it on
// every keystroke without coordination.
func ApplyFilterAndSort(orders []models.Order, filters Filters, mode SortMode) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if filters.match(o) {
			out = append(out, o)
		}
	}
	sortOrders(out, mode)
	return out
}

// startOr substitutes a sentinel for a missing start time so the comparator
// stays total. The sentinel differs by direction: "00:00" for ascending,
// "23:59" for descending, which puts timeless orders first either way.
// Observed behavior, do not "fix".
func startOr(o models.Order, sentinel string) string {
	if o.StartTime == nil || *o.StartTime == "" {
		return sentinel
	}
	return *o.StartTime
}

func priceOr(o models.Order, sentinel float64) float64 {
	if o.Price == nil {
		return sentinel
	}
	return *o.Price
}

func sortOrders(orders []models.Order, mode SortMode) {
	switch mode {
	case SortDateAsc:
		sort.SliceStable(orders, func(i, j int) bool {
			a, b := startOr(orders[i], "00:00"), startOr(orders[j], "00:00")
			if a != b {
				return a < b
			}
			return orders[i].ID < orders[j].ID
		})
	case SortDateDesc:
		sort.SliceStable(orders, func(i, j int) bool {
			a, b := startOr(orders[i], "23:59"), startOr(orders[j], "23:59")
			if a != b {
				return a > b
			}
			return orders[i].ID < orders[j].ID
		})
	case SortPriceAsc:
		sort.SliceStable(orders, func(i, j int) bool {
			a, b := priceOr(orders[i], math.Inf(1)), priceOr(orders[j], math.Inf(1))
			if a != b {
				return a < b
			}
			return orders[i].ID < orders[j].ID
		})
	case SortPriceDesc:
		sort.SliceStable(orders, func(i, j int) bool {
			a, b := priceOr(orders[i], math.Inf(-1)), priceOr(orders[j], math.Inf(-1))
			if a != b {
				return a > b
			}
			return orders[i].ID < orders[j].ID
		})
	case SortNameAsc, SortNameDesc:
		// Collators carry internal buffers, so build one per call instead of
		// sharing a package-level instance across goroutines.
		cl := collate.New(language.Italian, collate.IgnoreCase)
		sort.SliceStable(orders, func(i, j int) bool {
			cmp := cl.CompareString(orders[i].Name, orders[j].Name)
			if mode == SortNameDesc {
				return cmp > 0
			}
			return cmp < 0
		})
	}
}
