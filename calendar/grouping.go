package calendar

import "github.com/pulizieapp/cleaning-planner/models"

// GroupByDate buckets orders by their cleaning date key. Relative input order
// is preserved within each bucket, so a grid cell can render its orders in
// O(1) without re-sorting.
func GroupByDate(orders []models.Order) map[string][]models.Order {
	grouped := make(map[string][]models.Order, len(orders))
	for _, o := range orders {
		grouped[o.CleaningDate] = append(grouped[o.CleaningDate], o)
	}
	return grouped
}
