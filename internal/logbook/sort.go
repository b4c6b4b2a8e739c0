package logbook

import (
	"cmp"
	"slices"

	"github.com/thesavant42/astrolog/internal/models"
)

// SortChronological returns a copy of records ordered newest first.
// Records with equal or unparseable timestamps keep their relative order.
func SortChronological(records []models.LogRecord) []models.LogRecord {
	type keyed struct {
		ts  int64
		rec models.LogRecord
	}
	tmp := make([]keyed, len(records))
	for i, r := range records {
		tmp[i] = keyed{ts: ParseDateTime(r.DateTime), rec: r}
	}
	slices.SortStableFunc(tmp, func(a, b keyed) int {
		return cmp.Compare(b.ts, a.ts)
	})

	sorted := make([]models.LogRecord, len(tmp))
	for i, k := range tmp {
		sorted[i] = k.rec
	}
	return sorted
}

// CountUniqueObjects returns the number of distinct object keys
func CountUniqueObjects(records []models.LogRecord) int {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		seen[r.ObjectKey] = struct{}{}
	}
	return len(seen)
}
