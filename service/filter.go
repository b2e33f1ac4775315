package service

// FilterRecords applies pred across records, preserving relative order.
// The input slice is never mutated; the result is a fresh slice. The
// whole collection is re-scanned on every call — working sets are small
// enough that incremental diffing would not pay for itself.
func FilterRecords[T any](records []T, pred func(T) bool) []T {
	result := make([]T, 0, len(records))
	for _, rec := range records {
		if pred(rec) {
			result = append(result, rec)
		}
	}
	return result
}
