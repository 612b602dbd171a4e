package usecase

import "github.com/DevNF/nfplugboleto/internal/domain"

// correlate builds a lookup keyed by integration identifier from a
// follow-up query result. The integration identifier is the sole
// correlation key between a submission and anything queried later.
//
// An identifier that was submitted but is absent from the map is
// unresolved — typically remote processing still in flight — and must
// be kept distinct from a resolved failure, never dropped.
func correlate(records []domain.Title) map[string]domain.Title {
	byID := make(map[string]domain.Title, len(records))
	for _, r := range records {
		byID[r.IntegrationID] = r
	}
	return byID
}

// integrationIDs collects the correlation keys of a title list,
// preserving order.
func integrationIDs(titles []domain.Title) []string {
	ids := make([]string, 0, len(titles))
	for _, t := range titles {
		ids = append(ids, t.IntegrationID)
	}
	return ids
}

// reclassified reports whether a resolved status moves an accepted
// title from the success bucket to the failure bucket.
func reclassified(s domain.TitleStatus) bool {
	return s == domain.TitleStatusRejected || s == domain.TitleStatusFailed
}
