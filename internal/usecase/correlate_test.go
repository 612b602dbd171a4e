package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DevNF/nfplugboleto/internal/domain"
)

func TestCorrelate(t *testing.T) {
	records := []domain.Title{
		{IntegrationID: "A", Status: domain.TitleStatusPaid},
		{IntegrationID: "B", Status: domain.TitleStatusRejected},
	}

	byID := correlate(records)

	assert.Len(t, byID, 2)
	assert.Equal(t, domain.TitleStatusPaid, byID["A"].Status)
	assert.Equal(t, domain.TitleStatusRejected, byID["B"].Status)

	// A submitted identifier absent from the query result stays
	// unresolved, it is not a failure.
	_, ok := byID["C"]
	assert.False(t, ok)
}

func TestIntegrationIDsPreservesOrder(t *testing.T) {
	titles := []domain.Title{
		{IntegrationID: "third"},
		{IntegrationID: "first"},
		{IntegrationID: "second"},
	}

	assert.Equal(t, []string{"third", "first", "second"}, integrationIDs(titles))
}

func TestReclassified(t *testing.T) {
	assert.True(t, reclassified(domain.TitleStatusRejected))
	assert.True(t, reclassified(domain.TitleStatusFailed))
	assert.False(t, reclassified(domain.TitleStatusPaid))
	assert.False(t, reclassified(domain.TitleStatusAccepted))
	assert.False(t, reclassified(domain.TitleStatusPending))
}
