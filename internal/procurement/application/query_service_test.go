package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/procurement/internal/procurement/application"
	"github.com/wyfcoding/procurement/internal/procurement/domain"
)

func TestListTenders_Filters(t *testing.T) {
	tenders := newFakeTenderRepo()
	svc := application.NewTenderQuery(tenders)

	seedTender(t, tenders, &domain.Tender{Category: "IT", Platform: "goszakup", RiskLevel: domain.RiskLevelLow})
	seedTender(t, tenders, &domain.Tender{Category: "IT", Platform: "samruk", RiskLevel: domain.RiskLevelHigh})
	seedTender(t, tenders, &domain.Tender{Category: "Food", Platform: "goszakup", RiskLevel: domain.RiskLevelLow})

	all, err := svc.ListTenders(context.Background(), domain.TenderListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	it, err := svc.ListTenders(context.Background(), domain.TenderListFilter{Category: "IT"})
	require.NoError(t, err)
	assert.Len(t, it, 2)

	high, err := svc.ListTenders(context.Background(), domain.TenderListFilter{Category: "IT", RiskLevel: "high"})
	require.NoError(t, err)
	require.Len(t, high, 1)
	assert.Equal(t, "samruk", high[0].Platform)
}

func TestGetTender(t *testing.T) {
	tenders := newFakeTenderRepo()
	svc := application.NewTenderQuery(tenders)

	id := seedTender(t, tenders, &domain.Tender{Subject: "Servers", Category: "IT"})

	dto, err := svc.GetTender(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Servers", dto.Subject)

	_, err = svc.GetTender(context.Background(), id+1)
	assert.ErrorIs(t, err, domain.ErrTenderNotFound)
}
