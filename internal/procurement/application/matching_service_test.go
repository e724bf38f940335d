package application_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/procurement/internal/procurement/application"
	"github.com/wyfcoding/procurement/internal/procurement/domain"
)

func seedSupplier(t *testing.T, repo *fakeSupplierRepo, supplier *domain.Supplier) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), supplier))
}

func TestMatchSuppliers_OrderedByScoreDesc(t *testing.T) {
	tenders := newFakeTenderRepo()
	suppliers := &fakeSupplierRepo{}
	svc := application.NewMatchingService(tenders, suppliers)

	// base 0.5
	seedSupplier(t, suppliers, &domain.Supplier{Name: "weak", Categories: "it"})
	// 0.5 + 0.3 + 0.2
	seedSupplier(t, suppliers, &domain.Supplier{Name: "strong", Categories: "it", AvgContractSize: dec(100), WinRate: floatptr(0.5)})
	// 0.5 + 0.1
	seedSupplier(t, suppliers, &domain.Supplier{Name: "middle", Categories: "it", WinRate: floatptr(0.1)})

	matches, err := svc.MatchSuppliers(context.Background(), &domain.Tender{Category: "IT", PriceAmount: dec(100)})
	require.NoError(t, err)
	require.Len(t, matches, 3)

	assert.Equal(t, "strong", matches[0].Name)
	assert.InDelta(t, 1.0, matches[0].MatchScore, 1e-9)
	assert.Equal(t, "middle", matches[1].Name)
	assert.Equal(t, "weak", matches[2].Name)
}

func TestMatchSuppliers_FiltersByCategoryAndRegion(t *testing.T) {
	tenders := newFakeTenderRepo()
	suppliers := &fakeSupplierRepo{}
	svc := application.NewMatchingService(tenders, suppliers)

	seedSupplier(t, suppliers, &domain.Supplier{Name: "same-region", Categories: "it,construction", Region: strptr("Almaty")})
	seedSupplier(t, suppliers, &domain.Supplier{Name: "no-region", Categories: "it"})
	seedSupplier(t, suppliers, &domain.Supplier{Name: "other-region", Categories: "it", Region: strptr("Astana")})
	seedSupplier(t, suppliers, &domain.Supplier{Name: "other-category", Categories: "food", Region: strptr("Almaty")})

	matches, err := svc.MatchSuppliers(context.Background(), &domain.Tender{Category: "IT", Region: "Almaty"})
	require.NoError(t, err)
	require.Len(t, matches, 2)

	names := []string{matches[0].Name, matches[1].Name}
	assert.ElementsMatch(t, []string{"same-region", "no-region"}, names)
}

func TestMatchSuppliers_CandidateLimit(t *testing.T) {
	tenders := newFakeTenderRepo()
	suppliers := &fakeSupplierRepo{}
	svc := application.NewMatchingService(tenders, suppliers)

	for range domain.MaxCandidates + 2 {
		seedSupplier(t, suppliers, &domain.Supplier{Name: "s", Categories: "it"})
	}

	matches, err := svc.MatchSuppliers(context.Background(), &domain.Tender{Category: "IT"})
	require.NoError(t, err)
	assert.Len(t, matches, domain.MaxCandidates)
}

func TestMatchSuppliers_NoCandidates(t *testing.T) {
	tenders := newFakeTenderRepo()
	suppliers := &fakeSupplierRepo{}
	svc := application.NewMatchingService(tenders, suppliers)

	matches, err := svc.MatchSuppliers(context.Background(), &domain.Tender{Category: "IT"})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestMatchSuppliersByID_UnknownTender(t *testing.T) {
	svc := application.NewMatchingService(newFakeTenderRepo(), &fakeSupplierRepo{})

	_, err := svc.MatchSuppliersByID(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrTenderNotFound)
}

func TestMatchSuppliersByID_UsesStoredTender(t *testing.T) {
	tenders := newFakeTenderRepo()
	suppliers := &fakeSupplierRepo{}
	svc := application.NewMatchingService(tenders, suppliers)

	seedSupplier(t, suppliers, &domain.Supplier{Name: "match", Categories: "it", Region: strptr("Almaty")})
	id := seedTender(t, tenders, &domain.Tender{Category: "IT", Region: "Almaty"})

	matches, err := svc.MatchSuppliersByID(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "match", matches[0].Name)
}
