package fixture

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"listing-service/internal/contracts"
	"listing-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFixture(t *testing.T) {
	validator, err := contracts.NewValidator()
	require.NoError(t, err)

	src, err := NewDefaultListingSource(validator)
	require.NoError(t, err)
	assert.Equal(t, 6, src.Len())

	all, err := src.All(context.Background())
	require.NoError(t, err)

	bedrooms := make([]int, 0, len(all))
	for _, l := range all {
		bedrooms = append(bedrooms, l.Bedrooms)
	}
	assert.Equal(t, []int{4, 3, 5, 6, 4, 3}, bedrooms)
	assert.Equal(t, 2.5, all[1].Bathrooms)
	assert.Equal(t, domain.ListingTypeForSale, all[0].Type)
}

func TestAllReturnsCopy(t *testing.T) {
	src, err := NewDefaultListingSource(nil)
	require.NoError(t, err)

	first, _ := src.All(context.Background())
	first[0].Address = "mutated"

	second, _ := src.All(context.Background())
	assert.Len(t, second, 6)
	assert.Equal(t, "123 Dream Street, Beverly Hills, CA", second[0].Address)
}

func TestByID(t *testing.T) {
	src, err := NewDefaultListingSource(nil)
	require.NoError(t, err)

	l, err := src.ByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "David Wilson", l.Agent)

	l.Agent = "someone else"
	again, _ := src.ByID(context.Background(), 4)
	assert.Equal(t, "David Wilson", again.Agent)

	_, err = src.ByID(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrListingNotFound)
}

func TestDuplicateIDsRejected(t *testing.T) {
	_, err := NewListingSource([]domain.Listing{{ID: 1}, {ID: 1}})
	assert.Error(t, err)
}

func TestFixtureFromFileIsValidated(t *testing.T) {
	validator, err := contracts.NewValidator()
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "listings.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":1}]`), 0o600))

	_, err = NewListingSourceFromFile(path, validator)
	assert.Error(t, err)

	_, err = NewListingSourceFromFile(filepath.Join(dir, "missing.json"), validator)
	assert.Error(t, err)
}
