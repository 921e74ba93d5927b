package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gymstack/journey-api/internal/models"
)

func TestGet(t *testing.T) {
	it, ok := Get("A13")
	require.True(t, ok)
	assert.Equal(t, "Workout tracked", it.Title)
	assert.Equal(t, "WORKOUT_TRACKED", it.EventType)
	assert.Equal(t, models.CompletionCounter, it.CompletionMode)

	_, ok = Get("A99")
	assert.False(t, ok)
}

func TestTitleFallsBackToID(t *testing.T) {
	assert.Equal(t, "Account created", Title("A01"))
	assert.Equal(t, "A99", Title("A99"))
}

func TestAllSortedAndComplete(t *testing.T) {
	all := All()
	require.Len(t, all, 14)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}
}

func TestSupportsProduct(t *testing.T) {
	it, ok := Get("A14")
	require.True(t, ok)
	assert.True(t, it.SupportsProduct(models.ProductSmartStrength))
	assert.False(t, it.SupportsProduct(models.ProductMemberApp))
}

func TestCatalogInvariants(t *testing.T) {
	for _, it := range All() {
		t.Run(it.ID, func(t *testing.T) {
			assert.NotEmpty(t, it.Title)
			assert.NotEmpty(t, it.EventType)
			assert.NotEmpty(t, it.SupportedProducts, "every action type supports at least one product")
			if it.DefaultGuidanceEnabled {
				assert.True(t, it.SupportsGuidance, "guidance cannot default on when unsupported")
			}
		})
	}
}

func TestByCategoryCoversCatalog(t *testing.T) {
	grouped := ByCategory()
	total := 0
	for _, items := range grouped {
		total += len(items)
	}
	assert.Equal(t, len(All()), total)
	assert.Equal(t, CategoryAssessments, CategoryOf("A03"))
	assert.Equal(t, CategoryOther, CategoryOf("A99"))
}
