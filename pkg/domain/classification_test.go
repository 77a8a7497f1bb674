package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "propertyguard/pkg/domain-errors"
)

func TestParsePropertyType(t *testing.T) {
	t.Run("accepts every supported value", func(t *testing.T) {
		for _, pt := range PropertyTypes() {
			parsed, err := ParsePropertyType(pt.String())
			require.NoError(t, err)
			assert.Equal(t, pt, parsed)
		}
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, err := ParsePropertyType("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects unknown value", func(t *testing.T) {
		_, err := ParsePropertyType("castle")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("is case sensitive", func(t *testing.T) {
		_, err := ParsePropertyType("Freestanding_House")
		require.Error(t, err)
	})
}

func TestParseOwnershipType(t *testing.T) {
	t.Run("accepts every supported value", func(t *testing.T) {
		for _, ot := range OwnershipTypes() {
			parsed, err := ParseOwnershipType(ot.String())
			require.NoError(t, err)
			assert.Equal(t, ot, parsed)
		}
	})

	t.Run("rejects empty", func(t *testing.T) {
		_, err := ParseOwnershipType("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects unknown value", func(t *testing.T) {
		_, err := ParseOwnershipType("timeshare")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func TestParseFloorLevel(t *testing.T) {
	t.Run("empty input means unspecified", func(t *testing.T) {
		level, err := ParseFloorLevel("")
		require.NoError(t, err)
		assert.True(t, level.IsNone())
	})

	t.Run("accepts every supported value", func(t *testing.T) {
		for _, fl := range FloorLevels() {
			parsed, err := ParseFloorLevel(fl.String())
			require.NoError(t, err)
			assert.Equal(t, fl, parsed)
			assert.False(t, parsed.IsNone())
		}
	})

	t.Run("rejects unknown value", func(t *testing.T) {
		_, err := ParseFloorLevel("mezzanine")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

// TestCatalogOrder_Stable pins the catalog listing order; API consumers render
// these lists directly.
func TestCatalogOrder_Stable(t *testing.T) {
	assert.Equal(t, PropertyTypeFreestandingHouse, PropertyTypes()[0])
	assert.Equal(t, PropertyTypeVacantLand, PropertyTypes()[len(PropertyTypes())-1])
	assert.Len(t, PropertyTypes(), 11)
	assert.Len(t, OwnershipTypes(), 6)
	assert.Len(t, FloorLevels(), 5)

	assert.Equal(t, OwnershipTypeIndividual, OwnershipTypes()[0])
	assert.Equal(t, FloorLevelGround, FloorLevels()[0])
}
