package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "propertyguard/pkg/domain-errors"
)

// TestParseUUID_Invariants validates the parsing invariant:
// "IDs must be valid, non-empty, non-nil UUIDs"
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParsePropertyID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParsePropertyID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParsePropertyID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParsePropertyID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, PropertyID(validUUID), id)
	})
}

// TestTypeDistinction verifies the compiler enforces type safety.
// This is a compile-time check - if this compiles, the invariant holds.
func TestTypeDistinction(t *testing.T) {
	itemID := ItemID(uuid.New())
	gapID := GapID(uuid.New())

	// These would fail to compile if types were interchangeable:
	// var _ ItemID = gapID   // compile error
	// var _ GapID = itemID   // compile error

	// Verify they're distinct at runtime too
	assert.NotEqual(t, uuid.UUID(itemID), uuid.UUID(gapID))
}

// TestParseID_SecurityInvariants validates security-critical parsing rules.
//
// These are trust boundary invariants - parsing must reject attack vectors
// at API entry points.
func TestParseID_SecurityInvariants(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		// Attack vectors
		{"SQL injection attempt", "'; DROP TABLE properties;--", true},
		{"Path traversal", "../../../etc/passwd", true},
		{"Null byte injection", "550e8400\x00-e29b-41d4-a716-446655440000", true},
		{"Oversized input", strings.Repeat("a", 1000), true},
		{"Unicode zero-width space", "550e8400\u200B-e29b-41d4-a716-446655440000", true},

		// Edge cases
		{"Empty string", "", true},
		{"Nil UUID", uuid.Nil.String(), true},
		{"Whitespace only", "   ", true},
		{"Uppercase valid UUID", "550E8400-E29B-41D4-A716-446655440000", false},

		// Valid
		{"Valid UUID lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePropertyID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// TestAllIDTypes_ConsistentBehavior ensures all ID types have identical parsing
// behavior. Inconsistent validation across ID types could create security holes.
func TestAllIDTypes_ConsistentBehavior(t *testing.T) {
	validUUID := uuid.New().String()
	invalidInputs := []string{"", "invalid", uuid.Nil.String()}

	t.Run("all accept valid UUID", func(t *testing.T) {
		_, errProperty := ParsePropertyID(validUUID)
		_, errUser := ParseUserID(validUUID)
		_, errItem := ParseItemID(validUUID)
		_, errGap := ParseGapID(validUUID)
		_, errResp := ParseResponsibilityID(validUUID)
		_, errDoc := ParseDocumentID(validUUID)
		_, errMuni := ParseMunicipalityID(validUUID)

		require.NoError(t, errProperty)
		require.NoError(t, errUser)
		require.NoError(t, errItem)
		require.NoError(t, errGap)
		require.NoError(t, errResp)
		require.NoError(t, errDoc)
		require.NoError(t, errMuni)
	})

	for _, input := range invalidInputs {
		t.Run("all reject: "+input, func(t *testing.T) {
			_, errProperty := ParsePropertyID(input)
			_, errUser := ParseUserID(input)
			_, errItem := ParseItemID(input)
			_, errGap := ParseGapID(input)
			_, errResp := ParseResponsibilityID(input)
			_, errDoc := ParseDocumentID(input)
			_, errMuni := ParseMunicipalityID(input)

			require.Error(t, errProperty)
			require.Error(t, errUser)
			require.Error(t, errItem)
			require.Error(t, errGap)
			require.Error(t, errResp)
			require.Error(t, errDoc)
			require.Error(t, errMuni)
		})
	}
}
