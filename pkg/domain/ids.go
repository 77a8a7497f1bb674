package domain

import (
	"github.com/google/uuid"

	dErrors "propertyguard/pkg/domain-errors"
)

// Typed IDs prevent cross-entity assignment at compile time: a GapID can never
// be passed where an ItemID is expected. Construct from external input via the
// Parse functions, which enforce the invariant that IDs are valid, non-nil UUIDs.
type (
	// PropertyID identifies a property.
	PropertyID uuid.UUID
	// UserID identifies the owning user of a property.
	UserID uuid.UUID
	// ItemID identifies a compliance item.
	ItemID uuid.UUID
	// GapID identifies a documentation gap.
	GapID uuid.UUID
	// ResponsibilityID identifies a shared responsibility record.
	ResponsibilityID uuid.UUID
	// DocumentID identifies an imported council document.
	DocumentID uuid.UUID
	// MunicipalityID identifies a municipality integration record.
	MunicipalityID uuid.UUID
)

func (id PropertyID) String() string       { return uuid.UUID(id).String() }
func (id UserID) String() string           { return uuid.UUID(id).String() }
func (id ItemID) String() string           { return uuid.UUID(id).String() }
func (id GapID) String() string            { return uuid.UUID(id).String() }
func (id ResponsibilityID) String() string { return uuid.UUID(id).String() }
func (id DocumentID) String() string       { return uuid.UUID(id).String() }
func (id MunicipalityID) String() string   { return uuid.UUID(id).String() }

func (id PropertyID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id UserID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id ItemID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id GapID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }

// parseUUID enforces the shared ID invariant at trust boundaries.
// Errors: CodeInvalidInput for empty, malformed, or nil input.
func parseUUID(s, what string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" is required")
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" must be a valid UUID")
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, what+" must not be the nil UUID")
	}
	return parsed, nil
}

// ParsePropertyID validates external input into a PropertyID.
func ParsePropertyID(s string) (PropertyID, error) {
	parsed, err := parseUUID(s, "property ID")
	return PropertyID(parsed), err
}

// ParseUserID validates external input into a UserID.
func ParseUserID(s string) (UserID, error) {
	parsed, err := parseUUID(s, "user ID")
	return UserID(parsed), err
}

// ParseItemID validates external input into an ItemID.
func ParseItemID(s string) (ItemID, error) {
	parsed, err := parseUUID(s, "item ID")
	return ItemID(parsed), err
}

// ParseGapID validates external input into a GapID.
func ParseGapID(s string) (GapID, error) {
	parsed, err := parseUUID(s, "gap ID")
	return GapID(parsed), err
}

// ParseResponsibilityID validates external input into a ResponsibilityID.
func ParseResponsibilityID(s string) (ResponsibilityID, error) {
	parsed, err := parseUUID(s, "responsibility ID")
	return ResponsibilityID(parsed), err
}

// ParseDocumentID validates external input into a DocumentID.
func ParseDocumentID(s string) (DocumentID, error) {
	parsed, err := parseUUID(s, "document ID")
	return DocumentID(parsed), err
}

// ParseMunicipalityID validates external input into a MunicipalityID.
func ParseMunicipalityID(s string) (MunicipalityID, error) {
	parsed, err := parseUUID(s, "municipality ID")
	return MunicipalityID(parsed), err
}
