package service

import (
	"errors"

	id "propertyguard/pkg/domain"
	dErrors "propertyguard/pkg/domain-errors"
	"propertyguard/pkg/platform/sentinel"
)

func requirePropertyID(propertyID id.PropertyID) error {
	if propertyID.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "property id is required")
	}
	return nil
}

// wrapPropertyErr translates property store failures for compliance callers.
func wrapPropertyErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "property not found")
	}
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "property lookup failed")
}

func wrapItemErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "compliance item not found")
	}
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "compliance item store failure")
}

func wrapGapErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "documentation gap not found")
	}
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "documentation gap store failure")
}
