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

func wrapPropertyErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "property not found")
	}
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "property store failure")
}

func wrapResponsibilityErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "shared responsibility not found")
	}
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "shared responsibility store failure")
}
