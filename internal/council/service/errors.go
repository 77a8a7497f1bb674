package service

import (
	"errors"

	dErrors "propertyguard/pkg/domain-errors"
	"propertyguard/pkg/platform/sentinel"
)

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

func wrapDocumentErr(err error) error {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "council document store failure")
}
