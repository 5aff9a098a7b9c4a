package service

import "taskboard/internal/apperror"

// AssertOwnership fails with Forbidden unless the requester owns the resource.
// Identifiers are compared as opaque strings. Callers report a missing resource
// as NotFound before calling it.
func AssertOwnership(resourceOwnerID, requesterID string) error {
	if resourceOwnerID != requesterID {
		return apperror.Forbidden()
	}
	return nil
}
