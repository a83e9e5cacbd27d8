package catalog

import (
	"fmt"

	"github.com/graphcore/corestore/pkg/validation"
)

// CatalogRequest carries the identity a catalog operation is performed
// on behalf of. UsernameOverride is only legal when RequesterIsAdmin —
// Validate enforces that rule.
type CatalogRequest struct {
	DatabaseName       string `json:"databaseName" validate:"required"`
	RequestingUsername string `json:"requestingUsername" validate:"required,max=128"`
	UsernameOverride   string `json:"usernameOverride,omitempty" validate:"omitempty,max=128"`
	RequesterIsAdmin   bool   `json:"requesterIsAdmin"`
}

// NewCatalogRequest builds a request for a non-admin principal.
func NewCatalogRequest(databaseName, requestingUsername string) CatalogRequest {
	return CatalogRequest{DatabaseName: databaseName, RequestingUsername: requestingUsername}
}

// NewAdminCatalogRequest builds a request for an admin principal,
// optionally acting as usernameOverride (empty means "act as myself,
// search every user").
func NewAdminCatalogRequest(databaseName, requestingUsername, usernameOverride string) CatalogRequest {
	return CatalogRequest{
		DatabaseName:       databaseName,
		RequestingUsername: requestingUsername,
		UsernameOverride:   usernameOverride,
		RequesterIsAdmin:   true,
	}
}

// Validate enforces the structural rules on a request; the cross-field
// rule is that a non-empty override requires the admin flag.
func (r CatalogRequest) Validate() error {
	if err := validation.ValidateStruct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if r.UsernameOverride != "" && !r.RequesterIsAdmin {
		return fmt.Errorf("%w: username override requires admin", ErrUnauthorized)
	}
	return nil
}

// EffectiveUser is the override if present, else the requester — the
// username whose catalog is searched first.
func (r CatalogRequest) EffectiveUser() string {
	if r.UsernameOverride != "" {
		return r.UsernameOverride
	}
	return r.RequestingUsername
}

// RestrictSearchToUsernameCatalog reports whether this request's lookups
// are confined to the effective user's catalog: true for any non-admin
// request, true for an admin request with an explicit override (the
// admin is acting *as* someone), false for an admin request with no
// override (the admin sees every user's catalog).
func (r CatalogRequest) RestrictSearchToUsernameCatalog() bool {
	if !r.RequesterIsAdmin {
		return true
	}
	return r.UsernameOverride != ""
}
