package catalog

import "github.com/google/uuid"

// AnonymousUserPrefix is the fixed prefix every minted anonymous identity
// carries ("anonymous/<uuid>").
const AnonymousUserPrefix = "anonymous/"

// NewAnonymousUser mints a fresh anonymous-user identity for a request
// with no authenticated principal.
func NewAnonymousUser() string {
	return AnonymousUserPrefix + uuid.NewString()
}

// IsAnonymousUser reports whether username was minted by NewAnonymousUser.
func IsAnonymousUser(username string) bool {
	return len(username) > len(AnonymousUserPrefix) && username[:len(AnonymousUserPrefix)] == AnonymousUserPrefix
}
