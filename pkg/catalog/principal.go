package catalog

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Role claim values a bearer token may carry. Only RoleAdmin sets
// RequesterIsAdmin on the decoded request.
const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// ErrInvalidToken is returned when a bearer token fails to parse or
// validate, or is missing the claims a CatalogRequest needs.
var ErrInvalidToken = errors.New("catalog: invalid token")

// TokenDecoder extracts a CatalogRequest's identity from an
// externally-issued bearer token, kept separate from the catalog's core
// lookup logic so the catalog itself never depends on a token format.
type TokenDecoder struct {
	secretKey []byte
}

// NewTokenDecoder builds a decoder that verifies HMAC-signed tokens with
// secret.
func NewTokenDecoder(secret string) *TokenDecoder {
	return &TokenDecoder{secretKey: []byte(secret)}
}

// DecodeRequest parses tokenString and builds a CatalogRequest for
// databaseName, with usernameOverride taken from an "acting_as" claim
// (only honored below when the token's role is admin — Validate would
// reject it otherwise).
func (d *TokenDecoder) DecodeRequest(databaseName, tokenString string) (CatalogRequest, error) {
	if tokenString == "" {
		return CatalogRequest{}, ErrInvalidToken
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return d.secretKey, nil
	})
	if err != nil || !token.Valid {
		return CatalogRequest{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return CatalogRequest{}, fmt.Errorf("%w: missing claims", ErrInvalidToken)
	}

	username, ok := claims["username"].(string)
	if !ok || username == "" {
		return CatalogRequest{}, fmt.Errorf("%w: missing or invalid username claim", ErrInvalidToken)
	}

	role, _ := claims["role"].(string)
	isAdmin := role == RoleAdmin

	override, _ := claims["acting_as"].(string)
	if override != "" && !isAdmin {
		// A non-admin token can carry an acting_as claim (e.g. issued by
		// a misconfigured client); reject it with ErrUnauthorized rather
		// than letting it leak into an unauthorized override — Validate
		// would reject it anyway, but failing here gives a clearer error.
		return CatalogRequest{}, fmt.Errorf("%w: acting_as claim requires admin role", ErrUnauthorized)
	}

	req := CatalogRequest{
		DatabaseName:       databaseName,
		RequestingUsername: username,
		UsernameOverride:   override,
		RequesterIsAdmin:   isAdmin,
	}
	return req, req.Validate()
}
