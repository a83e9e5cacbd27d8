package catalog

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "this-is-a-32-byte-test-secret!!"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func TestTokenDecoderViewerRequest(t *testing.T) {
	decoder := NewTokenDecoder(testSecret)
	token := signToken(t, jwt.MapClaims{"username": "alice", "role": RoleViewer})

	req, err := decoder.DecodeRequest("db1", token)
	require.NoError(t, err)
	assert.Equal(t, "alice", req.RequestingUsername)
	assert.False(t, req.RequesterIsAdmin)
	assert.Equal(t, "alice", req.EffectiveUser())
}

func TestTokenDecoderAdminOverride(t *testing.T) {
	decoder := NewTokenDecoder(testSecret)
	token := signToken(t, jwt.MapClaims{"username": "root", "role": RoleAdmin, "acting_as": "alice"})

	req, err := decoder.DecodeRequest("db1", token)
	require.NoError(t, err)
	assert.True(t, req.RequesterIsAdmin)
	assert.Equal(t, "alice", req.EffectiveUser())
	assert.True(t, req.RestrictSearchToUsernameCatalog())
}

func TestTokenDecoderRejectsOverrideFromNonAdmin(t *testing.T) {
	decoder := NewTokenDecoder(testSecret)
	token := signToken(t, jwt.MapClaims{"username": "alice", "role": RoleViewer, "acting_as": "bob"})

	_, err := decoder.DecodeRequest("db1", token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestTokenDecoderRejectsBadSignature(t *testing.T) {
	decoder := NewTokenDecoder(testSecret)
	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"username": "alice"})
	signed, _ := other.SignedString([]byte("a-totally-different-32-byte-key"))

	_, err := decoder.DecodeRequest("db1", signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenDecoderRejectsEmptyToken(t *testing.T) {
	decoder := NewTokenDecoder(testSecret)
	_, err := decoder.DecodeRequest("db1", "")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
