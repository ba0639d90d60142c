package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken("test-issuer", "ops", time.Hour, "secret-key")

	require.NoError(t, err)
	assert.NotEmpty(t, token.SignedString)
	assert.Equal(t, "ops", token.Subject())
	assert.Equal(t, "test-issuer", token.Issuer)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name     string
		issuer   string
		subject  string
		duration time.Duration
		key      string
	}{
		{name: "empty issuer", subject: "ops", duration: time.Hour, key: "k"},
		{name: "empty subject", issuer: "i", duration: time.Hour, key: "k"},
		{name: "zero duration", issuer: "i", subject: "ops", key: "k"},
		{name: "empty key", issuer: "i", subject: "ops", duration: time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.subject, tt.duration, tt.key)
			assert.ErrorIs(t, err, ErrInvalidTokenParams)
		})
	}
}

func TestValidateAndParseJWTToken_RoundTrip(t *testing.T) {
	token, err := GenerateJWTToken("issuer", "ops", time.Hour, "key")
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(token.SignedString, "key", "issuer")

	require.NoError(t, err)
	assert.Equal(t, "ops", parsed.Subject())
	assert.Equal(t, token.SignedString, parsed.String())
}

func TestValidateAndParseJWTToken_Rejects(t *testing.T) {
	token, err := GenerateJWTToken("issuer", "ops", time.Hour, "key")
	require.NoError(t, err)
	expired, err := GenerateJWTToken("issuer", "ops", -time.Minute, "key")
	require.NoError(t, err)

	tests := []struct {
		name   string
		raw    string
		key    string
		issuer string
	}{
		{name: "wrong key", raw: token.SignedString, key: "other", issuer: "issuer"},
		{name: "wrong issuer", raw: token.SignedString, key: "key", issuer: "other"},
		{name: "expired", raw: expired.SignedString, key: "key", issuer: "issuer"},
		{name: "garbage", raw: "not-a-token", key: "key", issuer: "issuer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAndParseJWTToken(tt.raw, tt.key, tt.issuer)
			assert.Error(t, err)
		})
	}
}

func TestParseBearerToken(t *testing.T) {
	tok, err := ParseBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer a b"} {
		_, err := ParseBearerToken(header)
		assert.True(t, errors.Is(err, ErrInvalidAuthorizationHeader), header)
	}
}

func TestNewTraceID_Unique(t *testing.T) {
	a, b := NewTraceID(), NewTraceID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
