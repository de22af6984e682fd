package auth

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"
)

// ErrMalformedToken is returned when a session token cannot be decoded
var ErrMalformedToken = errors.New("malformed session token")

// TokenCodec converts between principal ids and opaque session tokens.
//
// The token is base64("<principalID>:<issuedAtMillis>"). It carries no
// signature: anyone who knows a principal id can mint a valid token. There is
// no expiry either; a token stays valid for as long as its principal exists.
type TokenCodec struct{}

// NewTokenCodec creates a token codec
func NewTokenCodec() *TokenCodec {
	return &TokenCodec{}
}

// Encode builds a session token for the principal
func (TokenCodec) Encode(principalID string, issuedAtMillis int64) string {
	payload := principalID + ":" + strconv.FormatInt(issuedAtMillis, 10)
	return base64.StdEncoding.EncodeToString([]byte(payload))
}

// Decode extracts the principal id from a session token.
// Any malformed input yields ErrMalformedToken.
func (TokenCodec) Decode(token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMalformedToken
	}
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", ErrMalformedToken
	}
	principalID, _, _ := strings.Cut(string(raw), ":")
	if principalID == "" {
		return "", ErrMalformedToken
	}
	return principalID, nil
}
