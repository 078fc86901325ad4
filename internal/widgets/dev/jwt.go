package dev

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// Token status badges.
const (
	StatusInvalidFormat = "Invalid Format"
	StatusInvalidToken  = "Invalid Token"
	StatusActive        = "Active"
	StatusExpired       = "Expired"
	StatusNotYetValid   = "Not Yet Valid"
)

// DecodedJWT is the unverified content of a JSON Web Token.
type DecodedJWT struct {
	Header    string // indented JSON
	Payload   string // indented JSON
	Algorithm string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	NotBefore time.Time
	Status    string
}

// DecodeJWT decodes the header and payload of token without verifying its
// signature. A token with fewer than three dot-separated segments fails with
// a KindParse error whose message is "Invalid Format".
func DecodeJWT(token string, now time.Time) (*DecodedJWT, error) {
	token = strings.TrimPrefix(strings.TrimSpace(token), "Bearer ")
	parts := strings.Split(token, ".")
	if len(parts) < 3 {
		return nil, types.ParseError(StatusInvalidFormat, fmt.Errorf("token has %d segments, want 3", len(parts)))
	}
	if len(parts) > 3 {
		return nil, types.ParseError(StatusInvalidFormat, fmt.Errorf("token has %d segments; encrypted tokens are not supported", len(parts)))
	}

	header, err := decodeSegment(parts[0])
	if err != nil {
		return nil, types.ParseError(StatusInvalidToken, fmt.Errorf("header: %w", err))
	}
	payload, err := decodeSegment(parts[1])
	if err != nil {
		return nil, types.ParseError(StatusInvalidToken, fmt.Errorf("payload: %w", err))
	}

	claims := jwt.MapClaims{}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, claims)
	// An unrecognised alg still decodes; only the signature check is lost.
	if err != nil && (parsed == nil || !errors.Is(err, jwt.ErrTokenUnverifiable)) {
		return nil, types.ParseError(StatusInvalidToken, err)
	}

	out := &DecodedJWT{Header: header, Payload: payload, Status: StatusActive}
	if alg, ok := parsed.Header["alg"].(string); ok {
		out.Algorithm = alg
	}
	if sub, err := claims.GetSubject(); err == nil {
		out.Subject = sub
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.UTC()
	}
	if nbf, err := claims.GetNotBefore(); err == nil && nbf != nil {
		out.NotBefore = nbf.UTC()
		if now.Before(out.NotBefore) {
			out.Status = StatusNotYetValid
		}
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.UTC()
		if !now.Before(out.ExpiresAt) {
			out.Status = StatusExpired
		}
	}
	return out, nil
}

// decodeSegment base64url-decodes one segment and indents its JSON.
func decodeSegment(seg string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(seg, "="))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// JWTDecoder is the jwt-decoder widget.
type JWTDecoder struct {
	Now func() time.Time
}

// Run implements types.Widget.
func (d JWTDecoder) Run(_ context.Context, in types.Input) (types.Result, error) {
	// An empty token is reported as a malformed token.
	token := in.Get("token")
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	dec, err := DecodeJWT(token, now())
	if err != nil {
		return types.Result{}, err
	}

	res := types.Result{Output: dec.Payload, Status: dec.Status}
	res.Add("Header", dec.Header)
	if dec.Algorithm != "" {
		res.Add("Algorithm", dec.Algorithm)
	}
	if dec.Subject != "" {
		res.Add("Subject", dec.Subject)
	}
	for _, t := range []struct {
		label string
		at    time.Time
	}{{"Issued at", dec.IssuedAt}, {"Not before", dec.NotBefore}, {"Expires at", dec.ExpiresAt}} {
		if !t.at.IsZero() {
			res.Add(t.label, t.at.Format(time.RFC3339))
		}
	}
	res.Add("Signature", "not verified")
	return res, nil
}
