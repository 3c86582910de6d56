package oauth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
	ggoogle "golang.org/x/oauth2/google"
)

const googleJWKSURL = "https://www.googleapis.com/oauth2/v3/certs"

// Google verifies Google-issued ID tokens and runs the auth-code flow.
// ID tokens are only trusted after the RS256 signature (against Google's
// published JWKS), issuer, audience and expiry all check out.
type Google struct {
	cfg *oauth2.Config
	aud string

	// JWKSURL is overridable for tests.
	JWKSURL string
	ttl     time.Duration
	mu      sync.RWMutex
	keys    map[string]*rsa.PublicKey
	expAt   time.Time
	http    *http.Client
}

func NewGoogle(clientID, clientSecret, redirectURL string) *Google {
	return &Google{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     ggoogle.Endpoint,
		},
		aud:     clientID,
		JWKSURL: googleJWKSURL,
		ttl:     time.Hour,
		keys:    make(map[string]*rsa.PublicKey),
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (g *Google) AuthURL(state string) string {
	return g.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange swaps an auth code for tokens and returns the raw ID token.
func (g *Google) Exchange(ctx context.Context, code string) (string, error) {
	tok, err := g.cfg.Exchange(ctx, code)
	if err != nil {
		return "", err
	}
	raw, ok := tok.Extra("id_token").(string)
	if !ok || raw == "" {
		return "", errors.New("no id_token in exchange response")
	}
	return raw, nil
}

type User struct {
	Sub           string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

type idClaims struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	jwt.RegisteredClaims
}

// VerifyIDToken checks signature, issuer, audience and expiry before trusting
// the embedded claims.
func (g *Google) VerifyIDToken(ctx context.Context, raw string) (*User, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"RS256"}))
	unverified, parts, err := parser.ParseUnverified(raw, jwt.MapClaims{})
	if err != nil || len(parts) != 3 {
		return nil, errors.New("malformed id token")
	}
	kid, _ := unverified.Header["kid"].(string)
	if kid == "" {
		return nil, errors.New("id token has no kid")
	}
	pub, err := g.getKey(ctx, kid)
	if err != nil {
		return nil, err
	}

	claims := &idClaims{}
	// exp/iat are enforced by the parser; iss and aud are checked below.
	_, err = jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return pub, nil
	}, jwt.WithValidMethods([]string{"RS256"}))
	if err != nil {
		return nil, fmt.Errorf("verify id_token: %w", err)
	}

	if iss := claims.Issuer; iss != "https://accounts.google.com" && iss != "accounts.google.com" {
		return nil, errors.New("bad issuer")
	}
	if !contains(claims.Audience, g.aud) {
		return nil, errors.New("bad audience")
	}
	if claims.Email == "" || claims.Subject == "" {
		return nil, errors.New("missing email/sub claims")
	}
	return &User{
		Sub:           claims.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		Name:          claims.Name,
		Picture:       claims.Picture,
	}, nil
}

func contains(aud jwt.ClaimStrings, want string) bool {
	for _, a := range aud {
		if a == want {
			return true
		}
	}
	return false
}

type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	N   string `json:"n"`
	E   string `json:"e"`
}
type jwks struct {
	Keys []jwk `json:"keys"`
}

func (g *Google) refresh(ctx context.Context) error {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, g.JWKSURL, nil)
	resp, err := g.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var doc jwks
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return err
	}
	tmp := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kty != "RSA" {
			continue
		}
		nb, err := base64.RawURLEncoding.DecodeString(k.N)
		if err != nil {
			continue
		}
		eb, err := base64.RawURLEncoding.DecodeString(k.E)
		if err != nil || len(eb) == 0 {
			continue
		}
		e := 0
		for _, b := range eb {
			e = e<<8 + int(b)
		}
		tmp[k.Kid] = &rsa.PublicKey{N: new(big.Int).SetBytes(nb), E: e}
	}
	g.mu.Lock()
	g.keys = tmp
	g.expAt = time.Now().Add(g.ttl)
	g.mu.Unlock()
	return nil
}

func (g *Google) getKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	g.mu.RLock()
	if pk, ok := g.keys[kid]; ok && time.Now().Before(g.expAt) {
		g.mu.RUnlock()
		return pk, nil
	}
	g.mu.RUnlock()

	if err := g.refresh(ctx); err != nil {
		return nil, err
	}
	g.mu.RLock()
	defer g.mu.RUnlock()
	if pk, ok := g.keys[kid]; ok {
		return pk, nil
	}
	return nil, errors.New("kid not found in JWKS")
}
