package oauth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/TejasJagadale/backendofficial/internal/oauth"
)

const testClientID = "client-id.apps.googleusercontent.com"

func genRSA(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	k, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	return k
}

// newJWKSServer publishes one RSA public key under kid, the way Google's
// oauth2/v3/certs endpoint does.
func newJWKSServer(t *testing.T, kid string, pub *rsa.PublicKey) *httptest.Server {
	t.Helper()
	doc := map[string]any{
		"keys": []map[string]string{{
			"kty": "RSA",
			"kid": kid,
			"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		}},
	}
	body, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}))
}

func mintIDToken(t *testing.T, key *rsa.PrivateKey, kid string, mutate func(jwt.MapClaims)) string {
	t.Helper()
	claims := jwt.MapClaims{
		"iss":            "https://accounts.google.com",
		"aud":            testClientID,
		"sub":            "g-sub-1",
		"email":          "g@example.com",
		"email_verified": true,
		"name":           "G User",
		"picture":        "https://example.com/p.png",
		"iat":            time.Now().Add(-time.Minute).Unix(),
		"exp":            time.Now().Add(time.Hour).Unix(),
	}
	if mutate != nil {
		mutate(claims)
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = kid
	signed, err := tok.SignedString(key)
	if err != nil {
		t.Fatal(err)
	}
	return signed
}

func TestVerifyIDToken_Valid(t *testing.T) {
	key := genRSA(t)
	srv := newJWKSServer(t, "k1", &key.PublicKey)
	defer srv.Close()

	g := oauth.NewGoogle(testClientID, "", "")
	g.JWKSURL = srv.URL

	u, err := g.VerifyIDToken(context.Background(), mintIDToken(t, key, "k1", nil))
	if err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}
	if u.Sub != "g-sub-1" || u.Email != "g@example.com" || u.Name != "G User" {
		t.Fatalf("claims: %+v", u)
	}

	// the bare issuer form Google also uses
	raw := mintIDToken(t, key, "k1", func(c jwt.MapClaims) { c["iss"] = "accounts.google.com" })
	if _, err := g.VerifyIDToken(context.Background(), raw); err != nil {
		t.Fatalf("bare issuer rejected: %v", err)
	}
}

func TestVerifyIDToken_Rejections(t *testing.T) {
	key := genRSA(t)
	otherKey := genRSA(t)
	srv := newJWKSServer(t, "k1", &key.PublicKey)
	defer srv.Close()

	g := oauth.NewGoogle(testClientID, "", "")
	g.JWKSURL = srv.URL

	cases := []struct {
		name string
		raw  string
	}{
		{"expired", mintIDToken(t, key, "k1", func(c jwt.MapClaims) {
			c["exp"] = time.Now().Add(-time.Hour).Unix()
		})},
		{"wrong audience", mintIDToken(t, key, "k1", func(c jwt.MapClaims) {
			c["aud"] = "someone-else"
		})},
		{"wrong issuer", mintIDToken(t, key, "k1", func(c jwt.MapClaims) {
			c["iss"] = "https://evil.example.com"
		})},
		{"missing email", mintIDToken(t, key, "k1", func(c jwt.MapClaims) {
			delete(c, "email")
		})},
		{"signed with another key", mintIDToken(t, otherKey, "k1", nil)},
		{"unknown kid", mintIDToken(t, key, "k2", nil)},
		{"not a jwt", "garbage"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := g.VerifyIDToken(context.Background(), tc.raw); err == nil {
				t.Fatal("token accepted")
			}
		})
	}
}
