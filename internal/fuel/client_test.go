package fuel_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/TejasJagadale/backendofficial/internal/fuel"
)

func stubClient(srv *httptest.Server) *fuel.Client {
	c := fuel.NewClient("stub.invalid", "test-key")
	c.BaseURL = srv.URL
	c.HTTP = srv.Client()
	return c
}

func Test_FetchCity_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/tamil-nadu/chennai") {
			t.Errorf("path=%s", r.URL.Path)
		}
		if r.Header.Get("x-rapidapi-key") != "test-key" {
			t.Error("missing api key header")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"cityName":"Chennai","fuel":{"petrol":{"retailPrice":100.85},"diesel":{"retailPrice":92.44},"cng":{"retailPrice":85.50}}}`))
	}))
	defer srv.Close()

	cp, err := stubClient(srv).FetchCity(context.Background(), "Chennai")
	if err != nil {
		t.Fatal(err)
	}
	if cp.City != "Chennai" || cp.Petrol != "100.85" || cp.Diesel != "92.44" || cp.CNG != "85.50" {
		t.Fatalf("parsed: %+v", cp)
	}
	if cp.LastUpdated.IsZero() {
		t.Fatal("LastUpdated not set")
	}
}

func Test_FetchCity_ProviderFailures(t *testing.T) {
	cases := []struct {
		name        string
		contentType string
		body        string
	}{
		{"html content type", "text/html", "<html>rate limited</html>"},
		{"html body with json content type", "application/json", "<!DOCTYPE html><html></html>"},
		{"message field", "application/json", `{"message":"You are not subscribed to this API."}`},
		{"no fuel data", "application/json", `{"cityName":"Chennai"}`},
		{"broken json", "application/json", `{"cityName":`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tc.contentType)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			if _, err := stubClient(srv).FetchCity(context.Background(), "Chennai"); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
