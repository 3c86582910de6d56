package fuel_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"

	"github.com/TejasJagadale/backendofficial/internal/fuel"
	"github.com/TejasJagadale/backendofficial/internal/log"
	"github.com/TejasJagadale/backendofficial/internal/queue"
	"github.com/TejasJagadale/backendofficial/internal/repo"
)

func newFuelStore(t *testing.T) (*repo.Store, func()) {
	t.Helper()
	ctx := context.Background()

	mc, err := mongodb.RunContainer(ctx, testcontainers.WithImage("mongo:6"))
	if err != nil {
		t.Fatalf("mongo container: %v", err)
	}
	uri, err := mc.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("mongo uri: %v", err)
	}
	if _, err := log.Init(false); err != nil {
		t.Fatalf("log init: %v", err)
	}
	store, err := repo.NewStore(ctx, uri, "fuel_test")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatal(err)
	}
	return store, func() {
		_ = store.Close(ctx)
		_ = mc.Terminate(ctx)
	}
}

// chennaiOnlyProvider answers with real JSON for chennai and an HTML error
// page for every other city.
func chennaiOnlyProvider() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/chennai") {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"cityName":"Chennai","fuel":{"petrol":{"retailPrice":101.11},"diesel":{"retailPrice":93.33}}}`))
			return
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>error</html>"))
	}))
}

func newService(store *repo.Store, srv *httptest.Server) *fuel.Service {
	client := fuel.NewClient("stub.invalid", "")
	client.BaseURL = srv.URL
	client.HTTP = srv.Client()
	return fuel.NewService(store, client, queue.NewNoop())
}

func Test_RunUpdate_PerCityFallback(t *testing.T) {
	store, done := newFuelStore(t)
	defer done()
	srv := chennaiOnlyProvider()
	defer srv.Close()
	svc := newService(store, srv)

	res := svc.RunUpdate(context.Background())
	if !res.Success || res.Cities != len(fuel.TargetCities) {
		t.Fatalf("result: %+v", res)
	}

	fp, err := svc.StoredToday(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if fp == nil || len(fp.Cities) != len(fuel.TargetCities) {
		t.Fatalf("stored: %+v", fp)
	}
	for _, c := range fp.Cities {
		switch c.City {
		case "Chennai":
			if c.Petrol != "101.11" {
				t.Fatalf("chennai not from provider: %+v", c)
			}
		case "Coimbatore":
			if c.Petrol != "102.89" {
				t.Fatalf("coimbatore not from mock: %+v", c)
			}
		}
		if c.LastUpdated.IsZero() {
			t.Fatalf("%s missing LastUpdated", c.City)
		}
	}
}

func Test_RunUpdate_NothingCollected(t *testing.T) {
	store, done := newFuelStore(t)
	defer done()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>down</html>"))
	}))
	defer srv.Close()

	svc := newService(store, srv)
	svc.Mock = nil // no fallback either

	res := svc.RunUpdate(context.Background())
	if res.Success {
		t.Fatalf("expected failure: %+v", res)
	}
	// a failed run must not leave a partial document behind
	fp, err := svc.StoredToday(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if fp != nil {
		t.Fatalf("stored despite failure: %+v", fp)
	}
}

func Test_RunUpdate_RerunOverwrites(t *testing.T) {
	store, done := newFuelStore(t)
	defer done()
	srv := chennaiOnlyProvider()
	defer srv.Close()
	svc := newService(store, srv)

	if res := svc.RunUpdate(context.Background()); !res.Success {
		t.Fatalf("run1: %+v", res)
	}
	if res := svc.RunUpdate(context.Background()); !res.Success {
		t.Fatalf("run2: %+v", res)
	}

	// same (date, state) key, still one snapshot with one entry per city
	fp, err := svc.StoredToday(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(fp.Cities) != len(fuel.TargetCities) {
		t.Fatalf("cities after rerun: %d", len(fp.Cities))
	}
}

func Test_Today_SourceSwitches(t *testing.T) {
	store, done := newFuelStore(t)
	defer done()
	srv := chennaiOnlyProvider()
	defer srv.Close()
	svc := newService(store, srv)

	fp, source, err := svc.Today(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if source != fuel.SourceMock || len(fp.Cities) != len(fuel.TargetCities) {
		t.Fatalf("before run: source=%s cities=%d", source, len(fp.Cities))
	}

	if res := svc.RunUpdate(context.Background()); !res.Success {
		t.Fatalf("run: %+v", res)
	}

	if _, source, err = svc.Today(context.Background()); err != nil || source != fuel.SourceDatabase {
		t.Fatalf("after run: source=%s err=%v", source, err)
	}
}

func Test_CityToday(t *testing.T) {
	store, done := newFuelStore(t)
	defer done()
	srv := chennaiOnlyProvider()
	defer srv.Close()
	svc := newService(store, srv)

	// nothing stored yet: chennai comes live from the provider and is persisted
	cp, source, ok, err := svc.CityToday(context.Background(), "chennai")
	if err != nil || !ok {
		t.Fatalf("chennai: ok=%v err=%v", ok, err)
	}
	if source != fuel.SourceAPI || cp.Petrol != "101.11" {
		t.Fatalf("chennai: source=%s %+v", source, cp)
	}

	// second lookup hits the persisted copy
	if _, source, _, _ = svc.CityToday(context.Background(), "Chennai"); source != fuel.SourceDatabase {
		t.Fatalf("persisted lookup: source=%s", source)
	}

	// provider fails for salem, mock steps in
	if _, source, ok, _ = svc.CityToday(context.Background(), "Salem"); !ok || source != fuel.SourceMock {
		t.Fatalf("salem: ok=%v source=%s", ok, source)
	}

	if !svc.IsTargetCity("madurai") || svc.IsTargetCity("Mumbai") {
		t.Fatal("target city check")
	}
}
