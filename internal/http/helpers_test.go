package http_test

import (
	"bytes"
	"context"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/TejasJagadale/backendofficial/internal/domain"
	"github.com/TejasJagadale/backendofficial/internal/fuel"
	httpapi "github.com/TejasJagadale/backendofficial/internal/http"
	"github.com/TejasJagadale/backendofficial/internal/log"
	"github.com/TejasJagadale/backendofficial/internal/mail"
	"github.com/TejasJagadale/backendofficial/internal/oauth"
	"github.com/TejasJagadale/backendofficial/internal/queue"
	"github.com/TejasJagadale/backendofficial/internal/repo"
)

type testEnv struct {
	T       *testing.T
	Ctx     context.Context
	Mongo   *mongodb.MongoDBContainer
	Store   *repo.Store
	Handler *httpapi.Handler
	Router  *gin.Engine
	FuelAPI *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	mc, err := mongodb.RunContainer(ctx,
		testcontainers.WithImage("mongo:6"),
	)
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

	store, err := repo.NewStore(ctx, uri, "content_test")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatal(err)
	}

	// the provider stub answers with an HTML error page so every fetch fails
	// fast and the service falls back to mock data
	fuelAPI := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>error</html>"))
	}))
	client := fuel.NewClient("stub.invalid", "")
	client.BaseURL = fuelAPI.URL
	fuelSvc := fuel.NewService(store, client, queue.NewNoop())

	h := httpapi.NewHandler(store, "test-secret", mail.LogSender{}, queue.NewNoop(),
		oauth.NewGoogle("", "", ""), fuelSvc, "http://localhost:3000", true)

	gin.SetMode(gin.TestMode)
	r := httpapi.NewRouter(h, httpapi.NewMemoryLimiter(10000, time.Minute))

	return &testEnv{T: t, Ctx: ctx, Mongo: mc, Store: store, Handler: h, Router: r, FuelAPI: fuelAPI}
}

func (e *testEnv) Close() {
	if e.FuelAPI != nil {
		e.FuelAPI.Close()
	}
	if e.Store != nil {
		_ = e.Store.Close(e.Ctx)
	}
	if e.Mongo != nil {
		_ = e.Mongo.Terminate(e.Ctx)
	}
}

// do runs one request through the router.
func (e *testEnv) do(method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	e.T.Helper()
	w := httptest.NewRecorder()
	var req *stdhttp.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	e.Router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) seedArticle(title string) primitive.ObjectID {
	e.T.Helper()
	a := &domain.Article{Title: title, Category: "Technology"}
	if err := e.Store.CreateArticle(e.Ctx, a); err != nil {
		e.T.Fatalf("seed article: %v", err)
	}
	return a.ID
}
