package endpoint_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/ariebrainware/biosecure-portal/config"
	"github.com/ariebrainware/biosecure-portal/endpoint"
	"github.com/ariebrainware/biosecure-portal/identity"
	"github.com/ariebrainware/biosecure-portal/middleware"
	"github.com/ariebrainware/biosecure-portal/predict"
	"github.com/ariebrainware/biosecure-portal/session"
	"github.com/ariebrainware/biosecure-portal/store"
	"github.com/ariebrainware/biosecure-portal/translate"
	"github.com/gin-gonic/gin"
)

// fakeIdentity records created accounts and can be told to fail.
type fakeIdentity struct {
	mu      sync.Mutex
	created []string
	fail    error
}

func (f *fakeIdentity) CreateAccount(_ context.Context, uid, _ string) identity.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return identity.Result{Err: f.fail}
	}
	f.created = append(f.created, uid)
	return identity.Result{OK: true}
}

func (f *fakeIdentity) VerifyAccount(context.Context, string, string) identity.Result {
	return identity.Result{OK: f.fail == nil, Err: f.fail}
}

func (f *fakeIdentity) Enabled() bool { return true }

// fakeTranslator prefixes text with the target language and counts calls per text.
type fakeTranslator struct {
	mu    sync.Mutex
	calls map[string]int
	fail  bool
}

func (f *fakeTranslator) Translate(_ context.Context, text, target string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[text]++
	if f.fail {
		return "", errors.New("translation backend offline")
	}
	return "[" + target + "] " + text, nil
}

func (f *fakeTranslator) count(text string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[text]
}

type testServer struct {
	router     *gin.Engine
	store      *store.GormStore
	identity   *fakeIdentity
	translator *fakeTranslator
}

type serverOpts struct {
	predictor predict.Predictor
	limiters  endpoint.Limiters
}

// setupTestServer wires the full router against an in-memory SQLite store, the test model
// artifacts and fake collaborators.
func setupTestServer(t *testing.T, opts serverOpts) *testServer {
	t.Helper()

	db, err := config.ConnectMySQL()
	if err != nil {
		t.Fatalf("failed to connect test DB: %v", err)
	}
	st := store.NewGorm(db)
	if err := st.Migrate(); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(context.Background()) })

	predictor := opts.predictor
	if predictor == nil {
		m, err := predict.Load("../predict/testdata")
		if err != nil {
			t.Fatalf("failed to load test model: %v", err)
		}
		predictor = m
	}

	ts := &testServer{
		store:      st,
		identity:   &fakeIdentity{},
		translator: &fakeTranslator{},
	}

	r := gin.New()
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.Inject(middleware.Dependencies{
		Store:      st,
		Sessions:   session.NewManager(session.NewMemoryStore()),
		Predictor:  predictor,
		Identity:   ts.identity,
		Translator: translate.NewService(ts.translator),
	}))
	r.Use(middleware.SessionMiddleware())
	endpoint.RegisterRoutes(r, opts.limiters)

	ts.router = r
	return ts
}

func isTranslated(s string) bool { return strings.HasPrefix(s, "[") }
