package middleware

import (
	"net/http"

	"github.com/ariebrainware/biosecure-portal/identity"
	"github.com/ariebrainware/biosecure-portal/predict"
	"github.com/ariebrainware/biosecure-portal/session"
	"github.com/ariebrainware/biosecure-portal/store"
	"github.com/ariebrainware/biosecure-portal/translate"
	"github.com/gin-gonic/gin"
)

// Context keys for the collaborators injected into every request.
const (
	StoreKey      = "store"
	SessionsKey   = "sessions"
	PredictorKey  = "predictor"
	IdentityKey   = "identity"
	TranslatorKey = "translator"
)

// Dependencies are the long-lived collaborators opened in main.
type Dependencies struct {
	Store      store.Store
	Sessions   *session.Manager
	Predictor  predict.Predictor
	Identity   identity.Gateway
	Translator *translate.Service
}

// CORSMiddleware configures CORS headers for incoming requests.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, session-token")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "session-token")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		c.Writer.Header().Set("Content-Type", "application/json")

		// For preflight requests, respond with 204 and abort further processing.
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Inject stores the collaborators in the gin context so handlers can reach them.
func Inject(deps Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(StoreKey, deps.Store)
		c.Set(SessionsKey, deps.Sessions)
		c.Set(PredictorKey, deps.Predictor)
		c.Set(IdentityKey, deps.Identity)
		c.Set(TranslatorKey, deps.Translator)
		c.Next()
	}
}

// GetStore retrieves the record store from the gin context.
func GetStore(c *gin.Context) (store.Store, bool) {
	s, ok := c.Get(StoreKey)
	if !ok {
		return nil, false
	}
	st, ok := s.(store.Store)
	return st, ok && st != nil
}

func GetSessions(c *gin.Context) (*session.Manager, bool) {
	v, ok := c.Get(SessionsKey)
	if !ok {
		return nil, false
	}
	m, ok := v.(*session.Manager)
	return m, ok && m != nil
}

func GetPredictor(c *gin.Context) (predict.Predictor, bool) {
	v, ok := c.Get(PredictorKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(predict.Predictor)
	return p, ok && p != nil
}

// GetIdentity falls back to the disabled gateway so registration always proceeds.
func GetIdentity(c *gin.Context) identity.Gateway {
	if v, ok := c.Get(IdentityKey); ok {
		if g, ok := v.(identity.Gateway); ok && g != nil {
			return g
		}
	}
	return identity.Disabled{}
}

// GetTranslator may return nil, which translates nothing.
func GetTranslator(c *gin.Context) *translate.Service {
	v, ok := c.Get(TranslatorKey)
	if !ok {
		return nil
	}
	t, _ := v.(*translate.Service)
	return t
}
