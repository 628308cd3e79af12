package middleware

import (
	"errors"

	"github.com/ariebrainware/biosecure-portal/model"
	"github.com/ariebrainware/biosecure-portal/session"
	"github.com/ariebrainware/biosecure-portal/util"
	"github.com/gin-gonic/gin"
)

const (
	// SessionTokenHeader carries the token returned by POST /session.
	SessionTokenHeader = "session-token"
	SessionKey         = "session"
)

// SessionMiddleware loads the session named by the session-token header, when there is one,
// and saves it after the handler if it changed. Requests without a valid token continue
// without a session; the gates below decide whether that is acceptable.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(SessionTokenHeader)
		manager, ok := GetSessions(c)
		if token == "" || !ok {
			c.Next()
			return
		}

		state, err := manager.Resolve(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) && !errors.Is(err, session.ErrInvalidToken) {
				util.Logger.Error().Err(err).Msg("failed to load session")
			}
			c.Next()
			return
		}
		c.Set(SessionKey, state)

		c.Next()

		current, ok := GetSession(c)
		if !ok {
			return
		}
		if err := manager.Save(c.Request.Context(), current); err != nil {
			util.Logger.Error().Err(err).Str("session", current.ID).Msg("failed to save session")
		}
	}
}

// GetSession retrieves the session loaded for this request.
func GetSession(c *gin.Context) (*session.State, bool) {
	v, ok := c.Get(SessionKey)
	if !ok {
		return nil, false
	}
	s, ok := v.(*session.State)
	return s, ok && s != nil
}

// SetSession attaches a freshly started session to the request.
func SetSession(c *gin.Context, s *session.State) {
	c.Set(SessionKey, s)
}

// DiscardSession detaches the session so it is not saved after the handler.
func DiscardSession(c *gin.Context) {
	c.Set(SessionKey, (*session.State)(nil))
}

// RequireSession rejects requests without a valid session token.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetSession(c); !ok {
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Session expired or invalid. Please start a new session.",
				Err: session.ErrInvalidToken,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAnonymous rejects sessions that are already logged in.
func RequireAnonymous() gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := GetSession(c)
		if !ok {
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Session expired or invalid. Please start a new session.",
				Err: session.ErrInvalidToken,
			})
			c.Abort()
			return
		}
		if s.Authenticated() {
			util.CallForbidden(c, util.APIErrorParams{
				Msg: "Already logged in. Please logout first.",
				Err: errors.New("session already authenticated"),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAuthenticated rejects anonymous sessions.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := GetSession(c)
		if !ok || !s.Authenticated() {
			util.LogUnauthorizedAccess(c.Request.Context(), "", model.RoleNone, c.ClientIP(), c.Request.URL.Path, "not logged in")
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Please login first.",
				Err: errors.New("not logged in"),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole allows only sessions logged in with role. It implies RequireAuthenticated.
func RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := GetSession(c)
		if !ok || !s.Authenticated() {
			util.LogUnauthorizedAccess(c.Request.Context(), "", model.RoleNone, c.ClientIP(), c.Request.URL.Path, "not logged in")
			util.CallUserNotAuthorized(c, util.APIErrorParams{
				Msg: "Please login first.",
				Err: errors.New("not logged in"),
			})
			c.Abort()
			return
		}
		if s.Role != role {
			util.LogUnauthorizedAccess(c.Request.Context(), s.Phone(), s.Role, c.ClientIP(), c.Request.URL.Path, "requires "+string(role))
			util.CallForbidden(c, util.APIErrorParams{
				Msg: "This page is only available to " + string(role) + " accounts.",
				Err: errors.New("forbidden role"),
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
