package endpoint

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ariebrainware/biosecure-portal/middleware"
	"github.com/ariebrainware/biosecure-portal/model"
	"github.com/ariebrainware/biosecure-portal/session"
	"github.com/ariebrainware/biosecure-portal/store"
	"github.com/ariebrainware/biosecure-portal/translate"
	"github.com/ariebrainware/biosecure-portal/util"
	"github.com/gin-gonic/gin"
)

// Messages shown to users. They are translated into the session language before sending.
const (
	msgInvalidPhone       = "❌ Invalid number. Please enter a 10-digit phone number."
	msgInvalidFarmerPhone = "❌ Invalid phone number."
	msgUserNotFound       = "User not found. Please Signup first."
	msgIdentitySkipped    = "Skipping identity account creation (demo mode)."
	msgModelError         = "Model Error"
	msgInvalidPayload     = "Invalid request payload"
	msgStoreUnavailable   = "Database connection not available"
)

// translateMsg renders text in the language of the request's session.
// Requests without a session get the text unchanged.
func translateMsg(c *gin.Context, text string) string {
	s, ok := middleware.GetSession(c)
	if !ok {
		return text
	}
	res := middleware.GetTranslator(c).Translate(c.Request.Context(), s, text, s.Language)
	if res.Err != nil && !errors.Is(res.Err, translate.ErrNoBackend) {
		util.Logger.Debug().Err(res.Err).Str("lang", s.Language).Msg("translation failed, using original text")
	}
	return res.Text
}

func clientInfoFrom(c *gin.Context) util.ClientInfo {
	return util.ClientInfo{IP: c.ClientIP(), Agent: c.Request.UserAgent()}
}

func bindJSONOrRespond(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: translateMsg(c, msgInvalidPayload), Err: err})
		return false
	}
	return true
}

func getStoreOrRespond(c *gin.Context) (store.Store, bool) {
	st, ok := middleware.GetStore(c)
	if !ok {
		util.CallServerError(c, util.APIErrorParams{Msg: translateMsg(c, msgStoreUnavailable), Err: fmt.Errorf("store is nil")})
		return nil, false
	}
	return st, true
}

// getSessionOrRespond is for handlers behind a session gate; the gate already rejected
// requests without one, so a miss here is a routing mistake.
func getSessionOrRespond(c *gin.Context) (*session.State, bool) {
	s, ok := middleware.GetSession(c)
	if !ok {
		util.CallUserNotAuthorized(c, util.APIErrorParams{
			Msg: "Session expired or invalid. Please start a new session.",
			Err: session.ErrInvalidToken,
		})
		return nil, false
	}
	return s, true
}

// respondValidationError maps model validation errors to a translated 400.
func respondValidationError(c *gin.Context, err error) {
	var msg string
	switch {
	case errors.Is(err, model.ErrInvalidPhone):
		msg = msgInvalidPhone
	case errors.Is(err, model.ErrMissingField):
		msg = "Please fill in all required fields."
	case errors.Is(err, model.ErrOutOfRange):
		msg = fmt.Sprintf("Number of Days Not Well must be between %d and %d.", model.MinDaysNotWell, model.MaxDaysNotWell)
	default:
		msg = msgInvalidPayload
	}
	util.CallUserError(c, util.APIErrorParams{Msg: translateMsg(c, msg), Err: err})
}

// respondStoreError maps store sentinel errors to status codes.
func respondStoreError(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		util.CallErrorNotFound(c, util.APIErrorParams{Msg: translateMsg(c, msg), Err: err})
	case errors.Is(err, store.ErrDuplicate):
		util.CallConflict(c, util.APIErrorParams{Msg: translateMsg(c, "Phone number already registered. Please login."), Err: err})
	case errors.Is(err, model.ErrInvalidPhone), errors.Is(err, model.ErrMissingField), errors.Is(err, model.ErrOutOfRange):
		respondValidationError(c, err)
	default:
		util.Logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("store operation failed")
		util.CallServerError(c, util.APIErrorParams{Msg: translateMsg(c, msg), Err: err})
	}
}

// requireDistrict reads the district query parameter, which must be one of model.Districts.
func requireDistrict(c *gin.Context) (string, bool) {
	district := strings.TrimSpace(c.Query("district"))
	if !model.IsDistrict(district) {
		util.CallUserError(c, util.APIErrorParams{
			Msg: translateMsg(c, "Please select a valid district."),
			Err: fmt.Errorf("unknown district %q", district),
		})
		return "", false
	}
	return district, true
}
