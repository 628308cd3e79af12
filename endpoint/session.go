package endpoint

import (
	"fmt"
	"strings"

	"github.com/ariebrainware/biosecure-portal/middleware"
	"github.com/ariebrainware/biosecure-portal/model"
	"github.com/ariebrainware/biosecure-portal/session"
	"github.com/ariebrainware/biosecure-portal/util"
	"github.com/gin-gonic/gin"
)

// SessionSummary describes a session without its translation cache.
type SessionSummary struct {
	ID            string                `json:"id" example:"5b9d0c1e-8a0b-4c61-9a53-2f6d9f1e7a10"`
	Language      string                `json:"language" example:"en"`
	Role          model.Role            `json:"role" example:"Vet Shop"`
	Authenticated bool                  `json:"authenticated" example:"true"`
	Account       interface{}           `json:"account,omitempty"`
	CurrentFarmer *model.FarmerSnapshot `json:"current_farmer,omitempty"`
}

func summarize(s *session.State) SessionSummary {
	return SessionSummary{
		ID:            s.ID,
		Language:      s.Language,
		Role:          s.Role,
		Authenticated: s.Authenticated(),
		Account:       s.Account(),
		CurrentFarmer: s.CurrentFarmer,
	}
}

type StartSessionResponse struct {
	Token   string         `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Session SessionSummary `json:"session"`
}

// StartSession godoc
// @Summary      Start a session
// @Description  Create an anonymous session in the default language. Send the returned token in the session-token header on later requests.
// @Tags         Session
// @Produce      json
// @Success      200 {object} util.APIResponse{data=StartSessionResponse} "Session started"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /session [post]
func StartSession(c *gin.Context) {
	manager, ok := middleware.GetSessions(c)
	if !ok {
		util.CallServerError(c, util.APIErrorParams{Msg: "Session store not available", Err: fmt.Errorf("session manager is nil")})
		return
	}

	s, token, err := manager.Start(c.Request.Context())
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to start session", Err: err})
		return
	}
	middleware.SetSession(c, s)

	c.Header(middleware.SessionTokenHeader, token)
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Session started",
		Data: StartSessionResponse{Token: token, Session: summarize(s)},
	})
}

// EndSession godoc
// @Summary      End the session
// @Description  Delete the session, including its language and translation cache
// @Tags         Session
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse "Session ended"
// @Failure      401 {object} util.APIResponse "Invalid session token"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /session [delete]
func EndSession(c *gin.Context) {
	s, ok := getSessionOrRespond(c)
	if !ok {
		return
	}
	manager, ok := middleware.GetSessions(c)
	if !ok {
		util.CallServerError(c, util.APIErrorParams{Msg: "Session store not available", Err: fmt.Errorf("session manager is nil")})
		return
	}

	msg := translateMsg(c, "Session ended")
	if err := manager.End(c.Request.Context(), s); err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to end session", Err: err})
		return
	}
	middleware.DiscardSession(c)

	util.CallSuccessOK(c, util.APISuccessParams{Msg: msg})
}

// GetSession godoc
// @Summary      Show the session
// @Description  Language, role, logged in account and current farmer of the session
// @Tags         Session
// @Produce      json
// @Security     SessionToken
// @Success      200 {object} util.APIResponse{data=SessionSummary} "Session retrieved"
// @Failure      401 {object} util.APIResponse "Invalid session token"
// @Router       /session [get]
func GetSession(c *gin.Context) {
	s, ok := getSessionOrRespond(c)
	if !ok {
		return
	}
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  translateMsg(c, "Session retrieved"),
		Data: summarize(s),
	})
}

type SetLanguageRequest struct {
	Language string `json:"language" example:"ta"`
}

// SetLanguage godoc
// @Summary      Change the display language
// @Description  Accepts a language code (en, ta, hi) or its display name. Cached translations are kept.
// @Tags         Session
// @Accept       json
// @Produce      json
// @Security     SessionToken
// @Param        request body SetLanguageRequest true "Language"
// @Success      200 {object} util.APIResponse{data=SessionSummary} "Language updated"
// @Failure      400 {object} util.APIResponse "Unknown language"
// @Failure      401 {object} util.APIResponse "Invalid session token"
// @Router       /session/language [put]
func SetLanguage(c *gin.Context) {
	s, ok := getSessionOrRespond(c)
	if !ok {
		return
	}
	var req SetLanguageRequest
	if !bindJSONOrRespond(c, &req) {
		return
	}

	code, ok := model.LookupLanguage(strings.TrimSpace(req.Language))
	if !ok {
		util.CallUserError(c, util.APIErrorParams{
			Msg: translateMsg(c, "Select Language"),
			Err: fmt.Errorf("unknown language %q", req.Language),
		})
		return
	}
	s.SetLanguage(code)

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  translateMsg(c, "Language updated"),
		Data: summarize(s),
	})
}

// ListLanguages godoc
// @Summary      List display languages
// @Tags         Reference
// @Produce      json
// @Success      200 {object} util.APIResponse{data=[]model.Language} "Languages retrieved"
// @Router       /languages [get]
func ListLanguages(c *gin.Context) {
	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  translateMsg(c, "Languages retrieved"),
		Data: model.Languages,
	})
}
