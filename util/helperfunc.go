package util

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Msg     string      `json:"msg"`
	Data    interface{} `json:"data"`
}

type APIErrorParams struct {
	Msg string
	Err error
}

type APISuccessParams struct {
	Msg  string
	Data interface{}
}

func callError(c *gin.Context, status int, params APIErrorParams) {
	errText := ""
	if params.Err != nil {
		errText = params.Err.Error()
	}
	c.JSON(status, APIResponse{
		Success: false,
		Error:   errText,
		Msg:     params.Msg,
		Data:    map[string]interface{}{},
	})
}

// CallErrorNotFound is for return API response not found
func CallErrorNotFound(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusNotFound, params)
}

// CallUserError is for return error from user side
func CallUserError(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusBadRequest, params)
}

// CallConflict is for return API response when the record already exists
func CallConflict(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusConflict, params)
}

// CallServerError is for return API response server error
func CallServerError(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusInternalServerError, params)
}

// CallServiceUnavailable is for return API response when a collaborator (model, database) cannot serve the request
func CallServiceUnavailable(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusServiceUnavailable, params)
}

// CallSuccessOK is for return API response with status code 200, you need to specify msg, and data as function parameter
func CallSuccessOK(c *gin.Context, params APISuccessParams) {
	response := APIResponse{
		Success: true,
		Error:   "",
		Msg:     params.Msg,
		Data:    params.Data,
	}
	c.JSON(http.StatusOK, response)
}

// CallUserNotAuthorized is for return API response with status code 401
func CallUserNotAuthorized(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusUnauthorized, params)
}

// CallForbidden is for return API response with status code 403 when the role may not use the route
func CallForbidden(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusForbidden, params)
}

// CallTooManyRequests is for return API response with status code 429 when a client is rate limited
func CallTooManyRequests(c *gin.Context, params APIErrorParams) {
	callError(c, http.StatusTooManyRequests, params)
}

// NormalizeName normalizes a name by trimming leading/trailing whitespace
// and collapsing multiple internal spaces into single spaces.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	return strings.Join(strings.Fields(name), " ")
}
