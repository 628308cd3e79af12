package endpoint_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ariebrainware/biosecure-portal/middleware"
)

type apiResp struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Msg     string          `json:"msg"`
	Data    json.RawMessage `json:"data"`
}

// requestParams groups HTTP request parameters to reduce function arguments
type requestParams struct {
	method string
	path   string
	token  string
	body   interface{}
}

// do executes a request against the test router and decodes the response envelope.
func (ts *testServer) do(t *testing.T, params requestParams) (*httptest.ResponseRecorder, apiResp) {
	t.Helper()

	var body []byte
	switch v := params.body.(type) {
	case nil:
	case string:
		body = []byte(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		body = b
	}

	req := httptest.NewRequest(params.method, params.path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if params.token != "" {
		req.Header.Set(middleware.SessionTokenHeader, params.token)
	}
	rr := httptest.NewRecorder()
	ts.router.ServeHTTP(rr, req)

	var resp apiResp
	if rr.Body.Len() > 0 {
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode %s %s response: %v\n%s", params.method, params.path, err, rr.Body.String())
		}
	}
	return rr, resp
}

// mustOK fails the test unless the request returned 200 with success=true, and decodes data into dst.
func (ts *testServer) mustOK(t *testing.T, params requestParams, dst interface{}) apiResp {
	t.Helper()
	rr, resp := ts.do(t, params)
	if rr.Code != http.StatusOK || !resp.Success {
		t.Fatalf("%s %s returned %d: %s", params.method, params.path, rr.Code, rr.Body.String())
	}
	if dst != nil {
		if err := json.Unmarshal(resp.Data, dst); err != nil {
			t.Fatalf("failed to decode %s %s data: %v", params.method, params.path, err)
		}
	}
	return resp
}

func (ts *testServer) startSession(t *testing.T) string {
	t.Helper()
	var data struct {
		Token string `json:"token"`
	}
	ts.mustOK(t, requestParams{method: http.MethodPost, path: "/session"}, &data)
	if data.Token == "" {
		t.Fatalf("session start returned empty token")
	}
	return data.Token
}

func shopSignup(phone, location string) map[string]string {
	return map[string]string{
		"shop_name":  "Sri Murugan Vet Store",
		"owner_name": "Karthik",
		"phone":      phone,
		"address":    "12 Market Road",
		"location":   location,
	}
}

func doctorSignup(phone, location string) map[string]string {
	return map[string]string{
		"hospital_name": "Salem Veterinary Hospital",
		"doctor_name":   "Dr. Priya",
		"phone":         phone,
		"address":       "4 Hospital Street",
		"location":      location,
	}
}

// registeredShop starts a session and signs a vet shop up in it.
func (ts *testServer) registeredShop(t *testing.T, phone, location string) string {
	t.Helper()
	token := ts.startSession(t)
	ts.mustOK(t, requestParams{method: http.MethodPost, path: "/signup/shop", token: token, body: shopSignup(phone, location)}, nil)
	return token
}

func (ts *testServer) registeredDoctor(t *testing.T, phone, location string) string {
	t.Helper()
	token := ts.startSession(t)
	ts.mustOK(t, requestParams{method: http.MethodPost, path: "/signup/doctor", token: token, body: doctorSignup(phone, location)}, nil)
	return token
}
