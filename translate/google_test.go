package translate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoogle_Translate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "ta", r.URL.Query().Get("tl"))
		assert.Equal(t, "auto", r.URL.Query().Get("sl"))
		assert.Equal(t, "Login successful!", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`[[["உள்நுழைவு ","Login ",null,null,1],["வெற்றி!","successful!",null,null,1]],null,"en"]`))
	}))
	defer srv.Close()

	out, err := NewGoogle(srv.URL).Translate(context.Background(), "Login successful!", "ta")
	assert.NoError(t, err)
	assert.Equal(t, "உள்நுழைவு வெற்றி!", out)
}

func TestGoogle_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewGoogle(srv.URL).Translate(context.Background(), "Home", "hi")
	assert.ErrorContains(t, err, "429")
}

func TestParseGoogleResponse(t *testing.T) {
	_, err := parseGoogleResponse([]byte(`not json`))
	assert.Error(t, err)

	_, err = parseGoogleResponse([]byte(`[]`))
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = parseGoogleResponse([]byte(`[[]]`))
	assert.ErrorIs(t, err, ErrEmptyResponse)

	out, err := parseGoogleResponse([]byte(`[[["होम","Home"]]]`))
	assert.NoError(t, err)
	assert.Equal(t, "होम", out)
}

func TestNewGoogle_DefaultEndpoint(t *testing.T) {
	assert.Equal(t, DefaultGoogleURL, NewGoogle("").endpoint)
}
