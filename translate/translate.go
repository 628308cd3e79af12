// Package translate renders user-facing text in the session language.
package translate

import (
	"context"

	"github.com/ariebrainware/biosecure-portal/model"
)

// Backend translates text from an auto-detected source language.
type Backend interface {
	Translate(ctx context.Context, text, target string) (string, error)
}

// Cache holds translations for one session. It is never invalidated while the session lives.
type Cache interface {
	Lookup(text, lang string) (string, bool)
	Store(text, lang, translated string)
}

// Result is the outcome of one translation. Text is always usable: on failure it is the input.
type Result struct {
	Text   string
	Cached bool
	Err    error
}

// Service wraps a backend with the per-session cache rules.
type Service struct {
	backend Backend
}

func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

// Translate returns text in lang. The default language short-circuits without touching the
// backend; a backend failure returns the original text and caches nothing.
func (s *Service) Translate(ctx context.Context, cache Cache, text, lang string) Result {
	if lang == "" || lang == model.DefaultLanguage || text == "" {
		return Result{Text: text}
	}
	if cache != nil {
		if v, ok := cache.Lookup(text, lang); ok {
			return Result{Text: v, Cached: true}
		}
	}
	if s == nil || s.backend == nil {
		return Result{Text: text, Err: ErrNoBackend}
	}

	translated, err := s.backend.Translate(ctx, text, lang)
	if err != nil {
		return Result{Text: text, Err: err}
	}
	if cache != nil {
		cache.Store(text, lang, translated)
	}
	return Result{Text: translated}
}

// MapCache is a plain in-memory Cache.
type MapCache map[string]string

func CacheKey(text, lang string) string { return lang + "\x00" + text }

func (m MapCache) Lookup(text, lang string) (string, bool) {
	v, ok := m[CacheKey(text, lang)]
	return v, ok
}

func (m MapCache) Store(text, lang, translated string) {
	m[CacheKey(text, lang)] = translated
}
