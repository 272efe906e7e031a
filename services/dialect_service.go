package services

import (
	"context"
	"sync"
	"sync/atomic"

	"pragati/models"

	"github.com/rs/zerolog"
)

// BaseDialect is the source language of all generated content.
const BaseDialect = "eng_Latn"

// Fallback list used when the language endpoint is unreachable.
var defaultDialects = []models.Dialect{
	{Code: "eng_Latn", Name: "English"},
	{Code: "hin_Deva", Name: "Hindi"},
	{Code: "ben_Beng", Name: "Bengali"},
	{Code: "tam_Taml", Name: "Tamil"},
	{Code: "tel_Telu", Name: "Telugu"},
	{Code: "mar_Deva", Name: "Marathi"},
	{Code: "bho_Deva", Name: "Bhojpuri"},
}

// DialectRegistry holds the selectable content languages and the current
// selection, and adapts text into the selected dialect on demand. It lives
// for the whole session.
type DialectRegistry struct {
	api *APIClient
	log zerolog.Logger

	mu        sync.RWMutex
	selected  string
	available []models.Dialect

	// Counts in-flight adaptation calls; the loading indicator is shared
	// across all of them, not per-call.
	loading atomic.Int32
}

func NewDialectRegistry(api *APIClient, log zerolog.Logger) *DialectRegistry {
	return &DialectRegistry{
		api:       api,
		log:       log,
		selected:  BaseDialect,
		available: defaultDialects,
	}
}

// LoadLanguages fetches the supported language list, keeping the built-in
// fallback when the call fails or returns nothing.
func (r *DialectRegistry) LoadLanguages(ctx context.Context) {
	languages, err := r.api.GetSupportedLanguages(ctx)
	if err != nil {
		r.log.Warn().Err(err).Msg("language list fetch failed, keeping built-in dialects")
		return
	}
	if len(languages) == 0 {
		return
	}

	r.mu.Lock()
	r.available = languages
	r.mu.Unlock()
}

func (r *DialectRegistry) Available() []models.Dialect {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Dialect, len(r.available))
	copy(out, r.available)
	return out
}

func (r *DialectRegistry) Selected() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.selected
}

func (r *DialectRegistry) Select(code string) {
	r.mu.Lock()
	r.selected = code
	r.mu.Unlock()
}

// Adapt translates text into the selected dialect, best effort. Empty text
// and the base dialect short-circuit without a network call, and any
// failure falls back to the original text. Results are not cached; repeated
// calls re-request every time.
func (r *DialectRegistry) Adapt(ctx context.Context, text string) string {
	target := r.Selected()
	if text == "" || target == BaseDialect {
		return text
	}

	r.loading.Add(1)
	defer r.loading.Add(-1)

	translated, err := r.api.AdaptContent(ctx, text, target, BaseDialect)
	if err != nil {
		r.log.Warn().Err(err).Str("target_language", target).Msg("content adaptation failed")
		return text
	}
	return translated
}

// Loading reports whether any adaptation call is in flight.
func (r *DialectRegistry) Loading() bool {
	return r.loading.Load() > 0
}
