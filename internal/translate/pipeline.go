// Package translate turns one chat message into the counterpart's
// language: protect names, guess the source when the provider cannot,
// retry when the provider translated nothing, restore the names.
package translate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abadojack/whatlanggo"
	"github.com/samber/lo"
)

// ErrEmptyText rejects empty or whitespace-only input.
var ErrEmptyText = errors.New("text is required")

// ProviderError is an upstream translation API failure, carrying the
// provider's own message for diagnostics.
type ProviderError struct {
	Provider string
	Status   int
	Message  string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s (status %d)", e.Provider, e.Message, e.Status)
}

// ToneAffectionate prepends the per-language salutation to the result.
const ToneAffectionate = "affectionate"

// targetLangs is the allow-list of provider target codes. Anything else
// falls back to plain English.
var targetLangs = []string{"EN", "EN-GB", "EN-US", "IT", "RU"}

// fallbackSources is the retry order when a translation comes back
// unchanged and the provider is assumed to have guessed the source wrong.
var fallbackSources = []string{"RU", "IT", "EN"}

// salutations by target-language prefix, so EN-GB and EN-US share one.
var salutations = map[string]string{
	"RU": "Любимая, ",
	"EN": "My darling, ",
	"IT": "Amore mio, ",
}

// Provider is the upstream machine-translation API. sourceLang may be
// empty, in which case the provider auto-detects.
type Provider interface {
	Name() string
	Translate(ctx context.Context, text, targetLang, sourceLang string) (ProviderResult, error)
}

// ProviderResult is one provider answer. DetectedSource may be empty when
// the provider does not report it.
type ProviderResult struct {
	Text           string
	DetectedSource string
}

// Cache fronts the provider for repeated messages. Implementations are
// best-effort: a failed lookup reports a miss and a failed store is
// swallowed.
type Cache interface {
	Get(ctx context.Context, key string) (CachedResult, bool)
	Set(ctx context.Context, key string, val CachedResult)
}

// CachedResult is the pre-tone pipeline outcome stored in the cache.
type CachedResult struct {
	Translated     string `json:"translated"`
	DetectedSource string `json:"detectedSource,omitempty"`
}

// Request is one translation call.
type Request struct {
	Text       string
	SourceLang string // explicit hint from the caller, optional
	TargetLang string
	Tone       string
}

// Result is returned synchronously; nothing is persisted.
type Result struct {
	Original       string
	Translated     string
	DetectedSource string
}

// Pipeline is stateless across calls and safe for concurrent use.
type Pipeline struct {
	provider  Provider
	protector *Protector
	cache     Cache // nil disables caching
	log       *slog.Logger
}

func NewPipeline(provider Provider, protector *Protector, cache Cache, log *slog.Logger) *Pipeline {
	return &Pipeline{provider: provider, protector: protector, cache: cache, log: log}
}

// ProviderName reports which upstream serves this pipeline.
func (p *Pipeline) ProviderName() string {
	return p.provider.Name()
}

// Translate runs the full chain: validate, protect, hint, translate,
// no-op retries, unprotect, tone. A translation that stays identical to
// the input after every fallback source is returned as-is rather than
// treated as a failure.
func (p *Pipeline) Translate(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.Text) == "" {
		return Result{}, ErrEmptyText
	}

	target := normalizeTarget(req.TargetLang)
	hint := sourceHint(req.SourceLang, req.Text)
	protected := p.protector.Protect(req.Text)
	key := cacheKey(req.Text, hint, target)

	translated, detected, ok := p.lookup(ctx, key)
	if !ok {
		var err error
		translated, detected, err = p.attempt(ctx, protected, target, hint)
		if err != nil {
			return Result{}, err
		}

		if isNoop(req.Text, translated) {
			for _, src := range fallbackSources {
				if src == hint {
					continue
				}
				retry, retryDetected, err := p.attempt(ctx, protected, target, src)
				if err != nil {
					return Result{}, err
				}
				if !isNoop(req.Text, retry) {
					translated, detected = retry, retryDetected
					break
				}
			}
		}
		p.store(ctx, key, CachedResult{Translated: translated, DetectedSource: detected})
	}

	if detected == "" {
		if info := whatlanggo.Detect(req.Text); info.IsReliable() {
			detected = strings.ToUpper(info.Lang.Iso6391())
		}
	}

	if strings.EqualFold(req.Tone, ToneAffectionate) {
		translated = salutationFor(target) + translated
	}

	return Result{Original: req.Text, Translated: translated, DetectedSource: detected}, nil
}

// attempt runs one provider call and restores the protected terms.
func (p *Pipeline) attempt(ctx context.Context, protected, target, source string) (string, string, error) {
	res, err := p.provider.Translate(ctx, protected, target, source)
	if err != nil {
		return "", "", err
	}
	return p.protector.Unprotect(res.Text), res.DetectedSource, nil
}

func (p *Pipeline) lookup(ctx context.Context, key string) (string, string, bool) {
	if p.cache == nil {
		return "", "", false
	}
	val, ok := p.cache.Get(ctx, key)
	if !ok {
		return "", "", false
	}
	return val.Translated, val.DetectedSource, true
}

func (p *Pipeline) store(ctx context.Context, key string, val CachedResult) {
	if p.cache == nil {
		return
	}
	p.cache.Set(ctx, key, val)
}

// isNoop reports whether the provider returned the input unchanged, which
// we read as "wrong source language assumed".
func isNoop(in, out string) bool {
	return strings.EqualFold(strings.TrimSpace(in), strings.TrimSpace(out))
}

func normalizeTarget(lang string) string {
	upper := strings.ToUpper(strings.TrimSpace(lang))
	if lo.Contains(targetLangs, upper) {
		return upper
	}
	return "EN"
}

func salutationFor(target string) string {
	prefix, _, _ := strings.Cut(target, "-")
	return salutations[prefix]
}

func cacheKey(text, hint, target string) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%s", text, hint, target))
	return "translate:" + hex.EncodeToString(sum[:])
}
