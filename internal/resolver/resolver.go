// Package resolver decides the value for each discovered field: direct
// profile mapping first, then generative calls governed by the usage mode.
package resolver

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/jonathan/formfill-agent/internal/classify"
	"github.com/jonathan/formfill-agent/internal/llm"
	"github.com/jonathan/formfill-agent/internal/prompts"
	"github.com/jonathan/formfill-agent/internal/types"
)

// defaultRetryDelay is the fixed wait before the single retry on a transient
// service failure.
const defaultRetryDelay = 2 * time.Second

// Result is the outcome for one field: a value (possibly empty) or an error.
// Errors are isolated per field and never abort the pass on their own.
type Result struct {
	Value string
	Err   error
}

// Resolver is the per-pass context threaded through every call. The cache and
// cooldown handles are owned by the caller and shared across passes; the
// profile and mode are snapshots taken at pass start.
type Resolver struct {
	client     llm.Client
	profile    *types.Profile
	mode       types.UsageMode
	cache      *Cache
	cooldown   *Cooldown
	pageURL    string
	retryDelay time.Duration
	group      singleflight.Group
	log        zerolog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRetryDelay overrides the transient-failure retry delay. Tests set zero.
func WithRetryDelay(d time.Duration) Option {
	return func(r *Resolver) { r.retryDelay = d }
}

// WithLogger attaches a structured logger.
func WithLogger(log zerolog.Logger) Option {
	return func(r *Resolver) { r.log = log }
}

// New builds a resolver for one fill pass. client may be nil when no
// credential is configured; every generative call then fails with *AuthError
// while direct mapping keeps working.
func New(client llm.Client, profile *types.Profile, mode types.UsageMode, cache *Cache, cooldown *Cooldown, pageURL string, opts ...Option) *Resolver {
	r := &Resolver{
		client:     client,
		profile:    profile,
		mode:       mode,
		cache:      cache,
		cooldown:   cooldown,
		pageURL:    pageURL,
		retryDelay: defaultRetryDelay,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ResolveAll resolves a value for every field, in field order. The returned
// error is non-nil only when the very first generative attempt of an auto
// pass is rate-limited; the engine then aborts the pass with zero fills.
func (r *Resolver) ResolveAll(ctx context.Context, fields []types.FormField) ([]Result, error) {
	results := make([]Result, len(fields))
	var unmapped []int

	for i, field := range fields {
		text := classify.FieldText(field)
		if value, ok := r.directValue(text); ok {
			results[i].Value = value
			continue
		}
		unmapped = append(unmapped, i)
	}

	if len(unmapped) == 0 || r.mode == types.ModeOff {
		return results, nil
	}

	if r.mode == types.ModeAuto {
		answers, err := r.resolveBulk(ctx, fields, unmapped)
		if err != nil {
			var rateErr *llm.RateLimitedError
			if errors.As(err, &rateErr) {
				return nil, err
			}
			// Any other bulk failure degrades to per-field resolution,
			// re-introducing per-field calls as an observed fallback.
			r.log.Debug().Err(err).Msg("bulk resolution failed, falling back per field")
		}
		remaining := unmapped[:0]
		for _, i := range unmapped {
			if value, ok := answers[i]; ok {
				results[i].Value = value
			} else {
				remaining = append(remaining, i)
			}
		}
		unmapped = remaining
	}

	for _, i := range unmapped {
		results[i] = r.resolveField(ctx, fields[i])
	}

	return results, nil
}

// directValue tries the fixed category order; the first category whose
// synonyms match and whose profile value is non-empty wins. Classification
// and value availability are resolved together here. Relocation follows the
// main list as a boolean special case.
func (r *Resolver) directValue(normalized string) (string, bool) {
	for _, cat := range classify.Categories {
		if r.profile.Has(cat.Key) && cat.Matches(normalized) {
			return r.profile.Value(cat.Key), true
		}
	}
	if classify.IsRelocation(normalized) {
		if value := r.profile.Value(types.KeyRelocation); value != "" {
			return value, true
		}
	}
	return "", false
}

// resolveField handles one unmapped field after bulk resolution (or instead
// of it, outside auto mode).
func (r *Resolver) resolveField(ctx context.Context, field types.FormField) Result {
	text := classify.FieldText(field)

	switch {
	case classify.IsSubjective(text):
		value, err := r.singleFieldCall(ctx, SubjectivePrefix+text, "subjective-answer", field)
		return Result{Value: value, Err: err}
	case r.mode == types.ModeAuto:
		// Auto mode keeps trying: generic inference for non-subjective fields.
		value, err := r.singleFieldCall(ctx, InferencePrefix+text, "generic-inference", field)
		return Result{Value: value, Err: err}
	default:
		// Conservative: non-subjective unmapped fields stay blank.
		return Result{}
	}
}

// singleFieldCall runs a per-field prompt through the cache/rate-limit policy.
func (r *Resolver) singleFieldCall(ctx context.Context, cacheKey, promptKey string, field types.FormField) (string, error) {
	question := field.Label
	if question == "" {
		question = field.Placeholder
	}
	if question == "" {
		question = field.Name
	}

	prompt := prompts.Format(prompts.MustGet("fill.json", promptKey), map[string]string{
		"Question": question,
		"Profile":  r.profileJSON(),
	})
	return r.callWithPolicy(ctx, cacheKey, prompt)
}

// callWithPolicy is the single gate for network calls: cache check first (a
// hit skips rate-limit and network logic entirely), then the cooldown check,
// then the call with one retry on transient failure. Successful answers are
// cached. Identical in-flight keys collapse into one call.
func (r *Resolver) callWithPolicy(ctx context.Context, cacheKey, prompt string) (string, error) {
	if value, ok := r.cache.Get(cacheKey); ok {
		return value, nil
	}
	if r.client == nil {
		return "", &llm.AuthError{}
	}

	value, err, _ := r.group.Do(cacheKey, func() (interface{}, error) {
		if value, ok := r.cache.Get(cacheKey); ok {
			return value, nil
		}
		if wait := r.cooldown.Remaining(time.Now()); wait > 0 {
			return nil, &llm.RateLimitedError{RetryAfter: wait}
		}

		text, err := r.complete(ctx, prompt)
		if err != nil {
			var rateErr *llm.RateLimitedError
			if errors.As(err, &rateErr) {
				r.cooldown.Set(time.Now(), rateErr.RetryAfter)
			}
			return nil, err
		}

		r.cache.Put(cacheKey, text)
		return text, nil
	})
	if err != nil {
		return "", err
	}
	return value.(string), nil
}

// complete calls the service, retrying exactly once after a short fixed delay
// on a transient server-side failure.
func (r *Resolver) complete(ctx context.Context, prompt string) (string, error) {
	text, err := r.client.Complete(ctx, prompt)
	var serviceErr *llm.ServiceError
	if err != nil && errors.As(err, &serviceErr) {
		r.log.Debug().Int("status", serviceErr.Status).Msg("transient service failure, retrying once")
		if r.retryDelay > 0 {
			select {
			case <-time.After(r.retryDelay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
		text, err = r.client.Complete(ctx, prompt)
	}
	return text, err
}

// profileJSON serializes the profile snapshot for prompt embedding.
func (r *Resolver) profileJSON() string {
	data, err := json.Marshal(r.profile)
	if err != nil {
		return "{}"
	}
	return string(data)
}
