// Package engine exposes the host-facing entry points of the autofill core:
// field detection, form filling, cache control, and settings updates.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/formfill-agent/internal/discovery"
	"github.com/jonathan/formfill-agent/internal/dom"
	"github.com/jonathan/formfill-agent/internal/filler"
	"github.com/jonathan/formfill-agent/internal/labels"
	"github.com/jonathan/formfill-agent/internal/llm"
	"github.com/jonathan/formfill-agent/internal/profile"
	"github.com/jonathan/formfill-agent/internal/resolver"
	"github.com/jonathan/formfill-agent/internal/types"
)

// Engine owns the cross-pass state (response cache, rate-limit cooldown) and
// coordinates one detect or fill pass at a time. Concurrent passes are not
// supported; the host UI serializes triggers.
type Engine struct {
	store      profile.Store
	client     llm.Client
	cache      *resolver.Cache
	cooldown   *resolver.Cooldown
	sink       dom.EventSink
	log        zerolog.Logger
	retryDelay time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithEventSink routes input/change notifications to sink.
func WithEventSink(sink dom.EventSink) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithLogger attaches a structured logger.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithRetryDelay overrides the transient-failure retry delay.
func WithRetryDelay(d time.Duration) Option {
	return func(e *Engine) { e.retryDelay = d }
}

// New creates an engine. client may be nil when no credential is configured;
// direct-mapping fills keep working and generative calls fail with an auth
// error.
func New(store profile.Store, client llm.Client, opts ...Option) *Engine {
	e := &Engine{
		store:      store,
		client:     client,
		cache:      resolver.NewCache(),
		cooldown:   &resolver.Cooldown{},
		sink:       &dom.RecordingSink{},
		log:        zerolog.Nop(),
		retryDelay: -1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DetectFields discovers fillable elements and resolves their labels without
// touching the profile or the network.
func (e *Engine) DetectFields(doc *goquery.Document) types.DetectResult {
	fields := e.discover(doc)
	result := types.DetectResult{
		Count:  len(fields),
		Fields: make([]types.DetectedField, 0, len(fields)),
	}
	for _, f := range fields {
		result.Fields = append(result.Fields, types.DetectedField{
			Type:        string(f.Kind),
			Name:        f.Name,
			Label:       f.Label,
			Placeholder: f.Placeholder,
			Required:    f.Required,
		})
	}
	return result
}

// FillForm runs one complete fill pass against the document and returns its
// report. The pass always completes with a report; the only early exit is a
// rate-limited first bulk call, which reports zero fills and one error.
func (e *Engine) FillForm(ctx context.Context, doc *goquery.Document, pageURL string) (*types.FillReport, error) {
	prof, err := e.store.Profile()
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	mode, err := e.store.UsageMode()
	if err != nil {
		return nil, fmt.Errorf("failed to load usage mode: %w", err)
	}
	sensitive, err := e.store.SensitiveKeys()
	if err != nil {
		return nil, fmt.Errorf("failed to load sensitive keys: %w", err)
	}

	fields := e.discover(doc)
	e.log.Debug().Int("fields", len(fields)).Str("mode", string(mode)).Msg("starting fill pass")

	opts := []resolver.Option{resolver.WithLogger(e.log)}
	if e.retryDelay >= 0 {
		opts = append(opts, resolver.WithRetryDelay(e.retryDelay))
	}
	r := resolver.New(e.client, prof, mode, e.cache, e.cooldown, pageURL, opts...)

	results, err := r.ResolveAll(ctx, fields)
	if err != nil {
		// A rate-limited opening bulk call aborts the pass with a report.
		return &types.FillReport{
			PassID: uuid.NewString(),
			Total:  len(fields),
			Errors: []string{err.Error()},
		}, nil
	}

	report := filler.New(e.sink, e.log).Run(fields, results, prof, sensitive)
	e.log.Info().Int("filled", report.Filled).Int("total", report.Total).Msg("fill pass complete")
	return report, nil
}

// ClearCache drops every cached generative answer.
func (e *Engine) ClearCache() {
	e.cache.Clear()
}

// UpdateProfile merges the partial key/value set into the stored profile.
// This is the explicit accept path for learned suggestions.
func (e *Engine) UpdateProfile(partial map[string]string) error {
	prof, err := e.store.Profile()
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}
	for key, value := range partial {
		prof.SetValue(key, value)
	}
	if err := profile.Validate(prof); err != nil {
		return err
	}
	return e.store.SetProfile(prof)
}

// SetSensitiveKeys replaces the set of categories excluded from learned
// suggestions.
func (e *Engine) SetSensitiveKeys(keys []string) error {
	return e.store.SetSensitiveKeys(keys)
}

// SetUsageMode replaces the generative-call policy.
func (e *Engine) SetUsageMode(mode types.UsageMode) error {
	return e.store.SetUsageMode(mode)
}

// discover runs field discovery and label resolution in document order.
func (e *Engine) discover(doc *goquery.Document) []types.FormField {
	fields := discovery.Discover(doc)
	for i := range fields {
		if el, ok := dom.FromHandle(fields[i].Element); ok {
			fields[i].Label = labels.Resolve(doc, el)
		}
	}
	return fields
}
