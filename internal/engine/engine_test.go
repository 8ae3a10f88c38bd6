package engine

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/formfill-agent/internal/dom"
	"github.com/jonathan/formfill-agent/internal/llm"
	"github.com/jonathan/formfill-agent/internal/profile"
	"github.com/jonathan/formfill-agent/internal/types"
)

type fakeClient struct {
	mu        sync.Mutex
	responses []string
	errs      []error
	prompts   []string
}

func (f *fakeClient) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	i := len(f.prompts) - 1
	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if i < len(f.responses) {
		return f.responses[i], nil
	}
	if len(f.responses) > 0 {
		return f.responses[len(f.responses)-1], nil
	}
	return "", nil
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func newStore(t *testing.T, p *types.Profile, mode types.UsageMode) *profile.MemoryStore {
	t.Helper()
	store := profile.NewMemoryStore(p)
	require.NoError(t, store.SetUsageMode(mode))
	return store
}

func TestDetectFields(t *testing.T) {
	doc := parseDoc(t, `<form>
		<label for="name">Full Name</label>
		<input type="text" id="name" name="name" required>
		<input type="email" id="email" placeholder="Email Address">
	</form>`)

	eng := New(profile.NewMemoryStore(nil), nil)
	result := eng.DetectFields(doc)

	require.Equal(t, 2, result.Count)
	assert.Equal(t, "Full Name", result.Fields[0].Label)
	assert.Equal(t, "text", result.Fields[0].Type)
	assert.True(t, result.Fields[0].Required)
	assert.Equal(t, "Email Address", result.Fields[1].Label)
}

func TestFillForm_OffMode_DirectMappingOnly(t *testing.T) {
	doc := parseDoc(t, `<form>
		<label for="name">Full Name</label>
		<input type="text" id="name">
		<label for="fav">Favorite color</label>
		<input type="text" id="fav">
	</form>`)
	store := newStore(t, &types.Profile{Name: "Jane Doe", Email: "jane@x.com"}, types.ModeOff)

	eng := New(store, nil)
	report, err := eng.FillForm(context.Background(), doc, "https://example.com/apply")
	require.NoError(t, err)

	assert.Equal(t, 1, report.Filled)
	assert.Equal(t, 2, report.Total)
	assert.Empty(t, report.Errors)
	assert.NotEmpty(t, report.PassID)

	value, _ := doc.Find("#name").Attr("value")
	assert.Equal(t, "Jane Doe", value)
}

func TestFillForm_ConservativeSubjectiveCall(t *testing.T) {
	doc := parseDoc(t, `<form>
		<label for="why">Why do you want this job?</label>
		<textarea id="why"></textarea>
	</form>`)
	store := newStore(t, &types.Profile{Name: "Jane Doe"}, types.ModeConservative)
	client := &fakeClient{responses: []string{"Because the mission resonates with me."}}

	eng := New(store, client)
	report, err := eng.FillForm(context.Background(), doc, "")
	require.NoError(t, err)

	assert.Equal(t, 1, report.Filled)
	assert.Equal(t, 1, report.Total)
	assert.Equal(t, 1, client.calls())
	assert.Equal(t, "Because the mission resonates with me.", doc.Find("#why").Text())
}

func TestFillForm_RateLimitedBulkAbortsWithReport(t *testing.T) {
	doc := parseDoc(t, `<form>
		<label for="fav">Favorite color</label>
		<input type="text" id="fav">
	</form>`)
	store := newStore(t, &types.Profile{}, types.ModeAuto)
	client := &fakeClient{errs: []error{&llm.RateLimitedError{RetryAfter: 30 * time.Second}}}

	eng := New(store, client)
	report, err := eng.FillForm(context.Background(), doc, "")
	require.NoError(t, err, "the pass reports the rate limit instead of failing")

	assert.Equal(t, 0, report.Filled)
	assert.Equal(t, 1, report.Total)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "rate limited")
}

func TestFillForm_CooldownPersistsAcrossPasses(t *testing.T) {
	doc := parseDoc(t, `<form>
		<label for="fav">Favorite color</label>
		<input type="text" id="fav">
	</form>`)
	store := newStore(t, &types.Profile{}, types.ModeAuto)
	client := &fakeClient{errs: []error{&llm.RateLimitedError{RetryAfter: time.Minute}}}

	eng := New(store, client)
	_, err := eng.FillForm(context.Background(), doc, "")
	require.NoError(t, err)
	require.Equal(t, 1, client.calls())

	// Second pass fails fast on the armed cooldown without a network call.
	report, err := eng.FillForm(context.Background(), doc, "")
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls())
	require.Len(t, report.Errors, 1)
}

func TestFillForm_CacheSurvivesAcrossPasses(t *testing.T) {
	doc := parseDoc(t, `<form>
		<label for="why">Why do you want this job?</label>
		<textarea id="why"></textarea>
	</form>`)
	store := newStore(t, &types.Profile{}, types.ModeConservative)
	client := &fakeClient{responses: []string{"First answer."}}

	eng := New(store, client)

	first, err := eng.FillForm(context.Background(), doc, "")
	require.NoError(t, err)
	require.Equal(t, 1, first.Filled)

	second, err := eng.FillForm(context.Background(), doc, "")
	require.NoError(t, err)
	assert.Equal(t, 1, second.Filled)
	assert.Equal(t, 1, client.calls(), "second pass must be served from cache")

	eng.ClearCache()
	third, err := eng.FillForm(context.Background(), doc, "")
	require.NoError(t, err)
	assert.Equal(t, 1, third.Filled)
	assert.Equal(t, 2, client.calls(), "cleared cache forces a fresh call")
}

func TestFillForm_EventsRecorded(t *testing.T) {
	doc := parseDoc(t, `<form>
		<label for="name">Full Name</label>
		<input type="text" id="name">
	</form>`)
	store := newStore(t, &types.Profile{Name: "Jane"}, types.ModeOff)
	sink := &dom.RecordingSink{}

	eng := New(store, nil, WithEventSink(sink))
	_, err := eng.FillForm(context.Background(), doc, "")
	require.NoError(t, err)

	events := sink.Events()
	require.Len(t, events, 2)
	assert.Equal(t, "input", events[0].Type)
	assert.Equal(t, "change", events[1].Type)
}

func TestFillForm_NoClientConservative_SubjectiveErrorCollected(t *testing.T) {
	doc := parseDoc(t, `<form>
		<label for="name">Full Name</label>
		<input type="text" id="name">
		<label for="why">Why do you want this job?</label>
		<textarea id="why"></textarea>
	</form>`)
	store := newStore(t, &types.Profile{Name: "Jane"}, types.ModeConservative)

	eng := New(store, nil)
	report, err := eng.FillForm(context.Background(), doc, "")
	require.NoError(t, err)

	// Direct mapping still works; the subjective field fails with an auth error.
	assert.Equal(t, 1, report.Filled)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "auth error")
}

func TestUpdateProfile(t *testing.T) {
	store := profile.NewMemoryStore(nil)
	eng := New(store, nil)

	require.NoError(t, eng.UpdateProfile(map[string]string{
		"name":     "Jane Doe",
		"linkedin": "https://linkedin.com/in/jane",
	}))

	prof, err := store.Profile()
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", prof.Name)
	assert.Equal(t, "https://linkedin.com/in/jane", prof.LinkedIn)
}

func TestUpdateProfile_RejectsInvalidValues(t *testing.T) {
	store := profile.NewMemoryStore(nil)
	eng := New(store, nil)

	err := eng.UpdateProfile(map[string]string{"email": "not-an-email"})
	require.Error(t, err)

	prof, lerr := store.Profile()
	require.NoError(t, lerr)
	assert.Empty(t, prof.Email, "invalid update must not be stored")
}

func TestSetUsageModeAndSensitiveKeys(t *testing.T) {
	store := profile.NewMemoryStore(nil)
	eng := New(store, nil)

	require.NoError(t, eng.SetUsageMode(types.ModeAuto))
	mode, err := store.UsageMode()
	require.NoError(t, err)
	assert.Equal(t, types.ModeAuto, mode)

	require.NoError(t, eng.SetSensitiveKeys([]string{types.KeySalary}))
	keys, err := store.SensitiveKeys()
	require.NoError(t, err)
	assert.Contains(t, keys, types.KeySalary)
}
