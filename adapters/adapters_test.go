package adapters

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/kbukum/nodekit/errors"
	"github.com/kbukum/nodekit/node"
)

type fakeTextGenerator struct {
	lastReq TextRequest
	resp    *TextResponse
	err     error
}

func (f *fakeTextGenerator) Generate(ctx context.Context, req TextRequest) (*TextResponse, error) {
	f.lastReq = req
	return f.resp, f.err
}

type fakeVideoGenerator struct {
	job *VideoJob
	err error
}

func (f *fakeVideoGenerator) Render(ctx context.Context, req VideoRequest) (*VideoJob, error) {
	return f.job, f.err
}

type fakeSocialSearcher struct {
	lastQuery SocialQuery
	posts     []SocialPost
	err       error
}

func (f *fakeSocialSearcher) Search(ctx context.Context, q SocialQuery) ([]SocialPost, error) {
	f.lastQuery = q
	return f.posts, f.err
}

type fakeContactEnricher struct {
	profile *ContactProfile
	err     error
}

func (f *fakeContactEnricher) Enrich(ctx context.Context, q ContactQuery) (*ContactProfile, error) {
	return f.profile, f.err
}

type fakeKeywordProvider struct {
	lastKeywords []string
	lastLocation string
	metrics      []KeywordMetrics
	err          error
}

func (f *fakeKeywordProvider) Metrics(ctx context.Context, keywords []string, location string) ([]KeywordMetrics, error) {
	f.lastKeywords = keywords
	f.lastLocation = location
	return f.metrics, f.err
}

func contextWith(name string, svc any) *node.Context {
	return node.NewContext("caller-1", node.Services{name: svc})
}

func assertUnavailable(t *testing.T, err error, service string) {
	t.Helper()
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeServiceUnavailable {
		t.Fatalf("expected SERVICE_UNAVAILABLE for %s, got %v", service, err)
	}
}

func TestTextGeneration_Success(t *testing.T) {
	gen := &fakeTextGenerator{resp: &TextResponse{Text: "hello", TokensUsed: 12}}
	def := NewTextGeneration()

	res := node.Invoke(context.Background(), def,
		node.Input{"prompt": "say hello", "model": "fast"},
		contextWith(ServiceTextGeneration, TextGenerator(gen)))
	if !res.Completed() {
		t.Fatalf("expected success, got %q", res.Error)
	}
	if res.Output["text"] != "hello" || res.Output["tokensUsed"] != 12 {
		t.Errorf("unexpected output: %v", res.Output)
	}
	if gen.lastReq.Prompt != "say hello" || gen.lastReq.Model != "fast" {
		t.Errorf("unexpected request: %+v", gen.lastReq)
	}
	if gen.lastReq.MaxTokens != 1024 {
		t.Errorf("expected default maxTokens applied, got %d", gen.lastReq.MaxTokens)
	}
}

func TestTextGeneration_MissingService(t *testing.T) {
	def := NewTextGeneration()
	_, err := def.Execute(context.Background(), node.Input{"prompt": "x"}, node.NewContext("caller-1", nil))
	assertUnavailable(t, err, ServiceTextGeneration)
}

func TestTextGeneration_BackendError(t *testing.T) {
	gen := &fakeTextGenerator{err: stderrors.New("rate limited")}
	def := NewTextGeneration()

	res := node.Invoke(context.Background(), def,
		node.Input{"prompt": "x"},
		contextWith(ServiceTextGeneration, TextGenerator(gen)))
	if res.Completed() {
		t.Fatal("expected failure")
	}
}

func TestTextGeneration_RequiresPrompt(t *testing.T) {
	def := NewTextGeneration()
	res := node.Invoke(context.Background(), def, node.Input{},
		contextWith(ServiceTextGeneration, TextGenerator(&fakeTextGenerator{})))
	if res.Completed() {
		t.Fatal("expected input validation failure")
	}
}

func TestVideoGeneration_ReturnsJobReference(t *testing.T) {
	gen := &fakeVideoGenerator{job: &VideoJob{JobID: "job-9", Status: "queued"}}
	def := NewVideoGeneration()

	res := node.Invoke(context.Background(), def,
		node.Input{"prompt": "a sunrise"},
		contextWith(ServiceVideoGeneration, VideoGenerator(gen)))
	if !res.Completed() {
		t.Fatalf("expected success, got %q", res.Error)
	}
	if res.Output["jobId"] != "job-9" || res.Output["status"] != "queued" {
		t.Errorf("unexpected output: %v", res.Output)
	}
}

func TestVideoGeneration_RejectsBadAspectRatio(t *testing.T) {
	def := NewVideoGeneration()
	res := node.Invoke(context.Background(), def,
		node.Input{"prompt": "x", "aspectRatio": "4:3"},
		contextWith(ServiceVideoGeneration, VideoGenerator(&fakeVideoGenerator{})))
	if res.Completed() {
		t.Fatal("expected input validation failure")
	}
}

func TestSocialSearch_NormalizesPosts(t *testing.T) {
	searcher := &fakeSocialSearcher{posts: []SocialPost{
		{ID: "1", Author: "a", Text: "t", URL: "u", Platform: "reddit"},
		{ID: "2", Author: "b", Text: "t2", URL: "u2", Platform: "reddit"},
	}}
	def := NewSocialSearch()

	res := node.Invoke(context.Background(), def,
		node.Input{"platform": "reddit", "query": "golang"},
		contextWith(ServiceSocialSearch, SocialSearcher(searcher)))
	if !res.Completed() {
		t.Fatalf("expected success, got %q", res.Error)
	}
	posts, ok := res.Output["posts"].([]any)
	if !ok || len(posts) != 2 {
		t.Fatalf("unexpected posts: %v", res.Output["posts"])
	}
	first, _ := posts[0].(map[string]any)
	if first["id"] != "1" || first["platform"] != "reddit" {
		t.Errorf("unexpected post: %v", first)
	}
	if res.Output["count"] != 2 {
		t.Errorf("unexpected count: %v", res.Output["count"])
	}
	if searcher.lastQuery.Limit != 25 {
		t.Errorf("expected default limit applied, got %d", searcher.lastQuery.Limit)
	}
}

func TestSocialSearch_RejectsUnknownPlatform(t *testing.T) {
	def := NewSocialSearch()
	res := node.Invoke(context.Background(), def,
		node.Input{"platform": "myspace", "query": "golang"},
		contextWith(ServiceSocialSearch, SocialSearcher(&fakeSocialSearcher{})))
	if res.Completed() {
		t.Fatal("expected input validation failure")
	}
}

func TestSocialSearch_MissingService(t *testing.T) {
	def := NewSocialSearch()
	_, err := def.Execute(context.Background(),
		node.Input{"platform": "reddit", "query": "golang"}, nil)
	assertUnavailable(t, err, ServiceSocialSearch)
}

func TestContactEnrichment_Success(t *testing.T) {
	enricher := &fakeContactEnricher{profile: &ContactProfile{
		Name: "Ada", Title: "CTO", Company: "Acme", Email: "ada@acme.test",
	}}
	def := NewContactEnrichment()

	res := node.Invoke(context.Background(), def,
		node.Input{"email": "ada@acme.test"},
		contextWith(ServiceContactEnrichment, ContactEnricher(enricher)))
	if !res.Completed() {
		t.Fatalf("expected success, got %q", res.Error)
	}
	profile, _ := res.Output["profile"].(map[string]any)
	if profile["name"] != "Ada" || profile["company"] != "Acme" {
		t.Errorf("unexpected profile: %v", profile)
	}
}

func TestContactEnrichment_RequiresAnIdentifier(t *testing.T) {
	def := NewContactEnrichment()
	_, err := def.Execute(context.Background(), node.Input{},
		contextWith(ServiceContactEnrichment, ContactEnricher(&fakeContactEnricher{})))
	if err == nil {
		t.Fatal("expected error without an identifier")
	}
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestKeywordMetrics_Success(t *testing.T) {
	provider := &fakeKeywordProvider{metrics: []KeywordMetrics{
		{Keyword: "golang", SearchVolume: 1000, Difficulty: 0.4, CPC: 1.2},
	}}
	def := NewKeywordMetrics()

	res := node.Invoke(context.Background(), def,
		node.Input{"keywords": []any{"golang", ""}},
		contextWith(ServiceKeywordMetrics, KeywordMetricsProvider(provider)))
	if !res.Completed() {
		t.Fatalf("expected success, got %q", res.Error)
	}
	if len(provider.lastKeywords) != 1 || provider.lastKeywords[0] != "golang" {
		t.Errorf("expected empty keywords filtered, got %v", provider.lastKeywords)
	}
	if provider.lastLocation != "us" {
		t.Errorf("expected default location, got %q", provider.lastLocation)
	}
	metrics, _ := res.Output["metrics"].([]any)
	if len(metrics) != 1 {
		t.Fatalf("unexpected metrics: %v", res.Output["metrics"])
	}
}

func TestKeywordMetrics_RejectsEmptyKeywords(t *testing.T) {
	def := NewKeywordMetrics()
	_, err := def.Execute(context.Background(),
		node.Input{"keywords": []any{}},
		contextWith(ServiceKeywordMetrics, KeywordMetricsProvider(&fakeKeywordProvider{})))
	if err == nil {
		t.Fatal("expected error for empty keyword list")
	}
}

func TestRegisterAll(t *testing.T) {
	r := node.NewRegistry()
	if err := RegisterAll(r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, nodeType := range []string{
		TypeTextGeneration,
		TypeTextGeneration + "_with_retry",
		TypeVideoGeneration,
		TypeSocialSearch,
		TypeContactEnrichment,
		TypeKeywordMetrics,
		node.TypeConditional,
		node.TypeDelay,
		node.TypeEnd,
	} {
		if _, err := r.Get(nodeType); err != nil {
			t.Errorf("expected %q registered, got %v", nodeType, err)
		}
	}
}

func TestRetryWrappedAdapter_EndToEnd(t *testing.T) {
	attempts := 0
	gen := &flakyTextGenerator{failures: 2, attempts: &attempts}

	r := node.NewRegistry()
	if err := RegisterAll(r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	def, err := r.Get(TypeTextGeneration + "_with_retry")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res := node.Invoke(context.Background(), def,
		node.Input{
			"prompt":            "hi",
			"maxRetries":        3,
			"initialDelayMs":    float64(1),
			"maxDelayMs":        float64(5),
			"backoffMultiplier": float64(2),
		},
		contextWith(ServiceTextGeneration, TextGenerator(gen)))
	if !res.Completed() {
		t.Fatalf("expected eventual success, got %q", res.Error)
	}
	if res.Output["retriesAttempted"] != 2 {
		t.Errorf("expected 2 retries, got %v", res.Output["retriesAttempted"])
	}
	if res.Output["text"] != "ok" {
		t.Errorf("expected wrapped output preserved, got %v", res.Output)
	}
}

type flakyTextGenerator struct {
	failures int
	attempts *int
}

func (f *flakyTextGenerator) Generate(ctx context.Context, req TextRequest) (*TextResponse, error) {
	*f.attempts++
	if *f.attempts <= f.failures {
		return nil, stderrors.New("transient")
	}
	return &TextResponse{Text: "ok", TokensUsed: 1}, nil
}
