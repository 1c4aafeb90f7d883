package adapters

import "context"

// Capability names adapters probe for in the execution context.
const (
	ServiceTextGeneration    = "text-generation"
	ServiceVideoGeneration   = "video-generation"
	ServiceSocialSearch      = "social-search"
	ServiceContactEnrichment = "contact-enrichment"
	ServiceKeywordMetrics    = "keyword-metrics"
)

// TextGenerator is the capability behind AI text generation nodes.
type TextGenerator interface {
	Generate(ctx context.Context, req TextRequest) (*TextResponse, error)
}

// TextRequest describes one text generation call.
type TextRequest struct {
	Model     string
	Prompt    string
	MaxTokens int
}

// TextResponse is the generated text plus usage accounting.
type TextResponse struct {
	Text       string
	TokensUsed int
}

// VideoGenerator is the capability behind AI video generation nodes.
// Rendering is asynchronous on every known backend, so the response is
// a job reference the host polls elsewhere.
type VideoGenerator interface {
	Render(ctx context.Context, req VideoRequest) (*VideoJob, error)
}

// VideoRequest describes one video generation call.
type VideoRequest struct {
	Prompt      string
	DurationS   int
	AspectRatio string
}

// VideoJob references an asynchronous rendering job.
type VideoJob struct {
	JobID  string
	Status string
}

// SocialSearcher is the capability behind social-media search nodes.
type SocialSearcher interface {
	Search(ctx context.Context, q SocialQuery) ([]SocialPost, error)
}

// SocialQuery describes one social search call.
type SocialQuery struct {
	Platform string
	Query    string
	Limit    int
}

// SocialPost is a single normalized search hit.
type SocialPost struct {
	ID       string
	Author   string
	Text     string
	URL      string
	Platform string
}

// ContactEnricher is the capability behind contact enrichment nodes.
type ContactEnricher interface {
	Enrich(ctx context.Context, q ContactQuery) (*ContactProfile, error)
}

// ContactQuery identifies the person or company to enrich.
type ContactQuery struct {
	Email   string
	Domain  string
	Company string
}

// ContactProfile is the enriched contact record.
type ContactProfile struct {
	Name    string
	Title   string
	Company string
	Email   string
	Phone   string
}

// KeywordMetricsProvider is the capability behind SEO keyword nodes.
type KeywordMetricsProvider interface {
	Metrics(ctx context.Context, keywords []string, location string) ([]KeywordMetrics, error)
}

// KeywordMetrics is the SEO data for one keyword.
type KeywordMetrics struct {
	Keyword      string
	SearchVolume int
	Difficulty   float64
	CPC          float64
}
