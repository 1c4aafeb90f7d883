package adapters

import (
	"context"

	"github.com/kbukum/nodekit/errors"
	"github.com/kbukum/nodekit/node"
	"github.com/kbukum/nodekit/shape"
)

// Enrichment and SEO node types.
const (
	TypeContactEnrichment = "contact_enrichment"
	TypeKeywordMetrics    = "keyword_metrics"
)

// NewContactEnrichment builds the contact enrichment node over the
// Apollo class of data providers.
func NewContactEnrichment() *node.Definition {
	return &node.Definition{
		Type:        TypeContactEnrichment,
		Name:        "Contact Enrichment",
		Description: "Enriches a contact from an email, domain, or company name.",
		Category:    node.CategoryIntegration,
		Capabilities: node.Capabilities{
			"rerun": true,
		},
		InputShape: shape.Object(
			shape.String("email"),
			shape.String("domain"),
			shape.String("company"),
		),
		OutputShape: shape.Object(
			shape.Nested("profile").Required(),
		),
		Execute: func(ctx context.Context, input node.Input, ec *node.Context) (node.Output, error) {
			svc, ok := node.ServiceAs[ContactEnricher](ec, ServiceContactEnrichment)
			if !ok {
				return nil, errors.ServiceUnavailable(ServiceContactEnrichment)
			}

			q := ContactQuery{
				Email:   stringField(input, "email"),
				Domain:  stringField(input, "domain"),
				Company: stringField(input, "company"),
			}
			if q.Email == "" && q.Domain == "" && q.Company == "" {
				return nil, errors.Validation("one of email, domain, or company is required")
			}

			profile, err := svc.Enrich(ctx, q)
			if err != nil {
				return nil, errors.ExecutionFailed(TypeContactEnrichment, err)
			}
			return node.Output{
				"profile": map[string]any{
					"name":    profile.Name,
					"title":   profile.Title,
					"company": profile.Company,
					"email":   profile.Email,
					"phone":   profile.Phone,
				},
			}, nil
		},
	}
}

// NewKeywordMetrics builds the SEO keyword metrics node over the
// DataForSEO class of providers.
func NewKeywordMetrics() *node.Definition {
	return &node.Definition{
		Type:        TypeKeywordMetrics,
		Name:        "Keyword Metrics",
		Description: "Fetches search volume, difficulty, and CPC for keywords.",
		Category:    node.CategoryIntegration,
		Capabilities: node.Capabilities{
			"rerun": true,
			"bulk":  true,
		},
		InputShape: shape.Object(
			shape.List("keywords").Required(),
			shape.String("location").Default("us"),
		),
		OutputShape: shape.Object(
			shape.List("metrics").Required(),
		),
		Execute: func(ctx context.Context, input node.Input, ec *node.Context) (node.Output, error) {
			svc, ok := node.ServiceAs[KeywordMetricsProvider](ec, ServiceKeywordMetrics)
			if !ok {
				return nil, errors.ServiceUnavailable(ServiceKeywordMetrics)
			}

			rawKeywords, _ := input["keywords"].([]any)
			keywords := make([]string, 0, len(rawKeywords))
			for _, k := range rawKeywords {
				if s, ok := k.(string); ok && s != "" {
					keywords = append(keywords, s)
				}
			}
			if len(keywords) == 0 {
				return nil, errors.Validation("keywords must contain at least one non-empty string")
			}

			results, err := svc.Metrics(ctx, keywords, stringField(input, "location"))
			if err != nil {
				return nil, errors.ExecutionFailed(TypeKeywordMetrics, err)
			}

			items := make([]any, len(results))
			for i, m := range results {
				items[i] = map[string]any{
					"keyword":      m.Keyword,
					"searchVolume": m.SearchVolume,
					"difficulty":   m.Difficulty,
					"cpc":          m.CPC,
				}
			}
			return node.Output{"metrics": items}, nil
		},
	}
}
