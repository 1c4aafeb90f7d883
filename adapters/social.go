package adapters

import (
	"context"

	"github.com/kbukum/nodekit/errors"
	"github.com/kbukum/nodekit/node"
	"github.com/kbukum/nodekit/shape"
)

// TypeSocialSearch is the social-media search node type.
const TypeSocialSearch = "social_search"

// Platforms the social-search capability understands.
var socialPlatforms = []string{"reddit", "twitter", "linkedin"}

// NewSocialSearch builds the social-media search node. One node covers
// all platforms; the platform field selects which index the capability
// queries.
func NewSocialSearch() *node.Definition {
	return &node.Definition{
		Type:        TypeSocialSearch,
		Name:        "Social Media Search",
		Description: "Searches social platforms and returns normalized posts.",
		Category:    node.CategoryIntegration,
		Capabilities: node.Capabilities{
			"rerun": true,
			"bulk":  true,
		},
		InputShape: shape.Object(
			shape.String("platform").OneOf(socialPlatforms...).Required(),
			shape.String("query").Required(),
			shape.Int("limit").Between(1, 100).Default(25),
		),
		OutputShape: shape.Object(
			shape.List("posts").Required(),
			shape.Int("count"),
		),
		Execute: func(ctx context.Context, input node.Input, ec *node.Context) (node.Output, error) {
			svc, ok := node.ServiceAs[SocialSearcher](ec, ServiceSocialSearch)
			if !ok {
				return nil, errors.ServiceUnavailable(ServiceSocialSearch)
			}

			q := SocialQuery{
				Platform: stringField(input, "platform"),
				Query:    stringField(input, "query"),
			}
			if v, ok := intValue(input["limit"]); ok {
				q.Limit = v
			}

			posts, err := svc.Search(ctx, q)
			if err != nil {
				return nil, errors.ExecutionFailed(TypeSocialSearch, err)
			}

			items := make([]any, len(posts))
			for i, p := range posts {
				items[i] = map[string]any{
					"id":       p.ID,
					"author":   p.Author,
					"text":     p.Text,
					"url":      p.URL,
					"platform": p.Platform,
				}
			}
			return node.Output{
				"posts": items,
				"count": len(items),
			}, nil
		},
	}
}
