package adapters

import (
	"context"

	"github.com/kbukum/nodekit/errors"
	"github.com/kbukum/nodekit/node"
	"github.com/kbukum/nodekit/shape"
)

// AI adapter node types.
const (
	TypeTextGeneration  = "ai_text_generation"
	TypeVideoGeneration = "ai_video_generation"
)

// NewTextGeneration builds the AI text generation node. It covers the
// Anthropic/OpenAI class of backends; which one answers is decided by
// the host when it wires the text-generation capability.
func NewTextGeneration() *node.Definition {
	return &node.Definition{
		Type:        TypeTextGeneration,
		Name:        "AI Text Generation",
		Description: "Generates text from a prompt using the configured AI backend.",
		Category:    node.CategoryAction,
		Capabilities: node.Capabilities{
			"rerun": true,
		},
		InputShape: shape.Object(
			shape.String("prompt").Required(),
			shape.String("model"),
			shape.Int("maxTokens").Between(1, 64000).Default(1024),
		),
		OutputShape: shape.Object(
			shape.String("text").Required(),
			shape.Int("tokensUsed"),
		),
		Execute: func(ctx context.Context, input node.Input, ec *node.Context) (node.Output, error) {
			svc, ok := node.ServiceAs[TextGenerator](ec, ServiceTextGeneration)
			if !ok {
				return nil, errors.ServiceUnavailable(ServiceTextGeneration)
			}

			req := TextRequest{
				Prompt: stringField(input, "prompt"),
				Model:  stringField(input, "model"),
			}
			if v, ok := intValue(input["maxTokens"]); ok {
				req.MaxTokens = v
			}

			resp, err := svc.Generate(ctx, req)
			if err != nil {
				return nil, errors.ExecutionFailed(TypeTextGeneration, err)
			}
			return node.Output{
				"text":       resp.Text,
				"tokensUsed": resp.TokensUsed,
			}, nil
		},
	}
}

// NewVideoGeneration builds the AI video generation node. The backend
// renders asynchronously, so the output is a job reference.
func NewVideoGeneration() *node.Definition {
	return &node.Definition{
		Type:        TypeVideoGeneration,
		Name:        "AI Video Generation",
		Description: "Submits a video rendering job to the configured AI backend.",
		Category:    node.CategoryAction,
		Capabilities: node.Capabilities{
			"rerun": true,
		},
		InputShape: shape.Object(
			shape.String("prompt").Required(),
			shape.Int("durationS").Between(1, 600).Default(30),
			shape.String("aspectRatio").OneOf("16:9", "9:16", "1:1").Default("16:9"),
		),
		OutputShape: shape.Object(
			shape.String("jobId").Required(),
			shape.String("status"),
		),
		Execute: func(ctx context.Context, input node.Input, ec *node.Context) (node.Output, error) {
			svc, ok := node.ServiceAs[VideoGenerator](ec, ServiceVideoGeneration)
			if !ok {
				return nil, errors.ServiceUnavailable(ServiceVideoGeneration)
			}

			req := VideoRequest{
				Prompt:      stringField(input, "prompt"),
				AspectRatio: stringField(input, "aspectRatio"),
			}
			if v, ok := intValue(input["durationS"]); ok {
				req.DurationS = v
			}

			job, err := svc.Render(ctx, req)
			if err != nil {
				return nil, errors.ExecutionFailed(TypeVideoGeneration, err)
			}
			return node.Output{
				"jobId":  job.JobID,
				"status": job.Status,
			}, nil
		},
	}
}

func stringField(input node.Input, key string) string {
	s, _ := input[key].(string)
	return s
}

func intValue(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}
