// Package reddit discovers discussion threads through the OpenAI Responses
// API with a reddit.com-filtered web_search tool.
package reddit

import (
	"context"
	"log/slog"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/responses"
	"github.com/openai/openai-go/v2/shared"

	"last30days/internal/bootstrap/logging"
	"last30days/internal/domain/research"
	"last30days/internal/errs"
	"last30days/internal/ports"
)

// Client calls the Responses API for thread discovery. The model is chosen
// once per run through resolveModel and remembered in the model cache.
type Client struct {
	api           openai.Client
	override      string
	models        ports.ModelCache
	createAndRead func(ctx context.Context, model string, prompt string, depth research.DepthSpec) (string, error)
	listModelIDs  func(ctx context.Context) ([]string, error)
}

func NewClient(apiKey string, modelOverride string, models ports.ModelCache) *Client {
	c := &Client{
		api:      openai.NewClient(option.WithAPIKey(apiKey)),
		override: modelOverride,
		models:   models,
	}
	c.createAndRead = c.createResponse
	c.listModelIDs = c.listModels
	return c
}

// SearchThreads runs one discovery pass. Transport or API failures surface
// as errors; callers absorb them into an empty channel.
func (c *Client) SearchThreads(ctx context.Context, topic string, window research.Window, depth research.DepthSpec) ([]research.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.Wrap(err, "check context")
	}

	logCtx := logging.WithAttrs(ctx,
		slog.String("component", "reddit.client"),
		slog.String("topic", topic),
		slog.String("depth", depth.Name),
	)

	model := c.resolveModel(ctx)
	prompt := BuildPrompt(topic, window, depth)

	outputText, err := c.createAndRead(ctx, model, prompt, depth)
	if err != nil {
		return nil, errs.Wrap(err, "call responses api")
	}

	items := ParseItems(outputText)
	logging.Info(logCtx, "reddit discovery completed",
		slog.String("model", model),
		slog.Int("items", len(items)),
	)
	return items, nil
}

// redditSearchTools builds the web_search tool restricted to reddit.com.
// The domain filter is what keeps discovery on actual discussion threads.
func redditSearchTools() []responses.ToolUnionParam {
	return []responses.ToolUnionParam{{
		OfWebSearch: &responses.WebSearchToolParam{
			Type: responses.WebSearchToolTypeWebSearch,
			Filters: responses.WebSearchToolFiltersParam{
				AllowedDomains: []string{"reddit.com"},
			},
		},
	}}
}

func (c *Client) createResponse(ctx context.Context, model string, prompt string, depth research.DepthSpec) (string, error) {
	resp, err := c.api.Responses.New(ctx, responses.ResponseNewParams{
		Model: shared.ResponsesModel(model),
		Input: responses.ResponseNewParamsInputUnion{OfString: openai.String(prompt)},
		Tools: redditSearchTools(),
		Include: []responses.ResponseIncludable{
			responses.ResponseIncludable("web_search_call.action.sources"),
		},
	}, option.WithRequestTimeout(depth.Timeout))
	if err != nil {
		return "", err
	}
	return resp.OutputText(), nil
}

func (c *Client) listModels(ctx context.Context) ([]string, error) {
	page, err := c.api.Models.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(page.Data))
	for _, model := range page.Data {
		ids = append(ids, model.ID)
	}
	return ids, nil
}
