// Package gemini обертка над клиентом Gemini: один вызов генерации с ключом устройства.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/magabrotheeeer/agentpulse/internal/config"
	"github.com/magabrotheeeer/agentpulse/internal/models"
)

var (
	// ErrMissingKey ключ API не передан.
	ErrMissingKey = errors.New("gemini: api key is not configured")
	// ErrEmptyResponse модель не вернула ни одного кандидата.
	ErrEmptyResponse = errors.New("gemini: empty response")
)

// Request параметры одного вызова генерации.
type Request struct {
	Prompt string
	// Schema включает JSON-ответ по схеме; nil означает обычный текст.
	Schema *genai.Schema
	// MaxOutputTokens 0 означает ограничение модели по умолчанию.
	MaxOutputTokens int32
}

// Response текст ответа и источники, на которые сослалась модель.
type Response struct {
	Text    string
	Sources []models.Source
}

// Generator интерфейс вызова генеративной модели.
type Generator interface {
	Generate(ctx context.Context, apiKey string, req Request) (Response, error)
}

// Client вызывает Gemini. Клиент SDK создается на каждый вызов, потому что
// у каждого устройства может быть свой ключ.
type Client struct {
	model   string
	timeout time.Duration
}

// New создает клиента с настройками из конфига.
func New(cfg config.AIGateway) *Client {
	return &Client{
		model:   cfg.Model,
		timeout: cfg.RequestTimeout,
	}
}

// Generate выполняет один вызов генерации. Ошибки SDK возвращаются обернутыми
// без изменения, чтобы их можно было классифицировать.
func (c *Client) Generate(ctx context.Context, apiKey string, req Request) (Response, error) {
	const op = "gemini.Generate"

	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return Response{}, ErrMissingKey
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return Response{}, fmt.Errorf("%s: %w", op, err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.model)
	if req.Schema != nil {
		model.ResponseMIMEType = "application/json"
		model.ResponseSchema = req.Schema
	}
	if req.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(req.MaxOutputTokens)
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return Response{}, fmt.Errorf("%s: %w", op, err)
	}
	return extract(resp)
}

func extract(resp *genai.GenerateContentResponse) (Response, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return Response{}, ErrEmptyResponse
	}
	cand := resp.Candidates[0]

	var b strings.Builder
	if cand.Content != nil {
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}

	sources := []models.Source{}
	if cand.CitationMetadata != nil {
		for _, cs := range cand.CitationMetadata.CitationSources {
			if cs == nil || cs.URI == nil || *cs.URI == "" {
				continue
			}
			sources = append(sources, models.Source{URI: *cs.URI, License: cs.License})
		}
	}
	return Response{Text: b.String(), Sources: sources}, nil
}

// LeadsSchema схема ответа поиска лидов.
func LeadsSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"leads": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":       {Type: genai.TypeString},
						"need":       {Type: genai.TypeString},
						"contact":    {Type: genai.TypeString},
						"profession": {Type: genai.TypeString},
					},
					Required: []string{"name", "contact"},
				},
			},
		},
	}
}

// StringListSchema схема ответа в виде массива строк.
func StringListSchema() *genai.Schema {
	return &genai.Schema{
		Type:  genai.TypeArray,
		Items: &genai.Schema{Type: genai.TypeString},
	}
}

var _ Generator = (*Client)(nil)
