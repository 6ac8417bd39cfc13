package gemini

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/agentpulse/internal/config"
	"github.com/magabrotheeeer/agentpulse/internal/models"
)

func strPtr(s string) *string { return &s }

func TestExtract(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []genai.Part{genai.Text(`{"leads":`), genai.Text(`[]}`)},
				},
				CitationMetadata: &genai.CitationMetadata{
					CitationSources: []*genai.CitationSource{
						{URI: strPtr("https://imoveis.example/anuncio/1"), License: "cc-by"},
						{URI: nil},
						{URI: strPtr("")},
					},
				},
			},
		},
	}

	out, err := extract(resp)
	require.NoError(t, err)
	assert.Equal(t, `{"leads":[]}`, out.Text)
	assert.Equal(t, []models.Source{{URI: "https://imoveis.example/anuncio/1", License: "cc-by"}}, out.Sources)
}

func TestExtract_Empty(t *testing.T) {
	_, err := extract(nil)
	assert.ErrorIs(t, err, ErrEmptyResponse)

	_, err = extract(&genai.GenerateContentResponse{})
	assert.ErrorIs(t, err, ErrEmptyResponse)

	out, err := extract(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}})
	require.NoError(t, err)
	assert.Empty(t, out.Text)
	assert.NotNil(t, out.Sources)
}

func TestGenerate_MissingKey(t *testing.T) {
	c := New(config.AIGateway{Model: "gemini-2.0-flash"})
	_, err := c.Generate(context.Background(), "   ", Request{Prompt: "ping"})
	assert.ErrorIs(t, err, ErrMissingKey)
}

func TestSchemas(t *testing.T) {
	leads := LeadsSchema()
	assert.Equal(t, genai.TypeObject, leads.Type)
	item := leads.Properties["leads"].Items
	assert.ElementsMatch(t, []string{"name", "contact"}, item.Required)

	list := StringListSchema()
	assert.Equal(t, genai.TypeArray, list.Type)
	assert.Equal(t, genai.TypeString, list.Items.Type)
}
