// Package mcpserver exposes the sentiment and animal analyses as MCP tools
// over stdio.
package mcpserver

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/apex/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/matiasleandrokruk/inferlab/internal/domain/animal"
	"github.com/matiasleandrokruk/inferlab/internal/domain/sentiment"
	"github.com/matiasleandrokruk/inferlab/internal/version"
)

const (
	ToolAnalyzeSentiment = "analyze_sentiment"
	ToolClassifyAnimal   = "classify_animal"
)

// ImageAnalyzer analyzes one base64-encoded image. *animal.Analyzer implements it.
type ImageAnalyzer interface {
	AnalyzeEncoded(ctx context.Context, encoded, filename string) animal.Entry
}

type SentimentInput struct {
	Text string `json:"text" jsonschema:"the text to classify"`
}

type SentimentOutput struct {
	Sentiment sentiment.Label `json:"sentiment" jsonschema:"positive, negative, neutral or error"`
}

type AnimalInput struct {
	ImageBase64 string `json:"image_base64" jsonschema:"the image bytes, standard base64"`
	Filename    string `json:"filename,omitempty" jsonschema:"name recorded on the result"`
}

// New builds the MCP server with both tools registered.
func New(classifier sentiment.Classifier, images ImageAnalyzer) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: version.Name, Version: version.Version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolAnalyzeSentiment,
		Description: "Classify the sentiment of a text as positive, negative or neutral.",
	}, analyzeSentiment(classifier))

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolClassifyAnimal,
		Description: "Describe the animal in an image: names, taxonomy, habitat, diet, physical traits and conservation status.",
	}, classifyAnimal(images))

	return server
}

// Run serves s on stdin/stdout until ctx is done or the client disconnects.
func Run(ctx context.Context, s *mcp.Server) error {
	log.Info("serving MCP over stdio")
	if err := s.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("mcp: %w", err)
	}
	return nil
}

func analyzeSentiment(c sentiment.Classifier) mcp.ToolHandlerFor[SentimentInput, SentimentOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in SentimentInput) (*mcp.CallToolResult, SentimentOutput, error) {
		if strings.TrimSpace(in.Text) == "" {
			return nil, SentimentOutput{}, errors.New("text is required")
		}
		return nil, SentimentOutput{Sentiment: c.Classify(ctx, in.Text)}, nil
	}
}

func classifyAnimal(a ImageAnalyzer) mcp.ToolHandlerFor[AnimalInput, animal.Entry] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in AnimalInput) (*mcp.CallToolResult, animal.Entry, error) {
		if _, err := base64.StdEncoding.DecodeString(in.ImageBase64); err != nil || in.ImageBase64 == "" {
			return nil, animal.Entry{}, errors.New("image_base64 must be non-empty standard base64")
		}
		filename := in.Filename
		if filename == "" {
			filename = "image"
		}
		return nil, a.AnalyzeEncoded(ctx, in.ImageBase64, filename), nil
	}
}
