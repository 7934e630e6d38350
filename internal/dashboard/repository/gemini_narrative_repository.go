package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tw-stock-insight/internal/dashboard/config"
	"tw-stock-insight/internal/entity"
	"tw-stock-insight/pkg/logger"
	"tw-stock-insight/pkg/utils"

	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// ContentGenerator is the subset of genai.Models used here.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// geminiNarrativeRepository is a NarrativeRepository backed by Gemini with Google Search grounding.
type geminiNarrativeRepository struct {
	cfg            *config.Config
	logger         *logger.Logger
	generator      ContentGenerator
	requestLimiter *rate.Limiter
}

// NewGeminiNarrativeRepository creates a new instance of geminiNarrativeRepository.
func NewGeminiNarrativeRepository(cfg *config.Config, log *logger.Logger, generator ContentGenerator) NarrativeRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.Gemini.MaxRequestPerMinute)
	return &geminiNarrativeRepository{
		cfg:            cfg,
		logger:         log,
		generator:      generator,
		requestLimiter: rate.NewLimiter(rate.Every(secondsPerRequest), 1),
	}
}

// Analyze asks Gemini for the ticker's snapshot. No retry is attempted.
func (r *geminiNarrativeRepository) Analyze(ctx context.Context, ticker string) (*entity.StockSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.Dashboard.CallTimeout)
	defer cancel()

	if err := r.requestLimiter.Wait(ctx); err != nil {
		r.logger.ErrorContext(ctx, "Failed to wait for request limit", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return nil, &NarrativeFetchError{Kind: ErrNarrativeTransport, Err: fmt.Errorf("failed to wait for request limit: %w", err)}
	}

	prompt := BuildStockNarrativePrompt(ticker, utils.TimeNowTaipei())
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, "user"),
	}
	genConfig := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}

	resp, err := r.generator.GenerateContent(ctx, r.cfg.Gemini.Model, contents, genConfig)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to generate narrative from Gemini", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return nil, &NarrativeFetchError{Kind: ErrNarrativeTransport, Err: err}
	}

	snapshot, err := ParseNarrativeResponse(responseText(resp), groundingCitations(resp))
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to parse narrative response", logger.ErrorField(err), logger.StringField("ticker", ticker))
		return nil, err
	}

	r.logger.DebugContext(ctx, "Narrative fetched",
		logger.StringField("ticker", ticker),
		logger.StringField("name", snapshot.Name),
		logger.IntField("sources", len(snapshot.Sources)),
	)
	return snapshot, nil
}

// ParseNarrativeResponse turns the model text into a snapshot, attaching citations.
func ParseNarrativeResponse(text string, citations []entity.SourceCitation) (*entity.StockSnapshot, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &NarrativeFetchError{Kind: ErrEmptyResponse}
	}

	rawJSON, err := ExtractJSONObject(text)
	if err != nil {
		return nil, err
	}

	var snapshot entity.StockSnapshot
	if err := json.Unmarshal([]byte(rawJSON), &snapshot); err != nil {
		return nil, &NarrativeFetchError{Kind: ErrMalformedJSON, Raw: text, Err: err}
	}

	if citations == nil {
		citations = []entity.SourceCitation{}
	}
	snapshot.Sources = citations
	if snapshot.Revenue == nil {
		snapshot.Revenue = []entity.RevenueRecord{}
	}
	if snapshot.Margins == nil {
		snapshot.Margins = []entity.MarginRecord{}
	}
	if snapshot.News == nil {
		snapshot.News = []entity.NewsItem{}
	}
	return &snapshot, nil
}

// ExtractJSONObject returns the span from the first '{' to the last '}' of
// text, tolerating prose or markdown fences around it.
func ExtractJSONObject(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", &NarrativeFetchError{Kind: ErrUnparsableResponse, Raw: text}
	}
	return text[start : end+1], nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}

func groundingCitations(resp *genai.GenerateContentResponse) []entity.SourceCitation {
	citations := []entity.SourceCitation{}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return citations
	}
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		citations = append(citations, entity.SourceCitation{Title: chunk.Web.Title, URI: chunk.Web.URI})
	}
	return citations
}
