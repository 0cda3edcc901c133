package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"legalease-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	response     string
	err          error
	systemPrompt string
	userPrompt   string
}

func (f *fakeGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.systemPrompt = systemPrompt
	f.userPrompt = userPrompt
	return f.response, f.err
}

func scored(text, section string, page int) models.ScoredChunk {
	return models.ScoredChunk{Chunk: models.Chunk{Text: text, Section: section, PageNumber: page}}
}

func TestAnalyzeUnknownType(t *testing.T) {
	svc := NewAnalysisService(&fakeRetriever{}, &fakeGenerator{})

	result := svc.Analyze(context.Background(), "doc_1", "sonnets", "")
	assert.NotEmpty(t, result.Error)
	assert.Nil(t, result.Result)
	assert.Equal(t, "doc_1", result.DocumentID)
}

func TestAnalyzeGeneratorFailureSetsError(t *testing.T) {
	index := &fakeRetriever{searchResults: []models.ScoredChunk{scored("text", "Terms", 1)}}
	svc := NewAnalysisService(index, &fakeGenerator{err: errors.New("quota exceeded")})

	result := svc.Analyze(context.Background(), "doc_1", models.AnalysisSummary, "")
	assert.Contains(t, result.Error, "quota exceeded")
	assert.Nil(t, result.Result)
	assert.Equal(t, 1, result.ContextChunksUsed)
}

func TestAnalyzeSummaryParsesTypedPayload(t *testing.T) {
	index := &fakeRetriever{searchResults: []models.ScoredChunk{scored("text", "Terms", 1)}}
	gen := &fakeGenerator{response: "```json\n" + `{
		"summary": "A supply agreement.",
		"document_type": "contract",
		"main_points": ["delivery", "payment"],
		"key_stakeholders": ["Acme Corp"],
		"purpose": "Supply of goods"
	}` + "\n```"}
	svc := NewAnalysisService(index, gen)

	result := svc.Analyze(context.Background(), "doc_1", models.AnalysisSummary, "")
	require.Empty(t, result.Error)

	payload, ok := result.Result.(models.SummaryPayload)
	require.True(t, ok, "result = %T", result.Result)
	assert.Equal(t, "A supply agreement.", payload.Summary)
	assert.Equal(t, []string{"delivery", "payment"}, payload.MainPoints)
}

func TestAnalyzeNonJSONFallsBackToRaw(t *testing.T) {
	svc := NewAnalysisService(&fakeRetriever{}, &fakeGenerator{response: "I am unable to comply."})

	result := svc.Analyze(context.Background(), "doc_1", models.AnalysisRisks, "")
	require.Empty(t, result.Error)

	payload, ok := result.Result.(models.UnparsedPayload)
	require.True(t, ok, "result = %T", result.Result)
	assert.Equal(t, "I am unable to comply.", payload.RawResponse)
	assert.Equal(t, "Response was not in expected JSON format", payload.Note)
}

func TestAnalyzeMalformedJSONFallsBackToRaw(t *testing.T) {
	svc := NewAnalysisService(&fakeRetriever{}, &fakeGenerator{response: `{"important_dates": [}`})

	result := svc.Analyze(context.Background(), "doc_1", models.AnalysisDates, "")
	require.Empty(t, result.Error)

	payload, ok := result.Result.(models.UnparsedPayload)
	require.True(t, ok, "result = %T", result.Result)
	assert.Equal(t, "Failed to parse JSON response", payload.Note)
}

func TestAnalyzeChatBuildsSources(t *testing.T) {
	long := strings.Repeat("z", 250)
	index := &fakeRetriever{searchResults: []models.ScoredChunk{
		scored(long, "Parties", 1),
		scored("short source", "Terms", 2),
		scored("third", "Terms", 3),
		scored("fourth", "Terms", 4),
		scored("fifth", "Terms", 5),
	}}
	gen := &fakeGenerator{response: "The lease expires on 31 December 2026."}
	svc := NewAnalysisService(index, gen)

	result := svc.Analyze(context.Background(), "doc_1", models.AnalysisChat, "when does the lease expire?")
	require.Empty(t, result.Error)
	assert.Equal(t, 5, result.ContextChunksUsed)

	payload, ok := result.Result.(models.ChatPayload)
	require.True(t, ok, "result = %T", result.Result)
	assert.Equal(t, "The lease expires on 31 December 2026.", payload.Answer)
	assert.Equal(t, 5, payload.ContextUsed)
	require.Len(t, payload.Sources, 3)
	assert.Equal(t, long[:200]+"...", payload.Sources[0].Text)
	assert.Equal(t, "short source", payload.Sources[1].Text)
	assert.Equal(t, 2, payload.Sources[1].Page)
}

func TestAnalyzeChatTruncatesSourcesAtRuneBoundary(t *testing.T) {
	long := strings.Repeat("§", 250)
	index := &fakeRetriever{searchResults: []models.ScoredChunk{
		scored(long, "Haftung", 1),
	}}
	gen := &fakeGenerator{response: "answer"}
	svc := NewAnalysisService(index, gen)

	result := svc.Analyze(context.Background(), "doc_1", models.AnalysisChat, "liability?")
	require.Empty(t, result.Error)

	payload, ok := result.Result.(models.ChatPayload)
	require.True(t, ok, "result = %T", result.Result)
	require.Len(t, payload.Sources, 1)
	assert.Equal(t, strings.Repeat("§", 200)+"...", payload.Sources[0].Text)
	assert.True(t, utf8.ValidString(payload.Sources[0].Text))
}

func TestAnalyzePromptsCarryContext(t *testing.T) {
	index := &fakeRetriever{searchResults: []models.ScoredChunk{
		scored("The term is five years.", "Term", 4),
	}}
	gen := &fakeGenerator{response: `{"summary": "x", "document_type": "", "main_points": [], "key_stakeholders": [], "purpose": ""}`}
	svc := NewAnalysisService(index, gen)

	svc.Analyze(context.Background(), "doc_1", models.AnalysisSummary, "")
	assert.Contains(t, gen.systemPrompt, "legal document analysis assistant")
	assert.Contains(t, gen.userPrompt, "[Chunk 1] - Section: Term, Page: 4")
	assert.Contains(t, gen.userPrompt, "The term is five years.")
}

func TestBuildContextTextEmpty(t *testing.T) {
	assert.Equal(t, "No relevant context found.", buildContextText(nil))
}

func TestBuildContextTextUnknownSection(t *testing.T) {
	got := buildContextText([]models.ScoredChunk{scored("body", "", 3)})
	assert.Contains(t, got, "Section: Unknown Section, Page: 3")
	assert.Contains(t, got, "---")
}
