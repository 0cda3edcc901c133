package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"legalease-backend/models"

	"github.com/google/generative-ai-go/genai"
)

// ErrGenerationFailed is returned when the model produces no usable output
var ErrGenerationFailed = errors.New("generation failed")

const generationModel = "gemini-2.5-flash"

// Generator produces a model completion for a system/user prompt pair
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// GeminiGenerator generates completions through the Gemini API
type GeminiGenerator struct {
	client    *genai.Client
	modelName string
}

// NewGeminiGenerator creates a generator backed by a Gemini client
func NewGeminiGenerator(client *genai.Client) *GeminiGenerator {
	return &GeminiGenerator{client: client, modelName: generationModel}
}

// Generate runs one completion with a low temperature so extraction output
// stays close to the document text.
func (g *GeminiGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(0.1)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(userPrompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates returned", ErrGenerationFailed)
	}

	var sb strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: empty response", ErrGenerationFailed)
	}
	return sb.String(), nil
}

// AnalysisService runs the retrieve, analyze, format pipeline over an
// indexed document.
type AnalysisService struct {
	index     retriever
	generator Generator
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(index retriever, generator Generator) *AnalysisService {
	return &AnalysisService{index: index, generator: generator}
}

// Analyze runs one analysis over a stored document. It always returns a
// well-formed result: pipeline faults are reported through the Error field,
// never as a Go error.
func (s *AnalysisService) Analyze(
	ctx context.Context,
	documentID string,
	analysisType models.AnalysisType,
	userQuestion string,
) models.AnalysisResult {
	result := models.AnalysisResult{
		AnalysisType: analysisType,
		DocumentID:   documentID,
		Timestamp:    time.Now(),
	}

	if !analysisType.Valid() {
		result.Error = fmt.Sprintf("unknown analysis type: %s", analysisType)
		return result
	}

	contextChunks := retrieveContext(ctx, s.index, documentID, analysisType, userQuestion)
	result.ContextChunksUsed = len(contextChunks)
	log.Printf("Retrieved %d context chunks for %s analysis", len(contextChunks), analysisType)

	systemPrompt := analysisPrompt(analysisType)
	userPrompt := buildUserMessage(analysisType, userQuestion, buildContextText(contextChunks))

	response, err := s.generator.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		log.Printf("Error in document analysis: %v", err)
		result.Error = err.Error()
		return result
	}

	if analysisType == models.AnalysisChat {
		result.Result = buildChatPayload(response, contextChunks)
	} else {
		result.Result = parseAnalysisResponse(response, analysisType)
	}
	return result
}

// buildContextText renders retrieved chunks into the prompt context block
func buildContextText(chunks []models.ScoredChunk) string {
	if len(chunks) == 0 {
		return "No relevant context found."
	}

	parts := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		section := chunk.Section
		if section == "" {
			section = "Unknown Section"
		}
		parts = append(parts, fmt.Sprintf("\n[Chunk %d] - Section: %s, Page: %d\n%s\n---\n",
			i+1, section, chunk.PageNumber, chunk.Text))
	}
	return strings.Join(parts, "\n")
}

func buildUserMessage(analysisType models.AnalysisType, userQuestion, contextText string) string {
	if analysisType == models.AnalysisChat && userQuestion != "" {
		return fmt.Sprintf(`
User Question: %s

Document Context:
%s

Please answer the user's question based on the provided document context. Always cite specific clauses or sections when possible.
`, userQuestion, contextText)
	}
	return fmt.Sprintf(`
Please analyze the following legal document content and provide %s analysis:

Document Context:
%s

Provide the analysis in valid JSON format as specified in the system instructions.
`, analysisType, contextText)
}

// buildChatPayload wraps a chat answer with up to three truncated source
// excerpts from the retrieved context.
func buildChatPayload(answer string, chunks []models.ScoredChunk) models.ChatPayload {
	payload := models.ChatPayload{
		Answer:      answer,
		ContextUsed: len(chunks),
		Sources:     []models.ChatSource{},
	}

	for _, chunk := range chunks {
		if len(payload.Sources) == 3 {
			break
		}
		text := chunk.Text
		if runes := []rune(text); len(runes) > 200 {
			text = string(runes[:200]) + "..."
		}
		payload.Sources = append(payload.Sources, models.ChatSource{
			Text:    text,
			Page:    chunk.PageNumber,
			Section: chunk.Section,
		})
	}
	return payload
}

// parseAnalysisResponse decodes the model output into the typed payload for
// the analysis type. Output that is not valid JSON degrades to an
// UnparsedPayload carrying the verbatim response.
func parseAnalysisResponse(response string, analysisType models.AnalysisType) models.AnalysisPayload {
	jsonStr := extractJSONObject(response)
	if jsonStr == "" {
		return models.UnparsedPayload{
			RawResponse: response,
			Note:        "Response was not in expected JSON format",
		}
	}

	payload := newPayload(analysisType)
	if err := json.Unmarshal([]byte(jsonStr), payload); err != nil {
		return models.UnparsedPayload{
			RawResponse: response,
			Note:        "Failed to parse JSON response",
		}
	}

	switch p := payload.(type) {
	case *models.SummaryPayload:
		return *p
	case *models.ClausesPayload:
		return *p
	case *models.DatesPayload:
		return *p
	case *models.RisksPayload:
		return *p
	case *models.EntitiesPayload:
		return *p
	case *models.BreakdownPayload:
		return *p
	case *models.MindMapPayload:
		return *p
	}
	return models.UnparsedPayload{
		RawResponse: response,
		Note:        "Response was not in expected JSON format",
	}
}

func newPayload(analysisType models.AnalysisType) interface{} {
	switch analysisType {
	case models.AnalysisSummary:
		return &models.SummaryPayload{}
	case models.AnalysisClauses:
		return &models.ClausesPayload{}
	case models.AnalysisDates:
		return &models.DatesPayload{}
	case models.AnalysisRisks:
		return &models.RisksPayload{}
	case models.AnalysisEntities:
		return &models.EntitiesPayload{}
	case models.AnalysisBreakdown:
		return &models.BreakdownPayload{}
	case models.AnalysisMindMap:
		return &models.MindMapPayload{}
	}
	return nil
}
