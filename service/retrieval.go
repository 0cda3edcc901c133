package service

import (
	"context"
	"log"

	"legalease-backend/models"
)

// Canned retrieval queries per analysis type. Chat uses the user's
// question instead.
var contextQueries = map[models.AnalysisType]string{
	models.AnalysisSummary:   "document overview main points key information",
	models.AnalysisClauses:   "obligations liabilities rights responsibilities conditions terms",
	models.AnalysisDates:     "deadline date time period duration termination renewal",
	models.AnalysisRisks:     "risk liability penalty obligation restriction limitation",
	models.AnalysisEntities:  "party company person organization location address",
	models.AnalysisBreakdown: "section article clause paragraph structure",
	models.AnalysisMindMap:   "structure sections main points organization",
}

const (
	targetedLimit    = 10
	targetedMinScore = 0.7
	chatLimit        = 8
	chatMinScore     = 0.6
	structuralLimit  = 15
)

// retriever is the search surface retrieval needs. Implemented by
// VectorIndexService.
type retriever interface {
	SimilaritySearch(ctx context.Context, query string, documentID string, limit int, minScore float64) ([]models.ScoredChunk, error)
	FetchAll(ctx context.Context, documentID string) ([]models.Chunk, error)
}

// retrieveContext gathers context chunks for an analysis. Breakdown and
// mindmap need the document's overall shape, so they read chunks in
// document order instead of searching. Retrieval failures degrade to an
// empty context rather than aborting the analysis.
func retrieveContext(
	ctx context.Context,
	index retriever,
	documentID string,
	analysisType models.AnalysisType,
	userQuestion string,
) []models.ScoredChunk {
	switch {
	case analysisType == models.AnalysisChat && userQuestion != "":
		results, err := index.SimilaritySearch(ctx, userQuestion, documentID, chatLimit, chatMinScore)
		if err != nil {
			log.Printf("Warning: context retrieval failed for %s: %v", analysisType, err)
			return nil
		}
		return results

	case analysisType == models.AnalysisBreakdown || analysisType == models.AnalysisMindMap:
		chunks, err := index.FetchAll(ctx, documentID)
		if err != nil {
			log.Printf("Warning: context retrieval failed for %s: %v", analysisType, err)
			return nil
		}
		if len(chunks) > structuralLimit {
			chunks = chunks[:structuralLimit]
		}
		results := make([]models.ScoredChunk, 0, len(chunks))
		for _, chunk := range chunks {
			results = append(results, models.ScoredChunk{Chunk: chunk})
		}
		return results

	default:
		query, ok := contextQueries[analysisType]
		if !ok {
			query = "document content"
		}
		results, err := index.SimilaritySearch(ctx, query, documentID, targetedLimit, targetedMinScore)
		if err != nil {
			log.Printf("Warning: context retrieval failed for %s: %v", analysisType, err)
			return nil
		}
		return results
	}
}
