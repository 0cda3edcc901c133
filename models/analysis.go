package models

import "time"

// AnalysisType identifies one of the supported analysis kinds
type AnalysisType string

const (
	AnalysisSummary   AnalysisType = "summary"
	AnalysisClauses   AnalysisType = "clauses"
	AnalysisDates     AnalysisType = "dates"
	AnalysisRisks     AnalysisType = "risks"
	AnalysisEntities  AnalysisType = "entities"
	AnalysisBreakdown AnalysisType = "breakdown"
	AnalysisMindMap   AnalysisType = "mindmap"
	AnalysisChat      AnalysisType = "chat"
)

// AnalysisTypes lists every supported analysis type in a stable order
var AnalysisTypes = []AnalysisType{
	AnalysisSummary,
	AnalysisClauses,
	AnalysisDates,
	AnalysisRisks,
	AnalysisEntities,
	AnalysisBreakdown,
	AnalysisMindMap,
	AnalysisChat,
}

// Valid reports whether t is a known analysis type
func (t AnalysisType) Valid() bool {
	for _, known := range AnalysisTypes {
		if t == known {
			return true
		}
	}
	return false
}

// AnalysisPayload is the tagged union of per-type analysis results.
// Exactly one concrete payload type exists per AnalysisType, plus
// UnparsedPayload for model output that could not be parsed.
type AnalysisPayload interface {
	analysisPayload()
}

// AnalysisResult wraps a payload with request metadata. When the pipeline
// fails, Error is set and Result is nil; the orchestrator never returns a
// bare error to its caller.
type AnalysisResult struct {
	AnalysisType      AnalysisType    `json:"analysis_type"`
	DocumentID        string          `json:"document_id"`
	Timestamp         time.Time       `json:"timestamp"`
	ContextChunksUsed int             `json:"context_chunks_used"`
	Result            AnalysisPayload `json:"result,omitempty"`
	Error             string          `json:"error,omitempty"`
}

// SummaryPayload is the result of a summary analysis
type SummaryPayload struct {
	Summary         string   `json:"summary"`
	DocumentType    string   `json:"document_type"`
	MainPoints      []string `json:"main_points"`
	KeyStakeholders []string `json:"key_stakeholders"`
	Purpose         string   `json:"purpose"`
}

// Clause is a single extracted clause
type Clause struct {
	ClauseText   string `json:"clause_text"`
	ClauseType   string `json:"clause_type"`
	PageNumber   int    `json:"page_number"`
	Section      string `json:"section"`
	Significance string `json:"significance"`
}

// ClausesPayload is the result of a clauses analysis
type ClausesPayload struct {
	ImportantClauses []Clause `json:"important_clauses"`
}

// DateMention is a single extracted date with context
type DateMention struct {
	DateText   string `json:"date_text"`
	DateValue  string `json:"date_value"`
	DateType   string `json:"date_type"`
	PageNumber int    `json:"page_number"`
	Section    string `json:"section"`
	Context    string `json:"context"`
}

// DatesPayload is the result of a dates analysis
type DatesPayload struct {
	ImportantDates []DateMention `json:"important_dates"`
}

// AttentionPoint is a single identified risk or unusual term
type AttentionPoint struct {
	RiskText     string `json:"risk_text"`
	RiskType     string `json:"risk_type"`
	Severity     string `json:"severity"`
	PageNumber   int    `json:"page_number"`
	Section      string `json:"section"`
	Implications string `json:"implications"`
}

// RisksPayload is the result of a risks analysis
type RisksPayload struct {
	AttentionPoints []AttentionPoint `json:"attention_points"`
}

// Party is a contract party with its role
type Party struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	PageNumber int    `json:"page_number"`
	Context    string `json:"context"`
}

// KeyEntities groups the people, companies and places found in a document
type KeyEntities struct {
	Parties       []Party  `json:"parties"`
	Companies     []string `json:"companies"`
	Locations     []string `json:"locations"`
	Signatories   []string `json:"signatories"`
	OtherEntities []string `json:"other_entities"`
}

// EntitiesPayload is the result of an entities analysis
type EntitiesPayload struct {
	KeyEntities KeyEntities `json:"key_entities"`
}

// SectionBreakdown describes one document section
type SectionBreakdown struct {
	SectionTitle     string   `json:"section_title"`
	SectionSummary   string   `json:"section_summary"`
	KeyPoints        []string `json:"key_points"`
	ImportantClauses []string `json:"important_clauses"`
	PageNumbers      []int    `json:"page_numbers"`
	Subsections      []string `json:"subsections"`
}

// BreakdownPayload is the result of a breakdown analysis
type BreakdownPayload struct {
	DetailedBreakdown []SectionBreakdown `json:"detailed_breakdown"`
}

// MindMapStructure is the flattened structure behind a mind map
type MindMapStructure struct {
	MainSections   []string `json:"main_sections"`
	KeyClauses     []string `json:"key_clauses"`
	ImportantDates []string `json:"important_dates"`
	Risks          []string `json:"risks"`
	Entities       []string `json:"entities"`
}

// MindMap holds Mermaid mind map code plus its structure
type MindMap struct {
	MermaidCode string           `json:"mermaid_code"`
	Structure   MindMapStructure `json:"structure"`
}

// MindMapPayload is the result of a mindmap analysis
type MindMapPayload struct {
	MindMap MindMap `json:"mindmap"`
}

// ChatSource is a truncated excerpt backing a chat answer
type ChatSource struct {
	Text    string `json:"text"`
	Page    int    `json:"page"`
	Section string `json:"section"`
}

// ChatPayload is the result of a chat request
type ChatPayload struct {
	Answer      string       `json:"answer"`
	ContextUsed int          `json:"context_used"`
	Sources     []ChatSource `json:"sources"`
}

// UnparsedPayload captures model output that was not valid JSON.
// A present UnparsedPayload is a soft failure: callers get the verbatim
// response plus the reason parsing gave up.
type UnparsedPayload struct {
	RawResponse string `json:"raw_response"`
	Note        string `json:"note"`
}

func (SummaryPayload) analysisPayload()   {}
func (ClausesPayload) analysisPayload()   {}
func (DatesPayload) analysisPayload()     {}
func (RisksPayload) analysisPayload()     {}
func (EntitiesPayload) analysisPayload()  {}
func (BreakdownPayload) analysisPayload() {}
func (MindMapPayload) analysisPayload()   {}
func (ChatPayload) analysisPayload()      {}
func (UnparsedPayload) analysisPayload()  {}
