package service

import "legalease-backend/models"

const basePrompt = `You are a legal document analysis assistant specialized in contracts and agreements.
You must analyze the provided document content and extract information exactly as it appears in the document.
Always provide verbatim text from the document for clauses, dates, and important sentences.
Do not paraphrase unless explicitly asked. Respond in valid JSON format only.`

var analysisPrompts = map[models.AnalysisType]string{
	models.AnalysisSummary: basePrompt + `

Provide a document summary in this JSON format:
{
    "summary": "Concise overview in plain language",
    "document_type": "Type of legal document",
    "main_points": ["point1", "point2", "point3"],
    "key_stakeholders": ["party1", "party2"],
    "purpose": "Main purpose of the document"
}`,

	models.AnalysisClauses: basePrompt + `

Extract important clauses in this JSON format:
{
    "important_clauses": [
        {
            "clause_text": "Exact text from document",
            "clause_type": "obligation/liability/right/risk/condition",
            "page_number": 1,
            "section": "Section name",
            "significance": "Why this clause is important"
        }
    ]
}`,

	models.AnalysisDates: basePrompt + `

Extract important dates in this JSON format:
{
    "important_dates": [
        {
            "date_text": "Exact date mention with context",
            "date_value": "Standardized date if possible",
            "date_type": "deadline/renewal/termination/payment/other",
            "page_number": 1,
            "section": "Section name",
            "context": "Surrounding context"
        }
    ]
}`,

	models.AnalysisRisks: basePrompt + `

Identify attention points and risks in this JSON format:
{
    "attention_points": [
        {
            "risk_text": "Exact sentence describing the risk",
            "risk_type": "liability/obligation/penalty/unusual_term/ambiguous",
            "severity": "high/medium/low",
            "page_number": 1,
            "section": "Section name",
            "implications": "What this means for the parties"
        }
    ]
}`,

	models.AnalysisEntities: basePrompt + `

Extract key people and places in this JSON format:
{
    "key_entities": {
        "parties": [
            {
                "name": "Exact name as it appears",
                "role": "Role in the contract",
                "page_number": 1,
                "context": "How they are referenced"
            }
        ],
        "companies": ["Company names as they appear"],
        "locations": ["Addresses and jurisdictions"],
        "signatories": ["People who sign the document"],
        "other_entities": ["Other important entities"]
    }
}`,

	models.AnalysisBreakdown: basePrompt + `

Provide detailed section breakdown in this JSON format:
{
    "detailed_breakdown": [
        {
            "section_title": "Section name",
            "section_summary": "What this section covers",
            "key_points": ["point1", "point2"],
            "important_clauses": ["clause1", "clause2"],
            "page_numbers": [1, 2],
            "subsections": ["subsection1", "subsection2"]
        }
    ]
}`,

	models.AnalysisMindMap: basePrompt + `

Generate a Mermaid mind map in this JSON format:
{
    "mindmap": {
        "mermaid_code": "` + "```" + `mermaid\nmindmap\n  root)Document Title(\n    Section1\n      Clause1\n      Clause2\n    Section2\n      Date1\n      Risk1\n` + "```" + `",
        "structure": {
            "main_sections": ["section1", "section2"],
            "key_clauses": ["clause1", "clause2"],
            "important_dates": ["date1", "date2"],
            "risks": ["risk1", "risk2"],
            "entities": ["party1", "party2"]
        }
    }
}`,

	models.AnalysisChat: basePrompt + `

Answer the user's question about the document. Always cite specific clauses or sections when possible.
Reference the exact text from the document to support your answer.
Be helpful but do not provide legal advice - only extract and explain what is in the document.`,
}

// analysisPrompt returns the system prompt for an analysis type
func analysisPrompt(analysisType models.AnalysisType) string {
	if prompt, ok := analysisPrompts[analysisType]; ok {
		return prompt
	}
	return basePrompt
}
