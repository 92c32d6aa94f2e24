package analyzer

import "fmt"

// AnswerFallback substitutes for an absent answer payload. The Q&A path
// degrades instead of failing mid-conversation.
const AnswerFallback = "Sorry, I couldn't process that question right now."

// GroundingFallback is the fixed sentence the model must return when the
// document lacks the answer.
const GroundingFallback = "The document does not contain information regarding this topic."

const analysisSystemPrompt = `You are ClauseGenie, a highly accurate legal document analysis AI. Your task is to perform three steps:
1. Summarize the provided document into a single, comprehensive paragraph, ensuring you simplify all complex legal terms to be easily understandable (e.g., 6th-grade reading level).
2. Deconstruct the document into its key clauses or sections, extract core content, assess a hypothetical risk level (Low, Medium, or High) for a non-expert, and identify all Named Entities (PERSON, ORGANIZATION, DATE, TERM, JURISDICTION, RISK).
3. Return the entire response as a single, valid JSON object strictly adhering to the provided schema. Do not include any text outside the JSON block.`

const followUpSystemPrompt = `You are a legal document question-answering AI. Your goal is to answer the user's question accurately using ONLY the provided document content.
If the information is not explicitly found in the document, you MUST respond with "` + GroundingFallback + `"
Do not use outside knowledge. Do not summarize the entire document. Answer clearly and concisely.`

// Request is a provider-neutral model request. Schema non-nil requests
// schema-guided JSON decoding; Temperature non-nil requests a fixed
// generation temperature instead.
type Request struct {
	SystemPrompt string
	UserQuery    string
	Schema       map[string]interface{}
	Temperature  *float64
}

// BuildAnalysisRequest embeds the document into the analysis preamble and
// attaches the response contract as a generation constraint. The document
// text is passed through unchunked and untruncated; size limits are the
// endpoint's concern.
func BuildAnalysisRequest(name, content string) Request {
	docContext := fmt.Sprintf(
		"The user has provided a document named %q for advanced legal analysis. The document content is below:\n\n---\n\n%s",
		name, content,
	)
	return Request{
		SystemPrompt: analysisSystemPrompt,
		UserQuery: fmt.Sprintf(
			"Analyze the document based on the system instructions. Focus on the core agreements, parties, dates, and potential risks. \n\nDOCUMENT CONTEXT:\n%s",
			docContext,
		),
		Schema: ResponseSchema(),
	}
}

// BuildFollowUpRequest embeds the grounding preamble and the full document
// text with the question. No schema is attached: the answer is free-form
// text, generated near-deterministically.
func BuildFollowUpRequest(content, question string, temperature float64) Request {
	return Request{
		SystemPrompt: followUpSystemPrompt,
		UserQuery: fmt.Sprintf(
			"DOCUMENT CONTENT:\n---\n%s\n---\nUSER QUESTION: %s",
			content, question,
		),
		Temperature: &temperature,
	}
}
