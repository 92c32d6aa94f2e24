package domain

import (
	"time"

	"github.com/google/uuid"
)

// Document is the single text document a session operates on. It is
// immutable once loaded and replaced wholesale by a new upload or reset.
type Document struct {
	Name       string `json:"name"`
	RawContent string `json:"-"`
}

// Entity is a named item extracted from a clause.
type Entity struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// Clause is one analyzed section of the document with simplified text and
// an assigned risk tier. Entities may be empty, never nil after validation.
type Clause struct {
	Title             string    `json:"clause_title"`
	SimplifiedContent string    `json:"simplified_content"`
	RiskLevel         RiskLevel `json:"risk_level"`
	Entities          []Entity  `json:"entities"`
}

// AnalysisResult is the validated structured output of one analysis call.
// It is treated as immutable and entirely replaced by a later analysis.
// JSON tags match the wire contract so the exported artifact round-trips
// the model's payload shape.
type AnalysisResult struct {
	Summary             string   `json:"summary"`
	SimplificationLevel string   `json:"simplification_level"`
	Clauses             []Clause `json:"analysis_results"`
}

// ChatMessage is one turn in the grounded Q&A transcript.
type ChatMessage struct {
	Sender    ChatSender `json:"sender"`
	Text      string     `json:"text"`
	CreatedAt time.Time  `json:"created_at"`
}

// HistoryRecord is the compact write-once record persisted after a
// successful analysis, keyed by a timestamp-derived identifier under the
// caller's identity.
type HistoryRecord struct {
	ID               string    `db:"id" json:"id"`
	UserIdentity     string    `db:"user_identity" json:"user_identity"`
	DocumentName     string    `db:"document_name" json:"document_name"`
	Summary          string    `db:"summary" json:"summary"`
	ClauseCount      int       `db:"clause_count" json:"clause_count"`
	FirstClauseTitle string    `db:"first_clause_title" json:"first_clause_title"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// Session is the explicit analysis session object. It owns the current
// Document, the AnalysisResult, and the chat transcript; loading a document
// or resetting bumps Generation so a stale in-flight analysis response can
// be recognized and discarded.
type Session struct {
	ID             uuid.UUID       `json:"id"`
	Identity       string          `json:"identity"`
	Document       *Document       `json:"document,omitempty"`
	Result         *AnalysisResult `json:"-"`
	Chat           []ChatMessage   `json:"-"`
	Generation     uint64          `json:"-"`
	AwaitingAnswer bool            `json:"-"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Analyzed reports whether the session holds a completed analysis.
func (s *Session) Analyzed() bool {
	return s.Result != nil
}
