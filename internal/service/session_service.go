package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"clausegenie/internal/domain"
	"clausegenie/internal/export"
	"clausegenie/internal/port"
	"clausegenie/internal/render"
)

const historyLimit = 5

// In-channel assistant texts. Q&A failures degrade to messages instead of
// surfacing as errors.
const (
	msgAnalyzeFirst = "Please complete the document analysis first before asking questions."
	msgAnswerFailed = "An error occurred while fetching the answer: %v"
)

// SessionService defines the analysis orchestration contract. Every user
// action maps to exactly one method.
type SessionService interface {
	Create(ctx context.Context, identity string) (*domain.Session, error)
	Get(ctx context.Context, sessionID uuid.UUID, identity string) (*domain.Session, error)
	LoadDocument(ctx context.Context, sessionID uuid.UUID, identity string, doc domain.Document) (*domain.Session, error)
	LoadSampleDocument(ctx context.Context, sessionID uuid.UUID, identity string) (*domain.Session, error)
	Analyze(ctx context.Context, sessionID uuid.UUID, identity string) (*domain.AnalysisResult, error)
	Render(ctx context.Context, sessionID uuid.UUID, identity string, format render.Format) (*render.DisplayModel, error)
	Ask(ctx context.Context, sessionID uuid.UUID, identity string, question string) (*domain.ChatMessage, error)
	Transcript(ctx context.Context, sessionID uuid.UUID, identity string) ([]domain.ChatMessage, error)
	Export(ctx context.Context, sessionID uuid.UUID, identity string, format export.Format, w io.Writer) (string, error)
	Reset(ctx context.Context, sessionID uuid.UUID, identity string) error
	History(ctx context.Context, identity string) ([]domain.HistoryRecord, error)
}

type sessionService struct {
	analyzer      port.Analyzer
	history       port.HistoryRepository
	storage       port.ObjectStorage
	archiveBucket string

	mu       sync.RWMutex
	sessions map[uuid.UUID]*domain.Session
}

// NewSessionService creates a SessionService. archiveBucket may be empty,
// in which case document archival uploads go to the configured noop store.
func NewSessionService(
	llm port.Analyzer,
	historyRepo port.HistoryRepository,
	storage port.ObjectStorage,
	archiveBucket string,
) SessionService {
	return &sessionService{
		analyzer:      llm,
		history:       historyRepo,
		storage:       storage,
		archiveBucket: archiveBucket,
		sessions:      make(map[uuid.UUID]*domain.Session),
	}
}

// lookupLocked finds a session owned by identity. Callers must hold mu.
// Foreign sessions are indistinguishable from missing ones.
func (s *sessionService) lookupLocked(sessionID uuid.UUID, identity string) (*domain.Session, error) {
	sess, ok := s.sessions[sessionID]
	if !ok || sess.Identity != identity {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *sessionService) Create(_ context.Context, identity string) (*domain.Session, error) {
	now := time.Now().UTC()
	sess := &domain.Session{
		ID:        uuid.New(),
		Identity:  identity,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	log.Printf("sessionService.Create: created session %s for %s", sess.ID, identity)

	snapshot := *sess
	return &snapshot, nil
}

func (s *sessionService) Get(_ context.Context, sessionID uuid.UUID, identity string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, err := s.lookupLocked(sessionID, identity)
	if err != nil {
		return nil, err
	}
	snapshot := *sess
	return &snapshot, nil
}

func (s *sessionService) LoadDocument(_ context.Context, sessionID uuid.UUID, identity string, doc domain.Document) (*domain.Session, error) {
	if strings.TrimSpace(doc.RawContent) == "" {
		return nil, domain.ErrEmptyDocument
	}
	if doc.Name == "" {
		doc.Name = "untitled.txt"
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookupLocked(sessionID, identity)
	if err != nil {
		return nil, err
	}

	// Replacing the document invalidates any prior result and transcript
	// and bumps the generation so stale in-flight analyses are discarded.
	sess.Document = &doc
	sess.Result = nil
	sess.Chat = nil
	sess.AwaitingAnswer = false
	sess.Generation++
	sess.UpdatedAt = time.Now().UTC()

	log.Printf("sessionService.LoadDocument: session %s loaded document %q (generation %d)",
		sess.ID, doc.Name, sess.Generation)

	snapshot := *sess
	return &snapshot, nil
}

func (s *sessionService) LoadSampleDocument(ctx context.Context, sessionID uuid.UUID, identity string) (*domain.Session, error) {
	return s.LoadDocument(ctx, sessionID, identity, domain.Document{
		Name:       sampleDocumentName,
		RawContent: sampleDocumentContent,
	})
}

// Analyze runs the structured analysis call for the session's current
// document. The generation token is captured before the network call and
// re-checked before the result is applied, so a response for a since
// replaced document is discarded instead of cross-contaminating the
// session. No partial result is ever accepted: every failure leaves the
// session exactly as it was, ready for retry.
func (s *sessionService) Analyze(ctx context.Context, sessionID uuid.UUID, identity string) (*domain.AnalysisResult, error) {
	s.mu.Lock()
	sess, err := s.lookupLocked(sessionID, identity)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if sess.Document == nil {
		s.mu.Unlock()
		return nil, domain.ErrNoDocumentLoaded
	}
	doc := *sess.Document
	generation := sess.Generation
	s.mu.Unlock()

	result, err := s.analyzer.Analyze(ctx, port.AnalyzeInput{
		DocumentName: doc.Name,
		DocumentText: doc.RawContent,
	})
	if err != nil {
		log.Printf("sessionService.Analyze: session %s analysis failed: %v", sessionID, err)
		return nil, err
	}

	s.mu.Lock()
	sess, err = s.lookupLocked(sessionID, identity)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if sess.Generation != generation {
		s.mu.Unlock()
		log.Printf("sessionService.Analyze: session %s discarding stale analysis (generation %d != %d)",
			sessionID, generation, sess.Generation)
		return nil, domain.ErrStaleAnalysis
	}
	sess.Result = result
	sess.UpdatedAt = time.Now().UTC()
	s.mu.Unlock()

	log.Printf("sessionService.Analyze: session %s analyzed %q: %d clauses",
		sessionID, doc.Name, len(result.Clauses))

	// Persistence and archival are best-effort and strictly downstream of
	// the user-visible success.
	go s.saveHistory(identity, doc.Name, result)
	go s.archiveDocument(identity, sessionID, doc)

	return result, nil
}

// saveHistory writes the compact history record. Failures are logged and
// never block or revert the already-applied analysis.
func (s *sessionService) saveHistory(identity, documentName string, result *domain.AnalysisResult) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	firstClauseTitle := "N/A"
	if len(result.Clauses) > 0 {
		firstClauseTitle = result.Clauses[0].Title
	}

	rec := &domain.HistoryRecord{
		ID:               strconv.FormatInt(time.Now().UnixMilli(), 10),
		UserIdentity:     identity,
		DocumentName:     documentName,
		Summary:          result.Summary,
		ClauseCount:      len(result.Clauses),
		FirstClauseTitle: firstClauseTitle,
	}

	if err := s.history.Upsert(ctx, rec); err != nil {
		log.Printf("sessionService.saveHistory: failed to save record %s for %s: %v", rec.ID, identity, err)
		return
	}
	log.Printf("sessionService.saveHistory: saved record %s for %s", rec.ID, identity)
}

// archiveDocument uploads the raw document text for later reference.
// Best-effort, like history.
func (s *sessionService) archiveDocument(identity string, sessionID uuid.UUID, doc domain.Document) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	key := fmt.Sprintf("users/%s/documents/%s/%s", identity, sessionID, doc.Name)
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.archiveBucket,
		Key:         key,
		ContentType: "text/plain; charset=utf-8",
		Body:        strings.NewReader(doc.RawContent),
	})
	if err != nil {
		log.Printf("sessionService.archiveDocument: failed to archive %s: %v", key, err)
	}
}

// Render re-projects the held result into the requested format. Purely
// local; never issues a network request and never blocks the Q&A channel.
func (s *sessionService) Render(_ context.Context, sessionID uuid.UUID, identity string, format render.Format) (*render.DisplayModel, error) {
	s.mu.RLock()
	sess, err := s.lookupLocked(sessionID, identity)
	if err != nil {
		s.mu.RUnlock()
		return nil, err
	}
	result := sess.Result
	s.mu.RUnlock()

	if result == nil {
		return nil, domain.ErrNotAnalyzed
	}
	return render.Render(result, format)
}

// Ask submits one grounded follow-up question. The channel allows at most
// one outstanding question; while one is in flight new submissions are
// rejected. Before an analysis exists the submission is answered by an
// in-channel assistant message with no network call. Transport failures
// likewise degrade to an inline assistant message: the channel itself
// never errors once a question is accepted.
func (s *sessionService) Ask(ctx context.Context, sessionID uuid.UUID, identity string, question string) (*domain.ChatMessage, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, domain.ErrEmptyQuestion
	}

	s.mu.Lock()
	sess, err := s.lookupLocked(sessionID, identity)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if sess.AwaitingAnswer {
		s.mu.Unlock()
		return nil, domain.ErrQuestionInFlight
	}

	now := time.Now().UTC()
	sess.Chat = append(sess.Chat, domain.ChatMessage{
		Sender:    domain.SenderUser,
		Text:      question,
		CreatedAt: now,
	})

	if sess.Document == nil || !sess.Analyzed() {
		reply := domain.ChatMessage{
			Sender:    domain.SenderAssistant,
			Text:      msgAnalyzeFirst,
			CreatedAt: now,
		}
		sess.Chat = append(sess.Chat, reply)
		sess.UpdatedAt = now
		s.mu.Unlock()
		return &reply, nil
	}

	docContent := sess.Document.RawContent
	sess.AwaitingAnswer = true
	s.mu.Unlock()

	answer, err := s.analyzer.Answer(ctx, port.AnswerInput{
		DocumentText: docContent,
		Question:     question,
	})
	if err != nil {
		log.Printf("sessionService.Ask: session %s answer failed: %v", sessionID, err)
		answer = fmt.Sprintf(msgAnswerFailed, err)
	}

	reply := domain.ChatMessage{
		Sender:    domain.SenderAssistant,
		Text:      answer,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	sess, lookupErr := s.lookupLocked(sessionID, identity)
	if lookupErr == nil {
		sess.AwaitingAnswer = false
		sess.Chat = append(sess.Chat, reply)
		sess.UpdatedAt = reply.CreatedAt
	}
	s.mu.Unlock()

	return &reply, nil
}

func (s *sessionService) Transcript(_ context.Context, sessionID uuid.UUID, identity string) ([]domain.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, err := s.lookupLocked(sessionID, identity)
	if err != nil {
		return nil, err
	}
	transcript := make([]domain.ChatMessage, len(sess.Chat))
	copy(transcript, sess.Chat)
	return transcript, nil
}

// Export serializes the current result into w and returns the
// timestamp-derived artifact filename.
func (s *sessionService) Export(_ context.Context, sessionID uuid.UUID, identity string, format export.Format, w io.Writer) (string, error) {
	s.mu.RLock()
	sess, err := s.lookupLocked(sessionID, identity)
	if err != nil {
		s.mu.RUnlock()
		return "", err
	}
	result := sess.Result
	s.mu.RUnlock()

	if result == nil {
		return "", domain.ErrNotAnalyzed
	}
	if err := export.Write(w, result, format); err != nil {
		return "", err
	}
	return export.Filename(format, time.Now().UTC()), nil
}

// Reset destroys the document, result, and transcript together; the
// session itself survives, ready for a new upload.
func (s *sessionService) Reset(_ context.Context, sessionID uuid.UUID, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookupLocked(sessionID, identity)
	if err != nil {
		return err
	}

	sess.Document = nil
	sess.Result = nil
	sess.Chat = nil
	sess.AwaitingAnswer = false
	sess.Generation++
	sess.UpdatedAt = time.Now().UTC()

	log.Printf("sessionService.Reset: session %s reset (generation %d)", sess.ID, sess.Generation)
	return nil
}

func (s *sessionService) History(ctx context.Context, identity string) ([]domain.HistoryRecord, error) {
	return s.history.ListRecent(ctx, identity, historyLimit)
}
