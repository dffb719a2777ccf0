package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"growth-engine-be/internal/config"
	"growth-engine-be/internal/constant"
	"growth-engine-be/internal/dto"
	"growth-engine-be/internal/pkg/logger"
	"growth-engine-be/internal/pkg/serverutils"
	"growth-engine-be/internal/repository/memory"
	"growth-engine-be/internal/repository/specification"
	"growth-engine-be/internal/repository/unitofwork"
	"growth-engine-be/pkg/analysis/conversation"
	"growth-engine-be/pkg/analysis/prompt"
	"growth-engine-be/pkg/analysis/store"
	"growth-engine-be/pkg/analysis/template"
	"growth-engine-be/pkg/events"
	"growth-engine-be/pkg/llm"
	pktNats "growth-engine-be/pkg/nats"
)

// Response source markers. The caller can always tell a canned question from
// a model-generated one.
const (
	SourceAI       = "ai"
	SourceTemplate = "template"
)

type IAnalysisService interface {
	StartConversation(ctx context.Context, userId uuid.UUID, req *dto.StartConversationRequest) (*dto.StartConversationResponse, error)
	SendChat(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error)
	CompleteAnalysis(ctx context.Context, userId uuid.UUID, req *dto.CompleteAnalysisRequest) (*dto.CompleteAnalysisResponse, error)

	GetAnalysisById(id string) (*dto.AnalysisResponse, error)
	GetAnalyses(studentId string) []*dto.AnalysisResponse
	GetLatestAnalysisByStudent(studentId string) (*dto.AnalysisResponse, error)
	DeleteAnalysis(id string) error

	GetArchivedByStudent(ctx context.Context, studentId uuid.UUID) ([]*dto.ArchivedAnalysisResponse, error)
	EvictStaleConversations() int
}

type analysisService struct {
	conversations  *memory.ConversationRepository
	analyses       *store.AnalysisStore
	provider       llm.LLMProvider
	promptLoader   *prompt.Loader
	rateLimiter    *serverutils.RateLimiter
	uowFactory     unitofwork.RepositoryFactory
	archiver       IPublisherService
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
	cfg            config.AnalysisConfig

	// Mutations to one conversation are serialized; different conversations
	// proceed in parallel.
	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewAnalysisService(
	conversations *memory.ConversationRepository,
	analyses *store.AnalysisStore,
	provider llm.LLMProvider,
	promptLoader *prompt.Loader,
	rateLimiter *serverutils.RateLimiter,
	uowFactory unitofwork.RepositoryFactory,
	archiver IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
	cfg config.AnalysisConfig,
) IAnalysisService {
	return &analysisService{
		conversations:  conversations,
		analyses:       analyses,
		provider:       provider,
		promptLoader:   promptLoader,
		rateLimiter:    rateLimiter,
		uowFactory:     uowFactory,
		archiver:       archiver,
		eventPublisher: eventPublisher,
		logger:         log,
		cfg:            cfg,
		locks:          make(map[string]*sync.Mutex),
	}
}

func (s *analysisService) lockConversation(id string) func() {
	s.locksMu.Lock()
	mu, ok := s.locks[id]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[id] = mu
	}
	s.locksMu.Unlock()

	mu.Lock()
	return mu.Unlock
}

func (s *analysisService) StartConversation(ctx context.Context, userId uuid.UUID, req *dto.StartConversationRequest) (*dto.StartConversationResponse, error) {
	studentId, err := uuid.Parse(req.StudentId)
	if err != nil {
		return nil, serverutils.NewBadRequest("Invalid student id")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	student, err := uow.StudentRepository().FindOne(ctx, specification.ByID{ID: studentId})
	if err != nil {
		return nil, serverutils.NewServiceError("Failed to look up student", err)
	}
	if student == nil {
		return nil, serverutils.NewNotFound("Student not found")
	}

	studentName := student.FullName()
	conversationId := uuid.New().String()
	firstMessage := template.FirstQuestion(studentName)

	state := &conversation.State{
		ID:          conversationId,
		StudentID:   req.StudentId,
		StudentName: studentName,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: s.promptLoader.SystemPrompt(studentName)},
			{Role: llm.RoleAssistant, Content: firstMessage},
		},
		QuestionCount: 1,
		IsComplete:    false,
		CreatedAt:     time.Now(),
	}

	s.conversations.Save(state)

	s.logger.Info("analysis", "Conversation started", map[string]interface{}{
		"conversation_id": conversationId,
		"student_id":      req.StudentId,
		"user_id":         userId.String(),
	})

	return &dto.StartConversationResponse{
		ConversationId: conversationId,
		Message:        firstMessage,
	}, nil
}

func (s *analysisService) SendChat(ctx context.Context, userId uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	if !s.rateLimiter.Allow(userId.String()) {
		return nil, serverutils.NewRateLimited("Rate limit exceeded. Please wait before sending more messages.")
	}

	trimmed := strings.TrimSpace(req.Message)
	if trimmed == "" {
		return nil, serverutils.NewBadRequest("Message required")
	}

	unlock := s.lockConversation(req.ConversationId)
	defer unlock()

	state, found := s.conversations.Get(req.ConversationId)
	if !found {
		return nil, serverutils.NewNotFound("Conversation not found")
	}

	// The repository hands back a shared pointer, so the history is copied
	// before mutation. A failed turn leaves the stored state untouched.
	history := append(append([]llm.Message(nil), state.Messages...), llm.Message{Role: llm.RoleUser, Content: trimmed})

	reply, source, err := s.nextReply(ctx, state, history)
	if err != nil {
		return nil, err
	}

	state.Messages = append(history, llm.Message{Role: llm.RoleAssistant, Content: reply})
	state.QuestionCount++
	if state.QuestionCount >= s.cfg.CompletionThreshold {
		state.IsComplete = true
	}

	s.conversations.Save(state)

	s.logger.Info("analysis", "Chat turn processed", map[string]interface{}{
		"conversation_id": state.ID,
		"question_count":  state.QuestionCount,
		"message_count":   len(state.Messages),
		"source":          source,
	})

	return &dto.ChatResponse{
		Message:    reply,
		IsComplete: state.IsComplete,
		Source:     source,
		Metadata: dto.ChatMetadata{
			QuestionCount: state.QuestionCount,
			MessageCount:  len(state.Messages),
		},
	}, nil
}

// nextReply asks the model for the follow-up, falling back to the canned
// sequence when no provider is configured or its credentials are rejected.
func (s *analysisService) nextReply(ctx context.Context, state *conversation.State, history []llm.Message) (string, string, error) {
	if !s.provider.IsConfigured() {
		return template.NextQuestion(state.QuestionCount, state.StudentName), SourceTemplate, nil
	}

	truncated := conversation.TruncateHistory(history, s.cfg.HistoryWindow)
	reply, err := s.provider.Chat(ctx, truncated)
	if err == nil {
		return reply, SourceAI, nil
	}

	switch {
	case errors.Is(err, llm.ErrRateLimited):
		return "", "", serverutils.NewRateLimited("Too many requests to AI service. Please wait a moment and try again.")
	case errors.Is(err, llm.ErrAuth), errors.Is(err, llm.ErrNotConfigured):
		// Credential problems degrade to templates instead of failing the
		// turn. The source field tells the caller which one they got.
		s.logger.Warn("analysis", "LLM credentials rejected, serving template response", map[string]interface{}{
			"conversation_id": state.ID,
			"error":           err.Error(),
		})
		return template.NextQuestion(state.QuestionCount, state.StudentName), SourceTemplate, nil
	default:
		return "", "", serverutils.NewServiceError("AI service unavailable. Please try again.", err)
	}
}

func (s *analysisService) CompleteAnalysis(ctx context.Context, userId uuid.UUID, req *dto.CompleteAnalysisRequest) (*dto.CompleteAnalysisResponse, error) {
	unlock := s.lockConversation(req.ConversationId)
	defer unlock()

	state, found := s.conversations.Get(req.ConversationId)
	if !found {
		return nil, serverutils.NewNotFound("Conversation not found")
	}

	finalMessage, ok := state.LastAssistantMessage()
	if !ok {
		return nil, serverutils.NewBadRequest("No analysis generated yet")
	}

	result := s.analyses.Create(store.CreateInput{
		StudentID:           state.StudentID,
		Analysis:            finalMessage.Content,
		ConversationHistory: state.Messages,
		CreatedBy:           userId.String(),
	})

	s.publishArchive(ctx, result)

	if s.eventPublisher != nil {
		event := events.BaseEvent{
			Type: constant.EventAnalysisCompleted,
			Data: map[string]interface{}{
				"analysis_id": result.ID,
				"student_id":  result.StudentID,
				"user_id":     userId.String(),
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("analysis", "Failed to publish ANALYSIS_COMPLETED event", map[string]interface{}{
				"analysis_id": result.ID,
				"error":       err.Error(),
			})
		}
	}

	s.logger.Info("analysis", "Analysis completed", map[string]interface{}{
		"analysis_id":     result.ID,
		"conversation_id": state.ID,
		"student_id":      result.StudentID,
	})

	return &dto.CompleteAnalysisResponse{
		AnalysisId:  result.ID,
		StudentId:   result.StudentID,
		CompletedAt: result.CreatedAt,
	}, nil
}

func (s *analysisService) publishArchive(ctx context.Context, result *store.AnalysisResult) {
	if s.archiver == nil {
		return
	}
	payload := dto.ArchiveAnalysisMessage{
		MemoryRefId:         result.ID,
		StudentId:           result.StudentID,
		Analysis:            result.Analysis,
		ConversationHistory: result.ConversationHistory,
		CreatedBy:           result.CreatedBy,
		CreatedAt:           result.CreatedAt,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("analysis", "Failed to marshal archive message", map[string]interface{}{
			"analysis_id": result.ID,
			"error":       err.Error(),
		})
		return
	}
	if err := s.archiver.Publish(ctx, raw); err != nil {
		s.logger.Warn("analysis", "Failed to publish archive message", map[string]interface{}{
			"analysis_id": result.ID,
			"error":       err.Error(),
		})
	}
}

func (s *analysisService) GetAnalysisById(id string) (*dto.AnalysisResponse, error) {
	rec, ok := s.analyses.GetByID(id)
	if !ok {
		return nil, serverutils.NewNotFound("Analysis not found")
	}
	return toAnalysisResponse(rec), nil
}

func (s *analysisService) GetAnalyses(studentId string) []*dto.AnalysisResponse {
	recs := s.analyses.GetAll(studentId)
	out := make([]*dto.AnalysisResponse, len(recs))
	for i, rec := range recs {
		out[i] = toAnalysisResponse(rec)
	}
	return out
}

func (s *analysisService) GetLatestAnalysisByStudent(studentId string) (*dto.AnalysisResponse, error) {
	rec, ok := s.analyses.GetLatestByStudentID(studentId)
	if !ok {
		return nil, serverutils.NewNotFound(fmt.Sprintf("No analyses for student %s", studentId))
	}
	return toAnalysisResponse(rec), nil
}

func (s *analysisService) DeleteAnalysis(id string) error {
	if !s.analyses.Delete(id) {
		return serverutils.NewNotFound("Analysis not found")
	}
	return nil
}

func (s *analysisService) GetArchivedByStudent(ctx context.Context, studentId uuid.UUID) ([]*dto.ArchivedAnalysisResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	archives, err := uow.AnalysisArchiveRepository().FindByStudent(ctx, studentId)
	if err != nil {
		return nil, serverutils.NewServiceError("Failed to load archived analyses", err)
	}

	out := make([]*dto.ArchivedAnalysisResponse, len(archives))
	for i, a := range archives {
		out[i] = &dto.ArchivedAnalysisResponse{
			Id:          a.Id.String(),
			MemoryRefId: a.MemoryRefId,
			StudentId:   a.StudentId.String(),
			Analysis:    a.Analysis,
			CreatedBy:   a.CreatedBy.String(),
			CreatedAt:   a.CreatedAt,
		}
	}
	return out, nil
}

// EvictStaleConversations is invoked by an operator endpoint or the sweeper
// binary; it never runs on its own schedule.
func (s *analysisService) EvictStaleConversations() int {
	evicted := s.conversations.EvictOlderThan(s.cfg.ConversationMaxAge)
	if evicted > 0 {
		s.logger.Info("analysis", "Evicted stale conversations", map[string]interface{}{
			"evicted": evicted,
			"max_age": s.cfg.ConversationMaxAge.String(),
		})
	}
	return evicted
}

func toAnalysisResponse(rec *store.AnalysisResult) *dto.AnalysisResponse {
	return &dto.AnalysisResponse{
		Id:                  rec.ID,
		StudentId:           rec.StudentID,
		Analysis:            rec.Analysis,
		ConversationHistory: rec.ConversationHistory,
		CreatedBy:           rec.CreatedBy,
		CreatedAt:           rec.CreatedAt,
	}
}
