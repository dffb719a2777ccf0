package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"growth-engine-be/internal/config"
	"growth-engine-be/internal/dto"
	"growth-engine-be/internal/pkg/serverutils"
	"growth-engine-be/internal/repository/memory"
	"growth-engine-be/pkg/analysis/conversation"
	"growth-engine-be/pkg/analysis/prompt"
	"growth-engine-be/pkg/analysis/store"
	"growth-engine-be/pkg/llm"
)

var _ llm.LLMProvider = (*fakeProvider)(nil)

type fakeProvider struct {
	configured bool
	reply      string
	err        error
	calls      int
	lastInput  []llm.Message
}

func (f *fakeProvider) Chat(ctx context.Context, messages []llm.Message, options ...llm.Option) (string, error) {
	f.calls++
	f.lastInput = messages
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeProvider) Generate(ctx context.Context, promptText string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: promptText}})
}

func (f *fakeProvider) IsConfigured() bool { return f.configured }

type capturingPublisher struct {
	published [][]byte
	err       error
}

func (c *capturingPublisher) Publish(ctx context.Context, payload []byte) error {
	if c.err != nil {
		return c.err
	}
	c.published = append(c.published, payload)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type analysisFixture struct {
	svc           IAnalysisService
	conversations *memory.ConversationRepository
	analyses      *store.AnalysisStore
	provider      *fakeProvider
	archiver      *capturingPublisher
}

func newAnalysisFixture(t *testing.T, provider *fakeProvider) *analysisFixture {
	t.Helper()

	cfg := config.AnalysisConfig{
		CompletionThreshold: 6,
		MinQuestionsForUI:   4,
		HistoryWindow:       15,
		ConversationMaxAge:  24 * time.Hour,
		RateLimitRequests:   20,
		RateLimitWindow:     time.Minute,
	}

	conversations := memory.NewConversationRepository(24 * time.Hour)
	analyses := store.NewAnalysisStore()
	archiver := &capturingPublisher{}

	svc := NewAnalysisService(
		conversations,
		analyses,
		provider,
		prompt.NewLoader("does-not-exist.txt"),
		serverutils.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow),
		nil,
		archiver,
		nil,
		nopLogger{},
		cfg,
	)

	return &analysisFixture{
		svc:           svc,
		conversations: conversations,
		analyses:      analyses,
		provider:      provider,
		archiver:      archiver,
	}
}

func seedConversation(f *analysisFixture, questionCount int) *conversation.State {
	state := &conversation.State{
		ID:          uuid.New().String(),
		StudentID:   uuid.New().String(),
		StudentName: "דנה כהן",
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: "system prompt"},
			{Role: llm.RoleAssistant, Content: "שאלה ראשונה"},
		},
		QuestionCount: questionCount,
		CreatedAt:     time.Now(),
	}
	f.conversations.Save(state)
	return state
}

func TestSendChatWithConfiguredProvider(t *testing.T) {
	f := newAnalysisFixture(t, &fakeProvider{configured: true, reply: "שאלה המשך מהמודל"})
	state := seedConversation(f, 1)
	userId := uuid.New()

	resp, err := f.svc.SendChat(context.Background(), userId, &dto.ChatRequest{
		ConversationId: state.ID,
		Message:        "הוא אוהב לצייר",
	})
	require.NoError(t, err)

	assert.Equal(t, "שאלה המשך מהמודל", resp.Message)
	assert.Equal(t, SourceAI, resp.Source)
	assert.False(t, resp.IsComplete)
	assert.Equal(t, 2, resp.Metadata.QuestionCount)
	assert.Equal(t, 4, resp.Metadata.MessageCount)

	saved, found := f.conversations.Get(state.ID)
	require.True(t, found)
	assert.Len(t, saved.Messages, 4)
	assert.Equal(t, llm.RoleUser, saved.Messages[2].Role)
	assert.Equal(t, "הוא אוהב לצייר", saved.Messages[2].Content)
}

func TestSendChatFallsBackToTemplateWhenNotConfigured(t *testing.T) {
	f := newAnalysisFixture(t, &fakeProvider{configured: false})
	state := seedConversation(f, 1)

	resp, err := f.svc.SendChat(context.Background(), uuid.New(), &dto.ChatRequest{
		ConversationId: state.ID,
		Message:        "תשובה כלשהי",
	})
	require.NoError(t, err)

	assert.Equal(t, SourceTemplate, resp.Source)
	assert.Contains(t, resp.Message, "שאלה 3 מתוך 6")
	assert.Zero(t, f.provider.calls)
}

func TestSendChatFallsBackOnAuthError(t *testing.T) {
	f := newAnalysisFixture(t, &fakeProvider{
		configured: true,
		err:        fmt.Errorf("%w: status 401", llm.ErrAuth),
	})
	state := seedConversation(f, 2)

	resp, err := f.svc.SendChat(context.Background(), uuid.New(), &dto.ChatRequest{
		ConversationId: state.ID,
		Message:        "עוד תשובה",
	})
	require.NoError(t, err)

	assert.Equal(t, SourceTemplate, resp.Source)
	assert.Contains(t, resp.Message, "שאלה 4 מתוך 6")
}

func TestSendChatPropagatesProviderRateLimit(t *testing.T) {
	f := newAnalysisFixture(t, &fakeProvider{
		configured: true,
		err:        fmt.Errorf("%w: status 429", llm.ErrRateLimited),
	})
	state := seedConversation(f, 1)

	_, err := f.svc.SendChat(context.Background(), uuid.New(), &dto.ChatRequest{
		ConversationId: state.ID,
		Message:        "תשובה",
	})
	require.Error(t, err)

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 429, appErr.Code)

	// The failed turn must not leave a dangling user message behind.
	saved, _ := f.conversations.Get(state.ID)
	assert.Equal(t, 1, saved.QuestionCount)
	assert.Len(t, saved.Messages, 2)
}

func TestSendChatServiceErrorOnUnknownFailure(t *testing.T) {
	f := newAnalysisFixture(t, &fakeProvider{
		configured: true,
		err:        fmt.Errorf("%w: status 500", llm.ErrService),
	})
	state := seedConversation(f, 1)

	_, err := f.svc.SendChat(context.Background(), uuid.New(), &dto.ChatRequest{
		ConversationId: state.ID,
		Message:        "תשובה",
	})

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 502, appErr.Code)
}

func TestSendChatMarksCompleteAtThreshold(t *testing.T) {
	f := newAnalysisFixture(t, &fakeProvider{configured: true, reply: "סיכום"})
	state := seedConversation(f, 5)

	resp, err := f.svc.SendChat(context.Background(), uuid.New(), &dto.ChatRequest{
		ConversationId: state.ID,
		Message:        "תשובה אחרונה",
	})
	require.NoError(t, err)

	assert.True(t, resp.IsComplete)
	assert.Equal(t, 6, resp.Metadata.QuestionCount)
}

func TestSendChatRejectsEmptyMessage(t *testing.T) {
	f := newAnalysisFixture(t, &fakeProvider{configured: true})
	state := seedConversation(f, 1)

	_, err := f.svc.SendChat(context.Background(), uuid.New(), &dto.ChatRequest{
		ConversationId: state.ID,
		Message:        "   ",
	})

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestSendChatUnknownConversation(t *testing.T) {
	f := newAnalysisFixture(t, &fakeProvider{configured: true})

	_, err := f.svc.SendChat(context.Background(), uuid.New(), &dto.ChatRequest{
		ConversationId: uuid.New().String(),
		Message:        "שלום",
	})

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestSendChatTruncatesLongHistory(t *testing.T) {
	f := newAnalysisFixture(t, &fakeProvider{configured: true, reply: "תגובה"})
	state := seedConversation(f, 1)
	for i := 0; i < 30; i++ {
		role := llm.RoleUser
		if i%2 == 1 {
			role = llm.RoleAssistant
		}
		state.Messages = append(state.Messages, llm.Message{Role: role, Content: fmt.Sprintf("הודעה %d", i)})
	}
	f.conversations.Save(state)

	_, err := f.svc.SendChat(context.Background(), uuid.New(), &dto.ChatRequest{
		ConversationId: state.ID,
		Message:        "עוד אחת",
	})
	require.NoError(t, err)

	// One system message plus the most recent fifteen.
	assert.Len(t, f.provider.lastInput, 16)
	assert.Equal(t, llm.RoleSystem, f.provider.lastInput[0].Role)
	assert.Equal(t, "עוד אחת", f.provider.lastInput[len(f.provider.lastInput)-1].Content)
}

func TestSendChatPerUserRateLimit(t *testing.T) {
	f := newAnalysisFixture(t, &fakeProvider{configured: false})
	state := seedConversation(f, 1)
	userId := uuid.New()

	var rateLimited bool
	for i := 0; i < 25; i++ {
		_, err := f.svc.SendChat(context.Background(), userId, &dto.ChatRequest{
			ConversationId: state.ID,
			Message:        "תשובה",
		})
		if err != nil {
			var appErr *serverutils.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, 429, appErr.Code)
			rateLimited = true
			break
		}
	}
	assert.True(t, rateLimited)

	// A different user has their own window.
	_, err := f.svc.SendChat(context.Background(), uuid.New(), &dto.ChatRequest{
		ConversationId: state.ID,
		Message:        "תשובה",
	})
	assert.NoError(t, err)
}

func TestCompleteAnalysis(t *testing.T) {
	f := newAnalysisFixture(t, &fakeProvider{configured: true, reply: "דוח ניתוח"})
	state := seedConversation(f, 5)
	userId := uuid.New()

	_, err := f.svc.SendChat(context.Background(), userId, &dto.ChatRequest{
		ConversationId: state.ID,
		Message:        "תשובה אחרונה",
	})
	require.NoError(t, err)

	resp, err := f.svc.CompleteAnalysis(context.Background(), userId, &dto.CompleteAnalysisRequest{
		ConversationId: state.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "1", resp.AnalysisId)
	assert.Equal(t, state.StudentID, resp.StudentId)

	got, err := f.svc.GetAnalysisById(resp.AnalysisId)
	require.NoError(t, err)
	assert.Equal(t, "דוח ניתוח", got.Analysis)
	assert.Equal(t, userId.String(), got.CreatedBy)

	require.Len(t, f.archiver.published, 1)
	assert.True(t, strings.Contains(string(f.archiver.published[0]), "דוח ניתוח"))
}

func TestCompleteAnalysisWithoutAssistantReply(t *testing.T) {
	f := newAnalysisFixture(t, &fakeProvider{configured: true})
	state := &conversation.State{
		ID:        uuid.New().String(),
		StudentID: uuid.New().String(),
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: "system prompt"},
		},
		CreatedAt: time.Now(),
	}
	f.conversations.Save(state)

	_, err := f.svc.CompleteAnalysis(context.Background(), uuid.New(), &dto.CompleteAnalysisRequest{
		ConversationId: state.ID,
	})

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestCompleteAnalysisUnknownConversation(t *testing.T) {
	f := newAnalysisFixture(t, &fakeProvider{configured: true})

	_, err := f.svc.CompleteAnalysis(context.Background(), uuid.New(), &dto.CompleteAnalysisRequest{
		ConversationId: uuid.New().String(),
	})

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestGetAnalysesFiltersByStudent(t *testing.T) {
	f := newAnalysisFixture(t, &fakeProvider{configured: true})

	f.analyses.Create(store.CreateInput{StudentID: "s1", Analysis: "a", CreatedBy: "t"})
	f.analyses.Create(store.CreateInput{StudentID: "s2", Analysis: "b", CreatedBy: "t"})
	f.analyses.Create(store.CreateInput{StudentID: "s1", Analysis: "c", CreatedBy: "t"})

	all := f.svc.GetAnalyses("")
	assert.Len(t, all, 3)

	s1 := f.svc.GetAnalyses("s1")
	require.Len(t, s1, 2)
	assert.Equal(t, "c", s1[0].Analysis)

	latest, err := f.svc.GetLatestAnalysisByStudent("s1")
	require.NoError(t, err)
	assert.Equal(t, "c", latest.Analysis)

	_, err = f.svc.GetLatestAnalysisByStudent("nobody")
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestDeleteAnalysis(t *testing.T) {
	f := newAnalysisFixture(t, &fakeProvider{configured: true})
	rec := f.analyses.Create(store.CreateInput{StudentID: "s1", Analysis: "a", CreatedBy: "t"})

	require.NoError(t, f.svc.DeleteAnalysis(rec.ID))

	err := f.svc.DeleteAnalysis(rec.ID)
	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}

func TestEvictStaleConversations(t *testing.T) {
	f := newAnalysisFixture(t, &fakeProvider{configured: true})

	old := seedConversation(f, 1)
	old.CreatedAt = time.Now().Add(-48 * time.Hour)
	f.conversations.Save(old)
	fresh := seedConversation(f, 1)

	evicted := f.svc.EvictStaleConversations()
	assert.Equal(t, 1, evicted)

	_, found := f.conversations.Get(old.ID)
	assert.False(t, found)
	_, found = f.conversations.Get(fresh.ID)
	assert.True(t, found)
}
