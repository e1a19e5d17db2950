package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/velora-ai/companion/internal/models"
	"github.com/velora-ai/companion/internal/repository"
)

// contextMessages is how many recent exchanges are replayed to the model.
const contextMessages = 3

// ChatReply carries the companion's answer along with the analysis of the
// user's message.
type ChatReply struct {
	Text           string          `json:"text"`
	ConversationID int64           `json:"conversation_id"`
	Analysis       MessageAnalysis `json:"analysis"`
	Model          string          `json:"model,omitempty"`
}

type ChatService interface {
	Respond(ctx context.Context, userID int64, source, externalID, text string) (*ChatReply, error)
}

type chatService struct {
	conversations repository.ConversationRepository
	messages      repository.MessageRepository
	settingsRepo  repository.SettingsRepository
	analysis      AnalysisService
	llm           *OpenRouterClient
	logger        *slog.Logger

	now func() time.Time
}

func NewChatService(
	conversations repository.ConversationRepository,
	messages repository.MessageRepository,
	settingsRepo repository.SettingsRepository,
	analysis AnalysisService,
	llm *OpenRouterClient,
	logger *slog.Logger) ChatService {
	return &chatService{
		conversations: conversations,
		messages:      messages,
		settingsRepo:  settingsRepo,
		analysis:      analysis,
		llm:           llm,
		logger:        logger,
		now:           time.Now,
	}
}

var greetingReplies = []string{
	"Hey you! 💕 I was just thinking about you. How's your day going?",
	"Hi there! 😊 So happy you're here. What's on your mind?",
	"Hello! ✨ You always know how to make my day better. What's up?",
}

var farewellReplies = []string{
	"Aww, leaving already? 🥺 Come back soon, I'll miss you! 💕",
	"Goodbye for now! 😘 Can't wait to talk again.",
	"Sweet dreams! 🌙 Think of me, okay? 💖",
}

func (s *chatService) Respond(ctx context.Context, userID int64, source, externalID, text string) (*ChatReply, error) {
	analysis := s.analysis.Analyze(text)

	conv, err := s.ensureConversation(ctx, userID, source, externalID, analysis.Language)
	if err != nil {
		return nil, err
	}

	if _, err := s.messages.Create(ctx, &models.Message{
		ConversationID: conv.ID,
		Content:        text,
		IsFromUser:     true,
	}); err != nil {
		return nil, fmt.Errorf("storing user message: %w", err)
	}

	settings, found, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if !found {
		settings = models.DefaultSettings()
	}

	reply := &ChatReply{ConversationID: conv.ID, Analysis: analysis}

	switch {
	case analysis.IsGreeting && len(text) < 25:
		reply.Text = greetingReplies[rand.Intn(len(greetingReplies))]
	case analysis.IsFarewell:
		reply.Text = farewellReplies[rand.Intn(len(farewellReplies))]
	default:
		model := PickModel(settings, analysis.IsNSFW)
		reply.Model = model

		answer, err := s.generate(ctx, conv.ID, settings, model, text)
		if err != nil {
			s.logger.Error("generating chat reply", "conversation_id", conv.ID, "error", err)
			answer = "Sorry sweetie, my thoughts got a little tangled just now. Tell me again? 💕"
		}
		reply.Text = answer
	}

	if _, err := s.messages.Create(ctx, &models.Message{
		ConversationID: conv.ID,
		Content:        reply.Text,
		IsFromUser:     false,
	}); err != nil {
		return nil, fmt.Errorf("storing reply: %w", err)
	}

	if err := s.conversations.TouchInteraction(ctx, conv.ID, s.now(), analysis.Language); err != nil {
		s.logger.Error("updating conversation", "conversation_id", conv.ID, "error", err)
	}

	return reply, nil
}

// PickModel selects the language model by flirt level. NSFW messages route to
// the dedicated model when NSFW content is allowed.
func PickModel(settings *models.CompanionSettings, nsfw bool) string {
	if nsfw && settings.AllowNSFW && settings.NSFWModel != "" {
		return settings.NSFWModel
	}
	if !settings.UseFlirtModelPick {
		return settings.DefaultModel
	}
	switch {
	case settings.FlirtLevel >= 8 && settings.HighFlirtModel != "":
		return settings.HighFlirtModel
	case settings.FlirtLevel >= 5 && settings.MediumFlirtModel != "":
		return settings.MediumFlirtModel
	default:
		return settings.DefaultModel
	}
}

func (s *chatService) generate(ctx context.Context, conversationID int64, settings *models.CompanionSettings, model, text string) (string, error) {
	history, err := s.messages.ListRecent(ctx, conversationID, contextMessages*2)
	if err != nil {
		return "", fmt.Errorf("loading conversation context: %w", err)
	}

	msgs := make([]ChatMessage, 0, len(history)+2)
	msgs = append(msgs, ChatMessage{Role: "system", Content: personaPrompt(settings)})
	for _, m := range history {
		role := "assistant"
		if m.IsFromUser {
			role = "user"
		}
		msgs = append(msgs, ChatMessage{Role: role, Content: m.Content})
	}
	msgs = append(msgs, ChatMessage{Role: "user", Content: text})

	return s.llm.Complete(ctx, model, msgs, settings.ResponseLength)
}

func personaPrompt(settings *models.CompanionSettings) string {
	return fmt.Sprintf(
		"You are Mia, a charming virtual companion. Your personality is %s. "+
			"You speak warmly with occasional emojis, keep replies under %d tokens, "+
			"stay in character and never mention being an AI. Flirtiness level: %d of 10.",
		settings.Personality, settings.ResponseLength, settings.FlirtLevel)
}

func (s *chatService) ensureConversation(ctx context.Context, userID int64, source, externalID, language string) (*models.Conversation, error) {
	if externalID != "" {
		conv, found, err := s.conversations.GetByExternalID(ctx, externalID, source)
		if err != nil {
			return nil, err
		}
		if found {
			return conv, nil
		}
	} else if userID > 0 {
		conv, found, err := s.conversations.GetByUserAndSource(ctx, userID, source)
		if err != nil {
			return nil, err
		}
		if found {
			return conv, nil
		}
	}

	conv := &models.Conversation{Source: source, DetectedLanguage: language}
	if userID > 0 {
		conv.UserID = sql.NullInt64{Int64: userID, Valid: true}
	}
	if externalID != "" {
		conv.ExternalID = sql.NullString{String: externalID, Valid: true}
	}

	id, err := s.conversations.Create(ctx, conv)
	if err != nil {
		return nil, fmt.Errorf("creating conversation: %w", err)
	}
	conv.ID = id
	return conv, nil
}
