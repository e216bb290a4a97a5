package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"pawsitive-coach/internal/domain"
	"pawsitive-coach/internal/llm"
	"pawsitive-coach/internal/repository"
)

// fallbackChatReply se usa cuando ningún modelo responde.
const fallbackChatReply = "I'm having a moment of difficulty connecting to my training knowledge base. Please try again in a moment! In the meantime, check out our comprehensive knowledge base for helpful training tips and techniques."

// Embedder genera vectores para la búsqueda semántica del knowledge base.
type Embedder interface {
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// ChatService orquesta el chat del coach: persiste el transcript, arma el
// prompt con la ficha del perro y el knowledge base, y delega en el LLM.
// Si el mensaje pide un plan, dispara la generación en lugar de conversar.
type ChatService struct {
	llmClient   llm.LLMClient
	embedder    Embedder
	messages    *MessageService
	contextSvc  ContextService
	animals     repository.AnimalRepository
	articles    repository.ArticleRepository
	planService *PlanService
	extraction  *ExtractionService
	logger      *zap.Logger
}

func NewChatService(
	llmClient llm.LLMClient,
	embedder Embedder,
	messages *MessageService,
	contextSvc ContextService,
	animals repository.AnimalRepository,
	articles repository.ArticleRepository,
	planService *PlanService,
	extraction *ExtractionService,
	logger *zap.Logger,
) *ChatService {
	return &ChatService{
		llmClient:   llmClient,
		embedder:    embedder,
		messages:    messages,
		contextSvc:  contextSvc,
		animals:     animals,
		articles:    articles,
		planService: planService,
		extraction:  extraction,
		logger:      logger,
	}
}

// ChatReply es la respuesta del coach más metadata del plan si se generó uno.
type ChatReply struct {
	Message     domain.Message `json:"message"`
	PlanCreated bool           `json:"plan_created"`
	PlanID      string         `json:"plan_id,omitempty"`
}

var ErrChatServiceNotConfigured = errors.New("chat service not configured")

// Chat procesa un mensaje del dueño y devuelve la respuesta del coach.
func (s *ChatService) Chat(ctx context.Context, userID, sessionID, animalID, userMessage string) (ChatReply, error) {
	if s == nil || s.llmClient == nil || s.messages == nil {
		return ChatReply{}, ErrChatServiceNotConfigured
	}

	userMessage = strings.TrimSpace(userMessage)
	if userMessage == "" {
		return ChatReply{}, ErrMessageInvalidInput
	}

	if err := s.messages.Save(ctx, domain.Message{
		UserID:    userID,
		SessionID: sessionID,
		Role:      domain.RoleUser,
		Content:   userMessage,
	}); err != nil {
		return ChatReply{}, fmt.Errorf("persist user message: %w", err)
	}

	s.enrichInBackground(userID, animalID, userMessage)

	if WantsTrainingPlan(userMessage) && animalID != "" && s.planService != nil {
		reply, ok := s.tryCreatePlan(ctx, userID, sessionID, animalID)
		if ok {
			return reply, nil
		}
		// Si el plan falla seguimos con una respuesta conversacional.
	}

	system := s.buildSystemPrompt(ctx, userID, animalID, userMessage)

	contextText := ""
	if s.contextSvc != nil {
		var err error
		contextText, err = s.contextSvc.GetContext(ctx, sessionID)
		if err != nil {
			contextText = ""
		}
	}

	chatMessages := make([]llm.ChatMessage, 0, 2)
	if contextText != "" {
		chatMessages = append(chatMessages, llm.ChatMessage{
			Role:    domain.RoleUser,
			Content: "Conversation so far:\n" + contextText,
		})
	}
	chatMessages = append(chatMessages, llm.ChatMessage{Role: domain.RoleUser, Content: userMessage})

	response, err := s.llmClient.GenerateChat(ctx, system, chatMessages)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("llm chat failed", zap.Error(err), zap.String("session_id", sessionID))
		}
		response = fallbackChatReply
	}

	coachMessage := domain.Message{
		ID:        uuid.NewString(),
		UserID:    userID,
		SessionID: sessionID,
		Role:      domain.RoleAssistant,
		Content:   response,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messages.Save(ctx, coachMessage); err != nil {
		return ChatReply{}, fmt.Errorf("persist coach message: %w", err)
	}

	return ChatReply{Message: coachMessage}, nil
}

// tryCreatePlan genera el plan y responde con el resumen. Devuelve ok=false
// para que el caller degrade a chat normal si algo falla.
func (s *ChatService) tryCreatePlan(ctx context.Context, userID, sessionID, animalID string) (ChatReply, bool) {
	plan, err := s.planService.GenerateForAnimal(ctx, userID, animalID)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("plan generation from chat failed",
				zap.Error(err),
				zap.String("animal_id", animalID),
			)
		}
		return ChatReply{}, false
	}

	dogName := "your dog"
	if s.animals != nil {
		if animal, err := s.animals.GetByID(ctx, animalID, userID); err == nil && animal.Name != "" {
			dogName = animal.Name
		}
	}

	summary := fmt.Sprintf(`I've created a personalized training plan for your dog! 🐕

**Your Training Plan Includes:**
- %d tailored exercises
- Progressive difficulty levels
- Estimated %d weeks to complete
- Breed-specific recommendations

**Next Steps:**
1. Visit your Dashboard to view the full plan
2. Start with the first recommended exercise
3. Track progress as you go

The plan is designed specifically for %s and takes into account their breed characteristics and any training goals you mentioned. Each exercise includes step-by-step instructions and personalized tips!

Would you like me to explain any specific exercise in detail?`,
		len(plan.ExerciseSequence),
		plan.EstimatedDurationWeeks,
		dogName,
	)

	coachMessage := domain.Message{
		ID:        uuid.NewString(),
		UserID:    userID,
		SessionID: sessionID,
		Role:      domain.RoleAssistant,
		Content:   summary,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.messages.Save(ctx, coachMessage); err != nil && s.logger != nil {
		s.logger.Warn("persist plan summary failed", zap.Error(err))
	}

	return ChatReply{
		Message:     coachMessage,
		PlanCreated: true,
		PlanID:      plan.ID,
	}, true
}

func (s *ChatService) buildSystemPrompt(ctx context.Context, userID, animalID, userMessage string) string {
	var sb strings.Builder

	sb.WriteString(`You are an expert dog training assistant specializing in positive reinforcement methods. Your role is to:

1. Provide science-based, ethical dog training advice
2. Focus exclusively on positive reinforcement techniques
3. Be encouraging and supportive to dog owners
4. Offer practical, actionable steps
5. Consider breed characteristics, age, and temperament
6. Address behavioral issues with compassion
7. Recommend professional help when needed
8. Never suggest aversive training methods

`)

	if s.animals != nil && animalID != "" {
		if animal, err := s.animals.GetByID(ctx, animalID, userID); err == nil {
			sb.WriteString(fmt.Sprintf("You know about %s", animal.Name))
			if animal.Breed != "" {
				sb.WriteString(fmt.Sprintf(" (a %s)", animal.Breed))
			}
			if months := animal.AgeInMonths(); months > 0 {
				sb.WriteString(fmt.Sprintf(" who is %d months old", months))
			}
			sb.WriteString(".\n")
			if len(animal.BehavioralConcerns) > 0 {
				sb.WriteString("Known behavioral concerns: " + strings.Join(animal.BehavioralConcerns, ", ") + ".\n")
			}
			sb.WriteString("\n")
		}
	}

	if kb := s.knowledgeContext(ctx, userMessage); kb != "" {
		sb.WriteString("Relevant knowledge base articles:\n")
		sb.WriteString(kb)
		sb.WriteString("\n")
	}

	sb.WriteString("Always be concise, friendly, and practical. If asked about topics unrelated to dog training, politely redirect to dog training topics.")
	return sb.String()
}

// knowledgeContext busca artículos cercanos al mensaje por similitud de embeddings.
// Cualquier fallo devuelve contexto vacío: el chat nunca se bloquea por el KB.
func (s *ChatService) knowledgeContext(ctx context.Context, userMessage string) string {
	if s.embedder == nil || s.articles == nil {
		return ""
	}

	embedding, err := s.embedder.CreateEmbedding(ctx, userMessage)
	if err != nil || len(embedding) == 0 {
		return ""
	}

	articles, err := s.articles.Search(ctx, pgvector.NewVector(embedding), 3)
	if err != nil {
		return ""
	}

	var sb strings.Builder
	for _, a := range articles {
		content := a.Content
		if len(content) > 500 {
			content = content[:500]
		}
		sb.WriteString(fmt.Sprintf("- %s: %s\n", a.Title, content))
	}
	return sb.String()
}

// enrichInBackground intenta completar la ficha del perro sin frenar el chat.
func (s *ChatService) enrichInBackground(userID, animalID, userMessage string) {
	if s.extraction == nil || animalID == "" {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		if err := s.extraction.EnrichAnimal(ctx, userID, animalID, userMessage); err != nil && s.logger != nil {
			s.logger.Debug("chat enrichment skipped", zap.Error(err), zap.String("animal_id", animalID))
		}
	}()
}
