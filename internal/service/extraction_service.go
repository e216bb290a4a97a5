package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"pawsitive-coach/internal/llm"
	"pawsitive-coach/internal/repository"
)

// ExtractionService usa el LLM para sacar datos del perro a partir del chat
// (nombre, raza, edad, problemas de conducta) y completar la ficha.
type ExtractionService struct {
	llmClient llm.LLMClient
	animals   repository.AnimalRepository
	logger    *zap.Logger
}

func NewExtractionService(llmClient llm.LLMClient, animals repository.AnimalRepository, logger *zap.Logger) *ExtractionService {
	return &ExtractionService{
		llmClient: llmClient,
		animals:   animals,
		logger:    logger,
	}
}

// DogInfo es lo que el extractor puede inferir de una conversación.
// Los campos vacíos significan "no mencionado".
type DogInfo struct {
	Name               string   `json:"name"`
	Breed              string   `json:"breed"`
	AgeMonths          int      `json:"age_months"`
	BehavioralConcerns []string `json:"behavioral_concerns"`
}

// ExtractDogInfo analiza el texto del dueño y devuelve los datos detectados.
func (s *ExtractionService) ExtractDogInfo(ctx context.Context, transcript string) (DogInfo, error) {
	transcript = strings.TrimSpace(transcript)
	if transcript == "" {
		return DogInfo{}, nil
	}

	prompt := `You read chat messages from a dog owner and extract facts about their dog.
Return ONLY a JSON object with this shape (omit or empty what is not mentioned):
{
  "name": "Luna",
  "breed": "Beagle",
  "age_months": 8,
  "behavioral_concerns": ["leash pulling"]
}

Rules:
- age_months is the dog's age converted to months (0 when unknown).
- behavioral_concerns are short lowercase tags like "leash pulling", "jumping on guests".
- Never invent facts the owner did not state.

Owner messages:
` + transcript

	rawResp, err := s.llmClient.Generate(ctx, prompt)
	if err != nil {
		return DogInfo{}, fmt.Errorf("llm generate: %w", err)
	}

	cleaned := extractFirstJSONObject(cleanLLMJSONResponse(rawResp))
	if cleaned == "" {
		return DogInfo{}, fmt.Errorf("parse llm response: no JSON object found")
	}

	var info DogInfo
	if err := json.Unmarshal([]byte(cleaned), &info); err != nil {
		return DogInfo{}, fmt.Errorf("parse llm response: %w", err)
	}
	info.Name = strings.TrimSpace(info.Name)
	info.Breed = strings.TrimSpace(info.Breed)
	if info.AgeMonths < 0 {
		info.AgeMonths = 0
	}
	return info, nil
}

// EnrichAnimal completa la ficha del perro con lo mencionado en el chat.
// Solo llena huecos: nunca pisa datos que el dueño ya registró.
func (s *ExtractionService) EnrichAnimal(ctx context.Context, userID, animalID, transcript string) error {
	if s == nil || s.animals == nil || s.llmClient == nil {
		return errors.New("extraction service not configured")
	}

	animal, err := s.animals.GetByID(ctx, animalID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrAnimalNotFound
		}
		return fmt.Errorf("get animal: %w", err)
	}

	info, err := s.ExtractDogInfo(ctx, transcript)
	if err != nil {
		return err
	}

	changed := false
	if animal.Breed == "" && info.Breed != "" {
		animal.Breed = info.Breed
		changed = true
	}
	if animal.AgeInMonths() == 0 && info.AgeMonths > 0 {
		animal.AgeYears = info.AgeMonths / 12
		animal.AgeMonths = info.AgeMonths % 12
		changed = true
	}
	for _, concern := range info.BehavioralConcerns {
		concern = strings.ToLower(strings.TrimSpace(concern))
		if concern == "" || containsTag(animal.BehavioralConcerns, concern) {
			continue
		}
		animal.BehavioralConcerns = append(animal.BehavioralConcerns, concern)
		changed = true
	}

	if !changed {
		return nil
	}
	if err := s.animals.Update(ctx, animal); err != nil {
		if s.logger != nil {
			s.logger.Warn("enrich animal update failed", zap.Error(err), zap.String("animal_id", animalID))
		}
		return fmt.Errorf("update animal: %w", err)
	}
	return nil
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
