package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"pawsitive-coach/internal/domain"
	"pawsitive-coach/internal/repository"
)

// AnimalHandler mantiene dependencias para los endpoints de perros y preferencias.
type AnimalHandler struct {
	logger      *zap.Logger
	animals     repository.AnimalRepository
	preferences repository.PreferencesRepository
}

// NewAnimalHandler crea una instancia de AnimalHandler con dependencias necesarias.
func NewAnimalHandler(
	logger *zap.Logger,
	animals repository.AnimalRepository,
	preferences repository.PreferencesRepository,
) *AnimalHandler {
	return &AnimalHandler{
		logger:      logger,
		animals:     animals,
		preferences: preferences,
	}
}

type animalRequest struct {
	Name               string   `json:"name" binding:"required"`
	Breed              string   `json:"breed"`
	AgeYears           int      `json:"age_years"`
	AgeMonths          int      `json:"age_months"`
	EnergyLevel        string   `json:"energy_level"`
	TemperamentTraits  []string `json:"temperament_traits"`
	CurrentSkills      []string `json:"current_skills"`
	BehavioralConcerns []string `json:"behavioral_concerns"`
}

// CreateAnimal maneja POST /animals.
func (h *AnimalHandler) CreateAnimal(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth"})
		return
	}

	var req animalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create animal request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.AgeYears < 0 || req.AgeMonths < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "age must be non-negative"})
		return
	}

	now := time.Now().UTC()
	animal := domain.AnimalProfile{
		ID:                 uuid.NewString(),
		UserID:             claims.UserID,
		Name:               req.Name,
		Breed:              req.Breed,
		AgeYears:           req.AgeYears,
		AgeMonths:          req.AgeMonths,
		EnergyLevel:        req.EnergyLevel,
		TemperamentTraits:  req.TemperamentTraits,
		CurrentSkills:      req.CurrentSkills,
		BehavioralConcerns: req.BehavioralConcerns,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := h.animals.Create(c.Request.Context(), animal); err != nil {
		h.logger.Error("create animal failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create animal"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"animal": animal})
}

// ListAnimals maneja GET /animals.
func (h *AnimalHandler) ListAnimals(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth"})
		return
	}

	animals, err := h.animals.ListByUserID(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("list animals failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list animals"})
		return
	}
	if animals == nil {
		animals = []domain.AnimalProfile{}
	}

	c.JSON(http.StatusOK, gin.H{"animals": animals})
}

// GetAnimal maneja GET /animals/:id.
func (h *AnimalHandler) GetAnimal(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth"})
		return
	}

	animal, err := h.animals.GetByID(c.Request.Context(), c.Param("id"), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "animal not found"})
			return
		}
		h.logger.Error("get animal failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch animal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"animal": animal})
}

// UpdateAnimal maneja PUT /animals/:id.
func (h *AnimalHandler) UpdateAnimal(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth"})
		return
	}

	var req animalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update animal request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	animal, err := h.animals.GetByID(c.Request.Context(), c.Param("id"), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "animal not found"})
			return
		}
		h.logger.Error("get animal failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch animal"})
		return
	}

	animal.Name = req.Name
	animal.Breed = req.Breed
	animal.AgeYears = req.AgeYears
	animal.AgeMonths = req.AgeMonths
	animal.EnergyLevel = req.EnergyLevel
	animal.TemperamentTraits = req.TemperamentTraits
	animal.CurrentSkills = req.CurrentSkills
	animal.BehavioralConcerns = req.BehavioralConcerns
	animal.UpdatedAt = time.Now().UTC()

	if err := h.animals.Update(c.Request.Context(), animal); err != nil {
		h.logger.Error("update animal failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update animal"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"animal": animal})
}

// UpsertPreferences maneja PUT /preferences.
func (h *AnimalHandler) UpsertPreferences(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth"})
		return
	}

	var req struct {
		TrainingExperience    string   `json:"training_experience"`
		TimeCommitmentMinutes int      `json:"time_commitment_minutes"`
		TrainingGoals         []string `json:"training_goals"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid preferences request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.TimeCommitmentMinutes < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "time commitment must be non-negative"})
		return
	}

	now := time.Now().UTC()
	prefs := domain.OwnerPreferences{
		UserID:                claims.UserID,
		TrainingExperience:    req.TrainingExperience,
		TimeCommitmentMinutes: req.TimeCommitmentMinutes,
		TrainingGoals:         req.TrainingGoals,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := h.preferences.Upsert(c.Request.Context(), prefs); err != nil {
		h.logger.Error("upsert preferences failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

// GetPreferences maneja GET /preferences.
func (h *AnimalHandler) GetPreferences(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth"})
		return
	}

	prefs, err := h.preferences.GetByUserID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "preferences not found"})
			return
		}
		h.logger.Error("get preferences failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}
