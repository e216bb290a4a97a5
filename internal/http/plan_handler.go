package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"pawsitive-coach/internal/domain"
	"pawsitive-coach/internal/service"
)

// PlanHandler mantiene dependencias para los endpoints de planes.
type PlanHandler struct {
	logger   *zap.Logger
	planServ *service.PlanService
}

// NewPlanHandler crea una instancia de PlanHandler con dependencias necesarias.
func NewPlanHandler(logger *zap.Logger, planServ *service.PlanService) *PlanHandler {
	return &PlanHandler{
		logger:   logger,
		planServ: planServ,
	}
}

// GeneratePlan maneja POST /animals/:id/plans.
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth"})
		return
	}

	plan, err := h.planServ.GenerateForAnimal(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAnimalNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "animal not found"})
		case errors.Is(err, service.ErrPlanRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many plan requests"})
		case errors.Is(err, service.ErrEmptyCatalog):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "exercise catalog unavailable"})
		default:
			h.logger.Error("generate plan failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate plan"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"plan": plan})
}

// ListPlans maneja GET /animals/:id/plans.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth"})
		return
	}

	plans, err := h.planServ.ListForAnimal(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		h.logger.Error("list plans failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list plans"})
		return
	}
	if plans == nil {
		plans = []domain.TrainingPlan{}
	}

	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// GetPlan maneja GET /plans/:id.
func (h *PlanHandler) GetPlan(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth"})
		return
	}

	plan, err := h.planServ.Get(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
			return
		}
		h.logger.Error("get plan failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// AdvanceProgress maneja POST /plans/:id/progress.
func (h *PlanHandler) AdvanceProgress(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth"})
		return
	}

	plan, err := h.planServ.AdvanceProgress(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "plan not found"})
			return
		}
		h.logger.Error("advance progress failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update progress"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"plan": plan})
}
