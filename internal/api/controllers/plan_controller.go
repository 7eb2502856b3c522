package controllers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"wayfarer/internal/models/request_models"
	"wayfarer/internal/services"
	"wayfarer/pkg/utils"
)

type PlanController struct {
	plannerService services.PlannerServiceInterface
}

func NewPlanController(plannerService services.PlannerServiceInterface) *PlanController {
	return &PlanController{
		plannerService: plannerService,
	}
}

// PlanHandler handles POST /plan?mode=graph|crew.
func (p *PlanController) PlanHandler(c *gin.Context) {
	var req request_models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request format")
		return
	}

	mode := c.DefaultQuery("mode", services.ModeGraph)

	result, err := p.plannerService.Plan(c.Request.Context(), &req, mode)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Itinerary generated successfully")
}

func (p *PlanController) HealthHandler(c *gin.Context) {
	utils.RespondSuccess(c, gin.H{"status": "healthy"}, "OK")
}

// StatusHandler reports which planning modes and data sources are usable
// with the current configuration.
func (p *PlanController) StatusHandler(c *gin.Context) {
	utils.RespondSuccess(c, gin.H{
		"modes": gin.H{
			"graph": true,
			"crew":  os.Getenv("OPENAI_API_KEY") != "" || os.Getenv("GEMINI_API_KEY") != "",
		},
		"sources": gin.H{
			"places":     os.Getenv("FOURSQUARE_API_KEY") != "",
			"weather":    os.Getenv("OPENWEATHER_API_KEY") != "",
			"directions": os.Getenv("MAPBOX_ACCESS_TOKEN") != "",
			"catalog_db": os.Getenv("POSTGRES_URL") != "",
		},
	}, "Service status")
}
