package controllers_fx

import (
	"go.uber.org/fx"

	"wayfarer/internal/api/controllers"
	"wayfarer/internal/services"
)

var Module = fx.Provide(providePlanController)

func providePlanController(plannerService services.PlannerServiceInterface) *controllers.PlanController {
	return controllers.NewPlanController(plannerService)
}
