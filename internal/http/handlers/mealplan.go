package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/mealplan-gateway/internal/domain"
	"github.com/yungbote/mealplan-gateway/internal/http/response"
	"github.com/yungbote/mealplan-gateway/internal/services"
)

type MealPlanHandler struct {
	mealPlanService services.MealPlanService
}

func NewMealPlanHandler(mealPlanService services.MealPlanService) *MealPlanHandler {
	return &MealPlanHandler{mealPlanService: mealPlanService}
}

// GET /users/:user/mealPlans
func (h *MealPlanHandler) ListMealPlans(c *gin.Context) {
	userID, err := intParam(c, "user")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	plans, err := h.mealPlanService.List(c.Request.Context(), userID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, plans)
}

// GET /users/:user/mealPlans/:mealPlanId
func (h *MealPlanHandler) GetMealPlan(c *gin.Context) {
	userID, err := intParam(c, "user")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	planID, err := intParam(c, "mealPlanId")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	plan, err := h.mealPlanService.Get(c.Request.Context(), userID, planID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, plan)
}

// POST /users/:user/mealPlans
func (h *MealPlanHandler) SaveMealPlan(c *gin.Context) {
	userID, err := intParam(c, "user")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	var plan domain.MealPlan
	if err := bindJSON(c, &plan); err != nil {
		response.RespondError(c, err)
		return
	}
	saved, err := h.mealPlanService.Save(c.Request.Context(), userID, plan)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, saved)
}

// GET /mealPlans?calories&days&mealsPerDay&diet
func (h *MealPlanHandler) GenerateMealPlan(c *gin.Context) {
	calories, err := floatQuery(c, "calories")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	days, err := intQuery(c, "days", 7)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	meals, err := intQuery(c, "mealsPerDay", 3)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	plan, err := h.mealPlanService.Generate(c.Request.Context(), services.GeneratePlanRequest{
		Calories:    calories,
		Days:        days,
		MealsPerDay: meals,
		Diet:        domain.DietType(c.Query("diet")),
	})
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, plan)
}
