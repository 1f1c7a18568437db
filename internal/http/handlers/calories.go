package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/mealplan-gateway/internal/domain"
	"github.com/yungbote/mealplan-gateway/internal/http/response"
	"github.com/yungbote/mealplan-gateway/internal/services"
)

type CaloriesHandler struct {
	caloriesService services.CaloriesService
}

func NewCaloriesHandler(caloriesService services.CaloriesService) *CaloriesHandler {
	return &CaloriesHandler{caloriesService: caloriesService}
}

// GET /calories?height&weight&age&sex&activityFactor
func (h *CaloriesHandler) NeededCalories(c *gin.Context) {
	var data domain.CaloriesData
	var err error
	if data.Height, err = floatQuery(c, "height"); err != nil {
		response.RespondError(c, err)
		return
	}
	if data.Weight, err = floatQuery(c, "weight"); err != nil {
		response.RespondError(c, err)
		return
	}
	if data.Age, err = floatQuery(c, "age"); err != nil {
		response.RespondError(c, err)
		return
	}
	data.Sex = domain.ParseSex(c.Query("sex"))
	data.ActivityFactor = domain.ParseActivityFactor(c.Query("activityFactor"))

	needed, err := h.caloriesService.NeededCalories(data)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"neededCalories": needed})
}
