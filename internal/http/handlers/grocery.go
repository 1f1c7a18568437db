package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/mealplan-gateway/internal/domain"
	"github.com/yungbote/mealplan-gateway/internal/http/response"
	"github.com/yungbote/mealplan-gateway/internal/services"
)

type GroceryHandler struct {
	groceryService services.GroceryService
}

func NewGroceryHandler(groceryService services.GroceryService) *GroceryHandler {
	return &GroceryHandler{groceryService: groceryService}
}

// POST /ingredients/grouped
// body: [{ "ingredient_id": 1 }]
func (h *GroceryHandler) GroupIngredients(c *gin.Context) {
	var refs []domain.IngredientRef
	if err := bindJSON(c, &refs); err != nil {
		response.RespondError(c, err)
		return
	}
	groups, err := h.groceryService.GroupIngredients(c.Request.Context(), refs)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, groups)
}

// POST /shops?lat&lon
// body: ["meat", "dairy"]
func (h *GroceryHandler) NearbyShops(c *gin.Context) {
	lat, err := floatQuery(c, "lat")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	lon, err := floatQuery(c, "lon")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	var categories []string
	if err := bindJSON(c, &categories); err != nil {
		response.RespondError(c, err)
		return
	}
	shops, err := h.groceryService.NearbyShops(c.Request.Context(), domain.Coordinates{Lat: lat, Lon: lon}, categories)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, shops)
}
