package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/mealplan-gateway/internal/domain"
	"github.com/yungbote/mealplan-gateway/internal/http/response"
	"github.com/yungbote/mealplan-gateway/internal/services"
)

type ShoppingListHandler struct {
	shoppingListService services.ShoppingListService
}

func NewShoppingListHandler(shoppingListService services.ShoppingListService) *ShoppingListHandler {
	return &ShoppingListHandler{shoppingListService: shoppingListService}
}

// GET /users/:user/shoppingList
func (h *ShoppingListHandler) GetShoppingList(c *gin.Context) {
	userID, err := intParam(c, "user")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	list, err := h.shoppingListService.Get(c.Request.Context(), userID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, list)
}

// PATCH /users/:user/shoppingList
// body: [{ "ingredient_id": 1, "quantity": 2, "measure": "kg" }]
func (h *ShoppingListHandler) UpdateShoppingList(c *gin.Context) {
	userID, err := intParam(c, "user")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	var entries []domain.ShoppingListEntry
	if err := bindJSON(c, &entries); err != nil {
		response.RespondError(c, err)
		return
	}
	saved, err := h.shoppingListService.Update(c.Request.Context(), userID, entries)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, saved)
}

// GET /users/:user/shoppingList/grouped
func (h *ShoppingListHandler) GroupedShoppingList(c *gin.Context) {
	userID, err := intParam(c, "user")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	groups, err := h.shoppingListService.Grouped(c.Request.Context(), userID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, groups)
}
