package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/mealplan-gateway/internal/domain"
	"github.com/yungbote/mealplan-gateway/internal/http/response"
	"github.com/yungbote/mealplan-gateway/internal/services"
)

type RecipeHandler struct {
	recipeService services.RecipeService
}

func NewRecipeHandler(recipeService services.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService}
}

// GET /users/:user/recipes
func (h *RecipeHandler) ListUserRecipes(c *gin.Context) {
	userID, err := intParam(c, "user")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	refs, err := h.recipeService.ListSaved(c.Request.Context(), userID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, refs)
}

// POST /users/:user/recipes
// body: [{ "recipe_id": 123 }]
func (h *RecipeHandler) SaveUserRecipes(c *gin.Context) {
	userID, err := intParam(c, "user")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	var refs []domain.RecipeRef
	if err := bindJSON(c, &refs); err != nil {
		response.RespondError(c, err)
		return
	}
	saved, err := h.recipeService.Save(c.Request.Context(), userID, refs)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, saved)
}

// DELETE /users/:user/recipes/:recipeId
func (h *RecipeHandler) DeleteUserRecipe(c *gin.Context) {
	userID, err := intParam(c, "user")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	recipeID, err := intParam(c, "recipeId")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	deleted, err := h.recipeService.Delete(c.Request.Context(), userID, recipeID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, deleted)
}

// GET /recipes?q&diet&n
func (h *RecipeHandler) SearchRecipes(c *gin.Context) {
	n, err := intQuery(c, "n", 1)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	found, err := h.recipeService.Search(c.Request.Context(), c.Query("q"), domain.DietType(c.Query("diet")), n)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, found)
}

// GET /recipes/:recipeId
func (h *RecipeHandler) RecipeDetails(c *gin.Context) {
	recipeID, err := intParam(c, "recipeId")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	recipe, err := h.recipeService.Details(c.Request.Context(), recipeID)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, recipe)
}
