package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/mealplan-gateway/internal/domain"
	"github.com/yungbote/mealplan-gateway/internal/http/response"
	"github.com/yungbote/mealplan-gateway/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GET /users/:user
func (uh *UserHandler) GetUser(c *gin.Context) {
	u, err := uh.userService.GetByUsername(c.Request.Context(), c.Param("user"))
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, u)
}

// POST /users
func (uh *UserHandler) CreateUser(c *gin.Context) {
	var req domain.User
	if err := bindJSON(c, &req); err != nil {
		response.RespondError(c, err)
		return
	}
	u, err := uh.userService.Create(c.Request.Context(), req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondCreated(c, u)
}

// PATCH /users/:user
// The path segment is the numeric user id here.
func (uh *UserHandler) UpdateUser(c *gin.Context) {
	id, err := intParam(c, "user")
	if err != nil {
		response.RespondError(c, err)
		return
	}
	var req domain.User
	if err := bindJSON(c, &req); err != nil {
		response.RespondError(c, err)
		return
	}
	u, err := uh.userService.Update(c.Request.Context(), id, req)
	if err != nil {
		response.RespondError(c, err)
		return
	}
	response.RespondOK(c, u)
}
