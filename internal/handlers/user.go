package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	dom "Reminder/internal/domain"
	"Reminder/internal/dto"
	"Reminder/internal/service"
)

type UserHandler struct {
	svc *service.TodoService
}

func NewUserHandler(svc *service.TodoService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Create handles POST /users.
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.svc.CreateUser(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.Envelope{Message: "Successfully created new user", Data: userToResponse(u)})
}

// GetByID handles GET /users/:id.
func (h *UserHandler) GetByID(c *gin.Context) {
	u, err := h.svc.FindUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Envelope{Message: "Successfully retrieved the user", Data: userToResponse(u)})
}

// List handles GET /users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.FindAllUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.UserResponse, len(users))
	for i := range users {
		out[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, dto.Envelope{Message: "Successfully retrieved users", Data: dto.ListUsersResponse{Items: out}})
}

// Todos handles GET /users/:id/todos.
func (h *UserHandler) Todos(c *gin.Context) {
	list, err := h.svc.GetTodosByUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Envelope{Message: "Successfully retrieved todos", Data: dto.ListTodosResponse{Items: todosToResponses(list)}})
}

func userToResponse(u dom.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
