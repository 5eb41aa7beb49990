package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	dom "Reminder/internal/domain"
	"Reminder/internal/dto"
	"Reminder/internal/service"
)

type TodoHandler struct {
	svc *service.TodoService
}

func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// Create handles POST /todos.
func (h *TodoHandler) Create(c *gin.Context) {
	var req dto.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.svc.CreateTodo(c.Request.Context(), service.CreateTodoInput{
		UserID:      req.UserID,
		Title:       req.Title,
		Description: req.Description,
		RemindAt:    req.RemindAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.Envelope{Message: "Successfully created new to-do", Data: todoToResponse(t)})
}

// GetByID handles GET /todos/:id.
func (h *TodoHandler) GetByID(c *gin.Context) {
	t, err := h.svc.FindTodoByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Envelope{Message: "Successfully retrieved the to-do", Data: todoToResponse(t)})
}

// Update handles PATCH /todos/:id.
func (h *TodoHandler) Update(c *gin.Context) {
	var req dto.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.svc.UpdateTodo(c.Request.Context(), c.Param("id"), service.UpdateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		RemindAt:    req.RemindAt,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Envelope{Message: "Successfully updated the to-do", Data: todoToResponse(t)})
}

// Delete handles DELETE /todos/:id (soft delete).
func (h *TodoHandler) Delete(c *gin.Context) {
	t, err := h.svc.DeleteTodo(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Envelope{Message: "Successfully deleted the to-do", Data: todoToResponse(t)})
}

// Complete handles POST /todos/:id/complete.
func (h *TodoHandler) Complete(c *gin.Context) {
	t, err := h.svc.CompleteTodo(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Envelope{Message: "Successfully completed the to-do", Data: todoToResponse(t)})
}

// Share handles POST /todos/:id/share.
func (h *TodoHandler) Share(c *gin.Context) {
	var req dto.ShareTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t, err := h.svc.Share(c.Request.Context(), c.Param("id"), req.UserIDTarget)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.Envelope{Message: "The todo has been successfully shared", Data: todoToResponse(t)})
}

func todoToResponse(t dom.Todo) dto.TodoResponse {
	return dto.TodoResponse{
		ID:          t.ID,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		RemindAt:    t.RemindAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func todosToResponses(list []dom.Todo) []dto.TodoResponse {
	out := make([]dto.TodoResponse, len(list))
	for i := range list {
		out[i] = todoToResponse(list[i])
	}
	return out
}
