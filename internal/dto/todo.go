package dto

import "time"

// Envelope is the success response wrapper.
type Envelope struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

type CreateTodoRequest struct {
	UserID      string `json:"userId" binding:"required"`
	Title       string `json:"title" binding:"required,min=1,max=120"`
	Description string `json:"description" binding:"max=1000"`
	RemindAt    string `json:"remindAt"` // optional: "2026-02-19" or RFC3339
}

type UpdateTodoRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=120"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	Status      *string `json:"status" binding:"omitempty"`
	RemindAt    *string `json:"remindAt"`
}

// ShareTodoRequest is the JSON body for POST /todos/:id/share.
type ShareTodoRequest struct {
	UserIDTarget string `json:"userIdTarget" binding:"required"`
}

type TodoResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	RemindAt    *time.Time `json:"remindAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type ListTodosResponse struct {
	Items []TodoResponse `json:"items"`
}
