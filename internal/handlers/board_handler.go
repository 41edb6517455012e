package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"aprovafacil/internal/models"
	"aprovafacil/internal/services"
)

// BoardHandler covers the staff-side board management: groups, columns, tasks.
type BoardHandler struct {
	boards services.BoardService
}

func NewBoardHandler(boards services.BoardService) *BoardHandler {
	return &BoardHandler{boards: boards}
}

// POST /groups  { "workspace_id": 1, "name": "Conteúdo Julho" }
func (h *BoardHandler) CreateGroup(c *gin.Context) {
	var req struct {
		WorkspaceID int64  `json:"workspace_id" binding:"required"`
		Name        string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida."})
		return
	}
	log.Printf("[board][group][create] staff=%d workspace=%d name=%q", getStaffID(c), req.WorkspaceID, req.Name)

	group, err := h.boards.CreateGroup(c.Request.Context(), req.WorkspaceID, req.Name)
	if err != nil {
		respondServiceError(c, "board][group", err)
		return
	}
	c.JSON(http.StatusCreated, group)
}

// GET /groups/:id/board
func (h *BoardHandler) Board(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	view, err := h.boards.Board(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, "board][view", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// POST /columns
func (h *BoardHandler) CreateColumn(c *gin.Context) {
	var req struct {
		GroupID  int64  `json:"group_id" binding:"required"`
		Title    string `json:"title" binding:"required"`
		Position int    `json:"position"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida."})
		return
	}
	column, err := h.boards.CreateColumn(c.Request.Context(), &models.Column{
		GroupID:  req.GroupID,
		Title:    req.Title,
		Position: req.Position,
	})
	if err != nil {
		respondServiceError(c, "board][column", err)
		return
	}
	c.JSON(http.StatusCreated, column)
}

// PATCH /columns/:id/position  { "position": 2 }
func (h *BoardHandler) MoveColumn(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Position int `json:"position"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida."})
		return
	}
	if err := h.boards.MoveColumn(c.Request.Context(), id, req.Position); err != nil {
		respondServiceError(c, "board][column-move", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /tasks
func (h *BoardHandler) CreateTask(c *gin.Context) {
	var req struct {
		GroupID     int64    `json:"group_id" binding:"required"`
		ColumnID    int64    `json:"column_id"`
		Title       string   `json:"title" binding:"required"`
		Description string   `json:"description"`
		Attachments []string `json:"attachments"`
		DueDate     *string  `json:"due_date"` // "2006-01-02"
		DueTime     *string  `json:"due_time"` // "15:04"
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[board][task][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida."})
		return
	}
	task := &models.Task{
		GroupID:     req.GroupID,
		ColumnID:    req.ColumnID,
		Title:       req.Title,
		Description: req.Description,
		Attachments: req.Attachments,
		DueDate:     req.DueDate,
		DueTime:     req.DueTime,
	}
	created, err := h.boards.CreateTask(c.Request.Context(), task)
	if err != nil {
		respondServiceError(c, "board][task", err)
		return
	}
	log.Printf("[board][task][ok] id=%d group=%d title=%q", created.ID, created.GroupID, created.Title)
	c.JSON(http.StatusCreated, created)
}

// PUT /tasks/:id
func (h *BoardHandler) UpdateTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		ColumnID    int64    `json:"column_id"`
		Title       string   `json:"title" binding:"required"`
		Description string   `json:"description"`
		Attachments []string `json:"attachments"`
		DueDate     *string  `json:"due_date"`
		DueTime     *string  `json:"due_time"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida."})
		return
	}
	updated, err := h.boards.UpdateTask(c.Request.Context(), id, &models.Task{
		ColumnID:    req.ColumnID,
		Title:       req.Title,
		Description: req.Description,
		Attachments: req.Attachments,
		DueDate:     req.DueDate,
		DueTime:     req.DueTime,
	})
	if err != nil {
		respondServiceError(c, "board][task-update", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DELETE /tasks/:id
func (h *BoardHandler) DeleteTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.boards.DeleteTask(c.Request.Context(), id); err != nil {
		respondServiceError(c, "board][task-delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /tasks/:id/move  { "column_id": 3 }
func (h *BoardHandler) MoveTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		ColumnID int64 `json:"column_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida."})
		return
	}
	log.Printf("[board][task-move] staff=%d task=%d column=%d", getStaffID(c), id, req.ColumnID)

	task, err := h.boards.MoveTask(c.Request.Context(), id, req.ColumnID)
	if err != nil {
		respondServiceError(c, "board][task-move", err)
		return
	}
	c.JSON(http.StatusOK, task)
}
