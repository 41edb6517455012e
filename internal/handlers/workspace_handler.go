package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"aprovafacil/internal/models"
	"aprovafacil/internal/pdf"
	"aprovafacil/internal/services"
)

type WorkspaceHandler struct {
	workspaces services.WorkspaceService
	boards     services.BoardService
	reports    pdf.Generator
}

func NewWorkspaceHandler(workspaces services.WorkspaceService, boards services.BoardService, reports pdf.Generator) *WorkspaceHandler {
	return &WorkspaceHandler{workspaces: workspaces, boards: boards, reports: reports}
}

// POST /workspaces
func (h *WorkspaceHandler) Create(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		LogoURL  string `json:"logo_url"`
		WhatsApp string `json:"whatsapp"`
		Email    string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida."})
		return
	}
	log.Printf("[workspace][create] staff=%d name=%q", getStaffID(c), req.Name)

	workspace, err := h.workspaces.Create(c.Request.Context(), &models.Workspace{
		Name:     req.Name,
		LogoURL:  req.LogoURL,
		WhatsApp: req.WhatsApp,
		Email:    req.Email,
	})
	if err != nil {
		respondServiceError(c, "workspace][create", err)
		return
	}
	c.JSON(http.StatusCreated, workspace)
}

// GET /workspaces
func (h *WorkspaceHandler) List(c *gin.Context) {
	workspaces, err := h.workspaces.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, "workspace][list", err)
		return
	}
	c.JSON(http.StatusOK, workspaces)
}

// GET /workspaces/:id
func (h *WorkspaceHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	workspace, err := h.workspaces.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, "workspace][get", err)
		return
	}
	if workspace == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": services.ErrWorkspaceNotFound.Error()})
		return
	}
	c.JSON(http.StatusOK, workspace)
}

// PUT /workspaces/:id
func (h *WorkspaceHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Name     string `json:"name" binding:"required"`
		LogoURL  string `json:"logo_url"`
		WhatsApp string `json:"whatsapp"`
		Email    string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida."})
		return
	}
	updated, err := h.workspaces.Update(c.Request.Context(), id, &models.Workspace{
		Name:     req.Name,
		LogoURL:  req.LogoURL,
		WhatsApp: req.WhatsApp,
		Email:    req.Email,
	})
	if err != nil {
		respondServiceError(c, "workspace][update", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// PUT /workspaces/:id/insights  { "month": "2024-07", ... }
func (h *WorkspaceHandler) UpsertInsight(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Month      string `json:"month" binding:"required"`
		Followers  int    `json:"followers"`
		Engagement int    `json:"engagement"`
		Reach      int    `json:"reach"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida."})
		return
	}
	insight := &models.InstagramInsight{
		WorkspaceID: id,
		Month:       req.Month,
		Followers:   req.Followers,
		Engagement:  req.Engagement,
		Reach:       req.Reach,
	}
	if err := h.workspaces.UpsertInsight(c.Request.Context(), insight); err != nil {
		respondServiceError(c, "workspace][insight", err)
		return
	}
	c.JSON(http.StatusOK, insight)
}

// GET /workspaces/:id/insights
func (h *WorkspaceHandler) Insights(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	insights, err := h.workspaces.Insights(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, "workspace][insights", err)
		return
	}
	c.JSON(http.StatusOK, insights)
}

// GET /workspaces/:id/report — resumo de aprovação em PDF
func (h *WorkspaceHandler) Report(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	data, err := h.boards.WorkspaceReport(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, "workspace][report", err)
		return
	}
	b, err := h.reports.ApprovalReport(*data)
	if err != nil {
		log.Printf("[workspace][report][err] render: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno."})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=relatorio_%d.pdf", id))
	c.Data(http.StatusOK, "application/pdf", b)
}
