package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"aprovafacil/internal/services"
)

// PublicHandler serves the unauthenticated token-gated routes: the approval
// link, the approval action and the read-only dashboard.
type PublicHandler struct {
	approvals services.ApprovalService
}

func NewPublicHandler(approvals services.ApprovalService) *PublicHandler {
	return &PublicHandler{approvals: approvals}
}

// GET /public/approval/:token
func (h *PublicHandler) PendingTasks(c *gin.Context) {
	token := c.Param("token")
	log.Printf("[public][pending] token=%s...", shorten(token))

	view, err := h.approvals.PendingTasks(c.Request.Context(), token)
	if err != nil {
		respondServiceError(c, "public][pending", err)
		return
	}
	log.Printf("[public][pending][ok] tasks=%d", len(view.Tasks))
	c.JSON(http.StatusOK, view)
}

// POST /public/approval/action
func (h *PublicHandler) Action(c *gin.Context) {
	var req struct {
		Token   string `json:"token" binding:"required"`
		TaskID  int64  `json:"taskId" binding:"required"`
		Action  string `json:"action" binding:"required"` // approve|edit
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[public][action][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida."})
		return
	}
	log.Printf("[public][action] token=%s... task=%d action=%q", shorten(req.Token), req.TaskID, req.Action)

	message, err := h.approvals.ProcessAction(c.Request.Context(), req.Token, req.TaskID, req.Action, req.Comment)
	if err != nil {
		respondServiceError(c, "public][action", err)
		return
	}
	log.Printf("[public][action][ok] task=%d action=%q", req.TaskID, req.Action)
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// GET /public/dashboard/:token
func (h *PublicHandler) Dashboard(c *gin.Context) {
	token := c.Param("token")
	log.Printf("[public][dashboard] token=%s...", shorten(token))

	view, err := h.approvals.DashboardData(c.Request.Context(), token)
	if err != nil {
		respondServiceError(c, "public][dashboard", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// tokens nunca vão inteiros para o log
func shorten(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[:8]
}
