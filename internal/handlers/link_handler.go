package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"aprovafacil/internal/models"
	"aprovafacil/internal/services"
)

// LinkHandler issues and manages the public share links (staff side).
type LinkHandler struct {
	tokens     services.TokenService
	workspaces services.WorkspaceService
	notifier   services.Notifier
	emails     services.EmailService
}

func NewLinkHandler(tokens services.TokenService, workspaces services.WorkspaceService, notifier services.Notifier, emails services.EmailService) *LinkHandler {
	return &LinkHandler{tokens: tokens, workspaces: workspaces, notifier: notifier, emails: emails}
}

// POST /links  { "group_id": 1, "kind": "approval"|"dashboard", "notify": true }
func (h *LinkHandler) Create(c *gin.Context) {
	var req struct {
		GroupID int64  `json:"group_id" binding:"required"`
		Kind    string `json:"kind"`
		Notify  bool   `json:"notify"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[link][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida."})
		return
	}
	kind := models.LinkApproval
	if req.Kind == string(models.LinkDashboard) {
		kind = models.LinkDashboard
	}
	log.Printf("[link][create] staff=%d group=%d kind=%s notify=%v", getStaffID(c), req.GroupID, kind, req.Notify)

	token, url, err := h.tokens.CreateLink(c.Request.Context(), kind, req.GroupID)
	if err != nil {
		respondServiceError(c, "link][create", err)
		return
	}

	resp := gin.H{"token": token, "url": url}

	// envio ao cliente é melhor-esforço: o link já existe
	if req.Notify && kind == models.LinkApproval {
		workspace, err := h.workspaces.GetByID(c.Request.Context(), token.WorkspaceID)
		if err != nil || workspace == nil {
			log.Printf("[link][create][notify][err] workspace=%d: %v", token.WorkspaceID, err)
		} else {
			text := "Olá! Você tem conteúdos aguardando aprovação.\nAcesse: " + url
			res, err := h.notifier.ClientMessage(workspace, text)
			if err != nil {
				log.Printf("[link][create][notify][err] %v", err)
				res.Detail = text
				res.Skipped = true
			}
			resp["delivery"] = res
		}
	}

	log.Printf("[link][create][ok] group=%d kind=%s", req.GroupID, kind)
	c.JSON(http.StatusCreated, resp)
}

// GET /workspaces/:id/links
func (h *LinkHandler) ListByWorkspace(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	links, err := h.tokens.ListByWorkspace(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, "link][list", err)
		return
	}
	c.JSON(http.StatusOK, links)
}

// DELETE /links/:token — flip is_active; o registro permanece
func (h *LinkHandler) Deactivate(c *gin.Context) {
	token := c.Param("token")
	if err := h.tokens.Deactivate(c.Request.Context(), token); err != nil {
		respondServiceError(c, "link][deactivate", err)
		return
	}
	log.Printf("[link][deactivate][ok] token=%s...", shorten(token))
	c.Status(http.StatusNoContent)
}

// POST /links/email  { "workspace_id": 1, "url": "https://..." }
func (h *LinkHandler) SendByEmail(c *gin.Context) {
	var req struct {
		WorkspaceID int64  `json:"workspace_id" binding:"required"`
		URL         string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida."})
		return
	}
	workspace, err := h.workspaces.GetByID(c.Request.Context(), req.WorkspaceID)
	if err != nil {
		respondServiceError(c, "link][email", err)
		return
	}
	if workspace == nil || workspace.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Workspace sem e-mail cadastrado."})
		return
	}
	if err := h.emails.SendApprovalLink(workspace.Email, workspace.Name, req.URL); err != nil {
		log.Printf("[link][email][err] workspace=%d: %v", req.WorkspaceID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Falha ao enviar e-mail."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "E-mail enviado."})
}
