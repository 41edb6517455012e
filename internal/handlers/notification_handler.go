package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"aprovafacil/internal/services"
)

// NotificationHandler exposes the internal dispatch endpoints: raw message
// passthroughs to the relay, used by staff tooling.
type NotificationHandler struct {
	notifier services.Notifier
}

func NewNotificationHandler(notifier services.Notifier) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

// POST /notifications/whatsapp  { "to": "...", "message": "..." } ou
// { "whatsappGroupId": "...", "message": "..." }
func (h *NotificationHandler) SendWhatsApp(c *gin.Context) {
	var req struct {
		To              string `json:"to"`
		WhatsAppGroupID string `json:"whatsappGroupId"`
		Message         string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida."})
		return
	}
	target := req.To
	if target == "" {
		target = req.WhatsAppGroupID
	}
	if target == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Destinatário é obrigatório."})
		return
	}

	res, err := h.notifier.WhatsAppDirect(target, req.Message)
	if err != nil {
		log.Printf("[notify][whatsapp][err] %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Falha ao enviar mensagem."})
		return
	}
	if res.Skipped {
		c.JSON(http.StatusOK, gin.H{"message": "Backend não configurado; mensagem não enviada.", "delivery": res})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Mensagem enviada.", "delivery": res})
}

// POST /notifications/telegram  { "message": "..." }
func (h *NotificationHandler) SendTelegram(c *gin.Context) {
	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requisição inválida."})
		return
	}

	res, err := h.notifier.StaffAlert(req.Message)
	if err != nil {
		log.Printf("[notify][telegram][err] %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Falha ao enviar mensagem."})
		return
	}
	if res.Skipped {
		c.JSON(http.StatusOK, gin.H{"message": "Backend não configurado; mensagem não enviada.", "delivery": res})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Mensagem enviada.", "delivery": res})
}
