package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"aprovafacil/internal/services"
)

// CronHandler is the target of the external scheduler.
type CronHandler struct {
	deadlines services.DeadlineService
}

func NewCronHandler(deadlines services.DeadlineService) *CronHandler {
	return &CronHandler{deadlines: deadlines}
}

// POST /cron/check-deadlines
func (h *CronHandler) CheckDeadlines(c *gin.Context) {
	n, err := h.deadlines.CheckDeadlines(c.Request.Context())
	if err != nil {
		log.Printf("[cron][deadlines][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno."})
		return
	}
	log.Printf("[cron][deadlines][ok] sent=%d", n)
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Checked deadlines. Sent %d notifications.", n)})
}
