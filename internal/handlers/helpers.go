package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"aprovafacil/internal/services"
)

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// mais tolerante a tipos (int / int64 / float64 / string)
func getInt64FromCtx(c *gin.Context, key string) (int64, bool) {
	v, ok := c.Get(key)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int64:
		return t, true
	case float64:
		return int64(t), true
	case string:
		if n, err := strconv.ParseInt(t, 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

func getStaffID(c *gin.Context) int64 {
	id, _ := getInt64FromCtx(c, "user_id")
	return id
}

// respondServiceError: erros de domínio viram 400 com a mensagem localizada;
// o resto é 500 genérico (detalhe só no log).
func respondServiceError(c *gin.Context, tag string, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidToken),
		errors.Is(err, services.ErrMissingComment),
		errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrColumnNotFound),
		errors.Is(err, services.ErrWorkspaceNotFound),
		errors.Is(err, services.ErrGroupNotFound),
		errors.Is(err, services.ErrInvalidAction),
		errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrNameRequired):
		log.Printf("[%s][reject] %v", tag, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("[%s][err] %v", tag, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erro interno."})
	}
}
