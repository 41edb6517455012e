package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// WhatsAppService fala com a WhatsApp Business Cloud API (Meta).
type WhatsAppService struct {
	phoneNumberID string
	accessToken   string
	baseURL       string
	client        *http.Client
}

type waResp struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

func NewWhatsAppService(phoneNumberID, accessToken string, timeout time.Duration) *WhatsAppService {
	return &WhatsAppService{
		phoneNumberID: phoneNumberID,
		accessToken:   accessToken,
		baseURL:       "https://graph.facebook.com/v19.0",
		client:        &http.Client{Timeout: timeout},
	}
}

// SendText envia texto para um número já normalizado (só dígitos, com DDI).
func (w *WhatsAppService) SendText(to, text string) error {
	if w == nil || w.accessToken == "" || w.phoneNumberID == "" || to == "" {
		log.Printf("[wa][skip] credentials or recipient empty (creds? %v to=%q)",
			w != nil && w.accessToken != "", to)
		return nil
	}
	body := map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "text",
		"text":              map[string]any{"body": text},
	}
	b, _ := json.Marshal(body)
	url := fmt.Sprintf("%s/%s/messages", w.baseURL, w.phoneNumberID)
	req, _ := http.NewRequest("POST", url, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+w.accessToken)

	resp, err := w.client.Do(req)
	if err != nil {
		log.Printf("[wa][send][err] http: %v", err)
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	var api waResp
	_ = json.Unmarshal(respBody, &api)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// corpo da resposta vai para o log para diagnóstico
		log.Printf("[wa][send][err] http_status=%d body=%s", resp.StatusCode, string(respBody))
		return fmt.Errorf("whatsapp send failed: status=%d code=%d desc=%s",
			resp.StatusCode, api.Error.Code, api.Error.Message)
	}
	log.Printf("[wa][send][ok] to=%s", to)
	return nil
}
