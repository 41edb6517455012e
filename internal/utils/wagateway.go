package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GatewayClient fala com um gateway HTTP de WhatsApp (não oficial).
// Alternativa barata à Business Cloud API para números sem verificação Meta.
type GatewayClient struct {
	APIURL string
	APIKey string
	DryRun bool // dry-run: não faz requisição HTTP
	client *http.Client
}

type GatewaySendResponse struct {
	Status string `json:"status"`
	Data   struct {
		MessageID string `json:"messageId"`
	} `json:"data"`
}

func NewGatewayClient(apiURL, apiKey string, dryRun bool, timeout time.Duration) *GatewayClient {
	return &GatewayClient{
		APIURL: strings.TrimRight(apiURL, "/"),
		APIKey: apiKey,
		DryRun: dryRun,
		client: &http.Client{Timeout: timeout},
	}
}

// SendMessage envia texto para um número já normalizado ou para um ID de grupo.
func (c *GatewayClient) SendMessage(to, message string) (*GatewaySendResponse, error) {
	if c.DryRun || c.APIKey == "" {
		fmt.Printf("[wa-gateway][dry-run] to=%s text=%q\n", to, message)
		return &GatewaySendResponse{Status: "ok"}, nil
	}

	form := url.Values{
		"apiKey":  {c.APIKey},
		"number":  {to},
		"message": {message},
	}

	resp, err := c.client.PostForm(c.APIURL+"/message/send-text", form)
	if err != nil {
		return nil, fmt.Errorf("send gateway message: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(body))
	}

	var result GatewaySendResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse gateway response: %w", err)
	}
	if result.Status != "" && result.Status != "ok" && result.Status != "success" {
		return nil, fmt.Errorf("gateway returned error status: %s", result.Status)
	}
	return &result, nil
}
