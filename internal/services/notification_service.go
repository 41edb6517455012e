package services

import (
	"log"
	"strings"

	"aprovafacil/internal/config"
	"aprovafacil/internal/models"
	"aprovafacil/internal/utils"
)

// SendResult reports what the relay did with a message. Skipped means the
// selected backend was not configured: the primary action must not treat this
// as a failure, and Detail carries the composed text so the UI can offer a
// copy-to-clipboard fallback.
type SendResult struct {
	Channel string `json:"channel"`
	Skipped bool   `json:"skipped"`
	Detail  string `json:"detail,omitempty"`
}

type TelegramSender interface {
	SendMessage(text string) error
}

type WhatsAppSender interface {
	SendText(to, text string) error
}

type GatewaySender interface {
	SendMessage(to, message string) (*utils.GatewaySendResponse, error)
}

// Notifier is the outbound message relay. Backend selection happens per call
// from the injected config, never from global state: internal alerts go to
// Telegram, client-facing messages go to WhatsApp (Business API when
// configured, HTTP gateway otherwise).
type Notifier interface {
	StaffAlert(text string) (SendResult, error)
	ClientMessage(workspace *models.Workspace, text string) (SendResult, error)
	WhatsAppDirect(to, text string) (SendResult, error)
}

type notificationService struct {
	cfg config.NotificationsConfig
	tg  TelegramSender
	wa  WhatsAppSender
	gw  GatewaySender
}

func NewNotificationService(cfg config.NotificationsConfig, tg TelegramSender, wa WhatsAppSender, gw GatewaySender) Notifier {
	return &notificationService{cfg: cfg, tg: tg, wa: wa, gw: gw}
}

func (s *notificationService) StaffAlert(text string) (SendResult, error) {
	if s.tg == nil || s.cfg.Telegram.BotToken == "" || s.cfg.Telegram.ChatID == 0 {
		log.Printf("[notify][telegram][skip] not configured")
		return SendResult{Channel: "telegram", Skipped: true, Detail: text}, nil
	}
	if err := s.tg.SendMessage(text); err != nil {
		return SendResult{Channel: "telegram"}, err
	}
	return SendResult{Channel: "telegram"}, nil
}

func (s *notificationService) ClientMessage(workspace *models.Workspace, text string) (SendResult, error) {
	phone := utils.NormalizePhone(workspace.WhatsApp, s.cfg.DefaultCountryCode)
	if phone == "" {
		log.Printf("[notify][client][skip] workspace=%d sem whatsapp", workspace.ID)
		return SendResult{Channel: "none", Skipped: true, Detail: text}, nil
	}
	return s.sendWhatsApp(phone, text)
}

// WhatsAppDirect envia para um número cru ou ID de grupo do gateway.
func (s *notificationService) WhatsAppDirect(to, text string) (SendResult, error) {
	if !strings.Contains(to, "@") {
		to = utils.NormalizePhone(to, s.cfg.DefaultCountryCode)
	}
	if to == "" {
		return SendResult{Channel: "none", Skipped: true, Detail: text}, nil
	}
	return s.sendWhatsApp(to, text)
}

func (s *notificationService) sendWhatsApp(to, text string) (SendResult, error) {
	switch {
	case s.wa != nil && s.cfg.WhatsApp.AccessToken != "" && s.cfg.WhatsApp.PhoneNumberID != "":
		if err := s.wa.SendText(to, text); err != nil {
			return SendResult{Channel: "whatsapp"}, err
		}
		return SendResult{Channel: "whatsapp"}, nil
	case s.gw != nil && s.cfg.Gateway.APIURL != "":
		if _, err := s.gw.SendMessage(to, text); err != nil {
			return SendResult{Channel: "whatsapp-gateway"}, err
		}
		return SendResult{Channel: "whatsapp-gateway"}, nil
	default:
		log.Printf("[notify][whatsapp][skip] nenhum backend configurado")
		return SendResult{Channel: "none", Skipped: true, Detail: text}, nil
	}
}
