package services

import (
	"errors"
	"testing"

	"aprovafacil/internal/config"
	"aprovafacil/internal/models"
	"aprovafacil/internal/utils"
)

type fakeTGSender struct {
	sent []string
	err  error
}

func (f *fakeTGSender) SendMessage(text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, text)
	return nil
}

type fakeWASender struct {
	sent map[string]string
	err  error
}

func (f *fakeWASender) SendText(to, text string) error {
	if f.err != nil {
		return f.err
	}
	if f.sent == nil {
		f.sent = map[string]string{}
	}
	f.sent[to] = text
	return nil
}

type fakeGWSender struct {
	sent map[string]string
	err  error
}

func (f *fakeGWSender) SendMessage(to, message string) (*utils.GatewaySendResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.sent == nil {
		f.sent = map[string]string{}
	}
	f.sent[to] = message
	return &utils.GatewaySendResponse{Status: "ok"}, nil
}

func fullNotifyConfig() config.NotificationsConfig {
	return config.NotificationsConfig{
		Telegram: config.TelegramConfig{BotToken: "123:abc", ChatID: -100200300},
		WhatsApp: config.WhatsAppConfig{PhoneNumberID: "5550001111", AccessToken: "EAAB..."},
		Gateway:  config.GatewayConfig{APIURL: "https://gw.example.com", APIKey: "k"},

		DefaultCountryCode: "55",
		TimeoutSeconds:     10,
	}
}

func TestStaffAlert(t *testing.T) {
	tg := &fakeTGSender{}
	n := NewNotificationService(fullNotifyConfig(), tg, nil, nil)

	res, err := n.StaffAlert("⏰ prazo chegando")
	if err != nil {
		t.Fatalf("staff alert: %v", err)
	}
	if res.Channel != "telegram" || res.Skipped {
		t.Errorf("res = %+v, want canal telegram enviado", res)
	}
	if len(tg.sent) != 1 || tg.sent[0] != "⏰ prazo chegando" {
		t.Errorf("sent = %v", tg.sent)
	}
}

func TestStaffAlertUnconfigured(t *testing.T) {
	cfg := fullNotifyConfig()
	cfg.Telegram.BotToken = ""
	n := NewNotificationService(cfg, &fakeTGSender{}, nil, nil)

	res, err := n.StaffAlert("alerta")
	if err != nil {
		t.Fatalf("skip não pode virar erro: %v", err)
	}
	if !res.Skipped {
		t.Error("res.Skipped = false, want true")
	}
	if res.Detail != "alerta" {
		t.Errorf("Detail = %q, want o texto para fallback manual", res.Detail)
	}

	// sender nil com config preenchida também é skip
	n = NewNotificationService(fullNotifyConfig(), nil, nil, nil)
	if res, _ := n.StaffAlert("alerta"); !res.Skipped {
		t.Error("sender nil: want skip")
	}
}

func TestStaffAlertError(t *testing.T) {
	sendErr := errors.New("bot bloqueado")
	n := NewNotificationService(fullNotifyConfig(), &fakeTGSender{err: sendErr}, nil, nil)

	if _, err := n.StaffAlert("alerta"); !errors.Is(err, sendErr) {
		t.Errorf("err = %v, want %v", err, sendErr)
	}
}

func TestClientMessagePrefersBusinessAPI(t *testing.T) {
	wa := &fakeWASender{}
	gw := &fakeGWSender{}
	n := NewNotificationService(fullNotifyConfig(), nil, wa, gw)

	ws := &models.Workspace{ID: 1, Name: "Padaria Central", WhatsApp: "(11) 98765-4321"}
	res, err := n.ClientMessage(ws, "seu link de aprovação")
	if err != nil {
		t.Fatalf("client message: %v", err)
	}
	if res.Channel != "whatsapp" {
		t.Errorf("channel = %q, want whatsapp (Business API primeiro)", res.Channel)
	}
	// número normalizado com DDI antes do envio
	if _, ok := wa.sent["5511987654321"]; !ok {
		t.Errorf("business api sent = %v, want chave 5511987654321", wa.sent)
	}
	if len(gw.sent) != 0 {
		t.Errorf("gateway usado mesmo com Business API configurada: %v", gw.sent)
	}
}

func TestClientMessageGatewayFallback(t *testing.T) {
	cfg := fullNotifyConfig()
	cfg.WhatsApp = config.WhatsAppConfig{}
	gw := &fakeGWSender{}
	n := NewNotificationService(cfg, nil, nil, gw)

	ws := &models.Workspace{ID: 1, Name: "Padaria Central", WhatsApp: "11987654321"}
	res, err := n.ClientMessage(ws, "seu link")
	if err != nil {
		t.Fatalf("client message: %v", err)
	}
	if res.Channel != "whatsapp-gateway" {
		t.Errorf("channel = %q, want whatsapp-gateway", res.Channel)
	}
	if _, ok := gw.sent["5511987654321"]; !ok {
		t.Errorf("gateway sent = %v", gw.sent)
	}
}

func TestClientMessageNoBackend(t *testing.T) {
	cfg := fullNotifyConfig()
	cfg.WhatsApp = config.WhatsAppConfig{}
	cfg.Gateway = config.GatewayConfig{}
	n := NewNotificationService(cfg, nil, nil, nil)

	ws := &models.Workspace{ID: 1, WhatsApp: "11987654321"}
	res, err := n.ClientMessage(ws, "texto do link")
	if err != nil {
		t.Fatalf("sem backend não pode virar erro: %v", err)
	}
	if !res.Skipped || res.Detail != "texto do link" {
		t.Errorf("res = %+v, want skip com Detail", res)
	}
}

func TestClientMessageWithoutPhone(t *testing.T) {
	n := NewNotificationService(fullNotifyConfig(), nil, &fakeWASender{}, nil)

	ws := &models.Workspace{ID: 1, Name: "Sem fone"}
	res, err := n.ClientMessage(ws, "oi")
	if err != nil {
		t.Fatalf("client message: %v", err)
	}
	if !res.Skipped {
		t.Error("workspace sem whatsapp: want skip")
	}
}

func TestWhatsAppDirect(t *testing.T) {
	wa := &fakeWASender{}
	n := NewNotificationService(fullNotifyConfig(), nil, wa, nil)

	// número cru passa pela normalização
	if _, err := n.WhatsAppDirect("(11) 90000-1111", "oi"); err != nil {
		t.Fatalf("direct: %v", err)
	}
	if _, ok := wa.sent["5511900001111"]; !ok {
		t.Errorf("sent = %v, want número normalizado", wa.sent)
	}

	// ID de grupo do gateway vai intocado
	if _, err := n.WhatsAppDirect("123456789@g.us", "oi grupo"); err != nil {
		t.Fatalf("direct grupo: %v", err)
	}
	if _, ok := wa.sent["123456789@g.us"]; !ok {
		t.Errorf("sent = %v, want ID de grupo intocado", wa.sent)
	}
}
