package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"aprovafacil/internal/models"
	"aprovafacil/internal/repositories"
)

// deadlineItem monta uma linha do scan com prazo relativo ao relógio real.
func deadlineItem(id int64, stage, title string, due time.Time) repositories.DeadlineTask {
	date := due.Format("2006-01-02")
	clock := due.Format("15:04")
	return repositories.DeadlineTask{
		Task: models.Task{
			ID:      id,
			Title:   title,
			DueDate: &date,
			DueTime: &clock,
		},
		ColumnTitle:   stage,
		WorkspaceID:   1,
		WorkspaceName: "Padaria Central",
	}
}

func newDeadlineFixture(items ...repositories.DeadlineTask) (*fakeTaskRepo, *fakeNotifier, DeadlineService) {
	tasks := newFakeTaskRepo()
	tasks.scan = items
	notifier := &fakeNotifier{}
	svc := NewDeadlineService(tasks, notifier, time.Local)
	return tasks, notifier, svc
}

func TestCheckDeadlines2hWindow(t *testing.T) {
	ctx := context.Background()
	tasks, notifier, svc := newDeadlineFixture(
		deadlineItem(1, models.ColumnInProduction, "Post do feed", time.Now().Add(90*time.Minute)),
	)

	sent, err := svc.CheckDeadlines(ctx)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if sent != 1 {
		t.Fatalf("sent = %d, want 1", sent)
	}
	if len(notifier.staff) != 1 || !strings.Contains(notifier.staff[0], "2 horas") {
		t.Errorf("alerta = %q, want menção a \"2 horas\"", notifier.staff)
	}
	if tasks.scan[0].LastNotified2h == nil {
		t.Error("dedupe de 2h não gravado após envio")
	}
	if tasks.scan[0].LastNotified30m != nil {
		t.Error("dedupe de 30min gravado sem alerta de 30min")
	}

	// segundo scan na mesma janela: nada novo
	sent, err = svc.CheckDeadlines(ctx)
	if err != nil {
		t.Fatalf("rescan: %v", err)
	}
	if sent != 0 {
		t.Errorf("rescan sent = %d, want 0", sent)
	}
	if len(notifier.staff) != 1 {
		t.Errorf("alertas após rescan = %d, want 1", len(notifier.staff))
	}
}

func TestCheckDeadlines30mWindow(t *testing.T) {
	ctx := context.Background()
	already := time.Now().Add(-10 * time.Minute)
	item := deadlineItem(7, models.ColumnNeedsEdit, "Reels de sábado", time.Now().Add(20*time.Minute))
	item.LastNotified2h = &already // 2h já avisado há pouco
	_, notifier, svc := newDeadlineFixture(item)

	sent, err := svc.CheckDeadlines(ctx)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if sent != 1 {
		t.Fatalf("sent = %d, want 1 (só a janela de 30min)", sent)
	}
	if !strings.Contains(notifier.staff[0], "30 minutos") {
		t.Errorf("alerta = %q, want menção a \"30 minutos\"", notifier.staff[0])
	}
}

func TestCheckDeadlinesBothWindowsWhenClose(t *testing.T) {
	ctx := context.Background()
	_, notifier, svc := newDeadlineFixture(
		deadlineItem(3, models.ColumnInProduction, "Story", time.Now().Add(20*time.Minute)),
	)

	sent, err := svc.CheckDeadlines(ctx)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	// prazo a 20min sem nenhum aviso anterior: as duas janelas disparam
	if sent != 2 {
		t.Errorf("sent = %d, want 2", sent)
	}
	if len(notifier.staff) != 2 {
		t.Errorf("alertas = %d, want 2", len(notifier.staff))
	}
}

func TestCheckDeadlinesSkipsClosedStages(t *testing.T) {
	ctx := context.Background()
	_, notifier, svc := newDeadlineFixture(
		deadlineItem(1, models.ColumnApproved, "Já aprovado", time.Now().Add(25*time.Minute)),
		deadlineItem(2, models.ColumnPendingApproval, "Aguardando cliente", time.Now().Add(25*time.Minute)),
	)

	sent, err := svc.CheckDeadlines(ctx)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if sent != 0 {
		t.Errorf("sent = %d, want 0 (Aprovado e Para aprovação ficam fora)", sent)
	}
	if len(notifier.staff) != 0 {
		t.Errorf("alertas = %d, want 0", len(notifier.staff))
	}
}

func TestCheckDeadlinesSkipsPastDue(t *testing.T) {
	ctx := context.Background()
	_, notifier, svc := newDeadlineFixture(
		deadlineItem(1, models.ColumnInProduction, "Atrasado", time.Now().Add(-10*time.Minute)),
	)

	sent, err := svc.CheckDeadlines(ctx)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if sent != 0 || len(notifier.staff) != 0 {
		t.Errorf("prazo vencido gerou alerta: sent=%d alertas=%d", sent, len(notifier.staff))
	}
}

func TestCheckDeadlinesFailureKeepsScanning(t *testing.T) {
	ctx := context.Background()
	tasks, notifier, svc := newDeadlineFixture(
		deadlineItem(1, models.ColumnInProduction, "Post com falha", time.Now().Add(90*time.Minute)),
		deadlineItem(2, models.ColumnInProduction, "Post normal", time.Now().Add(90*time.Minute)),
	)
	notifier.failMatch = "Post com falha"

	sent, err := svc.CheckDeadlines(ctx)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if sent != 1 {
		t.Fatalf("sent = %d, want 1 (a falha de um envio não para o scan)", sent)
	}
	if tasks.scan[0].LastNotified2h != nil {
		t.Error("dedupe gravado para envio que falhou")
	}
	if tasks.scan[1].LastNotified2h == nil {
		t.Error("dedupe não gravado para envio que deu certo")
	}

	// com o backend de volta, só o que faltou dispara
	notifier.failMatch = ""
	sent, err = svc.CheckDeadlines(ctx)
	if err != nil {
		t.Fatalf("rescan: %v", err)
	}
	if sent != 1 {
		t.Errorf("rescan sent = %d, want 1", sent)
	}
	if tasks.scan[0].LastNotified2h == nil {
		t.Error("dedupe ainda vazio após reenvio")
	}
}

func TestCheckDeadlinesSkippedBackendKeepsDedupe(t *testing.T) {
	ctx := context.Background()
	tasks, notifier, svc := newDeadlineFixture(
		deadlineItem(1, models.ColumnInProduction, "Post", time.Now().Add(90*time.Minute)),
	)
	notifier.skipped = true

	sent, err := svc.CheckDeadlines(ctx)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if sent != 0 {
		t.Errorf("sent = %d, want 0 (backend não configurado não conta envio)", sent)
	}
	if tasks.scan[0].LastNotified2h != nil {
		t.Error("dedupe gravado sem envio real")
	}
}

func TestAlertDue(t *testing.T) {
	now := time.Now()
	recent := now.Add(-10 * time.Minute)
	old := now.Add(-3 * time.Hour)

	cases := []struct {
		name   string
		last   *time.Time
		window time.Duration
		want   bool
	}{
		{"nunca avisado", nil, window2h, true},
		{"avisado dentro da janela", &recent, window2h, false},
		{"avisado em janela anterior", &old, window2h, true},
		{"30min avisado há pouco", &recent, window30m, false},
	}
	for _, tc := range cases {
		if got := alertDue(tc.last, now, tc.window); got != tc.want {
			t.Errorf("%s: alertDue = %v, want %v", tc.name, got, tc.want)
		}
	}
}
