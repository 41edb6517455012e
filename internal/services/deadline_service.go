package services

import (
	"context"
	"fmt"
	"html"
	"log"
	"time"

	"aprovafacil/internal/models"
	"aprovafacil/internal/repositories"
)

const (
	window2h  = 2 * time.Hour
	window30m = 30 * time.Minute
)

// DeadlineService scans open tasks with due dates and fires one-shot reminder
// alerts. Idempotent by design: the per-task per-threshold dedupe timestamps
// suppress repeated alerts when the scan runs again inside the same window.
type DeadlineService interface {
	// CheckDeadlines runs one scan and returns how many alerts went out.
	CheckDeadlines(ctx context.Context) (int, error)
	// Start spawns a periodic scan loop; no-op when interval <= 0.
	Start(ctx context.Context, interval time.Duration)
}

type deadlineService struct {
	tasks    repositories.TaskRepository
	notifier Notifier
	loc      *time.Location
}

func NewDeadlineService(tasks repositories.TaskRepository, notifier Notifier, loc *time.Location) DeadlineService {
	if loc == nil {
		loc = time.Local
	}
	return &deadlineService{tasks: tasks, notifier: notifier, loc: loc}
}

func (s *deadlineService) CheckDeadlines(ctx context.Context) (int, error) {
	now := time.Now()
	items, err := s.tasks.ListWithDeadline(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range items {
		t := &items[i]
		// aprovado ou ainda aguardando aprovação: fora do scan
		if t.ColumnTitle == models.ColumnApproved || t.ColumnTitle == models.ColumnPendingApproval {
			continue
		}
		due, ok := t.DueAt(s.loc)
		if !ok {
			log.Printf("[deadline][warn] task=%d prazo ilegível: date=%v time=%v", t.ID, t.DueDate, t.DueTime)
			continue
		}
		if !now.Before(due) {
			continue // já venceu
		}
		until := due.Sub(now)

		if until <= window2h && alertDue(t.LastNotified2h, now, window2h) {
			if s.fireAlert(t, due, "2 horas") {
				if err := s.tasks.MarkNotified2h(ctx, t.ID, now); err != nil {
					log.Printf("[deadline][mark][err] task=%d: %v", t.ID, err)
				}
				sent++
			}
		}
		if until <= window30m && alertDue(t.LastNotified30m, now, window30m) {
			if s.fireAlert(t, due, "30 minutos") {
				if err := s.tasks.MarkNotified30m(ctx, t.ID, now); err != nil {
					log.Printf("[deadline][mark][err] task=%d: %v", t.ID, err)
				}
				sent++
			}
		}
	}
	return sent, nil
}

// alertDue: dispara no máximo uma vez por janela, não uma única vez na vida.
func alertDue(last *time.Time, now time.Time, window time.Duration) bool {
	return last == nil || last.Before(now.Add(-window))
}

// fireAlert sends one reminder. A failed or skipped send leaves the dedupe
// timestamp untouched and never aborts the rest of the scan.
func (s *deadlineService) fireAlert(t *repositories.DeadlineTask, due time.Time, label string) bool {
	text := fmt.Sprintf("⏰ Prazo em %s: <b>%s</b>\n• Cliente: %s\n• Etapa: %s\n• Prazo: %s",
		label,
		html.EscapeString(t.Title),
		html.EscapeString(t.WorkspaceName),
		html.EscapeString(t.ColumnTitle),
		due.Format("02/01/2006 15:04"),
	)
	res, err := s.notifier.StaffAlert(text)
	if err != nil {
		log.Printf("[deadline][send][err] task=%d: %v", t.ID, err)
		return false
	}
	if res.Skipped {
		log.Printf("[deadline][send][skip] task=%d: backend não configurado", t.ID)
		return false
	}
	return true
}

func (s *deadlineService) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := s.CheckDeadlines(ctx)
				if err != nil {
					log.Printf("[deadline][scan][err] %v", err)
					continue
				}
				if n > 0 {
					log.Printf("[deadline][scan][ok] sent=%d", n)
				}
			}
		}
	}()
}
