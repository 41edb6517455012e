package services

import (
	"context"
	"errors"
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"aprovafacil/internal/models"
	"aprovafacil/internal/repositories"
)

var (
	ErrMissingComment    = errors.New("Comentário é obrigatório para solicitar edição.")
	ErrTaskNotFound      = errors.New("Tarefa não encontrada.")
	ErrColumnNotFound    = errors.New("Coluna do fluxo não encontrada para este grupo.")
	ErrWorkspaceNotFound = errors.New("Workspace não encontrado.")
	ErrInvalidAction     = errors.New("Ação inválida.")
)

const (
	ActionApprove     = "approve"
	ActionRequestEdit = "edit"
)

// PublicWorkspace is the workspace slice exposed on public links.
type PublicWorkspace struct {
	Name    string `json:"name"`
	LogoURL string `json:"logo_url"`
}

type PublicTask struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Attachments []string `json:"attachments"`
}

type ApprovalView struct {
	Workspace PublicWorkspace `json:"workspace"`
	Tasks     []PublicTask    `json:"tasks"`
}

type DashboardView struct {
	Workspace         PublicWorkspace           `json:"workspace"`
	InstagramInsights []models.InstagramInsight `json:"instagramInsights"`
	KanbanTasks       []models.Task             `json:"kanbanTasks"`
	KanbanColumns     []models.Column           `json:"kanbanColumns"`
}

// ApprovalService runs the public, token-gated approval workflow.
type ApprovalService interface {
	// ProcessAction applies approve/edit to a task and returns a localized
	// success message. The outbound notification is best-effort.
	ProcessAction(ctx context.Context, token string, taskID int64, action, comment string) (string, error)
	// PendingTasks lists the "Para aprovação" tasks visible through a token.
	PendingTasks(ctx context.Context, token string) (*ApprovalView, error)
	// DashboardData assembles the read-only public dashboard payload.
	DashboardData(ctx context.Context, token string) (*DashboardView, error)
}

type approvalService struct {
	tokens     TokenService
	tasks      repositories.TaskRepository
	columns    repositories.ColumnRepository
	workspaces repositories.WorkspaceRepository
	insights   repositories.InsightRepository
	notifier   Notifier
}

func NewApprovalService(
	tokens TokenService,
	tasks repositories.TaskRepository,
	columns repositories.ColumnRepository,
	workspaces repositories.WorkspaceRepository,
	insights repositories.InsightRepository,
	notifier Notifier,
) ApprovalService {
	return &approvalService{
		tokens:     tokens,
		tasks:      tasks,
		columns:    columns,
		workspaces: workspaces,
		insights:   insights,
		notifier:   notifier,
	}
}

func (s *approvalService) ProcessAction(ctx context.Context, token string, taskID int64, action, comment string) (string, error) {
	scope, err := s.tokens.Validate(ctx, models.LinkApproval, token)
	if err != nil {
		return "", err
	}

	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return "", err
	}
	// a tarefa precisa pertencer ao grupo do token
	if task == nil || task.GroupID != scope.GroupID {
		return "", ErrTaskNotFound
	}

	workspace, err := s.workspaces.FindByID(ctx, scope.WorkspaceID)
	if err != nil {
		return "", err
	}
	if workspace == nil {
		return "", ErrWorkspaceNotFound
	}

	var message, alert string
	switch action {
	case ActionApprove:
		// aprovar move para "Aprovado" seja qual for a coluna atual
		col, err := s.resolveStage(ctx, scope.GroupID, models.ColumnApproved)
		if err != nil {
			return "", err
		}
		if err := s.tasks.UpdateColumn(ctx, task.ID, col.ID); err != nil {
			return "", err
		}
		message = "Conteúdo aprovado com sucesso!"
		alert = fmt.Sprintf("✅ <b>%s</b> aprovou o conteúdo:\n• %s",
			html.EscapeString(workspace.Name), html.EscapeString(task.Title))

	case ActionRequestEdit:
		comment = strings.TrimSpace(comment)
		if comment == "" {
			return "", ErrMissingComment
		}
		col, err := s.resolveStage(ctx, scope.GroupID, models.ColumnNeedsEdit)
		if err != nil {
			return "", err
		}
		if err := s.tasks.UpdateColumn(ctx, task.ID, col.ID); err != nil {
			return "", err
		}
		now := time.Now()
		entry := models.Comment{
			ID:        now.UnixMilli(),
			Text:      comment,
			Author:    workspace.Name + " (Cliente)",
			CreatedAt: now,
		}
		if err := s.tasks.AppendComment(ctx, task.ID, entry); err != nil {
			return "", err
		}
		message = "Solicitação de edição registrada com sucesso!"
		alert = fmt.Sprintf("✏️ <b>%s</b> pediu ajustes em:\n• %s\n• Comentário: \"%s\"",
			html.EscapeString(workspace.Name), html.EscapeString(task.Title), html.EscapeString(comment))

	default:
		return "", ErrInvalidAction
	}

	// notificação é melhor-esforço: a transição já foi gravada
	if res, err := s.notifier.StaffAlert(alert); err != nil {
		log.Printf("[approval][notify][err] task=%d: %v", task.ID, err)
	} else if res.Skipped {
		log.Printf("[approval][notify][skip] task=%d channel=%s", task.ID, res.Channel)
	}

	return message, nil
}

func (s *approvalService) PendingTasks(ctx context.Context, token string) (*ApprovalView, error) {
	scope, err := s.tokens.Validate(ctx, models.LinkApproval, token)
	if err != nil {
		return nil, err
	}
	workspace, err := s.workspaces.FindByID(ctx, scope.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, ErrWorkspaceNotFound
	}

	view := &ApprovalView{
		Workspace: PublicWorkspace{Name: workspace.Name, LogoURL: workspace.LogoURL},
		Tasks:     []PublicTask{},
	}

	col, err := s.columns.FindByTitle(ctx, scope.GroupID, models.ColumnPendingApproval)
	if err != nil {
		return nil, err
	}
	if col == nil {
		// grupo sem coluna de aprovação: nada a aprovar
		return view, nil
	}
	tasks, err := s.tasks.FindByColumn(ctx, col.ID)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		view.Tasks = append(view.Tasks, PublicTask{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Attachments: t.Attachments,
		})
	}
	return view, nil
}

func (s *approvalService) DashboardData(ctx context.Context, token string) (*DashboardView, error) {
	scope, err := s.tokens.Validate(ctx, models.LinkDashboard, token)
	if err != nil {
		return nil, err
	}
	workspace, err := s.workspaces.FindByID(ctx, scope.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, ErrWorkspaceNotFound
	}
	insights, err := s.insights.FindByWorkspace(ctx, workspace.ID)
	if err != nil {
		return nil, err
	}
	columns, err := s.columns.FindByGroup(ctx, scope.GroupID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.FindByGroup(ctx, scope.GroupID)
	if err != nil {
		return nil, err
	}
	return &DashboardView{
		Workspace:         PublicWorkspace{Name: workspace.Name, LogoURL: workspace.LogoURL},
		InstagramInsights: insights,
		KanbanTasks:       tasks,
		KanbanColumns:     columns,
	}, nil
}

// resolveStage looks up a canonical stage column. Its absence is a
// configuration error of the group, not a silent no-op.
func (s *approvalService) resolveStage(ctx context.Context, groupID int64, title string) (*models.Column, error) {
	col, err := s.columns.FindByTitle(ctx, groupID, title)
	if err != nil {
		return nil, err
	}
	if col == nil {
		log.Printf("[approval][config][err] grupo %d sem coluna %q", groupID, title)
		return nil, ErrColumnNotFound
	}
	return col, nil
}
