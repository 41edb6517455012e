package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"aprovafacil/internal/models"
	"aprovafacil/internal/pdf"
	"aprovafacil/internal/repositories"
)

var ErrTitleRequired = errors.New("Título é obrigatório.")

// BoardView is one group's board: its columns in order plus every task.
type BoardView struct {
	Group   models.Group    `json:"group"`
	Columns []models.Column `json:"columns"`
	Tasks   []models.Task   `json:"tasks"`
}

type BoardService interface {
	CreateGroup(ctx context.Context, workspaceID int64, name string) (*models.Group, error)
	Board(ctx context.Context, groupID int64) (*BoardView, error)
	CreateColumn(ctx context.Context, column *models.Column) (*models.Column, error)
	MoveColumn(ctx context.Context, id int64, position int) error
	// ResolveColumn maps a stage title to its column inside a group;
	// exact, case-sensitive match.
	ResolveColumn(ctx context.Context, groupID int64, title string) (*models.Column, error)

	CreateTask(ctx context.Context, task *models.Task) (*models.Task, error)
	UpdateTask(ctx context.Context, id int64, update *models.Task) (*models.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	MoveTask(ctx context.Context, taskID, columnID int64) (*models.Task, error)

	WorkspaceReport(ctx context.Context, workspaceID int64) (*pdf.ReportData, error)
}

type boardService struct {
	groups     repositories.GroupRepository
	columns    repositories.ColumnRepository
	tasks      repositories.TaskRepository
	workspaces repositories.WorkspaceRepository
}

func NewBoardService(
	groups repositories.GroupRepository,
	columns repositories.ColumnRepository,
	tasks repositories.TaskRepository,
	workspaces repositories.WorkspaceRepository,
) BoardService {
	return &boardService{groups: groups, columns: columns, tasks: tasks, workspaces: workspaces}
}

// CreateGroup creates a board seeded with the four canonical workflow columns.
func (s *boardService) CreateGroup(ctx context.Context, workspaceID int64, name string) (*models.Group, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrTitleRequired
	}
	ws, err := s.workspaces.FindByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, ErrWorkspaceNotFound
	}

	group := &models.Group{WorkspaceID: workspaceID, Name: name}
	if err := s.groups.Store(ctx, group); err != nil {
		return nil, err
	}
	for i, title := range models.CanonicalColumns {
		col := &models.Column{GroupID: group.ID, Title: title, Position: i}
		if err := s.columns.Store(ctx, col); err != nil {
			return nil, err
		}
	}
	return group, nil
}

func (s *boardService) Board(ctx context.Context, groupID int64) (*BoardView, error) {
	group, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	columns, err := s.columns.FindByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.FindByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return &BoardView{Group: *group, Columns: columns, Tasks: tasks}, nil
}

func (s *boardService) CreateColumn(ctx context.Context, column *models.Column) (*models.Column, error) {
	if strings.TrimSpace(column.Title) == "" {
		return nil, ErrTitleRequired
	}
	group, err := s.groups.FindByID(ctx, column.GroupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	if err := s.columns.Store(ctx, column); err != nil {
		return nil, err
	}
	return column, nil
}

func (s *boardService) MoveColumn(ctx context.Context, id int64, position int) error {
	return s.columns.UpdatePosition(ctx, id, position)
}

func (s *boardService) ResolveColumn(ctx context.Context, groupID int64, title string) (*models.Column, error) {
	col, err := s.columns.FindByTitle(ctx, groupID, title)
	if err != nil {
		return nil, err
	}
	if col == nil {
		return nil, ErrColumnNotFound
	}
	return col, nil
}

func (s *boardService) CreateTask(ctx context.Context, task *models.Task) (*models.Task, error) {
	if strings.TrimSpace(task.Title) == "" {
		return nil, ErrTitleRequired
	}
	if task.ColumnID == 0 {
		// sem coluna: entra na primeira do quadro
		columns, err := s.columns.FindByGroup(ctx, task.GroupID)
		if err != nil {
			return nil, err
		}
		if len(columns) == 0 {
			return nil, ErrColumnNotFound
		}
		task.ColumnID = columns[0].ID
	} else {
		col, err := s.columns.FindByID(ctx, task.ColumnID)
		if err != nil {
			return nil, err
		}
		if col == nil || col.GroupID != task.GroupID {
			return nil, ErrColumnNotFound
		}
	}
	if err := s.tasks.Store(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *boardService) UpdateTask(ctx context.Context, id int64, update *models.Task) (*models.Task, error) {
	existing, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrTaskNotFound
	}

	existing.Title = update.Title
	existing.Description = update.Description
	existing.Attachments = update.Attachments
	existing.DueDate = update.DueDate
	existing.DueTime = update.DueTime
	if update.ColumnID != 0 {
		existing.ColumnID = update.ColumnID
	}
	existing.UpdatedAt = time.Now()

	if err := s.tasks.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *boardService) DeleteTask(ctx context.Context, id int64) error {
	return s.tasks.Delete(ctx, id)
}

func (s *boardService) MoveTask(ctx context.Context, taskID, columnID int64) (*models.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	col, err := s.columns.FindByID(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if col == nil || col.GroupID != task.GroupID {
		return nil, ErrColumnNotFound
	}
	if err := s.tasks.UpdateColumn(ctx, taskID, columnID); err != nil {
		return nil, err
	}
	return s.tasks.FindByID(ctx, taskID)
}

// WorkspaceReport assembles the per-stage task summary rendered as PDF.
func (s *boardService) WorkspaceReport(ctx context.Context, workspaceID int64) (*pdf.ReportData, error) {
	ws, err := s.workspaces.FindByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, ErrWorkspaceNotFound
	}

	data := &pdf.ReportData{
		WorkspaceName: ws.Name,
		GeneratedAt:   time.Now(),
	}
	groups, err := s.groups.FindByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		columns, err := s.columns.FindByGroup(ctx, g.ID)
		if err != nil {
			return nil, err
		}
		for _, col := range columns {
			tasks, err := s.tasks.FindByColumn(ctx, col.ID)
			if err != nil {
				return nil, err
			}
			stage := pdf.StageSummary{Group: g.Name, Stage: col.Title}
			for _, t := range tasks {
				stage.Tasks = append(stage.Tasks, t.Title)
			}
			data.Stages = append(data.Stages, stage)
		}
	}
	return data, nil
}
