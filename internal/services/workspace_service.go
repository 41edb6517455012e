package services

import (
	"context"
	"errors"
	"strings"

	"aprovafacil/internal/models"
	"aprovafacil/internal/repositories"
)

var ErrNameRequired = errors.New("Nome é obrigatório.")

type WorkspaceService interface {
	Create(ctx context.Context, w *models.Workspace) (*models.Workspace, error)
	GetByID(ctx context.Context, id int64) (*models.Workspace, error)
	List(ctx context.Context) ([]models.Workspace, error)
	Update(ctx context.Context, id int64, update *models.Workspace) (*models.Workspace, error)

	UpsertInsight(ctx context.Context, in *models.InstagramInsight) error
	Insights(ctx context.Context, workspaceID int64) ([]models.InstagramInsight, error)
}

type workspaceService struct {
	workspaces repositories.WorkspaceRepository
	insights   repositories.InsightRepository
}

func NewWorkspaceService(workspaces repositories.WorkspaceRepository, insights repositories.InsightRepository) WorkspaceService {
	return &workspaceService{workspaces: workspaces, insights: insights}
}

func (s *workspaceService) Create(ctx context.Context, w *models.Workspace) (*models.Workspace, error) {
	if strings.TrimSpace(w.Name) == "" {
		return nil, ErrNameRequired
	}
	if err := s.workspaces.Store(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *workspaceService) GetByID(ctx context.Context, id int64) (*models.Workspace, error) {
	return s.workspaces.FindByID(ctx, id)
}

func (s *workspaceService) List(ctx context.Context) ([]models.Workspace, error) {
	return s.workspaces.FindAll(ctx)
}

func (s *workspaceService) Update(ctx context.Context, id int64, update *models.Workspace) (*models.Workspace, error) {
	existing, err := s.workspaces.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrWorkspaceNotFound
	}
	if strings.TrimSpace(update.Name) == "" {
		return nil, ErrNameRequired
	}

	existing.Name = update.Name
	existing.LogoURL = update.LogoURL
	existing.WhatsApp = update.WhatsApp
	existing.Email = update.Email

	if err := s.workspaces.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *workspaceService) UpsertInsight(ctx context.Context, in *models.InstagramInsight) error {
	if strings.TrimSpace(in.Month) == "" {
		return errors.New("Mês é obrigatório.")
	}
	ws, err := s.workspaces.FindByID(ctx, in.WorkspaceID)
	if err != nil {
		return err
	}
	if ws == nil {
		return ErrWorkspaceNotFound
	}
	return s.insights.Upsert(ctx, in)
}

func (s *workspaceService) Insights(ctx context.Context, workspaceID int64) ([]models.InstagramInsight, error) {
	return s.insights.FindByWorkspace(ctx, workspaceID)
}
