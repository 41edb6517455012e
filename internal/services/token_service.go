package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aprovafacil/internal/models"
	"aprovafacil/internal/repositories"
	"aprovafacil/internal/utils"
)

var (
	ErrInvalidToken  = errors.New("Link inválido ou expirado.")
	ErrGroupNotFound = errors.New("Grupo não encontrado.")
)

// TokenScope is what a validated public link grants access to.
type TokenScope struct {
	GroupID     int64
	WorkspaceID int64
}

type TokenService interface {
	// CreateLink issues a new token for a group and returns the public URL.
	CreateLink(ctx context.Context, kind models.LinkKind, groupID int64) (*models.ShareToken, string, error)
	// Validate loads a token's scope. A token stays valid for repeated use
	// until it is deactivated or expires; there is no one-time-use semantics.
	Validate(ctx context.Context, kind models.LinkKind, token string) (*TokenScope, error)
	Deactivate(ctx context.Context, token string) error
	ListByWorkspace(ctx context.Context, workspaceID int64) ([]models.ShareToken, error)
}

type tokenService struct {
	tokens  repositories.TokenRepository
	groups  repositories.GroupRepository
	baseURL string
	ttl     time.Duration
}

func NewTokenService(tokens repositories.TokenRepository, groups repositories.GroupRepository, baseURL string, ttl time.Duration) TokenService {
	return &tokenService{
		tokens:  tokens,
		groups:  groups,
		baseURL: baseURL,
		ttl:     ttl,
	}
}

func (s *tokenService) CreateLink(ctx context.Context, kind models.LinkKind, groupID int64) (*models.ShareToken, string, error) {
	group, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		return nil, "", err
	}
	if group == nil {
		return nil, "", ErrGroupNotFound
	}

	raw, err := utils.NewLinkToken(32)
	if err != nil {
		return nil, "", err
	}
	token := &models.ShareToken{
		Token:       raw,
		Kind:        kind,
		GroupID:     group.ID,
		WorkspaceID: group.WorkspaceID,
		ExpiresAt:   time.Now().Add(s.ttl),
		IsActive:    true,
	}
	if err := s.tokens.Store(ctx, token); err != nil {
		return nil, "", err
	}

	path := "aprovacao"
	if kind == models.LinkDashboard {
		path = "dashboard"
	}
	url := fmt.Sprintf("%s/%s/%s", s.baseURL, path, raw)
	return token, url, nil
}

func (s *tokenService) Validate(ctx context.Context, kind models.LinkKind, token string) (*TokenScope, error) {
	rec, err := s.tokens.FindByToken(ctx, kind, token)
	if err != nil {
		return nil, err
	}
	// sem registro, desativado ou vencido: mesma resposta para os três casos
	if rec == nil || !rec.IsActive || rec.ExpiresAt.Before(time.Now()) {
		return nil, ErrInvalidToken
	}
	return &TokenScope{GroupID: rec.GroupID, WorkspaceID: rec.WorkspaceID}, nil
}

func (s *tokenService) Deactivate(ctx context.Context, token string) error {
	return s.tokens.Deactivate(ctx, token)
}

func (s *tokenService) ListByWorkspace(ctx context.Context, workspaceID int64) ([]models.ShareToken, error) {
	return s.tokens.FindByWorkspace(ctx, workspaceID)
}
