package repositories

import (
	"context"
	"database/sql"

	"aprovafacil/internal/models"
)

type TokenRepository interface {
	Store(ctx context.Context, t *models.ShareToken) error
	// FindByToken looks up by exact token string inside one kind.
	FindByToken(ctx context.Context, kind models.LinkKind, token string) (*models.ShareToken, error)
	FindByWorkspace(ctx context.Context, workspaceID int64) ([]models.ShareToken, error)
	Deactivate(ctx context.Context, token string) error
}

type tokenRepository struct {
	db *sql.DB
}

func NewTokenRepository(db *sql.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Store(ctx context.Context, t *models.ShareToken) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO share_tokens (token, kind, group_id, workspace_id, expires_at, is_active)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at`,
		t.Token, t.Kind, t.GroupID, t.WorkspaceID, t.ExpiresAt, t.IsActive,
	).Scan(&t.CreatedAt)
}

func (r *tokenRepository) FindByToken(ctx context.Context, kind models.LinkKind, token string) (*models.ShareToken, error) {
	t := &models.ShareToken{}
	err := r.db.QueryRowContext(ctx, `
		SELECT token, kind, group_id, workspace_id, expires_at, is_active, created_at
		FROM share_tokens WHERE token = $1 AND kind = $2`,
		token, kind,
	).Scan(&t.Token, &t.Kind, &t.GroupID, &t.WorkspaceID, &t.ExpiresAt, &t.IsActive, &t.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

func (r *tokenRepository) FindByWorkspace(ctx context.Context, workspaceID int64) ([]models.ShareToken, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT token, kind, group_id, workspace_id, expires_at, is_active, created_at
		FROM share_tokens WHERE workspace_id = $1 ORDER BY created_at DESC`,
		workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ShareToken
	for rows.Next() {
		var t models.ShareToken
		if err := rows.Scan(&t.Token, &t.Kind, &t.GroupID, &t.WorkspaceID,
			&t.ExpiresAt, &t.IsActive, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *tokenRepository) Deactivate(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE share_tokens SET is_active = FALSE WHERE token = $1`, token)
	return err
}
