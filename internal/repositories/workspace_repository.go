package repositories

import (
	"context"
	"database/sql"

	"aprovafacil/internal/models"
)

type WorkspaceRepository interface {
	Store(ctx context.Context, w *models.Workspace) error
	FindByID(ctx context.Context, id int64) (*models.Workspace, error)
	FindAll(ctx context.Context) ([]models.Workspace, error)
	Update(ctx context.Context, w *models.Workspace) error
	Delete(ctx context.Context, id int64) error
}

type workspaceRepository struct {
	db *sql.DB
}

func NewWorkspaceRepository(db *sql.DB) WorkspaceRepository {
	return &workspaceRepository{db: db}
}

func (r *workspaceRepository) Store(ctx context.Context, w *models.Workspace) error {
	query := `
		INSERT INTO workspaces (name, logo_url, whatsapp, email)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, query,
		w.Name, w.LogoURL, w.WhatsApp, w.Email,
	).Scan(&w.ID, &w.CreatedAt)
}

func (r *workspaceRepository) FindByID(ctx context.Context, id int64) (*models.Workspace, error) {
	query := `SELECT id, name, logo_url, whatsapp, email, created_at
		FROM workspaces WHERE id = $1`
	w := &models.Workspace{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&w.ID, &w.Name, &w.LogoURL, &w.WhatsApp, &w.Email, &w.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return w, nil
}

func (r *workspaceRepository) FindAll(ctx context.Context) ([]models.Workspace, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, logo_url, whatsapp, email, created_at FROM workspaces ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Workspace
	for rows.Next() {
		var w models.Workspace
		if err := rows.Scan(&w.ID, &w.Name, &w.LogoURL, &w.WhatsApp, &w.Email, &w.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *workspaceRepository) Update(ctx context.Context, w *models.Workspace) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE workspaces SET name=$1, logo_url=$2, whatsapp=$3, email=$4 WHERE id=$5`,
		w.Name, w.LogoURL, w.WhatsApp, w.Email, w.ID)
	return err
}

func (r *workspaceRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM workspaces WHERE id = $1`, id)
	return err
}
