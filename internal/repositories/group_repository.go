package repositories

import (
	"context"
	"database/sql"

	"aprovafacil/internal/models"
)

type GroupRepository interface {
	Store(ctx context.Context, g *models.Group) error
	FindByID(ctx context.Context, id int64) (*models.Group, error)
	FindByWorkspace(ctx context.Context, workspaceID int64) ([]models.Group, error)
	Delete(ctx context.Context, id int64) error
}

type groupRepository struct {
	db *sql.DB
}

func NewGroupRepository(db *sql.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) Store(ctx context.Context, g *models.Group) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO groups (workspace_id, name) VALUES ($1,$2) RETURNING id, created_at`,
		g.WorkspaceID, g.Name,
	).Scan(&g.ID, &g.CreatedAt)
}

func (r *groupRepository) FindByID(ctx context.Context, id int64) (*models.Group, error) {
	g := &models.Group{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, workspace_id, name, created_at FROM groups WHERE id = $1`, id,
	).Scan(&g.ID, &g.WorkspaceID, &g.Name, &g.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return g, nil
}

func (r *groupRepository) FindByWorkspace(ctx context.Context, workspaceID int64) ([]models.Group, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, workspace_id, name, created_at FROM groups WHERE workspace_id = $1 ORDER BY created_at`,
		workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.WorkspaceID, &g.Name, &g.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *groupRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	return err
}
