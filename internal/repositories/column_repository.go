package repositories

import (
	"context"
	"database/sql"

	"aprovafacil/internal/models"
)

type ColumnRepository interface {
	Store(ctx context.Context, c *models.Column) error
	FindByID(ctx context.Context, id int64) (*models.Column, error)
	FindByGroup(ctx context.Context, groupID int64) ([]models.Column, error)
	// FindByTitle resolves a stage title inside a group; exact, case-sensitive.
	FindByTitle(ctx context.Context, groupID int64, title string) (*models.Column, error)
	UpdatePosition(ctx context.Context, id int64, position int) error
	Delete(ctx context.Context, id int64) error
}

type columnRepository struct {
	db *sql.DB
}

func NewColumnRepository(db *sql.DB) ColumnRepository {
	return &columnRepository{db: db}
}

func (r *columnRepository) Store(ctx context.Context, c *models.Column) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO columns (group_id, title, position) VALUES ($1,$2,$3) RETURNING id`,
		c.GroupID, c.Title, c.Position,
	).Scan(&c.ID)
}

func (r *columnRepository) FindByID(ctx context.Context, id int64) (*models.Column, error) {
	c := &models.Column{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, group_id, title, position FROM columns WHERE id = $1`, id,
	).Scan(&c.ID, &c.GroupID, &c.Title, &c.Position)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *columnRepository) FindByGroup(ctx context.Context, groupID int64) ([]models.Column, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, group_id, title, position FROM columns WHERE group_id = $1 ORDER BY position`,
		groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Column
	for rows.Next() {
		var c models.Column
		if err := rows.Scan(&c.ID, &c.GroupID, &c.Title, &c.Position); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *columnRepository) FindByTitle(ctx context.Context, groupID int64, title string) (*models.Column, error) {
	c := &models.Column{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, group_id, title, position FROM columns WHERE group_id = $1 AND title = $2`,
		groupID, title,
	).Scan(&c.ID, &c.GroupID, &c.Title, &c.Position)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *columnRepository) UpdatePosition(ctx context.Context, id int64, position int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE columns SET position=$1 WHERE id=$2`, position, id)
	return err
}

func (r *columnRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM columns WHERE id = $1`, id)
	return err
}
