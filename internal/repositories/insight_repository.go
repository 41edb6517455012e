package repositories

import (
	"context"
	"database/sql"

	"aprovafacil/internal/models"
)

type InsightRepository interface {
	Upsert(ctx context.Context, in *models.InstagramInsight) error
	FindByWorkspace(ctx context.Context, workspaceID int64) ([]models.InstagramInsight, error)
}

type insightRepository struct {
	db *sql.DB
}

func NewInsightRepository(db *sql.DB) InsightRepository {
	return &insightRepository{db: db}
}

func (r *insightRepository) Upsert(ctx context.Context, in *models.InstagramInsight) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO instagram_insights (workspace_id, month, followers, engagement, reach)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (workspace_id, month)
		DO UPDATE SET followers=EXCLUDED.followers, engagement=EXCLUDED.engagement, reach=EXCLUDED.reach
		RETURNING id`,
		in.WorkspaceID, in.Month, in.Followers, in.Engagement, in.Reach,
	).Scan(&in.ID)
}

func (r *insightRepository) FindByWorkspace(ctx context.Context, workspaceID int64) ([]models.InstagramInsight, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, workspace_id, month, followers, engagement, reach
		FROM instagram_insights WHERE workspace_id = $1 ORDER BY month`,
		workspaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.InstagramInsight
	for rows.Next() {
		var in models.InstagramInsight
		if err := rows.Scan(&in.ID, &in.WorkspaceID, &in.Month, &in.Followers, &in.Engagement, &in.Reach); err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}
