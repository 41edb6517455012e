package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"aprovafacil/internal/models"
)

// DeadlineTask is a task joined with the board context the deadline scanner
// needs to compose an alert.
type DeadlineTask struct {
	models.Task
	ColumnTitle   string
	WorkspaceID   int64
	WorkspaceName string
}

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	FindByGroup(ctx context.Context, groupID int64) ([]models.Task, error)
	FindByColumn(ctx context.Context, columnID int64) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id int64) error

	UpdateColumn(ctx context.Context, id, columnID int64) error
	AppendComment(ctx context.Context, id int64, comment models.Comment) error

	// ListWithDeadline returns every task with a due date set, joined with its
	// column title and workspace. Stage filtering happens in the scanner.
	ListWithDeadline(ctx context.Context) ([]DeadlineTask, error)
	MarkNotified2h(ctx context.Context, id int64, at time.Time) error
	MarkNotified30m(ctx context.Context, id int64, at time.Time) error
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, group_id, column_id, title, description, attachments, comments,
       due_date, due_time, last_notified_2hr_at, last_notified_30min_at, created_at, updated_at`

func scanTask(row interface{ Scan(...interface{}) error }, t *models.Task) error {
	var attachments, comments []byte
	if err := row.Scan(
		&t.ID, &t.GroupID, &t.ColumnID, &t.Title, &t.Description, &attachments, &comments,
		&t.DueDate, &t.DueTime, &t.LastNotified2h, &t.LastNotified30m, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return err
	}
	if err := json.Unmarshal(attachments, &t.Attachments); err != nil {
		return err
	}
	return json.Unmarshal(comments, &t.Comments)
}

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	if task.Attachments == nil {
		task.Attachments = []string{}
	}
	if task.Comments == nil {
		task.Comments = []models.Comment{}
	}
	attachments, err := json.Marshal(task.Attachments)
	if err != nil {
		return err
	}
	comments, err := json.Marshal(task.Comments)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO tasks (group_id, column_id, title, description, attachments, comments, due_date, due_time)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at, updated_at`
	return r.db.QueryRowContext(ctx, query,
		task.GroupID, task.ColumnID, task.Title, task.Description,
		attachments, comments, task.DueDate, task.DueTime,
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
}

func (r *taskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	task := &models.Task{}
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	if err := scanTask(row, task); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) findMany(ctx context.Context, query string, args ...interface{}) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) FindByGroup(ctx context.Context, groupID int64) ([]models.Task, error) {
	return r.findMany(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE group_id = $1 ORDER BY created_at`, groupID)
}

func (r *taskRepository) FindByColumn(ctx context.Context, columnID int64) ([]models.Task, error) {
	return r.findMany(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE column_id = $1 ORDER BY created_at`, columnID)
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	attachments, err := json.Marshal(task.Attachments)
	if err != nil {
		return err
	}
	query := `
		UPDATE tasks SET
			column_id=$1, title=$2, description=$3, attachments=$4,
			due_date=$5, due_time=$6, updated_at=NOW()
		WHERE id=$7`
	_, err = r.db.ExecContext(ctx, query,
		task.ColumnID, task.Title, task.Description, attachments,
		task.DueDate, task.DueTime, task.ID,
	)
	return err
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}

func (r *taskRepository) UpdateColumn(ctx context.Context, id, columnID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET column_id=$1, updated_at=NOW() WHERE id=$2`, columnID, id)
	return err
}

// AppendComment pushes one entry onto the jsonb comments array. The log is
// append-only: no update/delete path exists for comments.
func (r *taskRepository) AppendComment(ctx context.Context, id int64, comment models.Comment) error {
	b, err := json.Marshal(comment)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`UPDATE tasks SET comments = comments || $1::jsonb, updated_at=NOW() WHERE id=$2`,
		b, id)
	return err
}

func (r *taskRepository) ListWithDeadline(ctx context.Context) ([]DeadlineTask, error) {
	q := `
SELECT t.id, t.group_id, t.column_id, t.title, t.description, t.attachments, t.comments,
       t.due_date, t.due_time, t.last_notified_2hr_at, t.last_notified_30min_at,
       t.created_at, t.updated_at,
       c.title, w.id, w.name
FROM tasks t
JOIN columns c ON c.id = t.column_id
JOIN groups g ON g.id = t.group_id
JOIN workspaces w ON w.id = g.workspace_id
WHERE t.due_date IS NOT NULL AND t.due_date <> ''
ORDER BY t.due_date, t.due_time`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DeadlineTask
	for rows.Next() {
		var d DeadlineTask
		var attachments, comments []byte
		if err := rows.Scan(
			&d.ID, &d.GroupID, &d.ColumnID, &d.Title, &d.Description, &attachments, &comments,
			&d.DueDate, &d.DueTime, &d.LastNotified2h, &d.LastNotified30m,
			&d.CreatedAt, &d.UpdatedAt,
			&d.ColumnTitle, &d.WorkspaceID, &d.WorkspaceName,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(attachments, &d.Attachments); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(comments, &d.Comments); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *taskRepository) MarkNotified2h(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET last_notified_2hr_at=$1 WHERE id=$2`, at, id)
	return err
}

func (r *taskRepository) MarkNotified30m(ctx context.Context, id int64, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET last_notified_30min_at=$1 WHERE id=$2`, at, id)
	return err
}
