package models

import "time"

// Comment is one entry of a task's append-only audit log.
type Comment struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// Task represents a content card on a group's board.
type Task struct {
	ID          int64     `json:"id"`
	GroupID     int64     `json:"group_id"`
	ColumnID    int64     `json:"column_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Attachments []string  `json:"attachments"`
	Comments    []Comment `json:"comments"`

	// Prazo: data e hora guardadas como o cliente digitou ("2006-01-02" / "15:04").
	DueDate *string `json:"due_date,omitempty"`
	DueTime *string `json:"due_time,omitempty"`

	LastNotified2h  *time.Time `json:"last_notified_2hr_at,omitempty"`
	LastNotified30m *time.Time `json:"last_notified_30min_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DueAt combines due_date and due_time into a full deadline instant in loc.
// A task without due_time is due at 23:59 of its due_date. Returns false when
// the task has no due date or it cannot be parsed.
func (t *Task) DueAt(loc *time.Location) (time.Time, bool) {
	if t.DueDate == nil || *t.DueDate == "" {
		return time.Time{}, false
	}
	day, err := time.ParseInLocation("2006-01-02", *t.DueDate, loc)
	if err != nil {
		return time.Time{}, false
	}
	hh, mm := 23, 59
	if t.DueTime != nil && *t.DueTime != "" {
		clock, err := time.Parse("15:04", *t.DueTime)
		if err != nil {
			return time.Time{}, false
		}
		hh, mm = clock.Hour(), clock.Minute()
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hh, mm, 0, 0, loc), true
}
