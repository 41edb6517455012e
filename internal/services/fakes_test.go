package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"aprovafacil/internal/models"
	"aprovafacil/internal/repositories"
)

// Fakes em memória para os testes de serviço. Sem banco, sem HTTP.

var errTelegramDown = errors.New("telegram indisponível")

type fakeWorkspaceRepo struct {
	seq   int64
	items map[int64]*models.Workspace
}

func newFakeWorkspaceRepo() *fakeWorkspaceRepo {
	return &fakeWorkspaceRepo{items: map[int64]*models.Workspace{}}
}

func (f *fakeWorkspaceRepo) Store(_ context.Context, w *models.Workspace) error {
	f.seq++
	w.ID = f.seq
	w.CreatedAt = time.Now()
	cp := *w
	f.items[w.ID] = &cp
	return nil
}

func (f *fakeWorkspaceRepo) FindByID(_ context.Context, id int64) (*models.Workspace, error) {
	w, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *w
	return &cp, nil
}

func (f *fakeWorkspaceRepo) FindAll(_ context.Context) ([]models.Workspace, error) {
	out := make([]models.Workspace, 0, len(f.items))
	for _, w := range f.items {
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeWorkspaceRepo) Update(_ context.Context, w *models.Workspace) error {
	cp := *w
	f.items[w.ID] = &cp
	return nil
}

func (f *fakeWorkspaceRepo) Delete(_ context.Context, id int64) error {
	delete(f.items, id)
	return nil
}

type fakeGroupRepo struct {
	seq   int64
	items map[int64]*models.Group
}

func newFakeGroupRepo() *fakeGroupRepo {
	return &fakeGroupRepo{items: map[int64]*models.Group{}}
}

func (f *fakeGroupRepo) Store(_ context.Context, g *models.Group) error {
	f.seq++
	g.ID = f.seq
	g.CreatedAt = time.Now()
	cp := *g
	f.items[g.ID] = &cp
	return nil
}

func (f *fakeGroupRepo) FindByID(_ context.Context, id int64) (*models.Group, error) {
	g, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (f *fakeGroupRepo) FindByWorkspace(_ context.Context, workspaceID int64) ([]models.Group, error) {
	var out []models.Group
	for _, g := range f.items {
		if g.WorkspaceID == workspaceID {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeGroupRepo) Delete(_ context.Context, id int64) error {
	delete(f.items, id)
	return nil
}

type fakeColumnRepo struct {
	seq   int64
	items map[int64]*models.Column
}

func newFakeColumnRepo() *fakeColumnRepo {
	return &fakeColumnRepo{items: map[int64]*models.Column{}}
}

func (f *fakeColumnRepo) Store(_ context.Context, c *models.Column) error {
	f.seq++
	c.ID = f.seq
	cp := *c
	f.items[c.ID] = &cp
	return nil
}

func (f *fakeColumnRepo) FindByID(_ context.Context, id int64) (*models.Column, error) {
	c, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeColumnRepo) FindByGroup(_ context.Context, groupID int64) ([]models.Column, error) {
	var out []models.Column
	for _, c := range f.items {
		if c.GroupID == groupID {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakeColumnRepo) FindByTitle(_ context.Context, groupID int64, title string) (*models.Column, error) {
	for _, c := range f.items {
		if c.GroupID == groupID && c.Title == title {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeColumnRepo) UpdatePosition(_ context.Context, id int64, position int) error {
	if c, ok := f.items[id]; ok {
		c.Position = position
	}
	return nil
}

func (f *fakeColumnRepo) Delete(_ context.Context, id int64) error {
	delete(f.items, id)
	return nil
}

type fakeInsightRepo struct {
	seq   int64
	items []models.InstagramInsight
}

func newFakeInsightRepo() *fakeInsightRepo { return &fakeInsightRepo{} }

func (f *fakeInsightRepo) Upsert(_ context.Context, in *models.InstagramInsight) error {
	for i := range f.items {
		if f.items[i].WorkspaceID == in.WorkspaceID && f.items[i].Month == in.Month {
			in.ID = f.items[i].ID
			f.items[i] = *in
			return nil
		}
	}
	f.seq++
	in.ID = f.seq
	f.items = append(f.items, *in)
	return nil
}

func (f *fakeInsightRepo) FindByWorkspace(_ context.Context, workspaceID int64) ([]models.InstagramInsight, error) {
	var out []models.InstagramInsight
	for _, in := range f.items {
		if in.WorkspaceID == workspaceID {
			out = append(out, in)
		}
	}
	return out, nil
}

type fakeTokenRepo struct {
	items map[string]*models.ShareToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{items: map[string]*models.ShareToken{}}
}

func (f *fakeTokenRepo) Store(_ context.Context, t *models.ShareToken) error {
	t.CreatedAt = time.Now()
	cp := *t
	f.items[t.Token] = &cp
	return nil
}

func (f *fakeTokenRepo) FindByToken(_ context.Context, kind models.LinkKind, token string) (*models.ShareToken, error) {
	rec, ok := f.items[token]
	if !ok || rec.Kind != kind {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeTokenRepo) FindByWorkspace(_ context.Context, workspaceID int64) ([]models.ShareToken, error) {
	var out []models.ShareToken
	for _, rec := range f.items {
		if rec.WorkspaceID == workspaceID {
			out = append(out, *rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Token < out[j].Token })
	return out, nil
}

func (f *fakeTokenRepo) Deactivate(_ context.Context, token string) error {
	if rec, ok := f.items[token]; ok {
		rec.IsActive = false
	}
	return nil
}

type fakeTaskRepo struct {
	seq     int64
	items   map[int64]*models.Task
	scan    []repositories.DeadlineTask
	scanErr error
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{items: map[int64]*models.Task{}}
}

func (f *fakeTaskRepo) Store(_ context.Context, t *models.Task) error {
	f.seq++
	t.ID = f.seq
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	if t.Attachments == nil {
		t.Attachments = []string{}
	}
	if t.Comments == nil {
		t.Comments = []models.Comment{}
	}
	cp := *t
	f.items[t.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) FindByID(_ context.Context, id int64) (*models.Task, error) {
	t, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTaskRepo) FindByGroup(_ context.Context, groupID int64) ([]models.Task, error) {
	return f.findMany(func(t *models.Task) bool { return t.GroupID == groupID }), nil
}

func (f *fakeTaskRepo) FindByColumn(_ context.Context, columnID int64) ([]models.Task, error) {
	return f.findMany(func(t *models.Task) bool { return t.ColumnID == columnID }), nil
}

func (f *fakeTaskRepo) findMany(keep func(*models.Task) bool) []models.Task {
	var out []models.Task
	for _, t := range f.items {
		if keep(t) {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeTaskRepo) Update(_ context.Context, t *models.Task) error {
	t.UpdatedAt = time.Now()
	cp := *t
	f.items[t.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	delete(f.items, id)
	return nil
}

func (f *fakeTaskRepo) UpdateColumn(_ context.Context, id, columnID int64) error {
	if t, ok := f.items[id]; ok {
		t.ColumnID = columnID
		t.UpdatedAt = time.Now()
	}
	return nil
}

func (f *fakeTaskRepo) AppendComment(_ context.Context, id int64, comment models.Comment) error {
	if t, ok := f.items[id]; ok {
		t.Comments = append(t.Comments, comment)
	}
	return nil
}

func (f *fakeTaskRepo) ListWithDeadline(_ context.Context) ([]repositories.DeadlineTask, error) {
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	out := make([]repositories.DeadlineTask, len(f.scan))
	copy(out, f.scan)
	return out, nil
}

func (f *fakeTaskRepo) MarkNotified2h(_ context.Context, id int64, at time.Time) error {
	for i := range f.scan {
		if f.scan[i].ID == id {
			ts := at
			f.scan[i].LastNotified2h = &ts
		}
	}
	return nil
}

func (f *fakeTaskRepo) MarkNotified30m(_ context.Context, id int64, at time.Time) error {
	for i := range f.scan {
		if f.scan[i].ID == id {
			ts := at
			f.scan[i].LastNotified30m = &ts
		}
	}
	return nil
}

// fakeNotifier grava tudo que o relay mandaria. failMatch derruba StaffAlert
// quando o texto contém a substring; skipped simula backend não configurado.
type fakeNotifier struct {
	staff     []string
	client    []string
	direct    []string
	skipped   bool
	failMatch string
}

func (f *fakeNotifier) StaffAlert(text string) (SendResult, error) {
	if f.failMatch != "" && strings.Contains(text, f.failMatch) {
		return SendResult{Channel: "telegram"}, errTelegramDown
	}
	if f.skipped {
		return SendResult{Channel: "telegram", Skipped: true, Detail: text}, nil
	}
	f.staff = append(f.staff, text)
	return SendResult{Channel: "telegram"}, nil
}

func (f *fakeNotifier) ClientMessage(_ *models.Workspace, text string) (SendResult, error) {
	if f.skipped {
		return SendResult{Channel: "none", Skipped: true, Detail: text}, nil
	}
	f.client = append(f.client, text)
	return SendResult{Channel: "whatsapp"}, nil
}

func (f *fakeNotifier) WhatsAppDirect(to, text string) (SendResult, error) {
	if f.skipped {
		return SendResult{Channel: "none", Skipped: true, Detail: text}, nil
	}
	f.direct = append(f.direct, to+": "+text)
	return SendResult{Channel: "whatsapp"}, nil
}
