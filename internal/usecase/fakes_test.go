package usecase

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/RahulRR-10/EchoSQL/internal/domain"
	"github.com/RahulRR-10/EchoSQL/internal/domain/entity"
	"github.com/RahulRR-10/EchoSQL/internal/viz"
)

// In-memory repository fakes shared by the usecase tests.

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeSessionRepo struct {
	sessions map[string]*entity.Session
	seq      int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*entity.Session{}}
}

func (r *fakeSessionRepo) Create(ctx context.Context, s *entity.Session) error {
	if s.ID == "" {
		r.seq++
		s.ID = "sess-" + string(rune('a'+r.seq))
	}
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	if s, ok := r.sessions[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, domain.NewNotFoundError("Session", id)
}

func (r *fakeSessionRepo) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*entity.Session, error) {
	var out []*entity.Session
	for _, s := range r.sessions {
		if s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeSessionRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	n := 0
	for _, s := range r.sessions {
		if s.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r *fakeSessionRepo) UpdateTitle(ctx context.Context, id, title string) error {
	s, ok := r.sessions[id]
	if !ok {
		return domain.NewNotFoundError("Session", id)
	}
	s.Title = title
	return nil
}

func (r *fakeSessionRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.sessions[id]; !ok {
		return domain.NewNotFoundError("Session", id)
	}
	delete(r.sessions, id)
	return nil
}

type fakeMessageRepo struct {
	messages []*entity.Message
	seq      int
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{}
}

func (r *fakeMessageRepo) Create(ctx context.Context, m *entity.Message) error {
	if m.ID == "" {
		r.seq++
		m.ID = "msg-" + string(rune('a'+r.seq))
	}
	m.CreatedAt = time.Now()
	cp := *m
	r.messages = append(r.messages, &cp)
	return nil
}

func (r *fakeMessageRepo) GetByID(ctx context.Context, id string) (*entity.Message, error) {
	for _, m := range r.messages {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, domain.NewNotFoundError("Message", id)
}

func (r *fakeMessageRepo) ListBySession(ctx context.Context, sessionID string) ([]*entity.Message, error) {
	var out []*entity.Message
	for _, m := range r.messages {
		if m.SessionID == sessionID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) CountBySession(ctx context.Context, sessionID string) (int, error) {
	out, _ := r.ListBySession(ctx, sessionID)
	return len(out), nil
}

func (r *fakeMessageRepo) DeleteBySession(ctx context.Context, sessionID string) error {
	kept := r.messages[:0]
	for _, m := range r.messages {
		if m.SessionID != sessionID {
			kept = append(kept, m)
		}
	}
	r.messages = kept
	return nil
}

type fakeProfileRepo struct {
	profiles map[string]*entity.DatabaseProfile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: map[string]*entity.DatabaseProfile{}}
}

func (r *fakeProfileRepo) Create(ctx context.Context, p *entity.DatabaseProfile) error {
	if p.ID == "" {
		p.ID = "prof-" + p.Name
	}
	cp := *p
	r.profiles[p.ID] = &cp
	return nil
}

func (r *fakeProfileRepo) GetByID(ctx context.Context, id string) (*entity.DatabaseProfile, error) {
	if p, ok := r.profiles[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.NewNotFoundError("Database profile", id)
}

func (r *fakeProfileRepo) GetByName(ctx context.Context, userID, name string) (*entity.DatabaseProfile, error) {
	for _, p := range r.profiles {
		if p.UserID == userID && p.Name == name {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.NewNotFoundError("Database profile", name)
}

func (r *fakeProfileRepo) ListByUser(ctx context.Context, userID string) ([]*entity.DatabaseProfile, error) {
	var out []*entity.DatabaseProfile
	for _, p := range r.profiles {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeProfileRepo) Update(ctx context.Context, p *entity.DatabaseProfile) error {
	if _, ok := r.profiles[p.ID]; !ok {
		return domain.NewNotFoundError("Database profile", p.ID)
	}
	cp := *p
	r.profiles[p.ID] = &cp
	return nil
}

func (r *fakeProfileRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.profiles[id]; !ok {
		return domain.NewNotFoundError("Database profile", id)
	}
	delete(r.profiles, id)
	return nil
}

type fakeBookmarkRepo struct {
	bookmarks []*entity.Bookmark
	seq       int
}

func newFakeBookmarkRepo() *fakeBookmarkRepo {
	return &fakeBookmarkRepo{}
}

func (r *fakeBookmarkRepo) Create(ctx context.Context, b *entity.Bookmark) error {
	if b.ID == "" {
		r.seq++
		b.ID = "bm-" + string(rune('a'+r.seq))
	}
	b.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	cp := *b
	r.bookmarks = append(r.bookmarks, &cp)
	return nil
}

func (r *fakeBookmarkRepo) GetByID(ctx context.Context, id string) (*entity.Bookmark, error) {
	for _, b := range r.bookmarks {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, domain.NewNotFoundError("Bookmark", id)
}

func (r *fakeBookmarkRepo) FindByQuestion(ctx context.Context, userID, question string) (*entity.Bookmark, error) {
	for _, b := range r.bookmarks {
		if b.UserID == userID && strings.EqualFold(b.Question, question) {
			cp := *b
			return &cp, nil
		}
	}
	return nil, domain.NewNotFoundError("Bookmark", question)
}

func (r *fakeBookmarkRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Bookmark, error) {
	var out []*entity.Bookmark
	for _, b := range r.bookmarks {
		if b.UserID == userID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeBookmarkRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	out, _ := r.ListByUser(ctx, userID)
	return len(out), nil
}

func (r *fakeBookmarkRepo) DeleteOldest(ctx context.Context, userID string) error {
	oldest := -1
	for i, b := range r.bookmarks {
		if b.UserID != userID {
			continue
		}
		if oldest == -1 || b.CreatedAt.Before(r.bookmarks[oldest].CreatedAt) {
			oldest = i
		}
	}
	if oldest >= 0 {
		r.bookmarks = append(r.bookmarks[:oldest], r.bookmarks[oldest+1:]...)
	}
	return nil
}

func (r *fakeBookmarkRepo) Delete(ctx context.Context, id string) error {
	for i, b := range r.bookmarks {
		if b.ID == id {
			r.bookmarks = append(r.bookmarks[:i], r.bookmarks[i+1:]...)
			return nil
		}
	}
	return domain.NewNotFoundError("Bookmark", id)
}

// fakeAgent returns a canned answer or error.
type fakeAgent struct {
	answer *domain.AgentAnswer
	err    error

	gotQuestion string
	gotProfile  *entity.DatabaseProfile
}

func (a *fakeAgent) Ask(ctx context.Context, question string, profile *entity.DatabaseProfile) (*domain.AgentAnswer, error) {
	a.gotQuestion = question
	a.gotProfile = profile
	if a.err != nil {
		return nil, a.err
	}
	return a.answer, nil
}

// fakeRecommender returns a canned recommendation or error.
type fakeRecommender struct {
	rec *domain.Recommendation
	err error
}

func (r *fakeRecommender) Recommend(ctx context.Context, result viz.Table, question, query string) (*domain.Recommendation, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.rec, nil
}

// fakeRenderer echoes the HTML back as the "PDF".
type fakeRenderer struct {
	err     error
	gotHTML []byte
}

func (r *fakeRenderer) RenderHTML(ctx context.Context, html []byte, filename string) ([]byte, error) {
	r.gotHTML = html
	if r.err != nil {
		return nil, r.err
	}
	return append([]byte("%PDF-"), html...), nil
}
