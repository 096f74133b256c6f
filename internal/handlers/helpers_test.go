package handlers_test

import (
	"NoteKeeper/internal/config"
	"NoteKeeper/internal/handlers"
	"NoteKeeper/internal/middleware"
	"NoteKeeper/internal/model"
	"NoteKeeper/internal/repo"
	"NoteKeeper/internal/service"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// Minimal mocks
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByLogin(ctx context.Context, login string) (*model.User, error) {
	args := m.Called(ctx, login)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetProfile(ctx context.Context, userID int64) (*model.Profile, error) {
	args := m.Called(ctx, userID)
	if p, ok := args.Get(0).(*model.Profile); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) SaveProfile(ctx context.Context, profile *model.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

type mockNoteRepo struct{ mock.Mock }

func (m *mockNoteRepo) Create(ctx context.Context, note *model.Note, tagNames []string, files []repo.FileUpload) (*model.Note, error) {
	args := m.Called(ctx, note, tagNames, files)
	if n, ok := args.Get(0).(*model.Note); ok {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNoteRepo) Update(ctx context.Context, authorID int64, slug string, upd repo.NoteUpdate, tagNames []string, files []repo.FileUpload) (*model.Note, error) {
	args := m.Called(ctx, authorID, slug, upd, tagNames, files)
	if n, ok := args.Get(0).(*model.Note); ok {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNoteRepo) GetBySlug(ctx context.Context, authorID int64, slug string) (*model.Note, error) {
	args := m.Called(ctx, authorID, slug)
	if n, ok := args.Get(0).(*model.Note); ok {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNoteRepo) List(ctx context.Context, authorID int64, filter repo.NoteFilter) ([]model.Note, error) {
	args := m.Called(ctx, authorID, filter)
	if v, ok := args.Get(0).([]model.Note); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNoteRepo) ToggleArchived(ctx context.Context, authorID int64, slug string) (*model.Note, error) {
	args := m.Called(ctx, authorID, slug)
	if n, ok := args.Get(0).(*model.Note); ok {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNoteRepo) TogglePinned(ctx context.Context, authorID int64, slug string) (*model.Note, error) {
	args := m.Called(ctx, authorID, slug)
	if n, ok := args.Get(0).(*model.Note); ok {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNoteRepo) Delete(ctx context.Context, authorID int64, slug string) error {
	args := m.Called(ctx, authorID, slug)
	return args.Error(0)
}

var _ repo.NoteRepository = (*mockNoteRepo)(nil)

type mockTagRepo struct{ mock.Mock }

func (m *mockTagRepo) FindOrCreate(ctx context.Context, name string) (*model.Tag, error) {
	args := m.Called(ctx, name)
	if t, ok := args.Get(0).(*model.Tag); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTagRepo) List(ctx context.Context) ([]model.Tag, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.Tag); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTagRepo) GetBySlug(ctx context.Context, slug string) (*model.Tag, error) {
	args := m.Called(ctx, slug)
	if t, ok := args.Get(0).(*model.Tag); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTagRepo) Rename(ctx context.Context, slug, name string) (*model.Tag, error) {
	args := m.Called(ctx, slug, name)
	if t, ok := args.Get(0).(*model.Tag); ok {
		return t, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTagRepo) Delete(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

var _ repo.TagRepository = (*mockTagRepo)(nil)

type mockAttachmentRepo struct{ mock.Mock }

func (m *mockAttachmentRepo) GetByID(ctx context.Context, userID int64, id string) (*model.Attachment, error) {
	args := m.Called(ctx, userID, id)
	if a, ok := args.Get(0).(*model.Attachment); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.AttachmentRepository = (*mockAttachmentRepo)(nil)

// --- Helpers ---

const testSecret = "test-secret"

type routerMocks struct {
	users       *mockUserRepo
	notes       *mockNoteRepo
	tags        *mockTagRepo
	attachments *mockAttachmentRepo
}

func newTestRouter(t *testing.T) (http.Handler, *routerMocks) {
	t.Helper()
	cfg := &config.Config{AuthSecret: testSecret, AttachMaxSizeMB: 1}
	logger := zap.NewNop().Sugar()

	m := &routerMocks{
		users:       new(mockUserRepo),
		notes:       new(mockNoteRepo),
		tags:        new(mockTagRepo),
		attachments: new(mockAttachmentRepo),
	}

	userSvc := service.NewUserService(m.users)
	profileSvc := service.NewProfileService(m.users)
	noteSvc := service.NewNoteService(m.notes, m.attachments, logger)
	tagSvc := service.NewTagService(m.tags)

	h := handlers.NewHandler(userSvc, profileSvc, noteSvc, tagSvc, logger, cfg)
	return h.Router, m
}

func addAuthCookie(t *testing.T, req *http.Request, userID int64) {
	t.Helper()
	rr := httptest.NewRecorder()
	_ = middleware.SetLoginCookie(rr, userID, testSecret)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}
