package handlers_test

import (
	"NoteKeeper/internal/middleware"
	"NoteKeeper/internal/model"
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func authCookie(res *http.Response) *http.Cookie {
	for _, c := range res.Cookies() {
		if c.Name == middleware.CookieName {
			return c
		}
	}
	return nil
}

func TestRegisterHandler(t *testing.T) {
	t.Run("successful registration sets auth cookie", func(t *testing.T) {
		router, m := newTestRouter(t)

		m.users.On("GetUserByLogin", mock.Anything, "alice").
			Return(nil, gorm.ErrRecordNotFound)
		m.users.On("CreateUser", mock.Anything, mock.AnythingOfType("*model.User")).
			Return(&model.User{ID: 7, Login: "alice"}, nil)

		body := `{"username": "alice", "password": "secret"}`
		req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.Contains(t, rr.Body.String(), `"username":"alice"`)

		cookie := authCookie(rr.Result())
		if assert.NotNil(t, cookie, "auth cookie expected after registration") {
			assert.NotEmpty(t, cookie.Value)
		}
		m.users.AssertExpectations(t)
	})

	t.Run("duplicate login returns 409", func(t *testing.T) {
		router, m := newTestRouter(t)

		m.users.On("GetUserByLogin", mock.Anything, "alice").
			Return(&model.User{ID: 1, Login: "alice"}, nil)

		body := `{"username": "alice", "password": "secret"}`
		req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
		m.users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("empty credentials return field errors", func(t *testing.T) {
		router, _ := newTestRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(`{}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), `"username":"required"`)
		assert.Contains(t, rr.Body.String(), `"password":"required"`)
	})

	t.Run("broken JSON returns 400", func(t *testing.T) {
		router, _ := newTestRouter(t)

		req := httptest.NewRequest(http.MethodPost, "/api/user/register", bytes.NewReader([]byte(`{`)))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestLoginHandler(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	assert.NoError(t, err)

	t.Run("valid credentials set auth cookie", func(t *testing.T) {
		router, m := newTestRouter(t)

		m.users.On("GetUserByLogin", mock.Anything, "alice").
			Return(&model.User{ID: 7, Login: "alice", Password: string(hash)}, nil)

		body := `{"username": "alice", "password": "secret"}`
		req := httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotNil(t, authCookie(rr.Result()))
	})

	t.Run("wrong password returns 401", func(t *testing.T) {
		router, m := newTestRouter(t)

		m.users.On("GetUserByLogin", mock.Anything, "alice").
			Return(&model.User{ID: 7, Login: "alice", Password: string(hash)}, nil)

		body := `{"username": "alice", "password": "wrong"}`
		req := httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Nil(t, authCookie(rr.Result()))
	})

	t.Run("unknown user returns 401", func(t *testing.T) {
		router, m := newTestRouter(t)

		m.users.On("GetUserByLogin", mock.Anything, "ghost").
			Return(nil, gorm.ErrRecordNotFound)

		body := `{"username": "ghost", "password": "secret"}`
		req := httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestProfileHandlers(t *testing.T) {
	t.Run("requires auth cookie", func(t *testing.T) {
		router, _ := newTestRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("returns profile of current user", func(t *testing.T) {
		router, m := newTestRouter(t)

		m.users.On("GetUserByID", mock.Anything, int64(7)).
			Return(&model.User{ID: 7, Login: "alice"}, nil)
		m.users.On("GetProfile", mock.Anything, int64(7)).
			Return(&model.Profile{UserID: 7, Bio: "hi", Gender: model.GenderFemale, ProfilePicture: "pic.png"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/user/profile", nil)
		addAuthCookie(t, req, 7)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"username":"alice"`)
		assert.Contains(t, rr.Body.String(), `"bio":"hi"`)
	})

	t.Run("update saves profile", func(t *testing.T) {
		router, m := newTestRouter(t)

		m.users.On("GetProfile", mock.Anything, int64(7)).
			Return(&model.Profile{UserID: 7}, nil)
		m.users.On("SaveProfile", mock.Anything, mock.MatchedBy(func(p *model.Profile) bool {
			return p.Bio == "new bio" && p.Gender == model.GenderMale
		})).Return(nil)

		body := `{"bio": "new bio", "gender": "M"}`
		req := httptest.NewRequest(http.MethodPut, "/api/user/profile", strings.NewReader(body))
		addAuthCookie(t, req, 7)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"status":"profile updated"`)
		m.users.AssertExpectations(t)
	})

	t.Run("invalid gender returns 400", func(t *testing.T) {
		router, _ := newTestRouter(t)

		body := `{"gender": "X"}`
		req := httptest.NewRequest(http.MethodPut, "/api/user/profile", strings.NewReader(body))
		addAuthCookie(t, req, 7)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "gender")
	})
}
