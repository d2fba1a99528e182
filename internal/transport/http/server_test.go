package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"bio_showcase/internal/domain/models"
	"bio_showcase/internal/feed"
	"bio_showcase/internal/services/auth"
	content "bio_showcase/internal/services/content_service"
	feedsvc "bio_showcase/internal/services/feed_service"
	media "bio_showcase/internal/services/media_service"
	"bio_showcase/internal/services/translation"
	"bio_showcase/internal/storage"
	httpapp "bio_showcase/internal/transport/http"
	"bio_showcase/internal/transport/http/dto/response"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var _ httpapp.LanguageService = (*translation.CookieService)(nil)

type testValidator struct {
	v *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error { return tv.v.Struct(i) }

type MockContentService struct {
	mock.Mock
}

func (m *MockContentService) CreateGalleryItem(ctx context.Context, item models.GalleryItem) (string, error) {
	args := m.Called(ctx, item)
	return args.String(0), args.Error(1)
}

func (m *MockContentService) UpdateGalleryItem(ctx context.Context, item models.GalleryItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockContentService) DeleteGalleryItem(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockContentService) GetGalleryItem(ctx context.Context, id string) (models.GalleryItem, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.GalleryItem), args.Error(1)
}

func (m *MockContentService) ListGalleryItems(ctx context.Context, category string, limit int) ([]models.GalleryItem, error) {
	args := m.Called(ctx, category, limit)
	items, _ := args.Get(0).([]models.GalleryItem)
	return items, args.Error(1)
}

func (m *MockContentService) CreateAward(ctx context.Context, award models.Award) (string, error) {
	args := m.Called(ctx, award)
	return args.String(0), args.Error(1)
}

func (m *MockContentService) UpdateAward(ctx context.Context, award models.Award) error {
	return m.Called(ctx, award).Error(0)
}

func (m *MockContentService) DeleteAward(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockContentService) GetAward(ctx context.Context, id string) (models.Award, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Award), args.Error(1)
}

func (m *MockContentService) ListAwards(ctx context.Context) ([]models.Award, error) {
	args := m.Called(ctx)
	awards, _ := args.Get(0).([]models.Award)
	return awards, args.Error(1)
}

func (m *MockContentService) CreateService(ctx context.Context, service models.Service) (string, error) {
	args := m.Called(ctx, service)
	return args.String(0), args.Error(1)
}

func (m *MockContentService) UpdateService(ctx context.Context, service models.Service) error {
	return m.Called(ctx, service).Error(0)
}

func (m *MockContentService) DeleteService(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockContentService) GetService(ctx context.Context, id string) (models.Service, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Service), args.Error(1)
}

func (m *MockContentService) ListServices(ctx context.Context) ([]models.Service, error) {
	args := m.Called(ctx)
	services, _ := args.Get(0).([]models.Service)
	return services, args.Error(1)
}

func (m *MockContentService) CreateAboutSection(ctx context.Context, section models.AboutSection) (string, error) {
	args := m.Called(ctx, section)
	return args.String(0), args.Error(1)
}

func (m *MockContentService) UpdateAboutSection(ctx context.Context, section models.AboutSection) error {
	return m.Called(ctx, section).Error(0)
}

func (m *MockContentService) DeleteAboutSection(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockContentService) GetAboutSection(ctx context.Context, id string) (models.AboutSection, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.AboutSection), args.Error(1)
}

func (m *MockContentService) ListAboutSections(ctx context.Context) ([]models.AboutSection, error) {
	args := m.Called(ctx)
	sections, _ := args.Get(0).([]models.AboutSection)
	return sections, args.Error(1)
}

type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) Snapshot(ctx context.Context, refresh bool) ([]models.MediaEntry, error) {
	args := m.Called(ctx, refresh)
	entries, _ := args.Get(0).([]models.MediaEntry)
	return entries, args.Error(1)
}

func (m *MockFeedService) View(ctx context.Context, q feedsvc.FeedQuery) (feedsvc.FeedPage, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(feedsvc.FeedPage), args.Error(1)
}

func (m *MockFeedService) Categories(ctx context.Context) ([]feed.CategoryCount, error) {
	args := m.Called(ctx)
	chips, _ := args.Get(0).([]feed.CategoryCount)
	return chips, args.Error(1)
}

func (m *MockFeedService) PageSize() int { return 12 }

type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) Upload(ctx context.Context, input media.UploadInput) (media.UploadResult, error) {
	args := m.Called(ctx, input.Filename, input.Folder)
	return args.Get(0).(media.UploadResult), args.Error(1)
}

func (m *MockMediaService) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, error) {
	args := m.Called(ctx, username, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Verify(token string) (models.AdminClaims, error) {
	args := m.Called(token)
	return args.Get(0).(models.AdminClaims), args.Error(1)
}

type healthFunc func(ctx context.Context) error

func (f healthFunc) HealthCheck(ctx context.Context) error { return f(ctx) }

type testEnv struct {
	e       *echo.Echo
	routers *httpapp.Routers
	content *MockContentService
	feed    *MockFeedService
	media   *MockMediaService
	auth    *MockAuthService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		e:       echo.New(),
		content: new(MockContentService),
		feed:    new(MockFeedService),
		media:   new(MockMediaService),
		auth:    new(MockAuthService),
	}
	env.e.Validator = &testValidator{v: validator.New()}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	env.routers = httpapp.NewRouter(log, env.content, env.feed, env.media, env.auth,
		translation.NewCookieService([]string{"ru"}, time.Hour), httpapp.SlideshowConfig{PageSize: 4})

	return env
}

func (env *testEnv) do(method, target string, body io.Reader, contentType string, h echo.HandlerFunc, params ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)
	if len(params) > 0 {
		c.SetParamNames(params[0])
		c.SetParamValues(params[1])
	}
	err := h(c)
	if err != nil {
		env.e.HTTPErrorHandler(err, c)
	}
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestRouters_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		mockSetup  func(m *MockAuthService)
		wantStatus int
		wantError  string
	}{
		{
			name: "success",
			body: `{"username":"admin","password":"password123"}`,
			mockSetup: func(m *MockAuthService) {
				m.On("Login", mock.Anything, "admin", "password123").Return("token-1", nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "short password",
			body:       `{"username":"admin","password":"short"}`,
			mockSetup:  func(m *MockAuthService) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_request",
		},
		{
			name:       "broken json",
			body:       `{"username":`,
			mockSetup:  func(m *MockAuthService) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_request",
		},
		{
			name: "wrong credentials",
			body: `{"username":"admin","password":"password123"}`,
			mockSetup: func(m *MockAuthService) {
				m.On("Login", mock.Anything, "admin", "password123").Return("", auth.ErrInvalidCredentials).Once()
			},
			wantStatus: http.StatusUnauthorized,
			wantError:  "authentication_failed",
		},
		{
			name: "storage failure",
			body: `{"username":"admin","password":"password123"}`,
			mockSetup: func(m *MockAuthService) {
				m.On("Login", mock.Anything, "admin", "password123").Return("", errors.New("db down")).Once()
			},
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal_error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			tt.mockSetup(env.auth)

			rec := env.do(http.MethodPost, "/api/v1/admin/login", strings.NewReader(tt.body), echo.MIMEApplicationJSON, env.routers.Login)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				var resp response.ErrorResponse
				decode(t, rec, &resp)
				assert.Equal(t, tt.wantError, resp.Error)
			} else {
				var resp struct {
					Data map[string]string `json:"data"`
				}
				decode(t, rec, &resp)
				assert.Equal(t, "token-1", resp.Data["access_token"])
				assert.Equal(t, "Bearer", resp.Data["token_type"])
			}
			env.auth.AssertExpectations(t)
		})
	}
}

func TestRouters_AdminOnly(t *testing.T) {
	claims := models.AdminClaims{AdminID: "a-1", Username: "admin"}

	tests := []struct {
		name       string
		header     string
		mockSetup  func(m *MockAuthService)
		wantStatus int
	}{
		{name: "no header", wantStatus: http.StatusUnauthorized, mockSetup: func(m *MockAuthService) {}},
		{name: "not bearer", header: "Basic abc", wantStatus: http.StatusUnauthorized, mockSetup: func(m *MockAuthService) {}},
		{
			name:   "invalid token",
			header: "Bearer bad",
			mockSetup: func(m *MockAuthService) {
				m.On("Verify", "bad").Return(models.AdminClaims{}, errors.New("invalid token")).Once()
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "valid token",
			header: "Bearer good",
			mockSetup: func(m *MockAuthService) {
				m.On("Verify", "good").Return(claims, nil).Once()
			},
			wantStatus: http.StatusTeapot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			tt.mockSetup(env.auth)

			next := func(c echo.Context) error {
				assert.Equal(t, claims, c.Get("admin"))
				return c.NoContent(http.StatusTeapot)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/gallery", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			require.NoError(t, env.routers.AdminOnly(next)(env.e.NewContext(req, rec)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			env.auth.AssertExpectations(t)
		})
	}
}

func TestRouters_ListGallery(t *testing.T) {
	items := []models.GalleryItem{{ID: "1", Title: "Conference", Image: "https://img/1.jpg"}}

	tests := []struct {
		name       string
		query      string
		mockSetup  func(m *MockContentService)
		wantStatus int
		wantLen    int
	}{
		{
			name:  "all",
			query: "",
			mockSetup: func(m *MockContentService) {
				m.On("ListGalleryItems", mock.Anything, "", 0).Return(items, nil).Once()
			},
			wantStatus: http.StatusOK,
			wantLen:    1,
		},
		{
			name:  "category and limit",
			query: "?category=events&limit=3",
			mockSetup: func(m *MockContentService) {
				m.On("ListGalleryItems", mock.Anything, "events", 3).Return([]models.GalleryItem(nil), nil).Once()
			},
			wantStatus: http.StatusOK,
			wantLen:    0,
		},
		{
			name:       "bad limit",
			query:      "?limit=-2",
			mockSetup:  func(m *MockContentService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:  "service error",
			query: "",
			mockSetup: func(m *MockContentService) {
				m.On("ListGalleryItems", mock.Anything, "", 0).Return(nil, errors.New("boom")).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			tt.mockSetup(env.content)

			rec := env.do(http.MethodGet, "/api/v1/gallery"+tt.query, nil, "", env.routers.ListGallery)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				var resp struct {
					Data []models.GalleryItem `json:"data"`
				}
				decode(t, rec, &resp)
				assert.NotNil(t, resp.Data)
				assert.Len(t, resp.Data, tt.wantLen)
			}
			env.content.AssertExpectations(t)
		})
	}
}

func TestRouters_PublicLists(t *testing.T) {
	env := newTestEnv()
	env.content.On("ListAwards", mock.Anything).Return([]models.Award{{ID: "a", Title: "Prize", Year: 2021}}, nil).Once()
	env.content.On("ListServices", mock.Anything).Return(nil, nil).Once()
	env.content.On("ListAboutSections", mock.Anything).Return(nil, errors.New("db down")).Once()

	rec := env.do(http.MethodGet, "/api/v1/awards", nil, "", env.routers.ListAwards)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"year":2021`)

	rec = env.do(http.MethodGet, "/api/v1/services", nil, "", env.routers.ListServices)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success","data":[]}`, rec.Body.String())

	rec = env.do(http.MethodGet, "/api/v1/about", nil, "", env.routers.ListAbout)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	env.content.AssertExpectations(t)
}

func TestRouters_GalleryAdmin(t *testing.T) {
	id := uuid.NewString()

	t.Run("create", func(t *testing.T) {
		env := newTestEnv()
		env.content.On("CreateGalleryItem", mock.Anything, mock.MatchedBy(func(item models.GalleryItem) bool {
			return item.Title == "Conference" && item.Category == "events" && item.ID == ""
		})).Return(id, nil).Once()

		body := `{"title":"Conference","image":"https://img/1.jpg","category":"events","createdAt":"2024-05-01"}`
		rec := env.do(http.MethodPost, "/api/v1/admin/gallery", strings.NewReader(body), echo.MIMEApplicationJSON, env.routers.CreateGalleryItem)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), id)
		env.content.AssertExpectations(t)
	})

	t.Run("create without image", func(t *testing.T) {
		env := newTestEnv()

		rec := env.do(http.MethodPost, "/api/v1/admin/gallery", strings.NewReader(`{"title":"x"}`), echo.MIMEApplicationJSON, env.routers.CreateGalleryItem)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env.content.AssertNotCalled(t, "CreateGalleryItem", mock.Anything, mock.Anything)
	})

	t.Run("service rejects input", func(t *testing.T) {
		env := newTestEnv()
		env.content.On("CreateGalleryItem", mock.Anything, mock.Anything).
			Return("", content.ErrInvalidInput).Once()

		rec := env.do(http.MethodPost, "/api/v1/admin/gallery", strings.NewReader(`{"title":"x","image":" y "}`), echo.MIMEApplicationJSON, env.routers.CreateGalleryItem)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("update missing", func(t *testing.T) {
		env := newTestEnv()
		env.content.On("UpdateGalleryItem", mock.Anything, mock.MatchedBy(func(item models.GalleryItem) bool {
			return item.ID == id
		})).Return(storage.ErrNotFound).Once()

		body := `{"title":"Conference","image":"https://img/1.jpg"}`
		rec := env.do(http.MethodPut, "/api/v1/admin/gallery/"+id, strings.NewReader(body), echo.MIMEApplicationJSON, env.routers.UpdateGalleryItem, "id", id)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		env.content.AssertExpectations(t)
	})

	t.Run("delete", func(t *testing.T) {
		env := newTestEnv()
		env.content.On("DeleteGalleryItem", mock.Anything, id).Return(nil).Once()

		rec := env.do(http.MethodDelete, "/api/v1/admin/gallery/"+id, nil, "", env.routers.DeleteGalleryItem, "id", id)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		env.content.AssertExpectations(t)
	})

	t.Run("get", func(t *testing.T) {
		env := newTestEnv()
		env.content.On("GetGalleryItem", mock.Anything, id).Return(models.GalleryItem{ID: id, Title: "Conference"}, nil).Once()

		rec := env.do(http.MethodGet, "/api/v1/admin/gallery/"+id, nil, "", env.routers.GetGalleryItem, "id", id)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Conference")
	})
}

func TestRouters_AwardServiceAboutAdmin(t *testing.T) {
	id := uuid.NewString()
	env := newTestEnv()

	env.content.On("CreateAward", mock.Anything, mock.MatchedBy(func(a models.Award) bool {
		return a.Year == 2021 && len(a.Images) == 1
	})).Return(id, nil).Once()
	env.content.On("UpdateService", mock.Anything, mock.MatchedBy(func(s models.Service) bool {
		return s.ID == id && len(s.Features) == 2
	})).Return(nil).Once()
	env.content.On("DeleteAboutSection", mock.Anything, id).Return(storage.ErrNotFound).Once()

	rec := env.do(http.MethodPost, "/api/v1/admin/awards",
		strings.NewReader(`{"title":"Prize","year":"2021","images":[{"url":"https://img/a.jpg"}]}`),
		echo.MIMEApplicationJSON, env.routers.CreateAward)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(http.MethodPut, "/api/v1/admin/services/"+id,
		strings.NewReader(`{"title":"Care","features":["a","b"]}`),
		echo.MIMEApplicationJSON, env.routers.UpdateService, "id", id)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(http.MethodDelete, "/api/v1/admin/about/"+id, nil, "", env.routers.DeleteAboutSection, "id", id)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodPost, "/api/v1/admin/about", strings.NewReader(`{"position":-1,"title":"x"}`),
		echo.MIMEApplicationJSON, env.routers.CreateAboutSection)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env.content.AssertExpectations(t)
}

func TestRouters_Feed(t *testing.T) {
	page := feedsvc.FeedPage{
		Category: "awards",
		Entries:  []models.MediaEntry{{ID: "award-1-main", ImageURL: "https://img/a.jpg"}},
		Shown:    1,
		Total:    3,
		HasMore:  true,
	}

	tests := []struct {
		name       string
		query      string
		mockSetup  func(m *MockFeedService)
		wantStatus int
	}{
		{
			name:  "query mapping",
			query: "?category=awards&q=+leader+&limit=1&refresh=true",
			mockSetup: func(m *MockFeedService) {
				m.On("View", mock.Anything, feedsvc.FeedQuery{Category: "awards", Search: "leader", Limit: 1, Refresh: true}).
					Return(page, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "bad refresh",
			query:      "?refresh=maybe",
			mockSetup:  func(m *MockFeedService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:  "empty feed is not an error",
			query: "",
			mockSetup: func(m *MockFeedService) {
				m.On("View", mock.Anything, feedsvc.FeedQuery{}).
					Return(feedsvc.FeedPage{Category: "all", Entries: []models.MediaEntry{}, Empty: true}, nil).Once()
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			tt.mockSetup(env.feed)

			rec := env.do(http.MethodGet, "/api/v1/feed"+tt.query, nil, "", env.routers.Feed)

			assert.Equal(t, tt.wantStatus, rec.Code)
			env.feed.AssertExpectations(t)
		})
	}
}

func TestRouters_FeedCategories(t *testing.T) {
	env := newTestEnv()
	env.feed.On("Categories", mock.Anything).Return([]feed.CategoryCount{
		{Category: "all", Count: 2, Coarse: true},
		{Category: "events", Count: 1},
	}, nil).Once()

	rec := env.do(http.MethodGet, "/api/v1/feed/categories", nil, "", env.routers.FeedCategories)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Data []feed.CategoryCount `json:"data"`
	}
	decode(t, rec, &resp)
	assert.Len(t, resp.Data, 2)
}

func multipartImage(t *testing.T, withFile bool) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("folder", "awards"))

	if withFile {
		part, err := writer.CreateFormFile("file", "prize.png")
		require.NoError(t, err)
		require.NoError(t, png.Encode(part, image.NewRGBA(image.Rect(0, 0, 4, 3))))
	}
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestRouters_UploadMedia(t *testing.T) {
	result := media.UploadResult{URL: "/uploads/awards/x.png", Width: 4, Height: 3, Orientation: feed.Landscape}

	tests := []struct {
		name       string
		withFile   bool
		mockSetup  func(m *MockMediaService)
		wantStatus int
	}{
		{
			name:     "success",
			withFile: true,
			mockSetup: func(m *MockMediaService) {
				m.On("Upload", mock.Anything, "prize.png", "awards").Return(result, nil).Once()
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing file",
			withFile:   false,
			mockSetup:  func(m *MockMediaService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:     "too large",
			withFile: true,
			mockSetup: func(m *MockMediaService) {
				m.On("Upload", mock.Anything, "prize.png", "awards").Return(media.UploadResult{}, storage.ErrFileTooLarge).Once()
			},
			wantStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name:     "wrong type",
			withFile: true,
			mockSetup: func(m *MockMediaService) {
				m.On("Upload", mock.Anything, "prize.png", "awards").Return(media.UploadResult{}, storage.ErrInvalidFileType).Once()
			},
			wantStatus: http.StatusUnsupportedMediaType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			tt.mockSetup(env.media)

			body, contentType := multipartImage(t, tt.withFile)
			rec := env.do(http.MethodPost, "/api/v1/admin/media/upload", body, contentType, env.routers.UploadMedia)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusCreated {
				assert.Contains(t, rec.Body.String(), `"orientation":"landscape"`)
			}
			env.media.AssertExpectations(t)
		})
	}
}

func TestRouters_DeleteMedia(t *testing.T) {
	env := newTestEnv()
	env.media.On("Delete", mock.Anything, "awards/2024/05/x.png").Return(storage.ErrFileNotFound).Once()

	rec := env.do(http.MethodDelete, "/api/v1/admin/media/awards/2024/05/x.png", nil, "", env.routers.DeleteMedia, "*", "awards/2024/05/x.png")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	env.media.AssertExpectations(t)
}

func TestRouters_Health(t *testing.T) {
	env := newTestEnv()
	env.routers.AddHealthCheck("postgres", healthFunc(func(context.Context) error { return nil }))

	rec := env.do(http.MethodGet, "/health", nil, "", env.routers.Health)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","data":{"postgres":"up"}}`, rec.Body.String())

	env.routers.AddHealthCheck("redis", healthFunc(func(context.Context) error { return errors.New("refused") }))

	rec = env.do(http.MethodGet, "/health", nil, "", env.routers.Health)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"degraded","data":{"postgres":"up","redis":"down"}}`, rec.Body.String())
}

func TestRouters_Language(t *testing.T) {
	env := newTestEnv()

	rec := env.do(http.MethodPost, "/api/v1/language", strings.NewReader(`{"language":"ru"}`), echo.MIMEApplicationJSON, env.routers.SetLanguage)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, translation.CookieName, cookies[0].Name)
	assert.Equal(t, "/en/ru", mustUnescape(t, cookies[0].Value))

	rec = env.do(http.MethodPost, "/api/v1/language", strings.NewReader(`{"language":"fr"}`), echo.MIMEApplicationJSON, env.routers.SetLanguage)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodGet, "/api/v1/language", nil, "", env.routers.Languages)
	assert.JSONEq(t, `{"status":"success","data":["en","ru"]}`, rec.Body.String())
}

func mustUnescape(t *testing.T, s string) string {
	t.Helper()
	v, err := url.QueryUnescape(s)
	require.NoError(t, err)
	return v
}
