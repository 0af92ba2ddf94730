package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/agency-portfolio-backend/auth"
	"github.com/rpupo63/agency-portfolio-backend/database"
	"github.com/rpupo63/agency-portfolio-backend/models"
	"github.com/rpupo63/agency-portfolio-backend/resources"
	"github.com/rpupo63/agency-portfolio-backend/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCDN = "https://cdn.test"

type stubNotifier struct {
	err   error
	calls int
}

func (n *stubNotifier) NotifyContactQuery(_ context.Context, _ *models.ContactQuery) error {
	n.calls++
	return n.err
}

type testServer struct {
	router   http.Handler
	db       database.Database
	store    *storage.MemoryStore
	managers *resources.Managers
	tokens   *auth.TokenIssuer
	notifier *stubNotifier
}

func newTestServer(t *testing.T, cfg map[string]string) *testServer {
	t.Helper()
	if cfg == nil {
		cfg = map[string]string{}
	}
	if _, ok := cfg["LOG_FORMAT"]; !ok {
		cfg["LOG_FORMAT"] = "json"
	}

	db := database.NewInMemory()
	store := storage.NewMemoryStore(testCDN)
	tokens := auth.NewTokenIssuer(testSecret, time.Hour)
	notifier := &stubNotifier{}
	managers := resources.New(db, storage.Instrument(store), tokens, notifier)

	return &testServer{
		router:   newRouter(managers, tokens, db, withConfig(cfg)),
		db:       db,
		store:    store,
		managers: managers,
		tokens:   tokens,
		notifier: notifier,
	}
}

func (s *testServer) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withToken(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

type envelope struct {
	Message      string                        `json:"message"`
	Status       string                        `json:"status"`
	Data         json.RawMessage               `json:"data"`
	Notification *resources.NotificationResult `json:"notification"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

type multipartField struct {
	name, value string
	file        []byte
}

func multipartRequest(t *testing.T, method, target string, fields ...multipartField) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, f := range fields {
		if f.file != nil {
			part, err := writer.CreateFormFile(f.name, f.name+".png")
			require.NoError(t, err)
			_, err = part.Write(f.file)
			require.NoError(t, err)
			continue
		}
		require.NoError(t, writer.WriteField(f.name, f.value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestRootAndHealth(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(t, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Portfolio server is running...", rec.Body.String())

	rec = srv.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	var health HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Database)
}

func TestMetricsEndpointCountsRequests(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.do(t, httptest.NewRequest(http.MethodGet, "/services", nil))

	rec := srv.do(t, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `portfolio_http_requests_total{method="GET",route="/services",status="200"}`)
}

func TestAdminLoginAndProfile(t *testing.T) {
	srv := newTestServer(t, nil)
	created, err := srv.managers.Admins.EnsureBootstrapAdmin(context.Background(), resources.AdminInput{
		Email:    "owner@studio.dev",
		Password: "correct horse",
	})
	require.NoError(t, err)
	require.True(t, created)

	rec := srv.do(t, jsonRequest(t, http.MethodPost, "/admin/login", map[string]string{
		"email": "owner@studio.dev", "password": "wrong",
	}))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid password", decode(t, rec).Message)

	rec = srv.do(t, jsonRequest(t, http.MethodPost, "/admin/login", map[string]string{
		"email": "nobody@studio.dev", "password": "correct horse",
	}))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = srv.do(t, jsonRequest(t, http.MethodPost, "/admin/login", map[string]string{
		"email": "Owner@Studio.dev", "password": "correct horse",
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "Login successful", body.Message)
	assert.NotContains(t, string(body.Data), "password")

	var session struct {
		ID    string `json:"_id"`
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &session))
	require.NotEmpty(t, session.Token)

	rec = srv.do(t, withToken(httptest.NewRequest(http.MethodGet, "/admin/profile/"+session.ID, nil), session.Token))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, withToken(httptest.NewRequest(http.MethodGet, "/admin/profile/"+uuid.NewString(), nil), session.Token))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = srv.do(t, httptest.NewRequest(http.MethodGet, "/admin/profile/"+session.ID, nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized: Token missing", decode(t, rec).Message)

	rec = srv.do(t, withToken(httptest.NewRequest(http.MethodGet, "/admin/profile/"+session.ID, nil), "not-a-token"))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Forbidden: Invalid or expired token", decode(t, rec).Message)
}

func TestRegisterRequiresToken(t *testing.T) {
	srv := newTestServer(t, nil)
	payload := map[string]string{"email": "second@studio.dev", "password": "pw"}

	rec := srv.do(t, jsonRequest(t, http.MethodPost, "/admin/register", payload))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := srv.tokens.Issue(uuid.New())
	require.NoError(t, err)
	rec = srv.do(t, withToken(jsonRequest(t, http.MethodPost, "/admin/register", payload), token))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Admin registered successfully", decode(t, rec).Message)

	rec = srv.do(t, withToken(jsonRequest(t, http.MethodPost, "/admin/register", payload), token))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestContactRequestPersistsWhenEmailFails(t *testing.T) {
	srv := newTestServer(t, nil)
	srv.notifier.err = errors.New("resend: 500")

	rec := srv.do(t, jsonRequest(t, http.MethodPost, "/contact-request", map[string]string{
		"firstName": "A", "lastName": "B", "email": "a@b.com", "phone": "1", "message": "hi",
	}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	require.NotNil(t, body.Notification)
	assert.False(t, body.Notification.Sent)
	assert.Equal(t, "resend: 500", body.Notification.Error)
	assert.Equal(t, 1, srv.notifier.calls)

	stored, err := srv.db.ContactQueryRepo().FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "A B", stored[0].Name)
	assert.Equal(t, "a@b.com", stored[0].Email)
}

func TestContactRequestListIsAdminOnly(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(t, httptest.NewRequest(http.MethodGet, "/contact-requests-view", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := srv.tokens.Issue(uuid.New())
	require.NoError(t, err)
	rec = srv.do(t, withToken(httptest.NewRequest(http.MethodGet, "/contact-requests-view", nil), token))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(decode(t, rec).Data))
}

func TestContactRequestDetailRoutesAreAdminOnly(t *testing.T) {
	srv := newTestServer(t, map[string]string{"PROTECT_CONTENT_WRITES": "false"})
	target := "/contact-request/" + uuid.NewString()

	for _, method := range []string{http.MethodGet, http.MethodPatch, http.MethodDelete} {
		rec := srv.do(t, httptest.NewRequest(method, target, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, method)
	}
}

func TestServiceLifecycleOverMultipart(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(t, multipartRequest(t, http.MethodPost, "/create-service",
		multipartField{name: "name", value: "Web Design"},
		multipartField{name: "slug", value: "web-design"},
		multipartField{name: "tags", value: `["ui","ux"]`},
		multipartField{name: "view_point", value: "design"},
		multipartField{name: "image", file: []byte("png")},
	))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var service models.Service
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &service))
	assert.Equal(t, testCDN+"/portfolio_images/web-design", service.Image)
	assert.Equal(t, []string{"ui", "ux"}, []string(service.Tags))
	assert.True(t, srv.store.Has(storage.ServicesFolder, "web-design"))

	rec = srv.do(t, multipartRequest(t, http.MethodPost, "/create-service",
		multipartField{name: "slug", value: "web-design"},
		multipartField{name: "image", file: []byte("png")},
	))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = srv.do(t, httptest.NewRequest(http.MethodGet, "/service/web-design", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, httptest.NewRequest(http.MethodGet, "/services/filter-by-viewpoint?view_point=Design,other", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var filtered []models.Service
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &filtered))
	assert.Len(t, filtered, 1)

	rec = srv.do(t, httptest.NewRequest(http.MethodGet, "/services/filter-by-viewpoint", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = srv.do(t, httptest.NewRequest(http.MethodDelete, "/delete-service/"+service.ID.String(), nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, srv.store.Has(storage.ServicesFolder, "web-design"))
}

func TestCreateServiceWithoutImage(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(t, multipartRequest(t, http.MethodPost, "/create-service",
		multipartField{name: "slug", value: "seo"},
	))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Image file is required", decode(t, rec).Message)
}

func TestProjectWithUnknownCategoryUploadsNothing(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(t, multipartRequest(t, http.MethodPost, "/project/create",
		multipartField{name: "slug", value: "shop"},
		multipartField{name: "category_ids", value: uuid.NewString()},
		multipartField{name: "feature_image", file: []byte("png")},
		multipartField{name: "images[]", file: []byte("png")},
	))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "One or more category IDs are invalid", decode(t, rec).Message)
	assert.Equal(t, 0, srv.store.Len())
}

func TestBlogDeleteAlias(t *testing.T) {
	srv := newTestServer(t, nil)

	rec := srv.do(t, multipartRequest(t, http.MethodPost, "/create-blog",
		multipartField{name: "title", value: "Hello"},
		multipartField{name: "slug", value: "hello"},
		multipartField{name: "image", file: []byte("png")},
	))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var blog models.Blog
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &blog))

	rec = srv.do(t, httptest.NewRequest(http.MethodGet, "/blog/hello", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = srv.do(t, httptest.NewRequest(http.MethodDelete, "/blogs/"+blog.ID.String(), nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Blog deleted", decode(t, rec).Message)

	rec = srv.do(t, httptest.NewRequest(http.MethodGet, "/blog/id/"+blog.ID.String(), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProtectContentWrites(t *testing.T) {
	payload := map[string]string{"category_name": "Design", "category_slug": "design"}

	open := newTestServer(t, nil)
	rec := open.do(t, jsonRequest(t, http.MethodPost, "/categories", payload))
	assert.Equal(t, http.StatusCreated, rec.Code)

	guarded := newTestServer(t, map[string]string{"PROTECT_CONTENT_WRITES": "true"})
	rec = guarded.do(t, jsonRequest(t, http.MethodPost, "/categories", payload))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := guarded.tokens.Issue(uuid.New())
	require.NoError(t, err)
	rec = guarded.do(t, withToken(jsonRequest(t, http.MethodPost, "/categories", payload), token))
	assert.Equal(t, http.StatusCreated, rec.Code)

	// reads and contact submissions stay public
	rec = guarded.do(t, httptest.NewRequest(http.MethodGet, "/categories", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = guarded.do(t, jsonRequest(t, http.MethodPost, "/contact-request", map[string]string{"email": "x@y.z"}))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestOversizedBodyIsRejected(t *testing.T) {
	srv := newTestServer(t, map[string]string{"MAX_UPLOAD_MB": "1"})

	body := `{"message":"` + strings.Repeat("x", 2<<20) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/contact-request", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := srv.do(t, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, map[string]string{"ACCEPTED_ORIGINS": "https://studio.dev"})

	req := httptest.NewRequest(http.MethodOptions, "/services", nil)
	req.Header.Set("Origin", "https://studio.dev")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := srv.do(t, req)
	assert.Equal(t, "https://studio.dev", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/services", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = srv.do(t, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
