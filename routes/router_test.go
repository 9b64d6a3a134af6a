package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/parsguard/vpn-portal/config"
	"github.com/parsguard/vpn-portal/models"
	"github.com/parsguard/vpn-portal/storage"
	"github.com/parsguard/vpn-portal/utils"
)

const (
	testAdminUser     = "admin"
	testAdminPassword = "secret123"
)

func TestMain(m *testing.M) {
	tmp, err := os.MkdirTemp("", "portal-test-*")
	if err != nil {
		panic(err)
	}

	os.Setenv("SESSION_SECRET", "test-secret")
	os.Setenv("GIN_MODE", "test")
	os.Setenv("GIN_PATH", filepath.Join(tmp, "access.log"))
	os.Setenv("LOG_PATH", filepath.Join(tmp, "app.log"))
	os.Setenv("UPLOAD_DIR", filepath.Join(tmp, "uploads"))
	os.Setenv("MAX_UPLOAD_BYTES", "4096")
	os.Setenv("RATE_LIMIT_PER_MINUTE", "600")
	// Point at a port nothing listens on so response caching is always a miss.
	os.Setenv("REDIS_PORT", "6390")

	cfg := config.Load()
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	code := m.Run()
	os.RemoveAll(tmp)
	os.Exit(code)
}

func setupTest(t *testing.T) (*gin.Engine, *storage.Storage) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Admin{},
		&models.Platform{},
		&models.Application{},
		&models.Tutorial{},
		&models.Announcement{},
	))

	store := storage.New(db)
	hash, err := utils.HashPassword(testAdminPassword)
	require.NoError(t, err)
	require.NoError(t, store.CreateAdmin(context.Background(), &models.Admin{
		Username: testAdminUser, PasswordHash: hash,
	}))

	router := SetupRouter(db, utils.NewMemorySessionStore())
	return router, store
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, cookie string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func login(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": testAdminUser, "password": testAdminPassword,
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	cookie := sessionCookie(t, w)
	require.NotEmpty(t, cookie)
	return cookie
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == utils.SessionCookieName {
			return c.Name + "=" + c.Value
		}
	}
	return ""
}

func TestHealth(t *testing.T) {
	router, _ := setupTest(t)
	w := doJSON(t, router, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])
}

func TestLoginLifecycle(t *testing.T) {
	router, _ := setupTest(t)

	// Unknown user and wrong password must be indistinguishable.
	unknown := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": "nobody", "password": "whatever",
	}, "")
	wrong := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": testAdminUser, "password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, unknown.Body.String(), wrong.Body.String())
	assert.Equal(t, "Invalid credentials", decodeBody(t, unknown)["error"])

	cookie := login(t, router)

	me := doJSON(t, router, http.MethodGet, "/api/v1/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, me.Code)
	assert.Equal(t, testAdminUser, decodeBody(t, me)["username"])

	out := doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, out.Code)

	meAfter := doJSON(t, router, http.MethodGet, "/api/v1/auth/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, meAfter.Code)

	// Logout without a session still succeeds.
	anon := doJSON(t, router, http.MethodPost, "/api/v1/auth/logout", nil, "")
	assert.Equal(t, http.StatusOK, anon.Code)
}

func TestGuardRejectsAnonymousAndTamperedCookies(t *testing.T) {
	router, store := setupTest(t)

	body := gin.H{"nameEn": "Android", "nameFa": "اندروید", "icon": "android"}

	anon := doJSON(t, router, http.MethodPost, "/api/v1/platforms", body, "")
	assert.Equal(t, http.StatusUnauthorized, anon.Code)
	assert.Equal(t, "Unauthorized", decodeBody(t, anon)["error"])

	forged := utils.SessionCookieName + "=" + utils.SignSessionID("some-sid", "wrong-secret")
	tampered := doJSON(t, router, http.MethodPost, "/api/v1/platforms", body, forged)
	assert.Equal(t, http.StatusUnauthorized, tampered.Code)

	counts, err := store.EntityCounts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, counts.Platforms)
}

func TestPlatformCRUDFlow(t *testing.T) {
	router, _ := setupTest(t)
	cookie := login(t, router)

	created := doJSON(t, router, http.MethodPost, "/api/v1/platforms", gin.H{
		"nameEn": "Android", "nameFa": "اندروید", "icon": "android", "order": 1,
	}, cookie)
	require.Equal(t, http.StatusCreated, created.Code)
	id := decodeBody(t, created)["id"].(float64)
	require.NotZero(t, id)

	// Reads are public.
	list := doJSON(t, router, http.MethodGet, "/api/v1/platforms", nil, "")
	require.Equal(t, http.StatusOK, list.Code)
	var platforms []map[string]any
	require.NoError(t, json.Unmarshal(list.Body.Bytes(), &platforms))
	require.Len(t, platforms, 1)
	assert.Equal(t, "Android", platforms[0]["nameEn"])

	patched := doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/v1/platforms/%.0f", id), gin.H{
		"nameEn": "Android TV",
	}, cookie)
	require.Equal(t, http.StatusOK, patched.Code)
	assert.Equal(t, "Android TV", decodeBody(t, patched)["nameEn"])
	assert.Equal(t, "اندروید", decodeBody(t, patched)["nameFa"])

	deleted := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/platforms/%.0f", id), nil, cookie)
	require.Equal(t, http.StatusOK, deleted.Code)

	missing := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/platforms/%.0f", id), nil, "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, "Platform not found", decodeBody(t, missing)["error"])
}

func TestPlatformValidationErrors(t *testing.T) {
	router, _ := setupTest(t)
	cookie := login(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/platforms", gin.H{"nameEn": "Android"}, cookie)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Error []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	fields := map[string]bool{}
	for _, fe := range body.Error {
		fields[fe.Field] = true
	}
	assert.True(t, fields["nameFa"])
	assert.True(t, fields["icon"])
	assert.False(t, fields["nameEn"])
}

func TestApplicationPlatformReference(t *testing.T) {
	router, _ := setupTest(t)
	cookie := login(t, router)

	bogus := doJSON(t, router, http.MethodPost, "/api/v1/applications", gin.H{
		"platformId": 99, "nameEn": "App", "nameFa": "اپ", "downloadLink": "https://example.com",
	}, cookie)
	require.Equal(t, http.StatusBadRequest, bogus.Code)
	assert.Contains(t, bogus.Body.String(), "referenced platform does not exist")

	platform := doJSON(t, router, http.MethodPost, "/api/v1/platforms", gin.H{
		"nameEn": "Android", "nameFa": "اندروید", "icon": "android",
	}, cookie)
	require.Equal(t, http.StatusCreated, platform.Code)
	platformID := decodeBody(t, platform)["id"].(float64)

	created := doJSON(t, router, http.MethodPost, "/api/v1/applications", gin.H{
		"platformId": platformID, "nameEn": "App", "nameFa": "اپ", "downloadLink": "https://example.com",
	}, cookie)
	require.Equal(t, http.StatusCreated, created.Code)

	filtered := doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/v1/applications?platformId=%.0f", platformID), nil, "")
	require.Equal(t, http.StatusOK, filtered.Code)
	var apps []map[string]any
	require.NoError(t, json.Unmarshal(filtered.Body.Bytes(), &apps))
	assert.Len(t, apps, 1)

	invalid := doJSON(t, router, http.MethodGet, "/api/v1/applications?platformId=abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, invalid.Code)
}

func TestTutorialFiltersAndSanitization(t *testing.T) {
	router, _ := setupTest(t)
	cookie := login(t, router)

	created := doJSON(t, router, http.MethodPost, "/api/v1/tutorials", gin.H{
		"type": "text", "category": "general",
		"titleEn": "Setup", "titleFa": "راه‌اندازی",
		"contentEn": `<p>Step one</p><script>alert("x")</script>`,
	}, cookie)
	require.Equal(t, http.StatusCreated, created.Code)
	content := decodeBody(t, created)["contentEn"].(string)
	assert.Contains(t, content, "Step one")
	assert.NotContains(t, content, "<script>")

	other := doJSON(t, router, http.MethodPost, "/api/v1/tutorials", gin.H{
		"type": "video", "category": "bot",
		"titleEn": "Bot help", "titleFa": "ربات",
		"videoUrl": "https://example.com/v.mp4",
	}, cookie)
	require.Equal(t, http.StatusCreated, other.Code)

	byCategory := doJSON(t, router, http.MethodGet, "/api/v1/tutorials?category=bot", nil, "")
	require.Equal(t, http.StatusOK, byCategory.Code)
	var tutorials []map[string]any
	require.NoError(t, json.Unmarshal(byCategory.Body.Bytes(), &tutorials))
	require.Len(t, tutorials, 1)
	assert.Equal(t, "Bot help", tutorials[0]["titleEn"])

	invalid := doJSON(t, router, http.MethodGet, "/api/v1/tutorials?category=nope", nil, "")
	assert.Equal(t, http.StatusBadRequest, invalid.Code)

	badType := doJSON(t, router, http.MethodPost, "/api/v1/tutorials", gin.H{
		"type": "audio", "category": "general", "titleEn": "X", "titleFa": "ی",
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, badType.Code)
}

func TestTutorialNullClearsNullableFields(t *testing.T) {
	router, store := setupTest(t)
	cookie := login(t, router)

	platform := doJSON(t, router, http.MethodPost, "/api/v1/platforms", gin.H{
		"nameEn": "Android", "nameFa": "اندروید", "icon": "android",
	}, cookie)
	require.Equal(t, http.StatusCreated, platform.Code)
	platformID := decodeBody(t, platform)["id"].(float64)

	app := doJSON(t, router, http.MethodPost, "/api/v1/applications", gin.H{
		"platformId": platformID, "nameEn": "Client", "nameFa": "کلاینت", "downloadLink": "https://example.com",
	}, cookie)
	require.Equal(t, http.StatusCreated, app.Code)
	appID := decodeBody(t, app)["id"].(float64)

	created := doJSON(t, router, http.MethodPost, "/api/v1/tutorials", gin.H{
		"type": "video", "category": "general",
		"titleEn": "Setup", "titleFa": "راه‌اندازی",
		"contentEn":  "step one",
		"videoUrl":   "https://example.com/v.mp4",
		"platformId": platformID, "appId": appID,
	}, cookie)
	require.Equal(t, http.StatusCreated, created.Code)
	id := decodeBody(t, created)["id"].(float64)

	// Explicit nulls unlink and clear; omitted fields are untouched.
	patched := doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/v1/tutorials/%.0f", id), gin.H{
		"platformId": nil, "appId": nil, "videoUrl": nil,
	}, cookie)
	require.Equal(t, http.StatusOK, patched.Code)
	body := decodeBody(t, patched)
	assert.Nil(t, body["platformId"])
	assert.Nil(t, body["appId"])
	assert.Nil(t, body["videoUrl"])
	assert.Equal(t, "step one", body["contentEn"])

	tutorial, err := store.TutorialByID(context.Background(), uint(id))
	require.NoError(t, err)
	require.NotNil(t, tutorial)
	assert.Nil(t, tutorial.PlatformID)
	assert.Nil(t, tutorial.AppID)
	assert.Nil(t, tutorial.VideoURL)
	require.NotNil(t, tutorial.ContentEn)
	assert.Equal(t, "step one", *tutorial.ContentEn)
}

func TestApplicationNullClearsNullableFields(t *testing.T) {
	router, _ := setupTest(t)
	cookie := login(t, router)

	platform := doJSON(t, router, http.MethodPost, "/api/v1/platforms", gin.H{
		"nameEn": "Android", "nameFa": "اندروید", "icon": "android",
	}, cookie)
	require.Equal(t, http.StatusCreated, platform.Code)
	platformID := decodeBody(t, platform)["id"].(float64)

	created := doJSON(t, router, http.MethodPost, "/api/v1/applications", gin.H{
		"platformId": platformID, "nameEn": "Client", "nameFa": "کلاینت",
		"downloadLink": "https://example.com", "version": "1.2.3", "descriptionEn": "fast",
	}, cookie)
	require.Equal(t, http.StatusCreated, created.Code)
	id := decodeBody(t, created)["id"].(float64)

	patched := doJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/v1/applications/%.0f", id), gin.H{
		"version": nil, "descriptionEn": nil,
	}, cookie)
	require.Equal(t, http.StatusOK, patched.Code)
	body := decodeBody(t, patched)
	assert.Nil(t, body["version"])
	assert.Nil(t, body["descriptionEn"])
	assert.Equal(t, "Client", body["nameEn"])
}

func TestValidationFieldNamesMatchWireFormat(t *testing.T) {
	router, _ := setupTest(t)
	cookie := login(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/applications", gin.H{}, cookie)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var body struct {
		Error []struct {
			Field string `json:"field"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	fields := map[string]bool{}
	for _, fe := range body.Error {
		fields[fe.Field] = true
	}
	// Multi-capital struct fields must surface under their json tag names.
	assert.True(t, fields["platformId"])
	assert.True(t, fields["downloadLink"])
	assert.False(t, fields["platformID"])
	assert.False(t, fields["PlatformID"])
}

func TestAnnouncementActiveFilter(t *testing.T) {
	router, _ := setupTest(t)
	cookie := login(t, router)

	active := doJSON(t, router, http.MethodPost, "/api/v1/announcements", gin.H{
		"titleEn": "Maintenance", "titleFa": "تعمیرات",
		"contentEn": "Down tonight", "contentFa": "امشب",
	}, cookie)
	require.Equal(t, http.StatusCreated, active.Code)
	assert.Equal(t, true, decodeBody(t, active)["isActive"])

	hidden := doJSON(t, router, http.MethodPost, "/api/v1/announcements", gin.H{
		"titleEn": "Draft", "titleFa": "پیش‌نویس",
		"contentEn": "Not yet", "contentFa": "هنوز",
		"isActive":  false,
	}, cookie)
	require.Equal(t, http.StatusCreated, hidden.Code)

	onlyActive := doJSON(t, router, http.MethodGet, "/api/v1/announcements?active=true", nil, "")
	require.Equal(t, http.StatusOK, onlyActive.Code)
	var announcements []map[string]any
	require.NoError(t, json.Unmarshal(onlyActive.Body.Bytes(), &announcements))
	require.Len(t, announcements, 1)
	assert.Equal(t, "Maintenance", announcements[0]["titleEn"])
}

func multipartImage(t *testing.T, field, filename, contentType string, data []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func pngBytes(size int) []byte {
	data := make([]byte, size)
	copy(data, []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'})
	return data
}

func TestUploadLifecycle(t *testing.T) {
	router, _ := setupTest(t)
	cookie := login(t, router)

	upload := func(body io.Reader, contentType string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/upload/image", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Cookie", cookie)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	// Anonymous uploads are rejected.
	body, ct := multipartImage(t, "image", "shot.png", "image/png", pngBytes(64))
	anonReq := httptest.NewRequest(http.MethodPost, "/api/v1/upload/image", body)
	anonReq.Header.Set("Content-Type", ct)
	anon := httptest.NewRecorder()
	router.ServeHTTP(anon, anonReq)
	assert.Equal(t, http.StatusUnauthorized, anon.Code)

	// Missing file field.
	empty := doJSON(t, router, http.MethodPost, "/api/v1/upload/image", gin.H{}, cookie)
	assert.Equal(t, http.StatusBadRequest, empty.Code)

	// Wrong declared type.
	body, ct = multipartImage(t, "image", "notes.txt", "text/plain", []byte("hello"))
	rejected := upload(body, ct)
	require.Equal(t, http.StatusBadRequest, rejected.Code)
	assert.Contains(t, rejected.Body.String(), "invalid file type")

	// Declared image type but non-image content.
	body, ct = multipartImage(t, "image", "fake.png", "image/png", []byte("just some text content here"))
	sniffed := upload(body, ct)
	assert.Equal(t, http.StatusBadRequest, sniffed.Code)

	// Larger than MAX_UPLOAD_BYTES (4096 in tests).
	body, ct = multipartImage(t, "image", "big.png", "image/png", pngBytes(8192))
	tooBig := upload(body, ct)
	assert.Equal(t, http.StatusBadRequest, tooBig.Code)

	// A valid small PNG is stored and served under /uploads/.
	body, ct = multipartImage(t, "image", "screen shot#1.png", "image/png", pngBytes(256))
	ok := upload(body, ct)
	require.Equal(t, http.StatusOK, ok.Code)
	url := decodeBody(t, ok)["url"].(string)
	require.True(t, strings.HasPrefix(url, "/uploads/"))

	name := strings.TrimPrefix(url, "/uploads/")
	_, err := os.Stat(filepath.Join(config.Get().UploadDir, name))
	require.NoError(t, err)

	first := doJSON(t, router, http.MethodDelete, "/api/v1/upload/image/"+name, nil, cookie)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, true, decodeBody(t, first)["deleted"])

	second := doJSON(t, router, http.MethodDelete, "/api/v1/upload/image/"+name, nil, cookie)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, false, decodeBody(t, second)["deleted"])
}

func TestPasswordChangeFlow(t *testing.T) {
	router, _ := setupTest(t)
	cookie := login(t, router)

	wrong := doJSON(t, router, http.MethodPatch, "/api/v1/auth/password", gin.H{
		"currentPassword": "not-it", "newPassword": "brand-new-pass",
	}, cookie)
	require.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, "Current password is incorrect", decodeBody(t, wrong)["error"])

	short := doJSON(t, router, http.MethodPatch, "/api/v1/auth/password", gin.H{
		"currentPassword": testAdminPassword, "newPassword": "abc",
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, short.Code)

	ok := doJSON(t, router, http.MethodPatch, "/api/v1/auth/password", gin.H{
		"currentPassword": testAdminPassword, "newPassword": "brand-new-pass",
	}, cookie)
	require.Equal(t, http.StatusOK, ok.Code)

	relogin := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": testAdminUser, "password": "brand-new-pass",
	}, "")
	assert.Equal(t, http.StatusOK, relogin.Code)

	old := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": testAdminUser, "password": testAdminPassword,
	}, "")
	assert.Equal(t, http.StatusUnauthorized, old.Code)
}

func TestUsernameChange(t *testing.T) {
	router, store := setupTest(t)
	cookie := login(t, router)

	hash, err := utils.HashPassword("other-pass")
	require.NoError(t, err)
	require.NoError(t, store.CreateAdmin(context.Background(), &models.Admin{
		Username: "taken", PasswordHash: hash,
	}))

	dup := doJSON(t, router, http.MethodPatch, "/api/v1/auth/username", gin.H{
		"username": "taken", "currentPassword": testAdminPassword,
	}, cookie)
	require.Equal(t, http.StatusBadRequest, dup.Code)
	assert.Equal(t, "Username is already taken", decodeBody(t, dup)["error"])

	badPass := doJSON(t, router, http.MethodPatch, "/api/v1/auth/username", gin.H{
		"username": "newadmin", "currentPassword": "wrong",
	}, cookie)
	assert.Equal(t, http.StatusUnauthorized, badPass.Code)

	ok := doJSON(t, router, http.MethodPatch, "/api/v1/auth/username", gin.H{
		"username": "newadmin", "currentPassword": testAdminPassword,
	}, cookie)
	require.Equal(t, http.StatusOK, ok.Code)
	assert.Equal(t, "newadmin", decodeBody(t, ok)["username"])
}

func TestStatsRequiresAuth(t *testing.T) {
	router, _ := setupTest(t)

	anon := doJSON(t, router, http.MethodGet, "/api/v1/stats", nil, "")
	assert.Equal(t, http.StatusUnauthorized, anon.Code)

	cookie := login(t, router)
	created := doJSON(t, router, http.MethodPost, "/api/v1/platforms", gin.H{
		"nameEn": "Android", "nameFa": "اندروید", "icon": "android",
	}, cookie)
	require.Equal(t, http.StatusCreated, created.Code)

	stats := doJSON(t, router, http.MethodGet, "/api/v1/stats", nil, cookie)
	require.Equal(t, http.StatusOK, stats.Code)
	body := decodeBody(t, stats)
	assert.Equal(t, float64(1), body["platformCount"])
	assert.Equal(t, float64(0), body["tutorialCount"])
}
