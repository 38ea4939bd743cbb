package routes

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"photostudio-backend/internal/auth"
	"photostudio-backend/internal/config"
	"photostudio-backend/internal/models"
	"photostudio-backend/internal/repository"
	"photostudio-backend/internal/services/audit"
	"photostudio-backend/internal/services/content"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestServer(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Income{},
		&models.Expense{},
		&models.Customer{},
		&models.Invoice{},
		&models.Asset{},
		&models.GalleryImage{},
		&models.HeroImage{},
		&models.WebsiteSettings{},
		&models.ContactMessage{},
		&models.PricingPackage{},
		&models.AuditLog{},
	))

	hash, err := auth.HashPassword("admin-password")
	require.NoError(t, err)
	require.NoError(t, repository.NewUserRepository(db).Create(&models.User{
		Name:         "Admin User",
		Email:        "admin@test.com",
		PasswordHash: hash,
		Role:         "admin",
	}))

	contentService := content.NewService(
		repository.NewGalleryRepository(db),
		repository.NewSettingsRepository(db),
		repository.NewPricingRepository(db),
		repository.NewContactRepository(db),
		audit.NewRecorder(repository.NewAuditRepository(db)),
	)
	require.NoError(t, contentService.EnsureDefaults())

	uploadDir := t.TempDir()
	cfg := &config.Config{
		Session: config.SessionConfig{
			SigningKey: "test-signing-key",
			TTL:        time.Hour,
			CookieName: "studio_session",
		},
		Upload: config.UploadConfig{Dir: uploadDir},
	}

	r := gin.New()
	RegisterRoutes(r, db, cfg)
	return r, uploadDir
}

func postMultipart(r *gin.Engine, path string, fields map[string]string, fileField, filename string, cookie *http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	if fileField != "" {
		fw, _ := mw.CreateFormFile(fileField, filename)
		fw.Write([]byte("not really image bytes"))
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// countFiles walks dir counting regular files, so upload tests can assert
// nothing hit the disk on a rejected request.
func countFiles(t *testing.T, dir string) int {
	t.Helper()
	count := 0
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			count++
		}
		return nil
	})
	require.NoError(t, err)
	return count
}

func postForm(r *gin.Engine, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(r *gin.Engine, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// login authenticates and returns the session cookie plus the CSRF token.
func login(t *testing.T, r *gin.Engine) (*http.Cookie, string) {
	t.Helper()
	w := postForm(r, "/api/auth/login", url.Values{
		"email":    {"admin@test.com"},
		"password": {"admin-password"},
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		CSRFToken string `json:"csrf_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.CSRFToken)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "studio_session" {
			require.True(t, cookie.HttpOnly)
			return cookie, body.CSRFToken
		}
	}
	t.Fatal("session cookie not set")
	return nil, ""
}

func TestLogin(t *testing.T) {
	r, _ := newTestServer(t)

	t.Run("valid credentials set the session cookie", func(t *testing.T) {
		cookie, csrf := login(t, r)
		assert.NotEmpty(t, cookie.Value)
		assert.NotEmpty(t, csrf)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		w := postForm(r, "/api/auth/login", url.Values{
			"email":    {"admin@test.com"},
			"password": {"wrong-password"},
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown email is unauthorized", func(t *testing.T) {
		w := postForm(r, "/api/auth/login", url.Values{
			"email":    {"nobody@test.com"},
			"password": {"admin-password"},
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing fields is a bad request", func(t *testing.T) {
		w := postForm(r, "/api/auth/login", url.Values{"email": {"admin@test.com"}}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAdminRoutesRequireSession(t *testing.T) {
	r, _ := newTestServer(t)

	w := get(r, "/api/admin/dashboard", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(r, "/api/admin/dashboard", &http.Cookie{Name: "studio_session", Value: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	cookie, _ := login(t, r)
	w = get(r, "/api/admin/dashboard", cookie)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestMutationsRequireCSRFToken(t *testing.T) {
	r, _ := newTestServer(t)
	cookie, csrf := login(t, r)

	form := url.Values{
		"date":        {"2026-08-26"},
		"description": {"wedding shoot"},
		"category":    {"photography"},
		"amount":      {"500"},
	}

	t.Run("missing token is rejected", func(t *testing.T) {
		w := postForm(r, "/api/admin/income", form, cookie)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "CSRF")
	})

	t.Run("wrong token is rejected", func(t *testing.T) {
		withToken := url.Values{}
		for k, v := range form {
			withToken[k] = v
		}
		withToken.Set("csrf_token", "forged")
		w := postForm(r, "/api/admin/income", withToken, cookie)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("valid token in the form passes", func(t *testing.T) {
		withToken := url.Values{}
		for k, v := range form {
			withToken[k] = v
		}
		withToken.Set("csrf_token", csrf)
		w := postForm(r, "/api/admin/income", withToken, cookie)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("valid token in the header passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/admin/income", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("X-CSRF-Token", csrf)
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})
}

func TestBookkeepingFlow(t *testing.T) {
	r, _ := newTestServer(t)
	cookie, csrf := login(t, r)

	w := postForm(r, "/api/admin/customers", url.Values{
		"csrf_token":   {csrf},
		"name":         {"Jane"},
		"service":      {"wedding"},
		"total_amount": {"1000"},
		"amount_paid":  {"400"},
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = postForm(r, "/api/admin/invoices", url.Values{
		"csrf_token":  {csrf},
		"customer_id": {"1"},
		"date":        {"2026-08-26"},
		"amount":      {"600"},
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	t.Run("invalid entry is a bad request", func(t *testing.T) {
		w := postForm(r, "/api/admin/income", url.Values{
			"csrf_token":  {csrf},
			"date":        {"2026-08-26"},
			"description": {"shoot"},
			"category":    {"photography"},
			"amount":      {"-5"},
		}, cookie)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate invoice number is a conflict", func(t *testing.T) {
		form := url.Values{
			"csrf_token":     {csrf},
			"customer_id":    {"1"},
			"date":           {"2026-08-26"},
			"amount":         {"100"},
			"invoice_number": {"INV-FIXED-1"},
		}
		w := postForm(r, "/api/admin/invoices", form, cookie)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = postForm(r, "/api/admin/invoices", form, cookie)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("dashboard reflects the pending balance", func(t *testing.T) {
		w := get(r, "/api/admin/dashboard", cookie)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			TotalPendingBalance float64 `json:"total_pending_balance"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 600.0, body.TotalPendingBalance)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		w := postForm(r, "/api/admin/income/9999/delete", url.Values{"csrf_token": {csrf}}, cookie)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestPublicEndpoints(t *testing.T) {
	r, _ := newTestServer(t)

	t.Run("health", func(t *testing.T) {
		w := get(r, "/api/health", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("home bundles settings and pricing", func(t *testing.T) {
		w := get(r, "/api/home", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Benjo Moments")
		assert.Contains(t, w.Body.String(), "packages")
	})

	t.Run("gallery rejects unknown album", func(t *testing.T) {
		w := get(r, "/api/gallery?album=graduations", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("contact form stores a message", func(t *testing.T) {
		w := postForm(r, "/api/contact", url.Values{
			"name":    {"Jane"},
			"email":   {"jane@test.com"},
			"message": {"Do you cover kukyala?"},
		}, nil)
		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = postForm(r, "/api/contact", url.Values{"name": {"Jane"}}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("pricing lists only active packages", func(t *testing.T) {
		w := get(r, "/api/pricing", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Packages []models.PricingPackage `json:"packages"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Len(t, body.Packages, 3)
	})
}

func TestMe(t *testing.T) {
	r, _ := newTestServer(t)

	w := get(r, "/api/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	cookie, _ := login(t, r)
	w = get(r, "/api/auth/me", cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin@test.com")
	assert.NotContains(t, w.Body.String(), "password_hash")
}

func TestGalleryUpload(t *testing.T) {
	r, uploadDir := newTestServer(t)
	cookie, csrf := login(t, r)

	t.Run("valid png upload stores the file and the row", func(t *testing.T) {
		w := postMultipart(r, "/api/admin/gallery", map[string]string{
			"csrf_token": csrf,
			"album":      "weddings",
			"caption":    "First dance",
		}, "image", "first-dance.png", cookie)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, 1, countFiles(t, uploadDir))

		var body struct {
			Image models.GalleryImage `json:"image"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "weddings", body.Image.Album)
		assert.Equal(t, "First dance", body.Image.Caption)
		assert.True(t, strings.HasSuffix(body.Image.Filename, ".png"))
		assert.NotEqual(t, "first-dance.png", body.Image.Filename, "stored name must be randomized")
	})

	t.Run("disallowed extension is rejected without disk IO", func(t *testing.T) {
		before := countFiles(t, uploadDir)
		w := postMultipart(r, "/api/admin/gallery", map[string]string{
			"csrf_token": csrf,
			"album":      "weddings",
		}, "image", "malware.exe", cookie)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, before, countFiles(t, uploadDir))
	})

	t.Run("extension-less filename is rejected", func(t *testing.T) {
		before := countFiles(t, uploadDir)
		w := postMultipart(r, "/api/admin/gallery", map[string]string{
			"csrf_token": csrf,
			"album":      "weddings",
		}, "image", "noextension", cookie)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, before, countFiles(t, uploadDir))
	})

	t.Run("unknown album is rejected without disk IO", func(t *testing.T) {
		before := countFiles(t, uploadDir)
		w := postMultipart(r, "/api/admin/gallery", map[string]string{
			"csrf_token": csrf,
			"album":      "graduations",
		}, "image", "photo.jpg", cookie)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, before, countFiles(t, uploadDir))
	})

	t.Run("missing file is a bad request", func(t *testing.T) {
		w := postMultipart(r, "/api/admin/gallery", map[string]string{
			"csrf_token": csrf,
			"album":      "weddings",
		}, "", "", cookie)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHeroImageUpload(t *testing.T) {
	r, uploadDir := newTestServer(t)
	cookie, csrf := login(t, r)

	t.Run("valid upload lands under the hero folder", func(t *testing.T) {
		w := postMultipart(r, "/api/admin/website/hero", map[string]string{
			"csrf_token":    csrf,
			"display_order": "1",
		}, "hero_image", "slide.jpg", cookie)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, 1, countFiles(t, filepath.Join(uploadDir, "hero")))
	})

	t.Run("disallowed extension is rejected without disk IO", func(t *testing.T) {
		w := postMultipart(r, "/api/admin/website/hero", map[string]string{
			"csrf_token": csrf,
		}, "hero_image", "slide.svg", cookie)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 1, countFiles(t, uploadDir))
	})

	t.Run("delete removes the row and the file", func(t *testing.T) {
		w := postForm(r, "/api/admin/website/hero/1/delete", url.Values{"csrf_token": {csrf}}, cookie)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, 0, countFiles(t, uploadDir))
	})
}

func TestLogoutClearsCookie(t *testing.T) {
	r, _ := newTestServer(t)
	cookie, csrf := login(t, r)

	w := postForm(r, "/api/auth/logout", url.Values{"csrf_token": {csrf}}, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	for _, c := range w.Result().Cookies() {
		if c.Name == "studio_session" {
			assert.Empty(t, c.Value)
			assert.True(t, c.MaxAge < 0)
			return
		}
	}
	t.Fatal("expected the session cookie to be cleared")
}
