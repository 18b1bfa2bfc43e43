package i18n

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/harnesslab/wiremes/internal/common/cnst"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func writeTranslations(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	en := `[Errors.General]
InternalError = "Internal server error"
NotFound = "Resource not found"

[Errors.Role]
UnknownMenuCode = "Unknown menu code: {{.Code}}"

[Messages.Auth]
LoginSuccess = "Login successful"
`
	ko := `[Errors.General]
NotFound = "리소스를 찾을 수 없습니다"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.toml"), []byte(en), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ko.toml"), []byte(ko), 0o644))
	return dir
}

func TestTranslate(t *testing.T) {
	i := NewI18n(language.English)
	require.NoError(t, i.LoadTranslations(writeTranslations(t)))

	assert.Equal(t, "Resource not found", i.Translate("Errors.General.NotFound", "en", nil))
	assert.Equal(t, "리소스를 찾을 수 없습니다", i.Translate("Errors.General.NotFound", "ko", nil))
}

func TestTranslateFallback(t *testing.T) {
	i := NewI18n(language.English)
	require.NoError(t, i.LoadTranslations(writeTranslations(t)))

	// missing in ko falls back to the default language
	assert.Equal(t, "Internal server error", i.Translate("Errors.General.InternalError", "ko", nil))
	// unknown message id falls back to the id itself
	assert.Equal(t, "No.Such.Message", i.Translate("No.Such.Message", "en", nil))
}

func TestTranslateTemplateData(t *testing.T) {
	i := NewI18n(language.English)
	require.NoError(t, i.LoadTranslations(writeTranslations(t)))

	got := i.Translate("Errors.Role.UnknownMenuCode", "en", map[string]interface{}{"Code": "bogus"})
	assert.Equal(t, "Unknown menu code: bogus", got)
}

func TestLanguageMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		header map[string]string
		want   string
	}{
		{"x-lang header", map[string]string{cnst.XLang: "ko"}, "ko"},
		{"accept-language", map[string]string{"Accept-Language": "ko-KR,ko;q=0.9"}, "ko"},
		{"unsupported falls back", map[string]string{cnst.XLang: "fr"}, "en"},
		{"no header", nil, "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			r := gin.New()
			r.Use(LanguageMiddleware())
			r.GET("/", func(c *gin.Context) {
				got = LangFromContext(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestErrorStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusOf(ErrRoleNotFound))
	assert.Equal(t, http.StatusConflict, StatusOf(ErrRoleCodeExists))
	assert.Equal(t, http.StatusUnauthorized, StatusOf(ErrInvalidCredentials))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(assert.AnError))
}

func TestRespondWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		RespondWithError(c, ErrLotNotFound)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success": false, "error": "Errors.Lot.NotFound"}`, w.Body.String())
}

func TestRespondData(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		RespondData(c, gin.H{"id": 1})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success": true, "data": {"id": 1}}`, w.Body.String())
}
