package webhook

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/nattapongw/calendar-api/pkg/logger"
)

func newTestRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	lg := logger.NewLogger(&logger.Config{Level: logger.FatalLevel})
	h := NewHandler(nil, secret, lg)

	r := gin.New()
	h.RegisterRoutes(r.Group(""))
	return r
}

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestReceiveValidSignature(t *testing.T) {
	r := newTestRouter("secret")
	body := []byte(`{"events":[]}`)

	req := httptest.NewRequest(http.MethodPost, "/webhook/line", bytes.NewReader(body))
	req.Header.Set(signatureHeader, sign("secret", body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestReceiveRejectsBadSignature(t *testing.T) {
	r := newTestRouter("secret")
	body := []byte(`{"events":[]}`)

	req := httptest.NewRequest(http.MethodPost, "/webhook/line", bytes.NewReader(body))
	req.Header.Set(signatureHeader, sign("wrong-secret", body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReceiveRejectsMissingSignature(t *testing.T) {
	r := newTestRouter("secret")

	req := httptest.NewRequest(http.MethodPost, "/webhook/line", bytes.NewReader([]byte(`{"events":[]}`)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReceiveRejectsMalformedPayload(t *testing.T) {
	r := newTestRouter("secret")
	body := []byte(`not json`)

	req := httptest.NewRequest(http.MethodPost, "/webhook/line", bytes.NewReader(body))
	req.Header.Set(signatureHeader, sign("secret", body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReceiveNoSecretSkipsCheck(t *testing.T) {
	r := newTestRouter("")

	req := httptest.NewRequest(http.MethodPost, "/webhook/line", bytes.NewReader([]byte(`{"events":[]}`)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
