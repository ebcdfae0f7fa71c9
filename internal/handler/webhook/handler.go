package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nattapongw/calendar-api/internal/handler"
	"github.com/nattapongw/calendar-api/internal/line"
	"github.com/nattapongw/calendar-api/internal/service/bot"
	"github.com/nattapongw/calendar-api/pkg/logger"
)

const signatureHeader = "X-Line-Signature"

type Handler struct {
	bot           *bot.Service
	channelSecret string
	logger        *logger.Logger
}

func NewHandler(botSvc *bot.Service, channelSecret string, logger *logger.Logger) *Handler {
	return &Handler{bot: botSvc, channelSecret: channelSecret, logger: logger}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/webhook/line", h.Receive)
}

// Receive handles a webhook delivery. It always answers 200 once the payload
// is accepted; a non-200 would make the platform redeliver the batch and
// replay commands that already ran.
func (h *Handler) Receive(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("failed to read body"))
		return
	}

	if !h.verifySignature(body, c.GetHeader(signatureHeader)) {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid signature"))
		return
	}

	var req line.WebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid payload"))
		return
	}

	ctx := c.Request.Context()
	for i := range req.Events {
		h.bot.HandleEvent(ctx, &req.Events[i])
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// verifySignature checks the HMAC-SHA256 signature the platform sends with
// each delivery. An empty configured secret disables the check, which only
// makes sense in local development.
func (h *Handler) verifySignature(body []byte, signature string) bool {
	if h.channelSecret == "" {
		return true
	}
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(h.channelSecret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
