package api

import (
	"context"
	"crypto/subtle"
	"log"
	"net/http"
	"time"

	"github.com/rajabovvvnn-bit/legal-telegram-bot/utils"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	// Per-update processing budget covering both provider attempts.
	processingTimeout = 60 * time.Second
	maxWorkers        = 10
)

// UpdateProcessor consumes one decoded Telegram update. *bot.Handler
// satisfies it.
type UpdateProcessor interface {
	HandleUpdate(ctx context.Context, update tgbotapi.Update)
}

// WebhookHandler receives Telegram update payloads over HTTP and hands them to
// the message handler. Telegram gets its 200 immediately; processing runs on a
// background goroutine so a slow AI call never stalls the webhook.
type WebhookHandler struct {
	processor UpdateProcessor
	sem       chan struct{}
}

// NewWebhookHandler creates a webhook handler with a bounded worker pool.
func NewWebhookHandler(processor UpdateProcessor) *WebhookHandler {
	return &WebhookHandler{
		processor: processor,
		sem:       make(chan struct{}, maxWorkers),
	}
}

// HandleUpdate is the POST endpoint Telegram delivers updates to.
func (h *WebhookHandler) HandleUpdate(c *gin.Context) {
	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "cannot parse update payload", err)
		return
	}

	// Acknowledge before processing; Telegram retries on anything else.
	c.JSON(http.StatusOK, gin.H{"ok": true})

	h.processAsync(update)
}

// HealthHandler is the GET / liveness probe.
func (h *WebhookHandler) HealthHandler(c *gin.Context) {
	c.String(http.StatusOK, "yuristbot is alive")
}

func (h *WebhookHandler) processAsync(update tgbotapi.Update) {
	go func() {
		// The 200 ack is already out, so waiting for a free worker here
		// costs nothing and never loses an update.
		h.sem <- struct{}{}
		defer func() { <-h.sem }()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("ERROR: [Webhook] Recovered from panic while handling update: %v", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), processingTimeout)
		defer cancel()

		h.processor.HandleUpdate(ctx, update)
	}()
}

// requireToken guards the webhook path. Telegram tokens contain a colon
// (<bot-id>:<secret>), so the route must capture the whole segment as a
// parameter and compare it here; embedding the token in the route pattern
// would let gin treat the colon as a parameter marker and match any suffix
// after the public bot id.
func requireToken(botToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		supplied := c.Param("token")
		if subtle.ConstantTimeCompare([]byte(supplied), []byte(botToken)) != 1 {
			log.Printf("WARN: [Webhook] Rejected update with wrong token from %s.", c.ClientIP())
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		c.Next()
	}
}

// RegisterRoutes attaches the health and webhook endpoints. The webhook path
// incorporates the bot token, which only Telegram and this process know.
func RegisterRoutes(r *gin.Engine, h *WebhookHandler, botToken string) {
	r.GET("/", h.HealthHandler)
	r.POST("/webhook/:token", requireToken(botToken), h.HandleUpdate)
}
