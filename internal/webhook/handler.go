// Package webhook receives LINE webhook deliveries, verifies their
// signature, asks the chat backend for an answer and replies with a text
// message plus an optional swatch carousel.
package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/line/line-bot-sdk-go/v8/linebot/messaging_api"

	"github.com/swatchbot/swatchbot/internal/answer"
	"github.com/swatchbot/swatchbot/internal/carousel"
	"github.com/swatchbot/swatchbot/internal/config"
	"github.com/swatchbot/swatchbot/internal/ctxutil"
	"github.com/swatchbot/swatchbot/internal/logger"
	"github.com/swatchbot/swatchbot/internal/metrics"
	"github.com/swatchbot/swatchbot/internal/sentry"
)

// ChatBackend answers a user query. Satisfied by *dify.Client.
type ChatBackend interface {
	SendQuery(ctx context.Context, query, userID string) (json.RawMessage, error)
}

// ReplyClient sends the composed reply back to the platform. Satisfied by
// *messaging_api.MessagingApiAPI.
type ReplyClient interface {
	ReplyMessage(request *messaging_api.ReplyMessageRequest) (*messaging_api.ReplyMessageResponse, error)
}

// Handler orchestrates one webhook delivery end to end.
type Handler struct {
	channelSecret string
	backend       ChatBackend
	reply         ReplyClient
	parser        answer.Parser
	renderer      *carousel.Renderer
	log           *logger.Logger
	metrics       *metrics.Metrics
}

// NewHandler wires the webhook pipeline from configuration and collaborators.
func NewHandler(cfg *config.Config, backend ChatBackend, reply ReplyClient, log *logger.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		channelSecret: cfg.LineChannelSecret,
		backend:       backend,
		reply:         reply,
		parser:        answer.Parser{Metrics: m},
		renderer:      carousel.NewRenderer(cfg.Carousel),
		log:           log.WithModule("webhook"),
		metrics:       m,
	}
}

// Handle processes POST /callback. Each stage is a terminal failure point:
// missing configuration is 500, a bad signature is 401, an event with
// nothing to act on is a 200 no-op, an upstream failure is 502. Nothing
// propagates unhandled; panics are mapped to 500 at this boundary.
func (h *Handler) Handle(c *gin.Context) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("webhook panic: %v", r)
			h.log.WithError(err).Error("unexpected failure handling webhook")
			sentry.CaptureExceptionWithContext(c.Request.Context(), err)
			h.finish(c, start, http.StatusInternalServerError, "internal error")
		}
	}()

	if h.channelSecret == "" {
		h.log.Error("channel secret is not configured")
		h.finish(c, start, http.StatusInternalServerError, "configuration error")
		return
	}

	// The signature covers the exact received bytes, so the body is read
	// once here and never re-serialized.
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.log.WithError(err).Error("failed to read webhook body")
		h.finish(c, start, http.StatusInternalServerError, "internal error")
		return
	}

	if !ValidateSignature(h.channelSecret, body, c.GetHeader(SignatureHeader)) {
		h.log.Warn("webhook signature verification failed")
		h.finish(c, start, http.StatusUnauthorized, "invalid signature")
		return
	}

	payload := decodePayload(body)
	if len(payload.Events) == 0 {
		h.finish(c, start, http.StatusOK, "no events")
		return
	}

	event := payload.Events[0]
	if event.ReplyToken == "" {
		h.finish(c, start, http.StatusOK, "no reply token")
		return
	}

	text := strings.TrimSpace(event.Message.Text)
	if text == "" {
		h.finish(c, start, http.StatusOK, "no text")
		return
	}

	userID := event.UserID()
	ctx := ctxutil.WithUserID(c.Request.Context(), userID)
	log := h.log.WithField("user_id", userID)

	raw, err := h.backend.SendQuery(ctx, text, userID)
	if err != nil {
		log.WithError(err).Error("chat backend request failed")
		sentry.CaptureExceptionWithContext(ctx, err)
		h.finish(c, start, http.StatusBadGateway, "chat backend error")
		return
	}

	parsed := h.parser.Parse(raw)

	flex := h.renderer.Render(parsed.Results)
	if flex != nil {
		h.metrics.RecordCarouselCards(len(flex.Contents))
	}

	if _, err := h.reply.ReplyMessage(&messaging_api.ReplyMessageRequest{
		ReplyToken: event.ReplyToken,
		Messages:   AssembleMessages(parsed.ReplyText, flex),
	}); err != nil {
		h.metrics.RecordReply("error")
		log.WithError(err).Error("reply delivery failed")
		sentry.CaptureExceptionWithContext(ctx, err)
		h.finish(c, start, http.StatusBadGateway, "reply delivery error")
		return
	}
	h.metrics.RecordReply("success")

	log.WithField("results", len(parsed.Results)).Info("webhook handled")
	h.finish(c, start, http.StatusOK, "OK")
}

func (h *Handler) finish(c *gin.Context, start time.Time, status int, body string) {
	h.metrics.RecordWebhook(strconv.Itoa(status), time.Since(start).Seconds())
	c.String(status, body)
}
