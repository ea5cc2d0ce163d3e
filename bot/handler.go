package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/rajabovvvnn-bit/legal-telegram-bot/models"
	"github.com/rajabovvvnn-bit/legal-telegram-bot/repository"
	"github.com/rajabovvvnn-bit/legal-telegram-bot/services"
	"github.com/rajabovvvnn-bit/legal-telegram-bot/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the slice of the Telegram client the handler needs for outbound
// calls. *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Handler orchestrates the per-message pipeline: subscription gate, utterance
// classification, canned replies, daily quota and AI dispatch. Each update is
// independent; the handler keeps no conversation state.
type Handler struct {
	api          Sender
	subscription services.SubscriptionService
	classifier   services.ClassifierService
	responder    services.ResponderService
	quota        services.QuotaService
	dispatcher   services.DispatcherService
	chatRepo     repository.ChatRepository
	channel      string // required channel handle, e.g. "@uzb_huquq_kanali"
}

// NewHandler wires the message handler with its collaborators.
func NewHandler(
	api Sender,
	subscription services.SubscriptionService,
	classifier services.ClassifierService,
	responder services.ResponderService,
	quota services.QuotaService,
	dispatcher services.DispatcherService,
	chatRepo repository.ChatRepository,
	channel string,
) *Handler {
	return &Handler{
		api:          api,
		subscription: subscription,
		classifier:   classifier,
		responder:    responder,
		quota:        quota,
		dispatcher:   dispatcher,
		chatRepo:     chatRepo,
		channel:      channel,
	}
}

// HandleUpdate processes one Telegram update end to end. It never returns an
// error; every failure is either answered with a localized notice or only
// logged, so one user's failure cannot affect others.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	message := update.Message
	if message == nil || message.From == nil {
		return
	}

	text := strings.TrimSpace(message.Text)
	if text == "" {
		return
	}

	if message.IsCommand() {
		h.handleCommand(message)
		return
	}
	h.handleText(ctx, message, text)
}

func (h *Handler) handleCommand(message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		if !h.subscription.IsSubscribed(message.From.ID) {
			h.sendSubscribePrompt(message.Chat.ID)
			return
		}
		h.sendText(message.Chat.ID, msgWelcome)
	case "help":
		h.sendText(message.Chat.ID, msgHelp)
	default:
		log.Printf("INFO: [Handler] Ignoring unknown command '%s' from user %d.", message.Command(), message.From.ID)
	}
}

func (h *Handler) handleText(ctx context.Context, message *tgbotapi.Message, text string) {
	userID := message.From.ID
	chatID := message.Chat.ID

	if !h.subscription.IsSubscribed(userID) {
		h.sendSubscribePrompt(chatID)
		return
	}

	classification := h.classifier.Classify(text)
	if classification == services.ClassificationSimpleSocial {
		if reply, ok := h.responder.Respond(text); ok {
			h.sendText(chatID, reply)
			return
		}
		// Classified simple but no sub-vocabulary matched; fall through to
		// default handling.
		log.Printf("WARN: [Handler] No canned reply for simple utterance '%s', handling as default.", utils.Truncate(text, 40))
	}

	quotaKey := strconv.FormatInt(userID, 10)
	allowed, err := h.quota.TryConsume(quotaKey)
	if err != nil {
		log.Printf("ERROR: [Handler] Quota check failed for user %d: %v", userID, err)
		h.sendText(chatID, fmt.Sprintf(msgErrorFmt, h.channel))
		return
	}
	if !allowed {
		h.sendText(chatID, fmt.Sprintf(msgQuotaExceededFmt, h.quota.Limit()))
		return
	}

	// Best effort; a failed typing indicator must not block the answer.
	if _, err := h.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		log.Printf("WARN: [Handler] Failed to send typing indicator to chat %d: %v", chatID, err)
	}

	response, err := h.dispatcher.Answer(ctx, text, classification)
	if err != nil {
		log.Printf("ERROR: [Handler] AI dispatch failed for user %d, input '%s': %v", userID, utils.Truncate(text, 80), err)
		h.sendText(chatID, fmt.Sprintf(msgErrorFmt, h.channel))
		return
	}

	reply := fmt.Sprintf("%s\n\n%s\n🤖 %s", response.Text, replySeparator, response.Label)
	h.sendText(chatID, reply)

	h.saveLog(message, text, response, classification)
}

// saveLog persists the exchange for auditing. Failures are logged only; the
// user already has the answer.
func (h *Handler) saveLog(message *tgbotapi.Message, text string, response *services.ProviderResponse, classification services.Classification) {
	if h.chatRepo == nil {
		return
	}
	entry := &models.ChatLog{
		UserID:         strconv.FormatInt(message.From.ID, 10),
		UserName:       message.From.UserName,
		Question:       text,
		Answer:         response.Text,
		Provider:       response.Label,
		Classification: classification.String(),
	}
	if err := h.chatRepo.SaveLog(entry); err != nil {
		log.Printf("WARN: [Handler] Failed to save chat log for user %d: %v", message.From.ID, err)
	}
}

func (h *Handler) sendSubscribePrompt(chatID int64) {
	prompt := tgbotapi.NewMessage(chatID, msgSubscribePrompt)
	channelURL := "https://t.me/" + strings.TrimPrefix(h.channel, "@")
	prompt.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL(btnSubscribe, channelURL),
		),
	)
	if _, err := h.api.Send(prompt); err != nil {
		log.Printf("WARN: [Handler] Failed to send subscribe prompt to chat %d: %v", chatID, err)
	}
}

// sendText sends a plain-text message. Transport failures are logged only;
// the user simply gets no reply for that turn.
func (h *Handler) sendText(chatID int64, text string) {
	if _, err := h.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("WARN: [Handler] Failed to send message to chat %d: %v", chatID, err)
	}
}
