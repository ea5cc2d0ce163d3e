package services

import (
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ChatMemberAPI is the slice of the Telegram client used for membership
// lookups. *tgbotapi.BotAPI satisfies it.
type ChatMemberAPI interface {
	GetChatMember(config tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error)
}

// SubscriptionService checks membership in the required channel before any AI
// interaction is allowed.
type SubscriptionService interface {
	IsSubscribed(userID int64) bool
}

type subscriptionService struct {
	api     ChatMemberAPI
	channel string // channel username including the leading "@"
}

// NewSubscriptionService creates a subscription gate for the given channel.
func NewSubscriptionService(api ChatMemberAPI, channel string) SubscriptionService {
	return &subscriptionService{api: api, channel: channel}
}

// IsSubscribed returns true iff the user's membership status in the channel is
// member, administrator or creator. Lookup failures (network errors, users the
// channel has never seen) are logged and reported as not subscribed; the check
// fails closed and never propagates an error to the caller.
func (s *subscriptionService) IsSubscribed(userID int64) bool {
	member, err := s.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			SuperGroupUsername: s.channel,
			UserID:             userID,
		},
	})
	if err != nil {
		log.Printf("WARN: [SubscriptionService] Membership lookup failed for user %d in %s: %v", userID, s.channel, err)
		return false
	}

	switch member.Status {
	case "member", "administrator", "creator":
		return true
	}
	return false
}
