package services

import (
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockChatMemberAPI is a mock type for the ChatMemberAPI interface.
type MockChatMemberAPI struct {
	mock.Mock
}

func (m *MockChatMemberAPI) GetChatMember(config tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error) {
	args := m.Called(config)
	return args.Get(0).(tgbotapi.ChatMember), args.Error(1)
}

func TestIsSubscribed_MemberStatuses(t *testing.T) {
	cases := []struct {
		status     string
		subscribed bool
	}{
		{"member", true},
		{"administrator", true},
		{"creator", true},
		{"left", false},
		{"kicked", false},
		{"restricted", false},
	}

	for _, tc := range cases {
		api := new(MockChatMemberAPI)
		api.On("GetChatMember", mock.Anything).Return(tgbotapi.ChatMember{Status: tc.status}, nil)

		gate := NewSubscriptionService(api, "@uzb_huquq_kanali")
		assert.Equal(t, tc.subscribed, gate.IsSubscribed(42), "status: %s", tc.status)
	}
}

func TestIsSubscribed_LookupFailureFailsClosed(t *testing.T) {
	api := new(MockChatMemberAPI)
	api.On("GetChatMember", mock.Anything).Return(tgbotapi.ChatMember{}, errors.New("Bad Request: user not found"))

	gate := NewSubscriptionService(api, "@uzb_huquq_kanali")
	assert.False(t, gate.IsSubscribed(42))
}

func TestIsSubscribed_QueriesConfiguredChannel(t *testing.T) {
	api := new(MockChatMemberAPI)
	api.On("GetChatMember", mock.MatchedBy(func(cfg tgbotapi.GetChatMemberConfig) bool {
		return cfg.SuperGroupUsername == "@uzb_huquq_kanali" && cfg.UserID == 42
	})).Return(tgbotapi.ChatMember{Status: "member"}, nil)

	gate := NewSubscriptionService(api, "@uzb_huquq_kanali")
	assert.True(t, gate.IsSubscribed(42))
	api.AssertExpectations(t)
}
