// Package notify announces panel events through the Telegram bot configured
// in the panel settings.
package notify

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	tele "gopkg.in/telebot.v3"

	"xui-panel-client/internal/constants"
	"xui-panel-client/internal/models"
)

// ErrDisabled is returned when the panel has no usable Telegram bot
var ErrDisabled = errors.New("telegram bot is disabled in panel settings")

// TelegramNotifier sends messages to the chats configured on the panel
type TelegramNotifier struct {
	bot     *tele.Bot
	chatIDs []int64
	logger  logrus.FieldLogger
}

// NewTelegramNotifier creates a notifier from the tgBot* panel settings
func NewTelegramNotifier(settings models.PanelSettings, logger logrus.FieldLogger) (*TelegramNotifier, error) {
	if !settings.TgBotEnable || settings.TgBotToken == "" {
		return nil, ErrDisabled
	}

	chatIDs, err := ParseChatIDs(settings.TgBotChatID)
	if err != nil {
		return nil, err
	}
	if len(chatIDs) == 0 {
		return nil, fmt.Errorf("no chat id configured in %s", models.PanelSettingsTgBotChatID)
	}

	client := &http.Client{Timeout: constants.DefaultTimeout * time.Second}
	if settings.TgBotProxy != "" {
		proxyURL, err := url.Parse(settings.TgBotProxy)
		if err != nil {
			return nil, fmt.Errorf("invalid telegram proxy: %w", err)
		}
		client.Transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
	}

	bot, err := tele.NewBot(tele.Settings{
		URL:     settings.TgBotAPIServer,
		Token:   settings.TgBotToken,
		Client:  client,
		Offline: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	return &TelegramNotifier{
		bot:     bot,
		chatIDs: chatIDs,
		logger:  logger,
	}, nil
}

// Notify sends text to every configured chat
func (n *TelegramNotifier) Notify(text string) error {
	var errs []error
	for _, id := range n.chatIDs {
		if _, err := n.bot.Send(&tele.Chat{ID: id}, text); err != nil {
			n.logger.Errorf("Failed to notify chat %d: %v", id, err)
			errs = append(errs, fmt.Errorf("chat %d: %w", id, err))
			continue
		}
		n.logger.Debugf("Notified chat %d", id)
	}
	return errors.Join(errs...)
}

// ParseChatIDs parses the comma separated tgBotChatId setting
func ParseChatIDs(value string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid chat id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
