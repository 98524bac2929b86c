package reporter

import (
	"fmt"
	"html"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// telegram rejects messages above 4096 characters
const telegramMaxRunes = 4000

type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(token string, chatID int64) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	//turn this on in case of debug
	//bot.Debug = true

	return &TelegramReporter{
		bot:    bot,
		chatID: chatID,
	}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML" //use HTML for bold/italic
	_, err := t.bot.Send(msg)
	return err
}

// SendSummary posts the match count followed by the plain-text list.
func (t *TelegramReporter) SendSummary(count int, listing string) error {
	return t.SendMessage(summaryMessage(count, listing))
}

func summaryMessage(count int, listing string) string {
	body := []rune(listing)
	if len(body) > telegramMaxRunes {
		body = append(body[:telegramMaxRunes], []rune("\n…")...)
	}
	return fmt.Sprintf("✅ <b>%d coincidencia(s)</b>\n\n%s", count, html.EscapeString(string(body)))
}
