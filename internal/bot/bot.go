// Package bot runs the Telegram side: a long-polling command loop plus the
// Sender the notification dispatcher delivers through.
package bot

import (
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	applog "altindan/internal/log"
	"altindan/internal/services"
)

type Bot struct {
	api     *tgbotapi.BotAPI
	reports *services.ReportService
	webURL  string
}

func New(token, webURL string, reports *services.ReportService) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Bot{api: api, reports: reports, webURL: webURL}, nil
}

// Send implements notify.Sender.
func (b *Bot) Send(chatID int64, text string) error {
	_, err := b.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

// Run polls for updates until Stop is called. Commands are handled
// sequentially on this goroutine; the only state shared with the web side
// is the order store behind its own serialized handle.
func (b *Bot) Run() {
	applog.Bot("bot.start", 0, nil, map[string]any{"username": b.api.Self.UserName})

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	for update := range b.api.GetUpdatesChan(u) {
		msg := update.Message
		if msg == nil || !msg.IsCommand() {
			continue
		}
		switch msg.Command() {
		case "start":
			b.handleStart(msg)
		case "report":
			b.handleReport(msg)
		}
	}
}

func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
}

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	reply := tgbotapi.NewMessage(msg.Chat.ID, "Добро пожаловать")
	if b.webURL != "" {
		btn := tgbotapi.NewInlineKeyboardButtonURL("Открыть", b.webURL+"?lang=ru")
		reply.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(btn))
	} else {
		reply.Text += "\n(Web URL not configured)"
	}
	if _, err := b.api.Send(reply); err != nil {
		applog.Bot("bot.start.reply.fail", msg.Chat.ID, err, nil)
	}
}

func (b *Bot) handleReport(msg *tgbotapi.Message) {
	rep, err := b.reports.SummarizeFor(msg.Chat.ID)
	if err != nil {
		if errors.Is(err, services.ErrNotAllowed) {
			applog.Bot("report.denied", msg.Chat.ID, nil, nil)
			b.replyTo(msg, "Ruxsat yo'q.")
			return
		}
		applog.Bot("report.fail", msg.Chat.ID, err, nil)
		b.replyTo(msg, "Hisobotni olishda xatolik.")
		return
	}
	b.replyTo(msg, FormatReport(rep))
}

func (b *Bot) replyTo(msg *tgbotapi.Message, text string) {
	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	reply.ReplyToMessageID = msg.MessageID
	if _, err := b.api.Send(reply); err != nil {
		applog.Bot("bot.reply.fail", msg.Chat.ID, err, nil)
	}
}

// FormatReport renders the /report summary in the legacy layout.
func FormatReport(r services.Report) string {
	return fmt.Sprintf(
		"📊 Oy yakunlari:\nBuyurtma: %d\nJami kg: %g\nJami summa: %d so'm",
		r.OrderCount, r.TotalQuantity, int64(r.TotalRevenue),
	)
}
