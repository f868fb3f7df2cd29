// Package notify отправляет готовые отчёты администратору в Telegram.
// Доставка необязательная: любая ошибка логируется и не валит прогон.
package notify

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
	log    *slog.Logger
}

// NewTelegram возвращает nil, если токен или чат не настроены —
// вызывающая сторона просто пропускает доставку.
func NewTelegram(token string, chatID int64, log *slog.Logger) (*Telegram, error) {
	if token == "" || chatID == 0 {
		return nil, nil
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	return &Telegram{api: api, chatID: chatID, log: log}, nil
}

// SendReport шлёт HTML-отчёт документом в админский чат.
func (t *Telegram) SendReport(path, caption string) {
	data, err := os.ReadFile(path)
	if err != nil {
		t.log.Error("отчёт не прочитан для отправки", "path", path, "err", err)
		return
	}

	doc := tgbotapi.NewDocument(t.chatID, tgbotapi.FileBytes{
		Name:  filepath.Base(path),
		Bytes: data,
	})
	doc.Caption = caption

	if _, err := t.api.Send(doc); err != nil {
		t.log.Error("отчёт не отправлен в Telegram", "path", path, "err", err)
		return
	}
	t.log.Info("отчёт отправлен в Telegram", "path", path)
}
