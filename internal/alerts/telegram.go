// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package alerts pushes new job postings to a Telegram channel.
package alerts

import (
	"fmt"
	"html"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"chakri-scan/internal/job"
)

// TelegramNotifier sends job alerts through a Telegram bot.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier initializes the bot API with the given token.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	return &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// SendMessage sends raw HTML-formatted text to the configured chat.
func (t *TelegramNotifier) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML"
	msg.DisableWebPagePreview = true
	_, err := t.bot.Send(msg)
	return err
}

// SendJob formats one posting as an alert with an inline apply button.
func (t *TelegramNotifier) SendJob(j job.CanonicalJob) error {
	var b strings.Builder

	fmt.Fprintf(&b, "🔔 <b>%s</b>\n", html.EscapeString(j.Title))
	fmt.Fprintf(&b, "🏛 %s\n", html.EscapeString(j.Department))
	fmt.Fprintf(&b, "📍 %s\n", html.EscapeString(j.Location))
	if j.Salary != "" {
		fmt.Fprintf(&b, "💰 %s\n", html.EscapeString(j.Salary))
	}
	if j.Vacancies > 0 {
		fmt.Fprintf(&b, "👥 %d vacancies\n", j.Vacancies)
	}
	if j.DeadlineDate != nil {
		fmt.Fprintf(&b, "⏰ Deadline: %s\n", j.DeadlineDate.Format("02 Jan 2006"))
	}

	msg := tgbotapi.NewMessage(t.chatID, b.String())
	msg.ParseMode = "HTML"
	msg.DisableWebPagePreview = true
	if j.ApplicationLink != "" {
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonURL("Apply Now", j.ApplicationLink),
			),
		)
	}
	_, err := t.bot.Send(msg)
	return err
}

// SendDigest announces the outcome of a scrape run.
func (t *TelegramNotifier) SendDigest(newJobs []job.CanonicalJob, when time.Time) error {
	if len(newJobs) == 0 {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 <b>%d new government jobs</b> (%s)\n\n", len(newJobs), when.Format("02 Jan 2006"))
	for i, j := range newJobs {
		if i >= 10 {
			fmt.Fprintf(&b, "… and %d more", len(newJobs)-i)
			break
		}
		fmt.Fprintf(&b, "• %s — %s\n", html.EscapeString(j.Title), html.EscapeString(j.Department))
	}

	return t.SendMessage(b.String())
}

// SendError reports a pipeline failure to the channel.
func (t *TelegramNotifier) SendError(errReq error) error {
	return t.SendMessage(fmt.Sprintf("⚠️ <b>chakri-scan error</b>:\n%s", html.EscapeString(errReq.Error())))
}
