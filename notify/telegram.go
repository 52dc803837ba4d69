// Package notify pushes admin alerts about new reservations and
// contact messages to a Telegram chat. Notification failures are logged
// and never surfaced to the site visitor.
package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"restaurant-backend/models"
)

// Notifier receives entity-created events. A nil *Telegram is a valid
// Notifier that does nothing, so callers never branch on configuration.
type Notifier interface {
	ReservationCreated(r models.Reservation)
	ContactCreated(c models.Contact)
}

// Telegram sends alerts through a bot to one admin chat.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
	log    *logrus.Logger
}

var _ Notifier = (*Telegram)(nil)

// NewTelegram connects the bot. Returns an error when the token is
// rejected by the Telegram API.
func NewTelegram(token string, chatID int64, log *logrus.Logger) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &Telegram{api: api, chatID: chatID, log: log}, nil
}

// ReservationCreated notifies the admin chat about a new reservation.
func (t *Telegram) ReservationCreated(r models.Reservation) {
	if t == nil {
		return
	}
	text := fmt.Sprintf(
		"New reservation #%d\n%s, %d guests\n%s %s\n%s / %s",
		r.ID, r.Name, r.Guests, r.Date, r.Time, r.Email, r.Phone,
	)
	if r.Comments != "" {
		text += "\nComments: " + r.Comments
	}
	t.send(text)
}

// ContactCreated notifies the admin chat about a new contact message.
func (t *Telegram) ContactCreated(c models.Contact) {
	if t == nil {
		return
	}
	t.send(fmt.Sprintf(
		"New contact message #%d\nFrom: %s <%s>\nSubject: %s\n\n%s",
		c.ID, c.Name, c.Email, c.Subject, c.Message,
	))
}

func (t *Telegram) send(text string) {
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.api.Send(msg); err != nil {
		t.log.WithField("chat_id", t.chatID).WithError(err).Warn("telegram notification failed")
	}
}
