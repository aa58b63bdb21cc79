// Package reputation реализует систему репутации: обнаружение «спасибо»
// в ответах на сообщения и учёт баллов для каждого участника.
// models.go описывает структуры для хранения и передачи репутации.
package reputation

import (
	"strings"
	"time"
)

// Reputation представляет запись репутации участника в базе данных.
// На одного участника (telegram_id) — не больше одной записи.
type Reputation struct {
	ID         int64     `db:"id"          json:"id"`
	TelegramID string    `db:"telegram_id" json:"telegramId"`
	UserName   string    `db:"user_name"   json:"userName"`   // @username, может быть пустым
	UserAvatar string    `db:"user_avatar" json:"userAvatar"` // URL аватарки, может быть пустым
	FullName   string    `db:"full_name"   json:"fullName"`
	Reputation int       `db:"reputation"  json:"reputation"`
	CreatedAt  time.Time `db:"created_at"  json:"-"`
	UpdatedAt  time.Time `db:"updated_at"  json:"-"`
}

// ThanksEvent — распознанное «спасибо». Живёт только внутри обработки
// одного сообщения: детектор строит, сервис потребляет, нигде не хранится.
type ThanksEvent struct {
	ChatID int64

	// Кого поблагодарили (автор сообщения, на которое ответили)
	ThankedID       int64
	ThankedUserName string
	ThankedFullName string
	ThankedAvatar   string

	// Кто поблагодарил (отправитель ответа)
	ThankingFullName string
}

// ThankedDisplay возвращает имя получателя для уведомления:
// "First Last (@username)" или просто "First Last", если @username нет.
func (e *ThanksEvent) ThankedDisplay() string {
	if e.ThankedUserName != "" {
		return e.ThankedFullName + " (@" + e.ThankedUserName + ")"
	}
	return e.ThankedFullName
}

// joinName склеивает имя и фамилию, опуская пустые части.
func joinName(firstName, lastName string) string {
	return strings.TrimSpace(strings.TrimSpace(firstName) + " " + strings.TrimSpace(lastName))
}
