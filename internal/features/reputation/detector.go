// Package reputation — detector.go решает, является ли ответ на сообщение
// жестом благодарности, и кого именно поблагодарили.
package reputation

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"
)

// thanksWords — фиксированный набор слов-благодарностей.
// Текст приводится к нижнему регистру до сравнения, поэтому регистр не важен.
var thanksWords = map[string]struct{}{
	"thanks": {},
	"👍":      {},
	"thx":    {},
	"nice":   {},
}

// tokenPunctuation — знаки препинания, которые удаляются из токена перед сравнением.
const tokenPunctuation = `&/\#,+()$~%.'":*?!<>{}`

// thumbsUpEmoji — единственный стикер, засчитываемый как благодарность.
const thumbsUpEmoji = "👍"

// MemberAPI — минимальный срез Telegram API, нужный детектору.
// *tgbotapi.BotAPI ему удовлетворяет.
type MemberAPI interface {
	GetChatMember(config tgbotapi.GetChatMemberConfig) (tgbotapi.ChatMember, error)
}

// Detector распознаёт жест благодарности во входящем ответе.
// Не хранит состояния между вызовами.
type Detector struct {
	api    MemberAPI
	selfID int64 // ID аккаунта самого бота
}

// NewDetector создаёт детектор благодарностей.
func NewDetector(api MemberAPI, selfID int64) *Detector {
	return &Detector{api: api, selfID: selfID}
}

// Detect проверяет ответ на сообщение и, если это благодарность,
// возвращает событие с данными благодарившего и поблагодарённого.
//
// Порядок проверок:
//  1. сообщение должно быть ответом с известным автором оригинала;
//  2. автор оригинала всё ещё в чате (ушедшим репутацию не начисляем);
//  3. не сам бот и не самоблагодарность;
//  4. стикер засчитывается только с эмодзи 👍, текст при стикере не смотрим;
//  5. иначе ищем слово-благодарность среди токенов текста.
func (d *Detector) Detect(msg *tgbotapi.Message) (*ThanksEvent, bool) {
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return nil, false
	}
	reply := msg.ReplyToMessage
	if reply == nil || reply.From == nil {
		return nil, false
	}

	member, err := d.api.GetChatMember(tgbotapi.GetChatMemberConfig{
		ChatConfigWithUser: tgbotapi.ChatConfigWithUser{
			ChatID: msg.Chat.ID,
			UserID: reply.From.ID,
		},
	})
	if err != nil {
		// Не смогли проверить статус — не начисляем, но и не падаем
		log.WithError(err).WithFields(log.Fields{
			"chat_id": msg.Chat.ID,
			"user_id": reply.From.ID,
		}).Debug("GetChatMember failed, пропускаем")
		return nil, false
	}
	if member.Status == "left" {
		return nil, false
	}

	if reply.From.ID == d.selfID || reply.From.ID == msg.From.ID {
		return nil, false
	}

	if msg.Sticker != nil {
		if msg.Sticker.Emoji != thumbsUpEmoji {
			return nil, false
		}
	} else if !IsThanksText(msg.Text) {
		return nil, false
	}

	return &ThanksEvent{
		ChatID:           msg.Chat.ID,
		ThankedID:        reply.From.ID,
		ThankedUserName:  reply.From.UserName,
		ThankedFullName:  joinName(reply.From.FirstName, reply.From.LastName),
		ThankingFullName: joinName(msg.From.FirstName, msg.From.LastName),
	}, true
}

// IsThanksText проверяет, содержит ли текст слово-благодарность
// как отдельный токен. Текст приводится к нижнему регистру, разбивается
// по пробельным символам, из токенов удаляется пунктуация.
// "thanksgiving" не считается: слово должно стоять отдельно.
func IsThanksText(text string) bool {
	for _, token := range strings.Fields(strings.ToLower(text)) {
		token = stripPunctuation(token)
		if _, ok := thanksWords[token]; ok {
			return true
		}
	}
	return false
}

// stripPunctuation удаляет из токена все символы из tokenPunctuation,
// где бы они ни стояли (не только по краям).
func stripPunctuation(token string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(tokenPunctuation, r) {
			return -1
		}
		return r
	}, token)
}
