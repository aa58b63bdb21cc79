// Package reputation — service.go содержит бизнес-логику начисления,
// удаления и выдачи репутации.
package reputation

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"reputation-bot/internal/common"
)

// Store — контракт хранилища записей репутации.
// В бою его реализует *Repository, в тестах — фейк.
// IncrementOrCreate обязан быть атомарным: апдейты обрабатываются
// параллельно, и два «спасибо» одному участнику не должны слипаться в одно.
type Store interface {
	IncrementOrCreate(ctx context.Context, rec *Reputation) (*Reputation, error)
	GetByTelegramID(ctx context.Context, telegramID string) (*Reputation, error)
	DeleteByID(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]Reputation, error)
}

// Service управляет жизненным циклом записей репутации.
type Service struct {
	store Store
}

// NewService создаёт сервис репутации.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Award начисляет +1 репутацию получателю события.
// Для незнакомого участника создаётся запись с баллом 1 и данными из события,
// для знакомого — балл увеличивается (имя и аватарка не обновляются).
// Начисление — одна атомарная операция хранилища: читать-потом-писать
// здесь нельзя, параллельные «спасибо» теряли бы баллы.
// Возвращает актуальную запись после начисления — для текста уведомления.
func (s *Service) Award(ctx context.Context, event *ThanksEvent) (*Reputation, error) {
	return s.store.IncrementOrCreate(ctx, &Reputation{
		TelegramID: strconv.FormatInt(event.ThankedID, 10),
		UserName:   event.ThankedUserName,
		UserAvatar: event.ThankedAvatar,
		FullName:   event.ThankedFullName,
		Reputation: 1,
	})
}

// Remove удаляет запись участника, покинувшего чат.
// Отсутствие записи — не ошибка: участник мог ни разу не получить «спасибо».
func (s *Service) Remove(ctx context.Context, thankedID int64) error {
	telegramID := strconv.FormatInt(thankedID, 10)

	rec, err := s.store.GetByTelegramID(ctx, telegramID)
	if errors.Is(err, common.ErrReputationNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.store.DeleteByID(ctx, rec.ID)
}

// List возвращает все записи, отсортированные по убыванию балла.
// Сортировка стабильная: при равных баллах порядок хранилища сохраняется
// и не меняется между вызовами.
func (s *Service) List(ctx context.Context) ([]Reputation, error) {
	records, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Reputation > records[j].Reputation
	})
	return records, nil
}

// Top возвращает не больше n записей с вершины рейтинга.
func (s *Service) Top(ctx context.Context, n int) ([]Reputation, error) {
	records, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) > n {
		records = records[:n]
	}
	return records, nil
}
