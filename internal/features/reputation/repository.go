// Package reputation — repository.go отвечает за все операции с таблицей reputations в БД.
// Каждая функция выполняет один SQL-запрос и возвращает результат или ошибку.
package reputation

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"reputation-bot/internal/common"
)

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// IncrementOrCreate атомарно начисляет +1 репутацию.
// Незнакомый участник получает запись с баллом из rec (при первом «спасибо» это 1)
// и его именем/аватаркой; у знакомого балл растёт прямо в SQL, имя и аватарка
// не трогаются. Один запрос — конкурентные начисления не теряются.
// Возвращает запись после начисления.
func (r *Repository) IncrementOrCreate(ctx context.Context, rec *Reputation) (*Reputation, error) {
	query := `
		INSERT INTO reputations (telegram_id, user_name, user_avatar, full_name, reputation)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (telegram_id) DO UPDATE
		SET reputation = reputations.reputation + 1, updated_at = NOW()
		RETURNING id, telegram_id, user_name, user_avatar, full_name, reputation,
		          created_at, updated_at
	`
	var out Reputation
	err := r.db.QueryRow(ctx, query,
		rec.TelegramID, rec.UserName, rec.UserAvatar, rec.FullName, rec.Reputation,
	).Scan(
		&out.ID, &out.TelegramID, &out.UserName, &out.UserAvatar,
		&out.FullName, &out.Reputation, &out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка начисления репутации (telegram_id=%s): %w", rec.TelegramID, err)
	}
	return &out, nil
}

// GetByTelegramID возвращает запись участника.
// Если записи нет — common.ErrReputationNotFound.
func (r *Repository) GetByTelegramID(ctx context.Context, telegramID string) (*Reputation, error) {
	query := `
		SELECT id, telegram_id, user_name, user_avatar, full_name, reputation,
		       created_at, updated_at
		FROM reputations
		WHERE telegram_id = $1
	`
	var rec Reputation
	err := r.db.QueryRow(ctx, query, telegramID).Scan(
		&rec.ID, &rec.TelegramID, &rec.UserName, &rec.UserAvatar,
		&rec.FullName, &rec.Reputation, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, common.ErrReputationNotFound
		}
		return nil, fmt.Errorf("ошибка чтения репутации (telegram_id=%s): %w", telegramID, err)
	}
	return &rec, nil
}

// DeleteByID удаляет запись по её id.
func (r *Repository) DeleteByID(ctx context.Context, id int64) error {
	query := `DELETE FROM reputations WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления репутации (id=%d): %w", id, err)
	}
	return nil
}

// ListAll возвращает все записи в естественном порядке хранилища (по id).
// Сортировкой по баллам занимается сервис.
func (r *Repository) ListAll(ctx context.Context) ([]Reputation, error) {
	query := `
		SELECT id, telegram_id, user_name, user_avatar, full_name, reputation,
		       created_at, updated_at
		FROM reputations
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения списка репутаций: %w", err)
	}
	defer rows.Close()

	var records []Reputation
	for rows.Next() {
		var rec Reputation
		if err := rows.Scan(
			&rec.ID, &rec.TelegramID, &rec.UserName, &rec.UserAvatar,
			&rec.FullName, &rec.Reputation, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи репутации: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка обхода списка репутаций: %w", err)
	}
	return records, nil
}
