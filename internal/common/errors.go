// Package common — errors.go определяет общие ошибки,
// которые используются во всех модулях бота.
// По ним обработчики различают типы проблем, не завязываясь на детали хранилища.
package common

import "errors"

var (
	// ErrReputationNotFound — запись репутации для участника отсутствует в базе
	ErrReputationNotFound = errors.New("запись репутации не найдена")
)
