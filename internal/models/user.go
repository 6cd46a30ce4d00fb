// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи и хэш пароля.
// Структура используется в бизнес-логике и при работе с хранилищем.
package models

// User представляет зарегистрированного пользователя системы.
// Email уникален, уникальность гарантируется ограничением в базе данных.
type User struct {
	ID           int64  // Уникальный числовой идентификатор пользователя
	Name         string // Отображаемое имя пользователя
	Email        string // Электронная почта (уникальная)
	PasswordHash string // Хэш пароля пользователя
}
