// Package errs определяет типизированные ошибки бизнес-уровня.
// Обработчики HTTP сопоставляют их с кодами ответов, а конвейер
// импорта CSV превращает ValidationError в построчные сообщения.
package errs

import "errors"

// ErrNotFound сигнализирует об отсутствии запрошенной сущности.
var ErrNotFound = errors.New("not found")

// ValidationError описывает исправимую вызывающей стороной ошибку входных данных.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NewValidation возвращает ValidationError с заданным сообщением.
func NewValidation(msg string) error {
	return &ValidationError{Msg: msg}
}

// AuthenticationError описывает ошибку проверки учётных данных.
type AuthenticationError struct {
	Msg string
}

func (e *AuthenticationError) Error() string { return e.Msg }

// NewAuthentication возвращает AuthenticationError с заданным сообщением.
func NewAuthentication(msg string) error {
	return &AuthenticationError{Msg: msg}
}

// IsValidation сообщает, является ли ошибка (или её причина) ошибкой валидации.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsAuthentication сообщает, является ли ошибка ошибкой аутентификации.
func IsAuthentication(err error) bool {
	var ae *AuthenticationError
	return errors.As(err, &ae)
}
