// Package models содержит доменные структуры финансового журнала:
// запись дохода или расхода, фильтр поиска и результат импорта CSV,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// EntryType определяет тип записи журнала.
type EntryType string

// EntryStatus определяет статус записи журнала.
type EntryStatus string

// Допустимые значения типа и статуса записи.
const (
	TypeIncome  EntryType = "INCOME"
	TypeExpense EntryType = "EXPENSE"

	StatusPending  EntryStatus = "PENDING"
	StatusCanceled EntryStatus = "CANCELED"
	StatusSettled  EntryStatus = "SETTLED"
)

// ParseEntryType приводит строку к верхнему регистру и возвращает тип записи.
// Неизвестное значение считается ошибкой.
func ParseEntryType(raw string) (EntryType, error) {
	switch t := EntryType(strings.ToUpper(strings.TrimSpace(raw))); t {
	case TypeIncome, TypeExpense:
		return t, nil
	}
	return "", fmt.Errorf("unknown entry type: %q", raw)
}

// ParseEntryStatus приводит строку к верхнему регистру и возвращает статус записи.
func ParseEntryStatus(raw string) (EntryStatus, error) {
	switch s := EntryStatus(strings.ToUpper(strings.TrimSpace(raw))); s {
	case StatusPending, StatusCanceled, StatusSettled:
		return s, nil
	}
	return "", fmt.Errorf("unknown entry status: %q", raw)
}

// Entry представляет одну запись финансового журнала,
// используемую в бизнес-логике и хранилище. Сумма хранится
// как decimal, чтобы избежать ошибок плавающей точки.
type Entry struct {
	ID          int64           // Идентификатор записи (назначается хранилищем)
	Description string          // Описание записи
	Amount      decimal.Decimal // Сумма записи, строго больше нуля
	Month       int             // Месяц записи (1-12)
	Year        int             // Год записи (ровно 4 цифры)
	Type        EntryType       // INCOME или EXPENSE
	Status      EntryStatus     // PENDING, CANCELED или SETTLED
	UserID      int64           // Владелец записи
}

// DummyEntry используется для приёма данных записи из JSON-запроса,
// прежде чем конвертировать их в Entry. Имена полей повторяют
// формат API исходной системы (португальские ключи).
type DummyEntry struct {
	Description string          `json:"descricao" validate:"required"`      // Описание
	Amount      decimal.Decimal `json:"valor" validate:"required"`          // Сумма (>0)
	Month       int             `json:"mes" validate:"required"`            // Месяц
	Year        int             `json:"ano" validate:"required"`            // Год
	Type        string          `json:"tipo" validate:"required"`           // Тип записи
	Status      string          `json:"status,omitempty" validate:"omitempty"` // Статус (опционально)
}

// EntryDTO используется для отдачи записи в JSON-ответе.
type EntryDTO struct {
	ID          int64           `json:"id"`
	Description string          `json:"descricao"`
	Amount      decimal.Decimal `json:"valor"`
	Month       int             `json:"mes"`
	Year        int             `json:"ano"`
	Type        EntryType       `json:"tipo"`
	Status      EntryStatus     `json:"status"`
	UserID      int64           `json:"usuario"`
}

// NewEntryDTO конвертирует доменную запись в DTO ответа.
func NewEntryDTO(e Entry) EntryDTO {
	return EntryDTO{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		Month:       e.Month,
		Year:        e.Year,
		Type:        e.Type,
		Status:      e.Status,
		UserID:      e.UserID,
	}
}

// EntryFilter описывает поиск записей "по образцу": nil-поля не участвуют
// в фильтрации, описание сравнивается по подстроке без учёта регистра,
// остальные поля — на точное равенство.
type EntryFilter struct {
	Description *string
	Month       *int
	Year        *int
	Type        *EntryType
	Status      *EntryStatus
	UserID      int64
}
