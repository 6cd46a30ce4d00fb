package ledger

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/finance-ledger/internal/errs"
	"github.com/magabrotheeeer/finance-ledger/internal/models"
)

// Фиксированный порядок колонок CSV-файла. Заголовок присутствует всегда,
// сравнивается без учёта регистра и как данные не используется.
const csvColumns = 6 // descricao,valor,mes,ano,tipo,status

// ImportCSV выполняет массовый импорт записей из CSV-файла для пользователя.
//
// Каждая строка валидируется независимо: ошибка разбора или валидации
// превращается в группу ошибок строки и не прерывает импорт. Все валидные
// строки сохраняются одним пакетным вызовом после полного прохода файла.
// Ошибки уровня файла (не-CSV расширение, нечитаемое содержимое,
// отсутствующий пользователь) прерывают импорт до обработки строк.
func (s *LedgerService) ImportCSV(ctx context.Context, filename string, data []byte, userID int64) (*models.ImportResult, error) {
	const op = "ledger.ImportCSV"

	if !strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return nil, errs.NewValidation("the file must be a CSV")
	}

	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if user == nil {
		return nil, errs.NewValidation("user not found")
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1 // количество полей проверяется построчно
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errs.NewValidation("could not read the file: " + err.Error())
	}

	var validEntries []models.Entry
	rowErrors := make([]models.RowError, 0)
	line := 1 // заголовок считается первой строкой

	for i, record := range records {
		if i == 0 {
			continue // заголовок пропускается, но уже учтён как строка 1
		}
		line++

		entry, messages := entryFromRecord(record, user.ID)
		if err := Validate(entry); err != nil {
			messages = append(messages, err.Error())
		}
		if len(messages) > 0 {
			rowErrors = append(rowErrors, models.RowError{Line: line, Messages: messages})
			continue
		}
		validEntries = append(validEntries, entry)
	}

	if len(validEntries) > 0 {
		if _, err := s.repo.SaveAllEntries(ctx, validEntries); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		s.invalidateBalance(user.ID)
	}

	s.log.Info("csv import finished",
		slog.Int("processed", line-1),
		slog.Int("saved", len(validEntries)),
		slog.Int("rows_with_errors", len(rowErrors)))

	return &models.ImportResult{
		TotalProcessed: line - 1, // заголовок не считается
		TotalErrors:    len(rowErrors),
		Errors:         rowErrors,
	}, nil
}

// entryFromRecord строит кандидата записи из строки CSV и возвращает
// сообщения об ошибках разбора полей. Кандидат возвращается даже при
// ошибках, чтобы доменная валидация могла добавить свои сообщения.
func entryFromRecord(record []string, userID int64) (models.Entry, []string) {
	var messages []string

	entry := models.Entry{
		UserID: userID,
		Status: models.StatusPending,
	}

	if len(record) != csvColumns {
		return entry, []string{fmt.Sprintf("row has %d fields, expected %d", len(record), csvColumns)}
	}

	entry.Description = strings.TrimSpace(record[0])

	amount, err := decimal.NewFromString(strings.TrimSpace(record[1]))
	if err != nil {
		messages = append(messages, "invalid amount: "+strings.TrimSpace(record[1]))
	} else {
		entry.Amount = amount
	}

	month, err := strconv.Atoi(strings.TrimSpace(record[2]))
	if err != nil {
		messages = append(messages, "invalid month: "+strings.TrimSpace(record[2]))
	} else {
		entry.Month = month
	}

	year, err := strconv.Atoi(strings.TrimSpace(record[3]))
	if err != nil {
		messages = append(messages, "invalid year: "+strings.TrimSpace(record[3]))
	} else {
		entry.Year = year
	}

	if raw := strings.TrimSpace(record[4]); raw != "" {
		t, err := models.ParseEntryType(raw)
		if err != nil {
			messages = append(messages, "invalid value in file: "+err.Error())
		} else {
			entry.Type = t
		}
	}

	if raw := strings.TrimSpace(record[5]); raw != "" {
		st, err := models.ParseEntryStatus(raw)
		if err != nil {
			messages = append(messages, "invalid value in file: "+err.Error())
		} else {
			entry.Status = st
		}
	}

	return entry, messages
}
