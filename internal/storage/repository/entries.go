package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/finance-ledger/internal/models"
)

// SaveEntry вставляет новую запись журнала и возвращает её с назначенным ID.
func (s *Storage) SaveEntry(ctx context.Context, entry models.Entry) (*models.Entry, error) {
	const op = "storage.SaveEntry"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO entries (description, amount, month, year, type, status, user_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	err := s.DB.QueryRowContext(ctx, query,
		entry.Description, entry.Amount, entry.Month, entry.Year,
		entry.Type, entry.Status, entry.UserID).Scan(&entry.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &entry, nil
}

// SaveAllEntries сохраняет пакет записей одной транзакцией: либо
// записываются все, либо ни одной. Возвращает записи с назначенными ID.
func (s *Storage) SaveAllEntries(ctx context.Context, entries []models.Entry) ([]models.Entry, error) {
	const op = "storage.SaveAllEntries"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `INSERT INTO entries (description, amount, month, year, type, status, user_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	saved := make([]models.Entry, 0, len(entries))
	for _, entry := range entries {
		if err := tx.QueryRowContext(ctx, query,
			entry.Description, entry.Amount, entry.Month, entry.Year,
			entry.Type, entry.Status, entry.UserID).Scan(&entry.ID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		saved = append(saved, entry)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return saved, nil
}

// UpdateEntry обновляет запись по её ID и возвращает количество изменённых строк.
func (s *Storage) UpdateEntry(ctx context.Context, entry models.Entry) (int, error) {
	const op = "storage.UpdateEntry"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE entries
			  SET description = $1, amount = $2, month = $3, year = $4,
			      type = $5, status = $6, user_id = $7
			  WHERE id = $8`
	result, err := s.DB.ExecContext(ctx, query,
		entry.Description, entry.Amount, entry.Month, entry.Year,
		entry.Type, entry.Status, entry.UserID, entry.ID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeleteEntry удаляет запись по ID и возвращает количество удалённых строк.
func (s *Storage) DeleteEntry(ctx context.Context, id int64) (int, error) {
	const op = "storage.DeleteEntry"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM entries WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// FindEntryByID возвращает запись по её ID или nil, если записи нет.
func (s *Storage) FindEntryByID(ctx context.Context, id int64) (*models.Entry, error) {
	const op = "storage.FindEntryByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, description, amount, month, year, type, status, user_id
			  FROM entries WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Entry
	if err := row.Scan(&result.ID, &result.Description, &result.Amount, &result.Month,
		&result.Year, &result.Type, &result.Status, &result.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// FindEntriesByFilter возвращает записи, удовлетворяющие непустым полям фильтра.
// Предикаты перечислены явно: описание сравнивается через ILIKE по подстроке,
// остальные поля — на равенство. Nil-поля в выборку не входят.
func (s *Storage) FindEntriesByFilter(ctx context.Context, f models.EntryFilter) ([]*models.Entry, error) {
	const op = "storage.FindEntriesByFilter"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	conditions := []string{"user_id = $1"}
	args := []any{f.UserID}

	addCondition := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if f.Description != nil {
		addCondition("description ILIKE '%%' || $%d || '%%'", *f.Description)
	}
	if f.Month != nil {
		addCondition("month = $%d", *f.Month)
	}
	if f.Year != nil {
		addCondition("year = $%d", *f.Year)
	}
	if f.Type != nil {
		addCondition("type = $%d", *f.Type)
	}
	if f.Status != nil {
		addCondition("status = $%d", *f.Status)
	}

	query := `SELECT id, description, amount, month, year, type, status, user_id
			  FROM entries
			  WHERE ` + strings.Join(conditions, " AND ") + `
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Entry
	for rows.Next() {
		var item models.Entry
		if err := rows.Scan(&item.ID, &item.Description, &item.Amount, &item.Month,
			&item.Year, &item.Type, &item.Status, &item.UserID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// SumEntries возвращает сумму записей пользователя по типу и статусу.
// Отсутствие записей даёт нулевую сумму, а не ошибку.
func (s *Storage) SumEntries(ctx context.Context, userID int64, t models.EntryType, st models.EntryStatus) (decimal.Decimal, error) {
	const op = "storage.SumEntries"
	select {
	case <-ctx.Done():
		return decimal.Zero, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COALESCE(SUM(amount), 0)
			  FROM entries
			  WHERE user_id = $1 AND type = $2 AND status = $3`
	var total decimal.Decimal
	if err := s.DB.QueryRowContext(ctx, query, userID, t, st).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", op, err)
	}
	return total, nil
}
