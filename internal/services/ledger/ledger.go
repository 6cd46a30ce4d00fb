// Package ledger содержит бизнес-логику финансового журнала:
// операции над отдельными записями, подсчёт баланса пользователя
// и конвейер массового импорта CSV.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/magabrotheeeer/finance-ledger/internal/errs"
	"github.com/magabrotheeeer/finance-ledger/internal/lib/sl"
	"github.com/magabrotheeeer/finance-ledger/internal/models"
)

// EntryRepository определяет методы для работы с записями журнала в хранилище.
type EntryRepository interface {
	// SaveEntry сохраняет новую запись и возвращает её с назначенным ID.
	SaveEntry(ctx context.Context, e models.Entry) (*models.Entry, error)
	// SaveAllEntries сохраняет пакет записей одной транзакцией.
	SaveAllEntries(ctx context.Context, entries []models.Entry) ([]models.Entry, error)
	// UpdateEntry обновляет запись по ID и возвращает количество изменённых строк.
	UpdateEntry(ctx context.Context, e models.Entry) (int, error)
	// DeleteEntry удаляет запись по ID и возвращает количество удалённых строк.
	DeleteEntry(ctx context.Context, id int64) (int, error)
	// FindEntryByID возвращает запись по ID или nil, если записи нет.
	FindEntryByID(ctx context.Context, id int64) (*models.Entry, error)
	// FindEntriesByFilter возвращает записи, удовлетворяющие фильтру.
	FindEntriesByFilter(ctx context.Context, f models.EntryFilter) ([]*models.Entry, error)
	// SumEntries возвращает сумму записей пользователя по типу и статусу.
	SumEntries(ctx context.Context, userID int64, t models.EntryType, st models.EntryStatus) (decimal.Decimal, error)
}

// UserProvider возвращает пользователя по ID, (nil, nil) при отсутствии.
type UserProvider interface {
	FindUserByID(ctx context.Context, id int64) (*models.User, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// LedgerService реализует бизнес-логику журнала, включая кеширование записей.
type LedgerService struct {
	repo  EntryRepository
	users UserProvider
	cache Cache
	log   *slog.Logger
}

// NewLedgerService создает новый экземпляр LedgerService.
func NewLedgerService(repo EntryRepository, users UserProvider, cache Cache, log *slog.Logger) *LedgerService {
	return &LedgerService{
		repo:  repo,
		users: users,
		cache: cache,
		log:   log,
	}
}

func entryCacheKey(id int64) string      { return fmt.Sprintf("entry:%d", id) }
func balanceCacheKey(userID int64) string { return fmt.Sprintf("balance:%d", userID) }

// Save валидирует запись, принудительно переводит её в статус PENDING
// и сохраняет. Возвращает запись с назначенным ID.
func (s *LedgerService) Save(ctx context.Context, e models.Entry) (*models.Entry, error) {
	if err := Validate(e); err != nil {
		return nil, err
	}
	e.Status = models.StatusPending

	saved, err := s.repo.SaveEntry(ctx, e)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new entry", slog.Int64("id", saved.ID))

	if err := s.cache.Set(entryCacheKey(saved.ID), saved, time.Hour); err != nil {
		s.log.Warn("failed to cache entry", slog.String("key", entryCacheKey(saved.ID)), sl.Err(err))
	}
	s.invalidateBalance(saved.UserID)
	return saved, nil
}

// Update валидирует и безусловно перезаписывает запись с существующим ID.
// Существование записи перед перезаписью не проверяется: нулевое число
// изменённых строк не считается ошибкой.
func (s *LedgerService) Update(ctx context.Context, e models.Entry) error {
	if e.ID == 0 {
		return errs.NewValidation("entry has no id")
	}
	if err := Validate(e); err != nil {
		return err
	}
	rows, err := s.repo.UpdateEntry(ctx, e)
	if err != nil {
		return err
	}
	if rows == 0 {
		// Хранилище ничего не изменило, кэшировать нечего.
		return nil
	}
	s.log.Info("updated entry", slog.Int64("id", e.ID))

	if err := s.cache.Set(entryCacheKey(e.ID), &e, time.Hour); err != nil {
		s.log.Warn("failed to cache entry", slog.String("key", entryCacheKey(e.ID)), sl.Err(err))
	}
	s.invalidateBalance(e.UserID)
	return nil
}

// Delete удаляет запись по ID. Возвращает errs.ErrNotFound, если записи нет.
func (s *LedgerService) Delete(ctx context.Context, id int64) error {
	entry, err := s.repo.FindEntryByID(ctx, id)
	if err != nil {
		return err
	}
	if entry == nil {
		return errs.ErrNotFound
	}

	if _, err := s.repo.DeleteEntry(ctx, id); err != nil {
		return err
	}

	if err := s.cache.Invalidate(entryCacheKey(id)); err != nil {
		s.log.Warn("failed to remove entry from cache", slog.String("key", entryCacheKey(id)), sl.Err(err))
	}
	s.invalidateBalance(entry.UserID)
	return nil
}

// GetByID возвращает запись по ID, используя кеш или репозиторий.
// Возвращает errs.ErrNotFound при отсутствии записи.
func (s *LedgerService) GetByID(ctx context.Context, id int64) (*models.Entry, error) {
	var cached models.Entry
	found, err := s.cache.Get(entryCacheKey(id), &cached)
	if err != nil {
		s.log.Warn("failed to read entry from cache", slog.String("key", entryCacheKey(id)), sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	entry, err := s.repo.FindEntryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, errs.ErrNotFound
	}

	if err := s.cache.Set(entryCacheKey(id), entry, time.Hour); err != nil {
		s.log.Warn("failed to cache entry", slog.String("key", entryCacheKey(id)), sl.Err(err))
	}
	return entry, nil
}

// Search возвращает записи, совпадающие с непустыми полями фильтра.
// Описание сравнивается по подстроке без учёта регистра, остальные
// поля — на равенство; nil-поля не ограничивают выборку.
func (s *LedgerService) Search(ctx context.Context, f models.EntryFilter) ([]*models.Entry, error) {
	return s.repo.FindEntriesByFilter(ctx, f)
}

// UpdateStatus загружает запись, меняет её статус и вызывает Update.
func (s *LedgerService) UpdateStatus(ctx context.Context, id int64, status models.EntryStatus) (*models.Entry, error) {
	entry, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	entry.Status = status
	if err := s.Update(ctx, *entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// BalanceByUser возвращает реализованный баланс пользователя:
// сумма проведённых доходов минус сумма проведённых расходов.
// Пользователь без записей получает нулевой баланс, а не ошибку.
func (s *LedgerService) BalanceByUser(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var cached decimal.Decimal
	found, err := s.cache.Get(balanceCacheKey(userID), &cached)
	if err != nil {
		s.log.Warn("failed to read balance from cache", slog.String("key", balanceCacheKey(userID)), sl.Err(err))
	}
	if found {
		return cached, nil
	}

	income, err := s.repo.SumEntries(ctx, userID, models.TypeIncome, models.StatusSettled)
	if err != nil {
		return decimal.Zero, err
	}
	expense, err := s.repo.SumEntries(ctx, userID, models.TypeExpense, models.StatusSettled)
	if err != nil {
		return decimal.Zero, err
	}
	balance := income.Sub(expense)

	if err := s.cache.Set(balanceCacheKey(userID), balance, time.Minute); err != nil {
		s.log.Warn("failed to cache balance", slog.String("key", balanceCacheKey(userID)), sl.Err(err))
	}
	return balance, nil
}

func (s *LedgerService) invalidateBalance(userID int64) {
	if err := s.cache.Invalidate(balanceCacheKey(userID)); err != nil {
		s.log.Warn("failed to invalidate balance cache", slog.String("key", balanceCacheKey(userID)), sl.Err(err))
	}
}
