package ledger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/finance-ledger/internal/errs"
	"github.com/magabrotheeeer/finance-ledger/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) SaveEntry(ctx context.Context, e models.Entry) (*models.Entry, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Entry), args.Error(1)
}
func (m *RepoMock) SaveAllEntries(ctx context.Context, entries []models.Entry) ([]models.Entry, error) {
	args := m.Called(ctx, entries)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Entry), args.Error(1)
}
func (m *RepoMock) UpdateEntry(ctx context.Context, e models.Entry) (int, error) {
	args := m.Called(ctx, e)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) DeleteEntry(ctx context.Context, id int64) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}
func (m *RepoMock) FindEntryByID(ctx context.Context, id int64) (*models.Entry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Entry), args.Error(1)
}
func (m *RepoMock) FindEntriesByFilter(ctx context.Context, f models.EntryFilter) ([]*models.Entry, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Entry), args.Error(1)
}
func (m *RepoMock) SumEntries(ctx context.Context, userID int64, t models.EntryType, st models.EntryStatus) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, t, st)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type UsersMock struct{ mock.Mock }

func (m *UsersMock) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newService(r *RepoMock, u *UsersMock, c *CacheMock) *LedgerService {
	return NewLedgerService(r, u, c, newNoopLogger())
}

func TestLedgerService_Save(t *testing.T) {
	tests := []struct {
		name       string
		entry      models.Entry
		setupMocks func(r *RepoMock, c *CacheMock)
		wantErr    string
	}{
		{
			name: "success forces pending status",
			entry: models.Entry{
				Description: "cinema",
				Amount:      decimal.NewFromInt(50),
				Month:       5,
				Year:        2026,
				Type:        models.TypeExpense,
				Status:      models.StatusSettled,
				UserID:      7,
			},
			setupMocks: func(r *RepoMock, c *CacheMock) {
				r.On("SaveEntry", mock.Anything, mock.MatchedBy(func(e models.Entry) bool {
					return e.Status == models.StatusPending
				})).Return(&models.Entry{ID: 42, Status: models.StatusPending, UserID: 7}, nil).Once()
				c.On("Set", "entry:42", mock.Anything, time.Hour).Return(nil).Once()
				c.On("Invalidate", "balance:7").Return(nil).Once()
			},
		},
		{
			name: "invalid entry never reaches repository",
			entry: models.Entry{
				Description: "",
				Amount:      decimal.NewFromInt(50),
				Month:       5,
				Year:        2026,
				Type:        models.TypeExpense,
				UserID:      7,
			},
			setupMocks: func(_ *RepoMock, _ *CacheMock) {},
			wantErr:    MsgInvalidDescription,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			tt.setupMocks(repo, cache)

			svc := newService(repo, new(UsersMock), cache)
			saved, err := svc.Save(context.Background(), tt.entry)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, errs.IsValidation(err))
				assert.EqualError(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(42), saved.ID)
				assert.Equal(t, models.StatusPending, saved.Status)
			}
			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestLedgerService_Update(t *testing.T) {
	t.Run("entry without id is rejected", func(t *testing.T) {
		repo := new(RepoMock)
		svc := newService(repo, new(UsersMock), new(CacheMock))

		entry := models.Entry{
			Description: "rent",
			Amount:      decimal.NewFromInt(900),
			Month:       1,
			Year:        2026,
			Type:        models.TypeExpense,
			Status:      models.StatusPending,
			UserID:      7,
		}
		err := svc.Update(context.Background(), entry)
		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
		repo.AssertNotCalled(t, "UpdateEntry", mock.Anything, mock.Anything)
	})

	t.Run("zero affected rows is not an error and never caches", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		repo.On("UpdateEntry", mock.Anything, mock.Anything).Return(0, nil).Once()

		svc := newService(repo, new(UsersMock), cache)
		entry := validEntry()
		entry.ID = 5
		entry.UserID = 7

		assert.NoError(t, svc.Update(context.Background(), entry))
		repo.AssertExpectations(t)
		// Запись, которой нет в хранилище, не должна появиться в кэше.
		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
		cache.AssertNotCalled(t, "Invalidate", mock.Anything)
	})

	t.Run("affected row refreshes cache and drops balance", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		repo.On("UpdateEntry", mock.Anything, mock.Anything).Return(1, nil).Once()
		cache.On("Set", "entry:5", mock.Anything, time.Hour).Return(nil).Once()
		cache.On("Invalidate", "balance:7").Return(nil).Once()

		svc := newService(repo, new(UsersMock), cache)
		entry := validEntry()
		entry.ID = 5
		entry.UserID = 7

		assert.NoError(t, svc.Update(context.Background(), entry))
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})
}

func TestLedgerService_Delete(t *testing.T) {
	t.Run("missing entry returns not found", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("FindEntryByID", mock.Anything, int64(99)).Return(nil, nil).Once()

		svc := newService(repo, new(UsersMock), new(CacheMock))
		err := svc.Delete(context.Background(), 99)
		assert.ErrorIs(t, err, errs.ErrNotFound)
		repo.AssertNotCalled(t, "DeleteEntry", mock.Anything, mock.Anything)
	})

	t.Run("existing entry is deleted and caches dropped", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		repo.On("FindEntryByID", mock.Anything, int64(5)).
			Return(&models.Entry{ID: 5, UserID: 7}, nil).Once()
		repo.On("DeleteEntry", mock.Anything, int64(5)).Return(1, nil).Once()
		cache.On("Invalidate", "entry:5").Return(nil).Once()
		cache.On("Invalidate", "balance:7").Return(nil).Once()

		svc := newService(repo, new(UsersMock), cache)
		assert.NoError(t, svc.Delete(context.Background(), 5))
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})
}

func TestLedgerService_GetByID(t *testing.T) {
	t.Run("cache miss falls back to repository", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", "entry:5", mock.Anything).Return(false, nil).Once()
		repo.On("FindEntryByID", mock.Anything, int64(5)).
			Return(&models.Entry{ID: 5, Description: "rent"}, nil).Once()
		cache.On("Set", "entry:5", mock.Anything, time.Hour).Return(nil).Once()

		svc := newService(repo, new(UsersMock), cache)
		entry, err := svc.GetByID(context.Background(), 5)
		require.NoError(t, err)
		assert.Equal(t, "rent", entry.Description)
	})

	t.Run("missing entry returns not found", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", "entry:99", mock.Anything).Return(false, nil).Once()
		repo.On("FindEntryByID", mock.Anything, int64(99)).Return(nil, nil).Once()

		svc := newService(repo, new(UsersMock), cache)
		_, err := svc.GetByID(context.Background(), 99)
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestLedgerService_UpdateStatus(t *testing.T) {
	repo := new(RepoMock)
	cache := new(CacheMock)
	stored := validEntry()
	stored.ID = 5

	cache.On("Get", "entry:5", mock.Anything).Return(false, nil).Once()
	repo.On("FindEntryByID", mock.Anything, int64(5)).Return(&stored, nil).Once()
	cache.On("Set", "entry:5", mock.Anything, time.Hour).Return(nil).Twice()
	repo.On("UpdateEntry", mock.Anything, mock.MatchedBy(func(e models.Entry) bool {
		return e.ID == 5 && e.Status == models.StatusSettled
	})).Return(1, nil).Once()
	cache.On("Invalidate", "balance:1").Return(nil).Once()

	svc := newService(repo, new(UsersMock), cache)
	entry, err := svc.UpdateStatus(context.Background(), 5, models.StatusSettled)
	require.NoError(t, err)
	assert.Equal(t, models.StatusSettled, entry.Status)
	repo.AssertExpectations(t)
}

func TestLedgerService_BalanceByUser(t *testing.T) {
	tests := []struct {
		name    string
		income  decimal.Decimal
		expense decimal.Decimal
		want    string
	}{
		{
			name:    "income minus expense",
			income:  decimal.RequireFromString("1500.50"),
			expense: decimal.RequireFromString("400.25"),
			want:    "1100.25",
		},
		{
			name:    "no entries yields zero",
			income:  decimal.Zero,
			expense: decimal.Zero,
			want:    "0",
		},
		{
			name:    "negative balance",
			income:  decimal.NewFromInt(100),
			expense: decimal.NewFromInt(250),
			want:    "-150",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			cache.On("Get", "balance:7", mock.Anything).Return(false, nil).Once()
			repo.On("SumEntries", mock.Anything, int64(7), models.TypeIncome, models.StatusSettled).
				Return(tt.income, nil).Once()
			repo.On("SumEntries", mock.Anything, int64(7), models.TypeExpense, models.StatusSettled).
				Return(tt.expense, nil).Once()
			cache.On("Set", "balance:7", mock.Anything, time.Minute).Return(nil).Once()

			svc := newService(repo, new(UsersMock), cache)
			balance, err := svc.BalanceByUser(context.Background(), 7)
			require.NoError(t, err)
			assert.Equal(t, tt.want, balance.String())
			repo.AssertExpectations(t)
		})
	}

	t.Run("repository error is propagated", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)
		cache.On("Get", "balance:7", mock.Anything).Return(false, nil).Once()
		repo.On("SumEntries", mock.Anything, int64(7), models.TypeIncome, models.StatusSettled).
			Return(decimal.Zero, errors.New("db down")).Once()

		svc := newService(repo, new(UsersMock), cache)
		_, err := svc.BalanceByUser(context.Background(), 7)
		assert.Error(t, err)
	})
}
