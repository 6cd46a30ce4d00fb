package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEntryType(t *testing.T) {
	tests := []struct {
		raw     string
		want    EntryType
		wantErr bool
	}{
		{raw: "INCOME", want: TypeIncome},
		{raw: "expense", want: TypeExpense},
		{raw: "  Income  ", want: TypeIncome},
		{raw: "transfer", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseEntryType(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEntryStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    EntryStatus
		wantErr bool
	}{
		{raw: "PENDING", want: StatusPending},
		{raw: "settled", want: StatusSettled},
		{raw: "Canceled", want: StatusCanceled},
		{raw: "done", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseEntryStatus(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEntryDTO_WireKeys(t *testing.T) {
	dto := NewEntryDTO(Entry{
		ID:          42,
		Description: "salary",
		Amount:      decimal.RequireFromString("2500.00"),
		Month:       3,
		Year:        2026,
		Type:        TypeIncome,
		Status:      StatusPending,
		UserID:      7,
	})

	raw, err := json.Marshal(dto)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))

	for _, key := range []string{"id", "descricao", "valor", "mes", "ano", "tipo", "status", "usuario"} {
		assert.Contains(t, got, key)
	}
	assert.Equal(t, "INCOME", got["tipo"])
}
