package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fee-tracker/internal/lib/apperr"
)

func TestNewMonthlyStatus(t *testing.T) {
	ms := NewMonthlyStatus()

	assert.Len(t, ms, 12)
	for m := 1; m <= 12; m++ {
		paid, ok := ms[m]
		assert.True(t, ok, "month %d slot missing", m)
		assert.False(t, paid, "month %d should default to unpaid", m)
	}
}

func TestMonthlyStatus_JSONKeys(t *testing.T) {
	data, err := json.Marshal(NewMonthlyStatus())
	require.NoError(t, err)

	var decoded map[string]bool
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Len(t, decoded, 12)
	assert.Contains(t, decoded, "1")
	assert.Contains(t, decoded, "12")
}

func TestLedger_AddGroup(t *testing.T) {
	l := NewLedger("uid-1")

	require.NoError(t, l.AddGroup("Grade 1"))
	require.NoError(t, l.AddGroup("Grade 2"))
	assert.Equal(t, []string{"Grade 1", "Grade 2"}, l.GroupNames())

	err := l.AddGroup("Grade 1")
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestLedger_AddEntry(t *testing.T) {
	l := NewLedger("uid-1")
	require.NoError(t, l.AddGroup("Grade 1"))

	require.NoError(t, l.AddEntry("Grade 1", "Alice"))

	err := l.AddEntry("Grade 1", "Alice")
	assert.ErrorIs(t, err, apperr.ErrConflict)

	err = l.AddEntry("Grade 9", "Bob")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	group := l.FindGroup("Grade 1")
	require.NotNil(t, group)
	require.Len(t, group.Entries, 1)
	assert.Len(t, group.Entries[0].MonthlyPaymentStatus, 12)
}

func TestLedger_SetPaymentStatus(t *testing.T) {
	l := NewLedger("uid-1")
	require.NoError(t, l.AddGroup("Grade 1"))
	require.NoError(t, l.AddEntry("Grade 1", "Alice"))

	tests := []struct {
		name      string
		group     string
		entry     string
		month     int
		wantErrIs error
	}{
		{name: "valid month", group: "Grade 1", entry: "Alice", month: 3},
		{name: "lower bound", group: "Grade 1", entry: "Alice", month: 1},
		{name: "upper bound", group: "Grade 1", entry: "Alice", month: 12},
		{name: "month zero", group: "Grade 1", entry: "Alice", month: 0, wantErrIs: apperr.ErrValidation},
		{name: "month thirteen", group: "Grade 1", entry: "Alice", month: 13, wantErrIs: apperr.ErrValidation},
		{name: "missing group", group: "Grade 9", entry: "Alice", month: 3, wantErrIs: apperr.ErrNotFound},
		{name: "missing entry", group: "Grade 1", entry: "Bob", month: 3, wantErrIs: apperr.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := l.SetPaymentStatus(tt.group, tt.entry, tt.month, true)
			if tt.wantErrIs != nil {
				assert.ErrorIs(t, err, tt.wantErrIs)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLedger_SetPaymentStatus_SingleSlotOnly(t *testing.T) {
	l := NewLedger("uid-1")
	require.NoError(t, l.AddGroup("Grade 1"))
	require.NoError(t, l.AddEntry("Grade 1", "Alice"))

	require.NoError(t, l.SetPaymentStatus("Grade 1", "Alice", 3, true))

	ms := l.FindGroup("Grade 1").Entries[0].MonthlyPaymentStatus
	for m := 1; m <= 12; m++ {
		if m == 3 {
			assert.True(t, ms[m])
		} else {
			assert.False(t, ms[m], "month %d must stay unpaid", m)
		}
	}
}

func TestLedger_SetPaymentStatus_ToggleRoundTrip(t *testing.T) {
	l := NewLedger("uid-1")
	require.NoError(t, l.AddGroup("Grade 1"))
	require.NoError(t, l.AddEntry("Grade 1", "Alice"))

	require.NoError(t, l.SetPaymentStatus("Grade 1", "Alice", 5, true))
	require.NoError(t, l.SetPaymentStatus("Grade 1", "Alice", 5, false))

	assert.False(t, l.FindGroup("Grade 1").Entries[0].MonthlyPaymentStatus[5])
}

func TestLedger_RemoveEntry(t *testing.T) {
	l := NewLedger("uid-1")
	require.NoError(t, l.AddGroup("Grade 1"))
	require.NoError(t, l.AddEntry("Grade 1", "Alice"))
	require.NoError(t, l.AddEntry("Grade 1", "Bob"))

	require.NoError(t, l.RemoveEntry("Grade 1", "Alice"))
	group := l.FindGroup("Grade 1")
	require.Len(t, group.Entries, 1)
	assert.Equal(t, "Bob", group.Entries[0].Name)

	// отсутствующая запись — no-op
	require.NoError(t, l.RemoveEntry("Grade 1", "Charlie"))
	assert.Len(t, group.Entries, 1)

	err := l.RemoveEntry("Grade 9", "Bob")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestLedger_ExactNameMatching(t *testing.T) {
	l := NewLedger("uid-1")
	require.NoError(t, l.AddGroup("Grade 1"))

	// имена не нормализуются
	require.NoError(t, l.AddGroup("grade 1"))
	assert.Len(t, l.Groups, 2)
}
