package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCentsJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Amount Cents `json:"amount"`
	}{Amount: 5000})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":50}`, string(b))

	b, err = json.Marshal(Cents(1999))
	require.NoError(t, err)
	assert.Equal(t, "19.99", string(b))

	var c Cents
	require.NoError(t, json.Unmarshal([]byte(`12.34`), &c))
	assert.Equal(t, Cents(1234), c)

	require.NoError(t, json.Unmarshal([]byte(`0.29`), &c))
	assert.Equal(t, Cents(29), c)

	assert.Error(t, json.Unmarshal([]byte(`"12"`), &c))
	assert.Error(t, json.Unmarshal([]byte(`1e300`), &c))
}

func TestRemainingSeats(t *testing.T) {
	e := &Event{AvailableSeats: 10, BookedSeats: 4}
	assert.Equal(t, 6, e.RemainingSeats())
	assert.False(t, e.IsOverbooked())

	e.BookedSeats = 12
	assert.Equal(t, 0, e.RemainingSeats())
	assert.True(t, e.IsOverbooked())
}

func TestReconciliationStateProgression(t *testing.T) {
	steps := []ReconciliationState{
		ReconciliationUnseen,
		ReconciliationRecorded,
		ReconciliationInventoryUpdated,
		ReconciliationBalanceUpdated,
		ReconciliationComplete,
	}
	for i := 0; i < len(steps)-1; i++ {
		assert.True(t, steps[i].CanAdvanceTo(steps[i+1]), "%s -> %s", steps[i], steps[i+1])
	}

	assert.False(t, ReconciliationUnseen.CanAdvanceTo(ReconciliationComplete))
	assert.False(t, ReconciliationComplete.CanAdvanceTo(ReconciliationUnseen))
	assert.False(t, ReconciliationState("bogus").CanAdvanceTo(ReconciliationRecorded))
	assert.True(t, ReconciliationComplete.IsTerminal())
}
