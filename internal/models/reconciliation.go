package models

import "time"

type ReconciliationState string

const (
	ReconciliationUnseen           ReconciliationState = "unseen"
	ReconciliationRecorded         ReconciliationState = "recorded"
	ReconciliationInventoryUpdated ReconciliationState = "inventory-updated"
	ReconciliationBalanceUpdated   ReconciliationState = "balance-updated"
	ReconciliationComplete         ReconciliationState = "complete"
)

// reconciliationOrder is the only legal progression.
var reconciliationOrder = map[ReconciliationState]int{
	ReconciliationUnseen:           0,
	ReconciliationRecorded:         1,
	ReconciliationInventoryUpdated: 2,
	ReconciliationBalanceUpdated:   3,
	ReconciliationComplete:         4,
}

// CanAdvanceTo reports whether next is the state directly after s.
func (s ReconciliationState) CanAdvanceTo(next ReconciliationState) bool {
	cur, ok := reconciliationOrder[s]
	if !ok {
		return false
	}
	n, ok := reconciliationOrder[next]
	return ok && n == cur+1
}

func (s ReconciliationState) IsTerminal() bool {
	return s == ReconciliationComplete
}

// Reconciliation tracks one external transaction through the booking flow.
type Reconciliation struct {
	TransactionID string              `json:"transactionId"`
	State         ReconciliationState `json:"state"`
	EventID       string              `json:"eventId"`
	UserID        string              `json:"userId"`
	Quantity      int                 `json:"quantity"`
	Amount        Cents               `json:"amount"`
	Overbooked    bool                `json:"overbooked"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}
