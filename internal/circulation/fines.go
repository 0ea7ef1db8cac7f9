package circulation

import (
	"time"

	"openshelf/internal/entities"
)

// DateOnly truncates t to its calendar date, dropping the time of day.
// All fine and overdue arithmetic works on calendar dates: a book due
// Monday and returned Tuesday is one day late whether it comes back at
// 00:05 or 23:55.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysOverdue returns the number of whole calendar days now is past the
// due date, or 0 when the due date has not passed. Both dates are
// normalized to UTC midnight first so timestamps carrying different zone
// offsets still diff in whole days.
func DaysOverdue(dueDate, now time.Time) int {
	due := time.Date(dueDate.Year(), dueDate.Month(), dueDate.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !today.After(due) {
		return 0
	}
	return int(today.Sub(due).Hours() / 24)
}

// CalculateFine computes the fine owed for a return happening at now,
// charging rate per overdue calendar day.
func CalculateFine(dueDate, now time.Time, rate float64) float64 {
	return float64(DaysOverdue(dueDate, now)) * rate
}

// Reclassify flips issued transactions whose due date lies strictly before
// now's calendar date to overdue. It is pure: the input slice is not
// modified and the reclassified copy is returned. Returned transactions are
// never touched.
func Reclassify(now time.Time, transactions []entities.Transaction) []entities.Transaction {
	out := make([]entities.Transaction, len(transactions))
	copy(out, transactions)
	for i := range out {
		if out[i].Status == entities.TransactionStatusIssued && DaysOverdue(out[i].DueDate, now) > 0 {
			out[i].Status = entities.TransactionStatusOverdue
		}
	}
	return out
}
