package service

import (
	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// MaterializeResult holds the rows to insert and the definitions whose
// NextDueDate or IsActive changed.
type MaterializeResult struct {
	Created  []*entity.PendingRecurringExpense
	Advanced []*entity.RecurringExpense
}

type occurrenceKey struct {
	definitionID uuid.UUID
	date         string
}

// MaterializePending creates a pending row for every lapsed due date (<= now) of each
// active definition and moves NextDueDate strictly past now. Dates that already have a
// row in existing, whatever its status, are not created again, so repeated runs with the
// same now create nothing new. Definitions whose next date passes EndDate are deactivated.
//
// Inputs are not modified; Advanced holds updated copies.
func MaterializePending(definitions []*entity.RecurringExpense, existing []*entity.PendingRecurringExpense, now valueobject.Date) MaterializeResult {
	seen := make(map[occurrenceKey]bool, len(existing))
	for _, p := range existing {
		seen[occurrenceKey{p.RecurringExpenseID, p.ScheduledDate.String()}] = true
	}

	result := MaterializeResult{
		Created:  make([]*entity.PendingRecurringExpense, 0),
		Advanced: make([]*entity.RecurringExpense, 0),
	}

	for _, def := range definitions {
		if !def.IsActive || !hasSchedule(def) {
			continue
		}

		updated := *def
		due := updated.NextDueDate
		if due.IsZero() {
			due = InitialDueDate(&updated)
		}

		for !due.After(now) && !updated.EndsBefore(due) {
			key := occurrenceKey{updated.ID, due.String()}
			if !seen[key] {
				seen[key] = true
				result.Created = append(result.Created, entity.NewPendingRecurringExpense(&updated, due))
			}
			due = AdvanceDueDate(due, updated.Interval(), updated.ExecutionDates)
		}

		if updated.EndsBefore(due) {
			updated.IsActive = false
		}
		if due.Equal(def.NextDueDate) && updated.IsActive == def.IsActive {
			continue
		}
		updated.NextDueDate = due
		result.Advanced = append(result.Advanced, &updated)
	}

	return result
}
