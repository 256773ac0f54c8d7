package services

import (
	"fmt"

	"gorm.io/gorm"
)

// ReconcileOps describes how to reconcile association rows of type R
// (order-employee assignments, offer operation lines) against a desired
// set of entries of type D. Activate and Deactivate return whether the
// row actually changed, so re-running the same reconciliation produces
// no further writes.
type ReconcileOps[R any, D any] struct {
	RowKey     func(R) string     // child reference id of an existing row
	DesiredKey func(D) string     // child reference id of a desired entry
	NewRow     func(D) R          // fresh active row for a desired entry
	Activate   func(*R, D) bool   // re-activate + apply payload; reports change
	Deactivate func(*R) bool      // soft-remove; reports change
}

// ReconcilePlan is the minimal set of writes that makes the active rows
// of a parent match the desired set exactly. Rows never leave the table:
// extras are soft-removed via Deactivate.
type ReconcilePlan[R any] struct {
	ToCreate  []R
	ToUpdate  []R
	Unchanged int
}

// BuildReconcilePlan computes the plan from the full existing row set of
// one parent (removed rows included) and the desired entries. A child id
// appearing twice in desired is last-write-wins on the payload.
func BuildReconcilePlan[R any, D any](existing []R, desired []D, ops ReconcileOps[R, D]) ReconcilePlan[R] {
	rows := make([]R, len(existing))
	copy(rows, existing)

	byKey := make(map[string]*R, len(rows))
	for i := range rows {
		byKey[ops.RowKey(rows[i])] = &rows[i]
	}

	changed := make(map[string]bool)
	wanted := make(map[string]bool, len(desired))
	created := make(map[string]*R)
	var createdOrder []string

	for _, d := range desired {
		key := ops.DesiredKey(d)
		wanted[key] = true

		if row, ok := byKey[key]; ok {
			if ops.Activate(row, d) {
				changed[key] = true
			}
			continue
		}
		if row, ok := created[key]; ok {
			// Duplicate desired key: last write wins.
			ops.Activate(row, d)
			continue
		}
		row := ops.NewRow(d)
		created[key] = &row
		createdOrder = append(createdOrder, key)
	}

	for i := range rows {
		key := ops.RowKey(rows[i])
		if !wanted[key] {
			if ops.Deactivate(&rows[i]) {
				changed[key] = true
			}
		}
	}

	var plan ReconcilePlan[R]
	for _, key := range createdOrder {
		plan.ToCreate = append(plan.ToCreate, *created[key])
	}
	for i := range rows {
		if changed[ops.RowKey(rows[i])] {
			plan.ToUpdate = append(plan.ToUpdate, rows[i])
		} else {
			plan.Unchanged++
		}
	}
	return plan
}

// ApplyReconcilePlan persists the plan. Callers run it inside a
// transaction scoped to the parent so concurrent reconciliations of the
// same parent cannot interleave.
func ApplyReconcilePlan[R any](tx *gorm.DB, plan ReconcilePlan[R]) error {
	for i := range plan.ToCreate {
		if err := tx.Create(&plan.ToCreate[i]).Error; err != nil {
			return fmt.Errorf("failed to create association row: %w", err)
		}
	}
	for i := range plan.ToUpdate {
		if err := tx.Save(&plan.ToUpdate[i]).Error; err != nil {
			return fmt.Errorf("failed to update association row: %w", err)
		}
	}
	return nil
}
