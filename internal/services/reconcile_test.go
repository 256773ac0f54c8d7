package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"gestionale/server/internal/models"
)

func employeeOps(orderID string) ReconcileOps[models.OrderEmployee, string] {
	return ReconcileOps[models.OrderEmployee, string]{
		RowKey:     func(r models.OrderEmployee) string { return r.EmployeeID },
		DesiredKey: func(id string) string { return id },
		NewRow: func(id string) models.OrderEmployee {
			return models.OrderEmployee{ID: "row-" + id, OrderID: orderID, EmployeeID: id}
		},
		Activate: func(r *models.OrderEmployee, _ string) bool {
			if !r.Removed {
				return false
			}
			r.Removed = false
			return true
		},
		Deactivate: func(r *models.OrderEmployee) bool {
			if r.Removed {
				return false
			}
			r.Removed = true
			return true
		},
	}
}

func assignment(employeeID string, removed bool) models.OrderEmployee {
	return models.OrderEmployee{ID: "row-" + employeeID, OrderID: "order-1", EmployeeID: employeeID, Removed: removed}
}

func TestBuildReconcilePlan_CreatesMissingRows(t *testing.T) {
	plan := BuildReconcilePlan(nil, []string{"e1", "e2"}, employeeOps("order-1"))

	assert.Len(t, plan.ToCreate, 2)
	assert.Empty(t, plan.ToUpdate)
	assert.Equal(t, "e1", plan.ToCreate[0].EmployeeID)
	assert.Equal(t, "e2", plan.ToCreate[1].EmployeeID)
	assert.False(t, plan.ToCreate[0].Removed)
}

func TestBuildReconcilePlan_SoftRemovesUnwanted(t *testing.T) {
	existing := []models.OrderEmployee{
		assignment("e1", false),
		assignment("e2", false),
	}

	plan := BuildReconcilePlan(existing, []string{"e1"}, employeeOps("order-1"))

	assert.Empty(t, plan.ToCreate)
	assert.Len(t, plan.ToUpdate, 1)
	assert.Equal(t, "e2", plan.ToUpdate[0].EmployeeID)
	assert.True(t, plan.ToUpdate[0].Removed)
	assert.Equal(t, 1, plan.Unchanged)
}

func TestBuildReconcilePlan_ReactivatesRemovedRow(t *testing.T) {
	existing := []models.OrderEmployee{
		assignment("e1", true),
	}

	plan := BuildReconcilePlan(existing, []string{"e1"}, employeeOps("order-1"))

	assert.Empty(t, plan.ToCreate, "a removed row must be re-activated, not duplicated")
	assert.Len(t, plan.ToUpdate, 1)
	assert.Equal(t, "row-e1", plan.ToUpdate[0].ID)
	assert.False(t, plan.ToUpdate[0].Removed)
}

func TestBuildReconcilePlan_Idempotent(t *testing.T) {
	existing := []models.OrderEmployee{
		assignment("e1", false),
		assignment("e2", true),
	}
	desired := []string{"e1"}

	first := BuildReconcilePlan(existing, desired, employeeOps("order-1"))
	assert.Empty(t, first.ToCreate)
	assert.Empty(t, first.ToUpdate, "the sets already match, no writes expected")
	assert.Equal(t, 2, first.Unchanged)
}

func TestBuildReconcilePlan_EmptyDesiredRemovesEverything(t *testing.T) {
	existing := []models.OrderEmployee{
		assignment("e1", false),
		assignment("e2", false),
	}

	plan := BuildReconcilePlan(existing, nil, employeeOps("order-1"))

	assert.Empty(t, plan.ToCreate)
	assert.Len(t, plan.ToUpdate, 2)
	for _, row := range plan.ToUpdate {
		assert.True(t, row.Removed)
	}
}

func TestBuildReconcilePlan_MixedScenario(t *testing.T) {
	// keep e1, remove e2, re-activate e3, create e4
	existing := []models.OrderEmployee{
		assignment("e1", false),
		assignment("e2", false),
		assignment("e3", true),
	}

	plan := BuildReconcilePlan(existing, []string{"e1", "e3", "e4"}, employeeOps("order-1"))

	assert.Len(t, plan.ToCreate, 1)
	assert.Equal(t, "e4", plan.ToCreate[0].EmployeeID)

	assert.Len(t, plan.ToUpdate, 2)
	byEmployee := map[string]models.OrderEmployee{}
	for _, row := range plan.ToUpdate {
		byEmployee[row.EmployeeID] = row
	}
	assert.True(t, byEmployee["e2"].Removed)
	assert.False(t, byEmployee["e3"].Removed)
	assert.Equal(t, 1, plan.Unchanged)
}

type operationEntry struct {
	OperationID string
	NumOp       decimal.Decimal
}

func operationOps(offerID string) ReconcileOps[models.OfferOperation, operationEntry] {
	return ReconcileOps[models.OfferOperation, operationEntry]{
		RowKey:     func(r models.OfferOperation) string { return r.OperationID },
		DesiredKey: func(d operationEntry) string { return d.OperationID },
		NewRow: func(d operationEntry) models.OfferOperation {
			return models.OfferOperation{ID: "row-" + d.OperationID, OfferID: offerID, OperationID: d.OperationID, NumOp: d.NumOp}
		},
		Activate: func(r *models.OfferOperation, d operationEntry) bool {
			changed := r.Removed || !r.NumOp.Equal(d.NumOp)
			r.Removed = false
			r.NumOp = d.NumOp
			return changed
		},
		Deactivate: func(r *models.OfferOperation) bool {
			if r.Removed {
				return false
			}
			r.Removed = true
			return true
		},
	}
}

func TestBuildReconcilePlan_PayloadChangeUpdatesRow(t *testing.T) {
	existing := []models.OfferOperation{
		{ID: "row-op1", OfferID: "offer-1", OperationID: "op1", NumOp: decimal.NewFromInt(2)},
	}

	plan := BuildReconcilePlan(existing, []operationEntry{
		{OperationID: "op1", NumOp: decimal.NewFromInt(5)},
	}, operationOps("offer-1"))

	assert.Empty(t, plan.ToCreate)
	assert.Len(t, plan.ToUpdate, 1)
	assert.True(t, plan.ToUpdate[0].NumOp.Equal(decimal.NewFromInt(5)))
}

func TestBuildReconcilePlan_SamePayloadNoWrite(t *testing.T) {
	existing := []models.OfferOperation{
		{ID: "row-op1", OfferID: "offer-1", OperationID: "op1", NumOp: decimal.NewFromInt(2)},
	}

	plan := BuildReconcilePlan(existing, []operationEntry{
		{OperationID: "op1", NumOp: decimal.NewFromInt(2)},
	}, operationOps("offer-1"))

	assert.Empty(t, plan.ToCreate)
	assert.Empty(t, plan.ToUpdate)
	assert.Equal(t, 1, plan.Unchanged)
}

func TestBuildReconcilePlan_DuplicateDesiredKeyLastWriteWins(t *testing.T) {
	plan := BuildReconcilePlan(nil, []operationEntry{
		{OperationID: "op1", NumOp: decimal.NewFromInt(2)},
		{OperationID: "op1", NumOp: decimal.NewFromInt(7)},
	}, operationOps("offer-1"))

	assert.Len(t, plan.ToCreate, 1, "a duplicated entry must produce a single row")
	assert.True(t, plan.ToCreate[0].NumOp.Equal(decimal.NewFromInt(7)))
}

func TestBuildReconcilePlan_DuplicateDesiredKeyOnExistingRow(t *testing.T) {
	existing := []models.OfferOperation{
		{ID: "row-op1", OfferID: "offer-1", OperationID: "op1", NumOp: decimal.NewFromInt(1)},
	}

	plan := BuildReconcilePlan(existing, []operationEntry{
		{OperationID: "op1", NumOp: decimal.NewFromInt(3)},
		{OperationID: "op1", NumOp: decimal.NewFromInt(9)},
	}, operationOps("offer-1"))

	assert.Empty(t, plan.ToCreate)
	assert.Len(t, plan.ToUpdate, 1)
	assert.True(t, plan.ToUpdate[0].NumOp.Equal(decimal.NewFromInt(9)))
}
