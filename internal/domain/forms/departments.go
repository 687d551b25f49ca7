package forms

import (
	"context"

	"hrconsole/internal/domain/cache"
	"hrconsole/internal/domain/directory"
	"hrconsole/internal/upstream"
)

// StaffSlot names the department assignment being replaced.
const (
	SlotManager = "manager"
	SlotHR      = "hr"
)

// Departments is the mutation controller for the department collection.
// Every successful submit invalidates and refetches the affected slices
// before success is reported, so the next read cannot be stale.
type Departments struct {
	client *upstream.Client
	cache  *cache.Cache
}

func NewDepartments(client *upstream.Client, c *cache.Cache) *Departments {
	return &Departments{client: client, cache: c}
}

func (f *Departments) Create(ctx context.Context, companyID string, payload upstream.DepartmentPayload) (directory.Department, error) {
	if err := checkRequired(payload); err != nil {
		return directory.Department{}, err
	}
	department, err := f.client.CreateDepartment(ctx, companyID, payload)
	if err != nil {
		return directory.Department{}, err
	}
	f.cache.InvalidateDepartments(companyID)
	if _, err := f.cache.FetchDepartments(ctx, companyID); err != nil {
		return directory.Department{}, err
	}
	return department, nil
}

func (f *Departments) Update(ctx context.Context, companyID, departmentID string, payload upstream.DepartmentPayload) (directory.Department, error) {
	if err := checkRequired(payload); err != nil {
		return directory.Department{}, err
	}
	department, err := f.client.UpdateDepartment(ctx, companyID, departmentID, payload)
	if err != nil {
		return directory.Department{}, err
	}
	f.cache.InvalidateDepartments(companyID)
	if _, err := f.cache.FetchDepartments(ctx, companyID); err != nil {
		return directory.Department{}, err
	}
	return department, nil
}

func (f *Departments) Delete(ctx context.Context, companyID, departmentID string) error {
	if err := f.client.DeleteDepartment(ctx, companyID, departmentID); err != nil {
		return err
	}
	f.cache.InvalidateDepartments(companyID)
	_, err := f.cache.FetchDepartments(ctx, companyID)
	return err
}

// AssignmentResult reports a staff assignment. Replaced is true when the
// slot already had an assignee; the submitted record discards that person
// entirely, so the UI must have warned before reaching this point.
type AssignmentResult struct {
	Department directory.Department `json:"department"`
	Replaced   bool                 `json:"replaced"`
}

// AssignStaff replaces a department's manager or HR with a brand-new
// person record. Partial patches of the existing assignee do not exist in
// this contract.
func (f *Departments) AssignStaff(ctx context.Context, companyID, departmentID, slot string, person upstream.PersonPayload) (AssignmentResult, error) {
	if err := checkRequired(person); err != nil {
		return AssignmentResult{}, err
	}

	replaced := false
	if departments, ok := f.cache.CachedDepartments(companyID); ok {
		for _, dep := range departments {
			if dep.ID != departmentID {
				continue
			}
			if slot == SlotManager && dep.ManagerID != "" {
				replaced = true
			}
			if slot == SlotHR && dep.HRID != "" {
				replaced = true
			}
		}
	}

	department, err := f.client.AssignDepartmentStaff(ctx, companyID, departmentID, slot, person)
	if err != nil {
		return AssignmentResult{}, err
	}

	// The assignment creates a person, so the manager collection moved too.
	f.cache.InvalidateDepartments(companyID)
	f.cache.InvalidateManagers(companyID)
	if _, err := f.cache.FetchDepartments(ctx, companyID); err != nil {
		return AssignmentResult{}, err
	}
	if _, err := f.cache.FetchManagers(ctx, companyID); err != nil {
		return AssignmentResult{}, err
	}
	return AssignmentResult{Department: department, Replaced: replaced}, nil
}
