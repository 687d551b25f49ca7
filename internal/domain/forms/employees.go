package forms

import (
	"context"

	"hrconsole/internal/domain/cache"
	"hrconsole/internal/domain/directory"
	"hrconsole/internal/upstream"
)

// Employees is the mutation controller for the employee collection.
type Employees struct {
	client *upstream.Client
	cache  *cache.Cache
}

func NewEmployees(client *upstream.Client, c *cache.Cache) *Employees {
	return &Employees{client: client, cache: c}
}

// validateEmployee layers the exit-date rule on top of the required-field
// schema: once the status leaves active, the exit date must be present.
func validateEmployee(payload upstream.EmployeePayload) error {
	err := checkRequired(payload)
	var validation *ValidationError
	if err != nil {
		var ok bool
		if validation, ok = err.(*ValidationError); !ok {
			return err
		}
	}
	if directory.RequiresExitDate(payload.EmploymentDetails.Status) && payload.EmploymentDetails.ExitDate == nil {
		if validation == nil {
			validation = &ValidationError{}
		}
		validation.Issues = append(validation.Issues, Issue{
			Field:  "employmentDetails.exitDate",
			Reason: "is required once the status leaves active",
		})
	}
	if validation != nil {
		return validation
	}
	return nil
}

func (f *Employees) Create(ctx context.Context, companyID string, payload upstream.EmployeePayload) (directory.Employee, error) {
	if err := validateEmployee(payload); err != nil {
		return directory.Employee{}, err
	}
	employee, err := f.client.CreateEmployee(ctx, companyID, payload)
	if err != nil {
		return directory.Employee{}, err
	}
	if err := f.refresh(ctx, companyID); err != nil {
		return directory.Employee{}, err
	}
	return employee, nil
}

func (f *Employees) Update(ctx context.Context, companyID, employeeID string, payload upstream.EmployeePayload) (directory.Employee, error) {
	if err := validateEmployee(payload); err != nil {
		return directory.Employee{}, err
	}
	employee, err := f.client.UpdateEmployee(ctx, companyID, employeeID, payload)
	if err != nil {
		return directory.Employee{}, err
	}
	if err := f.refresh(ctx, companyID); err != nil {
		return directory.Employee{}, err
	}
	return employee, nil
}

// refresh invalidates and refetches the slices an employee mutation can
// move: the paginated list (reusing the query that produced the current
// page) and the manager collection.
func (f *Employees) refresh(ctx context.Context, companyID string) error {
	query, ok := f.cache.LastEmployeeQuery(companyID)
	if !ok {
		query = upstream.EmployeeQuery{Page: 1, Limit: 10}
	}
	f.cache.InvalidateEmployees(companyID)
	f.cache.InvalidateManagers(companyID)
	if _, err := f.cache.FetchEmployees(ctx, companyID, query); err != nil {
		return err
	}
	_, err := f.cache.FetchManagers(ctx, companyID)
	return err
}
