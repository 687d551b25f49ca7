package forms

import (
	"hrconsole/internal/domain/directory"
	"hrconsole/internal/upstream"
)

// Edit drafts are seeded from the cached entity with every nested field
// explicitly defaulted, so an edit form never dereferences a missing
// sub-record.

func SeedEmployee(emp directory.Employee) upstream.EmployeePayload {
	payload := upstream.EmployeePayload{
		Email:             emp.User.Email,
		FirstName:         emp.User.FirstName,
		LastName:          emp.User.LastName,
		Phone:             emp.User.Phone,
		PersonalDetails:   emp.PersonalDetails,
		EmploymentDetails: emp.EmploymentDetails,
		LeaveBalance:      emp.LeaveBalance,
		CustomFields:      emp.CustomFields,
	}
	if payload.EmploymentDetails.Status == "" {
		payload.EmploymentDetails.Status = directory.StatusActive
	}
	if payload.EmploymentDetails.Salary.Currency == "" {
		payload.EmploymentDetails.Salary.Currency = "USD"
	}
	if payload.CustomFields == nil {
		payload.CustomFields = map[string]string{}
	}
	return payload
}

func SeedCompany(company directory.Company) upstream.CompanyPayload {
	payload := upstream.CompanyPayload{
		Name:         company.Name,
		Email:        company.Email,
		Address:      company.Address,
		TaxDetails:   company.TaxDetails,
		BankDetails:  company.BankDetails,
		HRContact:    company.HRContact,
		Permissions:  company.Permissions,
		CustomFields: company.CustomFields,
	}
	if payload.Permissions == nil {
		payload.Permissions = []string{}
	}
	if payload.CustomFields == nil {
		payload.CustomFields = []directory.CustomFieldDef{}
	}
	return payload
}

func SeedDepartment(dep directory.Department) upstream.DepartmentPayload {
	return upstream.DepartmentPayload{
		Name:        dep.Name,
		Description: dep.Description,
	}
}

func SeedShift(shift directory.Shift) upstream.ShiftPayload {
	return upstream.ShiftPayload{
		Name:         shift.Name,
		StartTime:    shift.StartTime,
		EndTime:      shift.EndTime,
		GraceMinutes: shift.GraceMinutes,
		BreakMinutes: shift.BreakMinutes,
		IsNightShift: shift.IsNightShift,
		IsActive:     shift.IsActive,
	}
}
