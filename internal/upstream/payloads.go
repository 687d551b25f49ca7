package upstream

import "hrconsole/internal/domain/directory"

// Mutation payloads sent to the upstream API. The validate tags are the
// required-field schema the form controller checks before any network call;
// everything beyond non-empty checks belongs to the upstream.

type CompanyPayload struct {
	Name         string                     `json:"name" validate:"required"`
	Email        string                     `json:"email" validate:"required,email"`
	Address      directory.Address          `json:"address"`
	TaxDetails   directory.TaxDetails       `json:"taxDetails"`
	BankDetails  directory.BankDetails      `json:"bankDetails"`
	HRContact    directory.HRContact        `json:"hrContact"`
	Permissions  []string                   `json:"permissions"`
	CustomFields []directory.CustomFieldDef `json:"customFields"`
}

type DepartmentPayload struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type ShiftPayload struct {
	Name         string `json:"name" validate:"required"`
	StartTime    string `json:"startTime" validate:"required"`
	EndTime      string `json:"endTime" validate:"required"`
	GraceMinutes int    `json:"graceMinutes"`
	BreakMinutes int    `json:"breakMinutes"`
	IsNightShift bool   `json:"isNightShift"`
	IsActive     bool   `json:"isActive"`
}

// PersonPayload is the complete record used for replace-not-merge
// department assignments.
type PersonPayload struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone"`
}

type EmployeePayload struct {
	Email             string                      `json:"email" validate:"required,email"`
	FirstName         string                      `json:"firstName" validate:"required"`
	LastName          string                      `json:"lastName"`
	Phone             string                      `json:"phone"`
	PersonalDetails   directory.PersonalDetails   `json:"personalDetails"`
	EmploymentDetails directory.EmploymentDetails `json:"employmentDetails"`
	LeaveBalance      float64                     `json:"leaveBalance"`
	CustomFields      map[string]string           `json:"customFields,omitempty"`
}
