package directory

import "time"

const (
	StatusActive     = "active"
	StatusInactive   = "inactive"
	StatusTerminated = "terminated"
)

// RequiresExitDate reports whether an employment status transition must
// carry exit-date fields.
func RequiresExitDate(status string) bool {
	return status == StatusInactive || status == StatusTerminated
}

type Address struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	ZipCode string `json:"zipCode"`
}

type TaxDetails struct {
	TaxID     string `json:"taxId"`
	TaxRegime string `json:"taxRegime,omitempty"`
	GSTNumber string `json:"gstNumber,omitempty"`
}

type BankDetails struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	BranchCode    string `json:"branchCode,omitempty"`
}

type HRContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CustomFieldDef is a company-defined extension field applied to employee
// records.
type CustomFieldDef struct {
	Label    string `json:"label"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
}

type Company struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Address      Address          `json:"address"`
	TaxDetails   TaxDetails       `json:"taxDetails"`
	BankDetails  BankDetails      `json:"bankDetails"`
	HRContact    HRContact        `json:"hrContact"`
	Permissions  []string         `json:"permissions"`
	CustomFields []CustomFieldDef `json:"customFields"`
	CreatedAt    time.Time        `json:"createdAt"`
}

type Department struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"companyId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ManagerID   string    `json:"managerId,omitempty"`
	HRID        string    `json:"hrId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Shift struct {
	ID           string `json:"id"`
	CompanyID    string `json:"companyId"`
	Name         string `json:"name"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	GraceMinutes int    `json:"graceMinutes"`
	BreakMinutes int    `json:"breakMinutes"`
	IsNightShift bool   `json:"isNightShift"`
	IsActive     bool   `json:"isActive"`
}

type User struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

type PersonalDetails struct {
	NationalID    string  `json:"nationalId,omitempty"`
	TaxNumber     string  `json:"taxNumber,omitempty"`
	PersonalEmail string  `json:"personalEmail,omitempty"`
	Phone         string  `json:"phone,omitempty"`
	Address       Address `json:"address"`
}

type SalaryBreakdown struct {
	Basic      float64 `json:"basic"`
	HRA        float64 `json:"hra"`
	Allowances float64 `json:"allowances"`
	Deductions float64 `json:"deductions"`
	Currency   string  `json:"currency"`
}

type EmploymentDetails struct {
	EmployeeNumber  string          `json:"employeeNumber"`
	Designation     string          `json:"designation"`
	DepartmentID    string          `json:"departmentId,omitempty"`
	ShiftID         string          `json:"shiftId,omitempty"`
	ReportingToID   string          `json:"reportingToId,omitempty"`
	Salary          SalaryBreakdown `json:"salary"`
	PFEnabled       bool            `json:"pfEnabled"`
	ESIEnabled      bool            `json:"esiEnabled"`
	Status          string          `json:"status"`
	JoinDate        *time.Time      `json:"joinDate,omitempty"`
	ExitDate        *time.Time      `json:"exitDate,omitempty"`
	ExitReason      string          `json:"exitReason,omitempty"`
}

type Employee struct {
	ID                string            `json:"id"`
	CompanyID         string            `json:"companyId"`
	User              User              `json:"user"`
	PersonalDetails   PersonalDetails   `json:"personalDetails"`
	EmploymentDetails EmploymentDetails `json:"employmentDetails"`
	LeaveBalance      float64           `json:"leaveBalance"`
	CustomFields      map[string]string `json:"customFields,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// Manager is an employee with a role marker; departments and an employee's
// reportingTo reference point at managers.
type Manager struct {
	Employee
	Role string `json:"role"`
}

// FullName renders the display name for a user, falling back to the email
// when no profile name is present.
func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	default:
		return u.Email
	}
}
