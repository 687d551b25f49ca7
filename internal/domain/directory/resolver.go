package directory

// NotAssigned is substituted wherever a foreign-key reference cannot be
// resolved against the cached collections.
const NotAssigned = "Not Assigned"

// ResolvedEmployee is an employee joined with display values from the
// cached department, shift and manager collections. It is derived fresh on
// every call and never stored.
type ResolvedEmployee struct {
	Employee
	DepartmentName  string `json:"departmentName"`
	ShiftName       string `json:"shiftName"`
	ReportingToName string `json:"reportingToName"`
}

// ResolvedDepartment is a department joined with its manager and HR display
// names.
type ResolvedDepartment struct {
	Department
	ManagerName string `json:"managerName"`
	HRName      string `json:"hrName"`
}

// ResolveEmployee joins an employee's references against the cached
// collections. Missing collections and unmatched ids resolve to the
// NotAssigned sentinel; resolution never fails.
func ResolveEmployee(emp Employee, departments []Department, shifts []Shift, managers []Manager) ResolvedEmployee {
	resolved := ResolvedEmployee{
		Employee:        emp,
		DepartmentName:  NotAssigned,
		ShiftName:       NotAssigned,
		ReportingToName: NotAssigned,
	}
	if name, ok := departmentName(emp.EmploymentDetails.DepartmentID, departments); ok {
		resolved.DepartmentName = name
	}
	if name, ok := shiftName(emp.EmploymentDetails.ShiftID, shifts); ok {
		resolved.ShiftName = name
	}
	if name, ok := managerName(emp.EmploymentDetails.ReportingToID, managers); ok {
		resolved.ReportingToName = name
	}
	return resolved
}

// ResolveEmployees joins a whole collection; the result order matches the
// input order.
func ResolveEmployees(employees []Employee, departments []Department, shifts []Shift, managers []Manager) []ResolvedEmployee {
	resolved := make([]ResolvedEmployee, 0, len(employees))
	for _, emp := range employees {
		resolved = append(resolved, ResolveEmployee(emp, departments, shifts, managers))
	}
	return resolved
}

// ResolveDepartment joins a department's manager and HR references. The HR
// reference may point at any employee, not only managers.
func ResolveDepartment(dep Department, managers []Manager, employees []Employee) ResolvedDepartment {
	resolved := ResolvedDepartment{
		Department:  dep,
		ManagerName: NotAssigned,
		HRName:      NotAssigned,
	}
	if name, ok := managerName(dep.ManagerID, managers); ok {
		resolved.ManagerName = name
	}
	if dep.HRID != "" {
		for _, emp := range employees {
			if emp.ID == dep.HRID {
				resolved.HRName = emp.User.FullName()
				break
			}
		}
		if resolved.HRName == NotAssigned {
			if name, ok := managerName(dep.HRID, managers); ok {
				resolved.HRName = name
			}
		}
	}
	return resolved
}

func ResolveDepartments(departments []Department, managers []Manager, employees []Employee) []ResolvedDepartment {
	resolved := make([]ResolvedDepartment, 0, len(departments))
	for _, dep := range departments {
		resolved = append(resolved, ResolveDepartment(dep, managers, employees))
	}
	return resolved
}

func departmentName(id string, departments []Department) (string, bool) {
	if id == "" {
		return "", false
	}
	for _, dep := range departments {
		if dep.ID == id {
			return dep.Name, true
		}
	}
	return "", false
}

func shiftName(id string, shifts []Shift) (string, bool) {
	if id == "" {
		return "", false
	}
	for _, shift := range shifts {
		if shift.ID == id {
			return shift.Name, true
		}
	}
	return "", false
}

func managerName(id string, managers []Manager) (string, bool) {
	if id == "" {
		return "", false
	}
	for _, manager := range managers {
		if manager.ID == id {
			return manager.User.FullName(), true
		}
	}
	return "", false
}
