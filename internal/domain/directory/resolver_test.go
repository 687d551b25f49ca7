package directory

import "testing"

func TestResolveEmployeeJoinsDisplayNames(t *testing.T) {
	emp := Employee{
		ID:   "e1",
		User: User{FirstName: "Asha", LastName: "Rao", Email: "asha@acme.test"},
		EmploymentDetails: EmploymentDetails{
			DepartmentID:  "d1",
			ShiftID:       "s1",
			ReportingToID: "m1",
		},
	}
	departments := []Department{{ID: "d1", Name: "Engineering"}}
	shifts := []Shift{{ID: "s1", Name: "Day"}}
	managers := []Manager{{Employee: Employee{ID: "m1", User: User{FirstName: "Ravi", LastName: "Menon"}}}}

	resolved := ResolveEmployee(emp, departments, shifts, managers)
	if resolved.DepartmentName != "Engineering" {
		t.Fatalf("unexpected department name %q", resolved.DepartmentName)
	}
	if resolved.ShiftName != "Day" {
		t.Fatalf("unexpected shift name %q", resolved.ShiftName)
	}
	if resolved.ReportingToName != "Ravi Menon" {
		t.Fatalf("unexpected manager name %q", resolved.ReportingToName)
	}
}

func TestResolveEmployeeSubstitutesSentinel(t *testing.T) {
	cases := []struct {
		name string
		emp  Employee
	}{
		{"empty references", Employee{}},
		{"dangling references", Employee{EmploymentDetails: EmploymentDetails{
			DepartmentID: "missing", ShiftID: "missing", ReportingToID: "missing",
		}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resolved := ResolveEmployee(tc.emp, nil, nil, nil)
			if resolved.DepartmentName != NotAssigned {
				t.Fatalf("expected sentinel, got %q", resolved.DepartmentName)
			}
			if resolved.ShiftName != NotAssigned {
				t.Fatalf("expected sentinel, got %q", resolved.ShiftName)
			}
			if resolved.ReportingToName != NotAssigned {
				t.Fatalf("expected sentinel, got %q", resolved.ReportingToName)
			}
		})
	}
}

func TestResolveDepartmentPrefersEmployeeForHR(t *testing.T) {
	dep := Department{ID: "d1", Name: "Engineering", ManagerID: "m1", HRID: "e2"}
	managers := []Manager{{Employee: Employee{ID: "m1", User: User{FirstName: "Ravi"}}}}
	employees := []Employee{{ID: "e2", User: User{FirstName: "Nina", LastName: "Paul"}}}

	resolved := ResolveDepartment(dep, managers, employees)
	if resolved.ManagerName != "Ravi" {
		t.Fatalf("unexpected manager name %q", resolved.ManagerName)
	}
	if resolved.HRName != "Nina Paul" {
		t.Fatalf("unexpected hr name %q", resolved.HRName)
	}
}

func TestResolveDepartmentFallsBackToManagersForHR(t *testing.T) {
	dep := Department{ID: "d1", HRID: "m2"}
	managers := []Manager{{Employee: Employee{ID: "m2", User: User{Email: "hr@acme.test"}}}}

	resolved := ResolveDepartment(dep, managers, nil)
	if resolved.HRName != "hr@acme.test" {
		t.Fatalf("unexpected hr name %q", resolved.HRName)
	}
}

func TestFullNameFallsBackToEmail(t *testing.T) {
	cases := []struct {
		name string
		user User
		want string
	}{
		{"both names", User{FirstName: "Asha", LastName: "Rao"}, "Asha Rao"},
		{"first only", User{FirstName: "Asha"}, "Asha"},
		{"last only", User{LastName: "Rao"}, "Rao"},
		{"email fallback", User{Email: "asha@acme.test"}, "asha@acme.test"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.user.FullName(); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}
