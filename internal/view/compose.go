package view

import "hrconsole/internal/domain/session"

const (
	ShellSuperAdmin = "superadmin-shell"
	ShellAdmin      = "admin-shell"
	ShellSubAdmin   = "subadmin-shell"
	ShellEmployee   = "employee-shell"
)

// NavItem is one entry of a shell's navigation surface. Permission names an
// entry depends on; an empty permission is always shown.
type NavItem struct {
	Label      string `json:"label"`
	Route      string `json:"route"`
	Permission string `json:"permission,omitempty"`
}

// Shell is the role-specific composition mounted around page content: its
// navigation surface and the capability set the gateway gates routes on.
type Shell struct {
	Name         string    `json:"name"`
	Navigation   []NavItem `json:"navigation"`
	Capabilities []string  `json:"capabilities"`
}

const (
	CapCompaniesManage   = "companies:manage"
	CapDepartmentsManage = "departments:manage"
	CapEmployeesManage   = "employees:manage"
	CapShiftsManage      = "shifts:manage"
	CapImportsRun        = "imports:run"
	CapReportsExport     = "reports:export"
	CapSelfView          = "self:view"
)

// Compose selects exactly one shell from the role and access level. The
// precedence is fixed: superadmin wins outright, admin next, and a subadmin
// composes the restricted shell only when an explicit restriction list
// exists — without one the subadmin receives full admin capability.
func Compose(role string, access session.AccessLevel) Shell {
	switch {
	case role == session.RoleSuperAdmin:
		return superAdminShell()
	case role == session.RoleAdmin:
		return adminShell()
	case role == session.RoleSubAdmin && access.Restricted():
		return subAdminShell(access)
	case role == session.RoleSubAdmin:
		return adminShell()
	default:
		return employeeShell()
	}
}

func superAdminShell() Shell {
	return Shell{
		Name: ShellSuperAdmin,
		Navigation: []NavItem{
			{Label: "Companies", Route: "/companies"},
			{Label: "Register Company", Route: "/companies/new"},
			{Label: "Permissions", Route: "/companies/permissions"},
			{Label: "Exports", Route: "/reports"},
		},
		Capabilities: []string{
			CapCompaniesManage,
			CapDepartmentsManage,
			CapEmployeesManage,
			CapShiftsManage,
			CapImportsRun,
			CapReportsExport,
		},
	}
}

func adminShell() Shell {
	return Shell{
		Name: ShellAdmin,
		Navigation: []NavItem{
			{Label: "Departments", Route: "/departments"},
			{Label: "Employees", Route: "/employees"},
			{Label: "Shifts", Route: "/shifts"},
			{Label: "Bulk Import", Route: "/imports"},
			{Label: "Reports", Route: "/reports"},
		},
		Capabilities: []string{
			CapDepartmentsManage,
			CapEmployeesManage,
			CapShiftsManage,
			CapImportsRun,
			CapReportsExport,
		},
	}
}

// subAdminShell carries only the capabilities the restriction list allows;
// the navigation surface shrinks with it.
func subAdminShell(access session.AccessLevel) Shell {
	full := []NavItem{
		{Label: "Departments", Route: "/departments", Permission: CapDepartmentsManage},
		{Label: "Employees", Route: "/employees", Permission: CapEmployeesManage},
		{Label: "Shifts", Route: "/shifts", Permission: CapShiftsManage},
		{Label: "Bulk Import", Route: "/imports", Permission: CapImportsRun},
		{Label: "Reports", Route: "/reports", Permission: CapReportsExport},
	}
	shell := Shell{Name: ShellSubAdmin}
	for _, item := range full {
		if access.Allows(item.Permission) {
			shell.Navigation = append(shell.Navigation, item)
			shell.Capabilities = append(shell.Capabilities, item.Permission)
		}
	}
	return shell
}

func employeeShell() Shell {
	return Shell{
		Name: ShellEmployee,
		Navigation: []NavItem{
			{Label: "My Profile", Route: "/me"},
		},
		Capabilities: []string{CapSelfView},
	}
}

// Allows reports whether a shell grants a capability.
func (s Shell) Allows(capability string) bool {
	for _, granted := range s.Capabilities {
		if granted == capability {
			return true
		}
	}
	return false
}
