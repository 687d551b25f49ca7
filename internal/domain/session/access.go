package session

import "sort"

// AccessLevel is the explicit rendering of the subadmin permission rule:
// a nil restriction list upstream means full admin-equivalent capability,
// a non-nil list means capability is limited to exactly that list.
type AccessLevel struct {
	restricted  bool
	permissions map[string]struct{}
}

func Unrestricted() AccessLevel {
	return AccessLevel{}
}

func RestrictedTo(permissions []string) AccessLevel {
	set := make(map[string]struct{}, len(permissions))
	for _, permission := range permissions {
		set[permission] = struct{}{}
	}
	return AccessLevel{restricted: true, permissions: set}
}

// FromNullable maps the upstream's nullable permission list onto an
// AccessLevel: nil is unrestricted, anything else (including empty) is a
// restriction list.
func FromNullable(permissions []string) AccessLevel {
	if permissions == nil {
		return Unrestricted()
	}
	return RestrictedTo(permissions)
}

func (a AccessLevel) Restricted() bool {
	return a.restricted
}

// Allows reports whether the level grants a permission. Unrestricted grants
// everything.
func (a AccessLevel) Allows(permission string) bool {
	if !a.restricted {
		return true
	}
	_, ok := a.permissions[permission]
	return ok
}

// Permissions returns the restriction list in sorted order, or nil when
// unrestricted.
func (a AccessLevel) Permissions() []string {
	if !a.restricted {
		return nil
	}
	out := make([]string, 0, len(a.permissions))
	for permission := range a.permissions {
		out = append(out, permission)
	}
	sort.Strings(out)
	return out
}
