package session

import "testing"

func TestFromNullableDistinguishesNilFromEmpty(t *testing.T) {
	if FromNullable(nil).Restricted() {
		t.Fatal("a nil list must be unrestricted")
	}
	if !FromNullable([]string{}).Restricted() {
		t.Fatal("an empty list is an explicit restriction to nothing")
	}
}

func TestAllows(t *testing.T) {
	unrestricted := Unrestricted()
	if !unrestricted.Allows("anything") {
		t.Fatal("unrestricted access must grant everything")
	}

	restricted := RestrictedTo([]string{"departments:manage"})
	if !restricted.Allows("departments:manage") {
		t.Fatal("listed permission must be granted")
	}
	if restricted.Allows("employees:manage") {
		t.Fatal("unlisted permission must be denied")
	}
}

func TestPermissionsRoundTrip(t *testing.T) {
	if Unrestricted().Permissions() != nil {
		t.Fatal("unrestricted must serialize to nil")
	}

	original := []string{"shifts:manage", "departments:manage"}
	restored := FromNullable(RestrictedTo(original).Permissions())
	if !restored.Restricted() {
		t.Fatal("restriction lost in round trip")
	}
	for _, permission := range original {
		if !restored.Allows(permission) {
			t.Fatalf("permission %q lost in round trip", permission)
		}
	}

	empty := FromNullable(RestrictedTo(nil).Permissions())
	if !empty.Restricted() {
		t.Fatal("empty restriction must survive a round trip")
	}
}
