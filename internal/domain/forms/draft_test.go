package forms

import (
	"testing"

	"hrconsole/internal/domain/directory"
	"hrconsole/internal/upstream"
)

func TestDraftApplyReturnsNewValue(t *testing.T) {
	original := Seeded(upstream.DepartmentPayload{Name: "Engineering"})

	edited := original.Apply(func(p *upstream.DepartmentPayload) {
		p.Name = "Platform Engineering"
		p.Description = "Infra and tooling"
	})

	if original.Value().Name != "Engineering" {
		t.Fatalf("edit leaked into the original draft: %+v", original.Value())
	}
	if edited.Value().Name != "Platform Engineering" || edited.Value().Description != "Infra and tooling" {
		t.Fatalf("edit not applied: %+v", edited.Value())
	}
}

func TestDraftApplyChains(t *testing.T) {
	draft := Seeded(upstream.ShiftPayload{}).
		Apply(func(p *upstream.ShiftPayload) { p.Name = "Night" }).
		Apply(func(p *upstream.ShiftPayload) { p.IsNightShift = true })

	got := draft.Value()
	if got.Name != "Night" || !got.IsNightShift {
		t.Fatalf("chained edits lost: %+v", got)
	}
}

func TestDraftSeededFromEntityKeepsDefaults(t *testing.T) {
	emp := directory.Employee{
		User: directory.User{FirstName: "Asha", Email: "asha@acme.test"},
	}

	draft := Seeded(SeedEmployee(emp)).Apply(func(p *upstream.EmployeePayload) {
		p.EmploymentDetails.Designation = "Engineer"
	})

	got := draft.Value()
	if got.EmploymentDetails.Status != directory.StatusActive {
		t.Fatalf("seed defaults lost through Apply: %+v", got.EmploymentDetails)
	}
	if got.FirstName != "Asha" || got.EmploymentDetails.Designation != "Engineer" {
		t.Fatalf("unexpected draft value: %+v", got)
	}
}
