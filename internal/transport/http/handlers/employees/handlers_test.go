package employeeshandler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hrconsole/internal/domain/forms"
)

func TestDecodeEmployeeParsesFormDates(t *testing.T) {
	body := `{
		"email": "asha@acme.test",
		"firstName": "Asha",
		"employmentDetails": {
			"designation": "Engineer",
			"status": "terminated",
			"joinDate": "2024-02-01",
			"exitDate": "2026-08-15T00:00:00Z"
		}
	}`
	req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))

	payload, err := decodeEmployee(req)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if payload.Email != "asha@acme.test" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.EmploymentDetails.JoinDate == nil || payload.EmploymentDetails.JoinDate.Format("2006-01-02") != "2024-02-01" {
		t.Fatalf("join date not parsed: %+v", payload.EmploymentDetails.JoinDate)
	}
	if payload.EmploymentDetails.ExitDate == nil || payload.EmploymentDetails.ExitDate.Year() != 2026 {
		t.Fatalf("exit date not parsed: %+v", payload.EmploymentDetails.ExitDate)
	}
	if payload.EmploymentDetails.Status != "terminated" {
		t.Fatalf("nested fields lost in decode: %+v", payload.EmploymentDetails)
	}
}

func TestDecodeEmployeeLeavesEmptyDatesNil(t *testing.T) {
	body := `{"email": "asha@acme.test", "firstName": "Asha", "employmentDetails": {"status": "active"}}`
	req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))

	payload, err := decodeEmployee(req)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if payload.EmploymentDetails.JoinDate != nil || payload.EmploymentDetails.ExitDate != nil {
		t.Fatal("absent dates must stay nil")
	}
}

func TestDecodeEmployeeRejectsBadDate(t *testing.T) {
	body := `{"email": "asha@acme.test", "firstName": "Asha", "employmentDetails": {"exitDate": "next tuesday"}}`
	req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(body))

	_, err := decodeEmployee(req)
	var validation *forms.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected a validation error, got %v", err)
	}
	if validation.Issues[0].Field != "employmentDetails.exitDate" {
		t.Fatalf("unexpected issue: %+v", validation.Issues)
	}
}
