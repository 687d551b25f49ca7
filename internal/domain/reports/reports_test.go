package reports

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrconsole/internal/domain/directory"
)

func TestImportTemplateCSVHeaders(t *testing.T) {
	artifact, err := ImportTemplateCSV()
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(artifact.Data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "template must be header-only")
	assert.Equal(t, "Full Name", records[0][0])
	assert.Equal(t, "Official Email", records[0][1])
	assert.Equal(t, "text/csv", artifact.ContentType)
}

func TestRosterXLSXRejectsEmptyList(t *testing.T) {
	_, err := RosterXLSX("Acme", nil)
	assert.ErrorIs(t, err, ErrNoEmployees)
}

func TestRosterXLSXProducesWorkbook(t *testing.T) {
	employees := []directory.ResolvedEmployee{{
		Employee: directory.Employee{
			User:              directory.User{FirstName: "Asha", LastName: "Rao", Email: "asha@acme.test"},
			EmploymentDetails: directory.EmploymentDetails{Designation: "Engineer", Status: directory.StatusActive},
		},
		DepartmentName:  "Engineering",
		ShiftName:       directory.NotAssigned,
		ReportingToName: directory.NotAssigned,
	}}

	artifact, err := RosterXLSX("Acme", employees)
	require.NoError(t, err)
	require.NotEmpty(t, artifact.Data)
	// XLSX files are zip archives.
	assert.True(t, bytes.HasPrefix(artifact.Data, []byte("PK")), "artifact is not a zip container")
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", artifact.ContentType)
	assert.Contains(t, artifact.Filename, "Acme-employees-")
}

func TestCompanySummaryPDF(t *testing.T) {
	company := directory.Company{
		Name:      "Acme",
		Email:     "hq@acme.test",
		HRContact: directory.HRContact{Name: "Nina Paul", Email: "hr@acme.test"},
	}
	departments := []directory.ResolvedDepartment{{
		Department:  directory.Department{Name: "Engineering"},
		ManagerName: "Ravi Menon",
		HRName:      directory.NotAssigned,
	}}
	shifts := []directory.Shift{{Name: "Day", StartTime: "09:00", EndTime: "17:00", IsActive: true}}

	artifact, err := CompanySummaryPDF(company, departments, shifts, 42)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(artifact.Data, []byte("%PDF")), "artifact is not a PDF")
	assert.Equal(t, "application/pdf", artifact.ContentType)
}

func TestCompanySummaryPDFWithEmptyCollections(t *testing.T) {
	artifact, err := CompanySummaryPDF(directory.Company{Name: "Acme"}, nil, nil, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, artifact.Data)
}
