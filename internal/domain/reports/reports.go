package reports

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"hrconsole/internal/domain/directory"
	"hrconsole/internal/domain/importer"
)

var ErrNoEmployees = errors.New("no employees to export")

// Artifact is the download collaborator contract: bytes plus a filename.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

var rosterHeaders = []string{
	"Employee No", "Name", "Email", "Designation", "Department", "Shift", "Reporting To", "Status",
}

// RosterXLSX renders the resolved employee list as a workbook. Display
// values come from the resolver, so unresolved references already carry
// the Not Assigned sentinel.
func RosterXLSX(companyName string, employees []directory.ResolvedEmployee) (Artifact, error) {
	if len(employees) == 0 {
		return Artifact{}, ErrNoEmployees
	}

	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Employees"
	index, err := file.NewSheet(sheet)
	if err != nil {
		return Artifact{}, err
	}
	for col, header := range rosterHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return Artifact{}, err
		}
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return Artifact{}, err
		}
	}
	for i, emp := range employees {
		values := []any{
			emp.EmploymentDetails.EmployeeNumber,
			emp.User.FullName(),
			emp.User.Email,
			emp.EmploymentDetails.Designation,
			emp.DepartmentName,
			emp.ShiftName,
			emp.ReportingToName,
			emp.EmploymentDetails.Status,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return Artifact{}, err
			}
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return Artifact{}, err
			}
		}
	}

	file.SetActiveSheet(index)
	if sheetIndex, _ := file.GetSheetIndex("Sheet1"); sheetIndex != -1 {
		if err := file.DeleteSheet("Sheet1"); err != nil {
			return Artifact{}, err
		}
	}

	buffer, err := file.WriteToBuffer()
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{
		Filename:    fmt.Sprintf("%s-employees-%s.xlsx", companyName, time.Now().Format("2006-01-02")),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buffer.Bytes(),
	}, nil
}

// CompanySummaryPDF renders the company profile with department and shift
// rollups.
func CompanySummaryPDF(company directory.Company, departments []directory.ResolvedDepartment, shifts []directory.Shift, headcount int) (Artifact, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Company Summary")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Company: %s", company.Name))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Email: %s", company.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("HR Contact: %s (%s)", company.HRContact.Name, company.HRContact.Email))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Headcount: %d", headcount))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Departments")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	if len(departments) == 0 {
		pdf.Cell(0, 7, "None")
		pdf.Ln(7)
	}
	for _, dep := range departments {
		pdf.Cell(0, 7, fmt.Sprintf("%s - Manager: %s, HR: %s", dep.Name, dep.ManagerName, dep.HRName))
		pdf.Ln(7)
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, "Shifts")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	if len(shifts) == 0 {
		pdf.Cell(0, 7, "None")
		pdf.Ln(7)
	}
	for _, shift := range shifts {
		state := "inactive"
		if shift.IsActive {
			state = "active"
		}
		pdf.Cell(0, 7, fmt.Sprintf("%s: %s - %s (%s)", shift.Name, shift.StartTime, shift.EndTime, state))
		pdf.Ln(7)
	}

	var buffer bytes.Buffer
	if err := pdf.Output(&buffer); err != nil {
		return Artifact{}, err
	}
	return Artifact{
		Filename:    fmt.Sprintf("%s-summary-%s.pdf", company.Name, time.Now().Format("2006-01-02")),
		ContentType: "application/pdf",
		Data:        buffer.Bytes(),
	}, nil
}

// ImportTemplateCSV produces the header-only template the bulk import
// pipeline parses. Columns match the importer's mapping by name, not order.
func ImportTemplateCSV() (Artifact, error) {
	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)
	if err := writer.Write(importer.TemplateHeaders); err != nil {
		return Artifact{}, err
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return Artifact{}, err
	}
	return Artifact{
		Filename:    "employee-import-template.csv",
		ContentType: "text/csv",
		Data:        buffer.Bytes(),
	}, nil
}
