package importer

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"

	"hrconsole/internal/domain/cache"
	"hrconsole/internal/domain/directory"
	"hrconsole/internal/platform/metrics"
	"hrconsole/internal/upstream"
)

// TemplateHeaders is the canonical column set for the employee import
// template. Parsing is header-keyed, so column order never matters.
var TemplateHeaders = []string{
	"Full Name",
	"Official Email",
	"Personal Email",
	"Phone",
	"Designation",
	"Department",
	"Shift",
	"Reporting To",
}

var ErrEmptyBatch = errors.New("import produced no submittable rows")

// References are the cached collections free-text row values are matched
// against.
type References struct {
	Departments []directory.Department
	Shifts      []directory.Shift
	Managers    []directory.Manager
}

// BuildResult is a validated, deduplicated batch plus the counts the
// caller reports to the user.
type BuildResult struct {
	Batch   []upstream.EmployeePayload
	Dropped int // duplicate or missing primary email
}

// SplitName splits a free-text full name at the first space.
func SplitName(full string) (first, last string) {
	full = strings.TrimSpace(full)
	if full == "" {
		return "", ""
	}
	if idx := strings.IndexByte(full, ' '); idx >= 0 {
		return full[:idx], strings.TrimSpace(full[idx+1:])
	}
	return full, ""
}

// resolveName matches a free-text name case-insensitively after trimming.
// Exact match only; an unresolved name yields an empty id and the row is
// submitted without the reference.
func matchName(value, candidate string) bool {
	return strings.EqualFold(strings.TrimSpace(value), strings.TrimSpace(candidate)) && strings.TrimSpace(value) != ""
}

func (r References) departmentID(name string) string {
	for _, dep := range r.Departments {
		if matchName(name, dep.Name) {
			return dep.ID
		}
	}
	return ""
}

func (r References) shiftID(name string) string {
	for _, shift := range r.Shifts {
		if matchName(name, shift.Name) {
			return shift.ID
		}
	}
	return ""
}

func (r References) managerID(name string) string {
	for _, manager := range r.Managers {
		if matchName(name, manager.User.FullName()) {
			return manager.ID
		}
	}
	return ""
}

// primaryEmail picks the dedup key: official email first, personal as the
// fallback.
func primaryEmail(row Row) string {
	for _, key := range []string{"official email", "email", "personal email"} {
		if value := strings.ToLower(strings.TrimSpace(row[key])); value != "" {
			return value
		}
	}
	return ""
}

// BuildBatch turns parsed rows into creation payloads. Rows without a
// primary email, and rows whose email already appeared in the batch, are
// dropped silently from the output but counted for the caller.
func BuildBatch(rows []Row, refs References) BuildResult {
	result := BuildResult{}
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		email := primaryEmail(row)
		if email == "" {
			result.Dropped++
			continue
		}
		if _, duplicate := seen[email]; duplicate {
			result.Dropped++
			continue
		}
		seen[email] = struct{}{}

		first, last := SplitName(row["full name"])
		if first == "" {
			first = strings.TrimSpace(row["first name"])
			last = strings.TrimSpace(row["last name"])
		}

		payload := upstream.EmployeePayload{
			Email:     email,
			FirstName: first,
			LastName:  last,
			Phone:     strings.TrimSpace(row["phone"]),
			PersonalDetails: directory.PersonalDetails{
				PersonalEmail: strings.ToLower(strings.TrimSpace(row["personal email"])),
			},
			EmploymentDetails: directory.EmploymentDetails{
				Designation:   strings.TrimSpace(row["designation"]),
				DepartmentID:  refs.departmentID(row["department"]),
				ShiftID:       refs.shiftID(row["shift"]),
				ReportingToID: refs.managerID(row["reporting to"]),
				Status:        directory.StatusActive,
			},
		}
		result.Batch = append(result.Batch, payload)
	}
	return result
}

// Summary is the aggregate outcome surfaced to the user: one success or
// failure message for the whole upload, never per-row noise.
type Summary struct {
	Parsed    int `json:"parsed"`
	Skipped   int `json:"skipped"`
	Dropped   int `json:"dropped"`
	Submitted int `json:"submitted"`
	Created   int `json:"created"`
	Failed    int `json:"failed"`
}

// Pipeline runs a whole bulk upload: parse, resolve, dedup, submit as one
// request, then refresh the employee cache.
type Pipeline struct {
	client  *upstream.Client
	cache   *cache.Cache
	metrics *metrics.Metrics
}

func NewPipeline(client *upstream.Client, c *cache.Cache, m *metrics.Metrics) *Pipeline {
	return &Pipeline{client: client, cache: c, metrics: m}
}

func (p *Pipeline) parse(filename string, file io.Reader) ([]Row, int, error) {
	if strings.HasSuffix(strings.ToLower(filename), ".xlsx") {
		return ParseXLSX(file)
	}
	return ParseCSV(file)
}

// references reads through the cache: cached collections are used as-is,
// missing ones are fetched before any row is matched.
func (p *Pipeline) references(ctx context.Context, companyID string) (References, error) {
	refs := References{}
	var err error
	if refs.Departments, _ = p.cache.CachedDepartments(companyID); refs.Departments == nil {
		if refs.Departments, err = p.cache.FetchDepartments(ctx, companyID); err != nil {
			return refs, err
		}
	}
	if refs.Shifts, _ = p.cache.CachedShifts(companyID); refs.Shifts == nil {
		if refs.Shifts, err = p.cache.FetchShifts(ctx, companyID); err != nil {
			return refs, err
		}
	}
	if refs.Managers, _ = p.cache.CachedManagers(companyID); refs.Managers == nil {
		if refs.Managers, err = p.cache.FetchManagers(ctx, companyID); err != nil {
			return refs, err
		}
	}
	return refs, nil
}

func (p *Pipeline) Run(ctx context.Context, companyID, filename string, file io.Reader) (Summary, error) {
	rows, skipped, err := p.parse(filename, file)
	if err != nil {
		return Summary{}, err
	}
	refs, err := p.references(ctx, companyID)
	if err != nil {
		return Summary{}, err
	}

	built := BuildBatch(rows, refs)
	summary := Summary{
		Parsed:    len(rows),
		Skipped:   skipped,
		Dropped:   built.Dropped,
		Submitted: len(built.Batch),
	}
	p.metrics.ImportRows.WithLabelValues("skipped").Add(float64(skipped))
	p.metrics.ImportRows.WithLabelValues("dropped").Add(float64(built.Dropped))
	if len(built.Batch) == 0 {
		return summary, ErrEmptyBatch
	}

	result, err := p.client.BulkCreateEmployees(ctx, companyID, built.Batch, uuid.NewString())
	if err != nil {
		return summary, err
	}
	summary.Created = result.Created
	summary.Failed = result.Failed
	p.metrics.ImportRows.WithLabelValues("submitted").Add(float64(len(built.Batch)))

	// Created rows stay committed even when some rows failed, so the list
	// must be refreshed either way.
	query, ok := p.cache.LastEmployeeQuery(companyID)
	if !ok {
		query = upstream.EmployeeQuery{Page: 1, Limit: 10}
	}
	p.cache.InvalidateEmployees(companyID)
	if _, err := p.cache.FetchEmployees(ctx, companyID, query); err != nil {
		return summary, err
	}
	return summary, nil
}
