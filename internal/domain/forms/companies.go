package forms

import (
	"context"

	"hrconsole/internal/domain/cache"
	"hrconsole/internal/domain/directory"
	"hrconsole/internal/upstream"
)

// Companies is the mutation controller for the company registry
// (superadmin surface).
type Companies struct {
	client *upstream.Client
	cache  *cache.Cache
}

func NewCompanies(client *upstream.Client, c *cache.Cache) *Companies {
	return &Companies{client: client, cache: c}
}

func (f *Companies) Register(ctx context.Context, payload upstream.CompanyPayload) (directory.Company, error) {
	if err := checkRequired(payload); err != nil {
		return directory.Company{}, err
	}
	company, err := f.client.RegisterCompany(ctx, payload)
	if err != nil {
		return directory.Company{}, err
	}
	if err := f.refresh(ctx); err != nil {
		return directory.Company{}, err
	}
	return company, nil
}

func (f *Companies) Update(ctx context.Context, companyID string, payload upstream.CompanyPayload) (directory.Company, error) {
	if err := checkRequired(payload); err != nil {
		return directory.Company{}, err
	}
	company, err := f.client.UpdateCompany(ctx, companyID, payload)
	if err != nil {
		return directory.Company{}, err
	}
	if err := f.refresh(ctx); err != nil {
		return directory.Company{}, err
	}
	return company, nil
}

func (f *Companies) UpdatePermissions(ctx context.Context, companyID string, permissions []string) error {
	if err := f.client.UpdateCompanyPermissions(ctx, companyID, permissions); err != nil {
		return err
	}
	return f.refresh(ctx)
}

func (f *Companies) UpdateCustomFields(ctx context.Context, companyID string, fields []directory.CustomFieldDef) error {
	for _, field := range fields {
		if field.Label == "" || field.Name == "" {
			return &ValidationError{Issues: []Issue{{Field: "customFields", Reason: "every field needs a label and a name"}}}
		}
	}
	if err := f.client.UpdateCompanyCustomFields(ctx, companyID, fields); err != nil {
		return err
	}
	return f.refresh(ctx)
}

func (f *Companies) refresh(ctx context.Context) error {
	f.cache.InvalidateCompanies()
	_, err := f.cache.FetchCompanies(ctx)
	return err
}
