package forms

import (
	"context"

	"hrconsole/internal/domain/cache"
	"hrconsole/internal/domain/directory"
	"hrconsole/internal/upstream"
)

// Shifts is the mutation controller for the shift collection.
type Shifts struct {
	client *upstream.Client
	cache  *cache.Cache
}

func NewShifts(client *upstream.Client, c *cache.Cache) *Shifts {
	return &Shifts{client: client, cache: c}
}

func (f *Shifts) Create(ctx context.Context, companyID string, payload upstream.ShiftPayload) (directory.Shift, error) {
	if err := checkRequired(payload); err != nil {
		return directory.Shift{}, err
	}
	shift, err := f.client.CreateShift(ctx, companyID, payload)
	if err != nil {
		return directory.Shift{}, err
	}
	f.cache.InvalidateShifts(companyID)
	if _, err := f.cache.FetchShifts(ctx, companyID); err != nil {
		return directory.Shift{}, err
	}
	return shift, nil
}

func (f *Shifts) Update(ctx context.Context, companyID, shiftID string, payload upstream.ShiftPayload) (directory.Shift, error) {
	if err := checkRequired(payload); err != nil {
		return directory.Shift{}, err
	}
	shift, err := f.client.UpdateShift(ctx, companyID, shiftID, payload)
	if err != nil {
		return directory.Shift{}, err
	}
	f.cache.InvalidateShifts(companyID)
	if _, err := f.cache.FetchShifts(ctx, companyID); err != nil {
		return directory.Shift{}, err
	}
	return shift, nil
}

func (f *Shifts) Delete(ctx context.Context, companyID, shiftID string) error {
	if err := f.client.DeleteShift(ctx, companyID, shiftID); err != nil {
		return err
	}
	f.cache.InvalidateShifts(companyID)
	_, err := f.cache.FetchShifts(ctx, companyID)
	return err
}
