package services

import (
	"context"
	"errors"

	"invoices-dashboard/models"
)

type EventPublisher interface {
	Publish(ctx context.Context, event models.InvoiceEvent) error
}

// Publishers sends each event to every publisher in turn and joins their errors.
type Publishers []EventPublisher

func (ps Publishers) Publish(ctx context.Context, event models.InvoiceEvent) error {
	var errs []error
	for _, p := range ps {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
