package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tair/shop-tracker/internal/order/domain"
)

var tracer = otel.Tracer("order-repository")

// GormOrderRepositoryWithTracing wraps GormOrderRepository with tracing
type GormOrderRepositoryWithTracing struct {
	*GormOrderRepository
}

// NewGormOrderRepositoryWithTracing creates a new repository with tracing
func NewGormOrderRepositoryWithTracing(db *gorm.DB) *GormOrderRepositoryWithTracing {
	return &GormOrderRepositoryWithTracing{
		GormOrderRepository: NewGormOrderRepository(db),
	}
}

// CreateWithContext persists an order under a span
func (r *GormOrderRepositoryWithTracing) CreateWithContext(ctx context.Context, order *domain.Order) error {
	_, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.Int64("order.owner_id", int64(order.OwnerID)),
			attribute.Int("order.item_count", len(order.Items)),
			attribute.Float64("order.total_revenue", order.TotalRevenue),
			attribute.String("order.status", order.Status),
		),
	)
	defer span.End()

	err := r.GormOrderRepository.Create(order)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.Int("order.id", int(order.ID)))
	return nil
}

// FindAllWithContext lists orders under a span
func (r *GormOrderRepositoryWithTracing) FindAllWithContext(ctx context.Context, ownerID uint) ([]domain.Order, error) {
	_, span := tracer.Start(ctx, "repository.FindAll",
		trace.WithAttributes(
			attribute.Int64("order.owner_id", int64(ownerID)),
		),
	)
	defer span.End()

	orders, err := r.GormOrderRepository.FindAll(ownerID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.Int("order.count", len(orders)))
	return orders, nil
}

// DeleteWithContext deletes an order under a span
func (r *GormOrderRepositoryWithTracing) DeleteWithContext(ctx context.Context, ownerID, id uint) error {
	_, span := tracer.Start(ctx, "repository.Delete",
		trace.WithAttributes(
			attribute.Int64("order.owner_id", int64(ownerID)),
			attribute.Int64("order.id", int64(id)),
		),
	)
	defer span.End()

	err := r.GormOrderRepository.Delete(ownerID, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
