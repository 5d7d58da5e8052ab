//go:build wireinject
// +build wireinject

package order

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/shop-tracker/internal/ledger"
	"github.com/tair/shop-tracker/internal/order/delivery/http"
	"github.com/tair/shop-tracker/internal/order/domain"
	"github.com/tair/shop-tracker/internal/order/repository"
	"github.com/tair/shop-tracker/internal/order/usecase/command"
	"github.com/tair/shop-tracker/internal/order/usecase/query"
	productdomain "github.com/tair/shop-tracker/internal/product/domain"
	productrepo "github.com/tair/shop-tracker/internal/product/repository"
	"github.com/tair/shop-tracker/internal/stats"
)

// ProvideOrderRepository provides the order repository with tracing
func ProvideOrderRepository(db *gorm.DB) domain.OrderRepository {
	return repository.NewGormOrderRepositoryWithTracing(db)
}

// ProvideProductRepository provides the product repository the order side
// reads stock from
func ProvideProductRepository(db *gorm.DB) productdomain.ProductRepository {
	return productrepo.NewGormProductRepositoryWithTracing(db)
}

// ProvideLedger provides the stock ledger
func ProvideLedger(products productdomain.ProductRepository) *ledger.Ledger {
	return ledger.New(products)
}

// ProvideAggregator provides the statistics aggregator
func ProvideAggregator() *stats.Aggregator {
	return stats.NewAggregator()
}

// Command Handlers Providers
func ProvideCreateOrderHandler(orders domain.OrderRepository, products productdomain.ProductRepository, l *ledger.Ledger) *command.CreateOrderHandler {
	return command.NewCreateOrderHandler(orders, products, l)
}

func ProvideUpdateOrderHandler(orders domain.OrderRepository, l *ledger.Ledger) *command.UpdateOrderHandler {
	return command.NewUpdateOrderHandler(orders, l)
}

func ProvideDeleteOrderHandler(orders domain.OrderRepository, l *ledger.Ledger) *command.DeleteOrderHandler {
	return command.NewDeleteOrderHandler(orders, l)
}

func ProvideToggleStatusHandler(orders domain.OrderRepository) *command.ToggleStatusHandler {
	return command.NewToggleStatusHandler(orders)
}

// Query Handlers Providers
func ProvideListOrdersHandler(repo domain.OrderRepository) *query.ListOrdersHandler {
	return query.NewListOrdersHandler(repo)
}

func ProvideGetStatsHandler(repo domain.OrderRepository, aggregator *stats.Aggregator) *query.GetStatsHandler {
	return query.NewGetStatsHandler(repo, aggregator)
}

func ProvideGetChartHandler(repo domain.OrderRepository, aggregator *stats.Aggregator) *query.GetChartHandler {
	return query.NewGetChartHandler(repo, aggregator)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideOrderRepository,
	ProvideProductRepository,
	ProvideLedger,
	ProvideAggregator,
)

var CommandHandlerSet = wire.NewSet(
	ProvideCreateOrderHandler,
	ProvideUpdateOrderHandler,
	ProvideDeleteOrderHandler,
	ProvideToggleStatusHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideListOrdersHandler,
	ProvideGetStatsHandler,
	ProvideGetChartHandler,
)

// InitializeHTTPHandler initializes HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.OrderHandler, error) {
	wire.Build(
		RepositorySet,
		CommandHandlerSet,
		QueryHandlerSet,
		http.NewOrderHandler,
	)
	return nil, nil
}
