package commands_test

import (
	"context"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

type MockStockRepository struct{ mock.Mock }

func (m *MockStockRepository) Add(ctx context.Context, s *inventory.Stock) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStockRepository) Update(ctx context.Context, s *inventory.Stock) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStockRepository) Get(ctx context.Context, id kernel.UUID) (*inventory.Stock, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*inventory.Stock)
	return s, args.Error(1)
}

func (m *MockStockRepository) GetForUpdate(ctx context.Context, ids ...kernel.UUID) ([]*inventory.Stock, error) {
	args := m.Called(ctx, ids)
	s, _ := args.Get(0).([]*inventory.Stock)
	return s, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockStockUoW struct{ mock.Mock }

func (m *MockStockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockStockUoW) StockRepository() ports.StockRepository {
	args := m.Called()
	return args.Get(0).(ports.StockRepository)
}

type MockStockUoWFactory struct{ mock.Mock }

func (m *MockStockUoWFactory) Create() commands.StockUoW {
	args := m.Called()
	return args.Get(0).(commands.StockUoW)
}

// MockLedgerUoW only mocks the lifecycle; repository access goes to the
// embedded in-memory unit of work.
type MockLedgerUoW struct {
	mock.Mock
	repos *memoryUoW
}

func (m *MockLedgerUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLedgerUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLedgerUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockLedgerUoW) OrderRepository() ports.OrderRepository {
	return m.repos.OrderRepository()
}

func (m *MockLedgerUoW) StockRepository() ports.StockRepository {
	return m.repos.StockRepository()
}

func (m *MockLedgerUoW) DispatchNoteRepository() ports.DispatchNoteRepository {
	return m.repos.DispatchNoteRepository()
}

func (m *MockLedgerUoW) DispatchSequence() ports.DispatchSequence {
	return m.repos.DispatchSequence()
}

type MockLedgerUoWFactory struct{ mock.Mock }

func (m *MockLedgerUoWFactory) Create() commands.LedgerUoW {
	args := m.Called()
	return args.Get(0).(commands.LedgerUoW)
}

type MockSequencePruner struct{ mock.Mock }

func (m *MockSequencePruner) PruneBefore(ctx context.Context, window string) (int64, error) {
	args := m.Called(ctx, window)
	return args.Get(0).(int64), args.Error(1)
}

