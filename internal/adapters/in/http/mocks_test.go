package http_test

import (
	"context"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/model/inventory"

	"github.com/stretchr/testify/mock"
)

type MockOrderRegistrar struct{ mock.Mock }

func (m *MockOrderRegistrar) Handle(ctx context.Context, cmd commands.CreateOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockDispatchCreator struct{ mock.Mock }

func (m *MockDispatchCreator) Handle(ctx context.Context, cmd commands.CreateDispatchCommand) (*dispatch.Note, error) {
	args := m.Called(ctx, cmd)
	note, _ := args.Get(0).(*dispatch.Note)
	return note, args.Error(1)
}

type MockDispatchTransitioner struct{ mock.Mock }

func (m *MockDispatchTransitioner) Handle(ctx context.Context, cmd commands.TransitionDispatchCommand) (*dispatch.Note, error) {
	args := m.Called(ctx, cmd)
	note, _ := args.Get(0).(*dispatch.Note)
	return note, args.Error(1)
}

type MockRemainderDispatcher struct{ mock.Mock }

func (m *MockRemainderDispatcher) Handle(ctx context.Context, cmd commands.DispatchRemainingCommand) (*dispatch.Note, error) {
	args := m.Called(ctx, cmd)
	note, _ := args.Get(0).(*dispatch.Note)
	return note, args.Error(1)
}

type MockStockReceiver struct{ mock.Mock }

func (m *MockStockReceiver) Handle(ctx context.Context, cmd commands.ReceiveStockCommand) (*inventory.Stock, error) {
	args := m.Called(ctx, cmd)
	stock, _ := args.Get(0).(*inventory.Stock)
	return stock, args.Error(1)
}

type MockSummaryReader struct{ mock.Mock }

func (m *MockSummaryReader) Handle(
	ctx context.Context,
	q queries.GetDispatchSummaryQuery,
) (queries.GetDispatchSummaryQueryResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(queries.GetDispatchSummaryQueryResponse), args.Error(1)
}

type MockFulfillmentReader struct{ mock.Mock }

func (m *MockFulfillmentReader) Handle(
	ctx context.Context,
	q queries.GetOrderFulfillmentQuery,
) (queries.GetOrderFulfillmentQueryResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(queries.GetOrderFulfillmentQueryResponse), args.Error(1)
}

type MockDispatchNoteReader struct{ mock.Mock }

func (m *MockDispatchNoteReader) Handle(
	ctx context.Context,
	q queries.GetDispatchNoteQuery,
) (queries.GetDispatchNoteQueryResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(queries.GetDispatchNoteQueryResponse), args.Error(1)
}
