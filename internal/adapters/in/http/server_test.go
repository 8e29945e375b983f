package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/generated/servers"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	echo        *echo.Echo
	orders      *MockOrderRegistrar
	dispatches  *MockDispatchCreator
	transitions *MockDispatchTransitioner
	remaining   *MockRemainderDispatcher
	stock       *MockStockReceiver
	summary     *MockSummaryReader
	fulfillment *MockFulfillmentReader
	notes       *MockDispatchNoteReader
}

func newFixture(t *testing.T, validate bool) *fixture {
	t.Helper()

	f := &fixture{
		echo:        echo.New(),
		orders:      new(MockOrderRegistrar),
		dispatches:  new(MockDispatchCreator),
		transitions: new(MockDispatchTransitioner),
		remaining:   new(MockRemainderDispatcher),
		stock:       new(MockStockReceiver),
		summary:     new(MockSummaryReader),
		fulfillment: new(MockFulfillmentReader),
		notes:       new(MockDispatchNoteReader),
	}

	if validate {
		doc, err := servers.GetSwagger()
		require.NoError(t, err)
		mw, err := httpin.RequestValidator(doc)
		require.NoError(t, err)
		f.echo.Use(mw)
	}

	srv := httpin.NewServer(httpin.Handlers{
		CreateOrder:        f.orders,
		CreateDispatch:     f.dispatches,
		TransitionDispatch: f.transitions,
		DispatchRemaining:  f.remaining,
		ReceiveStock:       f.stock,
		Summary:            f.summary,
		Fulfillment:        f.fulfillment,
		DispatchNote:       f.notes,
	}, nil)
	servers.RegisterHandlersWithBaseURL(f.echo, srv, servers.BaseURL)
	f.echo.GET("/health", func(c echo.Context) error { return c.String(http.StatusOK, "healthy") })

	t.Cleanup(func() {
		f.orders.AssertExpectations(t)
		f.dispatches.AssertExpectations(t)
		f.transitions.AssertExpectations(t)
		f.remaining.AssertExpectations(t)
		f.stock.AssertExpectations(t)
		f.summary.AssertExpectations(t)
		f.fulfillment.AssertExpectations(t)
		f.notes.AssertExpectations(t)
	})
	return f
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func draftNote(t *testing.T, orderID kernel.UUID) *dispatch.Note {
	t.Helper()
	day := time.Date(2024, 3, 12, 9, 0, 0, 0, time.UTC)
	number, err := dispatch.NewNumber("DN", day, 1)
	require.NoError(t, err)
	entry, err := dispatch.NewEntry(kernel.NewUUID(), kernel.NewUUID(), 40)
	require.NoError(t, err)
	note, err := dispatch.NewNote(dispatch.NewNoteParams{
		ID:      kernel.NewUUID(),
		OrderID: orderID,
		Number:  number,
		Entries: []dispatch.Entry{entry},
	}, day)
	require.NoError(t, err)
	return note
}

func TestCreateOrder(t *testing.T) {
	t.Run("registers the order and echoes its id", func(t *testing.T) {
		f := newFixture(t, false)
		orderID := kernel.NewUUID()
		catalogID := kernel.NewUUID()

		f.orders.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateOrderCommand) bool {
			lines := cmd.Lines()
			return cmd.OrderID().IsEqual(orderID) &&
				cmd.Number() == "PO-1" &&
				len(lines) == 1 &&
				lines[0].CatalogItemID.IsEqual(catalogID) &&
				lines[0].Quantity == 150 &&
				lines[0].UnitPrice.Equal(decimal.RequireFromString("9.00"))
		})).Return(nil).Once()

		body := `{"id":"` + orderID.String() + `","number":"PO-1","lines":[` +
			`{"catalogItemId":"` + catalogID.String() + `","quantity":150,"unitPrice":"9.00"}]}`
		rec := f.do(http.MethodPost, "/api/v1/orders", body)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, orderID.String(), decode[servers.CreatedOrder](t, rec).Id.String())
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		f := newFixture(t, false)

		rec := f.do(http.MethodPost, "/api/v1/orders", `{"number":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unparsable unit price is unprocessable", func(t *testing.T) {
		f := newFixture(t, false)

		body := `{"number":"PO-1","lines":[{"catalogItemId":"` + kernel.NewUUID().String() +
			`","quantity":1,"unitPrice":"nine"}]}`
		rec := f.do(http.MethodPost, "/api/v1/orders", body)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("duplicate order conflicts", func(t *testing.T) {
		f := newFixture(t, false)
		f.orders.On("Handle", mock.Anything, mock.Anything).
			Return(errs.NewObjectConflictError("order", "x")).Once()

		body := `{"number":"PO-1","lines":[{"catalogItemId":"` + kernel.NewUUID().String() +
			`","quantity":1,"unitPrice":"1"}]}`
		rec := f.do(http.MethodPost, "/api/v1/orders", body)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestCreateDispatch(t *testing.T) {
	orderID := kernel.NewUUID()
	lineID := kernel.NewUUID()
	body := `{"orderId":"` + orderID.String() + `","entries":[{"lineItemId":"` + lineID.String() + `","quantity":40}]}`

	t.Run("returns the created note", func(t *testing.T) {
		f := newFixture(t, false)
		note := draftNote(t, orderID)
		f.dispatches.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateDispatchCommand) bool {
			return cmd.OrderID().IsEqual(orderID) &&
				cmd.Status() == dispatch.Draft &&
				len(cmd.Lines()) == 1 &&
				cmd.Lines()[0].Quantity == 40
		})).Return(note, nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/dispatches", body)

		require.Equal(t, http.StatusCreated, rec.Code)
		got := decode[servers.DispatchNote](t, rec)
		assert.Equal(t, "DN-20240312-0001", got.Number)
		assert.Equal(t, servers.DRAFT, got.Status)
		require.Len(t, got.Entries, 1)
		assert.Equal(t, 40, got.Entries[0].Quantity)
	})

	errorCases := []struct {
		name string
		err  error
		code int
	}{
		{"unknown order", errs.NewObjectNotFoundError("order", orderID), http.StatusNotFound},
		{"over dispatch", errs.NewQuantityExceededError(errs.ScopeLine, "l", 100, 40, 70), http.StatusUnprocessableEntity},
		{"short stock", errs.NewInsufficientStockError("c", 3, 40), http.StatusConflict},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, false)
			f.dispatches.On("Handle", mock.Anything, mock.Anything).Return(nil, tc.err).Once()

			rec := f.do(http.MethodPost, "/api/v1/dispatches", body)

			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, tc.code, decode[servers.Error](t, rec).Code)
		})
	}

	t.Run("internal errors are not leaked", func(t *testing.T) {
		f := newFixture(t, false)
		f.dispatches.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("pq: secret detail")).Once()

		rec := f.do(http.MethodPost, "/api/v1/dispatches", body)

		assert.NotContains(t, rec.Body.String(), "secret")
	})

	t.Run("delivery date on a draft is unprocessable", func(t *testing.T) {
		f := newFixture(t, false)

		rec := f.do(http.MethodPost, "/api/v1/dispatches",
			`{"orderId":"`+orderID.String()+`","status":"DRAFT","deliveryDate":"2024-03-12T10:30:00Z","entries":[{"lineItemId":"`+lineID.String()+`","quantity":1}]}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		f.dispatches.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("unknown initial status is unprocessable", func(t *testing.T) {
		f := newFixture(t, false)

		rec := f.do(http.MethodPost, "/api/v1/dispatches",
			`{"orderId":"`+orderID.String()+`","status":"LOST","entries":[{"lineItemId":"`+lineID.String()+`","quantity":1}]}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestTransitionDispatch(t *testing.T) {
	noteID := kernel.NewUUID()

	t.Run("forwards the parsed target", func(t *testing.T) {
		f := newFixture(t, false)
		note := draftNote(t, kernel.NewUUID())
		f.transitions.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.TransitionDispatchCommand) bool {
			return cmd.NoteID().IsEqual(noteID) && cmd.Target() == dispatch.Dispatched
		})).Return(note, nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/dispatches/"+noteID.String()+"/transitions", `{"status":"DISPATCHED"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("illegal transition conflicts", func(t *testing.T) {
		f := newFixture(t, false)
		f.transitions.On("Handle", mock.Anything, mock.Anything).
			Return(nil, errs.NewInvalidTransitionError(dispatch.Returned, dispatch.Delivered)).Once()

		rec := f.do(http.MethodPost, "/api/v1/dispatches/"+noteID.String()+"/transitions", `{"status":"DELIVERED"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, decode[servers.Error](t, rec).Message, "RETURNED -> DELIVERED")
	})
}

func TestDispatchRemaining(t *testing.T) {
	orderID := kernel.NewUUID()

	t.Run("fulfilled order conflicts", func(t *testing.T) {
		f := newFixture(t, false)
		f.remaining.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.DispatchRemainingCommand) bool {
			return cmd.OrderID().IsEqual(orderID)
		})).Return(nil, errs.NewAlreadyFulfilledError(orderID.String())).Once()

		rec := f.do(http.MethodPost, "/api/v1/orders/"+orderID.String()+"/dispatches/remaining", "")

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("invalid path id is a bad request", func(t *testing.T) {
		f := newFixture(t, false)

		rec := f.do(http.MethodPost, "/api/v1/orders/not-a-uuid/dispatches/remaining", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestReceiveStock(t *testing.T) {
	f := newFixture(t, false)
	catalogID := kernel.NewUUID()
	stock, err := inventory.RestoreStock(catalogID, 130)
	require.NoError(t, err)
	f.stock.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ReceiveStockCommand) bool {
		return cmd.CatalogItemID().IsEqual(catalogID) && cmd.Quantity() == 30
	})).Return(stock, nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/stock/"+catalogID.String()+"/receipts", `{"quantity":30}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 130, decode[servers.Stock](t, rec).Available)
}

func TestGetSummary(t *testing.T) {
	summary := queries.NewOrderSummary(kernel.NewUUID(), "PO-1", "OPEN", 150, decimal.RequireFromString("1350"), 40)

	t.Run("no limit reads the whole table", func(t *testing.T) {
		f := newFixture(t, false)
		f.summary.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetDispatchSummaryQuery) bool {
			return q.Limit() == 0 && q.Offset() == 0
		})).Return(queries.GetDispatchSummaryQueryResponse{Orders: []queries.OrderSummary{summary}, Total: 1}, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/summary", "")

		require.Equal(t, http.StatusOK, rec.Code)
		page := decode[servers.SummaryPage](t, rec)
		assert.Equal(t, 1, page.Total)
		require.Len(t, page.Orders, 1)
		assert.Equal(t, servers.PARTIAL, page.Orders[0].Classification)
		assert.Equal(t, "360", page.Orders[0].DispatchedValue)
		assert.Equal(t, 110, page.Orders[0].RemainingQuantity)
	})

	t.Run("paging parameters are forwarded", func(t *testing.T) {
		f := newFixture(t, false)
		f.summary.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetDispatchSummaryQuery) bool {
			return q.Limit() == 2 && q.Offset() == 4
		})).Return(queries.GetDispatchSummaryQueryResponse{Total: 3}, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/summary?limit=2&offset=4", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decode[servers.SummaryPage](t, rec).Orders)
	})

	t.Run("oversized page is unprocessable", func(t *testing.T) {
		f := newFixture(t, false)

		rec := f.do(http.MethodGet, "/api/v1/summary?limit=5000", "")

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestGetOrderFulfillment(t *testing.T) {
	f := newFixture(t, false)
	orderID := kernel.NewUUID()
	f.fulfillment.On("Handle", mock.Anything, mock.Anything).
		Return(queries.GetOrderFulfillmentQueryResponse{}, errs.NewObjectNotFoundError("order", orderID)).Once()

	rec := f.do(http.MethodGet, "/api/v1/orders/"+orderID.String()+"/fulfillment", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetDispatch(t *testing.T) {
	f := newFixture(t, false)
	noteID := kernel.NewUUID()
	dispatchedAt := time.Date(2024, 3, 12, 10, 0, 0, 0, time.UTC)
	f.notes.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetDispatchNoteQuery) bool {
		return q.NoteID().IsEqual(noteID)
	})).Return(queries.GetDispatchNoteQueryResponse{
		ID:           noteID,
		OrderID:      kernel.NewUUID(),
		Number:       "DN-20240312-0001",
		Status:       "DISPATCHED",
		DispatchDate: &dispatchedAt,
		CreatedAt:    dispatchedAt,
	}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/dispatches/"+noteID.String(), "")

	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[servers.DispatchNote](t, rec)
	assert.Equal(t, servers.DISPATCHED, got.Status)
	require.NotNil(t, got.DispatchDate)
	assert.True(t, got.DispatchDate.Equal(dispatchedAt))
	assert.Nil(t, got.DeliveryDate)
}

func TestRequestValidator(t *testing.T) {
	t.Run("schema violations are rejected before the handler", func(t *testing.T) {
		f := newFixture(t, true)

		rec := f.do(http.MethodPost, "/api/v1/dispatches",
			`{"orderId":"`+kernel.NewUUID().String()+`","entries":[{"lineItemId":"`+kernel.NewUUID().String()+`","quantity":0}]}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("quantities beyond int4 are rejected", func(t *testing.T) {
		f := newFixture(t, true)

		rec := f.do(http.MethodPost, "/api/v1/dispatches",
			`{"orderId":"`+kernel.NewUUID().String()+`","entries":[{"lineItemId":"`+kernel.NewUUID().String()+`","quantity":2147483648}]}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		rec = f.do(http.MethodPost, "/api/v1/stock/"+kernel.NewUUID().String()+"/receipts", `{"quantity":9223372036854775797}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("unparsable body is a bad request", func(t *testing.T) {
		f := newFixture(t, true)

		rec := f.do(http.MethodPost, "/api/v1/dispatches", `{"orderId":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("undocumented routes pass through", func(t *testing.T) {
		f := newFixture(t, true)

		rec := f.do(http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("valid requests reach the handler", func(t *testing.T) {
		f := newFixture(t, true)
		f.summary.On("Handle", mock.Anything, mock.Anything).
			Return(queries.GetDispatchSummaryQueryResponse{}, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/summary?limit=10", "")

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
