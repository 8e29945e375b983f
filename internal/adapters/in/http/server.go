package http

import (
	"context"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/model/inventory"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/generated/servers"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Use case ports the server drives. The concrete command and query
// handlers satisfy them.
type (
	OrderRegistrar interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) error
	}
	DispatchCreator interface {
		Handle(ctx context.Context, cmd commands.CreateDispatchCommand) (*dispatch.Note, error)
	}
	DispatchTransitioner interface {
		Handle(ctx context.Context, cmd commands.TransitionDispatchCommand) (*dispatch.Note, error)
	}
	RemainderDispatcher interface {
		Handle(ctx context.Context, cmd commands.DispatchRemainingCommand) (*dispatch.Note, error)
	}
	StockReceiver interface {
		Handle(ctx context.Context, cmd commands.ReceiveStockCommand) (*inventory.Stock, error)
	}
	SummaryReader interface {
		Handle(ctx context.Context, q queries.GetDispatchSummaryQuery) (queries.GetDispatchSummaryQueryResponse, error)
	}
	FulfillmentReader interface {
		Handle(ctx context.Context, q queries.GetOrderFulfillmentQuery) (queries.GetOrderFulfillmentQueryResponse, error)
	}
	DispatchNoteReader interface {
		Handle(ctx context.Context, q queries.GetDispatchNoteQuery) (queries.GetDispatchNoteQueryResponse, error)
	}
)

// Handlers bundles the use cases behind the API.
type Handlers struct {
	CreateOrder        OrderRegistrar
	CreateDispatch     DispatchCreator
	TransitionDispatch DispatchTransitioner
	DispatchRemaining  RemainderDispatcher
	ReceiveStock       StockReceiver
	Summary            SummaryReader
	Fulfillment        FulfillmentReader
	DispatchNote       DispatchNoteReader
}

// Server implements servers.ServerInterface on top of the ledger use cases.
type Server struct {
	h      Handlers
	logger *zap.Logger
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(h Handlers, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{h: h, logger: logger.With(zap.String("component", "http"))}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.NewOrder
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	orderID := kernel.NewUUID()
	if body.Id != nil {
		id, err := fromAPI(*body.Id)
		if err != nil {
			return s.fail(ctx, err)
		}
		orderID = id
	}

	lines := make([]commands.OrderLine, 0, len(body.Lines))
	for _, l := range body.Lines {
		line, err := orderLine(l)
		if err != nil {
			return s.fail(ctx, err)
		}
		lines = append(lines, line)
	}

	cmd, err := commands.NewCreateOrderCommand(orderID, body.Number, lines)
	if err != nil {
		return s.fail(ctx, err)
	}
	if err = s.h.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, servers.CreatedOrder{Id: orderID.Bytes()})
}

// GetOrderFulfillment handles GET /api/v1/orders/{orderId}/fulfillment.
func (s *Server) GetOrderFulfillment(ctx echo.Context, orderId servers.OrderId) error {
	id, err := fromAPI(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	q, err := queries.NewGetOrderFulfillmentQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	res, err := s.h.Fulfillment.Handle(ctx.Request().Context(), q)
	if err != nil {
		return s.fail(ctx, err)
	}

	lines := make([]servers.LineFulfillment, len(res.Lines))
	for i, l := range res.Lines {
		lines[i] = servers.LineFulfillment{
			LineItemId:         l.LineItemID.Bytes(),
			CatalogItemId:      l.CatalogItemID.Bytes(),
			OrderedQuantity:    l.OrderedQuantity,
			DispatchedQuantity: l.DispatchedQuantity,
			RemainingQuantity:  l.RemainingQuantity,
		}
	}
	return ctx.JSON(http.StatusOK, servers.OrderFulfillment{Summary: toAPISummary(res.Summary), Lines: lines})
}

// DispatchRemaining handles POST /api/v1/orders/{orderId}/dispatches/remaining.
func (s *Server) DispatchRemaining(ctx echo.Context, orderId servers.OrderId) error {
	id, err := fromAPI(orderId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewDispatchRemainingCommand(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	note, err := s.h.DispatchRemaining.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toAPINote(note))
}

// CreateDispatch handles POST /api/v1/dispatches.
func (s *Server) CreateDispatch(ctx echo.Context) error {
	var body servers.NewDispatch
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	orderID, err := fromAPI(body.OrderId)
	if err != nil {
		return s.fail(ctx, err)
	}

	lines := make([]commands.DispatchLine, 0, len(body.Entries))
	for _, e := range body.Entries {
		lineID, err := fromAPI(e.LineItemId)
		if err != nil {
			return s.fail(ctx, err)
		}
		lines = append(lines, commands.DispatchLine{LineItemID: lineID, Quantity: e.Quantity})
	}

	status := dispatch.Unknown
	if body.Status != nil {
		if status, err = dispatch.ParseStatus(string(*body.Status)); err != nil {
			return s.fail(ctx, err)
		}
	}

	cmd, err := commands.NewCreateDispatchCommand(orderID, lines, status, body.DispatchDate, body.DeliveryDate)
	if err != nil {
		return s.fail(ctx, err)
	}

	note, err := s.h.CreateDispatch.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, toAPINote(note))
}

// GetDispatch handles GET /api/v1/dispatches/{dispatchId}.
func (s *Server) GetDispatch(ctx echo.Context, dispatchId servers.DispatchId) error {
	id, err := fromAPI(dispatchId)
	if err != nil {
		return s.fail(ctx, err)
	}
	q, err := queries.NewGetDispatchNoteQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	res, err := s.h.DispatchNote.Handle(ctx.Request().Context(), q)
	if err != nil {
		return s.fail(ctx, err)
	}

	entries := make([]servers.DispatchEntry, len(res.Entries))
	for i, e := range res.Entries {
		entries[i] = servers.DispatchEntry{
			LineItemId:    e.LineItemID.Bytes(),
			CatalogItemId: e.CatalogItemID.Bytes(),
			Quantity:      e.Quantity,
		}
	}
	return ctx.JSON(http.StatusOK, servers.DispatchNote{
		Id:           res.ID.Bytes(),
		OrderId:      res.OrderID.Bytes(),
		Number:       res.Number,
		Status:       servers.DispatchStatus(res.Status),
		DispatchDate: res.DispatchDate,
		DeliveryDate: res.DeliveryDate,
		ReversedAt:   res.ReversedAt,
		CreatedAt:    res.CreatedAt,
		Entries:      entries,
	})
}

// TransitionDispatch handles POST /api/v1/dispatches/{dispatchId}/transitions.
func (s *Server) TransitionDispatch(ctx echo.Context, dispatchId servers.DispatchId) error {
	var body servers.Transition
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	id, err := fromAPI(dispatchId)
	if err != nil {
		return s.fail(ctx, err)
	}
	target, err := dispatch.ParseStatus(string(body.Status))
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewTransitionDispatchCommand(id, target)
	if err != nil {
		return s.fail(ctx, err)
	}

	note, err := s.h.TransitionDispatch.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toAPINote(note))
}

// ReceiveStock handles POST /api/v1/stock/{catalogItemId}/receipts.
func (s *Server) ReceiveStock(ctx echo.Context, catalogItemId openapi_types.UUID) error {
	var body servers.StockReceipt
	if err := ctx.Bind(&body); err != nil {
		return s.badRequest(ctx, "invalid request body")
	}

	id, err := fromAPI(catalogItemId)
	if err != nil {
		return s.fail(ctx, err)
	}
	cmd, err := commands.NewReceiveStockCommand(id, body.Quantity)
	if err != nil {
		return s.fail(ctx, err)
	}

	stock, err := s.h.ReceiveStock.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}
	return ctx.JSON(http.StatusOK, servers.Stock{
		CatalogItemId: stock.CatalogItemID().Bytes(),
		Available:     stock.Available(),
	})
}

// GetSummary handles GET /api/v1/summary. Without a limit the whole table
// is returned.
func (s *Server) GetSummary(ctx echo.Context, params servers.GetSummaryParams) error {
	var limit, offset int
	if params.Limit != nil {
		limit = *params.Limit
	}
	if params.Offset != nil {
		offset = *params.Offset
	}

	q, err := queries.NewGetDispatchSummaryQuery(limit, offset)
	if err != nil {
		return s.fail(ctx, err)
	}
	res, err := s.h.Summary.Handle(ctx.Request().Context(), q)
	if err != nil {
		return s.fail(ctx, err)
	}

	orders := make([]servers.OrderSummary, len(res.Orders))
	for i, o := range res.Orders {
		orders[i] = toAPISummary(o)
	}
	return ctx.JSON(http.StatusOK, servers.SummaryPage{Orders: orders, Total: res.Total})
}

func fromAPI(id openapi_types.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func orderLine(l servers.NewOrderLine) (commands.OrderLine, error) {
	lineID := kernel.NewUUID()
	if l.LineItemId != nil {
		id, err := fromAPI(*l.LineItemId)
		if err != nil {
			return commands.OrderLine{}, err
		}
		lineID = id
	}
	catalogID, err := fromAPI(l.CatalogItemId)
	if err != nil {
		return commands.OrderLine{}, err
	}
	price, err := decimal.NewFromString(l.UnitPrice)
	if err != nil {
		return commands.OrderLine{}, errs.NewValueIsInvalidErrorWithCause("unitPrice", err)
	}
	return commands.OrderLine{
		LineItemID:    lineID,
		CatalogItemID: catalogID,
		Quantity:      l.Quantity,
		UnitPrice:     price,
	}, nil
}

func toAPINote(note *dispatch.Note) servers.DispatchNote {
	entries := make([]servers.DispatchEntry, 0, len(note.Entries()))
	for _, e := range note.Entries() {
		entries = append(entries, servers.DispatchEntry{
			LineItemId:    e.LineItemID().Bytes(),
			CatalogItemId: e.CatalogItemID().Bytes(),
			Quantity:      e.Quantity(),
		})
	}
	return servers.DispatchNote{
		Id:           note.ID().Bytes(),
		OrderId:      note.OrderID().Bytes(),
		Number:       note.Number().String(),
		Status:       servers.DispatchStatus(note.Status().String()),
		DispatchDate: note.DispatchDate(),
		DeliveryDate: note.DeliveryDate(),
		ReversedAt:   note.ReversedAt(),
		CreatedAt:    note.CreatedAt(),
		Entries:      entries,
	}
}

func toAPISummary(o queries.OrderSummary) servers.OrderSummary {
	return servers.OrderSummary{
		OrderId:            o.OrderID.Bytes(),
		Number:             o.Number,
		Status:             o.Status,
		OrderedQuantity:    o.OrderedQuantity,
		OrderedValue:       o.OrderedValue.String(),
		DispatchedQuantity: o.DispatchedQuantity,
		DispatchedValue:    o.DispatchedValue.String(),
		RemainingQuantity:  o.RemainingQuantity,
		Classification:     servers.Classification(o.Classification),
	}
}
