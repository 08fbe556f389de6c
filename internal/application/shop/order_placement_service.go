package shop

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rationshop/backend/internal/domain/rationing"
	"github.com/rationshop/backend/internal/domain/shared"
	"github.com/rationshop/backend/internal/domain/shop"
	"github.com/rationshop/backend/internal/infrastructure/logger"
	"github.com/rationshop/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// OrderPlacementService converts carts into orders under the global and
// per-region daily caps, and serves the user's order history.
type OrderPlacementService struct {
	carts    shop.CartRepository
	orders   shop.OrderRepository
	regions  rationing.RegionRepository
	txScope  TransactionScope
	logger   *zap.Logger
	clock    func() time.Time
	location *time.Location
	metrics  *telemetry.RationingMetrics
}

// NewOrderPlacementService creates a new OrderPlacementService
func NewOrderPlacementService(
	carts shop.CartRepository,
	orders shop.OrderRepository,
	regions rationing.RegionRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *OrderPlacementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderPlacementService{
		carts:    carts,
		orders:   orders,
		regions:  regions,
		txScope:  txScope,
		logger:   logger,
		clock:    time.Now,
		location: time.UTC,
	}
}

// SetClock replaces the time source used to pick the sale day
func (s *OrderPlacementService) SetClock(clock func() time.Time) {
	s.clock = clock
}

// SetLocation sets the time zone whose calendar day the caps reset on
func (s *OrderPlacementService) SetLocation(loc *time.Location) {
	if loc != nil {
		s.location = loc
	}
}

// SetRationingMetrics sets the metrics recorder (optional)
func (s *OrderPlacementService) SetRationingMetrics(m *telemetry.RationingMetrics) {
	s.metrics = m
}

// Today returns the sale day the caps currently apply to
func (s *OrderPlacementService) Today() rationing.Day {
	return rationing.DayOf(s.clock().In(s.location))
}

// PlaceOrder converts the user's cart into an order for the named region.
// Either the order is committed with the cart closed and an OrderPlaced event
// in the outbox, or nothing is written and the cart stays open.
func (s *OrderPlacementService) PlaceOrder(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*OrderResult, error) {
	start := time.Now()
	day := s.Today()

	ctx, span := telemetry.StartServiceSpan(ctx, "order", "place",
		telemetry.WithAttribute(telemetry.SpanAttrUserID, userID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrCartID, req.CartID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrRegion, req.RegionName),
		telemetry.WithAttribute(telemetry.SpanAttrSaleDay, day.String()),
	)
	defer span.End()

	order, err := s.placeOrder(ctx, userID, req, day)
	s.observe(ctx, req, order, err, time.Since(start))
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrOrderID, order.ID.String(),
		telemetry.SpanAttrItemCount, order.ItemCount(),
	)
	return ToOrderResult(order), nil
}

func (s *OrderPlacementService) placeOrder(ctx context.Context, userID uuid.UUID, req CreateOrderRequest, day rationing.Day) (*shop.Order, error) {
	cart, err := s.carts.FindByIDForUser(ctx, userID, req.CartID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, rationing.ErrCartMismatch
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}

	region, err := s.regions.FindByName(ctx, req.RegionName)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, rationing.ErrRegionNotFound
		}
		return nil, fmt.Errorf("load region: %w", err)
	}

	if cart.RegionID != region.ID {
		return nil, rationing.ErrRegionMismatch
	}
	if !cart.IsOpen() {
		return nil, shop.ErrCartClosed
	}
	if cart.ItemCount() == 0 {
		return nil, shop.ErrCartEmpty
	}

	var order *shop.Order
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		lockStart := time.Now()
		if err := repos.DayLock().Acquire(ctx, day); err != nil {
			return err
		}
		lockWait := time.Since(lockStart)
		telemetry.AddEvent(telemetry.SpanFromContext(ctx), "sale_day_locked",
			telemetry.SpanAttrSaleDay, day.String(),
			"wait_ms", lockWait.Milliseconds(),
		)
		if s.metrics != nil {
			s.metrics.RecordLockWait(ctx, lockWait)
		}

		// Another request may have closed the cart while this one waited on the lock.
		locked, err := repos.Carts().FindByIDForUser(ctx, userID, cart.ID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return rationing.ErrCartMismatch
			}
			return fmt.Errorf("reload cart: %w", err)
		}

		order, err = shop.PlaceOrder(locked, region, day)
		if err != nil {
			return err
		}
		if err := repos.Orders().Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		if err := s.checkGlobalLimit(ctx, repos, day); err != nil {
			return err
		}
		if err := s.checkRegionLimit(ctx, repos, region, day); err != nil {
			return err
		}

		if err := locked.Close(); err != nil {
			return shop.ErrCartClosed
		}
		// Fails with ErrConcurrencyConflict when items were added after the reload.
		if err := repos.Carts().UpdateStatus(ctx, locked); err != nil {
			if errors.Is(err, shared.ErrConcurrencyConflict) {
				return err
			}
			return fmt.Errorf("close cart: %w", err)
		}

		if err := repos.Events().SaveEvents(ctx, order.GetDomainEvents()...); err != nil {
			return fmt.Errorf("save order events: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.ClearDomainEvents()
	return order, nil
}

// checkGlobalLimit counts today's units, including the order just written
func (s *OrderPlacementService) checkGlobalLimit(ctx context.Context, repos TransactionalRepositories, day rationing.Day) error {
	usage, err := repos.Usage().GlobalUsage(ctx, day)
	if err != nil {
		return fmt.Errorf("count global usage: %w", err)
	}
	telemetry.SetAttribute(telemetry.SpanFromContext(ctx), telemetry.SpanAttrGlobalUsage, usage)

	limit, err := repos.GlobalLimits().Current(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return rationing.ErrGlobalLimitNotSet
		}
		return fmt.Errorf("load global limit: %w", err)
	}
	return limit.CheckUsage(usage)
}

// checkRegionLimit applies the region's policy. Unlimited and closed regions
// are decided without counting.
func (s *OrderPlacementService) checkRegionLimit(ctx context.Context, repos TransactionalRepositories, region *rationing.Region, day rationing.Day) error {
	var usage int64
	if region.RequiresUsageCount() {
		var err error
		usage, err = repos.Usage().RegionUsage(ctx, region.ID, day)
		if err != nil {
			return fmt.Errorf("count region usage: %w", err)
		}
		telemetry.SetAttribute(telemetry.SpanFromContext(ctx), telemetry.SpanAttrRegionUsage, usage)
	}
	return region.CheckUsage(usage)
}

func (s *OrderPlacementService) observe(ctx context.Context, req CreateOrderRequest, order *shop.Order, err error, elapsed time.Duration) {
	log := logger.WithTraceContext(ctx, s.logger).With(
		zap.String("cart_id", req.CartID.String()),
		zap.String("region", req.RegionName),
	)
	if requestID := logger.GetRequestID(ctx); requestID != "" {
		log = log.With(zap.String("request_id", requestID))
	}

	outcome := telemetry.OutcomePlaced
	switch {
	case err == nil:
		log.Info("order placed",
			zap.String("order_id", order.ID.String()),
			zap.String("sale_day", order.SaleDay.String()),
			zap.Int("items", order.ItemCount()),
		)
		if s.metrics != nil {
			s.metrics.RecordPlaced(ctx, order.RegionName, order.ItemCount())
		}
	case isRejection(err):
		outcome = telemetry.OutcomeRejected
		kind := rejectionKind(err)
		log.Info("order rejected", zap.String("kind", kind), zap.String("reason", err.Error()))
		telemetry.SetAttribute(telemetry.SpanFromContext(ctx), telemetry.SpanAttrRejectionKind, kind)
		if s.metrics != nil {
			s.metrics.RecordRejected(ctx, kind, req.RegionName)
		}
	default:
		outcome = telemetry.OutcomeError
		log.Error("order placement failed", zap.Error(err))
	}

	if s.metrics != nil {
		s.metrics.RecordPlacementDuration(ctx, elapsed, outcome)
	}
}

// isRejection reports whether err is a business refusal rather than a failure
func isRejection(err error) bool {
	var domainErr *shared.DomainError
	return errors.As(err, &domainErr)
}

func rejectionKind(err error) string {
	if kind, ok := rationing.KindOf(err); ok {
		return string(kind)
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return "unknown"
}

// GetOrder returns one of the user's orders
func (s *OrderPlacementService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orders.FindByIDForUser(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// ListOrders returns a page of the user's orders
func (s *OrderPlacementService) ListOrders(ctx context.Context, userID uuid.UUID, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := toDomainFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, "")
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.SaleDay != "" {
		day, err := rationing.ParseDay(filter.SaleDay)
		if err != nil {
			return nil, 0, shared.NewDomainError("INVALID_SALE_DAY", "Sale day must be YYYY-MM-DD")
		}
		domainFilter.Filters["sale_day"] = day
	}

	orders, err := s.orders.FindAllForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orders.CountForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses, total, nil
}

// DeleteOrder removes one of the user's orders. Its units stop counting
// towards the caps of its sale day.
func (s *OrderPlacementService) DeleteOrder(ctx context.Context, userID, orderID uuid.UUID) error {
	return s.orders.DeleteForUser(ctx, userID, orderID)
}

// toDomainFilter applies list defaults
func toDomainFilter(page, pageSize int, orderBy, orderDir, search string) shared.Filter {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	if orderBy != "" {
		filter.OrderBy = orderBy
	}
	if orderDir != "" {
		filter.OrderDir = orderDir
	}
	filter.Search = search
	return filter
}
