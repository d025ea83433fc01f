package usecase

import (
	"context"
	"log/slog"

	"recoil-backend/internal/domain/order"
	"recoil-backend/internal/infra"
	"recoil-backend/internal/pkg/errs"
	"recoil-backend/internal/usecase/readmodel"

	"github.com/google/uuid"
)

var (
	ErrNotOrderOwner            = errs.New("not the order owner")
	ErrInvalidTransition        = errs.New("invalid status transition")
	ErrStatusConflict           = errs.New("order status changed concurrently")
	ErrCancellationDeleteFailed = errs.New("failed to delete order after cancellation approval")
)

type OrderUseCase interface {
	GetOrder(ctx context.Context, id uuid.UUID) (*readmodel.OrderRM, error)
	GetUserOrders(ctx context.Context, userID uuid.UUID) ([]*readmodel.OrderRM, error)
	ListOrders(ctx context.Context) ([]*readmodel.OrderRM, error)

	// UpdateStatus is the operator-driven soft transition, including
	// direct cancellation of a still-active order.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, next order.Status) (*readmodel.OrderRM, error)

	// RequestCancellation opens the two-phase cancellation flow; only the
	// order owner may call it, and only while Processing or Shipped.
	RequestCancellation(ctx context.Context, orderID, requesterID uuid.UUID) error

	// ApproveCancellation notifies the customer and then hard-deletes the
	// order and its items. Customer-approved cancellation removes the
	// record; this asymmetry with UpdateStatus(Cancelled) is deliberate.
	ApproveCancellation(ctx context.Context, orderID uuid.UUID) error
}

type orderUseCaseImpl struct {
	orderRepo  OrderRepository
	dispatcher Dispatcher
}

func NewOrderUseCase(orderRepo OrderRepository, dispatcher Dispatcher) OrderUseCase {
	return &orderUseCaseImpl{
		orderRepo:  orderRepo,
		dispatcher: dispatcher,
	}
}

func (u *orderUseCaseImpl) GetOrder(ctx context.Context, id uuid.UUID) (*readmodel.OrderRM, error) {
	rm, err := u.orderRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return rm, nil
}

func (u *orderUseCaseImpl) GetUserOrders(ctx context.Context, userID uuid.UUID) ([]*readmodel.OrderRM, error) {
	orders, err := u.orderRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return orders, nil
}

func (u *orderUseCaseImpl) ListOrders(ctx context.Context) ([]*readmodel.OrderRM, error) {
	orders, err := u.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return orders, nil
}

func (u *orderUseCaseImpl) UpdateStatus(ctx context.Context, orderID uuid.UUID, next order.Status) (*readmodel.OrderRM, error) {
	if !next.IsValid() || next == order.StatusCancellationRequested {
		// Entering CancellationRequested is owner-driven only.
		return nil, ErrInvalidTransition
	}

	current, err := u.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransitionTo(next) {
		return nil, ErrInvalidTransition
	}

	// Conditional write: reject if another operator moved the order after
	// our read.
	if err := u.orderRepo.UpdateStatus(ctx, orderID, current.Status, next); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, ErrStatusConflict
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	current.Status = next
	if dispatchErr := u.dispatcher.Dispatch(ctx, Event{Kind: EventOrderStatusChanged, Order: current, NewStatus: next}); dispatchErr != nil {
		slog.Warn("status change notification failed", "order_id", orderID, "status", next, "error", dispatchErr)
	}

	return current, nil
}

func (u *orderUseCaseImpl) RequestCancellation(ctx context.Context, orderID, requesterID uuid.UUID) error {
	rm, err := u.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	if rm.UserID == nil || *rm.UserID != requesterID {
		return ErrNotOrderOwner
	}

	if !rm.Status.CanRequestCancellation() {
		return ErrInvalidTransition
	}

	if err := u.orderRepo.UpdateStatus(ctx, orderID, rm.Status, order.StatusCancellationRequested); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return ErrStatusConflict
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	rm.Status = order.StatusCancellationRequested
	if dispatchErr := u.dispatcher.Dispatch(ctx, Event{Kind: EventCancellationRequested, Order: rm}); dispatchErr != nil {
		slog.Warn("cancellation request notification failed", "order_id", orderID, "error", dispatchErr)
	}

	return nil
}

func (u *orderUseCaseImpl) ApproveCancellation(ctx context.Context, orderID uuid.UUID) error {
	rm, err := u.GetOrder(ctx, orderID)
	if err != nil {
		return err
	}

	if rm.Status != order.StatusCancellationRequested {
		return ErrInvalidTransition
	}

	// Notify before deleting so the message renders from a live snapshot.
	// A failed send does not stop the approval.
	if dispatchErr := u.dispatcher.Dispatch(ctx, Event{Kind: EventCancellationApproved, Order: rm}); dispatchErr != nil {
		slog.Warn("cancellation approval notification failed", "order_id", orderID, "error", dispatchErr)
	}

	if err := u.orderRepo.DeleteWithStatus(ctx, orderID, order.StatusCancellationRequested); err != nil {
		// The customer has already been told the order was cancelled;
		// any delete that did not land now needs operator attention.
		slog.Error("order delete failed after cancellation email was sent", "order_id", orderID, "error", err)
		if infra.IsKind(err, infra.KindConflict) {
			return ErrStatusConflict
		}
		return errs.Mark(err, ErrCancellationDeleteFailed)
	}

	return nil
}
