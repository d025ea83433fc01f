package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"recoil-backend/internal/domain/order"
	"recoil-backend/internal/infra"
	"recoil-backend/internal/pkg/async"
	"recoil-backend/internal/pkg/clock"
	"recoil-backend/internal/pkg/errs"
	"recoil-backend/internal/usecase/readmodel"

	"github.com/google/uuid"
)

var ErrOrderNotFound = errs.New("order not found")

type EventKind string

const (
	EventOrderCreated          EventKind = "order_created"
	EventOrderStatusChanged    EventKind = "order_status_changed"
	EventCancellationRequested EventKind = "cancellation_requested"
	EventCancellationApproved  EventKind = "cancellation_approved"
)

// Event carries a full order snapshot so the rendered message never needs
// the row to still exist (the approval path deletes it right after).
type Event struct {
	Kind      EventKind
	Order     *readmodel.OrderRM
	NewStatus order.Status // set for EventOrderStatusChanged
}

// Dispatcher attempts delivery at least once. A dispatch failure is the
// caller's to log, never to propagate: the state change it announces is
// already committed.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev Event) error
}

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type NotificationJobRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) (uuid.UUID, error)
	MarkSent(ctx context.Context, jobID uuid.UUID) error
	MarkFailed(ctx context.Context, jobID uuid.UUID, lastError string) error
}

type ProfileRepository interface {
	// ListAdminEmails returns the operator inboxes; the configured
	// fallback address is used when empty.
	ListAdminEmails(ctx context.Context) ([]string, error)
}

type dispatcherImpl struct {
	jobRepo     NotificationJobRepository
	profileRepo ProfileRepository
	mailer      Mailer
	runner      async.Runner
	clock       clock.Clock
	adminEmail  string
	currency    string
}

func NewDispatcher(
	jobRepo NotificationJobRepository,
	profileRepo ProfileRepository,
	mailer Mailer,
	runner async.Runner,
	clk clock.Clock,
	adminEmail string,
	currency string,
) Dispatcher {
	return &dispatcherImpl{
		jobRepo:     jobRepo,
		profileRepo: profileRepo,
		mailer:      mailer,
		runner:      runner,
		clock:       clk,
		adminEmail:  adminEmail,
		currency:    currency,
	}
}

// Dispatch records a notification job first, then fires the actual send in
// the background. The job row is the at-least-once guarantee; the SMTP
// attempt is best-effort relative to the caller's response.
func (d *dispatcherImpl) Dispatch(ctx context.Context, ev Event) error {
	for _, msg := range d.renderMessages(ctx, ev) {
		payload, err := json.Marshal(map[string]any{
			"order_id": ev.Order.ID,
			"to":       msg.to,
			"subject":  msg.subject,
		})
		if err != nil {
			return errs.Wrap(err, "failed to encode notification payload")
		}

		jobID, err := d.jobRepo.CreateJob(ctx, "email", string(ev.Kind), payload, d.clock.Now())
		if err != nil {
			return errs.Wrap(err, "failed to enqueue notification job")
		}

		d.sendAsync(jobID, msg)
	}
	return nil
}

func (d *dispatcherImpl) sendAsync(jobID uuid.UUID, msg message) {
	d.runner.Go("notification.send", func(ctx context.Context) error {
		if err := d.mailer.Send(ctx, msg.to, msg.subject, msg.body); err != nil {
			if markErr := d.jobRepo.MarkFailed(ctx, jobID, err.Error()); markErr != nil {
				slog.Warn("failed to mark notification job failed", "job_id", jobID, "error", markErr)
			}
			return err
		}
		return d.jobRepo.MarkSent(ctx, jobID)
	})
}

type message struct {
	to      string
	subject string
	body    string
}

func (d *dispatcherImpl) renderMessages(ctx context.Context, ev Event) []message {
	switch ev.Kind {
	case EventOrderCreated:
		msgs := []message{{
			to:      ev.Order.CustomerEmail,
			subject: fmt.Sprintf("Order Confirmation #%s", ev.Order.ShortID()),
			body:    d.renderOrderBody(ev.Order, "Thank you for your order. We have received it and it is currently being processed."),
		}}
		for _, adminTo := range d.operatorRecipients(ctx) {
			msgs = append(msgs, message{
				to:      adminTo,
				subject: fmt.Sprintf("New Order #%s (%s %d)", ev.Order.ShortID(), d.currency, ev.Order.TotalCents/100),
				body:    d.renderOrderBody(ev.Order, "A new order has been placed."),
			})
		}
		return msgs

	case EventOrderStatusChanged:
		return []message{{
			to:      ev.Order.CustomerEmail,
			subject: statusSubject(ev.NewStatus, ev.Order.ShortID()),
			body:    d.renderOrderBody(ev.Order, statusMessage(ev.NewStatus)),
		}}

	case EventCancellationRequested:
		msgs := make([]message, 0, 1)
		for _, adminTo := range d.operatorRecipients(ctx) {
			msgs = append(msgs, message{
				to:      adminTo,
				subject: fmt.Sprintf("Cancellation Requested #%s", ev.Order.ShortID()),
				body: d.renderOrderBody(ev.Order,
					"The customer has requested to cancel this order. Please review and approve in the admin dashboard."),
			})
		}
		return msgs

	case EventCancellationApproved:
		return []message{{
			to:      ev.Order.CustomerEmail,
			subject: fmt.Sprintf("Order Cancelled #%s", ev.Order.ShortID()),
			body: d.renderOrderBody(ev.Order,
				"Your cancellation request has been approved and processed. The order has been removed from our records."),
		}}

	default:
		return nil
	}
}

func (d *dispatcherImpl) operatorRecipients(ctx context.Context) []string {
	emails, err := d.profileRepo.ListAdminEmails(ctx)
	if err != nil || len(emails) == 0 {
		if err != nil {
			slog.Warn("failed to list admin emails, using configured fallback", "error", err)
		}
		return []string{d.adminEmail}
	}
	return emails
}

func (d *dispatcherImpl) renderOrderBody(o *readmodel.OrderRM, lead string) string {
	return renderOrderBody(o, lead, d.currency)
}

func renderOrderBody(o *readmodel.OrderRM, lead, currency string) string {
	var b strings.Builder
	b.WriteString(lead)
	b.WriteString("\n\nOrder #")
	b.WriteString(o.ShortID())
	b.WriteString("\n")
	for _, it := range o.Items {
		fmt.Fprintf(&b, "  %s x%d  %s %d\n", it.ProductName, it.Quantity, currency, it.UnitPriceCents/100)
	}
	fmt.Fprintf(&b, "Total: %s %d\n", currency, o.TotalCents/100)

	addr := o.ShippingAddress
	if addr.Name != "" || addr.Line1 != "" {
		b.WriteString("\nShipping to:\n")
		for _, line := range []string{addr.Name, addr.Phone, addr.Line1, addr.Line2, addr.City, addr.Country} {
			if line != "" {
				b.WriteString("  " + line + "\n")
			}
		}
	}
	return b.String()
}

func statusSubject(status order.Status, shortID string) string {
	switch status {
	case order.StatusShipped:
		return fmt.Sprintf("Your Order #%s is on the way!", shortID)
	case order.StatusDelivered:
		return fmt.Sprintf("Your Order #%s has arrived!", shortID)
	case order.StatusCancelled:
		return fmt.Sprintf("Order #%s has been Cancelled", shortID)
	case order.StatusProcessing:
		return fmt.Sprintf("Order Confirmation #%s", shortID)
	default:
		return fmt.Sprintf("Update on Order #%s", shortID)
	}
}

func statusMessage(status order.Status) string {
	switch status {
	case order.StatusShipped:
		return "Great news! Your gear has been dispatched and is making its way to you."
	case order.StatusDelivered:
		return "Your gear has arrived. Thank you for shopping with us."
	case order.StatusCancelled:
		return "This order has been cancelled. If you didn't request this, please contact support immediately."
	case order.StatusProcessing:
		return "Thank you for your order. We have received it and it is currently being processed."
	default:
		return fmt.Sprintf("Your order status has been updated to: %s", status)
	}
}

// NotificationUseCase backs the internal notify-customer trigger: render
// and send the status email for an order, counting successful sends.
// Email failures are logged and reflected in the count, never fatal.
type NotificationUseCase interface {
	NotifyCustomer(ctx context.Context, orderID uuid.UUID, newStatus order.Status) (int, error)
}

type notificationUseCaseImpl struct {
	orderRepo OrderRepository
	mailer    Mailer
	currency  string
}

func NewNotificationUseCase(
	orderRepo OrderRepository,
	mailer Mailer,
	currency string,
) NotificationUseCase {
	return &notificationUseCaseImpl{
		orderRepo: orderRepo,
		mailer:    mailer,
		currency:  currency,
	}
}

func (n *notificationUseCaseImpl) NotifyCustomer(ctx context.Context, orderID uuid.UUID, newStatus order.Status) (int, error) {
	rm, err := n.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return 0, ErrOrderNotFound
		}
		return 0, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	subject := statusSubject(newStatus, rm.ShortID())
	body := renderOrderBody(rm, statusMessage(newStatus), n.currency)

	sent := 0
	if err := n.mailer.Send(ctx, rm.CustomerEmail, subject, body); err != nil {
		slog.Warn("customer status email failed", "order_id", orderID, "error", err)
	} else {
		sent++
	}

	return sent, nil
}
