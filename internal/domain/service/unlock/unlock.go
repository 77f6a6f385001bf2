package unlock

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"git.appkode.ru/pub/go/failure"

	"dealdrop/internal/domain/entity"
	"dealdrop/internal/domain/service/affiliate"
	"dealdrop/internal/domain/value"
	"dealdrop/pkg/errcodes"
	"dealdrop/pkg/logx"
)

const (
	MsgPaymentSuccessful  = "Payment successful! Opening deal..."
	MsgVerificationFailed = "Payment verification failed. If money was deducted from your account, please contact support."
	MsgPaymentFailed      = "Payment failed. Please try again."
	MsgUnexpectedError    = "Something went wrong. Please try again."

	defaultNavigationDelay = time.Second
)

type OrderGateway interface {
	CreateOrder(ctx context.Context, dealID string) entity.PaymentOrder
	VerifyPayment(ctx context.Context, payload entity.PaymentPayload) bool
}

type CheckoutWidget interface {
	Process(ctx context.Context, order entity.PaymentOrder, prefill entity.PaymentPrefill) entity.PaymentOutcome
}

type DealRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Deal, error)
}

// Notifier surfaces toast-style notifications to the user.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// ClickRecorder records a successfully unlocked (and therefore billable)
// affiliate click.
type ClickRecorder interface {
	RecordUnlock(ctx context.Context, dealID, orderID, paymentID string) error
}

// Opener performs the outbound navigation to the affiliate URL.
type Opener interface {
	Open(url string)
}

type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
)

type Notification struct {
	DealID  string
	Level   NotificationLevel
	Message string
}

// Result is what one unlock attempt resolves to. AffiliateURL is set only
// when the deal ends up unlocked.
type Result struct {
	DealID       string
	State        value.UnlockState
	AffiliateURL string
	Message      string
}

// Service drives the pay-verify-unlock-navigate workflow. Each deal moves
// through Locked -> Unlocking -> (Unlocked | Locked); Unlocked is terminal for
// the session and at most one attempt per deal is in flight at a time.
type Service struct {
	deals       DealRepository
	gateway     OrderGateway
	widget      CheckoutWidget
	transformer *affiliate.Transformer
	notifier    Notifier

	clicks          ClickRecorder
	opener          Opener
	navigationDelay time.Duration

	mu     sync.Mutex
	states map[string]value.UnlockState
}

func NewService(
	deals DealRepository,
	gateway OrderGateway,
	widget CheckoutWidget,
	transformer *affiliate.Transformer,
	notifier Notifier,
) *Service {
	return &Service{
		deals:           deals,
		gateway:         gateway,
		widget:          widget,
		transformer:     transformer,
		notifier:        notifier,
		navigationDelay: defaultNavigationDelay,
		states:          make(map[string]value.UnlockState),
	}
}

func (s *Service) WithClickRecorder(clicks ClickRecorder) *Service {
	s.clicks = clicks
	return s
}

func (s *Service) WithOpener(opener Opener) *Service {
	s.opener = opener
	return s
}

func (s *Service) WithNavigationDelay(d time.Duration) *Service {
	s.navigationDelay = d
	return s
}

// State reports the current unlock state of a deal. Deals start Locked.
func (s *Service) State(dealID string) value.UnlockState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state, ok := s.states[dealID]; ok {
		return state
	}

	return value.UnlockStateLocked
}

// Unlock runs one unlock attempt for the deal. A second trigger while an
// attempt is in flight is rejected without creating an order; a trigger on an
// already unlocked deal skips payment entirely and resolves straight to the
// affiliate URL.
func (s *Service) Unlock(
	ctx context.Context,
	dealID string,
	prefill entity.PaymentPrefill,
) (result Result, err error) {
	deal, err := s.deals.GetByID(ctx, dealID)
	if err != nil {
		return Result{}, fmt.Errorf("deals.GetByID: %w", err)
	}

	state, started := s.begin(dealID)
	if !started {
		if state == value.UnlockStateUnlocked {
			return s.resolveUnlocked(deal), nil
		}

		return Result{}, failure.NewConflictError(
			"unlock already in progress for deal "+dealID,
			failure.WithCode(errcodes.UnlockInProgress),
			failure.WithDescription("An unlock attempt is already in progress."),
		)
	}

	// Whatever happens below, Unlocking must never be left behind as the
	// final state.
	defer func() {
		if rec := recover(); rec != nil {
			logger(ctx).Error(
				"unlock attempt panicked",
				slog.String(logx.FieldDealID, dealID),
				slog.Any(logx.FieldError, rec),
			)

			s.setState(dealID, value.UnlockStateLocked)
			s.notify(ctx, dealID, NotificationError, MsgUnexpectedError)

			result = Result{DealID: dealID, State: value.UnlockStateLocked, Message: MsgUnexpectedError}
			err = nil
		}
	}()

	order := s.gateway.CreateOrder(ctx, dealID)

	outcome := s.widget.Process(ctx, order, prefill)
	if !outcome.Success() {
		s.setState(dealID, value.UnlockStateLocked)

		message := outcome.Reason
		if message == "" {
			message = MsgPaymentFailed
		}

		s.notify(ctx, dealID, NotificationError, message)

		return Result{DealID: dealID, State: value.UnlockStateLocked, Message: message}, nil
	}

	if !s.gateway.VerifyPayment(ctx, *outcome.Payload) {
		s.setState(dealID, value.UnlockStateLocked)
		s.notify(ctx, dealID, NotificationError, MsgVerificationFailed)

		return Result{DealID: dealID, State: value.UnlockStateLocked, Message: MsgVerificationFailed}, nil
	}

	s.setState(dealID, value.UnlockStateUnlocked)
	s.notify(ctx, dealID, NotificationSuccess, MsgPaymentSuccessful)
	s.recordClick(ctx, dealID, order.OrderID, outcome.Payload.PaymentID)

	affiliateURL := s.transformer.Transform(deal.Platform, deal.ProductURL)
	s.scheduleNavigation(affiliateURL)

	return Result{
		DealID:       dealID,
		State:        value.UnlockStateUnlocked,
		AffiliateURL: affiliateURL,
		Message:      MsgPaymentSuccessful,
	}, nil
}

// begin claims the deal for a new attempt. It reports the observed state and
// whether the Locked -> Unlocking transition happened.
func (s *Service) begin(dealID string) (value.UnlockState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states[dealID]
	if !ok {
		state = value.UnlockStateLocked
	}

	if state != value.UnlockStateLocked {
		return state, false
	}

	s.states[dealID] = value.UnlockStateUnlocking

	return value.UnlockStateUnlocking, true
}

func (s *Service) setState(dealID string, state value.UnlockState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[dealID] = state
}

func (s *Service) resolveUnlocked(deal *entity.Deal) Result {
	affiliateURL := s.transformer.Transform(deal.Platform, deal.ProductURL)
	s.scheduleNavigation(affiliateURL)

	return Result{
		DealID:       deal.ID,
		State:        value.UnlockStateUnlocked,
		AffiliateURL: affiliateURL,
	}
}

func (s *Service) notify(ctx context.Context, dealID string, level NotificationLevel, message string) {
	s.notifier.Notify(ctx, Notification{
		DealID:  dealID,
		Level:   level,
		Message: message,
	})
}

func (s *Service) recordClick(ctx context.Context, dealID, orderID, paymentID string) {
	if s.clicks == nil {
		return
	}

	if err := s.clicks.RecordUnlock(ctx, dealID, orderID, paymentID); err != nil {
		logger(ctx).Error(
			"failed to record unlock click",
			slog.String(logx.FieldDealID, dealID),
			slog.String(logx.FieldOrderID, orderID),
			logx.Error(err),
		)
	}
}

// scheduleNavigation opens the affiliate URL after a short delay so the
// success notification registers before navigation.
func (s *Service) scheduleNavigation(url string) {
	if s.opener == nil {
		return
	}

	time.AfterFunc(s.navigationDelay, func() {
		s.opener.Open(url)
	})
}
