package bookings

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CourtBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/booking"
	requestRepo "github.com/m04kA/SMC-CourtBooking/internal/infra/storage/request"
	"github.com/m04kA/SMC-CourtBooking/internal/integrations/notifications"
	"github.com/m04kA/SMC-CourtBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-CourtBooking/pkg/ptr"
	"github.com/m04kA/SMC-CourtBooking/pkg/tz"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeBookings struct {
	mu       sync.Mutex
	bookings map[int64]*domain.Booking
	assigned []domain.SessionKey
}

func (r *fakeBookings) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookings) UpdateCoachForSession(_ context.Context, key domain.SessionKey, coachID *int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assigned = append(r.assigned, key)
	var n int64
	for _, b := range r.bookings {
		if b.SessionKey() == key {
			b.CoachID = coachID
			n++
		}
	}
	return n, nil
}

type fakeRequests struct {
	mu       sync.Mutex
	requests []*domain.BookingRequest
}

func (r *fakeRequests) Create(_ context.Context, req *domain.BookingRequest) (*domain.BookingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.requests {
		if existing.BookingID == req.BookingID && existing.Type == req.Type && existing.IsPending() {
			return nil, requestRepo.ErrDuplicatePending
		}
	}
	copied := *req
	copied.ID = int64(len(r.requests) + 1)
	copied.Status = domain.RequestStatusPending
	r.requests = append(r.requests, &copied)
	return &copied, nil
}

func (r *fakeRequests) GetByID(_ context.Context, id int64) (*domain.BookingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.ID == id {
			copied := *req
			return &copied, nil
		}
	}
	return nil, requestRepo.ErrRequestNotFound
}

func (r *fakeRequests) FindPending(_ context.Context, bookingID int64, reqType domain.RequestType) (*domain.BookingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.BookingID == bookingID && req.Type == reqType && req.IsPending() {
			copied := *req
			return &copied, nil
		}
	}
	return nil, requestRepo.ErrRequestNotFound
}

func (r *fakeRequests) List(_ context.Context, status *domain.RequestStatus, _ uint64) ([]*domain.BookingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*domain.BookingRequest, 0)
	for _, req := range r.requests {
		if status == nil || req.Status == *status {
			result = append(result, req)
		}
	}
	return result, nil
}

func (r *fakeRequests) Resolve(ctx context.Context, review domain.Review) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.ID == review.RequestID && req.IsPending() {
			req.Status = review.Status
			req.ReviewerID = &review.ReviewerID
			req.ReviewedAt = &review.ReviewedAt
			req.AdminNotes = review.Notes
			return nil
		}
	}
	return requestRepo.ErrNotPending
}

func (r *fakeRequests) pending(bookingID int64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, req := range r.requests {
		if req.BookingID == bookingID && req.IsPending() {
			n++
		}
	}
	return n
}

type fakeHistory struct {
	records []*domain.CancellationHistoryRecord
	err     error
}

func (h *fakeHistory) Create(_ context.Context, record *domain.CancellationHistoryRecord) error {
	if h.err != nil {
		return h.err
	}
	h.records = append(h.records, record)
	return nil
}

type fakeGate struct {
	repo *fakeBookings
	err  error
}

func (g *fakeGate) ReleaseBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if g.err != nil {
		return nil, g.err
	}
	g.repo.mu.Lock()
	defer g.repo.mu.Unlock()
	b, ok := g.repo.bookings[id]
	if !ok {
		return nil, fmt.Errorf("%w: booking not found", domain.ErrNotFound)
	}
	delete(g.repo.bookings, id)
	return b, nil
}

type credit struct {
	userID int64
	amount float64
	key    string
}

type fakeWallet struct {
	credits []credit
	failFor map[int64]bool
}

func (w *fakeWallet) CreditBalance(ctx context.Context, userID int64, amount float64, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.failFor[userID] {
		return errors.New("wallet unavailable")
	}
	w.credits = append(w.credits, credit{userID: userID, amount: amount, key: key})
	return nil
}

type fakeNotifier struct {
	notices []*notifications.CancellationNotice
}

func (n *fakeNotifier) NotifyCancellation(_ context.Context, notice *notifications.CancellationNotice) error {
	n.notices = append(n.notices, notice)
	return nil
}

type env struct {
	svc      *Service
	bookings *fakeBookings
	requests *fakeRequests
	history  *fakeHistory
	gate     *fakeGate
	wallet   *fakeWallet
	notifier *fakeNotifier
}

var sydney = tz.MustNew(tz.DefaultZone)

// localTime время по Сиднею в UTC
func localTime(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, sydney.Location()).UTC()
}

const (
	studentID int64 = 100
	coachID   int64 = 200
	adminID   int64 = 300
)

var (
	student = domain.Principal{UserID: studentID, Role: domain.RoleStudent}
	coach   = domain.Principal{UserID: coachID, Role: domain.RoleCoach}
	admin   = domain.Principal{UserID: adminID, Role: domain.RoleAdmin}
)

// booking на 2025-06-11 09:00-10:00 по Сиднею
func newTestBooking(id, userID int64, cost float64) *domain.Booking {
	return &domain.Booking{
		ID:          id,
		LocationID:  7,
		UserID:      userID,
		CoachID:     ptr.Ptr(coachID),
		StartTime:   localTime(2025, 6, 11, 9, 0),
		EndTime:     localTime(2025, 6, 11, 10, 0),
		ServiceName: "Group lesson",
		CreditCost:  cost,
	}
}

func newEnv(now time.Time, bookings ...*domain.Booking) *env {
	e := &env{
		bookings: &fakeBookings{bookings: make(map[int64]*domain.Booking)},
		requests: &fakeRequests{},
		history:  &fakeHistory{},
		wallet:   &fakeWallet{failFor: map[int64]bool{}},
		notifier: &fakeNotifier{},
	}
	for _, b := range bookings {
		e.bookings.bookings[b.ID] = b
	}
	e.gate = &fakeGate{repo: e.bookings}
	e.svc = NewService(e.bookings, e.requests, e.history, e.gate, e.wallet, e.notifier, sydney,
		Config{FreeCancellationHour: domain.DefaultFreeCancellationHour}, nopLogger{}).
		WithTimeProvider(fixedClock{now: now})
	return e
}

func TestService_FreeCancellationDeadline(t *testing.T) {
	e := newEnv(time.Now())

	deadline, err := e.svc.FreeCancellationDeadline(newTestBooking(1, studentID, 15))

	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 10, 2, 0, 0, 0, time.UTC), deadline)
}

func TestService_RequestCancellation_BeforeDeadlineCancelsDirectly(t *testing.T) {
	e := newEnv(localTime(2025, 6, 10, 11, 59), newTestBooking(1, studentID, 15))

	result, err := e.svc.RequestCancellation(context.Background(), &models.CancelRequest{
		Principal: student,
		BookingID: 1,
	})

	require.NoError(t, err)
	assert.Equal(t, models.ActionCancelled, result.Action)
	assert.Equal(t, domain.OutcomeCompleted, result.Outcome)
	assert.Empty(t, e.bookings.bookings)
	assert.Empty(t, e.requests.requests)
	require.Len(t, e.wallet.credits, 1)
	assert.Equal(t, credit{userID: studentID, amount: 15, key: selfCancelRefundKey(1)}, e.wallet.credits[0])
	require.Len(t, e.notifier.notices, 1)
	assert.Equal(t, notifications.KindSelfCancel, e.notifier.notices[0].Kind)
}

func TestService_RequestCancellation_AfterDeadlineCreatesPendingRequest(t *testing.T) {
	e := newEnv(localTime(2025, 6, 10, 12, 1), newTestBooking(1, studentID, 15))

	result, err := e.svc.RequestCancellation(context.Background(), &models.CancelRequest{
		Principal: student,
		BookingID: 1,
		Reason:    "  injured my wrist ",
	})

	require.NoError(t, err)
	assert.Equal(t, models.ActionRequestCreated, result.Action)
	require.NotNil(t, result.Request)
	assert.Equal(t, domain.RequestTypeCancel, result.Request.Type)
	assert.Equal(t, domain.RequestStatusPending, result.Request.Status)
	assert.Equal(t, "injured my wrist", result.Request.Reason)
	assert.Len(t, e.bookings.bookings, 1)
	assert.Empty(t, e.wallet.credits)
}

func TestService_RequestCancellation_AtDeadlineRequiresReason(t *testing.T) {
	e := newEnv(localTime(2025, 6, 10, 12, 0), newTestBooking(1, studentID, 15))

	_, err := e.svc.RequestCancellation(context.Background(), &models.CancelRequest{
		Principal: student,
		BookingID: 1,
		Reason:    "   ",
	})

	require.ErrorIs(t, err, ErrReasonRequired)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, e.requests.requests)
	assert.Len(t, e.bookings.bookings, 1)
}

func TestService_RequestCancellation_FreeBookingSkipsWallet(t *testing.T) {
	e := newEnv(localTime(2025, 6, 9, 8, 0), newTestBooking(1, studentID, 0))

	result, err := e.svc.RequestCancellation(context.Background(), &models.CancelRequest{Principal: student, BookingID: 1})

	require.NoError(t, err)
	assert.False(t, result.Refund.Attempted)
	assert.Empty(t, e.wallet.credits)
	assert.Empty(t, e.bookings.bookings)
}

func TestService_RequestCancellation_RefundFailureIsPartialSuccess(t *testing.T) {
	e := newEnv(localTime(2025, 6, 9, 8, 0), newTestBooking(1, studentID, 15))
	e.wallet.failFor[studentID] = true

	result, err := e.svc.RequestCancellation(context.Background(), &models.CancelRequest{Principal: student, BookingID: 1})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomePartialSuccess, result.Outcome)
	assert.True(t, result.Refund.Failed())
	assert.Empty(t, e.bookings.bookings)
}

func TestService_RequestCancellation_Authorization(t *testing.T) {
	tests := []struct {
		name      string
		principal domain.Principal
	}{
		{name: "other student", principal: domain.Principal{UserID: 999, Role: domain.RoleStudent}},
		{name: "coach", principal: coach},
		{name: "admin", principal: admin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(localTime(2025, 6, 9, 8, 0), newTestBooking(1, studentID, 15))

			_, err := e.svc.RequestCancellation(context.Background(), &models.CancelRequest{Principal: tt.principal, BookingID: 1})

			require.ErrorIs(t, err, ErrAccessDenied)
			assert.ErrorIs(t, err, domain.ErrNotAuthorized)
			assert.Len(t, e.bookings.bookings, 1)
			assert.Empty(t, e.wallet.credits)
		})
	}
}

func TestService_RequestCancellation_BookingNotFound(t *testing.T) {
	e := newEnv(localTime(2025, 6, 9, 8, 0))

	_, err := e.svc.RequestCancellation(context.Background(), &models.CancelRequest{Principal: student, BookingID: 1})

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_RequestCancellation_PendingRequestBlocksSelfCancel(t *testing.T) {
	e := newEnv(localTime(2025, 6, 9, 8, 0), newTestBooking(1, studentID, 15))

	raincheck, err := e.svc.RequestRaincheck(context.Background(), &models.RaincheckRequest{
		Principal: student,
		BookingID: 1,
		Reason:    "storm forecast",
	})
	require.NoError(t, err)

	_, err = e.svc.RequestCancellation(context.Background(), &models.CancelRequest{Principal: student, BookingID: 1})

	require.ErrorIs(t, err, ErrPendingRequestExists)
	assert.ErrorIs(t, err, domain.ErrDuplicatePendingRequest)
	assert.Len(t, e.bookings.bookings, 1)
	assert.Empty(t, e.wallet.credits)
	assert.Equal(t, 1, e.requests.pending(1))

	// заявку по-прежнему можно одобрить
	result, err := e.svc.ApproveRequest(context.Background(), &models.ReviewRequest{Principal: admin, RequestID: raincheck.ID})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeCompleted, result.Outcome)
	assert.Empty(t, e.bookings.bookings)
	assert.Zero(t, e.requests.pending(1))
}

func TestService_RequestRaincheck_DuplicateIsRejected(t *testing.T) {
	e := newEnv(localTime(2025, 6, 9, 8, 0), newTestBooking(1, studentID, 15))
	req := &models.RaincheckRequest{Principal: student, BookingID: 1, Reason: "storm forecast"}

	first, err := e.svc.RequestRaincheck(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestTypeRaincheck, first.Type)

	_, err = e.svc.RequestRaincheck(context.Background(), req)

	require.ErrorIs(t, err, ErrDuplicatePendingRequest)
	assert.ErrorIs(t, err, domain.ErrDuplicatePendingRequest)
	assert.Equal(t, 1, e.requests.pending(1))
}

func TestService_RequestRaincheck_CancelAndRaincheckCoexist(t *testing.T) {
	e := newEnv(localTime(2025, 6, 10, 18, 0), newTestBooking(1, studentID, 15))

	_, err := e.svc.RequestCancellation(context.Background(), &models.CancelRequest{Principal: student, BookingID: 1, Reason: "sick"})
	require.NoError(t, err)

	_, err = e.svc.RequestRaincheck(context.Background(), &models.RaincheckRequest{Principal: student, BookingID: 1, Reason: "rain"})

	require.NoError(t, err)
	assert.Equal(t, 2, e.requests.pending(1))
}

func seedPending(t *testing.T, e *env, reqType domain.RequestType) *domain.BookingRequest {
	t.Helper()
	req, err := e.requests.Create(context.Background(), &domain.BookingRequest{
		BookingID:   1,
		RequesterID: studentID,
		Type:        reqType,
		Reason:      "rain",
	})
	require.NoError(t, err)
	return req
}

func TestService_ApproveRequest_SideEffects(t *testing.T) {
	e := newEnv(localTime(2025, 6, 10, 18, 0), newTestBooking(1, studentID, 15))
	pending := seedPending(t, e, domain.RequestTypeCancel)

	result, err := e.svc.ApproveRequest(context.Background(), &models.ReviewRequest{
		Principal: admin,
		RequestID: pending.ID,
		Notes:     ptr.Ptr("ok"),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeCompleted, result.Outcome)
	assert.Empty(t, e.bookings.bookings)
	require.Len(t, e.wallet.credits, 1)
	assert.Equal(t, credit{userID: studentID, amount: 15, key: requestRefundKey(pending.ID)}, e.wallet.credits[0])
	require.Len(t, e.history.records, 1)
	assert.Equal(t, int64(1), e.history.records[0].BookingID)
	assert.Equal(t, &pending.ID, e.history.records[0].RequestID)
	assert.Equal(t, adminID, e.history.records[0].CancelledBy)

	stored, err := e.requests.GetByID(context.Background(), pending.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusApproved, stored.Status)
	assert.Equal(t, adminID, *stored.ReviewerID)
	assert.NotNil(t, stored.ReviewedAt)
	require.Len(t, e.notifier.notices, 1)
	assert.Equal(t, notifications.KindApproved, e.notifier.notices[0].Kind)
}

func TestService_ApproveRequest_SupersedesSiblingRequest(t *testing.T) {
	e := newEnv(localTime(2025, 6, 10, 18, 0), newTestBooking(1, studentID, 15))
	cancel := seedPending(t, e, domain.RequestTypeCancel)
	raincheck := seedPending(t, e, domain.RequestTypeRaincheck)

	_, err := e.svc.ApproveRequest(context.Background(), &models.ReviewRequest{Principal: admin, RequestID: cancel.ID})

	require.NoError(t, err)
	assert.Zero(t, e.requests.pending(1))

	stored, err := e.requests.GetByID(context.Background(), raincheck.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusRejected, stored.Status)
	assert.Equal(t, supersededByApprovalNote, *stored.AdminNotes)
	assert.Len(t, e.wallet.credits, 1)
}

func TestService_ApproveRequest_CompletesAfterClientDisconnect(t *testing.T) {
	e := newEnv(localTime(2025, 6, 10, 18, 0), newTestBooking(1, studentID, 15))
	pending := seedPending(t, e, domain.RequestTypeCancel)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := e.svc.ApproveRequest(ctx, &models.ReviewRequest{Principal: admin, RequestID: pending.ID})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeCompleted, result.Outcome)
	assert.Empty(t, e.bookings.bookings)
	assert.Len(t, e.wallet.credits, 1)
}

func TestService_RequestCancellation_SelfCancelCompletesAfterClientDisconnect(t *testing.T) {
	e := newEnv(localTime(2025, 6, 9, 8, 0), newTestBooking(1, studentID, 15))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := e.svc.RequestCancellation(ctx, &models.CancelRequest{Principal: student, BookingID: 1})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeCompleted, result.Outcome)
	assert.Empty(t, e.bookings.bookings)
	assert.Len(t, e.wallet.credits, 1)
}

func TestService_ApproveRequest_HistoryFailureDoesNotAbort(t *testing.T) {
	e := newEnv(localTime(2025, 6, 10, 18, 0), newTestBooking(1, studentID, 15))
	e.history.err = errors.New("audit sink down")
	pending := seedPending(t, e, domain.RequestTypeRaincheck)

	result, err := e.svc.ApproveRequest(context.Background(), &models.ReviewRequest{Principal: admin, RequestID: pending.ID})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeCompleted, result.Outcome)
	assert.Empty(t, e.bookings.bookings)
	assert.Len(t, e.wallet.credits, 1)
}

func TestService_ApproveRequest_RefundFailureIsPartialSuccess(t *testing.T) {
	e := newEnv(localTime(2025, 6, 10, 18, 0), newTestBooking(1, studentID, 15))
	e.wallet.failFor[studentID] = true
	pending := seedPending(t, e, domain.RequestTypeCancel)

	result, err := e.svc.ApproveRequest(context.Background(), &models.ReviewRequest{Principal: admin, RequestID: pending.ID})

	require.NoError(t, err)
	assert.Equal(t, domain.OutcomePartialSuccess, result.Outcome)
	assert.True(t, result.Refund.Failed())
	assert.Empty(t, e.bookings.bookings)
	assert.True(t, e.notifier.notices[0].RefundPending)
}

func TestService_ApproveRequest_ReleaseFailureLeavesRequestApproved(t *testing.T) {
	e := newEnv(localTime(2025, 6, 10, 18, 0), newTestBooking(1, studentID, 15))
	e.gate.err = errors.New("serialization failure")
	pending := seedPending(t, e, domain.RequestTypeCancel)

	_, err := e.svc.ApproveRequest(context.Background(), &models.ReviewRequest{Principal: admin, RequestID: pending.ID})

	require.ErrorIs(t, err, ErrReleaseFailed)
	assert.ErrorIs(t, err, domain.ErrDependency)
	assert.Len(t, e.bookings.bookings, 1)
	assert.Empty(t, e.wallet.credits)

	stored, err := e.requests.GetByID(context.Background(), pending.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusApproved, stored.Status)
}

func TestService_ApproveRequest_AlreadyResolved(t *testing.T) {
	e := newEnv(localTime(2025, 6, 10, 18, 0), newTestBooking(1, studentID, 15))
	pending := seedPending(t, e, domain.RequestTypeCancel)

	_, err := e.svc.RejectRequest(context.Background(), &models.ReviewRequest{Principal: admin, RequestID: pending.ID})
	require.NoError(t, err)

	_, err = e.svc.ApproveRequest(context.Background(), &models.ReviewRequest{Principal: admin, RequestID: pending.ID})

	require.ErrorIs(t, err, ErrRequestAlreadyResolved)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, e.bookings.bookings, 1)
}

func TestService_ApproveRequest_OnlyAdmin(t *testing.T) {
	e := newEnv(localTime(2025, 6, 10, 18, 0), newTestBooking(1, studentID, 15))
	pending := seedPending(t, e, domain.RequestTypeCancel)

	_, err := e.svc.ApproveRequest(context.Background(), &models.ReviewRequest{Principal: coach, RequestID: pending.ID})

	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, 1, e.requests.pending(1))
}

func TestService_RejectRequest_KeepsBooking(t *testing.T) {
	e := newEnv(localTime(2025, 6, 10, 18, 0), newTestBooking(1, studentID, 15))
	pending := seedPending(t, e, domain.RequestTypeRaincheck)

	rejected, err := e.svc.RejectRequest(context.Background(), &models.ReviewRequest{
		Principal: admin,
		RequestID: pending.ID,
		Notes:     ptr.Ptr("court is covered"),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusRejected, rejected.Status)
	assert.Equal(t, "court is covered", *rejected.AdminNotes)
	assert.Len(t, e.bookings.bookings, 1)
	assert.Empty(t, e.wallet.credits)
	assert.Empty(t, e.history.records)
}

func TestService_BatchRaincheck_AccumulatesPerBookingOutcome(t *testing.T) {
	otherStudent := int64(101)
	foreign := newTestBooking(3, 102, 15)
	foreign.CoachID = ptr.Ptr(int64(999))

	e := newEnv(localTime(2025, 6, 11, 7, 0),
		newTestBooking(1, studentID, 15),
		newTestBooking(2, otherStudent, 15),
		foreign,
	)
	e.wallet.failFor[otherStudent] = true
	pending := seedPending(t, e, domain.RequestTypeRaincheck)

	result, err := e.svc.BatchRaincheck(context.Background(), &models.BatchRaincheckRequest{
		Principal:  coach,
		BookingIDs: []int64{1, 2, 3, 4, 1},
		Reason:     "heavy rain",
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.RefundsFailed)
	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, domain.OutcomePartialSuccess, result.Outcome)
	require.Len(t, result.Items, 4)
	assert.Equal(t, models.BatchItemSucceeded, result.Items[0].Status)
	assert.Equal(t, models.BatchItemRefundFailed, result.Items[1].Status)
	assert.ErrorIs(t, result.Items[2].Err, ErrAccessDenied)
	assert.ErrorIs(t, result.Items[3].Err, ErrBookingNotFound)

	stored, err := e.requests.GetByID(context.Background(), pending.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestStatusRejected, stored.Status)
	assert.Equal(t, supersededNote, *stored.AdminNotes)

	assert.Len(t, e.bookings.bookings, 1)
	assert.Contains(t, e.bookings.bookings, int64(3))
	assert.Len(t, e.history.records, 2)
}

func TestService_BatchRaincheck_SupersedesAllPendingTypes(t *testing.T) {
	e := newEnv(localTime(2025, 6, 11, 7, 0), newTestBooking(1, studentID, 15))
	cancel := seedPending(t, e, domain.RequestTypeCancel)
	raincheck := seedPending(t, e, domain.RequestTypeRaincheck)

	result, err := e.svc.BatchRaincheck(context.Background(), &models.BatchRaincheckRequest{
		Principal:  coach,
		BookingIDs: []int64{1},
		Reason:     "heavy rain",
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Succeeded)
	assert.Zero(t, e.requests.pending(1))
	for _, id := range []int64{cancel.ID, raincheck.ID} {
		stored, err := e.requests.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, domain.RequestStatusRejected, stored.Status)
		assert.Equal(t, supersededNote, *stored.AdminNotes)
	}
}

func TestService_BatchRaincheck_CompletesAfterClientDisconnect(t *testing.T) {
	e := newEnv(localTime(2025, 6, 11, 7, 0), newTestBooking(1, studentID, 15), newTestBooking(2, 101, 15))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := e.svc.BatchRaincheck(ctx, &models.BatchRaincheckRequest{
		Principal:  coach,
		BookingIDs: []int64{1, 2},
		Reason:     "heavy rain",
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, domain.OutcomeCompleted, result.Outcome)
	assert.Empty(t, e.bookings.bookings)
	assert.Len(t, e.wallet.credits, 2)
}

func TestService_BatchRaincheck_OnlyCoach(t *testing.T) {
	e := newEnv(localTime(2025, 6, 11, 7, 0), newTestBooking(1, studentID, 15))

	_, err := e.svc.BatchRaincheck(context.Background(), &models.BatchRaincheckRequest{
		Principal:  admin,
		BookingIDs: []int64{1},
		Reason:     "rain",
	})

	require.ErrorIs(t, err, ErrAccessDenied)
	assert.Len(t, e.bookings.bookings, 1)
}

func TestService_AssignCoach(t *testing.T) {
	second := newTestBooking(2, 101, 15)
	second.CoachID = nil
	first := newTestBooking(1, studentID, 15)
	first.CoachID = nil

	e := newEnv(time.Now(), first, second)

	_, err := e.svc.AssignCoach(context.Background(), &models.AssignCoachRequest{
		Principal: coach,
		BookingID: 1,
		CoachID:   ptr.Ptr(int64(555)),
	})
	require.ErrorIs(t, err, ErrAccessDenied)

	result, err := e.svc.AssignCoach(context.Background(), &models.AssignCoachRequest{
		Principal: coach,
		BookingID: 1,
		CoachID:   ptr.Ptr(coachID),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Affected)
	assert.Equal(t, coachID, *e.bookings.bookings[2].CoachID)

	// Последняя запись побеждает
	result, err = e.svc.AssignCoach(context.Background(), &models.AssignCoachRequest{
		Principal: admin,
		BookingID: 2,
		CoachID:   ptr.Ptr(int64(555)),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Affected)
	assert.Equal(t, int64(555), *e.bookings.bookings[1].CoachID)
}

func TestRefundKeys_AreStableAndDistinct(t *testing.T) {
	assert.Equal(t, requestRefundKey(1), requestRefundKey(1))
	assert.NotEqual(t, requestRefundKey(1), requestRefundKey(2))
	assert.NotEqual(t, selfCancelRefundKey(1), raincheckRefundKey(1))
	assert.NotEqual(t, selfCancelRefundKey(1), requestRefundKey(1))
}

func TestService_GetBooking_Visibility(t *testing.T) {
	e := newEnv(localTime(2025, 6, 10, 11, 0), newTestBooking(1, studentID, 15))

	tests := []struct {
		name      string
		principal domain.Principal
		wantErr   error
	}{
		{name: "owner", principal: student},
		{name: "assigned coach", principal: coach},
		{name: "admin", principal: admin},
		{name: "other student", principal: domain.Principal{UserID: studentID + 100, Role: domain.RoleStudent}, wantErr: domain.ErrNotAuthorized},
		{name: "other coach", principal: domain.Principal{UserID: coachID + 100, Role: domain.RoleCoach}, wantErr: domain.ErrNotAuthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := e.svc.GetBooking(context.Background(), &models.GetBookingRequest{Principal: tt.principal, BookingID: 1})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(1), view.Booking.ID)
			assert.True(t, view.CanSelfCancel)
			assert.Equal(t, time.Date(2025, 6, 10, 2, 0, 0, 0, time.UTC), view.FreeCancellationDeadline)
		})
	}

	_, err := e.svc.GetBooking(context.Background(), &models.GetBookingRequest{Principal: admin, BookingID: 2})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
