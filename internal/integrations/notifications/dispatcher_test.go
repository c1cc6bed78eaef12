package notifications

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeSender struct {
	name string
	err  error

	mu   sync.Mutex
	sent []int64
}

func (s *fakeSender) Name() string { return s.name }

func (s *fakeSender) Send(ctx context.Context, n *CancellationNotice) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, n.BookingID)
	return s.err
}

func TestDispatcher_FailingSenderDoesNotStopOthers(t *testing.T) {
	broken := &fakeSender{name: "broken", err: errors.New("smtp down")}
	ok := &fakeSender{name: "ok"}
	d := NewDispatcher(nopLogger{}, time.Second, broken, nil, ok)

	err := d.NotifyCancellation(context.Background(), &CancellationNotice{BookingID: 9})
	d.Wait()

	require.NoError(t, err)
	assert.Equal(t, []int64{9}, broken.sent)
	assert.Equal(t, []int64{9}, ok.sent)
}

func TestDispatcher_SurvivesCancelledRequestContext(t *testing.T) {
	s := &fakeSender{name: "ok"}
	d := NewDispatcher(nopLogger{}, time.Second, s)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, d.NotifyCancellation(ctx, &CancellationNotice{BookingID: 1}))
	cancel()
	d.Wait()

	assert.Equal(t, []int64{1}, s.sent)
}

func TestDispatcher_NoSenders(t *testing.T) {
	d := NewDispatcher(nopLogger{}, 0)

	assert.NoError(t, d.NotifyCancellation(context.Background(), &CancellationNotice{BookingID: 1}))
	d.Wait()
}

func TestHeaderCarrier_SetOverwrites(t *testing.T) {
	c := &headerCarrier{headers: []kafka.Header{{Key: "event_type", Value: []byte("x")}}}

	c.Set("traceparent", "00-abc")
	c.Set("event_type", "self_cancel")

	assert.Equal(t, "00-abc", c.Get("traceparent"))
	assert.Equal(t, "self_cancel", c.Get("event_type"))
	assert.ElementsMatch(t, []string{"event_type", "traceparent"}, c.Keys())
}

func TestEmailBody_MentionsPendingRefund(t *testing.T) {
	n := &CancellationNotice{
		BookingID:     5,
		UserID:        100,
		LocationID:    7,
		StartTime:     time.Date(2025, 6, 10, 23, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
		RefundAmount:  15,
		RefundPending: true,
	}

	text := body(n, time.UTC)

	assert.Contains(t, text, "Refund of 15.00 credits FAILED")
	assert.Contains(t, text, "2025-06-10 23:00")
}
