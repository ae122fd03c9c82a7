package verification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type sequenceSender struct {
	codes []string
	calls int
	err   error
}

func (s *sequenceSender) Send(ctx context.Context, phone string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	code := s.codes[s.calls%len(s.codes)]
	s.calls++
	return code, nil
}

func TestService_Begin(t *testing.T) {
	clock := &testClock{now: sessionEpoch}
	sender := &sequenceSender{codes: []string{"111111"}}
	svc := NewService(sender, clock, 30*time.Second, 0, nil)

	sess := NewSession()
	require.NoError(t, svc.Begin(context.Background(), sess, "98765 43210"))

	assert.Equal(t, StateCodeEntry, sess.State)
	assert.Equal(t, "9876543210", sess.Phone)
	assert.Equal(t, "111111", sess.IssuedCode)
	assert.Equal(t, 30, sess.SecondsUntilResend(clock.Now()))
	assert.Equal(t, 1, sender.calls)
}

func TestService_Begin_InvalidPhoneSendsNothing(t *testing.T) {
	sender := &sequenceSender{codes: []string{"111111"}}
	svc := NewService(sender, &testClock{now: sessionEpoch}, 30*time.Second, 0, nil)

	sess := NewSession()
	assert.ErrorIs(t, svc.Begin(context.Background(), sess, "12345"), ErrInvalidPhone)
	assert.Equal(t, StatePhoneEntry, sess.State)
	assert.Zero(t, sender.calls)
}

func TestService_Begin_SenderFailure(t *testing.T) {
	sender := &sequenceSender{err: errors.New("sms gateway down")}
	svc := NewService(sender, &testClock{now: sessionEpoch}, 30*time.Second, 0, nil)

	sess := NewSession()
	err := svc.Begin(context.Background(), sess, "9876543210")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "issue code")
	assert.Equal(t, StatePhoneEntry, sess.State)
}

func TestService_Begin_ChangeNumberReissues(t *testing.T) {
	clock := &testClock{now: sessionEpoch}
	sender := &sequenceSender{codes: []string{"111111", "222222"}}
	svc := NewService(sender, clock, 30*time.Second, 0, nil)

	sess := NewSession()
	require.NoError(t, svc.Begin(context.Background(), sess, "9876543210"))
	require.NoError(t, sess.PressKey("1"))

	require.NoError(t, svc.Begin(context.Background(), sess, "9123456780"))
	assert.Equal(t, "9123456780", sess.Phone)
	assert.Equal(t, "222222", sess.IssuedCode)
	assert.Equal(t, "", sess.EnteredCode())
}

func TestService_Resend(t *testing.T) {
	clock := &testClock{now: sessionEpoch}
	sender := &sequenceSender{codes: []string{"111111", "222222"}}
	svc := NewService(sender, clock, 30*time.Second, 0, nil)

	sess := NewSession()
	require.NoError(t, svc.Begin(context.Background(), sess, "9876543210"))

	assert.ErrorIs(t, svc.Resend(context.Background(), sess), ErrResendNotReady)
	assert.Equal(t, 1, sender.calls, "gated resend must not dispatch")

	clock.Advance(30 * time.Second)
	require.NoError(t, svc.Resend(context.Background(), sess))
	assert.Equal(t, "222222", sess.IssuedCode)
	assert.Equal(t, 30, sess.SecondsUntilResend(clock.Now()))
}

func TestService_Verify(t *testing.T) {
	clock := &testClock{now: sessionEpoch}
	svc := NewService(NewDemoSender("123456", nil), clock, 30*time.Second, 0, nil)

	sess := NewSession()
	require.NoError(t, svc.Begin(context.Background(), sess, "9876543210"))

	require.NoError(t, svc.Verify(context.Background(), sess, "123456"))
	assert.Equal(t, StateDone, sess.State)
	assert.Equal(t, 100, sess.Progress)
	assert.Equal(t, clock.Now(), sess.VerifiedAt)
}

func TestService_Verify_GridFallback(t *testing.T) {
	svc := NewService(NewDemoSender("123456", nil), &testClock{now: sessionEpoch}, 30*time.Second, 0, nil)

	sess := NewSession()
	require.NoError(t, svc.Begin(context.Background(), sess, "9876543210"))
	for _, key := range []string{"1", "2", "3", "4", "5", "6"} {
		require.NoError(t, sess.PressKey(key))
	}

	require.NoError(t, svc.Verify(context.Background(), sess, ""))
	assert.Equal(t, StateDone, sess.State)
}

func TestService_Verify_Mismatch(t *testing.T) {
	svc := NewService(NewDemoSender("123456", nil), &testClock{now: sessionEpoch}, 30*time.Second, 0, nil)

	sess := NewSession()
	require.NoError(t, svc.Begin(context.Background(), sess, "9876543210"))

	assert.ErrorIs(t, svc.Verify(context.Background(), sess, "654321"), ErrCodeMismatch)
	assert.Equal(t, StateCodeEntry, sess.State)
	assert.Zero(t, sess.Progress)
}

func TestService_Verify_CancelledMidProgress(t *testing.T) {
	svc := NewService(NewDemoSender("123456", nil), &testClock{now: sessionEpoch}, 30*time.Second, 50*time.Millisecond, nil)

	sess := NewSession()
	require.NoError(t, svc.Begin(context.Background(), sess, "9876543210"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.Verify(ctx, sess, "123456")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateCodeEntry, sess.State, "abandoned verify resets to code entry")
	assert.Zero(t, sess.Progress)
	assert.True(t, sess.VerifiedAt.IsZero())
}

func TestMaskPhone(t *testing.T) {
	assert.Equal(t, "******3210", maskPhone("9876543210"))
	assert.Equal(t, "****", maskPhone("321"))
}
