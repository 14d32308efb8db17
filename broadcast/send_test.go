package broadcast_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/solid-labs/solid-go/broadcast"
	_log "github.com/solid-labs/solid-go/log"
	"github.com/solid-labs/solid-go/rpc"
)

var testSig = func() (sig solana.Signature) {
	for i := range sig {
		sig[i] = byte(i + 1)
	}
	return
}()

var testEnvelope = NewEnvelope([]byte{1, 2, 3, 4})

type result struct {
	Status *rpc.SignatureStatus
	Err    error
}

// fakeConn returns the scripted statuses in order, then repeats the last
// one. It records every call.
type fakeConn struct {
	sync.Mutex
	statuses []result
	sendErrs []error

	sends   []string
	polls   int
	history []bool
}

func (c *fakeConn) SendEncodedTransaction(ctx context.Context,
	encoded string, opts rpc.SendOptions) (solana.Signature, error) {
	c.Lock()
	defer c.Unlock()
	if !opts.SkipPreflight {
		panic("preflight not skipped")
	}
	i := len(c.sends)
	c.sends = append(c.sends, encoded)
	if i < len(c.sendErrs) && c.sendErrs[i] != nil {
		return solana.Signature{}, c.sendErrs[i]
	}
	return testSig, nil
}

func (c *fakeConn) GetSignatureStatus(ctx context.Context,
	sig solana.Signature,
	searchTransactionHistory bool) (*rpc.SignatureStatus, error) {
	c.Lock()
	defer c.Unlock()
	if sig != testSig {
		panic("unexpected signature")
	}
	c.history = append(c.history, searchTransactionHistory)
	i := c.polls
	c.polls++
	if len(c.statuses) == 0 {
		return nil, nil
	}
	if i >= len(c.statuses) {
		i = len(c.statuses) - 1
	}
	return c.statuses[i].Status, c.statuses[i].Err
}

func status(c rpc.Commitment) result {
	return result{Status: &rpc.SignatureStatus{Slot: 1, ConfirmationStatus: c}}
}

func rejected() result {
	var txErr rpc.TransactionError
	json.Unmarshal([]byte(`{"InstructionError":[0,{"Custom":6000}]}`), &txErr)
	return result{Status: &rpc.SignatureStatus{Slot: 1, Err: &txErr,
		ConfirmationStatus: rpc.Processed}}
}

var unseen = result{}

const interval = 10 * time.Millisecond

func fast(opts ...Option) []Option {
	return append([]Option{WithInterval(interval),
		WithTimeout(time.Second)}, opts...)
}

func TestSendConfirmedOnSecondPoll(t *testing.T) {
	conn := &fakeConn{statuses: []result{unseen, status(rpc.Confirmed)}}
	sig, err := Send(context.Background(), conn, testEnvelope, fast()...)
	require.NoError(t, err)
	assert.Equal(t, testSig, sig)
	assert.Equal(t, 2, conn.polls)
	// Initial broadcast plus one resend after the first poll.
	require.Len(t, conn.sends, 2)
	for _, sent := range conn.sends {
		assert.Equal(t, testEnvelope.String(), sent)
	}
	for _, h := range conn.history {
		assert.False(t, h)
	}
}

func TestSendRejected(t *testing.T) {
	conn := &fakeConn{statuses: []result{rejected()}}
	sig, err := Send(context.Background(), conn, testEnvelope, fast()...)
	require.Error(t, err)
	assert.Equal(t, testSig, sig)
	assert.True(t, IsRejected(err))
	assert.False(t, IsAborted(err))
	var rejErr RejectedError
	require.True(t, errors.As(err, &rejErr))
	assert.Equal(t, testSig, rejErr.Signature)
	var txErr *rpc.TransactionError
	require.True(t, errors.As(err, &txErr))
	_, code, ok := txErr.InstructionError()
	assert.True(t, ok)
	assert.Equal(t, uint32(6000), code)
	assert.Len(t, conn.sends, 1)
	assert.Equal(t, 1, conn.polls)
}

func TestSendTimeout(t *testing.T) {
	conn := &fakeConn{statuses: []result{status(rpc.Processed)}}
	start := time.Now()
	sig, err := Send(context.Background(), conn, testEnvelope,
		WithInterval(20*time.Millisecond), WithTimeout(300*time.Millisecond))
	elapsed := time.Since(start)
	require.Error(t, err)
	assert.Equal(t, testSig, sig)
	assert.True(t, IsAborted(err))
	assert.False(t, IsRejected(err))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	var abErr AbortedError
	require.True(t, errors.As(err, &abErr))
	assert.Equal(t, testSig, abErr.Signature)

	// Roughly timeout/interval resends, plus the initial broadcast.
	resends := len(conn.sends) - 1
	assert.GreaterOrEqual(t, resends, 5)
	assert.LessOrEqual(t, resends, 16)
	assert.Less(t, elapsed, time.Second)
}

func TestSendCommitmentLevels(t *testing.T) {
	tests := []struct {
		Name      string
		Requested rpc.Commitment
		Observed  []result
		Polls     int
	}{{
		Name:      "finalized satisfies confirmed",
		Requested: rpc.Confirmed,
		Observed:  []result{status(rpc.Finalized)},
		Polls:     1,
	}, {
		Name:      "processed then confirmed then finalized",
		Requested: rpc.Finalized,
		Observed: []result{status(rpc.Processed),
			status(rpc.Confirmed), status(rpc.Finalized)},
		Polls: 3,
	}, {
		Name:      "processed",
		Requested: rpc.Processed,
		Observed:  []result{unseen, status(rpc.Processed)},
		Polls:     2,
	}, {
		Name:      "unknown level is pending",
		Requested: rpc.Processed,
		Observed:  []result{status(""), status(rpc.Processed)},
		Polls:     2,
	}}
	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			conn := &fakeConn{statuses: test.Observed}
			_, err := Send(context.Background(), conn, testEnvelope,
				fast(WithCommitment(test.Requested))...)
			require.NoError(t, err)
			assert.Equal(t, test.Polls, conn.polls)
			assert.Len(t, conn.sends, test.Polls)
		})
	}
}

func TestSendInitialBroadcastFails(t *testing.T) {
	conn := &fakeConn{sendErrs: []error{errors.New("connection refused")}}
	_, err := Send(context.Background(), conn, testEnvelope, fast()...)
	var tErr TransportError
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, "broadcast", tErr.Op)
	assert.EqualError(t, tErr.Err, "connection refused")
	assert.Equal(t, 0, conn.polls)
	assert.Len(t, conn.sends, 1)
}

func TestSendTransientFailures(t *testing.T) {
	conn := &fakeConn{
		statuses: []result{
			{Err: errors.New("503 Service Unavailable")},
			unseen,
			status(rpc.Confirmed),
		},
		sendErrs: []error{nil, nil, errors.New("connection reset")},
	}
	sig, err := Send(context.Background(), conn, testEnvelope, fast()...)
	require.NoError(t, err)
	assert.Equal(t, testSig, sig)
	assert.Equal(t, 3, conn.polls)
	assert.Len(t, conn.sends, 3)
}

// stallConn never answers a status poll before ctx is done.
type stallConn struct {
	fakeConn
}

func (c *stallConn) GetSignatureStatus(ctx context.Context,
	sig solana.Signature, _ bool) (*rpc.SignatureStatus, error) {
	<-ctx.Done()
	c.Lock()
	c.polls++
	c.Unlock()
	return nil, ctx.Err()
}

func captureLog(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	_log.SetOutput(&buf)
	t.Cleanup(func() { _log.SetOutput(os.Stderr) })
	return &buf
}

func TestSendDeadlineDuringPoll(t *testing.T) {
	buf := captureLog(t)
	conn := &stallConn{}
	sig, err := Send(context.Background(), conn, testEnvelope,
		WithInterval(10*time.Millisecond), WithTimeout(30*time.Millisecond))
	assert.Equal(t, testSig, sig)
	require.True(t, IsAborted(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, conn.polls)
	assert.Len(t, conn.sends, 1, "no resend after the deadline")
	assert.NotContains(t, buf.String(), "GetSignatureStatus")
}

func TestSendPollFailureLogged(t *testing.T) {
	buf := captureLog(t)
	conn := &fakeConn{statuses: []result{
		{Err: errors.New("connection reset")}, status(rpc.Confirmed)}}
	_, err := Send(context.Background(), conn, testEnvelope, fast()...)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "connection reset")
}

func TestSendParentCanceled(t *testing.T) {
	conn := &fakeConn{}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()
	_, err := Send(ctx, conn, testEnvelope,
		WithInterval(10*time.Millisecond), WithTimeout(time.Minute))
	assert.True(t, IsAborted(err))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSendEmptyEnvelope(t *testing.T) {
	conn := &fakeConn{}
	_, err := Send(context.Background(), conn, Envelope{})
	assert.Equal(t, ErrEmptyEnvelope, err)
	assert.Empty(t, conn.sends)
}

func TestConcurrentSends(t *testing.T) {
	var wg sync.WaitGroup
	conns := make([]*fakeConn, 8)
	for i := range conns {
		conns[i] = &fakeConn{statuses: []result{unseen, status(rpc.Confirmed)}}
		wg.Add(1)
		go func(conn *fakeConn) {
			defer wg.Done()
			_, err := Send(context.Background(), conn, testEnvelope,
				fast()...)
			assert.NoError(t, err)
		}(conns[i])
	}
	wg.Wait()
	for _, conn := range conns {
		assert.Len(t, conn.sends, 2)
	}
}

func TestOptionsDefaults(t *testing.T) {
	o := DefaultOptions()
	assert.Equal(t, rpc.Confirmed, o.Commitment)
	assert.Equal(t, 3*time.Second, o.Interval)
	assert.Equal(t, 30*time.Second, o.Timeout)
}
