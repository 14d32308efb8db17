package program_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/solid-labs/solid-go/program"
)

var testEvent = UserRegisteredEvent{
	User:        key(1),
	Username:    "alice",
	UserAccount: key(2),
	Identity:    key(3),
}

func eventLogs(t *testing.T, programID solana.PublicKey,
	ev UserRegisteredEvent) []string {
	data, err := ev.MarshalBinary()
	require.NoError(t, err)
	id := programID.String()
	return []string{
		"Program " + id + " invoke [1]",
		"Program log: Instruction: Register",
		"Program 11111111111111111111111111111111 invoke [2]",
		"Program 11111111111111111111111111111111 success",
		"Program data: " + base64.StdEncoding.EncodeToString(data),
		"Program " + id + " consumed 12000 of 200000 compute units",
		"Program " + id + " success",
	}
}

func TestParseEvents(t *testing.T) {
	p := New(nil, solana.PublicKey{})
	events := p.ParseEvents(eventLogs(t, p.ID, testEvent))
	assert.Equal(t, []UserRegisteredEvent{testEvent}, events)

	// Emitted by another program.
	assert.Empty(t, p.ParseEvents(eventLogs(t, key(9), testEvent)))

	// Data outside of any invocation.
	data, err := testEvent.MarshalBinary()
	require.NoError(t, err)
	assert.Empty(t, p.ParseEvents([]string{
		"Program data: " + base64.StdEncoding.EncodeToString(data)}))

	// Other event types and garbage are skipped.
	logs := eventLogs(t, p.ID, testEvent)
	logs = append(logs[:4], append([]string{
		"Program data: AAAAAAAAAAAA",
		"Program data: !!!",
	}, logs[4:]...)...)
	assert.Len(t, p.ParseEvents(logs), 1)
}

func TestListeners(t *testing.T) {
	p := New(nil, solana.PublicKey{})
	var got []UserRegisteredEvent
	var slots []uint64
	id1 := p.OnUserRegistered(func(ev UserRegisteredEvent,
		slot uint64, sig solana.Signature) {
		got = append(got, ev)
		slots = append(slots, slot)
	})
	calls2 := 0
	id2 := p.OnUserRegistered(func(UserRegisteredEvent,
		uint64, solana.Signature) {
		calls2++
	})
	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, p.NumListeners())

	logs := eventLogs(t, p.ID, testEvent)
	assert.Equal(t, 1, p.HandleLogs(solana.Signature{}, 42, logs))
	assert.Equal(t, []UserRegisteredEvent{testEvent}, got)
	assert.Equal(t, []uint64{42}, slots)
	assert.Equal(t, 1, calls2)

	p.RemoveListeners(id2, 1000)
	assert.Equal(t, 1, p.NumListeners())
	p.HandleLogs(solana.Signature{}, 43, logs)
	assert.Len(t, got, 2)
	assert.Equal(t, 1, calls2)

	p.RemoveListeners(id1)
	assert.Equal(t, 0, p.NumListeners())
	assert.Equal(t, 1, p.HandleLogs(solana.Signature{}, 44, logs))
	assert.Len(t, got, 2)
}

// fakeWSNode accepts a logsSubscribe request and then sends one
// notification per entry in notifications.
func fakeWSNode(t *testing.T, programID solana.PublicKey,
	notifications [][]string, failed bool) *httptest.Server {
	upgrader := websocket.Upgrader{}
	return httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			conn, err := upgrader.Upgrade(w, r, nil)
			if err != nil {
				return
			}
			defer conn.Close()

			var req struct {
				ID     uint64            `json:"id"`
				Method string            `json:"method"`
				Params []json.RawMessage `json:"params"`
			}
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			assert.Equal(t, "logsSubscribe", req.Method)
			var filter map[string][]string
			json.Unmarshal(req.Params[0], &filter)
			assert.Equal(t, []string{programID.String()}, filter["mentions"])
			conn.WriteJSON(map[string]interface{}{
				"jsonrpc": "2.0", "id": req.ID, "result": 7})

			for _, logs := range notifications {
				var txErr interface{}
				if failed {
					txErr = map[string]interface{}{
						"InstructionError": []interface{}{0,
							map[string]int{"Custom": 6000}}}
				}
				conn.WriteJSON(map[string]interface{}{
					"jsonrpc": "2.0",
					"method":  "logsNotification",
					"params": map[string]interface{}{
						"subscription": 7,
						"result": map[string]interface{}{
							"context": map[string]int{"slot": 99},
							"value": map[string]interface{}{
								"signature": solana.Signature{}.String(),
								"err":       txErr,
								"logs":      logs,
							},
						},
					},
				})
			}
			// Hold the connection open until the client leaves.
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}))
}

func TestSubscriber(t *testing.T) {
	p := New(nil, solana.PublicKey{})
	srv := fakeWSNode(t, p.ID, [][]string{
		eventLogs(t, p.ID, testEvent),
		eventLogs(t, p.ID, testEvent),
	}, false)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var mu sync.Mutex
	var got []UserRegisteredEvent
	p.OnUserRegistered(func(ev UserRegisteredEvent,
		slot uint64, sig solana.Signature) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, uint64(99), slot)
		got = append(got, ev)
		if len(got) == 2 {
			cancel()
		}
	})

	s := Subscriber{Endpoint: "ws" + strings.TrimPrefix(srv.URL, "http"),
		Program: p}
	require.NoError(t, s.Run(ctx))
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []UserRegisteredEvent{testEvent, testEvent}, got)
}

func TestSubscriberSkipsFailedTransactions(t *testing.T) {
	p := New(nil, solana.PublicKey{})
	srv := fakeWSNode(t, p.ID, [][]string{eventLogs(t, p.ID, testEvent)},
		true)
	defer srv.Close()

	calls := 0
	p.OnUserRegistered(func(UserRegisteredEvent, uint64, solana.Signature) {
		calls++
	})
	ctx, cancel := context.WithTimeout(context.Background(),
		200*time.Millisecond)
	defer cancel()
	s := Subscriber{Endpoint: "ws" + strings.TrimPrefix(srv.URL, "http"),
		Program: p}
	require.NoError(t, s.Run(ctx))
	assert.Equal(t, 0, calls)
}

func TestSubscriberErrors(t *testing.T) {
	var s Subscriber
	assert.Equal(t, ErrNoProgram, s.Run(context.Background()))

	s = Subscriber{Endpoint: "ws://127.0.0.1:1",
		Program: New(nil, solana.PublicKey{})}
	assert.Error(t, s.Run(context.Background()))
}
