// MIT License
//
// Copyright 2025 Solid Labs
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to
// deal in the Software without restriction, including without limitation the
// rights to use, copy, modify, merge, publish, distribute, sublicense, and/or
// sell copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING
// FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS
// IN THE SOFTWARE.

package program

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"sort"
	"strings"

	"github.com/gagliardetto/solana-go"

	"github.com/solid-labs/solid-go/borsh"
)

var userRegisteredDiscriminator = [8]byte{21, 42, 216, 163, 99, 51, 200, 222}

// UserRegisteredEvent is emitted by Register.
type UserRegisteredEvent struct {
	User        solana.PublicKey `json:"user"`
	Username    string           `json:"username"`
	UserAccount solana.PublicKey `json:"userAccount"`
	Identity    solana.PublicKey `json:"identity"`
}

func (ev *UserRegisteredEvent) UnmarshalBinary(data []byte) (err error) {
	c := borsh.NewCursor(data)
	if err := readDiscriminator(c, "userRegistered",
		userRegisteredDiscriminator); err != nil {
		return err
	}
	if ev.User, err = c.ReadPublicKey(); err != nil {
		return fmt.Errorf("userRegistered: user: %w", err)
	}
	if ev.Username, err = c.ReadPrefixedString(); err != nil {
		return fmt.Errorf("userRegistered: username: %w", err)
	}
	if ev.UserAccount, err = c.ReadPublicKey(); err != nil {
		return fmt.Errorf("userRegistered: user account: %w", err)
	}
	if ev.Identity, err = c.ReadPublicKey(); err != nil {
		return fmt.Errorf("userRegistered: identity: %w", err)
	}
	return nil
}

func (ev UserRegisteredEvent) MarshalBinary() ([]byte, error) {
	var w borsh.Writer
	w.WriteBytes(userRegisteredDiscriminator[:])
	w.WritePublicKey(ev.User)
	w.WriteString(ev.Username)
	w.WritePublicKey(ev.UserAccount)
	w.WritePublicKey(ev.Identity)
	return w.Bytes(), nil
}

// UserRegisteredHandler is called for every userRegistered event with the
// slot and signature of the transaction that emitted it.
type UserRegisteredHandler func(ev UserRegisteredEvent,
	slot uint64, sig solana.Signature)

// OnUserRegistered registers h and returns an id for RemoveListeners.
func (p *Program) OnUserRegistered(h UserRegisteredHandler) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = h
	return id
}

// RemoveListeners unregisters the handlers with the given ids. Unknown ids
// are ignored.
func (p *Program) RemoveListeners(ids ...int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, id := range ids {
		delete(p.listeners, id)
	}
}

// NumListeners returns the number of registered handlers.
func (p *Program) NumListeners() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.listeners)
}

func (p *Program) handlers() []UserRegisteredHandler {
	p.mu.RLock()
	defer p.mu.RUnlock()
	ids := make([]int, 0, len(p.listeners))
	for id := range p.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	hs := make([]UserRegisteredHandler, len(ids))
	for i, id := range ids {
		hs[i] = p.listeners[id]
	}
	return hs
}

const (
	logPrefixInvoke = "Program "
	logPrefixData   = "Program data: "
)

// ParseEvents returns the userRegistered events in the logs of a
// transaction. Only data logged while p is the executing program is
// considered. Undecodable data is logged and skipped.
func (p *Program) ParseEvents(logs []string) []UserRegisteredEvent {
	var events []UserRegisteredEvent
	var stack []string
	id := p.ID.String()
	for _, line := range logs {
		if strings.HasPrefix(line, logPrefixData) {
			if len(stack) == 0 || stack[len(stack)-1] != id {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(
				strings.TrimPrefix(line, logPrefixData))
			if err != nil || len(data) < len(userRegisteredDiscriminator) ||
				!bytes.Equal(data[:8], userRegisteredDiscriminator[:]) {
				continue
			}
			var ev UserRegisteredEvent
			if err := ev.UnmarshalBinary(data); err != nil {
				log.Warnf("%v", err)
				continue
			}
			events = append(events, ev)
			continue
		}
		if !strings.HasPrefix(line, logPrefixInvoke) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		switch {
		case fields[2] == "invoke":
			stack = append(stack, fields[1])
		case (fields[2] == "success" || strings.HasPrefix(fields[2], "failed")) &&
			len(stack) > 0 && stack[len(stack)-1] == fields[1]:
			stack = stack[:len(stack)-1]
		}
	}
	return events
}

// HandleLogs parses the userRegistered events in logs and calls every
// registered handler for each of them. It returns the number of events found.
func (p *Program) HandleLogs(sig solana.Signature,
	slot uint64, logs []string) int {
	events := p.ParseEvents(logs)
	if len(events) == 0 {
		return 0
	}
	hs := p.handlers()
	for _, ev := range events {
		log.WithField("signature", sig).
			Debugf("userRegistered: %v", ev.Username)
		for _, h := range hs {
			h(ev, slot, sig)
		}
	}
	return len(events)
}
