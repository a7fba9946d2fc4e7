package confirmation

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

var ErrFakeNetwork = errors.New("dial tcp: connection reset by peer")

type FakeSender struct {
	Sent []Message
	// Err, when set, is returned by every Send.
	Err error
	// WaitForContext makes Send block until ctx is done.
	WaitForContext bool
	lock           sync.Mutex
	calls          int
}

func NewFakeSender() *FakeSender {
	return &FakeSender{}
}

func (s *FakeSender) Send(ctx context.Context, m Message) (MessageID, error) {
	s.lock.Lock()
	s.calls++
	s.lock.Unlock()

	if s.WaitForContext {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if s.Err != nil {
		return "", s.Err
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Sent = append(s.Sent, m)
	return MessageID(fmt.Sprintf("fake-%d", len(s.Sent))), nil
}

func (s *FakeSender) Calls() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.calls
}

func (s *FakeSender) LastSent() Message {
	s.lock.Lock()
	defer s.lock.Unlock()
	l := len(s.Sent)
	if l == 0 {
		panic("Sent count is 0.")
	}
	return s.Sent[l-1]
}
