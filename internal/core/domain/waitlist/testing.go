package waitlist

import (
	"context"
	"errors"
	"sync"
	"time"
)

type FakeRepository struct {
	Records []Record
	// Err, when set, is returned by every Insert.
	Err error
	// WaitForContext makes Insert block until ctx is done.
	WaitForContext bool
	Now            func() time.Time

	insertCalls int
	lock        sync.Mutex
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		Records: make([]Record, 0, 10),
		Now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *FakeRepository) Insert(ctx context.Context, email Email) (rec Record, err error) {
	r.lock.Lock()
	r.insertCalls++
	r.lock.Unlock()

	if r.WaitForContext {
		<-ctx.Done()
		return rec, ctx.Err()
	}
	if r.Err != nil {
		return rec, r.Err
	}

	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Records {
		if existing.Email == email {
			return rec, &EmailAlreadyExistsError{
				Email: email,
				Cause: `duplicate key value violates unique constraint "waitlist_email_key"`,
			}
		}
	}
	rec = Record{ID: ID(len(r.Records) + 1), Email: email, CreatedAt: r.Now()}
	r.Records = append(r.Records, rec)
	return rec, nil
}

func (r *FakeRepository) InsertCalls() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.insertCalls
}

var ErrFakeStoreUnavailable = errors.New("connection refused")
