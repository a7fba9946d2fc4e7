package waitlist

import "context"

// Repository is the store adapter. Insert must reject a second record with
// the same email; implementations report that with EmailAlreadyExistsError.
type Repository interface {
	Insert(ctx context.Context, email Email) (Record, error)
}
