package services

import "context"

// Service is a single use case. Decorators wrap a Service to add steps
// around it without changing its signature.
type Service[T any, S any] interface {
	Run(ctx context.Context, input T) (S, error)
}
