package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Parallel2 runs two reads concurrently and returns both results or the
// first error. The shared context is cancelled as soon as one read fails.
//
// Example:
//
//	quotes, ids, err := Parallel2(ctx,
//	    func(ctx context.Context) ([]domain.Quote, error) { return store.Search(ctx, s, q) },
//	    func(ctx context.Context) (map[string]struct{}, error) { return favs.FavoriteIDs(ctx, s) },
//	)
func Parallel2[T1, T2 any](
	ctx context.Context,
	fn1 func(context.Context) (T1, error),
	fn2 func(context.Context) (T2, error),
) (result1 T1, result2 T2, err error) {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var fnErr error

		result1, fnErr = fn1(ctx)

		return fnErr
	})

	g.Go(func() error {
		var fnErr error

		result2, fnErr = fn2(ctx)

		return fnErr
	})

	if err = g.Wait(); err != nil {
		var (
			zero1 T1
			zero2 T2
		)

		return zero1, zero2, fmt.Errorf("parallel execution failed: %w", err)
	}

	return result1, result2, nil
}

// Parallel3 runs three reads concurrently and returns all results or the
// first error. The feed uses it for the quote of the day, the random
// selection and the viewer's favorite IDs.
func Parallel3[T1, T2, T3 any](
	ctx context.Context,
	fn1 func(context.Context) (T1, error),
	fn2 func(context.Context) (T2, error),
	fn3 func(context.Context) (T3, error),
) (result1 T1, result2 T2, result3 T3, err error) {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var fnErr error

		result1, fnErr = fn1(ctx)

		return fnErr
	})

	g.Go(func() error {
		var fnErr error

		result2, fnErr = fn2(ctx)

		return fnErr
	})

	g.Go(func() error {
		var fnErr error

		result3, fnErr = fn3(ctx)

		return fnErr
	})

	if err = g.Wait(); err != nil {
		var (
			zero1 T1
			zero2 T2
			zero3 T3
		)

		return zero1, zero2, zero3, fmt.Errorf("parallel execution failed: %w", err)
	}

	return result1, result2, result3, nil
}
