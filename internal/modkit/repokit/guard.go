package repokit

import (
	"context"
	"fmt"
	"time"
)

// guardTimeout bounds a boot check when ctx has no deadline
const guardTimeout = 5 * time.Second

type guarder interface {
	Guard(context.Context) error
}

// MustGuard pings every configured backend and panics when one does not answer
// binaries call it once after store.Open so a dead backend fails the boot, not the first request
func MustGuard(ctx context.Context, st guarder) {
	if st == nil {
		panic("repokit: nil store")
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, guardTimeout)
		defer cancel()
	}
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("dependency guard failed: %w", err))
	}
}
