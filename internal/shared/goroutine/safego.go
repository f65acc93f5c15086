// Package goroutine launches goroutines that cannot crash the process.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"f3manager/internal/shared/logger"
)

// Go runs fn on a new goroutine and delivers its result on the returned
// channel, which receives exactly one value. A panic in fn is logged with its
// stack trace and delivered as an error.
func Go(log logger.Interface, name string, fn func() error) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("goroutine panicked",
					"goroutine", name,
					"panic", fmt.Sprintf("%v", r),
					"stack", string(debug.Stack()),
				)
				done <- fmt.Errorf("%s panicked: %v", name, r)
			}
		}()
		done <- fn()
	}()
	return done
}
