package goroutine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"f3manager/internal/shared/logger"
)

func TestGo_DeliversResult(t *testing.T) {
	want := errors.New("listener closed")

	err := <-Go(logger.NewNopLogger(), "worker", func() error { return want })
	assert.ErrorIs(t, err, want)

	err = <-Go(logger.NewNopLogger(), "worker", func() error { return nil })
	assert.NoError(t, err)
}

func TestGo_RecoversPanic(t *testing.T) {
	err := <-Go(logger.NewNopLogger(), "http-server", func() error {
		panic("boom")
	})
	assert.EqualError(t, err, "http-server panicked: boom")
}
