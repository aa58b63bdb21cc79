package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecoverFromPanic_SwallowsPanic(t *testing.T) {
	finished := false

	func() {
		defer RecoverFromPanic(42)
		finished = true
		panic("сломался обработчик")
	}()

	// Паника погашена, вызывающий код живёт дальше
	assert.True(t, finished)
}

func TestRecoverFromPanic_NoPanicIsNoop(t *testing.T) {
	func() {
		defer RecoverFromPanic(1)
	}()
}
