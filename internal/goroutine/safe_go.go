package goroutine

import (
	"runtime/debug"

	"github.com/ignatzorin/seeforge-backend/internal/logger"
)

// SafeGo запускает горутину с обработкой panic.
func SafeGo(name string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Log.WithField("goroutine", name).
					WithField("stack", string(debug.Stack())).
					Errorf("panic в горутине: %v", r)
			}
		}()
		fn()
	}()
}
