package observability

import (
	"fmt"
	"runtime/debug"

	"github.com/sirupsen/logrus"
)

// RecoverError converts a recovered panic value into an error, logging the
// stack trace at Error level. It returns nil when r is nil.
//
// Usage in worker goroutines:
//
//	eg.Go(func() (err error) {
//		defer func() {
//			err = observability.RecoverError(log, "parse member", recover(), err)
//		}()
//		// ... code that might panic
//	})
//
// err is returned unchanged when nothing panicked.
func RecoverError(log logrus.FieldLogger, where string, r interface{}, err error) error {
	if r == nil {
		return err
	}
	if log != nil {
		log.WithFields(logrus.Fields{
			"panic":   r,
			"stack":   string(debug.Stack()),
			"context": where,
		}).Error("PANIC recovered")
	}
	return fmt.Errorf("panic in %s: %v", where, r)
}
