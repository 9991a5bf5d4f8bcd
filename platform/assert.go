package platform

import "go.uber.org/zap"

// Assert terminates the process when cond is false. An assertion failure is
// an internal invariant violation with no recovery path, consistent with an
// embedded target that has no structured exception handling. It is not an
// error callers can observe, so there is no error-returning variant.
func Assert(cond bool, msg string) {
	if !cond {
		Logger().Fatal("assertion failure", zap.String("invariant", msg))
	}
}
