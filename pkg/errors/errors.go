package errors

import "errors"

// ErrOptimisticLock reports that a row changed between read and write.
var ErrOptimisticLock = errors.New("record was modified concurrently, reload and retry")
