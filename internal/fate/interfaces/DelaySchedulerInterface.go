package interfaces

import "time"

type CancelableInterface interface {
	Stop() bool
}

// DelaySchedulerInterface runs fn once after d on its own goroutine.
type DelaySchedulerInterface interface {
	AfterFunc(d time.Duration, fn func()) CancelableInterface
}
