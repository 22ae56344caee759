package fate

import (
	"memento/internal/fate/interfaces"
	"time"
)

type TimerScheduler struct{}

func (TimerScheduler) AfterFunc(d time.Duration, fn func()) interfaces.CancelableInterface {
	return time.AfterFunc(d, fn)
}

func NewTimerScheduler() interfaces.DelaySchedulerInterface {
	return TimerScheduler{}
}
