package input

import "time"

// AfterFuncScheduler schedules callbacks with time.AfterFunc.
type AfterFuncScheduler struct{}

// Schedule arms fn to run after d.
func (AfterFuncScheduler) Schedule(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Cancel stops t if it has not fired.
func (AfterFuncScheduler) Cancel(t Timer) {
	if t != nil {
		t.Stop()
	}
}
