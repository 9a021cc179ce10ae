package browser

import (
	"sync/atomic"
	"time"
)

// activity tracks in flight requests and the last DOM change so a Tab can
// decide when a page has settled
type activity struct {
	requestCount   int32
	lastNodeChange atomic.Value
}

func newActivity() *activity {
	a := &activity{}
	a.lastNodeChange.Store(time.Now())
	return a
}

func (a *activity) IncRequest() {
	atomic.AddInt32(&a.requestCount, 1)
}

func (a *activity) DecRequest() {
	// requests sent before Network.enable finish without being counted
	if atomic.AddInt32(&a.requestCount, -1) < 0 {
		atomic.StoreInt32(&a.requestCount, 0)
	}
}

func (a *activity) GetRequests() int32 {
	return atomic.LoadInt32(&a.requestCount)
}

func (a *activity) NodeChanged() {
	a.lastNodeChange.Store(time.Now())
}

// StableFor is true when no node changed for d and nothing is in flight
func (a *activity) StableFor(d time.Duration) bool {
	changeTime, ok := a.lastNodeChange.Load().(time.Time)
	if !ok {
		return false
	}
	return time.Since(changeTime) >= d && a.GetRequests() == 0
}
