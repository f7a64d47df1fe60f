package sequencer

import (
	"sync"
	"time"
)

// Scheduler runs a callback repeatedly until the returned cancel func is called.
type Scheduler interface {
	Repeat(interval time.Duration, fn func()) (cancel func())
}

// TickerScheduler fires callbacks from a time.Ticker goroutine.
type TickerScheduler struct{}

func (TickerScheduler) Repeat(interval time.Duration, fn func()) func() {
	ticker := time.NewTicker(interval)
	stop := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(stop) }) }
}
