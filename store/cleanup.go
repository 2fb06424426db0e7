package store

import (
	"sync"
	"time"
)

// cleaner is the background sweep worker. It is created stopped; start and
// stop report whether they changed state, and stop joins the sweep goroutine
// before returning so no sweep can run concurrently with teardown.
type cleaner struct {
	mu       sync.Mutex
	interval time.Duration
	running  bool
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func newCleaner(interval time.Duration) *cleaner {
	return &cleaner{interval: interval}
}

// start launches the periodic sweep loop. Returns false when already
// running. An explicit interval retunes the worker either way: a running
// loop picks it up on its next wait.
func (c *cleaner) start(sweep func(), interval ...time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(interval) > 0 && interval[0] > 0 {
		c.interval = interval[0]
	}
	if c.running {
		return false
	}

	c.running = true
	c.stopCh = make(chan struct{})
	c.doneCh = make(chan struct{})
	go c.run(sweep, c.stopCh, c.doneCh)
	return true
}

// stop signals the loop and blocks until it has exited. Returns false when
// already stopped. The wait is bounded by one in-flight sweep plus one
// interval timer, and in practice the stop signal wakes the loop
// immediately.
func (c *cleaner) stop() bool {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return false
	}
	c.running = false
	stopCh, doneCh := c.stopCh, c.doneCh
	c.mu.Unlock()

	close(stopCh)
	<-doneCh
	return true
}

func (c *cleaner) currentInterval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interval
}

func (c *cleaner) run(sweep func(), stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	for {
		sweep()

		c.mu.Lock()
		interval := c.interval
		c.mu.Unlock()

		timer := time.NewTimer(interval)
		select {
		case <-timer.C:
		case <-stopCh:
			timer.Stop()
			return
		}
	}
}
