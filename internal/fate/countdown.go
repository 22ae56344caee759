package fate

import (
	"sync"
	"time"

	"github.com/roylee0704/gron"
)

type CountdownState int

const (
	CountdownActive CountdownState = iota
	CountdownExpired
)

func (s CountdownState) String() string {
	if s == CountdownExpired {
		return "expired"
	}
	return "active"
}

// Countdown recomputes the remaining breakdown towards a fixed target once
// per interval. Once the target is reached it publishes a single zero
// breakdown and never recomputes again.
type Countdown struct {
	target   time.Time
	interval time.Duration
	now      func() time.Time
	publish  func(remaining Breakdown, expired bool)

	mu      sync.Mutex
	state   CountdownState
	current Breakdown
	cron    *gron.Cron
	stopped bool
}

func NewCountdown(target time.Time, interval time.Duration, now func() time.Time, publish func(Breakdown, bool)) *Countdown {
	if now == nil {
		now = time.Now
	}
	if interval < time.Second {
		interval = time.Second
	}
	c := &Countdown{
		target:   target,
		interval: interval,
		now:      now,
		publish:  publish,
	}
	if remaining := target.Sub(now()); remaining > 0 {
		c.current = Decompose(int64(remaining / time.Second))
	} else {
		c.state = CountdownExpired
	}
	return c
}

func (c *Countdown) Target() time.Time {
	return c.target
}

// Current returns the last published breakdown.
func (c *Countdown) Current() (Breakdown, CountdownState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current, c.state
}

// Tick performs one recomputation. It is a no-op once expired or stopped.
func (c *Countdown) Tick() {
	c.mu.Lock()
	if c.stopped || c.state == CountdownExpired {
		c.mu.Unlock()
		return
	}

	remaining := c.target.Sub(c.now())
	if remaining > 0 {
		c.current = Decompose(int64(remaining / time.Second))
		current := c.current
		c.mu.Unlock()
		c.emit(current, false)
		return
	}

	c.state = CountdownExpired
	c.current = Breakdown{}
	c.mu.Unlock()

	c.emit(Breakdown{}, true)
	c.Stop()
}

// Start arms the periodic schedule. Expired or stopped countdowns stay idle.
func (c *Countdown) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped || c.cron != nil || c.state == CountdownExpired {
		return
	}
	c.cron = gron.New()
	c.cron.AddFunc(gron.Every(c.interval), c.Tick)
	c.cron.Start()
}

// Stop cancels the schedule permanently. Safe to call more than once.
func (c *Countdown) Stop() {
	c.mu.Lock()
	if c.stopped {
		c.mu.Unlock()
		return
	}
	c.stopped = true
	cron := c.cron
	c.mu.Unlock()

	if cron != nil {
		cron.Stop()
	}
}

func (c *Countdown) emit(b Breakdown, expired bool) {
	if c.publish != nil {
		c.publish(b, expired)
	}
}
