package throttle

import (
	"time"

	"go.uber.org/zap"
)

// sleep is swappable in tests.
var sleep = time.Sleep

// Throttler spaces consecutive uploads out with a fixed cool-down so
// back-to-back automated publishes don't trip the platform's rate limiting.
type Throttler struct {
	cooldown time.Duration
	logger   *zap.Logger
}

func New(cooldown time.Duration, logger *zap.Logger) *Throttler {
	return &Throttler{cooldown: cooldown, logger: logger}
}

// WaitBetween blocks for the full cool-down after a published item. The last
// item of a run is exempt.
func (t *Throttler) WaitBetween(isLast bool) {
	if isLast {
		return
	}
	t.logger.Info("cooling down before next upload", zap.Duration("cooldown", t.cooldown))
	sleep(t.cooldown)
}
