package dispatcher

import (
	"alfaaz/internal/config"
	"time"
)

type Config struct {
	// MaxWorkers bounds the number of live workers.
	MaxWorkers int
	// QueueWait is how long a caller waits for a free worker; zero fails fast.
	QueueWait time.Duration
	// TaskTimeout bounds one task from spawn to settlement; zero disables it.
	TaskTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxWorkers:  8,
		QueueWait:   5 * time.Second,
		TaskTimeout: 45 * time.Second,
	}
}

func FromPool(p config.Pool) Config {
	return Config{
		MaxWorkers:  p.MaxWorkers,
		QueueWait:   p.QueueWait,
		TaskTimeout: p.TaskTimeout,
	}
}
