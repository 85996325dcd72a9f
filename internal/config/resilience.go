package config

import (
	"time"

	"pharma_qms/internal/retry"
)

// ResilienceConfig groups the retry budgets for remote calls. Only table
// reads are retried; appends and uploads run once so a single submit can
// never produce two rows or two files.
type ResilienceConfig struct {
	TableRead retry.Config
}

var DefaultResilienceConfig = ResilienceConfig{
	TableRead: retry.Config{
		MaxRetries: 3,
		BaseDelay:  2 * time.Second,
		MaxDelay:   30 * time.Second,
		Timeout:    15 * time.Second,
	},
}
