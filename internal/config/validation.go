package config

import (
	"fmt"
	"time"
)

// Validate checks structural invariants after defaults have been applied.
func (c *Config) Validate() error {
	if c.Package.Name == "" {
		return fmt.Errorf("package.name is required")
	}
	if len(c.Matrix.OSes) == 0 {
		return fmt.Errorf("matrix.oses must not be empty")
	}
	if len(c.Matrix.PythonVersions) == 0 {
		return fmt.Errorf("matrix.python_versions must not be empty")
	}
	for i, ex := range c.Matrix.Exclude {
		if ex.OS == "" || ex.Python == "" {
			return fmt.Errorf("matrix.exclude[%d]: both os and python are required", i)
		}
	}
	if c.Upload.ObjectStore.Bucket == "" {
		return fmt.Errorf("upload.object_store.bucket is required")
	}
	if c.Upload.Conda.BaseChannel == "" {
		return fmt.Errorf("upload.conda.base_channel is required")
	}
	if mode := NormalizeRetryBackoff(c.Upload.Retry.Backoff); mode == "" {
		return fmt.Errorf("upload.retry.backoff: unknown mode %q", c.Upload.Retry.Backoff)
	}
	for _, field := range []struct {
		name  string
		value string
	}{
		{"upload.retry.initial_delay", c.Upload.Retry.InitialDelay},
		{"upload.retry.max_delay", c.Upload.Retry.MaxDelay},
		{"daemon.schedule_interval", c.Daemon.ScheduleInterval},
	} {
		if field.value == "" {
			continue
		}
		if _, err := time.ParseDuration(field.value); err != nil {
			return fmt.Errorf("%s: %w", field.name, err)
		}
	}
	if c.Upload.Retry.MaxRetries < 0 {
		return fmt.Errorf("upload.retry.max_retries cannot be negative")
	}
	return nil
}
