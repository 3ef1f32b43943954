package config

// DaemonConfig controls the long-running scheduler mode.
type DaemonConfig struct {
	ScheduleInterval string `yaml:"schedule_interval,omitempty"` // duration between scheduled nightly runs
	MetricsAddr      string `yaml:"metrics_addr,omitempty"`      // Prometheus listen address, empty disables
	JournalPath      string `yaml:"journal_path,omitempty"`      // sqlite run journal location
	NATSURL          string `yaml:"nats_url,omitempty"`          // empty disables run-event publishing
	NATSSubject      string `yaml:"nats_subject,omitempty"`
}
