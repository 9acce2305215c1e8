package stats

import "time"

const (
	// common broadcast limit for characters per subtitle line
	DefaultLongLineThreshold = 42
	DefaultShortDuration     = 900 * time.Millisecond
)

// thresholds used when flagging cues
type Config struct {
	LongLineThreshold int
	ShortDuration     time.Duration
}

func DefaultConfig() Config {
	return Config{
		LongLineThreshold: DefaultLongLineThreshold,
		ShortDuration:     DefaultShortDuration,
	}
}

func (c Config) withDefaults() Config {
	if c.LongLineThreshold <= 0 {
		c.LongLineThreshold = DefaultLongLineThreshold
	}
	if c.ShortDuration <= 0 {
		c.ShortDuration = DefaultShortDuration
	}
	return c
}
