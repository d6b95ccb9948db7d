package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	Provider   string
	Model      string
	Dictionary string
	Forbidden  string
	NoProgress bool

	// Dispatch tuning
	Concurrency int
	Stagger     time.Duration

	// Retry tuning
	MaxAttempts int
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Provider:    "openai",
		Concurrency: 4,
		Stagger:     50 * time.Millisecond,
		MaxAttempts: 4,
	}
}
