// Package knowledge provides options for the knowledge toolkit client.
package knowledge

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// Options contains knowledge toolkit client configuration.
type Options struct {
	// Endpoint is the toolkit sidecar base URL.
	Endpoint string `json:"endpoint" mapstructure:"endpoint"`

	// Timeout for toolkit requests.
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`

	// MaxRetries is the maximum number of retries for failed requests.
	MaxRetries int `json:"max-retries" mapstructure:"max-retries"`

	// TopK is the number of chunks requested for vector retrieval.
	TopK int `json:"top-k" mapstructure:"top-k"`
}

// NewOptions creates new Options with defaults.
func NewOptions() *Options {
	return &Options{
		Endpoint:   "http://localhost:8801",
		Timeout:    120 * time.Second,
		MaxRetries: 3,
		TopK:       5,
	}
}

// AddFlags adds flags to the flagset.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefix string) {
	fs.StringVar(&o.Endpoint, prefix+"endpoint", o.Endpoint, "Knowledge toolkit base URL")
	fs.DurationVar(&o.Timeout, prefix+"timeout", o.Timeout, "Toolkit request timeout")
	fs.IntVar(&o.MaxRetries, prefix+"max-retries", o.MaxRetries, "Max retries for failed requests")
	fs.IntVar(&o.TopK, prefix+"top-k", o.TopK, "Number of chunks for vector retrieval")
}

// Validate validates the options.
func (o *Options) Validate() error {
	if o.Endpoint == "" {
		return fmt.Errorf("knowledge endpoint is required")
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("knowledge timeout must be positive")
	}
	if o.TopK <= 0 {
		return fmt.Errorf("knowledge top-k must be positive")
	}
	return nil
}
