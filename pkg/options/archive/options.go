// Package archive provides options for the raw document archive.
package archive

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Options contains archive storage configuration.
type Options struct {
	// Root is the directory under which raw documents are stored.
	Root string `json:"root" mapstructure:"root"`
}

// NewOptions creates new Options with defaults.
func NewOptions() *Options {
	return &Options{
		Root: "data/archive",
	}
}

// AddFlags adds flags to the flagset.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefix string) {
	fs.StringVar(&o.Root, prefix+"root", o.Root, "Root directory for raw document storage")
}

// Validate validates the options.
func (o *Options) Validate() error {
	if o.Root == "" {
		return fmt.Errorf("archive root is required")
	}
	return nil
}
