// Package app provides the graphlens service application.
package app

import (
	"github.com/spf13/pflag"

	archiveopts "github.com/kart-io/graphlens/pkg/options/archive"
	httpopts "github.com/kart-io/graphlens/pkg/options/http"
	knowledgeopts "github.com/kart-io/graphlens/pkg/options/knowledge"
	logopts "github.com/kart-io/graphlens/pkg/options/logger"
	registryopts "github.com/kart-io/graphlens/pkg/options/registry"
)

// Options contains all graphlens service options.
type Options struct {
	// HTTP contains HTTP server configuration.
	HTTP *httpopts.Options `json:"http" mapstructure:"http"`

	// Log contains logger configuration.
	Log *logopts.Options `json:"log" mapstructure:"log"`

	// Registry contains content registry configuration.
	Registry *registryopts.Options `json:"registry" mapstructure:"registry"`

	// Knowledge contains knowledge toolkit client configuration.
	Knowledge *knowledgeopts.Options `json:"knowledge" mapstructure:"knowledge"`

	// Archive contains raw document archive configuration.
	Archive *archiveopts.Options `json:"archive" mapstructure:"archive"`
}

// NewOptions creates Options with defaults.
func NewOptions() *Options {
	return &Options{
		HTTP:      httpopts.NewOptions(),
		Log:       logopts.NewOptions(),
		Registry:  registryopts.NewOptions(),
		Knowledge: knowledgeopts.NewOptions(),
		Archive:   archiveopts.NewOptions(),
	}
}

// AddFlags adds all option flags to the flagset.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	o.HTTP.AddFlags(fs)
	o.Log.AddFlags(fs)
	o.Registry.AddFlags(fs)
	o.Knowledge.AddFlags(fs, "knowledge.")
	o.Archive.AddFlags(fs, "archive.")
}

// Complete fills in derived defaults.
func (o *Options) Complete() error {
	if o.HTTP == nil {
		o.HTTP = httpopts.NewOptions()
	}
	if o.Log == nil {
		o.Log = logopts.NewOptions()
	}
	if o.Registry == nil {
		o.Registry = registryopts.NewOptions()
	}
	if o.Knowledge == nil {
		o.Knowledge = knowledgeopts.NewOptions()
	}
	if o.Archive == nil {
		o.Archive = archiveopts.NewOptions()
	}
	return nil
}

// Validate validates all options.
func (o *Options) Validate() error {
	if err := o.HTTP.Validate(); err != nil {
		return err
	}
	if err := o.Log.Validate(); err != nil {
		return err
	}
	if err := o.Registry.Validate(); err != nil {
		return err
	}
	if err := o.Knowledge.Validate(); err != nil {
		return err
	}
	return o.Archive.Validate()
}
