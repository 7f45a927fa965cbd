// Package registry provides options for the content registry backend.
package registry

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// Supported registry drivers.
const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

// Options contains content registry configuration.
type Options struct {
	// Driver selects the backend (sqlite|mongo).
	Driver string `json:"driver" mapstructure:"driver"`

	// DSN is the sqlite data source name. ":memory:" keeps the registry
	// in-process, which is what tests use.
	DSN string `json:"dsn" mapstructure:"dsn"`

	// MongoURI is the mongodb connection string.
	MongoURI string `json:"mongo-uri" mapstructure:"mongo-uri"`

	// MongoDatabase is the mongodb database name.
	MongoDatabase string `json:"mongo-database" mapstructure:"mongo-database"`

	// MongoCollection is the mongodb collection name.
	MongoCollection string `json:"mongo-collection" mapstructure:"mongo-collection"`

	// ConnectTimeout bounds backend connection establishment.
	ConnectTimeout time.Duration `json:"connect-timeout" mapstructure:"connect-timeout"`
}

// NewOptions creates new Options with defaults.
func NewOptions() *Options {
	return &Options{
		Driver:          DriverSQLite,
		DSN:             "data/registry.db",
		MongoURI:        "mongodb://localhost:27017",
		MongoDatabase:   "graphlens",
		MongoCollection: "ingestion_records",
		ConnectTimeout:  10 * time.Second,
	}
}

// AddFlags adds flags to the flagset.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Driver, "registry.driver", o.Driver, "Registry backend driver (sqlite, mongo)")
	fs.StringVar(&o.DSN, "registry.dsn", o.DSN, "SQLite data source name")
	fs.StringVar(&o.MongoURI, "registry.mongo-uri", o.MongoURI, "MongoDB connection URI")
	fs.StringVar(&o.MongoDatabase, "registry.mongo-database", o.MongoDatabase, "MongoDB database name")
	fs.StringVar(&o.MongoCollection, "registry.mongo-collection", o.MongoCollection, "MongoDB collection name")
	fs.DurationVar(&o.ConnectTimeout, "registry.connect-timeout", o.ConnectTimeout, "Backend connect timeout")
}

// Validate validates the options.
func (o *Options) Validate() error {
	switch o.Driver {
	case DriverSQLite:
		if o.DSN == "" {
			return fmt.Errorf("registry.dsn is required for the sqlite driver")
		}
	case DriverMongo:
		if o.MongoURI == "" {
			return fmt.Errorf("registry.mongo-uri is required for the mongo driver")
		}
		if o.MongoDatabase == "" || o.MongoCollection == "" {
			return fmt.Errorf("registry.mongo-database and registry.mongo-collection are required")
		}
	default:
		return fmt.Errorf("registry.driver must be %q or %q", DriverSQLite, DriverMongo)
	}
	return nil
}
