// Package neo4j loads device graphs stored in Neo4j (or any Bolt compatible
// openCypher endpoint).
//
// Devices are nodes with a configurable label (default "Device") carrying
// their id in a name property; outputs are relationships of a configurable
// type (default "OUTPUT").
package neo4j

import (
	"context"
	"fmt"
	"regexp"

	"github.com/heimdalr/pathcount"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog"
)

const (
	defaultLabel        = "Device"
	defaultRelationship = "OUTPUT"
	defaultNameProperty = "name"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Options configures a Source.
type Options struct {
	URI            string
	Database       string
	Username       string
	Password       string
	MaxConnections int

	Label        string
	Relationship string
	NameProperty string
}

// Source is a read-only device graph in Neo4j.
type Source struct {
	driver   neo4j.DriverWithContext
	database string
	query    string
	Logger   zerolog.Logger
}

// Open establishes a Bolt connection and verifies connectivity.
func Open(ctx context.Context, opts Options) (*Source, error) {
	if opts.URI == "" {
		return nil, pathcount.NewError(pathcount.ErrStorage, "neo4j URI is required")
	}
	query, err := buildQuery(opts)
	if err != nil {
		return nil, err
	}

	auth := neo4j.NoAuth()
	if opts.Username != "" {
		auth = neo4j.BasicAuth(opts.Username, opts.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(opts.URI, auth, func(c *neo4j.Config) {
		if opts.MaxConnections > 0 {
			c.MaxConnectionPoolSize = opts.MaxConnections
		}
	})
	if err != nil {
		return nil, pathcount.StorageError(err, "create neo4j driver")
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, pathcount.StorageError(err, "verify graph connectivity")
	}

	return &Source{
		driver:   driver,
		database: opts.Database,
		query:    query,
		Logger:   zerolog.Nop(),
	}, nil
}

// buildQuery renders the load query. Labels, relationship types and property
// names cannot be passed as parameters, so they are validated instead.
func buildQuery(opts Options) (string, error) {
	label := orDefault(opts.Label, defaultLabel)
	rel := orDefault(opts.Relationship, defaultRelationship)
	prop := orDefault(opts.NameProperty, defaultNameProperty)
	for _, id := range []string{label, rel, prop} {
		if !identifier.MatchString(id) {
			return "", pathcount.NewError(pathcount.ErrStorage, "invalid identifier '%s'", id)
		}
	}
	return fmt.Sprintf(
		"MATCH (d:%[1]s) "+
			"OPTIONAL MATCH (d)-[:%[2]s]->(o:%[1]s) "+
			"RETURN d.%[3]s AS device, collect(o.%[3]s) AS outputs "+
			"ORDER BY device",
		label, rel, prop), nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Load implements pathcount.Source.
func (s *Source) Load(ctx context.Context) (*pathcount.Graph, error) {
	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: s.database,
		AccessMode:   neo4j.AccessModeRead,
	})
	defer session.Close(ctx)

	res, err := session.Run(ctx, s.query, nil)
	if err != nil {
		return nil, pathcount.StorageError(err, "failed to query devices")
	}

	b := pathcount.NewBuilder()
	var devices int
	for res.Next(ctx) {
		rec := res.Record()
		device, ok := stringValue(rec, "device")
		if !ok || device == "" {
			continue
		}
		raw, _ := rec.Get("outputs")
		list, _ := raw.([]any)
		outputs := make([]string, 0, len(list))
		for _, o := range list {
			if name, ok := o.(string); ok && name != "" {
				outputs = append(outputs, name)
			}
		}
		b.Declare(device, outputs...)
		devices++
	}
	if err := res.Err(); err != nil {
		return nil, pathcount.StorageError(err, "failed to read devices")
	}

	s.Logger.Debug().Int("devices", devices).Msg("graph loaded from neo4j")
	return b.Build(), nil
}

// Close releases the driver.
func (s *Source) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

func stringValue(rec *neo4j.Record, key string) (string, bool) {
	v, ok := rec.Get(key)
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}
