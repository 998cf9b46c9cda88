package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/heimdalr/pathcount"
	"github.com/heimdalr/pathcount/storage/arango"
	neo4jsource "github.com/heimdalr/pathcount/storage/neo4j"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

var errNoInput = errors.New("no input given: use --input, --arango-graph or --neo4j-uri")

// inputFlags select where a graph is loaded from.
type inputFlags struct {
	input string

	arangoEndpoint string
	arangoUser     string
	arangoPassword string
	arangoDatabase string
	arangoGraph    string

	neo4jURI          string
	neo4jUser         string
	neo4jPassword     string
	neo4jDatabase     string
	neo4jLabel        string
	neo4jRelationship string
}

func (f *inputFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.input, "input", "i", "", "device graph text file")

	fs.StringVar(&f.arangoEndpoint, "arango-endpoint", arangoEndpointFromEnv(), "ArangoDB endpoint")
	fs.StringVar(&f.arangoUser, "arango-user", os.Getenv("ARANGODB_USER"), "ArangoDB user")
	fs.StringVar(&f.arangoPassword, "arango-password", os.Getenv("ARANGODB_PASSWORD"), "ArangoDB password")
	fs.StringVar(&f.arangoDatabase, "arango-db", "devices", "ArangoDB database")
	fs.StringVar(&f.arangoGraph, "arango-graph", "", "graph name (collections v-<name> and e-<name>)")

	fs.StringVar(&f.neo4jURI, "neo4j-uri", os.Getenv("NEO4J_URI"), "Neo4j bolt URI")
	fs.StringVar(&f.neo4jUser, "neo4j-user", os.Getenv("NEO4J_USER"), "Neo4j user")
	fs.StringVar(&f.neo4jPassword, "neo4j-password", os.Getenv("NEO4J_PASSWORD"), "Neo4j password")
	fs.StringVar(&f.neo4jDatabase, "neo4j-db", "", "Neo4j database")
	fs.StringVar(&f.neo4jLabel, "neo4j-label", "", "device node label (default Device)")
	fs.StringVar(&f.neo4jRelationship, "neo4j-relationship", "", "output relationship type (default OUTPUT)")
}

// arangoEndpointFromEnv builds the default endpoint from ARANGODB_HOST and
// ARANGODB_PORT.
func arangoEndpointFromEnv() string {
	host := os.Getenv("ARANGODB_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("ARANGODB_PORT")
	if port == "" {
		port = "8529"
	}
	return fmt.Sprintf("http://%s:%s", host, port)
}

// load reads the graph from the selected input. fallback names an input file
// (e.g. the one of a query file); it wins over a Neo4j URI taken from the
// environment but not over --input or --arango-graph.
func (f *inputFlags) load(ctx context.Context, logger zerolog.Logger, fallback string) (*pathcount.Graph, error) {
	switch {
	case f.input != "":
		logger.Debug().Str("file", f.input).Msg("loading graph")
		return pathcount.FileSource{Path: f.input}.Load(ctx)

	case f.arangoGraph != "":
		client, err := arango.NewClient(arango.Config{
			Endpoints: []string{f.arangoEndpoint},
			Username:  f.arangoUser,
			Password:  f.arangoPassword,
		})
		if err != nil {
			return nil, err
		}
		src, err := arango.Open(ctx, f.arangoDatabase, f.arangoGraph, client)
		if err != nil {
			return nil, err
		}
		src.Logger = logger
		return src.Load(ctx)

	case fallback != "":
		logger.Debug().Str("file", fallback).Msg("loading graph")
		return pathcount.FileSource{Path: fallback}.Load(ctx)

	case f.neo4jURI != "":
		src, err := neo4jsource.Open(ctx, neo4jsource.Options{
			URI:          f.neo4jURI,
			Database:     f.neo4jDatabase,
			Username:     f.neo4jUser,
			Password:     f.neo4jPassword,
			Label:        f.neo4jLabel,
			Relationship: f.neo4jRelationship,
		})
		if err != nil {
			return nil, err
		}
		defer func() {
			_ = src.Close(ctx)
		}()
		src.Logger = logger
		return src.Load(ctx)
	}
	return nil, errNoInput
}
