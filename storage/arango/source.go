// Package arango loads device graphs stored in ArangoDB.
//
// A graph named "name" lives in the vertex collection "v-name" and the edge
// collection "e-name" of a database. The vertex key is the device id; every
// edge document points from a device to one of its outputs.
package arango

import (
	"context"
	"fmt"

	"github.com/arangodb/go-driver"
	"github.com/arangodb/go-driver/http"
	"github.com/heimdalr/pathcount"
	"github.com/rs/zerolog"
)

// Source is a read-only device graph in ArangoDB.
type Source struct {
	DB       driver.Database
	Vertices driver.Collection
	Edges    driver.Collection
	Logger   zerolog.Logger
}

type edgeDoc struct {
	From string `json:"_from"`
	To   string `json:"_to"`
}

// Config describes how to connect to ArangoDB.
type Config struct {
	Endpoints []string
	Username  string
	Password  string
	Database  string
	Graph     string
}

// NewClient creates an HTTP based ArangoDB client for cfg.
func NewClient(cfg Config) (driver.Client, error) {
	conn, err := http.NewConnection(http.ConnectionConfig{Endpoints: cfg.Endpoints})
	if err != nil {
		return nil, pathcount.StorageError(err, "failed to setup connection")
	}
	clientConfig := driver.ClientConfig{Connection: conn}
	if cfg.Username != "" {
		clientConfig.Authentication = driver.BasicAuthentication(cfg.Username, cfg.Password)
	}
	client, err := driver.NewClient(clientConfig)
	if err != nil {
		return nil, pathcount.StorageError(err, "failed to setup client")
	}
	return client, nil
}

// Open connects to the graph graphName in the database dbName.
//
// Open returns an error, if the database or one of the collections doesn't
// exist. Nothing is ever created.
func Open(ctx context.Context, dbName, graphName string, client driver.Client) (s *Source, err error) {

	var exists bool
	if exists, err = client.DatabaseExists(ctx, dbName); err != nil {
		return nil, pathcount.StorageError(err, "failed to look up database '%s'", dbName)
	}
	if !exists {
		return nil, pathcount.NewError(pathcount.ErrStorage, "database '%s' doesn't exist", dbName)
	}
	var db driver.Database
	if db, err = client.Database(ctx, dbName); err != nil {
		return nil, pathcount.StorageError(err, "failed to open database '%s'", dbName)
	}

	var vertices, edges driver.Collection
	if vertices, err = openCollection(ctx, db, VertexCollection(graphName)); err != nil {
		return nil, err
	}
	if edges, err = openCollection(ctx, db, EdgeCollection(graphName)); err != nil {
		return nil, err
	}

	return &Source{DB: db, Vertices: vertices, Edges: edges, Logger: zerolog.Nop()}, nil
}

// VertexCollection returns the name of the vertex collection of graphName.
func VertexCollection(graphName string) string {
	return fmt.Sprintf("%s-%s", "v", graphName)
}

// EdgeCollection returns the name of the edge collection of graphName.
func EdgeCollection(graphName string) string {
	return fmt.Sprintf("%s-%s", "e", graphName)
}

func openCollection(ctx context.Context, db driver.Database, name string) (driver.Collection, error) {
	exists, err := db.CollectionExists(ctx, name)
	if err != nil {
		return nil, pathcount.StorageError(err, "failed to look up collection '%s'", name)
	}
	if !exists {
		return nil, pathcount.NewError(pathcount.ErrStorage, "collection '%s' doesn't exist", name)
	}
	coll, err := db.Collection(ctx, name)
	if err != nil {
		return nil, pathcount.StorageError(err, "failed to open collection '%s'", name)
	}
	return coll, nil
}

// Load implements pathcount.Source. Vertices are read in key order; edges in
// (from, key) order so repeated loads build identical graphs.
func (s *Source) Load(ctx context.Context) (g *pathcount.Graph, err error) {
	b := pathcount.NewBuilder()

	var cursor driver.Cursor

	// read all vertices
	query := "FOR v IN @@vertexCollection SORT v._key RETURN v"
	bindVars := map[string]interface{}{
		"@vertexCollection": s.Vertices.Name(),
	}
	if cursor, err = s.DB.Query(ctx, query, bindVars); err != nil {
		return nil, pathcount.StorageError(err, "failed to query vertices")
	}
	var vertexCount int
	for {
		meta, errRead := cursor.ReadDocument(ctx, &struct{}{})
		if driver.IsNoMoreDocuments(errRead) {
			break
		}
		if errRead != nil {
			_ = cursor.Close()
			return nil, pathcount.StorageError(errRead, "failed to read vertex")
		}
		b.AddNode(meta.Key)
		vertexCount++
	}
	if err = cursor.Close(); err != nil {
		return nil, pathcount.StorageError(err, "failed to close vertex cursor")
	}

	// read all edges
	query = "FOR e IN @@edgeCollection SORT e._from, e._key RETURN e"
	bindVars = map[string]interface{}{
		"@edgeCollection": s.Edges.Name(),
	}
	if cursor, err = s.DB.Query(ctx, query, bindVars); err != nil {
		return nil, pathcount.StorageError(err, "failed to query edges")
	}
	var edgeCount int
	for {
		var edge edgeDoc
		_, errRead := cursor.ReadDocument(ctx, &edge)
		if driver.IsNoMoreDocuments(errRead) {
			break
		}
		if errRead != nil {
			_ = cursor.Close()
			return nil, pathcount.StorageError(errRead, "failed to read edge")
		}
		b.AddEdge(driver.DocumentID(edge.From).Key(), driver.DocumentID(edge.To).Key())
		edgeCount++
	}
	if err = cursor.Close(); err != nil {
		return nil, pathcount.StorageError(err, "failed to close edge cursor")
	}

	s.Logger.Debug().
		Str("vertices", s.Vertices.Name()).
		Int("vertexCount", vertexCount).
		Int("edgeCount", edgeCount).
		Msg("graph loaded from arangodb")
	return b.Build(), nil
}
