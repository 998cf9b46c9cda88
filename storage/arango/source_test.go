package arango_test

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/arangodb/go-driver"
	"github.com/go-test/deep"
	"github.com/heimdalr/pathcount"
	"github.com/heimdalr/pathcount/storage/arango"
)

func TestCollectionNames(t *testing.T) {
	if got := arango.VertexCollection("devices"); got != "v-devices" {
		t.Errorf("got %s, want v-devices", got)
	}
	if got := arango.EdgeCollection("devices"); got != "e-devices" {
		t.Errorf("got %s, want e-devices", got)
	}
}

func TestOpen_missingDatabase(t *testing.T) {
	client := someClient(t)
	ctx := context.Background()
	_, err := arango.Open(ctx, "missing-"+uid(), "devices", client)
	if !pathcount.IsStorageError(err) {
		t.Errorf("got %v, want StorageError", err)
	}
}

func TestOpen_missingCollections(t *testing.T) {
	client := someClient(t)
	ctx := context.Background()
	db := someDatabase(t, client)
	_, err := arango.Open(ctx, db.Name(), "missing", client)
	if !pathcount.IsStorageError(err) {
		t.Errorf("got %v, want StorageError", err)
	}
}

func TestSource_Load(t *testing.T) {
	client := someClient(t)
	ctx := context.Background()
	db := someDatabase(t, client)

	vertices, err := db.CreateCollection(ctx, arango.VertexCollection("devices"), nil)
	if err != nil {
		t.Fatal(err)
	}
	edges, err := db.CreateCollection(ctx, arango.EdgeCollection("devices"), &driver.CreateCollectionOptions{
		Type: driver.CollectionTypeEdge,
	})
	if err != nil {
		t.Fatal(err)
	}

	outputs := map[string][]string{
		"you": {"bbb", "ccc"},
		"bbb": {"ddd", "eee"},
		"ccc": {"ddd", "eee", "fff"},
		"ddd": {"ggg"},
		"eee": {"out"},
		"fff": {"out"},
		"ggg": {"out"},
		"out": nil,
	}
	for key := range outputs {
		if _, err := vertices.CreateDocument(ctx, map[string]string{"_key": key}); err != nil {
			t.Fatal(err)
		}
	}
	for from, tos := range outputs {
		for _, to := range tos {
			edge := map[string]string{
				"_from": fmt.Sprintf("%s/%s", vertices.Name(), from),
				"_to":   fmt.Sprintf("%s/%s", vertices.Name(), to),
			}
			if _, err := edges.CreateDocument(ctx, edge); err != nil {
				t.Fatal(err)
			}
		}
	}

	src, err := arango.Open(ctx, db.Name(), "devices", client)
	if err != nil {
		t.Fatal(err)
	}
	g, err := src.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if g.Order() != len(outputs) {
		t.Errorf("got %d devices, want %d", g.Order(), len(outputs))
	}
	// vertices are loaded in key order
	want := []string{"bbb", "ccc", "ddd", "eee", "fff", "ggg", "out", "you"}
	if diff := deep.Equal(g.Nodes(), want); diff != nil {
		t.Error(diff)
	}
	count, err := g.CountPaths(ctx, "you", "out")
	if err != nil {
		t.Fatal(err)
	}
	if count != 5 {
		t.Errorf("got %d, want 5", count)
	}
}

// someClient returns a client for the server given by ARANGODB_HOST and
// ARANGODB_PORT and skips the test, if no host is set.
func someClient(t *testing.T) driver.Client {
	host := os.Getenv("ARANGODB_HOST")
	if host == "" {
		t.Skip("ARANGODB_HOST not set")
	}
	port := os.Getenv("ARANGODB_PORT")
	if port == "" {
		port = "8529"
	}
	client, err := arango.NewClient(arango.Config{
		Endpoints: []string{fmt.Sprintf("http://%s:%s", host, port)},
		Username:  os.Getenv("ARANGODB_USER"),
		Password:  os.Getenv("ARANGODB_PASSWORD"),
	})
	if err != nil {
		t.Fatalf("failed to setup client: %v", err)
	}
	return client
}

// someDatabase creates a fresh database, which is dropped when the test ends.
func someDatabase(t *testing.T, client driver.Client) driver.Database {
	ctx := context.Background()
	db, err := client.CreateDatabase(ctx, "test-"+uid(), nil)
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Remove(context.Background())
	})
	return db
}

func uid() string {
	return strconv.FormatInt(time.Now().UnixNano(), 10)
}
