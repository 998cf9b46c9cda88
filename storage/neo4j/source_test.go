package neo4j

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/heimdalr/pathcount"
	neo4jdriver "github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{
			name: "defaults",
			want: "MATCH (d:Device) OPTIONAL MATCH (d)-[:OUTPUT]->(o:Device) " +
				"RETURN d.name AS device, collect(o.name) AS outputs ORDER BY device",
		},
		{
			name: "custom",
			opts: Options{Label: "Rack", Relationship: "FEEDS", NameProperty: "id"},
			want: "MATCH (d:Rack) OPTIONAL MATCH (d)-[:FEEDS]->(o:Rack) " +
				"RETURN d.id AS device, collect(o.id) AS outputs ORDER BY device",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildQuery(tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildQuery_invalid(t *testing.T) {
	for _, opts := range []Options{
		{Label: "Device) DETACH DELETE (d"},
		{Relationship: "OUT-PUT"},
		{NameProperty: "1name"},
	} {
		_, err := buildQuery(opts)
		if !pathcount.IsStorageError(err) {
			t.Errorf("got %v, want StorageError for %+v", err, opts)
		}
	}
}

func TestOpen_noURI(t *testing.T) {
	_, err := Open(context.Background(), Options{})
	if !pathcount.IsStorageError(err) {
		t.Errorf("got %v, want StorageError", err)
	}
}

func TestSource_Load(t *testing.T) {
	uri := os.Getenv("NEO4J_URI")
	if uri == "" {
		t.Skip("NEO4J_URI not set")
	}
	ctx := context.Background()
	opts := Options{
		URI:          uri,
		Username:     os.Getenv("NEO4J_USER"),
		Password:     os.Getenv("NEO4J_PASSWORD"),
		Label:        "PathcountTestDevice",
		Relationship: "PATHCOUNT_TEST_OUTPUT",
	}
	src, err := Open(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = src.Close(ctx)
	})

	edges := strings.Fields("you:bbb you:ccc bbb:ddd bbb:eee ccc:ddd ccc:eee ccc:fff ddd:ggg eee:out fff:out ggg:out")
	cleanup := "MATCH (d:PathcountTestDevice) DETACH DELETE d"
	write := func(query string, params map[string]any) {
		session := src.driver.NewSession(ctx, neo4jdriver.SessionConfig{
			AccessMode: neo4jdriver.AccessModeWrite,
		})
		defer session.Close(ctx)
		res, err := session.Run(ctx, query, params)
		if err == nil {
			_, err = res.Consume(ctx)
		}
		if err != nil {
			t.Fatal(err)
		}
	}
	write(cleanup, nil)
	t.Cleanup(func() { write(cleanup, nil) })
	for _, e := range edges {
		from, to, _ := strings.Cut(e, ":")
		write("MERGE (a:PathcountTestDevice {name: $from}) "+
			"MERGE (b:PathcountTestDevice {name: $to}) "+
			"CREATE (a)-[:PATHCOUNT_TEST_OUTPUT]->(b)",
			map[string]any{"from": from, "to": to})
	}

	g, err := src.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if g.Order() != 8 || g.Size() != len(edges) {
		t.Errorf("got %d devices and %d edges, want 8 and %d", g.Order(), g.Size(), len(edges))
	}
	count, err := g.CountPaths(ctx, "you", "out")
	if err != nil {
		t.Fatal(err)
	}
	if count != 5 {
		t.Errorf("got %d, want 5", count)
	}
}
