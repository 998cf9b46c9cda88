// Command pathcount counts device paths in a device graph.
//
// Usage:
//
//	pathcount count --input devices.txt --source you --target out
//	pathcount count --input devices.txt --source svr --target out --require dac,fft
//	pathcount run queries.yaml
//	pathcount dot --input devices.txt --source svr --target out | dot -Tsvg > graph.svg
//	pathcount bench --layers 40 --width 12 --fanout 3 --require dac,fft
//
// Instead of --input, graphs may be loaded from ArangoDB (--arango-graph) or
// Neo4j (--neo4j-uri). ARANGODB_HOST, ARANGODB_PORT, NEO4J_URI, NEO4J_USER and
// NEO4J_PASSWORD provide defaults for the connection flags.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
