// Command schema writes the JSON schema of the digest configuration,
// it is run by go generate in pkg/config to refresh the embedded copy.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/umputun/feeddigest/pkg/config"
)

func main() {
	outputPath := "schema.json"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	schema, err := config.GenerateSchema()
	if err != nil {
		log.Fatalf("failed to generate config schema: %v", err)
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("failed to marshal schema: %v", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(outputPath, data, 0o644); err != nil { //nolint:gosec // schema is committed to the repo
		log.Fatalf("failed to write schema file %s: %v", outputPath, err)
	}

	fmt.Printf("config schema with %d definitions written to %s\n", len(schema.Definitions), outputPath)
}
