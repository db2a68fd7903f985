// Generates sample files for trying out the CLI.
//
// Run from the repository root:
//
//	go run ./testdata
package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/boringdata/datacat/internal/table"
)

const users = `id,name,age,score
1,alice,30,95.5
2,bob,25,82.3
3,charlie,35,88.7
4,diana,28,91.2
5,eve,42,76.8
`

func main() {
	ctx := context.Background()
	dir := "testdata"
	if _, err := os.Stat(dir); err != nil {
		dir = "."
	}

	csvPath := filepath.Join(dir, "users.csv")
	if err := os.WriteFile(csvPath, []byte(users), 0o644); err != nil {
		log.Fatal(err)
	}

	tbl, err := table.Load(ctx, csvPath, table.Options{Header: true})
	if err != nil {
		log.Fatal(err)
	}
	defer tbl.Release()

	for _, name := range []string{"users.parquet", "users.json"} {
		path := filepath.Join(dir, name)
		if err := table.Write(ctx, tbl, path); err != nil {
			log.Fatal(err)
		}
		log.Printf("generated %s with %d rows", path, tbl.NumRows())
	}
}
