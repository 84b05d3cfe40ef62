//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Pipeline groups targets that run the built CLI against the local corpus.
type Pipeline mg.Namespace

func bin() string { return filepath.Join(binDir, binName) }

// Import loads datasets/ into the sqlite metadata store at index/metadata.db.
func (Pipeline) Import() error {
	mg.Deps(Init, Build)
	return sh.RunV(bin(), "store", "import", "--db", "index/metadata.db")
}

// Export writes every publication's detail to out/details.json.
func (Pipeline) Export() error {
	mg.Deps(Init, Build)
	return sh.RunV(bin(), "export", "--format", "json", "--out", "out/details.json")
}

// Serve starts the HTTP server with metadata enrichment and a 10m reload.
func (Pipeline) Serve() error {
	mg.Deps(Pipeline.Import)
	return sh.RunV(bin(), "serve", "--db", "index/metadata.db", "--reload-interval", "10m")
}
