// Package hcl implements the HCL lattice description loader: parsing,
// decoding into the block schema and translation into the format-agnostic
// config model.
package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/latticego/internal/config"
	"github.com/vk/latticego/internal/ctxlog"
	"github.com/vk/latticego/internal/fsutil"
	"github.com/vk/latticego/internal/schema"
)

// Loader loads lattice descriptions from .hcl files.
type Loader struct{}

// NewLoader creates a new HCL loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load implements config.Loader. Each path may be a single file or a
// directory searched recursively for .hcl files. Definitions from all files
// are concatenated in path order.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)

	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("resolving lattice path: %w", err)
		}
		if info.IsDir() {
			found, err := fsutil.FindFilesByExtension(path, ".hcl")
			if err != nil {
				return nil, fmt.Errorf("walking lattice directory %s: %w", path, err)
			}
			files = append(files, found...)
		} else {
			files = append(files, path)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no lattice description files found in %v", paths)
	}
	logger.Debug("Loading lattice description files.", "files", files)

	parser := hclparse.NewParser()
	model := &config.Model{}
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("parsing %s: %w", file, diags)
		}
		var cfg schema.LatticeConfig
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &cfg); diags.HasErrors() {
			return nil, fmt.Errorf("decoding %s: %w", file, diags)
		}
		if err := l.translate(&cfg, model); err != nil {
			return nil, fmt.Errorf("translating %s: %w", file, err)
		}
	}

	logger.Info("Lattice description loaded.",
		"elements", len(model.Elements),
		"samplers", len(model.Samplers),
		"materials", len(model.Materials),
		"beam", model.Beam != nil)
	return model, nil
}
