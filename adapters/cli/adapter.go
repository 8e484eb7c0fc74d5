// Package adapter provides thin adapters over the core engine.
// It handles input and output only; planning lives in the engine.
package adapter

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	hclsource "recipe-planner/adapters/hcl"
	"recipe-planner/core/engine"
	"recipe-planner/core/output"
	"recipe-planner/core/recipe"
	"recipe-planner/internal/errors"
)

// Stdin is the path that selects standard input
const Stdin = "-"

// CLIAdapter is a THIN wrapper around the core engine.
type CLIAdapter struct {
	engine *engine.Engine
	hcl    *hclsource.Loader
	input  io.Reader
	output io.Writer
	logger *zap.Logger
}

// NewCLIAdapter creates a new CLI adapter
func NewCLIAdapter(eng *engine.Engine, logger *zap.Logger) *CLIAdapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CLIAdapter{
		engine: eng,
		hcl:    hclsource.NewLoader(logger.Named("hcl")),
		input:  os.Stdin,
		output: os.Stdout,
		logger: logger,
	}
}

// SetInput sets the reader used for stdin
func (a *CLIAdapter) SetInput(r io.Reader) {
	a.input = r
}

// SetOutput sets the output writer
func (a *CLIAdapter) SetOutput(w io.Writer) {
	a.output = w
}

// CLIRequest is the CLI input
type CLIRequest struct {
	// Path to the recipe file; empty or "-" reads stdin
	Path string

	// Format is the output format
	Format output.Format

	// Options tune the formatter
	Options output.Options

	// OutputPath writes to a file instead of the output writer
	OutputPath string
}

// Run loads the recipes, plans them and renders the result. Nothing is
// written unless planning succeeds.
func (a *CLIAdapter) Run(req *CLIRequest) (*engine.Result, error) {
	// Resolve the formatter first so a bad flag fails before any work
	formatter, err := output.Get(req.Format, req.Options)
	if err != nil {
		return nil, err
	}

	book, err := a.Load(req.Path)
	if err != nil {
		return nil, err
	}

	result, err := a.engine.Plan(book)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := formatter.Render(&buf, result); err != nil {
		return nil, errors.Internal("failed to render plan", err)
	}

	if req.OutputPath != "" {
		if err := os.WriteFile(req.OutputPath, buf.Bytes(), 0o644); err != nil {
			return nil, errors.Input(fmt.Sprintf("failed to write %s", req.OutputPath), err)
		}
		a.logger.Info("plan written", zap.String("path", req.OutputPath), zap.String("format", string(req.Format)))
		return result, nil
	}

	if _, err := a.output.Write(buf.Bytes()); err != nil {
		return nil, errors.Input("failed to write output", err)
	}
	return result, nil
}

// Load reads a recipe book. Files ending in .hcl use the HCL loader;
// anything else, stdin included, is recipe text.
func (a *CLIAdapter) Load(path string) (recipe.Book, error) {
	if path == "" || path == Stdin {
		data, err := io.ReadAll(a.input)
		if err != nil {
			return recipe.Book{}, errors.Input("failed to read stdin", err)
		}
		a.logger.Debug("read recipes from stdin", zap.Int("bytes", len(data)))
		return recipe.ParseText(string(data))
	}

	if strings.EqualFold(filepath.Ext(path), hclsource.Extension) {
		return a.hcl.LoadFile(path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return recipe.Book{}, errors.Input(fmt.Sprintf("failed to read %s", path), err)
	}
	a.logger.Debug("read recipes", zap.String("path", path), zap.Int("bytes", len(data)))
	return recipe.ParseText(string(data))
}
