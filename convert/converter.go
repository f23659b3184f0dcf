// Package convert orchestrates checklist-to-LinkML conversion runs.
package convert

import (
	"log/slog"
	"path/filepath"

	"github.com/seqschema/checklistml/checklist"
	"github.com/seqschema/checklistml/config"
	"github.com/seqschema/checklistml/export"
	"github.com/seqschema/checklistml/linkml"
)

// Result summarizes one successful file conversion.
type Result struct {
	// Path is the input checklist file.
	Path string

	// OutputPath is the generated schema file.
	OutputPath string

	// Accession is the checklist accession.
	Accession string

	// Slots is the number of generated slots.
	Slots int

	// Required is the number of required slots.
	Required int

	// Enums is the number of generated enums.
	Enums int
}

// Converter runs the parse, build and write stages per input file.
// Each file is processed independently with no shared mutable state,
// so one Converter may be used from multiple goroutines as long as
// output paths never collide.
type Converter struct {
	builder   linkml.Builder
	writer    *export.Writer
	outputDir string
	logger    *slog.Logger
}

// New creates a converter from configuration.
func New(cfg *config.Config, logger *slog.Logger) *Converter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Converter{
		builder: linkml.Builder{
			BaseURI: cfg.Schema.BaseURI,
			Version: cfg.Schema.Version,
		},
		writer:    export.NewWriter(export.Options{}),
		outputDir: cfg.Output.Dir,
		logger:    logger,
	}
}

// ConvertFile converts one checklist file and writes the resulting
// schema as <accession>.yaml under the output directory. A parse or
// build failure leaves no output file behind.
func (c *Converter) ConvertFile(path string) (*Result, error) {
	cl, err := checklist.Parse(path)
	if err != nil {
		return nil, err
	}

	schema := c.builder.Build(cl)

	outputPath := filepath.Join(c.outputDir, cl.Accession+".yaml")
	if err := c.writer.WriteFile(schema, outputPath); err != nil {
		return nil, err
	}

	return &Result{
		Path:       path,
		OutputPath: outputPath,
		Accession:  cl.Accession,
		Slots:      len(schema.Slots),
		Required:   schema.RequiredCount(),
		Enums:      len(schema.Enums),
	}, nil
}

// ConvertAll converts each file in turn. A file's failure is logged
// and does not stop the remaining files; the returned results cover
// the successful conversions only, and failed counts the rest.
func (c *Converter) ConvertAll(paths []string) (results []Result, failed int) {
	for _, path := range paths {
		result, err := c.ConvertFile(path)
		if err != nil {
			c.logger.Error("Conversion failed", "file", path, "error", err)
			failed++
			continue
		}
		c.logger.Info("Converted checklist",
			"file", result.Path,
			"output", result.OutputPath,
			"slots", result.Slots,
			"required", result.Required,
			"enums", result.Enums)
		results = append(results, *result)
	}
	return results, failed
}
