package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/toyz/autoiface/internal/descriptor"
	"github.com/toyz/autoiface/internal/errors"
	"github.com/toyz/autoiface/internal/generator"
	"github.com/toyz/autoiface/internal/models"
	"github.com/toyz/autoiface/internal/parser"
	"github.com/toyz/autoiface/internal/templates"
	"github.com/toyz/autoiface/internal/typemodel"
	"github.com/toyz/autoiface/internal/utils"
)

// GenerationSummary contains information about one generation pass
type GenerationSummary struct {
	PassID    string
	Packages  int
	Subjects  int
	Artifacts int
	Written   int
	Unchanged int
	DryRun    int
	Skipped   int // subjects abandoned and artifacts not emitted
	Errors    int
	Warnings  int
	Files     []string
	Duration  time.Duration

	started time.Time
}

// Stats returns the summary as diagnostic statistics
func (s *GenerationSummary) Stats() map[string]interface{} {
	stats := map[string]interface{}{
		"Subjects processed": s.Subjects,
		"Artifacts":          s.Artifacts,
		"Written":            s.Written,
		"Unchanged":          s.Unchanged,
		"Skipped":            s.Skipped,
		"Errors":             s.Errors,
	}
	if s.DryRun > 0 {
		stats["Dry run"] = s.DryRun
	}
	if s.Packages > 0 {
		stats["Packages"] = s.Packages
	}
	return stats
}

// Generator coordinates a generation pass: load, resolve, synthesize, emit
type Generator struct {
	config      *Config
	dir         string
	diagnostics *utils.DiagnosticSystem
	reporter    *DiagnosticReporter
}

// NewGenerator creates a generator working in dir
func NewGenerator(config *Config, dir string, diagnostics *utils.DiagnosticSystem, reporter *DiagnosticReporter) *Generator {
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(config.DiagnosticLevel())
	}
	if reporter == nil {
		reporter = NewDiagnosticReporter(diagnostics.ErrorWriter(), config.Verbose)
	}
	return &Generator{config: config, dir: dir, diagnostics: diagnostics, reporter: reporter}
}

// Reporter returns the reporter collecting this generator's diagnostics
func (g *Generator) Reporter() *DiagnosticReporter {
	return g.reporter
}

// GenerateGo runs a pass over Go packages matching patterns. Per-subject and
// per-artifact failures are reported and counted in the summary; the error
// return is reserved for failures that stop the pass.
func (g *Generator) GenerateGo(ctx context.Context, patterns []string) (*GenerationSummary, error) {
	summary := g.startPass()

	g.diagnostics.StartProgress("Loading packages")
	var loader parser.SourceLoader = parser.NewParser(parser.Config{
		Dir:             g.dir,
		Tests:           g.config.Tests,
		GeneratedPrefix: g.config.Go.FilePrefix,
		Exclude:         g.config.Exclude,
		Defaults:        g.config.Defaults,
	})
	result, err := loader.Load(ctx, patterns...)
	if err != nil {
		g.diagnostics.EndProgress(false, "")
		return summary, err
	}
	g.diagnostics.EndProgress(true, fmt.Sprintf("Loaded %d packages, found %d subjects", len(result.Packages), len(result.Subjects)))

	summary.Packages = len(result.Packages)
	for _, warning := range result.Warnings {
		g.reporter.ReportWarning(warning)
		summary.Warnings++
	}
	g.reportAll(summary, result.Errors)

	modules, err := LoadModuleResolver(g.dir)
	if err != nil {
		g.diagnostics.Debug("%v", err)
		modules = NewModuleResolver(nil)
	}

	renderer := templates.NewGoRenderer(g.config.Go.FilePrefix)
	emitter := NewEmitter(renderer, goPlacer(modules), g.config.DryRun)
	opts := generator.PipelineOptions{
		Accessor:     g.config.Go.Accessor,
		Jobs:         g.config.Jobs,
		PackageNamer: modules.PackageName,
	}

	g.run(ctx, summary, result.Universe, result.Subjects, opts, emitter)
	return g.finish(summary), nil
}

// GenerateModel runs a pass over descriptor files and writes Java sources below out
func (g *Generator) GenerateModel(ctx context.Context, files []string) (*GenerationSummary, error) {
	summary := g.startPass()

	g.diagnostics.StartProgress("Loading %d descriptor files", len(files))
	model, err := descriptor.LoadFiles(g.config.Defaults, files...)
	if err != nil {
		g.diagnostics.EndProgress(false, "")
		return summary, err
	}
	g.diagnostics.EndProgress(true, fmt.Sprintf("Loaded %d types, found %d subjects", model.Universe.Len(), len(model.Subjects)))

	out := g.config.Java.Out
	if !filepath.IsAbs(out) {
		out = filepath.Join(g.dir, out)
	}

	renderer := templates.NewJavaRenderer(g.config.Java.Indent)
	emitter := NewEmitter(renderer, func(*models.Artifact) (string, error) { return out, nil }, g.config.DryRun)
	opts := generator.PipelineOptions{
		Accessor: g.config.Java.Accessor,
		Jobs:     g.config.Jobs,
	}

	g.run(ctx, summary, model.Universe, model.Subjects, opts, emitter)
	return g.finish(summary), nil
}

func (g *Generator) startPass() *GenerationSummary {
	summary := &GenerationSummary{PassID: uuid.NewString(), started: time.Now()}
	g.diagnostics.Verbose("Generation pass %s in %s", summary.PassID, g.dir)
	return summary
}

func (g *Generator) finish(summary *GenerationSummary) *GenerationSummary {
	summary.Duration = time.Since(summary.started)
	g.diagnostics.Verbose("Pass %s finished in %s", summary.PassID, summary.Duration.Round(time.Millisecond))
	return summary
}

// run synthesizes every subject concurrently, then emits in subject order
func (g *Generator) run(ctx context.Context, summary *GenerationSummary, model typemodel.TypeModel, subjects []models.Subject, opts generator.PipelineOptions, emitter *Emitter) {
	summary.Subjects = len(subjects)
	if len(subjects) == 0 {
		g.diagnostics.Warn("No annotated types found")
		return
	}

	for _, subject := range subjects {
		if subject.Decl.IsInterface() && subject.Options.Name != "" {
			g.reporter.ReportWarning(fmt.Sprintf("%s is an interface: name=%s is ignored", subject.Decl.QualifiedName(), subject.Options.Name))
			summary.Warnings++
		}
	}

	g.diagnostics.StartProgress("Synthesizing %d subjects", len(subjects))
	var pipeline generator.ArtifactGenerator = generator.NewPipeline(model, opts)
	results := pipeline.Run(ctx, subjects)
	g.diagnostics.EndProgress(true, "")

	g.diagnostics.StartProgress("Writing artifacts")
	emitted := 0
	for _, res := range results {
		if res.Err != nil {
			summary.Skipped++
			g.reportOne(summary, res.Err)
			continue
		}
		for _, artifact := range res.Artifacts {
			summary.Artifacts++
			emission, err := emitter.Emit(artifact)
			if err != nil {
				summary.Skipped++
				g.reportOne(summary, err)
				continue
			}
			emitted++
			g.diagnostics.Debug("%s %s -> %s", emission.Status, artifact.QualifiedName(), emission.Path)
			switch emission.Status {
			case EmitWritten:
				summary.Written++
				summary.Files = append(summary.Files, emission.Path)
			case EmitUnchanged:
				summary.Unchanged++
			case EmitDryRun:
				summary.DryRun++
				summary.Files = append(summary.Files, emission.Path)
			}
		}
	}
	g.diagnostics.EndProgress(summary.Errors == 0, fmt.Sprintf("Emitted %d of %d artifacts", emitted, summary.Artifacts))
}

func (g *Generator) reportAll(summary *GenerationSummary, errs *errors.MultipleErrors) {
	if errs == nil {
		return
	}
	for _, err := range errs.Errors {
		g.reportOne(summary, err)
	}
}

func (g *Generator) reportOne(summary *GenerationSummary, err error) {
	summary.Errors++
	g.reporter.ReportError(err)
}

// goPlacer puts artifacts of the subject's own package next to the subject
// and resolves pkg overrides through the module
func goPlacer(modules *ModuleResolver) Placer {
	return func(artifact *models.Artifact) (string, error) {
		origin := artifact.OriginDecl
		if origin != nil && origin.Package == artifact.Package && origin.SourceDir != "" {
			return origin.SourceDir, nil
		}
		return modules.PackageDir(artifact.Package)
	}
}
