package generator

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/toyz/autoiface/internal/models"
	"github.com/toyz/autoiface/internal/naming"
	"github.com/toyz/autoiface/internal/resolver"
	"github.com/toyz/autoiface/internal/typemodel"
)

// PipelineOptions configures a generation pipeline
type PipelineOptions struct {
	Accessor     string              // decorator accessor name
	Jobs         int                 // concurrent subjects; <= 0 means runtime.NumCPU()
	PackageNamer naming.PackageNamer // package clause name for pkg overrides
}

// Pipeline runs resolve, name, synthesize for each subject
type Pipeline struct {
	resolver *resolver.Resolver
	naming   *naming.Resolver
	synth    *Synthesizer
	jobs     int
}

// NewPipeline creates a pipeline over a fully loaded type model
func NewPipeline(model typemodel.TypeModel, opts PipelineOptions) *Pipeline {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	return &Pipeline{
		resolver: resolver.NewResolver(model),
		naming:   naming.NewResolver(opts.PackageNamer),
		synth:    NewSynthesizer(opts.Accessor),
		jobs:     jobs,
	}
}

// Process generates the artifacts of one subject. Interface subjects produce
// no interface artifact; their decorator extends the subject directly.
func (p *Pipeline) Process(subject models.Subject) ([]*models.Artifact, error) {
	decl := subject.Decl
	opts := subject.Options

	methods, err := p.resolver.Resolve(decl, opts.IncludeInherited)
	if err != nil {
		return nil, err
	}

	var artifacts []*models.Artifact
	var super models.TypeRef
	complete := true

	if decl.IsInterface() {
		super = decl.Ref()
		complete = opts.IncludeInherited || len(decl.Supers) == 0
	} else {
		iface := p.synth.Interface(p.naming.InterfaceName(decl, opts), decl.TypeParams, methods, decl)
		artifacts = append(artifacts, iface)
		super = iface.Ref()
	}

	if opts.CreateDecorator {
		target := p.naming.DecoratorName(decl, opts)
		dec, err := p.synth.Decorator(target, super, decl.TypeParams, methods, complete, decl)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, dec)
	}
	return artifacts, nil
}

// Run processes subjects concurrently. Results are returned in subject order;
// one subject's failure is recorded in its own result only.
func (p *Pipeline) Run(ctx context.Context, subjects []models.Subject) []models.SubjectResult {
	results := make([]models.SubjectResult, len(subjects))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.jobs)
	for i, subject := range subjects {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = models.SubjectResult{Subject: subject, Err: err}
				return nil
			}
			artifacts, err := p.Process(subject)
			results[i] = models.SubjectResult{Subject: subject, Artifacts: artifacts, Err: err}
			return nil
		})
	}
	_ = g.Wait() // errors are captured per subject

	return results
}
