package generator

import (
	"context"

	"github.com/toyz/autoiface/internal/models"
)

// ArtifactGenerator turns annotated subjects into synthesized artifacts
type ArtifactGenerator interface {
	Process(subject models.Subject) ([]*models.Artifact, error)
	Run(ctx context.Context, subjects []models.Subject) []models.SubjectResult
}
