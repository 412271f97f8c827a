package errors

import "fmt"

// ResolutionError reports that a subject's inherited method set could not be
// computed as seen from the subject type. The subject is abandoned.
type ResolutionError struct {
	*BaseError
	Subject  string // qualified name of the subject type
	Ancestor string // ancestor being resolved, if any
}

// NewResolutionError creates a resolution error tied to a subject type
func NewResolutionError(subject, ancestor, message string) *ResolutionError {
	err := &ResolutionError{
		BaseError: New(ResolutionErrorCode, message),
		Subject:   subject,
		Ancestor:  ancestor,
	}
	err.WithContext("subject", subject)
	if ancestor != "" {
		err.WithContext("ancestor", ancestor)
	}
	return err
}

// EmissionError reports that a synthesized artifact could not be rendered or
// written. Other artifacts are unaffected.
type EmissionError struct {
	*BaseError
	Artifact string // qualified name of the artifact
	Path     string // output path, when known
}

// NewEmissionError creates an emission error for one artifact
func NewEmissionError(kind, artifact, path string, cause error) *EmissionError {
	err := &EmissionError{
		BaseError: Wrap(EmissionErrorCode, fmt.Sprintf("autoiface: error generating %s %s", kind, artifact), cause),
		Artifact:  artifact,
		Path:      path,
	}
	err.WithContext("artifact", artifact)
	if path != "" {
		err.WithContext("path", path)
	}
	return err
}

// AnnotationError reports a malformed or invalid annotation on a subject
type AnnotationError struct {
	*BaseError
	Annotation string // raw annotation text
	Parameter  string // offending parameter, if any
}

// NewAnnotationSyntaxError creates an error for annotation text that does not parse
func NewAnnotationSyntaxError(annotation string, cause error) *AnnotationError {
	err := &AnnotationError{
		BaseError:  Wrap(AnnotationSyntaxErrorCode, "invalid annotation syntax", cause),
		Annotation: annotation,
	}
	err.WithContext("annotation", annotation)
	err.WithSuggestion("Use the form: //autoiface::interface -name=MyInterface -createDecorator")
	return err
}

// NewAnnotationValidationError creates an error for a parameter that fails validation
func NewAnnotationValidationError(annotation, parameter, message string) *AnnotationError {
	err := &AnnotationError{
		BaseError:  New(AnnotationValidationErrorCode, message),
		Annotation: annotation,
		Parameter:  parameter,
	}
	err.WithContext("annotation", annotation)
	if parameter != "" {
		err.WithContext("parameter", parameter)
	}
	return err
}
