package models

// ArtifactKind distinguishes the two generated artifacts
type ArtifactKind int

const (
	ArtifactInterface ArtifactKind = iota
	ArtifactDecorator
)

// String returns the lowercase artifact kind name
func (k ArtifactKind) String() string {
	if k == ArtifactDecorator {
		return "decorator"
	}
	return "interface"
}

// MethodDescriptor is a method as seen through the subject type
type MethodDescriptor struct {
	Name       string
	Params     []Param
	Results    []TypeRef
	Throws     []TypeRef
	TypeParams []TypeParam
	Variadic   bool
	Origin     string // qualified name of the declaring type
	Key        string // de-duplication identity

	// Forward is set on decorator methods only
	Forward *ForwardCall
}

// HasResult reports whether the method produces a value
func (m MethodDescriptor) HasResult() bool {
	return len(m.Results) > 0
}

// ForwardCall describes a forwarding body: accessor().Method(args...)
type ForwardCall struct {
	Accessor string
	Method   string
	Args     []string
	Spread   bool // last argument is passed as a variadic spread
	Return   bool // the callee's result is returned
}

// Artifact is a synthesized interface or decorator, not yet rendered
type Artifact struct {
	Kind        ArtifactKind
	Package     string
	PackageName string
	Name        string
	TypeParams  []TypeParam
	Methods     []MethodDescriptor

	// Super and Accessor are set on decorators only
	Super    *TypeRef
	Accessor *MethodDescriptor

	// Complete is true when Methods covers the whole method set of Super
	Complete bool

	// Origin is the subject the artifact was generated from
	Origin     string
	OriginDecl *ClassDecl
}

// QualifiedName returns the package-qualified artifact name
func (a *Artifact) QualifiedName() string {
	if a.Package == "" {
		return a.Name
	}
	return a.Package + "." + a.Name
}

// Ref returns a reference to the artifact parameterized by its own type variables
func (a *Artifact) Ref() TypeRef {
	ref := Named(a.Package, a.Name, VariablesOf(a.TypeParams)...)
	ref.PkgName = a.PackageName
	return ref
}

// SubjectResult is the outcome of one subject's generation pass
type SubjectResult struct {
	Subject   Subject
	Artifacts []*Artifact
	Err       error
}
