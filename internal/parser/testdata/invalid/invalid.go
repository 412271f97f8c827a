package invalid

//autoiface::interface -bogus
type A struct{}

//autoiface::interface
type B = A

//autoiface::interface
//autoiface::interface -name=X
type C struct{}

//autoiface::interface -name=Good
type D struct{}

func (D) Hello() string { return "hello" }
