package macro

import (
	_ "embed"
	"fmt"

	"github.com/cpond8/sutra/diag"
	"github.com/cpond8/sutra/parser"
)

//go:embed stdlib.sutra
var stdlibSource string

// loadStdlib parses and registers every define-macro form in stdlib.sutra.
// A malformed standard library is a build-time bug in this package, not a
// condition any caller can recover from, so the error here should never
// surface outside this package's own tests.
func (env *Environment) loadStdlib() error {
	forms, diags := parser.Parse(stdlibSource)
	if diag.HasErrors(diags) {
		return fmt.Errorf("parsing embedded standard library: %s", diag.Render(diags))
	}
	for _, f := range forms {
		def, ok := asMacroDef(f)
		if !ok {
			return fmt.Errorf("stdlib.sutra may only contain define-macro forms, found %s", f.Span())
		}
		if err := registerDefineMacro(env, def); err != nil {
			return err
		}
	}
	return nil
}
