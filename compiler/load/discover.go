package load

import (
	"fmt"
	"go/types"

	"golang.org/x/tools/go/packages"
)

// Candidate is an exported type in a schema package whose method set
// satisfies tql.Declaration (a zero-argument Fields() []tql.Field
// method), discovered purely from type information — no candidate type
// is ever instantiated or executed during discovery.
type Candidate struct {
	Name string // exported type name, e.g. "User"
	Dir  string // directory of the package, for writing the loader program
}

// Discover loads pkgPath with full type information alongside the tql
// package itself, and returns every exported type whose method set
// satisfies tql.Declaration, using go/types structural matching against
// the real interface (not a hand-reconstructed stand-in), so the check
// is exact rather than approximate.
//
// Grounded on the teacher's own compiler/gen pipeline loading the schema
// package with golang.org/x/tools/go/packages ahead of code generation;
// the shape check here stands in for a generated-graph schema walk
// since there is no generated graph to walk until after this step runs.
func Discover(pkgPath string) ([]Candidate, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedTypesInfo |
			packages.NeedSyntax | packages.NeedFiles | packages.NeedDeps | packages.NeedImports,
	}
	pkgs, err := packages.Load(cfg, pkgPath, "github.com/tql-go/tql")
	if err != nil {
		return nil, fmt.Errorf("load: loading %s: %w", pkgPath, err)
	}
	var schemaPkg, tqlPkg *packages.Package
	for _, p := range pkgs {
		if len(p.Errors) > 0 {
			return nil, fmt.Errorf("load: %s: %v", p.PkgPath, p.Errors[0])
		}
		switch p.PkgPath {
		case pkgPath:
			schemaPkg = p
		case "github.com/tql-go/tql":
			tqlPkg = p
		}
	}
	if schemaPkg == nil {
		return nil, fmt.Errorf("load: package %s not found", pkgPath)
	}
	if tqlPkg == nil {
		return nil, fmt.Errorf("load: could not resolve github.com/tql-go/tql")
	}

	declObj := tqlPkg.Types.Scope().Lookup("Declaration")
	if declObj == nil {
		return nil, fmt.Errorf("load: tql.Declaration not found")
	}
	iface, ok := declObj.Type().Underlying().(*types.Interface)
	if !ok {
		return nil, fmt.Errorf("load: tql.Declaration is not an interface")
	}

	var dir string
	if len(schemaPkg.GoFiles) > 0 {
		dir = dirOf(schemaPkg.GoFiles[0])
	}

	var cands []Candidate
	scope := schemaPkg.Types.Scope()
	for _, name := range scope.Names() {
		obj, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || !obj.Exported() {
			continue
		}
		named, ok := obj.Type().(*types.Named)
		if !ok {
			continue
		}
		if types.Implements(named, iface) || types.Implements(types.NewPointer(named), iface) {
			cands = append(cands, Candidate{Name: name, Dir: dir})
		}
	}
	return cands, nil
}

func dirOf(file string) string {
	i := len(file) - 1
	for i >= 0 && file[i] != '/' {
		i--
	}
	if i < 0 {
		return "."
	}
	return file[:i]
}
