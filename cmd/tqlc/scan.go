package main

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strconv"

	"golang.org/x/tools/go/packages"
)

// site is one discovered tql.Query(...) call: the literal query
// expression it was given, and enough position information to rewrite
// the call in place once generation succeeds.
type site struct {
	Expr     string
	Pkg      *packages.Package
	File     *ast.File
	Call     *ast.CallExpr
	FileName string
	Pos      token.Position // position of the expression string literal
}

// scanQueries loads every package matched by patterns and returns every
// call site of tql.Query found in them, resolved through type
// information rather than by matching the literal identifier "tql" (an
// import can be aliased; types.Info.Uses is not fooled by that).
func scanQueries(patterns ...string) ([]site, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedTypes | packages.NeedTypesInfo |
			packages.NeedSyntax | packages.NeedFiles,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("tqlc: loading query packages: %w", err)
	}

	var sites []site
	for _, pkg := range pkgs {
		for _, err := range pkg.Errors {
			return nil, fmt.Errorf("tqlc: %s: %w", pkg.PkgPath, err)
		}
		for _, file := range pkg.Syntax {
			ast.Inspect(file, func(n ast.Node) bool {
				call, ok := n.(*ast.CallExpr)
				if !ok || !isQueryCall(pkg, call) {
					return true
				}
				if len(call.Args) < 2 {
					return true
				}
				lit, ok := call.Args[1].(*ast.BasicLit)
				if !ok || lit.Kind != token.STRING {
					return true
				}
				expr, err := strconv.Unquote(lit.Value)
				if err != nil {
					return true
				}
				fname := pkg.Fset.Position(file.Pos()).Filename
				sites = append(sites, site{
					Expr:     expr,
					Pkg:      pkg,
					File:     file,
					Call:     call,
					FileName: fname,
					Pos:      pkg.Fset.Position(lit.Pos()),
				})
				return true
			})
		}
	}
	return sites, nil
}

// isQueryCall reports whether call invokes github.com/tql-go/tql.Query,
// resolved via the package's type-checked uses rather than syntax.
func isQueryCall(pkg *packages.Package, call *ast.CallExpr) bool {
	sel, ok := call.Fun.(*ast.SelectorExpr)
	if !ok || sel.Sel.Name != "Query" {
		return false
	}
	ident, ok := sel.X.(*ast.Ident)
	if !ok {
		return false
	}
	obj := pkg.TypesInfo.Uses[ident]
	pn, ok := obj.(*types.PkgName)
	return ok && pn.Imported().Path() == "github.com/tql-go/tql"
}
