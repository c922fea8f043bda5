package load

import (
	"bytes"
	"fmt"

	. "github.com/dave/jennifer/jen"
)

// renderLoader emits the source of a throwaway `package main` that
// imports pkgPath directly, instantiates each named candidate, marshals
// it with MarshalSchema, and prints the resulting JSON array to stdout.
//
// Candidate method sets were already confirmed against tql.Declaration
// in Discover; this program exists only because MarshalSchema needs a
// live value of each declaration to call Fields()/Mixin()/Annotations()
// on, and those methods can't be invoked without compiling and running
// code that imports pkgPath — something cmd/tqlc itself, built once
// ahead of time, can never do for an arbitrary schema package it only
// learns about at generation time.
//
// Grounded on the teacher's compiler/gen/cmd/testgen/main.go: a small,
// unadorned `func main()` driving a single package API call with
// fmt.Fprintf/os.Exit(1) error handling, here templated with jennifer
// instead of hand-written since the body varies per schema package.
func renderLoader(pkgPath string, names []string) (string, error) {
	f := NewFile("main")
	f.HeaderComment("Code generated by cmd/tqlc; DO NOT EDIT.")

	declVals := make([]Code, len(names))
	for i, n := range names {
		declVals[i] = Op("&").Qual(pkgPath, n).Values()
	}

	f.Func().Id("declarations").Params().Index().Qual("github.com/tql-go/tql", "Declaration").Block(
		Return(Index().Qual("github.com/tql-go/tql", "Declaration").Values(declVals...)),
	)

	f.Func().Id("main").Params().Block(
		Var().Id("out").Index().Qual("encoding/json", "RawMessage").Op("=").Index().Qual("encoding/json", "RawMessage").Values(),
		For(List(Id("_"), Id("decl")).Op(":=").Range().Id("declarations").Call()).Block(
			List(Id("b"), Id("err")).Op(":=").Qual("github.com/tql-go/tql/compiler/load", "MarshalSchema").Call(Id("decl")),
			If(Id("err").Op("!=").Nil()).Block(
				Qual("fmt", "Fprintln").Call(Qual("os", "Stderr"), Id("err")),
				Qual("os", "Exit").Call(Lit(1)),
			),
			Id("out").Op("=").Append(Id("out"), Qual("encoding/json", "RawMessage").Call(Id("b"))),
		),
		List(Id("b"), Id("err")).Op(":=").Qual("encoding/json", "Marshal").Call(Id("out")),
		If(Id("err").Op("!=").Nil()).Block(
			Qual("fmt", "Fprintln").Call(Qual("os", "Stderr"), Id("err")),
			Qual("os", "Exit").Call(Lit(1)),
		),
		Qual("os", "Stdout").Dot("Write").Call(Id("b")),
	)

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return "", fmt.Errorf("load: rendering loader for %s: %w", pkgPath, err)
	}
	return buf.String(), nil
}
