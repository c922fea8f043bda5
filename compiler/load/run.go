package load

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Graph is every schema discovered in a single LoadGraph call, in the
// order go/types' scope enumeration produced them (lexicographic by Go
// type name — see Discover).
type Graph struct {
	Schemas []*Schema
}

// LoadGraph discovers every tql.Declaration in pkgPath and returns its
// fully loaded schema (fields, mixins, annotations).
//
// It writes a small generated "loader" program alongside pkgPath's own
// source files (so `go run` resolves pkgPath through the enclosing
// module's go.mod without any synthetic replace directive), runs it,
// and parses the JSON it prints. The temporary file is always removed,
// whether or not the run succeeds.
func LoadGraph(pkgPath string) (*Graph, error) {
	cands, err := Discover(pkgPath)
	if err != nil {
		return nil, err
	}
	if len(cands) == 0 {
		return &Graph{}, nil
	}

	names := make([]string, len(cands))
	for i, c := range cands {
		names[i] = c.Name
	}
	src, err := renderLoader(pkgPath, names)
	if err != nil {
		return nil, err
	}

	dir := cands[0].Dir
	tmp, err := os.CreateTemp(dir, "tqlc_loader_*.go")
	if err != nil {
		return nil, fmt.Errorf("load: creating loader program: %w", err)
	}
	path := tmp.Name()
	defer os.Remove(path)

	if _, err := tmp.WriteString(src); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("load: writing loader program: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("load: writing loader program: %w", err)
	}

	cmd := exec.Command("go", "run", filepath.Base(path))
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("load: running loader for %s: %w\n%s", pkgPath, err, ee.Stderr)
		}
		return nil, fmt.Errorf("load: running loader for %s: %w", pkgPath, err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("load: decoding loader output for %s: %w", pkgPath, err)
	}

	g := &Graph{Schemas: make([]*Schema, 0, len(raw))}
	for _, r := range raw {
		s, err := UnmarshalSchema(r)
		if err != nil {
			return nil, fmt.Errorf("load: %s: %w", pkgPath, err)
		}
		g.Schemas = append(g.Schemas, s)
	}
	return g, nil
}
