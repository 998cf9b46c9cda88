package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/heimdalr/pathcount"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// queryFile lists the queries to run against one input, each optionally
// paired with the expected count.
//
// YAML:
//
//	input: example.txt
//	queries:
//	  - name: part1
//	    source: you
//	    target: out
//	    expect: 5
//
// HCL:
//
//	input = "example.txt"
//	query "part1" {
//	  source = "you"
//	  target = "out"
//	  expect = 5
//	}
type queryFile struct {
	Input   string     `yaml:"input" hcl:"input,optional"`
	Queries []queryDef `yaml:"queries" hcl:"query,block"`
}

type queryDef struct {
	Name     string   `yaml:"name" hcl:"name,label"`
	Source   string   `yaml:"source" hcl:"source"`
	Target   string   `yaml:"target" hcl:"target"`
	Required []string `yaml:"required,omitempty" hcl:"required,optional"`
	Expect   *uint64  `yaml:"expect,omitempty" hcl:"expect,optional"`
}

func (q queryDef) query() pathcount.Query {
	return pathcount.Query{Source: q.Source, Target: q.Target, Required: q.Required}
}

// loadQueryFile decodes path by its extension (.yaml/.yml, .hcl or .json).
// A relative input is resolved against the directory of the query file.
func loadQueryFile(path string) (*queryFile, error) {
	var qf queryFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, &qf); err != nil {
			return nil, fmt.Errorf("failed to decode query file %s: %w", path, err)
		}
	case ".hcl", ".json":
		if err := hclsimple.DecodeFile(path, envContext(), &qf); err != nil {
			return nil, fmt.Errorf("failed to decode query file %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported query file type %q", filepath.Ext(path))
	}

	if qf.Input != "" && !filepath.IsAbs(qf.Input) {
		qf.Input = filepath.Join(filepath.Dir(path), qf.Input)
	}
	for i := range qf.Queries {
		if qf.Queries[i].Name == "" {
			qf.Queries[i].Name = fmt.Sprintf("query %d", i+1)
		}
	}
	return &qf, nil
}

// envContext exposes the process environment to HCL query files as env.NAME.
func envContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !hclsyntax.ValidIdentifier(k) {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	env := cty.EmptyObjectVal
	if len(vars) > 0 {
		env = cty.ObjectVal(vars)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": env},
	}
}
