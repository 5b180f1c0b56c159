package taskfile

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// hclFile is the top-level structure of an HCL task file.
type hclFile struct {
	Default string            `hcl:"default,optional"`
	Vars    map[string]string `hcl:"vars,optional"`
	Tasks   []*hclTask        `hcl:"task,block"`
}

// hclTask holds a task block whose body is decoded once vars are known.
type hclTask struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

type hclTaskBody struct {
	Description string   `hcl:"description,optional"`
	DependsOn   []string `hcl:"depends_on,optional"`
	Commands    []string `hcl:"commands,optional"`
}

// decodeHCL parses src in two passes: top-level attributes first, then every
// task body with vars available as "vars.<name>".
func decodeHCL(path string, src []byte) (string, []definition, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return "", nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var parsed hclFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return "", nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	evalCtx := varsContext(parsed.Vars)

	defs := make([]definition, 0, len(parsed.Tasks))
	for _, t := range parsed.Tasks {
		var body hclTaskBody
		diags := gohcl.DecodeBody(t.Body, evalCtx, &body)
		if diags.HasErrors() {
			return "", nil, fmt.Errorf("error parsing task %q in file %s: %w", t.Name, path, diags)
		}
		defs = append(defs, definition{
			Name:        t.Name,
			Description: body.Description,
			DependsOn:   body.DependsOn,
			Commands:    body.Commands,
		})
	}

	return parsed.Default, defs, nil
}

func varsContext(vars map[string]string) *hcl.EvalContext {
	vals := make(map[string]cty.Value, len(vars))
	for k, v := range vars {
		vals[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"vars": cty.ObjectVal(vals),
		},
	}
}
