package taskfile

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"
)

type yamlFile struct {
	Default string            `yaml:"default"`
	Vars    map[string]string `yaml:"vars"`
	Tasks   yaml.Node         `yaml:"tasks"`
}

type yamlTask struct {
	Description string   `yaml:"description"`
	DependsOn   []string `yaml:"depends_on"`
	Commands    []string `yaml:"commands"`
}

var varRef = regexp.MustCompile(`\$\{vars\.([A-Za-z_][A-Za-z0-9_-]*)\}`)

// decodeYAML walks the tasks mapping node by node so declaration order is
// kept and a repeated key does not abort decoding.
func decodeYAML(path string, src []byte) (string, []definition, error) {
	var parsed yamlFile
	if err := yaml.Unmarshal(src, &parsed); err != nil {
		return "", nil, fmt.Errorf("failed to parse YAML file %s: %w", path, err)
	}

	if parsed.Tasks.Kind == 0 {
		return parsed.Default, nil, nil
	}
	if parsed.Tasks.Kind != yaml.MappingNode {
		return "", nil, fmt.Errorf("%s:%d: tasks must be a mapping of task name to task", path, parsed.Tasks.Line)
	}

	content := parsed.Tasks.Content
	defs := make([]definition, 0, len(content)/2)
	for i := 0; i+1 < len(content); i += 2 {
		key, value := content[i], content[i+1]

		var t yamlTask
		if err := value.Decode(&t); err != nil {
			return "", nil, fmt.Errorf("%s:%d: task %q: %w", path, value.Line, key.Value, err)
		}

		commands := make([]string, 0, len(t.Commands))
		for _, c := range t.Commands {
			expanded, err := expandVars(c, parsed.Vars)
			if err != nil {
				return "", nil, fmt.Errorf("%s:%d: task %q: %w", path, value.Line, key.Value, err)
			}
			commands = append(commands, expanded)
		}

		defs = append(defs, definition{
			Name:        key.Value,
			Description: t.Description,
			DependsOn:   t.DependsOn,
			Commands:    commands,
		})
	}

	return parsed.Default, defs, nil
}

// expandVars replaces ${vars.name} references. Other "$" sequences are left
// for the shell.
func expandVars(s string, vars map[string]string) (string, error) {
	var missing string
	out := varRef.ReplaceAllStringFunc(s, func(ref string) string {
		name := varRef.FindStringSubmatch(ref)[1]
		v, ok := vars[name]
		if !ok && missing == "" {
			missing = name
		}
		return v
	})
	if missing != "" {
		return "", fmt.Errorf("undefined variable %q", "vars."+missing)
	}
	return out, nil
}
