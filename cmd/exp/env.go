// env.go — host-environment loading for the CLI.
//
// An environment file is a YAML (or JSON; YAML is a superset at this
// boundary) mapping from identifier names to data. Scalars, sequences and
// mappings convert to the admissible value model; anything else is rejected
// before evaluation starts.
package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/ClaudiuCeia/exp"
)

func loadEnvFile(path string) (map[string]exp.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	env := make(map[string]exp.Value, len(raw))
	for k, v := range raw {
		val, err := toValue(v)
		if err != nil {
			return nil, fmt.Errorf("%s: binding %q: %w", path, k, err)
		}
		env[k] = val
	}
	return env, nil
}

func toValue(v any) (exp.Value, error) {
	switch x := v.(type) {
	case nil:
		return exp.Null, nil
	case bool:
		return exp.Bool(x), nil
	case int:
		return exp.Num(float64(x)), nil
	case int64:
		return exp.Num(float64(x)), nil
	case uint64:
		return exp.Num(float64(x)), nil
	case float64:
		return exp.Num(x), nil
	case string:
		return exp.Str(x), nil
	case []any:
		elems := make([]exp.Value, 0, len(x))
		for i, e := range x {
			ev, err := toValue(e)
			if err != nil {
				return exp.Undefined, fmt.Errorf("element %d: %w", i, err)
			}
			elems = append(elems, ev)
		}
		return exp.Arr(elems), nil
	case map[string]any:
		entries := make(map[string]exp.Value, len(x))
		for k, e := range x {
			ev, err := toValue(e)
			if err != nil {
				return exp.Undefined, fmt.Errorf("member %q: %w", k, err)
			}
			entries[k] = ev
		}
		return exp.Obj(entries), nil
	case map[any]any:
		entries := make(map[string]exp.Value, len(x))
		for k, e := range x {
			ks, ok := k.(string)
			if !ok {
				return exp.Undefined, fmt.Errorf("non-string object key %v", k)
			}
			ev, err := toValue(e)
			if err != nil {
				return exp.Undefined, fmt.Errorf("member %q: %w", ks, err)
			}
			entries[ks] = ev
		}
		return exp.Obj(entries), nil
	default:
		return exp.Undefined, fmt.Errorf("unsupported value of type %T", v)
	}
}
