package script

import (
	"fmt"

	"go.starlark.net/starlark"

	"github.com/leapstack-labs/samplechart/pkg/core"
)

// optionsDict exposes string options as a frozen dict.
func optionsDict(options map[string]string) *starlark.Dict {
	dict := starlark.NewDict(len(options))
	for k, v := range options {
		_ = dict.SetKey(starlark.String(k), starlark.String(v))
	}
	dict.Freeze()
	return dict
}

// toDataset converts the value returned by dataset(size).
func toDataset(v starlark.Value) (*core.Dataset, error) {
	dict, ok := v.(*starlark.Dict)
	if !ok {
		return nil, fmt.Errorf("dataset() must return a dict, got %s", v.Type())
	}

	xs, err := column(dict, "x")
	if err != nil {
		return nil, err
	}
	ys, err := column(dict, "y")
	if err != nil {
		return nil, err
	}
	return core.NewDataset(xs, ys), nil
}

func column(dict *starlark.Dict, key string) ([]float64, error) {
	v, found, err := dict.Get(starlark.String(key))
	if err != nil {
		return nil, err
	}
	if !found || v == starlark.None {
		return nil, fmt.Errorf("%w: %s", core.ErrMissingColumn, key)
	}

	seq, ok := v.(starlark.Indexable)
	if !ok {
		return nil, fmt.Errorf("column %q must be a list, got %s", key, v.Type())
	}

	values := make([]float64, seq.Len())
	for i := range values {
		f, ok := starlark.AsFloat(seq.Index(i))
		if !ok {
			return nil, fmt.Errorf("column %q index %d: %s is not a number", key, i, seq.Index(i).Type())
		}
		values[i] = f
	}
	return values, nil
}
