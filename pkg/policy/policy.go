// Package policy evaluates operator supplied Rego rules that decide when a
// companion is promoted to a new evolution level.
//
// Every *.rego file in the policy directory is loaded and the query
// data.evolution is evaluated with the companion document as input. A policy
// grants a promotion by defining both "level" and "description":
//
//	package evolution
//
//	level := 2 if input.experiencePoints >= 100
//	description := "first molt" if level == 2
//
// An undefined result means no promotion.
package policy

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/edukshare-max/alebrije/pkg/model"
	"github.com/edukshare-max/alebrije/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
	"github.com/open-policy-agent/opa/v1/rego"
	"github.com/open-policy-agent/opa/v1/topdown/print"
)

const query = "data.evolution"

// Decision is a promotion granted by the policy
type Decision struct {
	Level       int
	Description string
}

// Policy holds the prepared evolution query. A nil *Policy is valid and never
// grants a promotion.
type Policy struct {
	prepared *rego.PreparedEvalQuery
}

type printHook struct{}

func (h *printHook) Print(ctx print.Context, message string) error {
	logging.From(ctx.Context).Debug("rego print", "message", message)
	return nil
}

// Load reads all Rego files in dir. It returns nil when the directory holds
// no policy files.
func Load(ctx context.Context, dir string) (*Policy, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.rego"))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to glob policy files", goerr.V("dir", dir))
	}
	if len(files) == 0 {
		return nil, nil
	}

	options := []func(*rego.Rego){
		rego.Query(query),
		rego.EnablePrintStatements(true),
	}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read policy file", goerr.V("path", file))
		}
		options = append(options, rego.Module(file, string(data)))
	}

	prepared, err := rego.New(options...).PrepareForEval(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to prepare evolution policy", goerr.V("dir", dir))
	}

	logging.From(ctx).Debug("evolution policy loaded", "dir", dir, "files", len(files))
	return &Policy{prepared: &prepared}, nil
}

// Evaluate runs the policy against c. It returns nil when the policy grants
// nothing or when the granted level does not exceed the current one.
func (p *Policy) Evaluate(ctx context.Context, c *model.Companion) (*Decision, error) {
	if p == nil || p.prepared == nil {
		return nil, nil
	}

	input, err := toInput(c)
	if err != nil {
		return nil, err
	}

	rs, err := p.prepared.Eval(ctx, rego.EvalInput(input), rego.EvalPrintHook(&printHook{}))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to evaluate evolution policy", goerr.V("ownerId", c.OwnerID))
	}
	if len(rs) == 0 || len(rs[0].Expressions) == 0 {
		return nil, nil
	}

	data, ok := rs[0].Expressions[0].Value.(map[string]any)
	if !ok {
		return nil, goerr.New("invalid evolution result: not an object")
	}
	if _, ok := data["level"]; !ok {
		return nil, nil
	}

	level, err := toInt(data["level"])
	if err != nil {
		return nil, err
	}
	description, _ := data["description"].(string)
	if description == "" {
		return nil, goerr.New("invalid evolution result: description is required", goerr.V("level", level))
	}

	if level <= c.Level {
		return nil, nil
	}
	return &Decision{Level: level, Description: description}, nil
}

// toInput converts the companion to the plain JSON shape Rego rules see, so
// field names match the stored document.
func toInput(c *model.Companion) (map[string]any, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode companion for policy")
	}
	var input map[string]any
	if err := json.Unmarshal(raw, &input); err != nil {
		return nil, goerr.Wrap(err, "failed to decode companion for policy")
	}
	return input, nil
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, goerr.Wrap(err, "invalid evolution result: level is not an integer", goerr.V("level", n))
		}
		return int(i), nil
	case float64:
		if n != float64(int(n)) {
			return 0, goerr.New("invalid evolution result: level is not an integer", goerr.V("level", n))
		}
		return int(n), nil
	case int:
		return n, nil
	default:
		return 0, goerr.New("invalid evolution result: level is not a number", goerr.V("level", v))
	}
}
