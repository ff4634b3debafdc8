package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/edukshare-max/alebrije/pkg/model"
	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

func validateFormat(format string) error {
	switch format {
	case formatJSON, formatYAML:
		return nil
	default:
		return goerr.Wrap(model.ErrValidation, "unknown output format",
			goerr.V("format", format),
			goerr.V("valid", []string{formatJSON, formatYAML}),
		)
	}
}

// render writes v to w in the requested format
func render(w io.Writer, format string, v any) error {
	switch format {
	case formatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return goerr.Wrap(err, "failed to encode yaml")
		}
		return encoder.Close()

	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return goerr.Wrap(err, "failed to encode json")
		}
		fmt.Fprintf(w, "%s\n", string(data))
		return nil
	}
}

// readDocument reads a JSON or YAML object from path, or from stdin when
// path is "-". Files ending in .yaml or .yml are parsed as YAML.
func readDocument(path string, stdin io.Reader) (map[string]any, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read input file", goerr.V("path", path))
	}

	var doc map[string]any
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, goerr.Wrap(model.ErrValidation, "failed to parse YAML",
				goerr.V("path", path),
				goerr.V("cause", err.Error()),
			)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, goerr.Wrap(model.ErrValidation, "failed to parse JSON",
				goerr.V("path", path),
				goerr.V("cause", err.Error()),
			)
		}
	}

	if doc == nil {
		return nil, goerr.Wrap(model.ErrValidation, "input is not an object", goerr.V("path", path))
	}
	return doc, nil
}

func statusLine(c *model.Companion) string {
	return fmt.Sprintf("%s lv%d xp%d | hunger %d | happiness %d | health %d | energy %d | streak %dd",
		c.DisplayName,
		c.Level,
		c.ExperiencePoints,
		c.State.Hunger,
		c.State.Happiness,
		c.State.Health,
		c.State.Energy,
		c.State.ConsecutiveCareDays,
	)
}
