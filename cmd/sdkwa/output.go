package main

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// print writes v in the selected output format. YAML output goes through the
// JSON encoding first so that field names match the API's.
func (a *app) print(v any) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	if a.flags.output == "yaml" {
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		data, err = yaml.Marshal(generic)
		if err != nil {
			return fmt.Errorf("encode yaml output: %w", err)
		}
		_, err = a.stdout.Write(data)
		return err
	}

	_, err = fmt.Fprintf(a.stdout, "%s\n", data)
	return err
}
