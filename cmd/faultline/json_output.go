package main

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"faultline/internal/nrml"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// failureJSON is the JSON shape of a failed read.
type failureJSON struct {
	Source string `json:"source"`
	Kind   string `json:"kind"`
	Stage  string `json:"stage,omitempty"`
	Field  string `json:"field,omitempty"`
	Error  string `json:"error"`
}

func newFailureJSON(source string, err error) failureJSON {
	out := failureJSON{Source: source, Kind: "unknown", Error: err.Error()}
	var nerr *nrml.Error
	if errors.As(err, &nerr) {
		out.Kind = nerr.ErrorKind()
		out.Stage = nerr.Stage.String()
		out.Field = nerr.Field
	}
	return out
}
