package display

import (
	"encoding/json"
	"fmt"
	"io"
)

// PrettyPrintJSON writes v as indented JSON
func PrettyPrintJSON(w io.Writer, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		Printf(w, Red, "Error formatting JSON: %s", err)
		return
	}
	fmt.Fprintln(w, string(data))
}
