package cli

import (
	"encoding/json"
	"io"

	"github.com/felixgeelhaar/sprintpulse/internal/infrastructure/render"
	"github.com/spf13/cobra"
)

var (
	noColor    bool
	jsonOutput bool
)

func formatter(w io.Writer) render.Formatter {
	return render.Formatter{Palette: render.NewPalette(w, !noColor)}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of text")
}
