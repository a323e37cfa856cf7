package options

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// OutputOptions
type OutputOptions struct {
	Output string
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().StringVarP(&po.Output, "output", "o", "text",
		"Output format. One of 'text', 'json' or 'yaml'.")
}

// Structured is true when output is meant for another program.
func (o *OutputOptions) Structured() bool {
	f := strings.ToLower(o.Output)
	return f == "json" || f == "yaml" || f == "yml"
}

func (o *OutputOptions) HandleError(err error) error {
	if strings.EqualFold(o.Output, "json") && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(color.Output, string(b))
		return nil
	}
	return err
}
