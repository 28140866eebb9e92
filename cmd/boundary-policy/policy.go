package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/xacc_orders/internal/boundary"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newPolicyCmd(
	use, short string,
	load func() (boundary.Boundary, error),
	build func(boundary.Boundary) boundary.PolicyDocument,
) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := load()
			if err != nil {
				return err
			}
			return writePolicy(cmd.OutOrStdout(), build(b), format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	return cmd
}

func writePolicy(w io.Writer, doc boundary.PolicyDocument, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", format)
	}
}
