package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Gunvolt24/xacc_orders/internal/boundary"
	"github.com/spf13/cobra"
)

// errDenied — вызов не прошёл бы границу; сообщение уже напечатано.
var errDenied = errors.New("denied")

func newCheckCmd(load func() (boundary.Boundary, error)) *cobra.Command {
	var account, method, path string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate whether a caller could invoke a route of the internal API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := load()
			if err != nil {
				return err
			}
			if account == "" {
				return errors.New("--account is required")
			}

			principal := account
			if !strings.HasPrefix(account, "arn:") {
				principal = boundary.AccountRootARN(account)
			}

			g := boundary.NewGuard(b, nil, nil)
			decision, resourceARN := g.Check(principal, method, path)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "principal: %s\nresource:  %s\ndecision:  %s\n", principal, resourceARN, decision)
			if decision != boundary.Allow {
				return errDenied
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&account, "account", "", "caller account id or principal ARN")
	f.StringVar(&method, "method", "POST", "HTTP method of the call")
	f.StringVar(&path, "path", "/orders/", "resource path of the call (without stage)")
	return cmd
}
