package main

import (
	"github.com/Gunvolt24/xacc_orders/config"
	"github.com/Gunvolt24/xacc_orders/internal/app"
	"github.com/Gunvolt24/xacc_orders/internal/boundary"
	"github.com/spf13/cobra"
)

// boundaryFlags — переопределения секции Boundary из флагов.
type boundaryFlags struct {
	region, stage, internal, external, apiID, method, path string
}

func newRootCmd() *cobra.Command {
	var bf boundaryFlags

	rootCmd := &cobra.Command{
		Use:           "boundary-policy",
		Short:         "Print and check the internal orders API authorization boundary",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&bf.region, "region", "", "AWS region of the internal API")
	pf.StringVar(&bf.stage, "stage", "", "API Gateway stage")
	pf.StringVar(&bf.internal, "internal-account", "", "account that owns the internal API")
	pf.StringVar(&bf.external, "external-account", "", "account allowed to invoke the internal API")
	pf.StringVar(&bf.apiID, "rest-api-id", "", "internal REST API id")
	pf.StringVar(&bf.method, "route-method", "", "allowed HTTP method")
	pf.StringVar(&bf.path, "route-path", "", "allowed resource path")

	load := func() (boundary.Boundary, error) { return loadBoundary(bf) }

	rootCmd.AddCommand(
		newPolicyCmd("resource", "Print the resource policy of the internal API", load, boundary.ResourcePolicy),
		newPolicyCmd("invoker", "Print the identity policy of the edge handler role", load, boundary.InvokerPolicy),
		newCheckCmd(load),
	)
	return rootCmd
}

// loadBoundary — конфигурация из окружения, поверх неё флаги.
func loadBoundary(bf boundaryFlags) (boundary.Boundary, error) {
	cfg, err := config.Load()
	if err != nil {
		return boundary.Boundary{}, err
	}
	b := app.BoundaryFromConfig(cfg.Boundary)

	override := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	override(&b.Region, bf.region)
	override(&b.Stage, bf.stage)
	override(&b.InternalAccountID, bf.internal)
	override(&b.ExternalAccountID, bf.external)
	override(&b.RestAPIID, bf.apiID)
	override(&b.Method, bf.method)
	override(&b.Path, bf.path)

	if err := b.Validate(); err != nil {
		return boundary.Boundary{}, err
	}
	return b, nil
}
