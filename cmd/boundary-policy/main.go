// Command boundary-policy prints and checks the authorization boundary of the
// internal orders API.
//
// Usage:
//
//	boundary-policy resource [--format json|yaml]   Resource policy of the internal API
//	boundary-policy invoker  [--format json|yaml]   Identity policy of the edge role
//	boundary-policy check --account 111111111111 --method POST --path /orders/
//
// Boundary values come from ORDERS_BOUNDARY_* variables (and .env.local);
// flags override them.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")

	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errDenied) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
