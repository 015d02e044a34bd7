// Package main is the entry point for the reconciler CLI.
package main

import (
	"os"

	"payment-reconciliation/cmd/reconciler/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
