// Command chainorder computes the optimal multiplication order of a matrix
// chain and shows the DP tables, the trace and the execution order.
//
// Usage:
//
//	chainorder -dims "30,35,15,5,10,20,25" -algo all
//	chainorder -dims "10 30 5 60" -quiet
//	chainorder -server -port 8080
//	chainorder -interactive
package main

import (
	"context"
	"os"

	"github.com/agbru/chainorder/internal/app"
	apperrors "github.com/agbru/chainorder/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		os.Exit(apperrors.ExitSuccess)
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.ExitErrorConfig)
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
