// Command modcalc evaluates arbitrary-precision modular arithmetic and
// number-theory operations from the command line or over HTTP.
package main

import (
	"context"
	"os"

	"github.com/agbru/modcalc/internal/app"
	apperrors "github.com/agbru/modcalc/internal/errors"
)

func main() {
	// -version is honored before any validation so that it works with an
	// otherwise incomplete command line.
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
