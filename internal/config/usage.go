package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/agbru/chainorder/internal/ui"
)

// setCustomUsage configures the flag set with a colored usage function.
func setCustomUsage(fs *flag.FlagSet) {
	fs.Usage = func() {
		// Respect NO_COLOR even before app initialization
		t := ui.GetCurrentTheme()
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			t = ui.NoColorTheme
		}

		out := fs.Output()

		// Header
		fmt.Fprintf(out, "\n%sMatrix Chain Order%s\n", t.Bold, t.Reset)
		fmt.Fprintf(out, "Optimal parenthesization of a matrix product, with DP tables and trace.\n\n")
		fmt.Fprintf(out, "%sUsage:%s\n  %s [flags]\n\n%sFlags:%s\n", t.Warning, t.Reset, fs.Name(), t.Warning, t.Reset)

		fs.VisitAll(func(f *flag.Flag) {
			if isShorthand(f.Name) {
				return
			}
			name, usage := flag.UnquoteUsage(f)
			flagSig := fmt.Sprintf("-%s", f.Name)
			if len(name) > 0 {
				flagSig += " " + name
			}

			// Print formatted flag
			fmt.Fprintf(out, "  %s%-25s%s %s", t.Primary, flagSig, t.Reset, usage)

			// Print default value if meaningful
			if f.DefValue != "" && f.DefValue != "0" && f.DefValue != "false" {
				fmt.Fprintf(out, " %s(default %s)%s", t.Secondary, f.DefValue, t.Reset)
			}
			fmt.Fprintln(out)
		})
		fmt.Fprintf(out, "\n%sExamples:%s\n", t.Warning, t.Reset)
		fmt.Fprintf(out, "  %s -dims \"10, 30, 5, 60\" -tables -trace\n", fs.Name())
		fmt.Fprintf(out, "  %s -dims \"30 35 15 5 10 20 25\" -algo all\n", fs.Name())
		fmt.Fprintf(out, "  %s -server -port 9090\n", fs.Name())
		fmt.Fprintf(out, "\nEnvironment variables use the %s prefix (e.g. %sDIMS).\n\n", EnvPrefix, EnvPrefix)
	}
}

// isShorthand reports flags that alias a longer flag and are omitted from
// the usage listing.
func isShorthand(name string) bool {
	switch name {
	case "d", "o", "q":
		return true
	}
	return false
}
