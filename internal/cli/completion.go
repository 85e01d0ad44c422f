// Package cli provides shell completion script generation for various shells.
package cli

import (
	"fmt"
	"io"
	"strings"
)

// completionFlag describes one command-line flag for completion scripts.
type completionFlag struct {
	long        string
	short       string
	description string
	// values are suggested arguments; "" means the flag takes none.
	values string
	file   bool
	// algo marks the strategy flag, whose values come from the factory.
	algo bool
}

// completionFlags mirrors the flags registered by config.ParseConfig.
var completionFlags = []completionFlag{
	{long: "help", short: "h", description: "Show help message"},
	{long: "version", short: "V", description: "Show version information"},
	{long: "dims", short: "d", description: "Matrix dimensions p0,p1,...,pn", values: "10,30,5,60"},
	{long: "algo", description: "Strategy to use", algo: true},
	{long: "timeout", description: "Maximum execution time", values: "10s 30s 1m 5m"},
	{long: "trace", description: "Display the DP trace"},
	{long: "tables", description: "Display the cost and split tables"},
	{long: "json", description: "Output in JSON format"},
	{long: "output", short: "o", description: "Report file path", file: true},
	{long: "quiet", short: "q", description: "Print only cost and parenthesization"},
	{long: "no-color", description: "Disable colored output"},
	{long: "interactive", description: "Start interactive REPL mode"},
	{long: "server", description: "Start HTTP server mode"},
	{long: "port", description: "Server port", values: "8080 3000 5000 9000"},
	{long: "max-matrices", description: "Largest accepted number of matrices", values: "20 50 100"},
	{long: "stream-delay", description: "Pause between streamed trace lines", values: "0s 20ms 50ms 100ms"},
	{long: "rate-limit", description: "Requests per second per client", values: "5 10 50"},
	{long: "rate-burst", description: "Burst size per client", values: "10 20 100"},
	{long: "config", description: "TOML configuration file", file: true},
	{long: "completion", description: "Generate completion script", values: "bash zsh fish powershell"},
}

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish", "powershell").
//   - algorithms: List of available strategy names.
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string, algorithms []string) error {
	algoValues := strings.Join(append(append([]string{}, algorithms...), "all"), " ")
	switch shell {
	case "bash":
		return generateBashCompletion(out, algoValues)
	case "zsh":
		return generateZshCompletion(out, algoValues)
	case "fish":
		return generateFishCompletion(out, algoValues)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, algoValues)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

func (f completionFlag) argValues(algoValues string) string {
	if f.algo {
		return algoValues
	}
	return f.values
}

func (f completionFlag) takesArg() bool {
	return f.algo || f.file || f.values != ""
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer, algoValues string) error {
	var opts []string
	var cases strings.Builder
	for _, f := range completionFlags {
		names := []string{"--" + f.long}
		if f.short != "" {
			names = append(names, "-"+f.short)
		}
		opts = append(opts, names...)
		switch {
		case f.file:
			fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -f -- \"${cur}\") )\n            return 0\n            ;;\n",
				strings.Join(names, "|"))
		case f.takesArg():
			fmt.Fprintf(&cases, "        %s)\n            COMPREPLY=( $(compgen -W \"%s\" -- \"${cur}\") )\n            return 0\n            ;;\n",
				strings.Join(names, "|"), f.argValues(algoValues))
		}
	}

	_, err := fmt.Fprintf(out, `# Bash completion script for chainorder
# Add this to your ~/.bashrc or ~/.bash_completion

_chainorder_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _chainorder_completions chainorder
`, strings.Join(opts, " "), cases.String())
	return err
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer, algoValues string) error {
	var specs []string
	for _, f := range completionFlags {
		arg := ""
		switch {
		case f.file:
			arg = ":file:_files"
		case f.takesArg():
			arg = fmt.Sprintf(":%s:(%s)", f.long, f.argValues(algoValues))
		}
		if f.short != "" {
			specs = append(specs, fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'[%s]%s'",
				f.short, f.long, f.short, f.long, f.description, arg))
		} else {
			specs = append(specs, fmt.Sprintf("'--%s[%s]%s'", f.long, f.description, arg))
		}
	}

	_, err := fmt.Fprintf(out, `#compdef chainorder

# Zsh completion script for chainorder
# Add this to your ~/.zshrc or place in $fpath

_chainorder() {
    _arguments -s \
        %s
}

_chainorder "$@"
`, strings.Join(specs, " \\\n        "))
	return err
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer, algoValues string) error {
	var b strings.Builder
	b.WriteString("# Fish completion script for chainorder\n")
	b.WriteString("# Add this to ~/.config/fish/completions/chainorder.fish\n\n")
	b.WriteString("complete -c chainorder -f\n")
	for _, f := range completionFlags {
		fmt.Fprintf(&b, "complete -c chainorder")
		if f.short != "" {
			fmt.Fprintf(&b, " -s %s", f.short)
		}
		fmt.Fprintf(&b, " -l %s -d '%s'", f.long, f.description)
		switch {
		case f.file:
			b.WriteString(" -rF")
		case f.takesArg():
			fmt.Fprintf(&b, " -xa \"%s\"", f.argValues(algoValues))
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(out, b.String())
	return err
}

// generatePowerShellCompletion generates a PowerShell completion script.
func generatePowerShellCompletion(out io.Writer, algoValues string) error {
	var options, cases strings.Builder
	for _, f := range completionFlags {
		names := []string{"--" + f.long}
		if f.short != "" {
			names = append(names, "-"+f.short)
		}
		for _, name := range names {
			fmt.Fprintf(&options, "        @{Name = '%s'; Description = '%s' }\n", name, f.description)
		}
		if f.takesArg() && !f.file {
			quoted := strings.Fields(f.argValues(algoValues))
			for i, v := range quoted {
				quoted[i] = "'" + strings.Trim(v, "'") + "'"
			}
			fmt.Fprintf(&cases, "        '--%s' { $values = @(%s) }\n", f.long, strings.Join(quoted, ", "))
		}
	}

	_, err := fmt.Fprintf(out, `# PowerShell completion script for chainorder
# Add this to your $PROFILE

Register-ArgumentCompleter -CommandName 'chainorder' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    $values = $null
    switch ($prevElement) {
%s    }
    if ($values) {
        $values | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
        }
        return
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, options.String(), cases.String())
	return err
}
