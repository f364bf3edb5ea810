package cli

import (
	"fmt"
	"io"
	"strings"
)

// Shells lists the shells GenerateCompletion accepts.
var Shells = []string{"bash", "zsh", "fish"}

// completionFlag describes one command-line flag for completion scripts.
type completionFlag struct {
	name   string
	usage  string
	values []string
	file   bool
	// takesArg is false for boolean switches.
	takesArg bool
}

// completionFlags returns the modcalc flag table with the operation and
// method names filled in.
func completionFlags(ops, methods []string) []completionFlag {
	return []completionFlag{
		{name: "op", usage: "Operation to evaluate", values: ops, takesArg: true},
		{name: "a", usage: "First operand", takesArg: true},
		{name: "b", usage: "Second operand or exponent", takesArg: true},
		{name: "m", usage: "Modulus", takesArg: true},
		{name: "method", usage: "Method for operations with alternatives", values: methods, takesArg: true},
		{name: "policy", usage: "Alias for -method", values: methods, takesArg: true},
		{name: "check-prime", usage: "Reject composite moduli for the Fermat inverse"},
		{name: "compare", usage: "Run and compare every method"},
		{name: "timeout", usage: "Maximum execution time", values: []string{"10s", "1m", "5m", "30m"}, takesArg: true},
		{name: "json", usage: "Output in JSON format"},
		{name: "quiet", usage: "Minimal output for scripts"},
		{name: "v", usage: "Print long values in full"},
		{name: "no-color", usage: "Disable colored output"},
		{name: "server", usage: "Start the HTTP server"},
		{name: "port", usage: "Server port", values: []string{"8080", "3000", "9000"}, takesArg: true},
		{name: "max-digits", usage: "Maximum operand length", takesArg: true},
		{name: "karatsuba-threshold", usage: "Karatsuba cutoff in cells", values: []string{"16", "32", "48", "64"}, takesArg: true},
		{name: "cache-size", usage: "Cached Montgomery contexts", takesArg: true},
		{name: "max-iterations", usage: "Bound on searching methods", takesArg: true},
		{name: "rho-attempts", usage: "Pollard rho polynomials to try", takesArg: true},
		{name: "calibrate", usage: "Benchmark Karatsuba thresholds"},
		{name: "log-level", usage: "Log level", values: []string{"debug", "info", "warn", "error"}, takesArg: true},
		{name: "config", usage: "TOML configuration file", file: true, takesArg: true},
		{name: "completion", usage: "Print a completion script", values: Shells, takesArg: true},
		{name: "version", usage: "Print version information"},
	}
}

// GenerateCompletion writes a completion script for shell that offers the
// given operation and method names as values of -op and -method.
func GenerateCompletion(out io.Writer, shell string, ops, methods []string) error {
	flags := completionFlags(ops, methods)
	switch shell {
	case "bash":
		return writeBash(out, flags)
	case "zsh":
		return writeZsh(out, flags)
	case "fish":
		return writeFish(out, flags)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: %s)", shell, strings.Join(Shells, ", "))
	}
}

func writeBash(out io.Writer, flags []completionFlag) error {
	var sb strings.Builder
	sb.WriteString("# bash completion for modcalc\n")
	sb.WriteString("# source this file from ~/.bashrc\n\n")
	sb.WriteString("_modcalc() {\n")
	sb.WriteString("    local cur=\"${COMP_WORDS[COMP_CWORD]}\" prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	sb.WriteString("    case \"${prev}\" in\n")
	for _, f := range flags {
		switch {
		case f.file:
			fmt.Fprintf(&sb, "        -%s) COMPREPLY=( $(compgen -f -- \"${cur}\") ); return 0 ;;\n", f.name)
		case len(f.values) > 0:
			fmt.Fprintf(&sb, "        -%s) COMPREPLY=( $(compgen -W %q -- \"${cur}\") ); return 0 ;;\n",
				f.name, strings.Join(f.values, " "))
		}
	}
	sb.WriteString("    esac\n")
	names := make([]string, len(flags))
	for i, f := range flags {
		names[i] = "-" + f.name
	}
	fmt.Fprintf(&sb, "    COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(names, " "))
	sb.WriteString("}\n\ncomplete -F _modcalc modcalc\n")
	_, err := io.WriteString(out, sb.String())
	return err
}

func writeZsh(out io.Writer, flags []completionFlag) error {
	var sb strings.Builder
	sb.WriteString("#compdef modcalc\n\n")
	sb.WriteString("_modcalc() {\n    _arguments \\\n")
	for i, f := range flags {
		arg := fmt.Sprintf("'-%s[%s]", f.name, f.usage)
		switch {
		case f.file:
			arg += ":file:_files"
		case len(f.values) > 0:
			arg += fmt.Sprintf(":%s:(%s)", f.name, strings.Join(f.values, " "))
		case f.takesArg:
			arg += fmt.Sprintf(":%s:", f.name)
		}
		arg += "'"
		if i < len(flags)-1 {
			arg += " \\"
		}
		fmt.Fprintf(&sb, "        %s\n", arg)
	}
	sb.WriteString("}\n\n_modcalc \"$@\"\n")
	_, err := io.WriteString(out, sb.String())
	return err
}

func writeFish(out io.Writer, flags []completionFlag) error {
	var sb strings.Builder
	sb.WriteString("# fish completion for modcalc\n")
	sb.WriteString("# save as ~/.config/fish/completions/modcalc.fish\n\n")
	sb.WriteString("complete -c modcalc -f\n")
	for _, f := range flags {
		line := fmt.Sprintf("complete -c modcalc -o %s -d '%s'", f.name, f.usage)
		switch {
		case f.file:
			line += " -rF"
		case len(f.values) > 0:
			line += fmt.Sprintf(" -xa '%s'", strings.Join(f.values, " "))
		case f.takesArg:
			line += " -x"
		}
		sb.WriteString(line + "\n")
	}
	_, err := io.WriteString(out, sb.String())
	return err
}
