package config

import (
	"flag"
	"os"
	"strings"
)

// envAliases groups flags that write the same field. The first name carries
// the environment variable; the others only count as "set on the command
// line".
var envAliases = [][]string{
	{"method", "policy"},
	{"quiet", "q"},
}

// envNames overrides the variable suffix derived from a flag name.
var envNames = map[string]string{
	"v": "VERBOSE",
}

// envSkip lists flags that are never read from the environment here.
// MODCALC_CONFIG is resolved before the file is loaded.
var envSkip = map[string]bool{
	"config":     true,
	"version":    true,
	"completion": true,
	"policy":     true,
	"q":          true,
}

// envKey returns the variable consulted for a flag, e.g. "max-digits"
// becomes MODCALC_MAX_DIGITS.
func envKey(flagName string) string {
	if name, ok := envNames[flagName]; ok {
		return EnvPrefix + name
	}
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

// getEnvString returns the MODCALC_<key> variable, or def when it is unset
// or empty.
func getEnvString(key, def string) string {
	if v := os.Getenv(EnvPrefix + key); v != "" {
		return v
	}
	return def
}

// isFlagSet reports whether any of names was given on the command line.
func isFlagSet(fs *flag.FlagSet, names ...string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		for _, name := range names {
			if f.Name == name {
				found = true
			}
		}
	})
	return found
}

// aliasesOf returns the names that share a field with flagName.
func aliasesOf(flagName string) []string {
	for _, group := range envAliases {
		if group[0] == flagName {
			return group
		}
	}
	return []string{flagName}
}

// normalizeBool maps the yes/no spellings onto values accepted by
// strconv.ParseBool.
func normalizeBool(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "on":
		return "true"
	case "no", "off":
		return "false"
	}
	return v
}

// applyEnvOverrides assigns MODCALC_<FLAG> variables to every flag that was
// not given on the command line. Values are parsed by the flag itself; an
// unparsable value is ignored and the previous value kept.
func applyEnvOverrides(fs *flag.FlagSet) {
	fs.VisitAll(func(f *flag.Flag) {
		if envSkip[f.Name] || isFlagSet(fs, aliasesOf(f.Name)...) {
			return
		}
		v := os.Getenv(envKey(f.Name))
		if v == "" {
			return
		}
		if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
			v = normalizeBool(v)
		}
		_ = f.Value.Set(v)
	})
}
