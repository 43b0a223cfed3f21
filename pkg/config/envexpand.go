package config

import (
	"os"
	"regexp"
)

// envRefRe matches ${VAR} and ${VAR:-default}. Bare $VAR is left alone so
// literal dollar signs in log patterns and passwords survive untouched.
var envRefRe = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*))?\}`)

// ExpandEnv expands ${VAR} and ${VAR:-default} references in YAML content.
// An unset variable without a default expands to the empty string;
// validation catches required fields left empty.
func ExpandEnv(data []byte) []byte {
	return envRefRe.ReplaceAllFunc(data, func(match []byte) []byte {
		groups := envRefRe.FindSubmatch(match)
		name := string(groups[1])
		if value, ok := os.LookupEnv(name); ok {
			return []byte(value)
		}
		if len(groups[2]) > 0 {
			return groups[3]
		}
		return nil
	})
}
