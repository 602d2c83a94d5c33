// Package cli holds command-line helpers shared by the binaries.
package cli

import (
	"flag"
)

// ParseInterspersed parses args with fs, allowing flags to appear before,
// between or after positional arguments. A lone "--" ends flag parsing.
//
// Postcondition: Returns the positional arguments in order, or the first
// flag error.
func ParseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		// flag stops at "--" and leaves everything after it untouched.
		if len(args) > 0 && len(rest) < len(args) && args[len(args)-len(rest)-1] == "--" {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}
