// Package flagx lets the CLI parse its command-line flags in stages. The
// config file path (-c/-config) has to be known before the runtime
// overrides (-a, -t, -d) are parsed, so each stage first filters os.Args
// down to the flags it owns and feeds only those to a flag.FlagSet.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns the subset of args belonging to the given flag names,
// in their original order. Both the "-t 15" and "--t=15" spellings are
// kept; unknown flags and their values are dropped. The result is always
// non-nil and safe to hand to flag.FlagSet.Parse.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, name := range allowedFlags {
		allowed[name] = struct{}{}
	}

	kept := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		// "-flag=value" travels as a single argument.
		if strings.HasPrefix(arg, "-") {
			if name, _, found := strings.Cut(arg, "="); found {
				if _, ok := allowed[name]; ok {
					kept = append(kept, arg)
				}
				continue
			}
		}

		// "-flag value": the value is the next argument, unless that
		// argument is itself a flag.
		if _, ok := allowed[arg]; ok {
			kept = append(kept, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				kept = append(kept, args[i+1])
				i++
			}
		}
	}

	return kept
}

// JsonConfigFlags extracts the config file path given via -c or -config,
// ignoring every other argument so flags owned by other packages never
// trip the parser. Returns "" when neither flag is present.
func JsonConfigFlags() string {
	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	var path string
	fs := flag.NewFlagSet("jsonconfig", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to the JSON config file")
	fs.StringVar(&path, "c", "", "path to the JSON config file (short)")
	_ = fs.Parse(args)

	return path
}
