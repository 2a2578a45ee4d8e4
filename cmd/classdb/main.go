// classdb dumps the registered class database as a text report or a
// canonical CBOR snapshot, for diffing and documentation tooling.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/TML233/PawsEngine/inspect"
	"github.com/TML233/PawsEngine/system"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("classdb")

func main() {
	configDir := flag.String("config", ".", "Directory containing classdb.toml")
	output := flag.String("o", "", "Output file (default: stdout, or [output].path from classdb.toml)")
	format := flag.String("format", "", "Output format: text or cbor (default from classdb.toml)")
	verbose := flag.Bool("v", false, "Verbose output")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: classdb [options]\n\n")
		fmt.Fprintf(os.Stderr, "Dumps every class registered in the engine class database.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  classdb                      # Text report on stdout\n")
		fmt.Fprintf(os.Stderr, "  classdb -format cbor -o classes.cbor\n")
	}
	flag.Parse()

	verbosity := 0
	if *verbose {
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)

	cfg, err := LoadConfig(*configDir)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
	if *output != "" {
		cfg.Output.Path = *output
	}
	if *format != "" {
		cfg.Output.Format = *format
	}

	if err := run(cfg); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(cfg *Config) error {
	snapshot := inspect.Capture(system.DefaultClassDB())
	snapshot.Classes = filterClasses(snapshot.Classes, cfg.Filter.Prefixes)
	log.Infof("captured %d classes (snapshot %s)", len(snapshot.Classes), snapshot.ID)

	out := os.Stdout
	if cfg.Output.Path != "" {
		f, err := os.Create(cfg.Output.Path)
		if err != nil {
			return fmt.Errorf("cannot create %s: %w", cfg.Output.Path, err)
		}
		defer f.Close()
		out = f
	}

	switch cfg.Output.Format {
	case "cbor":
		data, err := snapshot.Encode()
		if err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		if _, err := out.Write(data); err != nil {
			return err
		}
	default:
		if err := inspect.WriteReport(out, snapshot); err != nil {
			return err
		}
	}
	return nil
}

// filterClasses keeps classes matching any of the prefixes. An empty
// prefix list keeps everything.
func filterClasses(classes []inspect.ClassInfo, prefixes []string) []inspect.ClassInfo {
	if len(prefixes) == 0 {
		return classes
	}
	kept := classes[:0]
	for _, c := range classes {
		for _, p := range prefixes {
			if strings.HasPrefix(c.Name, p) {
				kept = append(kept, c)
				break
			}
		}
	}
	return kept
}
