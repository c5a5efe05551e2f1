// Command cmapgos builds a GOS container for a font and optionally reports
// how each requested layout compares to the source tables.
//
// Usage:
//
//	cmapgos -font NotoSans-Regular.otf -types 5,2,3,4 -report
//	cmapgos -font "Source Han Sans" -types 6 -o charset.gos
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/arloliu/cmapgos"
	"github.com/arloliu/cmapgos/format"
	"github.com/arloliu/cmapgos/measure"
	"github.com/arloliu/cmapgos/sfnt"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("cmapgos", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fontArg := fs.String("font", "", "Font file path or system font name")
	typesArg := fs.String("types", "5", "Comma separated GOS type ids, in container order")
	output := fs.String("o", "", "Optional output file for the GOS container")
	report := fs.Bool("report", false, "Print a size report for each requested type")
	codecArg := fs.String("codec", "", "Only report this codec (none, zstd, s2, lz4)")
	verbose := fs.Bool("v", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *fontArg == "" {
		return fmt.Errorf("-font is required")
	}

	types, err := parseTypes(*typesArg)
	if err != nil {
		return err
	}

	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	path, data, err := loadFont(*fontArg)
	if err != nil {
		return err
	}

	font, err := sfnt.Parse(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	info := describeFont(data)
	logger.WithFields(logrus.Fields{
		"path":   path,
		"name":   info.Name,
		"glyphs": info.NumGlyphs,
		"cff":    font.IsCFF(),
	}).Debug("loaded font")

	c, err := cmapgos.NewCompacter(font, cmapgos.WithLogger(logger))
	if err != nil {
		return err
	}

	container, err := c.GenerateGOSTypes(types)
	if err != nil {
		return err
	}

	if *output != "" {
		if err := os.WriteFile(*output, container, 0o644); err != nil { //nolint:gosec // G306: output is not sensitive
			return fmt.Errorf("write %s: %w", *output, err)
		}
	}

	if !*report {
		fmt.Fprintf(stdout, "%s: %d types, %d bytes\n", path, len(types), len(container))
		return nil
	}

	var opts []measure.Option
	if *codecArg != "" {
		ct, err := format.ParseCompressionType(*codecArg)
		if err != nil {
			return err
		}
		opts = append(opts, measure.WithCodecs(ct))
	}

	r, err := measure.Measure(font, types, opts...)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "=== %s ===\n", info.Title(path))
	if info.NumGlyphs != 0 {
		if n, err := font.NumGlyphs(); err == nil && n != info.NumGlyphs {
			fmt.Fprintf(stdout, "warning: maxp reports %d glyphs, font parser reports %d\n", n, info.NumGlyphs)
		}
	}
	fmt.Fprintln(stdout)

	if err := r.WriteTable(stdout); err != nil {
		return err
	}

	if best, ok := r.Best(format.TypeCMap12DeltaGID, format.TypeCMap12Delta, format.TypeCMap12Raw); ok {
		fmt.Fprintf(stdout, "Recommended cmap12 layout: type %d (%s), %d bytes\n", best.Type, best.Type, best.Size)
	}

	return nil
}

// parseTypes parses a comma separated list of GOS type ids.
func parseTypes(s string) ([]format.GOSType, error) {
	var types []format.GOSType
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		id, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid type %q", field)
		}

		t, err := format.ParseGOSType(id)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}

	return types, nil
}
