package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"keydungeon/pkg/engine/logging"
	"keydungeon/pkg/engine/terminal"
	"keydungeon/pkg/engine/world"
	"keydungeon/pkg/game/analysis"
	"keydungeon/pkg/game/config"
	"keydungeon/pkg/game/constraints"
	"keydungeon/pkg/game/devtools"
	"keydungeon/pkg/game/generator"
)

var (
	colorTitle   = color.Style{color.FgGreen, color.OpBold}
	colorValue   = color.Style{color.FgYellow}
	colorWarning = color.Style{color.FgRed, color.OpBold}
)

func initLocale(lang string) {
	gotext.Configure("locales", lang, "default")
}

// buildConstraints picks the rectangle or the shape mask and adds any
// acceptance checks asked for.
func buildConstraints(cfg config.Config) (constraints.Constraints, error) {
	var c constraints.Constraints
	if cfg.ShapeFile != "" {
		shape, err := constraints.LoadShape(cfg.ShapeFile, cfg.Spaces, cfg.Keys)
		if err != nil {
			return nil, err
		}
		c = shape
	} else {
		c = constraints.NewCount(cfg.Spaces, cfg.Keys, cfg.Width, cfg.Height)
	}

	if cfg.RequireSolvable {
		c = constraints.WithAcceptance(c, constraints.RequireSolvable())
	}
	return c, nil
}

func printSummary(gen *generator.DungeonGenerator, d world.View) {
	report := analysis.Solve(d)

	fmt.Println(colorTitle.Sprint(gotext.Get("TITLE")))
	fmt.Println(gotext.Get("SUMMARY_GENERATOR", colorValue.Sprint(gen.Name())))
	fmt.Println(gotext.Get("SUMMARY_SEED", colorValue.Sprint(gen.Seed())))
	fmt.Println(gotext.Get("SUMMARY_ATTEMPTS", colorValue.Sprint(gen.Attempts())))
	fmt.Println(gotext.Get("SUMMARY_ROOMS", colorValue.Sprint(d.RoomCount())))
	fmt.Println(gotext.Get("SUMMARY_KEY_ORDER", colorValue.Sprint(report.KeyOrder)))
	fmt.Println(gotext.Get("SUMMARY_DEAD_ENDS", colorValue.Sprint(analysis.DeadEnds(d))))
	if !report.Solvable() {
		fmt.Println(colorWarning.Sprint(gotext.Get("NOT_SOLVABLE")))
	}
	fmt.Println()
}

func fail(format string, a ...any) {
	fmt.Fprintln(os.Stderr, colorWarning.Sprint(fmt.Sprintf(format, a...)))
	os.Exit(1)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("%v", err)
	}

	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	initLocale(cfg.Language)

	colored := cfg.Color && terminal.IsTerminal()
	color.Enable = colored

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	c, err := buildConstraints(cfg)
	if err != nil {
		fail("%s", gotext.Get("SHAPE_ERROR", err))
	}

	gen := generator.NewDungeonGenerator(seed, c)
	gen.SetMaxRetries(cfg.MaxRetries)
	gen.SetLogger(logging.Stdout(colored))

	if err := gen.Generate(); err != nil {
		switch {
		case errors.Is(err, generator.ErrGenerationFailed):
			fail("%s", gotext.Get("GENERATION_FAILED", gen.Attempts()))
		case errors.Is(err, generator.ErrInvariant):
			fail("%s", gotext.Get("GENERATOR_BUG", err))
		default:
			fail("%v", err)
		}
	}

	d := gen.Dungeon()
	printSummary(gen, d)
	devtools.WriteMap(os.Stdout, d, colored)

	if !terminal.Fits(devtools.MapWidth(d)) {
		fmt.Println(colorWarning.Sprint(gotext.Get("MAP_TOO_WIDE", devtools.MapWidth(d), terminal.GetWidth())))
	}

	if cfg.DumpPath != "" {
		path, err := devtools.DumpToFile(cfg.DumpPath, d, devtools.Metadata{
			Generator: gen.Name(),
			Seed:      gen.Seed(),
			Attempts:  gen.Attempts(),
			Keys:      cfg.Keys,
		})
		if err != nil {
			fail("%s", gotext.Get("DUMP_FAILED", err))
		}
		fmt.Println(gotext.Get("DUMP_WRITTEN", path))
	}
}
