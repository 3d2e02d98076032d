package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"shikaku.dev/solver/internal/domain"
	"shikaku.dev/solver/internal/explain"
	"shikaku.dev/solver/internal/planter"
	"shikaku.dev/solver/internal/render"
	"shikaku.dev/solver/internal/solver"
	"shikaku.dev/solver/internal/store"
	"shikaku.dev/solver/internal/textformat"
	"shikaku.dev/solver/internal/usecase"
)

// MainConfig holds every flag shared across subcommands plus the wired
// service they all call into.
type MainConfig struct {
	Color     bool   `cli:"name=color desc='colorize rectangle output'"`
	KeepNum   bool   `cli:"name=keepnum desc='print clue values instead of rectangle labels'"`
	DataDir   string `cli:"name=data desc='directory holding saved puzzles'"`
	AllSolves bool   `cli:"name=all desc='print every solution, not just the first'"`
	LogLevel  string `cli:"name=log-level desc='debug|info|warn|error'"`

	Main *cli.Command

	svc    *usecase.Service
	logger *slog.Logger
}

func (cfg *MainConfig) log() *slog.Logger {
	if cfg.logger == nil {
		lvl := slog.LevelInfo
		switch strings.ToLower(cfg.LogLevel) {
		case "debug":
			lvl = slog.LevelDebug
		case "warn":
			lvl = slog.LevelWarn
		case "error":
			lvl = slog.LevelError
		}
		cfg.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	}
	return cfg.logger
}

func (cfg *MainConfig) service() *usecase.Service {
	if cfg.svc == nil {
		if cfg.DataDir == "" {
			cfg.DataDir = "./data"
		}
		cfg.svc = usecase.NewService(
			solver.NewEngine(),
			explain.NewDeducer(),
			planter.NewPlanter(),
			store.NewFS(cfg.DataDir),
		)
	}
	return cfg.svc
}

func (cfg *MainConfig) renderer(out *os.File) *render.Renderer {
	colorize := cfg.Color
	if colorize && !isatty.IsTerminal(out.Fd()) {
		colorize = false
	}
	return &render.Renderer{Colorize: colorize, KeepClues: cfg.KeepNum}
}

// MainCommand builds the shikaku command tree.
func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommandAt(&cfg.Main, "shikaku").
		WithSynopsis("shikaku [opts] command [opts]").
		WithDescription("shikaku solves, explains, and plants rectangle-division puzzles.").
		WithOpts(opts...).
		WithSubs(
			SolveCommand(cfg),
			ExplainCommand(cfg),
			PlantCommand(cfg),
			ListCommand(cfg),
			ShowCommand(cfg),
		)
}

func SolveCommand(cfg *MainConfig) *cli.Command {
	return cli.NewCommand("solve").
		WithAliases("s").
		WithSynopsis("solve [file]").
		WithDescription("solve reads a grid and prints every tiling consistent with its clues.").
		WithRun(func(cc *cli.Context, args []string) error {
			return runSolve(cfg, cc, args)
		})
}

func runSolve(cfg *MainConfig, cc *cli.Context, args []string) error {
	board, err := readBoard(args)
	if err != nil {
		return err
	}
	res, err := cfg.service().Solve(context.Background(), board)
	if err != nil {
		return cli.ExitCodeErr(1)
	}
	cfg.log().Debug("solve", "solutions", len(res.Solutions), "nodes", res.Stats.Nodes,
		"cacheHits", res.Stats.CacheHits, "dur", res.Stats.Duration)
	if len(res.Solutions) == 0 {
		fmt.Fprintln(cc.Out, "0 solutions")
		return nil
	}
	fmt.Fprintf(cc.Out, "%d solution(s), %d node(s)\n", len(res.Solutions), res.Stats.Nodes)

	sols := res.Solutions
	sort.Strings(sols)
	if !cfg.AllSolves {
		sols = sols[:1]
	}
	r := cfg.renderer(os.Stdout)
	for i, s := range sols {
		if len(sols) > 1 {
			fmt.Fprintf(cc.Out, "-- solution %d --\n", i+1)
		}
		if err := r.Render(cc.Out, board, s); err != nil {
			return err
		}
	}
	return nil
}

func ExplainCommand(cfg *MainConfig) *cli.Command {
	return cli.NewCommand("explain").
		WithAliases("e").
		WithSynopsis("explain [file]").
		WithDescription("explain prints the next forced deduction available on a grid.").
		WithRun(func(cc *cli.Context, args []string) error {
			return runExplain(cfg, cc, args)
		})
}

func runExplain(cfg *MainConfig, cc *cli.Context, args []string) error {
	board, err := readBoard(args)
	if err != nil {
		return err
	}
	exp, ok, err := cfg.service().Explain(context.Background(), board)
	if err != nil {
		return cli.ExitCodeErr(1)
	}
	if !ok {
		fmt.Fprintln(cc.Out, "no deduction available; branching is required")
		return nil
	}
	fmt.Fprintln(cc.Out, exp.Message)
	return nil
}

func PlantCommand(cfg *MainConfig) *cli.Command {
	return cli.NewCommand("plant").
		WithAliases("p").
		WithSynopsis("plant <seed> <height> <width>").
		WithDescription("plant generates a fresh puzzle from a seed and prints it as clues.").
		WithRun(func(cc *cli.Context, args []string) error {
			return runPlant(cfg, cc, args)
		})
}

func runPlant(cfg *MainConfig, cc *cli.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("%w: plant requires <seed> <height> <width>", cli.ErrUsage)
	}
	seed, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("%w: bad seed %q", cli.ErrUsage, args[0])
	}
	height, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: bad height %q", cli.ErrUsage, args[1])
	}
	width, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("%w: bad width %q", cli.ErrUsage, args[2])
	}

	puzzle, err := cfg.service().Plant(context.Background(), seed, domain.Size{Height: height, Width: width})
	if err != nil {
		return cli.ExitCodeErr(1)
	}
	puzzle.ID = fmt.Sprintf("seed-%d-%dx%d", seed, height, width)
	if err := cfg.service().Save(context.Background(), puzzle); err != nil {
		cfg.log().Warn("could not save planted puzzle", "id", puzzle.ID, "err", err)
	}
	r := cfg.renderer(os.Stdout)
	r.KeepClues = true
	blank := make([]byte, 2*height*width)
	for i := range blank {
		blank[i] = '0'
	}
	fmt.Fprintf(cc.Out, "planted %s\n", puzzle.ID)
	return r.Render(cc.Out, puzzle.Board, string(blank))
}

func ListCommand(cfg *MainConfig) *cli.Command {
	return cli.NewCommand("list").
		WithAliases("l").
		WithSynopsis("list").
		WithDescription("list shows every saved puzzle.").
		WithRun(func(cc *cli.Context, args []string) error {
			metas, err := cfg.service().List(context.Background())
			if err != nil {
				return cli.ExitCodeErr(1)
			}
			for _, m := range metas {
				fmt.Fprintf(cc.Out, "%s\t%s\n", m.ID, m.Name)
			}
			return nil
		})
}

func ShowCommand(cfg *MainConfig) *cli.Command {
	return cli.NewCommand("show").
		WithSynopsis("show <id>").
		WithDescription("show loads a saved puzzle and solves it.").
		WithRun(func(cc *cli.Context, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("%w: show requires exactly one puzzle ID", cli.ErrUsage)
			}
			puzzle, err := cfg.service().Load(context.Background(), args[0])
			if err != nil {
				return cli.ExitCodeErr(1)
			}
			return runSolveBoard(cfg, cc, puzzle.Board)
		})
}

func runSolveBoard(cfg *MainConfig, cc *cli.Context, board *domain.Board) error {
	res, err := cfg.service().Solve(context.Background(), board)
	if err != nil {
		return cli.ExitCodeErr(1)
	}
	if len(res.Solutions) == 0 {
		fmt.Fprintln(cc.Out, "0 solutions")
		return nil
	}
	r := cfg.renderer(os.Stdout)
	return r.Render(cc.Out, board, res.Solutions[0])
}

func readBoard(args []string) (*domain.Board, error) {
	p := textformat.NewParser()
	if len(args) == 0 {
		return p.Parse(os.Stdin)
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.Parse(f)
}
