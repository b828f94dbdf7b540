package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/navgrid/internal/gridmap"
	"github.com/udisondev/navgrid/internal/gridstore"
	"github.com/udisondev/navgrid/internal/pathfind"
	"github.com/udisondev/navgrid/internal/render"
	"github.com/udisondev/navgrid/internal/watch"
)

type command struct {
	name  string
	desc  string
	setup func(fs *flag.FlagSet) func(ctx context.Context, e env) error
}

var commands = []command{
	{"find", "find a path between two cells", setupFind},
	{"batch", "run a file of queries concurrently", setupBatch},
	{"render", "draw a map (and optionally a path) as PNG", setupRender},
	{"import", "store a map file in the database", setupImport},
	{"maps", "list stored maps", setupMaps},
	{"delete", "remove a stored map", setupDelete},
	{"watch", "re-run a query whenever the map file changes", setupWatch},
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

// cellFlag parses "x,y".
type cellFlag struct {
	cell pathfind.Cell
	set  bool
}

func (f *cellFlag) String() string {
	if !f.set {
		return ""
	}
	return f.cell.String()
}

func (f *cellFlag) Set(s string) error {
	c, err := pathfind.ParseCell(s)
	if err != nil {
		return err
	}
	f.cell, f.set = c, true
	return nil
}

// source is where a command reads its grid from: a map file or a stored map.
type source struct {
	mapPath string
	dbName  string
}

func (s *source) register(fs *flag.FlagSet) {
	fs.StringVar(&s.mapPath, "map", "", "map file (YAML)")
	fs.StringVar(&s.dbName, "db", "", "stored map name")
}

func (s *source) load(ctx context.Context, e env) (*pathfind.Grid, error) {
	switch {
	case s.mapPath != "" && s.dbName != "":
		return nil, errors.New("-map and -db are mutually exclusive")
	case s.mapPath != "":
		m, err := gridmap.Load(s.mapPath)
		if err != nil {
			return nil, err
		}
		e.logger.Debug("map file loaded", "path", s.mapPath, "name", m.Name, "digest", m.Digest)
		return m.Grid(), nil
	case s.dbName != "":
		store, err := openStore(ctx, e)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		g := pathfind.NewGrid()
		if _, err := store.Load(ctx, s.dbName, g); err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, errors.New("one of -map or -db is required")
	}
}

func openStore(ctx context.Context, e env) (*gridstore.Store, error) {
	dsn := e.cfg.Database.DSN()
	store, err := gridstore.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := gridstore.RunMigrations(ctx, dsn); err != nil {
		store.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return store, nil
}

func newSearcher(e env, algo string, g *pathfind.Grid) (pathfind.Searcher, error) {
	if algo == "" {
		algo = e.cfg.Algorithm
	}
	opts, err := e.cfg.SearchOptions(e.logger)
	if err != nil {
		return nil, err
	}
	return pathfind.New(pathfind.Algorithm(algo), g, opts...)
}

// optimize returns the -optimize flag if given, else the configured default.
func optimize(fs *flag.FlagSet, flagValue bool, e env) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "optimize" {
			set = true
		}
	})
	if set {
		return flagValue
	}
	return e.cfg.Optimize
}

func printResult(w io.Writer, res pathfind.Result) {
	for i, n := range res.Path {
		fmt.Fprintf(w, "%3d  %-10s g=%.3f\n", i, n.Cell(), res.Costs[i])
	}
	fmt.Fprintf(w, "waypoints=%d cost=%.3f length=%.3f expanded=%d\n",
		len(res.Path), res.Cost, pathfind.Length(res.Path), res.Expanded)
}

func writeImage(e env, path string, g *pathfind.Grid, route []*pathfind.Node) error {
	opts := render.DefaultOptions()
	opts.Scale = e.cfg.Render.Scale
	img, err := render.Render(g, route, opts)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := render.WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	e.logger.Info("image written", "path", path, "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return nil
}

func setupFind(fs *flag.FlagSet) func(context.Context, env) error {
	var (
		src      source
		from, to cellFlag
	)
	src.register(fs)
	fs.Var(&from, "from", "start cell x,y")
	fs.Var(&to, "to", "goal cell x,y")
	algo := fs.String("algo", "", "astar or jps (default from config)")
	opt := fs.Bool("optimize", false, "smooth the path (default from config)")
	png := fs.String("png", "", "also render the path to this PNG file")

	return func(ctx context.Context, e env) error {
		if !from.set || !to.set {
			return errors.New("-from and -to are required")
		}
		g, err := src.load(ctx, e)
		if err != nil {
			return err
		}
		pf, err := newSearcher(e, *algo, g)
		if err != nil {
			return err
		}

		res, err := pf.Search(ctx, from.cell, to.cell, optimize(fs, *opt, e))
		if err != nil {
			return fmt.Errorf("find %s -> %s: %w", from.cell, to.cell, err)
		}
		printResult(e.out, res)

		if *png != "" {
			return writeImage(e, *png, g, res.Path)
		}
		return nil
	}
}

func setupBatch(fs *flag.FlagSet) func(context.Context, env) error {
	var src source
	src.register(fs)
	queries := fs.String("queries", "", "query file (YAML)")
	algo := fs.String("algo", "", "astar or jps (default from config)")
	workers := fs.Int("workers", -1, "concurrent queries (default from config)")

	return func(ctx context.Context, e env) error {
		if *queries == "" {
			return errors.New("-queries is required")
		}
		qs, err := gridmap.LoadQueries(*queries)
		if err != nil {
			return err
		}
		g, err := src.load(ctx, e)
		if err != nil {
			return err
		}
		pf, err := newSearcher(e, *algo, g)
		if err != nil {
			return err
		}

		n := *workers
		if n < 0 {
			n = e.cfg.Workers
		}
		results, err := pathfind.FindPaths(ctx, pf, qs, n)
		if err != nil {
			return err
		}

		found := 0
		for i, r := range results {
			switch {
			case r.Err == nil:
				found++
				fmt.Fprintf(e.out, "%3d  %s -> %s  waypoints=%d length=%.3f\n",
					i, r.Query.Start, r.Query.Goal, len(r.Path), pathfind.Length(r.Path))
			case errors.Is(r.Err, pathfind.ErrNoPath):
				fmt.Fprintf(e.out, "%3d  %s -> %s  no path\n", i, r.Query.Start, r.Query.Goal)
			default:
				fmt.Fprintf(e.out, "%3d  %s -> %s  error: %v\n", i, r.Query.Start, r.Query.Goal, r.Err)
			}
		}
		fmt.Fprintf(e.out, "queries=%d found=%d\n", len(results), found)
		return nil
	}
}

func setupRender(fs *flag.FlagSet) func(context.Context, env) error {
	var (
		src      source
		from, to cellFlag
	)
	src.register(fs)
	fs.Var(&from, "from", "optional start cell x,y")
	fs.Var(&to, "to", "optional goal cell x,y")
	png := fs.String("png", "", "output PNG file")

	return func(ctx context.Context, e env) error {
		if *png == "" {
			return errors.New("-png is required")
		}
		g, err := src.load(ctx, e)
		if err != nil {
			return err
		}

		var route []*pathfind.Node
		if from.set && to.set {
			pf, err := newSearcher(e, "", g)
			if err != nil {
				return err
			}
			route, err = pf.FindPath(ctx, from.cell, to.cell, e.cfg.Optimize)
			if err != nil {
				return fmt.Errorf("find %s -> %s: %w", from.cell, to.cell, err)
			}
		}
		return writeImage(e, *png, g, route)
	}
}

func setupImport(fs *flag.FlagSet) func(context.Context, env) error {
	mapPath := fs.String("map", "", "map file (YAML)")
	name := fs.String("name", "", "stored name (default: map name or file name)")
	force := fs.Bool("force", false, "store even if the digest is unchanged")

	return func(ctx context.Context, e env) error {
		if *mapPath == "" {
			return errors.New("-map is required")
		}
		m, err := gridmap.Load(*mapPath)
		if err != nil {
			return err
		}
		n := *name
		if n == "" {
			n = m.Name
		}
		if n == "" {
			n = strings.TrimSuffix(filepath.Base(*mapPath), filepath.Ext(*mapPath))
		}

		store, err := openStore(ctx, e)
		if err != nil {
			return err
		}
		defer store.Close()

		if !*force {
			info, err := store.Info(ctx, n)
			switch {
			case err == nil && info.Digest == m.Digest:
				fmt.Fprintf(e.out, "%s unchanged (%s)\n", n, m.Digest[:12])
				return nil
			case err != nil && !errors.Is(err, gridstore.ErrMapNotFound):
				return err
			}
		}

		g := m.Grid()
		info := gridstore.MapInfo{Name: n, Digest: m.Digest, CellSize: m.CellSize, Origin: m.Origin}
		if err := store.Save(ctx, info, g); err != nil {
			return err
		}
		fmt.Fprintf(e.out, "%s stored: %d cells (%s)\n", n, g.Len(), m.Digest[:12])
		return nil
	}
}

func setupMaps(fs *flag.FlagSet) func(context.Context, env) error {
	return func(ctx context.Context, e env) error {
		store, err := openStore(ctx, e)
		if err != nil {
			return err
		}
		defer store.Close()

		maps, err := store.List(ctx)
		if err != nil {
			return err
		}
		for _, m := range maps {
			fmt.Fprintf(e.out, "%-20s cells=%-6d cell_size=%g digest=%s updated=%s\n",
				m.Name, m.Cells, m.CellSize, m.Digest, m.UpdatedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	}
}

func setupDelete(fs *flag.FlagSet) func(context.Context, env) error {
	name := fs.String("name", "", "stored map name")

	return func(ctx context.Context, e env) error {
		if *name == "" {
			return errors.New("-name is required")
		}
		store, err := openStore(ctx, e)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(ctx, *name); err != nil {
			return err
		}
		fmt.Fprintf(e.out, "%s deleted\n", *name)
		return nil
	}
}

func setupWatch(fs *flag.FlagSet) func(context.Context, env) error {
	var from, to cellFlag
	mapPath := fs.String("map", "", "map file (YAML)")
	fs.Var(&from, "from", "start cell x,y")
	fs.Var(&to, "to", "goal cell x,y")
	algo := fs.String("algo", "", "astar or jps (default from config)")

	return func(ctx context.Context, e env) error {
		if *mapPath == "" || !from.set || !to.set {
			return errors.New("-map, -from and -to are required")
		}
		m, err := gridmap.Load(*mapPath)
		if err != nil {
			return err
		}
		g := m.Grid()
		pf, err := newSearcher(e, *algo, g)
		if err != nil {
			return err
		}

		query := func() {
			res, err := pf.Search(ctx, from.cell, to.cell, e.cfg.Optimize)
			if err != nil {
				fmt.Fprintf(e.out, "%s -> %s: %v\n", from.cell, to.cell, err)
				return
			}
			printResult(e.out, res)
		}
		query()

		w, err := watch.New(*mapPath, e.cfg.Watch.Debounce, e.logger)
		if err != nil {
			return err
		}

		eg, gctx := errgroup.WithContext(ctx)
		eg.Go(func() error {
			<-gctx.Done()
			return w.Close()
		})
		eg.Go(func() error {
			for {
				select {
				case next, ok := <-w.Maps:
					if !ok {
						return nil
					}
					next.Build(g)
					fmt.Fprintf(e.out, "-- %s changed (%s)\n", *mapPath, next.Digest[:12])
					query()
				case err, ok := <-w.Errors:
					if !ok {
						return nil
					}
					e.logger.Warn("map reload failed", "path", *mapPath, "err", err)
				case <-gctx.Done():
					return nil
				}
			}
		})
		return eg.Wait()
	}
}
