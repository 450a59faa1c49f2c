// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command logicsim designs and simulates logic circuits from the command line.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"

	sim "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/designer"
	"github.com/db47h/logicsim/internal/config"
	"github.com/db47h/logicsim/internal/metrics"
	"github.com/db47h/logicsim/logiclib"
	"github.com/db47h/logicsim/render"
	"github.com/db47h/logicsim/store"
	"github.com/pkg/errors"
)

const appName = "logicsim"

// Version is set at build time.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}

// env is what every command needs.
type env struct {
	cfg     *config.Config
	log     *slog.Logger
	metrics *metrics.Metrics
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cli, err := parseFlags(args, stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}
	if cli.ShowVersion {
		_, err = fmt.Fprintf(stdout, "%s %s\n", appName, Version)
		return err
	}
	cfg, err := config.Load(cli.ConfigPath)
	if err != nil {
		return err
	}
	cli.apply(cfg)
	if err = cfg.Validate(); err != nil {
		return err
	}
	if len(cli.Args) == 0 {
		return errors.New("missing command, see -help")
	}

	e := &env{
		cfg:     cfg,
		log:     setupLogger(stderr, cfg.Log.Level, cfg.Log.Format),
		metrics: metrics.New(),
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
	}
	if cfg.Metrics.Addr != "" {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := e.metrics.Serve(ctx, cfg.Metrics.Addr, e.log); err != nil {
				e.log.Error("metrics server failed", "error", err)
			}
		}()
	}

	cmd, args := cli.Args[0], cli.Args[1:]
	e.log.Debug("running command", "command", cmd, "args", args)
	switch cmd {
	case "examples":
		err = e.examples()
	case "simulate":
		err = e.simulate(args)
	case "render":
		err = e.render(args)
	case "export":
		err = e.export(args)
	case "session":
		err = e.session(ctx)
	default:
		return errors.Errorf("unknown command %q", cmd)
	}
	if err == flag.ErrHelp {
		return nil
	}
	if err != nil {
		e.log.Debug("command failed", "command", cmd, "error", fmt.Sprintf("%+v", err))
		return errors.WithMessage(err, cmd)
	}
	return nil
}

// source holds the flags selecting the circuit a command works on.
type source struct {
	example string
	in      string
	set     assignments
}

func (src *source) register(fs *flag.FlagSet) {
	fs.StringVar(&src.example, "example", "", "built-in example `name`")
	fs.StringVar(&src.in, "in", "", "circuit document `file`")
	fs.Var(&src.set, "set", "set input `id=0|1`, may be repeated")
}

func (src *source) circuit() (*sim.Circuit, error) {
	var c *sim.Circuit
	switch {
	case src.example != "" && src.in != "":
		return nil, errors.New("-example and -in are mutually exclusive")
	case src.example != "":
		e, ok := logiclib.Lookup(src.example)
		if !ok {
			return nil, errors.Wrapf(sim.ErrUnknownExample, "%q", src.example)
		}
		var err error
		if c, err = e.Circuit(); err != nil {
			return nil, err
		}
	case src.in != "":
		f, err := os.Open(src.in)
		if err != nil {
			return nil, errors.Wrap(err, "open circuit")
		}
		defer f.Close()
		doc, err := sim.Decode(f)
		if err != nil {
			return nil, errors.WithMessage(err, src.in)
		}
		if c, err = sim.FromDocument(doc); err != nil {
			return nil, errors.WithMessage(err, src.in)
		}
	default:
		return nil, errors.New("one of -example or -in is required")
	}
	return c, src.set.apply(c)
}

func (e *env) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

func (e *env) engine() *sim.Engine {
	return &sim.Engine{MaxIterations: e.cfg.Designer.MaxIterations}
}

func (e *env) theme() render.Theme {
	th := render.DefaultTheme()
	th.GridStep = e.cfg.Canvas.Grid
	return th
}

func (e *env) examples() error {
	tw := tabwriter.NewWriter(e.stdout, 0, 8, 2, ' ', 0)
	for _, ex := range logiclib.All() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", ex.Name, ex.Title, ex.Description)
	}
	return tw.Flush()
}

func (e *env) propagate(c *sim.Circuit) {
	r := e.engine().Propagate(c)
	e.metrics.Propagated(true, r)
	if !r.Converged {
		e.log.Warn("propagation did not converge", "iterations", r.Iterations)
	}
}

func (e *env) simulate(args []string) error {
	var src source
	fs := e.flagSet("simulate")
	src.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := src.circuit()
	if err != nil {
		return err
	}
	e.propagate(c)
	return printStates(e.stdout, c)
}

func printStates(w io.Writer, c *sim.Circuit) error {
	tw := tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)
	for _, cp := range c.Components() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", cp.ID(), cp.Kind().Label(), cp.State())
	}
	return tw.Flush()
}

func (e *env) render(args []string) error {
	var (
		src      source
		out      string
		simulate bool
	)
	fs := e.flagSet("render")
	src.register(fs)
	fs.StringVar(&out, "o", "circuit.png", "output PNG `file`")
	fs.BoolVar(&simulate, "simulate", false, "propagate before drawing")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := src.circuit()
	if err != nil {
		return err
	}
	if simulate {
		e.propagate(c)
	}
	return e.writePNG(out, c, render.Overlay{HitThreshold: e.cfg.Designer.HitThreshold})
}

func (e *env) writePNG(name string, c *sim.Circuit, o render.Overlay) error {
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "create image")
	}
	if err = render.RenderPNG(f, c, o, e.theme(), e.cfg.Canvas.Width, e.cfg.Canvas.Height); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return errors.Wrap(err, "write image")
	}
	e.log.Info("image written", "file", name, "components", c.Len())
	return nil
}

func (e *env) export(args []string) error {
	var (
		src source
		out string
	)
	fs := e.flagSet("export")
	src.register(fs)
	fs.StringVar(&out, "o", "", "output `file`, stdout if empty")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c, err := src.circuit()
	if err != nil {
		return err
	}
	d := designer.New(c, designer.WithLogger(e.log), designer.WithObserver(e.metrics))
	doc, err := d.Export()
	if err != nil {
		return err
	}
	return writeDocument(e.stdout, out, doc)
}

func writeDocument(stdout io.Writer, name string, doc *sim.Document) error {
	if name == "" {
		return doc.Encode(stdout)
	}
	f, err := os.Create(name)
	if err != nil {
		return errors.Wrap(err, "create document")
	}
	if err = doc.Encode(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "write document")
}

// openStore returns the configured document store and a function releasing
// it.
func (e *env) openStore(ctx context.Context) (designer.Store, func(), error) {
	sc := e.cfg.Store
	switch sc.Backend {
	case config.BackendMemory:
		return store.NewMemory(), func() {}, nil
	case config.BackendNATS:
		kv, err := store.OpenKV(ctx, sc.NATSURL, sc.Bucket)
		if err != nil {
			return nil, nil, err
		}
		return kv, kv.Close, nil
	default:
		d, err := store.NewDir(sc.Dir)
		if err != nil {
			return nil, nil, err
		}
		return d, func() {}, nil
	}
}
