// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	sim "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/designer"
	"github.com/pkg/errors"
)

const sessionHelp = `commands:
  add KIND              add a component (input, output, and, or, not, xor)
  down X Y [connect]    press the pointer, connect starts a connection
  move X Y              move the pointer
  up X Y                release the pointer
  click X Y             click, toggles inputs
  rclick X Y            delete the component or connection at X Y
  sim                   toggle simulation mode
  step                  propagate once
  clear                 remove everything
  example NAME          load a built-in example
  save NAME [force]     save the circuit
  load NAME             load a saved circuit
  list                  list saved circuits
  delete NAME           delete a saved circuit
  export FILE           write the circuit document, - for stdout
  png FILE              draw the circuit
  states                print component states
  quit                  end the session
`

type session struct {
	e   *env
	d   *designer.Controller
	out io.Writer
}

func (e *env) session(ctx context.Context) error {
	out := e.stdout
	dc := e.cfg.Designer
	opts := []designer.Option{
		designer.WithNotifier(designer.NotifierFunc(func(l designer.Level, msg string) {
			fmt.Fprintf(out, "[%s] %s\n", l, msg)
		})),
		designer.WithLogger(e.log),
		designer.WithObserver(e.metrics),
		designer.WithHitThreshold(dc.HitThreshold),
		designer.WithMaxIterations(dc.MaxIterations),
		designer.WithSettleOnToggle(dc.SettleOnToggle),
	}
	st, release, err := e.openStore(ctx)
	if err != nil {
		e.log.Warn("document store unavailable", "backend", e.cfg.Store.Backend, "error", err)
	} else {
		defer release()
		opts = append(opts, designer.WithStore(st))
	}

	s := &session{e: e, d: designer.New(nil, opts...), out: out}
	sc := bufio.NewScanner(e.stdin)
	for sc.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		args := strings.Fields(line)
		if args[0] == "quit" || args[0] == "exit" {
			return nil
		}
		if err := s.exec(ctx, args); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
	return errors.Wrap(sc.Err(), "read commands")
}

func point(args []string) (sim.Point, error) {
	if len(args) < 2 {
		return sim.Point{}, errors.New("missing coordinates")
	}
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return sim.Point{}, errors.Errorf("invalid x coordinate %q", args[0])
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return sim.Point{}, errors.Errorf("invalid y coordinate %q", args[1])
	}
	return sim.Pt(x, y), nil
}

func arg(args []string, what string) (string, error) {
	if len(args) < 2 {
		return "", errors.Errorf("%s: missing %s", args[0], what)
	}
	return args[1], nil
}

// exec runs one command. Failures of designer actions are reported by the
// notifier; only usage errors are returned.
func (s *session) exec(ctx context.Context, args []string) error {
	d := s.d
	switch args[0] {
	case "add":
		name, err := arg(args, "kind")
		if err != nil {
			return err
		}
		k, err := sim.ParseKind(strings.ToLower(name))
		if err != nil {
			return err
		}
		_, _ = d.AddComponent(k)
	case "down", "move", "up", "click", "rclick":
		p, err := point(args[1:])
		if err != nil {
			return errors.WithMessage(err, args[0])
		}
		switch args[0] {
		case "down":
			var m designer.Mods
			if len(args) > 3 && args[3] == "connect" {
				m |= designer.ModConnect
			}
			d.PointerDown(p, m)
		case "move":
			d.PointerMove(p)
		case "up":
			d.PointerUp(p)
		case "click":
			d.Click(p)
		case "rclick":
			d.SecondaryClick(p)
		}
	case "sim":
		d.ToggleSimulation()
	case "step":
		d.Step()
	case "clear":
		d.Clear()
	case "example":
		name, err := arg(args, "example name")
		if err != nil {
			return err
		}
		_ = d.LoadExample(name)
	case "save":
		name, err := arg(args, "name")
		if err != nil {
			return err
		}
		_ = d.Save(ctx, name, len(args) > 2 && args[2] == "force")
	case "load":
		name, err := arg(args, "name")
		if err != nil {
			return err
		}
		_ = d.Load(ctx, name)
	case "list":
		names, err := d.ListSaved(ctx)
		if err != nil {
			return nil
		}
		for _, n := range names {
			fmt.Fprintln(s.out, n)
		}
	case "delete":
		name, err := arg(args, "name")
		if err != nil {
			return err
		}
		_ = d.DeleteSaved(ctx, name)
	case "export":
		name, err := arg(args, "file")
		if err != nil {
			return err
		}
		doc, err := d.Export()
		if err != nil {
			return nil
		}
		if name == "-" {
			name = ""
		}
		return writeDocument(s.out, name, doc)
	case "png":
		name, err := arg(args, "file")
		if err != nil {
			return err
		}
		return s.e.writePNG(name, d.Circuit(), d.Overlay())
	case "states":
		return printStates(s.out, d.Circuit())
	case "help":
		_, err := io.WriteString(s.out, sessionHelp)
		return err
	default:
		return errors.Errorf("unknown command %q, try help", args[0])
	}
	return nil
}
