// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package designer

import (
	"context"
	"strings"

	sim "github.com/db47h/logicsim"
	"github.com/db47h/logicsim/logiclib"
	"github.com/pkg/errors"
)

// ErrEmptyCircuit is returned by actions that need at least one component.
//
var ErrEmptyCircuit = errors.New("empty circuit")

// Default placement of new components: they are laid out on a row, one every
// 60 pixels.
const (
	addX    = 100
	addY    = 150
	addStep = 60
)

// AddComponent adds a new component of kind k at a default position that
// depends on the current number of components.
//
func (d *Controller) AddComponent(k sim.Kind) (*sim.Component, error) {
	if !k.Valid() {
		err := errors.Errorf("invalid component kind %d", k)
		d.fail("add", "Invalid component type", err)
		return nil, err
	}
	cp := d.c.AddComponent(k, sim.Pt(addX+float64(d.c.Len())*addStep, addY))
	d.log.Debug("component added", "id", cp.ID(), "kind", k)
	d.changed("add")
	d.draw()
	d.notifier.Notify(Success, strings.ToUpper(k.String())+" added - Drag to move, Shift+Click to connect")
	return cp, nil
}

// Clear removes every component, stops the simulation and resets the
// interaction state.
//
func (d *Controller) Clear() {
	d.c.Clear()
	d.simulating = false
	d.reset()
	d.changed("clear")
	d.draw()
	d.notifier.Notify(Success, "Canvas cleared")
}

// ToggleSimulation starts or stops simulation mode. Starting runs a full
// propagation. It returns the new mode, and does nothing on an empty circuit.
//
func (d *Controller) ToggleSimulation() bool {
	if d.c.Len() == 0 {
		d.notifier.Notify(Warning, "Add components first")
		return d.simulating
	}
	d.simulating = !d.simulating
	if d.simulating {
		d.propagate()
		d.notifier.Notify(Success, "Simulation started - Click inputs to toggle")
	} else {
		d.notifier.Notify(Info, "Simulation stopped")
	}
	d.obs.Action("simulate", nil)
	d.draw()
	return d.simulating
}

// Step runs one full propagation without changing the simulation mode.
//
func (d *Controller) Step() sim.Result {
	r := d.propagate()
	d.obs.Action("step", nil)
	d.draw()
	d.notifier.Notify(Info, "Step forward")
	return r
}

// replace swaps the circuit content for doc. On error the circuit is left
// untouched.
func (d *Controller) replace(doc *sim.Document) error {
	if err := d.c.Load(doc); err != nil {
		return err
	}
	d.reset()
	if d.simulating {
		d.propagate()
	}
	d.obs.Size(d.c.Len(), d.c.ConnectionCount())
	d.draw()
	return nil
}

// LoadExample replaces the circuit with the named built-in example.
//
func (d *Controller) LoadExample(name string) error {
	e, ok := logiclib.Lookup(name)
	if !ok {
		err := errors.Wrapf(sim.ErrUnknownExample, "%q", name)
		d.fail("example", "Example not found", err)
		return err
	}
	if err := d.replace(e.Document()); err != nil {
		d.fail("example", "Invalid circuit data", err)
		return err
	}
	d.obs.Action("example", nil)
	d.log.Info("example loaded", "example", name, "components", d.c.Len())
	d.notifier.Notify(Success, e.Title+" loaded - "+e.Description)
	return nil
}

// Export returns the document of the current circuit, stamped with creation
// metadata.
//
func (d *Controller) Export() (*sim.Document, error) {
	if d.c.Len() == 0 {
		d.notifier.Notify(Warning, "No circuit to export")
		return nil, ErrEmptyCircuit
	}
	doc := d.c.Document()
	doc.Metadata = &sim.Metadata{Created: d.now().UTC(), Version: sim.DocumentVersion}
	d.obs.Action("export", nil)
	d.notifier.Notify(Success, "Circuit exported successfully")
	return doc, nil
}

func (d *Controller) checkStore(action string) error {
	if d.store != nil {
		return nil
	}
	err := errors.Wrap(sim.ErrPersistenceUnavailable, "no document store")
	d.fail(action, "Cloud storage is not available", err)
	return err
}

// Save stores the current circuit under name. If overwrite is false and a
// document with the same name exists, Save fails with an error wrapping
// ErrExists and the stored document is kept.
//
func (d *Controller) Save(ctx context.Context, name string, overwrite bool) error {
	if err := d.checkStore("save"); err != nil {
		return err
	}
	if err := d.store.Save(ctx, name, d.c.Document(), overwrite); err != nil {
		msg := "Error saving circuit: " + errors.Cause(err).Error()
		if errors.Is(err, sim.ErrExists) {
			msg = "A circuit named \"" + name + "\" already exists"
		}
		d.fail("save", msg, err)
		return err
	}
	d.obs.Action("save", nil)
	d.log.Info("circuit saved", "name", name, "components", d.c.Len())
	d.notifier.Notify(Success, "Circuit saved as \""+name+"\"")
	return nil
}

// Load replaces the current circuit with the document stored under name. On
// failure, the circuit is left untouched.
//
func (d *Controller) Load(ctx context.Context, name string) error {
	if err := d.checkStore("load"); err != nil {
		return err
	}
	doc, err := d.store.Load(ctx, name)
	if err == nil {
		err = d.replace(doc)
	}
	if err != nil {
		msg := "Error loading circuit: " + errors.Cause(err).Error()
		if errors.Is(err, sim.ErrMalformedDocument) {
			msg = "Invalid circuit data"
		}
		d.fail("load", msg, err)
		return err
	}
	d.obs.Action("load", nil)
	d.log.Info("circuit loaded", "name", name, "components", d.c.Len())
	d.notifier.Notify(Success, "Circuit loaded successfully")
	return nil
}

// ListSaved returns the names of the stored circuits.
//
func (d *Controller) ListSaved(ctx context.Context) ([]string, error) {
	if err := d.checkStore("list"); err != nil {
		return nil, err
	}
	names, err := d.store.List(ctx)
	if err != nil {
		d.fail("list", "Error listing circuits: "+errors.Cause(err).Error(), err)
		return nil, err
	}
	return names, nil
}

// DeleteSaved removes the circuit stored under name.
//
func (d *Controller) DeleteSaved(ctx context.Context, name string) error {
	if err := d.checkStore("delete"); err != nil {
		return err
	}
	if err := d.store.Delete(ctx, name); err != nil {
		d.fail("delete", "Error deleting circuit: "+errors.Cause(err).Error(), err)
		return err
	}
	d.obs.Action("delete", nil)
	d.notifier.Notify(Success, "Circuit \""+name+"\" deleted")
	return nil
}
