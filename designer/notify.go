// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package designer

import (
	sim "github.com/db47h/logicsim"
	"github.com/pkg/errors"
)

// Level is the severity of a notification.
//
type Level uint8

// Notification levels.
//
const (
	Info Level = iota
	Success
	Warning
	Error
)

var levelNames = [...]string{"info", "success", "warning", "error"}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// A Notifier displays short messages to the user.
//
type Notifier interface {
	Notify(l Level, msg string)
}

// NotifierFunc adapts a function to the Notifier interface.
//
type NotifierFunc func(l Level, msg string)

// Notify implements Notifier.
func (f NotifierFunc) Notify(l Level, msg string) { f(l, msg) }

type nopNotifier struct{}

func (nopNotifier) Notify(Level, string) {}

// fail reports a failed action to the user and the logs.
func (d *Controller) fail(action, msg string, err error) {
	l := Error
	if errors.Is(err, sim.ErrPersistenceUnavailable) {
		l = Warning
	}
	d.obs.Action(action, err)
	d.log.Warn(msg, "action", action, "error", err)
	d.notifier.Notify(l, msg)
}
