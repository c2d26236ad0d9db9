// Package apps lists the applications a recordkeeper process can serve
package apps

import (
	"errors"
	"fmt"

	"github.com/jrife/recordkeeper/apps/adoption"
	"github.com/jrife/recordkeeper/apps/care"
	"github.com/jrife/recordkeeper/records"
	"github.com/jrife/recordkeeper/transport"
)

// ErrNoSuchApp is returned by Open for an unknown application
var ErrNoSuchApp = errors.New("no such app")

// Instance is an open application
type Instance interface {
	Transport() transport.Service
	Close() error
}

// App opens one application
type App struct {
	Name string
	// ServiceName is the name the application is served under
	ServiceName string
	Open        func(config records.Config) (Instance, error)
}

var apps = []App{
	{
		Name:        care.Name,
		ServiceName: care.ServiceName,
		Open: func(config records.Config) (Instance, error) {
			service, err := care.Open(config)

			if err != nil {
				return nil, err
			}

			return service, nil
		},
	},
	{
		Name:        adoption.Name,
		ServiceName: adoption.ServiceName,
		Open: func(config records.Config) (Instance, error) {
			service, err := adoption.Open(config)

			if err != nil {
				return nil, err
			}

			return service, nil
		},
	},
}

// Open opens the named application on a store built from config.
// The application supplies the layout.
func Open(name string, config records.Config) (Instance, error) {
	app, err := Lookup(name)

	if err != nil {
		return nil, err
	}

	return app.Open(config)
}

// Lookup returns the named application
func Lookup(name string) (App, error) {
	for _, app := range apps {
		if app.Name == name {
			return app, nil
		}
	}

	return App{}, fmt.Errorf("%w: %q, expected one of %v", ErrNoSuchApp, name, Names())
}

// Names lists the names of all applications
func Names() []string {
	names := make([]string, len(apps))

	for i, app := range apps {
		names[i] = app.Name
	}

	return names
}
