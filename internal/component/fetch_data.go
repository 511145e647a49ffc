package component

import (
	"context"
	"fmt"

	"github.com/vk/tickgrid/internal/setup"
)

// FetchData declares a binding from a data source query to a variable.
type FetchData struct {
	base
	setup.Declaration
}

// Setup checks that the source exists while jobs run and binds the query
// when results are merged.
func (f *FetchData) Setup() []setup.Job {
	decl := f.Declaration
	return []setup.Job{setup.Once("fetch_data "+decl.Name, func(_ context.Context, c *setup.Context) (setup.Finalizer, error) {
		if c.Sources == nil {
			return nil, setup.Errorf(setup.UnknownSource, fmt.Sprintf("Unknown data source %q", decl.Source), "no data sources are registered")
		}
		if _, err := c.Sources.Source(decl.Source); err != nil {
			return nil, &setup.Error{Kind: setup.UnknownSource, Label: fmt.Sprintf("Unknown data source %q", decl.Source), Err: err}
		}
		return func(c *setup.Context) error {
			if err := c.Bind(decl); err != nil {
				return &setup.Error{Kind: setup.JobFailed, Label: "Adding data query " + decl.Name, Err: err}
			}
			return nil
		}, nil
	})}
}
