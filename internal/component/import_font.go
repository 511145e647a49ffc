package component

import (
	"context"
	"fmt"
	"iter"
	"net/url"
	"os"

	"github.com/vk/tickgrid/internal/setup"
)

// ImportFont loads a font into the font registry during setup. http and
// https URLs are fetched, file URLs are read from disk.
type ImportFont struct {
	base
	URL string
}

func (f *ImportFont) Setup() []setup.Job {
	raw := f.URL
	return []setup.Job{{
		Label: "import_font " + raw,
		Run: func(ctx context.Context, c *setup.Context) iter.Seq[setup.Stage] {
			return func(yield func(setup.Stage) bool) {
				if !yield(setup.Progress("Try loading "+raw, 0)) {
					return
				}
				u, err := url.Parse(raw)
				if err != nil {
					yield(setup.Failed("Invalid font url "+raw, &setup.Error{Kind: setup.UnsupportedScheme, Label: "Invalid font url " + raw, Err: err}))
					return
				}

				var body []byte
				switch u.Scheme {
				case "http", "https":
					if !yield(setup.Progress("Fetching "+raw, 0.5)) {
						return
					}
					label := "Failed to request " + raw
					if c.Fetcher == nil {
						yield(setup.Failed(label, setup.Errorf(setup.Network, label, "no fetcher configured")))
						return
					}
					body, err = c.Fetcher.Fetch(ctx, raw)
					if err != nil {
						yield(setup.Failed(label, &setup.Error{Kind: setup.Network, Label: label, Err: err}))
						return
					}
				case "file":
					path := u.Path
					if path == "" {
						path = u.Opaque
					}
					body, err = os.ReadFile(path)
					if err != nil {
						label := "Failed to read " + raw
						yield(setup.Failed(label, &setup.Error{Kind: setup.IO, Label: label, Err: err}))
						return
					}
				default:
					label := fmt.Sprintf("Unsupported url scheme: %s", u.Scheme)
					yield(setup.Failed(label, setup.Errorf(setup.UnsupportedScheme, label, "cannot import %s", raw)))
					return
				}

				label := "Loaded " + raw
				yield(setup.Completed(label, func(c *setup.Context) error {
					if _, err := c.LoadFont(body); err != nil {
						return &setup.Error{Kind: setup.FontParse, Label: label, Err: err}
					}
					return nil
				}))
			}
		},
	}}
}
