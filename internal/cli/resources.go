package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/neysla/bootstrap"
	"github.com/kbukum/neysla/resource"
)

// resourceView is one catalog entry for json and yaml output.
type resourceView struct {
	Name         string            `json:"name" yaml:"name"`
	URL          string            `json:"url" yaml:"url"`
	Segments     []string          `json:"segments" yaml:"segments"`
	Params       map[string]any    `json:"params,omitempty" yaml:"params,omitempty"`
	Headers      map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	RequestType  string            `json:"request_type,omitempty" yaml:"request_type,omitempty"`
	ResponseType string            `json:"response_type,omitempty" yaml:"response_type,omitempty"`
}

func newResourcesCmd(g *globalFlags) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:     "resources",
		Aliases: []string{"ls"},
		Short:   "List the resources declared in the catalog",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := parseFormat(output)
			if err != nil {
				return err
			}
			out := newPrinter(cmd.OutOrStdout(), f, false)
			return g.run(cmd, func(_ context.Context, app *bootstrap.App) error {
				views := make([]resourceView, 0, app.Catalog.Len())
				for _, name := range app.Catalog.Names() {
					r, err := app.Catalog.Resource(name)
					if err != nil {
						return err
					}
					views = append(views, describe(r.Descriptor()))
				}
				if f != formatText {
					return out.structured(views)
				}
				for _, v := range views {
					fmt.Fprintf(out.w, "%s\t%s%s\n", out.colors.Name.Sprint(v.Name), v.URL, pathTemplate(v.Segments))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", string(formatText), "output format: text, json or yaml")
	return cmd
}

func describe(d resource.Descriptor) resourceView {
	return resourceView{
		Name:         d.Name,
		URL:          d.URL,
		Segments:     d.Segments,
		Params:       d.Params,
		Headers:      d.Headers,
		RequestType:  string(d.RequestType),
		ResponseType: d.ResponseType,
	}
}

// pathTemplate renders segments with numbered delimiter slots, e.g.
// "users/{0}/posts/{1}".
func pathTemplate(segments []string) string {
	var b strings.Builder
	for i, s := range segments {
		if i > 0 {
			b.WriteByte('/')
		}
		fmt.Fprintf(&b, "%s/{%d}", s, i)
	}
	return b.String()
}
