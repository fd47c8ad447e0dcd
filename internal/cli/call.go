package cli

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/kbukum/neysla/bootstrap"
	"github.com/kbukum/neysla/errors"
	"github.com/kbukum/neysla/resource"
)

// verbs maps command-line verb names to HTTP methods.
var verbs = map[string]string{
	"get":    http.MethodGet,
	"head":   http.MethodHead,
	"post":   http.MethodPost,
	"patch":  http.MethodPatch,
	"put":    http.MethodPut,
	"remove": http.MethodDelete,
	"delete": http.MethodDelete,
}

type callFlags struct {
	delimiters   []string
	params       []string
	headers      []string
	body         []string
	overrides    string
	requestType  string
	responseType string
	query        string
	output       string
	schema       string
	verbose      bool
}

func newCallCmd(g *globalFlags) *cobra.Command {
	f := &callFlags{}
	cmd := &cobra.Command{
		Use:   "call RESOURCE VERB",
		Short: "Issue a request against a catalog resource",
		Example: `  neysla call posts get -d 7 -d 3
  neysla call posts post -d 7 --body title=hello --request-type json
  neysla call posts get -d 7 --query 0.title`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			method, ok := verbs[strings.ToLower(args[1])]
			if !ok {
				return errors.InvalidInput("verb", fmt.Sprintf("unknown verb %q", args[1]))
			}
			opts, err := f.options()
			if err != nil {
				return err
			}
			format, err := parseFormat(f.output)
			if err != nil {
				return err
			}
			out := newPrinter(cmd.OutOrStdout(), format, f.verbose)

			return g.run(cmd, func(ctx context.Context, app *bootstrap.App) error {
				r, err := app.Catalog.Resource(args[0])
				if err != nil {
					return err
				}
				env, err := r.Do(ctx, method, opts...)
				if rej, ok := resource.AsRejection(err); ok {
					env = rej.Envelope
				} else if err != nil {
					return err
				}
				if env == nil {
					return err
				}
				if err == nil && f.schema != "" {
					err = checkSchema(f.schema, env)
				}
				if f.query != "" {
					if perr := out.printQuery(f.query, env.Query(f.query)); perr != nil {
						return perr
					}
				} else if perr := out.printEnvelope(env); perr != nil {
					return perr
				}
				return err
			})
		},
	}

	fl := cmd.Flags()
	fl.StringArrayVarP(&f.delimiters, "delimiter", "d", nil, "positional path value, repeat in segment order")
	fl.StringArrayVarP(&f.params, "param", "p", nil, "query parameter key=value (repeatable)")
	fl.StringArrayVarP(&f.headers, "header", "H", nil, `request header "Name: value" or Name=value (repeatable)`)
	fl.StringArrayVarP(&f.body, "body", "b", nil, "body field key=value, JSON values are decoded (repeatable)")
	fl.StringVar(&f.overrides, "overrides", "", "JSON overrides object (delimiters, params, headers, body, requestType, responseType)")
	fl.StringVar(&f.requestType, "request-type", "", "body encoding: json, multipart or default")
	fl.StringVar(&f.responseType, "response-type", "", "response interpretation, json decodes the payload")
	fl.StringVarP(&f.query, "query", "q", "", "print only the gjson path from the response payload")
	fl.StringVarP(&f.output, "output", "o", string(formatText), "output format: text, json or yaml")
	fl.StringVar(&f.schema, "schema", "", "JSON schema file the response payload must satisfy")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "print response headers in text output")
	return cmd
}

// options turns the flags into call options. Flags are applied after
// --overrides so they win on conflicting keys.
func (f *callFlags) options() ([]resource.Option, error) {
	var opts []resource.Option

	if f.overrides != "" {
		var raw map[string]any
		if err := sonic.ConfigStd.UnmarshalFromString(f.overrides, &raw); err != nil {
			return nil, errors.InvalidInput("overrides", "must be a JSON object").WithCause(err)
		}
		ov, err := resource.ParseOverrides(raw)
		if err != nil {
			return nil, err
		}
		opts = append(opts, resource.WithOverrides(ov))
	}

	if len(f.delimiters) > 0 {
		d := make([]any, len(f.delimiters))
		for i, s := range f.delimiters {
			d[i] = s
		}
		opts = append(opts, resource.WithDelimiters(d...))
	}

	params, err := parsePairs("param", f.params, "=")
	if err != nil {
		return nil, err
	}
	if params != nil {
		opts = append(opts, resource.WithParams(params))
	}

	body, err := parsePairs("body", f.body, "=")
	if err != nil {
		return nil, err
	}
	if body != nil {
		opts = append(opts, resource.WithBody(body))
	}

	if len(f.headers) > 0 {
		h := make(map[string]string, len(f.headers))
		for _, raw := range f.headers {
			name, value, ok := splitHeader(raw)
			if !ok {
				return nil, errors.InvalidInput("header", fmt.Sprintf("%q is not Name: value or Name=value", raw))
			}
			h[name] = value
		}
		opts = append(opts, resource.WithHeaders(h))
	}

	if f.requestType != "" {
		opts = append(opts, resource.WithRequestType(resource.RequestType(f.requestType)))
	}
	if f.responseType != "" {
		opts = append(opts, resource.WithResponseType(f.responseType))
	}
	return opts, nil
}

// parsePairs splits key=value items. Values that are valid JSON scalars,
// arrays or objects are decoded; anything else stays a string.
func parsePairs(field string, items []string, sep string) (map[string]any, error) {
	if len(items) == 0 {
		return nil, nil
	}
	out := make(map[string]any, len(items))
	for _, item := range items {
		k, v, ok := strings.Cut(item, sep)
		if !ok || k == "" {
			return nil, errors.InvalidInput(field, fmt.Sprintf("%q is not key%svalue", item, sep))
		}
		out[k] = decodeValue(v)
	}
	return out, nil
}

func decodeValue(v string) any {
	if !gjson.Valid(v) {
		return v
	}
	var decoded any
	if err := sonic.ConfigStd.UnmarshalFromString(v, &decoded); err != nil {
		return v
	}
	return decoded
}

func splitHeader(raw string) (string, string, bool) {
	name, value, ok := strings.Cut(raw, ":")
	if !ok {
		name, value, ok = strings.Cut(raw, "=")
	}
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", false
	}
	return name, strings.TrimSpace(value), true
}
