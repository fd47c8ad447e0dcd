package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/bytedance/sonic"
	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/tidwall/gjson"

	"github.com/kbukum/neysla/errors"
	"github.com/kbukum/neysla/resource"
)

// format is an output format accepted by --output.
type format string

const (
	formatText format = "text"
	formatJSON format = "json"
	formatYAML format = "yaml"
)

func parseFormat(s string) (format, error) {
	switch f := format(s); f {
	case formatText, formatJSON, formatYAML:
		return f, nil
	}
	return "", errors.InvalidInput("output", fmt.Sprintf("unknown format %q, want text, json or yaml", s))
}

// colorScheme holds the colors used in text output.
type colorScheme struct {
	Method      *color.Color
	URL         *color.Color
	StatusOK    *color.Color
	StatusWarn  *color.Color
	StatusError *color.Color
	HeaderKey   *color.Color
	Name        *color.Color
}

func defaultColorScheme() *colorScheme {
	return &colorScheme{
		Method:      color.New(color.FgBlue, color.Bold),
		URL:         color.New(color.FgCyan),
		StatusOK:    color.New(color.FgGreen, color.Bold),
		StatusWarn:  color.New(color.FgYellow, color.Bold),
		StatusError: color.New(color.FgRed, color.Bold),
		HeaderKey:   color.New(color.FgYellow),
		Name:        color.New(color.FgMagenta, color.Bold),
	}
}

func (s *colorScheme) status(code int) *color.Color {
	switch {
	case code >= 200 && code < 300:
		return s.StatusOK
	case code >= 300 && code < 500:
		return s.StatusWarn
	default:
		return s.StatusError
	}
}

// envelopeView is the structured form of an envelope for json and yaml output.
type envelopeView struct {
	Method     string            `json:"method" yaml:"method"`
	URL        string            `json:"url" yaml:"url"`
	Status     int               `json:"status" yaml:"status"`
	StatusText string            `json:"status_text,omitempty" yaml:"status_text,omitempty"`
	MIMEType   string            `json:"mime_type,omitempty" yaml:"mime_type,omitempty"`
	Headers    map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Data       any               `json:"data" yaml:"data"`
}

func viewOf(env *resource.Envelope) envelopeView {
	data := env.Data
	if b, ok := data.([]byte); ok {
		data = string(b)
	}
	return envelopeView{
		Method:     env.Method,
		URL:        env.URL,
		Status:     env.StatusCode,
		StatusText: env.StatusText,
		MIMEType:   env.MIMEType,
		Headers:    env.Headers,
		Data:       data,
	}
}

// printer renders command results in the selected format.
type printer struct {
	w       io.Writer
	format  format
	verbose bool
	colors  *colorScheme
}

func newPrinter(w io.Writer, f format, verbose bool) *printer {
	return &printer{w: w, format: f, verbose: verbose, colors: defaultColorScheme()}
}

func (p *printer) structured(v any) error {
	var (
		out []byte
		err error
	)
	switch p.format {
	case formatYAML:
		out, err = yaml.Marshal(v)
	default:
		out, err = sonic.ConfigStd.MarshalIndent(v, "", "  ")
		out = append(out, '\n')
	}
	if err != nil {
		return errors.Encoding(string(p.format), err)
	}
	_, err = p.w.Write(out)
	return err
}

func (p *printer) printEnvelope(env *resource.Envelope) error {
	if env == nil {
		return nil
	}
	if p.format != formatText {
		return p.structured(viewOf(env))
	}

	c := p.colors
	fmt.Fprintf(p.w, "%s %s\n", c.Method.Sprint(env.Method), c.URL.Sprint(env.URL))
	status := fmt.Sprintf("%d", env.StatusCode)
	if env.StatusText != "" {
		status += " " + env.StatusText
	}
	fmt.Fprintln(p.w, c.status(env.StatusCode).Sprint(status))

	if p.verbose {
		names := make([]string, 0, len(env.Headers))
		for k := range env.Headers {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			fmt.Fprintf(p.w, "%s: %s\n", c.HeaderKey.Sprint(k), env.Headers[k])
		}
	}

	body, err := p.body(env.Data)
	if err != nil {
		return err
	}
	if body != "" {
		fmt.Fprintln(p.w)
		fmt.Fprintln(p.w, body)
	}
	return nil
}

func (p *printer) body(data any) (string, error) {
	switch v := data.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	}
	out, err := sonic.ConfigStd.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", errors.Encoding("json", err)
	}
	return string(out), nil
}

// printQuery prints a gjson result. Text output prints strings unquoted.
func (p *printer) printQuery(path string, res gjson.Result) error {
	if !res.Exists() {
		return errors.NotFound("query path", path)
	}
	if p.format != formatText {
		return p.structured(res.Value())
	}
	if res.Type == gjson.String {
		_, err := fmt.Fprintln(p.w, res.Str)
		return err
	}
	_, err := fmt.Fprintln(p.w, res.Raw)
	return err
}
