package main

import (
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Quinlan2018/SDMX/rest"
)

// clientView describes a resolved client.
type clientView struct {
	Provider            string `json:"provider" yaml:"provider"`
	Endpoint            string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	NeedsCredentials    bool   `json:"needsCredentials" yaml:"needsCredentials"`
	NeedsURLEncoding    bool   `json:"needsURLEncoding" yaml:"needsURLEncoding"`
	SupportsCompression bool   `json:"supportsCompression" yaml:"supportsCompression"`
	Dialect             string `json:"dialect,omitempty" yaml:"dialect,omitempty"`
	Dataflows           string `json:"dataflows,omitempty" yaml:"dataflows,omitempty"`
}

func runResolve(env *environment, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", "text", "Output format: text, json, yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("resolve expects exactly one provider name")
	}

	cl, err := env.factory.CreateClient(fs.Arg(0))
	if err != nil {
		return err
	}

	view := clientView{
		Provider:         cl.Name(),
		NeedsCredentials: cl.NeedsCredentials(),
	}
	if ep := cl.Endpoint(); ep != nil {
		view.Endpoint = ep.Redacted()
	}
	if rc, ok := cl.(*rest.Client); ok {
		view.NeedsURLEncoding = rc.NeedsURLEncoding()
		view.SupportsCompression = rc.SupportsCompression()
		view.Dialect = rc.Dialect().String()
		if u, err := rc.DataflowsURL(); err == nil {
			view.Dataflows = u.Redacted()
		}
	}

	return writeViews(stdout, *format, view, printClient)
}

func printClient(w io.Writer, v clientView) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "provider:\t%s\n", v.Provider)
	_, _ = fmt.Fprintf(tw, "endpoint:\t%s\n", v.Endpoint)
	_, _ = fmt.Fprintf(tw, "needsCredentials:\t%t\n", v.NeedsCredentials)
	_, _ = fmt.Fprintf(tw, "needsURLEncoding:\t%t\n", v.NeedsURLEncoding)
	_, _ = fmt.Fprintf(tw, "supportsCompression:\t%t\n", v.SupportsCompression)
	if v.Dialect != "" {
		_, _ = fmt.Fprintf(tw, "dialect:\t%s\n", v.Dialect)
		_, _ = fmt.Fprintf(tw, "dataflows:\t%s\n", v.Dataflows)
	}
	return tw.Flush()
}
