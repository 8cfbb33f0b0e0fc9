package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/Quinlan2018/SDMX/provider"
)

// providerView is the printable form of a registry entry.
type providerView struct {
	Name                string `json:"name" yaml:"name"`
	Endpoint            string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	NeedsCredentials    bool   `json:"needsCredentials" yaml:"needsCredentials"`
	NeedsURLEncoding    bool   `json:"needsURLEncoding" yaml:"needsURLEncoding"`
	SupportsCompression bool   `json:"supportsCompression" yaml:"supportsCompression"`
	Description         string `json:"description" yaml:"description"`
	Custom              bool   `json:"custom" yaml:"custom"`
}

func viewOf(p provider.Provider) providerView {
	v := providerView{
		Name:                p.Name,
		NeedsCredentials:    p.NeedsCredentials,
		NeedsURLEncoding:    p.NeedsURLEncoding,
		SupportsCompression: p.SupportsCompression,
		Description:         p.Description,
		Custom:              p.IsCustom,
	}
	if p.Endpoint != nil {
		v.Endpoint = p.Endpoint.Redacted()
	}
	return v
}

func runProviders(env *environment, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("providers", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", "table", "Output format: table, json, yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	providers := env.registry.Providers()
	views := make([]providerView, 0, len(providers))
	for _, name := range env.registry.Names() {
		if p, ok := providers[name]; ok {
			views = append(views, viewOf(p))
		}
	}

	return writeViews(stdout, *format, views, printProviderTable)
}

func printProviderTable(w io.Writer, views []providerView) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tENDPOINT\tCREDENTIALS\tENCODING\tCOMPRESSION\tCUSTOM\tDESCRIPTION")
	for _, v := range views {
		endpoint := v.Endpoint
		if endpoint == "" {
			endpoint = "-"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%t\t%t\t%t\t%t\t%s\n",
			v.Name, endpoint, v.NeedsCredentials, v.NeedsURLEncoding, v.SupportsCompression, v.Custom, v.Description)
	}
	return tw.Flush()
}

// writeViews renders v as json, yaml or through table.
func writeViews[T any](w io.Writer, format string, v T, table func(io.Writer, T) error) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case "table", "text":
		return table(w, v)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
