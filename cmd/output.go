package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/lumenpage/materials-cli/internal/api"
)

// materialOutput is the stable shape emitted by json/yaml output.
type materialOutput struct {
	ID        string `json:"id" yaml:"id"`
	ProjectID string `json:"project_id,omitempty" yaml:"project_id,omitempty"`
	Filename  string `json:"filename" yaml:"filename"`
	URL       string `json:"url" yaml:"url"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
}

// printMaterials writes materials in the requested format. URLs are
// resolved against the service base URL so the output is usable as-is.
func printMaterials(w io.Writer, materials []api.Material, client *api.Client, format string) error {
	switch format {
	case "urls":
		for _, material := range materials {
			fmt.Fprintln(w, client.ResolveImageURL(material.URL))
		}
		return nil

	case "table":
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tPROJECT\tCREATED\tURL")
		for _, material := range materials {
			project := material.ProjectID
			if project == "" {
				project = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
				material.ID,
				material.Filename,
				project,
				material.CreatedAt,
				client.ResolveImageURL(material.URL),
			)
		}
		return tw.Flush()

	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(outputRows(materials, client))

	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(outputRows(materials, client))

	default:
		return fmt.Errorf("unknown output format %q (expected urls, table, json, or yaml)", format)
	}
}

func outputRows(materials []api.Material, client *api.Client) []materialOutput {
	rows := make([]materialOutput, len(materials))
	for i, material := range materials {
		rows[i] = materialOutput{
			ID:        material.ID,
			ProjectID: material.ProjectID,
			Filename:  material.Filename,
			URL:       client.ResolveImageURL(material.URL),
			CreatedAt: material.CreatedAt,
		}
	}
	return rows
}
