package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	projectsLimit  int
	projectsOffset int
	projectsFormat string
)

// projectsCmd represents the projects command
var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects from the materials service",
	Long: `List the projects known to the materials service, newest first.

Examples:
  materials-cli projects
  materials-cli projects --limit 10 --offset 10
  materials-cli projects --format json`,
	RunE: listProjects,
}

func init() {
	rootCmd.AddCommand(projectsCmd)

	projectsCmd.Flags().IntVarP(&projectsLimit, "limit", "l", 20, "maximum number of projects to list")
	projectsCmd.Flags().IntVar(&projectsOffset, "offset", 0, "number of projects to skip")
	projectsCmd.Flags().StringVarP(&projectsFormat, "format", "f", "table", "output format (table, json, yaml)")
}

func listProjects(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	projects, err := client.ListProjects(context.Background(), projectsLimit, projectsOffset)
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	if len(projects) == 0 {
		fmt.Println("No projects found")
		return nil
	}

	switch projectsFormat {
	case "table":
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tLABEL\tCREATED")
		for _, project := range projects {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", project.ID, project.DisplayLabel(), project.CreatedAt)
		}
		return tw.Flush()

	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(projects)

	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer enc.Close()
		return enc.Encode(projects)

	default:
		return fmt.Errorf("unknown output format %q (expected table, json, or yaml)", projectsFormat)
	}
}
