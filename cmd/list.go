package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lumenpage/materials-cli/internal/api"
)

var (
	listProject string
	listScope   string
	listFormat  string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List materials from the materials service",
	Long: `List materials with optional scope filtering.

The scope accepts "all" (every material), "none" (materials without a
project), or a concrete project id.

Examples:
  materials-cli list                         # All materials
  materials-cli list --scope none            # Unassigned materials
  materials-cli list --scope 42f0c1aa        # One project's materials
  materials-cli list --format json`,
	RunE: listMaterials,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listProject, "project", "P", "", "project id context (uses the project-scoped endpoint)")
	listCmd.Flags().StringVarP(&listScope, "scope", "s", "all", "scope filter: all, none, or a project id")
	listCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "output format (table, urls, json, yaml)")
}

func listMaterials(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	scope := api.ParseScope(listScope)
	logrus.Debugf("Listing materials: scope=%s project=%s", scope.Token(), listProject)

	materials, err := client.ListMaterials(context.Background(), scope, listProject)
	if err != nil {
		return fmt.Errorf("failed to list materials: %w", err)
	}

	if len(materials) == 0 {
		fmt.Println("No materials found")
		return nil
	}

	return printMaterials(os.Stdout, materials, client, listFormat)
}
