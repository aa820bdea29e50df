package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/lumenpage/materials-cli/internal/api"
	"github.com/lumenpage/materials-cli/internal/utils"
)

var (
	uploadProject string
	uploadScope   string
)

// uploadCmd represents the upload command
var uploadCmd = &cobra.Command{
	Use:   "upload <file>...",
	Short: "Upload material images to the materials service",
	Long: `Upload one or more local image files as materials.

The target project association follows the scope: "all" associates with
the --project id when given, "none" uploads without association, and a
concrete project id associates with that project.

Examples:
  materials-cli upload cover.png
  materials-cli upload --project 42f0c1aa cover.png logo.svg
  materials-cli upload --scope none sketch.jpg`,
	Args: cobra.MinimumNArgs(1),
	RunE: uploadMaterials,
}

func init() {
	rootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().StringVarP(&uploadProject, "project", "P", "", "project id to associate uploads with")
	uploadCmd.Flags().StringVarP(&uploadScope, "scope", "s", "all", "scope governing the association: all, none, or a project id")
}

func uploadMaterials(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	// Validate every path before touching the network so a bad file in
	// the middle of the batch fails fast.
	for _, path := range args {
		if !utils.IsAllowedMaterialType(path) {
			return fmt.Errorf("unsupported file type %q (allowed: %s)",
				path, strings.Join(utils.AllowedMaterialExtensions(), ", "))
		}
	}

	scope := api.ParseScope(uploadScope)
	target := scope.UploadTarget(uploadProject)

	for _, path := range args {
		logrus.Infof("Uploading %s (target project: %q)", path, target)

		material, err := client.UploadMaterial(context.Background(), path, target, uploadProject)
		if err != nil {
			return fmt.Errorf("failed to upload %s: %w", path, err)
		}

		fmt.Printf("✓ %s → %s\n", path, client.ResolveImageURL(material.URL))
	}

	return nil
}
