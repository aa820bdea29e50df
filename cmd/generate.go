package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	generateProject     string
	generateRefImage    string
	generateExtraImages []string
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate <prompt>",
	Short: "Generate a material image from a text prompt",
	Long: `Ask the materials service to generate an image for a project.

Generation is always bound to a concrete project; pass its id with
--project. Reference images guide the generation when given.

Examples:
  materials-cli generate --project 42f0c1aa "a watercolor mountain lake"
  materials-cli generate --project 42f0c1aa --ref /files/materials/ref.png "same style, at night"`,
	Args: cobra.MinimumNArgs(1),
	RunE: generateMaterial,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateProject, "project", "P", "", "project id to generate for (required)")
	generateCmd.Flags().StringVar(&generateRefImage, "ref", "", "reference image path or URL")
	generateCmd.Flags().StringSliceVar(&generateExtraImages, "extra", nil, "additional reference images")
	generateCmd.MarkFlagRequired("project")
}

func generateMaterial(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	prompt := strings.TrimSpace(strings.Join(args, " "))
	if prompt == "" {
		return fmt.Errorf("prompt must not be empty")
	}

	logrus.Infof("Generating material for project %s", generateProject)
	fmt.Println("Generating, this can take a while...")

	result, err := client.GenerateMaterial(context.Background(), generateProject, prompt, generateRefImage, generateExtraImages)
	if err != nil {
		return fmt.Errorf("failed to generate material: %w", err)
	}

	fmt.Printf("✓ %s\n", client.ResolveImageURL(result.ImageURL))
	return nil
}
