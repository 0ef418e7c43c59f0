package main

import (
	"context"
	"fmt"
	"svgvolume/internal/config"
	"svgvolume/internal/svg"
	"svgvolume/internal/volume"
	"svgvolume/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// calcCommand constructs the 'calc' subcommand that runs the volume pipeline
// once against a local SVG file, without the API server or the database.
func calcCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculates the poured volume of a local SVG file",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			file, _ := cmd.Flags().GetString("file")
			depthText, _ := cmd.Flags().GetString("depth")

			depth, err := volume.ParseDepth(depthText)
			if err != nil {
				logger.Fatal(ctx, "invalid depth", zap.Error(err))
			}

			extractor := svg.NewExtractor(svg.NewOptions(cfg))
			shapes, err := extractor.ExtractFile(file)
			if err != nil {
				logger.Fatal(ctx, "could not extract shapes", zap.Error(err))
			}

			volume.ResolveNesting(shapes)
			netArea := volume.NetArea(shapes)

			vol, err := volume.Compute(netArea, depth)
			if err != nil {
				logger.Fatal(ctx, "could not compute volume", zap.Error(err))
			}

			fmt.Printf("Calculated volume: %.2f ml\n", vol) //nolint: forbidigo
		},
	}

	cmd.Flags().StringP("file", "f", "", "Path to the SVG file")
	cmd.Flags().StringP("depth", "d", "", "Pour depth in drawing units")
	_ = cmd.MarkFlagRequired("file")
	_ = cmd.MarkFlagRequired("depth")

	return cmd
}
