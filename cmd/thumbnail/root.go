package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/JaimeStill/dataset-lab/internal/config"
	"github.com/JaimeStill/dataset-lab/internal/datasets"
	"github.com/JaimeStill/dataset-lab/internal/thumbnails"
)

func newRootCmd(open opener, out io.Writer) *cobra.Command {
	var (
		configPath string
		datasetID  string
	)

	root := &cobra.Command{
		Use:          "thumbnail",
		Short:        "Manage dataset thumbnails",
		SilenceUsage: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVarP(&configPath, "config", "c", config.BaseConfigFile, "Path to the base configuration file")
	root.PersistentFlags().StringVarP(&datasetID, "dataset", "d", "", "Dataset ID")
	root.MarkPersistentFlagRequired("dataset")

	// run loads the dataset, applies build's command, and prints the result.
	run := func(cmd *cobra.Command, build func(ds *datasets.Dataset) (thumbnails.Command, func(), error)) error {
		id, err := uuid.Parse(datasetID)
		if err != nil {
			return fmt.Errorf("invalid --dataset: %w", err)
		}

		s, err := open(configPath)
		if err != nil {
			return err
		}
		defer s.close()

		ctx := cmd.Context()
		ds, err := s.datasets.Find(ctx, id)
		if err != nil {
			return err
		}

		c, cleanup, err := build(ds)
		if err != nil {
			return err
		}
		if cleanup != nil {
			defer cleanup()
		}

		t, err := s.thumbnails.Execute(ctx, c)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), t)
	}

	var fileID string
	selectCmd := &cobra.Command{
		Use:   "select",
		Short: "Use one of the dataset's image files as its thumbnail",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ds *datasets.Dataset) (thumbnails.Command, func(), error) {
				id, err := uuid.Parse(fileID)
				if err != nil {
					return thumbnails.Command{}, nil, fmt.Errorf("invalid --file: %w", err)
				}
				return thumbnails.Command{Dataset: ds, Intent: thumbnails.IntentSelectFile, FileID: &id}, nil, nil
			})
		},
	}
	selectCmd.Flags().StringVarP(&fileID, "file", "f", "", "Data file ID")
	selectCmd.MarkFlagRequired("file")

	removeCmd := &cobra.Command{
		Use:   "remove",
		Short: "Switch the dataset to the generic thumbnail",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ds *datasets.Dataset) (thumbnails.Command, func(), error) {
				return thumbnails.Command{Dataset: ds, Intent: thumbnails.IntentRemove}, nil, nil
			})
		},
	}

	var stagingKey string
	uploadCmd := &cobra.Command{
		Use:   "upload [image]",
		Short: "Use a standalone image as the dataset's logo",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 0) == (stagingKey == "") {
				return fmt.Errorf("provide either an image path or --staging-key")
			}

			return run(cmd, func(ds *datasets.Dataset) (thumbnails.Command, func(), error) {
				c := thumbnails.Command{Dataset: ds, Intent: thumbnails.IntentUseUploadedImage, StagingKey: stagingKey}
				if stagingKey != "" {
					return c, nil, nil
				}

				f, err := os.Open(args[0])
				if err != nil {
					return c, nil, err
				}
				c.Input = f
				return c, func() { f.Close() }, nil
			})
		},
	}
	uploadCmd.Flags().StringVarP(&stagingKey, "staging-key", "k", "", "Promote a previously staged logo instead of uploading")

	root.AddCommand(selectCmd, removeCmd, uploadCmd)
	return root
}

// printJSON writes t as indented JSON; a nil thumbnail prints null.
func printJSON(w io.Writer, t *datasets.Thumbnail) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}
