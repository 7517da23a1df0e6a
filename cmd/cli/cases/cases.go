// Package cases holds the CLI commands for authoring case assets:
// validating them offline and loading them into the game database.
package cases

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mkarvon/sleuthline/internal/catalog"
	"github.com/mkarvon/sleuthline/internal/db"
	"github.com/mkarvon/sleuthline/internal/errors"
	"github.com/mkarvon/sleuthline/internal/logging"
	"github.com/mkarvon/sleuthline/internal/repositories"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "cases",
	Title: "Case asset commands",
}

var sqliteURL string

func init() {
	Load.Flags().StringVar(&sqliteURL, "sqlite-url", envOr("SLEUTHLINE_SQLITE_URL", "./sleuthline.sqlite"),
		"SQLite URL of the game database")
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

var Validate = &cobra.Command{
	Use:     "validate <case.json>",
	Short:   "Validate a case asset without touching the database",
	GroupID: "cases",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asset, err := parse(args[0])
		if err != nil {
			return err
		}
		cmd.Println(asset.Describe())
		return nil
	},
}

var Load = &cobra.Command{
	Use:     "load <case.json>",
	Short:   "Validate a case asset and load it into the game database",
	GroupID: "cases",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asset, err := parse(args[0])
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{ //nolint:exhaustruct
			Level: slog.LevelInfo,
		})))
		dbs, err := db.NewDB(ctx, sqliteURL)
		if err != nil {
			return errors.Wrap(err, "open database", slog.String("sqlite_url", sqliteURL))
		}
		defer func() {
			if err := dbs.Close(); err != nil {
				logger.LogAttrs(ctx, slog.LevelError, "close database", errors.SlogError(err))
			}
		}()

		c, suspects, evidence, paths := asset.Models()
		repo := repositories.NewCaseRepository(dbs, logger)
		if err := repo.Import(ctx, c, suspects, evidence, paths); err != nil {
			return errors.Wrap(err, "import case", slog.String("case_id", c.ID))
		}
		cmd.Println(fmt.Sprintf("loaded %s", asset.Describe()))
		return nil
	},
}

func parse(path string) (*catalog.Asset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read case asset", slog.String("path", path))
	}
	asset, err := catalog.ParseAsset(data)
	if err != nil {
		return nil, errors.Wrap(err, "parse case asset", slog.String("path", path))
	}
	return asset, nil
}
