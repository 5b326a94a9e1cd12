package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"cocktaildb/internal/catalog"
	"cocktaildb/internal/db"
	applog "cocktaildb/internal/log"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the catalog tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			database, err := openDatabaseFunc(ctx)
			if err != nil {
				return err
			}
			if err := db.AutoMigrate(database.WithContext(ctx)); err != nil {
				return fmt.Errorf("auto migrate: %w", err)
			}
			applog.Info(ctx, "catalog schema migrated")
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the default bar ingredients that are missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			database, err := openDatabaseFunc(ctx)
			if err != nil {
				return err
			}
			created, err := db.SeedIngredients(ctx, database)
			if err != nil {
				return fmt.Errorf("seed ingredients: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %d ingredients\n", created)
			return nil
		},
	}
}

func newEditorCmd() *cobra.Command {
	editor := &cobra.Command{
		Use:   "editor",
		Short: "Manage editor accounts",
	}

	var email, name, password string
	add := &cobra.Command{
		Use:   "add",
		Short: "Register an editor that can sign in and change the catalog",
		Long: `Register an editor account. The password is read from --password or,
when the flag is omitted, from CATALOG_EDITOR_PASSWORD.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if password == "" {
				password = os.Getenv("CATALOG_EDITOR_PASSWORD")
			}
			database, err := openDatabaseFunc(ctx)
			if err != nil {
				return err
			}
			user, err := db.CreateEditor(ctx, database, email, name, password)
			if err != nil {
				if errors.Is(err, db.ErrEditorExists) {
					return fmt.Errorf("editor %s already exists", strings.ToLower(strings.TrimSpace(email)))
				}
				return err
			}
			applog.Info(ctx, "editor registered", "userID", user.ID, "email", user.Email)
			fmt.Fprintf(cmd.OutOrStdout(), "editor %s registered with id %d\n", user.Email, user.ID)
			return nil
		},
	}
	add.Flags().StringVar(&email, "email", "", "Editor email address")
	add.Flags().StringVar(&name, "name", "", "Display name")
	add.Flags().StringVar(&password, "password", "", "Password (at least 8 characters)")
	_ = add.MarkFlagRequired("email")

	editor.AddCommand(add)
	return editor
}

func newFilterCmd() *cobra.Command {
	var required []string
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "List the cocktails that contain every given ingredient",
		Long: `List the cocktails that contain every given ingredient. Ingredients are
named by id or by exact name; without --ingredient every cocktail is listed.

Examples:
  catalogctl filter --ingredient "White rum" --ingredient "Lime juice"
  catalogctl filter --ingredient 3 --ingredient 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			database, err := openDatabaseFunc(ctx)
			if err != nil {
				return err
			}

			ingredients := catalog.NewIngredients(database)
			ids := make([]uint, 0, len(required))
			for _, value := range required {
				if id, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64); err == nil {
					ids = append(ids, uint(id))
					continue
				}
				ingredient, err := ingredients.Lookup(ctx, value)
				if err != nil {
					return err
				}
				ids = append(ids, ingredient.ID)
			}

			cocktails, err := catalog.NewCocktails(database).FilterByIngredients(ctx, ids)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME")
			for _, cocktail := range cocktails {
				fmt.Fprintf(tw, "%d\t%s\n", cocktail.ID, cocktail.Name)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringArrayVar(&required, "ingredient", nil, "Required ingredient id or name (repeatable)")
	return cmd
}

func newBatchCmd() *cobra.Command {
	var servings int
	cmd := &cobra.Command{
		Use:   "batch <cocktail-id>",
		Short: "Print the scaled ingredient list for a number of servings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid cocktail id %q", args[0])
			}
			database, err := openDatabaseFunc(ctx)
			if err != nil {
				return err
			}

			cocktail, err := catalog.NewCocktails(database).Get(ctx, uint(id))
			if err != nil {
				return err
			}
			sheet, err := catalog.Batch(*cocktail, servings)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s x %d\n", sheet.Cocktail, sheet.Servings)
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tINGREDIENT\tPER SERVING\tTOTAL")
			for _, line := range sheet.Lines {
				fmt.Fprintf(tw, "%d\t%s\t%d %s\t%d %s\n", line.Order, line.Name, line.PerServing, line.Unit, line.Total, line.Unit)
			}
			for _, total := range sheet.Totals {
				fmt.Fprintf(tw, "\ttotal %s\t\t%d %s\n", total.Unit.Label(), total.Total, total.Unit)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&servings, "servings", catalog.MinServings, "Number of servings")
	return cmd
}
