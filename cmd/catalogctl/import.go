package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"cocktaildb/internal/catalog"
	applog "cocktaildb/internal/log"
	"cocktaildb/models"
)

var (
	cleanWhitespace = regexp.MustCompile(`\s+`)
	headerPattern   = regexp.MustCompile(`[^a-z0-9]+`)
)

// ingredientRecord is one data row of an ingredient sheet with its 1-based file line.
type ingredientRecord struct {
	line  int
	input catalog.IngredientInput
}

type importSummary struct {
	created int
	updated int
}

func newImportIngredientsCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import-ingredients <csv>",
		Short: "Create or update ingredients from a CSV sheet",
		Long: `Create or update ingredients from a CSV sheet. The header row names the
columns: name (required), description, unit, abv and type. Rows whose name
matches an existing ingredient update it; the rest are created. The whole
sheet is applied in one transaction.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]

			file, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open csv: %w", err)
			}
			defer file.Close()

			records, err := readIngredientCSV(file)
			if err != nil {
				return fmt.Errorf("read %s: %w", filepath.Base(path), err)
			}
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "%d ingredients in %s are valid\n", len(records), filepath.Base(path))
				return nil
			}

			database, err := openDatabaseFunc(ctx)
			if err != nil {
				return err
			}
			summary, err := importIngredients(ctx, database, records)
			if err != nil {
				return err
			}

			applog.Info(ctx, "ingredients imported", "file", filepath.Base(path), "created", summary.created, "updated", summary.updated)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d ingredients from %s (%d created, %d updated)\n",
				summary.created+summary.updated, filepath.Base(path), summary.created, summary.updated)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the sheet without writing")
	return cmd
}

func importIngredients(ctx context.Context, database *gorm.DB, records []ingredientRecord) (importSummary, error) {
	var summary importSummary
	err := database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		store := catalog.NewIngredients(tx)
		for _, record := range records {
			in := record.input
			existing, err := store.Lookup(ctx, in.Name)
			var missing *catalog.NotFoundError
			switch {
			case errors.As(err, &missing):
				if _, err := store.Create(ctx, in); err != nil {
					return fmt.Errorf("line %d (%s): %w", record.line, in.Name, err)
				}
				summary.created++
			case err != nil:
				return fmt.Errorf("line %d (%s): %w", record.line, in.Name, err)
			default:
				patch := catalog.IngredientPatch{
					Description: &in.Description,
					Unit:        &in.Unit,
					ABV:         in.ABV,
					ClearABV:    in.ABV == nil,
					Type:        &in.Type,
				}
				if _, err := store.Update(ctx, existing.ID, patch); err != nil {
					return fmt.Errorf("line %d (%s): %w", record.line, in.Name, err)
				}
				summary.updated++
			}
		}
		return nil
	})
	if err != nil {
		return importSummary{}, err
	}
	return summary, nil
}

// readIngredientCSV parses and validates every row before anything is written.
func readIngredientCSV(r io.Reader) ([]ingredientRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("csv is empty")
	}
	if err != nil {
		return nil, err
	}

	columns := make(map[string]int, len(header))
	for idx, key := range header {
		columns[normalizeHeader(key)] = idx
	}
	if _, ok := columns["name"]; !ok {
		return nil, errors.New("csv header must include a name column")
	}

	var records []ingredientRecord
	seen := make(map[string]int)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)

		value := func(keys ...string) string {
			for _, key := range keys {
				if idx, ok := columns[key]; ok && idx < len(row) {
					return cleanWhitespace.ReplaceAllString(strings.TrimSpace(row[idx]), " ")
				}
			}
			return ""
		}

		name := value("name")
		if name == "" && strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}

		in, err := buildIngredientInput(name, value("description"), value("unit", "unit_measurement"), value("abv"), value("type"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if first, ok := seen[strings.ToLower(in.Name)]; ok {
			return nil, fmt.Errorf("line %d: %q repeats line %d", line, in.Name, first)
		}
		seen[strings.ToLower(in.Name)] = line
		records = append(records, ingredientRecord{line: line, input: in})
	}

	return records, nil
}

func buildIngredientInput(name, description, unit, abv, kind string) (catalog.IngredientInput, error) {
	in := catalog.IngredientInput{Name: name, Description: description}

	if unit != "" {
		parsed, ok := models.ParseUnitMeasurement(unit)
		if !ok {
			return in, fmt.Errorf("unknown unit %q", unit)
		}
		in.Unit = parsed
	}

	category, ok := models.ParseABVCategory(abv)
	if !ok {
		return in, fmt.Errorf("unknown abv category %q", abv)
	}
	in.ABV = category

	parsedType, ok := models.ParseIngredientType(kind)
	if !ok {
		return in, fmt.Errorf("unknown ingredient type %q", kind)
	}
	in.Type = parsedType

	if err := in.Validate(); err != nil {
		return in, err
	}
	return in, nil
}

func normalizeHeader(key string) string {
	return strings.Trim(headerPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(key)), "_"), "_")
}
