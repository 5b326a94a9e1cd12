package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"cocktaildb/internal/catalog"
)

const (
	maxSubmissionBytes = 4 << 20
	maxIconBytes       = 1 << 20
)

// parseSubmission accepts both multipart and urlencoded bodies.
func parseSubmission(r *http.Request) error {
	err := r.ParseMultipartForm(maxSubmissionBytes)
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

// formList flattens repeated fields and comma separated values into one list.
// Blank entries are dropped; use pairedList where positions matter.
func formList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// pairedList flattens a list whose entries are matched by position with
// another list. A field that is blank as a whole is an empty list; a blank
// entry inside a non-empty list is rejected.
func pairedList(field string, values []string) ([]string, error) {
	if strings.TrimSpace(strings.Join(values, "")) == "" {
		return nil, nil
	}
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				return nil, &catalog.ValidationError{Field: field, Reason: fmt.Sprintf("entry %d is blank", len(out)+1)}
			}
			out = append(out, part)
		}
	}
	return out, nil
}

func parseIDList(field string, values []string) ([]uint, error) {
	return parseIDs(field, formList(values))
}

func parseIDs(field string, parts []string) ([]uint, error) {
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, &catalog.ValidationError{Field: field, Reason: fmt.Sprintf("%q is not a valid ingredient id", part)}
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

func parseQuantities(field string, parts []string) ([]int, error) {
	quantities := make([]int, 0, len(parts))
	for _, part := range parts {
		quantity, err := strconv.Atoi(part)
		if err != nil {
			return nil, &catalog.ValidationError{Field: field, Reason: fmt.Sprintf("%q is not a whole number", part)}
		}
		quantities = append(quantities, quantity)
	}
	return quantities, nil
}

// parseComponents reads the parallel ingredients and quantities lists of a cocktail form.
func parseComponents(r *http.Request) ([]uint, []int, error) {
	idParts, err := pairedList("ingredients", r.Form["ingredients"])
	if err != nil {
		return nil, nil, err
	}
	ids, err := parseIDs("ingredients", idParts)
	if err != nil {
		return nil, nil, err
	}
	quantityParts, err := pairedList("quantities", r.Form["quantities"])
	if err != nil {
		return ids, nil, err
	}
	quantities, err := parseQuantities("quantities", quantityParts)
	if err != nil {
		return ids, nil, err
	}
	return ids, quantities, nil
}

// readIcon returns the uploaded icon or nil when no file was sent.
func readIcon(r *http.Request, field string) ([]byte, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	file, _, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxIconBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxIconBytes {
		return nil, &catalog.ValidationError{Field: field, Reason: fmt.Sprintf("must be at most %d bytes", maxIconBytes)}
	}
	if len(data) == 0 {
		return nil, nil
	}
	return data, nil
}

// resourcePath splits "/prefix/{id}[/action]" into its id and action.
func resourcePath(path, prefix string) (uint, string, bool) {
	trimmed := strings.Trim(strings.TrimPrefix(path, prefix), "/")
	if trimmed == "" {
		return 0, "", false
	}
	parts := strings.Split(trimmed, "/")
	if len(parts) > 2 {
		return 0, "", false
	}
	id, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil || id == 0 {
		return 0, "", false
	}
	action := ""
	if len(parts) == 2 {
		action = parts[1]
	}
	return uint(id), action, true
}
