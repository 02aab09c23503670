// Package spreadsheet reads item stock sheets and writes order reports.
package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sangkips/boutique-api/pkg/money"
	"github.com/xuri/excelize/v2"
)

var headerAliases = map[string]string{
	"item id":               "item_id",
	"itemid":                "item_id",
	"item":                  "item_id",
	"tag":                   "item_id",
	"code":                  "item_id",
	"title":                 "title",
	"name":                  "title",
	"description":           "title",
	"color":                 "color",
	"colour":                "color",
	"size":                  "size",
	"cost price":            "cost_price",
	"cost":                  "cost_price",
	"costprice":             "cost_price",
	"marked price":          "marked_price",
	"mrp":                   "marked_price",
	"markedprice":           "marked_price",
	"default selling price": "default_selling_price",
	"selling price":         "default_selling_price",
	"sale price":            "default_selling_price",
}

var errNoRows = errors.New("sheet has no item rows")

// ItemRow is one parsed sheet row. Row is the 1-based sheet row number.
type ItemRow struct {
	Row                 int
	ItemID              string
	Title               string
	Color               string
	Size                string
	CostPrice           money.Amount
	MarkedPrice         money.Amount
	DefaultSellingPrice *money.Amount
}

// RowError describes why one row was rejected.
type RowError struct {
	Row     int
	Column  string
	Message string
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d %s: %s", e.Row, e.Column, e.Message)
}

// ParseItemRows reads the first sheet of an xlsx workbook. File-level
// problems return an error; bad cells are collected per row so a caller can
// report them all at once.
func ParseItemRows(reader io.Reader) ([]ItemRow, []RowError, error) {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, nil, fmt.Errorf("open excel file: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, fmt.Errorf("excel file has no sheets")
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, errNoRows
	}

	colMap := mapColumns(rows[0])
	for _, required := range []string{"item_id", "title", "cost_price"} {
		if _, ok := colMap[required]; !ok {
			return nil, nil, fmt.Errorf("missing required column: %s", required)
		}
	}

	var result []ItemRow
	var rowErrors []RowError
	for index := 1; index < len(rows); index++ {
		cells := rows[index]
		rowNo := index + 1
		itemID := strings.TrimSpace(readCell(cells, colMap["item_id"]))
		title := strings.TrimSpace(readCell(cells, colMap["title"]))
		if itemID == "" && title == "" {
			continue
		}

		fail := func(column, message string) {
			rowErrors = append(rowErrors, RowError{Row: rowNo, Column: column, Message: message})
		}

		if itemID == "" {
			fail("item_id", "is required")
		}
		if title == "" {
			fail("title", "is required")
		}

		row := ItemRow{
			Row:    rowNo,
			ItemID: itemID,
			Title:  title,
			Color:  strings.TrimSpace(readOptional(cells, colMap, "color")),
			Size:   strings.TrimSpace(readOptional(cells, colMap, "size")),
		}

		cost, err := parseAmount(readCell(cells, colMap["cost_price"]))
		if err != nil {
			fail("cost_price", err.Error())
		}
		row.CostPrice = cost

		if raw := readOptional(cells, colMap, "marked_price"); strings.TrimSpace(raw) != "" {
			marked, err := parseAmount(raw)
			if err != nil {
				fail("marked_price", err.Error())
			}
			row.MarkedPrice = marked
		}

		if raw := readOptional(cells, colMap, "default_selling_price"); strings.TrimSpace(raw) != "" {
			selling, err := parseAmount(raw)
			if err != nil {
				fail("default_selling_price", err.Error())
			} else {
				row.DefaultSellingPrice = &selling
			}
		}

		result = append(result, row)
	}

	if len(result) == 0 && len(rowErrors) == 0 {
		return nil, nil, errNoRows
	}
	return result, rowErrors, nil
}

func mapColumns(header []string) map[string]int {
	mapped := make(map[string]int)
	for idx, col := range header {
		normalized := normalizeHeader(col)
		if normalized == "" {
			continue
		}
		canonical, ok := headerAliases[normalized]
		if !ok {
			continue
		}
		if _, exists := mapped[canonical]; !exists {
			mapped[canonical] = idx
		}
	}
	return mapped
}

func normalizeHeader(raw string) string {
	value := strings.TrimSpace(raw)
	value = strings.TrimPrefix(value, "\ufeff")
	value = strings.ToLower(value)
	value = strings.ReplaceAll(value, "_", " ")
	value = strings.Join(strings.Fields(value), " ")
	return value
}

func readCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func readOptional(row []string, colMap map[string]int, column string) string {
	idx, ok := colMap[column]
	if !ok {
		return ""
	}
	return readCell(row, idx)
}

func parseAmount(raw string) (money.Amount, error) {
	value := strings.TrimSpace(raw)
	value = strings.TrimPrefix(value, "₹")
	value = strings.ReplaceAll(value, ",", "")
	if value == "" {
		return 0, errors.New("is required")
	}
	amount, err := money.Parse(value)
	if err != nil {
		return 0, errors.New("is not a number")
	}
	if amount < 0 {
		return 0, errors.New("must not be negative")
	}
	return amount, nil
}
