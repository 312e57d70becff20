package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go-trading-backend/internal/models"

	"gorm.io/gorm"
)

// The legacy spreadsheet layout the shop exchanges with its supplier.
// Column 1 is the brand; the header has always said "FOCUS".
var csvHeader = []string{"FOCUS", "Model", "Description", "Quantity", "SRP Price", "DISCOUNT PRICE"}

// Import keeps going past bad rows but only reports the first few.
const maxReportedRowErrors = 10

// RowError describes one CSV row that could not be imported.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult summarizes a best-effort CSV import.
type ImportResult struct {
	Created    int        `json:"created"`
	Updated    int        `json:"updated"`
	FailedRows int        `json:"failed_rows"`
	Errors     []RowError `json:"errors"`
}

// ExportInventoryCSV writes the full inventory in the 6-column supplier
// format, sorted by brand then item name.
func ExportInventoryCSV(db *gorm.DB, w io.Writer) error {
	var items []models.InventoryItem
	if err := db.Order("brand ASC, item_name ASC").Find(&items).Error; err != nil {
		return fmt.Errorf("failed to fetch inventory: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, item := range items {
		description := item.Description
		if description == "" {
			description = item.ItemName
		}
		discount := 0.0
		if item.DiscountPrice != nil {
			discount = *item.DiscountPrice
		}

		row := []string{
			item.Brand,
			item.Model,
			description,
			strconv.Itoa(item.Quantity),
			formatPrice(item.SRPPrice),
			formatPrice(discount),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ImportInventoryCSV reads the 6-column supplier format and upserts into
// the inventory, matching existing items case-insensitively on
// (brand, model). Bad rows are collected and skipped, never fatal.
func ImportInventoryCSV(db *gorm.DB, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // row width is validated per row below

	result := &ImportResult{}
	rowNum := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		rowNum++
		if rowNum == 1 {
			continue // header
		}

		created, err := importRow(db, record)
		if err != nil {
			result.FailedRows++
			if len(result.Errors) < maxReportedRowErrors {
				result.Errors = append(result.Errors, RowError{Row: rowNum, Message: err.Error()})
			}
			continue
		}

		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	return result, nil
}

func importRow(db *gorm.DB, record []string) (created bool, _ error) {
	if len(record) < 6 {
		return false, fmt.Errorf("expected at least 6 columns, got %d", len(record))
	}

	brand := strings.TrimSpace(record[0])
	if brand == "" {
		brand = "Unknown"
	}
	model := strings.TrimSpace(record[1])
	if model == "" {
		model = "Unknown"
	}
	description := strings.TrimSpace(record[2])

	quantity := parseQuantity(record[3])
	srpPrice, err := parsePrice(record[4])
	if err != nil {
		return false, fmt.Errorf("bad SRP price: %v", err)
	}
	discountPrice, err := parsePrice(record[5])
	if err != nil {
		return false, fmt.Errorf("bad discount price: %v", err)
	}

	var discount *float64
	if discountPrice > 0 {
		discount = &discountPrice
	}

	var existing models.InventoryItem
	err = db.Where("LOWER(brand) = ? AND LOWER(model) = ?",
		strings.ToLower(brand), strings.ToLower(model)).
		First(&existing).Error
	if err == nil {
		// Spreadsheet wins on the fields it carries; unit cost and serial
		// number stay as they are.
		existing.Description = description
		existing.Quantity = quantity
		existing.SRPPrice = srpPrice
		existing.DiscountPrice = discount
		return false, db.Save(&existing).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	item := models.InventoryItem{
		ItemName:      fmt.Sprintf("%s %s", brand, model),
		Brand:         brand,
		Model:         model,
		Description:   description,
		Quantity:      quantity,
		SRPPrice:      srpPrice,
		DiscountPrice: discount,
	}
	return true, db.Create(&item).Error
}

// parseQuantity reads an unsigned integer, defaulting to 0 on anything
// non-numeric. Matches what the old spreadsheet import did.
func parseQuantity(raw string) int {
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0
	}
	return int(n)
}

// parsePrice keeps the legacy permissive behavior: a value made of anything
// other than digits, dots and commas silently becomes 0.0, while a value
// that passes that check but still fails to parse (e.g. "1.2.3") is a row
// error.
func parsePrice(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != ',' {
			return 0, nil
		}
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a valid number", s)
	}
	return value, nil
}

func formatPrice(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatFloat(v, 'f', 1, 64) // "0.0", "55000.0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
