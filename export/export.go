// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/danielhkuo/civic-pulse/models"
)

// ErrNoData is returned when there is nothing to export
var ErrNoData = errors.New("no responses to export")

// SheetName is the worksheet used by WriteXLSX
const SheetName = "Responses"

// Header is the column row shared by every export format
var Header = []string{
	"ID",
	"Timestamp",
	"Name",
	"Email",
	"Age",
	"Gender",
	"Education",
	"Income",
	"Littering Score",
	"Traffic Delay (min)",
	"Medical Expense",
}

func row(r models.SurveyResponse) []string {
	return []string{
		r.ID,
		r.SubmittedAt.UTC().Format(time.RFC3339),
		r.Demographics.Name,
		r.Demographics.Email,
		r.Demographics.AgeGroup,
		r.Demographics.Gender,
		r.Demographics.Education,
		r.Demographics.IncomeGroup,
		strconv.Itoa(r.Behavior.Littering),
		strconv.Itoa(r.Economic.TrafficDelayMinutes),
		r.Economic.MedicalExpenseBand,
	}
}

// WriteCSV writes one row per response in store order. Fields are quoted as
// needed, so names containing commas survive.
func WriteCSV(w io.Writer, rs []models.SurveyResponse) error {
	if len(rs) == 0 {
		return ErrNoData
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range rs {
		if err := cw.Write(row(r)); err != nil {
			return fmt.Errorf("failed to write csv row %s: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the same table as WriteCSV into a single-sheet workbook.
// Numeric columns are stored as numbers.
func WriteXLSX(w io.Writer, rs []models.SurveyResponse) error {
	if len(rs) == 0 {
		return ErrNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &Header); err != nil {
		return fmt.Errorf("failed to write xlsx header: %w", err)
	}

	for i, r := range rs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			r.ID,
			r.SubmittedAt.UTC().Format(time.RFC3339),
			r.Demographics.Name,
			r.Demographics.Email,
			r.Demographics.AgeGroup,
			r.Demographics.Gender,
			r.Demographics.Education,
			r.Demographics.IncomeGroup,
			r.Behavior.Littering,
			r.Economic.TrafficDelayMinutes,
			r.Economic.MedicalExpenseBand,
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("failed to write xlsx row %s: %w", r.ID, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
