package gsheets

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/sitelog/sitelog/internal/config"
	"github.com/sitelog/sitelog/pkg/reference"
	"github.com/sitelog/sitelog/pkg/timesheet"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Named ranges the workbook must define for the roster lists.
const (
	rangeEmployees = "Employees"
	rangeAdmins    = "Admins"
	rangePlant     = "Plant"
	rangeSites     = "Sites"
)

// Sheets a submission is appended to.
const (
	sheetLog            = "Log!A:E"
	sheetEmployees      = "EmployeeHours!A:E"
	sheetSubcontractors = "SubcontractorHours!A:E"
	sheetPlant          = "PlantUsage!A:C"
)

// Client reads the roster from and appends submissions to a Google
// Sheets workbook directly, as an alternative to the flow backend for
// deployments without Power Automate.
type Client struct {
	service       *sheets.Service
	spreadsheetId string
}

func NewClient(ctx context.Context, cfg config.GoogleSheets) (*Client, error) {
	service, err := sheets.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsFile))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}
	return &Client{service: service, spreadsheetId: cfg.SpreadsheetId}, nil
}

// FetchReferenceData reads the four roster named ranges in one batch.
func (c *Client) FetchReferenceData(ctx context.Context) (reference.Data, error) {
	response, err := c.service.Spreadsheets.Values.
		BatchGet(c.spreadsheetId).
		Ranges(rangeEmployees, rangeAdmins, rangePlant, rangeSites).
		Context(ctx).
		Do()
	if err != nil {
		return reference.Data{}, fmt.Errorf("reading roster ranges: %w", err)
	}
	if len(response.ValueRanges) != 4 {
		return reference.Data{}, fmt.Errorf("expected 4 roster ranges, got %d", len(response.ValueRanges))
	}

	return reference.Data{
		Employees: firstColumn(response.ValueRanges[0]),
		Admins:    firstColumn(response.ValueRanges[1]),
		Plant:     firstColumn(response.ValueRanges[2]),
		Sites:     firstColumn(response.ValueRanges[3]),
	}, nil
}

// Submit appends the payload's row groups to their sheets. The details
// tuple goes to the log sheet; row groups are keyed back to the log
// entry by the date serial in their first column.
func (c *Client) Submit(ctx context.Context, payload timesheet.Payload) error {
	if err := c.append(ctx, sheetLog, [][]any{payload.Details}); err != nil {
		return err
	}

	dateSerial := any(nil)
	if len(payload.Details) > 1 {
		dateSerial = payload.Details[1]
	}

	if err := c.append(ctx, sheetEmployees, prefixRows(dateSerial, payload.Employees)); err != nil {
		return err
	}
	if err := c.append(ctx, sheetSubcontractors, prefixRows(dateSerial, payload.Subcontractors)); err != nil {
		return err
	}
	return c.append(ctx, sheetPlant, prefixRows(dateSerial, payload.Plants))
}

func (c *Client) append(ctx context.Context, sheetRange string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		values[i] = row
	}
	_, err := c.service.Spreadsheets.Values.
		Append(c.spreadsheetId, sheetRange, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("appending to %s: %w", sheetRange, err)
	}
	log.Debugf("appended %d rows to %s", len(rows), sheetRange)
	return nil
}

func prefixRows(dateSerial any, rows [][]any) [][]any {
	prefixed := make([][]any, 0, len(rows))
	for _, row := range rows {
		prefixed = append(prefixed, append([]any{dateSerial}, row...))
	}
	return prefixed
}

func firstColumn(valueRange *sheets.ValueRange) []string {
	var values []string
	for _, row := range valueRange.Values {
		if len(row) == 0 {
			continue
		}
		if text, ok := row[0].(string); ok && strings.TrimSpace(text) != "" {
			values = append(values, text)
		}
	}
	return values
}
