package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// readRange covers every row the app could reasonably have appended.
const readRange = "A1:Z10000"

// Client reads and appends rows across the per-record-type spreadsheets.
// Each table name maps to its own spreadsheet ID.
type Client struct {
	service  *sheets.Service
	tableIDs map[string]string
}

func NewClient(ctx context.Context, credentialsFile string, tableIDs map[string]string) (*Client, error) {
	service, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service:  service,
		tableIDs: tableIDs,
	}, nil
}

func (c *Client) spreadsheetID(table string) (string, error) {
	id, ok := c.tableIDs[table]
	if !ok {
		return "", fmt.Errorf("no spreadsheet configured for table %q", table)
	}
	return id, nil
}

// ReadTable returns the full row sequence of a table, header included,
// with every cell rendered as a string.
func (c *Client) ReadTable(ctx context.Context, table string) ([][]string, error) {
	id, err := c.spreadsheetID(table)
	if err != nil {
		return nil, err
	}

	resp, err := c.service.Spreadsheets.Values.Get(id, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", table, err)
	}

	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		cells := make([]string, len(row))
		for j, cell := range row {
			if cell != nil {
				cells[j] = fmt.Sprintf("%v", cell)
			}
		}
		rows[i] = cells
	}
	return rows, nil
}

// AppendRow appends a single row to the end of a table.
func (c *Client) AppendRow(ctx context.Context, table string, row []interface{}) error {
	id, err := c.spreadsheetID(table)
	if err != nil {
		return err
	}

	valueRange := &sheets.ValueRange{
		Values: [][]interface{}{row},
	}

	_, err = c.service.Spreadsheets.Values.Append(id, "A1", valueRange).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append row to table %s: %w", table, err)
	}

	return nil
}
