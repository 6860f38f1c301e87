package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// Config параметры выгрузки в Google Sheets
type Config struct {
	SpreadsheetID   string
	BookingsRange   string
	ExhibitorsRange string
}

// Client клиент Google Sheets API, добавляющий строки в конец листов
type Client struct {
	values *gsheets.SpreadsheetsValuesService
	cfg    Config
}

// NewClient создает клиента по файлу сервисного аккаунта
func NewClient(ctx context.Context, cfg Config, credentialsFile string) (*Client, error) {
	return NewClientWithOptions(ctx, cfg, option.WithCredentialsFile(credentialsFile))
}

// NewClientWithOptions создает клиента с произвольными опциями (endpoint, http клиент)
func NewClientWithOptions(ctx context.Context, cfg Config, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithScopes(gsheets.SpreadsheetsScope)}, opts...)

	srv, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInit, err)
	}

	return &Client{values: srv.Spreadsheets.Values, cfg: cfg}, nil
}

// AppendBooking добавляет строку бронирования
func (c *Client) AppendBooking(ctx context.Context, row BookingRow) error {
	return c.append(ctx, c.cfg.BookingsRange, row.values())
}

// AppendExhibitor добавляет строку экспонента
func (c *Client) AppendExhibitor(ctx context.Context, row ExhibitorRow) error {
	return c.append(ctx, c.cfg.ExhibitorsRange, row.values())
}

func (c *Client) append(ctx context.Context, rng string, row []interface{}) error {
	vr := &gsheets.ValueRange{Values: [][]interface{}{row}}

	_, err := c.values.Append(c.cfg.SpreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("%w: range %s: %v", ErrAppend, rng, err)
	}

	return nil
}
