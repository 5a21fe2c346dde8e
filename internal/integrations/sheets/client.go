package sheets

import (
	"ari-server/internal/observability"
	"ari-server/internal/store"
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const defaultSheetName = "Leads"

// Client appends captured leads to a client-owned spreadsheet.
type Client struct {
	service *sheets.Service
	logger  *observability.Logger
}

func NewClient(ctx context.Context, credentialsJSON []byte, logger *observability.Logger) (*Client, error) {
	service, err := sheets.NewService(ctx, option.WithCredentialsJSON(credentialsJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service: service,
		logger:  logger,
	}, nil
}

// AppendLead writes one row to the spreadsheet configured for the client.
func (c *Client) AppendLead(ctx context.Context, spreadsheetID string, lead store.Lead) error {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "spreadsheet_id", Value: spreadsheetID},
		observability.Field{Key: "lead_id", Value: lead.ID},
	)

	row := []interface{}{
		lead.CreatedAt.Format("2006-01-02 15:04:05"),
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Company,
		lead.Source,
		lead.Status,
		lead.Score,
	}

	valueRange := &sheets.ValueRange{Values: [][]interface{}{row}}
	_, err := c.service.Spreadsheets.Values.
		Append(spreadsheetID, defaultSheetName, valueRange).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		c.logger.Error(ctx, "failed to append lead row", err)
		return fmt.Errorf("failed to append lead row: %w", err)
	}

	c.logger.Info(ctx, "lead exported to sheet")
	return nil
}
