// Package sheets talks to Google Sheets and Drive on behalf of the invoice
// sync using a service account.
package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/rpggio/showbill/internal/invoice"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

const (
	valueInputOption = "USER_ENTERED"
	insertDataOption = "INSERT_ROWS"
)

var scopes = []string{sheetsapi.SpreadsheetsScope, drive.DriveScope}

// Config holds service-account credentials. Either CredentialsFile or the
// Email and PrivateKey pair must be set.
type Config struct {
	Email           string
	PrivateKey      string
	CredentialsFile string
}

// Validate reports invoice.ErrNotConfigured when no credentials are present.
func (c Config) Validate() error {
	if c.CredentialsFile != "" {
		return nil
	}
	if c.Email == "" || c.PrivateKey == "" {
		return fmt.Errorf("%w: missing google service account credentials", invoice.ErrNotConfigured)
	}
	return nil
}

// normalizeKey turns the escaped newlines of a key stored in an environment
// variable back into real ones.
func normalizeKey(key string) string {
	return strings.ReplaceAll(key, `\n`, "\n")
}

// Client implements invoice.Spreadsheets on the Google APIs.
type Client struct {
	sheets *sheetsapi.Service
	drive  *drive.Service
	logger *slog.Logger
}

var _ invoice.Spreadsheets = (*Client)(nil)

// New authenticates with the service account and creates API clients.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var jwtConfig *jwt.Config
	if cfg.CredentialsFile != "" {
		jsonKey, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}
		jwtConfig, err = google.JWTConfigFromJSON(jsonKey, scopes...)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}
	} else {
		jwtConfig = &jwt.Config{
			Email:      cfg.Email,
			PrivateKey: []byte(normalizeKey(cfg.PrivateKey)),
			Scopes:     scopes,
			TokenURL:   google.JWTTokenURL,
		}
	}

	return newClient(ctx, logger, option.WithHTTPClient(jwtConfig.Client(ctx)))
}

func newClient(ctx context.Context, logger *slog.Logger, opts ...option.ClientOption) (*Client, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	sheetsSvc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create drive service: %w", err)
	}
	return &Client{sheets: sheetsSvc, drive: driveSvc, logger: logger}, nil
}

// CopyDocument copies the template file and returns the new file ID.
func (c *Client) CopyDocument(ctx context.Context, templateID, name string) (string, error) {
	file, err := c.drive.Files.Copy(templateID, &drive.File{Name: name}).
		SupportsAllDrives(true).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	c.logger.Debug("copied spreadsheet", "template_id", templateID, "document_id", file.Id)
	return file.Id, nil
}

// BatchWrite writes several ranges in one request.
func (c *Client) BatchWrite(ctx context.Context, docID string, data []invoice.ValueRange) error {
	req := &sheetsapi.BatchUpdateValuesRequest{
		ValueInputOption: valueInputOption,
		Data:             make([]*sheetsapi.ValueRange, 0, len(data)),
	}
	for _, vr := range data {
		req.Data = append(req.Data, &sheetsapi.ValueRange{Range: vr.Range, Values: vr.Values})
	}
	_, err := c.sheets.Spreadsheets.Values.BatchUpdate(docID, req).Context(ctx).Do()
	return err
}

// BatchClear clears several ranges in one request.
func (c *Client) BatchClear(ctx context.Context, docID string, ranges []string) error {
	_, err := c.sheets.Spreadsheets.Values.BatchClear(docID, &sheetsapi.BatchClearValuesRequest{Ranges: ranges}).Context(ctx).Do()
	return err
}

// Append inserts rows after the last row of the table found in rng.
func (c *Client) Append(ctx context.Context, docID, rng string, rows [][]any) error {
	_, err := c.sheets.Spreadsheets.Values.Append(docID, rng, &sheetsapi.ValueRange{Values: rows}).
		ValueInputOption(valueInputOption).
		InsertDataOption(insertDataOption).
		Context(ctx).
		Do()
	return err
}
