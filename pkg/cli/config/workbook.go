package config

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/horae/pkg/domain/interfaces"
	"github.com/secmon-lab/horae/pkg/repository/memory"
	"github.com/secmon-lab/horae/pkg/repository/sheets"
	"github.com/secmon-lab/horae/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Workbook holds CLI flags for backing store configuration
type Workbook struct {
	backend       string
	spreadsheetID string
	credentials   string
	timezone      string
}

// Flags returns CLI flags for workbook configuration
func (x *Workbook) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "workbook-backend",
			Usage:       "Workbook backend type (sheets or memory)",
			Value:       "sheets",
			Sources:     cli.EnvVars("HORAE_WORKBOOK_BACKEND"),
			Destination: &x.backend,
		},
		&cli.StringFlag{
			Name:        "spreadsheet-id",
			Usage:       "Google Sheets spreadsheet ID (required when using sheets backend)",
			Sources:     cli.EnvVars("HORAE_SPREADSHEET_ID"),
			Destination: &x.spreadsheetID,
		},
		&cli.StringFlag{
			Name:        "credentials-file",
			Usage:       "Path to a Google service account credentials file (Application Default Credentials when empty)",
			Sources:     cli.EnvVars("HORAE_CREDENTIALS_FILE"),
			Destination: &x.credentials,
		},
		&cli.StringFlag{
			Name:        "timezone",
			Usage:       "Store-local timezone for timestamps and dates",
			Value:       "Asia/Tokyo",
			Sources:     cli.EnvVars("HORAE_TIMEZONE"),
			Destination: &x.timezone,
		},
	}
}

// Timezone resolves the configured location.
func (x *Workbook) Timezone() (*time.Location, error) {
	loc, err := time.LoadLocation(x.timezone)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid timezone", goerr.V("timezone", x.timezone))
	}
	return loc, nil
}

// Configure initializes and returns a workbook based on the configured backend.
func (x *Workbook) Configure(ctx context.Context) (interfaces.Workbook, error) {
	switch x.backend {
	case "sheets":
		if x.spreadsheetID == "" {
			return nil, goerr.New("spreadsheet-id is required when using sheets backend")
		}
		wb, err := sheets.New(ctx, x.spreadsheetID, x.credentials)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize sheets workbook")
		}
		logging.Default().Info("Using Google Sheets workbook",
			"spreadsheet_id", x.spreadsheetID,
		)
		return wb, nil

	case "memory":
		logging.Default().Info("Using in-memory workbook (development mode)")
		return memory.New(), nil

	default:
		return nil, goerr.New("invalid workbook backend", goerr.V("backend", x.backend))
	}
}
