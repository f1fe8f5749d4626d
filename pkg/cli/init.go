package cli

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/horae/pkg/cli/config"
	"github.com/secmon-lab/horae/pkg/domain/interfaces"
	"github.com/secmon-lab/horae/pkg/domain/types"
	"github.com/secmon-lab/horae/pkg/service/workbook"
	"github.com/secmon-lab/horae/pkg/utils/logging"
)

func cmdInit() *cli.Command {
	var wbCfg config.Workbook

	return &cli.Command{
		Name:    "init",
		Aliases: []string{"i"},
		Usage:   "Provision the workbook tables and header rows",
		Flags:   wbCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			wb, err := wbCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize workbook")
			}

			tables := []struct {
				name   string
				header []string
			}{
				{workbook.TableCompanies, workbook.RequiredCompanyColumns()},
				{workbook.TableActions, workbook.RequiredActionColumns()},
				{workbook.TableLinks, workbook.RequiredLinkColumns()},
			}

			logger := logging.Default()
			for _, t := range tables {
				created, err := ensureTable(ctx, wb, t.name, t.header)
				if err != nil {
					return goerr.Wrap(err, "failed to provision table", goerr.V(types.TableKey, t.name))
				}
				if created {
					logger.Info("Created table", "table", t.name, "columns", len(t.header))
				} else {
					logger.Info("Table already exists, skipped", "table", t.name)
				}
			}

			logger.Info("Workbook provisioning completed")
			return nil
		},
	}
}

// ensureTable creates the named table with its header row unless it already
// exists. Existing tables are left untouched even when their header differs;
// the schema guard reports that at serve time.
func ensureTable(ctx context.Context, wb interfaces.Workbook, name string, header []string) (bool, error) {
	if _, err := wb.Table(ctx, name); err == nil {
		return false, nil
	} else if !errors.Is(err, types.ErrTableMissing) {
		return false, err
	}

	if _, err := wb.CreateTable(ctx, name, header); err != nil {
		return false, err
	}
	return true, nil
}
