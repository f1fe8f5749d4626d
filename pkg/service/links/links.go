package links

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/secmon-lab/horae/pkg/domain/interfaces"
	"github.com/secmon-lab/horae/pkg/domain/model"
	"github.com/secmon-lab/horae/pkg/service/workbook"
	"github.com/secmon-lab/horae/pkg/utils/logging"
)

// orderFallback sorts rows with a missing or unparseable order value last.
const orderFallback = 999999

// Service provides the navigation link list for the UI. Links come from the
// optional LINK table merged with static links from the app config. Any
// failure reading the table degrades silently to the static links alone;
// this provider never returns an error.
type Service struct {
	wb     interfaces.Workbook
	static []model.Link
}

// New creates a link list provider.
func New(wb interfaces.Workbook, static []model.Link) *Service {
	return &Service{wb: wb, static: static}
}

// Links returns enabled links sorted by order then label.
func (s *Service) Links(ctx context.Context) []model.Link {
	all := append([]model.Link{}, s.static...)
	all = append(all, s.fromTable(ctx)...)

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Order != all[j].Order {
			return all[i].Order < all[j].Order
		}
		return all[i].Label < all[j].Label
	})

	out := make([]model.Link, 0, len(all))
	for _, l := range all {
		out = append(out, model.Link{Label: l.Label, URL: l.URL})
	}
	return out
}

func (s *Service) fromTable(ctx context.Context) []model.Link {
	tbl, err := s.wb.Table(ctx, workbook.TableLinks)
	if err != nil {
		return nil
	}

	header, err := tbl.Header(ctx)
	if err != nil {
		logging.From(ctx).Debug("failed to read LINK header", "error", err)
		return nil
	}
	cm, err := workbook.BuildColumnMap(header, workbook.TableLinks)
	if err != nil {
		logging.From(ctx).Debug("failed to map LINK columns", "error", err)
		return nil
	}
	for _, field := range workbook.RequiredLinkColumns() {
		if _, ok := cm[field]; !ok {
			return nil
		}
	}

	rows, cols, err := tbl.Size(ctx)
	if err != nil || rows <= 1 {
		return nil
	}
	block, err := tbl.ReadRange(ctx, 2, 1, rows-1, cols)
	if err != nil {
		logging.From(ctx).Debug("failed to read LINK rows", "error", err)
		return nil
	}

	var out []model.Link
	for _, row := range block {
		if !workbook.CellBool(row[cm[workbook.ColLinkEnabled]-1]) {
			continue
		}
		label := workbook.CellString(row[cm[workbook.ColLinkLabel]-1])
		url := workbook.CellString(row[cm[workbook.ColLinkURL]-1])
		if label == "" || url == "" {
			continue
		}
		out = append(out, model.Link{
			Label: label,
			URL:   url,
			Order: cellOrder(row[cm[workbook.ColLinkOrder]-1]),
		})
	}
	return out
}

func cellOrder(value any) int {
	switch v := value.(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
		return orderFallback
	default:
		return orderFallback
	}
}
