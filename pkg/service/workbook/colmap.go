package workbook

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/horae/pkg/domain/types"
)

// ColumnMap maps a logical field name to its 1-based column position,
// resolved from a table's header row. Positions are never hard-coded
// anywhere else; all row access goes through the map.
type ColumnMap map[string]int

// BuildColumnMap resolves a header row into a ColumnMap. Labels are trimmed;
// blank headers produce no entry. A repeated non-empty label fails with
// ErrDuplicateHeader. The table name is used only for error context.
func BuildColumnMap(header []string, tableName string) (ColumnMap, error) {
	cm := make(ColumnMap, len(header))
	for i, label := range header {
		key := strings.TrimSpace(label)
		if key == "" {
			continue
		}
		if _, ok := cm[key]; ok {
			return nil, goerr.Wrap(types.ErrDuplicateHeader, "header label appears twice",
				goerr.V(types.TableKey, tableName), goerr.V(types.HeaderKey, key))
		}
		cm[key] = i + 1
	}
	return cm, nil
}
