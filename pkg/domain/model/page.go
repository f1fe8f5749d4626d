package model

import "github.com/secmon-lab/horae/pkg/domain/types"

// Page is the aggregate the UI loads on startup: everything needed to render
// the action board in one call.
type Page struct {
	Links      []Link           `json:"links"`
	Companies  []string         `json:"companies"`
	Categories []types.Category `json:"categories"`
	Statuses   []types.Status   `json:"statuses"`
	Actions    []*Action        `json:"actions"`
	Today      string           `json:"today_ymd"`
}
