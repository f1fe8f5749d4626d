package usecase

import (
	"context"
	"time"

	"github.com/secmon-lab/horae/pkg/domain/interfaces"
	"github.com/secmon-lab/horae/pkg/domain/model"
	"github.com/secmon-lab/horae/pkg/service/directory"
	"github.com/secmon-lab/horae/pkg/service/links"
	"github.com/secmon-lab/horae/pkg/utils/clock"
)

const timestampLayout = "2006-01-02T15:04:05-07:00"

// UseCases orchestrates all operations against the backing workbook. Every
// operation validates the schema and resolves column maps fresh; no state is
// cached between calls.
//
// Concurrent external writers are not coordinated: row lookup happens at call
// time and another caller's update inside the lookup-to-write window is
// overwritten. Last writer wins.
type UseCases struct {
	wb          interfaces.Workbook
	loc         *time.Location
	staticLinks []model.Link
	directory   *directory.Service
	links       *links.Service
}

type Option func(*UseCases)

// WithStaticLinks adds fixed navigation links merged into the link list.
func WithStaticLinks(static []model.Link) Option {
	return func(uc *UseCases) {
		uc.staticLinks = static
	}
}

// New creates the use case layer over a workbook. A nil location defaults to
// JST, the store-local timezone.
func New(wb interfaces.Workbook, loc *time.Location, opts ...Option) *UseCases {
	if loc == nil {
		loc = time.FixedZone("JST", 9*60*60)
	}

	uc := &UseCases{
		wb:  wb,
		loc: loc,
	}
	for _, opt := range opts {
		opt(uc)
	}

	uc.directory = directory.New(wb)
	uc.links = links.New(wb, uc.staticLinks)

	return uc
}

// now returns the current timestamp string in the store timezone.
func (uc *UseCases) now(ctx context.Context) string {
	return clock.Now(ctx).In(uc.loc).Format(timestampLayout)
}

// CompanyNames returns the distinct known company names.
func (uc *UseCases) CompanyNames(ctx context.Context) ([]string, error) {
	return uc.directory.Names(ctx)
}

// CompanyContacts returns the contact fields for a company, empty if unknown.
func (uc *UseCases) CompanyContacts(ctx context.Context, name string) (*model.CompanyContacts, error) {
	return uc.directory.Contacts(ctx, name)
}

// Links returns the navigation link list. Never fails; degrades to the static
// links on any backing store trouble.
func (uc *UseCases) Links(ctx context.Context) []model.Link {
	return uc.links.Links(ctx)
}
