package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"grantdocs/internal/catalog"
	"grantdocs/internal/model"
	"grantdocs/internal/repository"
)

// LookupService exposes the fiscal year, source and grant type tables.
type LookupService interface {
	FiscalYears(ctx context.Context) ([]model.FiscalYear, error)
	Sources(ctx context.Context) ([]model.Source, error)
	GrantTypes(ctx context.Context) ([]model.GrantType, error)

	// VerifyCatalog fails with ErrCatalogMismatch when the database lookups differ
	// from the catalog tables the clients submit.
	VerifyCatalog(ctx context.Context) error
}

type lookupService struct {
	repo repository.LookupRepository
}

// NewLookupService constructs a new LookupService.
func NewLookupService(repo repository.LookupRepository) LookupService {
	return &lookupService{repo: repo}
}

func (s *lookupService) FiscalYears(ctx context.Context) ([]model.FiscalYear, error) {
	return s.repo.FiscalYears(ctx)
}

func (s *lookupService) Sources(ctx context.Context) ([]model.Source, error) {
	return s.repo.Sources(ctx)
}

func (s *lookupService) GrantTypes(ctx context.Context) ([]model.GrantType, error) {
	return s.repo.GrantTypes(ctx)
}

func (s *lookupService) VerifyCatalog(ctx context.Context) error {
	srcs, err := s.repo.Sources(ctx)
	if err != nil {
		return fmt.Errorf("load sources: %w", err)
	}
	gts, err := s.repo.GrantTypes(ctx)
	if err != nil {
		return fmt.Errorf("load grant types: %w", err)
	}
	fys, err := s.repo.FiscalYears(ctx)
	if err != nil {
		return fmt.Errorf("load fiscal years: %w", err)
	}

	var problems []string

	dbSources := make([]string, 0, len(srcs))
	for _, src := range srcs {
		dbSources = append(dbSources, src.Name)
	}
	problems = append(problems, diff("source", catalog.Sources, dbSources)...)

	dbGrantTypes := make([]string, 0, len(gts))
	for _, g := range gts {
		dbGrantTypes = append(dbGrantTypes, g.Name)
	}
	problems = append(problems, diff("grant type", catalog.GrantTypes, dbGrantTypes)...)

	// Every catalog fiscal year must exist; extra database years are allowed.
	dbYears := make(map[string]struct{}, len(fys))
	for _, fy := range fys {
		dbYears[fy.ID] = struct{}{}
	}
	for _, fy := range catalog.FiscalYears() {
		if _, ok := dbYears[fy.ID]; !ok {
			problems = append(problems, fmt.Sprintf("fiscal year %q missing", fy.ID))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrCatalogMismatch, strings.Join(problems, "; "))
	}
	return nil
}

func diff(kind string, want, got []string) []string {
	gotSet := make(map[string]struct{}, len(got))
	for _, g := range got {
		gotSet[g] = struct{}{}
	}
	wantSet := make(map[string]struct{}, len(want))
	var out []string
	for _, w := range want {
		wantSet[w] = struct{}{}
		if _, ok := gotSet[w]; !ok {
			out = append(out, fmt.Sprintf("%s %q missing", kind, w))
		}
	}
	var extra []string
	for _, g := range got {
		if _, ok := wantSet[g]; !ok {
			extra = append(extra, fmt.Sprintf("%s %q unexpected", kind, g))
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}
