package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/hh-matcher/internal/headhunter"
	"github.com/spigell/hh-matcher/internal/matching"
)

const detailsConcurrency = 4

// VacancySource is the part of the hh.ru client used by the catalog.
type VacancySource interface {
	Search(ctx context.Context, params headhunter.SearchParams) (*headhunter.Vacancies, error)
	GetVacancy(ctx context.Context, id string) (*headhunter.Vacancy, error)
}

// Headhunter serves postings found by an hh.ru search. Search results carry
// only snippets, so with detailed set every vacancy is fetched in full.
type Headhunter struct {
	source   VacancySource
	params   headhunter.SearchParams
	detailed bool
	logger   *zap.Logger
}

func NewHeadhunter(source VacancySource, params headhunter.SearchParams, detailed bool, logger *zap.Logger) *Headhunter {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Headhunter{
		source:   source,
		params:   params,
		detailed: detailed,
		logger:   logger,
	}
}

func (h *Headhunter) Postings(ctx context.Context) ([]matching.Posting, error) {
	vacancies, err := h.source.Search(ctx, h.params)
	if err != nil {
		return nil, err
	}

	h.logger.Info("vacancies found", zap.Int("vacancies", vacancies.Len()), zap.Bool("detailed", h.detailed))

	if h.detailed {
		if err := h.fetchDetails(ctx, vacancies); err != nil {
			return nil, err
		}
	}

	return vacancies.ToPostings(), nil
}

// fetchDetails replaces search results with full vacancies in place.
// A vacancy that cannot be fetched keeps its short representation.
func (h *Headhunter) fetchDetails(ctx context.Context, vacancies *headhunter.Vacancies) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(detailsConcurrency)

	for i, short := range vacancies.Items {
		g.Go(func() error {
			full, err := h.source.GetVacancy(gctx, short.ID)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				h.logger.Warn("failed to get vacancy details", zap.String("vacancy_id", short.ID), zap.Error(err))
				return nil
			}
			vacancies.Items[i] = full
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("getting vacancy details: %w", err)
	}

	return nil
}
