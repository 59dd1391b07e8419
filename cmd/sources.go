package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/hh-matcher/internal/catalog"
	"github.com/spigell/hh-matcher/internal/headhunter"
	"github.com/spigell/hh-matcher/internal/matching"
	"github.com/spigell/hh-matcher/internal/profile"
	"github.com/spigell/hh-matcher/internal/secrets"
)

func needsHeadhunter(config *Config) bool {
	return config.Profile.Source == sourceHeadhunter ||
		config.Catalog.Source == sourceHeadhunter ||
		config.Filters.ExcludeApplied
}

func resolveToken(config *Config) (string, error) {
	tokenFile := strings.TrimSpace(config.TokenFile)

	src := secrets.Source{
		Name: "headhunter token",
		File: tokenFile,
		Env:  "HH_TOKEN",
	}

	if config.Profile.Source == sourceHeadhunter || config.Catalog.Source == sourceHeadhunter {
		return secrets.Load(src)
	}

	// Negotiations are only needed for the applied history filter.
	return secrets.Optional(src)
}

func newHeadhunter(config *Config, logger *zap.Logger) (*headhunter.Client, error) {
	if !needsHeadhunter(config) {
		return nil, nil
	}

	token, err := resolveToken(config)
	if err != nil {
		return nil, fmt.Errorf("%w (set HH_TOKEN_FILE environment variable or the 'token-file' key in the configuration file)", err)
	}
	if token == "" {
		logger.Warn("hh.ru token is not configured", zap.String("hint", "already applied postings will not be excluded"))
		return nil, nil
	}

	hh := headhunter.New(logger, token)
	if config.UserAgent != "" {
		hh.UserAgent = config.UserAgent
	}
	return hh, nil
}

// loadCandidate returns the profile and a short description of where it came from.
func loadCandidate(ctx context.Context, config *Config, hh *headhunter.Client, logger *zap.Logger) (matching.CandidateProfile, string, error) {
	switch config.Profile.Source {
	case sourceHeadhunter:
		return loadResume(ctx, config.Profile.Resume, hh, logger)
	default:
		if config.Profile.File == "" {
			return matching.CandidateProfile{}, "", errors.New("profile.file is required")
		}
		candidate, err := profile.Load(config.Profile.File)
		return candidate, config.Profile.File, err
	}
}

func loadResume(ctx context.Context, title string, hh *headhunter.Client, logger *zap.Logger) (matching.CandidateProfile, string, error) {
	if title == "" {
		return matching.CandidateProfile{}, "", errors.New("profile.resume is required when profile source is headhunter")
	}

	resumes, err := hh.GetMineResumes(ctx)
	if err != nil {
		return matching.CandidateProfile{}, "", err
	}

	logger.Info("getting mine resumes", zap.Int("count", resumes.Len()))

	selected := resumes.FindByTitle(title)
	if selected == nil {
		return matching.CandidateProfile{}, "", fmt.Errorf("resume %q not found, existing resumes: %s",
			title, strings.Join(resumes.Titles(), ", "))
	}

	details, err := hh.GetResumeDetails(ctx, selected.ID)
	if err != nil {
		return matching.CandidateProfile{}, "", err
	}

	candidate, err := details.ToProfile()
	return candidate, "resume:" + selected.Title, err
}

// buildCatalog returns the configured posting repository and a function releasing its resources.
func buildCatalog(ctx context.Context, config *Config, hh *headhunter.Client, logger *zap.Logger) (matching.PostingRepository, func(), error) {
	noop := func() {}
	cfg := config.Catalog

	switch cfg.Source {
	case sourcePostgres:
		url, err := secrets.Load(secrets.Source{
			Name:  "database url",
			File:  cfg.DatabaseURLFile,
			Value: cfg.DatabaseURL,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("%w (set HH_MATCHER_DATABASE_URL or catalog.database-url-file)", err)
		}

		db, err := catalog.ConnectPostgres(ctx, url)
		if err != nil {
			return nil, noop, err
		}
		return db, db.Close, nil

	case sourceHeadhunter:
		if cfg.Search == nil {
			return nil, noop, errors.New("catalog.search is required when catalog source is headhunter")
		}
		if !cfg.Detailed {
			logger.Warn("vacancy details are disabled",
				zap.String("hint", "search results carry no key skills, so the skill score of every posting is 0"),
			)
		}
		logger.Info("starting the search", zap.String("search", cfg.Search.Text))
		return catalog.NewHeadhunter(hh, *cfg.Search, cfg.Detailed, logger), noop, nil

	case sourceInline:
		static, err := catalog.NewStatic(cfg.Postings)
		if err != nil {
			return nil, noop, fmt.Errorf("catalog.postings: %w", err)
		}
		return static, noop, nil

	default:
		if cfg.File == "" {
			return nil, noop, errors.New("catalog.file is required")
		}
		return catalog.NewFile(cfg.File), noop, nil
	}
}

func newScorer(config *Config) *matching.Scorer {
	tables := matching.DefaultTables()
	tables.Merge(config.Matching.Tables)

	return matching.NewScorer(*config.Matching.Weights, tables, nil)
}
