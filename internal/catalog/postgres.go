package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spigell/hh-matcher/internal/matching"
)

const selectPostings = `SELECT id, title, COALESCE(company, ''), COALESCE(description, ''),
	COALESCE(required_skills, '{}'), COALESCE(requirements, '{}'), COALESCE(experience_level, '')
	FROM postings
	ORDER BY position, id`

// Postgres reads postings from the postings table.
type Postgres struct {
	pool *pgxpool.Pool
}

// ConnectPostgres creates a pool and checks that the database is reachable.
func ConnectPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

func (p *Postgres) Postings(ctx context.Context) ([]matching.Posting, error) {
	rows, err := p.pool.Query(ctx, selectPostings)
	if err != nil {
		return nil, fmt.Errorf("querying postings: %w", err)
	}
	defer rows.Close()

	postings := []matching.Posting{}
	for rows.Next() {
		var posting matching.Posting
		if err := rows.Scan(&posting.ID, &posting.Title, &posting.Company, &posting.Description,
			&posting.RequiredSkills, &posting.Requirements, &posting.ExperienceLevel); err != nil {
			return nil, fmt.Errorf("scanning posting: %w", err)
		}
		postings = append(postings, posting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading postings: %w", err)
	}

	return postings, nil
}
