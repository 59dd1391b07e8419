package headhunter

import (
	"context"
	"fmt"
	"net/url"
)

const (
	apiNegotiataionPath       = "/negotiations"
	allStatusesExceptArchived = "non_archived"
)

type Negotations []*Negotiation

type Negotiation struct {
	ID        string
	CreatedAt string `json:"created_at"`
	URL       string
	Vacancy   *Vacancy
}

// GetNegotiations returns non archived negotiations of the token owner.
func (c *Client) GetNegotiations(ctx context.Context) (Negotations, error) {
	q := url.Values{}
	// We never need our archived negotiations
	q.Add("status", allStatusesExceptArchived)
	// Set per_page max as possible. It should be faster.
	q.Add("per_page", perPage)

	items, err := c.GetItems(ctx, c.APIURL+apiNegotiataionPath, q)
	if err != nil {
		return nil, fmt.Errorf("listing negotiations: %w", err)
	}

	var negotations Negotations
	if err = decodeItems(items, &negotations); err != nil {
		return nil, err
	}

	return negotations, nil
}

// VacanciesIDs returns ids of vacancies with negotiations.
func (n Negotations) VacanciesIDs() []string {
	ids := make([]string, 0, len(n))

	for _, v := range n {
		if v == nil || v.Vacancy == nil {
			continue
		}
		ids = append(ids, v.Vacancy.ID)
	}

	return ids
}
