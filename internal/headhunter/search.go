package headhunter

import (
	"context"
	"fmt"
	"net/url"
	"reflect"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

const (
	SearchPath  = "/vacancies"
	VacancyPath = "/vacancies/%s"
)

// SearchParams are the query of /vacancies. The mapstructure tags are used
// by the config layer, the hhparam tags name the query keys.
type SearchParams struct {
	Text        string   `mapstructure:"text" hhparam:"text"`
	Areas       []int    `mapstructure:"areas" hhparam:"area"`
	OrderBy     string   `mapstructure:"order-by" hhparam:"order_by"`
	Employer    uint     `mapstructure:"employer-id" hhparam:"employer_id"`
	SearchField string   `mapstructure:"search-field" hhparam:"search_field"`
	Schedules   []string `mapstructure:"schedules" hhparam:"schedule"`
	PerPage     string   `mapstructure:"per-page" hhparam:"per_page"`
	Experience  string   `mapstructure:"experience" hhparam:"experience"`
	Period      uint     `mapstructure:"period" hhparam:"period"`
}

// Search returns all vacancies found by params. Only the short
// representation is returned; use GetVacancy for descriptions and key skills.
func (c *Client) Search(ctx context.Context, params SearchParams) (*Vacancies, error) {
	// Set per_page max as possible. It should be faster.
	if params.PerPage == "" {
		params.PerPage = perPage
	}

	items, err := c.GetItems(ctx, c.APIURL+SearchPath, buildParams(params))
	if err != nil {
		return nil, fmt.Errorf("searching vacancies: %w", err)
	}

	var vacancies []*Vacancy
	if err := decodeItems(items, &vacancies); err != nil {
		return nil, fmt.Errorf("decoding vacancies: %w", err)
	}

	return &Vacancies{
		Items: vacancies,
	}, nil
}

// GetVacancy returns the full representation of a vacancy.
func (c *Client) GetVacancy(ctx context.Context, id string) (*Vacancy, error) {
	if id == "" {
		return nil, fmt.Errorf("vacancy id is required")
	}

	var vacancy Vacancy
	if err := c.getJSON(ctx, c.APIURL+fmt.Sprintf(VacancyPath, url.PathEscape(id)), nil, &vacancy); err != nil {
		return nil, fmt.Errorf("getting vacancy %s: %w", id, err)
	}

	return &vacancy, nil
}

func decodeItems(items []Item, result interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           result,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(items)
}

func buildParams(params SearchParams) url.Values {
	q := url.Values{}
	value := reflect.ValueOf(params)

	for _, field := range reflect.VisibleFields(value.Type()) {
		key := field.Tag.Get("hhparam")
		if key == "" {
			continue
		}

		switch v := value.FieldByIndex(field.Index).Interface().(type) {
		case []int:
			for _, item := range v {
				q.Add(key, strconv.Itoa(item))
			}
		case []string:
			for _, item := range v {
				q.Add(key, item)
			}
		default:
			s := fmt.Sprintf("%v", v)
			if s != "" && s != "0" {
				q.Set(key, s)
			}
		}
	}

	return q
}
