package headhunter

type Vacancies struct {
	Items []*Vacancy
}

type IDName struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type Employer struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	AlternateURL string `json:"alternate_url,omitempty"`
	Trusted      bool   `json:"trusted,omitempty"`
}

type Salary struct {
	From     int    `json:"from,omitempty"`
	To       int    `json:"to,omitempty"`
	Currency string `json:"currency,omitempty"`
	Gross    bool   `json:"gross,omitempty"`
}

// Snippet is the highlighted part of a vacancy from the search results.
// Both fields may contain <highlighttext> markup.
type Snippet struct {
	Requirement    string `json:"requirement,omitempty"`
	Responsibility string `json:"responsibility,omitempty"`
}

type KeySkill struct {
	Name string `json:"name,omitempty"`
}

type Vacancy struct {
	ID                string     `json:"id,omitempty"`
	Name              string     `json:"name,omitempty"`
	Area              IDName     `json:"area,omitempty"`
	Salary            *Salary    `json:"salary,omitempty"`
	Experience        IDName     `json:"experience,omitempty"`
	Schedule          IDName     `json:"schedule,omitempty"`
	Employment        IDName     `json:"employment,omitempty"`
	Employer          Employer   `json:"employer,omitempty"`
	AlternateURL      string     `json:"alternate_url,omitempty"`
	Description       string     `json:"description,omitempty"`
	KeySkills         []KeySkill `json:"key_skills,omitempty"`
	Snippet           Snippet    `json:"snippet,omitempty"`
	ProfessionalRoles []IDName   `json:"professional_roles,omitempty"`
	Archived          bool       `json:"archived,omitempty"`
	PublishedAt       string     `json:"published_at,omitempty"`
}

func (v *Vacancies) Len() int {
	return len(v.Items)
}
