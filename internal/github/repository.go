package github

import "time"

// Repository is a snapshot of one upstream repository record.
type Repository struct {
	Name          string    `json:"name"`
	HTMLURL       string    `json:"html_url"`
	Description   string    `json:"description"`
	Stars         int       `json:"stargazers_count"`
	Language      string    `json:"language"`
	Fork          bool      `json:"fork"`
	Archived      bool      `json:"archived"`
	UpdatedAt     time.Time `json:"updated_at"`
	DefaultBranch string    `json:"default_branch"`
}

// repoDTO mirrors the REST payload. Any field may be absent or null.
type repoDTO struct {
	Name          *string    `json:"name"`
	HTMLURL       *string    `json:"html_url"`
	Description   *string    `json:"description"`
	Stars         *int       `json:"stargazers_count"`
	Language      *string    `json:"language"`
	Fork          *bool      `json:"fork"`
	Archived      *bool      `json:"archived"`
	UpdatedAt     *time.Time `json:"updated_at"`
	DefaultBranch *string    `json:"default_branch"`
}

func (d repoDTO) toRepository() Repository {
	r := Repository{
		Name:          deref(d.Name),
		HTMLURL:       deref(d.HTMLURL),
		Description:   deref(d.Description),
		Stars:         deref(d.Stars),
		Language:      deref(d.Language),
		Fork:          deref(d.Fork),
		Archived:      deref(d.Archived),
		DefaultBranch: deref(d.DefaultBranch),
	}
	if d.UpdatedAt != nil {
		r.UpdatedAt = *d.UpdatedAt
	}
	return r
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
