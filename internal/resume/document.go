package resume

// Document is the structured resume produced by the parsing service.
// Every field is optional upstream; Normalize fills absent collections so
// callers never see nil slices.
type Document struct {
	Candidate     Candidate        `json:"candidate"`
	Education     []EducationItem  `json:"education"`
	Experience    []ExperienceItem `json:"experience"`
	Skills        []string         `json:"skills"`
	Profile       string           `json:"profile"`
	SkillsProfile string           `json:"skills_profile"`
	Achievements  []string         `json:"achievements"`
	RawText       string           `json:"raw_text"`
}

// Candidate identifies the person the resume belongs to.
type Candidate struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	PhoneOther  string `json:"phone_other"`
	GithubURL   string `json:"github_url"`
	LinkedinURL string `json:"linkedin_url"`
}

// EducationItem is one education entry.
type EducationItem struct {
	GraduationDate string `json:"graduation_date"`
	Course         string `json:"course"`
	Result         string `json:"result"`
	Institution    string `json:"institution"`
}

// ExperienceItem is one position held.
type ExperienceItem struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

// Normalize replaces nil slices with empty ones and drops list entries the
// parser sent as null.
func (d *Document) Normalize() {
	d.Education = dropZero(d.Education)
	d.Experience = dropZero(d.Experience)
	if d.Skills == nil {
		d.Skills = []string{}
	}
	if d.Achievements == nil {
		d.Achievements = []string{}
	}
}

func dropZero[T comparable](items []T) []T {
	var zero T
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item != zero {
			out = append(out, item)
		}
	}
	return out
}
