package domain

// Label is a category tag from the closed five-value vocabulary.
type Label string

const (
	LabelBlog           Label = "blog"
	LabelWorkExperience Label = "work-experience"
	LabelEducation      Label = "education"
	LabelAchievement    Label = "achievement"
	LabelSkill          Label = "skill"
)

// Labels returns the full vocabulary in a stable order.
func Labels() []Label {
	return []Label{LabelBlog, LabelWorkExperience, LabelEducation, LabelAchievement, LabelSkill}
}

// KnownLabel reports whether the value belongs to the vocabulary.
func KnownLabel(label Label) bool {
	switch label {
	case LabelBlog, LabelWorkExperience, LabelEducation, LabelAchievement, LabelSkill:
		return true
	}
	return false
}

// Candidate is untyped transformer output awaiting schema validation.
type Candidate map[string]any

// Record is a candidate that passed validation for its label. The concrete
// types below are the only implementations.
type Record interface {
	RecordLabel() Label
}

// RelatedPost references another blog entry inside a BlogPost.
type RelatedPost struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

// BlogPost is the validated shape for the blog endpoint.
type BlogPost struct {
	Slug         string        `json:"slug"`
	Title        string        `json:"title"`
	Date         string        `json:"date"`
	Excerpt      string        `json:"excerpt"`
	CoverImage   string        `json:"coverImage"`
	ReadingTime  string        `json:"readingTime"`
	Tags         []string      `json:"tags"`
	Content      string        `json:"content"`
	RelatedPosts []RelatedPost `json:"relatedPosts"`
}

func (BlogPost) RecordLabel() Label { return LabelBlog }

// WorkExperience is the validated shape for the work-experience endpoint.
type WorkExperience struct {
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Location    string   `json:"location,omitempty"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	Description []string `json:"description"`
}

func (WorkExperience) RecordLabel() Label { return LabelWorkExperience }

// Education is the validated shape for the education endpoint.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	StartYear   string `json:"startYear"`
	EndYear     string `json:"endYear"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
}

func (Education) RecordLabel() Label { return LabelEducation }

// Achievement is the validated shape for the achievement endpoint.
type Achievement struct {
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Date         string `json:"date"`
	Description  string `json:"description"`
}

func (Achievement) RecordLabel() Label { return LabelAchievement }

// SkillCategory is the validated shape for the skills endpoint; one item
// may yield several of these.
type SkillCategory struct {
	Name   string   `json:"name"`
	Skills []string `json:"skills"`
}

func (SkillCategory) RecordLabel() Label { return LabelSkill }
