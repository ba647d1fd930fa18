package model

import (
	"encoding/json"
	"strings"
)

// Platform identifies one of the external coding platforms a candidate may
// link on their resume.
type Platform string

const (
	PlatformLeetCode Platform = "leetcode"
	PlatformCodeChef Platform = "codechef"
	PlatformGitHub   Platform = "github"
)

// Platforms lists the supported platforms in the order enrichment is issued.
var Platforms = []Platform{PlatformLeetCode, PlatformCodeChef, PlatformGitHub}

// KnownPlatform reports whether p names a supported platform.
func KnownPlatform(p Platform) bool {
	switch p {
	case PlatformLeetCode, PlatformCodeChef, PlatformGitHub:
		return true
	}
	return false
}

// ActivitySample is one day of activity reported by a platform.
type ActivitySample struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// PlatformStats is one enrichment slot: the full payload the analysis backend
// returned for a platform, plus the per-day activity series when the platform
// provides one. The payload is kept opaque; each platform reports a different
// shape and the dashboard renders it as-is.
type PlatformStats struct {
	Payload  json.RawMessage  `json:"payload"`
	Activity []ActivitySample `json:"activity_graph,omitempty"`
}

// Education holds both higher-education and school-level fields, matching the
// tabbed education section of the dashboard.
type Education struct {
	Degree         string `json:"degree"`
	University     string `json:"university"`
	Year           string `json:"year"`
	GPA            string `json:"gpa"`
	SchoolName     string `json:"school_name"`
	SSLCPercentage string `json:"sslc_percentage"`
	HSCPercentage  string `json:"hsc_percentage"`
}

// Skills splits extracted skills into technical and soft sets.
type Skills struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
}

// Certificate is one certification entry. The backend sometimes returns bare
// strings instead of objects, so decoding tolerates both.
type Certificate struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
}

func (c *Certificate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		c.Name = s
		c.Issuer = ""
		return nil
	}
	type plain Certificate
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*c = Certificate(p)
	return nil
}

// StringList decodes either a JSON array of strings or a single
// comma/semicolon separated string. The backend's language extraction emits
// both shapes.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	var arr []string
	if err := json.Unmarshal(b, &arr); err == nil {
		*l = arr
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' }) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	*l = out
	return nil
}

// CandidateRecord is the canonical parsed-resume record plus enrichment
// slots. Every field has a defined default; a constructed record is never
// partially undefined regardless of what the backend omitted.
type CandidateRecord struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	LinkedIn   string `json:"linkedin"`
	GitHub     string `json:"github"`
	LeetCode   string `json:"leetcode"`
	CodeChef   string `json:"codechef"`
	HackerRank string `json:"hackerrank"`

	Languages    StringList    `json:"languages"`
	Education    Education     `json:"education"`
	Internships  []any         `json:"internships"`
	Skills       Skills        `json:"skills"`
	Certificates []Certificate `json:"certificates"`
	RoleMatch    string        `json:"role_match"`
	Summary      string        `json:"summary"`

	LeetCodeStats *PlatformStats `json:"leetcode_stats"`
	CodeChefStats *PlatformStats `json:"codechef_stats"`
	GitHubStats   *PlatformStats `json:"github_stats"`

	ATSScore  *float64 `json:"ats_score"`
	WordCount *int     `json:"word_count"`
}

// NewCandidateRecord returns an all-defaults record: empty strings, empty
// (non-nil) collections, nil enrichment slots and scores.
func NewCandidateRecord() CandidateRecord {
	return CandidateRecord{
		Languages:    StringList{},
		Internships:  []any{},
		Skills:       Skills{Technical: []string{}, Soft: []string{}},
		Certificates: []Certificate{},
	}
}

// Handle returns the raw platform handle (bare username or profile URL) for p.
func (r *CandidateRecord) Handle(p Platform) string {
	switch p {
	case PlatformLeetCode:
		return r.LeetCode
	case PlatformCodeChef:
		return r.CodeChef
	case PlatformGitHub:
		return r.GitHub
	}
	return ""
}

// Stats returns the enrichment slot for p, nil when not yet populated.
func (r *CandidateRecord) Stats(p Platform) *PlatformStats {
	switch p {
	case PlatformLeetCode:
		return r.LeetCodeStats
	case PlatformCodeChef:
		return r.CodeChefStats
	case PlatformGitHub:
		return r.GitHubStats
	}
	return nil
}

// SetStats replaces the enrichment slot for p wholesale. A new result always
// overwrites the entire previous payload for that platform.
func (r *CandidateRecord) SetStats(p Platform, stats *PlatformStats) {
	switch p {
	case PlatformLeetCode:
		r.LeetCodeStats = stats
	case PlatformCodeChef:
		r.CodeChefStats = stats
	case PlatformGitHub:
		r.GitHubStats = stats
	}
}

// MergeServerPayload builds a well-formed record from the upload response.
// It layers the server's top-level fields over defaults, merges the education
// and skills sub-records key-by-key so a partial sub-record never drops
// fields, and reconciles the score fields from their two possible locations:
// the root of the response envelope wins, the nested copy inside data is the
// fallback, otherwise the score stays null. The upstream service does not fix
// where it puts the score, so both locations must be tolerated.
func MergeServerPayload(data json.RawMessage, rootATS *float64, rootWordCount *int) (CandidateRecord, error) {
	rec := NewCandidateRecord()
	if err := json.Unmarshal(data, &rec); err != nil {
		return NewCandidateRecord(), err
	}

	// Re-default any collection the decode nil-ed out.
	if rec.Languages == nil {
		rec.Languages = StringList{}
	}
	if rec.Internships == nil {
		rec.Internships = []any{}
	}
	if rec.Skills.Technical == nil {
		rec.Skills.Technical = []string{}
	}
	if rec.Skills.Soft == nil {
		rec.Skills.Soft = []string{}
	}
	if rec.Certificates == nil {
		rec.Certificates = []Certificate{}
	}

	// Enrichment slots are never taken from the upload payload.
	rec.LeetCodeStats = nil
	rec.CodeChefStats = nil
	rec.GitHubStats = nil

	if rootATS != nil {
		rec.ATSScore = rootATS
	}
	if rootWordCount != nil {
		rec.WordCount = rootWordCount
	}
	return rec, nil
}
