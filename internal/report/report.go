// Package report renders the downloadable plain-text analysis report.
package report

import (
	"fmt"
	"strings"

	"resume-insight/internal/model"
)

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func listOrNA(items []string) string {
	if len(items) == 0 {
		return "N/A"
	}
	return strings.Join(items, ", ")
}

// Filename derives the download filename from the candidate name.
func Filename(rec model.CandidateRecord) string {
	name := rec.Name
	if name == "" {
		name = "resume_analysis"
	}
	return strings.Join(strings.Fields(name), "_") + "_report.txt"
}

// Render produces the report for rec.
func Render(rec model.CandidateRecord) string {
	ats := "N/A"
	if rec.ATSScore != nil {
		ats = fmt.Sprintf("%g%%", *rec.ATSScore)
	}
	wordCount := "N/A"
	if rec.WordCount != nil {
		wordCount = fmt.Sprintf("%d", *rec.WordCount)
	}

	return fmt.Sprintf(`Resume Analysis Report
===========================
Name: %s
Email: %s
Phone: %s
LinkedIn: %s
GitHub: %s
LeetCode: %s
CodeChef: %s
HackerRank: %s

--- Education ---
Degree: %s
University: %s
Year: %s
GPA: %s

--- Skills ---
Technical: %s
Soft: %s

--- Summary ---
Word Count: %s
Role Match: %s
ATS Score: %s
Summary: %s
`,
		orNA(rec.Name), orNA(rec.Email), orNA(rec.Phone), orNA(rec.LinkedIn),
		orNA(rec.GitHub), orNA(rec.LeetCode), orNA(rec.CodeChef), orNA(rec.HackerRank),
		orNA(rec.Education.Degree), orNA(rec.Education.University),
		orNA(rec.Education.Year), orNA(rec.Education.GPA),
		listOrNA(rec.Skills.Technical), listOrNA(rec.Skills.Soft),
		wordCount, orNA(rec.RoleMatch), ats, orNA(rec.Summary),
	)
}
