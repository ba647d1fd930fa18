package model

import (
	"encoding/json"
	"testing"
)

func TestNewCandidateRecordDefaults(t *testing.T) {
	rec := NewCandidateRecord()
	if rec.Languages == nil || rec.Internships == nil || rec.Certificates == nil {
		t.Fatal("collections must default to empty, not nil")
	}
	if rec.Skills.Technical == nil || rec.Skills.Soft == nil {
		t.Fatal("skill sets must default to empty, not nil")
	}
	if rec.ATSScore != nil || rec.WordCount != nil {
		t.Fatal("scores must default to absent")
	}
	if rec.LeetCodeStats != nil || rec.CodeChefStats != nil || rec.GitHubStats != nil {
		t.Fatal("enrichment slots must default to nil")
	}

	// Every top-level field must serialize, even at defaults.
	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{
		"name", "email", "phone", "linkedin", "github", "leetcode", "codechef",
		"hackerrank", "languages", "education", "internships", "skills",
		"certificates", "role_match", "summary", "leetcode_stats",
		"codechef_stats", "github_stats", "ats_score", "word_count",
	} {
		if _, ok := m[key]; !ok {
			t.Errorf("field %q missing from serialized record", key)
		}
	}
}

func TestMergeServerPayloadFillsOmittedFields(t *testing.T) {
	data := json.RawMessage(`{"name":"Ada Lovelace","skills":{"technical":["Go"]}}`)
	rec, err := MergeServerPayload(data, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Name != "Ada Lovelace" {
		t.Errorf("name = %q", rec.Name)
	}
	if rec.Languages == nil || rec.Certificates == nil || rec.Internships == nil {
		t.Error("omitted collections must stay defined")
	}
	if rec.Skills.Technical == nil || len(rec.Skills.Technical) != 1 {
		t.Errorf("technical skills = %v", rec.Skills.Technical)
	}
	if rec.Skills.Soft == nil {
		t.Error("partial skills sub-record must not drop the soft set")
	}
	if rec.Education.Degree != "" || rec.Education.SSLCPercentage != "" {
		t.Error("omitted education keys must default to empty strings")
	}
}

func TestMergeServerPayloadScoreReconciliation(t *testing.T) {
	root := 88.0
	tests := []struct {
		name    string
		data    string
		rootATS *float64
		want    *float64
	}{
		{"root wins over nested", `{"ats_score": 42}`, &root, &root},
		{"nested when no root", `{"ats_score": 42}`, nil, ptr(42.0)},
		{"absent when neither", `{}`, nil, nil},
	}
	for _, tt := range tests {
		rec, err := MergeServerPayload(json.RawMessage(tt.data), tt.rootATS, nil)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		switch {
		case tt.want == nil && rec.ATSScore != nil:
			t.Errorf("%s: ats_score = %v, want nil", tt.name, *rec.ATSScore)
		case tt.want != nil && (rec.ATSScore == nil || *rec.ATSScore != *tt.want):
			t.Errorf("%s: ats_score = %v, want %v", tt.name, rec.ATSScore, *tt.want)
		}
	}
}

func TestMergeServerPayloadIgnoresEnrichmentSlots(t *testing.T) {
	data := json.RawMessage(`{"leetcode_stats":{"payload":{}},"github":"octocat"}`)
	rec, err := MergeServerPayload(data, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.LeetCodeStats != nil {
		t.Error("upload payload must not populate enrichment slots")
	}
	if rec.GitHub != "octocat" {
		t.Errorf("github = %q", rec.GitHub)
	}
}

func TestMergeServerPayloadBadJSON(t *testing.T) {
	if _, err := MergeServerPayload(json.RawMessage(`"not an object"`), nil, nil); err == nil {
		t.Fatal("expected error for non-object payload")
	}
}

func TestCertificateTolerantDecode(t *testing.T) {
	var certs []Certificate
	if err := json.Unmarshal([]byte(`["AWS SAA",{"name":"CKA","issuer":"CNCF"}]`), &certs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(certs) != 2 {
		t.Fatalf("got %d certificates", len(certs))
	}
	if certs[0].Name != "AWS SAA" || certs[0].Issuer != "" {
		t.Errorf("string form = %+v", certs[0])
	}
	if certs[1].Name != "CKA" || certs[1].Issuer != "CNCF" {
		t.Errorf("object form = %+v", certs[1])
	}
}

func TestStringListTolerantDecode(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{`["English","Tamil"]`, []string{"English", "Tamil"}},
		{`"English, Tamil; Hindi"`, []string{"English", "Tamil", "Hindi"}},
		{`""`, nil},
	}
	for _, tt := range tests {
		var l StringList
		if err := json.Unmarshal([]byte(tt.in), &l); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.in, err)
		}
		if len(l) != len(tt.want) {
			t.Errorf("decode %s = %v, want %v", tt.in, l, tt.want)
			continue
		}
		for i := range l {
			if l[i] != tt.want[i] {
				t.Errorf("decode %s = %v, want %v", tt.in, l, tt.want)
				break
			}
		}
	}
}

func TestHandleAndSetStats(t *testing.T) {
	rec := NewCandidateRecord()
	rec.LeetCode = "lcuser"
	if rec.Handle(PlatformLeetCode) != "lcuser" {
		t.Error("handle lookup failed")
	}
	stats := &PlatformStats{Payload: json.RawMessage(`{}`)}
	rec.SetStats(PlatformGitHub, stats)
	if rec.Stats(PlatformGitHub) != stats {
		t.Error("slot not replaced")
	}
	if rec.Stats(PlatformCodeChef) != nil {
		t.Error("unrelated slot touched")
	}
}

func ptr(f float64) *float64 { return &f }
