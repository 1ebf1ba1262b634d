package analysis

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// looseFloat tolerates confidence values encoded as JSON numbers or
// numeric strings; anything else decodes to 0 without error.
type looseFloat float64

func (f *looseFloat) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = looseFloat(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*f = looseFloat(n)
			return nil
		}
	}
	*f = 0
	return nil
}

type rawFinding struct {
	Type       string     `json:"type"`
	Confidence looseFloat `json:"confidence"`
	Slides     []int      `json:"slides"`
	Issue      string     `json:"issue"`
	Evidence   []string   `json:"evidence"`
}

type rawReply struct {
	Inconsistencies []rawFinding `json:"inconsistencies"`
}

// ParseFindings turns a raw model reply into Findings. A leading fenced
// code block (with or without a language tag) is stripped before JSON
// parsing; absent fields take their zero defaults, with the type
// defaulting to Unknown. Malformed JSON returns an error for the caller
// to log; it never panics.
func ParseFindings(raw string) ([]Finding, error) {
	text := stripFences(raw)

	var reply rawReply
	if err := json.Unmarshal([]byte(text), &reply); err != nil {
		return nil, fmt.Errorf("reply is not valid JSON: %w", err)
	}

	findings := make([]Finding, 0, len(reply.Inconsistencies))
	for _, r := range reply.Inconsistencies {
		t := FindingType(r.Type)
		if r.Type == "" {
			t = TypeUnknown
		}
		slides := r.Slides
		if slides == nil {
			slides = []int{}
		}
		evidence := r.Evidence
		if evidence == nil {
			evidence = []string{}
		}
		findings = append(findings, Finding{
			Type:       t,
			Confidence: float64(r.Confidence),
			Slides:     slides,
			Issue:      r.Issue,
			Evidence:   evidence,
		})
	}
	return findings, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return s
	}
	end := len(lines)
	if strings.TrimSpace(lines[end-1]) == "```" {
		end--
	}
	return strings.TrimSpace(strings.Join(lines[1:end], "\n"))
}

// truncate shortens raw model output for warning logs.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
