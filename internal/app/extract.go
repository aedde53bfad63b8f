package app

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/felixbrock/gradeloop/internal/domain"
)

const number = `(\d+(?:\.\d+)?)`

// scoresBlockExp locates the scores block: a header synonym followed by a
// body bounded by a total header or end of text.
var scoresBlockExp = regexp.MustCompile(`(?is)(?:SCORES?|RUBRIC SCORES?|EVALUATION)\s*:?\s*\n(.*?)(?:WEIGHTED TOTAL|OVERALL|TOTAL|$)`)

// totalExps scan the whole reply for the overall score. Ordered, first
// in-range match wins.
var totalExps = []*regexp.Regexp{
	regexp.MustCompile(`(?i)WEIGHTED TOTAL\s*:?\s*` + number),
	regexp.MustCompile(`(?i)OVERALL SCORE\s*:?\s*` + number),
	regexp.MustCompile(`(?i)TOTAL SCORE\s*:?\s*` + number),
	regexp.MustCompile(`(?i)FINAL SCORE\s*:?\s*` + number),
	regexp.MustCompile(`(?i)WEIGHTED\s*:?\s*` + number),
}

// shapes are the accepted surface forms of one category score line:
// "Name: 85", "Name - 85", "Name = 85", "85: Name".
var shapes = []string{
	`%s\s*:?\s*` + number,
	`%s\s*-\s*` + number,
	`%s\s*=\s*` + number,
	number + `\s*:?\s*%s`,
}

type scoreRule struct {
	category string
	exp      *regexp.Regexp
}

// Extractor recovers per-category scores and a weighted total from
// free-text model output. Rules are an ordered (variant, shape) table per
// category, evaluated first-match-wins; matching is unanchored and
// case-insensitive, so a category name embedded in longer prose can match
// spuriously. That leniency is accepted behavior.
type Extractor struct {
	rubric domain.Rubric
	rules  []scoreRule
}

func NewExtractor(rubric domain.Rubric) Extractor {
	var rules []scoreRule
	for _, category := range rubric.Categories {
		for _, variant := range nameVariants(category.Name) {
			for _, shape := range shapes {
				exp := regexp.MustCompile(`(?i)` + fmt.Sprintf(shape, regexp.QuoteMeta(variant)))
				rules = append(rules, scoreRule{category: category.Name, exp: exp})
			}
		}
	}
	return Extractor{rubric: rubric, rules: rules}
}

func nameVariants(name string) []string {
	return []string{
		name,
		strings.ToLower(name),
		strings.ReplaceAll(name, " & ", " and "),
		strings.ReplaceAll(name, " & ", " "),
	}
}

// Extract is best-effort and never fails: a reply with no recognizable
// scores yields all-zero categories and a zero total.
func (e Extractor) Extract(text string) domain.Extraction {
	body := text
	if m := scoresBlockExp.FindStringSubmatch(text); m != nil {
		body = m[1]
	}

	scores := map[string]float64{}
	for i := 0; i < len(e.rules); i++ {
		rule := e.rules[i]
		if _, ok := scores[rule.category]; ok {
			continue
		}
		if val, ok := matchScore(rule.exp, body); ok {
			scores[rule.category] = val
		}
	}
	found := len(scores)

	var total float64
	var reported bool
	for i := 0; i < len(totalExps); i++ {
		if val, ok := matchScore(totalExps[i], text); ok {
			total = val
			reported = true
			break
		}
	}

	if total == 0 || found < len(e.rubric.Categories) {
		var calculated float64
		for i := 0; i < len(e.rubric.Categories); i++ {
			category := e.rubric.Categories[i]
			calculated += scores[category.Name] * category.Weight
		}
		if calculated > 0 {
			total = calculated
			reported = false
		}
	}

	names := e.rubric.Names()
	for i := 0; i < len(names); i++ {
		if _, ok := scores[names[i]]; !ok {
			scores[names[i]] = 0
		}
	}

	return domain.Extraction{
		Scores:          scores,
		Overall:         total,
		FoundCategories: found,
		TotalReported:   reported,
	}
}

// matchScore rejects values outside [0,100] as if no match occurred, so
// later rules keep getting a chance.
func matchScore(exp *regexp.Regexp, text string) (float64, bool) {
	m := exp.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}

	val, err := strconv.ParseFloat(m[1], 64)
	if err != nil || val < 0 || val > 100 {
		return 0, false
	}

	return val, true
}
