// Package extractor turns ranked passages into an answer string with a
// strategy picked by question type, falling back to best-sentence matching.
package extractor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"advisor/internal/domain"
	"advisor/internal/lexical"
)

// Period tags an extracted amount with its payment cadence.
type Period string

const (
	PeriodMonthly  Period = "monthly"
	PeriodSemester Period = "semester"
)

// Strategy confidence levels. Zero confidence is reserved for "no usable
// answer" responses produced by the orchestrator.
const (
	confidenceAmount       = 0.9
	confidenceRequirements = 0.85
	confidenceProcedure    = 0.85
	confidenceDefinition   = 0.8
	confidenceDeadline     = 0.8
	confidenceFallback     = 0.6
)

// amountContextRunes is how far around a numeric match the scholarship
// category keyword must appear for the amount to qualify.
const amountContextRunes = 50

var definitionMarkers = []string{"это", "является", "представляет", "означает", "понятие"}

var requirementKeywords = []string{"требование", "условие", "критерий"}

var deadlineKeywords = []string{"срок", "дата", "период", "когда", "выплачивается", "назначается"}

var procedureKeywords = []string{"получить", "оформить", "подать", "заявление", "документы", "процедура", "порядок"}

// amountPatterns are scanned in order; when the same maximum amount is
// produced by several patterns, the earliest match decides the period. The
// explicit-cadence patterns therefore come before the bare-currency ones,
// which default to monthly.
var amountPatterns = []struct {
	re     *regexp.Regexp
	period Period
}{
	{regexp.MustCompile(`(\d+)\s*(?:руб(?:лей)?\.?|р\.|₽)\s+в\s+семестр`), PeriodSemester},
	{regexp.MustCompile(`(\d+)\s*(?:руб(?:лей)?\.?|р\.|₽)\s+в\s+месяц`), PeriodMonthly},
	{regexp.MustCompile(`(\d+)\s*(?:руб(?:лей)?\.?|р\.|₽)`), PeriodMonthly},
}

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// genitive maps scholarship categories to the form used in answer templates.
var genitive = map[domain.ScholarshipType]string{
	domain.ScholarshipAcademic: "академической",
	domain.ScholarshipEnhanced: "повышенной",
	domain.ScholarshipSocial:   "социальной",
	domain.ScholarshipSpecial:  "специальной",
}

// Extractor applies one of five extraction strategies or falls back to
// best-matching-sentence extraction.
type Extractor struct {
	analyzer *lexical.Analyzer
}

// New creates an extractor backed by the given lexical analyzer.
func New(analyzer *lexical.Analyzer) *Extractor {
	return &Extractor{analyzer: analyzer}
}

// Extract produces an answer and its confidence from ranked results. The
// results must be non-empty; every strategy that finds nothing falls through
// to the fallback, which always yields an answer when any result text exists.
func (e *Extractor) Extract(query string, qt domain.QuestionType, st domain.ScholarshipType, results []domain.SearchResult) (string, float64) {
	combined := combineResults(results)

	switch qt {
	case domain.QuestionDefinition:
		if answer, ok := e.extractDefinition(combined); ok {
			return answer, confidenceDefinition
		}
	case domain.QuestionAmount:
		if amount, period, ok := e.extractAmount(combined, st); ok {
			answer := fmt.Sprintf("Размер %s стипендии составляет %d рублей (%s)",
				genitive[st], amount, periodLabel(period))
			return answer, confidenceAmount
		}
	case domain.QuestionRequirements:
		if found, ok := e.sentencesContaining(combined, requirementKeywords); ok {
			answer := fmt.Sprintf("Требования для получения %s стипендии:\n%s",
				genitive[st], strings.Join(found, "\n"))
			return answer, confidenceRequirements
		}
	case domain.QuestionDeadline:
		if found, ok := e.sentencesContaining(combined, deadlineKeywords); ok {
			return strings.Join(found, "\n"), confidenceDeadline
		}
	case domain.QuestionProcedure:
		if found, ok := e.sentencesContaining(combined, procedureKeywords); ok {
			return strings.Join(found, "\n"), confidenceProcedure
		}
	}

	return e.extractBestSentences(query, results), confidenceFallback
}

func combineResults(results []domain.SearchResult) string {
	texts := make([]string, 0, len(results))
	for _, r := range results {
		texts = append(texts, r.Text)
	}
	return strings.Join(texts, "\n")
}

func periodLabel(p Period) string {
	if p == PeriodSemester {
		return "в семестр"
	}
	return "в месяц"
}

// splitSentences segments text on sentence punctuation, trimming and
// dropping empty segments.
func splitSentences(text string) []string {
	parts := sentenceSplitRe.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (e *Extractor) extractDefinition(text string) (string, bool) {
	var found []string
	for _, sentence := range splitSentences(text) {
		lower := strings.ToLower(sentence)
		for _, marker := range definitionMarkers {
			if strings.Contains(lower, marker) {
				found = append(found, sentence)
				break
			}
		}
	}
	if len(found) == 0 {
		return "", false
	}
	return strings.Join(found, " "), true
}

// extractAmount scans every pattern and every match: the largest qualifying
// amount wins, so stopping at the first match would be wrong. A match
// qualifies only when a scholarship category surface form appears within
// amountContextRunes runes around it.
func (e *Extractor) extractAmount(text string, st domain.ScholarshipType) (int, Period, bool) {
	lower := strings.ToLower(text)
	runes := []rune(lower)
	forms := e.analyzer.ScholarshipForms(st)

	bestAmount := -1
	bestPeriod := PeriodMonthly
	for _, pat := range amountPatterns {
		for _, idx := range pat.re.FindAllStringSubmatchIndex(lower, -1) {
			amount, err := strconv.Atoi(lower[idx[2]:idx[3]])
			if err != nil {
				continue
			}
			// regexp indexes are byte offsets; context is measured in runes
			start := utf8.RuneCountInString(lower[:idx[0]]) - amountContextRunes
			if start < 0 {
				start = 0
			}
			end := utf8.RuneCountInString(lower[:idx[1]]) + amountContextRunes
			if end > len(runes) {
				end = len(runes)
			}
			context := string(runes[start:end])
			if !containsAny(context, forms) {
				continue
			}
			if amount > bestAmount {
				bestAmount = amount
				bestPeriod = pat.period
			}
		}
	}
	if bestAmount < 0 {
		return 0, "", false
	}
	return bestAmount, bestPeriod, true
}

func (e *Extractor) sentencesContaining(text string, keywords []string) ([]string, bool) {
	var found []string
	for _, sentence := range splitSentences(text) {
		if containsAny(strings.ToLower(sentence), keywords) {
			found = append(found, sentence)
		}
	}
	return found, len(found) > 0
}

// extractBestSentences scores every candidate sentence by stemmed token
// overlap with the query and keeps the sentences achieving the global
// maximum. The query side is synonym-expanded first, so «размер» still
// matches a sentence that says «сумма». When nothing overlaps, the top
// result's raw text is truncated.
func (e *Extractor) extractBestSentences(query string, results []domain.SearchResult) string {
	queryStems := e.analyzer.ExpandedStemSet(query)

	var best []string
	maxScore := 0.0
	for _, result := range results {
		for _, sentence := range splitSentences(result.Text) {
			score := e.overlapScore(queryStems, sentence)
			if score > maxScore {
				maxScore = score
				best = []string{sentence}
			} else if score == maxScore && score > 0 {
				best = append(best, sentence)
			}
		}
	}

	if len(best) == 0 {
		return truncate(results[0].Text, 500)
	}
	if len(best) > 3 {
		best = best[:3]
	}
	return strings.Join(best, " ")
}

func (e *Extractor) overlapScore(queryStems map[string]struct{}, sentence string) float64 {
	if len(queryStems) == 0 {
		return 0
	}
	matched := 0
	for stem := range e.analyzer.StemSet(sentence) {
		if _, ok := queryStems[stem]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(queryStems))
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func truncate(text string, maxRunes int) string {
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return string(runes[:maxRunes]) + "..."
}
