// Package lexical tokenizes Russian queries, strips stop-words, stems tokens
// and classifies query intent and scholarship category by keyword tables.
package lexical

import (
	"strings"

	"github.com/kljensen/snowball"

	"advisor/internal/domain"
)

// Analyzer performs tokenization, stemming, synonym expansion and
// keyword-based classification. Stateless aside from its static tables;
// safe for concurrent use.
type Analyzer struct {
	stopwords map[string]struct{}
}

// NewAnalyzer creates an analyzer with the built-in Russian language data.
func NewAnalyzer() *Analyzer {
	sw := make(map[string]struct{}, len(stopwordList))
	for _, w := range stopwordList {
		sw[w] = struct{}{}
	}
	return &Analyzer{stopwords: sw}
}

// Tokens splits text on whitespace. Callers pass normalized (lowercase) text.
func (a *Analyzer) Tokens(text string) []string {
	return strings.Fields(text)
}

// Keywords returns the tokens of text with stop-words removed. If filtering
// would empty the set, the unfiltered token list is returned instead so a
// non-empty query never yields zero keywords.
func (a *Analyzer) Keywords(text string) []string {
	tokens := a.Tokens(text)
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, stop := a.stopwords[tok]; stop {
			continue
		}
		kept = append(kept, tok)
	}
	if len(kept) == 0 {
		return tokens
	}
	return kept
}

// Stem reduces a word to its Russian snowball stem. Used for comparison
// only; the original text is never mutated. On stemmer failure the word is
// returned as-is.
func (a *Analyzer) Stem(word string) string {
	stemmed, err := snowball.Stem(word, "russian", false)
	if err != nil || stemmed == "" {
		return word
	}
	return stemmed
}

// StemSet stems every keyword of text into a set. Punctuation is trimmed
// before the stop-word lookup so «когда?» is still recognized as a stop-word.
func (a *Analyzer) StemSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range a.contentWords(text) {
		set[a.Stem(tok)] = struct{}{}
	}
	return set
}

// ExpandedStemSet stems the synonym-expanded keywords of a query. Expansion
// runs on surface forms, before stemming, because the synonym table links
// different lexemes («размер», «сумма») that share no stem.
func (a *Analyzer) ExpandedStemSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range a.ExpandSynonyms(a.contentWords(text)) {
		set[a.Stem(w)] = struct{}{}
	}
	return set
}

// contentWords tokenizes text, trims edge punctuation and drops stop-words.
func (a *Analyzer) contentWords(text string) []string {
	tokens := a.Tokens(strings.ToLower(text))
	words := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.Trim(tok, ".,!?")
		if tok == "" {
			continue
		}
		if _, stop := a.stopwords[tok]; stop {
			continue
		}
		words = append(words, tok)
	}
	return words
}

// ExpandSynonyms widens a keyword list: any keyword that is a surface form
// of a canonical term pulls in the term's full paradigm. Duplicates are kept
// out; input order is preserved.
func (a *Analyzer) ExpandSynonyms(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	add := func(w string) {
		if _, ok := seen[w]; ok {
			return
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	for _, kw := range keywords {
		add(kw)
		for _, forms := range synonyms {
			for _, form := range forms {
				if form == kw {
					for _, f := range forms {
						add(f)
					}
					break
				}
			}
		}
	}
	return out
}

// QuestionType classifies the query intent by counting keyword-phrase
// occurrences. Highest count wins; ties go to the earlier table entry; an
// all-zero score yields QuestionGeneral.
func (a *Analyzer) QuestionType(query string) domain.QuestionType {
	query = strings.ToLower(query)
	best := domain.QuestionGeneral
	bestCount := 0
	for _, entry := range questionKeywords {
		count := 0
		for _, phrase := range entry.Phrases {
			if strings.Contains(query, phrase) {
				count++
			}
		}
		if count > bestCount {
			bestCount = count
			best = entry.Type
		}
	}
	return best
}

// ScholarshipType classifies the scholarship category the same way.
// When nothing matches, the academic scholarship is assumed.
func (a *Analyzer) ScholarshipType(query string) domain.ScholarshipType {
	query = strings.ToLower(query)
	best := domain.ScholarshipAcademic
	bestCount := 0
	for _, entry := range scholarshipKeywords {
		count := 0
		for _, phrase := range entry.Phrases {
			if strings.Contains(query, phrase) {
				count++
			}
		}
		if count > bestCount {
			bestCount = count
			best = entry.Type
		}
	}
	return best
}

// ScholarshipForms returns the surface forms of a scholarship category,
// used to gate amount extraction by surrounding context.
func (a *Analyzer) ScholarshipForms(t domain.ScholarshipType) []string {
	for _, entry := range scholarshipKeywords {
		if entry.Type == t {
			return entry.Phrases
		}
	}
	return nil
}

// IsSmallTalk reports whether the query looks like a greeting or chit-chat
// rather than a document question. Single-word keywords are matched against
// whole tokens; «пока» must not fire inside «покажи». Multi-word phrases
// keep substring matching.
func (a *Analyzer) IsSmallTalk(query string) bool {
	query = strings.ToLower(query)
	tokens := make(map[string]struct{})
	for _, tok := range a.Tokens(query) {
		tokens[strings.Trim(tok, ".,!?")] = struct{}{}
	}
	for _, kw := range smallTalkKeywords {
		if strings.Contains(kw, " ") {
			if strings.Contains(query, kw) {
				return true
			}
			continue
		}
		if _, ok := tokens[kw]; ok {
			return true
		}
	}
	return false
}
