// Package loader reads scholarship policy files (.txt, .html, .pdf) and
// splits them into paragraph-sized documents for embedding. Retrieval
// granularity is the paragraph, not the whole file.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/ledongthuc/pdf"
	"golang.org/x/net/html"

	"advisor/internal/domain"
	"advisor/internal/logger"
)

var paragraphRe = regexp.MustCompile(`\n\s*\n`)

// Loader turns on-disk sources into a batch of documents. One unreadable
// file is logged and skipped; an empty overall batch is an error so a
// rebuild never replaces a serving index with nothing.
type Loader struct{}

// New creates a loader.
func New() *Loader { return &Loader{} }

// Load reads every path (globs allowed), parses supported formats and
// returns one document per non-empty paragraph.
func (l *Loader) Load(paths []string) ([]domain.Document, error) {
	var docs []domain.Document
	for _, p := range paths {
		matches, _ := filepath.Glob(p)
		if matches == nil {
			matches = []string{p}
		}
		for _, m := range matches {
			text, err := l.readFile(m)
			if err != nil {
				logger.Error("skipping %s: %v", m, err)
				continue
			}
			for i, para := range splitParagraphs(text) {
				docs = append(docs, domain.Document{
					ID:   uuid.NewString(),
					Text: preprocess(para),
					Metadata: map[string]any{
						"source":    m,
						"paragraph": i,
					},
				})
			}
		}
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: no readable documents in %v", domain.ErrEmptyCorpus, paths)
	}
	logger.Info("loaded %d paragraphs from %d path(s)", len(docs), len(paths))
	return docs, nil
}

func (l *Loader) readFile(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".text":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	case ".html", ".htm":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return extractHTMLText(string(data)), nil
	case ".pdf":
		return extractPDFText(path)
	default:
		return "", fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

// extractHTMLText walks the token stream collecting visible text; script
// and style contents are dropped. Block boundaries become paragraph breaks.
func extractHTMLText(src string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(src))
	var sb strings.Builder
	skipDepth := 0
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return sb.String()
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "script", "style":
				skipDepth++
			case "p", "div", "br", "li", "h1", "h2", "h3", "h4", "tr":
				sb.WriteString("\n\n")
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if tag := string(name); tag == "script" || tag == "style" {
				if skipDepth > 0 {
					skipDepth--
				}
			}
		case html.TextToken:
			if skipDepth == 0 {
				sb.WriteString(string(tokenizer.Text()))
				sb.WriteString(" ")
			}
		}
	}
}

func extractPDFText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	var sb strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.Debug("pdf page %d of %s: %v", pageNum, path, err)
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}
	return sb.String(), nil
}

func splitParagraphs(text string) []string {
	parts := paragraphRe.Split(text, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// preprocess collapses whitespace and lowercases; matching the query-side
// normalization keeps lexical overlap scoring case-insensitive.
func preprocess(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}
