package fetch

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/aoc-start/internal/puzzle"
)

// Description is the readable part of a puzzle page.
type Description struct {
	URL   string
	Title string
	Text  string
}

// DescriptionSelectors returns the selectors for puzzle text.
func DescriptionSelectors() []string {
	return []string{
		"article.day-desc",
		"main",
	}
}

// Describe downloads and extracts the description page for d.
func Describe(ctx context.Context, base string, d puzzle.Date, session string, opts *Options) (*Description, error) {
	pageURL := PuzzleURL(base, d)
	res, err := Get(ctx, pageURL, session, opts)
	if err != nil {
		return nil, err
	}

	desc, err := ExtractDescription(res.Body)
	if err != nil {
		return nil, &Error{URL: pageURL, Message: "failed to extract description", Cause: err}
	}
	desc.URL = pageURL
	return desc, nil
}

// ExtractDescription parses a puzzle page. The title comes from the first
// article heading with its "---" markers stripped. The text joins every
// description article, since part two appears as a second one once unlocked.
func ExtractDescription(html string) (*Description, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript").Remove()

	var content *goquery.Selection
	for _, selector := range DescriptionSelectors() {
		if selection := doc.Find(selector); selection.Length() > 0 {
			content = selection
			break
		}
	}
	if content == nil {
		return nil, fmt.Errorf("no puzzle description found")
	}

	heading := content.First().Find("h2").First()
	title := strings.TrimSpace(strings.Trim(strings.TrimSpace(heading.Text()), "-"))
	heading.Remove()

	var parts []string
	content.Each(func(_ int, s *goquery.Selection) {
		if text := cleanWhitespace(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	return &Description{
		Title: title,
		Text:  strings.Join(parts, "\n\n"),
	}, nil
}

// cleanWhitespace trims every line and drops blank ones.
func cleanWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	var cleaned []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
