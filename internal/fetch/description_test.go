package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const puzzlePage = `<!DOCTYPE html>
<html lang="en-us">
<head><title>Day 7 - Advent of Code 2023</title><script>var x = 1;</script></head>
<body>
<header><h1 class="title-global">Advent of Code</h1></header>
<main>
<article class="day-desc"><h2>--- Day 7: Camel Cards ---</h2>
<p>Your all-expenses-paid trip turns out to be a one-way, five-minute ride.</p>
<p>In Camel Cards, you get a list of hands.</p>
</article>
<p>To begin, <a href="7/input" target="_blank">get your puzzle input</a>.</p>
</main>
</body>
</html>`

func TestExtractDescription(t *testing.T) {
	desc, err := ExtractDescription(puzzlePage)
	require.NoError(t, err)

	assert.Equal(t, "Day 7: Camel Cards", desc.Title)
	assert.Contains(t, desc.Text, "one-way, five-minute ride")
	assert.Contains(t, desc.Text, "list of hands")
	assert.NotContains(t, desc.Text, "--- Day 7")
	assert.NotContains(t, desc.Text, "get your puzzle input")
	assert.NotContains(t, desc.Text, "Advent of Code")
}

func TestExtractDescription_PartTwo(t *testing.T) {
	page := `<html><body><main>
<article class="day-desc"><h2>--- Day 1: Trebuchet?! ---</h2><p>Part one text.</p></article>
<article class="day-desc"><h2 id="part2">--- Part Two ---</h2><p>Part two text.</p></article>
</main></body></html>`

	desc, err := ExtractDescription(page)
	require.NoError(t, err)

	assert.Equal(t, "Day 1: Trebuchet?!", desc.Title)
	assert.Contains(t, desc.Text, "Part one text.")
	assert.Contains(t, desc.Text, "--- Part Two ---")
	assert.Contains(t, desc.Text, "Part two text.")
}

func TestExtractDescription_NoContent(t *testing.T) {
	_, err := ExtractDescription(`<html><body><div>nothing here</div></body></html>`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no puzzle description found")
}

func TestDescribe(t *testing.T) {
	var gotPath, gotCookie string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if c, err := r.Cookie(SessionCookie); err == nil {
			gotCookie = c.Value
		}
		_, _ = w.Write([]byte(puzzlePage))
	}))
	defer server.Close()

	desc, err := Describe(context.Background(), server.URL, day7, "tok", nil)
	require.NoError(t, err)

	assert.Equal(t, "/2023/day/7", gotPath)
	assert.Equal(t, "tok", gotCookie)
	assert.Equal(t, server.URL+"/2023/day/7", desc.URL)
	assert.Equal(t, "Day 7: Camel Cards", desc.Title)
}
