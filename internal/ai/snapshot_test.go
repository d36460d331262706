package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const textBoxHTML = `<!DOCTYPE html>
<html>
<head><title>Text Box</title><style>body { color: red; }</style></head>
<body>
<h1>Text Box</h1>
<form>
  <input id="userName" name="userName" type="text" placeholder="Full Name">
  <input id="userEmail" name="userEmail" type="text" placeholder="name@example.com">
  <textarea name="currentAddress" placeholder="Current Address"></textarea>
  <textarea placeholder="no stable handle"></textarea>
  <button id="submit" type="button">Submit</button>
</form>
<script>console.log("noise");</script>
</body>
</html>`

func TestBuildSnapshot(t *testing.T) {
	snapshot, err := BuildSnapshot("http://localhost:3344/text-box", textBoxHTML)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3344/text-box", snapshot.URL)
	assert.Contains(t, snapshot.Markdown, "Text Box")
	assert.NotContains(t, snapshot.Markdown, "console.log", "scripts must be stripped")
	assert.NotContains(t, snapshot.Markdown, "color: red", "styles must be stripped")

	selectors := make([]string, 0, len(snapshot.Elements))
	for _, el := range snapshot.Elements {
		selectors = append(selectors, el.Selector)
	}
	assert.Contains(t, selectors, "#userName")
	assert.Contains(t, selectors, "#submit")
	assert.Contains(t, selectors, `textarea[name="currentAddress"]`)
	// The textarea without id or name has no stable handle
	assert.Len(t, snapshot.Elements, 4)
}

func TestBuildSnapshotElementDetails(t *testing.T) {
	snapshot, err := BuildSnapshot("http://localhost/", textBoxHTML)
	require.NoError(t, err)

	bySelector := map[string]ElementRef{}
	for _, el := range snapshot.Elements {
		bySelector[el.Selector] = el
	}

	userName := bySelector["#userName"]
	assert.Equal(t, "input", userName.Tag)
	assert.Equal(t, "text", userName.Type)
	assert.Equal(t, "Full Name", userName.Label, "placeholder becomes the label for empty inputs")

	submit := bySelector["#submit"]
	assert.Equal(t, "button", submit.Tag)
	assert.Equal(t, "Submit", submit.Label)
}

func TestBuildSnapshotTruncatesLongContent(t *testing.T) {
	long := "<html><body><p>" + strings.Repeat("lorem ipsum ", 1500) + "</p></body></html>"
	snapshot, err := BuildSnapshot("http://localhost/", long)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(snapshot.Markdown), maxMarkdownLen+len("\n...(truncated)"))
	assert.True(t, strings.HasSuffix(snapshot.Markdown, "...(truncated)"))
}

func TestDescribe(t *testing.T) {
	snapshot := &PageSnapshot{
		URL:      "http://localhost/buttons",
		Markdown: "# Buttons",
		Elements: []ElementRef{
			{Selector: "#clickBtn", Tag: "button", Label: "Click Me"},
			{Selector: "#userName", Tag: "input", Type: "text", Label: "Full Name"},
		},
	}

	text := snapshot.Describe()
	assert.Contains(t, text, "Current page URL: http://localhost/buttons")
	assert.Contains(t, text, "- #clickBtn | button | Click Me")
	assert.Contains(t, text, "- #userName | input[type=text] | Full Name")
	assert.Contains(t, text, "# Buttons")
}
