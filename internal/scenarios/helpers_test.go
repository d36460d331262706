package scenarios

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tableHTML = `
<table id="recordsTable">
  <tbody>
    <tr><td>Riley</td><td>Chen</td><td>34</td></tr>
    <tr><td>Alden</td><td>Cantrell</td><td>45</td></tr>
    <tr><td></td><td></td><td></td></tr>
  </tbody>
</table>`

func TestTableRows(t *testing.T) {
	rows, err := TableRows(tableHTML, "#recordsTable tbody tr")
	require.NoError(t, err)

	require.Len(t, rows, 2, "empty rows should be dropped")
	assert.Equal(t, "Riley Chen 34", rows[0])
	assert.Equal(t, "Alden Cantrell 45", rows[1])
}

func TestTableRowsNoMatch(t *testing.T) {
	rows, err := TableRows("<div>no table here</div>", "#recordsTable tbody tr")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestButtonLabels(t *testing.T) {
	html := `
<div>
  <button id="doubleClickBtn">Double Click Me</button>
  <button id="rightClickBtn">Right Click Me</button>
  <button id="clickBtn">Click Me</button>
  <button></button>
</div>`

	labels, err := ButtonLabels(html)
	require.NoError(t, err)
	assert.Equal(t, []string{"Double Click Me", "Right Click Me", "Click Me"}, labels)
}
