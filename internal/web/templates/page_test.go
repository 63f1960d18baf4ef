package templates

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/pricelist/internal/core"
)

func TestPage(t *testing.T) {
	data := PageData{
		Query: `"><script>`,
		Total: 3,
		Products: []core.Product{
			{Name: "Apple", Price: 100, Weight: 2, SourceFile: "price.csv", UnitPrice: 50},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Page(data).Render(context.Background(), &buf))
	out := buf.String()

	assert.Contains(t, out, "<title>Позиции продуктов</title>")
	assert.Contains(t, out, `value="&#34;&gt;&lt;script&gt;" autofocus>`)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, `<form method="post" action="/reload">`)
	assert.Contains(t, out, `<a href="/export.xlsx">XLSX</a>`)
	assert.Contains(t, out, "<p>1 / 3</p>")
	assert.Contains(t, out, "<td>Apple</td>")
}

func TestErrorAlert(t *testing.T) {
	t.Run("with action", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, ErrorAlert("Boom", "Try again", "ERR000").Render(context.Background(), &buf))
		assert.Equal(t, `<div role="alert"><p><strong>Boom</strong></p><p>Try again</p><p><small>Code: ERR000</small></p></div>`, buf.String())
	})

	t.Run("without action", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, ErrorAlert("A & B", "", "VAL007").Render(context.Background(), &buf))
		assert.Equal(t, `<div role="alert"><p><strong>A &amp; B</strong></p><p><small>Code: VAL007</small></p></div>`, buf.String())
	})
}
