package goquery_test

import (
	"context"
	"testing"

	"github.com/harborline/shipdesk"
	"github.com/harborline/shipdesk/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_ReadDocument(t *testing.T) {
	t.Parallel()

	t.Run("puts blocks on their own lines", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Berth schedule</title><style>p { color: red }</style></head>
<body>
<h1>Vessel Name: Ocean   Star</h1>
<p>Berth 2</p>
<div>Operation Date: 2024-03-15<br>Shift Start: 07:00</div>
<script>var berth = "Berth 9";</script>
</body>
</html>`

		doc, err := goquery.NewReader().ReadDocument(context.Background(), "schedule.html", []byte(html))

		require.NoError(t, err)
		assert.Equal(t, "schedule.html", doc.Name)
		assert.Equal(t, shipdesk.FormatHTML, doc.Format)
		assert.Equal(t, "Vessel Name: Ocean Star\nBerth 2\nOperation Date: 2024-03-15\nShift Start: 07:00", doc.Text)
	})

	t.Run("separates table cells", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<tr><th>Automobiles:</th><th>1200</th></tr>
<tr><td>Heavy Equipment:</td><td>45</td></tr>
</table>`

		doc, err := goquery.NewReader().ReadDocument(context.Background(), "cargo.htm", []byte(html))

		require.NoError(t, err)
		assert.Equal(t, "Automobiles: 1200\nHeavy Equipment: 45", doc.Text)
	})

	t.Run("decodes the declared charset", func(t *testing.T) {
		t.Parallel()

		html := "<html><head><meta charset=\"iso-8859-1\"></head><body><p>Caf\xe9 Berth</p></body></html>"

		doc, err := goquery.NewReader().ReadDocument(context.Background(), "cafe.html", []byte(html))

		require.NoError(t, err)
		assert.Equal(t, "Café Berth", doc.Text)
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewReader().ReadDocument(context.Background(), "empty.html", nil)

		require.NoError(t, err)
		assert.Empty(t, doc.Text)
	})

	t.Run("whitespace only document", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewReader().ReadDocument(context.Background(), "blank.html", []byte(" \r\n\t"))

		require.NoError(t, err)
		assert.Empty(t, doc.Text)
		assert.Equal(t, shipdesk.FormatHTML, doc.Format)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := goquery.NewReader().ReadDocument(ctx, "empty.html", []byte("<p>x</p>"))

		assert.ErrorIs(t, err, context.Canceled)
	})
}
