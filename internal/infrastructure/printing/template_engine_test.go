package printing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		input    any
		expected string
	}{
		{decimal.NewFromInt(58500), "KES 58,500.00"},
		{decimal.RequireFromString("1234567.891"), "KES 1,234,567.89"},
		{0, "KES 0.00"},
		{"-1500.5", "KES -1,500.50"},
		{(*decimal.Decimal)(nil), "KES 0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatMoney(tt.input))
		})
	}
}

func TestFormatHelpers(t *testing.T) {
	date := time.Date(2025, 3, 1, 14, 30, 0, 0, time.UTC)

	assert.Equal(t, "01 Mar 2025", formatDate(date))
	assert.Equal(t, "01 Mar 2025", formatDate(&date))
	assert.Equal(t, "", formatDate((*time.Time)(nil)))
	assert.Equal(t, "01 Mar 2025 14:30", formatDateTime(date))
	assert.Equal(t, "12,000", formatNumber(12000))
	assert.Equal(t, "16%", formatPercent(decimal.RequireFromString("0.16")))
	assert.Equal(t, "Non Ai", statusText("non-ai"))
	assert.Equal(t, "Sd Card", statusText("sd_card"))
	assert.Equal(t, "fallback", defaultFunc("", "fallback"))
	assert.Equal(t, "value", defaultFunc("value", "fallback"))
}

func TestTemplateEngine_RenderString(t *testing.T) {
	engine := NewTemplateEngine()

	t.Run("renders with helpers", func(t *testing.T) {
		out, err := engine.RenderString("t", `{{.Name}}: {{formatMoney .Amount}}`, map[string]any{
			"Name":   "MDVR",
			"Amount": decimal.NewFromInt(45000),
		})
		require.NoError(t, err)
		assert.Equal(t, "MDVR: KES 45,000.00", out)
	})

	t.Run("escapes HTML", func(t *testing.T) {
		out, err := engine.RenderString("t", `<p>{{.}}</p>`, "<script>")
		require.NoError(t, err)
		assert.Equal(t, "<p>&lt;script&gt;</p>", out)
	})

	t.Run("empty template", func(t *testing.T) {
		_, err := engine.RenderString("t", "  ", nil)
		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
	})

	t.Run("parse error", func(t *testing.T) {
		_, err := engine.RenderString("t", "{{.Broken", nil)
		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
	})

	t.Run("custom funcs", func(t *testing.T) {
		custom := NewTemplateEngine(WithFuncs(map[string]any{"shout": func(s string) string { return s + "!" }}))
		out, err := custom.RenderString("t", `{{shout "karibu"}}`, nil)
		require.NoError(t, err)
		assert.Equal(t, "karibu!", out)
		assert.Contains(t, custom.GetFuncMap(), "formatMoney")
	})
}
