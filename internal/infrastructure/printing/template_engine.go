package printing

import (
	"bytes"
	"fmt"
	"html/template"
	"maps"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// TemplateEngine renders html/templates with storefront formatting helpers.
type TemplateEngine struct {
	funcMap template.FuncMap
}

// TemplateEngineOption configures the template engine
type TemplateEngineOption func(*TemplateEngine)

// WithFuncs adds or overrides template functions
func WithFuncs(funcs template.FuncMap) TemplateEngineOption {
	return func(e *TemplateEngine) {
		maps.Copy(e.funcMap, funcs)
	}
}

// NewTemplateEngine creates a template engine with the default helpers
func NewTemplateEngine(opts ...TemplateEngineOption) *TemplateEngine {
	e := &TemplateEngine{}
	e.funcMap = template.FuncMap{
		"formatMoney":    formatMoney,
		"formatMoneyRaw": formatMoneyRaw,
		"formatDate":     formatDate,
		"formatDateTime": formatDateTime,
		"formatNumber":   formatNumber,
		"formatPercent":  formatPercent,
		"title":          titleCase,
		"upper":          strings.ToUpper,
		"statusText":     statusText,
		"add":            add,
		"mul":            mul,
		"default":        defaultFunc,
		"notEmpty":       notEmpty,
		"now":            time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// RenderString parses content as a template called name and executes it
func (e *TemplateEngine) RenderString(name, content string, data any) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", NewRenderError(ErrCodeInvalidHTML, "template content is empty", nil)
	}

	tmpl, err := template.New(name).Funcs(e.funcMap).Parse(content)
	if err != nil {
		return "", NewRenderError(ErrCodeInvalidHTML, "failed to parse template", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", NewRenderError(ErrCodeRenderFailed, "failed to execute template", err)
	}
	return buf.String(), nil
}

// GetFuncMap returns a copy of the template function map
func (e *TemplateEngine) GetFuncMap() template.FuncMap {
	funcMap := make(template.FuncMap, len(e.funcMap))
	maps.Copy(funcMap, e.funcMap)
	return funcMap
}

var printer = message.NewPrinter(language.English)

// formatMoney formats an amount in shillings: 58500 -> "KES 58,500.00"
func formatMoney(v any) string {
	return "KES " + formatMoneyRaw(v)
}

// formatMoneyRaw groups thousands and keeps two decimals
func formatMoneyRaw(v any) string {
	d := toDecimal(v)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	parts := strings.Split(d.StringFixed(2), ".")
	intPart, decPart := parts[0], parts[1]

	var grouped strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteRune(',')
		}
		grouped.WriteRune(c)
	}
	return sign + grouped.String() + "." + decPart
}

// formatNumber prints an integer with locale grouping: 12000 -> "12,000"
func formatNumber(v any) string {
	return printer.Sprint(number.Decimal(toDecimal(v).IntPart()))
}

// formatPercent: 0.16 -> "16%"
func formatPercent(v any) string {
	return toDecimal(v).Mul(decimal.NewFromInt(100)).Round(2).String() + "%"
}

// formatDate: "15 Jan 2025"
func formatDate(v any) string {
	t := toTime(v)
	if t.IsZero() {
		return ""
	}
	return t.Format("02 Jan 2006")
}

func formatDateTime(v any) string {
	t := toTime(v)
	if t.IsZero() {
		return ""
	}
	return t.Format("02 Jan 2006 15:04")
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// statusText turns status codes like "non-ai" or "sd_card" into labels
func statusText(status any) string {
	s := strings.NewReplacer("_", " ", "-", " ").Replace(toString(status))
	return cases.Title(language.English).String(s)
}

func add(a, b any) decimal.Decimal {
	return toDecimal(a).Add(toDecimal(b))
}

func mul(a, b any) decimal.Decimal {
	return toDecimal(a).Mul(toDecimal(b))
}

func defaultFunc(val, def any) any {
	if !notEmpty(val) {
		return def
	}
	return val
}

func notEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(val) != ""
	case *decimal.Decimal:
		return val != nil
	case *time.Time:
		return val != nil && !val.IsZero()
	default:
		return true
	}
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func toDecimal(v any) decimal.Decimal {
	switch val := v.(type) {
	case decimal.Decimal:
		return val
	case *decimal.Decimal:
		if val == nil {
			return decimal.Zero
		}
		return *val
	case int:
		return decimal.NewFromInt(int64(val))
	case int64:
		return decimal.NewFromInt(val)
	case float64:
		return decimal.NewFromFloat(val)
	case string:
		d, err := decimal.NewFromString(val)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

func toTime(v any) time.Time {
	switch val := v.(type) {
	case time.Time:
		return val
	case *time.Time:
		if val == nil {
			return time.Time{}
		}
		return *val
	default:
		return time.Time{}
	}
}
