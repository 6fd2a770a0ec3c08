package template

import (
	"encoding/xml"
	"math/rand/v2"
	"strconv"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"
)

func FuncMap() template.FuncMap {
	return template.FuncMap{
		"uuidv4": generateUUIDv4,
		"uuid":   generateUUIDv4, // Alias for uuidv4

		"now":       timeNow,
		"timestamp": timeUnix,
		"rfc3339":   timeRFC3339,

		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"trim":  strings.TrimSpace,

		"randomInt":    randomInt,
		"randomString": randomString,

		"xmlescape": xmlEscape,
	}
}

func generateUUIDv4() string {
	return uuid.New().String()
}

func timeNow() string {
	return time.Now().Format(time.RFC3339)
}

func timeUnix() string {
	return strconv.FormatInt(time.Now().Unix(), 10)
}

func timeRFC3339() string {
	return time.Now().Format(time.RFC3339)
}

// randomInt swaps parameters if min > max.
func randomInt(min, max int) int {
	if min > max {
		min, max = max, min
	}

	if min == max {
		return min
	}

	return rand.IntN(max-min+1) + min
}

func randomString(length int) string {
	if length <= 0 {
		return ""
	}

	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	buf := make([]byte, length)
	for i := range buf {
		buf[i] = charset[rand.IntN(len(charset))]
	}

	return string(buf)
}

// xmlEscape makes a variable value safe to interpolate into document
// templates as character data or an attribute value.
func xmlEscape(s string) string {
	var buf strings.Builder
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return s
	}

	return buf.String()
}

func NewTemplate(name string) *template.Template {
	return template.New(name).Option("missingkey=error").Funcs(FuncMap())
}

func Apply(tmplStr string, data any) (string, error) {
	return ApplyWithName("", tmplStr, data)
}

// ApplyWithName is useful for debugging template errors.
func ApplyWithName(name, tmplStr string, data any) (string, error) {
	if tmplStr == "" {
		return "", nil
	}

	tmpl, err := NewTemplate(name).Parse(tmplStr)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
