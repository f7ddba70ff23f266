package http

import (
	"html/template"
	"strings"

	"splitter/internal/core"
	"splitter/internal/format"
)

// templateFuncs are available to every embedded template.
var templateFuncs = template.FuncMap{
	"date":     format.Date,
	"currency": format.Currency,
	"title":    titleCase,
	"isoDate":  func(d core.Date) string { return d.String() },
}

// titleCase upper-cases the first letter of a category for display.
func titleCase(s any) string {
	var str string
	switch v := s.(type) {
	case core.Category:
		str = v.String()
	case string:
		str = v
	}
	if str == "" {
		return ""
	}
	return strings.ToUpper(str[:1]) + str[1:]
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
