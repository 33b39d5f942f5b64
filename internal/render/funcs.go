package render

import (
	"html/template"
	"strings"
	"time"

	"github.com/iliyamo/fyyur/internal/forms"
)

// Stored show times as they appear in view data.
const viewTimeLayout = "2006-01-02 15:04:05"

var dateFormats = map[string]string{
	"full":   "Monday January, 2, 2006 at 3:04PM",
	"medium": "Mon 01, 02, 2006 3:04PM",
}

var funcs = template.FuncMap{
	"datetime":     datetime,
	"deref":        deref,
	"join":         strings.Join,
	"hasPrefix":    strings.HasPrefix,
	"contains":     contains,
	"genreChoices": func() []string { return forms.GenreChoices },
	"stateChoices": func() []string { return forms.StateChoices },
}

// datetime formats a show time. value may be a time.Time or a string in
// the view layout; unparsable strings are returned unchanged.
func datetime(value interface{}, format ...string) string {
	var t time.Time
	switch v := value.(type) {
	case time.Time:
		t = v
	case string:
		parsed, err := time.Parse(viewTimeLayout, v)
		if err != nil {
			return v
		}
		t = parsed
	default:
		return ""
	}
	layout := dateFormats["medium"]
	if len(format) > 0 {
		if l, ok := dateFormats[format[0]]; ok {
			layout = l
		}
	}
	return t.Format(layout)
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
