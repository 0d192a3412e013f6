package templates

import (
	"net/url"
	"strings"

	postdeski18n "github.com/louisbranch/postdesk/internal/services/postdesk/i18n"
)

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Tag    string
	Label  string
	Active bool
}

// LanguageOptions lists the supported languages with the active one marked.
func LanguageOptions(page PageContext, loc Localizer) []LanguageOption {
	tags := postdeski18n.Supported()
	options := make([]LanguageOption, 0, len(tags))
	for _, tag := range tags {
		value := tag.String()
		options = append(options, LanguageOption{
			Tag:    value,
			Label:  T(loc, "language."+value),
			Active: value == page.Lang,
		})
	}
	return options
}

// LanguageURL returns the current URL with the language param updated.
func LanguageURL(page PageContext, tag string) string {
	values, err := url.ParseQuery(strings.TrimPrefix(page.CurrentQuery, "?"))
	if err != nil {
		values = url.Values{}
	}
	values.Set(postdeski18n.LangParam, tag)
	path := page.CurrentPath
	if path == "" {
		path = "/"
	}
	return path + "?" + values.Encode()
}
