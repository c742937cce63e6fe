package domain

import (
	"golang.org/x/text/language"

	dErrors "anamnesis/pkg/domain-errors"
)

// Locale is a canonical BCP 47 tag such as "pt-BR". Question texts and option
// labels are fetched per locale; answers are locale independent.
type Locale string

// ParseLocale canonicalizes a BCP 47 tag.
func ParseLocale(s string) (Locale, error) {
	tag, err := language.Parse(s)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid locale")
	}
	return Locale(tag.String()), nil
}

// MatchLocale picks the best supported locale for an Accept-Language header.
// It returns fallback when the header is empty or unparseable.
func MatchLocale(acceptLanguage string, supported []Locale, fallback Locale) Locale {
	if acceptLanguage == "" || len(supported) == 0 {
		return fallback
	}
	tags := make([]language.Tag, 0, len(supported))
	for _, l := range supported {
		tag, err := language.Parse(string(l))
		if err != nil {
			continue
		}
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return fallback
	}
	desired, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(desired) == 0 {
		return fallback
	}
	_, index, confidence := language.NewMatcher(tags).Match(desired...)
	if confidence == language.No {
		return fallback
	}
	return Locale(tags[index].String())
}

func (l Locale) String() string {
	return string(l)
}
