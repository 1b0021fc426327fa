package inspection

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// sourceSuffix marks a collection as a supplier's inspection partition.
const sourceSuffix = "_data"

// localPart returns everything before the first '@', or s itself when there is none.
func localPart(email string) string {
	if i := strings.IndexByte(email, '@'); i >= 0 {
		return email[:i]
	}
	return email
}

// SourceName maps a supplier email to the collection holding its records,
// e.g. "Sunkist@env.com" -> "sunkist_data". The domain is ignored and the
// input is never validated.
func SourceName(email string) string {
	return strings.ToLower(localPart(email)) + sourceSuffix
}

// DisplayLabel returns the title-cased local part used in chart titles.
func DisplayLabel(email string) string {
	return cases.Title(language.Und).String(localPart(email))
}
