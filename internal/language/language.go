package language

import (
	"strings"

	"golang.org/x/text/cases"
	langtag "golang.org/x/text/language"
)

type entry struct {
	code2   string // ISO 639-1 (2-letter)
	code3   string // ISO 639-2 (3-letter), the form ffmpeg metadata expects
	display string
}

var languages = []entry{
	{"en", "eng", "English"},
	{"es", "spa", "Spanish"},
	{"fr", "fra", "French"},
	{"de", "deu", "German"},
	{"it", "ita", "Italian"},
	{"pt", "por", "Portuguese"},
	{"ja", "jpn", "Japanese"},
	{"ko", "kor", "Korean"},
	{"zh", "zho", "Chinese"},
	{"ru", "rus", "Russian"},
	{"ar", "ara", "Arabic"},
	{"hi", "hin", "Hindi"},
	{"nl", "nld", "Dutch"},
	{"pl", "pol", "Polish"},
	{"sv", "swe", "Swedish"},
	{"da", "dan", "Danish"},
	{"no", "nor", "Norwegian"},
	{"fi", "fin", "Finnish"},
}

var byCode2 = func() map[string]*entry {
	m := make(map[string]*entry, len(languages))
	for i := range languages {
		m[languages[i].code2] = &languages[i]
	}
	return m
}()

var titleCaser = cases.Title(langtag.English)

// ToISO3 converts an ISO 639-1 code to the 3-letter form. Unknown or empty
// codes return "und" (undetermined), which ffmpeg accepts.
func ToISO3(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if e, ok := byCode2[code]; ok {
		return e.code3
	}
	if len(code) == 3 {
		return code
	}
	return "und"
}

// DisplayName returns a human-readable name for the code. Unknown codes are
// title-cased as-is rather than dropped.
func DisplayName(code string) string {
	trimmed := strings.ToLower(strings.TrimSpace(code))
	if e, ok := byCode2[trimmed]; ok {
		return e.display
	}
	if trimmed == "" {
		return "Unknown"
	}
	return titleCaser.String(trimmed)
}
