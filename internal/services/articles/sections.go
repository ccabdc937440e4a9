package articles

import (
	"regexp"
	"strings"
)

var (
	h4        = regexp.MustCompile(`<h4>(.*?)</h4>`)
	h4Encoded = regexp.MustCompile(`&lt;h4&gt;(.*?)&lt;/h4&gt;`)
	tag       = regexp.MustCompile(`<[^>]*>`)
	tagEscape = regexp.MustCompile(`&lt;[^&]*&gt;`)
)

// Section раздел выпуска: заголовок из <h4> и текст до следующего заголовка.
type Section struct {
	Title   string
	Content string
}

// SplitSections делит текст выпуска на разделы по заголовкам <h4>. Если таких
// заголовков нет, ищутся экранированные &lt;h4&gt;. Текст до первого заголовка
// отбрасывается.
func SplitSections(content string) []Section {
	if s := split(content, h4, tag); len(s) > 0 {
		return s
	}
	return split(content, h4Encoded, tagEscape)
}

func split(content string, marker, strip *regexp.Regexp) []Section {
	matches := marker.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return nil
	}
	sections := make([]Section, 0, len(matches))
	for i, m := range matches {
		end := len(content)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		sections = append(sections, Section{
			Title:   strings.TrimSpace(strip.ReplaceAllString(content[m[2]:m[3]], "")),
			Content: content[m[1]:end],
		})
	}
	return sections
}
