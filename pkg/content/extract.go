package content

import (
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// Selectors is the preference order used to find a story's meaningful
// content inside its document.
var Selectors = []string{"#content", ".story-content", "main"}

// Extract returns the inner HTML of the first selector match, falling back
// to the whole <body>, and to the raw document when it cannot be parsed as
// a structured document. The result is inserted as trusted markup.
func Extract(doc string) string {
	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return doc
	}
	for _, sel := range Selectors {
		if match := parsed.Find(sel).First(); match.Length() > 0 {
			if inner, err := match.Html(); err == nil {
				return inner
			}
		}
	}
	body := parsed.Find("body").First()
	if body.Length() == 0 {
		return doc
	}
	inner, err := body.Html()
	if err != nil {
		return doc
	}
	return inner
}

// Markdown converts an extracted fragment into Markdown for terminal
// rendering.
func Markdown(fragment string) (string, error) {
	converter := md.NewConverter("", true, nil)
	out, err := converter.ConvertString(fragment)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
