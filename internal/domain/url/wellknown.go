package url

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// DefaultPrimaryDomain is the storefront the client is built around.
const DefaultPrimaryDomain = "itch.io"

var (
	collectionPathRE = regexp.MustCompile(`^/c/([0-9]+)`)
	downloadPathRE   = regexp.MustCompile(`^.*/download/[a-zA-Z0-9]*$`)
	downloadSuffixRE = regexp.MustCompile(`/download.*$`)
)

// WellKnown is a navigated URL mapped onto an in-app resource.
// Resource is empty when the URL collapses to a page without its own
// resource tag.
type WellKnown struct {
	URL      string `json:"url"`
	Resource string `json:"resource,omitempty"`
}

// Classifier recognizes storefront URLs worth deep-linking.
type Classifier struct {
	domain string
}

// NewClassifier creates a classifier for a primary domain such as "itch.io".
func NewClassifier(domain string) *Classifier {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		domain = DefaultPrimaryDomain
	}
	return &Classifier{domain: domain}
}

// Domain returns the primary domain.
func (c *Classifier) Domain() string {
	return c.domain
}

// Classify maps rawURL to a well-known result.
//
//   - https://<domain>/c/<id>... yields {rawURL, "collections/<id>"}
//   - https://<game>.<domain>/<game>/download/<key> yields the game page
//     URL with no resource
//
// Any other URL yields (nil, nil). A parse failure yields (nil, err) and
// callers treat it as no result.
func (c *Classifier) Classify(rawURL string) (*WellKnown, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("could not parse url %q: %w", rawURL, err)
	}

	host := strings.ToLower(u.Hostname())
	switch {
	case host == c.domain:
		if m := collectionPathRE.FindStringSubmatch(u.Path); m != nil {
			return &WellKnown{URL: rawURL, Resource: "collections/" + m[1]}, nil
		}
	case strings.HasSuffix(host, "."+c.domain):
		if downloadPathRE.MatchString(u.Path) {
			return &WellKnown{URL: downloadSuffixRE.ReplaceAllString(rawURL, "")}, nil
		}
	}

	return nil, nil
}

var defaultClassifier = NewClassifier(DefaultPrimaryDomain)

// ClassifyWellKnown classifies against DefaultPrimaryDomain.
func ClassifyWellKnown(rawURL string) (*WellKnown, error) {
	return defaultClassifier.Classify(rawURL)
}
