package registry

import (
	"net/url"
	"strings"
)

const signupFragment = "#/cadastro"

// BuildSignupLink produces the shareable self-signup URL carrying the
// referring operator's display name and optional contact link as
// fragment query parameters.
func BuildSignupLink(baseURL, indicatorName, contactLink string) string {
	params := url.Values{}
	if name := strings.TrimSpace(indicatorName); name != "" {
		params.Set("indicador", name)
	}
	if link := strings.TrimSpace(contactLink); link != "" {
		params.Set("zap", link)
	}

	link := strings.TrimRight(baseURL, "/") + signupFragment
	if encoded := params.Encode(); encoded != "" {
		link += "?" + encoded
	}
	return link
}

// ParseIndicator extracts the referrer name from a signup link. The
// historical parameter spellings are all accepted. An empty result is a
// valid state: signup proceeds and the record is tagged as a direct
// registration.
func ParseIndicator(rawLink string) string {
	idx := strings.Index(rawLink, "#")
	fragment := rawLink
	if idx >= 0 {
		fragment = rawLink[idx:]
	}

	queryIdx := strings.Index(fragment, "?")
	if queryIdx < 0 {
		return ""
	}

	params, err := url.ParseQuery(fragment[queryIdx+1:])
	if err != nil {
		return ""
	}

	for _, key := range []string{"indicador", "indicado", "ref"} {
		if v := strings.TrimSpace(params.Get(key)); v != "" {
			return v
		}
	}
	return ""
}
