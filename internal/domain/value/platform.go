package value

import (
	"git.appkode.ru/pub/go/failure"

	"dealdrop/pkg/errcodes"
)

// Platform is the closed set of e-commerce platforms deals are sourced from.
type Platform string

const (
	PlatformFlipkart  Platform = "flipkart"
	PlatformAmazon    Platform = "amazon"
	PlatformJiomart   Platform = "jiomart"
	PlatformMyntra    Platform = "myntra"
	PlatformSwiggy    Platform = "swiggy"
	PlatformBigbasket Platform = "bigbasket"
)

func (p Platform) String() string {
	return string(p)
}

func Platforms() []Platform {
	return []Platform{
		PlatformFlipkart,
		PlatformAmazon,
		PlatformJiomart,
		PlatformMyntra,
		PlatformSwiggy,
		PlatformBigbasket,
	}
}

func ParsePlatform(s string) (Platform, error) {
	for _, p := range Platforms() {
		if s == string(p) {
			return p, nil
		}
	}

	return "", failure.NewInvalidArgumentError(
		"unknown platform: "+s,
		failure.WithCode(errcodes.InvalidPlatform),
	)
}
