package http

import "github.com/mangrove-one/MangroveMarkets/domain"

var ExtractVersion = extractVersion

func RedactConfig(config domain.Config) domain.Config {
	return redactConfig(config)
}
