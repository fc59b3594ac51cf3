package filter

import "net/url"

// Config selects how query parameters are parsed.
type Config struct {
	// Strict rejects malformed numeric parameters instead of ignoring them.
	Strict bool `yaml:"strict" envconfig:"FILTERS_STRICT"`
}

// Parse parses values according to c.
func (c Config) Parse(values url.Values) (*Set, error) {
	if c.Strict {
		return ParseStrict(values)
	}
	return Parse(values), nil
}
