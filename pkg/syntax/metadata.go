package syntax

import (
	"strings"

	"github.com/aretw0/timescript/pkg/domain"
)

// ParseMetadata reads the inside of a {...} block: comma separated key:value
// pairs, split at the first colon. Pairs missing either side are dropped.
func ParseMetadata(block string) domain.Metadata {
	var m domain.Metadata
	for _, pair := range strings.Split(block, ",") {
		key, value, _ := strings.Cut(pair, ":")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		m.Set(key, value)
	}
	return m
}
