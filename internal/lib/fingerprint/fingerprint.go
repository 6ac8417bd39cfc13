// Package fingerprint строит детерминированный ключ кеша по параметрам поиска.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/gosimple/slug"
)

// Length длина отпечатка в символах.
const Length = 32

// Of возвращает отпечаток для набора (ниша, локация, тип поиска).
// Части нормализуются через slug, поэтому регистр, пробелы и диакритика не влияют на результат.
func Of(niche, location, searchType string) string {
	parts := []string{
		slug.Make(niche),
		slug.Make(location),
		slug.Make(searchType),
	}
	// slug не выдает "|", поэтому границы частей однозначны
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])[:Length]
}
