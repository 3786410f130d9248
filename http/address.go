package http

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/wrlin/tshiau"
)

// DefaultURLTemplate is the MOE Taiwanese dictionary cross-language search
// endpoint. The %s slot receives the query-escaped lookup key.
const DefaultURLTemplate = "https://sutian.moe.edu.tw/zh-hant/tshiau/?lui=hua_ku&tsha=%s"

// AddressFor maps a lookup key to its dictionary URL. The mapping is
// deterministic and injective: query escaping guarantees distinct keys
// never produce the same URL.
func AddressFor(template, key string) string {
	return fmt.Sprintf(template, url.QueryEscape(key))
}

// ValidateTemplate checks that a URL template has exactly one %s slot.
func ValidateTemplate(template string) error {
	if strings.Count(template, "%s") != 1 {
		return tshiau.Errorf(tshiau.EINVALID, "URL template must contain exactly one %%s slot: %q", template)
	}
	return nil
}
