// internal/entity/phone.go
package entity

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// defaultPhoneRegion is applied when a number comes in without a country
// prefix. The facility operates in Argentina.
const defaultPhoneRegion = "AR"

// NormalizePhone formats raw to E.164 when it parses as a valid number.
// Phone fields are optional free text, so anything unparseable is returned
// verbatim rather than rejected.
func NormalizePhone(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	parsed, err := phonenumbers.Parse(trimmed, defaultPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return trimmed
	}
	return phonenumbers.Format(parsed, phonenumbers.E164)
}
