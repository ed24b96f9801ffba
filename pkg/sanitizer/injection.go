package sanitizer

import (
	"encoding/json"
	"fmt"
)

// DetectInjection reports whether the JSON text of payload matches any known
// SQL injection shape: a statement keyword, a comment or statement
// separator, or an OR/AND clause followed by "=". A nil payload is treated
// as an empty object.
func DetectInjection(payload any) bool {
	if payload == nil {
		payload = map[string]any{}
	}

	text, err := json.Marshal(payload)
	if err != nil {
		text = fmt.Appendf(nil, "%v", payload)
	}

	return DetectInjectionText(string(text))
}

// DetectInjectionText runs the injection patterns over raw text.
func DetectInjectionText(text string) bool {
	for _, re := range sqlInjectionShapes {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
