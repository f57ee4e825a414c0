package accumulate

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Feed appends chunk to buffer and attempts to parse the whole accumulated
// string as a JSON object. It returns the grown buffer and the parsed object
// on success, or nil while the value is still incomplete. Feed never fails:
// an unparseable buffer is simply not done yet. The buffer has no upper
// bound; the enclosing tool call terminates it naturally.
func Feed(buffer, chunk string) (string, map[string]any) {
	buffer += chunk
	if buffer == "" {
		return buffer, nil
	}
	var parsed map[string]any
	if err := json.UnmarshalFromString(buffer, &parsed); err != nil {
		return buffer, nil
	}
	if parsed == nil {
		// "null" parses but is not an argument object
		return buffer, nil
	}
	return buffer, parsed
}
