package accumulate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestFeedConvergesAcrossFragments(t *testing.T) {
	full := `{"location": "Boston", "unit": "celsius"}`
	fragments := []string{`{"locat`, `ion": "Bos`, `ton", "un`, `it": "cels`, `ius"}`}

	var buffer string
	var parsed map[string]any
	for i, frag := range fragments {
		buffer, parsed = Feed(buffer, frag)
		if i < len(fragments)-1 {
			assert.Nil(t, parsed, "fragment %d should not parse yet", i)
		}
	}
	require.NotNil(t, parsed)
	assert.Equal(t, full, buffer)
	assert.Equal(t, map[string]any{"location": "Boston", "unit": "celsius"}, parsed)
}

func TestFeedEmpty(t *testing.T) {
	buf, parsed := Feed("", "")
	assert.Equal(t, "", buf)
	assert.Nil(t, parsed)
}

func TestFeedNonObject(t *testing.T) {
	// Scalars and null parse as JSON but are not argument objects.
	_, parsed := Feed("", `"a string"`)
	assert.Nil(t, parsed)
	_, parsed = Feed("", `null`)
	assert.Nil(t, parsed)
}

func TestFeedWholeObjectAtOnce(t *testing.T) {
	buf, parsed := Feed("", `{}`)
	assert.Equal(t, `{}`, buf)
	require.NotNil(t, parsed)
	assert.Empty(t, parsed)
}

// Splitting any JSON object at arbitrary byte boundaries converges to the
// same parse, with every strict prefix reported as in-progress.
func TestFeedConvergence_Rapid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		obj := map[string]any{
			"query": rapid.String().Draw(t, "query"),
			"limit": float64(rapid.IntRange(0, 1000).Draw(t, "limit")),
		}
		encoded, err := json.MarshalToString(obj)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}

		// Random cut points over the encoded bytes, in order.
		nCuts := rapid.IntRange(0, 5).Draw(t, "cuts")
		cuts := make([]int, 0, nCuts+2)
		cuts = append(cuts, 0)
		for i := 0; i < nCuts; i++ {
			cuts = append(cuts, rapid.IntRange(0, len(encoded)).Draw(t, "cut"))
		}
		cuts = append(cuts, len(encoded))
		for i := 1; i < len(cuts); i++ {
			if cuts[i] < cuts[i-1] {
				cuts[i] = cuts[i-1]
			}
		}

		var buffer string
		var parsed map[string]any
		for i := 1; i < len(cuts); i++ {
			buffer, parsed = Feed(buffer, encoded[cuts[i-1]:cuts[i]])
			if cuts[i] < len(encoded) && parsed != nil {
				t.Fatalf("strict prefix %q parsed early", buffer)
			}
		}
		if parsed == nil {
			t.Fatalf("full value did not parse: %q", buffer)
		}
		if buffer != encoded {
			t.Fatalf("buffer diverged: %q != %q", buffer, encoded)
		}
		if parsed["query"] != obj["query"] || parsed["limit"] != obj["limit"] {
			t.Fatalf("parse mismatch: %#v != %#v", parsed, obj)
		}
	})
}
