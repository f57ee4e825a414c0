package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRawItemLines(t *testing.T) {
	it := RawItem{Bytes: []byte("{\"a\":1}\n\n  \n{\"b\":2}\n")}
	lines := it.Lines()
	assert.Len(t, lines, 2)
	assert.Equal(t, `{"a":1}`, string(lines[0]))
	assert.Equal(t, `{"b":2}`, string(lines[1]))
}

func TestRawItemLinesEmpty(t *testing.T) {
	assert.Nil(t, RawItem{}.Lines())
	assert.Nil(t, RawItem{Decoded: map[string]any{"x": 1}}.Lines())
}

func TestRawItemShape(t *testing.T) {
	assert.True(t, RawItem{Bytes: []byte("{}")}.Framed())
	assert.False(t, RawItem{Decoded: map[string]any{}}.Framed())
	assert.True(t, RawItem{Err: errors.New("boom")}.Terminal())
	assert.False(t, RawItem{Bytes: []byte("{}")}.Terminal())
}
