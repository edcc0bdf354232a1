package inference

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFencedJSON(t *testing.T) {
	block, ok := ExtractFencedJSON("texto previo\n```json\n{\"a\":1}\n```\ntexto posterior")
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, block)

	block, ok = ExtractFencedJSON("```\n{\"a\":1}\n```")
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, block)

	// Without a fence, the outermost brace span is taken.
	block, ok = ExtractFencedJSON(`la respuesta es {"a": 1} según el modelo`)
	require.True(t, ok)
	assert.Equal(t, `{"a": 1}`, block)

	_, ok = ExtractFencedJSON("sin JSON")
	assert.False(t, ok)
}

func TestRepairRules(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"single quotes", `{'a': 'b'}`, `{"a": "b"}`},
		{"unquoted keys", `{a: 1, b: 2}`, `{"a": 1, "b": 2}`},
		{"trailing comma object", `{"a": 1,}`, `{"a": 1}`},
		{"trailing comma array", `[1, 2,]`, `[1, 2]`},
		{"undefined", `{"a": undefined}`, `{"a": null}`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := Repair(c.input)
			assert.Equal(t, c.want, got)
			assert.True(t, json.Valid([]byte(got)), "repaired output must parse: %s", got)
		})
	}
}

func TestRepairLeavesValidJSONAlone(t *testing.T) {
	input := `{"agentName": "Gomez", "values": [1, 2, 3]}`
	assert.Equal(t, input, Repair(input))
}
