package richtext

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRichString_UnmarshalWireForm(t *testing.T) {
	input := `[
		{"String": "When this enters, "},
		{"CardId": {"display": "Mantis", "identity": {"name": "mantis"}}},
		{"SpecificCard": {"display": "Lost Man", "id": "lost-man"}},
		{"CardSearch": {"display": "any ant", "search": "k:ant"}},
		"LineBreak",
		{"Saga": [[{"String": "one"}], ["two", "LineBreak"]]},
		"bare text"
	]`

	var rs RichString
	require.NoError(t, json.Unmarshal([]byte(input), &rs))
	require.Len(t, rs, 7)

	assert.Equal(t, PlainText{Text: "When this enters, "}, rs[0])
	ref, ok := rs[1].(CardReference)
	require.True(t, ok)
	assert.Equal(t, "Mantis", ref.Display)
	assert.JSONEq(t, `{"name": "mantis"}`, string(ref.Identity))
	assert.Equal(t, SpecificCardLink{Display: "Lost Man", ID: "lost-man"}, rs[2])
	assert.Equal(t, SearchLink{Display: "any ant", Query: "k:ant"}, rs[3])
	assert.Equal(t, LineBreak{}, rs[4])
	assert.Equal(t, Saga{Items: []RichString{
		{PlainText{Text: "one"}},
		{PlainText{Text: "two"}, LineBreak{}},
	}}, rs[5])
	assert.Equal(t, PlainText{Text: "bare text"}, rs[6])
}

func TestRichString_UnmarshalErrors(t *testing.T) {
	cases := map[string]string{
		"not an array": `{"String": "x"}`,
		"unknown tag":  `[{"Bold": "x"}]`,
		"two tags":     `[{"String": "x", "LineBreak": null}]`,
		"bad payload":  `[{"SpecificCard": "x"}]`,
		"number":       `[42]`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			var rs RichString
			assert.Error(t, json.Unmarshal([]byte(input), &rs))
		})
	}
}

func TestRichString_NullIsEmpty(t *testing.T) {
	var rs RichString
	require.NoError(t, json.Unmarshal([]byte(`null`), &rs))
	assert.Empty(t, rs)
}

func TestRichString_MarshalRoundTrip(t *testing.T) {
	rs := RichString{
		PlainText{Text: "a"},
		CardReference{Display: "c", Identity: json.RawMessage(`"c-id"`)},
		Saga{Items: []RichString{{SearchLink{Display: "s", Query: "q"}}}},
		LineBreak{},
	}
	data, err := json.Marshal(rs)
	require.NoError(t, err)
	assert.JSONEq(t,
		`[{"String":"a"},{"CardId":{"display":"c","identity":"c-id"}},{"Saga":[[{"CardSearch":{"display":"s","search":"q"}}]]},"LineBreak"]`,
		string(data))

	var back RichString
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, Text(rs), Text(back))
}
