package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReplyPlainJSON(t *testing.T) {
	fields, err := ParseReply(`{"title":"Coffee","amount":4.50,"date":"2024-01-01","vendor":"Cafe"}`)
	require.NoError(t, err)

	out := normalizeFields(fields)
	assert.Equal(t, "Coffee", out["title"])
	assert.Equal(t, 4.50, out["amount"])
	assert.Equal(t, "2024-01-01", out["date"])
	assert.Equal(t, "Cafe", out["vendor"])
	assert.Equal(t, "", out["category"], "omitted category defaults to empty string")
}

func TestParseReplyFencedBlock(t *testing.T) {
	raw := "Here is the extracted data:\n```json\n{\"title\":\"Coffee\",\"amount\":4.5,\"date\":\"2024-01-01\",\"vendor\":\"Cafe\",\"category\":\"Food\"}\n```\nLet me know if you need anything else."
	fields, err := ParseReply(raw)
	require.NoError(t, err)
	assert.Equal(t, "Coffee", fields["title"])
	assert.Equal(t, "Food", fields["category"])
}

func TestParseReplyFencedBlockNoLanguage(t *testing.T) {
	raw := "```\n{\"title\":\"Lunch\"}\n```"
	fields, err := ParseReply(raw)
	require.NoError(t, err)
	assert.Equal(t, "Lunch", fields["title"])
}

func TestParseReplyFencedMatchesUnwrapped(t *testing.T) {
	plain := `{"title":"Taxi","amount":12,"date":"2024-02-02","vendor":"Cab Co","category":"Transportation"}`
	fenced := "```json\n" + plain + "\n```"

	a, err := ParseReply(plain)
	require.NoError(t, err)
	b, err := ParseReply(fenced)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestParseReplyTrimmedBoundary(t *testing.T) {
	raw := "\n\n  {\"title\":\"Groceries\",\"amount\":30.25,\"date\":\"2024-03-03\",\"vendor\":\"Market\",\"category\":\"Food\"}  \n"
	fields, err := ParseReply(raw)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", fields["title"])
}

func TestParseReplyGarbage(t *testing.T) {
	_, err := ParseReply("I could not find any invoice in this image, sorry.")
	assert.Error(t, err)
}

func TestParseReplyUnclosedBrace(t *testing.T) {
	_, err := ParseReply(`{"title":"Broken"`)
	assert.Error(t, err)
}

func TestNormalizeFieldsAlwaysTotal(t *testing.T) {
	out := normalizeFields(map[string]any{})
	for _, key := range requiredFields {
		assert.Contains(t, out, key)
		assert.Equal(t, "", out[key])
	}

	out = normalizeFields(nil)
	assert.Len(t, out, len(requiredFields))
}

func TestNormalizeFieldsKeepsPresentValues(t *testing.T) {
	out := normalizeFields(map[string]any{"title": "Coffee", "amount": 4.5})
	assert.Equal(t, "Coffee", out["title"])
	assert.Equal(t, 4.5, out["amount"])
	assert.Equal(t, "", out["vendor"])
}
