package datatourisme

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDocument(t *testing.T, raw string) Document {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return Document(m)
}

func TestDocument_ObjectAt(t *testing.T) {
	t.Run("array of objects", func(t *testing.T) {
		doc := mustDocument(t, `{"isLocatedAt":[{"k":"first"},{"k":"second"}]}`)
		assert.Equal(t, "first", doc.ObjectAt("isLocatedAt", 0).String("k"))
		assert.Equal(t, "second", doc.ObjectAt("isLocatedAt", 1).String("k"))
	})

	t.Run("single object treated as element zero", func(t *testing.T) {
		doc := mustDocument(t, `{"isLocatedAt":{"k":"only"}}`)
		assert.Equal(t, "only", doc.ObjectAt("isLocatedAt", 0).String("k"))
		assert.Nil(t, doc.ObjectAt("isLocatedAt", 1))
	})

	t.Run("out of range", func(t *testing.T) {
		doc := mustDocument(t, `{"isLocatedAt":[{"k":"first"}]}`)
		assert.Nil(t, doc.ObjectAt("isLocatedAt", 5))
	})

	t.Run("nil document is total", func(t *testing.T) {
		var doc Document
		assert.Nil(t, doc.ObjectAt("anything", 0))
		assert.Equal(t, "", doc.String("anything"))
	})
}

func TestDocument_String(t *testing.T) {
	doc := mustDocument(t, `{"s":"text","n":42.5,"o":{}}`)

	assert.Equal(t, "text", doc.String("s"))
	assert.Equal(t, "42.5", doc.String("n"))
	assert.Equal(t, "", doc.String("o"))
	assert.Equal(t, "", doc.String("missing"))
}

func TestDocument_StringAt(t *testing.T) {
	doc := mustDocument(t, `{"arr":["a","b"],"single":"x"}`)

	assert.Equal(t, "a", doc.StringAt("arr", 0))
	assert.Equal(t, "b", doc.StringAt("arr", 1))
	assert.Equal(t, "", doc.StringAt("arr", 2))
	assert.Equal(t, "x", doc.StringAt("single", 0))
	assert.Equal(t, "", doc.StringAt("single", 1))
}

func TestDocument_LangFirst(t *testing.T) {
	t.Run("preferred language wins", func(t *testing.T) {
		doc := mustDocument(t, `{"rdfs:label":{"fr":["Nom FR"],"en":["Name EN"]}}`)
		assert.Equal(t, "Nom FR", doc.LangFirst("rdfs:label", "fr", "en"))
	})

	t.Run("falls back along the chain", func(t *testing.T) {
		doc := mustDocument(t, `{"rdfs:label":{"en":["Name EN"]}}`)
		assert.Equal(t, "Name EN", doc.LangFirst("rdfs:label", "fr", "en"))
	})

	t.Run("missing language map", func(t *testing.T) {
		doc := mustDocument(t, `{}`)
		assert.Equal(t, "", doc.LangFirst("rdfs:label", "fr"))
	})
}

func TestDocument_LangMap(t *testing.T) {
	doc := mustDocument(t, `{"desc":{"fr":["Texte"],"en":["Text"],"de":[]}}`)

	m := doc.LangMap("desc")
	assert.Equal(t, map[string]string{"fr": "Texte", "en": "Text"}, m)

	assert.Nil(t, doc.LangMap("missing"))
}

func TestDocument_Float(t *testing.T) {
	doc := mustDocument(t, `{"n":6.86,"s":"45.92","bad":"oops"}`)

	v, ok := doc.Float("n")
	assert.True(t, ok)
	assert.Equal(t, 6.86, v)

	v, ok = doc.Float("s")
	assert.True(t, ok)
	assert.Equal(t, 45.92, v)

	_, ok = doc.Float("bad")
	assert.False(t, ok)

	_, ok = doc.Float("missing")
	assert.False(t, ok)
}

func TestDocument_StringSlice(t *testing.T) {
	doc := mustDocument(t, `{"types":["Trek","PointOfInterest"],"single":"Trek"}`)

	assert.Equal(t, []string{"Trek", "PointOfInterest"}, doc.StringSlice("types"))
	assert.Equal(t, []string{"Trek"}, doc.StringSlice("single"))
	assert.Equal(t, []string{}, doc.StringSlice("missing"))
}
