package goodreads

import (
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const authorDoc = `<?xml version="1.0" encoding="UTF-8"?>
<GoodreadsResponse>
  <Request>
    <authentication>true</authentication>
    <key><![CDATA[abc]]></key>
  </Request>
  <author>
    <id>18541</id>
    <name>Tim O'Reilly</name>
  </author>
</GoodreadsResponse>`

func TestNormalize_Container(t *testing.T) {
	author, err := Normalize([]byte(authorDoc), FormatXML, "author")
	require.NoError(t, err)

	assert.Equal(t, KindMap, author.Kind())
	assert.Equal(t, []string{"id", "name"}, author.Keys())
	assert.Equal(t, "18541", author.Field("id"))
	assert.Equal(t, "Tim O'Reilly", author.Field("name"))
}

func TestNormalize_MissingContainer(t *testing.T) {
	_, err := Normalize([]byte(authorDoc), FormatXML, "missing")
	require.Error(t, err)

	var invalid *InvalidResponseError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "missing", invalid.Container)
	assert.Equal(t, []string{"Request", "author"}, invalid.Response.Keys())
	assert.Contains(t, err.Error(), `"missing"`)
}

func TestNormalize_EnvelopeOptional(t *testing.T) {
	doc := `<author><id>1</id></author>`

	v, err := Normalize([]byte(doc), FormatXML, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"author"}, v.Keys())

	author, err := Normalize([]byte(doc), FormatXML, "author")
	require.NoError(t, err)
	assert.Equal(t, "1", author.Field("id"))
}

func TestNormalize_Raw(t *testing.T) {
	v, err := Normalize([]byte("134825\n<extra/>"), FormatRaw, "")
	require.NoError(t, err)

	s, ok := v.Str()
	require.True(t, ok)
	assert.Equal(t, "134825", s)
}

func TestNormalize_LeafShapes(t *testing.T) {
	doc := `<GoodreadsResponse><book>
		<id type="integer">42</id>
		<title>Plain</title>
		<isbn nil="true"/>
		<asin></asin>
		<description>  padded text  </description>
	</book></GoodreadsResponse>`

	book, err := Normalize([]byte(doc), FormatXML, "book")
	require.NoError(t, err)

	t.Run("typed leaf is a record", func(t *testing.T) {
		id, ok := book.Get("id")
		require.True(t, ok)
		assert.Equal(t, KindMap, id.Kind())
		assert.Equal(t, []string{TypeKey, TextKey}, id.Keys())

		typ, ok := id.TypeAnnotation()
		require.True(t, ok)
		assert.Equal(t, "integer", typ)
		assert.Equal(t, "42", id.Text())

		_, isPlain := id.Str()
		assert.False(t, isPlain)
	})

	t.Run("plain leaf is a string", func(t *testing.T) {
		title, ok := book.Get("title")
		require.True(t, ok)
		s, ok := title.Str()
		require.True(t, ok)
		assert.Equal(t, "Plain", s)
		_, typed := title.TypeAnnotation()
		assert.False(t, typed)
	})

	t.Run("nil-marked leaf", func(t *testing.T) {
		isbn, ok := book.Get("isbn")
		require.True(t, ok)
		assert.Equal(t, KindMap, isbn.Kind())
		assert.True(t, isbn.IsNil())
		assert.Equal(t, "", isbn.Text())
	})

	t.Run("empty leaf is null", func(t *testing.T) {
		asin, ok := book.Get("asin")
		require.True(t, ok)
		assert.True(t, asin.IsNull())
		assert.True(t, asin.IsNil())
	})

	t.Run("absent leaf", func(t *testing.T) {
		_, ok := book.Get("isbn13")
		assert.False(t, ok)
	})

	t.Run("text is stripped", func(t *testing.T) {
		assert.Equal(t, "padded text", book.Field("description"))
	})
}

func TestNormalize_RepeatedElements(t *testing.T) {
	doc := `<GoodreadsResponse><search>
		<results>
			<work><id>1</id></work>
			<note>between</note>
			<work><id>2</id></work>
			<work><id>3</id></work>
		</results>
		<single><work><id>9</id></work></single>
	</search></GoodreadsResponse>`

	search, err := Normalize([]byte(doc), FormatXML, "search")
	require.NoError(t, err)

	results, ok := search.Get("results")
	require.True(t, ok)
	assert.Equal(t, []string{"work", "note"}, results.Keys())

	works, _ := results.Get("work")
	require.Equal(t, KindList, works.Kind())
	ids := make([]string, 0, works.Len())
	for _, w := range works.AsList() {
		ids = append(ids, w.Field("id"))
	}
	assert.Equal(t, []string{"1", "2", "3"}, ids)

	single, ok := search.Lookup("single", "work")
	require.True(t, ok)
	assert.Equal(t, KindMap, single.Kind())
	require.Len(t, single.AsList(), 1)
	assert.Equal(t, "9", single.AsList()[0].Field("id"))
}

func TestNormalize_AttributesAndText(t *testing.T) {
	doc := `<GoodreadsResponse><user id="7"><name>Ann</name>note</user></GoodreadsResponse>`

	user, err := Normalize([]byte(doc), FormatXML, "user")
	require.NoError(t, err)

	assert.Equal(t, []string{"@id", "name", TextKey}, user.Keys())
	id, ok := user.Attr("id")
	require.True(t, ok)
	assert.Equal(t, "7", id)
	assert.Equal(t, "note", user.Text())
}

func TestNormalize_InvalidXML(t *testing.T) {
	for _, body := range []string{"<GoodreadsResponse><<</GoodreadsResponse>", ""} {
		_, err := Normalize([]byte(body), FormatXML, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse XML")
	}
}

func TestNormalize_JSON(t *testing.T) {
	body := `{"books":[{"id":3,"isbn":"0441172717","work_ratings_count":1080,"average_rating":"3.84","reviewed":true,"asin":null}]}`

	books, err := Normalize([]byte(body), FormatJSON, "books")
	require.NoError(t, err)
	require.Equal(t, KindList, books.Kind())

	first := books.Items()[0]
	assert.Equal(t, []string{"id", "isbn", "work_ratings_count", "average_rating", "reviewed", "asin"}, first.Keys())
	assert.Equal(t, "3", first.Field("id"))
	assert.Equal(t, "1080", first.Field("work_ratings_count"))
	assert.Equal(t, "true", first.Field("reviewed"))

	asin, ok := first.Get("asin")
	require.True(t, ok)
	assert.True(t, asin.IsNull())

	_, err = Normalize([]byte(body), FormatJSON, "authors")
	var invalid *InvalidResponseError
	assert.True(t, errors.As(err, &invalid))
}

func TestValue_MarshalJSONKeepsOrder(t *testing.T) {
	v := Map(
		Pair{Key: "z", Value: String("1")},
		Pair{Key: "a", Value: List(String("x"), Null())},
		Pair{Key: "m", Value: Map(Pair{Key: TextKey, Value: String("t")})},
	)

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, `{"z":"1","a":["x",null],"m":{"#text":"t"}}`, string(out))
}

func TestValue_NilSafety(t *testing.T) {
	var v *Value
	assert.True(t, v.IsNull())
	assert.Equal(t, "", v.Text())
	assert.Nil(t, v.AsList())
	_, ok := v.Get("x")
	assert.False(t, ok)
	assert.Equal(t, "", v.Field("a", "b"))
}
