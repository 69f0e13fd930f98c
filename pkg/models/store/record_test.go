package store

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordFromJSON(t *testing.T, raw string) Record {
	t.Helper()
	var r Record
	require.NoError(t, json.Unmarshal([]byte(raw), &r))
	return r
}

func TestRecord_Get_NestedPath(t *testing.T) {
	r := recordFromJSON(t, `{"client":{"company":"ACME","contact":{"email":"x@acme.cl"}}}`)

	v, ok := r.Get("client.company")
	assert.True(t, ok)
	assert.Equal(t, "ACME", v)

	v, ok = r.Get("client.contact.email")
	assert.True(t, ok)
	assert.Equal(t, "x@acme.cl", v)
}

func TestRecord_Get_MissingAndNull(t *testing.T) {
	r := recordFromJSON(t, `{"office":null,"user":{"name":null}}`)

	cases := []string{"office", "office.name", "user.name", "nope", "user.name.deep"}
	for _, path := range cases {
		_, ok := r.Get(path)
		assert.False(t, ok, "path %s should be absent", path)
	}
}

func TestRecord_Get_LiteralDottedKey(t *testing.T) {
	r := Record{"variant.id": float64(42), "doc.number": "F-001"}

	v, ok := r.Get("variant.id")
	assert.True(t, ok)
	assert.Equal(t, float64(42), v)
	assert.Equal(t, "F-001", r.String("doc.number"))
}

func TestRecord_String_NumericIDsStayIntegral(t *testing.T) {
	r := recordFromJSON(t, `{"id":33,"rate":1.5,"code":"ABC-1"}`)

	assert.Equal(t, "33", r.String("id"))
	assert.Equal(t, "1.5", r.String("rate"))
	assert.Equal(t, "ABC-1", r.String("code"))
	assert.Equal(t, "", r.String("missing"))
}

func TestRecord_Float_PermissiveCoercion(t *testing.T) {
	r := recordFromJSON(t, `{"a":10.5,"b":"12.25","c":"n/a","d":null}`)

	assert.Equal(t, 10.5, r.Float("a"))
	assert.Equal(t, 12.25, r.Float("b"))
	assert.Equal(t, 0.0, r.Float("c"))
	assert.Equal(t, 0.0, r.Float("d"))
	assert.Equal(t, 0.0, r.Float("missing"))
}

func TestRecord_Int(t *testing.T) {
	r := recordFromJSON(t, `{"id":7,"name":"x"}`)

	id, ok := r.Int("id")
	assert.True(t, ok)
	assert.Equal(t, 7, id)

	_, ok = r.Int("name")
	assert.False(t, ok)
}

func TestRecord_Flatten(t *testing.T) {
	r := recordFromJSON(t, `{"id":1,"variant":{"id":9,"code":"SKU-9"},"prices":{"cost":100}}`)

	flat := r.Flatten()
	assert.Equal(t, float64(1), flat["id"])
	assert.Equal(t, float64(9), flat["variant.id"])
	assert.Equal(t, "SKU-9", flat["variant.code"])
	assert.Equal(t, float64(100), flat["prices.cost"])
}
