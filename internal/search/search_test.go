package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"  Calça Jeans ": "calca jeans",
		"BONÉ":           "bone",
		"Tênis":          "tenis",
		"":               "",
		"   ":            "",
		"fone":           "fone",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "input %q", in)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	for _, s := range []string{"Açaí Orgânico", "  ÉÈÊ ", "Camisetas", "ñandú"} {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once))
	}
}

func TestExpandSingleWordSynonyms(t *testing.T) {
	got := Expand("tênis")
	assert.ElementsMatch(t, []string{"tenis", "teni", "tennis"}, got)
}

func TestExpandPluralization(t *testing.T) {
	// "bola" ends in a vowel, so only "bolas" is added.
	assert.ElementsMatch(t, []string{"bola", "bolas"}, Expand("Bola"))

	// "short" ends in a consonant.
	assert.ElementsMatch(t, []string{"short", "shorts", "shortes"}, Expand("short"))

	// "meias" drops the trailing s; too short to drop "es".
	assert.ElementsMatch(t, []string{"meias", "meia"}, Expand("meias"))

	// Ends in "es" and is long enough for both suffix rules.
	assert.ElementsMatch(t, []string{"colares", "colare", "colar"}, Expand("colares"))
}

func TestExpandCapGroup(t *testing.T) {
	got := Expand("Boné")
	assert.ElementsMatch(t, []string{"bone", "bones", "boné", "bonés"}, got)
}

func TestExpandMultiWord(t *testing.T) {
	got := Expand("camiseta preta")
	assert.Equal(t, "camiseta preta", got[0], "full term seeds the result")
	assert.ElementsMatch(t, []string{
		"camiseta preta",
		"camisetas",
		"camisa", "camisas",
		"camiseta",
		"pretas",
	}, got)
}

func TestExpandSkipsSingleLetterWords(t *testing.T) {
	got := Expand("a bola")
	assert.ElementsMatch(t, []string{"a bola", "bolas"}, got)
	assert.NotContains(t, got, "as")
}

func TestExpandBlank(t *testing.T) {
	assert.Empty(t, Expand(""))
	assert.Empty(t, Expand("   "))
	assert.Equal(t, []string{"x"}, Expand("x"))
}

func TestExpandNoDuplicates(t *testing.T) {
	got := Expand("headphones headphone")
	seen := map[string]bool{}
	for _, v := range got {
		assert.False(t, seen[v], "duplicate %q", v)
		seen[v] = true
	}
	assert.Contains(t, got, "fones")
}

type doc struct {
	name, desc string
}

func (d doc) SearchName() string        { return d.name }
func (d doc) SearchDescription() string { return d.desc }

func TestRankOrdersByMatchQuality(t *testing.T) {
	items := []doc{
		{name: "Meia esportiva", desc: "Combina com seu tênis"},
		{name: "Bolsa", desc: "Sem relação"},
		{name: "Kit Tênis e Meia", desc: ""},
		{name: "Tênis Corrida", desc: ""},
	}

	got := Rank(items, "tenis")

	assert.Equal(t, []doc{
		{name: "Tênis Corrida", desc: ""},
		{name: "Kit Tênis e Meia", desc: ""},
		{name: "Meia esportiva", desc: "Combina com seu tênis"},
		{name: "Bolsa", desc: "Sem relação"},
	}, got)
	assert.Equal(t, "Meia esportiva", items[0].name, "input untouched")
}

func TestRankIsStable(t *testing.T) {
	items := []doc{
		{name: "Camiseta azul"},
		{name: "Camiseta branca"},
		{name: "Camiseta verde"},
	}
	assert.Equal(t, items, Rank(items, "camiseta"))
}

func TestRankIdentityWithoutQuery(t *testing.T) {
	items := []doc{{name: "b"}, {name: "a"}}
	assert.Equal(t, items, Rank(items, "  "))
	assert.Empty(t, Rank([]doc{}, "a"))
}
