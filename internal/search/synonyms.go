package search

// Synonyms maps a normalized query word to the full group of spellings a
// shopper might mean by it. Every member of a group is unioned into the
// expansion when any key of the group is typed.
var Synonyms = map[string][]string{
	"tenis":  sneakers,
	"tennis": sneakers,

	"bone":  caps,
	"bones": caps,

	"calca":  trousers,
	"calcas": trousers,

	"camisa":    shirts,
	"camiseta":  shirts,
	"camisetas": shirts,

	"headphone":  headphones,
	"headphones": headphones,
}

var (
	sneakers   = []string{"tenis", "tennis"}
	caps       = []string{"bone", "bones", "boné", "bonés"}
	trousers   = []string{"calca", "calcas", "calça", "calças"}
	shirts     = []string{"camisa", "camisas", "camiseta", "camisetas"}
	headphones = []string{"headphone", "headphones", "fone", "fones"}
)
