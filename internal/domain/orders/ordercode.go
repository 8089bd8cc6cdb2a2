package orders

import (
	"fmt"

	hashids "github.com/speps/go-hashids/v2"
)

const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CodeGenerator turns sequential order ids into short public codes that do
// not reveal order volume, e.g. 42 -> "PED-7KQ2M9XA".
type CodeGenerator struct {
	h *hashids.HashID
}

func NewCodeGenerator(salt string) (*CodeGenerator, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = 8
	hd.Alphabet = codeAlphabet

	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, fmt.Errorf("order code generator: %w", err)
	}
	return &CodeGenerator{h: h}, nil
}

func (g *CodeGenerator) Encode(orderID int64) (string, error) {
	s, err := g.h.EncodeInt64([]int64{orderID})
	if err != nil {
		return "", fmt.Errorf("encode order code: %w", err)
	}
	return "PED-" + s, nil
}

// Decode reverses Encode.
func (g *CodeGenerator) Decode(code string) (int64, error) {
	if len(code) < 5 || code[:4] != "PED-" {
		return 0, fmt.Errorf("malformed order code %q", code)
	}
	ids, err := g.h.DecodeInt64WithError(code[4:])
	if err != nil {
		return 0, fmt.Errorf("decode order code: %w", err)
	}
	if len(ids) != 1 {
		return 0, fmt.Errorf("malformed order code %q", code)
	}
	return ids[0], nil
}
