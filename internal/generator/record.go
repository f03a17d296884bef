package generator

import (
	"bytes"

	json "github.com/goccy/go-json"

	"github.com/rshade/fixturegen/internal/coins"
)

// IDField is the key holding the account identifier in every record.
const IDField = "id"

// Record is one synthetic account: an id plus one decimal balance per coin.
// Balances are aligned with the coin list the record was generated for.
type Record struct {
	ID       string
	Balances []string

	coins coins.List
}

// Coins returns the coin list the record's balances are aligned with.
func (r Record) Coins() coins.List {
	return r.coins
}

// Balance returns the balance stored for symbol and whether it exists.
func (r Record) Balance(symbol string) (string, bool) {
	for i := range r.Balances {
		if r.coins.At(i) == symbol {
			return r.Balances[i], true
		}
	}
	return "", false
}

// NumFields returns the number of JSON fields the record serializes to.
func (r Record) NumFields() int {
	return 1 + len(r.Balances)
}

// MarshalJSON encodes the record as a flat object of string values with "id"
// first and coins in list order. A plain map would lose that order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	if err := writeField(&buf, IDField, r.ID); err != nil {
		return nil, err
	}
	for i, balance := range r.Balances {
		buf.WriteByte(',')
		if err := writeField(&buf, r.coins.At(i), balance); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeField(buf *bytes.Buffer, key, value string) error {
	k, err := json.Marshal(key)
	if err != nil {
		return err
	}
	v, err := json.Marshal(value)
	if err != nil {
		return err
	}
	buf.Write(k)
	buf.WriteByte(':')
	buf.Write(v)
	return nil
}
