// Package fixture reads generated account documents back from disk and
// verifies them.
package fixture

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/rshade/fixturegen/internal/coins"
	"github.com/rshade/fixturegen/internal/generator"
)

// Reader errors.
var (
	ErrDirNotFound  = errors.New("fixture directory not found")
	ErrNoDocuments  = errors.New("no json documents found")
	ErrMalformed    = errors.New("malformed fixture document")
	ErrMissingCoin  = errors.New("account is missing a coin balance")
	ErrUnknownField = errors.New("account has an unknown field")
)

// Account is a decoded fixture record. Equity is aligned with the coin list
// used to read it; Debt is always zero-filled since fixtures carry none.
type Account struct {
	ID     string
	Equity []uint64
	Debt   []uint64
}

// TotalEquity returns the sum of all equity balances.
func (a Account) TotalEquity() *big.Int {
	return sum(a.Equity)
}

// TotalDebt returns the sum of all debt balances.
func (a Account) TotalDebt() *big.Int {
	return sum(a.Debt)
}

func sum(values []uint64) *big.Int {
	total := new(big.Int)
	var v big.Int
	for _, x := range values {
		total.Add(total, v.SetUint64(x))
	}
	return total
}

// ListDocuments returns every *.json file under dir, recursively, sorted by path.
func ListDocuments(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDirNotFound, dir)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrDirNotFound, dir)
	}

	var docs []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".json") {
			docs = append(docs, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("%w under %s", ErrNoDocuments, dir)
	}
	sort.Strings(docs)
	return docs, nil
}

// ReadDocument decodes the accounts stored in the file at path.
func ReadDocument(path string, list coins.List) ([]Account, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	accounts, err := DecodeAccounts(bufio.NewReader(f), list)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return accounts, nil
}

// DecodeAccounts decodes a JSON array of account objects. Every object must
// hold an "id" plus exactly one unsigned integer string per coin in list.
func DecodeAccounts(r io.Reader, list coins.List) ([]Account, error) {
	if list.Len() == 0 {
		return nil, coins.ErrEmptyList
	}

	var raw []map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	accounts := make([]Account, 0, len(raw))
	for i, obj := range raw {
		acct, err := decodeAccount(obj, list)
		if err != nil {
			return nil, fmt.Errorf("account %d: %w", i, err)
		}
		accounts = append(accounts, acct)
	}
	return accounts, nil
}

func decodeAccount(obj map[string]json.RawMessage, list coins.List) (Account, error) {
	var acct Account

	rawID, ok := obj[generator.IDField]
	if !ok {
		return acct, fmt.Errorf("%w: missing %q", ErrMalformed, generator.IDField)
	}
	if err := json.Unmarshal(rawID, &acct.ID); err != nil {
		return acct, fmt.Errorf("%w: id must be a string", ErrMalformed)
	}

	for key := range obj {
		if key != generator.IDField && !list.Contains(key) {
			return acct, fmt.Errorf("%w: %s", ErrUnknownField, key)
		}
	}

	n := list.Len()
	acct.Equity = make([]uint64, n)
	acct.Debt = make([]uint64, n)
	for i := range n {
		symbol := list.At(i)
		rawValue, found := obj[symbol]
		if !found {
			return acct, fmt.Errorf("%w: %s", ErrMissingCoin, symbol)
		}

		var s string
		if err := json.Unmarshal(rawValue, &s); err != nil {
			return acct, fmt.Errorf("%w: %s balance must be a string", ErrMalformed, symbol)
		}
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return acct, fmt.Errorf("%w: %s balance %q is not an unsigned integer", ErrMalformed, symbol, s)
		}
		acct.Equity[i] = v
	}

	return acct, nil
}
