// Package coins defines the ordered set of asset symbols that key the balance
// fields of every generated account record.
package coins

import (
	"errors"
	"fmt"
	"strings"
)

// Coin list errors.
var (
	ErrEmptyList     = errors.New("coin list cannot be empty")
	ErrDuplicateCoin = errors.New("duplicate coin symbol")
	ErrInvalidSymbol = errors.New("invalid coin symbol")
)

// List is an immutable, ordered sequence of unique coin symbols.
// The zero value is an empty list and is rejected by every consumer.
type List struct {
	symbols []string
}

// New builds a List from symbols, preserving order.
// It returns ErrEmptyList when no symbols are given, ErrInvalidSymbol for blank
// symbols or the reserved "id" key, and ErrDuplicateCoin for repeated symbols.
func New(symbols []string) (List, error) {
	if len(symbols) == 0 {
		return List{}, ErrEmptyList
	}

	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for i, s := range symbols {
		if strings.TrimSpace(s) == "" || s == "id" {
			return List{}, fmt.Errorf("%w at position %d: %q", ErrInvalidSymbol, i, s)
		}
		if _, ok := seen[s]; ok {
			return List{}, fmt.Errorf("%w: %s", ErrDuplicateCoin, s)
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	return List{symbols: out}, nil
}

// MustNew is like New but panics on error. Intended for fixed source data.
func MustNew(symbols []string) List {
	l, err := New(symbols)
	if err != nil {
		panic(err)
	}
	return l
}

// Len returns the number of symbols.
func (l List) Len() int {
	return len(l.symbols)
}

// Symbols returns a copy of the symbols in order.
func (l List) Symbols() []string {
	out := make([]string, len(l.symbols))
	copy(out, l.symbols)
	return out
}

// At returns the symbol at position i.
func (l List) At(i int) string {
	return l.symbols[i]
}

// Contains reports whether symbol is part of the list.
func (l List) Contains(symbol string) bool {
	for _, s := range l.symbols {
		if s == symbol {
			return true
		}
	}
	return false
}

// Default returns the built-in coin list used when no configuration overrides it.
func Default() List {
	return MustNew(DefaultSymbols())
}

// DefaultSymbols returns a copy of the built-in symbol set.
func DefaultSymbols() []string {
	out := make([]string, len(defaultSymbols))
	copy(out, defaultSymbols)
	return out
}

//nolint:gochecknoglobals // Fixed source data, only exposed through copies.
var defaultSymbols = []string{
	"BTC", "ETH", "USDT", "USDC", "XRP", "DOGE", "SOL", "OKB", "APT", "DASH",
	"DOT", "ELF", "EOS", "ETC", "FIL", "LINK", "LTC", "OKT", "PEOPLE", "TON",
	"TRX", "UNI", "1INCH", "AAVE", "ADA", "AGLD", "AIDOGE", "AKITA", "ALGO", "ALPHA",
	"ANT", "APE", "API3", "AR", "ARB", "ATOM", "AVAX", "AXS", "BABYDOGE", "BADGER",
	"BAL", "BAND", "BAT", "BCH", "BETH", "BICO", "BLUR", "BNB", "BNT", "BSV",
	"BTM", "BZZ", "CEL", "CELO", "CELR", "CETUS", "CFX", "CHZ", "CLV", "COMP",
	"CONV", "CORE", "CQT", "CRO", "CRV", "CSPR", "CVC", "DOME", "DORA", "DYDX",
	"EFI", "EGLD", "ENJ", "ENS", "ETHW", "FITFI", "FLM", "FLOKI", "FLOW", "FTM",
	"GALA", "GFT", "GLMR", "GMT", "GMX", "GODS", "GRT", "HBAR", "ICP", "IMX",
	"IOST", "IOTA", "JST", "KISHU", "KLAY", "KNC", "KSM", "LAT", "LDO", "LON",
	"LOOKS", "LPT", "LRC", "LUNA", "LUNC", "MAGIC", "MANA", "MASK", "MATIC", "MINA",
	"MKR", "NEAR", "NEO", "NFT", "OMG", "ONT", "OP", "PEPE", "PERP", "QTUM",
	"RDNT", "REN", "RSR", "RSS3", "RVN", "SAND", "SHIB", "SKL", "SLP", "SNT",
	"SNX", "STARL", "STORJ", "STX", "SUI", "SUSHI", "SWEAT", "SWRV", "THETA", "TRB",
	"TUSD", "UMA", "USTC", "WAVES", "WOO", "XCH", "XLM", "XMR", "XTZ", "YFI",
	"YFII", "YGG", "ZEC", "ZEN", "ZIL", "ZRX",
	"BTC1", "ETH1", "USDT1", "USDC1", "XRP1", "DOGE1", "SOL1", "OKB1",
	"APT1", "DASH1", "DOT1", "ELF1", "EOS1", "ETC1", "FIL1", "LINK1",
	"BTC2", "ETH2", "USDT2", "USDC2", "XRP2", "DOGE2", "SOL2", "OKB2",
	"APT2", "DASH2", "DOT2", "ELF2", "EOS2", "ETC2", "FIL2", "LINK2",
	"BTC3", "ETH3", "USDT3", "USDC3", "XRP3", "DOGE3", "SOL3", "OKB3",
	"APT3", "DASH3", "DOT3", "ELF3", "EOS3", "ETC3", "FIL3", "LINK3",
	"BTC4", "ETH4", "USDT4", "USDC4", "XRP4", "DOGE4", "SOL4", "OKB4",
	"APT4", "DASH4", "DOT4", "ELF4", "EOS4", "ETC4", "FIL4", "LINK4",
}
