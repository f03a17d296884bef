// Package generator synthesizes user account fixtures and writes them to disk
// as one JSON document per batch.
//
// Every record carries a random hexadecimal "id" followed by one string-encoded
// balance per coin, in coin-list order:
//
//	[{"id":"3f0c...","BTC":"19523411","ETH":"7300211", ...}, ...]
//
// Two randomness sources are injected separately. Balances come from a
// BalanceSampler (a statistical generator, optionally seeded) and ids come from
// an IDSampler, which defaults to crypto/rand.
//
// Batches are written sequentially to <dir>/batch<index>.json. The output
// directory must already exist; the generator never creates it.
package generator
