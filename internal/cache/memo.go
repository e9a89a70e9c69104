// Package cache holds the per-run keyed response cache and the on-disk match
// store. Both are owned by the analysis session and constructed per run; there
// is no ambient global state.
package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// memoSize bounds the in-memory cache. A full analysis touches one account,
// one match list and at most 100 match records, so this never evicts within a
// single run.
const memoSize = 512

// Memo is an in-memory cache keyed by the exact call arguments. Entries have
// no TTL - they live until the process exits, matching the memoization the
// pipeline depends on for repeated identical calls.
type Memo struct {
	lru *lru.Cache[string, any]
}

func NewMemo() *Memo {
	// New only errors on a non-positive size.
	l, _ := lru.New[string, any](memoSize)
	return &Memo{lru: l}
}

func (m *Memo) Get(key string) (any, bool) {
	return m.lru.Get(key)
}

func (m *Memo) Set(key string, value any) {
	m.lru.Add(key, value)
}

// AccountKey builds the memo key for an account lookup.
func AccountKey(gameName, tagLine string) string {
	return fmt.Sprintf("account:%s#%s", gameName, tagLine)
}

// MatchListKey builds the memo key for a match-id listing.
func MatchListKey(puuid string, count int) string {
	return fmt.Sprintf("matches:%s:%d", puuid, count)
}

// MatchKey builds the memo key for a match-detail fetch.
func MatchKey(matchID string) string {
	return "match:" + matchID
}
