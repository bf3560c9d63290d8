package domain

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// words is a fixed list credentials are drawn from; BIP39 generation itself is
// out of scope, so this stands in for "24 random words from a fixed list"
var words = [...]string{
	"abandon", "ability", "absorb", "account", "across", "actual", "admit", "adult",
	"advance", "afford", "afraid", "again", "agent", "ahead", "alarm", "album",
	"alert", "alien", "alley", "almost", "alone", "alpha", "already", "amount",
	"amused", "anchor", "ancient", "anger", "animal", "ankle", "answer", "anxiety",
	"apart", "apple", "approve", "april", "arctic", "arena", "argue", "armor",
	"around", "arrest", "arrive", "arrow", "artist", "aspect", "assume", "athlete",
	"attack", "attend", "august", "aunt", "author", "auto", "autumn", "average",
	"avocado", "avoid", "awake", "aware", "basic", "beach", "bean", "bench",
	"bind", "biology", "bird", "bitter", "blade", "blast", "bleak", "bless",
	"blind", "blood", "blossom", "blue", "blur", "blush", "board", "boat",
}

// GeneratePhrase returns a space-joined 24-word credential string
func GeneratePhrase() string {
	picked := make([]string, 24)
	for i := range picked {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(words))))
		if err != nil {
			panic("credentials: failed to read random bytes: " + err.Error())
		}
		picked[i] = words[n.Int64()]
	}
	return strings.Join(picked, " ")
}
