package tips

import (
	"fmt"
	"strings"

	"github.com/jrsteele09/betatips/games"
	apperrors "github.com/jrsteele09/betatips/internal/errors"
)

// Policy decides what happens to records whose category is not one of games.Categories.
type Policy int

const (
	PolicyQuarantine Policy = iota // keep them aside in BucketSet.Quarantined
	PolicyDrop                     // discard them
	PolicyReject                   // fail the whole load
)

func (p Policy) String() string {
	switch p {
	case PolicyDrop:
		return "drop"
	case PolicyReject:
		return "reject"
	}
	return "quarantine"
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "quarantine":
		return PolicyQuarantine, nil
	case "drop":
		return PolicyDrop, nil
	case "reject":
		return PolicyReject, nil
	}
	return PolicyQuarantine, fmt.Errorf("unknown category policy %q", s)
}

// Bucket is one category and its records in fetch order.
type Bucket struct {
	Category games.Category
	Games    []games.Game
}

// BucketSet holds one bucket per known category for a single day. The zero value is a
// valid empty set.
type BucketSet struct {
	Day         string
	buckets     map[games.Category][]games.Game
	Quarantined []games.Game
}

// Get returns the records of c, nil when there are none.
func (b BucketSet) Get(c games.Category) []games.Game {
	return b.buckets[c]
}

// Buckets returns every known category in display order, including empty ones.
func (b BucketSet) Buckets() []Bucket {
	out := make([]Bucket, 0, len(games.Categories))
	for _, c := range games.Categories {
		out = append(out, Bucket{Category: c, Games: b.buckets[c]})
	}
	return out
}

// Len is the number of bucketed records (quarantined excluded).
func (b BucketSet) Len() int {
	n := 0
	for _, list := range b.buckets {
		n += len(list)
	}
	return n
}

// Partition splits records into the known category buckets, preserving fetch order.
func Partition(day string, records []games.Game, policy Policy) (BucketSet, error) {
	set := BucketSet{Day: day, buckets: make(map[games.Category][]games.Game, len(games.Categories))}
	var unknown []string
	for _, g := range records {
		if !g.Category.Known() {
			unknown = append(unknown, g.RawCategory)
			if policy == PolicyQuarantine {
				set.Quarantined = append(set.Quarantined, g)
			}
			continue
		}
		set.buckets[g.Category] = append(set.buckets[g.Category], g)
	}
	if policy == PolicyReject && len(unknown) > 0 {
		return BucketSet{Day: day}, fmt.Errorf("%w: %s", apperrors.ErrUnknownCategory, quoteAll(unknown))
	}
	return set, nil
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return strings.Join(quoted, ", ")
}
