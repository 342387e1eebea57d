package familytree

import (
	"regexp"
	"strconv"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// IDAllocator mints ids for persons created inside the session (new persons,
// siblings, placeholder parents). Implementations must not collide within a
// session; the store additionally rejects an id already present in the graph
// and asks for another.
type IDAllocator interface {
	NewID(first, last string) string
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// NanoidAllocator derives a readable slug from the name parts and appends a
// nanoid suffix, e.g. "jane-doe-x7k2mq".
type NanoidAllocator struct{}

func (NanoidAllocator) NewID(first, last string) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(first+"-"+last), "-"), "-")
	suffix := gonanoid.MustGenerate(idAlphabet, 6)
	if slug == "" {
		return suffix
	}
	return slug + "-" + suffix
}

// SequenceAllocator mints deterministic ids for tests.
type SequenceAllocator struct {
	n int
}

func (a *SequenceAllocator) NewID(first, last string) string {
	a.n++
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(first+"-"+last), "-"), "-")
	suffix := "seq" + strconv.Itoa(a.n)
	if slug == "" {
		return suffix
	}
	return slug + "-" + suffix
}
