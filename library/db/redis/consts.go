package redis

const (
	keyPrefix = "search-rag/"

	// KeyPrefixActorSearch is the key prefix for cached Actor result sequences
	KeyPrefixActorSearch = keyPrefix + "actor/"
)
