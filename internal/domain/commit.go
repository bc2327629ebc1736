package domain

import "time"

// CommitRecord is one externally observed event turned into a local ledger entry.
// The natural ID is only unique within its Source.
type CommitRecord struct {
	ID            string
	Source        string
	ProjectID     int64
	Iteration     int
	Timestamp     time.Time
	SeenTimestamp time.Time
	CommitHash    string // empty until materialized
}

// ShortHash returns the first seven characters of the commit hash.
func (r CommitRecord) ShortHash() string {
	if len(r.CommitHash) <= 7 {
		return r.CommitHash
	}
	return r.CommitHash[:7]
}

// WithHash returns a copy of the record carrying the given commit hash.
func (r CommitRecord) WithHash(hash string) CommitRecord {
	r.CommitHash = hash
	return r
}
