package models

import (
	"encoding/json"
	"sort"
	"time"
)

// Question represents a submitted board question with its engagement and
// moderation state. Questions are soft-deleted via Hidden, never removed.
type Question struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	Category   string     `json:"category"`
	Timestamp  time.Time  `json:"timestamp"`
	Upvotes    int        `json:"upvotes"`
	UpvotedIPs IPSet      `json:"upvotedIPs"`
	Resolved   bool       `json:"resolved,omitempty"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
	Hidden     bool       `json:"hidden,omitempty"`
	HiddenAt   *time.Time `json:"hiddenAt,omitempty"`
}

// Clone returns a deep copy so cached records cannot be mutated by callers.
func (q Question) Clone() Question {
	out := q
	out.UpvotedIPs = q.UpvotedIPs.Clone()
	if q.ResolvedAt != nil {
		t := *q.ResolvedAt
		out.ResolvedAt = &t
	}
	if q.HiddenAt != nil {
		t := *q.HiddenAt
		out.HiddenAt = &t
	}
	return out
}

// IPSet is a set of IP addresses with constant-time membership checks.
// It serializes as a sorted JSON array of strings so the on-disk document
// stays a plain array.
type IPSet map[string]struct{}

// NewIPSet creates a set from the given addresses.
func NewIPSet(ips ...string) IPSet {
	s := make(IPSet, len(ips))
	for _, ip := range ips {
		s[ip] = struct{}{}
	}
	return s
}

// Contains reports whether ip is a member.
func (s IPSet) Contains(ip string) bool {
	_, ok := s[ip]
	return ok
}

// Add inserts ip into the set.
func (s IPSet) Add(ip string) {
	s[ip] = struct{}{}
}

// Clone returns an independent copy of the set.
func (s IPSet) Clone() IPSet {
	out := make(IPSet, len(s))
	for ip := range s {
		out[ip] = struct{}{}
	}
	return out
}

// MarshalJSON encodes the set as a sorted string array.
func (s IPSet) MarshalJSON() ([]byte, error) {
	ips := make([]string, 0, len(s))
	for ip := range s {
		ips = append(ips, ip)
	}
	sort.Strings(ips)
	return json.Marshal(ips)
}

// UnmarshalJSON decodes a string array into the set, dropping duplicates.
func (s *IPSet) UnmarshalJSON(data []byte) error {
	var ips []string
	if err := json.Unmarshal(data, &ips); err != nil {
		return err
	}
	*s = NewIPSet(ips...)
	return nil
}
