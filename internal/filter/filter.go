package filter

import "github.com/amishk599/jobsift/internal/model"

// LinkSet tracks job links already present in one or more stores.
type LinkSet struct {
	links map[string]struct{}
}

// NewLinkSet returns a set holding every link from the given job lists.
func NewLinkSet(lists ...[]model.Job) *LinkSet {
	s := &LinkSet{links: make(map[string]struct{})}
	for _, list := range lists {
		for _, job := range list {
			s.Add(job.Link)
		}
	}
	return s
}

// Add records link as seen.
func (s *LinkSet) Add(link string) {
	s.links[link] = struct{}{}
}

// Has reports whether link has been seen.
func (s *LinkSet) Has(link string) bool {
	_, ok := s.links[link]
	return ok
}

// Len returns the number of distinct links.
func (s *LinkSet) Len() int {
	return len(s.links)
}

// Unseen returns the jobs whose link is not in seen, in their original order.
// A link repeated within jobs is kept only once (first occurrence). seen is not
// modified.
func Unseen(jobs []model.Job, seen *LinkSet) []model.Job {
	batch := make(map[string]struct{}, len(jobs))
	out := make([]model.Job, 0, len(jobs))
	for _, job := range jobs {
		if seen.Has(job.Link) {
			continue
		}
		if _, dup := batch[job.Link]; dup {
			continue
		}
		batch[job.Link] = struct{}{}
		out = append(out, job)
	}
	return out
}
