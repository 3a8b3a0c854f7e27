package store

import "github.com/amishk599/jobsift/internal/model"

// NopWriter is a no-op writer used in dry-run mode. Fetched jobs are reported
// but never written, so the next real fetch still sees them as new.
type NopWriter struct{}

func NewNopWriter() *NopWriter { return &NopWriter{} }

func (w *NopWriter) WriteJobs(jobs []model.Job) error { return nil }
func (w *NopWriter) Path() string                     { return "(dry run)" }
