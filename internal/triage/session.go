package triage

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/amishk599/jobsift/internal/config"
	"github.com/amishk599/jobsift/internal/console"
	"github.com/amishk599/jobsift/internal/model"
	"github.com/amishk599/jobsift/internal/store"
)

// ErrInputClosed is returned when the answer stream ends before every pending
// job has been classified. Decisions made so far are already on disk.
var ErrInputClosed = errors.New("input closed before triage finished")

const (
	promptText  = "Do you want to accept this job? (Y/N/O): "
	invalidText = "Invalid input. Please enter Y, N or O."
)

// Session runs the interactive triage loop over a fetched-jobs list.
type Session struct {
	files  config.FilesConfig
	in     *bufio.Reader
	con    *console.Console
	logger *slog.Logger
}

// NewSession creates a session reading answers from in and writing prompts to con.
func NewSession(files config.FilesConfig, in io.Reader, con *console.Console, logger *slog.Logger) *Session {
	return &Session{
		files:  files,
		in:     bufio.NewReader(in),
		con:    con,
		logger: logger,
	}
}

// Run classifies every job in jobs that is not already in stores. Jobs without
// a description go straight to the no-description store; the rest are shown
// and the user is asked until a valid answer arrives. Each decision is saved
// before the next job is shown. Run returns the updated stores, also on error.
func (s *Session) Run(ctx context.Context, jobs []model.Job, stores Stores) (Stores, error) {
	done := stores.Links().Len()
	pending := Pending(jobs, stores)
	total := done + len(pending)

	s.logger.Debug("starting triage", "classified", done, "pending", len(pending))

	for i, job := range pending {
		if err := ctx.Err(); err != nil {
			return stores, err
		}

		if !job.HasDescription() {
			next, err := s.save(stores, job, model.CategoryNoDescription)
			if err != nil {
				return stores, err
			}
			stores = next
			continue
		}

		s.con.Clear()
		s.con.Println(console.Progress, "Job %d/%d", done+i+1, total)
		s.con.Println(console.Title, "%s at %s", job.Title, job.Company)
		s.con.Raw(*job.Description)

		c, err := s.ask()
		if err != nil {
			return stores, err
		}

		next, err := s.save(stores, job, c)
		if err != nil {
			return stores, err
		}
		stores = next
		s.printCounts(stores)
	}

	return stores, nil
}

// ask prompts until a valid answer is read.
func (s *Session) ask() (model.Category, error) {
	for {
		s.con.Print(console.Plain, promptText)
		line, err := s.in.ReadString('\n')
		if err != nil && line == "" {
			s.con.Raw("")
			if errors.Is(err, io.EOF) {
				return "", ErrInputClosed
			}
			return "", fmt.Errorf("reading answer: %w", err)
		}
		if c, ok := model.ParseDecision(line); ok {
			return c, nil
		}
		s.con.Println(console.Failure, invalidText)
	}
}

// save classifies job into c and persists that category's store.
func (s *Session) save(stores Stores, job model.Job, c model.Category) (Stores, error) {
	next := Classify(stores, job, c)
	path := s.files.CategoryPath(c)
	if err := store.Save(path, next.Get(c)); err != nil {
		return stores, fmt.Errorf("saving %s store: %w", c, err)
	}
	s.logger.Debug("classified job", "category", c, "link", job.Link)
	return next, nil
}

func (s *Session) printCounts(stores Stores) {
	s.con.Println(console.Plain, "Accepted jobs: %d", len(stores.Accepted))
	s.con.Println(console.Plain, "Rejected jobs: %d", len(stores.Rejected))
	s.con.Println(console.Plain, "No description: %d", len(stores.NoDescription))
}
