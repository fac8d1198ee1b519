// Package editor manages the lifecycle of editing a single post: a
// private working copy, a debounced auto-save, and the draft→published
// transition.
package editor

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell-blog/inkwell/internal/model"
	"github.com/inkwell-blog/inkwell/internal/slug"
	"github.com/inkwell-blog/inkwell/internal/store"
)

// ErrTitleRequired is surfaced when publishing a post with no title.
var ErrTitleRequired = errors.New("a title is required before publishing")

var editorLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	editorLogger = l
}

type SessionID string

// Options tune a session's timing. Zero values fall back to the
// application defaults (2s quiescence, 1s visible saving indicator).
type Options struct {
	Quiesce       time.Duration
	SavingVisible time.Duration
	Now           func() time.Time
}

const (
	DefaultQuiesce       = 2 * time.Second
	DefaultSavingVisible = 1 * time.Second
)

func (o Options) withDefaults() Options {
	if o.Quiesce <= 0 {
		o.Quiesce = DefaultQuiesce
	}
	if o.SavingVisible <= 0 {
		o.SavingVisible = DefaultSavingVisible
	}
	if o.Now == nil {
		o.Now = func() time.Time { return time.Now().UTC() }
	}
	return o
}

// Session owns the working copy of exactly one post. Every mutation
// restarts the auto-save timer; an explicit save or publish commits
// immediately. The working copy only reaches the store on commit.
type Session struct {
	ID SessionID

	store *store.PostStore
	opts  Options

	mu   sync.Mutex
	post model.Post

	autosave *time.Timer
	// saveGen invalidates a pending timer callback that lost the race
	// with a newer mutation or an explicit commit.
	saveGen uint64

	savingUntil time.Time
	lastUsed    time.Time
	closed      bool
}

// Open starts a session for the post with the given id, or for a fresh
// blank draft when id is empty. An unknown id returns
// store.ErrPostNotFound; the caller redirects to the new-post flow.
func Open(postStore *store.PostStore, id model.PostID, opts Options) (*Session, error) {
	opts = opts.withDefaults()

	var working model.Post
	if id == "" {
		working = model.NewPost(opts.Now())
	} else {
		existing, err := postStore.Get(id)
		if err != nil {
			return nil, err
		}
		working = existing.Clone()
	}

	return &Session{
		ID:       SessionID(model.NewPostID()),
		store:    postStore,
		opts:     opts,
		post:     working,
		lastUsed: opts.Now(),
	}, nil
}

// Post returns a copy of the current working copy.
func (s *Session) Post() model.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.post.Clone()
}

// Saving reports whether the saving indicator should be visible. It is
// held for a minimum duration after each commit so the indicator is
// perceptible even for instant writes.
func (s *Session) Saving() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts.Now().Before(s.savingUntil)
}

// LastUsed is the time of the most recent interaction, for eviction.
func (s *Session) LastUsed() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

func (s *Session) SetTitle(title string) {
	s.mutate(func() { s.post.Title = title })
}

func (s *Session) SetCoverImage(url string) {
	s.mutate(func() { s.post.CoverImage = url })
}

func (s *Session) SetTags(tags []string) {
	s.mutate(func() {
		s.post.Tags = make([]string, len(tags))
		copy(s.post.Tags, tags)
	})
}

// AddBlock appends a fresh block of the given type to the working
// copy's content sequence and returns it.
func (s *Session) AddBlock(typ model.BlockType) model.ContentBlock {
	block := model.NewBlock(typ)
	s.mutate(func() { s.post.Content = append(s.post.Content, block) })
	return block
}

// UpdateBlockContent replaces the content of the block with the given
// id. An unknown id is a silent no-op: block identity never leaves the
// session, so a miss only happens under incorrect usage.
func (s *Session) UpdateBlockContent(id model.BlockID, content string) {
	s.mutate(func() {
		for i := range s.post.Content {
			if s.post.Content[i].ID == id {
				s.post.Content[i].Content = content
				return
			}
		}
	})
}

// SetBlocks replaces the whole block sequence, used by markdown import.
func (s *Session) SetBlocks(blocks []model.ContentBlock) {
	s.mutate(func() {
		s.post.Content = make([]model.ContentBlock, len(blocks))
		copy(s.post.Content, blocks)
	})
}

// mutate applies fn to the working copy and restarts the auto-save
// quiescence timer, cancelling any pending commit.
func (s *Session) mutate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	fn()
	s.lastUsed = s.opts.Now()
	s.scheduleLocked()
}

func (s *Session) scheduleLocked() {
	if s.autosave != nil {
		s.autosave.Stop()
	}

	s.saveGen++
	gen := s.saveGen
	s.autosave = time.AfterFunc(s.opts.Quiesce, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		// A later mutation, commit, or close superseded this timer.
		if s.closed || gen != s.saveGen {
			return
		}
		s.commitLocked()
	})
}

// SaveDraft commits the working copy immediately without changing its
// status.
func (s *Session) SaveDraft() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	return s.commitLocked()
}

// Publish validates the title, marks the working copy published, and
// commits. It returns the slug for the caller to navigate to.
func (s *Session) Publish() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", nil
	}

	if s.post.Title == "" {
		return "", ErrTitleRequired
	}

	s.post.Status = model.StatusPublished
	err := s.commitLocked()
	return s.post.Slug, err
}

// commitLocked writes the working copy into the store: slug is
// recomputed from the title, updatedAt refreshed, and the post merged
// in place or appended. A persistence failure keeps the working copy
// and the in-memory collection intact; the error is a warning, not a
// loss of edits.
func (s *Session) commitLocked() error {
	if s.autosave != nil {
		s.autosave.Stop()
		s.autosave = nil
	}
	s.saveGen++

	s.post.Slug = slug.ForTitle(s.post.Title)
	now := s.opts.Now()
	s.post.UpdatedAt = now
	s.savingUntil = now.Add(s.opts.SavingVisible)
	s.lastUsed = now

	if err := s.store.Upsert(s.post.Clone()); err != nil {
		editorLogger.Warn().Err(err).Str("post_id", string(s.post.ID)).Msg("Commit did not persist")
		return err
	}
	return nil
}

// Close ends the session, cancelling any pending auto-save without
// committing it. Edits made within the last quiescence window are
// dropped, matching the navigate-away behavior of the editor.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.closed = true
	s.saveGen++
	if s.autosave != nil {
		s.autosave.Stop()
		s.autosave = nil
	}
}
