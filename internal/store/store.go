// Package store owns the authoritative post collection. All mutation
// funnels through Replace, which persists the collection after every
// swap; everything else is a read-only view.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/inkwell-blog/inkwell/internal/config"
	"github.com/inkwell-blog/inkwell/internal/model"
	"github.com/inkwell-blog/inkwell/internal/storage"
)

var ErrPostNotFound = errors.New("post not found")

var storeLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	storeLogger = l
}

// PostStore is the single source of truth for the post collection,
// round-tripping it to durable storage under one key.
type PostStore struct {
	mu      sync.RWMutex
	posts   []model.Post
	storage storage.Store

	changeNotifier func(model.PostID)

	// now is swapped out in tests.
	now func() time.Time
}

func NewPostStore(backend storage.Store) *PostStore {
	return &PostStore{
		storage: backend,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// SetChangeNotifier sets a function called with the id of every post
// that was added or modified by a Replace.
func (s *PostStore) SetChangeNotifier(notifier func(model.PostID)) {
	s.changeNotifier = notifier
}

// Load initializes the in-memory collection from storage. Missing or
// corrupt data degrades to the fixed seed collection, which is then
// written back as the initial persisted state. Load never fails.
func (s *PostStore) Load() {
	data, err := s.storage.Read(config.StorageKeyPosts)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			storeLogger.Warn().Err(err).Msg("Error reading persisted posts, seeding")
		}
		s.seed()
		return
	}

	var posts []model.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		storeLogger.Warn().Err(err).Msg("Persisted posts are corrupt, seeding")
		s.seed()
		return
	}

	s.mu.Lock()
	s.posts = posts
	s.mu.Unlock()

	storeLogger.Info().Int("posts", len(posts)).Msg("Loaded post collection")
}

func (s *PostStore) seed() {
	seeded := model.Seed(s.now())

	s.mu.Lock()
	s.posts = seeded
	s.mu.Unlock()

	if err := s.persist(seeded); err != nil {
		storeLogger.Warn().Err(err).Msg("Error persisting seed collection")
	}
}

// GetAll returns the current collection in insertion order. The slice
// is a copy; callers must treat the posts as read-only.
func (s *PostStore) GetAll() []model.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]model.Post, len(s.posts))
	copy(posts, s.posts)
	return posts
}

// Get fetches a post by id.
func (s *PostStore) Get(id model.PostID) (model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, post := range s.posts {
		if post.ID == id {
			return post.Clone(), nil
		}
	}
	return model.Post{}, ErrPostNotFound
}

// Replace atomically swaps the collection for the updater's result and
// persists it. When the durable write fails, the in-memory state keeps
// the new collection so no edits are lost, and the error is returned
// for the caller to surface as a warning.
func (s *PostStore) Replace(updater func([]model.Post) []model.Post) error {
	s.mu.Lock()

	old := s.posts
	input := make([]model.Post, len(old))
	copy(input, old)

	next := updater(input)
	s.posts = next

	persisted := make([]model.Post, len(next))
	copy(persisted, next)
	s.mu.Unlock()

	s.notifyChanged(old, persisted)

	if err := s.persist(persisted); err != nil {
		return fmt.Errorf("collection updated in memory, persistence failed: %w", err)
	}
	return nil
}

func (s *PostStore) persist(posts []model.Post) error {
	data, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("error encoding posts: %w", err)
	}
	return s.storage.Write(config.StorageKeyPosts, data)
}

func (s *PostStore) notifyChanged(old, next []model.Post) {
	if s.changeNotifier == nil {
		return
	}

	before := make(map[model.PostID]time.Time, len(old))
	for _, post := range old {
		before[post.ID] = post.UpdatedAt
	}

	for _, post := range next {
		if updatedAt, ok := before[post.ID]; !ok || !updatedAt.Equal(post.UpdatedAt) {
			go s.changeNotifier(post.ID)
		}
	}
}

// Upsert replaces the post with a matching id in place, or appends it
// to the end of the collection. This is the editor session's commit
// target.
func (s *PostStore) Upsert(post model.Post) error {
	return s.Replace(func(posts []model.Post) []model.Post {
		for i := range posts {
			if posts[i].ID == post.ID {
				posts[i] = post
				return posts
			}
		}
		return append(posts, post)
	})
}

// Delete removes a post by id. Deleting an unknown id is a no-op.
func (s *PostStore) Delete(id model.PostID) error {
	return s.Replace(func(posts []model.Post) []model.Post {
		kept := posts[:0]
		for _, post := range posts {
			if post.ID != id {
				kept = append(kept, post)
			}
		}
		return kept
	})
}

// TogglePublish flips a post between draft and published, refreshing
// updatedAt and leaving every other field untouched.
func (s *PostStore) TogglePublish(id model.PostID) error {
	now := s.now()
	return s.Replace(func(posts []model.Post) []model.Post {
		for i := range posts {
			if posts[i].ID != id {
				continue
			}
			if posts[i].Status == model.StatusPublished {
				posts[i].Status = model.StatusDraft
			} else {
				posts[i].Status = model.StatusPublished
			}
			posts[i].UpdatedAt = now
		}
		return posts
	})
}
