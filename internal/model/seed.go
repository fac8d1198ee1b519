package model

import "time"

// Seed returns the fixed example collection used to initialize storage
// when no persisted data exists. The draft entry is stamped with now,
// matching a freshly started collection.
func Seed(now time.Time) []Post {
	return []Post{
		{
			ID:         "b7b2a6d7-1baf-4bd9-9f79-6d803a3d2159",
			Title:      "Exploring the Serene Landscapes of the North",
			Slug:       "exploring-the-serene-landscapes-of-the-north",
			CoverImage: "https://picsum.photos/seed/north/1200/800",
			Content: []ContentBlock{
				{ID: "1", Type: BlockH1, Content: "A Journey Begins"},
				{ID: "2", Type: BlockParagraph, Content: "The crisp morning air filled my lungs as I stepped out of the cabin. The world was painted in hues of deep green and misty grey, a signature of the northern wilderness. This was the beginning of a journey not just across lands, but into the very heart of nature."},
				{ID: "3", Type: BlockImage, Content: "https://picsum.photos/seed/forest/800/600"},
				{ID: "4", Type: BlockParagraph, Content: "They say the journey of a thousand miles begins with a single step. My first step was onto a path carpeted with pine needles, leading towards an unseen horizon."},
				{ID: "5", Type: BlockH2, Content: "The Whispering Woods"},
				{ID: "6", Type: BlockParagraph, Content: "The forest here is ancient, with trees that have stood for centuries. Their branches form a dense canopy, filtering the sunlight into ethereal rays that dance on the forest floor. It feels like walking through a cathedral built by time itself."},
				{ID: "7", Type: BlockQuote, Content: "In every walk with nature, one receives far more than he seeks."},
			},
			Tags:       []string{"travel", "nature", "adventure", "photography"},
			Status:     StatusPublished,
			CreatedAt:  time.Date(2023, time.October, 26, 10, 0, 0, 0, time.UTC),
			UpdatedAt:  time.Date(2023, time.October, 26, 12, 30, 0, 0, time.UTC),
			Reads:      1256,
			Engagement: 87,
		},
		{
			ID:         "f3a9e1d8-8b7c-4f6a-9e1d-3b4c5d6e7f8a",
			Title:      "The Art of Minimalist Design",
			Slug:       "the-art-of-minimalist-design",
			CoverImage: "https://picsum.photos/seed/minimal/1200/800",
			Content: []ContentBlock{
				{ID: "1", Type: BlockH1, Content: "Less is More"},
				{ID: "2", Type: BlockParagraph, Content: "Minimalism is not the lack of something. It's simply the perfect amount of something. In design, this philosophy translates to creating clean, uncluttered, and functional interfaces that prioritize content and user experience."},
				{ID: "3", Type: BlockH2, Content: "Core Principles"},
				{ID: "4", Type: BlockUListItem, Content: "Use of negative space"},
				{ID: "5", Type: BlockUListItem, Content: "Limited color palettes"},
				{ID: "6", Type: BlockUListItem, Content: "Strong typography"},
			},
			Tags:       []string{"design", "uiux", "minimalism", "webdev"},
			Status:     StatusPublished,
			CreatedAt:  time.Date(2023, time.November, 5, 14, 0, 0, 0, time.UTC),
			UpdatedAt:  time.Date(2023, time.November, 5, 16, 0, 0, 0, time.UTC),
			Reads:      2345,
			Engagement: 213,
		},
		{
			ID:    "a1b2c3d4-e5f6-4a8b-9c0d-1e2f3a4b5c6d",
			Title: "A New Post in the Works",
			Slug:  "a-new-post-in-the-works",
			Content: []ContentBlock{
				{ID: "1", Type: BlockParagraph, Content: "This is the beginning of a new masterpiece..."},
			},
			Tags:       []string{},
			Status:     StatusDraft,
			CreatedAt:  now,
			UpdatedAt:  now,
			Reads:      0,
			Engagement: 0,
		},
	}
}
