package model

// BlockType is the closed set of content block variants. The string
// values are the persisted representation and must stay stable.
type BlockType string

const (
	BlockH1        BlockType = "h1"
	BlockH2        BlockType = "h2"
	BlockH3        BlockType = "h3"
	BlockParagraph BlockType = "paragraph"
	BlockQuote     BlockType = "quote"
	BlockCode      BlockType = "code"
	BlockImage     BlockType = "image"
	BlockVideo     BlockType = "video"
	BlockDivider   BlockType = "divider"
	BlockUListItem BlockType = "ul"
	BlockOListItem BlockType = "ol"
)

// AllBlockTypes lists every variant in declaration order. Render and
// editor toolbars iterate this rather than hard-coding the set.
var AllBlockTypes = []BlockType{
	BlockH1,
	BlockH2,
	BlockH3,
	BlockParagraph,
	BlockQuote,
	BlockCode,
	BlockImage,
	BlockVideo,
	BlockDivider,
	BlockUListItem,
	BlockOListItem,
}

func (t BlockType) Valid() bool {
	switch t {
	case BlockH1, BlockH2, BlockH3, BlockParagraph, BlockQuote, BlockCode,
		BlockImage, BlockVideo, BlockDivider, BlockUListItem, BlockOListItem:
		return true
	}
	return false
}

// IsHeading reports whether the block contributes to the table of contents.
func (t BlockType) IsHeading() bool {
	return t == BlockH1 || t == BlockH2 || t == BlockH3
}

// DividerContent seeds a freshly added divider block.
const DividerContent = "---"

// ContentBlock is one unit of post body content. The meaning of Content
// depends on Type: body text for text variants, the source URL for
// images, raw source for code blocks.
type ContentBlock struct {
	ID      BlockID   `json:"id"`
	Type    BlockType `json:"type"`
	Content string    `json:"content"`

	// Language is a syntax highlighting hint, meaningful for code blocks.
	Language string `json:"language,omitempty"`
	// URL is the embed source, meaningful for video blocks.
	URL string `json:"url,omitempty"`
}

// NewBlock creates an empty block of the given type with a fresh id.
// Divider blocks carry their fixed separator marker as content.
func NewBlock(typ BlockType) ContentBlock {
	block := ContentBlock{
		ID:   NewBlockID(),
		Type: typ,
	}
	if typ == BlockDivider {
		block.Content = DividerContent
	}
	return block
}
