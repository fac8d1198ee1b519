package config

// Storage keys for the persisted application state. The post collection
// and the theme preference live under independent keys so neither write
// can clobber the other.
const (
	StorageKeyPosts    = "blog-posts"
	StorageKeyDarkMode = "dark-mode"
)
