package config

const (
	// MaxFolderNameLength is the maximum length for folder display names.
	// Limited to 255 to fit in VARCHAR(255).
	MaxFolderNameLength = 255

	// MaxDocumentTitleLength is the maximum length for document titles.
	MaxDocumentTitleLength = 255

	// MaxSlugLength is the maximum length of a single URL segment.
	MaxSlugLength = 100

	// MaxDescriptionLength caps folder and document descriptions.
	MaxDescriptionLength = 1000

	// MaxTagCount and MaxTagLength bound the tag list of a document.
	MaxTagCount  = 20
	MaxTagLength = 50

	// MaxSlugPathSegments bounds how deep a requested docs path may be.
	// Deeper requests are rejected before touching the store.
	MaxSlugPathSegments = 32

	// FeedItemLimit is the number of documents included in the RSS feed.
	FeedItemLimit = 20

	// MaxImportBytes caps a single uploaded file or archive entry.
	MaxImportBytes = 20 << 20

	// MaxImportFiles caps the number of pages read from one import request.
	MaxImportFiles = 1000
)
