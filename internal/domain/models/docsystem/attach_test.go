package docsystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttachDocuments(t *testing.T) {
	folders := []Folder{
		{ID: "a", Slug: "a", Documents: []Document{{ID: "stale"}}},
		{ID: "b", Slug: "b"},
	}
	docs := []Document{
		{ID: "d1", FolderID: "b"},
		{ID: "d2", FolderID: "a"},
		{ID: "d3", FolderID: "gone"},
		{ID: "d4", FolderID: "b"},
	}

	out := AttachDocuments(folders, docs)

	assert.Len(t, out, 2)
	assert.Equal(t, []Document{{ID: "d2", FolderID: "a"}}, out[0].Documents)
	assert.Equal(t, []Document{{ID: "d1", FolderID: "b"}, {ID: "d4", FolderID: "b"}}, out[1].Documents)
	assert.Equal(t, []Document{{ID: "stale"}}, folders[0].Documents, "input is not mutated")
}
