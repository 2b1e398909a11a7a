package docsystem

// AttachDocuments returns a copy of folders with each document appended to
// the Documents of the folder it belongs to. Documents whose folder is not in
// the list are dropped.
func AttachDocuments(folders []Folder, docs []Document) []Folder {
	out := make([]Folder, len(folders))
	index := make(map[string]int, len(folders))
	for i, f := range folders {
		f.Documents = nil
		out[i] = f
		if _, seen := index[f.ID]; !seen {
			index[f.ID] = i
		}
	}
	for _, doc := range docs {
		if i, ok := index[doc.FolderID]; ok {
			out[i].Documents = append(out[i].Documents, doc)
		}
	}
	return out
}
