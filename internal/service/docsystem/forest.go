package docsystem

import (
	"sort"

	models "portfolio/internal/domain/models/docsystem"
)

// BuildForest turns a flat, unordered folder list into the ordered docs
// forest. Documents attached to each folder become leaf entries of its node.
//
// Nodes are keyed by id first and linked to their declared parent in a single
// pass, so the build never follows parent pointers. Folders whose parent is
// missing, that name themselves as parent, or that sit on a parent cycle are
// placed at root level and reported in Forest.Orphans. Siblings and documents
// are sorted by Order with input order breaking ties.
func BuildForest(folders []models.Folder) *models.Forest {
	nodes := make(map[string]*models.FolderTreeNode, len(folders))
	ordered := make([]*models.FolderTreeNode, 0, len(folders))

	// First pass: one node per folder id, first occurrence wins
	for i := range folders {
		folder := &folders[i]
		if _, exists := nodes[folder.ID]; exists {
			continue
		}
		node := &models.FolderTreeNode{
			ID:          folder.ID,
			Name:        folder.Name,
			Slug:        folder.Slug,
			Description: folder.Description,
			Order:       folder.Order,
			ParentID:    folder.ParentID,
			Folders:     []*models.FolderTreeNode{},
			Documents:   make([]models.DocumentTreeNode, 0, len(folder.Documents)),
		}
		for _, doc := range folder.Documents {
			node.Documents = append(node.Documents, models.DocumentTreeNode{
				ID:        doc.ID,
				Title:     doc.Title,
				Slug:      doc.Slug,
				Order:     doc.Order,
				Published: doc.Published,
				UpdatedAt: doc.UpdatedAt,
			})
		}
		nodes[folder.ID] = node
		ordered = append(ordered, node)
	}

	// Second pass: link each node to its declared parent
	forest := &models.Forest{
		Roots:       []*models.FolderTreeNode{},
		FolderCount: len(ordered),
	}
	parents := make(map[*models.FolderTreeNode]*models.FolderTreeNode, len(ordered))
	for _, node := range ordered {
		switch {
		case node.ParentID == nil:
			forest.Roots = append(forest.Roots, node)
		case *node.ParentID == node.ID:
			forest.Roots = append(forest.Roots, node)
			forest.Orphans = append(forest.Orphans, node.ID)
		default:
			parent, ok := nodes[*node.ParentID]
			if !ok {
				forest.Roots = append(forest.Roots, node)
				forest.Orphans = append(forest.Orphans, node.ID)
				continue
			}
			parent.Folders = append(parent.Folders, node)
			parents[node] = parent
		}
	}

	// Third pass: walk down from the roots. Anything not reached hangs off a
	// parent cycle; promote the first such node in input order and repeat.
	reached := make(map[*models.FolderTreeNode]bool, len(ordered))
	forest.DocumentCount += finishLevel(forest.Roots, "", reached)
	for _, node := range ordered {
		if reached[node] {
			continue
		}
		parent := parents[node]
		parent.Folders = removeNode(parent.Folders, node)
		forest.Roots = append(forest.Roots, node)
		forest.Orphans = append(forest.Orphans, node.ID)
		forest.DocumentCount += finishLevel([]*models.FolderTreeNode{node}, "", reached)
	}

	sortNodes(forest.Roots)
	return forest
}

// finishLevel sorts, assigns paths and marks every node reachable from nodes.
// It returns the number of documents seen.
func finishLevel(nodes []*models.FolderTreeNode, parentPath string, reached map[*models.FolderTreeNode]bool) int {
	docCount := 0
	sortNodes(nodes)
	for _, node := range nodes {
		if reached[node] {
			continue
		}
		reached[node] = true
		node.Path = joinPath(parentPath, node.Slug)

		sort.SliceStable(node.Documents, func(i, j int) bool {
			return node.Documents[i].Order < node.Documents[j].Order
		})
		for i := range node.Documents {
			node.Documents[i].Path = joinPath(node.Path, node.Documents[i].Slug)
		}
		docCount += len(node.Documents)

		docCount += finishLevel(node.Folders, node.Path, reached)
	}
	return docCount
}

func sortNodes(nodes []*models.FolderTreeNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Order < nodes[j].Order
	})
}

func removeNode(nodes []*models.FolderTreeNode, target *models.FolderTreeNode) []*models.FolderTreeNode {
	out := nodes[:0]
	for _, n := range nodes {
		if n != target {
			out = append(out, n)
		}
	}
	return out
}

func joinPath(parent, slug string) string {
	if parent == "" {
		return slug
	}
	return parent + "/" + slug
}
