package dom

import "sort"

// maxPathDepth bounds ancestor walks over externally supplied trees.
const maxPathDepth = 1024

// Path returns the sibling index of el and each of its ancestors, root first.
// The root's path is empty. Elements deeper than the walk bound get a nil path.
func Path(el Element) []int {
	var rev []int
	cur := el
	for depth := 0; cur != nil; depth++ {
		if depth > maxPathDepth {
			return nil
		}
		parent := cur.Parent()
		if parent == nil {
			break
		}
		idx := -1
		for i, sibling := range parent.Children() {
			if sibling == cur {
				idx = i
				break
			}
		}
		rev = append(rev, idx)
		cur = parent
	}

	path := make([]int, len(rev))
	for i, v := range rev {
		path[len(rev)-1-i] = v
	}
	return path
}

// comparePaths orders two paths in preorder: ancestors before descendants,
// earlier siblings before later ones.
func comparePaths(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// Compare returns -1, 0 or 1 depending on whether a precedes, equals or
// follows b in document order.
func Compare(a, b Element) int {
	if a == b {
		return 0
	}
	return comparePaths(Path(a), Path(b))
}

// SortByDocumentOrder sorts els in place in document order. Elements with equal
// paths keep their relative order.
func SortByDocumentOrder(els []Element) {
	paths := make(map[Element][]int, len(els))
	for _, el := range els {
		paths[el] = Path(el)
	}
	sort.SliceStable(els, func(i, j int) bool {
		return comparePaths(paths[els[i]], paths[els[j]]) < 0
	})
}
