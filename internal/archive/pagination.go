package archive

// MaxPageButtons is the widest pagination window.
const MaxPageButtons = 5

// PageWindow returns the page numbers to show as buttons: at most MaxPageButtons,
// centered on current and slid inward near either edge.
func PageWindow(current, total int) []int {
	if total <= 0 {
		return nil
	}
	start := max(1, current-MaxPageButtons/2)
	end := min(total, start+MaxPageButtons-1)
	if end-start+1 < MaxPageButtons {
		start = max(1, end-MaxPageButtons+1)
	}

	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}
