package explorer

const (
	// TabHostClass is the class name of the control that owns a window's tab strip.
	TabHostClass = "ShellTabWindowClass"
	// DefaultMaxNodes bounds the descendant walk in FindTabHost.
	DefaultMaxNodes = 4096
)

// FindTabHost searches the descendants of top, depth first, for the first
// window whose class name equals className. The walk uses an explicit
// work-list and visits at most maxNodes windows (DefaultMaxNodes when
// maxNodes <= 0). It returns false when top is invalid or nothing matches.
func FindTabHost(h Hierarchy, top WindowID, className string, maxNodes int) (WindowID, bool) {
	if top == 0 || h == nil {
		return 0, false
	}
	if className == "" {
		className = TabHostClass
	}
	if maxNodes <= 0 {
		maxNodes = DefaultMaxNodes
	}

	children, err := h.Children(top)
	if err != nil {
		return 0, false
	}

	stack := pushReversed(nil, children)
	visited := make(map[WindowID]bool)

	for len(stack) > 0 && len(visited) < maxNodes {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if id == 0 || visited[id] {
			continue
		}
		visited[id] = true

		if name, err := h.ClassName(id); err == nil && name == className {
			return id, true
		}

		if grandchildren, err := h.Children(id); err == nil {
			stack = pushReversed(stack, grandchildren)
		}
	}

	return 0, false
}

// pushReversed appends ids in reverse so the first child is popped first.
func pushReversed(stack, ids []WindowID) []WindowID {
	for i := len(ids) - 1; i >= 0; i-- {
		stack = append(stack, ids[i])
	}
	return stack
}
