package state

// MoveCursorHome moves the cursor to the first app.
func (l *Listing) MoveCursorHome() bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = 0
	return old != l.Cursor
}

// MoveCursorEnd moves the cursor to the last app.
func (l *Listing) MoveCursorEnd() bool {
	n := len(l.Items)
	if n == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = n - 1
	return old != l.Cursor
}

// MoveCursorBy moves the cursor delta apps, stopping at either end.
func (l *Listing) MoveCursorBy(delta int) bool {
	if len(l.Items) == 0 {
		l.Cursor = 0
		return false
	}
	old := l.Cursor
	l.Cursor = max(l.Cursor, 0) + delta
	l.Cursor = min(max(l.Cursor, 0), len(l.Items)-1)
	return l.Cursor != old
}

// MoveCursorPageUp moves the cursor up a page of rows.
func (l *Listing) MoveCursorPageUp(columns, rows int) bool {
	return l.MoveCursorBy(-l.pageSize(columns, rows))
}

// MoveCursorPageDown moves the cursor down a page of rows.
func (l *Listing) MoveCursorPageDown(columns, rows int) bool {
	return l.MoveCursorBy(l.pageSize(columns, rows))
}

func (l *Listing) pageSize(columns, rows int) int {
	total := len(l.Items)
	if total == 0 {
		return 0
	}
	size := columns * rows
	if size <= 0 || size > total {
		size = total
	}
	return max(size, 1)
}

// EnsureCursorVisible scrolls whole rows so the cursor's row is on screen.
func (l *Listing) EnsureCursorVisible(columns, rows int) {
	if len(l.Items) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	l.Cursor = min(max(l.Cursor, 0), len(l.Items)-1)
	if columns <= 0 || rows <= 0 {
		l.ViewportOffset = 0
		return
	}
	totalRows := (len(l.Items) + columns - 1) / columns
	maxOffset := max(totalRows-rows, 0)
	l.ViewportOffset = min(max(l.ViewportOffset, 0), maxOffset)
	row := l.Cursor / columns
	if row < l.ViewportOffset {
		l.ViewportOffset = row
	}
	if row > l.ViewportOffset+rows-1 {
		l.ViewportOffset = min(row-rows+1, maxOffset)
	}
}
