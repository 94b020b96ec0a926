package state

import (
	"strings"
	"unicode"
)

// SetFilter replaces the query and places the caret at cursor. Typing into
// an empty query remembers the highlight so clearing it can restore it.
func (l *Listing) SetFilter(query string, cursor int) {
	wasActive := strings.TrimSpace(l.Filter) != ""
	active := strings.TrimSpace(query) != ""
	if active && !wasActive {
		l.LastCursor = l.Cursor
	}
	l.Filter = query
	l.FilterCursor = clampCaret(cursor, len([]rune(query)))
	if active {
		l.Cursor = 0
	}
	l.applyFilter()

	switch {
	case active && len(l.Items) > 0:
		l.Cursor = max(BestMatchIndex(l.Items, query), 0)
	case !active && wasActive:
		l.Cursor = 0
		if l.LastCursor >= 0 && l.LastCursor < len(l.Items) {
			l.Cursor = l.LastCursor
		}
		l.LastCursor = -1
	}
}

func (l *Listing) applyFilter() {
	l.Items = FilterApps(l.Full, l.Filter)
	n := len(l.Items)
	if n == 0 {
		l.Cursor, l.ViewportOffset = 0, 0
		return
	}
	l.Cursor = min(max(l.Cursor, 0), n-1)
	if l.ViewportOffset > n-1 {
		l.ViewportOffset = 0
	}
}

func clampCaret(pos, length int) int {
	return min(max(pos, 0), length)
}

// FilterCursorPos returns the caret as a rune offset into the query.
func (l *Listing) FilterCursorPos() int {
	return clampCaret(l.FilterCursor, len([]rune(l.Filter)))
}

// splice replaces the runes between from and to with insert and leaves the
// caret after the inserted text.
func (l *Listing) splice(from, to int, insert []rune) {
	runes := []rune(l.Filter)
	out := make([]rune, 0, len(runes)-(to-from)+len(insert))
	out = append(out, runes[:from]...)
	out = append(out, insert...)
	out = append(out, runes[to:]...)
	l.SetFilter(string(out), from+len(insert))
}

// InsertFilterText types text at the caret.
func (l *Listing) InsertFilterText(text string) bool {
	if text == "" {
		return false
	}
	pos := l.FilterCursorPos()
	l.splice(pos, pos, []rune(text))
	return true
}

// DeleteFilterRuneBackward is backspace.
func (l *Listing) DeleteFilterRuneBackward() bool {
	pos := l.FilterCursorPos()
	if pos == 0 {
		return false
	}
	l.splice(pos-1, pos, nil)
	return true
}

// DeleteFilterWordBackward is ctrl+w.
func (l *Listing) DeleteFilterWordBackward() bool {
	pos := l.FilterCursorPos()
	if pos == 0 {
		return false
	}
	l.splice(wordStart([]rune(l.Filter), pos), pos, nil)
	return true
}

// moveCaret sets the caret and reports whether it moved.
func (l *Listing) moveCaret(to int) bool {
	from := l.FilterCursorPos()
	to = clampCaret(to, len([]rune(l.Filter)))
	l.FilterCursor = to
	return to != from
}

func (l *Listing) MoveFilterCursorStart() bool {
	return l.moveCaret(0)
}

func (l *Listing) MoveFilterCursorEnd() bool {
	return l.moveCaret(len([]rune(l.Filter)))
}

func (l *Listing) MoveFilterCursorRuneBackward() bool {
	return l.moveCaret(l.FilterCursorPos() - 1)
}

func (l *Listing) MoveFilterCursorRuneForward() bool {
	return l.moveCaret(l.FilterCursorPos() + 1)
}

func (l *Listing) MoveFilterCursorWordBackward() bool {
	return l.moveCaret(wordStart([]rune(l.Filter), l.FilterCursorPos()))
}

func (l *Listing) MoveFilterCursorWordForward() bool {
	return l.moveCaret(wordEnd([]rune(l.Filter), l.FilterCursorPos()))
}

// wordStart skips blanks and then a word to the left of pos.
func wordStart(runes []rune, pos int) int {
	for pos > 0 && unicode.IsSpace(runes[pos-1]) {
		pos--
	}
	for pos > 0 && !unicode.IsSpace(runes[pos-1]) {
		pos--
	}
	return pos
}

// wordEnd skips a word and then blanks to the right of pos.
func wordEnd(runes []rune, pos int) int {
	for pos < len(runes) && !unicode.IsSpace(runes[pos]) {
		pos++
	}
	for pos < len(runes) && unicode.IsSpace(runes[pos]) {
		pos++
	}
	return pos
}
