package lsp

// OffsetToPosition converts a byte offset into a zero-based line/character
// position. Offsets past the end of the text clamp to the final position.
func OffsetToPosition(text string, offset int) Position {
	if offset > len(text) {
		offset = len(text)
	}
	line, col := 0, 0
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			col = 0
		} else {
			col++
		}
	}
	return Position{Line: line, Character: col}
}

// PositionToOffset converts a zero-based line/character position back into a
// byte offset. Positions beyond the text clamp to its length.
func PositionToOffset(text string, pos Position) int {
	offset := 0
	for line := 0; line < pos.Line; line++ {
		next := indexByteFrom(text, offset, '\n')
		if next < 0 {
			return len(text)
		}
		offset = next + 1
	}
	end := indexByteFrom(text, offset, '\n')
	if end < 0 {
		end = len(text)
	}
	offset += pos.Character
	if offset > end {
		offset = end
	}
	return offset
}

func indexByteFrom(text string, from int, b byte) int {
	for i := from; i < len(text); i++ {
		if text[i] == b {
			return i
		}
	}
	return -1
}

// RangeFor converts a [start, end) offset span into an LSP range.
func RangeFor(text string, start, end int) Range {
	return Range{
		Start: OffsetToPosition(text, start),
		End:   OffsetToPosition(text, end),
	}
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// WordAt returns the identifier-like word covering the given offset and its
// span. Hover and definition requests arrive as cursor positions; the word
// under the cursor is what they resolve.
func WordAt(text string, offset int) (string, int, int) {
	if offset > len(text) {
		offset = len(text)
	}
	start := offset
	for start > 0 && isWordByte(text[start-1]) {
		start--
	}
	end := offset
	for end < len(text) && isWordByte(text[end]) {
		end++
	}
	if start == end {
		return "", offset, offset
	}
	return text[start:end], start, end
}

// MemberBase returns the identifier immediately before a trailing `.` or
// `?.` at the given offset, for member completion requests.
func MemberBase(text string, offset int) (string, bool) {
	if offset > len(text) {
		offset = len(text)
	}
	i := offset
	for i > 0 && isWordByte(text[i-1]) {
		i-- // skip any partial member name already typed
	}
	if i == 0 || text[i-1] != '.' {
		return "", false
	}
	i--
	if i > 0 && text[i-1] == '?' {
		i--
	}
	word, _, _ := WordAt(text, i)
	if word == "" {
		return "", false
	}
	return word, true
}
