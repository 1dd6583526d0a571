package correlate

import "strings"

// Separator is the line that divides human-authored notes from the embedded
// correlation id.
const Separator = "---"

// Encode appends the correlation id to notes using the separator convention.
// The result always carries exactly one id, on the line after the separator.
func Encode(notes, gid string) string {
	var b strings.Builder
	b.Grow(len(notes) + len(Separator) + len(gid) + 2)
	b.WriteString(notes)
	b.WriteString("\n")
	b.WriteString(Separator)
	b.WriteString("\n")
	b.WriteString(gid)
	return b.String()
}

// Lines splits notes into lines. A trailing newline terminates the last
// line rather than opening an empty one, and an empty string has no lines.
// All notes parsing in the codec and the reconciler goes through this so
// both sides agree on what counts as a line.
func Lines(notes string) []string {
	if notes == "" {
		return nil
	}
	lines := strings.Split(notes, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Decode scans notes line by line and returns the correlation id, if any.
// Only the first separator line is honored; the id is the immediately
// following line. A separator with no line after it (a trailing newline does
// not open one) carries no id. The second return value reports whether an id
// was found.
func Decode(notes string) (string, bool) {
	lines := Lines(notes)
	for i, line := range lines {
		if line == Separator {
			if i+1 < len(lines) {
				return lines[i+1], true
			}
			return "", false
		}
	}
	return "", false
}

// NotesPrefix returns the lines of notes that precede the first separator
// line. This is the human-authored portion, used for equality comparison
// while ignoring the appended correlation footer.
func NotesPrefix(notes string) []string {
	lines := Lines(notes)
	for i, line := range lines {
		if line == Separator {
			return lines[:i]
		}
	}
	return lines
}
