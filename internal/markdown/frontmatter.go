package markdown

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter reports a frontmatter block opened with ---
// but never closed.
var ErrMissingClosingDelimiter = errors.New("frontmatter: missing closing delimiter")

// Split separates YAML frontmatter (`---` delimited) from the Markdown
// body. If the document does not start with a frontmatter delimiter, had is
// false and body is the full input.
func Split(source []byte) (frontmatter, body []byte, had bool, nl string, err error) {
	nl = detectNewline(source)

	open := []byte("---" + nl)
	if !bytes.HasPrefix(source, open) {
		return nil, source, false, nl, nil
	}

	start := len(open)
	closeLine := []byte("---" + nl)
	if bytes.HasPrefix(source[start:], closeLine) {
		return []byte{}, source[start+len(closeLine):], true, nl, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(source[start:], closeSeq)
	if idx < 0 {
		return nil, nil, false, nl, ErrMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	bodyStart := start + idx + len(closeSeq)
	return source[start:end], source[bodyStart:], true, nl, nil
}

// ParseYAML unmarshals frontmatter into a generic field map.
func ParseYAML(frontmatter []byte) (map[string]any, error) {
	fields := map[string]any{}
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func detectNewline(source []byte) string {
	if i := bytes.IndexByte(source, '\n'); i > 0 && source[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
