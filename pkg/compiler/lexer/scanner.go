package lexer

// Scanner performs lexical analysis on Dendron source. Tokens are
// whitespace-separated words; each word is classified whole.
type Scanner struct {
	source []byte
	cursor int
	line   int
}

// NewScanner creates a new scanner for the given source.
func NewScanner(source []byte) *Scanner {
	return &Scanner{
		source: source,
		line:   1,
	}
}

// Reset re-initializes the scanner with new source for reuse.
func (s *Scanner) Reset(source []byte) {
	s.source = source
	s.cursor = 0
	s.line = 1
}

// Next returns the next token from the source.
func (s *Scanner) Next() Token {
	s.skipWhitespace()

	if s.cursor >= len(s.source) {
		return Token{Kind: KindEOF, Offset: uint32(s.cursor), Line: uint32(s.line)}
	}

	// Comments run from ';' to end of line.
	if s.source[s.cursor] == ';' {
		s.skipComment()
		return s.Next()
	}

	start := s.cursor
	for s.cursor < len(s.source) && !isSpace(s.source[s.cursor]) {
		s.cursor++
	}
	word := s.source[start:s.cursor]

	return Token{Kind: classify(word), Offset: uint32(start), Length: uint32(len(word)), Line: uint32(s.line)}
}

func classify(word []byte) Kind {
	if kind, ok := operators[string(word)]; ok {
		return kind
	}
	if isNumber(word) {
		return KindNumber
	}
	if isIdentifier(word) {
		return KindIdentifier
	}
	return KindError
}

func (s *Scanner) skipWhitespace() {
	for s.cursor < len(s.source) {
		ch := s.source[s.cursor]
		if ch == ' ' || ch == '\t' || ch == '\r' {
			s.cursor++
		} else if ch == '\n' {
			s.line++
			s.cursor++
		} else {
			break
		}
	}
}

func (s *Scanner) skipComment() {
	for s.cursor < len(s.source) && s.source[s.cursor] != '\n' {
		s.cursor++
	}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n'
}

func isNumber(word []byte) bool {
	i := 0
	if word[0] == '-' {
		i = 1
	}
	if i == len(word) {
		return false
	}
	for ; i < len(word); i++ {
		if !isDigit(word[i]) {
			return false
		}
	}
	return true
}

func isIdentifier(word []byte) bool {
	if !isAlpha(word[0]) {
		return false
	}
	for _, ch := range word[1:] {
		if !isAlpha(ch) && !isDigit(ch) && ch != '_' {
			return false
		}
	}
	return true
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}
