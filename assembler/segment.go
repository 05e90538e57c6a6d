package assembler

// SegmentTokens groups tokens by the label declaration that precedes them. Segments
// keep their declaration order. The entry declaration is removed from the
// stream; when present, tokens before the first label are unreachable and are
// moved to Discarded. Without one, they form an unnamed leading segment.
func SegmentTokens(tokens []Token) (*SegmentedSource, error) {
	src := &SegmentedSource{}
	entrySeen := false
	current := -1
	preamble := []Token{}

	for _, tok := range tokens {
		switch tok.Type {
		case TokenEndOfInput:
			continue
		case TokenEntryDeclaration:
			if entrySeen {
				return nil, &DuplicateEntryError{First: src.EntryRange, Repeated: tok.Range}
			}
			entrySeen = true
			src.EntryLabel = tok.Name
			src.EntryRange = tok.Range
		case TokenLabelDeclaration:
			src.Segments = append(src.Segments, Segment{Label: tok.Name, Declaration: tok.Range})
			current = len(src.Segments) - 1
		default:
			if current < 0 {
				preamble = append(preamble, tok)
			} else {
				src.Segments[current].Tokens = append(src.Segments[current].Tokens, tok)
			}
		}
	}

	if entrySeen {
		src.Discarded = preamble
	} else if len(preamble) > 0 {
		src.Segments = append([]Segment{{Tokens: preamble}}, src.Segments...)
	}
	return src, nil
}

// Labels returns the declared label names in declaration order, repeats
// included.
func (s *SegmentedSource) Labels() []string {
	labels := []string{}
	for _, seg := range s.Segments {
		if seg.Label != "" {
			labels = append(labels, seg.Label)
		}
	}
	return labels
}
