package c2patext

// scanState is a state of the wrapper scanner.
type scanState int

const (
	// stateSearching advances scalar by scalar looking for a marker.
	stateSearching scanState = iota
	// stateProbing tries to decode a wrapper after the current marker.
	stateProbing
	// stateDone is reached at end of input.
	stateDone
)

func (s scanState) String() string {
	switch s {
	case stateSearching:
		return "searching"
	case stateProbing:
		return "probing"
	case stateDone:
		return "done"
	default:
		return "unknown"
	}
}

// scanner walks a scalar sequence left to right and yields decodable wrappers.
//
// A failed probe resumes searching at marker+1. A failed run never contains a
// marker (markers are not selectors), so this is the same position policy as
// skipping to the end of the probed run. A successful probe resumes at the end
// of the run, so wrappers never overlap.
type scanner struct {
	runes    []rune
	pos      int
	state    scanState
	rejected int
}

func newScanner(runes []rune) *scanner {
	return &scanner{runes: runes, state: stateSearching}
}

// next returns the next candidate wrapper, or ok=false once input is exhausted.
func (s *scanner) next() (wrapperRun, bool) {
	for {
		switch s.state {
		case stateSearching:
			if s.pos >= len(s.runes) {
				s.state = stateDone
				continue
			}
			if s.runes[s.pos] == Marker {
				s.state = stateProbing
				continue
			}
			s.pos++
		case stateProbing:
			s.state = stateSearching
			run, ok := decodeRun(s.runes, s.pos)
			if !ok {
				s.rejected++
				s.pos++
				continue
			}
			s.pos = run.end
			return run, true
		default:
			return wrapperRun{}, false
		}
	}
}

// scalars splits text into scalars and records the byte offset of each one.
// offsets has len(runes)+1 entries; the last is len(text). Invalid UTF-8
// bytes become one U+FFFD scalar each, matching range-over-string.
func scalars(text string) (runes []rune, offsets []int) {
	runes = make([]rune, 0, len(text))
	offsets = make([]int, 0, len(text)+1)
	for i, r := range text {
		runes = append(runes, r)
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(text))
	return runes, offsets
}

// Span locates one decodable wrapper in a text.
type Span struct {
	// Start and End are scalar indices; Start is the marker, End is exclusive.
	Start, End int
	// ByteStart and ByteEnd are UTF-8 byte offsets into the scanned text.
	ByteStart, ByteEnd int
	// Header is the decoded wrapper header.
	Header Header
	// Payload is a copy of the manifest bytes carried by the wrapper.
	Payload []byte
}

// ScanReport lists every decodable wrapper in a text.
type ScanReport struct {
	Wrappers []Span
	// Rejected counts markers whose probe did not decode to a valid wrapper.
	Rejected int
}

// Scan reports every wrapper in text without enforcing the single-wrapper
// rule. Offsets refer to text as given, not to its NFC form.
func Scan(text string) ScanReport {
	runes, offsets := scalars(text)
	s := newScanner(runes)
	var rep ScanReport
	for {
		run, ok := s.next()
		if !ok {
			break
		}
		rep.Wrappers = append(rep.Wrappers, Span{
			Start:     run.start,
			End:       run.end,
			ByteStart: offsets[run.start],
			ByteEnd:   offsets[run.end],
			Header:    run.header,
			Payload:   run.payload,
		})
	}
	rep.Rejected = s.rejected
	return rep
}
