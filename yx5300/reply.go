package yx5300

// replyScanner picks the reply to one awaited command out of the
// inbound byte stream. It holds a single frame slot: a reply to any
// other command is dropped and accumulation starts over.
type replyScanner struct {
	awaited Command
	buf     []byte

	// Discarded counts replies dropped for echoing another command.
	Discarded int
}

// minReplyLen is the shortest buffer holding both payload bytes.
const minReplyLen = 7

func newReplyScanner(cmd Command) *replyScanner {
	return &replyScanner{
		awaited: cmd,
		buf:     make([]byte, 0, 2*FrameSize),
	}
}

// Feed pushes one byte, it returns the decoded value and true
// once a reply to the awaited command has been seen.
func (s *replyScanner) Feed(b byte) (uint16, bool) {
	if len(s.buf) == 0 && b != StartByte {
		// noise between frames
		return 0, false
	}
	s.buf = append(s.buf, b)

	if b == EndByte && len(s.buf) >= minReplyLen {
		f := s.buf[s.frameStart():]
		if Command(f[3]) != s.awaited {
			s.Discarded++
			s.reset()
			return 0, false
		}
		v := uint16(f[5])<<8 | uint16(f[6])
		s.reset()
		return v, true
	}

	if len(s.buf) >= 2*FrameSize {
		s.reset()
	}
	return 0, false
}

// frameStart returns the offset of the last frame header in s.buf that is
// followed by both payload bytes. It is 0 unless a truncated frame
// came before the one being closed.
func (s *replyScanner) frameStart() int {
	for i := len(s.buf) - minReplyLen; i > 0; i-- {
		if s.buf[i] == StartByte && s.buf[i+1] == VersionByte && s.buf[i+2] == LengthByte {
			return i
		}
	}
	return 0
}

// Awaiting returns the buffered, still undecided, bytes.
func (s *replyScanner) Awaiting() []byte {
	return s.buf
}

func (s *replyScanner) reset() {
	s.buf = s.buf[:0]
}
