package yx5300

import "fmt"

// Frame is a command or reply frame:
//
//	[START][VERSION][LENGTH][CMD][FEEDBACK][PARAM_HI][PARAM_LO][END]
type Frame [FrameSize]byte

// NewFrame encodes cmd with its two parameter bytes. cmd isn't checked
// against the known command set.
func NewFrame(cmd Command, p1, p2 byte) Frame {
	return Frame{StartByte, VersionByte, LengthByte, byte(cmd), NoFeedback, p1, p2, EndByte}
}

func (f Frame) Command() Command {
	return Command(f[3])
}

func (f Frame) Params() (byte, byte) {
	return f[5], f[6]
}

// Value is the big-endian payload held by a reply frame.
func (f Frame) Value() uint16 {
	return uint16(f[5])<<8 | uint16(f[6])
}

func (f Frame) String() string {
	return fmt.Sprintf("% X", f[:])
}
