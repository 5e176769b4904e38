package yx5300

import "fmt"

// Command is the opcode carried at index 3 of every frame.
type Command byte

// Frame layout.
const (
	StartByte   byte = 0x7e
	VersionByte byte = 0xff
	LengthByte  byte = 0x06
	NoFeedback  byte = 0x00
	EndByte     byte = 0xef

	FrameSize = 8
)

// Navigation & playback.
const (
	Next            Command = 0x01
	Prev            Command = 0x02
	PlayIndex       Command = 0x03
	SingleCyclePlay Command = 0x08
	Resume          Command = 0x0d
	Pause           Command = 0x0e
	PlayFolderFile  Command = 0x0f
	Stop            Command = 0x16
	FolderCycle     Command = 0x17
	SetSingleCycle  Command = 0x19
	PlayWithVolume  Command = 0x22
)

// Volume.
const (
	VolumeUp   Command = 0x04
	VolumeDown Command = 0x05
	SetVolume  Command = 0x06
)

// Device.
const (
	SelectDevice Command = 0x09
	Sleep        Command = 0x0a
	Wake         Command = 0x0b
	Reset        Command = 0x0c
	SetDAC       Command = 0x1a
)

// Queries, the device answers each of these with a reply frame.
const (
	QueryState        Command = 0x42
	QueryVolume       Command = 0x43
	QueryPlayMode     Command = 0x45
	QueryTrackCount   Command = 0x48
	QueryCurrentTrack Command = 0x4c
)

// Parameter values.
const (
	DeviceTF byte = 0x02

	DACOn  byte = 0x00
	DACOff byte = 0x01

	SingleCycleOn  byte = 0x00
	SingleCycleOff byte = 0x01
)

const (
	MinVolume = 0
	MaxVolume = 30
)

var commandNames = map[Command]string{
	Next:              "Next",
	Prev:              "Prev",
	PlayIndex:         "PlayIndex",
	VolumeUp:          "VolumeUp",
	VolumeDown:        "VolumeDown",
	SetVolume:         "SetVolume",
	SingleCyclePlay:   "SingleCyclePlay",
	SelectDevice:      "SelectDevice",
	Sleep:             "Sleep",
	Wake:              "Wake",
	Reset:             "Reset",
	Resume:            "Resume",
	Pause:             "Pause",
	PlayFolderFile:    "PlayFolderFile",
	Stop:              "Stop",
	FolderCycle:       "FolderCycle",
	SetSingleCycle:    "SetSingleCycle",
	SetDAC:            "SetDAC",
	PlayWithVolume:    "PlayWithVolume",
	QueryState:        "QueryState",
	QueryVolume:       "QueryVolume",
	QueryPlayMode:     "QueryPlayMode",
	QueryTrackCount:   "QueryTrackCount",
	QueryCurrentTrack: "QueryCurrentTrack",
}

func (c Command) String() string {
	if s, ok := commandNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Command(0x%02x)", byte(c))
}

// IsQuery reports whether the device replies to c.
func (c Command) IsQuery() bool {
	switch c {
	case QueryState, QueryVolume, QueryPlayMode, QueryTrackCount, QueryCurrentTrack:
		return true
	}
	return false
}
