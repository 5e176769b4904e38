package yx5300

import "strconv"

// DeviceState is the reply value of QueryState.
type DeviceState int

const (
	Stopped DeviceState = 0
	Playing DeviceState = 1
	Paused  DeviceState = 2
)

func (s DeviceState) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	}
	return "DeviceState(" + strconv.Itoa(int(s)) + ")"
}

// State is the health of the serial link as last seen by the player.
type State int

const (
	Disconnected State = State(iota)
	Connected    State = State(iota)
	WriteError   State = State(iota)
	ReadError    State = State(iota)
	NoReply      State = State(iota)
	NilPlayer    State = State(iota)
)

var stateNames = [...]string{"Disconnected", "Connected", "WriteError", "ReadError", "NoReply", "NilPlayer"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
	return stateNames[s]
}
