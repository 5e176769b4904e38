package yx5300

import (
	"errors"
	"fmt"
	"strconv"
)

// (Un)marshallers for State & DeviceState, so that front-ends
// and config files deal with names instead of numbers.

// ---- type State int

func (s State) MarshalJSON() ([]byte, error) {
	b, err := s.MarshalText()
	if err == nil {
		b = []byte(strconv.Quote(string(b)))
	}
	return b, err
}

func (s *State) UnmarshalJSON(data []byte) error {
	str, err := unquote("State", data)
	if err != nil {
		return err
	}
	return s.UnmarshalText([]byte(str))
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(b []byte) error {
	str := string(b)
	for i, name := range stateNames {
		if name == str {
			*s = State(i)
			return nil
		}
	}
	i, err := strconv.Atoi(str)
	if err == nil {
		*s = State(i)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %q to State, is it misspelled?", str)
}

// ---- type DeviceState int

func (s DeviceState) MarshalJSON() ([]byte, error) {
	b, err := s.MarshalText()
	if err == nil {
		b = []byte(strconv.Quote(string(b)))
	}
	return b, err
}

func (s *DeviceState) UnmarshalJSON(data []byte) error {
	str, err := unquote("DeviceState", data)
	if err != nil {
		return err
	}
	return s.UnmarshalText([]byte(str))
}

func (s DeviceState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *DeviceState) UnmarshalText(b []byte) error {
	str := string(b)
	for _, v := range []DeviceState{Stopped, Playing, Paused} {
		if v.String() == str {
			*s = v
			return nil
		}
	}
	i, err := strconv.Atoi(str)
	if err == nil {
		*s = DeviceState(i)
		return nil
	}
	return fmt.Errorf("cannot unmarshal %q to DeviceState, is it misspelled?", str)
}

func unquote(typ string, data []byte) (string, error) {
	n := len(data)
	if n < 2 || data[0] != '"' || data[n-1] != '"' {
		return "", errors.New(typ + ".UnmarshalJSON: invalid JSON provided")
	}
	return string(data[1 : n-1]), nil
}
