package yx5300

import "go.uber.org/zap"

// Play resumes the paused track. With nothing paused, the module starts
// from 001.mp3 and loops through the whole card.
func (p *Player) Play() error {
	return p.Send(Resume, 0, 0)
}

func (p *Player) Pause() error {
	return p.Send(Pause, 0, 0)
}

// Stop stops playback and clears the queue, Play won't resume afterwards.
func (p *Player) Stop() error {
	return p.Send(Stop, 0, 0)
}

func (p *Player) Next() error {
	return p.Send(Next, 0, 0)
}

func (p *Player) Prev() error {
	return p.Send(Prev, 0, 0)
}

// PlayTrack plays track index once.
func (p *Player) PlayTrack(index byte) error {
	return p.Send(PlayIndex, 0, index)
}

// PlayTrackInLoop plays track index over and over.
func (p *Player) PlayTrackInLoop(index byte) error {
	return p.Send(SingleCyclePlay, 0, index)
}

// PlayFolderInLoop cycles through every track of folder, lowest index first,
// until EndLoopingTrack is called.
func (p *Player) PlayFolderInLoop(folder byte) error {
	return p.Send(FolderCycle, 0, folder)
}

// PlayFolderFile plays file of folder, as in /01/002xxx.mp3.
func (p *Player) PlayFolderFile(folder, file byte) error {
	return p.Send(PlayFolderFile, folder, file)
}

// PlayWithVolume plays track index at volume, clamped like SetVolume.
func (p *Player) PlayWithVolume(volume int, index byte) error {
	return p.Send(PlayWithVolume, p.clampVolume(volume), index)
}

// BeginLoopingTrack loops the current track.
func (p *Player) BeginLoopingTrack() error {
	return p.Send(SetSingleCycle, 0, SingleCycleOn)
}

// EndLoopingTrack ends the loop and clears the queue.
func (p *Player) EndLoopingTrack() error {
	return p.Send(SetSingleCycle, 0, SingleCycleOff)
}

// SetVolume sets volume from MinVolume (muted) to MaxVolume,
// out of range values are brought back to the nearest bound.
func (p *Player) SetVolume(volume int) error {
	return p.Send(SetVolume, 0, p.clampVolume(volume))
}

func (p *Player) IncrementVolume() error {
	return p.Send(VolumeUp, 0, 0)
}

func (p *Player) DecrementVolume() error {
	return p.Send(VolumeDown, 0, 0)
}

func (p *Player) Sleep() error {
	return p.Send(Sleep, 0, 0)
}

func (p *Player) Wake() error {
	return p.Send(Wake, 0, 0)
}

func (p *Player) Reset() error {
	return p.Send(Reset, 0, 0)
}

// Mute turns the DAC off.
func (p *Player) Mute() error {
	return p.Send(SetDAC, 0, DACOff)
}

// Unmute turns the DAC back on.
func (p *Player) Unmute() error {
	return p.Send(SetDAC, 0, DACOn)
}

func (p *Player) CurrentTrack() (uint16, error) {
	return p.Query(QueryCurrentTrack)
}

func (p *Player) DeviceState() (DeviceState, error) {
	v, err := p.Query(QueryState)
	if err != nil {
		return Stopped, err
	}
	return DeviceState(v), nil
}

func (p *Player) Volume() (uint16, error) {
	return p.Query(QueryVolume)
}

func (p *Player) TrackCount() (uint16, error) {
	return p.Query(QueryTrackCount)
}

func (p *Player) PlayMode() (uint16, error) {
	return p.Query(QueryPlayMode)
}

func (p *Player) clampVolume(volume int) byte {
	if p == nil {
		return 0
	}
	switch {
	case volume > MaxVolume:
		p.log.Debug("volume above max", zap.Int("volume", volume), zap.Int("max", MaxVolume))
		return MaxVolume
	case volume < MinVolume:
		p.log.Debug("volume below min", zap.Int("volume", volume), zap.Int("min", MinVolume))
		return MinVolume
	}
	return byte(volume)
}
