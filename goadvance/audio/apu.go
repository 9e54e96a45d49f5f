package audio

import "log/slog"

// APU is a silent audio collaborator. Sound synthesis is out of scope for
// this emulator, but the backends still pull samples through the Provider
// interface and bind channel toggle keys, so the surface stays intact and
// always yields silence.
type APU struct {
	enabled [channelCount]bool
}

func New() *APU {
	apu := &APU{}
	for i := range apu.enabled {
		apu.enabled[i] = true
	}
	return apu
}

// GetSamples returns count samples of silence.
func (a *APU) GetSamples(count int) []int16 {
	return make([]int16, count)
}

// ToggleChannel flips the enable state of a channel (1-4). With no mixer
// behind it this only affects the reported status.
func (a *APU) ToggleChannel(channel int) {
	if channel < 1 || channel > channelCount {
		return
	}
	a.enabled[channel-1] = !a.enabled[channel-1]
	slog.Debug("Audio channel toggled", "channel", channel, "enabled", a.enabled[channel-1])
}

// SoloChannel enables only the given channel (1-4), or restores all four
// when that channel is already the solo.
func (a *APU) SoloChannel(channel int) {
	if channel < 1 || channel > channelCount {
		return
	}

	soloed := a.enabled[channel-1]
	for i := range a.enabled {
		if i != channel-1 {
			soloed = soloed && !a.enabled[i]
		}
	}

	for i := range a.enabled {
		a.enabled[i] = soloed || i == channel-1
	}
	slog.Debug("Audio channel solo", "channel", channel, "restored", soloed)
}

// GetChannelStatus reports the enable state of the four PSG channels.
func (a *APU) GetChannelStatus() (ch1, ch2, ch3, ch4 bool) {
	return a.enabled[0], a.enabled[1], a.enabled[2], a.enabled[3]
}
