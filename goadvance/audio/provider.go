package audio

// Provider is the audio surface backends consume.
type Provider interface {
	// GetSamples retrieves signed 16 bit samples for playback.
	GetSamples(count int) []int16

	// Channel debugging controls, bound to keys in interactive backends.

	ToggleChannel(channel int)
	SoloChannel(channel int)
	GetChannelStatus() (ch1, ch2, ch3, ch4 bool)
}

var _ Provider = (*APU)(nil)
