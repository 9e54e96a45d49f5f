package audio

const (
	// SampleRate is the GBA's native PSG output rate in Hz.
	SampleRate = 32768

	// channelCount covers the four PSG channels. The two Direct Sound FIFO
	// channels are out of scope along with the rest of the mixer.
	channelCount = 4
)
