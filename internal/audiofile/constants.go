package audiofile

const (
	// readChunk is the number of frames requested per read.
	readChunk = 4096

	// go-mp3 always decodes to 16-bit little-endian stereo.
	mp3Channels       = 2
	mp3BytesPerSample = 2

	// Full-scale values for integer PCM.
	maxInt8  = 128.0
	maxInt16 = 32768.0
	maxInt24 = 8388608.0
	maxInt32 = 2147483648.0

	bitsPerSample8  = 8
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// wavPCMFormat is the WAVE_FORMAT_PCM tag.
	wavPCMFormat = 1
)
