package sound

import (
	"encoding/binary"
	"fmt"
)

const bufferCmd = 0x8051

// DecodeSNDToWAV converts a Mac SND resource (format 1 or 2) to a 44-byte
// WAV container plus raw 8-bit PCM (spec.md §4.9). Format 1 locates the
// sample header by scanning its command list for bufferCmd (0x8051),
// whose second parameter is the header's byte offset; format 2 uses a
// fixed offset of 4.
func DecodeSNDToWAV(data []byte) ([]byte, error) {
	if len(data) < 6 {
		return nil, fmt.Errorf("sound: SND resource too short (%d bytes)", len(data))
	}
	format := binary.BigEndian.Uint16(data[0:2])

	var headerOffset int
	switch format {
	case 1:
		off, err := findBufferCmdOffset(data)
		if err != nil {
			return nil, err
		}
		headerOffset = off
	case 2:
		headerOffset = 4
	default:
		return nil, fmt.Errorf("sound: unsupported SND format %d", format)
	}

	if headerOffset < 0 || headerOffset+22 > len(data) {
		return nil, fmt.Errorf("sound: sample header offset %d out of range", headerOffset)
	}
	sampleRateFixed := binary.BigEndian.Uint32(data[headerOffset+8 : headerOffset+12])
	sampleRate := int(sampleRateFixed / 65536)
	if sampleRate < 1000 || sampleRate > 96000 {
		sampleRate = 22050
	}

	dataOffset := headerOffset + 22
	var pcm []byte
	if dataOffset < len(data) {
		pcm = data[dataOffset:]
	}
	return buildWAV(pcm, sampleRate, 1, 8), nil
}

// findBufferCmdOffset walks a format-1 SND resource's data-format list and
// command list looking for bufferCmd, returning its param2 (the sample
// header's byte offset from the start of the resource).
func findBufferCmdOffset(data []byte) (int, error) {
	pos := 2
	if pos+2 > len(data) {
		return 0, fmt.Errorf("sound: truncated SND data-format count")
	}
	numFormats := int(binary.BigEndian.Uint16(data[pos : pos+2]))
	pos += 2
	for i := 0; i < numFormats; i++ {
		if pos+6 > len(data) {
			return 0, fmt.Errorf("sound: truncated SND data-format entry")
		}
		optLen := int(binary.BigEndian.Uint32(data[pos+2 : pos+6]))
		pos += 6 + optLen
	}

	if pos+2 > len(data) {
		return 0, fmt.Errorf("sound: truncated SND command count")
	}
	numCommands := int(binary.BigEndian.Uint16(data[pos : pos+2]))
	pos += 2
	for i := 0; i < numCommands; i++ {
		if pos+8 > len(data) {
			return 0, fmt.Errorf("sound: truncated SND command entry")
		}
		cmd := binary.BigEndian.Uint16(data[pos : pos+2])
		param2 := binary.BigEndian.Uint32(data[pos+4 : pos+8])
		if cmd == bufferCmd {
			return int(param2), nil
		}
		pos += 8
	}
	return 0, fmt.Errorf("sound: no bufferCmd found in SND command list")
}

// buildWAV emits a canonical 44-byte RIFF/WAVE header (RIFF, WAVE, fmt
// PCM, data) followed by pcm verbatim; 8-bit PCM needs no endianness
// conversion.
func buildWAV(pcm []byte, sampleRate, numChannels, bitsPerSample int) []byte {
	blockAlign := numChannels * bitsPerSample / 8
	byteRate := sampleRate * blockAlign
	dataLen := len(pcm)

	out := make([]byte, 44+dataLen)
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(36+dataLen))
	copy(out[8:12], "WAVE")
	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16)
	binary.LittleEndian.PutUint16(out[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(out[22:24], uint16(numChannels))
	binary.LittleEndian.PutUint32(out[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:32], uint32(byteRate))
	binary.LittleEndian.PutUint16(out[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(out[34:36], uint16(bitsPerSample))
	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(dataLen))
	copy(out[44:], pcm)
	return out
}
