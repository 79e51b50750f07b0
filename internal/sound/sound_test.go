package sound

import (
	"encoding/binary"
	"testing"
)

func TestDetectFormatAIFF(t *testing.T) {
	data := make([]byte, 12)
	copy(data[0:4], "FORM")
	copy(data[8:12], "AIFF")
	if f := DetectFormat(data); f != AIFF {
		t.Fatalf("got %v, want AIFF", f)
	}
}

func TestDetectFormatWAVE(t *testing.T) {
	data := make([]byte, 12)
	copy(data[0:4], "RIFF")
	copy(data[8:12], "WAVE")
	if f := DetectFormat(data); f != WAVE {
		t.Fatalf("got %v, want WAVE", f)
	}
}

func TestDetectFormatMP3ID3(t *testing.T) {
	data := []byte("ID3\x03\x00")
	if f := DetectFormat(data); f != MP3 {
		t.Fatalf("got %v, want MP3", f)
	}
}

func TestDetectFormatMP3SyncWord(t *testing.T) {
	data := []byte{0xFF, 0xFB, 0x90, 0x00}
	if f := DetectFormat(data); f != MP3 {
		t.Fatalf("got %v, want MP3", f)
	}
}

func TestDetectFormatMacSND(t *testing.T) {
	data := make([]byte, 8)
	binary.BigEndian.PutUint16(data[0:2], 1)
	if f := DetectFormat(data); f != MacSND {
		t.Fatalf("got %v, want MacSND", f)
	}
}

func buildFormat2SND(sampleRate uint32, pcm []byte) []byte {
	data := make([]byte, 4)
	binary.BigEndian.PutUint16(data[0:2], 2) // format
	binary.BigEndian.PutUint16(data[2:4], 0) // refCount
	header := make([]byte, 22)
	binary.BigEndian.PutUint32(header[8:12], sampleRate)
	data = append(data, header...)
	data = append(data, pcm...)
	return data
}

func TestDecodeSNDToWAVFormat2(t *testing.T) {
	pcm := []byte{0x80, 0x81, 0x82, 0x7F}
	data := buildFormat2SND(22050*65536, pcm)

	wav, err := DecodeSNDToWAV(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		t.Fatalf("missing RIFF/WAVE header")
	}
	gotRate := binary.LittleEndian.Uint32(wav[24:28])
	if gotRate != 22050 {
		t.Fatalf("sample rate = %d, want 22050", gotRate)
	}
	if string(wav[44:]) != string(pcm) {
		t.Fatalf("pcm mismatch: got %v want %v", wav[44:], pcm)
	}
}

func TestDecodeSNDToWAVClampsOutOfRangeSampleRate(t *testing.T) {
	data := buildFormat2SND(0, []byte{0x00})
	wav, err := DecodeSNDToWAV(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gotRate := binary.LittleEndian.Uint32(wav[24:28])
	if gotRate != 22050 {
		t.Fatalf("sample rate = %d, want default 22050", gotRate)
	}
}

func buildFormat1SND(sampleRate uint32, pcm []byte) []byte {
	data := make([]byte, 4)
	binary.BigEndian.PutUint16(data[0:2], 1) // format
	binary.BigEndian.PutUint16(data[2:4], 0) // numDataFormats = 0

	cmdCount := make([]byte, 2)
	binary.BigEndian.PutUint16(cmdCount, 1)
	data = append(data, cmdCount...)

	cmd := make([]byte, 8)
	binary.BigEndian.PutUint16(cmd[0:2], bufferCmd)
	headerOffset := uint32(len(data) + len(cmd))
	binary.BigEndian.PutUint32(cmd[4:8], headerOffset)
	data = append(data, cmd...)

	header := make([]byte, 22)
	binary.BigEndian.PutUint32(header[8:12], sampleRate)
	data = append(data, header...)
	data = append(data, pcm...)
	return data
}

func TestDecodeSNDToWAVFormat1(t *testing.T) {
	pcm := []byte{0x10, 0x20, 0x30}
	data := buildFormat1SND(11025*65536, pcm)

	wav, err := DecodeSNDToWAV(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gotRate := binary.LittleEndian.Uint32(wav[24:28])
	if gotRate != 11025 {
		t.Fatalf("sample rate = %d, want 11025", gotRate)
	}
	if string(wav[44:]) != string(pcm) {
		t.Fatalf("pcm mismatch: got %v want %v", wav[44:], pcm)
	}
}
