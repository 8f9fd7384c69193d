package server

import (
	"bytes"
	"encoding/binary"
	"math"
	"net/http"
	"net/url"
	"sync"
	"time"
)

const (
	beepSampleRate = 22050
	beepFrequency  = 880
	beepDuration   = 250 * time.Millisecond
)

var (
	beepOnce sync.Once
	beepWAV  []byte
)

// soundPath is the route the configured sound URL resolves to on this server.
func (s *Server) soundPath() string {
	u, err := url.Parse(s.soundURL)
	if err != nil || u.Path == "" || u.IsAbs() {
		return "/alert-beep.mp3"
	}
	return u.Path
}

// handleSound serves the configured sound file, or a generated beep when none
// is configured.
func (s *Server) handleSound(w http.ResponseWriter, r *http.Request) {
	if s.soundFile != "" {
		http.ServeFile(w, r, s.soundFile)
		return
	}

	beepOnce.Do(func() { beepWAV = synthBeep() })
	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	http.ServeContent(w, r, "alert-beep.wav", time.Time{}, bytes.NewReader(beepWAV))
}

// synthBeep renders a short 16-bit mono sine tone with a linear fade-out.
func synthBeep() []byte {
	n := int(beepDuration.Seconds() * beepSampleRate)
	dataLen := n * 2

	var buf bytes.Buffer
	buf.Grow(44 + dataLen)

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+dataLen))
	buf.WriteString("WAVEfmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // PCM
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // mono
	binary.Write(&buf, binary.LittleEndian, uint32(beepSampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(beepSampleRate*2))
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(dataLen))

	for i := 0; i < n; i++ {
		fade := 1 - float64(i)/float64(n)
		v := math.Sin(2*math.Pi*beepFrequency*float64(i)/beepSampleRate) * fade * 0.5
		binary.Write(&buf, binary.LittleEndian, int16(v*math.MaxInt16))
	}
	return buf.Bytes()
}
