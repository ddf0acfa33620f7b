package audio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV encodes mono 16-bit samples at SampleRate.
func WriteWAV(w io.WriteSeeker, pcm []int16) error {
	enc := wav.NewEncoder(w, SampleRate, 16, 1, 1)
	data := make([]int, len(pcm))
	for i, s := range pcm {
		data[i] = int(s)
	}
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: SampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("audio: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("audio: finish wav: %w", err)
	}
	return nil
}

// ExportBank writes one WAV per synthesized effect plus ambient.wav into dir
// and returns the written paths.
func ExportBank(b *Bank, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("audio: create %s: %w", dir, err)
	}
	var paths []string
	write := func(name string, pcm []int16) error {
		path := filepath.Join(dir, name+".wav")
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("audio: create %s: %w", path, err)
		}
		if err := WriteWAV(f, pcm); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("audio: close %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	}

	for _, e := range Effects() {
		pcm := b.Effect(e)
		if len(pcm) == 0 {
			continue
		}
		if err := write(e.Key(), pcm); err != nil {
			return paths, err
		}
	}
	if loop := b.Loop(); len(loop) > 0 {
		if err := write("ambient", loop); err != nil {
			return paths, err
		}
	}
	return paths, nil
}
