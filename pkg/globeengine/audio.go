package globeengine

import (
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/hajimehoshi/ebiten/v2/audio"
	mp3 "github.com/hajimehoshi/go-mp3"
)

// MetadataFunc receives track metadata when a new track starts.
type MetadataFunc func(song, artist string)

// SoundtrackPlayer loops shuffled MP3s from a directory for kiosk displays.
type SoundtrackPlayer struct {
	Dir        string
	OnMetadata MetadataFunc

	audioContext *audio.Context
	stopChan     chan struct{}
	stoppedChan  chan struct{}
	isStopping   bool
}

func NewSoundtrackPlayer(dir string, onMetadata MetadataFunc) *SoundtrackPlayer {
	return &SoundtrackPlayer{
		Dir:         dir,
		OnMetadata:  onMetadata,
		stopChan:    make(chan struct{}),
		stoppedChan: make(chan struct{}),
	}
}

// Shutdown fades out the current track and blocks until playback stopped.
func (p *SoundtrackPlayer) Shutdown() {
	log.Println("Soundtrack shutting down with fade-out...")
	p.isStopping = true
	close(p.stopChan)
	<-p.stoppedChan
	log.Println("Soundtrack stopped.")
}

func (p *SoundtrackPlayer) Start() {
	go func() {
		defer close(p.stoppedChan)
		for {
			select {
			case <-p.stopChan:
				return
			default:
			}

			var tracks []string
			entries, err := os.ReadDir(p.Dir)
			if err != nil {
				log.Printf("Failed to read audio directory: %v", err)
				select {
				case <-time.After(5 * time.Second):
				case <-p.stopChan:
					return
				}
				continue
			}
			for _, f := range entries {
				if !f.IsDir() && strings.HasSuffix(strings.ToLower(f.Name()), ".mp3") {
					tracks = append(tracks, filepath.Join(p.Dir, f.Name()))
				}
			}
			if len(tracks) == 0 {
				log.Println("No MP3 files found in audio directory.")
				select {
				case <-time.After(5 * time.Second):
				case <-p.stopChan:
					return
				}
				continue
			}

			path := tracks[rand.Intn(len(tracks))]
			if err := p.playTrack(path); err != nil {
				log.Printf("Failed to play track %s: %v", path, err)
				select {
				case <-time.After(5 * time.Second):
				case <-p.stopChan:
					return
				}
			}
			if p.isStopping {
				return
			}
		}
	}()
}

func (p *SoundtrackPlayer) playTrack(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var artist, song string
	if m, err := tag.ReadFrom(f); err == nil {
		artist = m.Artist()
		song = m.Title()
	}
	if song == "" {
		fullTitle := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		song = fullTitle
		if parts := strings.SplitN(fullTitle, " - ", 2); len(parts) == 2 {
			artist, song = parts[0], parts[1]
		}
	}
	if p.OnMetadata != nil {
		p.OnMetadata(song, artist)
	}

	if _, err := f.Seek(0, 0); err != nil {
		return err
	}
	d, err := mp3.NewDecoder(f)
	if err != nil {
		return err
	}

	if p.audioContext == nil {
		p.audioContext = audio.NewContext(44100)
	}
	player, err := p.audioContext.NewPlayer(d)
	if err != nil {
		return err
	}
	player.Play()
	log.Printf("Playing: %s", path)

	fadeDuration := 5 * time.Second
	totalBytes := d.Length()
	duration := time.Duration(totalBytes) * time.Second / time.Duration(d.SampleRate()*4)
	startTime := time.Now()
	var stoppingAt time.Time
	for player.IsPlaying() {
		if p.isStopping && stoppingAt.IsZero() {
			stoppingAt = time.Now()
		}

		remaining := duration - time.Since(startTime)
		vol := 1.0
		if remaining <= fadeDuration {
			vol = float64(remaining) / float64(fadeDuration)
		}
		if !stoppingAt.IsZero() {
			stopVol := 1.0 - float64(time.Since(stoppingAt))/float64(fadeDuration)
			if stopVol < vol {
				vol = stopVol
			}
			if stopVol <= 0 {
				break
			}
		}
		if vol < 0 {
			vol = 0
		}
		player.SetVolume(vol)

		if remaining <= 0 {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	player.Close()
	return nil
}
