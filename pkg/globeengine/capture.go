package globeengine

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// captureFrame saves the current frame as a PNG under FrameCaptureDir.
// Pixels are copied synchronously; encoding happens off the render thread.
func (e *Engine) captureFrame(img *ebiten.Image, suffix string, timestamp time.Time) {
	if e.FrameCaptureDir == "" {
		return
	}
	if err := os.MkdirAll(e.FrameCaptureDir, 0o755); err != nil {
		log.Printf("Error creating capture directory: %v", err)
		return
	}

	filename := fmt.Sprintf("globe-%s-%s.png", timestamp.Format("20060102-150405"), suffix)
	path := filepath.Join(e.FrameCaptureDir, filename)

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	img.ReadPixels(rgba.Pix)

	go func() {
		f, err := os.Create(path)
		if err != nil {
			log.Printf("Error creating capture file: %v", err)
			return
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Printf("Error closing capture file: %v", err)
			}
		}()
		if err := png.Encode(f, rgba); err != nil {
			log.Printf("Error encoding capture: %v", err)
			return
		}
		log.Printf("Captured frame: %s", path)
	}()
}
