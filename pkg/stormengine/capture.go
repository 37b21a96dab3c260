package stormengine

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
)

// captureFrame writes the drawn screen as a numbered PNG into
// FrameCaptureDir. Writes are synchronous: the offline renderer depends on
// every frame existing when the run ends.
func (e *Engine) captureFrame(img *ebiten.Image, frame int) {
	if err := os.MkdirAll(e.FrameCaptureDir, 0o755); err != nil {
		log.Printf("Error creating capture directory: %v", err)
		return
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	img.ReadPixels(rgba.Pix)

	path := filepath.Join(e.FrameCaptureDir, fmt.Sprintf("storm-%06d.png", frame))
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
	}
}
