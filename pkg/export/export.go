// Package export persists finished frame buffers: the linear buffer goes
// into a Radiance HDR container, alongside a tonemapped PNG preview and
// an optional thumbnail, and the artifacts can be published to S3.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"golang.org/x/sync/errgroup"

	"github.com/go-trace-lab/spheretracer/pkg/display"
	"github.com/go-trace-lab/spheretracer/pkg/renderer"
)

// SaveOptions controls which artifacts Save produces
type SaveOptions struct {
	Display    display.Options // Preview conversion settings
	ThumbWidth int             // Thumbnail width in pixels (0 = no thumbnail)
}

// DefaultSaveOptions returns the standard artifact set
func DefaultSaveOptions() SaveOptions {
	return SaveOptions{
		Display:    display.DefaultOptions(),
		ThumbWidth: 128,
	}
}

// Save writes <name>.hdr, <name>.png and optionally <name>_thumb.png into
// dir, creating it if needed. The artifacts are written concurrently.
// It returns the paths of the files written.
func Save(dir, name string, fb *renderer.FrameBuffer, opts SaveOptions) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("export: creating output directory: %w", err)
	}

	hdrPath := filepath.Join(dir, name+".hdr")
	previewPath := filepath.Join(dir, name+".png")

	paths := []string{hdrPath, previewPath}

	// The preview image feeds both the PNG and the thumbnail
	preview := display.ToRGBA(fb, opts.Display)

	var g errgroup.Group

	g.Go(func() error {
		file, err := os.Create(hdrPath)
		if err != nil {
			return fmt.Errorf("export: creating %s: %w", hdrPath, err)
		}
		defer file.Close()
		if err := WriteHDR(file, fb); err != nil {
			return fmt.Errorf("export: writing %s: %w", hdrPath, err)
		}
		return file.Close()
	})

	g.Go(func() error {
		if err := imaging.Save(preview, previewPath); err != nil {
			return fmt.Errorf("export: writing %s: %w", previewPath, err)
		}
		return nil
	})

	if opts.ThumbWidth > 0 {
		thumbPath := filepath.Join(dir, name+"_thumb.png")
		paths = append(paths, thumbPath)
		g.Go(func() error {
			thumb := resize.Resize(uint(opts.ThumbWidth), 0, preview, resize.Lanczos3)
			if err := imaging.Save(thumb, thumbPath); err != nil {
				return fmt.Errorf("export: writing %s: %w", thumbPath, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return paths, nil
}
