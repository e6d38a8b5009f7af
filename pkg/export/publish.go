package export

import (
	"context"
	"fmt"
	"image"
	"path"

	"golang.org/x/sync/errgroup"
)

// PublishOptions combines a local save with an optional upload
type PublishOptions struct {
	Save Options
	Key  string // Object key; empty uses the base name of Save.Path
}

// Publish writes img locally and, when uploader is non-nil, uploads a PNG encoding
// of it at the same time. The first failure cancels the other half.
func Publish(ctx context.Context, img image.Image, opts PublishOptions, uploader Uploader) error {
	key := opts.Key
	if uploader != nil && key == "" {
		key = path.Base(opts.Save.Path)
		if key == "." || key == "/" {
			return fmt.Errorf("no object key for upload")
		}
	}

	g, ctx := errgroup.WithContext(ctx)

	if opts.Save.Path != "" {
		g.Go(func() error {
			return Save(img, opts.Save)
		})
	}

	if uploader != nil {
		g.Go(func() error {
			data, err := EncodePNG(Scale(img, opts.Save.Scale))
			if err != nil {
				return err
			}
			return uploader.Upload(ctx, key, data, "image/png")
		})
	}

	return g.Wait()
}
