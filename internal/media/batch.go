package media

import (
	"context"
	"fmt"
	"mime/multipart"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"easybooking/internal/apperrors"
)

const (
	ResourceImage = "image"
	ResourceVideo = "video"

	imageFolder = "trending/images"
	videoFolder = "trending/videos"

	// primary image + 6 secondary images
	MaxImages = 7
)

// Batch is the set of binaries attached to one add request. Index 0 of
// Images is the required primary image.
type Batch struct {
	Images [MaxImages]*multipart.FileHeader
	Video  *multipart.FileHeader
}

// Result holds the public URLs produced for a batch. ImageURLs[0] is always
// set on success; the rest are nil where no file was provided or a secondary
// upload failed.
type Result struct {
	ImageURLs [MaxImages]*string
	VideoURL  *string
}

// Pipeline stages uploads locally and promotes them to the media store.
type Pipeline struct {
	dir      string
	uploader Uploader
}

func NewPipeline(dir string, uploader Uploader) *Pipeline {
	return &Pipeline{dir: dir, uploader: uploader}
}

// Process stages every provided file, uploads them concurrently and deletes
// every temporary file on both success and failure paths. A failed primary
// image upload aborts the operation; failed secondary or video uploads are
// logged and recorded as absent.
func (p *Pipeline) Process(ctx context.Context, batch *Batch) (*Result, error) {
	staged := make([]string, 0, MaxImages+1)
	defer func() { Cleanup(staged) }()

	type upload struct {
		path         string
		resourceType string
		folder       string
		imageSlot    int // -1 for video
	}
	uploads := make([]upload, 0, MaxImages+1)

	for i, fh := range batch.Images {
		if fh == nil {
			continue
		}
		path, err := Stage(p.dir, fh, fmt.Sprintf("image%d", i))
		if err != nil {
			return nil, err
		}
		staged = append(staged, path)
		uploads = append(uploads, upload{path: path, resourceType: ResourceImage, folder: imageFolder, imageSlot: i})
	}

	if batch.Video != nil {
		path, err := Stage(p.dir, batch.Video, "video")
		if err != nil {
			return nil, err
		}
		staged = append(staged, path)
		uploads = append(uploads, upload{path: path, resourceType: ResourceVideo, folder: videoFolder, imageSlot: -1})
	}

	result := &Result{}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, u := range uploads {
		u := u
		g.Go(func() error {
			url, err := p.uploader.Upload(gctx, u.path, u.resourceType, u.folder)
			if err != nil {
				// Only the primary image is mandatory; everything else
				// degrades to an absent URL.
				log.Error().Err(err).Str("resource_type", u.resourceType).Int("slot", u.imageSlot).
					Msg("Media store upload failed")
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			if u.imageSlot >= 0 {
				result.ImageURLs[u.imageSlot] = &url
			} else {
				result.VideoURL = &url
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if result.ImageURLs[0] == nil {
		return nil, apperrors.Internal("Main image upload failed to Cloudinary.")
	}
	return result, nil
}
