package filestore

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type CloudinaryOptions struct {
	URL       string // cloudinary://<key>:<secret>@<cloud>, wins over the split credentials
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// cloudinaryAPI is the part of *uploader.API the store uses.
type cloudinaryAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

// Cloudinary stores images on the Cloudinary image host. The ref is the
// secure delivery URL; the public id is recovered from it on Remove.
type Cloudinary struct {
	api    cloudinaryAPI
	folder string
}

func NewCloudinary(opts CloudinaryOptions) (*Cloudinary, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if opts.URL != "" {
		cld, err = cloudinary.NewFromURL(opts.URL)
	} else {
		cld, err = cloudinary.NewFromParams(opts.CloudName, opts.APIKey, opts.APISecret)
	}
	if err != nil {
		return nil, fmt.Errorf("create cloudinary client: %w", err)
	}
	return newCloudinary(&cld.Upload, opts.Folder), nil
}

func newCloudinary(api cloudinaryAPI, folder string) *Cloudinary {
	return &Cloudinary{api: api, folder: strings.Trim(folder, "/")}
}

func (s *Cloudinary) Save(ctx context.Context, obj Object) (string, error) {
	publicID := strings.TrimSuffix(obj.Name, path.Ext(obj.Name))

	res, err := s.api.Upload(ctx, obj.Body, uploader.UploadParams{
		PublicID: publicID,
		Folder:   s.folder,
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload %q: %w", obj.Name, err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload %q: %s", obj.Name, res.Error.Message)
	}
	if res.SecureURL == "" {
		return "", errors.New("cloudinary upload: empty secure url")
	}
	return res.SecureURL, nil
}

func (s *Cloudinary) Remove(ctx context.Context, ref string) error {
	publicID, ok := publicIDFromURL(ref)
	if !ok {
		return fmt.Errorf("invalid file reference %q", ref)
	}

	res, err := s.api.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("cloudinary destroy %q: %w", publicID, err)
	}
	if res.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy %q: %s", publicID, res.Error.Message)
	}

	switch res.Result {
	case "ok":
		return nil
	case "not found":
		return ErrNotExist
	default:
		return fmt.Errorf("cloudinary destroy %q: unexpected result %q", publicID, res.Result)
	}
}

// publicIDFromURL turns
// https://res.cloudinary.com/<cloud>/image/upload/v1712/<folder>/<name>.jpg
// into "<folder>/<name>".
func publicIDFromURL(ref string) (string, bool) {
	_, rest, found := strings.Cut(ref, "/upload/")
	if !found || rest == "" {
		return "", false
	}

	segments := strings.Split(rest, "/")
	if isVersionSegment(segments[0]) {
		segments = segments[1:]
	}
	if len(segments) == 0 {
		return "", false
	}

	id := strings.Join(segments, "/")
	id = strings.TrimSuffix(id, path.Ext(id))
	return id, id != ""
}

func isVersionSegment(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, r := range s[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
