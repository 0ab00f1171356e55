package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
)

const (
	// Lado máximo da foto após o downscale.
	maxPhotoSide = 512

	webpQuality = 85
)

type PhotoStore struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

func NewPhotoStore(region, accessKey, secretKey, bucket, baseURL string) *PhotoStore {
	client := s3.New(s3.Options{
		Region:      region,
		Credentials: credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
	})

	return &PhotoStore{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}
}

func (s *PhotoStore) Enabled() bool {
	return s != nil && s.bucket != ""
}

// UploadPetPhoto decodifica a imagem enviada, reduz para no máximo
// 512px no maior lado, reencoda em WebP e grava no bucket. Devolve a
// URL pública da foto.
func (s *PhotoStore) UploadPetPhoto(
	ctx context.Context,
	petID uint,
	r io.Reader,
) (string, error) {

	src, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("decode photo: %w", err)
	}

	dst := downscale(src, maxPhotoSide)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, dst, &webp.Options{Quality: webpQuality}); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}

	objectKey := fmt.Sprintf("pets/%d/photo.webp", petID)

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return fmt.Sprintf("%s/%s", s.baseURL, objectKey), nil
}

func downscale(src image.Image, maxSide int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	if w <= maxSide && h <= maxSide {
		return src
	}

	if w > h {
		h = h * maxSide / w
		w = maxSide
	} else {
		w = w * maxSide / h
		h = maxSide
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}
