package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectKey(t *testing.T) {
	key := ObjectKey("rooms/gallery/", "Chambre Océan (1).JPG")

	assert.True(t, strings.HasPrefix(key, "rooms/gallery/"), key)
	assert.True(t, strings.HasSuffix(key, "-chambre-ocean-1.jpg"), key)
	assert.NotEqual(t, key, ObjectKey("rooms/gallery/", "Chambre Océan (1).JPG"))
}

func TestObjectKeyStripsDirectories(t *testing.T) {
	key := ObjectKey("avatars", `..\..\etc/passwd`)
	assert.True(t, strings.HasPrefix(key, "avatars/"), key)
	assert.NotContains(t, key, "..")
	assert.True(t, strings.HasSuffix(key, "-passwd"), key)
}

func TestLocalSaveURLDelete(t *testing.T) {
	root := t.TempDir()
	local, err := NewLocal(root, "media")
	require.NoError(t, err)

	ref, err := local.Save(context.Background(), PrefixRoomMain, "front.webp", []byte("webp-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "rooms/"), ref)

	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(ref)))
	require.NoError(t, err)
	assert.Equal(t, "webp-bytes", string(data))

	assert.Equal(t, "https://hotel.example/media/"+ref, local.URL("https://hotel.example/", ref))
	assert.Equal(t, "http://10.0.0.5:8080/media/"+ref, local.URL("http://10.0.0.5:8080", ref))

	require.NoError(t, local.Delete(context.Background(), ref))
	_, err = os.Stat(filepath.Join(root, filepath.FromSlash(ref)))
	assert.True(t, os.IsNotExist(err))

	// Deleting twice is fine.
	require.NoError(t, local.Delete(context.Background(), ref))
}

func TestLocalPathStaysInsideRoot(t *testing.T) {
	root := t.TempDir()
	local, err := NewLocal(root, "/media/")
	require.NoError(t, err)

	p := local.path("../../outside.txt")
	assert.True(t, strings.HasPrefix(p, root), p)
}

func TestLocalSaveHonoursCancelledContext(t *testing.T) {
	local, err := NewLocal(t.TempDir(), "/media/")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = local.Save(ctx, PrefixAvatars, "a.png", []byte("x"))
	require.ErrorIs(t, err, context.Canceled)
}

type stubS3 struct {
	put     []*s3.PutObjectInput
	body    []string
	deleted []string
	putErr  error
}

func (s *stubS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if s.putErr != nil {
		return nil, s.putErr
	}
	b, _ := io.ReadAll(params.Body)
	s.put = append(s.put, params)
	s.body = append(s.body, string(b))
	return &s3.PutObjectOutput{}, nil
}

func (s *stubS3) DeleteObject(_ context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	s.deleted = append(s.deleted, *params.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3SaveAndURL(t *testing.T) {
	stub := &stubS3{}
	backend := newS3WithClient(stub, "lumarise-media", "https://cdn.lumarise.example/")

	ref, err := backend.Save(context.Background(), PrefixGallery, "pool.webp", []byte("img"))
	require.NoError(t, err)
	require.Len(t, stub.put, 1)
	assert.Equal(t, "lumarise-media", *stub.put[0].Bucket)
	assert.Equal(t, ref, *stub.put[0].Key)
	assert.Equal(t, "image/webp", *stub.put[0].ContentType)
	assert.Equal(t, "img", stub.body[0])

	assert.Equal(t, "https://cdn.lumarise.example/"+ref, backend.URL("http://ignored", ref))

	require.NoError(t, backend.Delete(context.Background(), ref))
	assert.Equal(t, []string{ref}, stub.deleted)
}

func TestS3SaveError(t *testing.T) {
	backend := newS3WithClient(&stubS3{putErr: errors.New("403")}, "b", "https://cdn")
	_, err := backend.Save(context.Background(), PrefixGallery, "pool.webp", []byte("img"))
	require.Error(t, err)
}

type stubCloudinary struct {
	uploads   []uploader.UploadParams
	destroyed []uploader.DestroyParams
	uploadErr string
}

func (s *stubCloudinary) Upload(_ context.Context, _ interface{}, params uploader.UploadParams) (*uploader.UploadResult, error) {
	s.uploads = append(s.uploads, params)
	res := &uploader.UploadResult{
		SecureURL: "https://res.cloudinary.com/demo/image/upload/v1712345678/" + params.PublicID + ".webp",
	}
	if s.uploadErr != "" {
		res.Error = api.ErrorResp{Message: s.uploadErr}
	}
	return res, nil
}

func (s *stubCloudinary) Destroy(_ context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error) {
	s.destroyed = append(s.destroyed, params)
	return &uploader.DestroyResult{Result: "ok"}, nil
}

func TestCloudinarySaveAndDelete(t *testing.T) {
	stub := &stubCloudinary{}
	backend := &Cloudinary{api: stub, folder: "lumarise"}

	ref, err := backend.Save(context.Background(), PrefixAvatars, "Jane.png", []byte("png"))
	require.NoError(t, err)
	require.Len(t, stub.uploads, 1)
	assert.True(t, strings.HasPrefix(stub.uploads[0].PublicID, "lumarise/avatars/"))
	assert.False(t, strings.HasSuffix(stub.uploads[0].PublicID, ".png"))
	assert.Equal(t, ref, backend.URL("http://ignored", ref))

	require.NoError(t, backend.Delete(context.Background(), ref))
	require.Len(t, stub.destroyed, 1)
	assert.Equal(t, stub.uploads[0].PublicID, stub.destroyed[0].PublicID)
	assert.Equal(t, "image", stub.destroyed[0].ResourceType)
}

func TestCloudinaryUploadErrorInBody(t *testing.T) {
	backend := &Cloudinary{api: &stubCloudinary{uploadErr: "Invalid image file"}, folder: "x"}
	_, err := backend.Save(context.Background(), PrefixAvatars, "a.png", []byte("png"))
	require.ErrorContains(t, err, "Invalid image file")
}

func TestParseDeliveryURL(t *testing.T) {
	rt, id, ok := parseDeliveryURL("https://res.cloudinary.com/demo/video/upload/v17/lumarise/videos/abc-tour.mp4")
	require.True(t, ok)
	assert.Equal(t, "video", rt)
	assert.Equal(t, "lumarise/videos/abc-tour", id)

	rt, id, ok = parseDeliveryURL("https://res.cloudinary.com/demo/image/upload/sample.jpg")
	require.True(t, ok)
	assert.Equal(t, "image", rt)
	assert.Equal(t, "sample", id)

	_, _, ok = parseDeliveryURL("rooms/a.webp")
	assert.False(t, ok)
}
