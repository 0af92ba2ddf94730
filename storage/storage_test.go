package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicID(t *testing.T) {
	cases := map[string]string{
		"": "",
		"https://cdn.example.com/cjus_blogs/my-post":                      "my-post",
		"https://cdn.example.com/portfolio_images/seo.v2":                 "seo.v2",
		"https://cdn.example.com/portfolio_projects/shop.io-0b6d2c1e?x=1": "shop.io-0b6d2c1e",
		"portfolio_projects/abc":                                          "abc",
		"plain":                                                           "plain",
	}
	for in, want := range cases {
		assert.Equal(t, want, PublicID(in), in)
	}
}

func TestPublicURLRoundTrip(t *testing.T) {
	u := PublicURL("https://cdn.example.com/", ProjectsFolder, "shop")
	assert.Equal(t, "https://cdn.example.com/portfolio_projects/shop", u)
	assert.Equal(t, "shop", PublicID(u))

	dotted := PublicURL("https://cdn.example.com", ServicesFolder, "seo.v2")
	assert.Equal(t, "seo.v2", PublicID(dotted))
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore("https://cdn.test")

	u, err := store.Upload(ctx, BlogsFolder, "post", Upload{Body: strings.NewReader("img")})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/cjus_blogs/post", u)
	assert.True(t, store.Has(BlogsFolder, "post"))

	require.NoError(t, store.Delete(ctx, BlogsFolder, "post"))
	assert.False(t, store.Has(BlogsFolder, "post"))
	assert.NoError(t, store.Delete(ctx, BlogsFolder, "post"))
}

type fakeS3 struct {
	puts    []*s3.PutObjectInput
	deletes []*s3.DeleteObjectInput
	err     error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, err := io.ReadAll(in.Body); err != nil {
		return nil, err
	}
	f.puts = append(f.puts, in)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.deletes = append(f.deletes, in)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3StoreUploadAndDelete(t *testing.T) {
	ctx := context.Background()
	client := &fakeS3{}
	store := NewS3StoreWithClient(client, "media", "https://media.example.com")

	u, err := store.Upload(ctx, ServicesFolder, "seo", Upload{
		ContentType: "image/png",
		Size:        3,
		Body:        strings.NewReader("png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://media.example.com/portfolio_images/seo", u)

	require.Len(t, client.puts, 1)
	assert.Equal(t, "media", aws.ToString(client.puts[0].Bucket))
	assert.Equal(t, "portfolio_images/seo", aws.ToString(client.puts[0].Key))
	assert.Equal(t, "image/png", aws.ToString(client.puts[0].ContentType))
	assert.Equal(t, int64(3), aws.ToInt64(client.puts[0].ContentLength))

	require.NoError(t, store.Delete(ctx, ServicesFolder, "seo"))
	require.Len(t, client.deletes, 1)
	assert.Equal(t, "portfolio_images/seo", aws.ToString(client.deletes[0].Key))
}

func TestS3StoreWrapsErrors(t *testing.T) {
	boom := errors.New("access denied")
	store := NewS3StoreWithClient(&fakeS3{err: boom}, "media", "https://m")

	_, err := store.Upload(context.Background(), BlogsFolder, "x", Upload{Body: strings.NewReader("")})
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, store.Delete(context.Background(), BlogsFolder, "x"), boom)
}

func TestInstrumentPassesThrough(t *testing.T) {
	mem := NewMemoryStore("https://cdn.test")
	store := Instrument(mem)

	_, err := store.Upload(context.Background(), ServicesFolder, "a", Upload{Body: strings.NewReader("1")})
	require.NoError(t, err)
	assert.Equal(t, 1, mem.Len())
	require.NoError(t, store.Delete(context.Background(), ServicesFolder, "a"))
	assert.Equal(t, 0, mem.Len())
}
