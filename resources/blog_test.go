package resources

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/rpupo63/agency-portfolio-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlogTagsNormalisation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	encoded, err := f.m.Blogs.Create(ctx, BlogInput{Slug: str("encoded"), Tags: []string{`["a","b"]`}, Image: file("1")})
	require.NoError(t, err)
	plain, err := f.m.Blogs.Create(ctx, BlogInput{Slug: str("plain"), Tags: []string{"a", "b"}, Image: file("2")})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, []string(encoded.Tags))
	assert.Equal(t, encoded.Tags, plain.Tags)

	stored, err := f.m.Blogs.GetBySlug(ctx, "encoded")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, []string(stored.Tags))

	literal, err := f.m.Blogs.Create(ctx, BlogInput{Slug: str("literal"), Tags: []string{`["a",`}, Image: file("3")})
	require.NoError(t, err)
	assert.Equal(t, []string{`["a",`}, []string(literal.Tags))
}

func TestBlogCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.m.Blogs.Create(ctx, BlogInput{Image: file("1")})
	assertStatus(t, http.StatusBadRequest, err)
	assert.True(t, errs.IsMissingRequiredFieldError(err))
	assert.Equal(t, "Slug is required", err.Error())

	_, err = f.m.Blogs.Create(ctx, BlogInput{Slug: str("x")})
	assertStatus(t, http.StatusBadRequest, err)
	assert.Equal(t, "Image file is required", err.Error())
	assert.Zero(t, f.store.calls())

	_, err = f.m.Blogs.Create(ctx, BlogInput{Slug: str("x"), Image: file("1")})
	require.NoError(t, err)
	_, err = f.m.Blogs.Create(ctx, BlogInput{Slug: str("x"), Image: file("1")})
	assertStatus(t, http.StatusConflict, err)
}

func TestBlogUpdateAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	blog, err := f.m.Blogs.Create(ctx, BlogInput{Slug: str("post"), Title: str("Old"), CommentCount: intPtr(2), Image: file("1")})
	require.NoError(t, err)
	other, err := f.m.Blogs.Create(ctx, BlogInput{Slug: str("other"), Image: file("2")})
	require.NoError(t, err)

	err = f.m.Blogs.Update(ctx, blog.ID.String(), BlogInput{Slug: str("other")})
	assertStatus(t, http.StatusConflict, err)

	require.NoError(t, f.m.Blogs.Update(ctx, blog.ID.String(), BlogInput{Slug: str("post")}))

	require.NoError(t, f.m.Blogs.Update(ctx, blog.ID.String(), BlogInput{
		Title:        str("New"),
		CommentCount: intPtr(0),
		Tags:         []string{"go"},
		Image:        file("3"),
	}))
	got, err := f.m.Blogs.GetByID(ctx, blog.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)
	assert.Equal(t, 0, got.CommentCount)
	assert.Equal(t, []string{"go"}, []string(got.Tags))
	assert.Equal(t, cdn+"/cjus_blogs/post", got.Image)
	assert.Empty(t, f.store.deleted())

	_, err = f.m.Blogs.GetByID(ctx, "nope")
	assertStatus(t, http.StatusBadRequest, err)
	assertStatus(t, http.StatusNotFound, f.m.Blogs.Delete(ctx, uuid.NewString()))

	require.NoError(t, f.m.Blogs.Delete(ctx, other.ID.String()))
	assert.Equal(t, []string{"cjus_blogs/other"}, f.store.deleted())
	_, err = f.m.Blogs.GetBySlug(ctx, "other")
	assertStatus(t, http.StatusNotFound, err)
}

func TestNormalizeList(t *testing.T) {
	assert.Nil(t, NormalizeList(nil))
	assert.Equal(t, []string{}, NormalizeList([]string{""}))

	got := NormalizeList([]string{" [\"x\"] "})
	assert.Equal(t, []string{"x"}, got)
	assert.Equal(t, got, NormalizeList(got))

	assert.Equal(t, []string{"a", "b"}, NormalizeList([]string{" a", "b "}))
}

func TestNormalizeListKeepsBracketedLiteral(t *testing.T) {
	for _, in := range []string{"[wip]", "[draft", "[1, 2]"} {
		got := NormalizeList([]string{in})
		assert.Equal(t, []string{in}, got, in)
		assert.Equal(t, got, NormalizeList(got), in)
	}
}

func TestBlogCreateBracketedTag(t *testing.T) {
	f := newFixture(t)

	blog, err := f.m.Blogs.Create(context.Background(), BlogInput{
		Title: str("Post"),
		Slug:  str("post"),
		Tags:  []string{"[wip]"},
		Image: file("1"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"[wip]"}, []string(blog.Tags))
}
