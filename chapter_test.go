package epub

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildChapterDoc_Shell(t *testing.T) {
	book := testBook()
	book.Language = "pt-BR"
	lay, err := newLayout(book, false)
	require.NoError(t, err)

	doc, err := buildChapterDoc(book, 0, lay, false)
	require.NoError(t, err)

	s := string(doc)
	for _, want := range []string{
		`<?xml version="1.0" encoding="utf-8"?>`,
		`xml:lang="pt-BR"`,
		`<title>One</title>`,
		`<p>first</p>`,
		`xmlns="http://www.w3.org/1999/xhtml"`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("chapter document missing %q:\n%s", want, s)
		}
	}
}

func TestBuildChapterDoc_TitleFallbackAndEscaping(t *testing.T) {
	book := testBook()
	book.Chapters[0].Title = ""
	book.Chapters[1].Title = "Tom & Jerry <3"
	lay, err := newLayout(book, false)
	require.NoError(t, err)

	doc, err := buildChapterDoc(book, 0, lay, false)
	require.NoError(t, err)
	require.Contains(t, string(doc), "<title>Chapter 1</title>")

	doc, err = buildChapterDoc(book, 1, lay, false)
	require.NoError(t, err)
	require.Contains(t, string(doc), "<title>Tom &amp; Jerry &lt;3</title>")
}

func TestBuildChapterDoc_MalformedBody(t *testing.T) {
	book := testBook()
	book.Chapters[1].Body = "<p><em>mismatched</p></em>"
	lay, err := newLayout(book, false)
	require.NoError(t, err)

	_, err = buildChapterDoc(book, 1, lay, false)
	if !errors.Is(err, ErrMalformedMarkup) {
		t.Fatalf("err = %v, want ErrMalformedMarkup", err)
	}
	if !strings.Contains(err.Error(), "chapter 2") {
		t.Errorf("error %q does not name the offending chapter", err)
	}
}

func TestBuildChapterDocs_ParallelOrderFidelity(t *testing.T) {
	const n = 64
	book := Book{Title: "Big", Identifier: "urn:test:big"}
	for i := 1; i <= n; i++ {
		book.Chapters = append(book.Chapters, Chapter{
			Body: fmt.Sprintf("<p>chapter body %d</p>", i),
		})
	}
	lay, err := newLayout(book, false)
	require.NoError(t, err)

	docs, err := buildChapterDocs(context.Background(), book, lay, false)
	require.NoError(t, err)
	require.Len(t, docs, n)

	for i, doc := range docs {
		want := fmt.Sprintf("<p>chapter body %d</p>", i+1)
		if !strings.Contains(string(doc), want) {
			t.Fatalf("docs[%d] does not contain %q", i, want)
		}
	}
}

func TestBuildChapterDocs_FirstErrorWins(t *testing.T) {
	book := testBook()
	book.Chapters[0].Body = "<p>fine</p>"
	book.Chapters[1].Body = "<broken"
	lay, err := newLayout(book, false)
	require.NoError(t, err)

	_, err = buildChapterDocs(context.Background(), book, lay, false)
	if !errors.Is(err, ErrMalformedMarkup) {
		t.Fatalf("err = %v, want ErrMalformedMarkup", err)
	}
}

func TestChapterLabel(t *testing.T) {
	tests := []struct {
		i     int
		title string
		want  string
	}{
		{0, "Intro", "Intro"},
		{0, "", "Chapter 1"},
		{9, "  ", "Chapter 10"},
	}
	for _, tt := range tests {
		if got := chapterLabel(tt.i, tt.title); got != tt.want {
			t.Errorf("chapterLabel(%d, %q) = %q, want %q", tt.i, tt.title, got, tt.want)
		}
	}
}
