package markdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLiftsWellKnownFields(t *testing.T) {
	source := `---
title: First Post
description: An introduction
date: 2025-02-01
tags:
  - go
  - web
custom: kept
---
# Hello

Some **bold** text.
`
	doc, err := NewParser().Parse(source)
	require.NoError(t, err)

	assert.Equal(t, "First Post", doc.Title)
	assert.Equal(t, "An introduction", doc.Description)
	assert.Equal(t, 2025, doc.Date.Year())
	assert.Equal(t, []string{"go", "web"}, doc.Tags)
	assert.Equal(t, "kept", doc.Fields["custom"])
	assert.Contains(t, doc.HTML, "<strong>bold</strong>")
	assert.NotEmpty(t, doc.Fingerprint)
}

func TestParseWithoutFrontmatter(t *testing.T) {
	doc, err := NewParser().Parse("plain *markdown* only\n")
	require.NoError(t, err)

	assert.Empty(t, doc.Title)
	assert.Empty(t, doc.Fields)
	assert.Contains(t, doc.HTML, "<em>markdown</em>")
}

func TestParseRendersGFMTables(t *testing.T) {
	doc, err := NewParser().Parse("| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.NoError(t, err)
	assert.Contains(t, doc.HTML, "<table>")
}

func TestParseLastModifiedDefaultsToDate(t *testing.T) {
	doc, err := NewParser().Parse("---\ndate: 2025-02-01\n---\nbody\n")
	require.NoError(t, err)
	assert.Equal(t, doc.Date, doc.LastModified)

	doc, err = NewParser().Parse("---\ndate: 2025-02-01\nlastmod: 2025-03-05\n---\nbody\n")
	require.NoError(t, err)
	assert.Equal(t, time.March, doc.LastModified.Month())
}

func TestParseMissingClosingDelimiter(t *testing.T) {
	_, err := NewParser().Parse("---\ntitle: broken\nno closing\n")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingClosingDelimiter)
}

func TestSplitHandlesEmptyFrontmatter(t *testing.T) {
	fm, body, had, _, err := Split([]byte("---\n---\nbody\n"))
	require.NoError(t, err)
	assert.True(t, had)
	assert.Empty(t, fm)
	assert.Equal(t, "body\n", string(body))
}

func TestFingerprintStableAcrossParses(t *testing.T) {
	source := "---\ntitle: T\n---\nbody\n"
	a, err := NewParser().Parse(source)
	require.NoError(t, err)
	b, err := NewParser().Parse(source)
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint, b.Fingerprint)

	c, err := NewParser().Parse("---\ntitle: T\n---\ndifferent body\n")
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint, c.Fingerprint)
}
