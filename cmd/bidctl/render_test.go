package main

import (
	"strings"
	"testing"
	"time"

	"github.com/bidhub-api/internal/application/toast"
	"github.com/stretchr/testify/assert"
)

func TestRenderToasts_Empty(t *testing.T) {
	assert.Contains(t, renderToasts(nil, time.Now()), "no toasts")
}

func TestRenderToasts(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	out := renderToasts([]toast.Toast{
		{ID: 1, Title: "Admin", Message: "Admin account created successfully", Type: toast.SeveritySuccess,
			Visible: true, Duration: 3000, CreatedAt: now.Add(-2 * time.Minute)},
		{ID: 2, Message: "upload failed", Type: toast.SeverityError, Visible: false, CreatedAt: now.Add(-3 * time.Hour)},
	}, now)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	assert.Len(t, lines, 2)

	assert.Contains(t, lines[0], "#1")
	assert.Contains(t, lines[0], "success")
	assert.Contains(t, lines[0], "Admin account created successfully")
	assert.Contains(t, lines[0], "2 minutes ago")
	assert.Contains(t, lines[0], "auto 3s")
	assert.NotContains(t, lines[0], "hiding")

	assert.Contains(t, lines[1], "#2")
	assert.Contains(t, lines[1], "error")
	assert.Contains(t, lines[1], "3 hours ago")
	assert.Contains(t, lines[1], "sticky")
	assert.Contains(t, lines[1], "hiding")
}

func TestRenderToasts_UnknownTypeRendersAsIs(t *testing.T) {
	out := renderToasts([]toast.Toast{{ID: 7, Message: "hi", Type: "odd", Visible: true}}, time.Now())
	assert.Contains(t, out, "#7")
	assert.Contains(t, out, "hi")
}
