// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"testing"
	"time"
)

func TestToastDurations(t *testing.T) {
	if d := NewErrorToast("e").Duration; d != 8*time.Second {
		t.Errorf("error toast duration = %v", d)
	}
	if d := NewWarningToast("w").Duration; d != 6*time.Second {
		t.Errorf("warning toast duration = %v", d)
	}
	if d := NewSuccessToast("s").Duration; d != 4*time.Second {
		t.Errorf("success toast duration = %v", d)
	}
	if d := NewStatusToast("i").Duration; d != 4*time.Second {
		t.Errorf("status toast duration = %v", d)
	}
}

func TestToastExpiry(t *testing.T) {
	toast := NewStatusToast("hello")
	if toast.IsExpired() {
		t.Error("fresh toast should not be expired")
	}

	toast.CreatedAt = time.Now().Add(-5 * time.Second)
	if !toast.IsExpired() {
		t.Error("toast past its duration should be expired")
	}
	if toast.TimeRemaining() != 0 {
		t.Errorf("TimeRemaining = %v, want 0", toast.TimeRemaining())
	}
}

func TestToastManager_NewestFirstAndCap(t *testing.T) {
	m := NewToastManager()

	for i := 0; i < 7; i++ {
		m.AddStatus("toast")
	}

	toasts := m.GetToasts()
	if len(toasts) != 5 {
		t.Fatalf("len = %d, want capped at 5", len(toasts))
	}
	if toasts[0].ID <= toasts[1].ID {
		t.Error("newest toast should be first")
	}
}

func TestToastManager_RemoveAndTick(t *testing.T) {
	m := NewToastManager()
	id := m.AddError("boom")
	m.AddStatus("fine")

	m.RemoveToast(id)
	if len(m.GetToasts()) != 1 {
		t.Fatalf("len after remove = %d, want 1", len(m.GetToasts()))
	}

	// Force the remaining toast to expire.
	toasts := m.GetToasts()
	expired := toasts[0]
	expired.CreatedAt = time.Now().Add(-time.Minute)
	m.Clear()
	m.AddToast(expired)

	if remaining := m.TickToasts(); len(remaining) != 0 {
		t.Errorf("TickToasts left %d toasts, want 0", len(remaining))
	}
	if m.HasToasts() {
		t.Error("HasToasts should be false after expiry")
	}
}

func TestRenderToast_NonEmpty(t *testing.T) {
	toast := NewErrorToast("something went wrong while uploading")
	out := RenderToast(toast, 80)
	if out == "" {
		t.Error("RenderToast returned empty string")
	}

	stack := RenderToastStack([]Toast{toast, NewStatusToast("ok")}, 80, 24)
	if stack == "" {
		t.Error("RenderToastStack returned empty string")
	}
	if RenderToastStack(nil, 80, 24) != "" {
		t.Error("empty stack should render as empty string")
	}
}
