package screens

import "testing"

func TestTextFieldInsertAtCursor(t *testing.T) {
	f := &TextField{}
	f.SetText("hello")
	if f.cursor != 5 {
		t.Fatalf("SetText 后光标 = %d, want 5", f.cursor)
	}

	f.cursor = 2
	f.insert([]rune("XY"))
	if got := f.Text(); got != "heXYllo" {
		t.Errorf("Text = %q, want %q", got, "heXYllo")
	}
	if f.cursor != 4 {
		t.Errorf("插入后光标 = %d, want 4", f.cursor)
	}
}

func TestTextFieldDeleteBefore(t *testing.T) {
	f := &TextField{}
	f.SetText("abc")

	f.deleteBefore()
	if got := f.Text(); got != "ab" {
		t.Errorf("Text = %q, want %q", got, "ab")
	}
	f.cursor = 0
	f.deleteBefore() // 光标在开头时不做事
	if got := f.Text(); got != "ab" {
		t.Errorf("开头退格后 Text = %q, want %q", got, "ab")
	}
}

func TestTextFieldDeleteAfter(t *testing.T) {
	f := &TextField{}
	f.SetText("abc")
	f.cursor = 1

	f.deleteAfter()
	if got := f.Text(); got != "ac" {
		t.Errorf("Text = %q, want %q", got, "ac")
	}
	f.cursor = 2
	f.deleteAfter() // 光标在末尾时不做事
	if got := f.Text(); got != "ac" {
		t.Errorf("末尾删除后 Text = %q, want %q", got, "ac")
	}
}

func TestTextFieldMultibyteRunes(t *testing.T) {
	f := &TextField{}
	f.SetText("门厅A")
	if f.cursor != 3 {
		t.Fatalf("多字节文本光标 = %d, want 3", f.cursor)
	}

	f.deleteBefore() // 删掉 A
	f.deleteBefore() // 删掉 厅
	if got := f.Text(); got != "门" {
		t.Errorf("Text = %q, want %q", got, "门")
	}

	f.cursor = 0
	f.insert([]rune("大"))
	if got := f.Text(); got != "大门" {
		t.Errorf("Text = %q, want %q", got, "大门")
	}
}

func TestTextFieldOnChange(t *testing.T) {
	f := &TextField{}
	var calls int
	var last string
	f.OnChange = func(s string) {
		calls++
		last = s
	}

	f.SetText("seed") // SetText 不触发回调
	if calls != 0 {
		t.Fatalf("SetText 触发了 %d 次回调", calls)
	}

	f.insert([]rune("!"))
	f.deleteBefore()
	if calls != 2 {
		t.Errorf("回调次数 = %d, want 2", calls)
	}
	if last != "seed" {
		t.Errorf("最后一次回调文本 = %q, want %q", last, "seed")
	}
}

func TestTextFieldFocusState(t *testing.T) {
	f := &TextField{}
	if f.Focused() {
		t.Fatal("新输入框不应持有焦点")
	}
	f.Focus()
	if !f.Focused() {
		t.Error("Focus 后应持有焦点")
	}
	if !f.blinkVisible {
		t.Error("聚焦后光标应立即可见")
	}
	f.Blur()
	if f.Focused() {
		t.Error("Blur 后不应持有焦点")
	}
}
