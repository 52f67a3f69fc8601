package screens

import "testing"

func TestFontCacheReusesFaces(t *testing.T) {
	fc, err := NewFontCache()
	if err != nil {
		t.Fatalf("NewFontCache: %v", err)
	}

	a := fc.Face(16)
	b := fc.Face(16)
	if a != b {
		t.Error("相同字号应返回同一字面")
	}
	if a.Size != 16 {
		t.Errorf("字号 = %v, want 16", a.Size)
	}

	c := fc.Face(24)
	if c == a {
		t.Error("不同字号不应共享字面")
	}
	if c.Size != 24 {
		t.Errorf("字号 = %v, want 24", c.Size)
	}
}
