package sfx

import (
	"bytes"
	"testing"
)

func TestSynthProducesAllKinds(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
	}{
		{"点击", Click},
		{"确认", Confirm},
		{"取消", Cancel},
		{"风声", Whoosh},
		{"错误", Error},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pcm := synth(tt.kind)
			if len(pcm) == 0 {
				t.Fatal("合成结果为空")
			}
			if len(pcm)%4 != 0 {
				t.Errorf("PCM 长度应是 4 的倍数（双声道 16 位）, got %d", len(pcm))
			}
			// 不能是全零静音
			silent := true
			for _, b := range pcm {
				if b != 0 {
					silent = false
					break
				}
			}
			if silent {
				t.Error("合成结果不应是静音")
			}
		})
	}
}

func TestSynthDeterministic(t *testing.T) {
	if !bytes.Equal(synth(Whoosh), synth(Whoosh)) {
		t.Error("同一音效两次合成应逐字节一致")
	}
}

func TestSynthStereoInterleaved(t *testing.T) {
	pcm := synth(Click)
	for i := 0; i+3 < len(pcm); i += 4 {
		if pcm[i] != pcm[i+2] || pcm[i+1] != pcm[i+3] {
			t.Fatalf("第 %d 帧左右声道应一致", i/4)
		}
	}
}

func TestMixerNilSafe(t *testing.T) {
	var m *Mixer
	// 空指针上的所有操作都应静默通过
	m.Play(Click)
	m.SetVolume(0.5)
	m.SetEnabled(false)
}

func TestMixerVolumeClamp(t *testing.T) {
	m := &Mixer{volume: 1}
	m.SetVolume(2.5)
	if m.volume != 1 {
		t.Errorf("音量应夹取到 1, got %v", m.volume)
	}
	m.SetVolume(-0.3)
	if m.volume != 0 {
		t.Errorf("音量应夹取到 0, got %v", m.volume)
	}
}

func TestMixerDisabledWithoutContext(t *testing.T) {
	// ctx 为 nil 的降级播放器不应崩溃
	m := &Mixer{samples: make(map[Kind][]byte), volume: 1, enabled: true}
	m.Play(Confirm)
}
