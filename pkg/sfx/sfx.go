// Package sfx 提供程序化合成的界面音效。所有波形在首次播放前合成为
// 16 位立体声 PCM，不依赖任何音频资源文件，便于打包发行。
package sfx

import (
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const sampleRate = 48000

// Kind 音效种类。
type Kind int

const (
	// Click 普通点击
	Click Kind = iota
	// Confirm 确认放置、保存成功等积极反馈
	Confirm
	// Cancel 取消操作
	Cancel
	// Whoosh 场景过渡的风声
	Whoosh
	// Error 加载失败等错误提示
	Error
)

// Mixer 音效播放器。进程内只应存在一个（ebiten 音频上下文的限制），
// ctx 为 nil 时静默降级，所有 Play 调用直接返回。
type Mixer struct {
	ctx     *audio.Context
	samples map[Kind][]byte
	volume  float64
	enabled bool
}

// NewMixer 创建音效播放器并初始化音频上下文。
// 上下文已存在时直接复用（audio.NewContext 重复调用会 panic）。
func NewMixer() *Mixer {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	return &Mixer{
		ctx:     ctx,
		samples: make(map[Kind][]byte),
		volume:  1,
		enabled: true,
	}
}

// SetVolume 设置播放音量，范围 [0,1]。
func (m *Mixer) SetVolume(v float64) {
	if m == nil {
		return
	}
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	m.volume = v
}

// SetEnabled 开关音效。
func (m *Mixer) SetEnabled(on bool) {
	if m == nil {
		return
	}
	m.enabled = on
}

// Play 播放一种音效。短音效每次新建播放器，互相不打断。
func (m *Mixer) Play(k Kind) {
	if m == nil || m.ctx == nil || !m.enabled || m.volume <= 0 {
		return
	}
	pcm, ok := m.samples[k]
	if !ok {
		pcm = synth(k)
		m.samples[k] = pcm
	}
	p := m.ctx.NewPlayerFromBytes(pcm)
	p.SetVolume(m.volume)
	p.Play()
}

// synth 合成一种音效的 PCM 数据。
func synth(k Kind) []byte {
	switch k {
	case Click:
		return synthChirp(0.05, 1800, 1600, 0.5, 0.002)
	case Confirm:
		a := synthChirp(0.09, 660, 660, 0.45, 0.004)
		b := synthChirp(0.14, 880, 880, 0.45, 0.004)
		return append(a, b...)
	case Cancel:
		return synthChirp(0.16, 440, 310, 0.45, 0.004)
	case Whoosh:
		return synthWhoosh(0.9, 0.38)
	case Error:
		a := synthChirp(0.12, 240, 240, 0.5, 0.004)
		b := synthChirp(0.2, 180, 180, 0.5, 0.004)
		return append(a, b...)
	default:
		return synthChirp(0.05, 1000, 1000, 0.4, 0.002)
	}
}

// synthChirp 合成一段频率线性滑动的正弦音。attack 是淡入时长（秒），
// 其余部分指数衰减，避免爆音。
func synthChirp(durSec, freqFrom, freqTo, gain, attack float64) []byte {
	n := int(durSec * sampleRate)
	buf := make([]byte, 0, n*4)
	phase := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / sampleRate
		progress := t / durSec
		freq := freqFrom + (freqTo-freqFrom)*progress
		phase += 2 * math.Pi * freq / sampleRate
		env := math.Exp(-4 * progress)
		if t < attack {
			env *= t / attack
		}
		buf = appendSample(buf, math.Sin(phase)*gain*env)
	}
	return buf
}

// synthWhoosh 合成过渡风声：低通化的白噪声配中间强两头弱的包络。
func synthWhoosh(durSec, gain float64) []byte {
	n := int(durSec * sampleRate)
	buf := make([]byte, 0, n*4)
	rng := rand.New(rand.NewSource(7))
	low := 0.0
	for i := 0; i < n; i++ {
		progress := float64(i) / float64(n)
		// 一阶低通把噪声压暗, 截止频率随包络抬升再回落
		alpha := 0.02 + 0.10*math.Sin(progress*math.Pi)
		low += alpha * (rng.Float64()*2 - 1 - low)
		env := math.Sin(progress * math.Pi)
		buf = appendSample(buf, low*gain*env*3)
	}
	return buf
}

// appendSample 把 [-1,1] 的采样写成双声道 16 位小端 PCM。
func appendSample(buf []byte, v float64) []byte {
	if v > 1 {
		v = 1
	}
	if v < -1 {
		v = -1
	}
	s := int16(v * math.MaxInt16)
	lo := byte(s)
	hi := byte(s >> 8)
	return append(buf, lo, hi, lo, hi)
}
