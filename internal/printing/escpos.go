package printing

import "bytes"

// ESC/POS komut baytları. Termal yazıcıların büyük çoğunluğu (Epson
// TM serisi ve klonları) bu komut setini konuşur.
var (
	cmdInit          = []byte{0x1B, 0x40}             // ESC @
	cmdAlignLeft     = []byte{0x1B, 0x61, 0x00}       // ESC a 0
	cmdAlignCenter   = []byte{0x1B, 0x61, 0x01}       // ESC a 1
	cmdBoldOn        = []byte{0x1B, 0x45, 0x01}       // ESC E 1
	cmdBoldOff       = []byte{0x1B, 0x45, 0x00}       // ESC E 0
	cmdDoubleSize    = []byte{0x1D, 0x21, 0x11}       // GS ! 0x11
	cmdNormalSize    = []byte{0x1D, 0x21, 0x00}       // GS ! 0
	cmdUnderlineOn   = []byte{0x1B, 0x2D, 0x01}       // ESC - 1
	cmdUnderlineOff  = []byte{0x1B, 0x2D, 0x00}       // ESC - 0
	cmdCodePage857   = []byte{0x1B, 0x74, 0x0D}       // ESC t 13 (PC857 Türkçe)
	cmdKanjiOn       = []byte{0x1C, 0x26}             // FS & (çok baytlı mod)
	cmdKanjiOff      = []byte{0x1C, 0x2E}             // FS .
	cmdCut           = []byte{0x1D, 0x56, 0x42, 0x00} // GS V B 0 (besleme + kısmi kesim)
	cmdFeed          = []byte{0x0A}
)

// Builder - ESC/POS bayt dizisi kurucusu. Metin ekleme kodlayıcıdan
// geçer; Türkçe fişler CP857, Çince fişler GB18030 kullanır.
type Builder struct {
	buf    bytes.Buffer
	encode func(string) []byte
}

// NewBuilder - dil koduna göre kodlayıcı seçip yazıcıyı sıfırlayan
// komutlarla başlar. Çince için çok baytlı mod açılır.
func NewBuilder(language string) *Builder {
	b := &Builder{}
	b.buf.Write(cmdInit)
	if language == "zh" {
		b.encode = encodeGB18030
		b.buf.Write(cmdKanjiOn)
	} else {
		b.encode = encodeCP857
		b.buf.Write(cmdCodePage857)
	}
	return b
}

func (b *Builder) Text(s string) *Builder {
	b.buf.Write(b.encode(s))
	return b
}

func (b *Builder) Line(s string) *Builder {
	b.Text(s)
	b.buf.Write(cmdFeed)
	return b
}

func (b *Builder) Feed(n int) *Builder {
	for i := 0; i < n; i++ {
		b.buf.Write(cmdFeed)
	}
	return b
}

func (b *Builder) AlignCenter() *Builder { b.buf.Write(cmdAlignCenter); return b }
func (b *Builder) AlignLeft() *Builder   { b.buf.Write(cmdAlignLeft); return b }
func (b *Builder) BoldOn() *Builder      { b.buf.Write(cmdBoldOn); return b }
func (b *Builder) BoldOff() *Builder     { b.buf.Write(cmdBoldOff); return b }
func (b *Builder) DoubleSize() *Builder  { b.buf.Write(cmdDoubleSize); return b }
func (b *Builder) NormalSize() *Builder  { b.buf.Write(cmdNormalSize); return b }
func (b *Builder) UnderlineOn() *Builder { b.buf.Write(cmdUnderlineOn); return b }
func (b *Builder) UnderlineOff() *Builder {
	b.buf.Write(cmdUnderlineOff)
	return b
}

// Cut - kağıdı besleyip keser ve biten baytları döndürür
func (b *Builder) Cut() []byte {
	b.Feed(3)
	b.buf.Write(cmdCut)
	return b.buf.Bytes()
}
