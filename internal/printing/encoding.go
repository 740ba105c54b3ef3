package printing

import (
	"golang.org/x/text/encoding/simplifiedchinese"
)

// cp857 - PC857 (Türkçe) kod sayfası tablosu. x/text'in charmap paketi
// 857'yi içermediği için tablo elle tutulur; ASCII aralığı birebir
// geçer, ESC t 13 ile seçilen sayfanın üst bloğundan ise fişlerde
// geçen harfler yeterlidir.
var cp857 = map[rune]byte{
	'Ç': 0x80, 'ü': 0x81, 'é': 0x82, 'â': 0x83, 'ä': 0x84, 'à': 0x85,
	'å': 0x86, 'ç': 0x87, 'ê': 0x88, 'ë': 0x89, 'è': 0x8A, 'ï': 0x8B,
	'î': 0x8C, 'ı': 0x8D, 'Ä': 0x8E, 'Å': 0x8F, 'É': 0x90, 'æ': 0x91,
	'Æ': 0x92, 'ô': 0x93, 'ö': 0x94, 'ò': 0x95, 'û': 0x96, 'ù': 0x97,
	'İ': 0x98, 'Ö': 0x99, 'Ü': 0x9A, 'ø': 0x9B, '£': 0x9C, 'Ø': 0x9D,
	'Ş': 0x9E, 'ş': 0x9F, 'á': 0xA0, 'í': 0xA1, 'ó': 0xA2, 'ú': 0xA3,
	'ñ': 0xA4, 'Ñ': 0xA5, 'Ğ': 0xA6, 'ğ': 0xA7, '¿': 0xA8, '½': 0xAB,
	'¼': 0xAC, '¡': 0xAD, '«': 0xAE, '»': 0xAF, 'ß': 0xE1, 'µ': 0xE6,
	'±': 0xF1, '÷': 0xF6, '°': 0xF8, '·': 0xFA, '²': 0xFD,
}

// encodeCP857 - Türkçe karakterleri (ç, ğ, ı, ö, ş, ü) PC857 kod
// sayfasına çevirir. Kod sayfasında karşılığı olmayan karakterler '?'
// ile değiştirilir, fiş basımı hiçbir zaman kodlama yüzünden durmaz.
func encodeCP857(s string) []byte {
	return replaceUnsupported(s, cp857Encode)
}

func cp857Encode(r rune) (byte, bool) {
	if r < 0x80 {
		return byte(r), true
	}
	b, ok := cp857[r]
	return b, ok
}

func replaceUnsupported(s string, enc func(rune) (byte, bool)) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		if b, ok := enc(r); ok {
			out = append(out, b)
		} else {
			out = append(out, '?')
		}
	}
	return out
}

// encodeGB18030 - Çince fiş metnini GB18030'a çevirir. GB18030 tüm
// Unicode'u kapsadığı için pratikte hata dönmez; yine de hata halinde
// ham baytlara düşülür.
func encodeGB18030(s string) []byte {
	out, err := simplifiedchinese.GB18030.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return []byte(s)
	}
	return out
}
