package printing

import "strings"

// Çince mutfak fişleri için ürün adı sözlüğü. Menü kaydında çeviri
// yoksa buradan bakılır; o da yoksa Türkçe ad olduğu gibi basılır.
var chineseProductNames = map[string]string{
	"adana kebap":        "阿达纳烤肉串",
	"urfa kebap":         "乌尔法烤肉串",
	"tavuk şiş":          "鸡肉串",
	"kuzu şiş":           "羊肉串",
	"karışık ızgara":     "混合烤肉",
	"lahmacun":           "土耳其薄饼",
	"pide":               "土耳其披萨",
	"mercimek çorbası":   "扁豆汤",
	"ezogelin çorbası":   "埃佐格林汤",
	"çoban salata":       "牧羊人沙拉",
	"cacık":              "酸奶黄瓜",
	"humus":              "鹰嘴豆泥",
	"künefe":             "库纳法甜点",
	"baklava":            "果仁蜜饼",
	"sütlaç":             "米布丁",
	"ayran":              "咸酸奶",
	"çay":                "红茶",
	"türk kahvesi":       "土耳其咖啡",
	"kola":               "可乐",
	"su":                 "水",
	"maden suyu":         "矿泉水",
	"taze sıkılmış portakal suyu": "鲜榨橙汁",
}

// TranslateName - ürün adını yazıcı diline çevirir. Önce menüde
// kayıtlı çeviri, sonra sözlük, en son orijinal ad.
func TranslateName(name, language string, menuTranslation string) string {
	if language != "zh" {
		return name
	}
	if menuTranslation != "" {
		return menuTranslation
	}
	if zh, ok := chineseProductNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return zh
	}
	return name
}
