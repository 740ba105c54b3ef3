package station

import (
	"strings"
	"unicode"

	"masapp-backend/internal/models"
)

// DefaultStationID - hiçbir istasyona çözülemeyen kalemlerin düştüğü kova
const DefaultStationID = "default"

// CashierStationID - kasa yazıcısının sabit anahtarı; ödeme fişi ve
// konsolide sipariş kopyası buraya gider
const CashierStationID = "kasa"

// İstasyon etiketinde içecek anlamına gelen anahtar kelimeler.
// Eskiden belirli restoran id'leri kod içinde özel durumdu; artık
// politika restoran ayarlarından okunur, etiket tetikleyicisi kaldı.
var drinkKeywords = []string{"icecek", "içecek", "drink", "bar"}

// TableRange - çözümlenmiş masa aralığı kuralı
type TableRange struct {
	Start     int
	End       int
	StationID string
}

// RoutingPolicy - bir restoranın içecek yönlendirme politikası.
// İki katlı restoranlarda tek içecek istasyonu darboğaz olduğu için
// masa aralığına göre ikiye bölünür; aralıklar ayarlardan gelir.
type RoutingPolicy struct {
	DrinkCategoryID string
	Ranges          []TableRange
}

// PolicyFromSettings - restoran ayarlarındaki drinkStationRouting
// yapılandırmasını çözümlenmiş politikaya çevirir. Yapılandırma yoksa
// nil döner ve çözümleme ürün etiketine düşer.
func PolicyFromSettings(s models.RestaurantSettings) *RoutingPolicy {
	cfg := s.DrinkRouting
	if cfg == nil || len(cfg.Floors) == 0 {
		return nil
	}

	p := &RoutingPolicy{DrinkCategoryID: cfg.DrinkCategoryID}
	for _, f := range cfg.Floors {
		if f.StationID == "" || f.StartTable <= 0 || f.EndTable < f.StartTable {
			continue
		}
		p.Ranges = append(p.Ranges, TableRange{Start: f.StartTable, End: f.EndTable, StationID: f.StationID})
	}
	if len(p.Ranges) == 0 {
		return nil
	}
	return p
}

// Item - çözümleme için gereken kalem bilgisi
type Item struct {
	KitchenStation string // üründe (veya kategorisinde) yapılandırılmış etiket
	CategoryID     string
}

// Resolve - bir kalemin hangi istasyona gideceğini belirler. Saf ve
// deterministiktir; aynı girdi her zaman aynı istasyonu verir.
//
//  1. Etiketli kalem: etiket içecek anahtar kelimesi içeriyorsa ve
//     politika masa aralıkları tanımlıyorsa masa numarasına göre aralık
//     eşleşmesi yapılır (ilk eşleşme kazanır; aralık dışı veya masasız
//     sipariş varsayılan olarak ilk aralığın istasyonuna gider).
//     Aksi halde etiket olduğu gibi kullanılır.
//  2. Etiketsiz kalem: kategori politikadaki içecek kategorisiyse aralık
//     eşleşmesi yapılır; eşleşme yoksa boş döner ve kalem aşağıda
//     "default" kovasına düşer.
func Resolve(policy *RoutingPolicy, tableNumber *int, item Item) string {
	label := strings.TrimSpace(item.KitchenStation)

	if label != "" {
		if policy != nil && len(policy.Ranges) > 0 && isDrinkLabel(label) {
			return policy.resolveRange(tableNumber)
		}
		// Etiket zaten hedef istasyon
		return label
	}

	if policy != nil && policy.DrinkCategoryID != "" && item.CategoryID == policy.DrinkCategoryID {
		return policy.resolveRange(tableNumber)
	}

	return ""
}

func (p *RoutingPolicy) resolveRange(tableNumber *int) string {
	if tableNumber != nil {
		for _, r := range p.Ranges {
			if *tableNumber >= r.Start && *tableNumber <= r.End {
				return r.StationID
			}
		}
	}
	// Masasız (paket) veya aralık dışı masa: ilk aralığın istasyonu varsayılandır
	return p.Ranges[0].StationID
}

// IsDrink - kalem içecek sayılır mı? Sadece içecek içeren siparişler
// onay beklemeden mutfağa düşer.
func IsDrink(policy *RoutingPolicy, item Item) bool {
	if isDrinkLabel(item.KitchenStation) {
		return true
	}
	return policy != nil && policy.DrinkCategoryID != "" && item.CategoryID == policy.DrinkCategoryID
}

func isDrinkLabel(label string) bool {
	// İki küçültme birden denenir: düz ToLower 'İ'yi "i̇" (i + birleşik
	// nokta) yapıp "İÇECEK"i ıskalar, Türkçe küçültme ise 'I'yı 'ı'
	// yapıp "DRINK"i ıskalar
	lower := strings.ToLower(label)
	lowerTR := strings.ToLowerSpecial(unicode.TurkishCase, label)
	for _, kw := range drinkKeywords {
		if strings.Contains(lower, kw) || strings.Contains(lowerTR, kw) {
			return true
		}
	}
	return false
}
