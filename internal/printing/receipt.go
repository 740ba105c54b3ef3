package printing

import (
	"fmt"
	"time"
)

// TicketItem - bir mutfak fişinde basılacak kalem
type TicketItem struct {
	Name        string
	Quantity    int
	Notes       string
	Translation string // menüde kayıtlıysa hedef dildeki ad
	Variations  []string
}

// Ticket - tek istasyona giden sipariş fişi
type Ticket struct {
	OrderID      string
	StationName  string
	TableNumber  *int
	CustomerName string
	OrderType    string
	Notes        string
	Items        []TicketItem
	CreatedAt    time.Time
}

const receiptTimeFormat = "02.01.2006 15:04"

// FormatOrderTicket - mutfak/bar fişinin ESC/POS baytlarını üretir.
// Masa numarası çift boy basılır, kalem notlarının altı çizilir.
func FormatOrderTicket(t Ticket, language string) []byte {
	b := NewBuilder(language)

	b.AlignCenter().BoldOn().DoubleSize()
	if t.TableNumber != nil {
		if language == "zh" {
			b.Line(fmt.Sprintf("桌号 %d", *t.TableNumber))
		} else {
			b.Line(fmt.Sprintf("MASA %d", *t.TableNumber))
		}
	} else {
		if language == "zh" {
			b.Line("外卖")
		} else {
			b.Line("PAKET")
		}
	}
	b.NormalSize()
	b.Line(fmt.Sprintf("[%s]", t.StationName))
	b.BoldOff().AlignLeft()

	b.Line("--------------------------------")
	if len(t.OrderID) >= 8 {
		b.Line("Siparis: " + t.OrderID[:8])
	}
	b.Line("Tarih: " + t.CreatedAt.Format(receiptTimeFormat))
	if t.CustomerName != "" {
		b.Line("Musteri: " + t.CustomerName)
	}
	b.Line("--------------------------------")

	if language == "zh" {
		b.BoldOn().Line("产品:").BoldOff()
	} else {
		b.BoldOn().Line("URUNLER:").BoldOff()
	}

	for _, item := range t.Items {
		name := TranslateName(item.Name, language, item.Translation)
		b.Line(fmt.Sprintf("%dx %s", item.Quantity, name))
		for _, v := range item.Variations {
			b.Line("   + " + v)
		}
		if item.Notes != "" {
			b.UnderlineOn()
			if language == "zh" {
				b.Line("   备注: " + item.Notes)
			} else {
				b.Line("   NOT: " + item.Notes)
			}
			b.UnderlineOff()
		}
	}

	if t.Notes != "" {
		b.Line("--------------------------------")
		if language == "zh" {
			b.Line("备注: " + t.Notes)
		} else {
			b.Line("SIPARIS NOTU: " + t.Notes)
		}
	}

	b.Line("--------------------------------")
	b.AlignCenter()
	if language == "zh" {
		b.Line("请享用!")
	} else {
		b.Line("AFIYET OLSUN!")
	}

	return b.Cut()
}

// ReceiptLine - ödeme fişindeki fiyatlı kalem
type ReceiptLine struct {
	Name      string
	Quantity  int
	UnitPrice float64
	Total     float64
}

// PaymentReceipt - kasada basılan bilgi fişi. Mali değeri yoktur,
// "BILGI FISIDIR" ibaresiyle basılır.
type PaymentReceipt struct {
	RestaurantName string
	TableNumber    *int
	CashierName    string
	Lines          []ReceiptLine
	Subtotal       float64
	Discount       float64
	Total          float64
	CreatedAt      time.Time
}

// KDV oranı %10; toplam KDV dahildir, fişte dökümü gösterilir
const vatRate = 0.10

// FormatPaymentReceipt - kasa bilgi fişinin ESC/POS baytlarını üretir
func FormatPaymentReceipt(r PaymentReceipt) []byte {
	b := NewBuilder("tr")

	b.AlignCenter().BoldOn().DoubleSize()
	b.Line(r.RestaurantName)
	b.NormalSize()
	if r.TableNumber != nil {
		b.Line(fmt.Sprintf("Çek / Masa %d", *r.TableNumber))
	} else {
		b.Line("Çek / Paket")
	}
	b.BoldOff().AlignLeft()

	b.Line("--------------------------------")
	b.Line("Tarih    : " + r.CreatedAt.Format(receiptTimeFormat))
	if r.CashierName != "" {
		b.Line("Kullanici: " + r.CashierName)
	}
	b.Line("--------------------------------")

	for _, line := range r.Lines {
		b.Line(fmt.Sprintf("%dx %s", line.Quantity, line.Name))
		b.Line(fmt.Sprintf("%28.2f TL", line.Total))
	}

	b.Line("--------------------------------")
	b.Line(fmt.Sprintf("ARA TOPLAM %17.2f TL", r.Subtotal))
	if r.Discount > 0 {
		b.Line(fmt.Sprintf("INDIRIM    %17.2f TL", -r.Discount))
	}
	vat := r.Total - r.Total/(1+vatRate)
	b.Line(fmt.Sprintf("KDV %%10    %17.2f TL", vat))
	b.BoldOn()
	b.Line(fmt.Sprintf("TOPLAM     %17.2f TL", r.Total))
	b.BoldOff()

	b.Line("--------------------------------")
	b.AlignCenter()
	b.Line("MALI DEGERI YOKTUR")
	b.Line("BILGI FISIDIR")

	return b.Cut()
}

// FormatTestTicket - yazıcı bağlantı testinde basılan kısa fiş
func FormatTestTicket(stationName, language string, now time.Time) []byte {
	b := NewBuilder(language)
	b.AlignCenter().BoldOn()
	b.Line("*** TEST ***")
	b.BoldOff()
	b.Line(stationName)
	b.Line(now.Format(receiptTimeFormat))
	return b.Cut()
}
