package orders

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"masapp-backend/internal/menu"
	"masapp-backend/internal/models"
	"masapp-backend/internal/printing"
	"masapp-backend/internal/qr"
	"masapp-backend/internal/realtime"
	"masapp-backend/internal/station"
	"masapp-backend/internal/waiter"
)

var (
	ErrRestaurantNotFound = errors.New("restoran bulunamadı")
	ErrOrderNotFound      = errors.New("sipariş bulunamadı")
	ErrInvalidStatus      = errors.New("geçersiz sipariş durumu")
	ErrSameTableMerge     = errors.New("sipariş aynı masaya birleştirilemez")
	ErrNoItems            = errors.New("sipariş en az bir kalem içermeli")
)

// TicketDispatcher - testlerde gerçek yazıcı bağlantısı yerine sahte
// gönderici kullanılabilsin diye arayüz
type TicketDispatcher interface {
	Dispatch(jobs []printing.Job) []printing.Result
}

// Service - sipariş yaşam döngüsü: oluşturma, onay, durum geçişleri,
// birleştirme ve istasyon fişlerinin basımı
type Service struct {
	DB         *gorm.DB
	Bus        *realtime.Bus
	Dispatcher TicketDispatcher
	QR         *qr.Service
	Calls      *waiter.Store
}

// ItemInput - sipariş kalemi isteği. MenuItemID boşsa ada göre
// eşleştirilir; o da tutmazsa kalem menü dışı olarak kaydedilir.
type ItemInput struct {
	MenuItemID string   `json:"menuItemId"`
	Name       string   `json:"name"`
	Quantity   int      `json:"quantity" validate:"required,gt=0"`
	UnitPrice  float64  `json:"unitPrice"`
	Notes      string   `json:"notes"`
	Variations []string `json:"variations"`
}

// CreateInput - yeni sipariş isteği
type CreateInput struct {
	RestaurantID string      `json:"restaurantId" validate:"required"`
	TableNumber  *int        `json:"tableNumber"`
	CustomerName string      `json:"customerName"`
	OrderType    string      `json:"orderType"`
	Notes        string      `json:"notes"`
	Items        []ItemInput `json:"items" validate:"required,min=1,dive"`
}

// resolvedItem - menü eşleşmesi yapılmış kalem; fiş basımında istasyon
// çözümü için menü bilgisini yanında taşır
type resolvedItem struct {
	order    models.OrderItem
	menuItem *models.MenuItem
}

// Create - siparişi kaydeder, yeni sipariş olayını yayınlar. Sadece
// içecek içeren siparişler kasiyer onayı beklemeden otomatik onaylanır
// ve fişleri hemen basılır.
func (s *Service) Create(in CreateInput) (*models.Order, []printing.Result, error) {
	if len(in.Items) == 0 {
		return nil, nil, ErrNoItems
	}

	restaurant, err := menu.ResolveRestaurantID(s.DB, in.RestaurantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrRestaurantNotFound
		}
		return nil, nil, err
	}

	resolved, err := s.resolveItems(restaurant.ID, in.Items)
	if err != nil {
		return nil, nil, err
	}

	total := 0.0
	orderItems := make([]models.OrderItem, 0, len(resolved))
	for _, r := range resolved {
		total += r.order.TotalPrice
		orderItems = append(orderItems, r.order)
	}

	orderType := models.OrderType(in.OrderType)
	if orderType == "" {
		orderType = models.OrderDineIn
	}

	policy := station.PolicyFromSettings(restaurant.Settings.Data())
	autoApprove := s.allDrinks(policy, resolved)

	order := &models.Order{
		RestaurantID: restaurant.ID,
		TableNumber:  in.TableNumber,
		CustomerName: in.CustomerName,
		Status:       models.OrderPending,
		Approved:     autoApprove,
		TotalAmount:  total,
		OrderType:    orderType,
		Notes:        in.Notes,
		Items:        orderItems,
	}
	if err := s.DB.Create(order).Error; err != nil {
		return nil, nil, fmt.Errorf("sipariş kaydedilemedi: %w", err)
	}

	// Onaysız sipariş panellere duyurulmaz; kasiyer onayına kadar
	// yalnızca kasa listesinde görünür
	var printResults []printing.Result
	if autoApprove {
		log.Printf("Sipariş %s sadece içecek içeriyor, otomatik onaylandı", order.ID)
		s.Bus.Publish("new_order", map[string]any{
			"order":        order,
			"restaurantId": restaurant.ID,
		})
		printResults = s.dispatchTickets(restaurant, order, resolved, false)
	}

	return order, printResults, nil
}

// Approve - kasiyer onayı. İdempotenttir: onaylı siparişte yayın ve
// basım tekrarlanmaz, mevcut sipariş döner.
func (s *Service) Approve(orderID string) (*models.Order, []printing.Result, error) {
	var order models.Order
	if err := s.DB.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrOrderNotFound
		}
		return nil, nil, err
	}

	if order.Approved {
		return &order, nil, nil
	}

	if err := s.DB.Model(&order).Update("approved", true).Error; err != nil {
		return nil, nil, fmt.Errorf("sipariş onaylanamadı: %w", err)
	}
	order.Approved = true

	var restaurant models.Restaurant
	if err := s.DB.First(&restaurant, "id = ?", order.RestaurantID).Error; err != nil {
		return nil, nil, err
	}

	s.Bus.Publish("order_approved", map[string]any{
		"orderId":      order.ID,
		"restaurantId": order.RestaurantID,
	})

	resolved := s.reloadMenuItems(&order)
	printResults := s.dispatchTickets(&restaurant, &order, resolved, false)

	return &order, printResults, nil
}

// UpdateInput - sipariş güncelleme isteği; nil alanlar dokunulmaz.
// Eşzamanlı güncellemede son yazan kazanır.
type UpdateInput struct {
	Status         *string     `json:"status"`
	TotalAmount    *float64    `json:"totalAmount"`
	PaidAmount     *float64    `json:"paidAmount"`
	DiscountAmount *float64    `json:"discountAmount"`
	DiscountReason *string     `json:"discountReason"`
	CashierNote    *string     `json:"cashierNote"`
	Items          []ItemInput `json:"items"`
	CashierName    string      `json:"-"`
}

// Update - durum geçişi ve alan güncellemeleri. Geçişler serbesttir;
// paneller kendi akışlarını uygular, sunucu yalnızca geçerli durum
// değerlerini zorlar. Yan etkiler:
//   - ready: masaya "sipariş hazır" garson çağrısı açılır
//   - completed: kasaya bilgi fişi basılır ve masa QR token'ı döndürülür
func (s *Service) Update(orderID string, in UpdateInput) (*models.Order, error) {
	var order models.Order
	if err := s.DB.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	var restaurant models.Restaurant
	if err := s.DB.First(&restaurant, "id = ?", order.RestaurantID).Error; err != nil {
		return nil, err
	}

	updates := map[string]any{}
	statusChanged := false
	newStatus := order.Status

	if in.Status != nil {
		newStatus = models.OrderStatus(*in.Status)
		if !models.ValidOrderStatus(newStatus) {
			return nil, ErrInvalidStatus
		}
		if newStatus != order.Status {
			statusChanged = true
		}
		updates["status"] = newStatus
	}
	if in.TotalAmount != nil {
		if *in.TotalAmount < 0 {
			return nil, fmt.Errorf("toplam tutar negatif olamaz")
		}
		updates["total_amount"] = *in.TotalAmount
	}
	if in.PaidAmount != nil {
		updates["paid_amount"] = *in.PaidAmount
	}
	if in.DiscountAmount != nil {
		updates["discount_amount"] = *in.DiscountAmount
	}
	if in.DiscountReason != nil {
		updates["discount_reason"] = *in.DiscountReason
	}
	if in.CashierNote != nil {
		updates["cashier_note"] = *in.CashierNote
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			if err := tx.Model(&order).Updates(updates).Error; err != nil {
				return err
			}
		}

		if in.Items != nil {
			resolved, err := s.resolveItems(order.RestaurantID, in.Items)
			if err != nil {
				return err
			}

			if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}

			total := 0.0
			newItems := make([]models.OrderItem, 0, len(resolved))
			for _, r := range resolved {
				item := r.order
				item.OrderID = order.ID
				total += item.TotalPrice
				newItems = append(newItems, item)
			}
			if len(newItems) > 0 {
				if err := tx.Create(&newItems).Error; err != nil {
					return err
				}
			}
			if err := tx.Model(&order).Update("total_amount", total).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sipariş güncellenemedi: %w", err)
	}

	if err := s.DB.Preload("Items").First(&order, "id = ?", order.ID).Error; err != nil {
		return nil, err
	}

	if statusChanged {
		switch newStatus {
		case models.OrderReady:
			s.notifyOrderReady(&order)
		case models.OrderCompleted:
			s.onCompleted(&restaurant, &order, in.CashierName)
		}
	}

	s.Bus.Publish("order_update", map[string]any{
		"order":        order,
		"restaurantId": order.RestaurantID,
	})

	return &order, nil
}

// Merge - kaynak siparişleri hedef masaya taşır. Kalemler hedef masada
// açık (tamamlanmamış, iptal edilmemiş) sipariş varsa ona eklenir,
// yoksa kaynaklardan ilki hedef masaya taşınır.
func (s *Service) Merge(restaurantID string, sourceOrderIDs []string, targetTable int) (*models.Order, error) {
	restaurant, err := menu.ResolveRestaurantID(s.DB, restaurantID)
	if err != nil {
		return nil, ErrRestaurantNotFound
	}

	var sources []models.Order
	if err := s.DB.Preload("Items").
		Where("restaurant_id = ? AND id IN ?", restaurant.ID, sourceOrderIDs).
		Find(&sources).Error; err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, ErrOrderNotFound
	}
	for _, src := range sources {
		if src.TableNumber != nil && *src.TableNumber == targetTable {
			return nil, ErrSameTableMerge
		}
	}

	var target models.Order
	targetErr := s.DB.Preload("Items").
		Where("restaurant_id = ? AND table_number = ? AND status NOT IN ?",
			restaurant.ID, targetTable, []models.OrderStatus{models.OrderCompleted, models.OrderCancelled}).
		Order("created_at ASC").
		First(&target).Error

	// Kalemler taşındıktan sonra kaynak siparişler silinir
	mergedSourceIDs := make([]string, 0, len(sources))

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		absorb := func(total float64, src models.Order) (float64, error) {
			if err := tx.Model(&models.OrderItem{}).
				Where("order_id = ?", src.ID).
				Update("order_id", target.ID).Error; err != nil {
				return 0, err
			}
			if err := tx.Delete(&models.Order{}, "id = ?", src.ID).Error; err != nil {
				return 0, err
			}
			mergedSourceIDs = append(mergedSourceIDs, src.ID)
			return total + src.TotalAmount, nil
		}

		if targetErr == nil {
			total := target.TotalAmount
			for _, src := range sources {
				if src.ID == target.ID {
					continue
				}
				var err error
				if total, err = absorb(total, src); err != nil {
					return err
				}
			}
			return tx.Model(&target).Update("total_amount", total).Error
		}
		if !errors.Is(targetErr, gorm.ErrRecordNotFound) {
			return targetErr
		}

		// Hedef masada açık sipariş yok: ilk kaynağı taşı, kalanları ona kat
		target = sources[0]
		if err := tx.Model(&models.Order{}).Where("id = ?", target.ID).
			Update("table_number", targetTable).Error; err != nil {
			return err
		}
		total := target.TotalAmount
		for _, src := range sources[1:] {
			var err error
			if total, err = absorb(total, src); err != nil {
				return err
			}
		}
		return tx.Model(&models.Order{}).Where("id = ?", target.ID).
			Update("total_amount", total).Error
	})
	if err != nil {
		return nil, fmt.Errorf("siparişler birleştirilemedi: %w", err)
	}

	if err := s.DB.Preload("Items").First(&target, "id = ?", target.ID).Error; err != nil {
		return nil, err
	}

	for _, srcID := range mergedSourceIDs {
		s.Bus.Publish("order_deleted", map[string]any{
			"orderId":      srcID,
			"restaurantId": restaurant.ID,
			"mergedInto":   target.ID,
		})
	}
	s.Bus.Publish("order_update", map[string]any{
		"order":        target,
		"restaurantId": restaurant.ID,
		"merged":       true,
	})

	return &target, nil
}

// PrintTickets - siparişin istasyon fişlerini (yeniden) basar
func (s *Service) PrintTickets(orderID string) (*models.Order, []printing.Result, error) {
	var order models.Order
	if err := s.DB.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrOrderNotFound
		}
		return nil, nil, err
	}

	var restaurant models.Restaurant
	if err := s.DB.First(&restaurant, "id = ?", order.RestaurantID).Error; err != nil {
		return nil, nil, err
	}

	resolved := s.reloadMenuItems(&order)
	return &order, s.dispatchTickets(&restaurant, &order, resolved, true), nil
}

// PrintInfo - ödeme bilgi fişini kasaya basar; sipariş durumuna dokunmaz
func (s *Service) PrintInfo(orderID, cashierName string) ([]printing.Result, error) {
	var order models.Order
	if err := s.DB.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	var restaurant models.Restaurant
	if err := s.DB.First(&restaurant, "id = ?", order.RestaurantID).Error; err != nil {
		return nil, err
	}

	results := s.printPaymentReceipt(&restaurant, &order, cashierName)
	if results == nil {
		return nil, fmt.Errorf("kasa yazıcısı yapılandırılmamış")
	}
	return results, nil
}

// --- iç yardımcılar ---

func (s *Service) resolveItems(restaurantID string, inputs []ItemInput) ([]resolvedItem, error) {
	out := make([]resolvedItem, 0, len(inputs))

	for _, in := range inputs {
		qty := in.Quantity
		if qty <= 0 {
			qty = 1
		}

		var menuItem *models.MenuItem

		if in.MenuItemID != "" {
			var found models.MenuItem
			err := s.DB.Preload("Category").
				First(&found, "id = ? AND restaurant_id = ?", in.MenuItemID, restaurantID).Error
			if err == nil {
				menuItem = &found
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}
		if menuItem == nil && in.Name != "" {
			var found models.MenuItem
			err := s.DB.Preload("Category").
				First(&found, "restaurant_id = ? AND name = ?", restaurantID, in.Name).Error
			if err == nil {
				menuItem = &found
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
		}

		item := models.OrderItem{
			Quantity:   qty,
			Notes:      in.Notes,
			Variations: datatypes.JSONSlice[string](in.Variations),
		}

		if menuItem != nil {
			item.MenuItemID = &menuItem.ID
			item.UnitPrice = menuItem.Price
		} else {
			// Menüde eşleşmeyen kalem "Genel" kategorisi altında
			// kataloğa eklenir; yeniden baskı ve raporlar adını
			// kaybetmez
			if in.Name == "" {
				return nil, fmt.Errorf("menü kalemi bulunamadı ve ad verilmedi")
			}
			created, err := s.createOffMenuItem(restaurantID, in.Name, in.UnitPrice)
			if err != nil {
				return nil, err
			}
			log.Printf("Menü dışı kalem kataloğa eklendi: %q (restoran %s)", in.Name, restaurantID)
			menuItem = created
			item.MenuItemID = &created.ID
			item.UnitPrice = in.UnitPrice
		}
		item.TotalPrice = item.UnitPrice * float64(qty)

		out = append(out, resolvedItem{order: item, menuItem: menuItem})
	}
	return out, nil
}

// createOffMenuItem - menüde bulunmayan kalemi "Genel" kategorisi
// altında menü kaydına dönüştürür; kategori yoksa oluşturulur
func (s *Service) createOffMenuItem(restaurantID, name string, price float64) (*models.MenuItem, error) {
	var category models.MenuCategory
	err := s.DB.
		Where("restaurant_id = ? AND name = ?", restaurantID, "Genel").
		First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		category = models.MenuCategory{RestaurantID: restaurantID, Name: "Genel"}
		err = s.DB.Create(&category).Error
	}
	if err != nil {
		return nil, fmt.Errorf("genel kategori oluşturulamadı: %w", err)
	}

	menuItem := models.MenuItem{
		RestaurantID: restaurantID,
		CategoryID:   category.ID,
		Name:         name,
		Price:        price,
	}
	if err := s.DB.Create(&menuItem).Error; err != nil {
		return nil, fmt.Errorf("menü dışı kalem kaydedilemedi: %w", err)
	}
	menuItem.Category = &category
	return &menuItem, nil
}

// reloadMenuItems - kayıtlı sipariş kalemlerinden fiş basımı için
// çözümlenmiş görünüm üretir
func (s *Service) reloadMenuItems(order *models.Order) []resolvedItem {
	out := make([]resolvedItem, 0, len(order.Items))
	for _, item := range order.Items {
		r := resolvedItem{order: item}
		if item.MenuItemID != nil {
			var found models.MenuItem
			if err := s.DB.Preload("Category").First(&found, "id = ?", *item.MenuItemID).Error; err == nil {
				r.menuItem = &found
			}
		}
		if r.menuItem == nil {
			r.menuItem = &models.MenuItem{Name: "Bilinmeyen Ürün", Category: &models.MenuCategory{Name: "Genel"}}
		}
		out = append(out, r)
	}
	return out
}

func (s *Service) allDrinks(policy *station.RoutingPolicy, items []resolvedItem) bool {
	if len(items) == 0 {
		return false
	}
	for _, r := range items {
		if !station.IsDrink(policy, stationItem(r.menuItem)) {
			return false
		}
	}
	return true
}

func stationItem(m *models.MenuItem) station.Item {
	if m == nil {
		return station.Item{}
	}
	return station.Item{KitchenStation: m.EffectiveStation(), CategoryID: m.CategoryID}
}

// dispatchTickets - kalemleri istasyonlara ayırıp fişleri basar. Kasa
// istasyonu yapılandırılmışsa tüm siparişin konsolide bir kopyası da
// kasaya gider. Basım hataları sonucun içinde döner, siparişi bozmaz.
// Otomatik basımda yapılandırılmamış istasyonlar sessizce atlanır;
// elle basımda (reportUnconfigured) sonuç listesinde raporlanır.
func (s *Service) dispatchTickets(restaurant *models.Restaurant, order *models.Order, items []resolvedItem, reportUnconfigured bool) []printing.Result {
	policy := station.PolicyFromSettings(restaurant.Settings.Data())
	stations := restaurant.PrinterConfig.Data()
	if len(stations) == 0 {
		log.Printf("Restoran %s için yazıcı yapılandırılmamış, basım atlandı", restaurant.ID)
		return nil
	}

	grouped := make(map[string][]resolvedItem)
	groupOrder := make([]string, 0)
	for _, r := range items {
		stationID := station.Resolve(policy, order.TableNumber, stationItem(r.menuItem))
		if stationID == "" {
			stationID = station.DefaultStationID
		}
		if _, seen := grouped[stationID]; !seen {
			groupOrder = append(groupOrder, stationID)
		}
		grouped[stationID] = append(grouped[stationID], r)
	}

	jobs := make([]printing.Job, 0, len(groupOrder)+1)
	for _, stationID := range groupOrder {
		cfg, ok := stations[stationID]
		if !ok || !cfg.Enabled || cfg.IP == "" {
			if reportUnconfigured {
				jobs = append(jobs, printing.Job{StationID: stationID, Config: cfg})
			} else {
				log.Printf("İstasyon %s yapılandırılmamış, fiş atlandı (sipariş %s)", stationID, order.ID)
			}
			continue
		}
		ticket := buildTicket(cfg, order, grouped[stationID])
		jobs = append(jobs, printing.Job{
			StationID: stationID,
			Config:    cfg,
			Payload:   printing.FormatOrderTicket(ticket, cfg.Language),
		})
	}

	// Kasa kopyası: tüm kalemler tek fişte. Kasa bir kalem grubunun
	// hedefi olsa bile konsolide kopya ayrıca basılır
	if cfg, ok := stations[station.CashierStationID]; ok && cfg.Enabled {
		ticket := buildTicket(cfg, order, items)
		jobs = append(jobs, printing.Job{
			StationID: station.CashierStationID,
			Config:    cfg,
			Payload:   printing.FormatOrderTicket(ticket, cfg.Language),
		})
	}

	return s.Dispatcher.Dispatch(jobs)
}

func buildTicket(cfg models.StationConfig, order *models.Order, items []resolvedItem) printing.Ticket {
	ticketItems := make([]printing.TicketItem, 0, len(items))
	for _, r := range items {
		ti := printing.TicketItem{
			Name:       r.menuItem.Name,
			Quantity:   r.order.Quantity,
			Notes:      r.order.Notes,
			Variations: r.order.Variations,
		}
		if cfg.Language != "" && cfg.Language != "tr" {
			if tr, ok := r.menuItem.Translations.Data()[cfg.Language]; ok {
				ti.Translation = tr.Name
			}
		}
		ticketItems = append(ticketItems, ti)
	}

	return printing.Ticket{
		OrderID:      order.ID,
		StationName:  cfg.Name,
		TableNumber:  order.TableNumber,
		CustomerName: order.CustomerName,
		OrderType:    string(order.OrderType),
		Notes:        order.Notes,
		Items:        ticketItems,
		CreatedAt:    order.CreatedAt,
	}
}

// notifyOrderReady - garson paneline "sipariş hazır" çağrısı düşürür
func (s *Service) notifyOrderReady(order *models.Order) {
	if order.TableNumber == nil {
		return
	}

	call := s.Calls.Create(order.RestaurantID, *order.TableNumber, waiter.CallTypeReady,
		"Sipariş hazır", order.ID)

	s.Bus.Publish("waiter_call", map[string]any{
		"call":         call,
		"restaurantId": order.RestaurantID,
		"tableNumber":  *order.TableNumber,
	})
}

// printPaymentReceipt - ödeme bilgi fişini kasaya basar; kasa istasyonu
// yapılandırılmamışsa nil döner
func (s *Service) printPaymentReceipt(restaurant *models.Restaurant, order *models.Order, cashierName string) []printing.Result {
	cfg, ok := restaurant.PrinterConfig.Data()[station.CashierStationID]
	if !ok || !cfg.Enabled || cfg.IP == "" {
		return nil
	}

	receipt := printing.PaymentReceipt{
		RestaurantName: restaurant.Name,
		TableNumber:    order.TableNumber,
		CashierName:    cashierName,
		Subtotal:       order.TotalAmount,
		Discount:       order.DiscountAmount,
		Total:          order.TotalAmount - order.DiscountAmount,
		CreatedAt:      time.Now(),
	}
	for _, item := range order.Items {
		name := "Ürün"
		if item.MenuItemID != nil {
			var found models.MenuItem
			if err := s.DB.First(&found, "id = ?", *item.MenuItemID).Error; err == nil {
				name = found.Name
			}
		}
		receipt.Lines = append(receipt.Lines, printing.ReceiptLine{
			Name:      name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.TotalPrice,
		})
	}

	return s.Dispatcher.Dispatch([]printing.Job{{
		StationID: station.CashierStationID,
		Config:    cfg,
		Payload:   printing.FormatPaymentReceipt(receipt),
	}})
}

// onCompleted - masa kapanışı: kasa bilgi fişi basılır ve masa QR
// token'ı döndürülür (kalıcı token ayarı açık değilse)
func (s *Service) onCompleted(restaurant *models.Restaurant, order *models.Order, cashierName string) {
	if results := s.printPaymentReceipt(restaurant, order, cashierName); len(results) > 0 && !results[0].Success {
		log.Printf("Kasa fişi basılamadı (%s): %s", order.ID, results[0].Error)
	}

	if order.TableNumber != nil && !restaurant.Settings.Data().QRTokensPermanent {
		if _, err := s.QR.RotateTableToken(restaurant.ID, *order.TableNumber, "system"); err != nil {
			log.Printf("QR token döndürülemedi (masa %d): %v", *order.TableNumber, err)
		}
	}
}
